package topsis

import (
	"errors"
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustValidate(t *testing.T, raw RawTable, weights, impacts string) *Problem {
	t.Helper()
	p, err := Validate(raw, weights, impacts)
	require.NoError(t, err)
	return p
}

func mustRank(t *testing.T, raw RawTable, weights, impacts string) *Outcome {
	t.Helper()
	o, err := Rank(mustValidate(t, raw, weights, impacts))
	require.NoError(t, err)
	return o
}

func suppliersTable() RawTable {
	return RawTable{
		Header: []string{"Supplier", "Quality", "Cost", "Delivery", "Risk"},
		Rows: [][]string{
			{"S1", "7", "120", "5", "0.3"},
			{"S2", "9", "150", "3", "0.1"},
			{"S3", "6", "90", "7", "0.4"},
			{"S4", "8", "110", "4", "0.2"},
			{"S5", "5", "80", "6", "0.5"},
		},
	}
}

func TestRank_ThreePhones(t *testing.T) {
	o := mustRank(t, phonesTable(), "1,1", "+,+")

	assert.InDeltaSlice(t, []float64{0.5, 0.5}, o.Weights, 1e-12)
	assert.InDelta(t, 0.2119, o.Scores[0], 1e-4)
	assert.InDelta(t, 0.0, o.Scores[1], 1e-12)
	assert.InDelta(t, 1.0, o.Scores[2], 1e-12)
	assert.Equal(t, []int{2, 3, 1}, o.Ranks)

	for i := range o.Scores {
		for j := i + 1; j < len(o.Scores); j++ {
			assert.Greater(t, math.Abs(o.Scores[i]-o.Scores[j]), 1e-9)
		}
	}
}

func TestRank_IdealPoints(t *testing.T) {
	o := mustRank(t, phonesTable(), "1,1", "-,+")

	// Price is minimized: best is the cheapest weighted value.
	assert.Less(t, o.IdealBest[0], o.IdealWorst[0])
	assert.Greater(t, o.IdealBest[1], o.IdealWorst[1])

	price := 200 / math.Sqrt(250*250+200*200+300*300) * 0.5
	assert.InDelta(t, price, o.IdealBest[0], 1e-12)
}

func TestRank_Separations(t *testing.T) {
	o := mustRank(t, suppliersTable(), "0.4,0.3,0.2,0.1", "+,-,-,-")

	for i := range o.Scores {
		sp, sm := o.SeparationBest[i], o.SeparationWorst[i]
		assert.GreaterOrEqual(t, sp, 0.0)
		assert.GreaterOrEqual(t, sm, 0.0)
		assert.InDelta(t, sm/(sp+sm), o.Scores[i], 1e-15)
	}
}

func TestRank_RanksArePermutation(t *testing.T) {
	o := mustRank(t, suppliersTable(), "1,1,1,1", "+,-,-,-")

	seen := make(map[int]bool)
	for _, r := range o.Ranks {
		assert.GreaterOrEqual(t, r, 1)
		assert.LessOrEqual(t, r, len(o.Ranks))
		assert.False(t, seen[r], "duplicate rank %d", r)
		seen[r] = true
	}
	assert.Len(t, seen, len(o.Ranks))
}

func TestRank_ScoreBoundsAndExtremes(t *testing.T) {
	o := mustRank(t, suppliersTable(), "0.25,0.25,0.25,0.25", "+,-,-,-")

	maxIdx, minIdx := 0, 0
	for i, s := range o.Scores {
		assert.GreaterOrEqual(t, s, 0.0)
		assert.LessOrEqual(t, s, 1.0)
		if s > o.Scores[maxIdx] {
			maxIdx = i
		}
		if s < o.Scores[minIdx] {
			minIdx = i
		}
	}
	assert.Equal(t, 1, o.Ranks[maxIdx])
	assert.Equal(t, len(o.Scores), o.Ranks[minIdx])
}

func TestRank_TiesKeepInputOrder(t *testing.T) {
	raw := RawTable{
		Header: []string{"id", "a", "b"},
		Rows: [][]string{
			{"low", "1", "1"},
			{"twin1", "2", "3"},
			{"top", "4", "4"},
			{"twin2", "2", "3"},
		},
	}
	o := mustRank(t, raw, "1,1", "+,+")

	require.Equal(t, o.Scores[1], o.Scores[3])
	assert.Equal(t, []int{4, 2, 1, 3}, o.Ranks)
}

func TestRank_PermutationInvariance(t *testing.T) {
	raw := suppliersTable()
	base := mustRank(t, raw, "3,2,1,1", "+,-,-,-")

	perm := []int{3, 0, 4, 2, 1}
	shuffled := RawTable{Header: raw.Header}
	for _, i := range perm {
		shuffled.Rows = append(shuffled.Rows, raw.Rows[i])
	}
	got := mustRank(t, shuffled, "3,2,1,1", "+,-,-,-")

	for k, i := range perm {
		assert.InDelta(t, base.Scores[i], got.Scores[k], 1e-12)
		assert.Equal(t, base.Ranks[i], got.Ranks[k])
	}
}

func TestRank_WeightScaleInvariance(t *testing.T) {
	base := mustRank(t, suppliersTable(), "3,2,1,1", "+,-,-,-")
	scaled := mustRank(t, suppliersTable(), "300,200,100,100", "+,-,-,-")

	assert.InDeltaSlice(t, base.Scores, scaled.Scores, 1e-12)
	assert.Equal(t, base.Ranks, scaled.Ranks)
}

func TestRank_SignImpactDuality(t *testing.T) {
	raw := suppliersTable()
	base := mustRank(t, raw, "3,2,1,1", "+,-,-,-")

	// Negate Cost and flip it to maximize.
	flipped := RawTable{Header: raw.Header}
	for _, row := range raw.Rows {
		r := append([]string(nil), row...)
		r[2] = "-" + r[2]
		flipped.Rows = append(flipped.Rows, r)
	}
	got := mustRank(t, flipped, "3,2,1,1", "+,+,-,-")

	assert.InDeltaSlice(t, base.Scores, got.Scores, 1e-12)
	assert.Equal(t, base.Ranks, got.Ranks)
}

func TestRank_DoesNotMutateProblem(t *testing.T) {
	p := mustValidate(t, phonesTable(), "2,2", "+,-")
	_, err := Rank(p)
	require.NoError(t, err)

	assert.Equal(t, []float64{2, 2}, p.Weights)
	assert.Equal(t, []float64{250, 16}, p.Table.Row(0).Values)
}

func TestRank_DegenerateWeights(t *testing.T) {
	p := mustValidate(t, phonesTable(), "0,0", "+,+")
	_, err := Rank(p)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDegenerateWeights)
	assert.True(t, IsDegenerate(err))
	assert.False(t, IsInputError(err))
}

func TestRank_ZeroNorm(t *testing.T) {
	raw := RawTable{
		Header: []string{"id", "a", "b"},
		Rows:   [][]string{{"x", "1", "0"}, {"y", "2", "0"}},
	}
	_, err := Rank(mustValidate(t, raw, "1,1", "+,+"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrZeroNorm)

	var critErr *CriterionError
	require.True(t, errors.As(err, &critErr))
	assert.Equal(t, 1, critErr.Index)
	assert.Equal(t, "b", critErr.Column)
	assert.Contains(t, err.Error(), `criterion 2 ("b")`)
}

func TestRank_IdenticalRows(t *testing.T) {
	raw := RawTable{
		Header: []string{"id", "a", "b"},
		Rows:   [][]string{{"x", "3", "4"}, {"y", "3", "4"}, {"z", "3", "4"}},
	}
	_, err := Rank(mustValidate(t, raw, "1,1", "+,-"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUndefinedScore) || errors.Is(err, ErrZeroNorm))
	assert.True(t, IsDegenerate(err))
}

func TestRank_SingleRow(t *testing.T) {
	raw := RawTable{
		Header: []string{"id", "a", "b"},
		Rows:   [][]string{{"only", "3", "4"}},
	}
	_, err := Rank(mustValidate(t, raw, "1,1", "+,+"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUndefinedScore)

	var rowErr *RowError
	require.True(t, errors.As(err, &rowErr))
	assert.Equal(t, "only", rowErr.ID)
}

func TestRank_ContractMismatch(t *testing.T) {
	p := mustValidate(t, phonesTable(), "1,1", "+,+")
	p.Weights = []float64{1}
	_, err := Rank(p)
	assert.ErrorIs(t, err, ErrWeightCountMismatch)
}

func TestNormalizeWeights(t *testing.T) {
	w, err := NormalizeWeights([]float64{1, 3})
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{0.25, 0.75}, w, 1e-15)

	_, err = NormalizeWeights([]float64{0, 0, 0})
	assert.ErrorIs(t, err, ErrDegenerateWeights)
}

func TestDenseRanks(t *testing.T) {
	tests := []struct {
		scores []float64
		want   []int
	}{
		{[]float64{0.1, 0.9, 0.5}, []int{3, 1, 2}},
		{[]float64{0.5, 0.5, 0.5}, []int{1, 2, 3}},
		{[]float64{0, 1}, []int{2, 1}},
		{[]float64{0.7}, []int{1}},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprint(tt.scores), func(t *testing.T) {
			assert.Equal(t, tt.want, denseRanks(tt.scores))
		})
	}
}
