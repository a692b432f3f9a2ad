package topsis

import (
	"cmp"
	"slices"

	"github.com/rotisserie/eris"
	"gonum.org/v1/gonum/floats"
)

// Outcome is the result of ranking a Problem. Slices indexed by row are
// aligned with the table's row order; slices indexed by criterion with its
// column order.
type Outcome struct {
	// Weights are the normalized weights (summing to 1).
	Weights []float64
	// IdealBest and IdealWorst are the weighted-normalized ideal points.
	IdealBest  []float64
	IdealWorst []float64
	// SeparationBest and SeparationWorst are the Euclidean distances of each
	// row to IdealBest and IdealWorst.
	SeparationBest  []float64
	SeparationWorst []float64
	// Scores are the full-precision closeness scores in [0, 1].
	Scores []float64
	// Ranks are 1-based; 1 is the highest score. Equal scores keep input order.
	Ranks []int
}

// NormalizeWeights returns weights divided by their sum.
func NormalizeWeights(weights []float64) ([]float64, error) {
	sum := floats.Sum(weights)
	if sum == 0 {
		return nil, ErrDegenerateWeights
	}
	out := append([]float64(nil), weights...)
	floats.Scale(1/sum, out)
	return out, nil
}

// Rank runs the TOPSIS pipeline on p: vector normalization, weighting, ideal
// points, separation measures, closeness score and rank. It allocates every
// derived matrix and leaves p untouched.
func Rank(p *Problem) (*Outcome, error) {
	t := p.Table
	n, m := t.Len(), t.NumCriteria()
	if len(p.Weights) != m {
		return nil, &CountMismatchError{Got: len(p.Weights), Want: m}
	}
	if len(p.Impacts) != m {
		return nil, eris.Wrapf(ErrImpactFormat, "got %d impacts for %d criteria", len(p.Impacts), m)
	}

	w, err := NormalizeWeights(p.Weights)
	if err != nil {
		return nil, err
	}

	v, err := weightedMatrix(t, w)
	if err != nil {
		return nil, err
	}

	best, worst := idealPoints(v, p.Impacts)

	out := &Outcome{
		Weights:         w,
		IdealBest:       best,
		IdealWorst:      worst,
		SeparationBest:  make([]float64, n),
		SeparationWorst: make([]float64, n),
		Scores:          make([]float64, n),
	}
	for i, row := range v {
		sp := floats.Distance(row, best, 2)
		sm := floats.Distance(row, worst, 2)
		if sp+sm == 0 {
			return nil, &RowError{Err: ErrUndefinedScore, Row: i, ID: t.Row(i).ID}
		}
		out.SeparationBest[i] = sp
		out.SeparationWorst[i] = sm
		out.Scores[i] = sm / (sp + sm)
	}
	out.Ranks = denseRanks(out.Scores)

	return out, nil
}

// weightedMatrix returns V = (x_ij / ||x_j||) * w_j in row-major order.
func weightedMatrix(t DecisionTable, w []float64) ([][]float64, error) {
	criteria := t.Criteria()
	v := make([][]float64, t.Len())
	for i := range v {
		v[i] = make([]float64, len(w))
	}
	for j := range w {
		col := t.Column(j)
		norm := floats.Norm(col, 2)
		if norm == 0 {
			return nil, &CriterionError{Err: ErrZeroNorm, Index: j, Column: criteria[j]}
		}
		for i, x := range col {
			v[i][j] = x / norm * w[j]
		}
	}
	return v, nil
}

// idealPoints picks per-criterion extremes of v, swapping them for
// criteria that are minimized.
func idealPoints(v [][]float64, impacts []Impact) (best, worst []float64) {
	best = make([]float64, len(impacts))
	worst = make([]float64, len(impacts))
	col := make([]float64, len(v))
	for j, imp := range impacts {
		for i := range v {
			col[i] = v[i][j]
		}
		hi, lo := floats.Max(col), floats.Min(col)
		if imp == Minimize {
			hi, lo = lo, hi
		}
		best[j], worst[j] = hi, lo
	}
	return best, worst
}

// denseRanks ranks scores descending with a stable sort, so equal scores are
// ranked in input order.
func denseRanks(scores []float64) []int {
	order := make([]int, len(scores))
	for i := range order {
		order[i] = i
	}
	slices.SortStableFunc(order, func(a, b int) int {
		return cmp.Compare(scores[b], scores[a])
	})
	ranks := make([]int, len(scores))
	for pos, i := range order {
		ranks[i] = pos + 1
	}
	return ranks
}
