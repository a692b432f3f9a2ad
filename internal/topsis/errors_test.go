package topsis

import (
	"errors"
	"testing"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrors_SurviveBoundaryWrapping(t *testing.T) {
	_, err := Validate(RawTable{Header: []string{"id", "a"}, Rows: [][]string{{"x", "1"}}}, "1", "+")
	require.Error(t, err)

	wrapped := eris.Wrap(err, "job: rank")
	assert.True(t, errors.Is(wrapped, ErrShape))
	assert.True(t, IsInputError(wrapped))
	assert.Equal(t, "shape", Kind(wrapped))
	assert.Equal(t, "job: rank: input must contain at least 3 columns (got 2): topsis: invalid table shape", wrapped.Error())
}

func TestErrors_TypedWrappersSurviveBoundaryWrapping(t *testing.T) {
	tests := []struct {
		name string
		err  error
		kind string
	}{
		{"cell", &CellError{Row: 2, Col: 3, Column: "b", Value: "oops"}, "non_numeric_criterion"},
		{"count", &CountMismatchError{Got: 3, Want: 2}, "weight_count_mismatch"},
		{"criterion", &CriterionError{Err: ErrZeroNorm, Index: 1, Column: "b"}, "zero_norm"},
		{"row", &RowError{Err: ErrUndefinedScore, Row: 0, ID: "x"}, "undefined_score"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wrapped := eris.Wrapf(tt.err, "job: rank %s", "in.csv")
			assert.Equal(t, tt.kind, Kind(wrapped))
			assert.Contains(t, wrapped.Error(), tt.err.Error())
		})
	}

	var cell *CellError
	require.True(t, errors.As(eris.Wrap(&CellError{Row: 1, Col: 2}, "read"), &cell))
	assert.Equal(t, 1, cell.Row)
}

func TestKind_Internal(t *testing.T) {
	assert.Equal(t, "internal", Kind(eris.New("disk full")))
	assert.Equal(t, "internal", Kind(eris.Wrapf(ErrLengthMismatch, "%d rows", 3)))
	assert.False(t, IsInputError(ErrLengthMismatch))
	assert.False(t, IsDegenerate(ErrLengthMismatch))
}
