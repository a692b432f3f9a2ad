package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/sells-group/topsis-cli/internal/config"
	"github.com/sells-group/topsis-cli/internal/tabular"
	"github.com/sells-group/topsis-cli/internal/topsis"
)

// RankHandler serves ranking requests.
type RankHandler struct {
	metrics *Metrics
	log     *zap.Logger
}

// NewRankHandler creates a RankHandler.
func NewRankHandler(m *Metrics, log *zap.Logger) *RankHandler {
	return &RankHandler{metrics: m, log: log}
}

// RankRequest is the JSON body of POST /api/v1/rank. Row cells may be JSON
// strings or numbers; the first cell of each row is the identifier.
type RankRequest struct {
	Columns []string `json:"columns"`
	Rows    [][]any  `json:"rows"`
	Weights string   `json:"weights"`
	Impacts string   `json:"impacts"`
}

// RankedRow is one alternative in a RankResponse.
type RankedRow struct {
	ID     string    `json:"id"`
	Values []float64 `json:"values"`
	Score  float64   `json:"score"`
	Rank   int       `json:"rank"`
}

// RankResponse is the JSON result of POST /api/v1/rank.
type RankResponse struct {
	Columns    []string    `json:"columns"`
	Rows       []RankedRow `json:"rows"`
	Weights    []float64   `json:"weights"`
	IdealBest  []float64   `json:"ideal_best"`
	IdealWorst []float64   `json:"ideal_worst"`
}

// Rank ranks a table posted as JSON.
func (h *RankHandler) Rank(w http.ResponseWriter, r *http.Request) {
	dec := json.NewDecoder(r.Body)
	dec.UseNumber()

	var req RankRequest
	if err := dec.Decode(&req); err != nil {
		writeBodyError(w, err)
		return
	}

	raw := topsis.RawTable{Header: req.Columns, Rows: make([][]string, len(req.Rows))}
	for i, row := range req.Rows {
		cells := make([]string, len(row))
		for j, v := range row {
			cells[j] = cellText(v)
		}
		raw.Rows[i] = cells
	}

	res, ok := h.run(w, raw, req.Weights, req.Impacts)
	if !ok {
		return
	}

	resp := RankResponse{
		Columns:    res.Header,
		Rows:       make([]RankedRow, len(res.Rows)),
		Weights:    res.Outcome.Weights,
		IdealBest:  res.Outcome.IdealBest,
		IdealWorst: res.Outcome.IdealWorst,
	}
	for i, row := range res.Rows {
		resp.Rows[i] = RankedRow{ID: row.ID, Values: row.Values, Score: row.Score, Rank: row.Rank}
	}
	writeJSON(w, http.StatusOK, resp)
}

// RankCSV ranks a delimited-text table posted as the request body and
// returns the result table in the same format. Weights and impacts come
// from the query string; "delimiter" optionally overrides the comma.
func (h *RankHandler) RankCSV(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	delim, err := config.Delimiter(q.Get("delimiter"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "delimiter " + err.Error()})
		return
	}

	raw, err := tabular.ReadCSV(r.Context(), r.Body, tabular.CSVOptions{Delimiter: delim, Encoding: q.Get("encoding")})
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeBodyError(w, err)
			return
		}
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	res, ok := h.run(w, raw, q.Get("weights"), q.Get("impacts"))
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := tabular.WriteCSV(&buf, res, delim); err != nil {
		h.log.Error("rank csv: encode result", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to encode result"})
		return
	}
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

// run executes the ranking pipeline and writes the error response on failure.
func (h *RankHandler) run(w http.ResponseWriter, raw topsis.RawTable, weights, impacts string) (*topsis.ResultTable, bool) {
	start := time.Now()
	res, err := topsis.Run(raw, weights, impacts)
	elapsed := time.Since(start).Seconds()
	if err != nil {
		kind := topsis.Kind(err)
		h.metrics.observe(kind, elapsed, 0)
		if kind == "internal" {
			h.log.Error("rank: internal error", zap.Error(err))
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
			return nil, false
		}
		writeJSON(w, http.StatusUnprocessableEntity, map[string]string{"error": err.Error(), "kind": kind})
		return nil, false
	}
	h.metrics.observe("ok", elapsed, len(res.Rows))
	return res, true
}

func cellText(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case json.Number:
		return t.String()
	case bool:
		return strconv.FormatBool(t)
	default:
		b, _ := json.Marshal(t)
		return string(b)
	}
}

func writeBodyError(w http.ResponseWriter, err error) {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		writeJSON(w, http.StatusRequestEntityTooLarge, map[string]string{"error": "request body too large"})
		return
	}
	writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}
