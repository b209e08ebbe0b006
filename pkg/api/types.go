// Package api holds the request and response types of the evaluation
// service.
package api

import (
	"bytes"
	"encoding/json"

	"github.com/bytedance/sonic"
)

const (
	EvaluatePath = "/evaluate"
	HealthPath   = "/health"

	ContentEncodingZstd = "zstd"
)

// StdResponse represents the standardized response structure
type StdResponse[T any] struct {
	Body  T       `json:"body"`
	Error *string `json:"error,omitempty"`
	Kind  string  `json:"kind,omitempty"` // error taxonomy member, e.g. "InvalidImpact"
}

// EvaluateRequest is a decision table plus one weight and impact per
// criterion. Header[0] names the identifier column.
//
// Weights and impacts are sent either as JSON arrays or, like the command
// line arguments, as comma-separated strings ("0.25,0.25", "-,+"). A string
// lands in WeightsText or ImpactsText and takes precedence over the array.
type EvaluateRequest struct {
	Header  []string   `json:"header"`
	Rows    [][]string `json:"rows"`
	Weights []float64  `json:"weights"`
	Impacts []string   `json:"impacts"`

	WeightsText string `json:"-"`
	ImpactsText string `json:"-"`
}

type evaluateRequestWire struct {
	Header  []string        `json:"header"`
	Rows    [][]string      `json:"rows"`
	Weights json.RawMessage `json:"weights"`
	Impacts json.RawMessage `json:"impacts"`
}

func (r EvaluateRequest) MarshalJSON() ([]byte, error) {
	out := struct {
		Header  []string   `json:"header"`
		Rows    [][]string `json:"rows"`
		Weights any        `json:"weights"`
		Impacts any        `json:"impacts"`
	}{Header: r.Header, Rows: r.Rows, Weights: r.Weights, Impacts: r.Impacts}

	if r.WeightsText != "" {
		out.Weights = r.WeightsText
	}
	if r.ImpactsText != "" {
		out.Impacts = r.ImpactsText
	}
	return sonic.Marshal(out)
}

func (r *EvaluateRequest) UnmarshalJSON(data []byte) error {
	var wire evaluateRequestWire
	if err := sonic.Unmarshal(data, &wire); err != nil {
		return err
	}

	*r = EvaluateRequest{Header: wire.Header, Rows: wire.Rows}
	if err := decodeList(wire.Weights, &r.Weights, &r.WeightsText); err != nil {
		return err
	}
	return decodeList(wire.Impacts, &r.Impacts, &r.ImpactsText)
}

// decodeList fills text for a JSON string and values for anything else.
func decodeList[T any](raw json.RawMessage, values *[]T, text *string) error {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil
	}
	if raw[0] == '"' {
		return sonic.Unmarshal(raw, text)
	}
	return sonic.Unmarshal(raw, values)
}

type Ranking struct {
	Alternative string   `json:"alternative"`
	Score       *float64 `json:"score"` // null when undefined
	Rank        int      `json:"rank"`
}

// EvaluateResponse lists rankings in input row order.
type EvaluateResponse struct {
	Columns    []string  `json:"columns"`
	Rankings   []Ranking `json:"rankings"`
	IdealBest  []float64 `json:"idealBest"`
	IdealWorst []float64 `json:"idealWorst"`
}

type HealthResponse struct {
	Status string `json:"status"`
}
