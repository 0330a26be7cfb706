package analysis

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strings"
)

type wireResult struct {
	Score           *float64         `json:"score"`
	ATSScore        *float64         `json:"ats_score"`
	Metrics         *Metrics         `json:"metrics"`
	Recommendations []Recommendation `json:"recommendations"`
	KeywordAnalysis *KeywordAnalysis `json:"keywordAnalysis"`
	FactorScores    FactorScores     `json:"factorScores"`
}

// Decode parses a scoring service response body.
//
// A body with a non-empty "error" field yields *ServiceError. Anything that is
// not a JSON object carrying at least a score and metrics wraps
// ErrMalformedPayload. The legacy "ats_score" key is read when "score" is
// missing.
func Decode(body []byte) (Result, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return Result{}, fmt.Errorf("%w: body is not a JSON object", ErrMalformedPayload)
	}
	if msg, ok := ErrorMessage(trimmed); ok {
		return Result{}, &ServiceError{Message: msg}
	}

	var wire wireResult
	if err := json.Unmarshal(trimmed, &wire); err != nil {
		return Result{}, fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}

	score := wire.Score
	if score == nil {
		score = wire.ATSScore
	}
	if score == nil {
		return Result{}, fmt.Errorf("%w: missing score", ErrMalformedPayload)
	}
	if wire.Metrics == nil {
		return Result{}, fmt.Errorf("%w: missing metrics", ErrMalformedPayload)
	}

	res := Result{
		Score:           int(math.Round(*score)),
		Metrics:         *wire.Metrics,
		Recommendations: wire.Recommendations,
		KeywordAnalysis: wire.KeywordAnalysis,
		FactorScores:    wire.FactorScores,
	}
	if err := res.Validate(); err != nil {
		return Result{}, err
	}
	return res, nil
}

// ErrorMessage extracts a non-empty "error" field from a JSON object body.
// Non-string error values are reported by their JSON text.
func ErrorMessage(body []byte) (string, bool) {
	var probe map[string]json.RawMessage
	if err := json.Unmarshal(body, &probe); err != nil {
		return "", false
	}
	raw, ok := probe["error"]
	if !ok || isNull(raw) {
		return "", false
	}
	var msg string
	if err := json.Unmarshal(raw, &msg); err != nil {
		var nested struct {
			Message string `json:"message"`
		}
		if err := json.Unmarshal(raw, &nested); err == nil && nested.Message != "" {
			return nested.Message, true
		}
		msg = string(raw)
	}
	msg = strings.TrimSpace(msg)
	if msg == "" || msg == "false" {
		return "", false
	}
	return msg, true
}

// UnmarshalJSON accepts either a recommendation object or a bare string.
func (r *Recommendation) UnmarshalJSON(data []byte) error {
	var text string
	if err := json.Unmarshal(data, &text); err == nil {
		*r = Recommendation{Category: "general", Priority: PriorityMedium, Recommendation: text}
		return nil
	}
	type plain Recommendation
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*r = Recommendation(p)
	return nil
}
