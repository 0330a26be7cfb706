package analysis

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// UnmarshalJSON decodes a JSON object while preserving key order.
func (f *FactorScores) UnmarshalJSON(data []byte) error {
	if isNull(data) {
		*f = nil
		return nil
	}
	out := FactorScores{}
	err := walkObject(data, func(key string, raw json.RawMessage) error {
		var v float64
		if err := json.Unmarshal(raw, &v); err != nil {
			return fmt.Errorf("factor %q: %w", key, err)
		}
		out = upsertFactor(out, FactorScore{Name: key, Score: v})
		return nil
	})
	if err != nil {
		return err
	}
	*f = out
	return nil
}

// MarshalJSON encodes factors as a JSON object in slice order.
func (f FactorScores) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, fs := range f {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := writeEntry(&buf, fs.Name, fs.Score); err != nil {
			return nil, err
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes a JSON object while preserving key order.
func (k *IndustryKeywords) UnmarshalJSON(data []byte) error {
	if isNull(data) {
		*k = nil
		return nil
	}
	out := IndustryKeywords{}
	err := walkObject(data, func(key string, raw json.RawMessage) error {
		var words []string
		if !isNull(raw) {
			if err := json.Unmarshal(raw, &words); err != nil {
				return fmt.Errorf("industry %q: %w", key, err)
			}
		}
		if words == nil {
			words = []string{}
		}
		out = upsertIndustry(out, IndustryKeyword{Industry: key, Keywords: words})
		return nil
	})
	if err != nil {
		return err
	}
	*k = out
	return nil
}

// MarshalJSON encodes industries as a JSON object in slice order.
func (k IndustryKeywords) MarshalJSON() ([]byte, error) {
	if k == nil {
		return []byte("null"), nil
	}
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, ik := range k {
		if i > 0 {
			buf.WriteByte(',')
		}
		words := ik.Keywords
		if words == nil {
			words = []string{}
		}
		if err := writeEntry(&buf, ik.Industry, words); err != nil {
			return nil, err
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func walkObject(data []byte, fn func(key string, raw json.RawMessage) error) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("expected JSON object, got %v", tok)
	}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := tok.(string)
		if !ok {
			return fmt.Errorf("expected object key, got %v", tok)
		}
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return fmt.Errorf("value for %q: %w", key, err)
		}
		if err := fn(key, raw); err != nil {
			return err
		}
	}
	_, err = dec.Token()
	return err
}

func writeEntry(buf *bytes.Buffer, key string, value any) error {
	k, err := json.Marshal(key)
	if err != nil {
		return err
	}
	v, err := json.Marshal(value)
	if err != nil {
		return err
	}
	buf.Write(k)
	buf.WriteByte(':')
	buf.Write(v)
	return nil
}

// Duplicate keys keep the first position and the last value, like a JS object.
func upsertFactor(list FactorScores, fs FactorScore) FactorScores {
	for i := range list {
		if list[i].Name == fs.Name {
			list[i].Score = fs.Score
			return list
		}
	}
	return append(list, fs)
}

func upsertIndustry(list IndustryKeywords, ik IndustryKeyword) IndustryKeywords {
	for i := range list {
		if list[i].Industry == ik.Industry {
			list[i].Keywords = ik.Keywords
			return list
		}
	}
	return append(list, ik)
}

func isNull(data []byte) bool {
	return bytes.Equal(bytes.TrimSpace(data), []byte("null"))
}
