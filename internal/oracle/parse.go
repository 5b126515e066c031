package oracle

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/abhisek/interviewd/internal/llm"
	"github.com/tidwall/gjson"
)

// extractObject returns the JSON object carried by a provider response.
// Providers without native structured output hand back the raw text as a
// JSON string, sometimes wrapped in prose or a fenced block.
func extractObject(content json.RawMessage) (json.RawMessage, error) {
	if !gjson.ValidBytes(content) {
		return nil, fmt.Errorf("response is not JSON")
	}
	doc := gjson.ParseBytes(content)
	if doc.IsObject() {
		return content, nil
	}
	if doc.Type != gjson.String {
		return nil, fmt.Errorf("response is a %s, want an object", doc.Type)
	}

	text := doc.Str
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start < 0 || end <= start {
		return nil, fmt.Errorf("no JSON object in response text")
	}
	obj := text[start : end+1]
	if !gjson.Valid(obj) || !gjson.Parse(obj).IsObject() {
		return nil, fmt.Errorf("malformed JSON object in response text")
	}
	return json.RawMessage(obj), nil
}

// decode extracts, schema-checks and strictly decodes a provider response.
func decode(schema *llm.Schema, content json.RawMessage, out any) error {
	obj, err := extractObject(content)
	if err != nil {
		return &llm.ErrInvalidResponse{Content: content, Err: err}
	}
	if err := llm.ValidateJSON(schema, obj); err != nil {
		return err
	}

	dec := json.NewDecoder(bytes.NewReader(obj))
	dec.DisallowUnknownFields()
	if err := dec.Decode(out); err != nil {
		return &llm.ErrInvalidResponse{Content: obj, Err: fmt.Errorf("decode %s: %w", schema.Name, err)}
	}
	return nil
}
