package schema

import (
	"bytes"
	"fmt"

	"gopkg.in/yaml.v3"
)

// ParsePlan decodes a Plan document. Unknown top-level keys are tolerated;
// type mismatches are parse errors.
func ParsePlan(doc []byte) (*Plan, error) {
	var p Plan
	if err := yaml.Unmarshal(doc, &p); err != nil {
		return nil, fmt.Errorf("parse plan yaml: %w", err)
	}
	return &p, nil
}

// ParseHistory decodes a History document.
func ParseHistory(doc []byte) (*History, error) {
	var h History
	if err := yaml.Unmarshal(doc, &h); err != nil {
		return nil, fmt.Errorf("parse history yaml: %w", err)
	}
	return &h, nil
}

// SerializePlan encodes a Plan back to YAML.
func SerializePlan(p *Plan) ([]byte, error) {
	return marshalYAML(p)
}

// SerializeHistory encodes a History back to YAML.
func SerializeHistory(h *History) ([]byte, error) {
	return marshalYAML(h)
}

func marshalYAML(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return nil, fmt.Errorf("serialize yaml: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("serialize yaml: %w", err)
	}
	return buf.Bytes(), nil
}
