package plan

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrMalformed is returned when a persisted document does not parse as a
// plan list.
var ErrMalformed = errors.New("malformed plan document")

// Encode serializes the ordered plan list as the persisted JSON document.
func Encode(plans []Plan) ([]byte, error) {
	if plans == nil {
		plans = []Plan{}
	}
	data, err := json.Marshal(plans)
	if err != nil {
		return nil, fmt.Errorf("failed to encode plans: %w", err)
	}
	return data, nil
}

// Decode parses a persisted document. Only the shape is checked: a JSON
// array of records with well-typed fields and unique, non-blank ids. Field
// ranges are left to Validate so stored records are never rejected for them.
func Decode(data []byte) ([]Plan, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, fmt.Errorf("%w: expected a JSON array", ErrMalformed)
	}

	var plans []Plan
	if err := json.Unmarshal(trimmed, &plans); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	seen := make(map[string]struct{}, len(plans))
	for i, p := range plans {
		if strings.TrimSpace(p.ID) == "" {
			return nil, fmt.Errorf("%w: record %d: id is required", ErrMalformed, i)
		}
		if _, dup := seen[p.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate id %q", ErrMalformed, p.ID)
		}
		seen[p.ID] = struct{}{}
	}
	if plans == nil {
		plans = []Plan{}
	}
	return plans, nil
}

// ParseDocument decodes a single plan written as YAML or JSON and validates it.
func ParseDocument(data []byte) (Plan, error) {
	p, err := ParseDraft(data)
	if err != nil {
		return Plan{}, err
	}
	if err := p.Validate(); err != nil {
		return Plan{}, err
	}
	return p, nil
}

// ParseDraft decodes a single plan without validating it, so the caller can
// fill in fields such as a generated id first. Unknown fields are rejected.
func ParseDraft(data []byte) (Plan, error) {
	var p Plan
	if len(bytes.TrimSpace(data)) == 0 {
		return p, fmt.Errorf("%w: empty document", ErrInvalid)
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&p); err != nil {
		return Plan{}, fmt.Errorf("failed to parse plan document: %w", err)
	}
	return p, nil
}
