package parsers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
)

// JSONParser parses drafts from JSON. It accepts a bare array or an object
// with an "items" array, which is the shape produced by a JSON export.
type JSONParser struct{}

// Parse reads JSON from the reader and returns parsed drafts.
func (p *JSONParser) Parse(r io.Reader) ([]RawDraft, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading JSON: %w", err)
	}

	var drafts []RawDraft
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '{' {
		var wrapped struct {
			Items []RawDraft `json:"items"`
		}
		if err := json.Unmarshal(trimmed, &wrapped); err != nil {
			return nil, fmt.Errorf("parsing JSON: %w", err)
		}
		drafts = wrapped.Items
	} else if err := json.Unmarshal(trimmed, &drafts); err != nil {
		return nil, fmt.Errorf("parsing JSON: %w", err)
	}

	if drafts == nil {
		drafts = []RawDraft{}
	}

	// Set line numbers (array index + 1, 1-indexed)
	for i := range drafts {
		drafts[i].LineNum = i + 1
	}

	return drafts, nil
}
