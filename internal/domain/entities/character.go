package entities

import (
	"encoding/json"
	"strings"
)

// SavedCharacter is a favorited character persisted for one owner.
// Rows are never updated in place; they are created by a save and destroyed by a remove.
type SavedCharacter struct {
	ID             string          `json:"id"`
	OwnerID        string          `json:"owner_id"`
	Name           string          `json:"name"`
	Nickname       *string         `json:"nickname"`
	Epithet        *string         `json:"epithet"`
	EnclaveName    string          `json:"enclave_name"`
	EnclaveSummary string          `json:"enclave_summary"`
	EnclaveHook    string          `json:"enclave_hook"`
	SpiritName     *string         `json:"spirit_name"`
	SpiritSummary  *string         `json:"spirit_summary"`
	SpiritHook     *string         `json:"spirit_hook"`
	Lore           []string        `json:"lore"`
	Stats          json.RawMessage `json:"stats"`
	CreatedAt      Timestamp       `json:"created_at"`
}

// HasSpirit reports whether any spirit field is set.
func (c *SavedCharacter) HasSpirit() bool {
	return c.SpiritName != nil || c.SpiritSummary != nil || c.SpiritHook != nil
}

// Draft is the input for saving a character.
type Draft struct {
	Name           string          `json:"name"`
	Nickname       *string         `json:"nickname,omitempty"`
	Epithet        *string         `json:"epithet,omitempty"`
	EnclaveName    string          `json:"enclave_name"`
	EnclaveSummary string          `json:"enclave_summary"`
	EnclaveHook    string          `json:"enclave_hook"`
	SpiritName     *string         `json:"spirit_name,omitempty"`
	SpiritSummary  *string         `json:"spirit_summary,omitempty"`
	SpiritHook     *string         `json:"spirit_hook,omitempty"`
	Lore           []string        `json:"lore"`
	Stats          json.RawMessage `json:"stats,omitempty"`
}

// CreateRequest is a draft plus the dedupe override.
type CreateRequest struct {
	Draft
	AllowDuplicate bool `json:"allowDuplicate,omitempty"`
}

// CreateResult is the outcome of a create. When Duplicated is set, Item is nil
// and nothing was written.
type CreateResult struct {
	Item       *SavedCharacter `json:"item"`
	Duplicated bool            `json:"duplicated,omitempty"`
	Message    string          `json:"message"`
}

// Result messages returned by a create.
const (
	MessageSaved      = "Character saved to favorites"
	MessageDuplicated = "Character already in favorites"
)

// MissingFields returns the JSON names of required fields that are blank.
func (d *Draft) MissingFields() []string {
	var missing []string
	if strings.TrimSpace(d.Name) == "" {
		missing = append(missing, "name")
	}
	if strings.TrimSpace(d.EnclaveName) == "" {
		missing = append(missing, "enclave_name")
	}
	if strings.TrimSpace(d.EnclaveSummary) == "" {
		missing = append(missing, "enclave_summary")
	}
	if strings.TrimSpace(d.EnclaveHook) == "" {
		missing = append(missing, "enclave_hook")
	}
	return missing
}

// Validate returns a *ValidationError when a required field is blank.
func (d *Draft) Validate() error {
	if missing := d.MissingFields(); len(missing) > 0 {
		return &ValidationError{Fields: missing}
	}
	return nil
}

// Normalize returns a row for ownerID with every optional field set explicitly:
// blank strings become nil, lore becomes a non-nil slice without blank lines,
// and absent stats become an empty JSON object.
func (d *Draft) Normalize(ownerID string) *SavedCharacter {
	lore := make([]string, 0, len(d.Lore))
	for _, line := range d.Lore {
		if line = strings.TrimSpace(line); line != "" {
			lore = append(lore, line)
		}
	}

	stats := d.Stats
	if len(strings.TrimSpace(string(stats))) == 0 || string(stats) == "null" {
		stats = json.RawMessage(`{}`)
	}

	return &SavedCharacter{
		OwnerID:        ownerID,
		Name:           strings.TrimSpace(d.Name),
		Nickname:       optional(d.Nickname),
		Epithet:        optional(d.Epithet),
		EnclaveName:    strings.TrimSpace(d.EnclaveName),
		EnclaveSummary: strings.TrimSpace(d.EnclaveSummary),
		EnclaveHook:    strings.TrimSpace(d.EnclaveHook),
		SpiritName:     optional(d.SpiritName),
		SpiritSummary:  optional(d.SpiritSummary),
		SpiritHook:     optional(d.SpiritHook),
		Lore:           lore,
		Stats:          stats,
	}
}

// StringPtr returns a pointer to s, or nil when s is blank.
func StringPtr(s string) *string {
	return optional(&s)
}

func optional(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
