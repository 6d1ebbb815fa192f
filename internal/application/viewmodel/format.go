package viewmodel

import (
	"strings"

	"github.com/ersonp/enclave-favorites/internal/domain/entities"
)

// FormatFullBlock renders c as the plain-text block used for clipboard export.
// Absent fields produce no line; the spirit and lore sections appear only when they have content.
func FormatFullBlock(c *entities.SavedCharacter) string {
	var lines []string

	lines = appendIf(lines, "", c.Name)
	lines = appendIf(lines, "", deref(c.Epithet))
	if nick := deref(c.Nickname); nick != "" {
		lines = append(lines, `"`+nick+`"`)
	}

	lines = append(lines, "")
	lines = appendIf(lines, "Enclave: ", c.EnclaveName)
	lines = appendIf(lines, "- Summary: ", c.EnclaveSummary)
	lines = appendIf(lines, "- Hook: ", c.EnclaveHook)

	if c.HasSpirit() {
		lines = append(lines, "")
		lines = appendIf(lines, "Spirit: ", deref(c.SpiritName))
		lines = appendIf(lines, "- Summary: ", deref(c.SpiritSummary))
		lines = appendIf(lines, "- Hook: ", deref(c.SpiritHook))
	}

	if len(c.Lore) > 0 {
		lines = append(lines, "", "Character Lore:")
		for _, line := range c.Lore {
			lines = append(lines, "- "+line)
		}
	}

	return strings.Join(lines, "\n")
}

func appendIf(lines []string, prefix, value string) []string {
	if value == "" {
		return lines
	}
	return append(lines, prefix+value)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
