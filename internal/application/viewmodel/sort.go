package viewmodel

import (
	"fmt"
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/ersonp/enclave-favorites/internal/domain/entities"
)

// SortMode selects the order of SortedView.
type SortMode string

// Supported sort modes.
const (
	SortRecent SortMode = "recent"
	SortOldest SortMode = "oldest"
	SortAZ     SortMode = "az"
)

// SortModes lists the accepted modes in display order.
var SortModes = []SortMode{SortRecent, SortOldest, SortAZ}

// ParseSortMode converts a flag value into a SortMode. Empty means SortRecent.
func ParseSortMode(s string) (SortMode, error) {
	switch SortMode(s) {
	case "":
		return SortRecent, nil
	case SortRecent, SortOldest, SortAZ:
		return SortMode(s), nil
	default:
		return "", fmt.Errorf("unknown sort mode %q (want recent, oldest or az)", s)
	}
}

// SortedView returns the held list ordered by mode without touching the held list.
func (f *Favorites) SortedView(mode SortMode) []entities.SavedCharacter {
	return Sort(f.Items(), mode)
}

// Sort orders items in place by mode and returns them. The sort is stable.
// Missing timestamps sort as the epoch. Unknown modes sort as SortRecent.
func Sort(items []entities.SavedCharacter, mode SortMode) []entities.SavedCharacter {
	switch mode {
	case SortOldest:
		sort.SliceStable(items, func(i, j int) bool {
			return items[i].CreatedAt.SortKey() < items[j].CreatedAt.SortKey()
		})
	case SortAZ:
		// Collators are not safe for concurrent use.
		c := collate.New(language.English)
		sort.SliceStable(items, func(i, j int) bool {
			return c.CompareString(items[i].Name, items[j].Name) < 0
		})
	default:
		sort.SliceStable(items, func(i, j int) bool {
			return items[i].CreatedAt.SortKey() > items[j].CreatedAt.SortKey()
		})
	}
	return items
}
