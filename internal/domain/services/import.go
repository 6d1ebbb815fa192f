package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/ersonp/enclave-favorites/internal/domain/entities"
	"github.com/ersonp/enclave-favorites/internal/infrastructure/parsers"
)

// ImportOptions controls import behavior.
type ImportOptions struct {
	DryRun         bool // Validate without saving
	AllowDuplicate bool // Save rows even when the dedupe key already exists
}

// ImportError represents an error for a specific draft during import.
type ImportError struct {
	Line    int    // Line number (1-indexed, 0 if unknown)
	Name    string // Character name, if known
	Message string // Human-readable error message
}

func (e ImportError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d: %s", e.Line, e.Message)
	}
	return e.Message
}

// ImportResult contains the result of an import operation.
type ImportResult struct {
	Imported   int
	Duplicated int
	Errors     []ImportError
}

// ImportService saves parsed drafts through the favorites store client, one at a time.
type ImportService struct {
	favorites *FavoritesService
}

// NewImportService creates a new import service.
func NewImportService(favorites *FavoritesService) *ImportService {
	return &ImportService{favorites: favorites}
}

// Import validates every draft first, then creates the valid ones for ownerID.
// A store failure aborts the import; validation failures are collected per line.
func (s *ImportService) Import(ctx context.Context, ownerID string, raw []parsers.RawDraft, opts ImportOptions) (*ImportResult, error) {
	result := &ImportResult{}

	valid := make([]parsers.RawDraft, 0, len(raw))
	for i := range raw {
		lineNum := raw[i].LineNum
		if lineNum == 0 {
			lineNum = i + 1
		}
		if err := raw[i].Draft.Validate(); err != nil {
			result.Errors = append(result.Errors, ImportError{
				Line:    lineNum,
				Name:    raw[i].Draft.Name,
				Message: err.Error(),
			})
			continue
		}
		valid = append(valid, raw[i])
	}

	if opts.DryRun {
		result.Imported = len(valid)
		return result, nil
	}

	for i := range valid {
		// Sequential: each dedupe lookup must see rows saved earlier in this loop.
		created, err := s.favorites.Create(ctx, ownerID, valid[i].Draft, opts.AllowDuplicate)
		if err != nil {
			var verr *entities.ValidationError
			if errors.As(err, &verr) {
				result.Errors = append(result.Errors, ImportError{Line: valid[i].LineNum, Name: valid[i].Draft.Name, Message: err.Error()})
				continue
			}
			return result, fmt.Errorf("importing %q: %w", valid[i].Draft.Name, err)
		}
		if created.Duplicated {
			result.Duplicated++
			continue
		}
		result.Imported++
	}

	return result, nil
}
