package handlers

import (
	"context"
	"fmt"
	"os"

	"github.com/ersonp/enclave-favorites/internal/domain/ports"
	"github.com/ersonp/enclave-favorites/internal/domain/services"
	"github.com/ersonp/enclave-favorites/internal/infrastructure/parsers"
)

// ImportHandler handles importing favorites from files.
type ImportHandler struct {
	service *services.ImportService
	owners  ports.OwnerProvider
}

// NewImportHandler creates a new import handler.
func NewImportHandler(service *services.ImportService, owners ports.OwnerProvider) *ImportHandler {
	return &ImportHandler{
		service: service,
		owners:  owners,
	}
}

// ImportOptions controls import behavior.
type ImportOptions struct {
	Format         string // "json", "csv", or "auto"
	DryRun         bool   // Validate without saving
	AllowDuplicate bool   // Save rows whose dedupe key already exists
}

// ImportResult contains the result of an import operation.
type ImportResult struct {
	Imported   int
	Duplicated int
	Errors     []services.ImportError
}

// Handle imports favorites from a file.
func (h *ImportHandler) Handle(ctx context.Context, filePath string, opts ImportOptions) (*ImportResult, error) {
	// Get parser
	var (
		parser parsers.Parser
		err    error
	)
	if opts.Format == "" || opts.Format == "auto" {
		parser, err = parsers.ForFile(filePath)
	} else {
		parser, err = parsers.ForFormat(opts.Format)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s", err, filePath)
	}

	// Open file
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("opening file: %w", err)
	}
	defer file.Close()

	// Parse drafts
	drafts, err := parser.Parse(file)
	if err != nil {
		return nil, fmt.Errorf("parsing file: %w", err)
	}

	if len(drafts) == 0 {
		return &ImportResult{}, nil
	}

	ownerID, err := h.owners.OwnerID(ctx)
	if err != nil {
		return nil, fmt.Errorf("resolving owner: %w", err)
	}

	serviceResult, err := h.service.Import(ctx, ownerID, drafts, services.ImportOptions{
		DryRun:         opts.DryRun,
		AllowDuplicate: opts.AllowDuplicate,
	})
	if err != nil {
		return nil, err
	}

	return &ImportResult{
		Imported:   serviceResult.Imported,
		Duplicated: serviceResult.Duplicated,
		Errors:     serviceResult.Errors,
	}, nil
}
