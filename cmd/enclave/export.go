package main

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ersonp/enclave-favorites/internal/application/viewmodel"
	"github.com/ersonp/enclave-favorites/internal/domain/entities"
	"github.com/ersonp/enclave-favorites/internal/infrastructure/parsers"
)

type exportFlags struct {
	format   string
	output   string
	sortMode string
}

func newExportCmd() *cobra.Command {
	var flags exportFlags

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export favorites",
		Long:  "Writes the current owner's favorites as text blocks, JSON, CSV, or a markdown table. JSON and CSV exports can be imported again.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(cmd, flags)
		},
	}

	cmd.Flags().StringVarP(&flags.format, "format", "f", "block", "Output format (block, json, csv, markdown)")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "Output file (default stdout)")
	cmd.Flags().StringVarP(&flags.sortMode, "sort", "s", string(viewmodel.SortRecent), "Sort order (recent, oldest, az)")

	return cmd
}

func runExport(cmd *cobra.Command, flags exportFlags) error {
	if !contains(validFormats, flags.format) {
		return fmt.Errorf("invalid format %q (must be one of: %s)", flags.format, strings.Join(validFormats, ", "))
	}
	mode, err := viewmodel.ParseSortMode(flags.sortMode)
	if err != nil {
		return err
	}

	ctx := cmd.Context()

	return withDeps(ctx, func(d *Deps) error {
		vm := d.ViewModel()
		if err := vm.Load(ctx); err != nil {
			return fmt.Errorf("loading favorites: %w", err)
		}

		var buf bytes.Buffer
		if err := writeExport(&buf, vm.SortedView(mode), flags.format); err != nil {
			return err
		}

		if flags.output == "" {
			_, err := os.Stdout.Write(buf.Bytes())
			return err
		}
		if err := os.WriteFile(flags.output, buf.Bytes(), 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", flags.output, err)
		}
		fmt.Printf("Exported %d favorites to %s\n", len(vm.Items()), flags.output)
		return nil
	})
}

// writeExport renders items in format.
func writeExport(w io.Writer, items []entities.SavedCharacter, format string) error {
	switch format {
	case "json":
		return writeJSON(w, items)
	case "csv":
		return writeCSV(w, items)
	case "markdown":
		return writeMarkdown(w, items)
	case "block":
		return writeBlocks(w, items)
	default:
		return fmt.Errorf("invalid format %q", format)
	}
}

func writeBlocks(w io.Writer, items []entities.SavedCharacter) error {
	blocks := make([]string, len(items))
	for i := range items {
		blocks[i] = viewmodel.FormatFullBlock(&items[i])
	}
	if len(blocks) == 0 {
		return nil
	}
	_, err := fmt.Fprintln(w, strings.Join(blocks, "\n\n"))
	return err
}

func writeJSON(w io.Writer, items []entities.SavedCharacter) error {
	if items == nil {
		items = []entities.SavedCharacter{}
	}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(struct {
		Items []entities.SavedCharacter `json:"items"`
	}{Items: items})
}

func writeCSV(w io.Writer, items []entities.SavedCharacter) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(parsers.Columns); err != nil {
		return fmt.Errorf("writing CSV header: %w", err)
	}

	for i := range items {
		c := &items[i]
		stats, err := compactStats(c.Stats)
		if err != nil {
			return fmt.Errorf("favorite %s: %w", c.ID, err)
		}
		record := []string{
			c.Name, deref(c.Nickname), deref(c.Epithet),
			c.EnclaveName, c.EnclaveSummary, c.EnclaveHook,
			deref(c.SpiritName), deref(c.SpiritSummary), deref(c.SpiritHook),
			strings.Join(c.Lore, parsers.LoreSeparator), stats,
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("writing CSV record: %w", err)
		}
	}

	writer.Flush()
	return writer.Error()
}

func compactStats(raw json.RawMessage) (string, error) {
	if len(raw) == 0 {
		return "", nil
	}
	var buf bytes.Buffer
	if err := json.Compact(&buf, raw); err != nil {
		return "", fmt.Errorf("compacting stats: %w", err)
	}
	return buf.String(), nil
}

func writeMarkdown(w io.Writer, items []entities.SavedCharacter) error {
	var b strings.Builder
	b.WriteString("| Name | Enclave | Spirit | Saved |\n")
	b.WriteString("| --- | --- | --- | --- |\n")

	for i := range items {
		c := &items[i]
		saved := ""
		if !c.CreatedAt.IsZero() {
			saved = c.CreatedAt.UTC().Format("2006-01-02")
		}
		fmt.Fprintf(&b, "| %s | %s | %s | %s |\n",
			escapeMarkdown(c.Name), escapeMarkdown(c.EnclaveName), escapeMarkdown(deref(c.SpiritName)), saved)
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func escapeMarkdown(s string) string {
	s = strings.ReplaceAll(s, "|", `\|`)
	return strings.ReplaceAll(s, "\n", " ")
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func contains(values []string, v string) bool {
	for _, value := range values {
		if value == v {
			return true
		}
	}
	return false
}
