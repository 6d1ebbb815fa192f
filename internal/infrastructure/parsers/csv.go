package parsers

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/ersonp/enclave-favorites/internal/domain/entities"
)

// Columns is the CSV header written by exports and understood by CSVParser.
var Columns = []string{
	"name", "nickname", "epithet",
	"enclave_name", "enclave_summary", "enclave_hook",
	"spirit_name", "spirit_summary", "spirit_hook",
	"lore", "stats",
}

// LoreSeparator joins lore lines inside a single CSV cell.
const LoreSeparator = "\n"

// CSVParser parses drafts from CSV format.
type CSVParser struct{}

// Parse reads CSV from the reader and returns parsed drafts.
// Required columns: name, enclave_name, enclave_summary, enclave_hook.
func (p *CSVParser) Parse(r io.Reader) ([]RawDraft, error) {
	reader := csv.NewReader(r)

	colIndex, err := p.readHeader(reader)
	if err != nil {
		return nil, err
	}

	return p.readRecords(reader, colIndex)
}

// readHeader reads and validates the CSV header row.
func (p *CSVParser) readHeader(reader *csv.Reader) (map[string]int, error) {
	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("reading CSV header: %w", err)
	}

	colIndex := make(map[string]int)
	for i, col := range header {
		colIndex[strings.TrimSpace(col)] = i
	}

	requiredCols := []string{"name", "enclave_name", "enclave_summary", "enclave_hook"}
	for _, col := range requiredCols {
		if _, ok := colIndex[col]; !ok {
			return nil, fmt.Errorf("missing required column: %s", col)
		}
	}

	return colIndex, nil
}

// readRecords reads all data rows and converts them to RawDrafts.
func (p *CSVParser) readRecords(reader *csv.Reader, colIndex map[string]int) ([]RawDraft, error) {
	drafts := []RawDraft{}
	lineNum := 1 // Header is line 1

	for {
		lineNum++
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNum, err)
		}

		draft, err := p.parseRecord(record, colIndex, lineNum)
		if err != nil {
			return nil, err
		}
		drafts = append(drafts, draft)
	}

	return drafts, nil
}

// parseRecord converts a CSV record to a RawDraft.
func (p *CSVParser) parseRecord(record []string, colIndex map[string]int, lineNum int) (RawDraft, error) {
	draft := RawDraft{
		Draft: entities.Draft{
			Name:           getColumn(record, colIndex, "name"),
			Nickname:       entities.StringPtr(getColumn(record, colIndex, "nickname")),
			Epithet:        entities.StringPtr(getColumn(record, colIndex, "epithet")),
			EnclaveName:    getColumn(record, colIndex, "enclave_name"),
			EnclaveSummary: getColumn(record, colIndex, "enclave_summary"),
			EnclaveHook:    getColumn(record, colIndex, "enclave_hook"),
			SpiritName:     entities.StringPtr(getColumn(record, colIndex, "spirit_name")),
			SpiritSummary:  entities.StringPtr(getColumn(record, colIndex, "spirit_summary")),
			SpiritHook:     entities.StringPtr(getColumn(record, colIndex, "spirit_hook")),
		},
		LineNum: lineNum,
	}

	if lore := getColumn(record, colIndex, "lore"); lore != "" {
		draft.Lore = strings.Split(lore, LoreSeparator)
	}

	if stats := strings.TrimSpace(getColumn(record, colIndex, "stats")); stats != "" {
		if !json.Valid([]byte(stats)) {
			return RawDraft{}, fmt.Errorf("line %d: invalid stats JSON %q", lineNum, stats)
		}
		draft.Stats = json.RawMessage(stats)
	}

	return draft, nil
}

// getColumn safely retrieves a column value from a record.
func getColumn(record []string, colIndex map[string]int, col string) string {
	if idx, ok := colIndex[col]; ok && idx < len(record) {
		return record[idx]
	}
	return ""
}
