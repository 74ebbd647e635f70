package leadcsv

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"leadterm/internal/crm"
)

// Creator is the single API operation the importer needs.
type Creator interface {
	CreateLead(ctx context.Context, p crm.LeadPayload) error
}

// ImportResult summarizes a CSV import run.
type ImportResult struct {
	Created int
	Skipped int
	Errors  []string
}

// Import reads leads from r and creates each through the API. The header
// row names the columns; only "name" is mandatory. Rows with an unknown
// status or source, or a missing name, are skipped and reported, not fatal.
func Import(ctx context.Context, r io.Reader, api Creator) (ImportResult, error) {
	result := ImportResult{}
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return result, fmt.Errorf("read header: %w", err)
	}
	index := map[string]int{}
	for i, h := range header {
		key := strings.ToLower(strings.TrimSpace(h))
		if key != "" {
			index[key] = i
		}
	}
	nameIdx, ok := index["name"]
	if !ok {
		return result, fmt.Errorf("csv missing 'name' column")
	}

	field := func(record []string, key string) string {
		if idx, ok := index[key]; ok && idx < len(record) {
			return strings.TrimSpace(record[idx])
		}
		return ""
	}

	row := 1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		row++
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("row %d: %v", row, err))
			continue
		}

		if nameIdx >= len(record) || strings.TrimSpace(record[nameIdx]) == "" {
			result.Errors = append(result.Errors, fmt.Sprintf("row %d: lead name required", row))
			result.Skipped++
			continue
		}

		payload := crm.LeadPayload{
			Name:       strings.TrimSpace(record[nameIdx]),
			Company:    field(record, "company"),
			Phone:      field(record, "phone"),
			Email:      field(record, "email"),
			Currency:   field(record, "currency"),
			AssignedTo: field(record, "assigned_to"),
			Status:     crm.LeadStatus(field(record, "status")),
			Source:     crm.LeadSource(field(record, "source")),
		}
		if payload.Status == "" {
			payload.Status = crm.StatusNew
		}
		if payload.Source == "" {
			payload.Source = crm.SourceWebsite
		}
		if !payload.Status.Valid() {
			result.Errors = append(result.Errors, fmt.Sprintf("row %d: unknown status '%s'", row, payload.Status))
			result.Skipped++
			continue
		}
		if v := field(record, "value"); v != "" {
			payload.Value = crm.ParseAmount(v)
			payload.LeadValue = payload.Value
		}
		if payload.Currency == "" {
			payload.Currency = "USD"
		}

		if err := api.CreateLead(ctx, payload); err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("row %d: %v", row, err))
			result.Skipped++
			continue
		}
		result.Created++
	}
	return result, nil
}
