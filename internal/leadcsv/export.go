// Package leadcsv moves leads across the CSV boundary: export of the
// currently filtered view and import of new leads through the API.
package leadcsv

import (
	"fmt"
	"strings"

	"leadterm/internal/crm"
)

// ExportHeader is the fixed export column set.
const ExportHeader = "ID,Name,Company,Status,Value,Currency,Source,Phone"

// Export serializes leads in their given order. Quoting is deliberately
// minimal: only name and company are wrapped in double quotes, and nothing
// inside a field is escaped. Callers that need RFC 4180 output should not
// get it silently from here.
func Export(leads []crm.Lead) string {
	rows := make([]string, 0, len(leads)+1)
	rows = append(rows, ExportHeader)
	for _, l := range leads {
		rows = append(rows, strings.Join([]string{
			fmt.Sprintf("%d", l.ID),
			`"` + l.Name + `"`,
			`"` + l.Company + `"`,
			string(l.Status),
			crm.FormatAmount(float64(l.Value)),
			l.Currency,
			string(l.Source),
			l.Phone,
		}, ","))
	}
	return strings.Join(rows, "\n")
}
