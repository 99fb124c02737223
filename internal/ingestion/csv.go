// Package ingestion parses vendor lead files into domain leads. Required
// columns must be present in the header; individual empty values are kept
// and penalized by scoring instead of rejected here.
package ingestion

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/alanredmond23-bit/LEAD-VALIDATION/internal/domain/errs"
	"github.com/alanredmond23-bit/LEAD-VALIDATION/internal/domain/model"
)

// Column aliases accepted in headers, all matched case-insensitively.
var columnAliases = map[string]string{
	"name":         "name",
	"full_name":    "name",
	"fullname":     "name",
	"email":        "email",
	"email_address": "email",
	"phone":        "phone",
	"phone_number": "phone",
	"address":      "address",
	"street":       "address",
	"city":         "city",
	"state":        "state",
	"zip":          "zip",
	"zip_code":     "zip",
	"zipcode":      "zip",
	"postal_code":  "zip",
	"ip":           "ip",
	"ip_address":   "ip",
	"timestamp":    "timestamp",
	"submitted_at": "timestamp",
	"created_at":   "timestamp",
	"date":         "timestamp",
	"id":           "external_id",
	"lead_id":      "external_id",
	"external_id":  "external_id",
}

var requiredColumns = []string{"name", "email", "phone"}

var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
	"01/02/2006 15:04:05",
	"01/02/2006 15:04",
	"01/02/2006",
}

// MissingColumnsError reports required header columns absent from the input.
type MissingColumnsError struct {
	Columns []string
}

func (e *MissingColumnsError) Error() string {
	return fmt.Sprintf("missing required columns: %s", strings.Join(e.Columns, ", "))
}

// RowError reports a malformed data row by its 1-based line number.
type RowError struct {
	Line int
	Err  error
}

func (e *RowError) Error() string {
	return fmt.Sprintf("row %d: %v", e.Line, e.Err)
}

func (e *RowError) Unwrap() error { return e.Err }

// ParseCSV reads lead records from a CSV stream. The first row is the header
// and must contain at least name, email and phone columns. Returned errors
// are InputErrors; the batch is rejected as a whole rather than skipping
// rows silently.
func ParseCSV(r io.Reader) ([]*model.Lead, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, errs.NewInputError("input file is empty")
	}
	if err != nil {
		return nil, errs.WrapInputError(err, "reading header")
	}

	index := make(map[string]int, len(header))
	for i, col := range header {
		key := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(col, "\uFEFF")))
		if canonical, ok := columnAliases[key]; ok {
			if _, taken := index[canonical]; !taken {
				index[canonical] = i
			}
		}
	}

	missing := make([]string, 0)
	for _, col := range requiredColumns {
		if _, ok := index[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, errs.WrapInputError(&MissingColumnsError{Columns: missing}, "csv header")
	}

	field := func(record []string, name string) string {
		i, ok := index[name]
		if !ok || i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	leads := make([]*model.Lead, 0, 256)
	line := 1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, errs.WrapInputError(&RowError{Line: line, Err: err}, "reading leads")
		}

		lead := &model.Lead{
			ID:         uuid.New(),
			ExternalID: field(record, "external_id"),
			Name:       field(record, "name"),
			Email:      field(record, "email"),
			Phone:      field(record, "phone"),
			Address:    field(record, "address"),
			City:       field(record, "city"),
			State:      field(record, "state"),
			Zip:        field(record, "zip"),
			IPAddress:  field(record, "ip"),
		}
		if ts := field(record, "timestamp"); ts != "" {
			lead.SubmittedAt = parseTimestamp(ts)
		}
		leads = append(leads, lead)
	}

	if len(leads) == 0 {
		return nil, errs.NewInputError("input file has no lead rows")
	}
	return leads, nil
}

// parseTimestamp tries the known layouts in order. An unparseable value
// leaves the zero time; timing checks then skip the lead.
func parseTimestamp(s string) time.Time {
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC()
		}
	}
	return time.Time{}
}
