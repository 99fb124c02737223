package ingestion

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alanredmond23-bit/LEAD-VALIDATION/internal/domain/errs"
)

func TestParseCSV(t *testing.T) {
	input := strings.Join([]string{
		"Name,Email,Phone,Address,City,State,Zip,IP_Address,Timestamp",
		"John Smith,john@example.com,555-123-4567,1 Main St,Austin,TX,78701,203.0.113.7,2026-03-10 14:00:00",
		"Jane Doe,jane@example.com,,,,,,,",
	}, "\n")

	leads, err := ParseCSV(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, leads, 2)

	first := leads[0]
	assert.Equal(t, "John Smith", first.Name)
	assert.Equal(t, "john@example.com", first.Email)
	assert.Equal(t, "555-123-4567", first.Phone)
	assert.Equal(t, "TX", first.State)
	assert.Equal(t, "203.0.113.7", first.IPAddress)
	assert.Equal(t, time.Date(2026, 3, 10, 14, 0, 0, 0, time.UTC), first.SubmittedAt)
	assert.NotEqual(t, first.ID, leads[1].ID)

	// Empty optional values are kept for the scorer to penalize
	second := leads[1]
	assert.Equal(t, "Jane Doe", second.Name)
	assert.Empty(t, second.Phone)
	assert.True(t, second.SubmittedAt.IsZero())
}

func TestParseCSV_ColumnAliases(t *testing.T) {
	input := strings.Join([]string{
		"full_name,email_address,phone_number,zip_code,submitted_at,lead_id",
		"John Smith,john@example.com,5551234567,78701,2026-03-10T14:00:00Z,ext-42",
	}, "\n")

	leads, err := ParseCSV(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, leads, 1)

	assert.Equal(t, "John Smith", leads[0].Name)
	assert.Equal(t, "78701", leads[0].Zip)
	assert.Equal(t, "ext-42", leads[0].ExternalID)
	assert.False(t, leads[0].SubmittedAt.IsZero())
}

func TestParseCSV_ByteOrderMarkHeader(t *testing.T) {
	input := "\uFEFFname,email,phone\nJohn Smith,john@example.com,5551234567\n"

	leads, err := ParseCSV(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, leads, 1)
	assert.Equal(t, "John Smith", leads[0].Name)
}

func TestParseCSV_MissingRequiredColumns(t *testing.T) {
	input := "Name,Address\nJohn Smith,1 Main St\n"

	_, err := ParseCSV(strings.NewReader(input))
	require.Error(t, err)
	assert.True(t, errs.IsInputError(err))

	var missing *MissingColumnsError
	require.True(t, errors.As(err, &missing))
	assert.ElementsMatch(t, []string{"email", "phone"}, missing.Columns)
}

func TestParseCSV_EmptyInput(t *testing.T) {
	_, err := ParseCSV(strings.NewReader(""))
	require.Error(t, err)
	assert.True(t, errs.IsInputError(err))
}

func TestParseCSV_HeaderOnly(t *testing.T) {
	_, err := ParseCSV(strings.NewReader("name,email,phone\n"))
	require.Error(t, err)
	assert.True(t, errs.IsInputError(err))
}

func TestParseCSV_MalformedRow(t *testing.T) {
	input := "name,email,phone\n\"unterminated,john@example.com,555\n"

	_, err := ParseCSV(strings.NewReader(input))
	require.Error(t, err)
	assert.True(t, errs.IsInputError(err))
}

func TestParseCSV_UnparseableTimestampIgnored(t *testing.T) {
	input := "name,email,phone,timestamp\nJohn Smith,john@example.com,5551234567,not-a-date\n"

	leads, err := ParseCSV(strings.NewReader(input))
	require.NoError(t, err)
	assert.True(t, leads[0].SubmittedAt.IsZero())
}
