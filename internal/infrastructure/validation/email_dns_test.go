package validation

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alanredmond23-bit/LEAD-VALIDATION/internal/domain/port"
)

// newOfflineEmailValidator builds a validator that never reaches the network,
// for exercising the paths that short circuit before the MX query.
func newOfflineEmailValidator() *DNSEmailValidator {
	return &DNSEmailValidator{cache: make(map[string]*port.Verdict)}
}

func TestDNSEmailValidator_DisposableDomain(t *testing.T) {
	v := newOfflineEmailValidator()

	verdict, err := v.ValidateEmail(context.Background(), "user@mailinator.com")

	require.NoError(t, err)
	assert.False(t, verdict.Valid)
	assert.True(t, verdict.Flagged)
	assert.Equal(t, "disposable domain", verdict.Detail)
}

func TestDNSEmailValidator_DisposableDomainCaseInsensitive(t *testing.T) {
	v := newOfflineEmailValidator()

	verdict, err := v.ValidateEmail(context.Background(), "user@MAILINATOR.COM")

	require.NoError(t, err)
	assert.True(t, verdict.Flagged)
}

func TestDNSEmailValidator_MalformedAddress(t *testing.T) {
	v := newOfflineEmailValidator()

	for _, email := range []string{"no-at-sign", "trailing@"} {
		verdict, err := v.ValidateEmail(context.Background(), email)

		require.NoError(t, err)
		assert.False(t, verdict.Valid)
		assert.Equal(t, "malformed address", verdict.Detail)
	}
}

func TestDNSEmailValidator_CachedVerdictSkipsLookup(t *testing.T) {
	v := newOfflineEmailValidator()
	cached := &port.Verdict{Valid: true}
	v.cache["example.com"] = cached

	verdict, err := v.ValidateEmail(context.Background(), "user@example.com")

	require.NoError(t, err)
	assert.Same(t, cached, verdict)
}
