package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alanredmond23-bit/LEAD-VALIDATION/internal/domain/errs"
	"github.com/alanredmond23-bit/LEAD-VALIDATION/internal/infrastructure/config"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load()

	require.NoError(t, err)
	assert.Equal(t, "8091", cfg.GRPCPort)
	assert.Equal(t, "9091", cfg.HTTPPort)
	assert.Equal(t, ":8091", cfg.GRPCAddress())
	assert.Equal(t, ":9091", cfg.HTTPAddress())
	assert.Equal(t, 8, cfg.MaxScoreWorkers)
	assert.Equal(t, []string{"localhost:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, 25, cfg.Rules.Classification.SuspiciousMin)
	assert.Equal(t, 50, cfg.Rules.Classification.FraudulentMin)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("GRPC_PORT", "7001")
	t.Setenv("KAFKA_BROKERS", "k1:9092,k2:9092")
	t.Setenv("MAX_SCORE_WORKERS", "4")
	t.Setenv("SCORE_SUSPICIOUS_MIN", "30")
	t.Setenv("GEO_EXPECTED_COUNTRY", "CA")

	cfg, err := config.Load()

	require.NoError(t, err)
	assert.Equal(t, "7001", cfg.GRPCPort)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, 4, cfg.MaxScoreWorkers)
	assert.Equal(t, 30, cfg.Rules.Classification.SuspiciousMin)
	assert.Equal(t, "CA", cfg.Rules.Geographic.ExpectedCountry)
}

func TestLoad_PointAndCapOverrides(t *testing.T) {
	t.Setenv("CONTACT_CAP", "35")
	t.Setenv("CONTACT_DISPOSABLE_EMAIL_POINTS", "12")
	t.Setenv("DUP_EXACT_POINTS", "20")
	t.Setenv("QUALITY_CAP", "15")
	t.Setenv("TIMING_BOT_PATTERN_POINTS", "6")

	cfg, err := config.Load()

	require.NoError(t, err)
	assert.Equal(t, 35, cfg.Rules.Contact.Cap)
	assert.Equal(t, 12, cfg.Rules.Contact.DisposableEmail)
	assert.Equal(t, 20, cfg.Rules.Duplicate.ExactDuplicate)
	assert.Equal(t, 15, cfg.Rules.Quality.Cap)
	assert.Equal(t, 6, cfg.Rules.Timing.BotPattern)
}

func TestLoad_CapsOver100FailFast(t *testing.T) {
	// 50 + 25 + 15 + 10 + 10 = 110
	t.Setenv("CONTACT_CAP", "50")

	_, err := config.Load()

	require.Error(t, err)
	assert.True(t, errs.IsConfigError(err))
}

func TestLoad_InvalidRulesFailFast(t *testing.T) {
	// Suspicious threshold above fraudulent is inconsistent.
	t.Setenv("SCORE_SUSPICIOUS_MIN", "60")
	t.Setenv("SCORE_FRAUDULENT_MIN", "50")

	_, err := config.Load()

	require.Error(t, err)
	assert.True(t, errs.IsConfigError(err))
}

func TestLoad_InvalidRefundOrderingFailFast(t *testing.T) {
	t.Setenv("REFUND_PARTIAL_MIN", "30")
	t.Setenv("REFUND_FULL_MIN", "25")

	_, err := config.Load()

	require.Error(t, err)
	assert.True(t, errs.IsConfigError(err))
}

func TestLoad_MalformedEnvFallsBackToDefault(t *testing.T) {
	t.Setenv("MAX_SCORE_WORKERS", "not-a-number")

	cfg, err := config.Load()

	require.NoError(t, err)
	assert.Equal(t, 8, cfg.MaxScoreWorkers)
}
