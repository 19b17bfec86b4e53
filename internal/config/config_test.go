package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "America/Bogota", cfg.ReportTimezone)
	assert.Equal(t, "06:30", cfg.ReportCutoff)
	assert.Equal(t, "Efectivo", cfg.CashMethod)
	assert.Equal(t, 24, cfg.JWTExpirationHours)
	assert.Equal(t, "America/Bogota", cfg.Location().String())
}

func TestLoad_InvalidTimezone(t *testing.T) {
	t.Setenv("REPORT_TIMEZONE", "Marte/Olympus")
	_, err := Load()
	assert.ErrorContains(t, err, "REPORT_TIMEZONE")
}

func TestLoad_ProductionNeedsSecret(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("JWT_SECRET", "")
	_, err := Load()
	assert.ErrorIs(t, err, ErrMissingSecret)

	t.Setenv("JWT_SECRET", "s3cret")
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "s3cret", cfg.JWTSecret)
}

func TestAllowedOrigins(t *testing.T) {
	cfg := &Config{CORSOrigins: " https://recepcion.hotel.co, ,http://localhost:3000 "}
	assert.Equal(t, []string{"https://recepcion.hotel.co", "http://localhost:3000"}, cfg.AllowedOrigins())
	assert.Empty(t, (&Config{}).AllowedOrigins())
}
