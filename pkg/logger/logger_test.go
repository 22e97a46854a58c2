package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuild_ServicioYNivel(t *testing.T) {
	var buf bytes.Buffer
	l := build(&buf, Config{Env: "production", Level: "warn", Service: "api"})

	l.Info().Msg("no aparece")
	l.Warn().Msg("aparece")

	var line map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "aparece", line["message"])
	assert.Equal(t, "api", line["service"])
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zerolog.DebugLevel, parseLevel(" DEBUG "))
	assert.Equal(t, zerolog.InfoLevel, parseLevel(""))
	assert.Equal(t, zerolog.InfoLevel, parseLevel("ruidoso"))
}

func TestForTenantYNamed(t *testing.T) {
	var buf bytes.Buffer
	FromWriter(&buf).Named("auth").ForTenant("c-1", "u-1").Error().Msg("falló")

	var line map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "auth", line["component"])
	assert.Equal(t, "c-1", line["company_id"])
	assert.Equal(t, "u-1", line["user_id"])
}
