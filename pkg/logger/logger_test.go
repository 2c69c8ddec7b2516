package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithComponent_AgregaCampo(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(Config{Env: "production", Level: "debug"}, &buf)

	l.WithComponent("payments").Info().Str("payment_id", "pay-1").Msg("pago registrado")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "payments", entry["component"])
	assert.Equal(t, "pay-1", entry["payment_id"])
	assert.Equal(t, "info", entry["level"])
}

func TestNew_NivelDesconocidoUsaInfo(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(Config{Env: "production", Level: "verbose"}, &buf)

	l.Debug().Msg("no se escribe")
	assert.Zero(t, buf.Len())

	l.Info().Msg("sí se escribe")
	assert.NotZero(t, buf.Len())
}

func TestNop(t *testing.T) {
	assert.NotPanics(t, func() { Nop().WithComponent("x").Error().Msg("descartado") })
}
