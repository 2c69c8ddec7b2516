package config

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromViper_ValoresPorDefecto(t *testing.T) {
	cfg, err := fromViper(viper.New())
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, 8080, cfg.HTTP.Port)
	assert.Equal(t, "0.0.0.0:8080", cfg.HTTP.Addr())
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "5", cfg.Ledger.DefaultVATPercent.String())
	assert.Equal(t, "AED", cfg.Ledger.Currency)
	assert.False(t, cfg.DB.AutoMigrate)
}

func TestFromViper_Sobrescritos(t *testing.T) {
	v := viper.New()
	v.Set("LEDGER_DEFAULT_VAT_PERCENT", "19")
	v.Set("LEDGER_CURRENCY", "cop")
	v.Set("HTTP_PORT", "9090")
	v.Set("DB_AUTO_MIGRATE", "true")
	v.Set("LOG_LEVEL", "debug")

	cfg, err := fromViper(v)
	require.NoError(t, err)
	assert.Equal(t, "19", cfg.Ledger.DefaultVATPercent.String())
	assert.Equal(t, "COP", cfg.Ledger.Currency)
	assert.Equal(t, 9090, cfg.HTTP.Port)
	assert.True(t, cfg.DB.AutoMigrate)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestFromViper_IVAInvalido(t *testing.T) {
	tests := []struct {
		name  string
		value string
	}{
		{"no numérico", "cinco"},
		{"negativo", "-1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := viper.New()
			v.Set("LEDGER_DEFAULT_VAT_PERCENT", tt.value)
			_, err := fromViper(v)
			assert.Error(t, err)
		})
	}
}

func TestDBConfig_ConnectionString(t *testing.T) {
	c := DBConfig{Host: "db", Port: 5432, User: "obras", Password: "p@ss word", DBName: "obras", SSLMode: "disable"}
	assert.Equal(t, "postgres://obras:p%40ss%20word@db:5432/obras?sslmode=disable", c.ConnectionString())

	c.DatabaseURL = "postgres://x@y/z"
	assert.Equal(t, "postgres://x@y/z", c.ConnectionString())
}
