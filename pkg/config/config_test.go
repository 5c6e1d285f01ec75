package config

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newViper(values map[string]any) *viper.Viper {
	v := viper.New()
	for k, val := range values {
		v.Set(k, val)
	}
	return v
}

func TestFromViper_Defaults(t *testing.T) {
	cfg, err := fromViper(newViper(map[string]any{"JWT_SECRET": "s3cr3t"}))
	require.NoError(t, err)

	assert.Equal(t, 7, cfg.Billing.TrialDays)
	assert.Equal(t, "basic", cfg.Billing.DefaultPlan)
	assert.Equal(t, "pt-BR", cfg.Money.Locale)
	assert.Equal(t, StorePostgres, cfg.Store.Driver)
	assert.Equal(t, "0.0.0.0:8080", cfg.HTTP.Addr())
	assert.Equal(t, "postgres://postgres:@localhost:5432/orcamentos?sslmode=disable", cfg.DB.ConnectionString())
}

func TestFromViper_Overrides(t *testing.T) {
	cfg, err := fromViper(newViper(map[string]any{
		"JWT_SECRET":   "s3cr3t",
		"TRIAL_DAYS":   "14",
		"STORE_DRIVER": "Memory",
		"DATABASE_URL": "postgres://u:p@db:5432/x",
		"HTTP_PORT":    9090,
	}))
	require.NoError(t, err)

	assert.Equal(t, 14, cfg.Billing.TrialDays)
	assert.Equal(t, StoreMemory, cfg.Store.Driver)
	assert.Equal(t, "postgres://u:p@db:5432/x", cfg.DB.ConnectionString())
	assert.Equal(t, 9090, cfg.HTTP.Port)
}

func TestFromViper_Errors(t *testing.T) {
	_, err := fromViper(newViper(map[string]any{}))
	assert.Error(t, err, "JWT_SECRET es obligatorio")

	_, err = fromViper(newViper(map[string]any{"JWT_SECRET": "x", "STORE_DRIVER": "mongo"}))
	assert.Error(t, err)

	_, err = fromViper(newViper(map[string]any{"JWT_SECRET": "x", "TRIAL_DAYS": -1}))
	assert.Error(t, err)
}

func TestDBConfig_DSN_EscapesPassword(t *testing.T) {
	c := DBConfig{Host: "h", Port: 5432, User: "u", Password: "p@ss:w/rd", DBName: "d", SSLMode: "require"}
	assert.Equal(t, "postgres://u:p%40ss%3Aw%2Frd@h:5432/d?sslmode=require", c.DSN())
}
