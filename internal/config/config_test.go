package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfig(t *testing.T) {
	t.Setenv("DB_HOST", "localhost")
	t.Setenv("DB_USER", "postgres")
	t.Setenv("DB_NAME", "charmforge")
	t.Setenv("APP_PORT", "8080")
	t.Setenv("FREE_SHIPPING_THRESHOLD", "999")
	t.Setenv("FLAT_SHIPPING_RATE", "59")

	cfg := LoadConfig()

	assert.Equal(t, "localhost", cfg.DBHost)
	assert.Equal(t, "postgres", cfg.DBUser)
	assert.Equal(t, "8080", cfg.AppPort)
	assert.Equal(t, float64(999), cfg.FreeShippingThreshold)
	assert.Equal(t, float64(59), cfg.FlatShippingRate)
}

func TestEnvFloat(t *testing.T) {
	t.Run("Unset_UsesFallback", func(t *testing.T) {
		t.Setenv("SOME_FLOAT", "")
		assert.Equal(t, 49.0, envFloat("SOME_FLOAT", 49))
	})

	t.Run("Invalid_UsesFallback", func(t *testing.T) {
		t.Setenv("SOME_FLOAT", "not-a-number")
		assert.Equal(t, 49.0, envFloat("SOME_FLOAT", 49))
	})

	t.Run("Valid", func(t *testing.T) {
		t.Setenv("SOME_FLOAT", "123.5")
		assert.Equal(t, 123.5, envFloat("SOME_FLOAT", 49))
	})
}
