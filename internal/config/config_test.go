package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func env(vars map[string]string) func(string) string {
	return func(k string) string { return vars[k] }
}

func TestFromEnvDefaults(t *testing.T) {
	cfg := FromEnv(env(nil))

	assert.Empty(t, cfg.Attributes)
	assert.Equal(t, 1, cfg.Saves)
	assert.Equal(t, 10*time.Millisecond, cfg.Interval)
}

func TestFromEnv(t *testing.T) {
	cfg := FromEnv(env(map[string]string{
		"RECORD_ATTRIBUTES": "name=My First Model, my_number = 89,broken,=x",
		"RECORD_SAVES":      "3",
		"RECORD_INTERVAL":   "250ms",
	}))

	assert.Equal(t, map[string]string{"name": "My First Model", "my_number": "89"}, cfg.Attributes)
	assert.Equal(t, 3, cfg.Saves)
	assert.Equal(t, 250*time.Millisecond, cfg.Interval)
}

func TestFromEnvInvalidValuesFallBack(t *testing.T) {
	cfg := FromEnv(env(map[string]string{
		"RECORD_SAVES":    "-2",
		"RECORD_INTERVAL": "soon",
	}))

	assert.Equal(t, defaultSaves, cfg.Saves)
	assert.Equal(t, defaultInterval, cfg.Interval)
}
