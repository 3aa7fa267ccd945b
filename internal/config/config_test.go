package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

// The maintenance scripts load configs/config.yaml with yaml.v3 rather than
// viper, so the structs must decode the same snake_case keys either way.
func TestConfigYAMLDecode(t *testing.T) {
	doc := []byte(`
server:
  port: "8080"
  mode: debug
database:
  host: localhost
  port: 3306
  dbname: jaagrmind
scoring:
  stable_min_fraction: 0.75
  emerging_min_fraction: 0.40
analytics:
  recent_page_size: 25
rate_limit:
  max_requests: 500
`)

	var cfg Config
	require.NoError(t, yaml.Unmarshal(doc, &cfg))

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "jaagrmind", cfg.Database.DBName)
	assert.Equal(t, 0.75, cfg.Scoring.StableMinFraction)
	assert.Equal(t, 0.40, cfg.Scoring.EmergingMinFraction)
	assert.Equal(t, 25, cfg.Analytics.RecentPageSize)
	assert.Equal(t, 500, cfg.RateLimit.MaxRequests)
	assert.NoError(t, cfg.Scoring.Validate())
}

func TestScoringConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     ScoringConfig
		wantErr bool
	}{
		{"defaults", ScoringConfig{StableMinFraction: 0.75, EmergingMinFraction: 0.40}, false},
		{"zero value rejected", ScoringConfig{}, true},
		{"emerging above stable", ScoringConfig{StableMinFraction: 0.40, EmergingMinFraction: 0.75}, true},
		{"stable above one", ScoringConfig{StableMinFraction: 1.2, EmergingMinFraction: 0.40}, true},
		{"stable exactly one", ScoringConfig{StableMinFraction: 1.0, EmergingMinFraction: 0.40}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
