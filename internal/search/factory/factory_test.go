package factory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zopdev/leadscout/internal/config"
	"github.com/zopdev/leadscout/internal/search"
	"github.com/zopdev/leadscout/pkg/logger"
)

func TestNewSelectsConfiguredProvider(t *testing.T) {
	tests := []struct {
		name     string
		provider config.ProviderConfig
		wantName string
	}{
		{
			name: "serper",
			provider: config.ProviderConfig{
				Active: search.ProviderSerper,
				Serper: config.SerperConfig{APIKey: "k"},
			},
			wantName: search.ProviderSerper,
		},
		{
			name: "googlecse",
			provider: config.ProviderConfig{
				Active:    search.ProviderGoogleCSE,
				GoogleCSE: config.GoogleCSEConfig{APIKey: "k", CSEID: "id"},
			},
			wantName: search.ProviderGoogleCSE,
		},
		{
			name: "tavily",
			provider: config.ProviderConfig{
				Active: search.ProviderTavily,
				Tavily: config.TavilyConfig{APIKey: "k"},
			},
			wantName: search.ProviderTavily,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &config.Config{Provider: tt.provider}

			p, err := New(cfg, nil, logger.NewNop())
			require.NoError(t, err)
			assert.Equal(t, tt.wantName, p.Name())
		})
	}
}

func TestNewFailsOnMissingCredential(t *testing.T) {
	cfg := &config.Config{
		Provider: config.ProviderConfig{Active: search.ProviderSerper},
	}

	_, err := New(cfg, nil, logger.NewNop())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "API key is required")
}

func TestNewFailsOnUnknownProvider(t *testing.T) {
	cfg := &config.Config{
		Provider: config.ProviderConfig{Active: "bing"},
	}

	_, err := New(cfg, nil, logger.NewNop())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown search provider")
}
