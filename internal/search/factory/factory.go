// Package factory assembles the active search provider from configuration.
package factory

import (
	"fmt"
	"net/http"

	"github.com/zopdev/leadscout/internal/config"
	"github.com/zopdev/leadscout/internal/search"
	"github.com/zopdev/leadscout/internal/search/cache"
	"github.com/zopdev/leadscout/internal/search/googlecse"
	"github.com/zopdev/leadscout/internal/search/serper"
	"github.com/zopdev/leadscout/internal/search/tavily"
	"github.com/zopdev/leadscout/internal/telemetry"
	"github.com/zopdev/leadscout/pkg/logger"
)

// New builds the configured search backend, instrumented with metrics and
// wrapped in the process-wide query cache. The provider choice is fixed for
// the process lifetime.
func New(cfg *config.Config, httpClient *http.Client, log logger.Logger) (search.Provider, error) {
	adapter, err := newAdapter(cfg, httpClient, log)
	if err != nil {
		return nil, err
	}

	queryCache := cache.New(cfg.Cache.TTL.Std(), cfg.Cache.Capacity, nil)

	log.Info("Search provider initialized",
		logger.String("provider", adapter.Name()),
	)

	return cache.Wrap(telemetry.Instrument(adapter), queryCache), nil
}

func newAdapter(cfg *config.Config, httpClient *http.Client, log logger.Logger) (search.Provider, error) {
	switch cfg.Provider.Active {
	case search.ProviderSerper:
		return serper.New(serper.Config{
			APIKey:     cfg.Provider.Serper.APIKey,
			HTTPClient: httpClient,
			Logger:     log,
		})
	case search.ProviderGoogleCSE:
		return googlecse.New(googlecse.Config{
			APIKey:     cfg.Provider.GoogleCSE.APIKey,
			CSEID:      cfg.Provider.GoogleCSE.CSEID,
			HTTPClient: httpClient,
			Logger:     log,
		})
	case search.ProviderTavily:
		return tavily.New(tavily.Config{
			APIKey:     cfg.Provider.Tavily.APIKey,
			HTTPClient: httpClient,
			Logger:     log,
		})
	default:
		return nil, fmt.Errorf("unknown search provider %q", cfg.Provider.Active)
	}
}
