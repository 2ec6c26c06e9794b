package main

import (
	"fmt"
	"os"

	"github.com/gin-gonic/gin"

	"github.com/zopdev/leadscout/internal/api"
	"github.com/zopdev/leadscout/internal/config"
	"github.com/zopdev/leadscout/internal/enrich"
	"github.com/zopdev/leadscout/internal/scorer"
	"github.com/zopdev/leadscout/internal/search/factory"
	"github.com/zopdev/leadscout/internal/service"
	pkgconfig "github.com/zopdev/leadscout/pkg/config"
	"github.com/zopdev/leadscout/pkg/ginsrv"
	"github.com/zopdev/leadscout/pkg/httpx"
	"github.com/zopdev/leadscout/pkg/logger"
)

func main() {
	os.Exit(run())
}

func run() int {
	cfg, err := config.Load(pkgconfig.GetConfigPath(config.DefaultConfigPath))
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		return 1
	}

	log, err := logger.New(cfg.Logging)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		return 1
	}
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting LeadScout",
		logger.String("service", cfg.Service.Name),
		logger.String("version", cfg.Service.Version),
		logger.String("provider", cfg.Provider.Active),
	)

	httpClient := httpx.NewDefaultClient()

	provider, err := factory.New(cfg, httpClient, log)
	if err != nil {
		log.Error("Failed to initialize search provider", logger.Error(err))
		return 1
	}

	leadService := service.NewLeadService(provider, log)
	trendingService := service.NewTrendingService(provider, log, nil)

	// Enrichment and scoring are optional; their endpoints report a
	// configuration error when the credentials are absent.
	var enricher api.Enricher
	if cfg.Enrich.APIKey != "" {
		client, err := enrich.New(enrich.Config{
			APIKey:     cfg.Enrich.APIKey,
			HTTPClient: httpClient,
			Logger:     log,
		})
		if err != nil {
			log.Error("Failed to initialize enrichment client", logger.Error(err))
			return 1
		}
		enricher = client
	} else {
		log.Warn("Profile enrichment disabled: PROXYCURL_API_KEY not set")
	}

	var leadScorer scorer.Scorer
	if cfg.Scorer.APIKey != "" {
		client, err := scorer.New(scorer.Config{
			APIKey: cfg.Scorer.APIKey,
			Model:  cfg.Scorer.Model,
			Logger: log,
		})
		if err != nil {
			log.Error("Failed to initialize lead scorer", logger.Error(err))
			return 1
		}
		leadScorer = client
	} else {
		log.Warn("Lead scoring disabled: ANTHROPIC_API_KEY not set")
	}

	handler := api.NewHandler(leadService, trendingService, enricher, leadScorer, log)

	serverCfg := &ginsrv.Config{
		Port:            cfg.Server.Port,
		Debug:           cfg.Server.Debug,
		ReadTimeout:     cfg.Server.ReadTimeout.Std(),
		WriteTimeout:    cfg.Server.WriteTimeout.Std(),
		ShutdownTimeout: cfg.Server.ShutdownTimeout.Std(),
		ServiceName:     cfg.Service.Name,
		ServiceVersion:  cfg.Service.Version,
		CORS: ginsrv.CORSConfig{
			Enabled:        true,
			AllowedOrigins: cfg.Server.AllowedOrigins,
		},
	}

	server := ginsrv.NewServer(serverCfg, log, func(router *gin.Engine) {
		api.RegisterRoutes(router, handler)
	})

	if err := server.Run(); err != nil {
		log.Error("Server failed", logger.Error(err))
		return 1
	}

	return 0
}
