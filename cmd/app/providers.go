package main

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/valkey-io/valkey-go"

	"github.com/botalearn/plantcare/internal/domain/auth"
	"github.com/botalearn/plantcare/internal/domain/caretips"
	"github.com/botalearn/plantcare/internal/domain/plants"
	"github.com/botalearn/plantcare/internal/domain/sunlight"
	"github.com/botalearn/plantcare/internal/domain/weather"
	"github.com/botalearn/plantcare/internal/infra/config"
	"github.com/botalearn/plantcare/internal/infra/llm/chatgpt"
	"github.com/botalearn/plantcare/internal/infra/plantrepo"
	"github.com/botalearn/plantcare/internal/infra/sun/local"
	"github.com/botalearn/plantcare/internal/infra/sun/suncache"
	"github.com/botalearn/plantcare/internal/infra/sun/sunrisesunset"
	"github.com/botalearn/plantcare/internal/infra/userrepo"
	"github.com/botalearn/plantcare/internal/infra/weather/openweather"
)

func provideAuthConfig(cfg *config.Config) auth.Config {
	return auth.Config{
		Secret:          cfg.Auth.Secret,
		TokenTTL:        cfg.Auth.TokenTTL,
		RefreshTokenTTL: cfg.Auth.RefreshTokenTTL,
	}
}

func provideCareTipsConfig(cfg *config.Config) caretips.Config {
	return caretips.Config{
		Model:       cfg.LLM.Model,
		Temperature: cfg.LLM.Temperature,
		Prompt:      cfg.CareTips.Prompt,
	}
}

func provideChatGPTClient(cfg *config.Config) (*chatgpt.Client, error) {
	return chatgpt.NewClient(cfg.LLM.APIKey, cfg.LLM.BaseURL)
}

func provideWeatherProvider(cfg *config.Config) (weather.Provider, error) {
	return openweather.NewClient(cfg.Weather.APIKey, cfg.Weather.APIBaseURL)
}

func providePostgresPool(cfg *config.Config, logger *slog.Logger) *pgxpool.Pool {
	dsn := strings.TrimSpace(cfg.Postgres.DSN)
	if dsn == "" {
		logger.Info("postgres dsn not set, using memory repositories")
		return nil
	}
	poolConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		logger.Error("invalid postgres dsn, using memory repositories", "error", err)
		return nil
	}
	if cfg.Postgres.MaxConns > 0 {
		poolConfig.MaxConns = cfg.Postgres.MaxConns
	}
	if cfg.Postgres.MinConns > 0 {
		poolConfig.MinConns = cfg.Postgres.MinConns
	}
	pool, err := pgxpool.NewWithConfig(context.Background(), poolConfig)
	if err != nil {
		logger.Error("failed to initialize postgres pool, using memory repositories", "error", err)
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := pool.Ping(ctx); err != nil {
		logger.Error("postgres ping failed, using memory repositories", "error", err)
		pool.Close()
		return nil
	}
	logger.Info("postgres repositories enabled")
	return pool
}

func provideUserRepository(pool *pgxpool.Pool) auth.Repository {
	if pool == nil {
		return userrepo.NewMemoryRepository()
	}
	return userrepo.NewPostgresRepository(pool)
}

func providePlantRepository(pool *pgxpool.Pool) plants.Repository {
	if pool == nil {
		return plantrepo.NewMemoryRepository()
	}
	return plantrepo.NewPostgresRepository(pool)
}

func provideSunProvider(cfg *config.Config, logger *slog.Logger) sunlight.Provider {
	var base sunlight.Provider
	if baseURL := strings.TrimSpace(cfg.Sun.APIBaseURL); baseURL != "" {
		base = sunrisesunset.NewClient(baseURL)
	} else {
		logger.Info("sun api base url not set, using local astronomical provider")
		base = local.NewProvider()
	}
	if cfg.Sun.CacheTTL <= 0 {
		return base
	}
	return suncache.NewProvider(base, provideSunStore(cfg, logger), cfg.Sun.CacheTTL, logger)
}

func provideSunStore(cfg *config.Config, logger *slog.Logger) suncache.Store {
	if cfg.Sun.Redis.Enabled {
		opt, err := buildValkeyOptions(cfg)
		if err != nil {
			logger.Error("invalid valkey configuration, falling back to memory store", "error", err)
			return suncache.NewMemoryStore()
		}
		client, err := valkey.NewClient(opt)
		if err != nil {
			logger.Error("failed to create valkey client, falling back to memory store", "error", err)
			return suncache.NewMemoryStore()
		}
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := client.Do(ctx, client.B().Ping().Build()).Error(); err != nil {
			logger.Error("valkey ping failed, falling back to memory store", "error", err)
			client.Close()
		} else {
			logger.Info("sun valkey store enabled", "addr", cfg.Sun.Redis.Addr)
			return suncache.NewValkeyStore(client, "sun")
		}
	}
	return suncache.NewMemoryStore()
}

func buildValkeyOptions(cfg *config.Config) (valkey.ClientOption, error) {
	var (
		opt valkey.ClientOption
		err error
	)
	if strings.Contains(cfg.Sun.Redis.Addr, "://") {
		opt, err = valkey.ParseURL(cfg.Sun.Redis.Addr)
	} else {
		opt = valkey.ClientOption{InitAddress: []string{cfg.Sun.Redis.Addr}}
	}
	if err != nil {
		return valkey.ClientOption{}, err
	}
	return opt, nil
}
