//go:build wireinject
// +build wireinject

package main

import (
	"github.com/google/wire"

	"github.com/botalearn/plantcare/internal/bootstrap"
	"github.com/botalearn/plantcare/internal/domain/auth"
	"github.com/botalearn/plantcare/internal/domain/caretips"
	"github.com/botalearn/plantcare/internal/domain/plants"
	"github.com/botalearn/plantcare/internal/domain/sunlight"
	"github.com/botalearn/plantcare/internal/infra/config"
	"github.com/botalearn/plantcare/internal/infra/llm/chatgpt"
	httpiface "github.com/botalearn/plantcare/internal/interface/http"
	"github.com/botalearn/plantcare/pkg/logger"
)

func initializeApp() (*bootstrap.App, error) {
	wire.Build(
		config.Load,
		logger.New,
		provideAuthConfig,
		provideCareTipsConfig,
		provideChatGPTClient,
		provideWeatherProvider,
		providePostgresPool,
		provideUserRepository,
		providePlantRepository,
		provideSunProvider,
		auth.NewService,
		plants.NewService,
		sunlight.NewService,
		caretips.NewService,
		wire.Bind(new(caretips.ChatClient), new(*chatgpt.Client)),
		httpiface.NewHandler,
		httpiface.NewRouter,
		bootstrap.NewApp,
	)
	return nil, nil
}
