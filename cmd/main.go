package main

import (
	_ "github.com/joho/godotenv/autoload"

	"github.com/taskvault/taskvault/internal/app"
	"github.com/taskvault/taskvault/internal/config"
)

func main() {
	logger := app.NewDefaultLogger()

	cfg, err := config.NewEnvReader().Read()
	if err != nil {
		logger.Fatal().
			Err(err).
			Msg("failed to read env")
	}
	logger.Info().
		Str("env", cfg.Env).
		Msg("read env")

	logger, err = app.NewApplicationLogger(logger, cfg.Env)
	if err != nil {
		logger.Fatal().
			Err(err).
			Msg("failed to initialize application logger")
	}

	a, err := app.New(cfg, logger)
	if err != nil {
		logger.Fatal().
			Err(err).
			Msg("failed to initialize application")
	}
	defer a.Close()

	if err := a.Run(); err != nil {
		logger.Fatal().
			Err(err).
			Msg("application exited with error")
	}
}
