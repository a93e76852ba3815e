package main

import (
	"crypto/rand"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"aimaster-store/internal/client"
	"aimaster-store/internal/config"
	"aimaster-store/internal/repository"
	"aimaster-store/internal/server"
	"aimaster-store/internal/service"
)

func main() {
	// load .env into os.Environ
	if err := godotenv.Load(); err != nil {
		fmt.Println("No .env file found (ok in prod)")
	}

	cfg := &config.Config{}
	if err := env.Parse(cfg); err != nil {
		fmt.Printf("Failed to parse config: %v\n", err)
		os.Exit(1)
	}

	log := newLogger(cfg.Log)

	demoDB, err := client.InitDemoDB()
	if err != nil {
		log.Fatal().Err(err).Msg("init demo store")
	}
	if err := repository.SeedDemoData(demoDB); err != nil {
		log.Fatal().Err(err).Msg("seed demo store")
	}

	settingsDB, err := client.InitSettingsDB(cfg.SettingsDBPath)
	if err != nil {
		log.Fatal().Err(err).Msg("init settings store")
	}

	localRepos := repository.NewLocalSet(demoDB)

	var backend client.Backend
	remoteRepos := localRepos
	defaultRepos := localRepos
	if cfg.Backend.Configured() {
		backend = client.NewBackend(&cfg.Backend)
		remoteRepos = repository.NewRemoteSet(backend)
		defaultRepos = remoteRepos
		log.Info().Str("project_url", cfg.Backend.ProjectURL).Msg("remote backend configured")
	} else {
		log.Warn().Msg("remote backend not configured, running in demo mode")
	}

	var razorpay client.RazorpayClient
	if cfg.Razorpay.KeyID != "" && cfg.Razorpay.KeySecret != "" {
		razorpay = client.NewRazorpayClient(&cfg.Razorpay)
	}

	functionURL := cfg.Payment.FunctionURL
	if functionURL == "" && cfg.BaseURL != "" {
		functionURL = cfg.BaseURL + "/functions/create-payment-order"
	}

	authService := service.NewAuthService(backend, remoteRepos, localRepos, sessionSecret(cfg, log), log)
	storeService := service.NewStoreService(defaultRepos, log)
	paymentService := service.NewPaymentService(functionURL, razorpay, log)
	settingsService := service.NewSettingsService(settingsDB)

	srv := server.NewServer(authService, storeService, paymentService, settingsService, log)
	serverAddr := cfg.HTTP.Host + ":" + cfg.HTTP.Port

	log.Info().Str("addr", serverAddr).Msg("starting HTTP server")
	go func() {
		if err := srv.Start(serverAddr); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("HTTP server error")
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)

	<-sigChan
	log.Info().Msg("signal received, starting graceful shutdown")

	if err := srv.Shutdown(); err != nil {
		log.Fatal().Err(err).Msg("HTTP server shutdown error")
	}
}

func newLogger(cfg config.Log) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}

	var log zerolog.Logger
	if cfg.Format == "console" {
		log = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr})
	} else {
		log = zerolog.New(os.Stderr)
	}
	return log.Level(level).With().Timestamp().Logger()
}

func sessionSecret(cfg *config.Config, log zerolog.Logger) []byte {
	if cfg.SessionSecret != "" {
		return []byte(cfg.SessionSecret)
	}
	// ephemeral secret: all sessions die with the process
	secret := make([]byte, 32)
	if _, err := rand.Read(secret); err != nil {
		log.Fatal().Err(err).Msg("generate session secret")
	}
	log.Warn().Msg("SESSION_SECRET not set, using ephemeral secret")
	return secret
}
