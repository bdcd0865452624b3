package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/common-nighthawk/go-figure"
	"github.com/jrsteele09/go-cognito-local/accounts/sqlite"
	"github.com/jrsteele09/go-cognito-local/cognito"
	"github.com/jrsteele09/go-cognito-local/internal/config"
	"github.com/jrsteele09/go-cognito-local/server"
	"github.com/jrsteele09/go-cognito-local/token"
	"github.com/jrsteele09/go-cognito-local/token/keys"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	if err := run(); err != nil {
		log.Fatal().Err(err).Msg("server failed")
	}
	log.Info().Msg("server stopped")
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	setupLogging(cfg)
	displayAppname(cfg.AppName)

	store, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	signer, err := loadSigner(cfg)
	if err != nil {
		return err
	}

	service, err := cognito.NewService(store, token.NewIssuer(signer, cfg.Issuer))
	if err != nil {
		return fmt.Errorf("create cognito service: %w", err)
	}

	srv, err := server.New(cfg, service, signer)
	if err != nil {
		return fmt.Errorf("create server: %w", err)
	}

	httpServer := &http.Server{Addr: cfg.Addr(), Handler: srv}
	go listenAndServe(httpServer)
	log.Info().Str("addr", cfg.Addr()).Str("issuer", cfg.Issuer).Msg("fake Cognito ready")

	waitForStopSignal()
	return shutdown(httpServer)
}

func openStore(cfg config.Config) (*sqlite.Store, error) {
	if dir := filepath.Dir(cfg.DatabasePath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create data folder: %w", err)
		}
	}
	store, err := sqlite.Open(cfg.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("open account store: %w", err)
	}
	return store, nil
}

// loadSigner loads the signing key from PEM, or generates a throwaway
// key when none is configured. Tokens signed with a generated key only
// verify against the JWKS served by this same process.
func loadSigner(cfg config.Config) (keys.Signer, error) {
	if cfg.PrivateKeyFile != "" {
		keyPair, err := keys.LoadKeyPairFromFile(cfg.KeyID, cfg.PrivateKeyFile)
		if err != nil {
			return nil, fmt.Errorf("load signing key: %w", err)
		}
		return keys.NewKeyPairSigner(keyPair), nil
	}

	log.Warn().Msg("PRIVATE_KEY_FILE not set, generating a throwaway signing key")
	keyPair, err := keys.GenerateRSAKeyPair(cfg.KeyID, 2048)
	if err != nil {
		return nil, fmt.Errorf("generate signing key: %w", err)
	}
	return keys.NewKeyPairSigner(keyPair), nil
}

func setupLogging(cfg config.Config) {
	if cfg.Env == "DEV" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
		return
	}
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
}

func listenAndServe(httpServer *http.Server) {
	if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal().Err(err).Msg("server.ListenAndServe")
	}
}

func waitForStopSignal() {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop
}

func shutdown(httpServer *http.Server) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server.Shutdown: %w", err)
	}
	return nil
}

func displayAppname(appname string) {
	myFigure := figure.NewFigure(appname, "cybermedium", true)
	myFigure.Print()
	fmt.Println()
}
