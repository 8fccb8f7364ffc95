package main

import (
	"context"
	_ "embed"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/klabast/wb-services/holiday-converter/internal/app"
	"github.com/klabast/wb-services/holiday-converter/internal/commands"
	"github.com/rs/zerolog/log"
)

//go:embed static/index.html
var indexHTML []byte

func main() {
	// Check for subcommands
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "hash-password":
			commands.HashPassword(os.Args[2:])
			return
		case "convert":
			commands.Convert(os.Args[2:])
			return
		}
	}

	port := flag.Int("port", app.DefaultPort, "Port to listen on")
	logLevel := flag.String("log-level", app.DefaultLogLevel, "Logging level (debug, info, warn, error)")
	logPath := flag.String("log-path", "", "Append JSON logs to this file instead of stderr")
	flag.Int64Var(&app.MaxInputBytes, "max-input", app.DefaultMaxInputBytes, "Maximum accepted input size in bytes")
	flag.Parse()

	if err := app.SetupLog(*logPath, *logLevel); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to set up logging: %v\n", err)
		os.Exit(1)
	}
	app.IndexHTML = indexHTML

	authFile, err := app.AuthFilePath()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to resolve auth file")
	}
	auth, err := app.LoadAuthenticator(authFile)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load auth credentials")
	}

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", *port),
		Handler:      app.NewRouter(auth),
		ReadTimeout:  app.ServerReadTimeout,
		WriteTimeout: app.ServerWriteTimeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Info().
			Int("port", *port).
			Int64("maxInputBytes", app.MaxInputBytes).
			Bool("auth", auth != nil).
			Str("authUser", auth.User()).
			Msgf("starting Holiday Converter on http://localhost:%d", *port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), app.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP server shutdown error")
		return
	}
	log.Info().Msg("graceful shutdown completed")
}
