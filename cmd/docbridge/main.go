package main

import (
	"context"
	"errors"
	"io/fs"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/rios0rios0/docbridge/internal/domain/entities"
)

const (
	readHeaderTimeout = 10 * time.Second
	shutdownTimeout   = 15 * time.Second
)

func buildRootCommand() *cobra.Command {
	//nolint:exhaustruct // Minimal Command initialization with required fields only
	cmd := &cobra.Command{
		Use:   "docbridge",
		Short: "Document-to-markdown and repository write HTTP service",
		Long: `Serves two HTTP endpoints:

  POST /api/process_file   Convert a base64 document (PDF, DOCX, PPTX, images, text)
                           to markdown, or to a JSON envelope with ?format=json
  POST /api/write_to_repo  Create or update a text file in a GitHub, GitLab or
                           Azure DevOps repository

The listen address honours FUNCTIONS_CUSTOMHANDLER_PORT so the binary can run
as an Azure Functions custom handler.`,
		Args: cobra.NoArgs,
		RunE: func(command *cobra.Command, _ []string) error {
			return serve(command)
		},
	}

	cmd.PersistentFlags().StringP("config", "c", "",
		"Path to config file (default: auto-detect)")
	cmd.PersistentFlags().StringP("addr", "a", "",
		"Listen address (overrides config and FUNCTIONS_CUSTOMHANDLER_PORT)")
	cmd.PersistentFlags().BoolP("verbose", "v", false,
		"Enable verbose output")

	return cmd
}

func serve(command *cobra.Command) error {
	configPath, _ := command.Flags().GetString("config")
	address, _ := command.Flags().GetString("addr")
	verbose, _ := command.Flags().GetBool("verbose")

	if verbose {
		logger.SetLevel(logger.DebugLevel)
	}

	// host-provided variables always win over .env
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		logger.Warnf("Skipping .env load: %v", err)
	}

	if configPath == "" {
		found, err := entities.FindConfigFile()
		if err != nil {
			logger.Info("No config file found, using defaults and environment")
		} else {
			configPath = found
		}
	}
	if configPath != "" {
		logger.Infof("Using config file: %s", configPath)
	}

	settings, err := entities.NewSettings(configPath)
	if err != nil {
		return err
	}
	settings = settings.WithAddress(address)

	appContext, err := injectAppContext(settings)
	if err != nil {
		return err
	}

	//nolint:exhaustruct // Minimal Server initialization with required fields only
	server := &http.Server{
		Addr:              settings.Server.Address,
		Handler:           appContext.Handler(),
		ReadHeaderTimeout: readHeaderTimeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		logger.Infof("Listening on %s (provider: %s)", server.Addr, settings.Repository.Provider)
		if serveErr := server.ListenAndServe(); serveErr != nil && !errors.Is(serveErr, http.ErrServerClosed) {
			return serveErr
		}
		return nil
	})
	group.Go(func() error {
		<-groupCtx.Done()
		logger.Info("Shutting down...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	return group.Wait()
}

func main() {
	//nolint:exhaustruct // Minimal TextFormatter initialization with required fields only
	logger.SetFormatter(&logger.TextFormatter{
		ForceColors:   true,
		FullTimestamp: true,
	})
	if os.Getenv("DEBUG") == "true" {
		logger.SetLevel(logger.DebugLevel)
	}

	if err := buildRootCommand().Execute(); err != nil {
		logger.Fatalf("Error executing 'docbridge': %s", err)
	}
}
