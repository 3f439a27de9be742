package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/agenthands/hybridrag/internal/config"
	"github.com/agenthands/hybridrag/internal/logging"
	"github.com/agenthands/hybridrag/internal/server"
)

var configPath string

func main() {
	if err := godotenv.Load(); err != nil {
		logrus.Debug("No .env file found, using environment")
	}

	root := &cobra.Command{
		Use:           "hybridrag",
		Short:         "Hybrid vector and knowledge graph retrieval",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVarP(&configPath, "config", "c", os.Getenv("CONFIG_PATH"), "path to a TOML config file")
	root.AddCommand(serveCmd(), retrieveCmd())

	if err := root.Execute(); err != nil {
		logrus.WithError(err).Error("command failed")
		os.Exit(1)
	}
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	if err := logging.Setup(cfg.Log); err != nil {
		return nil, err
	}
	return cfg, nil
}

func closeComponents(c *server.Components) {
	if err := c.Close(context.Background()); err != nil {
		logrus.WithError(err).Warn("shutdown completed with errors")
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the retrieval HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			components, err := server.Bootstrap(ctx, cfg)
			if err != nil {
				return err
			}
			defer closeComponents(components)

			srv := &http.Server{
				Addr:    ":" + cfg.Server.Port,
				Handler: server.NewServer(components.Retriever).SetupRouter(),
			}

			errCh := make(chan error, 1)
			go func() {
				logrus.WithField("port", cfg.Server.Port).Info("Starting server")
				errCh <- srv.ListenAndServe()
			}()

			select {
			case err := <-errCh:
				if errors.Is(err, http.ErrServerClosed) {
					return nil
				}
				return err
			case <-ctx.Done():
			}

			logrus.Info("Shutting down server")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	}
}

func retrieveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "retrieve <query>",
		Short: "Run one retrieval and print the documents as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			components, err := server.Bootstrap(ctx, cfg)
			if err != nil {
				return err
			}
			defer closeComponents(components)

			docs, err := components.Retriever.Retrieve(ctx, args[0])
			if err != nil {
				return err
			}

			out, err := jsoniter.MarshalIndent(server.RetrieveResponse{Documents: docs}, "", "  ")
			if err != nil {
				return fmt.Errorf("failed to encode documents: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(out))
			return nil
		},
	}
}
