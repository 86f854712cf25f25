package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/itchan-dev/musicthread-rss/internal/config"
	"github.com/itchan-dev/musicthread-rss/internal/logger"
	"github.com/itchan-dev/musicthread-rss/internal/router"
	"github.com/itchan-dev/musicthread-rss/internal/setup"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 10 * time.Second

type rootOptions struct {
	configPath string
	envFile    string
	logLevel   string
	logFormat  string

	cfg *config.Config
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:           "musicthread-rss",
		Short:         "Atom feeds for MusicThread threads",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.load(cmd)
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVarP(&opts.configPath, "config", "c", "", "path to yaml config file")
	flags.StringVar(&opts.envFile, "env-file", ".env", "dotenv file loaded before reading the environment")
	flags.StringVar(&opts.logLevel, "log-level", "", "debug, info, warn or error (overrides config)")
	flags.StringVar(&opts.logFormat, "log-format", "", "text or json (overrides config)")

	cmd.AddCommand(
		newServeCmd(opts),
		newRenderCmd(opts),
	)
	return cmd
}

func (o *rootOptions) load(cmd *cobra.Command) error {
	if err := config.LoadDotEnv(o.envFile); err != nil {
		return err
	}
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("log-level") {
		cfg.Log.Level = o.logLevel
	}
	if cmd.Flags().Changed("log-format") {
		cfg.Log.Format = o.logFormat
	}
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)

	o.cfg = cfg
	return nil
}

func newServeCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve feeds over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			deps, err := setup.SetupDependencies(opts.cfg)
			if err != nil {
				return err
			}
			return serve(cmd.Context(), deps)
		},
	}
}

func serve(ctx context.Context, deps *setup.Dependencies) error {
	cfg := deps.Config
	server := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      router.New(deps),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	if deps.Limiter != nil {
		go deps.Limiter.Run(ctx, time.Minute)
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Log.Info("starting server", "addr", server.Addr, "api_base_url", cfg.APIBaseURL)
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logger.Log.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shutdown server: %w", err)
	}
	return nil
}

func newRenderCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "render <thread-key>",
		Short: "Fetch a thread and print its feed to stdout",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			deps, err := setup.SetupDependencies(opts.cfg)
			if err != nil {
				return err
			}

			thread, err := deps.Client.GetThread(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			feed, err := deps.Generator.Render(thread)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(feed)
			return err
		},
	}
}
