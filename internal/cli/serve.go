package cli

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/isvaryam/assistant/internal/catalog"
	"github.com/isvaryam/assistant/internal/config"
	"github.com/isvaryam/assistant/internal/fallback"
	"github.com/isvaryam/assistant/internal/gateway"
	"github.com/isvaryam/assistant/internal/intent"
	"github.com/isvaryam/assistant/internal/llm"
	"github.com/isvaryam/assistant/internal/router"
	"github.com/isvaryam/assistant/internal/session"
	"github.com/isvaryam/assistant/internal/store"
	"github.com/spf13/cobra"
)

func newServeCmd() *cobra.Command {
	var (
		port int
		bind string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the assistant HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(paths.Config)
			if err != nil {
				return err
			}

			if port != 0 {
				cfg.Server.Port = port
			}
			if bind != "" {
				cfg.Server.Bind = bind
			}

			issues := config.Validate(&cfg)
			if len(issues) > 0 {
				for _, issue := range issues {
					log.Error().Str("path", issue.Path).Msg(issue.Message)
				}
				return fmt.Errorf("config validation failed with %d issue(s)", len(issues))
			}

			if err := paths.EnsureDirs(); err != nil {
				return fmt.Errorf("creating data directories: %w", err)
			}

			// Block until SIGINT/SIGTERM
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			rt, err := buildRouter(cfg)
			if err != nil {
				return err
			}

			dbPath := cfg.Storage.Path
			if dbPath == "" {
				dbPath = paths.Storage
			}
			db, err := store.Open(dbPath, log)
			if err != nil {
				return fmt.Errorf("opening database: %w", err)
			}
			defer db.Close()

			srv := gateway.New(cfg.Server, rt, log,
				gateway.WithFeedbackStore(store.NewFeedbackStore(db)))

			return srv.Start(ctx)
		},
	}

	cmd.Flags().IntVar(&port, "port", 0, "override server port")
	cmd.Flags().StringVar(&bind, "bind", "", "override bind mode (loopback, lan, custom)")

	return cmd
}

// buildRouter assembles the dialogue stack from configuration: catalog
// rules, session memory, and the model-backed fallback.
func buildRouter(cfg config.Config) (*router.Router, error) {
	cat, err := catalog.Load(cfg.Catalog.DataDir, log)
	if err != nil {
		return nil, fmt.Errorf("loading catalog: %w", err)
	}

	matcher := intent.NewMatcher(intent.DefaultRules(cat))
	sessions := session.NewStore(cfg.Session.HistoryWindow, log)

	client := llm.NewLlamaServerClient(
		cfg.Model.BaseURL,
		cfg.Model.Name,
		cfg.Model.Threads,
		time.Duration(cfg.Model.TimeoutSeconds)*time.Second,
	)
	gen := fallback.New(client, fallback.Options{
		Model:            cfg.Model.Name,
		Temperature:      cfg.Model.Temperature,
		TopP:             cfg.Model.TopP,
		MaxTokens:        cfg.Model.MaxTokens,
		MaxContextTokens: cfg.Model.MaxContextTokens,
	}, log)

	log.Info().
		Str("model", cfg.Model.Name).
		Str("baseUrl", cfg.Model.BaseURL).
		Int("historyWindow", sessions.Window()).
		Msg("dialogue stack ready")

	return router.New(matcher, sessions, gen, log), nil
}
