package cli

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/samuzaffar99/GoHighLevel-MCP/internal/config"
	"github.com/samuzaffar99/GoHighLevel-MCP/internal/ghl"
	"github.com/samuzaffar99/GoHighLevel-MCP/internal/logging"
	"github.com/samuzaffar99/GoHighLevel-MCP/internal/server"
	"github.com/samuzaffar99/GoHighLevel-MCP/internal/tools"
)

func newServeCmd() *cobra.Command {
	var (
		transport string
		port      int
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the MCP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(paths.Config)
			if err != nil {
				return err
			}

			if transport != "" {
				cfg.Server.Transport = transport
			}
			if port != 0 {
				cfg.Server.Port = port
			}
			if logLevel != "" {
				cfg.Logging.Level = logLevel
			}

			issues := config.Validate(&cfg)
			if len(issues) > 0 {
				for _, issue := range issues {
					log.Error().Str("path", issue.Path).Msg(issue.Message)
				}
				return fmt.Errorf("config validation failed with %d issue(s)", len(issues))
			}

			// Rebuild the logger once the full logging config is known. For
			// stdio transport everything stays on stderr so the protocol
			// stream on stdout is never polluted.
			if cfg.Logging.File != "" {
				w, err := logging.OpenFile(cfg.Logging.File)
				if err != nil {
					return fmt.Errorf("failed to open log file: %w", err)
				}
				log = logging.New(w, cfg.Logging.Level, "json")
			} else {
				log = logging.New(nil, cfg.Logging.Level, cfg.Logging.ConsoleStyle)
			}

			client := ghl.NewClient(ghl.Config{
				BaseURL:    cfg.API.BaseURL,
				APIKey:     cfg.API.Key,
				Version:    cfg.API.Version,
				LocationID: cfg.API.LocationID,
			}, log)

			registry, err := buildRegistry(client, cfg.Tools.Enabled, log)
			if err != nil {
				return err
			}

			srv, err := server.New(registry, cfg.Server, log)
			if err != nil {
				return err
			}

			if cfg.Server.Transport == "sse" {
				ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
				defer stop()
				return srv.ServeSSE(ctx)
			}
			return srv.ServeStdio()
		},
	}

	cmd.Flags().StringVar(&transport, "transport", "", "override transport (stdio, sse)")
	cmd.Flags().IntVar(&port, "port", 0, "override SSE port")

	return cmd
}

// buildRegistry registers the enabled tool modules. An empty enabled list
// registers everything.
func buildRegistry(client *ghl.Client, enabled []string, log *logging.Logger) (*tools.Registry, error) {
	modules := []tools.Module{
		tools.NewContactTools(client),
		tools.NewConversationTools(client),
		tools.NewOpportunityTools(client),
		tools.NewLocationTools(client),
		tools.NewCalendarTools(client),
		tools.NewEmailTools(client),
		tools.NewVerificationTools(client),
		tools.NewMediaTools(client),
		tools.NewWorkflowTools(client),
		tools.NewSurveyTools(client),
	}

	want := make(map[string]bool, len(enabled))
	for _, name := range enabled {
		want[name] = true
	}

	registry := tools.NewRegistry(log)
	for _, m := range modules {
		if len(want) > 0 && !want[m.Name()] {
			continue
		}
		if err := registry.Register(m); err != nil {
			return nil, err
		}
	}
	return registry, nil
}
