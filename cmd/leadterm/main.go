package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"leadterm/internal/api"
	"leadterm/internal/board"
	"leadterm/internal/config"
	"leadterm/internal/leadcsv"
	"leadterm/internal/ui"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var apiURL string

	root := &cobra.Command{
		Use:   "leadterm",
		Short: "A terminal client for the lead pipeline",
		Long:  "leadterm manages customers, leads and proposals against a remote CRM API, with a kanban-style board in the terminal.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, client, cleanup, err := setup(apiURL)
			if err != nil {
				return err
			}
			defer cleanup()

			program := ui.NewProgram(client, cfg)
			if err := program.Start(); err != nil {
				return fmt.Errorf("program terminated: %w", err)
			}
			return nil
		},
	}
	root.PersistentFlags().StringVar(&apiURL, "api-url", "", "CRM API base URL (overrides config)")

	root.AddCommand(exportCmd(&apiURL))
	return root
}

func exportCmd(apiURL *string) *cobra.Command {
	var (
		out    string
		status string
		search string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Fetch leads and write them to a CSV file",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, client, cleanup, err := setup(*apiURL)
			if err != nil {
				return err
			}
			defer cleanup()

			leads, err := client.ListLeads(context.Background())
			if err != nil {
				return fmt.Errorf("fetch leads: %w", err)
			}
			var pipeline board.Pipeline
			pipeline.SetLeads(leads)
			pipeline.SetSearch(search)
			if status != "" {
				pipeline.SetStatusFilter(status)
			}
			filtered := pipeline.Filtered()
			csv := leadcsv.Export(filtered)
			if err := os.WriteFile(out, []byte(csv+"\n"), 0o644); err != nil {
				return fmt.Errorf("write %s: %w", out, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported %d lead(s) to %s\n", len(filtered), out)
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "leads.csv", "output file path")
	cmd.Flags().StringVar(&status, "status", "", "filter by exact status (default all)")
	cmd.Flags().StringVar(&search, "search", "", "filter by name, company or source")
	return cmd
}

// setup loads the config, builds the file-backed logger and the API client.
// The logger writes next to the config file so the TUI never shares the
// terminal with log output.
func setup(apiURL string) (*config.Store, *api.Client, func(), error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, nil, fmt.Errorf("load config: %w", err)
	}
	if apiURL != "" {
		cfg.Config.APIBaseURL = apiURL
	}

	logger, cleanup, err := newLogger()
	if err != nil {
		return nil, nil, nil, err
	}

	client := api.New(cfg.Config.APIBaseURL, logger)
	return cfg, client, cleanup, nil
}

func newLogger() (*zap.Logger, func(), error) {
	dir, err := os.UserConfigDir()
	if err != nil || dir == "" {
		dir = os.TempDir()
	}
	logPath := filepath.Join(dir, "leadterm", "leadterm.log")
	if err := os.MkdirAll(filepath.Dir(logPath), 0o755); err != nil {
		return nil, nil, fmt.Errorf("create log dir: %w", err)
	}

	zcfg := zap.NewProductionConfig()
	zcfg.OutputPaths = []string{logPath}
	zcfg.ErrorOutputPaths = []string{logPath}
	logger, err := zcfg.Build()
	if err != nil {
		return nil, nil, fmt.Errorf("build logger: %w", err)
	}
	return logger, func() { _ = logger.Sync() }, nil
}
