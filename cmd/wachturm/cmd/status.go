package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/msto63/wachturm/internal/monitor"
	"github.com/msto63/wachturm/internal/source"
	"github.com/msto63/wachturm/pkg/core/health"
	"github.com/msto63/wachturm/pkg/core/version"
	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Prüft die Erreichbarkeit des Backends",
	Long: `Prüft, ob die Endpunkte für Intrusion-Logs und Knotendaten
antworten und gültige Daten liefern.`,
	RunE: runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	logger, cleanup, err := newLogger(cfg, "status", verbose)
	if err != nil {
		return err
	}
	defer cleanup()

	client, err := newClient(cfg, logger)
	if err != nil {
		return err
	}

	timeout := cfg.API.Timeout.Duration
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	report := backendRegistry(client).CheckWithTimeout(timeout)

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Backend %s: %s\n", client.BaseURL(), report.Status)
	for _, c := range report.Checks {
		line := fmt.Sprintf("  %-6s %-9s %s", c.Name, c.Status, c.Duration.Round(time.Millisecond))
		if c.Message != "" {
			line += "  " + c.Message
		}
		fmt.Fprintln(out, line)
	}

	if !report.Healthy() {
		return fmt.Errorf("backend nicht gesund")
	}
	return nil
}

func backendRegistry(client *source.Client) *health.Registry {
	reg := health.NewRegistry("wachturm", version.Application)
	reg.Register(health.ErrorCheck("logs", func(ctx context.Context) error {
		_, err := client.FetchLogs(ctx, monitor.All())
		return err
	}))
	reg.Register(health.ErrorCheck("node", func(ctx context.Context) error {
		_, err := client.FetchNode(ctx)
		return err
	}))
	return reg
}
