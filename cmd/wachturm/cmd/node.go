package cmd

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/msto63/wachturm/internal/monitor"
	"github.com/msto63/wachturm/internal/tui/nodeview"
	"github.com/spf13/cobra"
)

var nodeInterval time.Duration

var nodeCmd = &cobra.Command{
	Use:   "node",
	Short: "Zeigt die Ressourcen-Auslastung des Knotens",
	Long: `Zeigt CPU-, Speicher- und Plattenauslastung des Knotens.

Die letzten zehn Messwerte bleiben als Verlauf sichtbar.

Tastenkuerzel:
  p / Space   Pause/Resume
  q / Ctrl+C  Beenden`,
	RunE: runNode,
}

func init() {
	rootCmd.AddCommand(nodeCmd)
	nodeCmd.Flags().DurationVar(&nodeInterval, "interval", 0, "Abrufintervall (default aus Config: 5s)")
}

func runNode(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("interval") {
		cfg.Node.Interval.Duration = nodeInterval
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger, cleanup, err := newLogger(cfg, "node", false)
	if err != nil {
		return err
	}
	defer cleanup()

	client, err := newClient(cfg, logger)
	if err != nil {
		return err
	}

	mon := monitor.NewNodeMonitor(client,
		monitor.WithCapacity(cfg.Node.Capacity),
		monitor.WithInterval(cfg.Node.Interval.Duration),
		monitor.WithLogger(logger),
	)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return nodeview.Run(ctx, mon, client.BaseURL())
}
