// ============================================================================
// Wachturm - Telemetrie-Konsole
// ============================================================================
//
// Package:     cmd
// Description: CLI command for the intrusion log TUI
// Author:      Mike Stoffels
// Created:     2026-09-20
// License:     MIT
// ============================================================================

package cmd

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/msto63/wachturm/internal/monitor"
	"github.com/msto63/wachturm/internal/tui/logviewer"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	logsInterval time.Duration
	logsCapacity int
	logsFilter   filterFlags
)

var logsCmd = &cobra.Command{
	Use:     "logs",
	Aliases: []string{"intruder", "logviewer"},
	Short:   "Startet den Intrusion-Log Viewer",
	Long: `Startet den interaktiven Intrusion-Log Viewer.

Der Viewer fragt das Backend in festem Takt ab und zeigt die
neuesten Einträge an:

  - Echtzeit-Aktualisierung (Standard: alle 500ms)
  - Begrenzter Puffer (Standard: 100 Einträge)
  - Filter nach Port, Quell-IP oder Typ
  - Auto-Scroll koppelt an den Abruf: aus = Ansicht eingefroren

Tastenkuerzel:
  a / Space   Auto-Scroll und Abruf an/aus
  f           Filter bearbeiten (Tab wechselt Feld, Enter anwenden, Esc abbrechen)
  x           Filter entfernen
  g / G       Zum Anfang / Ende springen
  PgUp/PgDn   Scrollen
  ?           Hilfe
  q / Ctrl+C  Beenden`,
	RunE: runLogs,
}

func init() {
	rootCmd.AddCommand(logsCmd)

	logsCmd.Flags().DurationVar(&logsInterval, "interval", 0, "Abrufintervall (default aus Config: 500ms)")
	logsCmd.Flags().IntVar(&logsCapacity, "capacity", 0, "Maximale Anzahl der angezeigten Logs (default aus Config: 100)")
	addFilterFlags(logsCmd, &logsFilter)
}

func runLogs(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("interval") {
		cfg.Logs.Interval.Duration = logsInterval
	}
	if cmd.Flags().Changed("capacity") {
		cfg.Logs.Capacity = logsCapacity
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	query, err := queryFromFlags(logsFilter)
	if err != nil {
		return err
	}

	logger, cleanup, err := newLogger(cfg, "logs", false)
	if err != nil {
		return err
	}
	defer cleanup()

	client, err := newClient(cfg, logger)
	if err != nil {
		return err
	}

	mon := monitor.NewLogMonitor(client,
		monitor.WithCapacity(cfg.Logs.Capacity),
		monitor.WithInterval(cfg.Logs.Interval.Duration),
		monitor.WithLogger(logger),
	)
	if !query.IsAll() {
		if err := mon.SubmitFilter(query.Mode, query.Value); err != nil {
			return err
		}
	}

	logger.Info("log viewer starting",
		zap.String("api_url", client.BaseURL()),
		zap.String("query", query.String()),
		zap.Duration("interval", cfg.Logs.Interval.Duration),
	)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return logviewer.Run(ctx, mon, logviewer.Config{APIURL: client.BaseURL()})
}
