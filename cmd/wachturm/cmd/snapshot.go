package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/msto63/wachturm/internal/monitor"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var (
	snapshotFilter filterFlags
	snapshotLimit  int
	snapshotOutput string
)

var snapshotCmd = &cobra.Command{
	Use:   "snapshot",
	Short: "Ruft die aktuellen Intrusion-Logs einmalig ab",
	Long: `Ruft die aktuellen Intrusion-Logs einmalig ab und gibt sie aus.

Ausgabeformate: table (Standard), json, yaml`,
	RunE: runSnapshot,
}

func init() {
	rootCmd.AddCommand(snapshotCmd)

	addFilterFlags(snapshotCmd, &snapshotFilter)
	snapshotCmd.Flags().IntVar(&snapshotLimit, "limit", 0, "Nur die neuesten N Einträge (default aus Config: 100)")
	snapshotCmd.Flags().StringVarP(&snapshotOutput, "output", "o", "table", "Ausgabeformat (table, json, yaml)")
}

// snapshotRow is the serialized form of one row
type snapshotRow struct {
	Time          string `json:"time" yaml:"time"`
	Severity      string `json:"severity" yaml:"severity"`
	SeverityClass string `json:"severity_class" yaml:"severity_class"`
	Type          string `json:"type" yaml:"type"`
	Source        string `json:"source" yaml:"source"`
	Destination   string `json:"destination" yaml:"destination"`
	Port          string `json:"port" yaml:"port"`
	Protocol      string `json:"protocol" yaml:"protocol"`
}

func runSnapshot(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	limit := cfg.Logs.Capacity
	if cmd.Flags().Changed("limit") {
		limit = snapshotLimit
	}
	if limit < 1 {
		return fmt.Errorf("--limit muss positiv sein")
	}

	query, err := queryFromFlags(snapshotFilter)
	if err != nil {
		return err
	}

	logger, cleanup, err := newLogger(cfg, "snapshot", verbose)
	if err != nil {
		return err
	}
	defer cleanup()

	client, err := newClient(cfg, logger)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), cfg.API.Timeout.Duration)
	defer cancel()

	records, err := client.FetchLogs(ctx, query)
	if err != nil {
		return err
	}

	// same bound as the live view
	buf := monitor.NewBuffer[monitor.LogRecord](limit)
	buf.Replace(records)
	snapshot, _ := buf.Snapshot()

	return writeRows(cmd.OutOrStdout(), monitor.Project(snapshot), snapshotOutput)
}

func writeRows(w io.Writer, rows []monitor.Row, format string) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(toSnapshotRows(rows))
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(toSnapshotRows(rows)); err != nil {
			return err
		}
		return enc.Close()
	case "table", "":
		_, err := fmt.Fprintln(w, renderTable(rows))
		return err
	default:
		return fmt.Errorf("unbekanntes Ausgabeformat %q", format)
	}
}

func toSnapshotRows(rows []monitor.Row) []snapshotRow {
	out := make([]snapshotRow, len(rows))
	for i, r := range rows {
		out[i] = snapshotRow{
			Time:          r.Time,
			Severity:      r.Severity,
			SeverityClass: r.SeverityClass,
			Type:          r.Type,
			Source:        r.Source,
			Destination:   r.Destination,
			Port:          r.Port,
			Protocol:      r.Protocol,
		}
	}
	return out
}

var severityColors = map[string]lipgloss.Color{
	monitor.ClassOK:       lipgloss.Color("#10B981"),
	monitor.ClassWarn:     lipgloss.Color("#F59E0B"),
	monitor.ClassCritical: lipgloss.Color("#EF4444"),
	monitor.ClassUnknown:  lipgloss.Color("#94A3B8"),
}

func renderTable(rows []monitor.Row) string {
	data := make([][]string, len(rows))
	for i, r := range rows {
		data[i] = []string{r.Time, r.Severity, r.Type, r.Source, r.Destination, r.Port, r.Protocol}
	}

	return table.New().
		Border(lipgloss.NormalBorder()).
		Headers("ZEIT", "SCHWERE", "TYP", "QUELLE", "ZIEL", "PORT", "PROTOKOLL").
		Rows(data...).
		StyleFunc(func(row, col int) lipgloss.Style {
			style := lipgloss.NewStyle().Padding(0, 1)
			if row == table.HeaderRow {
				return style.Bold(true)
			}
			if col == 1 && row >= 0 && row < len(rows) {
				return style.Foreground(severityColors[rows[row].SeverityClass])
			}
			return style
		}).
		String()
}
