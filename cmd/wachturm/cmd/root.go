package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/msto63/wachturm/internal/monitor"
	"github.com/msto63/wachturm/internal/source"
	"github.com/msto63/wachturm/pkg/core/config"
	"github.com/msto63/wachturm/pkg/core/logging"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	cfgFile  string
	verbose  bool
	apiURL   string
	logFile  string
	logLevel string
)

var rootCmd = &cobra.Command{
	Use:   "wachturm",
	Short: "Wachturm - Telemetrie-Konsole",
	Long: `Wachturm beobachtet Sicherheits- und Netzwerk-Telemetrie
eines entfernten Backends direkt im Terminal.

Befehle:
  logs      - Intrusion-Logs live verfolgen, filtern und anhalten
  node      - CPU-, Speicher- und Plattenauslastung des Knotens
  snapshot  - Einmaliger Abruf der aktuellen Logs
  mock-api  - Lokales Test-Backend mit synthetischen Daten`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		printError("Ausführung fehlgeschlagen", err)
	}
	return err
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Config-Datei (default: $WACHTURM_CONFIG oder ./configs/wachturm.toml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose Output")
	rootCmd.PersistentFlags().StringVar(&apiURL, "api-url", "", "Basis-URL des Telemetrie-Backends")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "Log-Datei (TUI-Befehle loggen nur dorthin)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log-Level (debug, info, warn, error)")
}

// loadConfig reads the configuration and applies persistent flag overrides
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if cfgFile != "" {
		cfg, err = config.Load(cfgFile)
	} else {
		cfg, err = config.LoadFromEnv()
	}
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("api-url") {
		cfg.API.BaseURL = apiURL
	}
	if flags.Changed("log-file") {
		cfg.General.LogFile = logFile
	}
	if flags.Changed("log-level") {
		cfg.General.LogLevel = logLevel
	}
	if verbose {
		cfg.General.LogLevel = "debug"
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// newLogger builds the process logger. TUI commands pass console=false so
// the alternate screen stays clean. The cleanup flushes and closes the log file.
func newLogger(cfg *config.Config, name string, console bool) (*zap.Logger, func(), error) {
	lc := logging.DefaultLoggerConfig(name)
	lc.Level = cfg.General.LogLevel
	lc.Format = cfg.General.LogFormat
	lc.File = cfg.General.LogFile
	lc.Console = console
	return logging.NewLogger(lc)
}

func newClient(cfg *config.Config, logger *zap.Logger) (*source.Client, error) {
	return source.New(cfg.API.BaseURL,
		source.WithTimeout(cfg.API.Timeout.Duration),
		source.WithLogger(logger),
	)
}

// filterFlags are the mutually exclusive filter options of logs and snapshot
type filterFlags struct {
	port   string
	source string
	typ    string
	filter string
}

// queryFromFlags builds a query from the mutually exclusive filter flags
func queryFromFlags(f filterFlags) (monitor.Query, error) {
	var queries []monitor.Query
	if f.port != "" {
		queries = append(queries, monitor.ByPort(f.port))
	}
	if f.source != "" {
		queries = append(queries, monitor.BySourceIP(f.source))
	}
	if f.typ != "" {
		queries = append(queries, monitor.ByType(f.typ))
	}
	if f.filter != "" {
		q, err := parseFilter(f.filter)
		if err != nil {
			return monitor.Query{}, err
		}
		queries = append(queries, q)
	}

	switch len(queries) {
	case 0:
		return monitor.All(), nil
	case 1:
		return queries[0], queries[0].Validate()
	default:
		return monitor.Query{}, fmt.Errorf("nur einer von --port, --source, --type, --filter erlaubt")
	}
}

// parseFilter reads "mode=value", e.g. "port=22" or "ip=10.0.0.5".
// "all" selects the unfiltered query.
func parseFilter(s string) (monitor.Query, error) {
	name, value, _ := strings.Cut(s, "=")
	mode, ok := monitor.ParseFilterMode(name)
	if !ok {
		return monitor.Query{}, fmt.Errorf("unbekannter Filter %q (port, source, type)", name)
	}
	if mode == monitor.FilterNone {
		return monitor.All(), nil
	}
	return monitor.Query{Mode: mode, Value: strings.TrimSpace(value)}, nil
}

func addFilterFlags(cmd *cobra.Command, f *filterFlags) {
	cmd.Flags().StringVar(&f.port, "port", "", "Nur Logs dieses Ports")
	cmd.Flags().StringVar(&f.source, "source", "", "Nur Logs dieser Quell-IP")
	cmd.Flags().StringVar(&f.typ, "type", "", "Nur Logs dieses Typs")
	cmd.Flags().StringVar(&f.filter, "filter", "", "Filter als modus=wert (z.B. port=22, source=10.0.0.5)")
}

func printError(msg string, err error) {
	fmt.Fprintf(os.Stderr, "Fehler: %s: %v\n", msg, err)
}
