package cmd

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/msto63/wachturm/internal/mockapi"
	"github.com/spf13/cobra"
)

var (
	mockAddr      string
	mockRetention int
	mockEmit      time.Duration
	mockSeed      int64
)

var mockAPICmd = &cobra.Command{
	Use:   "mock-api",
	Short: "Startet ein lokales Test-Backend",
	Long: `Startet ein lokales Test-Backend mit synthetischen Daten.

Endpunkte:
  GET  /health
  GET  /logs/intruder
  GET  /logs/intruder/port/{port}
  GET  /logs/intruder/source/{ip}
  GET  /logs/intruder/type/{type}
  POST /logs/intruder
  GET  /node`,
	RunE: runMockAPI,
}

func init() {
	rootCmd.AddCommand(mockAPICmd)

	mockAPICmd.Flags().StringVar(&mockAddr, "addr", "", "Listen-Adresse (default aus Config: :6000)")
	mockAPICmd.Flags().IntVar(&mockRetention, "retention", 0, "Anzahl gehaltener Einträge (default aus Config: 500)")
	mockAPICmd.Flags().DurationVar(&mockEmit, "emit-interval", 0, "Abstand generierter Einträge (default aus Config: 250ms)")
	mockAPICmd.Flags().Int64Var(&mockSeed, "seed", 0, "Zufalls-Seed (default: Startzeit)")
}

func runMockAPI(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("addr") {
		cfg.MockAPI.Addr = mockAddr
	}
	if cmd.Flags().Changed("retention") {
		cfg.MockAPI.Retention = mockRetention
	}
	if cmd.Flags().Changed("emit-interval") {
		cfg.MockAPI.EmitInterval.Duration = mockEmit
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger, cleanup, err := newLogger(cfg, "mock-api", true)
	if err != nil {
		return err
	}
	defer cleanup()

	mcfg := mockapi.DefaultConfig()
	mcfg.Retention = cfg.MockAPI.Retention
	mcfg.EmitInterval = cfg.MockAPI.EmitInterval.Duration
	mcfg.Logger = logger
	if cmd.Flags().Changed("seed") {
		mcfg.Seed = mockSeed
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return mockapi.NewServer(mcfg).ListenAndServe(ctx, cfg.MockAPI.Addr)
}
