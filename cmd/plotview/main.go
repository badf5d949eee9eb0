// Package main provides the terminal entry point for plotview.
package main

import (
	"fmt"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"plotview/internal/chart"
	"plotview/internal/config"
	"plotview/internal/tui"
	"plotview/internal/viewstore"
)

var (
	configPath string
	stateDir   string
	dpr        float64
	logPath    string
	chartID    string
	sheet      string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "plotview [dataset]",
		Short: "Interactive grid and curve charts in the terminal",
		Long: `plotview renders grid (rows of scalar cells) and curve (id-tagged point series)
datasets from JSON, CSV or XLSX files with marquee zoom, hover inspection and
views that persist between sessions.`,
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE:         run,
	}

	rootCmd.Flags().StringVar(&configPath, "config", "", "YAML config file")
	rootCmd.Flags().StringVar(&stateDir, "state-dir", "", "Directory for persisted views (overrides config)")
	rootCmd.Flags().Float64Var(&dpr, "dpr", 0, "Device pixel ratio of the overlay raster (overrides config)")
	rootCmd.Flags().StringVar(&logPath, "log", "", "Write debug logs to this file")
	rootCmd.Flags().StringVar(&chartID, "chart-id", "", "Identity views are stored under (default: dataset path)")
	rootCmd.Flags().StringVar(&sheet, "sheet", "", "Worksheet to read from XLSX files (default: first)")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if stateDir != "" {
		cfg.StateDir = stateDir
	}
	if dpr > 0 {
		cfg.DevicePixelRatio = dpr
	}

	if logPath != "" {
		f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("open log: %w", err)
		}
		defer f.Close()
		chart.SetLogger(slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	store, err := viewstore.NewFileStore(cfg.StateDir, cfg.ViewCacheSize)
	if err != nil {
		return err
	}

	opts := tui.Options{Config: cfg, Store: store, ChartID: chartID, Sheet: sheet}
	if len(args) > 0 {
		if _, err := os.Stat(args[0]); err != nil {
			return fmt.Errorf("dataset: %w", err)
		}
		opts.Path = args[0]
	}

	p := tea.NewProgram(tui.New(opts), tea.WithAltScreen(), tea.WithMouseAllMotion())
	if _, err := p.Run(); err != nil {
		return err
	}
	return nil
}
