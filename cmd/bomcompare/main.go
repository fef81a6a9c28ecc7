// Command bomcompare compares a master BOM against up to five target
// BOMs and writes the categorized diff as JSON or a spreadsheet.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"

	"github.com/partsync/bomcompare/internal/bom"
	"github.com/partsync/bomcompare/internal/bom/service"
	"github.com/partsync/bomcompare/internal/export"
	"github.com/partsync/bomcompare/internal/history"
	"github.com/partsync/bomcompare/pkg/config"
)

var rootCmd = &cobra.Command{
	Use:   "bomcompare",
	Short: "Compare a master bill of materials against candidate BOMs",
}

var (
	masterPath  string
	targetPaths []string
	outPath     string
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run one comparison session",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return run(cmd.Context())
	},
}

func init() {
	runCmd.Flags().StringVar(&masterPath, "master", "", "master BOM file (required)")
	runCmd.Flags().StringArrayVar(&targetPaths, "target", nil, "target BOM file (repeatable, 1-5)")
	runCmd.Flags().StringVar(&outPath, "out", "", "output file; .json or .xlsx decides the rendering (default: JSON to stdout)")
	_ = runCmd.MarkFlagRequired("master")
	_ = runCmd.MarkFlagRequired("target")
	rootCmd.AddCommand(runCmd)
}

func run(ctx context.Context) error {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	master, err := readInput(masterPath)
	if err != nil {
		return err
	}
	targets := make([]service.Input, 0, len(targetPaths))
	for _, path := range targetPaths {
		in, err := readInput(path)
		if err != nil {
			return err
		}
		targets = append(targets, in)
	}

	session, err := service.New(cfg, logger).Run(ctx, master, targets)
	if err != nil {
		return err
	}

	if err := persist(ctx, cfg, logger, session); err != nil {
		return err
	}
	return write(session)
}

// persist saves the session when a history DSN is configured.
func persist(ctx context.Context, cfg *config.Config, logger *slog.Logger, session *bom.ComparisonSession) error {
	if !cfg.History.Enabled {
		return nil
	}
	pool, err := pgxpool.New(ctx, cfg.History.DSN)
	if err != nil {
		return fmt.Errorf("failed to connect to history store: %w", err)
	}
	defer pool.Close()

	store := history.NewPostgresStore(pool)
	if err := store.Migrate(ctx); err != nil {
		return err
	}
	id, err := store.Save(ctx, session)
	if err != nil {
		return err
	}
	logger.Info("session saved", "session_id", id)
	return nil
}

func write(session *bom.ComparisonSession) error {
	if outPath == "" {
		return export.WriteJSON(os.Stdout, session)
	}

	f, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(outPath)) {
	case ".xlsx":
		return export.WriteXLSX(f, session)
	default:
		return export.WriteJSON(f, session)
	}
}

func readInput(path string) (service.Input, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return service.Input{}, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return service.Input{Filename: filepath.Base(path), Data: data}, nil
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
