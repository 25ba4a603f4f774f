package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"movie-match-be/internal/bootstrap"
	"movie-match-be/internal/config"
	"movie-match-be/internal/dto"
	"movie-match-be/internal/repository/implementation"
	"movie-match-be/internal/service"
	"movie-match-be/pkg/database"

	"github.com/fatih/color"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "maintenance",
	Short: "Operator routines for the movies collection",
	Long: `Fills the movies collection the recommender searches.

Example usage:
  maintenance migrate    # create the movies table and match_movies function
  maintenance seed       # insert the bundled catalog when the table is empty
  maintenance backfill   # embed rows that have no embedding yet`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg = config.Load()
		if cfg.Database.Connection == "" {
			return fmt.Errorf("DB_CONNECTION_STRING is not set")
		}
		return nil
	},
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create extensions, the movies table and the match_movies function",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := connect(cmd.Context())
		if err != nil {
			return err
		}
		if err := implementation.Migrate(cmd.Context(), db); err != nil {
			return err
		}
		color.Green("✅ Migration complete")
		return nil
	},
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Embed and insert the bundled catalog if no movies exist",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runMaintenance(cmd.Context(), "Seeding", func(ctx context.Context, svc service.IMaintenanceService, progress service.ProgressFunc) (*dto.MaintenanceReport, error) {
			return svc.SeedIfEmpty(ctx, progress)
		})
	},
}

var backfillCmd = &cobra.Command{
	Use:   "backfill",
	Short: "Embed every movie that has no embedding",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runMaintenance(cmd.Context(), "Backfilling", func(ctx context.Context, svc service.IMaintenanceService, progress service.ProgressFunc) (*dto.MaintenanceReport, error) {
			return svc.BackfillMissingEmbeddings(ctx, progress)
		})
	},
}

func connect(ctx context.Context) (*gorm.DB, error) {
	db, err := database.Open(ctx, cfg.Database.Connection, cfg.Database.Options())
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	return db, nil
}

type operation func(ctx context.Context, svc service.IMaintenanceService, progress service.ProgressFunc) (*dto.MaintenanceReport, error)

func runMaintenance(ctx context.Context, label string, op operation) error {
	db, err := connect(ctx)
	if err != nil {
		return err
	}
	container, err := bootstrap.NewContainer(db, cfg)
	if err != nil {
		return err
	}
	defer container.Close()

	var bar *progressbar.ProgressBar
	progress := func(done, total int) {
		if bar == nil {
			bar = progressbar.NewOptions(total,
				progressbar.OptionEnableColorCodes(true),
				progressbar.OptionSetWidth(40),
				progressbar.OptionShowCount(),
				progressbar.OptionSetDescription("[cyan]"+label+"[reset]"),
				progressbar.OptionSetTheme(progressbar.Theme{
					Saucer:        "[green]=[reset]",
					SaucerHead:    "[green]>[reset]",
					SaucerPadding: " ",
					BarStart:      "[",
					BarEnd:        "]",
				}),
				progressbar.OptionOnCompletion(func() {
					fmt.Println()
				}),
			)
		}
		_ = bar.Set(done)
	}

	report, err := op(ctx, container.MaintenanceService, progress)
	if err != nil {
		return err
	}
	printReport(report)
	return nil
}

func printReport(r *dto.MaintenanceReport) {
	if r.Skipped {
		color.Yellow("⏭  %s skipped: movies already present", r.Operation)
		return
	}
	if r.Total == 0 {
		color.Green("✅ %s: nothing to do", r.Operation)
		return
	}

	fmt.Printf("%s: %d rows\n", r.Operation, r.Total)
	color.Green("  succeeded: %d", r.Succeeded)
	if r.Failed > 0 {
		color.Red("  failed:    %d (see the log file for details)", r.Failed)
	}
}

func main() {
	rootCmd.AddCommand(migrateCmd, seedCmd, backfillCmd)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		color.Red("❌ %v", err)
		os.Exit(1)
	}
}
