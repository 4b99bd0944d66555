// Command palabras-admin inspects and maintains stored progress without
// running the HTTP server.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/vytor/palabras/internal/backup"
	"github.com/vytor/palabras/internal/config"
	"github.com/vytor/palabras/internal/db"
	"github.com/vytor/palabras/internal/logger"
	"github.com/vytor/palabras/internal/progression"
	"github.com/vytor/palabras/internal/repository/sqlite"
	"github.com/vytor/palabras/internal/services"
	"github.com/vytor/palabras/internal/storage"
)

type app struct {
	cfg  config.Config
	db   *db.DB
	data services.DataService
	prof services.ProfileService
	st   *storage.Store
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cfg := config.Load()
	a := &app{cfg: cfg}

	root := &cobra.Command{
		Use:          "palabras-admin",
		Short:        "Maintain palabras learning progress",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.open()
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if a.db != nil {
				return a.db.Close()
			}
			return nil
		},
	}
	root.PersistentFlags().StringVar(&a.cfg.DBPath, "db", cfg.DBPath, "SQLite database path")
	root.PersistentFlags().StringVar(&a.cfg.StoragePrefix, "prefix", cfg.StoragePrefix, "storage key prefix")
	root.PersistentFlags().StringVar(&a.cfg.LogLevel, "log-level", cfg.LogLevel, "log level (DEBUG, INFO, WARN, ERROR)")

	root.AddCommand(
		a.statsCmd(),
		a.exportCmd(),
		a.importCmd(),
		a.resetCmd(),
		a.backupCmd(),
		a.reportCmd(),
	)
	return root
}

func (a *app) open() error {
	log := logger.New(logger.WithLevel(logger.ParseLevel(a.cfg.LogLevel)), logger.WithOutput(os.Stderr))
	logger.SetDefault(log)

	if err := a.cfg.Validate(); err != nil {
		return err
	}
	database, err := db.OpenWithLogger(a.cfg.DBPath, log)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	a.db = database
	a.st = storage.New(sqlite.NewKVRepository(database.DB), a.cfg.StoragePrefix, storage.WithLogger(log))
	if !a.st.Initialize(context.Background()) {
		return fmt.Errorf("initialize stored progress")
	}

	loc, err := a.cfg.Location()
	if err != nil {
		return err
	}
	a.data = services.NewDataService(a.st)
	a.prof = services.NewProfileService(a.st, services.WithLocation(loc))
	return nil
}

func (a *app) statsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Print a progress summary",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			p, err := a.prof.GetProfile(ctx)
			if err != nil {
				return err
			}
			lp := progression.Progress(p.XP)
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "level:        %d (%d/%d XP, %.1f%%)\n", lp.Level, lp.XPIntoLevel, lp.XPForNext, lp.Percent)
			fmt.Fprintf(out, "total xp:     %d\n", p.XP)
			fmt.Fprintf(out, "streak:       %d (longest %d)\n", p.Streak, p.LongestStreak)
			fmt.Fprintf(out, "exercises:    %d\n", p.ExercisesCompleted)
			fmt.Fprintf(out, "words:        %d (%d mastered)\n", len(p.WordsLearned), p.MasteredWords())
			fmt.Fprintf(out, "accuracy:     %.1f%%\n", p.Statistics.AverageAccuracy*100)
			fmt.Fprintf(out, "achievements: %d\n", len(p.Achievements))
			fmt.Fprintf(out, "milestones:   %d\n", len(p.AchievedMilestones))
			return nil
		},
	}
}

func (a *app) exportCmd() *cobra.Command {
	var outPath string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write all progress as a JSON document",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := a.data.Export(cmd.Context())
			if err != nil {
				return err
			}
			return writeOut(cmd.OutOrStdout(), outPath, data)
		},
	}
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "output file (default stdout)")
	return cmd
}

func (a *app) importCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import FILE",
		Short: "Replace all progress with an exported JSON document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			if err := a.data.Import(cmd.Context(), data); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "imported %s\n", args[0])
			return nil
		},
	}
}

func (a *app) resetCmd() *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Delete all progress and start over",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return fmt.Errorf("refusing to reset without --yes")
			}
			if err := a.data.Reset(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "progress reset")
			return nil
		},
	}
	cmd.Flags().BoolVar(&yes, "yes", false, "confirm the reset")
	return cmd
}

func (a *app) backupCmd() *cobra.Command {
	var dir string
	var keep int
	cmd := &cobra.Command{
		Use:   "backup",
		Short: "Write one rotating backup now",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if dir == "" {
				return fmt.Errorf("--dir is required when BACKUP_DIR is not set")
			}
			path, err := backup.New(a.st, dir, keep).Run(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}
	cmd.Flags().StringVar(&dir, "dir", a.cfg.BackupDir, "backup directory")
	cmd.Flags().IntVar(&keep, "keep", a.cfg.BackupKeep, "number of backups to keep")
	return cmd
}

func (a *app) reportCmd() *cobra.Command {
	var outPath string
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Write a spreadsheet of all progress",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if outPath == "" {
				outPath = fmt.Sprintf("palabras-progress-%s.xlsx", time.Now().Format("2006-01-02"))
			}
			data, err := a.data.Report(cmd.Context())
			if err != nil {
				return err
			}
			if err := os.WriteFile(outPath, data, 0o644); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), outPath)
			return nil
		},
	}
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "output .xlsx file")
	return cmd
}

func writeOut(stdout io.Writer, path string, data []byte) error {
	if path == "" {
		_, err := stdout.Write(data)
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
