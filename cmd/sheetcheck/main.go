// Command sheetcheck checks the workout sheet the dashboard reads, without starting the server.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/2beens/fitnessdash/internal/config"
	"github.com/2beens/fitnessdash/internal/sheetcheck"
	"github.com/2beens/fitnessdash/internal/spreadsheet"
	"github.com/2beens/fitnessdash/internal/workouts"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	env        string
	configPath string
	sourceFile string
	sampleSize int
	timeout    time.Duration
)

var errChecksFailed = errors.New("some checks failed")

var rootCmd = &cobra.Command{
	Use:   "sheetcheck",
	Short: "Check the workout sheet behind the fitness dashboard",
	Long: `sheetcheck reads the configured Google Sheet (or a local .xlsx workbook)
and reports what the dashboard would make of it: the header row, workout types,
extracted movements and structure issues.`,
	SilenceUsage: true,
	Version:      "1.0.0",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		log.SetOutput(cmd.ErrOrStderr())
		log.SetLevel(log.WarnLevel)
	},
}

var connectionCmd = &cobra.Command{
	Use:   "connection",
	Short: "Read the header row only",
	RunE:  runConnection,
}

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Report structure issues of the sheet",
	RunE:  runValidate,
}

var workoutsCmd = &cobra.Command{
	Use:   "workouts",
	Short: "List the workout types found in the sheet",
	RunE:  runWorkouts,
}

var movementsCmd = &cobra.Command{
	Use:   "movements",
	Short: "Show the movements extracted from the sheet",
	RunE:  runMovements,
}

var selftestCmd = &cobra.Command{
	Use:   "selftest",
	Short: "Run all checks on a built-in sample, then on the real sheet",
	RunE:  runSelftest,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&env, "env", "development", "environment [prod | production | dev | development]")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "./config.toml", "path for the TOML config file")
	rootCmd.PersistentFlags().StringVar(&sourceFile, "file", "", "read a local .xlsx workbook instead of the configured sheet")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 30*time.Second, "timeout for reading the sheet")

	movementsCmd.Flags().IntVar(&sampleSize, "sample", sheetcheck.DefaultSampleSize, "number of movement entries to print")
	selftestCmd.Flags().IntVar(&sampleSize, "sample", sheetcheck.DefaultSampleSize, "number of movement entries to print")

	rootCmd.AddCommand(connectionCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(workoutsCmd)
	rootCmd.AddCommand(movementsCmd)
	rootCmd.AddCommand(selftestCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runConnection(cmd *cobra.Command, _ []string) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
	defer cancel()

	src, err := openSource(ctx)
	if err != nil {
		return err
	}

	status := spreadsheet.TestConnection(ctx, src)
	fmt.Fprintln(cmd.OutOrStdout(), status.Message)
	if !status.OK {
		return errChecksFailed
	}
	return nil
}

func runValidate(cmd *cobra.Command, _ []string) error {
	t, err := fetchTable(cmd.Context())
	if err != nil {
		return err
	}
	if !sheetcheck.Validate(cmd.OutOrStdout(), t) {
		return errChecksFailed
	}
	return nil
}

func runWorkouts(cmd *cobra.Command, _ []string) error {
	t, err := fetchTable(cmd.Context())
	if err != nil {
		return err
	}
	if !sheetcheck.DetectWorkouts(cmd.OutOrStdout(), t) {
		return errChecksFailed
	}
	return nil
}

func runMovements(cmd *cobra.Command, _ []string) error {
	t, err := fetchTable(cmd.Context())
	if err != nil {
		return err
	}
	if !sheetcheck.ExtractMovements(cmd.OutOrStdout(), t, sampleSize) {
		return errChecksFailed
	}
	return nil
}

// runSelftest fails only when the built-in sample fails; the real sheet is informational.
func runSelftest(cmd *cobra.Command, _ []string) error {
	out := cmd.OutOrStdout()

	fmt.Fprintln(out, "Running checks on sample data")
	if res := sheetcheck.RunAll(out, sheetcheck.SampleTable(), sampleSize); !res.OK() {
		return errChecksFailed
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, "Running checks on the configured sheet")
	ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
	defer cancel()

	src, err := openSource(ctx)
	if err != nil {
		fmt.Fprintf(out, "Skipped: %s\n", err)
		return nil
	}
	raw, err := src.Fetch(ctx)
	if err != nil {
		fmt.Fprintf(out, "Skipped, could not read %s: %s\n", src.Name(), err)
		return nil
	}
	sheetcheck.RunAll(out, raw, sampleSize)

	return nil
}

func fetchTable(ctx context.Context) (*workouts.Table, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	src, err := openSource(ctx)
	if err != nil {
		return nil, err
	}
	raw, err := src.Fetch(ctx)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", src.Name(), err)
	}
	return workouts.Normalize(raw), nil
}

func openSource(ctx context.Context) (spreadsheet.Source, error) {
	if sourceFile != "" {
		return spreadsheet.Open(ctx, spreadsheet.SourceParams{
			SourceFile: sourceFile,
			Worksheet:  spreadsheet.DefaultWorksheet,
		})
	}

	cfg, err := config.Load(env, configPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	params := spreadsheet.SourceParams{
		SheetName:  cfg.SheetName,
		Worksheet:  cfg.Worksheet,
		SourceFile: cfg.SourceFile,
	}
	if cfg.SourceFile == "" {
		params.CredentialsJSON, err = spreadsheet.LoadCredentials(ctx, spreadsheet.CredentialsParams{
			SecretName: cfg.CredentialsSecret,
			ProjectID:  cfg.GCPProject,
			File:       cfg.CredentialsFile,
		})
		if err != nil {
			return nil, fmt.Errorf("load google credentials: %w", err)
		}
	}

	return spreadsheet.Open(ctx, params)
}
