package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/ehr/risksim/internal/config"
	"github.com/ehr/risksim/internal/synth"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "risksim",
		Short: "Synthetic PHI access-event dataset generator",
		Long: "risksim synthesizes healthcare-staff record-access events with " +
			"deterministic risk scores, for testing privacy risk-analytics pipelines.",
	}

	rootCmd.AddCommand(generateCmd())
	rootCmd.AddCommand(scenariosCmd())
	rootCmd.AddCommand(rosterCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newLogger(cfg *config.Config) zerolog.Logger {
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	if cfg.IsDev() {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).With().Timestamp().Logger()
	}
	return logger
}

// loadConfig loads the environment configuration and applies any flags the
// caller set on top of it.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	if cmd.Flags().Changed("seed") {
		cfg.Seed, _ = cmd.Flags().GetInt64("seed")
	}
	if cmd.Flags().Changed("rows") {
		cfg.RowCount, _ = cmd.Flags().GetInt("rows")
	}
	if cmd.Flags().Changed("start") {
		cfg.StartDate, _ = cmd.Flags().GetString("start")
	}
	if cmd.Flags().Changed("days") {
		cfg.DaysSpan, _ = cmd.Flags().GetInt("days")
	}
	if cmd.Flags().Changed("out") {
		cfg.OutputPath, _ = cmd.Flags().GetString("out")
	}
	if cmd.Flags().Changed("format") {
		cfg.OutputFormat, _ = cmd.Flags().GetString("format")
	}
	if cmd.Flags().Changed("scenarios") {
		cfg.Scenarios, _ = cmd.Flags().GetString("scenarios")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func generateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate one dataset and write it to the output file",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			return runGenerate(cfg)
		},
	}

	cmd.Flags().Int64("seed", 0, "Random seed")
	cmd.Flags().Int("rows", 0, "Number of bulk-sampled rows")
	cmd.Flags().String("start", "", "Window start date (YYYY-MM-DD)")
	cmd.Flags().Int("days", 0, "Window span in days")
	cmd.Flags().String("out", "", "Output file path")
	cmd.Flags().String("format", "", "Output format: csv or ndjson")
	cmd.Flags().String("scenarios", "", "Enabled scenarios: all, none, or a comma-separated list")

	return cmd
}

func runGenerate(cfg *config.Config) error {
	logger := newLogger(cfg)

	start, err := cfg.Start()
	if err != nil {
		return err
	}
	format, err := synth.ParseFormat(cfg.OutputFormat)
	if err != nil {
		return err
	}
	scenarios, err := synth.SelectScenarios(cfg.Scenarios)
	if err != nil {
		return err
	}

	gen, err := synth.NewGenerator(synth.GeneratorConfig{
		Seed:      cfg.Seed,
		RowCount:  cfg.RowCount,
		Window:    synth.Window{Start: start, Days: cfg.DaysSpan},
		Dists:     synth.DefaultDistributions(),
		Scenarios: scenarios,
	})
	if err != nil {
		return err
	}

	logger.Info().
		Str("run_id", gen.RunID()).
		Int64("seed", cfg.Seed).
		Int("rows", cfg.RowCount).
		Int("scenarios", len(scenarios)).
		Str("window_start", cfg.StartDate).
		Int("window_days", cfg.DaysSpan).
		Msg("generating dataset")

	rows, result, err := gen.Generate()
	if err != nil {
		return err
	}

	// The output file is created only after generation succeeded, so a
	// configuration or scenario failure leaves no partial artifact.
	f, err := os.Create(cfg.OutputPath)
	if err != nil {
		return fmt.Errorf("create output %s: %w", cfg.OutputPath, err)
	}
	if err := synth.Write(f, rows, format); err != nil {
		f.Close()
		return fmt.Errorf("write output %s: %w", cfg.OutputPath, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close output %s: %w", cfg.OutputPath, err)
	}

	logger.Info().
		Str("run_id", result.RunID).
		Int("bulk_rows", result.BulkRows).
		Int("total_rows", result.TotalRows).
		Dur("duration", result.Duration).
		Str("output", cfg.OutputPath).
		Msg("dataset written")

	return nil
}

func scenariosCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "scenarios",
		Short: "List the available scenario injectors",
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tDESCRIPTION")
			for _, sc := range synth.Scenarios() {
				fmt.Fprintf(w, "%s\t%s\n", sc.Name, sc.Description)
			}
			return w.Flush()
		},
	}
}

func rosterCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "roster",
		Short: "Print the staff role distribution",
		RunE: func(cmd *cobra.Command, args []string) error {
			counts := synth.DefaultRoleCounts()
			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ROLE\tCOUNT\tDEPARTMENT\tRISK WEIGHT")
			total := 0
			for _, rc := range counts {
				fmt.Fprintf(w, "%s\t%d\t%s\t%d\n",
					rc.Role, rc.Count, synth.DepartmentOf(rc.Role), synth.RiskWeightOf(rc.Role))
				total += rc.Count
			}
			fmt.Fprintf(w, "TOTAL\t%d\t\t\n", total)
			return w.Flush()
		},
	}
}
