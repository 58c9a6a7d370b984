// Package main provides the insights CLI entry point.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"video-insights-go/internal/analysis"
	"video-insights-go/internal/config"
	"video-insights-go/internal/display"
	"video-insights-go/internal/export"
	"video-insights-go/internal/logger"
	"video-insights-go/internal/store"
)

var version = "0.1.0"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

// app is built lazily so that --help never touches the record store.
type app struct {
	storeKind string
	dataset   string
	verbose   bool
}

func (a *app) service(cmd *cobra.Command) (*analysis.Service, func(), error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	if a.dataset != "" {
		cfg.RecordStore = config.StoreExcel
		cfg.DatasetPath = a.dataset
	}
	if a.storeKind != "" {
		cfg.RecordStore = a.storeKind
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}

	level := "warn"
	if a.verbose {
		level = "debug"
	}
	log := logger.NewWithOptions(logger.Options{
		Environment: cfg.Environment,
		Level:       level,
		Output:      cmd.ErrOrStderr(),
	})

	src, closeStore, err := store.Open(cmd.Context(), cfg, log.Component("store"))
	if err != nil {
		return nil, nil, err
	}
	return analysis.NewService(src, nil, log.Entry), closeStore, nil
}

func newRootCmd() *cobra.Command {
	a := &app{}
	rootCmd := &cobra.Command{
		Use:          "insights",
		Short:        "Summarize emotion and scene annotations across analyzed videos",
		Version:      version,
		SilenceUsage: true,
	}
	rootCmd.SetVersionTemplate("insights version {{.Version}}\n")

	rootCmd.PersistentFlags().StringVar(&a.storeKind, "store", "", "Record store: mock, excel, http or postgres (default from RECORD_STORE)")
	rootCmd.PersistentFlags().StringVarP(&a.dataset, "dataset", "d", "", "Read records from this xlsx file")
	rootCmd.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "Log progress to stderr")

	rootCmd.AddCommand(newEmotionsCmd(a))
	rootCmd.AddCommand(newScenesCmd(a))
	rootCmd.AddCommand(newRecommendationsCmd())
	rootCmd.AddCommand(newReportCmd(a))
	return rootCmd
}

func newEmotionsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "emotions",
		Short: "Show the emotion distribution",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, closeStore, err := a.service(cmd)
			if err != nil {
				return err
			}
			defer closeStore()

			batch, err := svc.FetchRecords(cmd.Context())
			if err != nil {
				return err
			}
			f := display.NewTerminalFormatter()
			fmt.Fprint(cmd.OutOrStdout(), f.FormatEmotions(svc.EmotionAnalysis(batch.Records)))
			fmt.Fprint(cmd.ErrOrStderr(), f.FormatWarnings(batch.Warnings()))
			return nil
		},
	}
}

func newScenesCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "scenes",
		Short: "Rank scene tags by average engagement",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, closeStore, err := a.service(cmd)
			if err != nil {
				return err
			}
			defer closeStore()

			batch, err := svc.FetchRecords(cmd.Context())
			if err != nil {
				return err
			}
			f := display.NewTerminalFormatter()
			fmt.Fprint(cmd.OutOrStdout(), f.FormatScenes(svc.SceneAnalysis(batch.Records)))
			fmt.Fprint(cmd.ErrOrStderr(), f.FormatWarnings(batch.Warnings()))
			return nil
		},
	}
}

func newRecommendationsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "recommendations",
		Short: "List content recommendations",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc := analysis.NewService(nil, nil, logger.Discard().Entry)
			fmt.Fprint(cmd.OutOrStdout(), display.NewTerminalFormatter().FormatRecommendations(svc.Recommendations()))
			return nil
		},
	}
}

func newReportCmd(a *app) *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Print the full report, optionally saving it as a workbook",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, closeStore, err := a.service(cmd)
			if err != nil {
				return err
			}
			defer closeStore()

			rep, err := svc.Analyze(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), display.NewTerminalFormatter().FormatReport(rep))

			if out != "" {
				log := logger.NewWithOptions(logger.Options{Level: "warn", Output: cmd.ErrOrStderr()})
				if err := export.WriteWorkbook(out, rep, log.Entry); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "\nReport saved to: %s\n", out)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "", "Write the report to this xlsx file")
	return cmd
}
