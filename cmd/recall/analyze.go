package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/recallhq/recall/internal/cli"
	"github.com/recallhq/recall/internal/database"
	"github.com/recallhq/recall/internal/pdf"
	"github.com/recallhq/recall/internal/schedule"
	"github.com/recallhq/recall/internal/statistics"
)

func newAnalyzeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Analyze review progress and statistics",
	}
	cmd.AddCommand(newAnalyzeReportCommand())
	return cmd
}

func newAnalyzeReportCommand() *cobra.Command {
	var learnerID string
	var year, month int
	var pdfPath string

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Show monthly/yearly report of review statistics",
		RunE: func(cmd *cobra.Command, args []string) error {
			if month != 0 && year == 0 {
				return fmt.Errorf("--month requires --year to be specified")
			}
			if month < 0 || month > 12 {
				return fmt.Errorf("--month must be between 1 and 12")
			}

			ctx := cmd.Context()

			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			db, err := database.Open(cfg.Database)
			if err != nil {
				return fmt.Errorf("database.Open() > %w", err)
			}
			defer func() { _ = db.Close() }()

			ledger := schedule.NewDBHistoryLedger(db)
			history, err := ledger.ByLearner(ctx, learnerID)
			if err != nil {
				return fmt.Errorf("ledger.ByLearner() > %w", err)
			}

			report := cli.FormatReport(statistics.CalculateStatistics(history, year, month))
			fmt.Print(report)

			if pdfPath != "" {
				written, err := pdf.WriteReport([]byte(report), pdfPath)
				if err != nil {
					return fmt.Errorf("pdf.WriteReport() > %w", err)
				}
				fmt.Printf("Wrote report to %s\n", written)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&learnerID, "learner", "", "Learner ID")
	cmd.Flags().IntVar(&year, "year", 0, "Filter by year (e.g., 2025)")
	cmd.Flags().IntVar(&month, "month", 0, "Filter by month (1-12), requires --year")
	cmd.Flags().StringVar(&pdfPath, "pdf", "", "Also write the report as a PDF to this path")
	_ = cmd.MarkFlagRequired("learner")
	return cmd
}
