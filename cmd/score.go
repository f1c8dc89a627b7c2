package main

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/retentionai/retention-cli/internal/dashboard"
	"github.com/retentionai/retention-cli/internal/ingest"
	"github.com/retentionai/retention-cli/internal/model"
)

var (
	scoreFile    string
	scoreLimit   int
	scoreOutput  string
	scoreFormat  string
	scoreSummary bool
)

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Score an employee dataset file and print the ranked results",
	Long: `Reads a CSV or XLSX employee dataset, runs the full scoring pipeline
against the configured model server, and prints results ranked by retention
priority.

Examples:
  # Rank a CSV, print as a table
  retention-cli score --file employees.csv

  # First 20 rows as JSON, written to a file
  retention-cli score --file employees.xlsx --limit 20 --format json --output results.json

  # Include the dashboard summary
  retention-cli score --file employees.csv --summary`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		data, err := os.ReadFile(scoreFile)
		if err != nil {
			return eris.Wrap(err, "score: read file")
		}

		ds, err := ingest.Parse(scoreFile, data)
		if err != nil {
			return eris.Wrap(err, "score: parse dataset")
		}
		zap.L().Info("parsed dataset", zap.Int("rows", len(ds.Rows)))

		rows := ds.Rows
		if scoreLimit > 0 && scoreLimit < len(rows) {
			rows = rows[:scoreLimit]
		}

		env, err := initEnv(cfg)
		if err != nil {
			return err
		}

		results, skipped, err := env.Coordinator.Process(ctx, rows)
		if err != nil {
			return eris.Wrap(err, "score: process dataset")
		}
		if len(skipped) > 0 {
			zap.L().Warn("rows skipped", zap.Int("count", len(skipped)))
		}

		out := os.Stdout
		if scoreOutput != "" {
			f, err := os.Create(scoreOutput)
			if err != nil {
				return eris.Wrap(err, "score: create output file")
			}
			defer f.Close()
			out = f
		}

		if scoreFormat == "json" {
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			if err := enc.Encode(results); err != nil {
				return eris.Wrap(err, "score: encode results")
			}
		} else {
			printResultsTable(out, results)
		}

		if scoreSummary {
			summary := dashboard.Summarize(results)
			fmt.Fprintln(out)
			printSummary(out, summary)
		}

		return nil
	},
}

func printResultsTable(out *os.File, results []model.EmployeeResult) {
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "PRIORITY\tID\tNAME\tDEPARTMENT\tRISK\tIMPACT")
	for _, r := range results {
		fmt.Fprintf(w, "%.1f\t%s\t%s\t%s\t%s (%.2f)\t%s (%.1f)\n",
			r.PriorityScore, r.EmployeeID, r.Name, r.Department,
			r.Risk.Label, r.Risk.Probability,
			r.Impact.Category, r.Impact.Score,
		)
	}
	w.Flush()
}

func printSummary(out *os.File, summary model.Summary) {
	fmt.Fprintf(out, "Employees: %d  High: %d  Medium: %d  Low: %d  Critical talent: %d\n",
		summary.TotalEmployees,
		summary.RiskBreakdown.High,
		summary.RiskBreakdown.Medium,
		summary.RiskBreakdown.Low,
		summary.CriticalTalent,
	)
	for _, insight := range summary.Insights {
		fmt.Fprintf(out, "  - %s\n", insight)
	}
}

func init() {
	scoreCmd.Flags().StringVar(&scoreFile, "file", "", "dataset file (.csv or .xlsx)")
	scoreCmd.Flags().IntVar(&scoreLimit, "limit", 0, "limit number of rows (0 = all)")
	scoreCmd.Flags().StringVar(&scoreOutput, "output", "", "write output to file instead of stdout")
	scoreCmd.Flags().StringVar(&scoreFormat, "format", "table", "output format: table or json")
	scoreCmd.Flags().BoolVar(&scoreSummary, "summary", false, "also print the dashboard summary")
	_ = scoreCmd.MarkFlagRequired("file")
	rootCmd.AddCommand(scoreCmd)
}
