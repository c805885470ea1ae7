package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/clausecheck-cli/internal/core/domain"
	"github.com/custodia-labs/clausecheck-cli/internal/ingest"
)

var (
	analyzeJSON   bool
	analyzeOutput string
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [contract.txt] [obligations.csv]",
	Short: "Analyze a contract against a list of obligations",
	Long: `Reads a plain-text contract and a CSV of obligations (one per row,
first column), then reports for each obligation whether the contract
satisfies it, with supporting clauses and page/line references.`,
	Args: cobra.ExactArgs(2),
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().BoolVar(&analyzeJSON, "json", false, "output the full report as JSON")
	analyzeCmd.Flags().StringVarP(&analyzeOutput, "output", "o", "", "write the JSON report to a file")
	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	if analysisService == nil {
		return errors.New("analysis service not configured")
	}

	records, err := ingest.ReadContract(args[0])
	if err != nil {
		return err
	}
	obligations, err := ingest.ReadObligations(args[1])
	if err != nil {
		return err
	}

	start := time.Now()
	report, err := analysisService.Analyze(context.Background(), records, obligations)
	if err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}
	elapsed := time.Since(start)

	if analyzeOutput != "" {
		if err := writeReportFile(analyzeOutput, report); err != nil {
			return err
		}
		cmd.Printf("Report written to %s\n", analyzeOutput)
	}

	if analyzeJSON {
		return outputReportJSON(cmd, report)
	}
	return outputReportText(cmd, report, elapsed)
}

func writeReportFile(path string, report *domain.AnalysisReport) error {
	data, err := jsoniter.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}
	return os.WriteFile(path, data, 0600)
}

func outputReportJSON(cmd *cobra.Command, report *domain.AnalysisReport) error {
	data, err := jsoniter.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func outputReportText(cmd *cobra.Command, report *domain.AnalysisReport, elapsed time.Duration) error {
	for i := range report.Results {
		r := &report.Results[i]

		cmd.Printf("[%d] %s\n", i+1, r.Obligation)
		cmd.Printf("    Present: %s (confidence %.1f%%, similarity %.3f)\n",
			r.IsPresent, r.Confidence, r.SimilarityScore)
		if r.Page != nil && r.Line != nil {
			cmd.Printf("    Location: page %d, line %d\n", *r.Page, *r.Line)
		}
		cmd.Printf("    Reason: %s\n", r.Reason)
		if len(r.KeywordHits) > 0 {
			cmd.Printf("    Keyword hits: %v\n", r.KeywordHits)
		}
		if r.Suggestion != nil {
			cmd.Printf("    Suggestion: %s\n", *r.Suggestion)
		}
		cmd.Println()
	}

	compliant := report.Compliant()
	cmd.Printf("Summary: %d/%d obligations present\n", compliant, len(report.Results))
	cmd.Printf("Average similarity: %.3f, average confidence: %.1f%%\n",
		report.AverageSimilarity(), report.AverageConfidence())
	cmd.Printf("Indexed %d chunks, completed in %s\n", report.ChunkCount, elapsed.Round(time.Millisecond))

	return nil
}
