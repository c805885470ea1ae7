package cli

import (
	"errors"
	"fmt"

	jsoniter "github.com/json-iterator/go"
	"github.com/spf13/cobra"
)

var cacheStatsJSON bool

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Inspect and manage the result cache",
}

var cacheStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show result cache counters",
	RunE: func(cmd *cobra.Command, _ []string) error {
		if analysisService == nil {
			return errors.New("analysis service not configured")
		}

		stats := analysisService.CacheStats()

		if cacheStatsJSON {
			data, err := jsoniter.MarshalIndent(stats, "", "  ")
			if err != nil {
				return fmt.Errorf("failed to marshal stats: %w", err)
			}
			cmd.Println(string(data))
			return nil
		}

		cmd.Printf("Entries:  %d/%d\n", stats.Size, stats.MaxSize)
		cmd.Printf("Hits:     %d\n", stats.Hits)
		cmd.Printf("Misses:   %d\n", stats.Misses)
		cmd.Printf("Hit rate: %.2f%% of %d requests\n", stats.HitRate, stats.TotalRequests)
		return nil
	},
}

var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Empty the result cache",
	RunE: func(cmd *cobra.Command, _ []string) error {
		if analysisService == nil {
			return errors.New("analysis service not configured")
		}

		analysisService.ClearCache()
		cmd.Println("Result cache cleared.")
		return nil
	},
}

func init() {
	cacheStatsCmd.Flags().BoolVar(&cacheStatsJSON, "json", false, "output stats as JSON")
	cacheCmd.AddCommand(cacheStatsCmd)
	cacheCmd.AddCommand(cacheClearCmd)
	rootCmd.AddCommand(cacheCmd)
}
