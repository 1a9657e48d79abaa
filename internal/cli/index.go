package legalrag

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mwiater/legalrag/internal/metrics"
	"github.com/mwiater/legalrag/internal/providerfactory"
)

// indexCmd rebuilds the index file from the source document.
var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Rebuild the summary index from the source document",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := commandContext(cmd)
		defer cancel()

		aggregator := metrics.NewAggregator()
		pipeline, err := providerfactory.NewPipeline(GetConfig(), aggregator)
		if err != nil {
			return err
		}
		if err := pipeline.Rebuild(ctx); err != nil {
			return err
		}
		stats := pipeline.LastIndexStats()
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "✅ Total Chunks: %d (%d empty summaries)\n", stats.Chunks, stats.EmptySummaries)
		aggregator.Report(out)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(indexCmd)
}
