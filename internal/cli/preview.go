package legalrag

import (
	"github.com/spf13/cobra"

	"github.com/mwiater/legalrag/internal/providerfactory"
	"github.com/mwiater/legalrag/internal/rag"
)

// previewCmd shows what retrieval selects for a query without calling the chat model.
var previewCmd = &cobra.Command{
	Use:   "preview <query>",
	Short: "Show the summaries retrieved for a query",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := commandContext(cmd)
		defer cancel()

		cfg := GetConfig()
		pipeline, err := providerfactory.NewPipeline(cfg, nil)
		if err != nil {
			return err
		}
		if err := pipeline.Prepare(ctx); err != nil {
			return err
		}
		return rag.RunPreview(ctx, cmd.OutOrStdout(), pipeline, args, cfg.TopK)
	},
}

func init() {
	rootCmd.AddCommand(previewCmd)
}
