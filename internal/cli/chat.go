package legalrag

import (
	"github.com/spf13/cobra"

	"github.com/mwiater/legalrag/internal/logging"
	"github.com/mwiater/legalrag/internal/providerfactory"
	"github.com/mwiater/legalrag/internal/tui"
)

// chatCmd starts the interactive question loop.
var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Ask questions interactively",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := commandContext(cmd)
		defer cancel()

		cfg := GetConfig()
		pipeline, err := providerfactory.NewPipeline(cfg, nil)
		if err != nil {
			return err
		}
		// Console logs would draw over the alternate screen; the log file
		// still records them.
		logging.SetOutput(nil)
		return tui.Run(ctx, pipeline, cfg.TopK)
	},
}

func init() {
	rootCmd.AddCommand(chatCmd)
}
