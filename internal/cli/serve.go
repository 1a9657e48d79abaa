package legalrag

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mwiater/legalrag/internal/metrics"
	"github.com/mwiater/legalrag/internal/providerfactory"
	"github.com/mwiater/legalrag/internal/server"
)

// serveCmd exposes the pipeline over HTTP.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve /health, /ask and /metrics over HTTP",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := commandContext(cmd)
		defer cancel()

		cfg := GetConfig()
		aggregator := metrics.NewAggregator()
		pipeline, err := providerfactory.NewPipeline(cfg, aggregator)
		if err != nil {
			return err
		}
		if err := pipeline.Prepare(ctx); err != nil {
			return err
		}

		handler := server.NewHandler(pipeline, cfg.RequestTimeout()).WithMetrics(aggregator)
		return server.ListenAndServe(ctx, cfg.ServeAddr, server.NewRouter(handler))
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("addr", "", "listen address (default :8080)")
	_ = viper.BindPFlag("serveAddr", serveCmd.Flags().Lookup("addr"))
}
