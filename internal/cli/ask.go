package legalrag

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mwiater/legalrag/internal/logging"
	"github.com/mwiater/legalrag/internal/metrics"
	"github.com/mwiater/legalrag/internal/providerfactory"
	"github.com/mwiater/legalrag/internal/rag"
)

var showSources bool

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Answer one question from the indexed document",
	Long:  `Prepare the index (building it when absent), then answer a single question. Without arguments the question is read from standard input.`,
	RunE:  runAsk,
}

func init() {
	rootCmd.AddCommand(askCmd)
	rootCmd.PersistentFlags().BoolVar(&showSources, "sources", false, "print the retrieved summaries after the answer")
}

func runAsk(cmd *cobra.Command, args []string) error {
	cfg := GetConfig()
	ctx, cancel := commandContext(cmd)
	defer cancel()

	aggregator := metrics.NewAggregator()
	pipeline, err := providerfactory.NewPipeline(cfg, aggregator)
	if err != nil {
		return err
	}
	if err := pipeline.Prepare(ctx); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	question := strings.TrimSpace(strings.Join(args, " "))
	if question == "" {
		question, err = readQuestion(cmd.InOrStdin(), out)
		if err != nil {
			return err
		}
	}

	if err := answerQuestion(ctx, out, pipeline, question, cfg.TopK, showSources); err != nil {
		return err
	}

	var report bytes.Buffer
	aggregator.Report(&report)
	logging.Debug("[METRICS] %s", strings.TrimSpace(report.String()))
	return nil
}

type observedAsker interface {
	AskWithObserver(ctx context.Context, query string, topK int, observe rag.AskObserver) (rag.Response, error)
}

// answerQuestion prints the progress line only once retrieval found
// something, then the response.
func answerQuestion(ctx context.Context, out io.Writer, asker observedAsker, question string, topK int, showSources bool) error {
	resp, err := asker.AskWithObserver(ctx, question, topK, func([]rag.RetrievedSummary) {
		fmt.Fprintln(out, generatingLine)
	})
	if err != nil {
		return err
	}
	printResponse(out, resp, showSources)
	return nil
}
