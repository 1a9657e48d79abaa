package rag

import (
	"context"
	"fmt"

	"github.com/mwiater/legalrag/internal/logging"
	"github.com/mwiater/legalrag/internal/providers"
)

// FailureMessage is returned to the user when the answer request fails.
const FailureMessage = "⚠️ Erreur lors de la génération de la réponse."

// Answer is the outcome of answering a question. Failed answers carry
// FailureMessage as Text.
type Answer struct {
	Text   string
	Failed bool
	Err    error
}

// AnswerPrompt builds the grounded-answer instruction from the retrieved
// summaries.
func AnswerPrompt(query string, summaries []string) string {
	return fmt.Sprintf("Voici un extrait de texte juridique :\n%s\n\nQuestion : %s\n\nRépondez en français avec précision en utilisant uniquement les informations fournies.",
		FormatContext(summaries), query)
}

// Answerer asks the chat model to answer a question from retrieved summaries.
type Answerer struct {
	Provider  providers.ChatProvider
	Model     string
	MaxTokens int
}

func (a Answerer) Answer(ctx context.Context, query string, summaries []string) Answer {
	res := a.Provider.Complete(ctx, providers.UserPrompt(a.Model, AnswerPrompt(query, summaries), a.MaxTokens))
	if !res.OK() {
		logging.Error(res.Err, "answer generation failed: status=%d body=%s", res.StatusCode, res.Detail())
		err := res.Err
		if err == nil {
			err = fmt.Errorf("chat completion returned status %d", res.StatusCode)
		}
		return Answer{Text: FailureMessage, Failed: true, Err: err}
	}
	return Answer{Text: res.Text}
}
