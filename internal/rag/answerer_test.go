package rag

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/mwiater/legalrag/internal/providers"
)

func TestAnswerPromptFormat(t *testing.T) {
	got := AnswerPrompt("Qui hérite ?", []string{"premier résumé", "second résumé"})
	want := "Voici un extrait de texte juridique :\npremier résumé\n\nsecond résumé\n\nQuestion : Qui hérite ?\n\nRépondez en français avec précision en utilisant uniquement les informations fournies."
	if got != want {
		t.Fatalf("unexpected prompt:\n%q\nwant:\n%q", got, want)
	}
}

func TestFormatContext(t *testing.T) {
	if got := FormatContext([]string{"a", "b"}); got != "a\n\nb" {
		t.Fatalf("unexpected context %q", got)
	}
	if got := FormatContext(nil); got != "" {
		t.Fatalf("expected empty context, got %q", got)
	}
}

func TestAnswerSuccess(t *testing.T) {
	chat := &fakeChat{respond: func(int, string) providers.Completion { return okText("Les descendants.") }}
	a := Answerer{Provider: chat, Model: "mistral", MaxTokens: 256}
	got := a.Answer(context.Background(), "Qui hérite ?", []string{"résumé"})
	if got.Failed || got.Text != "Les descendants." {
		t.Fatalf("unexpected answer: %+v", got)
	}
}

func TestAnswerFailureReturnsFixedMessage(t *testing.T) {
	for name, res := range map[string]providers.Completion{
		"non-200":   {StatusCode: http.StatusBadGateway, Body: "bad gateway"},
		"transport": {Err: errors.New("connection refused")},
	} {
		res := res
		chat := &fakeChat{respond: func(int, string) providers.Completion { return res }}
		got := Answerer{Provider: chat}.Answer(context.Background(), "q", []string{"s"})
		if !got.Failed || got.Text != FailureMessage || got.Err == nil {
			t.Fatalf("%s: unexpected answer: %+v", name, got)
		}
	}
}

func TestSummarizeFailureIsEmpty(t *testing.T) {
	chat := &fakeChat{respond: func(int, string) providers.Completion {
		return providers.Completion{StatusCode: http.StatusServiceUnavailable, Body: "busy"}
	}}
	if got := (Summarizer{Provider: chat}).Summarize(context.Background(), "texte"); got != "" {
		t.Fatalf("expected empty summary, got %q", got)
	}
}
