package rag

import (
	"strings"

	"github.com/abadojack/whatlanggo"
)

// LanguageGuess is the detected language of a query.
type LanguageGuess struct {
	Name     string
	IsFrench bool
	Reliable bool
}

// French reports whether the guess is French or too uncertain to say otherwise.
func (g LanguageGuess) French() bool {
	return !g.Reliable || g.IsFrench
}

// DetectLanguage guesses the language of text.
func DetectLanguage(text string) LanguageGuess {
	if strings.TrimSpace(text) == "" {
		return LanguageGuess{}
	}
	info := whatlanggo.Detect(text)
	return LanguageGuess{
		Name:     whatlanggo.LangToString(info.Lang),
		IsFrench: info.Lang == whatlanggo.Fra,
		Reliable: info.IsReliable(),
	}
}
