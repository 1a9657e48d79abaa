package legalrag

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/mwiater/legalrag/internal/rag"
	"github.com/mwiater/legalrag/internal/util"
)

const (
	questionPrompt = "\n💬 Veuillez entrer votre question : "
	generatingLine = "\n⏳ Génération de la réponse..."
	answerHeader   = "\n📢 Réponse :"
)

var (
	headerColor = color.New(color.FgCyan, color.Bold)
	answerColor = color.New(color.FgGreen)
	warnColor   = color.New(color.FgYellow)
	failColor   = color.New(color.FgRed)
	sourceColor = color.New(color.Faint)
)

// readQuestion prompts on out and reads one line from in.
func readQuestion(in io.Reader, out io.Writer) (string, error) {
	fmt.Fprint(out, questionPrompt)
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("read question: %w", err)
	}
	question := strings.TrimSpace(line)
	if question == "" {
		return "", errors.New("no question provided")
	}
	return question, nil
}

// printResponse renders a pipeline response the way the single-question flow
// shows it.
func printResponse(out io.Writer, resp rag.Response, showSources bool) {
	if !resp.Found {
		warnColor.Fprintln(out, rag.NoResultsMessage)
		return
	}
	headerColor.Fprintln(out, answerHeader)
	if resp.Answer.Failed {
		failColor.Fprintln(out, resp.Answer.Text)
	} else {
		answerColor.Fprintln(out, resp.Answer.Text)
	}
	if showSources {
		fmt.Fprintln(out)
		for _, s := range resp.Sources {
			sourceColor.Fprintf(out, "  [%d] %.4f %s\n", s.ID, s.Score, util.Excerpt(s.Summary, 100))
		}
	}
}
