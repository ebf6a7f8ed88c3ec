package summarizer

import (
	"context"
	"strings"
	"unicode/utf8"
)

const (
	DemoSummary = "This is a generated summary (demo mode)."

	excerptLength = 200
)

// Summarizer turns the extracted text of a document into a short summary.
type Summarizer interface {
	Summarize(ctx context.Context, title string, text string) (string, error)
}

// Stub is the demo summarizer: a fixed sentence, followed by the start of the text if any was
// extracted.
type Stub struct{}

func (Stub) Summarize(ctx context.Context, title string, text string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	text = strings.Join(strings.Fields(text), " ")
	if text == "" {
		return DemoSummary, nil
	}

	if utf8.RuneCountInString(text) > excerptLength {
		text = string([]rune(text)[:excerptLength]) + "…"
	}
	return DemoSummary + " Excerpt: " + text, nil
}
