package summarizer

import "strings"

// maxInputChars is the hard token-budget guard applied before submitting
// transcript text to a model backend. Not configurable per call.
const maxInputChars = 4000

// studyTips is static copy appended verbatim by every backend.
const studyTips = "\n\nStudy Tips:\n" +
	"- Review the key ideas mentioned in the summary.\n" +
	"- Create flashcards based on core concepts.\n" +
	"- Reflect on what the summary implies for your class."

// truncateForModel collapses newlines to spaces, trims, and caps the
// text at the model input budget. The budget counts characters, not
// bytes, so multibyte transcripts are never cut mid-rune.
func truncateForModel(text string) string {
	text = strings.TrimSpace(strings.ReplaceAll(text, "\n", " "))
	if runes := []rune(text); len(runes) > maxInputChars {
		text = string(runes[:maxInputChars])
	}
	return text
}
