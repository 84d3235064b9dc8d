package summarizer

import (
	"regexp"
	"strings"

	"github.com/gomutex/godocx"
	"github.com/gomutex/godocx/docx"
)

const (
	fontName = "Times New Roman"
	fontSize = 13
)

var (
	reBullet  = regexp.MustCompile(`^[\-\*]\s+(.+)$`)
	reSection = regexp.MustCompile(`^(Summary|Local Summary|Study Tips):$`)
)

// WriteDocx renders an appended summary (section headings, bullets and
// plain paragraphs) as a styled docx copy for the summaries folder.
func WriteDocx(title, summary, outputPath string) error {
	doc, err := godocx.NewDocument()
	if err != nil {
		return err
	}

	addStyledRun(doc.AddParagraph(""), title, true, 16)

	for _, line := range strings.Split(summary, "\n") {
		trimmed := strings.TrimSpace(line)

		if trimmed == "" || trimmed == "---" {
			continue
		}

		if reSection.MatchString(trimmed) {
			p := doc.AddParagraph("")
			addStyledRun(p, strings.TrimSuffix(trimmed, ":"), true, 14)
			continue
		}

		if m := reBullet.FindStringSubmatch(trimmed); m != nil {
			p := doc.AddParagraph("")
			addStyledRun(p, "• "+m[1], false, fontSize)
			continue
		}

		p := doc.AddParagraph("")
		addStyledRun(p, trimmed, false, fontSize)
	}

	return doc.SaveTo(outputPath)
}

func addStyledRun(p *docx.Paragraph, text string, bold bool, size uint64) {
	run := p.AddText(text).Font(fontName).Size(size).Color("000000")
	if bold {
		run.Bold(true)
	}
}
