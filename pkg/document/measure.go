package document

import (
	"strings"

	"github.com/go-pdf/fpdf"
)

const fontFamily = "Helvetica"

// Measurer reports the printed width of text in millimetres.
type Measurer interface {
	Width(text string, style Style) float64
}

// FontMetrics measures text with fpdf's core Helvetica metrics. It is not
// safe for concurrent use.
type FontMetrics struct {
	pdf *fpdf.Fpdf
	tr  func(string) string
}

// NewFontMetrics returns a measurer backed by a scratch fpdf document.
func NewFontMetrics() *FontMetrics {
	pdf := fpdf.New("P", "mm", "A4", "")
	return &FontMetrics{pdf: pdf, tr: pdf.UnicodeTranslatorFromDescriptor("")}
}

// Width implements Measurer.
func (m *FontMetrics) Width(text string, style Style) float64 {
	m.pdf.SetFont(fontFamily, style.fontStyle(), style.Size)
	return m.pdf.GetStringWidth(m.tr(text))
}

// Wrap breaks s into lines no wider than width. Words longer than a line are
// split between runes. Explicit newlines start a new line.
func Wrap(m Measurer, s string, style Style, width float64) []string {
	var lines []string
	for _, para := range strings.Split(s, "\n") {
		words := strings.Fields(para)
		if len(words) == 0 {
			lines = append(lines, "")
			continue
		}
		line := ""
		for _, word := range words {
			candidate := word
			if line != "" {
				candidate = line + " " + word
			}
			if m.Width(candidate, style) <= width {
				line = candidate
				continue
			}
			if line != "" {
				lines = append(lines, line)
			}
			line = word
			for m.Width(line, style) > width {
				head, rest := splitToWidth(m, line, style, width)
				lines = append(lines, head)
				line = rest
			}
		}
		lines = append(lines, line)
	}
	// A trailing empty paragraph adds nothing visible.
	for len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

// splitToWidth returns the longest prefix of s that fits, always at least one rune.
func splitToWidth(m Measurer, s string, style Style, width float64) (string, string) {
	runes := []rune(s)
	n := 1
	for n < len(runes) && m.Width(string(runes[:n+1]), style) <= width {
		n++
	}
	return string(runes[:n]), string(runes[n:])
}
