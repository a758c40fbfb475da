// Package document lays out the intake PDF as a list of drawing
// instructions and renders that list with fpdf.
package document

import (
	"strings"
	"time"
)

// Page geometry in millimetres (A4 portrait).
const (
	PageWidth    = 210.0
	Margin       = 20.0
	ContentWidth = PageWidth - 2*Margin
	TopY         = 20.0
	BottomLimit  = 270.0
	Indent       = 3.0

	defaultNeeded = 40.0
)

// Op is the kind of a layout instruction.
type Op int

const (
	OpText Op = iota
	OpImage
	OpPage
)

// Style is the font state for a text instruction. Gray is the text grey
// level, 0 being black.
type Style struct {
	Size float64
	Bold bool
	Gray int
}

func (s Style) fontStyle() string {
	if s.Bold {
		return "B"
	}
	return ""
}

// Instruction is one drawing step. Y is the text baseline or the image top.
type Instruction struct {
	Op    Op
	Page  int
	X, Y  float64
	W, H  float64
	Text  string
	Style Style
	Image []byte
}

// Document is a composed, renderer-independent PDF.
type Document struct {
	Title        string
	CreatedAt    time.Time
	Pages        int
	Instructions []Instruction
}

// Lines returns the text of every text instruction in order.
func (d *Document) Lines() []string {
	var out []string
	for _, in := range d.Instructions {
		if in.Op == OpText {
			out = append(out, in.Text)
		}
	}
	return out
}

// Contains reports whether any text line contains s.
func (d *Document) Contains(s string) bool {
	return d.PageOf(s) > 0
}

// PageOf returns the page of the first text line containing s, or 0.
func (d *Document) PageOf(s string) int {
	for _, in := range d.Instructions {
		if in.Op == OpText && strings.Contains(in.Text, s) {
			return in.Page
		}
	}
	return 0
}

// Images returns the image instructions.
func (d *Document) Images() []Instruction {
	var out []Instruction
	for _, in := range d.Instructions {
		if in.Op == OpImage {
			out = append(out, in)
		}
	}
	return out
}

// layout is the cursor-tracking accumulator the composer writes through.
type layout struct {
	doc   *Document
	m     Measurer
	y     float64
	page  int
	style Style
}

func newLayout(m Measurer) *layout {
	return &layout{
		doc:   &Document{Pages: 1},
		m:     m,
		y:     TopY,
		page:  1,
		style: Style{Size: 10},
	}
}

func (l *layout) font(size float64, bold bool) {
	l.style.Size = size
	l.style.Bold = bold
}

func (l *layout) fontSize(size float64) {
	l.style.Size = size
}

func (l *layout) gray(level int) {
	l.style.Gray = level
}

func (l *layout) text(s string, x float64) {
	l.doc.Instructions = append(l.doc.Instructions, Instruction{
		Op:    OpText,
		Page:  l.page,
		X:     x,
		Y:     l.y,
		Text:  s,
		Style: l.style,
	})
}

func (l *layout) image(png []byte, x, w, h float64) {
	l.doc.Instructions = append(l.doc.Instructions, Instruction{
		Op:    OpImage,
		Page:  l.page,
		X:     x,
		Y:     l.y,
		W:     w,
		H:     h,
		Image: png,
	})
}

func (l *layout) space(mm float64) {
	l.y += mm
}

// ensureSpace starts a new page when fewer than needed millimetres remain
// above the bottom limit.
func (l *layout) ensureSpace(needed float64) {
	if l.y > BottomLimit-needed {
		l.newPage()
	}
}

func (l *layout) newPage() {
	l.page++
	l.doc.Pages++
	l.doc.Instructions = append(l.doc.Instructions, Instruction{Op: OpPage, Page: l.page})
	l.y = TopY
}

func (l *layout) wrap(s string, width float64) []string {
	return Wrap(l.m, s, l.style, width)
}
