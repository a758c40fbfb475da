package document

import (
	"bytes"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chargedcycleworks/service-intake/pkg/models"
	"github.com/chargedcycleworks/service-intake/pkg/signature"
)

// perRune measures every rune as the same width, in millimetres.
type perRune float64

func (p perRune) Width(text string, _ Style) float64 {
	return float64(utf8.RuneCountInString(text)) * float64(p)
}

var fixedNow = time.Date(2026, 10, 15, 15, 4, 5, 0, time.Local)

func janeDoe() models.FormState {
	return models.FormState{
		FirstName:        "Jane",
		LastName:         "Doe",
		Phone:            "(801) 555-0100",
		Email:            "jane@example.com",
		Address1:         "123 Main St",
		City:             "Salt Lake City",
		State:            "UT",
		Zip:              "84101",
		RequestedService: "Battery will not hold a charge past ten miles.",
		Disclosures:      models.Disclosures{Thermal: true},
		InitialsA:        "JD",
		InitialsB:        "JD",
		InitialsC:        "JD",
		PrintedName:      "Jane Doe",
		SignatureDate:    "10/15/2026",
	}
}

func newTestComposer(m Measurer) *Composer {
	c := NewComposer(m, "Charged Cycle Works", "16")
	c.Now = func() time.Time { return fixedNow }
	return c
}

func signaturePNG(t *testing.T) []byte {
	t.Helper()
	p := signature.NewPad(600, 150)
	p.BeginStroke(20, 100)
	p.LineTo(200, 40)
	p.LineTo(400, 110)
	p.EndStroke()
	raw, err := p.ExportPNG()
	require.NoError(t, err)
	return raw
}

func TestComposeJaneDoe(t *testing.T) {
	doc, err := newTestComposer(NewFontMetrics()).Compose(janeDoe(), signaturePNG(t))
	require.NoError(t, err)

	lines := doc.Lines()
	assert.Equal(t, titleText, lines[0])
	assert.Equal(t, "Charged Cycle Works", lines[1])
	assert.Equal(t, "Submitted: 10/15/2026, 3:04:05 PM | Form v16", lines[2])
	assert.Contains(t, lines, "Jane Doe")
	assert.Contains(t, lines, "Salt Lake City, UT 84101")
	assert.Contains(t, lines, "Initials: JD")
	assert.Contains(t, lines, "[ ] "+submergedLabel)
	assert.Contains(t, lines, "[X] "+thermalLabel)
	assert.Contains(t, lines, "Name: Jane Doe")
	assert.Contains(t, lines, "Date: 10/15/2026")
	assert.False(t, doc.Contains(noSignature))

	assert.Equal(t, "Service Intake - Jane Doe", doc.Title)
	assert.Equal(t, fixedNow, doc.CreatedAt)
}

func TestComposeOmitsEmptyAddress2(t *testing.T) {
	c := newTestComposer(NewFontMetrics())

	f := janeDoe()
	doc, err := c.Compose(f, nil)
	require.NoError(t, err)
	withoutLines := len(doc.Lines())

	f.Address2 = "Unit 4"
	doc, err = c.Compose(f, nil)
	require.NoError(t, err)
	assert.Contains(t, doc.Lines(), "Unit 4")
	assert.Equal(t, withoutLines+1, len(doc.Lines()))
}

func TestTermsStartOnFreshPage(t *testing.T) {
	doc, err := newTestComposer(NewFontMetrics()).Compose(janeDoe(), nil)
	require.NoError(t, err)

	termsPage := doc.PageOf(termsTitle)
	require.NotZero(t, termsPage)
	assert.Equal(t, doc.Pages, termsPage)
	assert.Greater(t, termsPage, doc.PageOf(sectionCTitle))

	for i, in := range doc.Instructions {
		if in.Op == OpText && in.Text == termsTitle {
			require.Positive(t, i)
			assert.Equal(t, OpPage, doc.Instructions[i-1].Op)
			assert.Equal(t, TopY, in.Y)
		}
	}
}

func TestNoSignatureText(t *testing.T) {
	doc, err := newTestComposer(NewFontMetrics()).Compose(janeDoe(), nil)
	require.NoError(t, err)

	assert.True(t, doc.Contains(noSignature))
	assert.Empty(t, doc.Images())
}

func TestSignatureImageBox(t *testing.T) {
	doc, err := newTestComposer(NewFontMetrics()).Compose(janeDoe(), signaturePNG(t))
	require.NoError(t, err)

	images := doc.Images()
	require.Len(t, images, 1)
	img := images[0]
	assert.Equal(t, Margin, img.X)
	assert.Equal(t, signatureW, img.W)
	assert.Equal(t, signatureH, img.H)
	assert.Equal(t, doc.Pages, img.Page)

	// The name line sits 28mm below the image top.
	for _, in := range doc.Instructions {
		if in.Op == OpText && in.Text == "Name: Jane Doe" {
			assert.InDelta(t, img.Y+28, in.Y, 1e-9)
		}
	}
}

func TestComposeRejectsBrokenSignature(t *testing.T) {
	_, err := newTestComposer(NewFontMetrics()).Compose(janeDoe(), []byte("nope"))
	assert.Error(t, err)
}

func TestLongServiceTextBreaksPages(t *testing.T) {
	f := janeDoe()
	f.RequestedService = strings.Repeat("word ", 34*60)

	doc, err := newTestComposer(perRune(1)).Compose(f, nil)
	require.NoError(t, err)

	assert.GreaterOrEqual(t, doc.PageOf(sectionATitle), 2)
	for _, in := range doc.Instructions {
		if in.Op == OpText {
			assert.LessOrEqual(t, in.Y, BottomLimit, "%q", in.Text)
			assert.GreaterOrEqual(t, in.Y, TopY, "%q", in.Text)
		}
	}

	// Every service line was checked against the default threshold.
	for _, in := range doc.Instructions {
		if in.Op == OpText && in.Text != "" && strings.HasPrefix(in.Text, "word") {
			assert.LessOrEqual(t, in.Y, BottomLimit-defaultNeeded)
		}
	}
}

func TestDisclaimerIsGreyAndIndented(t *testing.T) {
	doc, err := newTestComposer(NewFontMetrics()).Compose(janeDoe(), nil)
	require.NoError(t, err)

	for _, in := range doc.Instructions {
		if in.Op == OpText && strings.HasPrefix(in.Text, "Customer confirms") {
			assert.Equal(t, 80, in.Style.Gray)
			assert.Equal(t, Margin+Indent, in.X)
			return
		}
	}
	t.Fatal("disclaimer not found")
}

func TestWrap(t *testing.T) {
	m := perRune(1)
	st := Style{Size: 10}

	assert.Equal(t, []string{"aaa bbb", "ccc"}, Wrap(m, "aaa bbb ccc", st, 7))
	assert.Equal(t, []string{"abcd", "efgh", "ij"}, Wrap(m, "abcdefghij", st, 4))
	assert.Equal(t, []string{"one", "", "two"}, Wrap(m, "one\n\ntwo", st, 10))
	assert.Empty(t, Wrap(m, "   ", st, 10))
}

func TestFontMetricsBoldIsWider(t *testing.T) {
	m := NewFontMetrics()
	regular := m.Width("Charged Cycle Works", Style{Size: 10})
	bold := m.Width("Charged Cycle Works", Style{Size: 10, Bold: true})

	assert.Positive(t, regular)
	assert.Greater(t, bold, regular)
	assert.InDelta(t, 2*regular, m.Width("Charged Cycle Works", Style{Size: 20}), 1e-6)
}

func TestRender(t *testing.T) {
	f := janeDoe()
	f.RequestedService = "Throttle cuts out near the café"
	doc, err := newTestComposer(NewFontMetrics()).Compose(f, signaturePNG(t))
	require.NoError(t, err)

	pdf, err := Render(doc)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(pdf, []byte("%PDF-")))
	assert.Greater(t, len(pdf), 1000)
}
