package document

import (
	"fmt"
	"time"

	"github.com/chargedcycleworks/service-intake/pkg/models"
	"github.com/chargedcycleworks/service-intake/pkg/signature"
)

// Signature box on the page, and the raster it is fitted into before
// embedding (same 10:3 aspect).
const (
	signatureW  = 80.0
	signatureH  = 24.0
	signaturePW = 800
	signaturePH = 240
)

// Composer builds intake documents. Apart from the submitted timestamp its
// output depends only on the form and signature.
type Composer struct {
	measurer     Measurer
	organization string
	version      string

	// Now supplies the submitted timestamp; defaults to time.Now.
	Now func() time.Time
}

// NewComposer returns a composer that prints organization and version in the
// document header.
func NewComposer(m Measurer, organization, version string) *Composer {
	return &Composer{
		measurer:     m,
		organization: organization,
		version:      version,
		Now:          time.Now,
	}
}

// Compose lays out the intake document for f. signaturePNG may be nil, in
// which case the signature block says so.
func (c *Composer) Compose(f models.FormState, signaturePNG []byte) (*Document, error) {
	var sig []byte
	if len(signaturePNG) > 0 {
		fitted, err := signature.FitPNG(signaturePNG, signaturePW, signaturePH)
		if err != nil {
			return nil, fmt.Errorf("error preparing signature image: %w", err)
		}
		sig = fitted
	}

	now := c.Now()
	l := newLayout(c.measurer)
	l.doc.CreatedAt = now
	l.doc.Title = "Service Intake - " + models.FullName(f)

	c.header(l, now)
	c.customer(l, f)
	c.sectionA(l, f)
	c.sectionB(l, f)
	c.sectionC(l, f)
	c.terms(l, f, sig)

	return l.doc, nil
}

func (c *Composer) header(l *layout, now time.Time) {
	l.font(18, true)
	l.text(titleText, Margin)
	l.space(8)

	l.font(10, false)
	l.text(c.organization, Margin)
	l.space(5)
	l.fontSize(8)
	l.text(fmt.Sprintf("Submitted: %s | Form v%s", now.Format(submittedLayout), c.version), Margin)
	l.space(12)
}

func (c *Composer) customer(l *layout, f models.FormState) {
	l.font(11, true)
	l.text(customerTitle, Margin)
	l.space(6)

	l.font(10, false)
	for _, line := range []string{f.FirstName + " " + f.LastName, f.Phone, f.Email, f.Address1} {
		l.text(line, Margin)
		l.space(5)
	}
	if f.Address2 != "" {
		l.text(f.Address2, Margin)
		l.space(5)
	}
	l.text(fmt.Sprintf("%s, %s %s", f.City, f.State, f.Zip), Margin)
	l.space(8)

	l.font(9, true)
	l.text(serviceLabel, Margin)
	l.space(5)
	l.font(9, false)
	for _, line := range l.wrap(f.RequestedService, ContentWidth) {
		l.ensureSpace(defaultNeeded)
		l.text(line, Margin)
		l.space(4)
	}
	l.space(8)
}

func (c *Composer) sectionA(l *layout, f models.FormState) {
	l.ensureSpace(60)
	l.font(11, true)
	l.text(sectionATitle, Margin)
	l.space(6)

	l.font(9, false)
	l.text(checkbox(f.Disclosures.Submerged, submergedLabel), Margin+Indent)
	l.space(5)
	l.text(checkbox(f.Disclosures.Thermal, thermalLabel), Margin+Indent)
	l.space(5)
	l.text(checkbox(f.Disclosures.Impact, impactLabel), Margin+Indent)
	l.space(6)

	l.fontSize(8)
	l.gray(80)
	for _, line := range l.wrap(disclaimerA, ContentWidth-2*Indent) {
		l.text(line, Margin+Indent)
		l.space(4)
	}
	l.gray(0)
	l.space(4)

	initials(l, f.InitialsA)
}

func (c *Composer) sectionB(l *layout, f models.FormState) {
	l.ensureSpace(70)
	l.fontSize(11)
	l.text(sectionBTitle, Margin)
	l.space(6)

	l.font(8, false)
	paragraphs(l, sectionB)

	initials(l, f.InitialsB)
}

func (c *Composer) sectionC(l *layout, f models.FormState) {
	l.ensureSpace(60)
	l.fontSize(11)
	l.text(sectionCTitle, Margin)
	l.space(6)

	l.font(8, false)
	paragraphs(l, sectionC(c.organization))

	initials(l, f.InitialsC)
}

func (c *Composer) terms(l *layout, f models.FormState, sig []byte) {
	l.newPage()

	l.fontSize(11)
	l.text(termsTitle, Margin)
	l.space(6)

	l.font(9, false)
	l.text(termsAgreed, Margin)
	l.space(5)
	l.fontSize(8)
	l.text(termsOnFile, Margin)
	l.space(12)

	l.font(11, true)
	l.text(signatureHead, Margin)
	l.space(6)

	l.font(8, false)
	for _, line := range l.wrap(signatureConsent(c.organization), ContentWidth) {
		l.text(line, Margin)
		l.space(4)
	}
	l.space(6)

	if sig != nil {
		l.image(sig, Margin, signatureW, signatureH)
		l.space(28)
	} else {
		l.text(noSignature, Margin)
		l.space(10)
	}

	l.font(9, true)
	l.text("Name: "+f.PrintedName, Margin)
	l.space(6)
	l.text("Date: "+f.SignatureDate, Margin)
}

// paragraphs writes indented paragraphs, checking for a page break before each.
func paragraphs(l *layout, texts []string) {
	for _, text := range texts {
		l.ensureSpace(defaultNeeded)
		for _, line := range l.wrap(text, ContentWidth-2*Indent) {
			l.text(line, Margin+Indent)
			l.space(4)
		}
		l.space(2)
	}
	l.space(2)
}

func initials(l *layout, value string) {
	l.font(9, true)
	l.text("Initials: "+value, Margin)
	l.space(10)
}
