package document

import (
	"bytes"
	"fmt"

	"github.com/go-pdf/fpdf"
)

// Render replays doc onto an fpdf A4 document and returns the PDF bytes.
func Render(doc *Document) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetCreator("service-intake", false)
	pdf.SetTitle(doc.Title, true)
	if !doc.CreatedAt.IsZero() {
		pdf.SetCreationDate(doc.CreatedAt)
	}
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.AddPage()
	images := 0
	for _, in := range doc.Instructions {
		switch in.Op {
		case OpPage:
			pdf.AddPage()
		case OpText:
			pdf.SetFont(fontFamily, in.Style.fontStyle(), in.Style.Size)
			pdf.SetTextColor(in.Style.Gray, in.Style.Gray, in.Style.Gray)
			pdf.Text(in.X, in.Y, tr(in.Text))
		case OpImage:
			name := fmt.Sprintf("image-%d", images)
			images++
			opts := fpdf.ImageOptions{ImageType: "PNG"}
			pdf.RegisterImageOptionsReader(name, opts, bytes.NewReader(in.Image))
			pdf.ImageOptions(name, in.X, in.Y, in.W, in.H, false, opts, 0, "")
		}
		if err := pdf.Error(); err != nil {
			return nil, fmt.Errorf("error rendering document: %w", err)
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("error writing document: %w", err)
	}
	return buf.Bytes(), nil
}
