package cli

import (
	"fmt"
	"os"

	"github.com/goccy/go-json"

	"github.com/chargedcycleworks/service-intake/pkg/models"
	"github.com/chargedcycleworks/service-intake/pkg/session"
	"github.com/chargedcycleworks/service-intake/pkg/signature"
)

// loadForm reads a FormState JSON file and types it into s field by field,
// so values go through the same normalizers as keystrokes. Empty values are
// skipped, which keeps the default date and the printed-name autofill.
func loadForm(path string, s *session.Session) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("error reading form file: %w", err)
	}
	var f models.FormState
	if err := json.Unmarshal(raw, &f); err != nil {
		return fmt.Errorf("error parsing form file: %w", err)
	}

	for _, field := range models.TextFields {
		value, err := f.Get(field)
		if err != nil {
			return err
		}
		if value == "" {
			continue
		}
		if err := s.SetField(field, value); err != nil {
			return err
		}
	}

	disclosures := map[string]bool{
		models.DisclosureSubmerged: f.Disclosures.Submerged,
		models.DisclosureThermal:   f.Disclosures.Thermal,
		models.DisclosureImpact:    f.Disclosures.Impact,
	}
	for name, checked := range disclosures {
		if err := s.SetDisclosure(name, checked); err != nil {
			return err
		}
	}
	return nil
}

// loadSignature replays a stroke list onto the session's signature pad.
func loadSignature(path string, s *session.Session) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("error reading signature file: %w", err)
	}
	var strokes []signature.Stroke
	if err := json.Unmarshal(raw, &strokes); err != nil {
		return fmt.Errorf("error parsing signature file: %w", err)
	}
	s.Signature().FromData(strokes)
	return nil
}
