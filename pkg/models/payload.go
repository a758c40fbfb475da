package models

import (
	"strings"
	"time"
)

// ISOLayout matches JavaScript's Date.toISOString (UTC, milliseconds).
const ISOLayout = "2006-01-02T15:04:05.000Z"

// CustomerInfo is the contact block of a submission.
type CustomerInfo struct {
	FirstName        string `json:"firstName"`
	LastName         string `json:"lastName"`
	Phone            string `json:"phone"`
	Email            string `json:"email"`
	Address1         string `json:"address1"`
	Address2         string `json:"address2"`
	City             string `json:"city"`
	State            string `json:"state"`
	Zip              string `json:"zip"`
	RequestedService string `json:"requestedService"`
}

// Initials holds the trimmed per-section initials.
type Initials struct {
	SectionA string `json:"sectionA"`
	SectionB string `json:"sectionB"`
	SectionC string `json:"sectionC"`
}

// SignatureInfo carries the printed name, date and the raster as a data URI.
type SignatureInfo struct {
	PrintedName   string `json:"printedName"`
	Date          string `json:"date"`
	SignatureData string `json:"signatureData"`
}

// SubmissionPayload is the JSON document sent in the "data" part.
type SubmissionPayload struct {
	CustomerInfo CustomerInfo  `json:"customerInfo"`
	Disclosures  Disclosures   `json:"disclosures"`
	Initials     Initials      `json:"initials"`
	Signature    SignatureInfo `json:"signature"`
	SubmittedAt  string        `json:"submittedAt"`
}

// NewSubmissionPayload snapshots f into a payload submitted at the given time.
func NewSubmissionPayload(f FormState, signatureData string, submittedAt time.Time) SubmissionPayload {
	return SubmissionPayload{
		CustomerInfo: CustomerInfo{
			FirstName:        f.FirstName,
			LastName:         f.LastName,
			Phone:            f.Phone,
			Email:            f.Email,
			Address1:         f.Address1,
			Address2:         f.Address2,
			City:             f.City,
			State:            f.State,
			Zip:              f.Zip,
			RequestedService: f.RequestedService,
		},
		Disclosures: f.Disclosures,
		Initials: Initials{
			SectionA: strings.TrimSpace(f.InitialsA),
			SectionB: strings.TrimSpace(f.InitialsB),
			SectionC: strings.TrimSpace(f.InitialsC),
		},
		Signature: SignatureInfo{
			PrintedName:   f.PrintedName,
			Date:          f.SignatureDate,
			SignatureData: signatureData,
		},
		SubmittedAt: submittedAt.UTC().Format(ISOLayout),
	}
}

// SubmitResponse is the backend's answer to a submission.
type SubmitResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// TestRequest is the JSON body of the connectivity test.
type TestRequest struct {
	Test    bool   `json:"test"`
	Message string `json:"message"`
}

// HealthStatus is the backend's free-form health object.
type HealthStatus map[string]any
