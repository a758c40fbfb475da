package models

import (
	"fmt"
	"strings"
	"time"
)

// DateLayout is the MM/DD/YYYY layout used for the signature date.
const DateLayout = "01/02/2006"

// Field names, matching the JSON keys of FormState.
const (
	FieldFirstName        = "firstName"
	FieldLastName         = "lastName"
	FieldPhone            = "phone"
	FieldEmail            = "email"
	FieldAddress1         = "address1"
	FieldAddress2         = "address2"
	FieldCity             = "city"
	FieldState            = "state"
	FieldZip              = "zip"
	FieldRequestedService = "requestedService"
	FieldInitialsA        = "initialsA"
	FieldInitialsB        = "initialsB"
	FieldInitialsC        = "initialsC"
	FieldPrintedName      = "printedName"
	FieldSignatureDate    = "signatureDate"
)

// Disclosure names, matching the JSON keys of Disclosures.
const (
	DisclosureSubmerged = "submerged"
	DisclosureThermal   = "thermal"
	DisclosureImpact    = "impact"
)

// TextFields lists every free-text field in form order.
var TextFields = []string{
	FieldFirstName, FieldLastName, FieldPhone, FieldEmail,
	FieldAddress1, FieldAddress2, FieldCity, FieldState, FieldZip,
	FieldRequestedService,
	FieldInitialsA, FieldInitialsB, FieldInitialsC,
	FieldPrintedName, FieldSignatureDate,
}

// Disclosures are the three independent safety checkboxes of section A.
type Disclosures struct {
	Submerged bool `json:"submerged"`
	Thermal   bool `json:"thermal"`
	Impact    bool `json:"impact"`
}

// FormState is everything the customer enters during one intake session.
type FormState struct {
	FirstName        string      `json:"firstName" validate:"notblank,alphaname"`
	LastName         string      `json:"lastName" validate:"notblank,alphaname"`
	Phone            string      `json:"phone" validate:"notblank,usphone"`
	Email            string      `json:"email" validate:"notblank,simpleemail"`
	Address1         string      `json:"address1" validate:"notblank"`
	Address2         string      `json:"address2"`
	City             string      `json:"city" validate:"notblank,alphaname"`
	State            string      `json:"state" validate:"notblank,usstate"`
	Zip              string      `json:"zip" validate:"notblank,uszip"`
	RequestedService string      `json:"requestedService" validate:"notblank,mintrimmed=10"`
	Disclosures      Disclosures `json:"disclosures"`
	InitialsA        string      `json:"initialsA" validate:"notblank,initials"`
	InitialsB        string      `json:"initialsB" validate:"notblank,initials"`
	InitialsC        string      `json:"initialsC" validate:"notblank,initials"`
	PrintedName      string      `json:"printedName" validate:"notblank"`
	SignatureDate    string      `json:"signatureDate" validate:"notblank,usdate"`
}

// NewFormState returns the blank form for a session started at now.
func NewFormState(now time.Time) FormState {
	return FormState{SignatureDate: now.Format(DateLayout)}
}

// FullName is the trimmed "First Last", or "" unless both parts are present.
func FullName(f FormState) string {
	first := strings.TrimSpace(f.FirstName)
	last := strings.TrimSpace(f.LastName)
	if first == "" || last == "" {
		return ""
	}
	return first + " " + last
}

func (f *FormState) fieldPtr(field string) *string {
	switch field {
	case FieldFirstName:
		return &f.FirstName
	case FieldLastName:
		return &f.LastName
	case FieldPhone:
		return &f.Phone
	case FieldEmail:
		return &f.Email
	case FieldAddress1:
		return &f.Address1
	case FieldAddress2:
		return &f.Address2
	case FieldCity:
		return &f.City
	case FieldState:
		return &f.State
	case FieldZip:
		return &f.Zip
	case FieldRequestedService:
		return &f.RequestedService
	case FieldInitialsA:
		return &f.InitialsA
	case FieldInitialsB:
		return &f.InitialsB
	case FieldInitialsC:
		return &f.InitialsC
	case FieldPrintedName:
		return &f.PrintedName
	case FieldSignatureDate:
		return &f.SignatureDate
	}
	return nil
}

// Get returns the value of a text field by its JSON name.
func (f *FormState) Get(field string) (string, error) {
	p := f.fieldPtr(field)
	if p == nil {
		return "", fmt.Errorf("unknown field %q", field)
	}
	return *p, nil
}

// Set assigns a text field by its JSON name.
func (f *FormState) Set(field, value string) error {
	p := f.fieldPtr(field)
	if p == nil {
		return fmt.Errorf("unknown field %q", field)
	}
	*p = value
	return nil
}

// SetDisclosure toggles one of the section A checkboxes by its JSON name.
func (f *FormState) SetDisclosure(name string, checked bool) error {
	switch name {
	case DisclosureSubmerged:
		f.Disclosures.Submerged = checked
	case DisclosureThermal:
		f.Disclosures.Thermal = checked
	case DisclosureImpact:
		f.Disclosures.Impact = checked
	default:
		return fmt.Errorf("unknown disclosure %q", name)
	}
	return nil
}
