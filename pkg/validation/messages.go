package validation

import "github.com/chargedcycleworks/service-intake/pkg/models"

var requiredMessages = map[string]string{
	models.FieldFirstName:        "First name is required.",
	models.FieldLastName:         "Last name is required.",
	models.FieldPhone:            "Phone number is required.",
	models.FieldEmail:            "Email is required.",
	models.FieldAddress1:         "Street address is required.",
	models.FieldCity:             "City is required.",
	models.FieldState:            "State is required.",
	models.FieldZip:              "ZIP code is required.",
	models.FieldRequestedService: "Please describe the service you need.",
	models.FieldInitialsA:        "Initials are required for section A.",
	models.FieldInitialsB:        "Initials are required for section B.",
	models.FieldInitialsC:        "Initials are required for section C.",
	models.FieldPrintedName:      "Printed name is required.",
	models.FieldSignatureDate:    "Date is required.",
}

var formatMessages = map[string]string{
	models.FieldFirstName:        "First name may only contain letters, spaces, apostrophes, hyphens, and periods.",
	models.FieldLastName:         "Last name may only contain letters, spaces, apostrophes, hyphens, and periods.",
	models.FieldPhone:            "Please enter a valid 10-digit phone number.",
	models.FieldEmail:            "Please enter a valid email address.",
	models.FieldCity:             "City may only contain letters, spaces, apostrophes, hyphens, and periods.",
	models.FieldState:            "Please enter a valid US state abbreviation (e.g. UT, CA).",
	models.FieldZip:              "Please enter a valid ZIP code (e.g. 84101 or 84101-1234).",
	models.FieldRequestedService: "Please describe the service in at least 10 characters.",
	models.FieldInitialsA:        "Initials must be 1-3 letters.",
	models.FieldInitialsB:        "Initials must be 1-3 letters.",
	models.FieldInitialsC:        "Initials must be 1-3 letters.",
	models.FieldPrintedName:      "Printed name must match your first and last name.",
	models.FieldSignatureDate:    "Please enter the date as MM/DD/YYYY.",
}

func message(field, tag string) string {
	if tag == "notblank" {
		if msg, ok := requiredMessages[field]; ok {
			return msg
		}
		return "This field is required."
	}
	if msg, ok := formatMessages[field]; ok {
		return msg
	}
	return "This field is invalid."
}
