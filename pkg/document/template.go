package document

import "fmt"

const (
	titleText     = "E-MOTO SERVICE INTAKE"
	customerTitle = "CUSTOMER INFORMATION"
	serviceLabel  = "Requested Service:"

	sectionATitle = "A. SAFETY AND BATTERY DISCLOSURES"
	sectionBTitle = "B. AUTHORIZATION, TESTING, AND PAYMENT"
	sectionCTitle = "C. QUALITY CONTROL AND OPERATIONAL ACCESS"

	submergedLabel = "Submerged or heavy water exposure"
	thermalLabel   = "Smoke, sparks, overheating, burning smell, swelling, or fire"
	impactLabel    = "Impact to battery, charge port, or wiring harness"

	disclaimerA = "Customer confirms all known history has been disclosed. Shop may refuse service or isolate/remove the battery for safety."

	termsTitle    = "TERMS AND CONDITIONS"
	termsAgreed   = "Customer has read and agreed to all Terms and Conditions as presented in the intake form."
	termsOnFile   = "Full terms available at time of submission and on file with service order."
	signatureHead = "SIGNATURE"
	noSignature   = "(No signature provided)"

	// Submitted timestamp, in the signer's local time.
	submittedLayout = "1/2/2006, 3:04:05 PM"
)

var sectionB = []string{
	"Diagnostic minimum: $99 (charged even if repairs are declined). Labor: $159/hr unless a written flat-rate quote is provided.",
	"If additional time is required beyond a flat-rate quote due to hidden damage, we will attempt to contact you for approval. Additional time is billed at $159/hr if approved.",
	"No work beyond the authorized estimate without written approval (signature, email, or text/SMS from the number on file).",
	"Testing authorized (bench and short test ride when safe). Payment due before release. Storage after 7 days: $20/day.",
	"Shop is not responsible for personal items or loose accessories left with the bike.",
}

func sectionC(org string) []string {
	return []string{
		"Customer agrees to leave all keys, batteries, information, and critical operating components (e.g. fobs or chargers) required to operate the bike.",
		fmt.Sprintf("If the customer fails to leave the means to test-ride the bike, %s is not liable for any issues that could only have been identified through a functional test ride.", org),
		"Any subsequent return visits to address issues that would have been identified during a test ride will be treated as a new service request and billed at the standard $159/hr rate.",
	}
}

func signatureConsent(org string) string {
	return fmt.Sprintf("By signing below, customer confirms they are the owner or authorized agent and agrees to all terms above, authorizing %s to perform diagnostic and repair services as approved.", org)
}

func checkbox(checked bool, label string) string {
	mark := " "
	if checked {
		mark = "X"
	}
	return "[" + mark + "] " + label
}
