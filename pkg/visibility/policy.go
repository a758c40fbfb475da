// Package visibility decides which field errors a user should see.
package visibility

// State is a field's visibility state.
type State int

const (
	Pristine State = iota
	Touched
	Shown
)

func (s State) String() string {
	switch s {
	case Touched:
		return "touched"
	case Shown:
		return "shown"
	default:
		return "pristine"
	}
}

// Policy tracks blur and submit-attempt events. The zero value is ready to
// use with every field pristine.
type Policy struct {
	touched         map[string]bool
	submitAttempted bool
}

// New returns a policy with every field pristine.
func New() *Policy {
	return &Policy{}
}

// Blur marks a field as touched.
func (p *Policy) Blur(field string) {
	if p.touched == nil {
		p.touched = make(map[string]bool)
	}
	p.touched[field] = true
}

// AttemptSubmit shows every field.
func (p *Policy) AttemptSubmit() {
	p.submitAttempted = true
}

// SubmitAttempted reports whether a submit has been attempted since the last reset.
func (p *Policy) SubmitAttempted() bool {
	return p.submitAttempted
}

// State returns the visibility state of a field.
func (p *Policy) State(field string) State {
	switch {
	case p.submitAttempted:
		return Shown
	case p.touched[field]:
		return Touched
	default:
		return Pristine
	}
}

// Visible reports whether errors for field may be displayed.
func (p *Policy) Visible(field string) bool {
	return p.State(field) != Pristine
}

// Filter returns the subset of errors whose fields are visible.
func (p *Policy) Filter(errs map[string]string) map[string]string {
	out := make(map[string]string, len(errs))
	for field, msg := range errs {
		if p.Visible(field) {
			out[field] = msg
		}
	}
	return out
}

// Reset returns every field to pristine and clears the submit attempt.
func (p *Policy) Reset() {
	p.touched = nil
	p.submitAttempted = false
}

// AllPristine reports whether no field has been touched or shown.
func (p *Policy) AllPristine() bool {
	return !p.submitAttempted && len(p.touched) == 0
}
