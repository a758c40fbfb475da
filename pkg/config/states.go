package config

import "strings"

// State is a US state abbreviation with its display name.
type State struct {
	Abbr string `json:"abbr"`
	Name string `json:"name"`
}

var usStates = []State{
	{"AL", "Alabama"}, {"AK", "Alaska"}, {"AZ", "Arizona"},
	{"AR", "Arkansas"}, {"CA", "California"}, {"CO", "Colorado"},
	{"CT", "Connecticut"}, {"DE", "Delaware"}, {"FL", "Florida"},
	{"GA", "Georgia"}, {"HI", "Hawaii"}, {"ID", "Idaho"},
	{"IL", "Illinois"}, {"IN", "Indiana"}, {"IA", "Iowa"},
	{"KS", "Kansas"}, {"KY", "Kentucky"}, {"LA", "Louisiana"},
	{"ME", "Maine"}, {"MD", "Maryland"}, {"MA", "Massachusetts"},
	{"MI", "Michigan"}, {"MN", "Minnesota"}, {"MS", "Mississippi"},
	{"MO", "Missouri"}, {"MT", "Montana"}, {"NE", "Nebraska"},
	{"NV", "Nevada"}, {"NH", "New Hampshire"}, {"NJ", "New Jersey"},
	{"NM", "New Mexico"}, {"NY", "New York"}, {"NC", "North Carolina"},
	{"ND", "North Dakota"}, {"OH", "Ohio"}, {"OK", "Oklahoma"},
	{"OR", "Oregon"}, {"PA", "Pennsylvania"}, {"RI", "Rhode Island"},
	{"SC", "South Carolina"}, {"SD", "South Dakota"}, {"TN", "Tennessee"},
	{"TX", "Texas"}, {"UT", "Utah"}, {"VT", "Vermont"},
	{"VA", "Virginia"}, {"WA", "Washington"}, {"WV", "West Virginia"},
	{"WI", "Wisconsin"}, {"WY", "Wyoming"},
}

// StateSet is an immutable, ordered set of states. It is built once at
// startup and shared by the validation engine and the suggestion list.
type StateSet struct {
	states []State
	byAbbr map[string]State
}

// NewStateSet copies states into a lookup set keyed by upper-cased abbreviation.
func NewStateSet(states []State) *StateSet {
	s := &StateSet{
		states: make([]State, len(states)),
		byAbbr: make(map[string]State, len(states)),
	}
	copy(s.states, states)
	for _, st := range states {
		s.byAbbr[strings.ToUpper(st.Abbr)] = st
	}
	return s
}

// DefaultStates returns the 50 US states.
func DefaultStates() *StateSet {
	return NewStateSet(usStates)
}

// Contains reports whether abbr is a known abbreviation, ignoring case and
// surrounding whitespace.
func (s *StateSet) Contains(abbr string) bool {
	_, ok := s.byAbbr[strings.ToUpper(strings.TrimSpace(abbr))]
	return ok
}

// Len returns the number of states in the set.
func (s *StateSet) Len() int {
	return len(s.states)
}

// All returns every state in declaration order.
func (s *StateSet) All() []State {
	out := make([]State, len(s.states))
	copy(out, s.states)
	return out
}

// Suggest filters states whose abbreviation or upper-cased name starts with
// the upper-cased query. An empty query returns every state.
func (s *StateSet) Suggest(query string) []State {
	q := strings.ToUpper(query)
	if q == "" {
		return s.All()
	}
	var out []State
	for _, st := range s.states {
		if strings.HasPrefix(st.Abbr, q) || strings.HasPrefix(strings.ToUpper(st.Name), q) {
			out = append(out, st)
		}
	}
	return out
}
