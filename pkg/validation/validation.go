package validation

import (
	"errors"
	"reflect"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"

	"github.com/chargedcycleworks/service-intake/pkg/config"
	"github.com/chargedcycleworks/service-intake/pkg/models"
)

var (
	alphaNameRegex = regexp.MustCompile(`^[A-Za-z\s'\-.]+$`)
	emailRegex     = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	zipRegex       = regexp.MustCompile(`^\d{5}(-\d{4})?$`)
	initialsRegex  = regexp.MustCompile(`^[A-Za-z]{1,3}$`)
	dateRegex      = regexp.MustCompile(`^(0[1-9]|1[0-2])/(0[1-9]|[12]\d|3[01])/\d{4}$`)
)

// Result maps a field's JSON name to its first failing rule's message.
// A missing key means the field is valid.
type Result map[string]string

// Valid reports whether no field failed.
func (r Result) Valid() bool { return len(r) == 0 }

// Count returns the number of invalid fields.
func (r Result) Count() int { return len(r) }

// Fields returns the invalid field names, sorted.
func (r Result) Fields() []string {
	out := make([]string, 0, len(r))
	for k := range r {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Engine validates FormState values. It holds no per-form state and can be
// shared.
type Engine struct {
	validate *validator.Validate
	states   *config.StateSet
}

// NewEngine builds an engine that accepts the abbreviations in states.
func NewEngine(states *config.StateSet) *Engine {
	e := &Engine{
		validate: validator.New(),
		states:   states,
	}

	e.validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	mustRegister(e.validate, "notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	mustRegister(e.validate, "alphaname", func(fl validator.FieldLevel) bool {
		return alphaNameRegex.MatchString(fl.Field().String())
	})
	mustRegister(e.validate, "usphone", func(fl validator.FieldLevel) bool {
		return countDigits(fl.Field().String()) == 10
	})
	mustRegister(e.validate, "simpleemail", func(fl validator.FieldLevel) bool {
		return emailRegex.MatchString(strings.TrimSpace(fl.Field().String()))
	})
	mustRegister(e.validate, "usstate", func(fl validator.FieldLevel) bool {
		return e.states.Contains(fl.Field().String())
	})
	mustRegister(e.validate, "uszip", func(fl validator.FieldLevel) bool {
		return zipRegex.MatchString(strings.TrimSpace(fl.Field().String()))
	})
	mustRegister(e.validate, "mintrimmed", func(fl validator.FieldLevel) bool {
		min, err := strconv.Atoi(fl.Param())
		if err != nil {
			return false
		}
		return utf8.RuneCountInString(strings.TrimSpace(fl.Field().String())) >= min
	})
	mustRegister(e.validate, "initials", func(fl validator.FieldLevel) bool {
		return initialsRegex.MatchString(strings.TrimSpace(fl.Field().String()))
	})
	mustRegister(e.validate, "usdate", func(fl validator.FieldLevel) bool {
		return dateRegex.MatchString(strings.TrimSpace(fl.Field().String()))
	})

	// Struct-level rules run after every field rule.
	e.validate.RegisterStructValidation(printedNameMatches, models.FormState{})

	return e
}

// Validate returns one message per invalid field of f.
func (e *Engine) Validate(f models.FormState) Result {
	result := Result{}

	err := e.validate.Struct(f)
	if err == nil {
		return result
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		// Only reachable for non-struct input.
		result[models.FieldFirstName] = err.Error()
		return result
	}

	for _, fe := range fieldErrs {
		field := fe.Field()
		if _, seen := result[field]; seen {
			continue
		}
		result[field] = message(field, fe.Tag())
	}
	return result
}

// printedNameMatches enforces printedName == FullName, ignoring case, once both
// names are filled in. Blank printed names are left to the notblank rule.
func printedNameMatches(sl validator.StructLevel) {
	f, ok := sl.Current().Interface().(models.FormState)
	if !ok {
		return
	}
	printed := strings.TrimSpace(f.PrintedName)
	full := models.FullName(f)
	if printed == "" || full == "" {
		return
	}
	if !strings.EqualFold(printed, full) {
		sl.ReportError(f.PrintedName, models.FieldPrintedName, "PrintedName", "fullname", full)
	}
}

func countDigits(s string) int {
	n := 0
	for _, r := range s {
		if unicode.IsDigit(r) {
			n++
		}
	}
	return n
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic("validation: registering " + tag + ": " + err.Error())
	}
}
