// Package threshold parses Nagios-style range expressions and classifies a
// measured value against them. It performs no I/O and holds no state, so the
// whole alerting contract is testable without a ticketing backend.
package threshold

import (
	"fmt"
	"strconv"
	"strings"
)

// Severity is the health classification of a check, ordered by urgency.
type Severity int

const (
	OK Severity = iota
	Warning
	Critical
	Unknown
)

// String returns the label Nagios expects in the check output line.
func (s Severity) String() string {
	switch s {
	case OK:
		return "OK"
	case Warning:
		return "WARNING"
	case Critical:
		return "CRITICAL"
	default:
		return "UNKNOWN"
	}
}

// ExitCode maps the severity to the conventional plugin exit code.
func (s Severity) ExitCode() int {
	switch s {
	case OK:
		return 0
	case Warning:
		return 1
	case Critical:
		return 2
	default:
		return 3
	}
}

// Spec is a parsed threshold range. A nil bound means that side is
// unbounded. Negate flips the alerting region to the inside of the range.
// Specs are immutable once parsed.
type Spec struct {
	Lower  *float64
	Upper  *float64
	Negate bool
}

// Parse parses a threshold expression into a Spec.
//
// Accepted forms:
//
//	"10"    alert when value > 10
//	":10"   alert when value > 10
//	"10:"   alert when value < 10
//	"4:18"  alert when value < 4 or value > 18
//	"@4:18" alert when 4 <= value <= 18
//
// An empty expression, a non-numeric bound, or min > max is an error.
// Absence of a threshold is expressed by a nil *Spec, not by empty text.
func Parse(text string) (*Spec, error) {
	raw := strings.TrimSpace(text)
	if raw == "" {
		return nil, fmt.Errorf("empty threshold expression")
	}

	spec := &Spec{}
	body := raw
	if strings.HasPrefix(body, "@") {
		spec.Negate = true
		body = body[1:]
	}

	lowerText, upperText, hasColon := strings.Cut(body, ":")
	if !hasColon {
		// Bare "max" form.
		upperText = lowerText
		lowerText = ""
	}

	var err error
	if spec.Lower, err = parseBound(lowerText); err != nil {
		return nil, fmt.Errorf("invalid threshold %q: %w", raw, err)
	}
	if spec.Upper, err = parseBound(upperText); err != nil {
		return nil, fmt.Errorf("invalid threshold %q: %w", raw, err)
	}

	if spec.Lower == nil && spec.Upper == nil {
		return nil, fmt.Errorf("invalid threshold %q: no bounds given", raw)
	}
	if spec.Lower != nil && spec.Upper != nil && *spec.Lower > *spec.Upper {
		return nil, fmt.Errorf("invalid threshold %q: lower bound exceeds upper bound", raw)
	}

	return spec, nil
}

func parseBound(text string) (*float64, error) {
	if text == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return nil, fmt.Errorf("bound %q is not a number", text)
	}
	return &v, nil
}

// Alerts reports whether value falls inside the alert-triggering region.
// For a normal spec that is outside [Lower, Upper]; for a negated spec it
// is inside the range, bounds inclusive. Unset bounds act as ±infinity.
func (s *Spec) Alerts(value float64) bool {
	inside := true
	if s.Lower != nil && value < *s.Lower {
		inside = false
	}
	if s.Upper != nil && value > *s.Upper {
		inside = false
	}
	if s.Negate {
		return inside
	}
	return !inside
}

// Classify evaluates a value against the warning and critical specs and
// returns the final severity. Critical is checked first and dominates
// warning regardless of how far the value sits outside either range. With
// neither spec supplied the result is Unknown; callers are expected to
// reject that configuration before ever measuring anything.
func Classify(value float64, warning, critical *Spec) Severity {
	if warning == nil && critical == nil {
		return Unknown
	}
	if critical != nil && critical.Alerts(value) {
		return Critical
	}
	if warning != nil && warning.Alerts(value) {
		return Warning
	}
	return OK
}
