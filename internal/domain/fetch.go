package domain

import (
	"strings"
	"unicode"
)

// FetchPhase is the phase of the fetch state machine.
type FetchPhase int

const (
	PhaseIdle FetchPhase = iota
	PhaseLoading
	PhaseSettled
)

// String returns a human-readable label for the phase.
func (p FetchPhase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseLoading:
		return "loading"
	case PhaseSettled:
		return "settled"
	default:
		return "unknown"
	}
}

// FetchState is the observable state of the kick count fetch.
//
// Loading and HasSettled are independent: a refetch may be in flight while
// the count from an earlier settle is still shown.
type FetchState struct {
	Phase      FetchPhase
	Identity   UserIdentity
	Count      KickCount
	HasSettled bool
	Err        error
}

// Loading reports whether a fetch is in flight.
func (s FetchState) Loading() bool {
	return s.Phase == PhaseLoading
}

// Outcome classifies the last settle.
func (s FetchState) Outcome() Outcome {
	return OutcomeOf(s.Err)
}

// Proportion derives the ring slices from the current count.
func (s FetchState) Proportion() Proportion {
	return MapProportion(s.Count)
}

// Message derives the activity message from the current count.
func (s FetchState) Message() ActivityMessage {
	return Classify(s.Count)
}

// ParseKickCount parses a total the way the counting service's web client
// did: leading whitespace, an optional sign, then the leading run of digits.
// Anything after the digits is ignored. No digits or a negative value is
// reported as ErrResponseMalformed.
func ParseKickCount(s string) (KickCount, error) {
	s = strings.TrimLeftFunc(s, unicode.IsSpace)
	negative := false
	if s != "" && (s[0] == '+' || s[0] == '-') {
		negative = s[0] == '-'
		s = s[1:]
	}

	n := 0
	digits := 0
	for _, r := range s {
		if r < '0' || r > '9' {
			break
		}
		n = n*10 + int(r-'0')
		digits++
		if n > 1<<30 {
			return 0, ErrResponseMalformed
		}
	}
	if digits == 0 {
		return 0, ErrResponseMalformed
	}
	if negative && n != 0 {
		return 0, ErrResponseMalformed
	}
	return KickCount(n), nil
}
