// Package domain contains the core entities for kicks.
// These types describe a user's daily kick count and the values derived
// from it for display, independent of any transport or rendering layer.
package domain

import (
	"fmt"
	"strings"
)

// DailyGoal is the reference value the ring proportion is computed against.
// It is not a hard limit: counts above it are valid.
const DailyGoal = 10

// Activity tier lower bounds (inclusive).
const (
	QuiteActiveThreshold = 4
	VeryActiveThreshold  = 8
)

// KickCount is the number of kicks recorded today for one user.
type KickCount int

// Caption returns the status line shown under the chart.
func (c KickCount) Caption() string {
	return fmt.Sprintf("%d / %d kicks today", int(c), DailyGoal)
}

// Proportion splits the daily goal into the achieved and remaining slices.
type Proportion struct {
	Achieved  int
	Remaining int
}

// MapProportion maps a kick count onto the two ring slices.
// Counts above the goal yield a full ring with no remaining slice.
func MapProportion(count KickCount) Proportion {
	achieved := int(count)
	if achieved < 0 {
		achieved = 0
	}
	if achieved > DailyGoal {
		achieved = DailyGoal
	}
	return Proportion{
		Achieved:  achieved,
		Remaining: DailyGoal - achieved,
	}
}

// Total returns the sum of both slices.
func (p Proportion) Total() int {
	return p.Achieved + p.Remaining
}

// Fraction returns the achieved share of the goal in [0, 1].
func (p Proportion) Fraction() float64 {
	if p.Total() == 0 {
		return 0
	}
	return float64(p.Achieved) / float64(p.Total())
}

// ActivityMessage is the qualitative message drawn in the middle of the ring.
// Line breaks are encoded with '\n'.
type ActivityMessage string

// Activity messages, one per tier.
const (
	MessageVeryActive  ActivityMessage = "Your baby is very active!"
	MessageQuiteActive ActivityMessage = "Quite active"
	MessageNotActive   ActivityMessage = "Not really active,\nmaybe they're asleep"
)

// Classify maps a kick count to its activity message.
func Classify(count KickCount) ActivityMessage {
	switch {
	case count >= VeryActiveThreshold:
		return MessageVeryActive
	case count >= QuiteActiveThreshold:
		return MessageQuiteActive
	default:
		return MessageNotActive
	}
}

// Lines splits the message on its line-break marker.
// An empty message has no lines.
func (m ActivityMessage) Lines() []string {
	if m == "" {
		return nil
	}
	return strings.Split(string(m), "\n")
}

// OneLine joins the message into a single line for narrow layouts.
func (m ActivityMessage) OneLine() string {
	return strings.Join(m.Lines(), " ")
}
