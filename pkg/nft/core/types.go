// Package core holds the value types shared by the mood registry, the
// metadata encoder and the token collaborator.
package core

import (
	"fmt"
	"strings"
)

// TokenID names one token. IDs are allocated sequentially from zero and
// never reused.
type TokenID uint64

// Mood is the discriminated state attached to a token.
type Mood uint8

const (
	MoodHappy Mood = iota
	MoodSad
)

// DefaultMood is reported for an allocated token that never had a mood
// recorded. It matches the zero value so the legacy allocation order
// (see registry.WithLegacyMoodIndex) stays observable.
const DefaultMood = MoodHappy

// InitialMood is recorded for every newly allocated token.
const InitialMood = MoodHappy

var moodNames = map[Mood]string{
	MoodHappy: "HAPPY",
	MoodSad:   "SAD",
}

func (m Mood) String() string {
	if name, ok := moodNames[m]; ok {
		return name
	}
	return fmt.Sprintf("Mood(%d)", uint8(m))
}

// ParseMood accepts a mood name in any case.
func ParseMood(s string) (Mood, error) {
	want := strings.ToUpper(strings.TrimSpace(s))
	for m, name := range moodNames {
		if name == want {
			return m, nil
		}
	}
	return 0, fmt.Errorf("unknown mood %q", s)
}
