// Package model defines domain types for the fivehundred tracker.
package model

import (
	"strconv"
	"strings"
)

// Sex selects the BMR constant.
type Sex string

const (
	SexMale   Sex = "male"
	SexFemale Sex = "female"
)

// ParseSex accepts "male" or "female" in any case.
func ParseSex(s string) (Sex, bool) {
	switch Sex(strings.ToLower(strings.TrimSpace(s))) {
	case SexMale:
		return SexMale, true
	case SexFemale:
		return SexFemale, true
	}
	return "", false
}

// Profile holds the body metrics collected during onboarding.
type Profile struct {
	Sex          Sex
	Age          int
	HeightInches float64
	WeightLbs    float64
}

// Complete reports whether every metric is present and positive.
func (p Profile) Complete() bool {
	return p.Sex != "" && p.Age > 0 && p.HeightInches > 0 && p.WeightLbs > 0
}

// Draft renders the profile back into raw form input, used to prefill
// the onboarding form when the profile is reopened for editing.
func (p Profile) Draft() ProfileDraft {
	d := ProfileDraft{Sex: string(p.Sex)}
	if p.Age > 0 {
		d.Age = strconv.Itoa(p.Age)
	}
	if p.HeightInches > 0 {
		d.Height = strconv.FormatFloat(p.HeightInches, 'f', -1, 64)
	}
	if p.WeightLbs > 0 {
		d.Weight = strconv.FormatFloat(p.WeightLbs, 'f', -1, 64)
	}
	return d
}

// ProfileDraft is unvalidated onboarding input, exactly as typed.
type ProfileDraft struct {
	Sex    string
	Age    string
	Height string
	Weight string
}

// Onboarding is either a completed Profile or an Incomplete draft.
// The set of variants is closed.
type Onboarding interface {
	onboarding()
}

// Incomplete is the onboarding state before all metrics are valid.
type Incomplete struct {
	Draft ProfileDraft
}

func (Profile) onboarding()    {}
func (Incomplete) onboarding() {}
