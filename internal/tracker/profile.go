package tracker

import (
	"errors"
	"math"
	"strconv"
	"strings"

	"github.com/theirongolddev/fivehundred/internal/model"
)

// ParseProfile validates onboarding input. Every field must be present;
// age must be a positive whole number, height and weight positive numbers.
// The returned error wraps ErrProfileIncomplete and a *FieldError for the
// first bad field.
func ParseProfile(d model.ProfileDraft) (model.Profile, error) {
	var p model.Profile
	var errs []error

	sex, ok := model.ParseSex(d.Sex)
	if !ok {
		errs = append(errs, fieldErr("sex", errors.New("choose male or female")))
	}
	p.Sex = sex

	age, err := strconv.Atoi(strings.TrimSpace(d.Age))
	if err != nil || age <= 0 || age > 150 {
		errs = append(errs, fieldErr("age", ErrInvalidNumber))
	}
	p.Age = age

	h, err := ParseNumber(d.Height)
	if err != nil || h <= 0 {
		errs = append(errs, fieldErr("height", ErrInvalidNumber))
	}
	p.HeightInches = h

	w, err := ParseNumber(d.Weight)
	if err != nil || w <= 0 {
		errs = append(errs, fieldErr("weight", ErrInvalidNumber))
	}
	p.WeightLbs = w

	if len(errs) > 0 {
		return model.Profile{}, errors.Join(append([]error{ErrProfileIncomplete}, errs...)...)
	}
	return p, nil
}

// LenientProfile keeps whatever fields of d parse. Goals computed from it
// fall back to the default BMR when a metric is missing.
func LenientProfile(d model.ProfileDraft) model.Profile {
	var p model.Profile
	p.Sex, _ = model.ParseSex(d.Sex)
	if f, err := ParseNumber(d.Age); err == nil && f > 0 {
		p.Age = int(math.Floor(f))
	}
	if f, err := ParseNumber(d.Height); err == nil && f > 0 {
		p.HeightInches = f
	}
	if f, err := ParseNumber(d.Weight); err == nil && f > 0 {
		p.WeightLbs = f
	}
	return p
}
