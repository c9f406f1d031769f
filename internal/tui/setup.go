package tui

import (
	"fmt"

	"github.com/theirongolddev/fivehundred/internal/model"
	"github.com/theirongolddev/fivehundred/internal/tracker"

	"github.com/charmbracelet/huh"
)

// OnboardingValues holds the onboarding form fields. Forms keep pointers
// into it, so it must not be copied while a form is live.
type OnboardingValues struct {
	Sex    string
	Age    string
	Height string
	Weight string
}

// NewOnboardingValues prefills the form from a draft. An empty sex
// defaults to male so the select has a valid initial value.
func NewOnboardingValues(d model.ProfileDraft) *OnboardingValues {
	v := &OnboardingValues{Sex: d.Sex, Age: d.Age, Height: d.Height, Weight: d.Weight}
	if _, ok := model.ParseSex(v.Sex); !ok {
		v.Sex = string(model.SexMale)
	}
	return v
}

// Draft returns the entered values.
func (v *OnboardingValues) Draft() model.ProfileDraft {
	return model.ProfileDraft{Sex: v.Sex, Age: v.Age, Height: v.Height, Weight: v.Weight}
}

// NewOnboardingForm builds the profile form shown on first run and from
// Settings. It is also run standalone by the setup command.
func NewOnboardingForm(v *OnboardingValues) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewNote().
				Title("The 500 Plan").
				Description("Your goal is your BMR minus 500 kcal, plus what your steps burn.\nProtein target is 0.8 g per lb of body weight."),
			huh.NewSelect[string]().
				Title("Sex").
				Options(
					huh.NewOption("Male", string(model.SexMale)),
					huh.NewOption("Female", string(model.SexFemale)),
				).
				Value(&v.Sex),
			huh.NewInput().
				Title("Age").
				Placeholder("30").
				Value(&v.Age).
				Validate(positiveField("age")),
			huh.NewInput().
				Title("Height (inches)").
				Placeholder("70").
				Value(&v.Height).
				Validate(positiveField("height")),
			huh.NewInput().
				Title("Weight (lbs)").
				Placeholder("180").
				Value(&v.Weight).
				Validate(positiveField("weight")),
		),
	).WithTheme(huh.ThemeCharm()).WithShowHelp(true)
}

func positiveField(name string) func(string) error {
	return func(s string) error {
		n, err := tracker.ParseNumber(s)
		if err != nil || n <= 0 {
			return fmt.Errorf("%s must be a positive number", name)
		}
		return nil
	}
}
