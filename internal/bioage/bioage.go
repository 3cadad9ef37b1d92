// Package bioage derives a biological age from self-reported health metrics.
//
// Both modes are fixed linear formulas. Inputs are range-checked before use;
// the output itself is never clamped, so extreme but valid inputs may produce
// an implausible (even negative) age.
package bioage

import (
	"fmt"
	"math"
	"strings"

	"github.com/nicolaskremer1/immortalis-blueprint/internal/apperrors"
)

type Sex string

const (
	Male   Sex = "male"
	Female Sex = "female"
)

type Verdict string

const (
	VerdictYounger      Verdict = "younger"
	VerdictOptimization Verdict = "optimization_opportunity"
)

// QuickInput is the short form: age, sex, BMI, sleep and weekly exercise.
type QuickInput struct {
	Age           int
	Sex           Sex
	BMI           float64
	SleepHours    float64
	ExerciseHours float64
}

// DetailedInput is the biomarker form. Sleep and exercise durations and daily
// calories do not enter the formula; they are optional and range-checked only
// when set.
type DetailedInput struct {
	Age               int
	SleepHours        *float64
	SleepQuality      int
	ExerciseHours     *float64
	ExerciseIntensity int
	Calories          *int
	VeggieServings    int
	SystolicBP        int
	Cholesterol       int
}

type ComparisonRow struct {
	Metric string  `json:"metric"`
	Age    float64 `json:"age"`
}

type Result struct {
	ChronologicalAge int             `json:"chronological_age"`
	BiologicalAge    float64         `json:"biological_age"`
	Verdict          Verdict         `json:"verdict"`
	Delta            float64         `json:"delta,omitempty"`
	Comparison       []ComparisonRow `json:"comparison,omitempty"`
}

const (
	minAge            = 18
	maxAge            = 120
	minBMI            = 10.0
	maxBMI            = 50.0
	maxSleepHours     = 24.0
	maxExerciseHours  = 168.0
	minScale          = 1
	maxScale          = 10
	minCalories       = 500
	maxCalories       = 5000
	maxVeggieServings = 20
	minSystolic       = 80
	maxSystolic       = 200
	minCholesterol    = 100
	maxCholesterol    = 300
)

func ParseSex(s string) (Sex, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "male", "m":
		return Male, nil
	case "female", "f":
		return Female, nil
	default:
		return "", fmt.Errorf("%w: sex must be male or female, got %q", apperrors.ErrInvalidInput, s)
	}
}

// HoursMinutes folds the split hour/minute widgets into fractional hours.
func HoursMinutes(hours, minutes int) (float64, error) {
	if hours < 0 {
		return 0, fmt.Errorf("%w: hours must be >= 0", apperrors.ErrInvalidInput)
	}
	if minutes < 0 || minutes > 59 {
		return 0, fmt.Errorf("%w: minutes must be between 0 and 59", apperrors.ErrInvalidInput)
	}
	return float64(hours) + float64(minutes)/60, nil
}

// Quick computes
//
//	bio = A*sexFactor + (BMI-22)*0.8 - (sleep-7)*1.2 - exercise*0.3
//
// with sexFactor 1.2 for male and 1.0 for female.
func Quick(in QuickInput) (Result, error) {
	if err := in.Validate(); err != nil {
		return Result{}, err
	}
	sexFactor := 1.0
	if in.Sex == Male {
		sexFactor = 1.2
	}
	bio := float64(in.Age)*sexFactor + (in.BMI-22)*0.8 - (in.SleepHours-7)*1.2 - in.ExerciseHours*0.3
	return newResult(in.Age, bio), nil
}

// Detailed computes
//
//	bio = A + BP*0.1 + (chol-200)*0.05 - veg*0.2 - sleepQuality*0.1 - intensity*0.15
func Detailed(in DetailedInput) (Result, error) {
	if err := in.Validate(); err != nil {
		return Result{}, err
	}
	bio := float64(in.Age) +
		float64(in.SystolicBP)*0.1 +
		float64(in.Cholesterol-200)*0.05 -
		float64(in.VeggieServings)*0.2 -
		float64(in.SleepQuality)*0.1 -
		float64(in.ExerciseIntensity)*0.15
	res := newResult(in.Age, bio)
	res.Comparison = []ComparisonRow{
		{Metric: "Chronological", Age: float64(in.Age)},
		{Metric: "Biological", Age: bio},
	}
	return res, nil
}

func newResult(age int, bio float64) Result {
	res := Result{ChronologicalAge: age, BiologicalAge: bio, Verdict: VerdictOptimization}
	if bio < float64(age) {
		res.Verdict = VerdictYounger
		res.Delta = float64(age) - bio
	}
	return res
}

// FormatYears renders an age with one decimal place.
func FormatYears(v float64) string {
	return fmt.Sprintf("%.1f", v)
}

// Summary is the one-line verdict shown under the computed age.
func (r Result) Summary() string {
	if r.Verdict == VerdictYounger {
		return fmt.Sprintf("You're %s years biologically younger!", FormatYears(r.Delta))
	}
	return "Optimization opportunity detected"
}

func (in QuickInput) Validate() error {
	if err := checkInt("age", in.Age, minAge, maxAge); err != nil {
		return err
	}
	if in.Sex != Male && in.Sex != Female {
		return fmt.Errorf("%w: sex must be male or female", apperrors.ErrInvalidInput)
	}
	if err := checkFloat("bmi", in.BMI, minBMI, maxBMI); err != nil {
		return err
	}
	if err := checkFloat("sleep hours", in.SleepHours, 0, maxSleepHours); err != nil {
		return err
	}
	return checkFloat("exercise hours", in.ExerciseHours, 0, maxExerciseHours)
}

func (in DetailedInput) Validate() error {
	checks := []error{
		checkInt("age", in.Age, minAge, maxAge),
		checkInt("sleep quality", in.SleepQuality, minScale, maxScale),
		checkInt("exercise intensity", in.ExerciseIntensity, minScale, maxScale),
		checkInt("veggie servings", in.VeggieServings, 0, maxVeggieServings),
		checkInt("systolic bp", in.SystolicBP, minSystolic, maxSystolic),
		checkInt("cholesterol", in.Cholesterol, minCholesterol, maxCholesterol),
	}
	if in.SleepHours != nil {
		checks = append(checks, checkFloat("sleep hours", *in.SleepHours, 0, maxSleepHours))
	}
	if in.ExerciseHours != nil {
		checks = append(checks, checkFloat("exercise hours", *in.ExerciseHours, 0, maxExerciseHours))
	}
	if in.Calories != nil {
		checks = append(checks, checkInt("calories", *in.Calories, minCalories, maxCalories))
	}
	for _, err := range checks {
		if err != nil {
			return err
		}
	}
	return nil
}

func checkInt(name string, v, lo, hi int) error {
	if v < lo || v > hi {
		return fmt.Errorf("%w: %s must be between %d and %d, got %d", apperrors.ErrInvalidInput, name, lo, hi, v)
	}
	return nil
}

func checkFloat(name string, v, lo, hi float64) error {
	if math.IsNaN(v) || v < lo || v > hi {
		return fmt.Errorf("%w: %s must be between %g and %g, got %g", apperrors.ErrInvalidInput, name, lo, hi, v)
	}
	return nil
}
