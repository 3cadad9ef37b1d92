package server

import (
	"net/http"

	"github.com/nicolaskremer1/immortalis-blueprint/internal/bioage"
)

type quickRequest struct {
	Age           int     `json:"age"`
	Sex           string  `json:"sex"`
	BMI           float64 `json:"bmi"`
	SleepHours    float64 `json:"sleep_hours"`
	ExerciseHours float64 `json:"exercise_hours"`
}

// detailedRequest leaves the inputs outside the formula nil when omitted.
type detailedRequest struct {
	Age               int      `json:"age"`
	SleepHours        *float64 `json:"sleep_hours"`
	SleepQuality      int      `json:"sleep_quality"`
	ExerciseHours     *float64 `json:"exercise_hours"`
	ExerciseIntensity int      `json:"exercise_intensity"`
	Calories          *int     `json:"calories"`
	VeggieServings    int      `json:"veggie_servings"`
	SystolicBP        int      `json:"systolic_bp"`
	Cholesterol       int      `json:"cholesterol"`
}

type bioAgeResponse struct {
	bioage.Result
	Summary string `json:"summary"`
}

func (s *Server) handleQuickBioAge(w http.ResponseWriter, r *http.Request) {
	var req quickRequest
	if err := readBodyJSON(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	sex, err := bioage.ParseSex(req.Sex)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	res, err := bioage.Quick(bioage.QuickInput{
		Age:           req.Age,
		Sex:           sex,
		BMI:           req.BMI,
		SleepHours:    req.SleepHours,
		ExerciseHours: req.ExerciseHours,
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeOK(w, http.StatusOK, bioAgeResponse{Result: res, Summary: res.Summary()})
}

func (s *Server) handleDetailedBioAge(w http.ResponseWriter, r *http.Request) {
	var req detailedRequest
	if err := readBodyJSON(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	res, err := bioage.Detailed(bioage.DetailedInput(req))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeOK(w, http.StatusOK, bioAgeResponse{Result: res, Summary: res.Summary()})
}
