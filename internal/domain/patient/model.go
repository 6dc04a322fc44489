package patient

import (
	"time"

	"github.com/google/uuid"
)

// Record holds the rounding-relevant snapshot of one patient: identity,
// location, latest labs and vitals, and free-text systems review sections.
// It is the already-loaded data that phrase expansion reads from; how it got
// loaded (HL7 feed, manual entry, sync) is outside this module.
type Record struct {
	ID         uuid.UUID          `json:"id"`
	Name       string             `json:"name"`
	MRN        string             `json:"mrn"`
	BirthDate  *time.Time         `json:"birth_date,omitempty"`
	Sex        string             `json:"sex,omitempty"`
	Bed        string             `json:"bed,omitempty"`
	Unit       string             `json:"unit,omitempty"`
	Diagnosis  string             `json:"diagnosis,omitempty"`
	CodeStatus string             `json:"code_status,omitempty"`
	Labs       map[string]float64 `json:"labs,omitempty"`
	Vitals     map[string]float64 `json:"vitals,omitempty"`
	Systems    map[string]string  `json:"systems,omitempty"` // systems review by section, e.g. "neuro"
	UpdatedAt  time.Time          `json:"updated_at"`
}

// Context flattens the record into the dotted-path bag that patient_data
// fields resolve against: top-level attributes by name ("name", "bed") and
// grouped values under their section ("labs.creatinine", "vitals.hr",
// "systems.neuro").
func (r *Record) Context() map[string]any {
	ctx := map[string]any{
		"name":        r.Name,
		"mrn":         r.MRN,
		"sex":         r.Sex,
		"bed":         r.Bed,
		"unit":        r.Unit,
		"diagnosis":   r.Diagnosis,
		"code_status": r.CodeStatus,
	}
	if r.BirthDate != nil {
		ctx["birth_date"] = r.BirthDate.Format("2006-01-02")
		ctx["age"] = ageInYears(*r.BirthDate, time.Now())
	}
	if len(r.Labs) > 0 {
		ctx["labs"] = r.Labs
	}
	if len(r.Vitals) > 0 {
		ctx["vitals"] = r.Vitals
	}
	if len(r.Systems) > 0 {
		ctx["systems"] = r.Systems
	}
	return ctx
}

func ageInYears(birth, at time.Time) int {
	years := at.Year() - birth.Year()
	if at.YearDay() < birth.YearDay() {
		years--
	}
	if years < 0 {
		return 0
	}
	return years
}
