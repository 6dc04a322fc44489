package phrase

import "testing"

func TestPatientContextResolve(t *testing.T) {
	pc := PatientContext{
		"name": "Alex Smith",
		"age":  float64(54),
		"labs": map[string]float64{"creatinine": 1.4, "wbc": 11},
		"systems": map[string]string{
			"neuro": "alert and oriented x3",
		},
		"admission": map[string]any{
			"unit": "MICU",
			"team": map[string]any{"attending": "Dr. Osei"},
		},
	}

	tests := []struct {
		path string
		want string
	}{
		{"name", "Alex Smith"},
		{"age", "54"},
		{"labs.creatinine", "1.4"},
		{"labs.wbc", "11"},
		{"systems.neuro", "alert and oriented x3"},
		{"admission.unit", "MICU"},
		{"admission.team.attending", "Dr. Osei"},
		{" name ", "Alex Smith"},
		{"labs.sodium", ""},
		{"vitals.hr", ""},
		{"name.first", ""},
		{"", ""},
	}

	for _, tt := range tests {
		if got := pc.Resolve(tt.path); got != tt.want {
			t.Errorf("Resolve(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}

func TestPatientContextResolveNil(t *testing.T) {
	var pc PatientContext
	if got := pc.Resolve("name"); got != "" {
		t.Errorf("Resolve on nil context = %q, want empty", got)
	}
}
