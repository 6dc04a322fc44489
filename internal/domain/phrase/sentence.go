package phrase

import "strings"

// symptomFragments maps checkbox selection keys to the clinical wording used
// in generated sentences. Keys absent from the table fall back to their
// literal text so a selection is never silently dropped.
var symptomFragments = map[string]string{
	"cough":           "cough",
	"fever":           "fever",
	"chills":          "chills",
	"sob":             "shortness of breath",
	"dyspnea":         "dyspnea",
	"chest_pain":      "chest pain",
	"palpitations":    "palpitations",
	"nausea":          "nausea",
	"vomiting":        "vomiting",
	"diarrhea":        "diarrhea",
	"constipation":    "constipation",
	"abdominal_pain":  "abdominal pain",
	"headache":        "headache",
	"dizziness":       "dizziness",
	"fatigue":         "fatigue",
	"weight_loss":     "weight loss",
	"night_sweats":    "night sweats",
	"edema":           "lower extremity edema",
	"rash":            "rash",
	"dysuria":         "dysuria",
	"hematuria":       "hematuria",
	"melena":          "melena",
	"hemoptysis":      "hemoptysis",
	"orthopnea":       "orthopnea",
	"syncope":         "syncope",
	"myalgias":        "myalgias",
	"arthralgias":     "arthralgias",
	"sore_throat":     "sore throat",
	"rhinorrhea":      "rhinorrhea",
	"vision_changes":  "vision changes",
	"hearing_loss":    "hearing loss",
	"numbness":        "numbness or tingling",
	"anorexia":        "decreased appetite",
}

// GenerateSentenceFromSelections turns multi-select symptom choices into
// review-of-systems prose. A key prefixed "no_" renders as a denial
// ("Patient denies fever."), everything else as an affirmation ("Patient
// reports cough."). Input order is preserved; it reflects checklist order.
func GenerateSentenceFromSelections(selected []string) string {
	var parts []string
	for _, key := range selected {
		key = strings.TrimSpace(key)
		if key == "" {
			continue
		}
		negative := strings.HasPrefix(key, "no_")
		symptom := strings.TrimPrefix(key, "no_")
		if frag, ok := symptomFragments[symptom]; ok {
			symptom = frag
		} else {
			symptom = strings.ReplaceAll(symptom, "_", " ")
		}
		if negative {
			parts = append(parts, "Patient denies "+symptom+".")
		} else {
			parts = append(parts, "Patient reports "+symptom+".")
		}
	}
	return strings.Join(parts, " ")
}
