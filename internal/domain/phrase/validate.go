package phrase

import (
	"regexp"
	"strconv"
)

// ValidateFieldValues checks every field's declared constraints against the
// current values and returns a key→message map containing only the fields
// that failed. Checks run in declaration order and short-circuit at the
// first violation per field. Fields whose conditional logic currently hides
// them are exempt, so stale entries behind a collapsed branch of a form
// never block documentation.
func ValidateFieldValues(fields []FieldDefinition, values FieldValues) map[string]string {
	errs := map[string]string{}
	for i := range fields {
		f := &fields[i]
		if !fieldVisible(f, values) {
			continue
		}
		if msg := validateField(f, values); msg != "" {
			errs[f.Key] = msg
		}
	}
	return errs
}

// fieldVisible resolves a field's effective visibility from its conditional
// logic. Fields without show/hide logic are always visible.
func fieldVisible(f *FieldDefinition, values FieldValues) bool {
	if f.Conditional == nil {
		return true
	}
	met := EvaluateCondition(f.Conditional.Rule, values)
	switch f.Conditional.Action {
	case ActionShow:
		return met
	case ActionHide:
		return !met
	default:
		return true
	}
}

func validateField(f *FieldDefinition, values FieldValues) string {
	val := values[f.Key]

	required := f.Validation != nil && f.Validation.Required
	// A "require" conditional makes the field required while its rule holds.
	if f.Conditional != nil && f.Conditional.Action == ActionRequire &&
		EvaluateCondition(f.Conditional.Rule, values) {
		required = true
	}
	if required && isEmptyValue(val) {
		return f.DisplayLabel() + " is required"
	}

	if f.Validation == nil || isEmptyValue(val) {
		return ""
	}

	if f.Type == FieldNumber {
		if n, ok := numericValue(val); ok {
			if f.Validation.Min != nil && n < *f.Validation.Min {
				return f.DisplayLabel() + " must be at least " + formatBound(*f.Validation.Min)
			}
			if f.Validation.Max != nil && n > *f.Validation.Max {
				return f.DisplayLabel() + " must be at most " + formatBound(*f.Validation.Max)
			}
		}
	}

	if f.Validation.Pattern != "" {
		re, err := regexp.Compile(f.Validation.Pattern)
		// An uncompilable pattern never blocks documentation.
		if err == nil && !re.MatchString(stringifyValue(val)) {
			if f.Validation.Message != "" {
				return f.Validation.Message
			}
			return f.DisplayLabel() + " has an invalid format"
		}
	}

	return ""
}

func formatBound(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
