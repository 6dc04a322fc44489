package phrase

import (
	"strconv"
	"strings"
)

// ExpandPhrase substitutes every {{key}} placeholder in the phrase content
// using the supplied field definitions, current values, and optional patient
// context, and returns the finished text plus bookkeeping: which keys
// actually produced text (UsedFields, first-occurrence order) and which
// formulas were computed (CalculatedValues).
//
// Expansion is total over partial or malformed input. A key with no value,
// no definition, an unresolvable patient path, or a refused formula expands
// to the empty string — clinical text degrades, it never fails. The function
// is pure; identical inputs always produce identical results.
func ExpandPhrase(p *Phrase, fields []FieldDefinition, values FieldValues, pc PatientContext) ExpansionResult {
	byKey := make(map[string]*FieldDefinition, len(fields))
	for i := range fields {
		byKey[fields[i].Key] = &fields[i]
	}

	keys := ExtractFieldKeys(p.Content)
	resolved := make(map[string]string, len(keys))
	calculated := map[string]float64{}

	for _, key := range keys {
		f := byKey[key]
		if f == nil {
			// No definition: substitute the raw value when one exists.
			resolved[key] = stringifyValue(values[key])
			continue
		}
		resolved[key] = resolveField(f, values, pc, calculated)
	}

	content := placeholderPattern.ReplaceAllStringFunc(p.Content, func(m string) string {
		key := strings.TrimSpace(m[2 : len(m)-2])
		return resolved[key]
	})

	var used []string
	for _, key := range keys {
		if resolved[key] != "" {
			used = append(used, key)
		}
	}

	result := ExpansionResult{Content: content, UsedFields: used}
	if len(calculated) > 0 {
		result.CalculatedValues = calculated
	}
	return result
}

// resolveField produces the substitution text for one field, dispatching on
// the field type.
func resolveField(f *FieldDefinition, values FieldValues, pc PatientContext, calculated map[string]float64) string {
	switch f.Type {
	case FieldText, FieldDropdown, FieldRadio:
		if s := stringifyValue(values[f.Key]); s != "" {
			return s
		}
		return f.DefaultValue

	case FieldNumber, FieldDate:
		return stringifyValue(values[f.Key])

	case FieldCheckbox:
		return GenerateSentenceFromSelections(selectionList(values[f.Key]))

	case FieldPatientData:
		return pc.Resolve(f.Source)

	case FieldCalculation:
		v, ok := CalculateFormula(f.Formula, numericInputs(values))
		if !ok {
			return ""
		}
		calculated[f.Key] = v
		return strconv.FormatFloat(v, 'f', -1, 64)

	case FieldConditional:
		met := EvaluateCondition(f.Conditional.rule(), values)
		switch f.Conditional.action() {
		case ActionSetValue:
			if met {
				return f.Conditional.ActionValue
			}
			return ""
		case ActionHide:
			met = !met
		}
		if !met {
			return ""
		}
		if s := stringifyValue(values[f.Key]); s != "" {
			return s
		}
		return f.DefaultValue
	}
	// Unrecognized type: treat like free text so stored phrases written
	// against a newer schema still expand.
	if s := stringifyValue(values[f.Key]); s != "" {
		return s
	}
	return f.DefaultValue
}

// rule and action tolerate a conditional field saved without logic.
func (c *ConditionalLogic) rule() ConditionRule {
	if c == nil {
		return ConditionRule{}
	}
	return c.Rule
}

func (c *ConditionalLogic) action() string {
	if c == nil {
		return ActionShow
	}
	return c.Action
}

// selectionList normalizes a checkbox value into its selected keys.
func selectionList(v any) []string {
	switch val := v.(type) {
	case []string:
		return val
	case []any:
		out := make([]string, 0, len(val))
		for _, item := range val {
			out = append(out, stringifyValue(item))
		}
		return out
	case string:
		if strings.TrimSpace(val) == "" {
			return nil
		}
		return []string{val}
	default:
		return nil
	}
}

// numericInputs extracts the numeric entries of the current values for use
// as formula inputs. Numbers arrive from JSON as float64; numeric strings
// from free-text number inputs count too.
func numericInputs(values FieldValues) map[string]float64 {
	inputs := make(map[string]float64, len(values))
	for k, v := range values {
		if f, ok := numericValue(v); ok {
			inputs[k] = f
		}
	}
	return inputs
}
