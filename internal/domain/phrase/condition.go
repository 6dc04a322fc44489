package phrase

import (
	"fmt"
	"strconv"
	"strings"
)

// Condition operators.
const (
	OpEquals      = "equals"
	OpNotEquals   = "not_equals"
	OpContains    = "contains"
	OpGreaterThan = "greater_than"
	OpLessThan    = "less_than"
	OpIsEmpty     = "is_empty"
	OpIsNotEmpty  = "is_not_empty"
)

// EvaluateCondition tests a single rule against the current field values.
// Unknown fields behave as empty values and unknown operators evaluate to
// false; a condition never fails with an error.
func EvaluateCondition(rule ConditionRule, values FieldValues) bool {
	val := values[rule.Field]

	switch rule.Operator {
	case OpEquals:
		return stringifyValue(val) == strings.TrimSpace(rule.Value)
	case OpNotEquals:
		return stringifyValue(val) != strings.TrimSpace(rule.Value)
	case OpContains:
		return strings.Contains(
			strings.ToLower(stringifyValue(val)),
			strings.ToLower(strings.TrimSpace(rule.Value)),
		)
	case OpGreaterThan:
		a, aok := numericValue(val)
		b, bok := numericValue(rule.Value)
		return aok && bok && a > b
	case OpLessThan:
		a, aok := numericValue(val)
		b, bok := numericValue(rule.Value)
		return aok && bok && a < b
	case OpIsEmpty:
		return isEmptyValue(val)
	case OpIsNotEmpty:
		return !isEmptyValue(val)
	default:
		return false
	}
}

// stringifyValue renders a field value for comparison and substitution.
// Lists join with a comma so multi-selects remain comparable as text.
func stringifyValue(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(val)
	case bool:
		if val {
			return "true"
		}
		return "false"
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case int:
		return strconv.Itoa(val)
	case []string:
		return strings.Join(val, ", ")
	case []any:
		parts := make([]string, 0, len(val))
		for _, item := range val {
			parts = append(parts, stringifyValue(item))
		}
		return strings.Join(parts, ", ")
	default:
		return strings.TrimSpace(fmt.Sprintf("%v", val))
	}
}

// numericValue coerces a field value to a float. Numeric strings count;
// anything else does not.
func numericValue(v any) (float64, bool) {
	switch val := v.(type) {
	case float64:
		return val, true
	case int:
		return float64(val), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(val), 64)
		return f, err == nil
	default:
		return 0, false
	}
}

// isEmptyValue reports whether a value is absent, an empty string, or an
// empty list.
func isEmptyValue(v any) bool {
	switch val := v.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(val) == ""
	case []string:
		return len(val) == 0
	case []any:
		return len(val) == 0
	default:
		return false
	}
}
