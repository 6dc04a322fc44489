package phrase

import (
	"math"
	"testing"
)

func TestCalculateFormula(t *testing.T) {
	tests := []struct {
		name    string
		formula string
		inputs  map[string]float64
		want    float64
		ok      bool
	}{
		{
			name:    "bmi with assignment target",
			formula: "bmi = weight / (height * height)",
			inputs:  map[string]float64{"weight": 10, "height": 2},
			want:    2.5,
			ok:      true,
		},
		{
			name:    "no assignment target",
			formula: "weight * 2",
			inputs:  map[string]float64{"weight": 3},
			want:    6,
			ok:      true,
		},
		{
			name:    "addition and subtraction",
			formula: "a + b - c",
			inputs:  map[string]float64{"a": 10, "b": 5, "c": 3},
			want:    12,
			ok:      true,
		},
		{
			name:    "operator precedence",
			formula: "a + b * c",
			inputs:  map[string]float64{"a": 1, "b": 2, "c": 3},
			want:    7,
			ok:      true,
		},
		{
			name:    "nested parentheses",
			formula: "((a + b) * (c - d))",
			inputs:  map[string]float64{"a": 1, "b": 2, "c": 5, "d": 3},
			want:    6,
			ok:      true,
		},
		{
			name:    "numeric literals",
			formula: "weight * 0.5 + 1",
			inputs:  map[string]float64{"weight": 4},
			want:    3,
			ok:      true,
		},
		{
			name:    "unary minus",
			formula: "-a + 10",
			inputs:  map[string]float64{"a": 4},
			want:    6,
			ok:      true,
		},
		{
			name:    "missing variable",
			formula: "weight / height",
			inputs:  map[string]float64{"weight": 70},
			ok:      false,
		},
		{
			name:    "function call rejected",
			formula: "weight + alert(1)",
			inputs:  map[string]float64{"weight": 70},
			ok:      false,
		},
		{
			name:    "unknown characters rejected",
			formula: "weight; drop",
			inputs:  map[string]float64{"weight": 70},
			ok:      false,
		},
		{
			name:    "division by zero",
			formula: "a / b",
			inputs:  map[string]float64{"a": 1, "b": 0},
			ok:      false,
		},
		{
			name:    "division by zero subexpression",
			formula: "a / (b - b)",
			inputs:  map[string]float64{"a": 1, "b": 4},
			ok:      false,
		},
		{
			name:    "second assignment rejected",
			formula: "a = b = c",
			inputs:  map[string]float64{"a": 1, "b": 2, "c": 3},
			ok:      false,
		},
		{
			name:    "trailing tokens rejected",
			formula: "a + b c",
			inputs:  map[string]float64{"a": 1, "b": 2, "c": 3},
			ok:      false,
		},
		{
			name:    "empty formula",
			formula: "",
			inputs:  map[string]float64{"a": 1},
			ok:      false,
		},
		{
			name:    "unbalanced parenthesis",
			formula: "(a + b",
			inputs:  map[string]float64{"a": 1, "b": 2},
			ok:      false,
		},
		{
			name:    "identifier with underscore and digits",
			formula: "hr_max1 - hr_max1",
			inputs:  map[string]float64{"hr_max1": 180},
			want:    0,
			ok:      true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := CalculateFormula(tt.formula, tt.inputs)
			if ok != tt.ok {
				t.Fatalf("CalculateFormula(%q) ok = %v, want %v", tt.formula, ok, tt.ok)
			}
			if !tt.ok {
				return
			}
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("CalculateFormula(%q) = %v, want %v", tt.formula, got, tt.want)
			}
		})
	}
}

func TestCalculateFormulaNeverPanics(t *testing.T) {
	inputs := map[string]float64{"a": 1}
	for _, f := range []string{"(((", ")", "* a", "a +", "= a", "1..2", "a(b)", "--", "((a))"} {
		func() {
			defer func() {
				if r := recover(); r != nil {
					t.Errorf("CalculateFormula(%q) panicked: %v", f, r)
				}
			}()
			CalculateFormula(f, inputs)
		}()
	}
}
