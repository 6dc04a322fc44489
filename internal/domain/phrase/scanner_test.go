package phrase

import (
	"reflect"
	"testing"
)

func TestExtractFieldKeys(t *testing.T) {
	tests := []struct {
		name     string
		template string
		want     []string
	}{
		{
			name:     "single key",
			template: "Patient {{name}} is stable.",
			want:     []string{"name"},
		},
		{
			name:     "duplicates collapsed in first-occurrence order",
			template: "Hello {{name}} and {{bed}} and {{name}}",
			want:     []string{"name", "bed"},
		},
		{
			name:     "no placeholders",
			template: "Plain clinical text.",
			want:     nil,
		},
		{
			name:     "empty template",
			template: "",
			want:     nil,
		},
		{
			name:     "whitespace inside braces trimmed",
			template: "Value: {{ creatinine }}",
			want:     []string{"creatinine"},
		},
		{
			name:     "empty and whitespace-only keys ignored",
			template: "a {{}} b {{   }} c {{real}}",
			want:     []string{"real"},
		},
		{
			name:     "keys are case-sensitive",
			template: "{{Name}} vs {{name}}",
			want:     []string{"Name", "name"},
		},
		{
			name:     "adjacent placeholders",
			template: "{{a}}{{b}}{{a}}",
			want:     []string{"a", "b"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractFieldKeys(tt.template)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ExtractFieldKeys(%q) = %v, want %v", tt.template, got, tt.want)
			}
		})
	}
}
