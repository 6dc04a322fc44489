package phrase

import (
	"time"

	"github.com/google/uuid"
)

// FieldType enumerates the kinds of inputs a phrase field can declare.
// ExpandPhrase switches exhaustively over this set; adding a type means
// adding a case there.
type FieldType string

const (
	FieldText        FieldType = "text"
	FieldNumber      FieldType = "number"
	FieldDate        FieldType = "date"
	FieldDropdown    FieldType = "dropdown"
	FieldCheckbox    FieldType = "checkbox"
	FieldRadio       FieldType = "radio"
	FieldPatientData FieldType = "patient_data"
	FieldCalculation FieldType = "calculation"
	FieldConditional FieldType = "conditional"
)

// ValidTypes lists every recognized field type.
var ValidTypes = map[FieldType]bool{
	FieldText: true, FieldNumber: true, FieldDate: true,
	FieldDropdown: true, FieldCheckbox: true, FieldRadio: true,
	FieldPatientData: true, FieldCalculation: true, FieldConditional: true,
}

// Phrase is a stored text template plus the field definitions that drive
// its expansion. The template references fields as {{key}}.
type Phrase struct {
	ID          uuid.UUID         `json:"id"`
	Name        string            `json:"name"`
	Shortcut    string            `json:"shortcut"`
	Description *string           `json:"description,omitempty"`
	Category    *string           `json:"category,omitempty"`
	Content     string            `json:"content"`
	Fields      []FieldDefinition `json:"fields,omitempty"`
	CreatedBy   *uuid.UUID        `json:"created_by,omitempty"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
}

// FieldDefinition declares one named, typed input of a phrase.
type FieldDefinition struct {
	Key          string            `json:"key"`
	Label        string            `json:"label"`
	Type         FieldType         `json:"type"`
	DefaultValue string            `json:"default_value,omitempty"`
	Options      []string          `json:"options,omitempty"` // dropdown/radio/checkbox choices
	Source       string            `json:"source,omitempty"`  // patient_data dotted path, e.g. "labs.creatinine"
	Formula      string            `json:"formula,omitempty"` // calculation fields: "result = expression"
	Validation   *FieldValidation  `json:"validation,omitempty"`
	Conditional  *ConditionalLogic `json:"conditional_logic,omitempty"`
	SortOrder    int               `json:"sort_order,omitempty"`
}

// DisplayLabel returns the label used in validation messages, falling back
// to the field key when no label was configured.
func (f *FieldDefinition) DisplayLabel() string {
	if f.Label != "" {
		return f.Label
	}
	return f.Key
}

// FieldValidation holds the declared constraints for a field.
type FieldValidation struct {
	Required bool     `json:"required,omitempty"`
	Min      *float64 `json:"min,omitempty"`
	Max      *float64 `json:"max,omitempty"`
	Pattern  string   `json:"pattern,omitempty"`
	Message  string   `json:"message,omitempty"` // shown on pattern mismatch
}

// ConditionRule is a single (field, operator, value) test evaluated against
// the current field values.
type ConditionRule struct {
	Field    string `json:"field"`
	Operator string `json:"operator"`
	Value    string `json:"value,omitempty"`
}

// Conditional actions.
const (
	ActionShow     = "show"
	ActionHide     = "hide"
	ActionRequire  = "require"
	ActionSetValue = "set_value"
)

// ConditionalLogic attaches a rule and an effect to a field.
type ConditionalLogic struct {
	Rule        ConditionRule `json:"rule"`
	Action      string        `json:"action"`
	ActionValue string        `json:"action_value,omitempty"` // substituted by set_value
}

// FieldValues maps field keys to the user's current entries. Values are
// scalars, []string selections, or booleans, exactly as decoded from JSON.
type FieldValues map[string]any

// ExpansionResult is the output of ExpandPhrase.
type ExpansionResult struct {
	Content          string             `json:"content"`
	UsedFields       []string           `json:"used_fields"`
	CalculatedValues map[string]float64 `json:"calculated_values,omitempty"`
}
