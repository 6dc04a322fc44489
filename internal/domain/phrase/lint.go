package phrase

import "fmt"

// LintPhrase cross-checks a phrase's template against its field definitions
// and reports problems a template author would want to fix before saving:
// placeholders with no definition, definitions the template never references,
// calculation fields whose formula cannot be parsed, and fields with an
// unrecognized type. Findings are advisory; expansion stays total either way.
func LintPhrase(p *Phrase) []string {
	var findings []string

	defined := make(map[string]*FieldDefinition, len(p.Fields))
	for i := range p.Fields {
		f := &p.Fields[i]
		if _, dup := defined[f.Key]; dup {
			findings = append(findings, fmt.Sprintf("field %q is defined more than once", f.Key))
		}
		defined[f.Key] = f
	}

	referenced := map[string]bool{}
	for _, key := range ExtractFieldKeys(p.Content) {
		referenced[key] = true
		if _, ok := defined[key]; !ok {
			findings = append(findings, fmt.Sprintf("placeholder {{%s}} has no field definition", key))
		}
	}

	for i := range p.Fields {
		f := &p.Fields[i]
		if !referenced[f.Key] {
			findings = append(findings, fmt.Sprintf("field %q is never referenced by the template", f.Key))
		}
		if !ValidTypes[f.Type] {
			findings = append(findings, fmt.Sprintf("field %q has unrecognized type %q", f.Key, f.Type))
			continue
		}
		switch f.Type {
		case FieldCalculation:
			if !formulaParses(f.Formula) {
				findings = append(findings, fmt.Sprintf("field %q has an invalid formula: %q", f.Key, f.Formula))
			}
		case FieldPatientData:
			if f.Source == "" {
				findings = append(findings, fmt.Sprintf("patient data field %q has no source path", f.Key))
			}
		}
	}

	return findings
}

// formulaParses checks formula syntax only. Identifiers are resolved against
// a permissive table so a structurally sound formula over not-yet-entered
// fields still passes.
func formulaParses(formula string) bool {
	toks, ok := tokenizeFormula(stripTarget(formula))
	if !ok {
		return false
	}
	inputs := map[string]float64{}
	n := 2.0
	for _, t := range toks {
		if t.kind == 'i' {
			if _, seen := inputs[t.text]; !seen {
				inputs[t.text] = n
				n++
			}
		}
	}
	_, ok = CalculateFormula(formula, inputs)
	return ok
}

func stripTarget(formula string) string {
	for i := 0; i < len(formula); i++ {
		if formula[i] == '=' {
			return formula[i+1:]
		}
	}
	return formula
}
