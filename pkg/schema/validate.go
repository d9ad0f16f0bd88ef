package schema

import (
	"maps"
	"slices"
	"sort"
)

// Rule is a whole-record refinement. It only runs when every field in
// DependsOn was coerced successfully, and its failure is attributed to Path.
type Rule struct {
	Name      string
	Path      string
	DependsOn []string
	Message   string
	// Check receives the coerced values of the record. Optional fields that
	// were absent are missing from the map.
	Check func(values map[string]any) bool
}

// coveredBy reports whether every dependency of the rule is in set.
func (r Rule) coveredBy(set map[string]bool) bool {
	for _, dep := range r.DependsOn {
		if !set[dep] {
			return false
		}
	}
	return true
}

// Schema maps field names to their definitions and carries cross-field rules.
// Field declaration order is kept so verdicts are deterministic.
type Schema struct {
	fields map[string]*Field
	order  []string
	rules  []Rule
}

// New creates an empty schema.
func New() *Schema {
	return &Schema{fields: make(map[string]*Field)}
}

// Field declares (or replaces) a field.
func (s *Schema) Field(name string, f *Field) *Schema {
	if _, exists := s.fields[name]; !exists {
		s.order = append(s.order, name)
	}
	s.fields[name] = f
	return s
}

// Refine registers a cross-field rule.
func (s *Schema) Refine(r Rule) *Schema {
	s.rules = append(s.rules, r)
	return s
}

// Fields returns field names in declaration order.
func (s *Schema) Fields() []string { return slices.Clone(s.order) }

// Lookup returns the definition of a field.
func (s *Schema) Lookup(name string) (*Field, bool) {
	f, ok := s.fields[name]
	return f, ok
}

// Rules returns the cross-field rules in registration order.
func (s *Schema) Rules() []Rule { return slices.Clone(s.rules) }

// Verdict is the outcome of a validation call.
// Errors holds one message per field: the first failure attributed to it.
type Verdict struct {
	Valid  bool               `json:"valid"`
	Record map[string]any     `json:"record,omitempty"`
	Errors map[string]string  `json:"errors,omitempty"`
	Issues []*ValidationError `json:"-"`
}

// Err returns the failures as an *AggregateError, or nil when valid.
func (v Verdict) Err() error {
	if v.Valid || len(v.Issues) == 0 {
		return nil
	}
	errs := make([]error, len(v.Issues))
	for i, issue := range v.Issues {
		errs[i] = issue
	}
	return &AggregateError{Errors: errs}
}

// FailedFields returns the names of fields with errors, sorted.
func (v Verdict) FailedFields() []string {
	keys := make([]string, 0, len(v.Errors))
	for k := range v.Errors {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Validate checks every field and every rule of the schema against data.
// All failures are collected; unknown keys in data are ignored.
func (s *Schema) Validate(data map[string]any) Verdict {
	return s.evaluate(data, s.order, s.rules)
}

// ValidateFields checks only the named fields, plus the rules whose
// dependencies are all among them. Other rules are deferred, not evaluated.
// Names that are not part of the schema are ignored.
func (s *Schema) ValidateFields(data map[string]any, fields ...string) Verdict {
	set := make(map[string]bool, len(fields))
	for _, name := range fields {
		set[name] = true
	}

	names := make([]string, 0, len(fields))
	for _, name := range s.order {
		if set[name] {
			names = append(names, name)
		}
	}

	var rules []Rule
	for _, r := range s.rules {
		if r.coveredBy(set) {
			rules = append(rules, r)
		}
	}
	return s.evaluate(data, names, rules)
}

// ValidateField checks a single raw value. When record is given, rules
// attached to the field whose dependencies are all present in record are
// evaluated as well, with raw taking the field's place.
// It returns nil or a *ValidationError.
func (s *Schema) ValidateField(name string, raw any, record map[string]any) error {
	f, ok := s.fields[name]
	if !ok {
		return nil
	}

	if _, _, verr := f.evaluate(name, raw); verr != nil {
		return verr
	}
	if record == nil {
		return nil
	}

	scope := maps.Clone(record)
	scope[name] = raw
	for _, r := range s.rules {
		if r.Path != name || !hasAll(scope, r.DependsOn) {
			continue
		}
		parsed, ok := s.coerce(scope, r.DependsOn)
		if !ok {
			continue
		}
		if !r.Check(parsed) {
			return &ValidationError{Key: name, Reason: r.Message, Kind: KindCrossField, Rule: r.Name, Value: raw}
		}
	}
	return nil
}

func (s *Schema) evaluate(data map[string]any, names []string, rules []Rule) Verdict {
	parsed := make(map[string]any, len(names))
	unparsed := make(map[string]bool)
	var issues []*ValidationError

	for _, name := range names {
		value, present, verr := s.fields[name].evaluate(name, data[name])
		if present {
			parsed[name] = value
		}
		if verr != nil {
			issues = append(issues, verr)
			if verr.Kind == KindParse {
				unparsed[name] = true
			}
		}
	}

	for _, r := range rules {
		if slices.ContainsFunc(r.DependsOn, func(dep string) bool { return unparsed[dep] }) {
			continue
		}
		if !r.Check(parsed) {
			issues = append(issues, &ValidationError{
				Key:    r.Path,
				Reason: r.Message,
				Kind:   KindCrossField,
				Rule:   r.Name,
				Value:  data[r.Path],
			})
		}
	}

	if len(issues) == 0 {
		return Verdict{Valid: true, Record: parsed}
	}

	errs := make(map[string]string, len(issues))
	for _, issue := range issues {
		if _, seen := errs[issue.Key]; !seen {
			errs[issue.Key] = issue.Reason
		}
	}
	return Verdict{Errors: errs, Issues: issues}
}

// coerce parses the named fields of data, ignoring constraints.
// It reports false when any required field cannot be parsed.
func (s *Schema) coerce(data map[string]any, names []string) (map[string]any, bool) {
	out := make(map[string]any, len(names))
	for _, name := range names {
		f, ok := s.fields[name]
		if !ok {
			continue
		}
		raw := data[name]
		if raw == nil {
			if f.optional {
				continue
			}
			return nil, false
		}
		v, err := f.typ.Parse(raw)
		if err != nil {
			return nil, false
		}
		out[name] = v
	}
	return out, true
}

func hasAll(data map[string]any, keys []string) bool {
	for _, k := range keys {
		if _, ok := data[k]; !ok {
			return false
		}
	}
	return true
}
