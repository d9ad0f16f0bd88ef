package schema

import (
	"encoding/json"
	"fmt"
)

// FieldDescription is the wire shape of a field definition.
type FieldDescription struct {
	Name        string   `json:"name"`
	Type        string   `json:"type"`
	Optional    bool     `json:"optional,omitempty"`
	Constraints []string `json:"constraints,omitempty"`
}

// RuleDescription is the wire shape of a cross-field rule.
type RuleDescription struct {
	Name      string   `json:"name"`
	Path      string   `json:"path"`
	DependsOn []string `json:"depends_on"`
	Message   string   `json:"message"`
}

// Description is a serializable view of a Schema, used by introspection
// endpoints. It cannot be turned back into a Schema: checks are code.
type Description struct {
	Fields []FieldDescription `json:"fields"`
	Rules  []RuleDescription  `json:"rules,omitempty"`
}

// Describe returns the serializable view of the schema.
func (s *Schema) Describe() Description {
	d := Description{Fields: make([]FieldDescription, 0, len(s.order))}
	for _, name := range s.order {
		f := s.fields[name]
		fd := FieldDescription{Name: name, Type: f.typ.Name(), Optional: f.optional}
		for _, c := range f.constraints {
			fd.Constraints = append(fd.Constraints, c.Name)
		}
		d.Fields = append(d.Fields, fd)
	}
	for _, r := range s.rules {
		d.Rules = append(d.Rules, RuleDescription{
			Name:      r.Name,
			Path:      r.Path,
			DependsOn: r.DependsOn,
			Message:   r.Message,
		})
	}
	return d
}

// MarshalJSON serializes the schema description.
func (s *Schema) MarshalJSON() ([]byte, error) {
	if s == nil {
		return []byte("null"), nil
	}
	for _, name := range s.order {
		if s.fields[name].typ == nil {
			return nil, fmt.Errorf("field %s: type is nil", name)
		}
	}
	return json.Marshal(s.Describe())
}
