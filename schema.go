package schemagrid

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Field describes one property of a record schema.
type Field struct {
	Name        string
	Kind        FieldKind
	Type        string
	Format      string
	Title       string
	Description string
	Enum        []any
	EnumNames   []string
	Default     any
	// Properties of a nested object field
	Properties Properties
}

// HasEnum returns if the field declares enumeration values.
func (f *Field) HasEnum() bool {
	return len(f.Enum) > 0
}

// EnumName returns the label of an enumeration value
// and false if the value is not part of the enumeration
// or the field has no enumNames.
func (f *Field) EnumName(value any) (string, bool) {
	for i, v := range f.Enum {
		if ValuesEqual(v, value) {
			if i < len(f.EnumNames) {
				return f.EnumNames[i], true
			}
			return "", false
		}
	}
	return "", false
}

// Properties is an ordered set of fields
// preserving the declaration order of the schema.
// The zero value is an empty set ready to use.
type Properties struct {
	names  []string
	fields map[string]*Field
}

// NewProperties returns Properties with the passed fields in order.
// Field names must be unique, later fields replace earlier ones.
func NewProperties(fields ...*Field) Properties {
	var p Properties
	for _, f := range fields {
		p.Add(f)
	}
	return p
}

// Add appends a field or replaces the field with the same name
// keeping its position.
func (p *Properties) Add(f *Field) {
	if p.fields == nil {
		p.fields = make(map[string]*Field)
	}
	if _, exists := p.fields[f.Name]; !exists {
		p.names = append(p.names, f.Name)
	}
	f.Kind = KindOf(f.Type, f.Format)
	p.fields[f.Name] = f
}

// Len returns the number of fields.
func (p Properties) Len() int { return len(p.names) }

// Names returns the field names in declaration order.
func (p Properties) Names() []string { return p.names }

// Get returns the field with the passed name or nil.
func (p Properties) Get(name string) *Field { return p.fields[name] }

// Lookup returns the field with the passed name
// or an error wrapping ErrMissingField.
func (p Properties) Lookup(name string) (*Field, error) {
	f, ok := p.fields[name]
	if !ok {
		return nil, missingField(name, "")
	}
	return f, nil
}

// Fields returns the fields in declaration order.
func (p Properties) Fields() []*Field {
	fields := make([]*Field, len(p.names))
	for i, name := range p.names {
		fields[i] = p.fields[name]
	}
	return fields
}

// Schema describes the records of an array edited as table.
type Schema struct {
	Title string
	// Properties of every record, the schema's items.properties
	Properties Properties
	// DefaultFilterKey names the record field used to highlight
	// rows after an update action completed.
	DefaultFilterKey string
}

// Field returns the record field with the passed name
// or an error wrapping ErrMissingField.
func (s *Schema) Field(name string) (*Field, error) {
	f, err := s.Properties.Lookup(name)
	if err != nil {
		return nil, missingField(name, "schema items.properties")
	}
	return f, nil
}

// ParseSchema parses a JSON or YAML schema document
// describing an array of objects:
//
//	{"type": "array", "items": {"type": "object", "properties": {...}}}
//
// The declaration order of properties is preserved.
func ParseSchema(data []byte) (*Schema, error) {
	var doc yaml.Node
	err := yaml.Unmarshal(data, &doc)
	if err != nil {
		return nil, fmt.Errorf("failed to parse schema: %w", err)
	}
	root := documentRoot(&doc)
	if root == nil {
		return nil, ErrNoItems
	}
	schema := new(Schema)
	if title := mappingValue(root, "title"); title != nil {
		schema.Title = title.Value
	}
	items := mappingValue(root, "items")
	if items == nil || items.Kind != yaml.MappingNode {
		return nil, ErrNoItems
	}
	if key := mappingValue(items, "defaultFilterKey"); key != nil {
		schema.DefaultFilterKey = key.Value
	}
	schema.Properties, err = parseProperties(mappingValue(items, "properties"))
	if err != nil {
		return nil, err
	}
	return schema, nil
}

type fieldAttributes struct {
	Type        string   `yaml:"type"`
	Format      string   `yaml:"format"`
	Title       string   `yaml:"title"`
	Description string   `yaml:"description"`
	EnumNames   []string `yaml:"enumNames"`
}

func parseProperties(node *yaml.Node) (props Properties, err error) {
	if node == nil {
		return props, nil
	}
	if node.Kind != yaml.MappingNode {
		return props, fmt.Errorf("properties must be a mapping, line %d", node.Line)
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		name, value := node.Content[i].Value, node.Content[i+1]
		field, err := parseField(name, value)
		if err != nil {
			return props, err
		}
		props.Add(field)
	}
	return props, nil
}

func parseField(name string, node *yaml.Node) (*Field, error) {
	var attrs fieldAttributes
	err := node.Decode(&attrs)
	if err != nil {
		return nil, fmt.Errorf("failed to parse property %q: %w", name, err)
	}
	field := &Field{
		Name:        name,
		Type:        attrs.Type,
		Format:      attrs.Format,
		Title:       attrs.Title,
		Description: attrs.Description,
		EnumNames:   attrs.EnumNames,
	}
	if enum := mappingValue(node, "enum"); enum != nil {
		values, err := nodeValue(enum)
		if err != nil {
			return nil, fmt.Errorf("failed to parse enum of property %q: %w", name, err)
		}
		field.Enum, _ = values.([]any)
	}
	if def := mappingValue(node, "default"); def != nil {
		field.Default, err = nodeValue(def)
		if err != nil {
			return nil, fmt.Errorf("failed to parse default of property %q: %w", name, err)
		}
	}
	field.Properties, err = parseProperties(mappingValue(node, "properties"))
	if err != nil {
		return nil, err
	}
	return field, nil
}
