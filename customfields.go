package netsuite

import (
	"encoding/json"
	"time"
)

// CustomFieldKind selects the custom field reference type to build.
type CustomFieldKind int

const (
	CustomFieldString CustomFieldKind = iota
	CustomFieldDate
	CustomFieldBoolean
	CustomFieldSelect
	CustomFieldDouble
)

func (k CustomFieldKind) String() string {
	switch k {
	case CustomFieldDate:
		return "date"
	case CustomFieldBoolean:
		return "boolean"
	case CustomFieldSelect:
		return "select"
	case CustomFieldDouble:
		return "double"
	default:
		return "string"
	}
}

// TypeName returns the schema type of the reference built for this kind.
func (k CustomFieldKind) TypeName() string {
	switch k {
	case CustomFieldDate:
		return "DateCustomFieldRef"
	case CustomFieldBoolean:
		return "BooleanCustomFieldRef"
	case CustomFieldSelect:
		return "SelectCustomFieldRef"
	case CustomFieldDouble:
		return "DoubleCustomFieldRef"
	default:
		return "StringCustomFieldRef"
	}
}

// MarshalJSON implements json.Marshaler.
func (k CustomFieldKind) MarshalJSON() ([]byte, error) {
	return json.Marshal(k.String())
}

// CustomField is a custom field value to write. Build it with one of the
// kind-specific constructors so the kind always matches the value.
type CustomField struct {
	Kind       CustomFieldKind
	ScriptID   string
	InternalID string

	value any
}

// StringField returns a free-form text custom field.
func StringField(scriptID, value string) CustomField {
	return CustomField{Kind: CustomFieldString, ScriptID: scriptID, value: value}
}

// DateField returns a date custom field.
func DateField(scriptID string, value time.Time) CustomField {
	return CustomField{Kind: CustomFieldDate, ScriptID: scriptID, value: value}
}

// BoolField returns a checkbox custom field.
func BoolField(scriptID string, value bool) CustomField {
	return CustomField{Kind: CustomFieldBoolean, ScriptID: scriptID, value: value}
}

// SelectField returns a list/record custom field pointing at ref.
func SelectField(scriptID string, ref RecordRef) CustomField {
	return CustomField{Kind: CustomFieldSelect, ScriptID: scriptID, value: ref}
}

// DoubleField returns a decimal custom field.
func DoubleField(scriptID string, value float64) CustomField {
	return CustomField{Kind: CustomFieldDouble, ScriptID: scriptID, value: value}
}

// WithInternalID sets the custom field's internal id.
func (f CustomField) WithInternalID(id string) CustomField {
	f.InternalID = id
	return f
}

// Value returns the field value.
func (f CustomField) Value() any {
	return f.value
}

// CustomFieldRef is a typed custom field reference ready to be written.
type CustomFieldRef struct {
	Kind       CustomFieldKind `json:"kind"`
	Type       TypeInfo        `json:"-"`
	ScriptID   string          `json:"scriptId,omitempty"`
	InternalID string          `json:"internalId,omitempty"`
	Value      any             `json:"value"`
}

// Ref builds the typed reference for f.
func (f CustomField) Ref() CustomFieldRef {
	return CustomFieldRef{
		Kind:       f.Kind,
		Type:       MustLookupType(f.Kind.TypeName()),
		ScriptID:   f.ScriptID,
		InternalID: f.InternalID,
		Value:      f.value,
	}
}

// CustomFieldList is an ordered list of custom field references.
type CustomFieldList []CustomFieldRef

// NewCustomFieldList builds typed references for fields in input order.
func NewCustomFieldList(fields []CustomField) CustomFieldList {
	list := make(CustomFieldList, 0, len(fields))
	for _, f := range fields {
		list = append(list, f.Ref())
	}
	return list
}
