package netsuite

import "fmt"

// BuildSimpleFields copies each named field present in source to target.
func BuildSimpleFields(fields []string, source, target *Record) {
	for _, name := range fields {
		if v, ok := source.Get(name); ok {
			target.Set(name, v)
		}
	}
}

// BuildRecordRefFields copies each named, non-nil field of source to target
// as a reference. Nested records are reduced to a RecordRef; any other value
// is copied unchanged.
func BuildRecordRefFields(fields []string, source, target *Record) {
	for _, name := range fields {
		v, ok := source.Get(name)
		if !ok || v == nil {
			continue
		}
		if rec, ok := v.(*Record); ok {
			target.Set(name, RefFromRecord(rec))
			continue
		}
		target.Set(name, v)
	}
}

// BuildCustomFields converts the customFieldList of source into typed
// references, preserving input order, and attaches them to target under
// customFieldList. A missing or nil list is a no-op.
func BuildCustomFields(source, target *Record) error {
	v, ok := source.Get("customFieldList")
	if !ok || v == nil {
		return nil
	}

	switch t := v.(type) {
	case []CustomField:
		target.Set("customFieldList", NewCustomFieldList(t))
	case CustomFieldList:
		target.Set("customFieldList", t)
	default:
		return fmt.Errorf("netsuite: customFieldList has unsupported type %T", v)
	}
	return nil
}

// RemoveReadOnly blanks fields the server rejects on write. Only fields
// already present are touched; nil fields are never encoded.
func RemoveReadOnly(target *Record, fields ...string) {
	for _, name := range fields {
		if target.Has(name) {
			target.Set(name, nil)
		}
	}
}
