package netsuite

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// RecordRef references a record without carrying its body.
type RecordRef struct {
	Type       string `json:"type,omitempty"`
	InternalID string `json:"internalId,omitempty"`
	ExternalID string `json:"externalId,omitempty"`
	Name       string `json:"name,omitempty"`
}

// RecordID selects a record by exactly one of its identifiers.
type RecordID struct {
	InternalID string
	ExternalID string
}

// ByInternalID selects a record by its NetSuite internal id.
func ByInternalID(id string) RecordID {
	return RecordID{InternalID: id}
}

// ByExternalID selects a record by its integration-assigned external id.
func ByExternalID(id string) RecordID {
	return RecordID{ExternalID: id}
}

func (id RecordID) validate() error {
	if id.InternalID == "" && id.ExternalID == "" {
		return ErrNoIdentifier
	}
	return nil
}

// Ref returns a reference of the given record type.
func (id RecordID) Ref(recordType string) RecordRef {
	return RecordRef{Type: recordType, InternalID: id.InternalID, ExternalID: id.ExternalID}
}

func (id RecordID) String() string {
	if id.InternalID != "" {
		return "internalId=" + id.InternalID
	}
	return "externalId=" + id.ExternalID
}

// Record serializes the reference. Unset identifiers are kept as nil fields
// so every serialized reference has the same shape.
func (ref RecordRef) Record() *Record {
	orNil := func(s string) any {
		if s == "" {
			return nil
		}
		return s
	}
	return NewRecord(
		Field{"name", orNil(ref.Name)},
		Field{"internalId", orNil(ref.InternalID)},
		Field{"externalId", orNil(ref.ExternalID)},
		Field{"type", orNil(ref.Type)},
	)
}

// RefFromRecord builds a reference from a record-shaped mapping holding
// internalId, externalId, type or name.
func RefFromRecord(r *Record) RecordRef {
	return RecordRef{
		Type:       r.String("type"),
		InternalID: r.String("internalId"),
		ExternalID: r.String("externalId"),
		Name:       r.String("name"),
	}
}

// recordTypeName converts a schema type name to the RecordType enum value,
// e.g. "VendorBill" to "vendorBill".
func recordTypeName(typeName string) string {
	r, size := utf8.DecodeRuneInString(typeName)
	if r == utf8.RuneError {
		return typeName
	}
	return string(unicode.ToLower(r)) + typeName[size:]
}

// schemaTypeName is the inverse of recordTypeName.
func schemaTypeName(name string) string {
	r, size := utf8.DecodeRuneInString(strings.TrimSpace(name))
	if r == utf8.RuneError {
		return name
	}
	return string(unicode.ToUpper(r)) + strings.TrimSpace(name)[size:]
}
