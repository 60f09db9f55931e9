package netsuite_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tphakala/go-netsuite"
)

func TestLookupType(t *testing.T) {
	tests := []struct {
		name      string
		prefix    string
		qualified string
	}{
		{"RecordRef", "platformCore", "platformCore:RecordRef"},
		{"SearchPreferences", "platformMsgs", "platformMsgs:SearchPreferences"},
		{"TransactionSearchBasic", "platformCommon", "platformCommon:TransactionSearchBasic"},
		{"Vendor", "listRel", "listRel:Vendor"},
		{"Currency", "listAcct", "listAcct:Currency"},
		{"VendorBill", "tranPurch", "tranPurch:VendorBill"},
		{"JournalEntry", "tranGeneral", "tranGeneral:JournalEntry"},
		{"ExpenseReport", "tranEmp", "tranEmp:ExpenseReport"},
		{"RecordType", "platformCoreTyp", "platformCoreTyp:RecordType"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info, ok := netsuite.LookupType(tt.name)
			require.True(t, ok)
			assert.Equal(t, tt.prefix, info.Namespace.Prefix)
			assert.Equal(t, tt.qualified, info.QualifiedName())
		})
	}

	t.Run("unknown", func(t *testing.T) {
		_, ok := netsuite.LookupType("NoSuchType")
		assert.False(t, ok)
		assert.Panics(t, func() { netsuite.MustLookupType("NoSuchType") })
	})
}

func TestNamespaces(t *testing.T) {
	ns := netsuite.Namespaces()

	assert.Equal(t, "urn:core_2019_2.platform.webservices.netsuite.com", ns["platformCore"])
	assert.Equal(t, "urn:messages_2019_2.platform.webservices.netsuite.com", ns["platformMsgs"])
	assert.Equal(t, "urn:types.core_2019_2.platform.webservices.netsuite.com", ns["platformCoreTyp"])
	assert.Equal(t, "urn:purchases_2019_2.transactions.webservices.netsuite.com", ns["tranPurch"])

	for _, name := range []string{"Customer", "Invoice", "BooleanCustomFieldRef", "SearchStringField", "CustomerSearchBasic"} {
		info := netsuite.MustLookupType(name)
		assert.Equal(t, info.Namespace.URN, ns[info.Namespace.Prefix], name)
	}
}
