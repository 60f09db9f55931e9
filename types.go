package netsuite

import "fmt"

// APIVersion is the SuiteTalk endpoint version this package speaks.
const APIVersion = "2019_2"

// Namespace identifies a SuiteTalk XML schema namespace.
type Namespace struct {
	// Prefix is the namespace id used for qualified names, e.g. "listRel".
	Prefix string
	URN    string
}

func urn(name, area string) string {
	return fmt.Sprintf("urn:%s_%s.%s.webservices.netsuite.com", name, APIVersion, area)
}

// SuiteTalk namespaces.
var (
	NSPlatformCore    = Namespace{"platformCore", urn("core", "platform")}
	NSPlatformCoreTyp = Namespace{"platformCoreTyp", fmt.Sprintf("urn:types.core_%s.platform.webservices.netsuite.com", APIVersion)}
	NSPlatformMsgs    = Namespace{"platformMsgs", urn("messages", "platform")}
	NSPlatformCommon  = Namespace{"platformCommon", urn("common", "platform")}
	NSListRel         = Namespace{"listRel", urn("relationships", "lists")}
	NSListAcct        = Namespace{"listAcct", urn("accounting", "lists")}
	NSListEmp         = Namespace{"listEmp", urn("employees", "lists")}
	NSTranSales       = Namespace{"tranSales", urn("sales", "transactions")}
	NSTranPurch       = Namespace{"tranPurch", urn("purchases", "transactions")}
	NSTranCust        = Namespace{"tranCust", urn("customers", "transactions")}
	NSTranGeneral     = Namespace{"tranGeneral", urn("general", "transactions")}
	NSTranEmp         = Namespace{"tranEmp", urn("employees", "transactions")}
	NSSetupCustom     = Namespace{"setupCustom", urn("customization", "setup")}
	NSDocFileCabinet  = Namespace{"docFileCab", urn("filecabinet", "documents")}
)

// TypeInfo locates a schema type.
type TypeInfo struct {
	Namespace Namespace
	Name      string
}

// QualifiedName returns the prefixed type name used in xsi:type.
func (t TypeInfo) QualifiedName() string {
	return t.Namespace.Prefix + ":" + t.Name
}

var complexTypes = map[Namespace][]string{
	NSPlatformCore: {
		"BaseRef", "GetAllRecord", "GetAllResult", "Passport", "RecordList",
		"RecordRef", "ListOrRecordRef", "SearchResult",
		"SearchEnumMultiSelectField", "SearchStringField", "SearchMultiSelectField",
		"SearchDateField", "SearchLongField", "SearchBooleanField",
		"Status", "StatusDetail", "TokenPassport", "TokenPassportSignature", "WsRole",
		"CustomFieldList", "DateCustomFieldRef", "DoubleCustomFieldRef",
		"StringCustomFieldRef", "SelectCustomFieldRef", "BooleanCustomFieldRef",
		"CustomRecordRef", "InitializeRecord", "InitializeRef",
	},
	NSPlatformMsgs: {
		"ApplicationInfo", "GetAllRequest", "GetRequest", "GetResponse",
		"GetAllResponse", "PartnerInfo", "ReadResponse", "SearchPreferences",
		"SearchResponse", "DeleteRequest", "DeleteListRequest", "InitializeRequest",
	},
	NSPlatformCommon: {
		"AccountSearchBasic", "Address", "ClassificationSearchBasic",
		"CustomerSearchBasic", "DepartmentSearchBasic", "JobSearchBasic",
		"LocationSearchBasic", "TransactionSearchBasic", "VendorSearchBasic",
		"SubsidiarySearchBasic", "EmployeeSearchBasic", "FolderSearchBasic",
		"FileSearchBasic", "CustomRecordSearchBasic", "CustomListSearchBasic",
		"TermSearchBasic",
	},
	NSListRel: {
		"CustomerAddressbook", "CustomerAddressbookList",
		"Customer", "CustomerSearch",
		"Vendor", "VendorSearch",
		"Job", "JobSearch",
		"VendorAddressbook", "VendorAddressbookList",
	},
	NSListAcct: {
		"Account", "AccountSearch",
		"ExpenseCategory", "ExpenseCategorySearch",
		"AccountingPeriod",
		"Classification", "ClassificationSearch",
		"Currency",
		"Department", "DepartmentSearch",
		"Location", "LocationSearch",
		"Subsidiary", "SubsidiarySearch",
		"VendorCategory", "VendorCategorySearch",
		"Term", "TermSearch",
		"InventoryItem", "InventoryItemBinNumber", "InventoryItemBinNumberList",
	},
	NSTranSales: {
		"Invoice", "InvoiceItem", "InvoiceItemList", "TransactionSearch",
		"ItemFulfillment", "SalesOrder", "CashSale",
	},
	NSTranPurch: {
		"VendorBill", "VendorBillExpense", "VendorBillExpenseList",
		"VendorBillItem", "VendorBillItemList",
		"VendorPayment", "VendorPaymentApplyList", "VendorPaymentCredit",
		"VendorPaymentCreditList", "VendorPaymentApply",
		"PurchaseOrder", "ItemReceipt", "PurchaseOrderItemList",
	},
	NSTranCust: {
		"CustomerRefund", "CustomerRefundApply", "CustomerRefundApplyList",
		"CustomerRefundDeposit", "CustomerRefundDepositList",
		"CustomerDeposit", "CustomerDepositApply", "CustomerDepositApplyList",
		"CashRefund",
	},
	NSTranGeneral: {
		"JournalEntry", "JournalEntryLine", "JournalEntryLineList",
	},
	NSSetupCustom: {
		"CustomRecord", "CustomRecordCustomField", "CustomRecordSearch",
		"CustomListSearch", "CustomRecordType",
	},
	NSListEmp: {
		"EmployeeSearch", "Employee",
	},
	NSTranEmp: {
		"ExpenseReport", "ExpenseReportExpense", "ExpenseReportExpenseList",
	},
	NSDocFileCabinet: {
		"FolderSearch", "Folder", "File", "FileSearch",
	},
}

var simpleTypes = map[Namespace][]string{
	NSPlatformCoreTyp: {
		"RecordType", "GetAllRecordType", "SearchRecordType",
		"SearchEnumMultiSelectFieldOperator", "SearchStringFieldOperator",
		"SearchDateFieldOperator", "SearchLongFieldOperator",
	},
}

var registry = buildRegistry()

func buildRegistry() map[string]TypeInfo {
	reg := make(map[string]TypeInfo)
	for _, table := range []map[Namespace][]string{complexTypes, simpleTypes} {
		for ns, names := range table {
			for _, name := range names {
				if existing, ok := reg[name]; ok {
					panic(fmt.Sprintf("netsuite: type %s registered in %s and %s", name, existing.Namespace.Prefix, ns.Prefix))
				}
				reg[name] = TypeInfo{Namespace: ns, Name: name}
			}
		}
	}
	return reg
}

// LookupType returns the schema location of a type by its symbolic name.
func LookupType(name string) (TypeInfo, bool) {
	t, ok := registry[name]
	return t, ok
}

// MustLookupType is like LookupType but panics on unknown names.
func MustLookupType(name string) TypeInfo {
	t, ok := registry[name]
	if !ok {
		panic(fmt.Sprintf("netsuite: unknown type %q", name))
	}
	return t
}

// Namespaces returns prefix to URN for every namespace in the registry.
func Namespaces() map[string]string {
	out := make(map[string]string)
	for _, table := range []map[Namespace][]string{complexTypes, simpleTypes} {
		for ns := range table {
			out[ns.Prefix] = ns.URN
		}
	}
	return out
}
