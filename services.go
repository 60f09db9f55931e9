package netsuite

// Transaction type filters for TransactionSearchBasic.
const (
	tranInvoice       = "_invoice"
	tranVendorBill    = "_vendorBill"
	tranVendorPayment = "_vendorPayment"
	tranJournal       = "_journal"
	tranExpenseReport = "_expenseReport"
)

var customerSchema = &postSchema{
	simple: []string{
		"accountNumber", "addressbookList", "comments", "companyName", "email",
		"entityId", "firstName", "isInactive", "isPerson", "lastName", "phone",
	},
	refs: []string{
		"category", "currency", "parent", "representingSubsidiary", "subsidiary", "terms",
	},
	readOnly: []string{"balance", "dateCreated", "lastModifiedDate"},
}

var vendorSchema = &postSchema{
	simple: []string{
		"accountNumber", "addressbookList", "companyName", "email", "entityId",
		"firstName", "isInactive", "isPerson", "lastName", "legalName", "phone",
	},
	refs: []string{
		"category", "currency", "expenseAccount", "payablesAccount",
		"representingSubsidiary", "subsidiary", "terms",
	},
	readOnly: []string{"balance", "dateCreated", "lastModifiedDate"},
}

var invoiceSchema = &postSchema{
	simple: []string{
		"dueDate", "exchangeRate", "itemList", "memo", "otherRefNum", "tranDate", "tranId",
	},
	refs: []string{
		"account", "class", "currency", "department", "entity", "location",
		"subsidiary", "terms",
	},
	readOnly: []string{"total", "subTotal"},
}

var vendorBillSchema = &postSchema{
	simple: []string{
		"dueDate", "exchangeRate", "expenseList", "itemList", "memo", "tranDate", "tranId",
	},
	refs: []string{
		"account", "approvalStatus", "class", "currency", "department", "entity",
		"location", "subsidiary", "terms",
	},
	readOnly: []string{"total", "userTotal"},
}

var journalEntrySchema = &postSchema{
	simple: []string{
		"approved", "exchangeRate", "lineList", "memo", "reversalDate", "tranDate", "tranId",
	},
	refs: []string{
		"accountingBook", "class", "currency", "department", "location",
		"subsidiary", "toSubsidiary",
	},
}

var employeeSchema = &postSchema{
	simple: []string{
		"email", "entityId", "firstName", "initials", "isInactive", "lastName",
		"phone", "title",
	},
	refs: []string{
		"class", "currency", "department", "location", "subsidiary", "supervisor",
	},
}

var expenseReportSchema = &postSchema{
	simple: []string{
		"accountingApproval", "complete", "expenseList", "memo",
		"supervisorApproval", "tranDate", "tranId",
	},
	refs: []string{
		"account", "class", "department", "entity", "expenseReportCurrency",
		"location", "subsidiary",
	},
	readOnly: []string{"amount", "total"},
}

// serviceDefs lists every record type the client exposes.
var serviceDefs = []serviceDef{
	{typeName: "Account", searchType: "AccountSearchBasic"},
	{typeName: "Classification", searchType: "ClassificationSearchBasic"},
	{typeName: "Currency", getAll: true},
	{typeName: "Customer", searchType: "CustomerSearchBasic", schema: customerSchema},
	{typeName: "Department", searchType: "DepartmentSearchBasic"},
	{typeName: "Employee", searchType: "EmployeeSearchBasic", schema: employeeSchema},
	{typeName: "ExpenseReport", searchType: "TransactionSearchBasic", tranType: tranExpenseReport, schema: expenseReportSchema},
	{typeName: "Invoice", searchType: "TransactionSearchBasic", tranType: tranInvoice, schema: invoiceSchema},
	{typeName: "JournalEntry", searchType: "TransactionSearchBasic", tranType: tranJournal, schema: journalEntrySchema},
	{typeName: "Location", searchType: "LocationSearchBasic"},
	{typeName: "Subsidiary", searchType: "SubsidiarySearchBasic"},
	{typeName: "Term", searchType: "TermSearchBasic"},
	{typeName: "Vendor", searchType: "VendorSearchBasic", schema: vendorSchema},
	{typeName: "VendorBill", searchType: "TransactionSearchBasic", tranType: tranVendorBill, schema: vendorBillSchema},
	{typeName: "VendorPayment", searchType: "TransactionSearchBasic", tranType: tranVendorPayment},
}
