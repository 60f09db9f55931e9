package netsuite

import (
	"context"
	"strings"
)

// Backend performs SuiteTalk operations. The default implementation speaks
// SOAP over HTTP; tests and alternative transports can supply their own via
// WithBackend.
//
// Every method returns a non-nil error only when the call itself failed
// (transport error or SOAP fault). An unsuccessful Status is returned as
// data for the caller to interpret.
type Backend interface {
	Get(ctx context.Context, ref RecordRef) (*ReadResponse, error)
	GetList(ctx context.Context, refs []RecordRef) (*ReadResponseList, error)
	GetAll(ctx context.Context, recordType string) (*GetAllResult, error)
	Search(ctx context.Context, search SearchRecord, pageSize int) (*SearchResult, error)
	SearchMoreWithID(ctx context.Context, searchID string, pageIndex int) (*SearchResult, error)
	Upsert(ctx context.Context, typeName string, record *Record) (*WriteResponse, error)
	Delete(ctx context.Context, ref RecordRef) (*WriteResponse, error)
}

// StatusDetail is one entry of a response status.
type StatusDetail struct {
	Type    string `json:"type,omitempty"`
	Code    string `json:"code,omitempty"`
	Message string `json:"message"`
}

// Status is the outcome NetSuite attaches to every read and write.
type Status struct {
	IsSuccess bool           `json:"isSuccess"`
	Details   []StatusDetail `json:"statusDetail,omitempty"`
}

// Messages joins the detail messages with ", ".
func (s Status) Messages() string {
	msgs := make([]string, 0, len(s.Details))
	for _, d := range s.Details {
		msgs = append(msgs, d.Message)
	}
	return strings.Join(msgs, ", ")
}

// ReadResponse is the result of reading one record.
type ReadResponse struct {
	Status Status
	Record *Record
}

// ReadResponseList is the result of a batched read.
type ReadResponseList struct {
	Status    Status
	Responses []ReadResponse
}

// GetAllResult is the result of the getAll operation.
type GetAllResult struct {
	Status       Status
	TotalRecords int
	Records      []*Record
}

// SearchResult is one page of a search.
type SearchResult struct {
	Status       Status
	TotalRecords int
	PageSize     int
	TotalPages   int
	PageIndex    int
	SearchID     string
	Records      []*Record
}

// WriteResponse is the result of a write or delete.
type WriteResponse struct {
	Status  Status
	BaseRef *RecordRef
}

// Operator is a search field operator.
type Operator string

// String field operators.
const (
	OperatorContains         Operator = "contains"
	OperatorDoesNotContain   Operator = "doesNotContain"
	OperatorDoesNotStartWith Operator = "doesNotStartWith"
	OperatorEmpty            Operator = "empty"
	OperatorHasKeywords      Operator = "hasKeywords"
	OperatorIs               Operator = "is"
	OperatorIsNot            Operator = "isNot"
	OperatorNotEmpty         Operator = "notEmpty"
	OperatorStartsWith       Operator = "startsWith"
)

// Multi-select operators.
const (
	OperatorAnyOf  Operator = "anyOf"
	OperatorNoneOf Operator = "noneOf"
)

// Search field types.
const (
	SearchStringField          = "SearchStringField"
	SearchMultiSelectField     = "SearchMultiSelectField"
	SearchEnumMultiSelectField = "SearchEnumMultiSelectField"
	SearchBooleanField         = "SearchBooleanField"
)

// SearchField is a single criterion of a basic search.
type SearchField struct {
	Name     string
	Operator Operator
	Values   []string
	// Type is the search field schema type; empty means SearchStringField.
	Type string
}

// StringCriterion returns a string field criterion.
func StringCriterion(name string, op Operator, value string) SearchField {
	return SearchField{Name: name, Operator: op, Values: []string{value}, Type: SearchStringField}
}

func (f SearchField) fieldType() string {
	if f.Type == "" {
		return SearchStringField
	}
	return f.Type
}

// SearchRecord is a basic search: a SearchBasic type and its criteria.
// No criteria matches every record of the type.
type SearchRecord struct {
	Type   string
	Fields []SearchField
}
