package netsuite

import (
	"cmp"
	"context"
	"errors"
	"iter"

	"go.uber.org/zap"
)

const (
	defaultPageSize = 20
	countPageSize   = 10
)

// RecordService provides operations on one NetSuite record type.
//
//go:generate mockery --name=RecordService --output=mocks --outpkg=mocks --filename=record_service.go
type RecordService interface {
	// TypeName returns the schema type name, e.g. "VendorBill".
	TypeName() string

	// Get fetches one record by internal or external id.
	Get(ctx context.Context, id RecordID) (*Record, error)

	// GetRef serializes a reference to the record without a remote call.
	GetRef(id RecordID) (*Record, error)

	// GetList fetches several records by internal id in a single call.
	// Results are in request order; rows NetSuite could not read carry an
	// error instead of a record.
	GetList(ctx context.Context, ids []string) (ReadResults, error)

	// GetAll returns every record of the type.
	GetAll(ctx context.Context) ([]*Record, error)

	// Pages returns an iterator over result pages. Each page costs exactly
	// one remote call, made when the page is requested.
	Pages(ctx context.Context, pageSize int) iter.Seq2[[]*Record, error]

	// Count returns the total number of records of the type.
	Count(ctx context.Context) (int, error)

	// Search runs a single string-field search and returns the first page.
	Search(ctx context.Context, attribute, value string, op Operator) ([]*Record, error)

	// SearchPages iterates every page of a filtered search.
	SearchPages(ctx context.Context, field SearchField, pageSize int) iter.Seq2[[]*Record, error]

	// GetAllRecords runs the getAll operation, supported only by a few
	// list types such as currency.
	GetAllRecords(ctx context.Context) ([]*Record, error)

	// Post creates or updates a record keyed by its externalId.
	Post(ctx context.Context, data *Record) (*Record, error)

	// Delete removes a record. An empty recordType uses this service's type.
	Delete(ctx context.Context, recordType, internalID string) (bool, error)
}

// ReadResult is the outcome of reading one id of a GetList call.
type ReadResult struct {
	ID     string
	Record *Record
	Err    error
}

// ReadResults holds GetList outcomes in request order.
type ReadResults []ReadResult

// Records returns the successfully read records.
func (rs ReadResults) Records() []*Record {
	out := make([]*Record, 0, len(rs))
	for _, r := range rs {
		if r.Err == nil {
			out = append(out, r.Record)
		}
	}
	return out
}

// Failed returns the rows that carry an error.
func (rs ReadResults) Failed() ReadResults {
	var out ReadResults
	for _, r := range rs {
		if r.Err != nil {
			out = append(out, r)
		}
	}
	return out
}

// postSchema lists the fields copied into an upsert payload.
type postSchema struct {
	simple   []string
	refs     []string
	readOnly []string
}

type serviceDef struct {
	typeName   string
	searchType string
	// tranType restricts transaction searches to one transaction type.
	tranType string
	getAll   bool
	schema   *postSchema
}

// recordService implements RecordService.
type recordService struct {
	def        serviceDef
	recordType string
	backend    Backend
	logger     *zap.Logger
}

func newRecordService(def serviceDef, backend Backend, logger *zap.Logger) *recordService {
	return &recordService{
		def:        def,
		recordType: recordTypeName(def.typeName),
		backend:    backend,
		logger:     logger.With(zap.String("type", def.typeName)),
	}
}

func (s *recordService) TypeName() string {
	return s.def.typeName
}

func (s *recordService) notImplemented(op string) error {
	return &NotImplementedError{TypeName: s.def.typeName, Operation: op}
}

// Get fetches one record by internal or external id.
func (s *recordService) Get(ctx context.Context, id RecordID) (*Record, error) {
	if err := id.validate(); err != nil {
		return nil, err
	}

	resp, err := s.backend.Get(ctx, id.Ref(s.recordType))
	if err != nil {
		return nil, err
	}

	if !resp.Status.IsSuccess {
		err := statusError("get", resp.Status)
		var nf *NotFoundError
		if errors.As(err, &nf) {
			nf.RecordType = s.recordType
			nf.RecordID = id
		}
		return nil, err
	}
	return resp.Record, nil
}

// GetRef serializes a reference to the record without a remote call.
func (s *recordService) GetRef(id RecordID) (*Record, error) {
	if err := id.validate(); err != nil {
		return nil, err
	}
	return id.Ref(s.recordType).Record(), nil
}

// GetList fetches several records by internal id in a single call.
func (s *recordService) GetList(ctx context.Context, ids []string) (ReadResults, error) {
	if len(ids) == 0 {
		return ReadResults{}, nil
	}

	refs := make([]RecordRef, len(ids))
	for i, id := range ids {
		refs[i] = ByInternalID(id).Ref(s.recordType)
	}

	list, err := s.backend.GetList(ctx, refs)
	if err != nil {
		return nil, err
	}
	if !list.Status.IsSuccess {
		return nil, &RemoteError{Operation: "getList", Details: list.Status.Details}
	}

	results := make(ReadResults, len(ids))
	for i, id := range ids {
		results[i].ID = id

		if i >= len(list.Responses) {
			results[i].Err = &RemoteError{
				Operation: "getList",
				Details:   []StatusDetail{{Message: "no response for record"}},
			}
		} else if resp := list.Responses[i]; !resp.Status.IsSuccess {
			results[i].Err = statusError("getList", resp.Status)
		} else {
			results[i].Record = resp.Record
			continue
		}

		s.logger.Error("error from NetSuite",
			zap.String("id", id),
			zap.Error(results[i].Err),
		)
	}
	return results, nil
}

// GetAll returns every record of the type. Types without search support
// fall back to the getAll operation.
func (s *recordService) GetAll(ctx context.Context) ([]*Record, error) {
	if s.def.searchType == "" && s.def.getAll {
		return s.GetAllRecords(ctx)
	}
	return Collect(Flatten(s.Pages(ctx, defaultPageSize)))
}

// Pages returns an iterator over result pages.
func (s *recordService) Pages(ctx context.Context, pageSize int) iter.Seq2[[]*Record, error] {
	return s.pages(ctx, nil, pageSize)
}

// SearchPages iterates every page of a filtered search.
func (s *recordService) SearchPages(ctx context.Context, field SearchField, pageSize int) iter.Seq2[[]*Record, error] {
	return s.pages(ctx, []SearchField{field}, pageSize)
}

func (s *recordService) pages(ctx context.Context, fields []SearchField, pageSize int) iter.Seq2[[]*Record, error] {
	return func(yield func([]*Record, error) bool) {
		search, err := s.searchRecord(fields...)
		if err != nil {
			yield(nil, err)
			return
		}

		ps := NewPaginatedSearch(s.backend, search, pageSize)
		if err := ps.Search(ctx); err != nil {
			yield(nil, err)
			return
		}
		if ps.TotalRecords == 0 {
			return
		}
		s.logger.Debug("search positioned",
			zap.Int("total_pages", ps.TotalPages),
			zap.Int("num_records", ps.NumRecords),
		)

		for {
			if !yield(ps.Records, nil) {
				return
			}
			if ps.PageIndex >= ps.TotalPages {
				return
			}
			if err := ctx.Err(); err != nil {
				yield(nil, err)
				return
			}

			s.logger.Debug("going to page", zap.Int("page", ps.PageIndex+1))
			if err := ps.GotoPage(ctx, ps.PageIndex+1); err != nil {
				yield(nil, err)
				return
			}
		}
	}
}

// searchRecord builds the basic search for this type. Transaction services
// always filter on their transaction type.
func (s *recordService) searchRecord(fields ...SearchField) (SearchRecord, error) {
	if s.def.searchType == "" {
		return SearchRecord{}, s.notImplemented("search")
	}

	search := SearchRecord{Type: s.def.searchType}
	if s.def.tranType != "" {
		search.Fields = append(search.Fields, SearchField{
			Name:     "type",
			Operator: OperatorAnyOf,
			Values:   []string{s.def.tranType},
			Type:     SearchEnumMultiSelectField,
		})
	}
	search.Fields = append(search.Fields, fields...)
	return search, nil
}

// Count returns the total number of records of the type.
func (s *recordService) Count(ctx context.Context) (int, error) {
	search, err := s.searchRecord()
	if err != nil {
		return 0, err
	}

	ps := NewPaginatedSearch(s.backend, search, countPageSize)
	if err := ps.Search(ctx); err != nil {
		return 0, err
	}
	return ps.TotalRecords, nil
}

// Search runs a single string-field search and returns the first page.
// An empty operator means "contains".
func (s *recordService) Search(ctx context.Context, attribute, value string, op Operator) ([]*Record, error) {
	search, err := s.searchRecord(StringCriterion(attribute, cmp.Or(op, OperatorContains), value))
	if err != nil {
		return nil, err
	}

	ps := NewPaginatedSearch(s.backend, search, 0)
	if err := ps.Search(ctx); err != nil {
		return nil, err
	}
	return ps.Records, nil
}

// GetAllRecords runs the getAll operation.
func (s *recordService) GetAllRecords(ctx context.Context) ([]*Record, error) {
	if !s.def.getAll {
		return nil, s.notImplemented("getAll")
	}

	res, err := s.backend.GetAll(ctx, s.recordType)
	if err != nil {
		return nil, err
	}
	if !res.Status.IsSuccess {
		return nil, statusError("getAll", res.Status)
	}
	return res.Records, nil
}

// Post creates or updates a record keyed by its externalId and returns the
// serialized reference NetSuite assigned.
func (s *recordService) Post(ctx context.Context, data *Record) (*Record, error) {
	schema := s.def.schema
	if schema == nil {
		return nil, s.notImplemented("post")
	}

	externalID := data.ExternalID()
	if externalID == "" {
		return nil, ErrMissingExternalID
	}

	target := NewRecord(Field{"externalId", externalID})
	BuildSimpleFields(schema.simple, data, target)
	BuildRecordRefFields(schema.refs, data, target)
	if err := BuildCustomFields(data, target); err != nil {
		return nil, err
	}
	RemoveReadOnly(target, schema.readOnly...)

	resp, err := s.backend.Upsert(ctx, s.def.typeName, target)
	if err != nil {
		return nil, err
	}
	if !resp.Status.IsSuccess {
		return nil, statusError("upsert", resp.Status)
	}

	ref := RecordRef{Type: s.recordType, ExternalID: externalID}
	if resp.BaseRef != nil {
		ref = *resp.BaseRef
	}
	return ref.Record(), nil
}

// Delete removes a record.
func (s *recordService) Delete(ctx context.Context, recordType, internalID string) (bool, error) {
	if internalID == "" {
		return false, ErrNoIdentifier
	}

	ref := RecordRef{Type: cmp.Or(recordType, s.recordType), InternalID: internalID}
	resp, err := s.backend.Delete(ctx, ref)
	if err != nil {
		return false, err
	}
	if !resp.Status.IsSuccess {
		return false, statusError("delete", resp.Status)
	}
	return true, nil
}
