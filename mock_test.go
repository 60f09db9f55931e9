package netsuite_test

import (
	"context"
	"strconv"

	"github.com/tphakala/go-netsuite"
)

// --- Backend mock ---

type mockBackend struct {
	getFn        func(ctx context.Context, ref netsuite.RecordRef) (*netsuite.ReadResponse, error)
	getListFn    func(ctx context.Context, refs []netsuite.RecordRef) (*netsuite.ReadResponseList, error)
	getAllFn     func(ctx context.Context, recordType string) (*netsuite.GetAllResult, error)
	searchFn     func(ctx context.Context, search netsuite.SearchRecord, pageSize int) (*netsuite.SearchResult, error)
	searchMoreFn func(ctx context.Context, searchID string, pageIndex int) (*netsuite.SearchResult, error)
	upsertFn     func(ctx context.Context, typeName string, record *netsuite.Record) (*netsuite.WriteResponse, error)
	deleteFn     func(ctx context.Context, ref netsuite.RecordRef) (*netsuite.WriteResponse, error)
}

func (m *mockBackend) Get(ctx context.Context, ref netsuite.RecordRef) (*netsuite.ReadResponse, error) {
	return m.getFn(ctx, ref)
}

func (m *mockBackend) GetList(ctx context.Context, refs []netsuite.RecordRef) (*netsuite.ReadResponseList, error) {
	return m.getListFn(ctx, refs)
}

func (m *mockBackend) GetAll(ctx context.Context, recordType string) (*netsuite.GetAllResult, error) {
	return m.getAllFn(ctx, recordType)
}

func (m *mockBackend) Search(
	ctx context.Context, search netsuite.SearchRecord, pageSize int,
) (*netsuite.SearchResult, error) {
	return m.searchFn(ctx, search, pageSize)
}

func (m *mockBackend) SearchMoreWithID(
	ctx context.Context, searchID string, pageIndex int,
) (*netsuite.SearchResult, error) {
	return m.searchMoreFn(ctx, searchID, pageIndex)
}

func (m *mockBackend) Upsert(
	ctx context.Context, typeName string, record *netsuite.Record,
) (*netsuite.WriteResponse, error) {
	return m.upsertFn(ctx, typeName, record)
}

func (m *mockBackend) Delete(ctx context.Context, ref netsuite.RecordRef) (*netsuite.WriteResponse, error) {
	return m.deleteFn(ctx, ref)
}

// --- helpers ---

var okStatus = netsuite.Status{IsSuccess: true}

func failedStatus(details ...netsuite.StatusDetail) netsuite.Status {
	return netsuite.Status{IsSuccess: false, Details: details}
}

func idRecord(id int) *netsuite.Record {
	return netsuite.NewRecord(netsuite.Field{Name: "internalId", Value: strconv.Itoa(id)})
}

// searchCalls records the remote calls made against a pagedBackend.
type searchCalls struct {
	search   int
	more     int
	pageSize int
	last     netsuite.SearchRecord
}

func (c *searchCalls) total() int { return c.search + c.more }

// newPagedBackend serves a stable result set of total records with ids
// 1..total, split into pages of the requested size.
func newPagedBackend(total int) (*mockBackend, *searchCalls) {
	calls := &searchCalls{}
	records := make([]*netsuite.Record, total)
	for i := range records {
		records[i] = idRecord(i + 1)
	}

	page := func(size, index int) *netsuite.SearchResult {
		res := &netsuite.SearchResult{
			Status:       okStatus,
			TotalRecords: total,
			PageSize:     size,
			TotalPages:   (total + size - 1) / size,
			PageIndex:    index,
			SearchID:     "WEBSERVICES_1_search",
		}
		if start := (index - 1) * size; start < total {
			res.Records = records[start:min(start+size, total)]
		}
		return res
	}

	m := &mockBackend{
		searchFn: func(_ context.Context, search netsuite.SearchRecord, pageSize int) (*netsuite.SearchResult, error) {
			calls.search++
			calls.pageSize = pageSize
			calls.last = search
			return page(pageSize, 1), nil
		},
		searchMoreFn: func(_ context.Context, _ string, pageIndex int) (*netsuite.SearchResult, error) {
			calls.more++
			return page(calls.pageSize, pageIndex), nil
		},
	}
	return m, calls
}
