package netsuite

import (
	"context"
	"fmt"
)

// PaginatedSearch is a cursor over a remote search. Search runs the query
// and positions the cursor on page 1; GotoPage moves it to any page of the
// same result set.
//
// A PaginatedSearch is not safe for concurrent use.
type PaginatedSearch struct {
	TypeName     string
	PageSize     int
	PageIndex    int
	TotalPages   int
	TotalRecords int
	NumRecords   int
	Records      []*Record
	SearchID     string

	backend Backend
	search  SearchRecord
}

// NewPaginatedSearch returns a fresh cursor. No remote call is made until
// Search or GotoPage.
func NewPaginatedSearch(backend Backend, search SearchRecord, pageSize int) *PaginatedSearch {
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}
	return &PaginatedSearch{
		TypeName: search.Type,
		PageSize: pageSize,
		backend:  backend,
		search:   search,
	}
}

// Search performs the initial query and loads page 1.
func (ps *PaginatedSearch) Search(ctx context.Context) error {
	res, err := ps.backend.Search(ctx, ps.search, ps.PageSize)
	if err != nil {
		return err
	}
	return ps.apply("search", res, 1)
}

// GotoPage loads page p. Pages run from 1 to TotalPages; on a fresh cursor
// page 1 performs the initial search.
func (ps *PaginatedSearch) GotoPage(ctx context.Context, p int) error {
	if p == 1 && ps.SearchID == "" {
		return ps.Search(ctx)
	}
	if p < 1 || p > ps.TotalPages {
		return fmt.Errorf("%w: page %d of %d", ErrPageOutOfRange, p, ps.TotalPages)
	}

	res, err := ps.backend.SearchMoreWithID(ctx, ps.SearchID, p)
	if err != nil {
		return err
	}
	return ps.apply("searchMoreWithId", res, p)
}

func (ps *PaginatedSearch) apply(op string, res *SearchResult, page int) error {
	if !res.Status.IsSuccess {
		return statusError(op, res.Status)
	}

	ps.TotalRecords = res.TotalRecords
	ps.TotalPages = res.TotalPages
	ps.PageIndex = min(page, res.TotalPages)
	ps.Records = res.Records
	ps.NumRecords = len(res.Records)
	if res.SearchID != "" {
		ps.SearchID = res.SearchID
	}
	if res.PageSize > 0 {
		ps.PageSize = res.PageSize
	}
	return nil
}
