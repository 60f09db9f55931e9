package netsuite_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tphakala/go-netsuite"
)

func TestPaginatedSearch(t *testing.T) {
	ctx := context.Background()
	search := netsuite.SearchRecord{Type: "VendorSearchBasic"}

	t.Run("search positions on page one", func(t *testing.T) {
		backend, calls := newPagedBackend(25)
		ps := netsuite.NewPaginatedSearch(backend, search, 10)
		assert.Equal(t, 0, ps.PageIndex)
		assert.Equal(t, "VendorSearchBasic", ps.TypeName)

		require.NoError(t, ps.Search(ctx))
		assert.Equal(t, 1, ps.PageIndex)
		assert.Equal(t, 3, ps.TotalPages)
		assert.Equal(t, 25, ps.TotalRecords)
		assert.Equal(t, 10, ps.NumRecords)
		assert.Equal(t, "WEBSERVICES_1_search", ps.SearchID)
		assert.Equal(t, 1, calls.search)
	})

	t.Run("goto page uses search id", func(t *testing.T) {
		backend, calls := newPagedBackend(25)
		ps := netsuite.NewPaginatedSearch(backend, search, 10)
		require.NoError(t, ps.Search(ctx))

		require.NoError(t, ps.GotoPage(ctx, 3))
		assert.Equal(t, 3, ps.PageIndex)
		assert.Equal(t, 5, ps.NumRecords)
		assert.Equal(t, "21", ps.Records[0].InternalID())
		assert.Equal(t, 1, calls.more)
	})

	t.Run("fresh cursor page one runs initial search", func(t *testing.T) {
		backend, calls := newPagedBackend(5)
		ps := netsuite.NewPaginatedSearch(backend, search, 2)

		require.NoError(t, ps.GotoPage(ctx, 1))
		assert.Equal(t, 1, calls.search)
		assert.Equal(t, 0, calls.more)
		assert.Equal(t, 1, ps.PageIndex)
	})

	t.Run("page out of range", func(t *testing.T) {
		backend, calls := newPagedBackend(25)
		ps := netsuite.NewPaginatedSearch(backend, search, 10)
		require.NoError(t, ps.Search(ctx))

		for _, p := range []int{0, -1, 4} {
			err := ps.GotoPage(ctx, p)
			assert.ErrorIs(t, err, netsuite.ErrPageOutOfRange, "page %d", p)
		}
		assert.Equal(t, 1, ps.PageIndex)
		assert.Equal(t, 1, calls.total())
	})

	t.Run("fresh cursor rejects later pages", func(t *testing.T) {
		backend, calls := newPagedBackend(25)
		ps := netsuite.NewPaginatedSearch(backend, search, 10)

		assert.ErrorIs(t, ps.GotoPage(ctx, 2), netsuite.ErrPageOutOfRange)
		assert.Equal(t, 0, calls.total())
	})

	t.Run("empty result keeps page index zero", func(t *testing.T) {
		backend, _ := newPagedBackend(0)
		ps := netsuite.NewPaginatedSearch(backend, search, 10)

		require.NoError(t, ps.Search(ctx))
		assert.Equal(t, 0, ps.TotalRecords)
		assert.Equal(t, 0, ps.PageIndex)
		assert.Empty(t, ps.Records)
	})
}
