package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tphakala/go-netsuite"
)

// memBackend serves vendors with internal ids 1..n; id 2 is missing.
type memBackend struct {
	n        int
	pageSize int
	deleted  []netsuite.RecordRef
	ops      []netsuite.Operator
}

func vendor(id int) *netsuite.Record {
	return netsuite.NewRecord(
		netsuite.Field{Name: "internalId", Value: strconv.Itoa(id)},
		netsuite.Field{Name: "companyName", Value: "Vendor " + strconv.Itoa(id)},
	)
}

func (m *memBackend) read(ref netsuite.RecordRef) netsuite.ReadResponse {
	id, _ := strconv.Atoi(ref.InternalID)
	if id == 2 || id < 1 || id > m.n {
		return netsuite.ReadResponse{Status: netsuite.Status{Details: []netsuite.StatusDetail{
			{Type: "ERROR", Code: "RCRD_DSNT_EXIST", Message: "That record does not exist."},
		}}}
	}
	return netsuite.ReadResponse{Status: netsuite.Status{IsSuccess: true}, Record: vendor(id)}
}

func (m *memBackend) Get(_ context.Context, ref netsuite.RecordRef) (*netsuite.ReadResponse, error) {
	resp := m.read(ref)
	return &resp, nil
}

func (m *memBackend) GetList(_ context.Context, refs []netsuite.RecordRef) (*netsuite.ReadResponseList, error) {
	out := &netsuite.ReadResponseList{Status: netsuite.Status{IsSuccess: true}}
	for _, ref := range refs {
		out.Responses = append(out.Responses, m.read(ref))
	}
	return out, nil
}

func (m *memBackend) GetAll(context.Context, string) (*netsuite.GetAllResult, error) {
	return nil, errors.New("not served")
}

func (m *memBackend) page(size, index int) *netsuite.SearchResult {
	res := &netsuite.SearchResult{
		Status:       netsuite.Status{IsSuccess: true},
		TotalRecords: m.n,
		PageSize:     size,
		TotalPages:   (m.n + size - 1) / size,
		PageIndex:    index,
		SearchID:     "WEBSERVICES_cli_search",
	}
	for id := (index-1)*size + 1; id <= min(index*size, m.n); id++ {
		res.Records = append(res.Records, vendor(id))
	}
	return res
}

func (m *memBackend) Search(_ context.Context, search netsuite.SearchRecord, pageSize int) (*netsuite.SearchResult, error) {
	for _, f := range search.Fields {
		m.ops = append(m.ops, f.Operator)
	}
	m.pageSize = pageSize
	return m.page(pageSize, 1), nil
}

func (m *memBackend) SearchMoreWithID(_ context.Context, _ string, pageIndex int) (*netsuite.SearchResult, error) {
	return m.page(m.pageSize, pageIndex), nil
}

func (m *memBackend) Upsert(context.Context, string, *netsuite.Record) (*netsuite.WriteResponse, error) {
	return nil, errors.New("not served")
}

func (m *memBackend) Delete(_ context.Context, ref netsuite.RecordRef) (*netsuite.WriteResponse, error) {
	m.deleted = append(m.deleted, ref)
	return &netsuite.WriteResponse{Status: netsuite.Status{IsSuccess: true}, BaseRef: &ref}, nil
}

func run(t *testing.T, backend netsuite.Backend, args ...string) (string, string, error) {
	t.Helper()
	factory := func(Options) (*netsuite.Client, error) {
		return netsuite.NewClient(netsuite.WithBackend(backend))
	}
	root := NewRootCmd("1.2.3", factory)
	stdout, stderr := new(bytes.Buffer), new(bytes.Buffer)
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.SetArgs(args)
	err := Execute(root)
	return stdout.String(), stderr.String(), err
}

func decodeRecords(t *testing.T, out string) []map[string]any {
	t.Helper()
	var recs []map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &recs))
	return recs
}

func TestGetCmd(t *testing.T) {
	out, _, err := run(t, &memBackend{n: 3}, "get", "Vendor", "--internal-id", "3")
	require.NoError(t, err)
	assert.JSONEq(t, `{"internalId":"3","companyName":"Vendor 3"}`, out)

	_, stderr, err := run(t, &memBackend{n: 3}, "get", "Vendor", "--internal-id", "2")
	var nf *netsuite.NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Contains(t, stderr, "not found")

	_, _, err = run(t, &memBackend{n: 3}, "get", "Vendor")
	assert.Error(t, err, "one of the id flags is required")
}

func TestRefCmd(t *testing.T) {
	out, _, err := run(t, &memBackend{}, "ref", "VendorBill", "--external-id", "VB-1")
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":null,"internalId":null,"externalId":"VB-1","type":"vendorBill"}`, out)
}

func TestListCmd_PartialFailure(t *testing.T) {
	out, stderr, err := run(t, &memBackend{n: 3}, "list", "Vendor", "1", "2", "3")
	require.NoError(t, err)

	recs := decodeRecords(t, out)
	require.Len(t, recs, 2)
	assert.Equal(t, "1", recs[0]["internalId"])
	assert.Equal(t, "3", recs[1]["internalId"])
	assert.Contains(t, stderr, "2: ")
	assert.Contains(t, stderr, "1 of 3 records failed")
}

func TestAllCmd(t *testing.T) {
	for _, args := range [][]string{
		{"all", "Vendor"},
		{"all", "Vendor", "--page-size", "5"},
	} {
		out, _, err := run(t, &memBackend{n: 12}, args...)
		require.NoError(t, err, args)
		recs := decodeRecords(t, out)
		require.Len(t, recs, 12)
		for i, r := range recs {
			assert.Equal(t, strconv.Itoa(i+1), r["internalId"])
		}
	}
}

func TestCountCmd(t *testing.T) {
	out, _, err := run(t, &memBackend{n: 42}, "count", "Customer")
	require.NoError(t, err)
	assert.Equal(t, "42\n", out)
}

func TestSearchCmd(t *testing.T) {
	backend := &memBackend{n: 30}
	out, _, err := run(t, backend, "search", "Vendor", "companyName", "Vendor", "--operator", "startsWith")
	require.NoError(t, err)
	assert.Len(t, decodeRecords(t, out), 20)
	assert.Equal(t, []netsuite.Operator{netsuite.OperatorStartsWith}, backend.ops)
}

func TestDeleteCmd(t *testing.T) {
	backend := &memBackend{}
	out, _, err := run(t, backend, "delete", "Invoice", "77")
	require.NoError(t, err)
	assert.Contains(t, out, "deleted Invoice 77")
	require.Len(t, backend.deleted, 1)
	assert.Equal(t, netsuite.RecordRef{Type: "invoice", InternalID: "77"}, backend.deleted[0])
}

func TestTypesAndVersion(t *testing.T) {
	factory := func(Options) (*netsuite.Client, error) {
		return nil, errors.New("types must not build a client")
	}
	root := NewRootCmd("1.2.3", factory)
	stdout := new(bytes.Buffer)
	root.SetOut(stdout)
	root.SetArgs([]string{"types", "--config", filepath.Join(t.TempDir(), "missing.yaml")})
	require.NoError(t, root.Execute())
	assert.Contains(t, stdout.String(), "JournalEntry\n")
	assert.Contains(t, stdout.String(), "Currency\n")

	out, _, err := run(t, &memBackend{}, "version")
	require.NoError(t, err)
	assert.Equal(t, "netsuite 1.2.3 (SuiteTalk 2019_2)\n", out)
}

func TestUnknownType(t *testing.T) {
	_, _, err := run(t, &memBackend{}, "count", "Spaceship")
	assert.ErrorIs(t, err, netsuite.ErrUnknownType)
}

func TestDefaultFactory(t *testing.T) {
	_, err := DefaultFactory(Options{ConfigPath: filepath.Join(t.TempDir(), "missing.yaml")})
	assert.ErrorIs(t, err, os.ErrNotExist)

	path := filepath.Join(t.TempDir(), "netsuite.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
netsuite:
  account: TSTDRV1
  consumer_key: ck
  consumer_secret: cs
  token_key: tk
  token_secret: ts
`), 0o600))

	client, err := DefaultFactory(Options{ConfigPath: path, Verbose: true})
	require.NoError(t, err)
	assert.Equal(t, netsuite.AccountEndpoint("TSTDRV1"), client.Endpoint())
}
