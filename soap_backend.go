package netsuite

import (
	"cmp"
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/beevik/etree"

	"github.com/tphakala/go-netsuite/internal/soap"
)

func msgs(local string) string { return soap.QName(NSPlatformMsgs.Prefix, local) }
func core(local string) string { return soap.QName(NSPlatformCore.Prefix, local) }

// soapBackend implements Backend over the SuiteTalk SOAP endpoint.
type soapBackend struct {
	transport *soap.Transport
}

func newSOAPBackend(transport *soap.Transport) *soapBackend {
	return &soapBackend{transport: transport}
}

// call executes one operation and returns the first element of the body.
func (b *soapBackend) call(ctx context.Context, action string, body *etree.Element, headers ...*etree.Element) (*etree.Element, error) {
	resp, err := b.transport.Do(ctx, &soap.Request{
		Action:  action,
		Headers: headers,
		Body:    body,
	})
	if err != nil {
		return nil, err
	}

	if resp.StatusCode >= http.StatusBadRequest {
		return nil, parseError(resp.StatusCode, resp.Body, resp.Headers)
	}

	env, err := soap.ParseEnvelope(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("netsuite: %s: %w", action, err)
	}
	if env.Fault != nil {
		return nil, parseError(resp.StatusCode, resp.Body, resp.Headers)
	}
	return env.Body, nil
}

func expect(parent *etree.Element, action string, path ...string) (*etree.Element, error) {
	el := parent
	for _, name := range path {
		el = soap.Child(el, name)
		if el == nil {
			return nil, fmt.Errorf("netsuite: %s: response has no %s element", action, name)
		}
	}
	return el, nil
}

func (b *soapBackend) Get(ctx context.Context, ref RecordRef) (*ReadResponse, error) {
	body, err := b.call(ctx, "get", soap.New(msgs("get"), refElement(msgs("baseRef"), ref)))
	if err != nil {
		return nil, err
	}
	el, err := expect(body, "get", "readResponse")
	if err != nil {
		return nil, err
	}
	resp := decodeReadResponse(el)
	return &resp, nil
}

func (b *soapBackend) GetList(ctx context.Context, refs []RecordRef) (*ReadResponseList, error) {
	req := soap.New(msgs("getList"))
	for _, ref := range refs {
		req.AddChild(refElement(msgs("baseRef"), ref))
	}

	body, err := b.call(ctx, "getList", req)
	if err != nil {
		return nil, err
	}
	el, err := expect(body, "getList", "readResponseList")
	if err != nil {
		return nil, err
	}

	list := &ReadResponseList{Status: Status{IsSuccess: true}}
	if st := soap.Child(el, "status"); st != nil {
		list.Status = decodeStatus(st)
	}
	for _, r := range soap.Children(el, "readResponse") {
		list.Responses = append(list.Responses, decodeReadResponse(r))
	}
	return list, nil
}

func (b *soapBackend) GetAll(ctx context.Context, recordType string) (*GetAllResult, error) {
	record := soap.New(msgs("record"))
	record.CreateAttr("recordType", recordType)
	req := soap.New(msgs("getAll"), record)

	body, err := b.call(ctx, "getAll", req)
	if err != nil {
		return nil, err
	}
	el, err := expect(body, "getAll", "getAllResult")
	if err != nil {
		return nil, err
	}

	return &GetAllResult{
		Status:       decodeStatus(soap.Child(el, "status")),
		TotalRecords: atoi(soap.ChildText(el, "totalRecords")),
		Records:      decodeRecordList(soap.Child(el, "recordList")),
	}, nil
}

func (b *soapBackend) Search(ctx context.Context, search SearchRecord, pageSize int) (*SearchResult, error) {
	searchEl, err := encodeSearchRecord(search)
	if err != nil {
		return nil, err
	}

	var headers []*etree.Element
	if pageSize > 0 {
		headers = append(headers, soap.New(msgs("searchPreferences"),
			soap.Text(msgs("bodyFieldsOnly"), "false"),
			soap.Text(msgs("returnSearchColumns"), "true"),
			soap.Text(msgs("pageSize"), strconv.Itoa(pageSize)),
		))
	}

	body, err := b.call(ctx, "search", soap.New(msgs("search"), searchEl), headers...)
	if err != nil {
		return nil, err
	}
	el, err := expect(body, "search", "searchResult")
	if err != nil {
		return nil, err
	}
	return decodeSearchResult(el), nil
}

func (b *soapBackend) SearchMoreWithID(ctx context.Context, searchID string, pageIndex int) (*SearchResult, error) {
	req := soap.New(msgs("searchMoreWithId"),
		soap.Text(msgs("searchId"), searchID),
		soap.Text(msgs("pageIndex"), strconv.Itoa(pageIndex)),
	)

	body, err := b.call(ctx, "searchMoreWithId", req)
	if err != nil {
		return nil, err
	}
	el, err := expect(body, "searchMoreWithId", "searchResult")
	if err != nil {
		return nil, err
	}
	return decodeSearchResult(el), nil
}

func (b *soapBackend) Upsert(ctx context.Context, typeName string, record *Record) (*WriteResponse, error) {
	info, ok := LookupType(typeName)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownType, typeName)
	}

	body, err := b.call(ctx, "upsert", soap.New(msgs("upsert"), encodeRecord(msgs("record"), info, record)))
	if err != nil {
		return nil, err
	}
	el, err := expect(body, "upsert", "writeResponse")
	if err != nil {
		return nil, err
	}
	resp := decodeWriteResponse(el)
	return &resp, nil
}

func (b *soapBackend) Delete(ctx context.Context, ref RecordRef) (*WriteResponse, error) {
	body, err := b.call(ctx, "delete", soap.New(msgs("delete"), refElement(msgs("baseRef"), ref)))
	if err != nil {
		return nil, err
	}
	el, err := expect(body, "delete", "writeResponse")
	if err != nil {
		return nil, err
	}
	resp := decodeWriteResponse(el)
	return &resp, nil
}

// --- encoding ---

func refElement(name string, ref RecordRef) *etree.Element {
	el := soap.New(name)
	el.CreateAttr("xsi:type", MustLookupType("RecordRef").QualifiedName())
	setRefAttrs(el, ref)
	if ref.Type != "" {
		el.CreateAttr("type", ref.Type)
	}
	return el
}

func setRefAttrs(el *etree.Element, ref RecordRef) {
	if ref.InternalID != "" {
		el.CreateAttr("internalId", ref.InternalID)
	}
	if ref.ExternalID != "" {
		el.CreateAttr("externalId", ref.ExternalID)
	}
}

func encodeSearchRecord(search SearchRecord) (*etree.Element, error) {
	info, ok := LookupType(search.Type)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownType, search.Type)
	}

	el := soap.New(msgs("searchRecord"))
	el.CreateAttr("xsi:type", info.QualifiedName())
	for _, f := range search.Fields {
		fieldType, ok := LookupType(f.fieldType())
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownType, f.fieldType())
		}

		fe := el.CreateElement(soap.QName(info.Namespace.Prefix, f.Name))
		fe.CreateAttr("xsi:type", fieldType.QualifiedName())
		if f.Operator != "" {
			fe.CreateAttr("operator", string(f.Operator))
		}
		for _, v := range f.Values {
			if f.fieldType() == SearchMultiSelectField {
				fe.CreateElement(core("searchValue")).CreateAttr("internalId", v)
				continue
			}
			fe.AddChild(soap.Text(core("searchValue"), v))
		}
	}
	return el, nil
}

func encodeRecord(name string, info TypeInfo, rec *Record) *etree.Element {
	el := soap.New(name)
	el.CreateAttr("xsi:type", info.QualifiedName())
	encodeFields(el, info.Namespace.Prefix, rec)
	return el
}

// encodeFields writes identifiers as attributes and every other non-nil
// field as a child element in the record's namespace.
func encodeFields(el *etree.Element, prefix string, rec *Record) {
	for name, v := range rec.All() {
		if name == "internalId" || name == "externalId" {
			if s, ok := v.(string); ok {
				el.CreateAttr(name, s)
				continue
			}
		}
		for _, c := range encodeValue(soap.QName(prefix, name), prefix, v) {
			el.AddChild(c)
		}
	}
}

func encodeValue(name, prefix string, v any) []*etree.Element {
	switch t := v.(type) {
	case nil:
		return nil
	case string:
		return []*etree.Element{soap.Text(name, t)}
	case bool:
		return []*etree.Element{soap.Text(name, strconv.FormatBool(t))}
	case int:
		return []*etree.Element{soap.Text(name, strconv.Itoa(t))}
	case int64:
		return []*etree.Element{soap.Text(name, strconv.FormatInt(t, 10))}
	case float64:
		return []*etree.Element{soap.Text(name, strconv.FormatFloat(t, 'f', -1, 64))}
	case time.Time:
		return []*etree.Element{soap.Text(name, t.Format(time.RFC3339))}
	case RecordRef:
		return []*etree.Element{refElement(name, t)}
	case *RecordRef:
		if t == nil {
			return nil
		}
		return []*etree.Element{refElement(name, *t)}
	case *Record:
		if t == nil {
			return nil
		}
		el := soap.New(name)
		encodeFields(el, prefix, t)
		return []*etree.Element{el}
	case []*Record:
		var out []*etree.Element
		for _, r := range t {
			out = append(out, encodeValue(name, prefix, r)...)
		}
		return out
	case []any:
		var out []*etree.Element
		for _, item := range t {
			out = append(out, encodeValue(name, prefix, item)...)
		}
		return out
	case []string:
		out := make([]*etree.Element, 0, len(t))
		for _, s := range t {
			out = append(out, soap.Text(name, s))
		}
		return out
	case []CustomField:
		return []*etree.Element{encodeCustomFieldList(name, NewCustomFieldList(t))}
	case CustomFieldList:
		return []*etree.Element{encodeCustomFieldList(name, t)}
	default:
		return []*etree.Element{soap.Text(name, fmt.Sprint(t))}
	}
}

func encodeCustomFieldList(name string, list CustomFieldList) *etree.Element {
	el := soap.New(name)
	for _, f := range list {
		cf := el.CreateElement(core("customField"))
		cf.CreateAttr("xsi:type", f.Type.QualifiedName())
		if f.ScriptID != "" {
			cf.CreateAttr("scriptId", f.ScriptID)
		}
		if f.InternalID != "" {
			cf.CreateAttr("internalId", f.InternalID)
		}

		if ref, ok := f.Value.(RecordRef); ok && f.Kind == CustomFieldSelect {
			setRefAttrs(cf.CreateElement(core("value")), ref)
			continue
		}
		for _, c := range encodeValue(core("value"), NSPlatformCore.Prefix, f.Value) {
			cf.AddChild(c)
		}
	}
	return el
}

// --- decoding ---

func atoi(s string) int {
	n, _ := strconv.Atoi(strings.TrimSpace(s))
	return n
}

func decodeStatus(el *etree.Element) Status {
	var s Status
	if v, ok := soap.Attr(el, "isSuccess"); ok {
		s.IsSuccess = v == "true"
	}
	for _, d := range soap.Children(el, "statusDetail") {
		typ, _ := soap.Attr(d, "type")
		s.Details = append(s.Details, StatusDetail{
			Type:    typ,
			Code:    soap.ChildText(d, "code"),
			Message: soap.ChildText(d, "message"),
		})
	}
	return s
}

func decodeReadResponse(el *etree.Element) ReadResponse {
	resp := ReadResponse{Status: decodeStatus(soap.Child(el, "status"))}
	if rec := soap.Child(el, "record"); rec != nil {
		resp.Record = decodeRecord(rec)
	}
	return resp
}

func decodeWriteResponse(el *etree.Element) WriteResponse {
	resp := WriteResponse{Status: decodeStatus(soap.Child(el, "status"))}
	if ref := soap.Child(el, "baseRef"); ref != nil {
		resp.BaseRef = decodeRef(ref)
	}
	return resp
}

func decodeRef(el *etree.Element) *RecordRef {
	ref := &RecordRef{Name: soap.ChildText(el, "name")}
	ref.Type, _ = soap.Attr(el, "type")
	ref.InternalID, _ = soap.Attr(el, "internalId")
	ref.ExternalID, _ = soap.Attr(el, "externalId")
	return ref
}

func decodeSearchResult(el *etree.Element) *SearchResult {
	return &SearchResult{
		Status:       decodeStatus(soap.Child(el, "status")),
		TotalRecords: atoi(soap.ChildText(el, "totalRecords")),
		PageSize:     atoi(soap.ChildText(el, "pageSize")),
		TotalPages:   atoi(soap.ChildText(el, "totalPages")),
		PageIndex:    atoi(soap.ChildText(el, "pageIndex")),
		SearchID:     soap.ChildText(el, "searchId"),
		Records:      decodeRecordList(soap.Child(el, "recordList")),
	}
}

func decodeRecordList(el *etree.Element) []*Record {
	rows := soap.Children(el, "record")
	records := make([]*Record, 0, len(rows))
	for _, r := range rows {
		records = append(records, decodeRecord(r))
	}
	return records
}

// dataAttrs returns attributes other than namespace declarations and
// xsi:* schema hints.
func dataAttrs(el *etree.Element) []Field {
	var out []Field
	for _, a := range el.Attr {
		if a.Space != "" || a.Key == "xmlns" {
			continue
		}
		out = append(out, Field{a.Key, a.Value})
	}
	return out
}

// decodeRecord converts an element into a record: attributes first, then
// children in document order. Repeated children, and every child of an
// element whose name ends in "List", become []any. A customFieldList is
// decoded into a typed CustomFieldList so it can be written back.
func decodeRecord(el *etree.Element) *Record {
	rec := NewRecord(dataAttrs(el)...)
	forceList := strings.HasSuffix(el.Tag, "List")
	children := el.ChildElements()

	for _, c := range children {
		if c.Tag == "customFieldList" {
			rec.Set(c.Tag, decodeCustomFieldList(c))
			continue
		}

		v := decodeValue(c)
		existing, seen := rec.Get(c.Tag)
		switch {
		case !seen && forceList:
			rec.Set(c.Tag, []any{v})
		case !seen:
			rec.Set(c.Tag, v)
		default:
			if list, ok := existing.([]any); ok {
				rec.Set(c.Tag, append(list, v))
			} else {
				rec.Set(c.Tag, []any{existing, v})
			}
		}
	}

	if len(children) == 0 && el.Text() != "" {
		rec.Set("value", el.Text())
	}
	return rec
}

func decodeValue(el *etree.Element) any {
	if len(el.ChildElements()) == 0 && len(dataAttrs(el)) == 0 {
		return el.Text()
	}
	return decodeRecord(el)
}

var customFieldKinds = map[string]CustomFieldKind{
	CustomFieldString.TypeName():  CustomFieldString,
	CustomFieldDate.TypeName():    CustomFieldDate,
	CustomFieldBoolean.TypeName(): CustomFieldBoolean,
	CustomFieldSelect.TypeName():  CustomFieldSelect,
	CustomFieldDouble.TypeName():  CustomFieldDouble,
}

// decodeCustomFieldList reads each customField by its xsi:type. Reference
// types without a dedicated kind (long, multi-select) keep their schema type
// and a generically decoded value, so they encode back unchanged.
func decodeCustomFieldList(el *etree.Element) CustomFieldList {
	fields := soap.Children(el, "customField")
	list := make(CustomFieldList, 0, len(fields))
	for _, f := range fields {
		typeName := cmp.Or(soap.XSIType(f), CustomFieldString.TypeName())
		ref := CustomFieldRef{Type: TypeInfo{Namespace: NSPlatformCore, Name: typeName}}
		ref.ScriptID, _ = soap.Attr(f, "scriptId")
		ref.InternalID, _ = soap.Attr(f, "internalId")

		kind, known := customFieldKinds[typeName]
		values := soap.Children(f, "value")
		switch {
		case known:
			ref.Kind = kind
			if len(values) > 0 {
				ref.Value = decodeCustomValue(kind, values[0])
			}
		case len(values) == 1:
			ref.Value = decodeValue(values[0])
		case len(values) > 1:
			items := make([]any, 0, len(values))
			for _, v := range values {
				items = append(items, decodeValue(v))
			}
			ref.Value = items
		}
		list = append(list, ref)
	}
	return list
}

// decodeCustomValue converts a value element to the Go type the kind's
// constructor takes. Text that does not parse is kept as a string.
func decodeCustomValue(kind CustomFieldKind, el *etree.Element) any {
	text := strings.TrimSpace(el.Text())
	switch kind {
	case CustomFieldSelect:
		ref := RecordRef{Name: soap.ChildText(el, "name")}
		ref.InternalID, _ = soap.Attr(el, "internalId")
		ref.ExternalID, _ = soap.Attr(el, "externalId")
		return ref
	case CustomFieldBoolean:
		if b, err := strconv.ParseBool(text); err == nil {
			return b
		}
	case CustomFieldDouble:
		if f, err := strconv.ParseFloat(text, 64); err == nil {
			return f
		}
	case CustomFieldDate:
		if ts, err := time.Parse(time.RFC3339, text); err == nil {
			return ts
		}
	default:
		return el.Text()
	}
	return text
}
