// Package soap provides the low-level SuiteTalk SOAP transport.
package soap

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/beevik/etree"

	"github.com/tphakala/go-netsuite/internal/auth"
)

const (
	defaultHTTPTimeout = 60 * time.Second
	defaultMaxBodySize = 32 * 1024 * 1024 // 32MB
)

// Prefixes the passport header is written with. Both must be present in
// Transport.Namespaces.
const (
	CorePrefix     = "platformCore"
	MessagesPrefix = "platformMsgs"
)

// Transport handles HTTP communication with the SuiteTalk endpoint.
type Transport struct {
	Endpoint    *url.URL
	HTTPClient  *http.Client
	Credentials *auth.Credentials
	UserAgent   string

	// Namespaces maps prefix to URN; every prefix is declared on the envelope.
	Namespaces map[string]string
}

// NewTransport creates a Transport with the given configuration.
func NewTransport(endpoint string, creds *auth.Credentials, namespaces map[string]string, httpClient *http.Client) (*Transport, error) {
	u, err := url.Parse(strings.TrimSuffix(endpoint, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid endpoint: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid endpoint: %q is not absolute", endpoint)
	}

	if httpClient == nil {
		httpClient = &http.Client{
			Timeout: defaultHTTPTimeout,
		}
	}

	return &Transport{
		Endpoint:    u,
		HTTPClient:  httpClient,
		Credentials: creds,
		UserAgent:   "go-netsuite/1.0",
		Namespaces:  namespaces,
	}, nil
}

// Request is a single SOAP operation.
type Request struct {
	// Action is the operation name, sent as the SOAPAction header.
	Action  string
	Headers []*etree.Element
	Body    *etree.Element
}

// Response represents a raw SOAP response.
type Response struct {
	StatusCode int
	Body       []byte
	Headers    http.Header
}

// Do executes a SOAP request and returns the raw response.
func (t *Transport) Do(ctx context.Context, req *Request) (*Response, error) {
	httpReq, err := t.buildRequest(ctx, req)
	if err != nil {
		return nil, err
	}

	httpResp, err := t.HTTPClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = httpResp.Body.Close() }()

	// Limit response body size to prevent memory exhaustion
	limitedReader := io.LimitReader(httpResp.Body, defaultMaxBodySize+1)
	body, err := io.ReadAll(limitedReader)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	if int64(len(body)) > defaultMaxBodySize {
		return nil, fmt.Errorf("response too large: exceeds %d bytes", defaultMaxBodySize)
	}

	return &Response{
		StatusCode: httpResp.StatusCode,
		Body:       body,
		Headers:    httpResp.Header,
	}, nil
}

func (t *Transport) buildRequest(ctx context.Context, req *Request) (*http.Request, error) {
	if req.Body == nil {
		return nil, fmt.Errorf("request %q has no body", req.Action)
	}

	data, err := Marshal(t.envelope(req))
	if err != nil {
		return nil, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, t.Endpoint.String(), bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	httpReq.Header.Set("Content-Type", "text/xml; charset=utf-8")
	httpReq.Header.Set("Accept", "text/xml")
	httpReq.Header.Set("SOAPAction", req.Action)
	httpReq.Header.Set("User-Agent", t.UserAgent)

	return httpReq, nil
}

func (t *Transport) envelope(req *Request) *etree.Element {
	env := New("soapenv:Envelope")
	env.CreateAttr("xmlns:soapenv", EnvelopeNS)
	env.CreateAttr("xmlns:xsi", XSINS)
	env.CreateAttr("xmlns:xsd", XSDNS)

	prefixes := make([]string, 0, len(t.Namespaces))
	for p := range t.Namespaces {
		prefixes = append(prefixes, p)
	}
	slices.Sort(prefixes)
	for _, p := range prefixes {
		env.CreateAttr("xmlns:"+p, t.Namespaces[p])
	}

	header := env.CreateElement("soapenv:Header")
	if t.Credentials.Valid() {
		header.AddChild(PassportHeader(t.Credentials.NewPassport()))
	}
	for _, h := range req.Headers {
		header.AddChild(h)
	}

	env.AddChild(New("soapenv:Body", req.Body))
	return env
}

// PassportHeader renders a signed tokenPassport header element.
func PassportHeader(p auth.Passport) *etree.Element {
	core := func(name string) string { return QName(CorePrefix, name) }

	signature := Text(core("signature"), p.Signature)
	signature.CreateAttr("algorithm", p.Algorithm)

	return New(QName(MessagesPrefix, "tokenPassport"),
		Text(core("account"), p.Account),
		Text(core("consumerKey"), p.ConsumerKey),
		Text(core("token"), p.Token),
		Text(core("nonce"), p.Nonce),
		Text(core("timestamp"), strconv.FormatInt(p.Timestamp, 10)),
		signature,
	)
}

// Envelope is a decoded SOAP response envelope.
type Envelope struct {
	Header *etree.Element
	// Body is the first element inside soapenv:Body, nil for faults.
	Body  *etree.Element
	Fault *Fault
}

// Fault is a SOAP 1.1 fault.
type Fault struct {
	Code    string
	Message string
	// DetailCode is the NetSuite error code from the fault detail, if any.
	DetailCode string
	Detail     *etree.Element
}

func (f *Fault) Error() string {
	if f.DetailCode != "" {
		return fmt.Sprintf("soap fault %s: %s", f.DetailCode, f.Message)
	}
	return fmt.Sprintf("soap fault %s: %s", f.Code, f.Message)
}

// ParseEnvelope decodes a raw response body.
func ParseEnvelope(data []byte) (*Envelope, error) {
	root, err := Parse(data)
	if err != nil {
		return nil, err
	}
	if root.Tag != "Envelope" {
		return nil, fmt.Errorf("unexpected root element %q", root.Tag)
	}

	body := Child(root, "Body")
	if body == nil {
		return nil, fmt.Errorf("envelope has no body")
	}

	env := &Envelope{Header: Child(root, "Header")}
	if f := Child(body, "Fault"); f != nil {
		env.Fault = parseFault(f)
		return env, nil
	}
	children := body.ChildElements()
	if len(children) == 0 {
		return nil, fmt.Errorf("envelope body is empty")
	}
	env.Body = children[0]
	return env, nil
}

func parseFault(el *etree.Element) *Fault {
	f := &Fault{
		Code:    ChildText(el, "faultcode"),
		Message: ChildText(el, "faultstring"),
		Detail:  Child(el, "detail"),
	}
	if code := Find(f.Detail, "code"); code != nil {
		f.DetailCode = code.Text()
	}
	return f
}

// QName joins a prefix and local name.
func QName(prefix, local string) string {
	return prefix + ":" + local
}
