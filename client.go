package netsuite

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/tphakala/go-netsuite/internal/auth"
	"github.com/tphakala/go-netsuite/internal/soap"
)

// Default configuration values.
const defaultTimeout = 60 * time.Second

// Client is the NetSuite SuiteTalk client. Each field serves one record type.
type Client struct {
	Accounts        RecordService
	Classifications RecordService
	Currencies      RecordService
	Customers       RecordService
	Departments     RecordService
	Employees       RecordService
	ExpenseReports  RecordService
	Invoices        RecordService
	JournalEntries  RecordService
	Locations       RecordService
	Subsidiaries    RecordService
	Terms           RecordService
	VendorBills     RecordService
	VendorPayments  RecordService
	Vendors         RecordService

	services map[string]RecordService
	endpoint string
}

// NewClient creates a new NetSuite client with the given options.
func NewClient(opts ...ClientOption) (*Client, error) {
	cfg := &clientConfig{
		timeout: defaultTimeout,
	}

	for _, opt := range opts {
		opt(cfg)
	}

	logger := cfg.logger
	if logger == nil {
		logger = zap.NewNop()
	}

	client := &Client{
		services: make(map[string]RecordService, len(serviceDefs)),
		endpoint: cfg.endpoint,
	}

	backend := cfg.backend
	if backend == nil {
		b, err := newDefaultBackend(cfg)
		if err != nil {
			return nil, err
		}
		client.endpoint = b.transport.Endpoint.String()
		backend = b
	}

	if cfg.retry != nil {
		backend = NewRetryBackend(backend, *cfg.retry, logger)
	}

	obs, err := newObserver(logger, cfg.registerer)
	if err != nil {
		return nil, err
	}
	backend = &observedBackend{inner: backend, obs: obs}

	for _, def := range serviceDefs {
		client.services[def.typeName] = newRecordService(def, backend, logger)
	}

	client.Accounts = client.services["Account"]
	client.Classifications = client.services["Classification"]
	client.Currencies = client.services["Currency"]
	client.Customers = client.services["Customer"]
	client.Departments = client.services["Department"]
	client.Employees = client.services["Employee"]
	client.ExpenseReports = client.services["ExpenseReport"]
	client.Invoices = client.services["Invoice"]
	client.JournalEntries = client.services["JournalEntry"]
	client.Locations = client.services["Location"]
	client.Subsidiaries = client.services["Subsidiary"]
	client.Terms = client.services["Term"]
	client.VendorBills = client.services["VendorBill"]
	client.VendorPayments = client.services["VendorPayment"]
	client.Vendors = client.services["Vendor"]

	return client, nil
}

func newDefaultBackend(cfg *clientConfig) (*soapBackend, error) {
	if cfg.account == "" {
		return nil, ErrNoAccount
	}

	creds := &auth.Credentials{
		Account:        cfg.account,
		ConsumerKey:    cfg.consumerKey,
		ConsumerSecret: cfg.consumerSecret,
		TokenKey:       cfg.tokenKey,
		TokenSecret:    cfg.tokenSecret,
	}
	if !creds.Valid() {
		return nil, ErrNoCredentials
	}

	httpClient := cfg.httpClient
	if httpClient == nil {
		httpClient = &http.Client{
			Timeout: cfg.timeout,
		}
	}

	endpoint := cfg.endpoint
	if endpoint == "" {
		endpoint = AccountEndpoint(cfg.account)
	}

	transport, err := soap.NewTransport(endpoint, creds, Namespaces(), httpClient)
	if err != nil {
		return nil, err
	}

	if cfg.userAgent != "" {
		transport.UserAgent = cfg.userAgent
	}

	return newSOAPBackend(transport), nil
}

// AccountEndpoint returns the account-specific SuiteTalk endpoint.
func AccountEndpoint(account string) string {
	host := strings.ToLower(strings.ReplaceAll(account, "_", "-"))
	return fmt.Sprintf("https://%s.suitetalk.api.netsuite.com/services/NetSuitePort_%s", host, APIVersion)
}

// Endpoint returns the SuiteTalk endpoint, or "" when a custom backend is used
// without WithEndpoint.
func (c *Client) Endpoint() string {
	return c.endpoint
}

// Records returns the service for a record type. Both the schema name
// ("VendorBill") and the record type ("vendorBill") are accepted.
func (c *Client) Records(typeName string) (RecordService, error) {
	if s, ok := c.services[schemaTypeName(typeName)]; ok {
		return s, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownType, typeName)
}

// RecordTypes returns the type names served by Client.Records, in
// declaration order.
func RecordTypes() []string {
	names := make([]string, 0, len(serviceDefs))
	for _, def := range serviceDefs {
		names = append(names, def.typeName)
	}
	return names
}
