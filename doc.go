// Package netsuite provides a Go client for the NetSuite SuiteTalk SOAP
// web services API (version 2019_2).
//
// # Features
//
//   - One RecordService per record type (customers, invoices, vendor bills, ...)
//   - Ordered, schema-free Record values decoded from SOAP responses
//   - Go 1.23+ iterators for lazy, page-at-a-time search results
//   - Typed errors for precise error handling
//   - Token-based authentication, optional retries, zap logging and
//     prometheus metrics
//
// # Quick Start
//
//	client, err := netsuite.NewClient(
//	    netsuite.WithAccount("1234567_SB1"),
//	    netsuite.WithTokenAuth(consumerKey, consumerSecret, tokenKey, tokenSecret),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	vendor, err := client.Vendors.Get(ctx, netsuite.ByInternalID("1234"))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(vendor.String("companyName"))
//
// # Pagination
//
// Pages performs one remote call per page, only when the page is requested:
//
//	for page, err := range client.Invoices.Pages(ctx, 50) {
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    for _, inv := range page {
//	        fmt.Println(inv.String("tranId"))
//	    }
//	}
//
//	// Or fetch everything eagerly
//	all, err := client.Invoices.GetAll(ctx)
//
// # Writing records
//
// Post upserts a record keyed by externalId. Custom fields are built with
// kind-specific constructors:
//
//	data := netsuite.NewRecord(
//	    netsuite.Field{Name: "externalId", Value: "V-100"},
//	    netsuite.Field{Name: "companyName", Value: "Acme"},
//	    netsuite.Field{Name: "customFieldList", Value: []netsuite.CustomField{
//	        netsuite.BoolField("custentity_preferred", true),
//	    }},
//	)
//	ref, err := client.Vendors.Post(ctx, data)
//
// # Error Handling
//
// The package uses typed errors that can be inspected with errors.As:
//
//	_, err := client.Customers.Get(ctx, netsuite.ByExternalID("missing"))
//	var notFound *netsuite.NotFoundError
//	if errors.As(err, &notFound) {
//	    // Handle not found
//	}
package netsuite
