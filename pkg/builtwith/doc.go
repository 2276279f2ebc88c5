// Package builtwith provides an HTTP client for the BuiltWith APIs.
//
// # Overview
//
// BuiltWith (https://builtwith.com) reports which web technologies a site
// uses. This package wraps seven of its sub-APIs:
//
//   - [Client.Free]: technology group counts for a domain
//   - [Client.Domain]: full technology profile of a domain
//   - [Client.Lists]: sites using a technology
//   - [Client.Relationships]: domains linked through shared identifiers
//   - [Client.Keywords]: keywords associated with a domain
//   - [Client.Trends]: usage totals for a technology
//   - [Client.CompanyToURL]: domains owned by a company
//
// # Usage
//
//	client, err := builtwith.New(apiKey, builtwith.FormatJSON)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	res, err := client.Domain(ctx, "example.com", &builtwith.DomainOptions{
//	    OnlyLiveTechnologies: builtwith.Bool(true),
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(res.Text())
//
// # Response Formats
//
// The format chosen at construction is requested for every call:
//
//   - [FormatXML]: bodies are returned as text and never parsed
//   - [FormatJSON]: bodies are parsed into [Result.Data]
//   - [FormatTXT]: only meaningful for the lists API; New logs a warning
//
// Lookup APIs (free, domain, relationships, keywords, company-to-URL) fail
// with a PARSE_ERROR if a JSON body is malformed. Report APIs (lists, trends)
// are known to answer some errors with plain text even when JSON was
// requested, so for them a malformed body is logged as a warning and returned
// as text with [Result.Fallback] set.
//
// # Errors
//
// All errors are [errors.Error] values from
// github.com/matzehuels/builtwith/pkg/errors with one of the codes
// CONFIGURATION, INVALID_INPUT, NETWORK_ERROR, HTTP_STATUS or PARSE_ERROR.
// The client never retries, caches or rate-limits; callers bound calls with
// their context.
//
// [errors.Error]: github.com/matzehuels/builtwith/pkg/errors.Error
package builtwith
