package builtwith

import (
	"context"
	"strings"

	"github.com/matzehuels/builtwith/pkg/errors"
)

// endpoint describes one sub-API.
type endpoint struct {
	name      string
	path      string
	subdomain string
	category  category
}

var (
	endpointFree          = endpoint{"free", "free1", "api", lookup}
	endpointDomain        = endpoint{"domain", "v14", "api", lookup}
	endpointLists         = endpoint{"lists", "lists5", "api", report}
	endpointRelationships = endpoint{"relationships", "rv1", "api", lookup}
	endpointKeywords      = endpoint{"keywords", "kw2", "api", lookup}
	endpointTrends        = endpoint{"trends", "trends/v6", "api", report}
	endpointCompanyToURL  = endpoint{"companyToURL", "ctu1", "ctu", lookup}
)

// DomainOptions are the optional flags of the domain API. Nil fields are not
// sent; use [Bool] to set one, including to an explicit false.
type DomainOptions struct {
	HideAll                 *bool // HIDETEXT: omit technology descriptions and links
	HideDescriptionAndLinks *bool // HIDEDL: omit descriptions and links only
	OnlyLiveTechnologies    *bool // LIVEONLY: only technologies currently detected
	NoMetaData              *bool // NOMETA: omit address, email and social metadata
	NoAttributeData         *bool // NOATTR: omit attribute data
}

// ListsOptions are the optional parameters of the lists API.
type ListsOptions struct {
	IncludeMetaData *bool   // META: include metadata for every site
	Offset          *string // OFFSET: continuation token from a previous page
	Since           *string // SINCE: only sites detected since this date
}

// TrendsOptions are the optional parameters of the trends API.
type TrendsOptions struct {
	Date *string // DATE: historical date for the totals
}

// CompanyToURLOptions are the optional parameters of the company-to-URL API.
type CompanyToURLOptions struct {
	TLD    *string // TLD: preferred top-level domain
	Amount *int    // AMOUNT: number of domains to return
}

// Free looks up technology group counts for a domain with the free API.
func (c *Client) Free(ctx context.Context, lookupURL string) (*Result, error) {
	if err := errors.ValidateLookup("url", lookupURL); err != nil {
		return nil, err
	}
	return c.call(ctx, endpointFree, Params{{"LOOKUP", lookupURL}})
}

// Domain looks up the full technology profile of a domain. opts may be nil.
func (c *Client) Domain(ctx context.Context, lookupURL string, opts *DomainOptions) (*Result, error) {
	if err := errors.ValidateLookup("url", lookupURL); err != nil {
		return nil, err
	}
	if opts == nil {
		opts = &DomainOptions{}
	}
	return c.call(ctx, endpointDomain, Params{
		{"LOOKUP", lookupURL},
		{"HIDETEXT", opts.HideAll},
		{"HIDEDL", opts.HideDescriptionAndLinks},
		{"LIVEONLY", opts.OnlyLiveTechnologies},
		{"NOMETA", opts.NoMetaData},
		{"NOATTR", opts.NoAttributeData},
	})
}

// Lists fetches the sites using the given technologies. Several technologies
// are sent comma-separated. opts may be nil.
//
// With [FormatJSON], a body that is not valid JSON (the service reports some
// errors as plain text) is returned as text with Result.Fallback set, not as
// an error.
func (c *Client) Lists(ctx context.Context, technologies []string, opts *ListsOptions) (*Result, error) {
	if err := errors.ValidateLookups("technologies", technologies); err != nil {
		return nil, err
	}
	if opts == nil {
		opts = &ListsOptions{}
	}
	return c.call(ctx, endpointLists, Params{
		{"TECH", strings.Join(technologies, ",")},
		{"META", opts.IncludeMetaData},
		{"OFFSET", opts.Offset},
		{"SINCE", opts.Since},
	})
}

// Relationships looks up the domains related to a domain through shared
// identifiers.
func (c *Client) Relationships(ctx context.Context, lookupURL string) (*Result, error) {
	if err := errors.ValidateLookup("url", lookupURL); err != nil {
		return nil, err
	}
	return c.call(ctx, endpointRelationships, Params{{"LOOKUP", lookupURL}})
}

// Keywords looks up the keywords associated with a domain.
func (c *Client) Keywords(ctx context.Context, lookupURL string) (*Result, error) {
	if err := errors.ValidateLookup("url", lookupURL); err != nil {
		return nil, err
	}
	return c.call(ctx, endpointKeywords, Params{{"LOOKUP", lookupURL}})
}

// Trends fetches usage totals for a technology. opts may be nil.
//
// Like [Client.Lists], a malformed JSON body falls back to text.
func (c *Client) Trends(ctx context.Context, technology string, opts *TrendsOptions) (*Result, error) {
	if err := errors.ValidateLookup("technology", technology); err != nil {
		return nil, err
	}
	if opts == nil {
		opts = &TrendsOptions{}
	}
	return c.call(ctx, endpointTrends, Params{
		{"TECH", technology},
		{"DATE", opts.Date},
	})
}

// CompanyToURL finds the domains owned by a company. opts may be nil.
func (c *Client) CompanyToURL(ctx context.Context, companyName string, opts *CompanyToURLOptions) (*Result, error) {
	if err := errors.ValidateLookup("company name", companyName); err != nil {
		return nil, err
	}
	if opts == nil {
		opts = &CompanyToURLOptions{}
	}
	return c.call(ctx, endpointCompanyToURL, Params{
		{"COMPANY", companyName},
		{"TLD", opts.TLD},
		{"AMOUNT", opts.Amount},
	})
}
