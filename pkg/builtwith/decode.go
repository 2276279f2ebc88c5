package builtwith

import (
	"bytes"
	"context"
	"encoding/json"
	"io"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/builtwith/pkg/errors"
	"github.com/matzehuels/builtwith/pkg/observability"
)

// category groups endpoints by how they report failures.
type category int

const (
	// lookup endpoints answer with one structured document per request and
	// fail loudly on a malformed body.
	lookup category = iota

	// report endpoints are known to send plain-text error messages where
	// JSON was requested, so a malformed JSON body is returned as text.
	report
)

func (c category) String() string {
	if c == report {
		return "report"
	}
	return "lookup"
}

// Result is a decoded API response.
//
// Body always holds the raw response. Data holds the parsed JSON document
// (maps, slices, json.Number, strings, bools, nil) when the body was parsed;
// it is nil for text results.
type Result struct {
	Endpoint string // Client method that produced the result (e.g. "domain")
	Format   Format // Response format requested
	URL      string // Request URL with the API key redacted
	Body     []byte // Raw response body
	Data     any    // Parsed JSON document, nil for text results
	Fallback bool   // True if a report body failed to parse and was kept as text

	structured bool
}

// Text returns the raw response body as a string.
func (r *Result) Text() string { return string(r.Body) }

// Structured reports whether the body was parsed as JSON.
func (r *Result) Structured() bool { return r.structured }

// Decode unmarshals the body into v. It fails with a PARSE_ERROR for text
// results, since the body is then not known to be JSON.
func (r *Result) Decode(v any) error {
	if !r.structured {
		return errors.New(errors.ErrCodeParse, "%s: %s response is not structured", r.Endpoint, r.Format)
	}
	if err := json.Unmarshal(r.Body, v); err != nil {
		return errors.Wrap(errors.ErrCodeParse, err, "%s: decode response", r.Endpoint)
	}
	return nil
}

// request carries per-call context through decoding.
type request struct {
	endpoint endpoint
	url      string
	logger   *log.Logger
}

func (r *request) result(format Format, body []byte) *Result {
	return &Result{
		Endpoint: r.endpoint.name,
		Format:   format,
		URL:      r.url,
		Body:     body,
	}
}

// decoder turns a 2xx body into a Result according to the response format
// and the endpoint category. One decoder is chosen per client at construction.
type decoder interface {
	decode(ctx context.Context, req *request, body []byte) (*Result, error)
}

func newDecoder(format Format, logger *log.Logger, hooks observability.Hooks) decoder {
	switch format {
	case FormatXML:
		return xmlDecoder{}
	case FormatTXT:
		return txtDecoder{}
	default:
		return jsonDecoder{logger: logger, hooks: hooks}
	}
}

// xmlDecoder returns every body untouched. XML is never parsed.
type xmlDecoder struct{}

func (xmlDecoder) decode(_ context.Context, req *request, body []byte) (*Result, error) {
	return req.result(FormatXML, body), nil
}

// txtDecoder returns report bodies as text. Lookup endpoints have no text
// representation, so their bodies are still required to be JSON.
type txtDecoder struct{}

func (txtDecoder) decode(_ context.Context, req *request, body []byte) (*Result, error) {
	res := req.result(FormatTXT, body)
	if req.endpoint.category == report {
		return res, nil
	}
	return parseInto(res)
}

// jsonDecoder parses every body. Lookup endpoints fail on malformed JSON;
// report endpoints log a warning and fall back to the raw text.
type jsonDecoder struct {
	logger *log.Logger
	hooks  observability.Hooks
}

func (d jsonDecoder) decode(ctx context.Context, req *request, body []byte) (*Result, error) {
	res := req.result(FormatJSON, body)
	if req.endpoint.category == lookup {
		return parseInto(res)
	}

	data, err := parseJSON(body)
	if err != nil {
		req.logger.Warn("response is not valid JSON, returning raw text",
			"url", req.url,
			"body", excerpt(body, 120),
			"err", err,
		)
		d.hooks.OnFallback(ctx, req.endpoint.name, err)
		res.Fallback = true
		return res, nil
	}
	res.Data = data
	res.structured = true
	return res, nil
}

func parseInto(res *Result) (*Result, error) {
	data, err := parseJSON(res.Body)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeParse, err, "%s: response is not valid JSON", res.Endpoint)
	}
	res.Data = data
	res.structured = true
	return res, nil
}

// parseJSON strictly parses a single JSON document. Numbers are kept as
// json.Number so large identifiers survive.
func parseJSON(body []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		if err == io.EOF {
			return nil, io.ErrUnexpectedEOF
		}
		return nil, err
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, errTrailingData
	}
	return v, nil
}

var errTrailingData = errors.New(errors.ErrCodeParse, "unexpected data after JSON document")
