// Package airtable implements store.Store on top of the Airtable REST
// API. Every operation is a single HTTP call with no retries; failures
// propagate to the caller untouched so the handler layer can translate
// them once.
package airtable

import (
	"context"
	"fmt"
	"net/url"
	"time"

	fastshot "github.com/opus-domini/fast-shot"

	"github.com/lbreton/showcase/store"
)

type (
	// Client talks to a single Airtable base.
	Client struct {
		http fastshot.ClientHttpMethods
	}

	wireRecord struct {
		ID     string       `json:"id"`
		Fields store.Fields `json:"fields"`
	}

	wireRecordList struct {
		Records []wireRecord `json:"records"`
		Offset  string       `json:"offset,omitempty"`
	}

	wireFields struct {
		Fields store.Fields `json:"fields"`
	}
)

const (
	defaultEndpoint = "https://api.airtable.com"

	// APIKeyEnvVar is where the serve command expects the API key.
	APIKeyEnvVar = "AIRTABLE_API_KEY"
)

// New builds a client for the given base using the default Airtable
// endpoint.
func New(baseID, apiKey string) *Client {
	return NewWithEndpoint(defaultEndpoint, baseID, apiKey)
}

// NewWithEndpoint is New with an explicit endpoint, used by tests to
// point the client at a local fake.
func NewWithEndpoint(endpoint, baseID, apiKey string) *Client {
	c := fastshot.NewClient(endpoint + "/v0/" + url.PathEscape(baseID))
	c.Auth().BearerToken(apiKey)
	return &Client{
		http: c.Config().SetTimeout(30*time.Second).
			Header().Add("Content-Type", "application/json").
			Build(),
	}
}

func (c *Client) Create(ctx context.Context, table string, fields store.Fields) (store.Record, error) {
	resp, err := c.http.POST("/" + url.PathEscape(table)).
		Context().Set(ctx).
		Body().AsJSON(wireFields{Fields: fields}).
		Send()
	if err != nil {
		return store.Record{}, fmt.Errorf("airtable: unable to create record in %v, cause %w", table, err)
	}
	defer resp.Body().Close()
	var rec wireRecord
	if err := decodeResponse(resp, table, "", &rec); err != nil {
		return store.Record{}, err
	}
	return store.Record{ID: rec.ID, Fields: rec.Fields}, nil
}

func (c *Client) Find(ctx context.Context, table, id string) (store.Record, error) {
	resp, err := c.http.GET("/" + url.PathEscape(table) + "/" + url.PathEscape(id)).
		Context().Set(ctx).
		Send()
	if err != nil {
		return store.Record{}, fmt.Errorf("airtable: unable to fetch record %v from %v, cause %w", id, table, err)
	}
	defer resp.Body().Close()
	var rec wireRecord
	if err := decodeResponse(resp, table, id, &rec); err != nil {
		return store.Record{}, err
	}
	return store.Record{ID: rec.ID, Fields: rec.Fields}, nil
}

func (c *Client) Update(ctx context.Context, table, id string, fields store.Fields) (store.Record, error) {
	resp, err := c.http.PATCH("/" + url.PathEscape(table) + "/" + url.PathEscape(id)).
		Context().Set(ctx).
		Body().AsJSON(wireFields{Fields: fields}).
		Send()
	if err != nil {
		return store.Record{}, fmt.Errorf("airtable: unable to update record %v in %v, cause %w", id, table, err)
	}
	defer resp.Body().Close()
	var rec wireRecord
	if err := decodeResponse(resp, table, id, &rec); err != nil {
		return store.Record{}, err
	}
	return store.Record{ID: rec.ID, Fields: rec.Fields}, nil
}

func (c *Client) Delete(ctx context.Context, table, id string) error {
	resp, err := c.http.DELETE("/" + url.PathEscape(table) + "/" + url.PathEscape(id)).
		Context().Set(ctx).
		Send()
	if err != nil {
		return fmt.Errorf("airtable: unable to delete record %v from %v, cause %w", id, table, err)
	}
	defer resp.Body().Close()
	var deleted struct {
		Deleted bool   `json:"deleted"`
		ID      string `json:"id"`
	}
	return decodeResponse(resp, table, id, &deleted)
}

func (c *Client) Select(ctx context.Context, table string, filter store.Filter) ([]store.Record, error) {
	formula, rendered := renderFormula(filter)
	var out []store.Record
	offset := ""
	for {
		req := c.http.GET("/" + url.PathEscape(table)).Context().Set(ctx)
		if formula != "" {
			req.Query().AddParam("filterByFormula", formula)
		}
		if offset != "" {
			req.Query().AddParam("offset", offset)
		}
		resp, err := req.Send()
		if err != nil {
			return nil, fmt.Errorf("airtable: unable to select records from %v, cause %w", table, err)
		}
		var page wireRecordList
		err = decodeResponse(resp, table, "", &page)
		resp.Body().Close()
		if err != nil {
			return nil, err
		}
		for _, rec := range page.Records {
			out = append(out, store.Record{ID: rec.ID, Fields: rec.Fields})
		}
		if page.Offset == "" {
			break
		}
		offset = page.Offset
	}
	if !rendered && filter != nil {
		filtered := out[:0]
		for _, rec := range out {
			if filter.Match(rec.Fields) {
				filtered = append(filtered, rec)
			}
		}
		out = filtered
	}
	return out, nil
}

func decodeResponse[T any](resp *fastshot.Response, table, id string, result *T) error {
	if resp.Status().Code() == 404 {
		return store.RecordNotFound{Table: table, ID: id}
	}
	if resp.Status().IsError() {
		body, err := resp.Body().AsString()
		if err != nil {
			body = fmt.Sprintf("unreadable body: %v", err)
		}
		return store.RequestFailed{Table: table, Status: resp.Status().Code(), Body: body}
	}
	if err := resp.Body().AsJSON(result); err != nil {
		return fmt.Errorf("airtable: unable to parse response for table %v, cause %w", table, err)
	}
	return nil
}
