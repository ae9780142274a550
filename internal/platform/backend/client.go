// Package backend is the gateway to the hosted data/auth/storage service.
// All reads and writes go through it: the Client speaks the service's REST
// dialect and normalizes its error codes into the shared taxonomy, and the
// Gateway wraps every call in a bounded retry loop.
package backend

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/divyaanshikaushik/Sahayak/internal/platform/errs"
)

const (
	restPath    = "/rest/v1"
	authPath    = "/auth/v1"
	storagePath = "/storage/v1"

	// Error codes the hosted service uses for the two cases that must
	// never be retried.
	codeNoRows          = "PGRST116"
	codeUniqueViolation = "23505"
)

// Client is a thin typed wrapper over the hosted service's REST interface.
type Client struct {
	http    *resty.Client
	anonKey string
}

func NewClient(baseURL, anonKey string) *Client {
	httpClient := resty.New().
		SetBaseURL(baseURL).
		SetHeader("apikey", anonKey).
		SetHeader("Content-Type", "application/json").
		SetTimeout(30 * time.Second)

	return &Client{http: httpClient, anonKey: anonKey}
}

// request builds a request authorized either with the caller's access token
// or, when none is supplied, the service anon key.
func (c *Client) request(ctx context.Context, token string) *resty.Request {
	if token == "" {
		token = c.anonKey
	}
	return c.http.R().
		SetContext(ctx).
		SetAuthToken(token)
}

// Filter is a single column predicate in the service's query dialect,
// e.g. {"doctor_id", "eq", id} or {"scheduled_for", "gte", ts}.
type Filter struct {
	Column string
	Op     string
	Value  string
}

// Query describes a read against a collection.
type Query struct {
	Select  string
	Filters []Filter
	Order   string
	Limit   int
}

func (q Query) apply(req *resty.Request) {
	if q.Select != "" {
		req.SetQueryParam("select", q.Select)
	} else {
		req.SetQueryParam("select", "*")
	}
	for _, f := range q.Filters {
		req.SetQueryParam(f.Column, fmt.Sprintf("%s.%s", f.Op, f.Value))
	}
	if q.Order != "" {
		req.SetQueryParam("order", q.Order)
	}
	if q.Limit > 0 {
		req.SetQueryParam("limit", fmt.Sprintf("%d", q.Limit))
	}
}

// Select reads rows from a collection into dest (a pointer to a slice).
func (c *Client) Select(ctx context.Context, token, table string, q Query, dest interface{}) error {
	op := "backend.select." + table
	req := c.request(ctx, token).SetResult(dest)
	q.apply(req)
	resp, err := req.Get(restPath + "/" + table)
	return c.classify(op, resp, err)
}

// SelectOne reads exactly one row. A missing row is a not-found error, not
// an empty result.
func (c *Client) SelectOne(ctx context.Context, token, table string, q Query, dest interface{}) error {
	op := "backend.select_one." + table
	req := c.request(ctx, token).
		SetHeader("Accept", "application/vnd.pgrst.object+json").
		SetResult(dest)
	q.apply(req)
	resp, err := req.Get(restPath + "/" + table)
	return c.classify(op, resp, err)
}

// Insert writes a row and reads the stored representation back into dest.
func (c *Client) Insert(ctx context.Context, token, table string, body, dest interface{}) error {
	op := "backend.insert." + table
	req := c.request(ctx, token).
		SetHeader("Prefer", "return=representation").
		SetHeader("Accept", "application/vnd.pgrst.object+json").
		SetBody(body)
	if dest != nil {
		req.SetResult(dest)
	}
	resp, err := req.Post(restPath + "/" + table)
	return c.classify(op, resp, err)
}

// Update patches the rows matched by the filters and reads one updated row
// back into dest.
func (c *Client) Update(ctx context.Context, token, table string, filters []Filter, body, dest interface{}) error {
	op := "backend.update." + table
	req := c.request(ctx, token).
		SetHeader("Prefer", "return=representation").
		SetHeader("Accept", "application/vnd.pgrst.object+json").
		SetBody(body)
	Query{Filters: filters}.apply(req)
	if dest != nil {
		req.SetResult(dest)
	}
	resp, err := req.Patch(restPath + "/" + table)
	return c.classify(op, resp, err)
}

// apiError is the error envelope the hosted service returns.
type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details"`
	// The auth endpoints use a different envelope.
	ErrorCode        string `json:"error_code"`
	ErrorDescription string `json:"error_description"`
	MsgField         string `json:"msg"`
}

func (e apiError) text() string {
	switch {
	case e.Message != "":
		return e.Message
	case e.ErrorDescription != "":
		return e.ErrorDescription
	case e.MsgField != "":
		return e.MsgField
	default:
		return "request failed"
	}
}

// classify turns a transport error or non-2xx response into a classified
// error. Not-found and unique-violation are terminal; everything else that
// went wrong server-side is transient and eligible for retry.
func (c *Client) classify(op string, resp *resty.Response, err error) error {
	if err != nil {
		return errs.Wrap(errs.KindTransient, op, err)
	}
	if resp.IsSuccess() {
		return nil
	}

	var body apiError
	_ = json.Unmarshal(resp.Body(), &body)

	switch {
	case body.Code == codeNoRows,
		resp.StatusCode() == http.StatusNotFound,
		resp.StatusCode() == http.StatusNotAcceptable:
		return errs.E(errs.KindNotFound, op, body.text())
	case body.Code == codeUniqueViolation,
		resp.StatusCode() == http.StatusConflict:
		return errs.E(errs.KindConflict, op, body.text())
	case resp.StatusCode() >= 400 && resp.StatusCode() < 500:
		// Bad credentials, malformed filters and the like; retrying
		// the same request cannot help.
		return errs.Errorf(errs.KindValidation, op, "%s (status %d)", body.text(), resp.StatusCode())
	default:
		return errs.Errorf(errs.KindTransient, op, "%s (status %d)", body.text(), resp.StatusCode())
	}
}
