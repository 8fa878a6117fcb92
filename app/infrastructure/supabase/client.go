package supabase

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/time/rate"
	"resty.dev/v3"
	"vowboard.io/planner-gateway/app/utils/httpclients"
	"vowboard.io/planner-gateway/config/environment_variables"
)

type accessTokenKey struct{}

// WithAccessToken attaches the caller's access token so remote calls run
// under that user's row-level security policies.
func WithAccessToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, accessTokenKey{}, token)
}

func AccessTokenFromContext(ctx context.Context) string {
	token, _ := ctx.Value(accessTokenKey{}).(string)
	return token
}

type Config struct {
	BaseURL   string
	AnonKey   string
	RateLimit float64
}

// Client talks to the backend-as-a-service: table rows, RPC procedures and
// the password grant of the auth endpoint.
type Client struct {
	rest    *resty.Client
	anonKey string
	limiter *rate.Limiter
}

func NewClient() *Client {
	envs := environment_variables.EnvironmentVariables
	client := NewClientWithConfig(Config{
		BaseURL:   envs.SUPABASE_URL,
		AnonKey:   envs.SUPABASE_ANON_KEY,
		RateLimit: envs.SUPABASE_RATE_LIMIT,
	})
	if envs.SUPABASE_TIMEOUT > 0 {
		client.rest.SetTimeout(envs.SUPABASE_TIMEOUT)
	}
	return client
}

func NewClientWithConfig(cfg Config) *Client {
	rest := httpclients.NewClient("SupabaseClient")
	rest.SetBaseURL(strings.TrimRight(cfg.BaseURL, "/"))
	rest.SetHeader("apikey", cfg.AnonKey)
	rest.SetHeader("Content-Type", "application/json")

	limit := rate.Inf
	burst := 1
	if cfg.RateLimit > 0 {
		limit = rate.Limit(cfg.RateLimit)
		burst = int(cfg.RateLimit)
		if burst < 1 {
			burst = 1
		}
	}
	return &Client{
		rest:    rest,
		anonKey: cfg.AnonKey,
		limiter: rate.NewLimiter(limit, burst),
	}
}

func (c *Client) request(ctx context.Context) (*resty.Request, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, errors.Wrap(err, "supabase: rate limiter")
	}
	token := AccessTokenFromContext(ctx)
	if token == "" {
		token = c.anonKey
	}
	return c.rest.R().SetContext(ctx).SetAuthToken(token), nil
}

func (c *Client) execute(req *resty.Request, method, path string, remoteErr *Error) error {
	req.SetError(remoteErr)
	resp, err := req.Execute(method, path)
	if err != nil {
		return errors.Wrapf(err, "supabase: %s %s", method, path)
	}
	if resp.IsError() {
		remoteErr.Status = resp.StatusCode()
		return remoteErr
	}
	return nil
}

// Select reads rows of table into dest (a pointer to a slice).
func (c *Client) Select(ctx context.Context, table string, q *Query, dest any) error {
	req, err := c.request(ctx)
	if err != nil {
		return err
	}
	if q == nil {
		q = NewQuery()
	}
	req.SetQueryParamsFromValues(q.Values()).SetResult(dest)
	return c.execute(req, http.MethodGet, "/rest/v1/"+table, &Error{})
}

// Insert creates rows and decodes the created representation into dest.
func (c *Client) Insert(ctx context.Context, table string, body any, dest any) error {
	req, err := c.request(ctx)
	if err != nil {
		return err
	}
	req.SetHeader("Prefer", "return=representation").SetBody(body)
	if dest != nil {
		req.SetResult(dest)
	}
	return c.execute(req, http.MethodPost, "/rest/v1/"+table, &Error{})
}

// Update patches the rows matched by q and decodes them into dest.
func (c *Client) Update(ctx context.Context, table string, q *Query, body any, dest any) error {
	req, err := c.request(ctx)
	if err != nil {
		return err
	}
	req.SetQueryParamsFromValues(q.Values()).SetBody(body)
	if dest != nil {
		req.SetHeader("Prefer", "return=representation").SetResult(dest)
	} else {
		req.SetHeader("Prefer", "return=minimal")
	}
	return c.execute(req, http.MethodPatch, "/rest/v1/"+table, &Error{})
}

func (c *Client) Delete(ctx context.Context, table string, q *Query) error {
	req, err := c.request(ctx)
	if err != nil {
		return err
	}
	req.SetQueryParamsFromValues(q.Values())
	return c.execute(req, http.MethodDelete, "/rest/v1/"+table, &Error{})
}

// RPC calls a remote procedure with named parameters and returns the raw
// JSON result.
func (c *Client) RPC(ctx context.Context, function string, params any) (json.RawMessage, error) {
	req, err := c.request(ctx)
	if err != nil {
		return nil, err
	}
	if params == nil {
		params = map[string]any{}
	}
	var raw json.RawMessage
	req.SetBody(params).SetResult(&raw)
	if err := c.execute(req, http.MethodPost, "/rest/v1/rpc/"+function, &Error{}); err != nil {
		return nil, err
	}
	return raw, nil
}

// HasColumn checks whether table exposes column, without reading any row.
func (c *Client) HasColumn(ctx context.Context, table string, column string) (bool, error) {
	var rows []json.RawMessage
	err := c.Select(ctx, table, NewQuery().Select(column).Limit(0), &rows)
	if err == nil {
		return true, nil
	}
	if IsMissingColumn(err) {
		return false, nil
	}
	return false, err
}
