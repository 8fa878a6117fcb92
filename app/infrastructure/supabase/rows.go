package supabase

import (
	"bytes"
	"context"
	"encoding/json"

	"github.com/pkg/errors"
)

func SelectMany[T any](ctx context.Context, c *Client, table string, q *Query) ([]T, error) {
	rows := make([]T, 0)
	if err := c.Select(ctx, table, q, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

// SelectOne returns the first matching row, or nil when none matches.
func SelectOne[T any](ctx context.Context, c *Client, table string, q *Query) (*T, error) {
	rows, err := SelectMany[T](ctx, c, table, q.Limit(1))
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return &rows[0], nil
}

func InsertOne[T any](ctx context.Context, c *Client, table string, body any) (*T, error) {
	var rows []T
	if err := c.Insert(ctx, table, body, &rows); err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ErrEmptyResult
	}
	return &rows[0], nil
}

// UpdateOne patches the rows matched by q and returns the first canonical row.
func UpdateOne[T any](ctx context.Context, c *Client, table string, q *Query, body any) (*T, error) {
	var rows []T
	if err := c.Update(ctx, table, q, body, &rows); err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ErrEmptyResult
	}
	return &rows[0], nil
}

// RPCOne calls function and decodes a single record. Elevated procedures
// answer either with the record itself or with an array wrapping it.
func RPCOne[T any](ctx context.Context, c *Client, function string, params any) (*T, error) {
	raw, err := c.RPC(ctx, function, params)
	if err != nil {
		return nil, err
	}
	return decodeRecord[T](raw)
}

func RPCMany[T any](ctx context.Context, c *Client, function string, params any) ([]T, error) {
	raw, err := c.RPC(ctx, function, params)
	if err != nil {
		return nil, err
	}
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return []T{}, nil
	}
	if trimmed[0] != '[' {
		record, err := decodeRecord[T](trimmed)
		if err != nil {
			return nil, err
		}
		return []T{*record}, nil
	}
	rows := make([]T, 0)
	if err := json.Unmarshal(trimmed, &rows); err != nil {
		return nil, errors.Wrapf(err, "supabase: decode rpc %s", function)
	}
	return rows, nil
}

func decodeRecord[T any](raw json.RawMessage) (*T, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil, ErrEmptyResult
	}
	if trimmed[0] == '[' {
		var rows []T
		if err := json.Unmarshal(trimmed, &rows); err != nil {
			return nil, errors.Wrap(err, "supabase: decode record array")
		}
		if len(rows) == 0 {
			return nil, ErrEmptyResult
		}
		return &rows[0], nil
	}
	var record T
	if err := json.Unmarshal(trimmed, &record); err != nil {
		return nil, errors.Wrap(err, "supabase: decode record")
	}
	return &record, nil
}
