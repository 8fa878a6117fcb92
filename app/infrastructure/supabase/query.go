package supabase

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// Query builds PostgREST filter, order and limit parameters.
type Query struct {
	values url.Values
	orders []string
}

func NewQuery() *Query {
	return &Query{values: url.Values{}}
}

func (q *Query) Select(columns string) *Query {
	q.values.Set("select", columns)
	return q
}

func (q *Query) Eq(column string, value any) *Query {
	q.values.Add(column, fmt.Sprintf("eq.%v", value))
	return q
}

func (q *Query) In(column string, values []string) *Query {
	q.values.Add(column, "in.("+strings.Join(values, ",")+")")
	return q
}

func (q *Query) IsNull(column string) *Query {
	q.values.Add(column, "is.null")
	return q
}

// Order appends an ordering term; terms apply in the order they were added.
func (q *Query) Order(column string, ascending bool, nullsLast bool) *Query {
	term := column + ".desc"
	if ascending {
		term = column + ".asc"
	}
	if nullsLast {
		term += ".nullslast"
	}
	q.orders = append(q.orders, term)
	return q
}

func (q *Query) Limit(n int) *Query {
	q.values.Set("limit", strconv.Itoa(n))
	return q
}

func (q *Query) Values() url.Values {
	out := url.Values{}
	for k, v := range q.values {
		out[k] = append([]string(nil), v...)
	}
	if len(q.orders) > 0 {
		out.Set("order", strings.Join(q.orders, ","))
	}
	return out
}
