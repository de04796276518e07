package client

import (
	"context"

	"go.uber.org/zap"
)

// PageInfo is the cursor block every paginated connection carries.
type PageInfo struct {
	EndCursor   string `json:"endCursor"`
	HasNextPage bool   `json:"hasNextPage"`
}

type edge[T any] struct {
	Node T `json:"node"`
}

// Connection models one page of a GraphQL connection. Most root fields use
// the edges/node form; a few return a bare nodes array. Both decode here.
type Connection[T any] struct {
	Edges    []edge[T] `json:"edges"`
	Nodes    []T       `json:"nodes"`
	Count    int       `json:"count"`
	PageInfo PageInfo  `json:"pageInfo"`
}

func (conn *Connection[T]) nodes() []T {
	if len(conn.Edges) > 0 {
		out := make([]T, 0, len(conn.Edges))
		for _, e := range conn.Edges {
			out = append(out, e.Node)
		}
		return out
	}
	return conn.Nodes
}

// QuerySpec names one paginated query: the document, its operation name, the
// initial variables, and the root field the connection lives under.
type QuerySpec struct {
	OperationName string
	Query         string
	Variables     map[string]any
	RootField     string
}

// Paginate follows the cursor until the server reports no further page and
// returns all nodes in server order. The caller's variables map is never
// mutated; the "after" cursor is carried on a private copy.
func Paginate[T any](ctx context.Context, c *Client, spec QuerySpec) ([]T, error) {
	variables := make(map[string]any, len(spec.Variables)+1)
	for k, v := range spec.Variables {
		variables[k] = v
	}
	if _, ok := variables["first"]; !ok {
		variables["first"] = c.pageSize
	}

	var all []T
	pages := 0
	for {
		var conn Connection[T]
		if err := c.Do(ctx, spec.OperationName, spec.Query, variables, spec.RootField, &conn); err != nil {
			return nil, err
		}
		pages++
		all = append(all, conn.nodes()...)

		if !conn.PageInfo.HasNextPage {
			break
		}
		variables["after"] = conn.PageInfo.EndCursor
	}

	zap.S().Named("client").Debugf("operation=%s pages=%d nodes=%d", spec.OperationName, pages, len(all))
	return all, nil
}
