package zoom

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

// pageSize is the page size requested on every listing call; Zoom caps chat
// listing endpoints at 50.
const pageSize = 50

// DefaultMaxPages bounds pagination so a defective next_page_token cycle on
// the Zoom side cannot loop forever.
const DefaultMaxPages = 10

// PageOptions customizes a CollectAll call.
type PageOptions struct {
	// Query parameters applied to every page.
	Query url.Values
	// ResultKey names the response field holding the item array. When empty
	// the per-endpoint schema is consulted, then the array heuristic.
	ResultKey string
	// MaxPages is the pagination safety bound (default DefaultMaxPages).
	MaxPages int
}

// resultKeyByPath maps known listing endpoints to their item array field.
// Zoom does not use one consistent field name across endpoints, so an
// explicit schema beats guessing.
var resultKeyByPath = map[string]string{
	"/chat/users/me/channels": "channels",
	"/chat/users/me/messages": "messages",
	"/chat/users/me/contacts": "contacts",
	"/contacts":               "contacts",
}

// resultKeyForPath resolves the item array field for a listing endpoint.
// Returns "" when the endpoint is not in the schema.
func resultKeyForPath(path string) string {
	if key, ok := resultKeyByPath[path]; ok {
		return key
	}
	// Member listings embed a channel ID in the path.
	if strings.HasSuffix(path, "/members") {
		return "members"
	}
	return ""
}

// pagingFields are response bookkeeping keys that can hold arrays but never
// the result items, excluded from the fallback heuristic.
var pagingFields = map[string]bool{
	"page_size":       true,
	"total_records":   true,
	"next_page_token": true,
}

// findResultItems locates the item array in a listing response: the
// explicit key first, then the first non-bookkeeping key whose value is an
// array. The heuristic is a documented fallback for endpoints missing from
// the schema; it returns nil when nothing matches.
func findResultItems(page map[string]any, key string) []any {
	if key != "" {
		items, _ := page[key].([]any)
		return items
	}
	for k, v := range page {
		if pagingFields[k] {
			continue
		}
		if items, ok := v.([]any); ok {
			return items
		}
	}
	return nil
}

// CollectAll drives Execute across every page of a listing endpoint and
// accumulates the items in response order. It stops when Zoom reports no
// further page token or when the page cap is reached, producing a finite,
// in-order result even against a token cycle.
func (c *Client) CollectAll(ctx context.Context, path string, opts *PageOptions) ([]any, error) {
	if opts == nil {
		opts = &PageOptions{}
	}
	maxPages := opts.MaxPages
	if maxPages <= 0 {
		maxPages = DefaultMaxPages
	}
	resultKey := opts.ResultKey
	if resultKey == "" {
		resultKey = resultKeyForPath(path)
	}

	var items []any
	nextPageToken := ""

	for page := 0; page < maxPages; page++ {
		query := url.Values{}
		for key, values := range opts.Query {
			query[key] = values
		}
		query.Set("page_size", strconv.Itoa(pageSize))
		if nextPageToken != "" {
			query.Set("next_page_token", nextPageToken)
		}

		resp, err := c.Execute(ctx, http.MethodGet, path, &RequestOptions{Query: query})
		if err != nil {
			return nil, err
		}

		items = append(items, findResultItems(resp, resultKey)...)

		nextPageToken, _ = resp["next_page_token"].(string)
		if nextPageToken == "" {
			break
		}
	}

	return items, nil
}
