package store

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"
)

// pageSize is the fixed page requested while draining a collection. The
// store caps a single list call, so ListAll and ListFiltered accumulate
// pages at increasing offsets until the server-reported total is reached.
const pageSize = 100

// DecodeFunc turns a raw document into a typed record. Implementations
// must validate shape and reject documents they cannot represent; the rest
// of the application only ever sees the typed form.
type DecodeFunc[T any] func(Document) (T, error)

// Collection is a typed accessor for one named collection. It is safe for
// concurrent use; independent collections share nothing beyond the Client.
type Collection[T any] struct {
	client *Client
	id     string
	decode DecodeFunc[T]
}

// NewCollection binds a Client and a collection id to a decoder.
func NewCollection[T any](c *Client, collectionID string, decode DecodeFunc[T]) *Collection[T] {
	return &Collection[T]{client: c, id: collectionID, decode: decode}
}

type listResponse struct {
	Total     int        `json:"total"`
	Documents []Document `json:"documents"`
}

// ListAll retrieves every document in the collection, in arrival order.
// The pagination drain blocks until complete; a caller abandoning the
// request can only cut it short through ctx.
func (col *Collection[T]) ListAll(ctx context.Context) ([]T, error) {
	return col.ListFiltered(ctx)
}

// ListFiltered retrieves every document matching the given predicates,
// merging the pagination queries into each page request.
func (col *Collection[T]) ListFiltered(ctx context.Context, queries ...Query) ([]T, error) {
	var out []T
	for offset := 0; ; offset += pageSize {
		page := append([]Query{}, queries...)
		page = append(page, limitQuery(pageSize), offsetQuery(offset))

		qv := url.Values{}
		for _, q := range page {
			qv.Add("queries[]", string(q))
		}

		var resp listResponse
		if err := col.client.do(ctx, http.MethodGet, col.client.documentsPath(col.id), qv, nil, &resp); err != nil {
			return nil, err
		}
		for _, doc := range resp.Documents {
			rec, err := col.decode(doc)
			if err != nil {
				return nil, fmt.Errorf("collection %s: %w", col.id, err)
			}
			out = append(out, rec)
		}
		if len(out) >= resp.Total || len(resp.Documents) == 0 {
			return out, nil
		}
	}
}

// ListByPeriod retrieves documents whose timestamp field falls inside the
// given calendar month ("2006-01"), newest first. The bounds are inclusive
// on both ends; filtering happens server-side so monthly views never drain
// the whole ledger.
func (col *Collection[T]) ListByPeriod(ctx context.Context, yearMonth, field string) ([]T, error) {
	start, err := time.Parse("2006-01", yearMonth)
	if err != nil {
		return nil, fmt.Errorf("bad period %q: %w", yearMonth, err)
	}
	end := start.AddDate(0, 1, 0).Add(-time.Millisecond)
	return col.ListFiltered(ctx,
		GreaterThanEqual(field, start.UTC().Format(time.RFC3339)),
		LessThanEqual(field, end.UTC().Format("2006-01-02T15:04:05.999Z07:00")),
		OrderDesc(field),
	)
}

// Get fetches one document by id and decodes it.
func (col *Collection[T]) Get(ctx context.Context, id string) (T, error) {
	var zero T
	var doc Document
	if err := col.client.do(ctx, http.MethodGet, col.client.documentPath(col.id, id), nil, nil, &doc); err != nil {
		return zero, err
	}
	rec, err := col.decode(doc)
	if err != nil {
		return zero, fmt.Errorf("collection %s: %w", col.id, err)
	}
	return rec, nil
}

// Create inserts one document with a freshly generated unique id and
// returns its envelope. One round trip, no retry.
func (col *Collection[T]) Create(ctx context.Context, fields map[string]any) (Document, error) {
	body := map[string]any{
		"documentId": uuid.NewString(),
		"data":       fields,
	}
	var doc Document
	if err := col.client.do(ctx, http.MethodPost, col.client.documentsPath(col.id), nil, body, &doc); err != nil {
		return Document{}, err
	}
	return doc, nil
}

// Update patches the named fields of one document, leaving the rest alone.
func (col *Collection[T]) Update(ctx context.Context, id string, partial map[string]any) error {
	body := map[string]any{"data": partial}
	return col.client.do(ctx, http.MethodPatch, col.client.documentPath(col.id, id), nil, body, nil)
}

// Remove deletes one document by id.
func (col *Collection[T]) Remove(ctx context.Context, id string) error {
	return col.client.do(ctx, http.MethodDelete, col.client.documentPath(col.id, id), nil, nil, nil)
}
