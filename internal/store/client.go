// Package store implements the client for the remote document store that
// backs every collection in the system. Each collection holds schemaless
// documents identified by an opaque id with a server-assigned creation
// timestamp; this package is the only code that speaks the store's REST
// protocol. Calls are single round trips and are never retried here;
// failure handling is the caller's concern.
package store

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// ErrNotFound is returned when a document lookup or mutation targets an id
// the store does not know.
var ErrNotFound = errors.New("document not found")

// Error carries the HTTP status and message of a failed store call.
type Error struct {
	Status  int    `json:"code"`
	Message string `json:"message"`
}

func (e *Error) Error() string {
	return fmt.Sprintf("store: %s (status %d)", e.Message, e.Status)
}

// Client holds the connection parameters for one project on the remote
// store. The zero value is not usable; construct with NewClient.
type Client struct {
	endpoint string // base URL, e.g. https://cloud.example.com/v1
	project  string
	key      string // server API key sent on every request
	database string
	httpc    *http.Client
}

// NewClient builds a Client for the given endpoint and project credentials.
// No connection is established up front; the first call surfaces any
// connectivity problem. Timeouts are whatever the default transport
// provides; the store contract specifies none.
func NewClient(endpoint, project, key, database string) *Client {
	return &Client{
		endpoint: endpoint,
		project:  project,
		key:      key,
		database: database,
		httpc:    &http.Client{},
	}
}

// Document is the envelope around one stored record. Fields keeps the raw
// object so typed decoders can parse exactly the attributes they know.
type Document struct {
	ID        string
	CreatedAt time.Time
	Fields    json.RawMessage
}

// UnmarshalJSON captures the whole object as Fields while lifting the
// store's reserved attributes out of it.
func (d *Document) UnmarshalJSON(data []byte) error {
	var meta struct {
		ID        string `json:"$id"`
		CreatedAt string `json:"$createdAt"`
	}
	if err := json.Unmarshal(data, &meta); err != nil {
		return err
	}
	d.ID = meta.ID
	if meta.CreatedAt != "" {
		ts, err := time.Parse(time.RFC3339Nano, meta.CreatedAt)
		if err != nil {
			return fmt.Errorf("document %s: bad $createdAt: %w", meta.ID, err)
		}
		d.CreatedAt = ts
	}
	d.Fields = append(d.Fields[:0], data...)
	return nil
}

// do performs one request against the store and decodes the JSON response
// into out when out is non-nil. Non-2xx responses are converted into
// *Error, with 404 additionally matching ErrNotFound via errors.Is.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	u := c.endpoint + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var rd io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		rd = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, rd)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Project", c.project)
	req.Header.Set("X-Key", c.key)

	resp, err := c.httpc.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		serr := &Error{Status: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
		var payload struct {
			Message string `json:"message"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&payload); err == nil && payload.Message != "" {
			serr.Message = payload.Message
		}
		if resp.StatusCode == http.StatusNotFound {
			return fmt.Errorf("%w: %s", ErrNotFound, serr.Message)
		}
		return serr
	}

	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func (c *Client) documentsPath(collection string) string {
	return fmt.Sprintf("/databases/%s/collections/%s/documents", c.database, collection)
}

func (c *Client) documentPath(collection, id string) string {
	return c.documentsPath(collection) + "/" + id
}
