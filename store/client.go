// Package store is the resource client for the JSON data store: a thin
// wrapper over its generic CRUD endpoints (/users, /products). It does no
// retrying and no batching; every call is one bounded HTTP request.
package store

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

const defaultTimeout = 10 * time.Second

type Client struct {
	baseURL string
	http    *http.Client
	log     *logrus.Entry
}

// NewClient builds a client for the store at baseURL. timeout bounds every
// request; zero means the 10s default.
func NewClient(baseURL string, timeout time.Duration, log *logrus.Logger) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
		log:     log.WithField("component", "store"),
	}
}

// StatusError is a non-success answer from the store.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("store responded %d: %s", e.Code, e.Body)
}

// ErrConflict is returned when a conditional write is rejected because the
// record changed since it was read (HTTP 412).
var ErrConflict = errors.New("record changed since it was read")

// IsNotFound reports whether err is a 404 from the store.
func IsNotFound(err error) bool {
	var se *StatusError
	return errors.As(err, &se) && se.Code == http.StatusNotFound
}

// do issues a single JSON request. body and out may be nil. ifMatch, when
// non-empty, is sent as If-Match so the store can refuse a lost update; the
// returned string is the ETag of the response, if the store sent one.
func (c *Client) do(ctx context.Context, method, path, ifMatch string, body, out interface{}) (string, error) {
	var payload io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return "", errors.Wrap(err, "encode request body")
		}
		payload = bytes.NewBuffer(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, payload)
	if err != nil {
		return "", errors.Wrap(err, "build request")
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if ifMatch != "" {
		req.Header.Set("If-Match", ifMatch)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return "", errors.Wrapf(err, "%s %s", method, path)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusPreconditionFailed {
		return "", errors.Wrapf(ErrConflict, "%s %s", method, path)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		c.log.WithFields(logrus.Fields{
			"method": method,
			"path":   path,
			"code":   resp.StatusCode,
		}).Warn("store request failed")
		return "", &StatusError{Code: resp.StatusCode, Body: string(raw)}
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return "", errors.Wrapf(err, "decode %s %s response", method, path)
		}
	}
	return resp.Header.Get("ETag"), nil
}

func (c *Client) get(ctx context.Context, path string, out interface{}) (string, error) {
	return c.do(ctx, http.MethodGet, path, "", nil, out)
}

func (c *Client) post(ctx context.Context, path string, body, out interface{}) error {
	_, err := c.do(ctx, http.MethodPost, path, "", body, out)
	return err
}

func (c *Client) put(ctx context.Context, path, ifMatch string, body interface{}) error {
	_, err := c.do(ctx, http.MethodPut, path, ifMatch, body, nil)
	return err
}

func (c *Client) patch(ctx context.Context, path, ifMatch string, body interface{}) error {
	_, err := c.do(ctx, http.MethodPatch, path, ifMatch, body, nil)
	return err
}

func (c *Client) delete(ctx context.Context, path string) error {
	_, err := c.do(ctx, http.MethodDelete, path, "", nil, nil)
	return err
}
