// Package apiclient is the typed client for the restaurant backend REST API.
//
// Every response is wrapped in the envelope {code, messages, data, meta}. The client
// unwraps data into the caller's type and turns non-2xx responses into *Error.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/sirupsen/logrus"
)

type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

type Envelope struct {
	Code     int             `json:"code"`
	Messages Messages        `json:"messages"`
	Data     json.RawMessage `json:"data"`
	Meta     *Meta           `json:"meta,omitempty"`
}

type Meta struct {
	CurrentPage int `json:"current_page"`
	PerPage     int `json:"per_page"`
	Total       int `json:"total"`
	LastPage    int `json:"last_page"`
}

// Client talks to the backend. The zero token is only valid for login and register;
// use WithToken to get a client bound to a signed-in user.
type Client struct {
	baseURL  string
	http     HTTPClient
	log      logrus.FieldLogger
	token    string
	language string
}

func New(baseURL string, httpClient HTTPClient, log logrus.FieldLogger) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    httpClient,
		log:     log.WithField("component", "apiclient"),
	}
}

// WithToken returns a copy of the client that authenticates as the given bearer token
// and asks the backend for the given language.
func (c *Client) WithToken(token, language string) *Client {
	cp := *c
	cp.token = token
	cp.language = language
	return &cp
}

func (c *Client) newRequest(ctx context.Context, method, path string, query url.Values, body any) (*http.Request, error) {
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode %s %s: %w", method, path, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	if c.language != "" {
		req.Header.Set("Accept-Language", c.language)
	}
	return req, nil
}

func (c *Client) send(req *http.Request) (*http.Response, error) {
	resp, err := c.http.Do(req)
	if err != nil {
		c.log.WithFields(logrus.Fields{"method": req.Method, "path": req.URL.Path}).
			WithError(err).Warn("backend unreachable")
		return nil, &Error{Kind: KindNetwork, Err: err}
	}
	return resp, nil
}

// do performs a JSON call and decodes envelope.data into out when out is non-nil.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) (*Meta, error) {
	req, err := c.newRequest(ctx, method, path, query, body)
	if err != nil {
		return nil, err
	}

	resp, err := c.send(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &Error{Kind: KindNetwork, Status: resp.StatusCode, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, errorFromResponse(resp.StatusCode, raw)
	}

	if len(bytes.TrimSpace(raw)) == 0 {
		return nil, nil
	}

	var env Envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, &Error{Kind: KindServer, Status: resp.StatusCode, Err: fmt.Errorf("decode envelope: %w", err)}
	}

	if out != nil && len(env.Data) > 0 && string(env.Data) != "null" {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return nil, &Error{Kind: KindServer, Status: resp.StatusCode, Err: fmt.Errorf("decode data: %w", err)}
		}
	}

	return env.Meta, nil
}

// raw fetches a binary resource such as a QR image.
func (c *Client) raw(ctx context.Context, path string) ([]byte, string, error) {
	req, err := c.newRequest(ctx, http.MethodGet, path, nil, nil)
	if err != nil {
		return nil, "", err
	}
	req.Header.Set("Accept", "image/png, */*")

	resp, err := c.send(req)
	if err != nil {
		return nil, "", err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", &Error{Kind: KindNetwork, Status: resp.StatusCode, Err: err}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, "", errorFromResponse(resp.StatusCode, data)
	}
	return data, resp.Header.Get("Content-Type"), nil
}

func pageQuery(page int) url.Values {
	if page <= 0 {
		return nil
	}
	return url.Values{"page": {fmt.Sprint(page)}}
}
