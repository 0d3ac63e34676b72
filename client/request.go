package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io/ioutil"
	"net/http"
	"net/url"

	"github.com/pkg/errors"
)

// StatusError is returned for any non 2xx response
type StatusError struct {
	Code int
	Rid  uint64
	Msg  string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("timecode service: %d %s (rid %d)", e.Code, e.Msg, e.Rid)
}

// NotFound reports whether err is a 404 from the service
func NotFound(err error) bool {
	var se *StatusError
	return errors.As(err, &se) && se.Code == http.StatusNotFound
}

func (c *Client) getResource(ctx context.Context, result interface{}, path string, query url.Values) error {
	if len(query) > 0 {
		path += "?" + query.Encode()
	}
	return c.do(ctx, http.MethodGet, path, nil, result)
}

func (c *Client) postResource(ctx context.Context, resource interface{}, result interface{}, path string) error {
	return c.do(ctx, http.MethodPost, path, resource, result)
}

func (c *Client) removeResource(ctx context.Context, result interface{}, path string) error {
	return c.do(ctx, http.MethodDelete, path, nil, result)
}

func (c *Client) do(ctx context.Context, method string, path string, reqBody interface{}, result interface{}) error {
	c.ensure()

	body := new(bytes.Buffer)
	if reqBody != nil {
		if err := json.NewEncoder(body).Encode(reqBody); err != nil {
			return errors.Wrap(err, "encoding request")
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, c.Base.String()+path, body)
	if err != nil {
		return err
	}
	if reqBody != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.Client.Do(req)
	if err != nil {
		return errors.Wrapf(err, "%s %s", method, path)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		b, err := ioutil.ReadAll(resp.Body)
		if err != nil {
			return err
		}
		se := &StatusError{Code: resp.StatusCode, Msg: string(b)}
		var pe struct {
			Rid uint64 `json:"rid"`
			Msg string `json:"msg"`
		}
		if json.Unmarshal(b, &pe) == nil && pe.Msg != "" {
			se.Rid, se.Msg = pe.Rid, pe.Msg
		}
		return se
	}

	return errors.Wrapf(json.NewDecoder(resp.Body).Decode(result), "decoding %s %s", method, path)
}
