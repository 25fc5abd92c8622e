// Package remote is a store that lives behind a small REST service, the
// shape of the hosted spreadsheet endpoint the entry form posts to:
//
//	GET    /regions                        list region names
//	POST   /regions                        duplicate {"template", "name"}
//	PUT    /regions/{name}/cells/{coord}   write {"value"}
//	GET    /regions/{name}/cells/{coord}   read
//	DELETE /regions/{name}                 delete
//
// Responses carry their payload under "data" and failures under "error".
package remote

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/pkg/errors"
	"gopkg.in/resty.v1"

	"github.com/materials-commons/mcsqa/internal/store"
)

// ErrAuth is returned when the service rejects the API key.
var ErrAuth = errors.New("authentication")

type Client struct {
	APIKey  string
	BaseURL string

	http *resty.Client
}

var (
	_ store.Store   = (*Client)(nil)
	_ store.Reader  = (*Client)(nil)
	_ store.Locator = (*Client)(nil)
)

func NewClient(baseURL, apiKey string) *Client {
	baseURL = strings.TrimRight(baseURL, "/")
	return &Client{
		APIKey:  apiKey,
		BaseURL: baseURL,
		http:    resty.New().SetHostURL(baseURL).SetTimeout(30 * time.Second),
	}
}

func (c *Client) r(ctx context.Context) *resty.Request {
	req := c.http.R().SetContext(ctx)
	if c.APIKey != "" {
		req.SetQueryParam("apikey", c.APIKey)
	}
	return req
}

func (c *Client) ListRegionNames(ctx context.Context) ([]string, error) {
	var result struct {
		Data []string `json:"data"`
	}

	p := "/regions"
	resp, err := c.r(ctx).SetResult(&result).Get(p)
	if err := c.getAPIError(p, resp, err); err != nil {
		return nil, store.Wrap(store.OpList, "", "", err)
	}

	return result.Data, nil
}

func (c *Client) DuplicateRegion(ctx context.Context, template, name string) (store.Region, error) {
	var result struct {
		Data struct {
			Name string `json:"name"`
		} `json:"data"`
	}

	body := struct {
		Template string `json:"template"`
		Name     string `json:"name"`
	}{
		Template: template,
		Name:     name,
	}

	p := "/regions"
	resp, err := c.r(ctx).SetResult(&result).SetBody(body).Post(p)
	if err := c.getAPIError(p, resp, err); err != nil {
		return store.Region{}, store.Wrap(store.OpDuplicate, name, "", err)
	}

	if result.Data.Name != "" {
		name = result.Data.Name
	}
	return store.Region{Name: name}, nil
}

func (c *Client) WriteCell(ctx context.Context, region store.Region, coord store.Coordinate, value interface{}) error {
	body := struct {
		Value interface{} `json:"value"`
	}{
		Value: value,
	}

	p := cellPath(region.Name, coord)
	resp, err := c.r(ctx).SetBody(body).Put(p)
	if err := c.getAPIError(p, resp, err); err != nil {
		return store.Wrap(store.OpWrite, region.Name, coord, err)
	}
	return nil
}

func (c *Client) DeleteRegion(ctx context.Context, region store.Region) error {
	p := regionPath(region.Name)
	resp, err := c.r(ctx).Delete(p)
	if err := c.getAPIError(p, resp, err); err != nil {
		return store.Wrap(store.OpDelete, region.Name, "", err)
	}
	return nil
}

func (c *Client) ReadCell(ctx context.Context, region store.Region, coord store.Coordinate) (string, error) {
	var result struct {
		Data struct {
			Value interface{} `json:"value"`
		} `json:"data"`
	}

	p := cellPath(region.Name, coord)
	resp, err := c.r(ctx).SetResult(&result).Get(p)
	if err := c.getAPIError(p, resp, err); err != nil {
		return "", store.Wrap(store.OpRead, region.Name, coord, err)
	}

	return store.FormatValue(result.Data.Value), nil
}

// Location is the URL of the region on the service.
func (c *Client) Location(region store.Region) string {
	return c.BaseURL + regionPath(region.Name)
}

func regionPath(name string) string {
	return "/regions/" + url.PathEscape(name)
}

func cellPath(name string, coord store.Coordinate) string {
	return regionPath(name) + "/cells/" + url.PathEscape(string(coord))
}

func (c *Client) getAPIError(p string, resp *resty.Response, err error) error {
	switch {
	case err != nil:
		return err
	case resp.StatusCode() == http.StatusUnauthorized:
		return ErrAuth
	case resp.StatusCode() > 299:
		return c.toErrorFromResponse(p, resp)
	default:
		return nil
	}
}

func (c *Client) toErrorFromResponse(p string, resp *resty.Response) error {
	var er struct {
		Error string `json:"error"`
	}

	if err := json.Unmarshal(resp.Body(), &er); err != nil || er.Error == "" {
		return errors.Errorf("remote '%s' (HTTP Status: %d)", p, resp.StatusCode())
	}

	return errors.Errorf("remote '%s' (HTTP Status: %d)- %s", p, resp.StatusCode(), er.Error)
}
