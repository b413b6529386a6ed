// Package api is the client for the pool index service (Raydium v3 API).
// The pipeline treats its responses as opaque read-only snapshots.
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/tasiov/mantis-raydium/errs"
)

const (
	poolInfoPath = "/pools/info/ids"
	poolKeysPath = "/pools/key/ids"
)

type Client struct {
	baseURL string
	http    *http.Client
	log     *logrus.Entry
}

func NewClient(baseURL string, log *logrus.Entry) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 30 * time.Second},
		log:     log,
	}
}

// FetchPoolInfo returns the economics snapshot for one pool id.
func (c *Client) FetchPoolInfo(ctx context.Context, poolID string) (*PoolInfo, error) {
	var resp Response[PoolInfo]
	if err := c.get(ctx, poolInfoPath, poolID, &resp); err != nil {
		return nil, err
	}
	if len(resp.Data) == 0 {
		return nil, errors.Wrapf(errs.ErrAPI, "no pool info for id %s", poolID)
	}
	return &resp.Data[0], nil
}

// FetchPoolKeys returns the on-chain address snapshot for one pool id.
func (c *Client) FetchPoolKeys(ctx context.Context, poolID string) (*PoolKeys, error) {
	var resp Response[PoolKeys]
	if err := c.get(ctx, poolKeysPath, poolID, &resp); err != nil {
		return nil, err
	}
	if len(resp.Data) == 0 {
		return nil, errors.Wrapf(errs.ErrAPI, "no pool keys for id %s", poolID)
	}
	return &resp.Data[0], nil
}

func (c *Client) get(ctx context.Context, path, poolID string, out interface{}) error {
	u := fmt.Sprintf("%s%s?ids=%s", c.baseURL, path, url.QueryEscape(poolID))
	c.log.WithField("url", u).Debug("requesting pool index")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return errors.Wrap(errs.ErrAPI, err.Error())
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return errors.Wrap(errs.ErrAPI, err.Error())
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.Wrap(errs.ErrAPI, err.Error())
	}
	if resp.StatusCode != http.StatusOK {
		return errors.Wrapf(errs.ErrAPI, "unexpected status %s", resp.Status)
	}
	c.log.WithField("body", string(body)).Debug("pool index response")

	if err := json.Unmarshal(body, out); err != nil {
		return errors.Wrapf(errs.ErrAPI, "parse error: %s", err)
	}
	return nil
}
