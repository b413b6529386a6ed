// Package backend wraps the chain RPC provider: account and balance reads,
// rent and blockhash lookups, and transaction submission with confirmation
// tracking and diagnostic simulation.
package backend

import (
	"context"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/tasiov/mantis-raydium/errs"
)

type Client struct {
	rpc            *rpc.Client
	payer          solana.PrivateKey
	maxSendRetries uint
	log            *logrus.Entry
}

func NewClient(endpoint string, payer solana.PrivateKey, maxSendRetries uint, log *logrus.Entry) *Client {
	return &Client{
		rpc:            rpc.New(endpoint),
		payer:          payer,
		maxSendRetries: maxSendRetries,
		log:            log,
	}
}

func (c *Client) Payer() solana.PublicKey {
	return c.payer.PublicKey()
}

// AccountInfo returns nil with no error when the account does not exist.
func (c *Client) AccountInfo(ctx context.Context, key solana.PublicKey) (*rpc.Account, error) {
	out, err := c.rpc.GetAccountInfo(ctx, key)
	if errors.Is(err, rpc.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrapf(errs.ErrRPCClient, "get account %s: %s", key, err)
	}
	if out == nil || out.Value == nil {
		return nil, nil
	}
	return out.Value, nil
}

// Balance returns the native lamport balance of an account.
func (c *Client) Balance(ctx context.Context, key solana.PublicKey) (uint64, error) {
	out, err := c.rpc.GetBalance(ctx, key, rpc.CommitmentConfirmed)
	if err != nil {
		return 0, errors.Wrapf(errs.ErrRPCClient, "get balance %s: %s", key, err)
	}
	return out.Value, nil
}

// TokenBalance returns the display-unit balance string of a token account.
func (c *Client) TokenBalance(ctx context.Context, account solana.PublicKey) (string, error) {
	out, err := c.rpc.GetTokenAccountBalance(ctx, account, rpc.CommitmentConfirmed)
	if err != nil {
		return "", errors.Wrapf(errs.ErrRPCClient, "get token balance %s: %s", account, err)
	}
	if out.Value == nil {
		return "", errors.Wrapf(errs.ErrRPCClient, "empty token balance for %s", account)
	}
	return out.Value.UiAmountString, nil
}

// MinimumRent returns the rent-exemption minimum for an account of the given
// data size.
func (c *Client) MinimumRent(ctx context.Context, dataSize uint64) (uint64, error) {
	lamports, err := c.rpc.GetMinimumBalanceForRentExemption(ctx, dataSize, rpc.CommitmentConfirmed)
	if err != nil {
		return 0, errors.Wrapf(errs.ErrRPCClient, "get rent exemption for size %d: %s", dataSize, err)
	}
	return lamports, nil
}
