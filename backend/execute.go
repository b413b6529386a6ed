package backend

import (
	"context"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/pkg/errors"

	"github.com/tasiov/mantis-raydium/errs"
)

const (
	confirmPollInterval = 500 * time.Millisecond
	confirmMaxPolls     = 60
)

// Submit signs and sends one transaction. The blockhash is fetched here,
// immediately before signing, so pool-state queries earlier in the pipeline
// cannot leave a stale one behind. On failure a dry-run simulation is
// attempted purely to capture program logs; its outcome never replaces the
// original error.
func (c *Client) Submit(ctx context.Context, instructions []solana.Instruction, additionalSigners []solana.PrivateKey) (solana.Signature, error) {
	if len(instructions) == 0 {
		c.log.Info("no transaction sent")
		return solana.Signature{}, nil
	}

	recent, err := c.rpc.GetLatestBlockhash(ctx, rpc.CommitmentFinalized)
	if err != nil {
		return solana.Signature{}, errors.Wrapf(errs.ErrRPCClient, "get latest blockhash: %s", err)
	}

	tx, err := solana.NewTransaction(
		instructions,
		recent.Value.Blockhash,
		solana.TransactionPayer(c.payer.PublicKey()),
	)
	if err != nil {
		return solana.Signature{}, errors.Wrapf(errs.ErrRPCClient, "build transaction: %s", err)
	}

	signers := make(map[solana.PublicKey]*solana.PrivateKey, len(additionalSigners)+1)
	payerKey := c.payer
	signers[c.payer.PublicKey()] = &payerKey
	for i := range additionalSigners {
		signers[additionalSigners[i].PublicKey()] = &additionalSigners[i]
	}
	if _, err := tx.Sign(func(key solana.PublicKey) *solana.PrivateKey {
		return signers[key]
	}); err != nil {
		return solana.Signature{}, errors.Wrapf(errs.ErrRPCClient, "sign transaction: %s", err)
	}

	maxRetries := c.maxSendRetries
	sig, err := c.rpc.SendTransactionWithOpts(ctx, tx, rpc.TransactionOpts{
		SkipPreflight:       false,
		PreflightCommitment: rpc.CommitmentProcessed,
		MaxRetries:          &maxRetries,
	})
	if err != nil {
		c.simulateForDiagnostics(ctx, tx)
		return solana.Signature{}, errors.Wrapf(errs.ErrRPCClient, "send transaction: %s", err)
	}
	c.log.WithField("signature", sig).Debug("transaction sent")

	if err := c.awaitConfirmation(ctx, sig); err != nil {
		c.simulateForDiagnostics(ctx, tx)
		return sig, err
	}
	return sig, nil
}

func (c *Client) awaitConfirmation(ctx context.Context, sig solana.Signature) error {
	for i := 0; i < confirmMaxPolls; i++ {
		out, err := c.rpc.GetSignatureStatuses(ctx, true, sig)
		if err != nil {
			return errors.Wrapf(errs.ErrRPCClient, "get signature status: %s", err)
		}
		if len(out.Value) > 0 && out.Value[0] != nil {
			status := out.Value[0]
			if status.Err != nil {
				return errors.Wrapf(errs.ErrRPCClient, "transaction %s failed on chain: %v", sig, status.Err)
			}
			if status.ConfirmationStatus == rpc.ConfirmationStatusConfirmed ||
				status.ConfirmationStatus == rpc.ConfirmationStatusFinalized {
				c.log.WithFields(map[string]interface{}{
					"signature": sig,
					"status":    status.ConfirmationStatus,
				}).Debug("transaction confirmed")
				return nil
			}
		}
		select {
		case <-ctx.Done():
			return errors.Wrapf(errs.ErrRPCClient, "confirmation cancelled: %s", ctx.Err())
		case <-time.After(confirmPollInterval):
		}
	}
	return errors.Wrapf(errs.ErrRPCClient, "transaction %s not confirmed after %d polls", sig, confirmMaxPolls)
}

// simulateForDiagnostics replays the transaction as a dry run to capture
// program logs. Failures here are logged and swallowed.
func (c *Client) simulateForDiagnostics(ctx context.Context, tx *solana.Transaction) {
	out, err := c.rpc.SimulateTransactionWithOpts(ctx, tx, &rpc.SimulateTransactionOpts{
		SigVerify:              false,
		Commitment:             rpc.CommitmentConfirmed,
		ReplaceRecentBlockhash: true,
	})
	if err != nil {
		c.log.WithError(err).Warn("diagnostic simulation failed")
		return
	}
	if out.Value == nil {
		c.log.Warn("diagnostic simulation returned no result")
		return
	}
	if out.Value.Err != nil {
		c.log.WithField("err", out.Value.Err).Warn("diagnostic simulation error")
	}
	for _, line := range out.Value.Logs {
		c.log.WithField("log", line).Info("program log")
	}
}
