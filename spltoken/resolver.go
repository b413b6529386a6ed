// Package spltoken resolves the token accounts a liquidity operation needs:
// which account holds the operator's balance of a mint, the instructions to
// create or fund it, and the teardown to run afterwards. Wrapped SOL gets a
// single-use account funded with rent plus the needed amount; every other
// mint resolves to the owner's associated token account.
package spltoken

import (
	"context"

	"github.com/gagliardetto/solana-go"
	ata "github.com/gagliardetto/solana-go/programs/associated-token-account"
	"github.com/gagliardetto/solana-go/programs/system"
	"github.com/gagliardetto/solana-go/programs/token"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/tasiov/mantis-raydium/errs"
)

// feeEstimateLamports is budgeted on top of rent when checking that the
// payer can fund a wrapped-SOL account (base fee for payer plus the
// ephemeral signer).
const feeEstimateLamports = 10_000

// Side says whether the account feeds the operation or receives from it.
type Side int

const (
	SideIn Side = iota
	SideOut
)

// ChainState is the read-only chain access the resolver needs.
type ChainState interface {
	// AccountInfo returns nil with no error when the account does not exist.
	AccountInfo(ctx context.Context, key solana.PublicKey) (*rpc.Account, error)
	Balance(ctx context.Context, key solana.PublicKey) (uint64, error)
	MinimumRent(ctx context.Context, dataSize uint64) (uint64, error)
}

type ResolveParams struct {
	Side   Side
	Amount uint64
	Mint   solana.PublicKey
	// TokenAccount overrides resolution with an explicit account.
	TokenAccount *solana.PublicKey
	// BypassAssociatedCheck skips the existence lookup and assumes the
	// associated account is usable as-is.
	BypassAssociatedCheck bool
	// SkipCloseAccount keeps a wrapped-SOL account open after the operation.
	SkipCloseAccount bool
	// CheckAssociatedOwner verifies an existing associated account is owned
	// by the signer and scoped to the mint before reusing it.
	CheckAssociatedOwner bool
}

// ResolvedAccount is consumed immediately when the final instruction list is
// assembled; it is never persisted.
type ResolvedAccount struct {
	Address           solana.PublicKey
	StartInstructions []solana.Instruction
	EndInstructions   []solana.Instruction
	AdditionalSigners []solana.PrivateKey
}

type Resolver struct {
	chain ChainState
	owner solana.PublicKey
	log   *logrus.Entry
}

func NewResolver(chain ChainState, owner solana.PublicKey, log *logrus.Entry) *Resolver {
	return &Resolver{chain: chain, owner: owner, log: log}
}

// Resolve returns the account to use for the given mint and role.
func (r *Resolver) Resolve(ctx context.Context, params ResolveParams) (*ResolvedAccount, error) {
	if params.Side == SideOut {
		// Output accounts receive a brand-new balance; the amount only
		// gates the funding check on the wrap path.
		params.Amount = 0
	}
	if params.TokenAccount != nil {
		return &ResolvedAccount{Address: *params.TokenAccount}, nil
	}
	if params.Mint.Equals(solana.WrappedSol) {
		return r.resolveWrappedSol(ctx, params)
	}
	return r.resolveAssociated(ctx, params)
}

func (r *Resolver) resolveWrappedSol(ctx context.Context, params ResolveParams) (*ResolvedAccount, error) {
	rent, err := r.chain.MinimumRent(ctx, TokenAccountSize)
	if err != nil {
		return nil, err
	}
	balance, err := r.chain.Balance(ctx, r.owner)
	if err != nil {
		return nil, err
	}
	required := params.Amount + rent + feeEstimateLamports
	if balance < required {
		return nil, errors.Wrapf(errs.ErrInsufficientBalance,
			"need %d lamports (amount %d + rent %d + fee %d), have %d",
			required, params.Amount, rent, feeEstimateLamports, balance)
	}

	wrapAccount := solana.NewWallet()
	r.log.WithFields(logrus.Fields{
		"account":  wrapAccount.PublicKey(),
		"lamports": rent + params.Amount,
	}).Debug("creating wrapped SOL account")

	resolved := &ResolvedAccount{
		Address: wrapAccount.PublicKey(),
		StartInstructions: []solana.Instruction{
			system.NewCreateAccountInstruction(
				rent+params.Amount,
				TokenAccountSize,
				solana.TokenProgramID,
				r.owner,
				wrapAccount.PublicKey(),
			).Build(),
			token.NewInitializeAccountInstruction(
				wrapAccount.PublicKey(),
				params.Mint,
				r.owner,
				solana.SysVarRentPubkey,
			).Build(),
		},
		AdditionalSigners: []solana.PrivateKey{wrapAccount.PrivateKey},
	}
	if !params.SkipCloseAccount {
		resolved.EndInstructions = append(resolved.EndInstructions,
			token.NewCloseAccountInstruction(
				wrapAccount.PublicKey(),
				r.owner,
				r.owner,
				nil,
			).Build(),
		)
	}
	return resolved, nil
}

func (r *Resolver) resolveAssociated(ctx context.Context, params ResolveParams) (*ResolvedAccount, error) {
	address, _, err := solana.FindAssociatedTokenAddress(r.owner, params.Mint)
	if err != nil {
		return nil, errors.Wrapf(errs.ErrRPCClient, "derive associated account for mint %s: %s", params.Mint, err)
	}
	resolved := &ResolvedAccount{Address: address}
	if params.BypassAssociatedCheck {
		return resolved, nil
	}

	account, err := r.chain.AccountInfo(ctx, address)
	if err != nil {
		return nil, err
	}
	if account == nil {
		resolved.StartInstructions = append(resolved.StartInstructions,
			ata.NewCreateInstruction(r.owner, r.owner, params.Mint).Build(),
		)
		return resolved, nil
	}

	if params.CheckAssociatedOwner {
		data := account.Data.GetBinary()
		if len(data) != TokenAccountSize {
			return nil, errors.Wrapf(errs.ErrInvalidTokenAccount,
				"account %s has size %d, want %d", address, len(data), TokenAccountSize)
		}
		layout := AccountLayout{}
		if err := layout.unpack(data); err != nil {
			return nil, errors.Wrapf(errs.ErrInvalidTokenAccount, "account %s: %s", address, err)
		}
		if !layout.Mint.Equals(params.Mint) || !layout.Owner.Equals(r.owner) {
			return nil, errors.Wrapf(errs.ErrInvalidTokenAccount,
				"account %s is mint %s owner %s, want mint %s owner %s",
				address, layout.Mint, layout.Owner, params.Mint, r.owner)
		}
	}
	return resolved, nil
}
