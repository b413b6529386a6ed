package app

import (
	"context"
	"fmt"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/tasiov/mantis-raydium/amount"
	"github.com/tasiov/mantis-raydium/errs"
	"github.com/tasiov/mantis-raydium/raydium"
	"github.com/tasiov/mantis-raydium/spltoken"
	"github.com/tasiov/mantis-raydium/store"
)

type RemoveLiquidityParams struct {
	PoolID string
	// LpAmount is the LP balance to burn, in display units.
	LpAmount float64
	// BaseAmountMin and QuoteAmountMin floor the withdrawal per side, in
	// display units. They are forwarded verbatim to the program.
	BaseAmountMin  float64
	QuoteAmountMin float64
	SlippagePct    float64
	// SkipCloseAccount keeps a wrapped-SOL receiving account open afterwards.
	SkipCloseAccount bool
}

// RemoveLiquidity burns LP tokens against the pool and withdraws both sides
// to the operator's token accounts.
func (f *Flow) RemoveLiquidity(ctx context.Context, params RemoveLiquidityParams) (*Result, error) {
	if params.SlippagePct < 0 || params.SlippagePct >= 100 {
		return nil, errors.Wrapf(errs.ErrInvalidInput, "slippage %v%% out of range [0, 100)", params.SlippagePct)
	}

	info, err := f.fetcher.FetchPoolInfo(ctx, params.PoolID)
	if err != nil {
		return nil, err
	}
	rawKeys, err := f.fetcher.FetchPoolKeys(ctx, params.PoolID)
	if err != nil {
		return nil, err
	}
	keys, err := raydium.ParsePoolKeys(rawKeys)
	if err != nil {
		return nil, err
	}

	lpRaw, err := amount.ToRaw(params.LpAmount, info.LpMint.Decimals)
	if err != nil {
		return nil, err
	}
	if lpRaw == 0 {
		return nil, errors.Wrap(errs.ErrInvalidInput, "lp amount is zero")
	}
	baseMin, err := amount.ToRaw(params.BaseAmountMin, info.MintA.Decimals)
	if err != nil {
		return nil, err
	}
	quoteMin, err := amount.ToRaw(params.QuoteAmountMin, info.MintB.Decimals)
	if err != nil {
		return nil, err
	}

	f.log.WithFields(logrus.Fields{
		"pool":     params.PoolID,
		"lpAmount": lpRaw,
		"baseMin":  baseMin,
		"quoteMin": quoteMin,
	}).Info("computed withdrawal amounts")

	base, err := f.resolver.Resolve(ctx, spltoken.ResolveParams{
		Side:                 spltoken.SideOut,
		Mint:                 keys.MintA,
		SkipCloseAccount:     params.SkipCloseAccount,
		CheckAssociatedOwner: true,
	})
	if err != nil {
		return nil, err
	}
	quote, err := f.resolver.Resolve(ctx, spltoken.ResolveParams{
		Side:                 spltoken.SideOut,
		Mint:                 keys.MintB,
		SkipCloseAccount:     params.SkipCloseAccount,
		CheckAssociatedOwner: true,
	})
	if err != nil {
		return nil, err
	}
	lp, err := f.resolver.Resolve(ctx, spltoken.ResolveParams{
		Side:                 spltoken.SideIn,
		Amount:               lpRaw,
		Mint:                 keys.MintLp,
		CheckAssociatedOwner: true,
	})
	if err != nil {
		return nil, err
	}
	resolved := []*spltoken.ResolvedAccount{base, quote, lp}

	f.logBalance(ctx, info.LpMint.Symbol, lp.Address)

	message := fmt.Sprintf("remove liquidity from pool %s: burn %s %s (minimum %s %s + %s %s)",
		params.PoolID,
		amount.ToDisplay(lpRaw, info.LpMint.Decimals), info.LpMint.Symbol,
		amount.ToDisplay(baseMin, info.MintA.Decimals), info.MintA.Symbol,
		amount.ToDisplay(quoteMin, info.MintB.Decimals), info.MintB.Symbol)
	if !f.confirm(message) {
		f.log.Info("aborted by operator, nothing sent")
		return &Result{Aborted: true}, nil
	}

	operation := raydium.MakeRemoveLiquidityInstruction(raydium.RemoveLiquidityParams{
		PoolKeys: keys,
		UserKeys: raydium.UserKeys{
			BaseTokenAccount:  base.Address,
			QuoteTokenAccount: quote.Address,
			LpTokenAccount:    lp.Address,
			Owner:             f.owner,
		},
		LpAmount:       lpRaw,
		BaseAmountMin:  baseMin,
		QuoteAmountMin: quoteMin,
	})
	instructions, signers := f.assemble(operation, resolved)
	signature, err := f.submitter.Submit(ctx, instructions, signers)
	if err != nil {
		return nil, err
	}
	f.log.WithField("signature", signature).Info("remove liquidity sent")
	f.recordExecution(&store.Execution{
		Signature:   signature.String(),
		Pool:        params.PoolID,
		Operation:   "remove",
		BaseAmount:  baseMin,
		QuoteAmount: quoteMin,
		LpAmount:    lpRaw,
	})
	return &Result{Signature: signature, Sent: true}, nil
}
