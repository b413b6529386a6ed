package app

import (
	"context"
	"fmt"

	"github.com/gagliardetto/solana-go"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/tasiov/mantis-raydium/amount"
	"github.com/tasiov/mantis-raydium/errs"
	"github.com/tasiov/mantis-raydium/raydium"
	"github.com/tasiov/mantis-raydium/spltoken"
	"github.com/tasiov/mantis-raydium/store"
)

type AddLiquidityParams struct {
	PoolID string
	// InputMint selects the fixed deposit side; must be one of the pool mints.
	InputMint string
	// InputAmount is the fixed-side deposit in display units.
	InputAmount float64
	SlippagePct float64
	// SkipCloseAccount keeps a wrapped-SOL deposit account open afterwards.
	SkipCloseAccount bool
}

// AddLiquidity runs one deposit end to end: fetch the pool snapshot, derive
// the paired amount from current reserves, resolve the three token accounts,
// confirm with the operator and submit.
func (f *Flow) AddLiquidity(ctx context.Context, params AddLiquidityParams) (*Result, error) {
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

	inputMint, err := solana.PublicKeyFromBase58(params.InputMint)
	if err != nil {
		return nil, errors.Wrapf(errs.ErrInvalidInput, "input mint %q: %s", params.InputMint, err)
	}

	var fixedSide raydium.FixedSide
	var inputInfo, otherInfo *tokenSide
	switch {
	case inputMint.Equals(keys.MintA):
		fixedSide = raydium.FixedSideBase
		inputInfo = &tokenSide{mint: keys.MintA, decimals: info.MintA.Decimals, reserve: info.MintAmountA, symbol: info.MintA.Symbol}
		otherInfo = &tokenSide{mint: keys.MintB, decimals: info.MintB.Decimals, reserve: info.MintAmountB, symbol: info.MintB.Symbol}
	case inputMint.Equals(keys.MintB):
		fixedSide = raydium.FixedSideQuote
		inputInfo = &tokenSide{mint: keys.MintB, decimals: info.MintB.Decimals, reserve: info.MintAmountB, symbol: info.MintB.Symbol}
		otherInfo = &tokenSide{mint: keys.MintA, decimals: info.MintA.Decimals, reserve: info.MintAmountA, symbol: info.MintA.Symbol}
	default:
		return nil, errors.Wrapf(errs.ErrInvalidInput,
			"mint %s is not part of pool %s (mints %s / %s)",
			inputMint, params.PoolID, keys.MintA, keys.MintB)
	}

	inputRaw, err := amount.ToRaw(params.InputAmount, inputInfo.decimals)
	if err != nil {
		return nil, err
	}
	inputReserve, err := amount.ToRaw(inputInfo.reserve, inputInfo.decimals)
	if err != nil {
		return nil, err
	}
	otherReserve, err := amount.ToRaw(otherInfo.reserve, otherInfo.decimals)
	if err != nil {
		return nil, err
	}

	otherRaw, otherMin, err := amount.ComputeAddLiquidity(inputReserve, otherReserve, inputRaw, params.SlippagePct)
	if err != nil {
		return nil, err
	}

	baseIn, quoteIn := inputRaw, otherRaw
	if fixedSide == raydium.FixedSideQuote {
		baseIn, quoteIn = otherRaw, inputRaw
	}

	f.log.WithFields(logrus.Fields{
		"pool":      params.PoolID,
		"fixedSide": fixedSide.String(),
		"baseIn":    baseIn,
		"quoteIn":   quoteIn,
		"otherMin":  otherMin,
	}).Info("computed deposit amounts")

	base, err := f.resolver.Resolve(ctx, spltoken.ResolveParams{
		Side:                 spltoken.SideIn,
		Amount:               baseIn,
		Mint:                 keys.MintA,
		SkipCloseAccount:     params.SkipCloseAccount,
		CheckAssociatedOwner: true,
	})
	if err != nil {
		return nil, err
	}
	quote, err := f.resolver.Resolve(ctx, spltoken.ResolveParams{
		Side:                 spltoken.SideIn,
		Amount:               quoteIn,
		Mint:                 keys.MintB,
		SkipCloseAccount:     params.SkipCloseAccount,
		CheckAssociatedOwner: true,
	})
	if err != nil {
		return nil, err
	}
	lp, err := f.resolver.Resolve(ctx, spltoken.ResolveParams{
		Side:                 spltoken.SideOut,
		Mint:                 keys.MintLp,
		CheckAssociatedOwner: true,
	})
	if err != nil {
		return nil, err
	}
	resolved := []*spltoken.ResolvedAccount{base, quote, lp}

	f.logBalance(ctx, info.MintA.Symbol, base.Address)
	f.logBalance(ctx, info.MintB.Symbol, quote.Address)

	message := fmt.Sprintf("add liquidity to pool %s: %s %s + %s %s (other side minimum %s %s)",
		params.PoolID,
		amount.ToDisplay(baseIn, info.MintA.Decimals), info.MintA.Symbol,
		amount.ToDisplay(quoteIn, info.MintB.Decimals), info.MintB.Symbol,
		amount.ToDisplay(otherMin, otherInfo.decimals), otherInfo.symbol)
	if !f.confirm(message) {
		f.log.Info("aborted by operator, nothing sent")
		return &Result{Aborted: true}, nil
	}

	operation := raydium.MakeAddLiquidityInstruction(raydium.AddLiquidityParams{
		PoolKeys: keys,
		UserKeys: raydium.UserKeys{
			BaseTokenAccount:  base.Address,
			QuoteTokenAccount: quote.Address,
			LpTokenAccount:    lp.Address,
			Owner:             f.owner,
		},
		BaseAmountIn:   baseIn,
		QuoteAmountIn:  quoteIn,
		OtherAmountMin: otherMin,
		FixedSide:      fixedSide,
	})
	instructions, signers := f.assemble(operation, resolved)
	signature, err := f.submitter.Submit(ctx, instructions, signers)
	if err != nil {
		return nil, err
	}
	f.log.WithField("signature", signature).Info("add liquidity sent")
	f.recordExecution(&store.Execution{
		Signature:   signature.String(),
		Pool:        params.PoolID,
		Operation:   "add",
		BaseAmount:  baseIn,
		QuoteAmount: quoteIn,
	})
	return &Result{Signature: signature, Sent: true}, nil
}

// tokenSide bundles what the deposit math needs to know about one pool side.
type tokenSide struct {
	mint     solana.PublicKey
	decimals int32
	reserve  float64
	symbol   string
}
