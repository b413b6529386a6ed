// Package raydium encodes liquidity instructions for the Raydium AMM v4
// program. The account ordering and the read/write/signer flag per position
// are part of the program's wire contract; any deviation is rejected
// on-chain, not here.
package raydium

import (
	"encoding/binary"

	"github.com/gagliardetto/solana-go"
)

// Instruction discriminators of the AMM program.
const (
	addLiquidityOpcode    = 3
	removeLiquidityOpcode = 4
)

// FixedSide marks which deposit side the operator pinned; the other side is
// derived from the pool price.
type FixedSide int

const (
	FixedSideBase FixedSide = iota
	FixedSideQuote
)

func (s FixedSide) String() string {
	if s == FixedSideQuote {
		return "quote"
	}
	return "base"
}

// UserKeys are the operator-owned token accounts referenced by a liquidity
// instruction.
type UserKeys struct {
	BaseTokenAccount  solana.PublicKey
	QuoteTokenAccount solana.PublicKey
	LpTokenAccount    solana.PublicKey
	Owner             solana.PublicKey
}

type AddLiquidityParams struct {
	PoolKeys       *PoolKeys
	UserKeys       UserKeys
	BaseAmountIn   uint64
	QuoteAmountIn  uint64
	OtherAmountMin uint64
	FixedSide      FixedSide
}

// MakeAddLiquidityInstruction builds the deposit instruction.
// Payload: [3][base_amount_in u64][quote_amount_in u64][other_amount_min u64]
// [fixed_side u64], little-endian.
func MakeAddLiquidityInstruction(params AddLiquidityParams) solana.Instruction {
	data := make([]byte, 33)
	data[0] = addLiquidityOpcode
	binary.LittleEndian.PutUint64(data[1:], params.BaseAmountIn)
	binary.LittleEndian.PutUint64(data[9:], params.QuoteAmountIn)
	binary.LittleEndian.PutUint64(data[17:], params.OtherAmountMin)
	fixedSide := uint64(0)
	if params.FixedSide == FixedSideQuote {
		fixedSide = 1
	}
	binary.LittleEndian.PutUint64(data[25:], fixedSide)

	keys := params.PoolKeys
	accounts := []*solana.AccountMeta{
		{PublicKey: solana.TokenProgramID, IsSigner: false, IsWritable: false},
		{PublicKey: keys.ID, IsSigner: false, IsWritable: true},
		{PublicKey: keys.Authority, IsSigner: false, IsWritable: false},
		{PublicKey: keys.OpenOrders, IsSigner: false, IsWritable: false},
		{PublicKey: keys.TargetOrders, IsSigner: false, IsWritable: true},
		{PublicKey: keys.MintLp, IsSigner: false, IsWritable: true},
		{PublicKey: keys.VaultA, IsSigner: false, IsWritable: true},
		{PublicKey: keys.VaultB, IsSigner: false, IsWritable: true},
		{PublicKey: keys.MarketID, IsSigner: false, IsWritable: false},
		{PublicKey: params.UserKeys.BaseTokenAccount, IsSigner: false, IsWritable: true},
		{PublicKey: params.UserKeys.QuoteTokenAccount, IsSigner: false, IsWritable: true},
		{PublicKey: params.UserKeys.LpTokenAccount, IsSigner: false, IsWritable: true},
		{PublicKey: params.UserKeys.Owner, IsSigner: true, IsWritable: false},
		{PublicKey: keys.MarketEventQueue, IsSigner: false, IsWritable: false},
	}
	return solana.NewInstruction(keys.ProgramID, accounts, data)
}

type RemoveLiquidityParams struct {
	PoolKeys       *PoolKeys
	UserKeys       UserKeys
	LpAmount       uint64
	BaseAmountMin  uint64
	QuoteAmountMin uint64
}

// MakeRemoveLiquidityInstruction builds the withdrawal instruction.
// Payload: [4][lp_amount u64][base_amount_min u64][quote_amount_min u64],
// little-endian. The pool id fills the two version-placeholder positions.
func MakeRemoveLiquidityInstruction(params RemoveLiquidityParams) solana.Instruction {
	data := make([]byte, 25)
	data[0] = removeLiquidityOpcode
	binary.LittleEndian.PutUint64(data[1:], params.LpAmount)
	binary.LittleEndian.PutUint64(data[9:], params.BaseAmountMin)
	binary.LittleEndian.PutUint64(data[17:], params.QuoteAmountMin)

	keys := params.PoolKeys
	accounts := []*solana.AccountMeta{
		{PublicKey: solana.TokenProgramID, IsSigner: false, IsWritable: false},
		{PublicKey: keys.ID, IsSigner: false, IsWritable: true},
		{PublicKey: keys.Authority, IsSigner: false, IsWritable: false},
		{PublicKey: keys.OpenOrders, IsSigner: false, IsWritable: true},
		{PublicKey: keys.TargetOrders, IsSigner: false, IsWritable: true},
		{PublicKey: keys.MintLp, IsSigner: false, IsWritable: true},
		{PublicKey: keys.VaultA, IsSigner: false, IsWritable: true},
		{PublicKey: keys.VaultB, IsSigner: false, IsWritable: true},
		{PublicKey: keys.ID, IsSigner: false, IsWritable: false},
		{PublicKey: keys.ID, IsSigner: false, IsWritable: false},
		{PublicKey: keys.MarketProgramID, IsSigner: false, IsWritable: false},
		{PublicKey: keys.MarketID, IsSigner: false, IsWritable: true},
		{PublicKey: keys.MarketBaseVault, IsSigner: false, IsWritable: true},
		{PublicKey: keys.MarketQuoteVault, IsSigner: false, IsWritable: true},
		{PublicKey: keys.MarketAuthority, IsSigner: false, IsWritable: false},
		{PublicKey: params.UserKeys.LpTokenAccount, IsSigner: false, IsWritable: true},
		{PublicKey: params.UserKeys.BaseTokenAccount, IsSigner: false, IsWritable: true},
		{PublicKey: params.UserKeys.QuoteTokenAccount, IsSigner: false, IsWritable: true},
		{PublicKey: params.UserKeys.Owner, IsSigner: true, IsWritable: false},
		{PublicKey: keys.MarketEventQueue, IsSigner: false, IsWritable: true},
		{PublicKey: keys.MarketBids, IsSigner: false, IsWritable: true},
		{PublicKey: keys.MarketAsks, IsSigner: false, IsWritable: true},
	}
	return solana.NewInstruction(keys.ProgramID, accounts, data)
}
