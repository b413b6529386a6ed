package raydium

import (
	"github.com/gagliardetto/solana-go"
	"github.com/pkg/errors"

	"github.com/tasiov/mantis-raydium/api"
	"github.com/tasiov/mantis-raydium/errs"
)

// PoolKeys is the parsed on-chain address set for one pool. Every field is
// validated up front so instruction construction never sees a malformed
// address.
type PoolKeys struct {
	ProgramID        solana.PublicKey
	ID               solana.PublicKey
	Authority        solana.PublicKey
	OpenOrders       solana.PublicKey
	TargetOrders     solana.PublicKey
	MintA            solana.PublicKey
	MintB            solana.PublicKey
	MintLp           solana.PublicKey
	VaultA           solana.PublicKey
	VaultB           solana.PublicKey
	MarketProgramID  solana.PublicKey
	MarketID         solana.PublicKey
	MarketAuthority  solana.PublicKey
	MarketBaseVault  solana.PublicKey
	MarketQuoteVault solana.PublicKey
	MarketBids       solana.PublicKey
	MarketAsks       solana.PublicKey
	MarketEventQueue solana.PublicKey
}

// ParsePoolKeys converts the index service snapshot into public keys.
func ParsePoolKeys(raw *api.PoolKeys) (*PoolKeys, error) {
	keys := &PoolKeys{}
	for _, field := range []struct {
		name string
		src  string
		dst  *solana.PublicKey
	}{
		{"programId", raw.ProgramID, &keys.ProgramID},
		{"id", raw.ID, &keys.ID},
		{"authority", raw.Authority, &keys.Authority},
		{"openOrders", raw.OpenOrders, &keys.OpenOrders},
		{"targetOrders", raw.TargetOrders, &keys.TargetOrders},
		{"mintA", raw.MintA.Address, &keys.MintA},
		{"mintB", raw.MintB.Address, &keys.MintB},
		{"mintLp", raw.MintLp.Address, &keys.MintLp},
		{"vault.A", raw.Vault.A, &keys.VaultA},
		{"vault.B", raw.Vault.B, &keys.VaultB},
		{"marketProgramId", raw.MarketProgramID, &keys.MarketProgramID},
		{"marketId", raw.MarketID, &keys.MarketID},
		{"marketAuthority", raw.MarketAuthority, &keys.MarketAuthority},
		{"marketBaseVault", raw.MarketBaseVault, &keys.MarketBaseVault},
		{"marketQuoteVault", raw.MarketQuoteVault, &keys.MarketQuoteVault},
		{"marketBids", raw.MarketBids, &keys.MarketBids},
		{"marketAsks", raw.MarketAsks, &keys.MarketAsks},
		{"marketEventQueue", raw.MarketEventQueue, &keys.MarketEventQueue},
	} {
		pk, err := solana.PublicKeyFromBase58(field.src)
		if err != nil {
			return nil, errors.Wrapf(errs.ErrRPCClient, "pool keys field %s (%q): %s", field.name, field.src, err)
		}
		*field.dst = pk
	}
	return keys, nil
}
