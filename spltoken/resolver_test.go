package spltoken

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tasiov/mantis-raydium/errs"
)

type fakeChain struct {
	accounts map[solana.PublicKey]*rpc.Account
	balance  uint64
	rent     uint64
}

func (f *fakeChain) AccountInfo(_ context.Context, key solana.PublicKey) (*rpc.Account, error) {
	return f.accounts[key], nil
}

func (f *fakeChain) Balance(_ context.Context, _ solana.PublicKey) (uint64, error) {
	return f.balance, nil
}

func (f *fakeChain) MinimumRent(_ context.Context, _ uint64) (uint64, error) {
	return f.rent, nil
}

func tokenAccountData(t *testing.T, mint, owner solana.PublicKey) *rpc.DataBytesOrJSON {
	raw := make([]byte, TokenAccountSize)
	copy(raw[0:32], mint[:])
	copy(raw[32:64], owner[:])

	var data rpc.DataBytesOrJSON
	encoded := `["` + base64.StdEncoding.EncodeToString(raw) + `", "base64"]`
	require.NoError(t, json.Unmarshal([]byte(encoded), &data))
	return &data
}

func testLogger() *logrus.Entry {
	l := logrus.New()
	l.SetLevel(logrus.PanicLevel)
	return logrus.NewEntry(l)
}

func TestResolveOutputMintWithoutAccount(t *testing.T) {
	owner := solana.NewWallet().PublicKey()
	mint := solana.NewWallet().PublicKey()
	resolver := NewResolver(&fakeChain{}, owner, testLogger())

	resolved, err := resolver.Resolve(context.Background(), ResolveParams{
		Side: SideOut,
		Mint: mint,
	})
	require.NoError(t, err)

	expected, _, err := solana.FindAssociatedTokenAddress(owner, mint)
	require.NoError(t, err)
	assert.Equal(t, expected, resolved.Address)
	assert.Len(t, resolved.StartInstructions, 1)
	assert.Empty(t, resolved.EndInstructions)
	assert.Empty(t, resolved.AdditionalSigners)
}

func TestResolveReusesExistingAccount(t *testing.T) {
	owner := solana.NewWallet().PublicKey()
	mint := solana.NewWallet().PublicKey()
	address, _, err := solana.FindAssociatedTokenAddress(owner, mint)
	require.NoError(t, err)

	chain := &fakeChain{accounts: map[solana.PublicKey]*rpc.Account{
		address: {Owner: solana.TokenProgramID, Data: tokenAccountData(t, mint, owner)},
	}}
	resolver := NewResolver(chain, owner, testLogger())

	resolved, err := resolver.Resolve(context.Background(), ResolveParams{
		Side:                 SideIn,
		Amount:               1000,
		Mint:                 mint,
		CheckAssociatedOwner: true,
	})
	require.NoError(t, err)
	assert.Equal(t, address, resolved.Address)
	assert.Empty(t, resolved.StartInstructions)
	assert.Empty(t, resolved.EndInstructions)
}

func TestResolveRejectsMismatchedAccount(t *testing.T) {
	owner := solana.NewWallet().PublicKey()
	mint := solana.NewWallet().PublicKey()
	otherOwner := solana.NewWallet().PublicKey()
	address, _, err := solana.FindAssociatedTokenAddress(owner, mint)
	require.NoError(t, err)

	chain := &fakeChain{accounts: map[solana.PublicKey]*rpc.Account{
		address: {Owner: solana.TokenProgramID, Data: tokenAccountData(t, mint, otherOwner)},
	}}
	resolver := NewResolver(chain, owner, testLogger())

	_, err = resolver.Resolve(context.Background(), ResolveParams{
		Side:                 SideIn,
		Mint:                 mint,
		CheckAssociatedOwner: true,
	})
	assert.True(t, errors.Is(err, errs.ErrInvalidTokenAccount))
}

func TestResolveWrappedSol(t *testing.T) {
	owner := solana.NewWallet().PublicKey()
	chain := &fakeChain{balance: 10 * solana.LAMPORTS_PER_SOL, rent: 2_039_280}
	resolver := NewResolver(chain, owner, testLogger())

	resolved, err := resolver.Resolve(context.Background(), ResolveParams{
		Side:   SideIn,
		Amount: solana.LAMPORTS_PER_SOL,
		Mint:   solana.WrappedSol,
	})
	require.NoError(t, err)
	require.Len(t, resolved.StartInstructions, 2)
	assert.Len(t, resolved.EndInstructions, 1)
	require.Len(t, resolved.AdditionalSigners, 1)
	assert.Equal(t, resolved.Address, resolved.AdditionalSigners[0].PublicKey())

	// InitializeAccount references the account, mint, owner and the rent
	// sysvar, in that order.
	initAccounts := resolved.StartInstructions[1].Accounts()
	require.Len(t, initAccounts, 4)
	assert.Equal(t, resolved.Address, initAccounts[0].PublicKey)
	assert.Equal(t, solana.WrappedSol, initAccounts[1].PublicKey)
	assert.Equal(t, owner, initAccounts[2].PublicKey)
	assert.Equal(t, solana.SysVarRentPubkey, initAccounts[3].PublicKey)
}

func TestResolveWrappedSolSkipClose(t *testing.T) {
	owner := solana.NewWallet().PublicKey()
	chain := &fakeChain{balance: 10 * solana.LAMPORTS_PER_SOL, rent: 2_039_280}
	resolver := NewResolver(chain, owner, testLogger())

	resolved, err := resolver.Resolve(context.Background(), ResolveParams{
		Side:             SideIn,
		Amount:           solana.LAMPORTS_PER_SOL,
		Mint:             solana.WrappedSol,
		SkipCloseAccount: true,
	})
	require.NoError(t, err)
	assert.Empty(t, resolved.EndInstructions)
	assert.Len(t, resolved.AdditionalSigners, 1)
}

func TestResolveWrappedSolInsufficientBalance(t *testing.T) {
	owner := solana.NewWallet().PublicKey()
	chain := &fakeChain{balance: 1000, rent: 2_039_280}
	resolver := NewResolver(chain, owner, testLogger())

	_, err := resolver.Resolve(context.Background(), ResolveParams{
		Side:   SideIn,
		Amount: solana.LAMPORTS_PER_SOL,
		Mint:   solana.WrappedSol,
	})
	assert.True(t, errors.Is(err, errs.ErrInsufficientBalance))
}

func TestResolveOutputSideIgnoresAmount(t *testing.T) {
	owner := solana.NewWallet().PublicKey()
	rent := uint64(2_039_280)
	// Enough for rent and fee but nowhere near the stated amount.
	chain := &fakeChain{balance: rent + feeEstimateLamports, rent: rent}
	resolver := NewResolver(chain, owner, testLogger())

	resolved, err := resolver.Resolve(context.Background(), ResolveParams{
		Side:   SideOut,
		Amount: 100 * solana.LAMPORTS_PER_SOL,
		Mint:   solana.WrappedSol,
	})
	require.NoError(t, err)
	assert.Len(t, resolved.AdditionalSigners, 1)
}

func TestResolveExplicitTokenAccount(t *testing.T) {
	owner := solana.NewWallet().PublicKey()
	explicit := solana.NewWallet().PublicKey()
	resolver := NewResolver(&fakeChain{}, owner, testLogger())

	resolved, err := resolver.Resolve(context.Background(), ResolveParams{
		Side:         SideIn,
		Mint:         solana.NewWallet().PublicKey(),
		TokenAccount: &explicit,
	})
	require.NoError(t, err)
	assert.Equal(t, explicit, resolved.Address)
	assert.Empty(t, resolved.StartInstructions)
}
