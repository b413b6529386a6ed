// Package app wires the liquidity pipeline together: fetch pool state,
// compute amounts, resolve token accounts, encode the instruction, confirm
// with the operator and submit.
package app

import (
	"context"
	"time"

	"github.com/gagliardetto/solana-go"
	computebudget "github.com/gagliardetto/solana-go/programs/compute-budget"
	"github.com/sirupsen/logrus"

	"github.com/tasiov/mantis-raydium/api"
	"github.com/tasiov/mantis-raydium/config"
	"github.com/tasiov/mantis-raydium/spltoken"
	"github.com/tasiov/mantis-raydium/store"
)

// PoolFetcher is the pool index service.
type PoolFetcher interface {
	FetchPoolInfo(ctx context.Context, poolID string) (*api.PoolInfo, error)
	FetchPoolKeys(ctx context.Context, poolID string) (*api.PoolKeys, error)
}

// TokenAccountResolver resolves the account for one mint and role.
type TokenAccountResolver interface {
	Resolve(ctx context.Context, params spltoken.ResolveParams) (*spltoken.ResolvedAccount, error)
}

// Submitter signs and sends an assembled transaction.
type Submitter interface {
	Submit(ctx context.Context, instructions []solana.Instruction, additionalSigners []solana.PrivateKey) (solana.Signature, error)
}

// BalanceReader reads token-account balances for informational display.
type BalanceReader interface {
	TokenBalance(ctx context.Context, account solana.PublicKey) (string, error)
}

// ConfirmFunc asks the operator to approve an operation. Tests and
// non-interactive callers substitute a scripted answer.
type ConfirmFunc func(message string) bool

// ExecutionStore records submitted transactions; may be nil.
type ExecutionStore interface {
	SaveExecution(exec *store.Execution) error
}

type Flow struct {
	cfg       *config.Config
	fetcher   PoolFetcher
	resolver  TokenAccountResolver
	submitter Submitter
	balances  BalanceReader
	confirm   ConfirmFunc
	store     ExecutionStore
	owner     solana.PublicKey
	log       *logrus.Entry
}

type FlowParams struct {
	Config    *config.Config
	Fetcher   PoolFetcher
	Resolver  TokenAccountResolver
	Submitter Submitter
	Balances  BalanceReader
	Confirm   ConfirmFunc
	Store     ExecutionStore
	Owner     solana.PublicKey
	Log       *logrus.Entry
}

func NewFlow(params FlowParams) *Flow {
	return &Flow{
		cfg:       params.Config,
		fetcher:   params.Fetcher,
		resolver:  params.Resolver,
		submitter: params.Submitter,
		balances:  params.Balances,
		confirm:   params.Confirm,
		store:     params.Store,
		owner:     params.Owner,
		log:       params.Log,
	}
}

// Result reports the outcome of one liquidity operation.
type Result struct {
	Signature solana.Signature
	Sent      bool
	Aborted   bool
}

// computeBudgetInstructions returns the optional unit-price and unit-limit
// directives; zero-valued directives are never added.
func (f *Flow) computeBudgetInstructions() []solana.Instruction {
	instructions := make([]solana.Instruction, 0, 2)
	if f.cfg.ComputeBudget.MicroLamports > 0 {
		instructions = append(instructions,
			computebudget.NewSetComputeUnitPriceInstruction(f.cfg.ComputeBudget.MicroLamports).Build())
	}
	if f.cfg.ComputeBudget.Units > 0 {
		instructions = append(instructions,
			computebudget.NewSetComputeUnitLimitInstruction(f.cfg.ComputeBudget.Units).Build())
	}
	return instructions
}

// assemble produces the final ordered instruction list: compute budget,
// then every setup in resolution order, the operation itself, then every
// teardown in the same order.
func (f *Flow) assemble(operation solana.Instruction, resolved []*spltoken.ResolvedAccount) ([]solana.Instruction, []solana.PrivateKey) {
	instructions := f.computeBudgetInstructions()
	signers := make([]solana.PrivateKey, 0)
	for _, account := range resolved {
		instructions = append(instructions, account.StartInstructions...)
		signers = append(signers, account.AdditionalSigners...)
	}
	instructions = append(instructions, operation)
	for _, account := range resolved {
		instructions = append(instructions, account.EndInstructions...)
	}
	return instructions, signers
}

// logBalance is best-effort: a failed read is reported, never fatal.
func (f *Flow) logBalance(ctx context.Context, label string, account solana.PublicKey) {
	if f.balances == nil {
		return
	}
	balance, err := f.balances.TokenBalance(ctx, account)
	if err != nil {
		f.log.WithError(err).Infof("failed getting %s balance", label)
		return
	}
	f.log.Infof("%s balance: %s", label, balance)
}

func (f *Flow) recordExecution(exec *store.Execution) {
	if f.store == nil {
		return
	}
	exec.SendTime = time.Now().Unix()
	if err := f.store.SaveExecution(exec); err != nil {
		f.log.WithError(err).Warn("failed recording execution")
	}
}
