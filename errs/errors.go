// Package errs defines the error categories surfaced by the liquidity
// pipeline. Call sites wrap these sentinels with context via
// errors.Wrap/Wrapf and callers classify failures with errors.Is.
package errs

import "github.com/pkg/errors"

var (
	// ErrConfig covers unreadable or malformed configuration.
	ErrConfig = errors.New("configuration error")
	// ErrKeypair covers unreadable or malformed signing key files.
	ErrKeypair = errors.New("keypair error")
	// ErrRPCClient covers chain RPC failures and malformed on-chain addresses.
	ErrRPCClient = errors.New("rpc client error")
	// ErrAPI covers pool index service failures (network, HTTP status, JSON shape).
	ErrAPI = errors.New("api error")
	// ErrInvalidInput covers operator-supplied values outside their domain.
	ErrInvalidInput = errors.New("invalid input")
	// ErrMath covers overflow, zero-division and downcast failures in amount math.
	ErrMath = errors.New("math error")
	// ErrInvalidTokenAccount marks an existing token account that fails the
	// owner/mint check.
	ErrInvalidTokenAccount = errors.New("invalid token account")
	// ErrInsufficientBalance marks a native balance too small to cover a
	// wrapped-SOL account plus rent and fees.
	ErrInsufficientBalance = errors.New("insufficient balance")
)
