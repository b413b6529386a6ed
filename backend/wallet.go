package backend

import (
	"os"
	"strings"

	"github.com/gagliardetto/solana-go"
	"github.com/mr-tron/base58"
	"github.com/pkg/errors"

	"github.com/tasiov/mantis-raydium/errs"
)

// LoadKeypair reads the primary signing key. Both formats produced by
// common tooling are accepted: the solana-keygen JSON byte array and a
// base58-encoded secret key string.
func LoadKeypair(path string) (solana.PrivateKey, error) {
	key, err := solana.PrivateKeyFromSolanaKeygenFile(path)
	if err == nil {
		return key, nil
	}

	raw, readErr := os.ReadFile(path)
	if readErr != nil {
		return nil, errors.Wrapf(errs.ErrKeypair, "read %s: %s", path, readErr)
	}
	decoded, decErr := base58.Decode(strings.TrimSpace(string(raw)))
	if decErr != nil || len(decoded) != 64 {
		return nil, errors.Wrapf(errs.ErrKeypair, "%s is neither a keygen file nor a base58 secret key", path)
	}
	return solana.PrivateKey(decoded), nil
}
