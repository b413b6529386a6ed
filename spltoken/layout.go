package spltoken

import (
	"bytes"
	"encoding/binary"

	"github.com/gagliardetto/solana-go"
)

const (
	// TokenAccountSize is the serialized size of an SPL token account.
	TokenAccountSize = 165
	MintSize         = 82
)

// AccountLayout is the binary layout of an SPL token account.
type AccountLayout struct {
	Mint                 solana.PublicKey
	Owner                solana.PublicKey
	Amount               uint64
	DelegateOption       [4]byte
	Delegate             solana.PublicKey
	State                uint8
	IsNativeOption       [4]byte
	IsNative             uint64
	DelegatedAmount      uint64
	CloseAuthorityOption [4]byte
	CloseAuthority       solana.PublicKey
}

func (a *AccountLayout) unpack(data []byte) error {
	return binary.Read(bytes.NewReader(data), binary.LittleEndian, a)
}
