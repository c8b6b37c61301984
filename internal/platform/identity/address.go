// Package identity handles the public-key-derived addresses used as
// identities across the election authority.
package identity

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
)

var ErrInvalidAddress = errors.New("identity must be a 20-byte hex address")

// Normalize validates a hex address and returns its EIP-55 checksum form so
// that identities compare byte for byte.
func Normalize(raw string) (string, error) {
	value := strings.TrimSpace(raw)
	if !common.IsHexAddress(value) {
		return "", ErrInvalidAddress
	}
	return common.HexToAddress(value).Hex(), nil
}

// KeyPair is a freshly generated identity with its hex-encoded keys.
type KeyPair struct {
	Address    string `json:"address"`
	PublicKey  string `json:"public_key"`
	PrivateKey string `json:"private_key"`
}

func GenerateKeyPair() (KeyPair, error) {
	privateKey, err := crypto.GenerateKey()
	if err != nil {
		return KeyPair{}, fmt.Errorf("generate key: %w", err)
	}
	return KeyPair{
		Address:    crypto.PubkeyToAddress(privateKey.PublicKey).Hex(),
		PublicKey:  hexutil.Encode(crypto.FromECDSAPub(&privateKey.PublicKey)),
		PrivateKey: hexutil.Encode(crypto.FromECDSA(privateKey)),
	}, nil
}

// FromPublicKey derives the address of an uncompressed secp256k1 public key.
func FromPublicKey(hexKey string) (string, error) {
	raw, err := hexutil.Decode(strings.TrimSpace(hexKey))
	if err != nil {
		return "", fmt.Errorf("decode public key: %w", err)
	}
	pub, err := crypto.UnmarshalPubkey(raw)
	if err != nil {
		return "", fmt.Errorf("parse public key: %w", err)
	}
	return crypto.PubkeyToAddress(*pub).Hex(), nil
}
