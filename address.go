package vault

import (
	"github.com/stellar/go/strkey"

	"github.com/utilityjnr/VaultDAO/errors"
)

// AddressLength is the length of every strkey encoded identity that this
// application accepts. Both account and contract identities encode to 56
// characters.
const AddressLength = 56

// Address is a strkey encoded ledger identity. Two shapes are accepted:
// ed25519 account addresses (G prefix) and contract addresses (C prefix).
type Address string

// ParseAddress returns a validated address or an ErrAddress reason why
// the given input cannot be one.
func ParseAddress(raw string) (Address, error) {
	a := Address(raw)
	if err := a.Validate(); err != nil {
		return "", err
	}
	return a, nil
}

// Validate returns an error if this is not a valid account or contract
// address.
func (a Address) Validate() error {
	switch {
	case len(a) == 0:
		return errors.Wrap(errors.ErrEmpty, "address")
	case len(a) != AddressLength:
		return errors.Wrapf(errors.ErrAddress, "invalid length %d", len(a))
	}
	if a.IsAccount() || a.IsContract() {
		return nil
	}
	return errors.Wrap(errors.ErrAddress, "not an account or contract key")
}

// IsAccount returns true if this is a valid ed25519 account address.
func (a Address) IsAccount() bool {
	_, err := strkey.Decode(strkey.VersionByteAccountID, string(a))
	return err == nil
}

// IsContract returns true if this is a valid contract address.
func (a Address) IsContract() bool {
	_, err := strkey.Decode(strkey.VersionByteContract, string(a))
	return err == nil
}

// Equals returns true if both addresses represent the same identity.
func (a Address) Equals(o Address) bool {
	return a == o
}

func (a Address) String() string {
	return string(a)
}

// NativeToken is the sentinel used to reference the ledger's native
// asset instead of a token contract.
const NativeToken Token = "NATIVE"

// nativeSymbol is the display symbol of the native asset.
const nativeSymbol = "XLM"

// Token references the asset a proposal wants to move. It is either the
// NativeToken sentinel, a token contract address or an issuer account
// address.
type Token string

// Validate returns an error unless this is the native asset sentinel or
// a valid asset address.
func (t Token) Validate() error {
	if len(t) == 0 {
		return errors.Wrap(errors.ErrEmpty, "token")
	}
	if t.IsNative() {
		return nil
	}
	a := Address(t)
	if len(a) == AddressLength && (a.IsContract() || a.IsAccount()) {
		return nil
	}
	return errors.Wrapf(errors.ErrToken, "%q", string(t))
}

// IsNative returns true if this token references the native asset.
func (t Token) IsNative() bool {
	return t == NativeToken
}

// Symbol returns a short display identifier for this token: the native
// asset symbol, or a truncated address for contract and issuer tokens.
func (t Token) Symbol() string {
	if t.IsNative() {
		return nativeSymbol
	}
	if len(t) <= 8 {
		return string(t)
	}
	return string(t[:4]) + "..." + string(t[len(t)-4:])
}

func (t Token) String() string {
	return string(t)
}
