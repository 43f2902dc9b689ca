// Package vaulttest provides deterministic fixtures for tests. Address
// values are valid strkey identities derived from a seed so that no test
// has to hardcode checksum-correct strings.
package vaulttest

import (
	"bytes"
	"fmt"

	"github.com/stellar/go/strkey"

	vault "github.com/utilityjnr/VaultDAO"
)

// AccountAddress returns a deterministic, valid account address. The
// same seed always produces the same address.
func AccountAddress(seed byte) vault.Address {
	raw, err := strkey.Encode(strkey.VersionByteAccountID, bytes.Repeat([]byte{seed}, 32))
	if err != nil {
		panic(fmt.Sprintf("cannot encode account address: %v", err))
	}
	return vault.Address(raw)
}

// ContractAddress returns a deterministic, valid contract address.
func ContractAddress(seed byte) vault.Address {
	raw, err := strkey.Encode(strkey.VersionByteContract, bytes.Repeat([]byte{seed}, 32))
	if err != nil {
		panic(fmt.Sprintf("cannot encode contract address: %v", err))
	}
	return vault.Address(raw)
}

// Signers returns n distinct account addresses.
func Signers(n int) []vault.Address {
	signers := make([]vault.Address, n)
	for i := range signers {
		signers[i] = AccountAddress(byte(i + 1))
	}
	return signers
}

// Snapshot returns a version 1 signer snapshot with the given thresholds.
func Snapshot(approval, rejection uint32, signers ...vault.Address) vault.SignerSnapshot {
	return vault.SignerSnapshot{
		Version:            1,
		Signers:            signers,
		ApprovalThreshold:  approval,
		RejectionThreshold: rejection,
	}
}
