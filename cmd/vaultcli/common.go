package main

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/tendermint/tendermint/libs/log"

	vault "github.com/utilityjnr/VaultDAO"
	"github.com/utilityjnr/VaultDAO/coin"
	"github.com/utilityjnr/VaultDAO/errors"
	"github.com/utilityjnr/VaultDAO/gov"
	"github.com/utilityjnr/VaultDAO/store"
)

// flDB registers the database path flag. The file is created on first
// use.
func flDB(fl *flag.FlagSet) *string {
	return fl.String("db", env("VAULTCLI_DB", "vault.db"), "Path of the proposal database file.")
}

// flSigners registers the signer registry file flag. The file is a JSON
// document with the signer addresses and the vote thresholds.
func flSigners(fl *flag.FlagSet) *string {
	return fl.String("signers", env("VAULTCLI_SIGNERS", "signers.json"), "Path of the signer registry JSON file.")
}

func openStore(path string) (*store.BoltStore, error) {
	s, err := store.OpenBolt(path)
	if err != nil {
		return nil, errors.Wrapf(err, "open database %q", path)
	}
	return s, nil
}

func loadSigners(path string) (*vault.StaticSource, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read %q", path)
	}
	var snapshot vault.SignerSnapshot
	if err := json.Unmarshal(raw, &snapshot); err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "malformed signer registry: %s", err)
	}
	src, err := vault.NewStaticSource(snapshot)
	if err != nil {
		return nil, errors.Wrap(err, "signer registry")
	}
	return src, nil
}

// newEngine wires a lifecycle engine over the bolt database and the
// signer registry file. The caller must close the returned store.
func newEngine(dbPath, signersPath string) (*gov.Engine, *store.BoltStore, error) {
	src, err := loadSigners(signersPath)
	if err != nil {
		return nil, nil, err
	}
	s, err := openStore(dbPath)
	if err != nil {
		return nil, nil, err
	}
	engine, err := gov.NewEngine(gov.EngineConfig{
		Store:    s,
		Signers:  src,
		Executor: localExecutor{},
		Options:  gov.DefaultOptions(),
		Logger:   log.NewTMLogger(log.NewSyncWriter(os.Stderr)),
	})
	if err != nil {
		s.Close()
		return nil, nil, err
	}
	return engine, s, nil
}

// localExecutor stands in for a ledger connection. It does not move any
// funds, it only mints a deterministic reference so executed proposals
// can be told apart.
type localExecutor struct{}

func (localExecutor) SubmitTransfer(ctx context.Context, recipient vault.Address, token vault.Token, amount coin.Amount, memo string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	sum := sha256.Sum256([]byte(fmt.Sprintf("%s|%s|%d|%s", recipient, token, amount, memo)))
	return fmt.Sprintf("local-%x", sum[:8]), nil
}

func printJSON(out io.Writer, v interface{}) error {
	raw, err := json.MarshalIndent(v, "", "\t")
	if err != nil {
		return errors.Wrap(err, "serialize")
	}
	_, err = fmt.Fprintln(out, string(raw))
	return err
}
