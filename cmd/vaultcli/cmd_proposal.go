package main

import (
	"context"
	"flag"
	"fmt"
	"io"

	vault "github.com/utilityjnr/VaultDAO"
)

func cmdCreateProposal(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprintln(flag.CommandLine.Output(), `
Create a new transfer proposal. The proposal starts pending and needs
approvals from the signer registry before it can be executed.
		`)
		fl.PrintDefaults()
	}
	var (
		dbFl        = flDB(fl)
		signersFl   = flSigners(fl)
		proposerFl  = fl.String("proposer", "", "Address of the signer creating this proposal.")
		recipientFl = fl.String("recipient", "", "Address receiving the funds.")
		tokenFl     = fl.String("token", string(vault.NativeToken), "Token to transfer. NATIVE or a token contract address.")
		amountFl    = fl.String("amount", "", "Amount to transfer, a decimal number in whole tokens.")
		memoFl      = fl.String("memo", "", "Optional note attached to the proposal.")
	)
	fl.Parse(args)

	engine, s, err := newEngine(*dbFl, *signersFl)
	if err != nil {
		return err
	}
	defer s.Close()

	id, err := engine.Create(context.Background(),
		vault.Address(*proposerFl), *recipientFl, *tokenFl, *amountFl, *memoFl)
	if err != nil {
		return err
	}
	p, err := s.Get(id)
	if err != nil {
		return err
	}
	return printJSON(output, p)
}

func cmdApprove(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprintln(flag.CommandLine.Output(), `
Record an approval vote on a pending proposal. When enough signers
approved, the proposal is approved and its timelock starts.
		`)
		fl.PrintDefaults()
	}
	var (
		dbFl      = flDB(fl)
		signersFl = flSigners(fl)
		idFl      = fl.Uint64("id", 0, "ID of the proposal to approve.")
		signerFl  = fl.String("signer", "", "Address of the voting signer.")
	)
	fl.Parse(args)

	engine, s, err := newEngine(*dbFl, *signersFl)
	if err != nil {
		return err
	}
	defer s.Close()

	p, err := engine.Approve(context.Background(), *idFl, vault.Address(*signerFl))
	if err != nil {
		return err
	}
	return printJSON(output, p)
}

func cmdReject(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprintln(flag.CommandLine.Output(), `
Record a rejection vote. Pending proposals and approved proposals still
waiting out their timelock can be rejected.
		`)
		fl.PrintDefaults()
	}
	var (
		dbFl      = flDB(fl)
		signersFl = flSigners(fl)
		idFl      = fl.Uint64("id", 0, "ID of the proposal to reject.")
		signerFl  = fl.String("signer", "", "Address of the voting signer.")
	)
	fl.Parse(args)

	engine, s, err := newEngine(*dbFl, *signersFl)
	if err != nil {
		return err
	}
	defer s.Close()

	p, err := engine.Reject(context.Background(), *idFl, vault.Address(*signerFl))
	if err != nil {
		return err
	}
	return printJSON(output, p)
}

func cmdExecute(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprintln(flag.CommandLine.Output(), `
Execute an approved proposal whose timelock elapsed. The transfer is
submitted and the proposal is marked executed with the transaction
reference.
		`)
		fl.PrintDefaults()
	}
	var (
		dbFl      = flDB(fl)
		signersFl = flSigners(fl)
		idFl      = fl.Uint64("id", 0, "ID of the proposal to execute.")
	)
	fl.Parse(args)

	engine, s, err := newEngine(*dbFl, *signersFl)
	if err != nil {
		return err
	}
	defer s.Close()

	p, err := engine.Execute(context.Background(), *idFl)
	if err != nil {
		return err
	}
	return printJSON(output, p)
}

func cmdExpire(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprintln(flag.CommandLine.Output(), `
Expire a stale proposal: a pending one that exceeded its maximum
pending age, or an approved one that was not executed within the grace
period after its timelock.
		`)
		fl.PrintDefaults()
	}
	var (
		dbFl      = flDB(fl)
		signersFl = flSigners(fl)
		idFl      = fl.Uint64("id", 0, "ID of the proposal to expire.")
	)
	fl.Parse(args)

	engine, s, err := newEngine(*dbFl, *signersFl)
	if err != nil {
		return err
	}
	defer s.Close()

	p, err := engine.Expire(context.Background(), *idFl)
	if err != nil {
		return err
	}
	return printJSON(output, p)
}

func cmdShow(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprintln(flag.CommandLine.Output(), `
Print a single proposal as JSON.
		`)
		fl.PrintDefaults()
	}
	var (
		dbFl = flDB(fl)
		idFl = fl.Uint64("id", 0, "ID of the proposal to show.")
	)
	fl.Parse(args)

	s, err := openStore(*dbFl)
	if err != nil {
		return err
	}
	defer s.Close()

	p, err := s.Get(*idFl)
	if err != nil {
		return err
	}
	return printJSON(output, p)
}
