package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	vault "github.com/utilityjnr/VaultDAO"
	"github.com/utilityjnr/VaultDAO/coin"
	"github.com/utilityjnr/VaultDAO/errors"
	"github.com/utilityjnr/VaultDAO/gov"
)

func cmdList(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprintln(flag.CommandLine.Output(), `
List proposals matching the given filters. All filters compose, an
unset filter matches everything.
		`)
		fl.PrintDefaults()
	}
	var (
		dbFl     = flDB(fl)
		textFl   = fl.String("text", "", "Select proposals whose proposer, recipient or memo contains this text.")
		statusFl = fl.String("status", "", "Comma separated list of statuses: pending, approved, rejected, executed, expired.")
		minFl    = fl.String("min", "", "Select proposals of at least this amount, in whole tokens.")
		maxFl    = fl.String("max", "", "Select proposals of at most this amount, in whole tokens.")
		fromFl   = fl.String("from", "", "Select proposals created on this day or later, format 2006-01-02.")
		toFl     = fl.String("to", "", "Select proposals created on this day or earlier, format 2006-01-02.")
		tokenFl  = fl.String("token", "", "Select proposals transferring this token, by identifier or symbol.")
		sortFl   = fl.String("sort", "newest", "Result order: newest, oldest, highest or lowest.")
	)
	fl.Parse(args)

	filter, err := buildFilter(*textFl, *statusFl, *minFl, *maxFl, *fromFl, *toFl, *tokenFl)
	if err != nil {
		return err
	}
	order, err := gov.ParseSortOrder(*sortFl)
	if err != nil {
		return err
	}

	s, err := openStore(*dbFl)
	if err != nil {
		return err
	}
	defer s.Close()

	proposals, err := gov.NewQueryService(s).Search(filter, order)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(output, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSTATUS\tAMOUNT\tTOKEN\tRECIPIENT\tCREATED\tMEMO")
	for _, p := range proposals {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\t%s\n",
			p.ID, p.Status,
			p.Amount.Format(coin.StellarDecimals), p.Token.Symbol(),
			p.Recipient, p.CreatedAt, p.Memo)
	}
	return w.Flush()
}

func buildFilter(text, statuses, min, max, from, to, token string) (gov.Filter, error) {
	f := gov.Filter{
		Text:  text,
		Token: token,
	}
	if statuses != "" {
		for _, name := range strings.Split(statuses, ",") {
			status, err := vault.ParseStatus(strings.TrimSpace(name))
			if err != nil {
				return f, err
			}
			f.Statuses = append(f.Statuses, status)
		}
	}
	var err error
	if min != "" {
		if f.MinAmount, err = coin.ParseAmount(min, coin.StellarDecimals); err != nil {
			return f, errors.Wrap(err, "min amount")
		}
	}
	if max != "" {
		if f.MaxAmount, err = coin.ParseAmount(max, coin.StellarDecimals); err != nil {
			return f, errors.Wrap(err, "max amount")
		}
	}
	if from != "" {
		if f.CreatedFrom, err = parseDay(from); err != nil {
			return f, errors.Wrap(err, "from")
		}
	}
	if to != "" {
		if f.CreatedTo, err = parseDay(to); err != nil {
			return f, errors.Wrap(err, "to")
		}
	}
	return f, nil
}

func parseDay(raw string) (vault.UnixTime, error) {
	day, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return 0, errors.Wrapf(errors.ErrInput, "not a 2006-01-02 date: %q", raw)
	}
	return vault.AsUnixTime(day), nil
}

func cmdSummary(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprintln(flag.CommandLine.Output(), `
Print per status counts and amount totals over all proposals.
		`)
		fl.PrintDefaults()
	}
	dbFl := flDB(fl)
	fl.Parse(args)

	s, err := openStore(*dbFl)
	if err != nil {
		return err
	}
	defer s.Close()

	summary, err := gov.NewQueryService(s).Summary()
	if err != nil {
		return err
	}
	return printJSON(output, summary)
}

func cmdSigners(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprintln(flag.CommandLine.Output(), `
Print the signer registry this client votes against.
		`)
		fl.PrintDefaults()
	}
	signersFl := flSigners(fl)
	fl.Parse(args)

	src, err := loadSigners(*signersFl)
	if err != nil {
		return err
	}
	snapshot, err := src.CurrentSigners(context.Background())
	if err != nil {
		return err
	}
	return printJSON(output, snapshot)
}
