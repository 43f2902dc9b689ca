// Package coin implements integer token amount handling. Values are
// carried in the token's smallest indivisible unit so no floating point
// representation ever exists, not in memory and not persisted.
package coin

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/utilityjnr/VaultDAO/errors"
)

const (
	// MaxAmount is the largest value we accept, in smallest units.
	MaxAmount Amount = 999999999999999 // 10^15-1

	// StellarDecimals is the decimal convention of Soroban token
	// contracts and of the native asset.
	StellarDecimals uint32 = 7

	// maxDecimals bounds the supported token precision. Anything above
	// would not fit the int64 value range in a useful way.
	maxDecimals uint32 = 18
)

// Amount is a token value expressed in the token's smallest indivisible
// unit.
type Amount int64

var amountFormatRx = regexp.MustCompile(`^(\d+)(?:\.(\d+))?$`)

// ParseAmount converts a decimal string into its smallest-unit integer
// representation for a token with the given number of decimal places.
//
// The conversion is exact. Input with more fractional digits than the
// token supports is an error, never silently truncated or rounded.
// Non-numeric, non-positive and out of range values are rejected.
func ParseAmount(raw string, decimals uint32) (Amount, error) {
	if decimals > maxDecimals {
		return 0, errors.Wrapf(errors.ErrInput, "decimals above %d not supported", maxDecimals)
	}
	if raw == "" {
		return 0, errors.Wrap(errors.ErrEmpty, "amount")
	}
	if strings.HasPrefix(raw, "-") {
		return 0, errors.Wrap(errors.ErrAmount, "must be positive")
	}
	groups := amountFormatRx.FindStringSubmatch(raw)
	if groups == nil {
		return 0, errors.Wrapf(errors.ErrAmount, "not a decimal number: %q", raw)
	}

	whole, err := strconv.ParseInt(groups[1], 10, 64)
	if err != nil {
		return 0, errors.Wrapf(errors.ErrAmount, "whole part: %q", groups[1])
	}

	frac := groups[2]
	if uint32(len(frac)) > decimals {
		return 0, errors.Wrapf(errors.ErrAmount, "more than %d fractional digits", decimals)
	}
	// Scale the fractional part up to exactly `decimals` digits.
	frac += strings.Repeat("0", int(decimals)-len(frac))
	var fracVal int64
	if frac != "" {
		if fracVal, err = strconv.ParseInt(frac, 10, 64); err != nil {
			return 0, errors.Wrapf(errors.ErrAmount, "fractional part: %q", groups[2])
		}
	}

	scaled, err := mul64(whole, pow10(decimals))
	if err != nil {
		return 0, errors.Wrap(err, "amount")
	}
	total := scaled + fracVal
	if total < scaled {
		return 0, errors.Wrap(errors.ErrOverflow, "amount")
	}

	a := Amount(total)
	if a == 0 {
		return 0, errors.Wrap(errors.ErrAmount, "must be positive")
	}
	if a > MaxAmount {
		return 0, errors.Wrapf(errors.ErrAmount, "above maximum of %d", MaxAmount)
	}
	return a, nil
}

// Validate ensures that the amount is in the valid range for a proposal.
func (a Amount) Validate() error {
	if a <= 0 {
		return errors.Wrap(errors.ErrAmount, "must be positive")
	}
	if a > MaxAmount {
		return errors.Wrapf(errors.ErrAmount, "above maximum of %d", MaxAmount)
	}
	return nil
}

// Add combines two amounts. It fails with ErrOverflow if the result
// exceeds the representable range.
func (a Amount) Add(o Amount) (Amount, error) {
	sum := a + o
	if (o > 0 && sum < a) || (o < 0 && sum > a) {
		return 0, errors.Wrap(errors.ErrOverflow, "amount sum")
	}
	return sum, nil
}

// Format renders the amount as a decimal string for a token with the
// given number of decimal places. Trailing fractional zeros are removed
// as they provide no information.
func (a Amount) Format(decimals uint32) string {
	if decimals == 0 || decimals > maxDecimals {
		return strconv.FormatInt(int64(a), 10)
	}
	unit := pow10(decimals)
	whole := int64(a) / unit
	frac := int64(a) % unit
	if frac < 0 {
		frac = -frac
	}

	out := strconv.FormatInt(whole, 10)
	if frac != 0 {
		s := strconv.FormatInt(frac, 10)
		s = strings.Repeat("0", int(decimals)-len(s)) + s
		out += "." + strings.TrimRight(s, "0")
	}
	return out
}

func (a Amount) String() string {
	return a.Format(StellarDecimals)
}

// pow10 returns 10^n. n must be at most maxDecimals which keeps the
// result within int64.
func pow10(n uint32) int64 {
	out := int64(1)
	for i := uint32(0); i < n; i++ {
		out *= 10
	}
	return out
}

// mul64 multiplies two int64 numbers. If the result overflows the int64
// size the ErrOverflow is returned.
func mul64(a, b int64) (int64, error) {
	if a == 0 || b == 0 {
		return 0, nil
	}
	c := a * b
	if c/a != b {
		return c, errors.ErrOverflow
	}
	return c, nil
}
