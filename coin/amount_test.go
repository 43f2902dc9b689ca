package coin

import (
	"testing"

	"github.com/utilityjnr/VaultDAO/errors"
)

func TestParseAmount(t *testing.T) {
	cases := map[string]struct {
		raw      string
		decimals uint32
		want     Amount
		wantErr  *errors.Error
	}{
		"whole number": {
			raw:      "100",
			decimals: 7,
			want:     1000000000,
		},
		"fractional number": {
			raw:      "1.5",
			decimals: 7,
			want:     15000000,
		},
		"full precision": {
			raw:      "0.0000001",
			decimals: 7,
			want:     1,
		},
		"zero decimals token": {
			raw:      "42",
			decimals: 0,
			want:     42,
		},
		"zero value": {
			raw:      "0",
			decimals: 7,
			wantErr:  errors.ErrAmount,
		},
		"zero with fraction zeros": {
			raw:      "0.000",
			decimals: 7,
			wantErr:  errors.ErrAmount,
		},
		"negative value": {
			raw:      "-5",
			decimals: 7,
			wantErr:  errors.ErrAmount,
		},
		"not a number": {
			raw:      "10 XLM",
			decimals: 7,
			wantErr:  errors.ErrAmount,
		},
		"empty": {
			raw:      "",
			decimals: 7,
			wantErr:  errors.ErrEmpty,
		},
		"excess precision is an error not a rounding": {
			raw:      "1.00000001",
			decimals: 7,
			wantErr:  errors.ErrAmount,
		},
		"fraction on zero decimals token": {
			raw:      "1.5",
			decimals: 0,
			wantErr:  errors.ErrAmount,
		},
		"above maximum": {
			raw:      "999999999",
			decimals: 7,
			wantErr:  errors.ErrAmount,
		},
		"scientific notation rejected": {
			raw:      "1e7",
			decimals: 7,
			wantErr:  errors.ErrAmount,
		},
		"unsupported decimals": {
			raw:      "1",
			decimals: 19,
			wantErr:  errors.ErrInput,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			got, err := ParseAmount(tc.raw, tc.decimals)
			if tc.wantErr != nil {
				if !tc.wantErr.Is(err) {
					t.Fatalf("want %v, got %+v", tc.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %+v", err)
			}
			if got != tc.want {
				t.Fatalf("want %d, got %d", tc.want, got)
			}
		})
	}
}

func TestAmountFormat(t *testing.T) {
	cases := map[string]struct {
		amount   Amount
		decimals uint32
		want     string
	}{
		"whole":           {amount: 1000000000, decimals: 7, want: "100"},
		"fractional":      {amount: 15000000, decimals: 7, want: "1.5"},
		"smallest unit":   {amount: 1, decimals: 7, want: "0.0000001"},
		"no decimals":     {amount: 42, decimals: 0, want: "42"},
		"trailing zeros":  {amount: 12300000, decimals: 7, want: "1.23"},
		"zero value":      {amount: 0, decimals: 7, want: "0"},
		"sub one amounts": {amount: 450, decimals: 7, want: "0.000045"},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			if got := tc.amount.Format(tc.decimals); got != tc.want {
				t.Fatalf("want %q, got %q", tc.want, got)
			}
		})
	}
}

func TestParseFormatRoundTrip(t *testing.T) {
	for _, raw := range []string{"1", "1.5", "0.0000001", "12345.67", "99999999.9999999"} {
		a, err := ParseAmount(raw, StellarDecimals)
		if err != nil {
			t.Fatalf("%s: unexpected error: %+v", raw, err)
		}
		if got := a.Format(StellarDecimals); got != raw {
			t.Fatalf("%s: round trip produced %q", raw, got)
		}
	}
}

func TestAmountAdd(t *testing.T) {
	sum, err := Amount(3).Add(4)
	if err != nil {
		t.Fatalf("unexpected error: %+v", err)
	}
	if sum != 7 {
		t.Fatalf("want 7, got %d", sum)
	}

	if _, err := Amount(1<<62).Add(1 << 62); !errors.ErrOverflow.Is(err) {
		t.Fatalf("want overflow, got %+v", err)
	}
}

func TestAmountValidate(t *testing.T) {
	if err := Amount(1).Validate(); err != nil {
		t.Fatalf("unexpected error: %+v", err)
	}
	if err := Amount(0).Validate(); !errors.ErrAmount.Is(err) {
		t.Fatalf("want ErrAmount, got %+v", err)
	}
	if err := (MaxAmount + 1).Validate(); !errors.ErrAmount.Is(err) {
		t.Fatalf("want ErrAmount, got %+v", err)
	}
}
