package vault_test

import (
	"encoding/json"
	"testing"
	"time"

	vault "github.com/utilityjnr/VaultDAO"
	"github.com/utilityjnr/VaultDAO/errors"
	"github.com/utilityjnr/VaultDAO/vaulttest/assert"
)

func TestUnixTimeUnmarshal(t *testing.T) {
	cases := map[string]struct {
		json    string
		want    vault.UnixTime
		wantErr *errors.Error
	}{
		"number": {
			json: "1136214245",
			want: 1136214245,
		},
		"zero": {
			json: "0",
			want: 0,
		},
		"time string": {
			json: `"2006-01-02T15:04:05Z"`,
			want: 1136214245,
		},
		"negative number": {
			json:    "-1",
			wantErr: errors.ErrInput,
		},
		"garbage": {
			json:    `"yesterday"`,
			wantErr: errors.ErrInput,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			var got vault.UnixTime
			err := json.Unmarshal([]byte(tc.json), &got)
			if tc.wantErr != nil {
				assert.IsErr(t, tc.wantErr, err)
				return
			}
			assert.Nil(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestUnixTimeAdd(t *testing.T) {
	base := vault.UnixTime(100)
	assert.Equal(t, vault.UnixTime(160), base.Add(time.Minute))
	assert.Equal(t, vault.UnixTime(100), base.Add(500*time.Millisecond))
}

func TestAsUnixTime(t *testing.T) {
	now := time.Unix(1136214245, 0)
	got := vault.AsUnixTime(now)
	assert.Equal(t, vault.UnixTime(1136214245), got)
	assert.Equal(t, now.UTC(), got.Time().UTC())
}
