package catalog

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jask/jaskwallet/internal/identity"
	"github.com/jask/jaskwallet/internal/safety"
)

func TestDefaultCatalogIsValid(t *testing.T) {
	c, err := Default()
	require.NoError(t, err)
	require.NotEmpty(t, c.Tokens)
	require.NotEmpty(t, c.Accounts)

	levels := map[safety.Level]bool{}
	for _, tok := range c.Tokens {
		levels[tok.Safety] = true
	}
	for _, l := range []safety.Level{safety.Verified, safety.MediumWarning, safety.StrongWarning, safety.Blocked} {
		require.True(t, levels[l], "default catalog should exercise %s", l)
	}
}

func TestLoadRejectsBadInput(t *testing.T) {
	cases := map[string]string{
		"bad address": "tokens:\n  - chain_id: 1\n    address: nope\n    symbol: X\n",
		"bad level":   "tokens:\n  - chain_id: 1\n    address: \"0x1111111111111111111111111111111111111111\"\n    symbol: X\n    safety: spooky\n",
		"bad amount":  "accounts:\n  - address: \"0x1111111111111111111111111111111111111111\"\n    balances:\n      - chain_id: 1\n        token: \"0x1111111111111111111111111111111111111111\"\n        quantity: lots\n",
		"bad kind":    "names:\n  - address: \"0x1111111111111111111111111111111111111111\"\n    kind: dns\n    value: x\n",
	}
	dir := t.TempDir()
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, filepath.Base(name)+".yaml")
			require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
			_, err := Load(path)
			require.Error(t, err)
		})
	}
}

func TestValidateReportsInvalidAddresses(t *testing.T) {
	t.Parallel()
	good := "0x1111111111111111111111111111111111111111"
	cases := map[string]Catalog{
		"token":   {Tokens: []Token{{ChainID: 1, Address: "0x123", Symbol: "X"}}},
		"account": {Accounts: []Account{{Address: "alice.eth"}}},
		"balance": {Accounts: []Account{{Address: good, Balances: []Balance{{ChainID: 1, Token: "eth", Quantity: "1"}}}}},
		"name":    {Names: []Name{{Address: "", Kind: "ens", Value: "x.eth"}}},
	}
	for name, c := range cases {
		err := c.Validate()
		require.Error(t, err, name)
		require.True(t, errors.Is(err, identity.ErrInvalidAddress), name)
	}

	padded := Catalog{Accounts: []Account{{Address: " " + good + " "}}}
	require.NoError(t, padded.Validate())
}

func TestLoadParsesSafetyLevels(t *testing.T) {
	body := `
tokens:
  - chain_id: 10
    address: "0x4200000000000000000000000000000000000042"
    name: Optimism
    symbol: OP
    safety: strong_warning
`
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	c, err := Load(path)
	require.NoError(t, err)
	require.Len(t, c.Tokens, 1)
	require.Equal(t, safety.StrongWarning, c.Tokens[0].Safety)
	require.Equal(t, int64(10), c.Tokens[0].ChainID)
}
