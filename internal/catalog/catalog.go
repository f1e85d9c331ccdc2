// Package catalog reads token catalogs: the tokens the wallet knows about, with
// their safety levels, plus optional demo accounts, balances and names.
package catalog

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/jask/jaskwallet/internal/identity"
	"github.com/jask/jaskwallet/internal/safety"
)

//go:embed default.yaml
var defaultCatalog []byte

// Catalog is the parsed YAML document.
type Catalog struct {
	Tokens   []Token   `yaml:"tokens"`
	Accounts []Account `yaml:"accounts"`
	Names    []Name    `yaml:"names"`
}

type Token struct {
	ChainID  int64        `yaml:"chain_id"`
	Address  string       `yaml:"address"`
	Name     string       `yaml:"name"`
	Symbol   string       `yaml:"symbol"`
	Native   bool         `yaml:"native"`
	Decimals int          `yaml:"decimals"`
	LogoURL  string       `yaml:"logo_url"`
	Safety   safety.Level `yaml:"safety"`
}

type Account struct {
	Address  string    `yaml:"address"`
	Name     string    `yaml:"name"`
	Active   bool      `yaml:"active"`
	Balances []Balance `yaml:"balances"`
}

type Balance struct {
	ChainID  int64  `yaml:"chain_id"`
	Token    string `yaml:"token"`
	Quantity string `yaml:"quantity"`
	PriceUSD string `yaml:"price_usd"`
}

type Name struct {
	Address string `yaml:"address"`
	Kind    string `yaml:"kind"`
	Value   string `yaml:"value"`
	Avatar  string `yaml:"avatar"`
}

// Default returns the catalog bundled with the binary.
func Default() (Catalog, error) {
	return Parse(defaultCatalog)
}

// Load reads and validates the catalog at path.
func Load(path string) (Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Catalog{}, fmt.Errorf("read catalog: %w", err)
	}
	c, err := Parse(data)
	if err != nil {
		return Catalog{}, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// Parse decodes and validates a YAML catalog.
func Parse(data []byte) (Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return Catalog{}, fmt.Errorf("decode catalog: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Catalog{}, err
	}
	return c, nil
}

// Validate checks addresses, amounts and name kinds.
func (c Catalog) Validate() error {
	for i, t := range c.Tokens {
		if _, err := identity.ParseAddress(t.Address); err != nil {
			return fmt.Errorf("tokens[%d]: %w", i, err)
		}
		if t.ChainID <= 0 {
			return fmt.Errorf("tokens[%d]: chain_id required", i)
		}
		if strings.TrimSpace(t.Symbol) == "" {
			return fmt.Errorf("tokens[%d]: symbol required", i)
		}
	}
	for i, a := range c.Accounts {
		if _, err := identity.ParseAddress(a.Address); err != nil {
			return fmt.Errorf("accounts[%d]: %w", i, err)
		}
		for j, b := range a.Balances {
			if _, err := identity.ParseAddress(b.Token); err != nil {
				return fmt.Errorf("accounts[%d].balances[%d]: token: %w", i, j, err)
			}
			if _, err := decimal.NewFromString(b.Quantity); err != nil {
				return fmt.Errorf("accounts[%d].balances[%d]: quantity: %w", i, j, err)
			}
			if b.PriceUSD != "" {
				if _, err := decimal.NewFromString(b.PriceUSD); err != nil {
					return fmt.Errorf("accounts[%d].balances[%d]: price_usd: %w", i, j, err)
				}
			}
		}
	}
	for i, n := range c.Names {
		if _, err := identity.ParseAddress(n.Address); err != nil {
			return fmt.Errorf("names[%d]: %w", i, err)
		}
		switch strings.ToLower(n.Kind) {
		case "ens", "unitag":
		default:
			return fmt.Errorf("names[%d]: unknown kind %q", i, n.Kind)
		}
	}
	return nil
}
