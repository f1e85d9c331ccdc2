// Package locale formats fiat amounts and token quantities for the active language.
package locale

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Missing is rendered for values that are not known.
const Missing = "-"

// FiatKind selects a fiat style.
type FiatKind int

const (
	FiatBalance FiatKind = iota
	FiatPrice
	FiatCompact
)

// NumberKind selects a plain number style.
type NumberKind int

const (
	TokenQuantity NumberKind = iota
	Integer
	Percent
)

var (
	minBalance  = decimal.RequireFromString("0.01")
	minPrice    = decimal.RequireFromString("0.000001")
	minQuantity = decimal.RequireFromString("0.00001")
	thousand    = decimal.NewFromInt(1_000)
	million     = decimal.NewFromInt(1_000_000)
	billion     = decimal.NewFromInt(1_000_000_000)
)

// Formatter renders numbers with a message printer for one language.
type Formatter struct {
	printer *message.Printer
	symbol  string
}

// New builds a formatter for a BCP-47 language tag and a currency symbol.
func New(lang, currencySymbol string) (*Formatter, error) {
	tag := language.AmericanEnglish
	if strings.TrimSpace(lang) != "" {
		parsed, err := language.Parse(lang)
		if err != nil {
			return nil, fmt.Errorf("parse language %q: %w", lang, err)
		}
		tag = parsed
	}
	if currencySymbol == "" {
		currencySymbol = "$"
	}
	return &Formatter{printer: message.NewPrinter(tag), symbol: currencySymbol}, nil
}

func (f *Formatter) decimalString(d decimal.Decimal, minFrac, maxFrac int) string {
	v, _ := d.Float64()
	return f.printer.Sprint(number.Decimal(v, number.MinFractionDigits(minFrac), number.MaxFractionDigits(maxFrac)))
}

type compactUnit struct {
	size   decimal.Decimal
	suffix string
}

var compactUnits = []compactUnit{{thousand, "K"}, {million, "M"}, {billion, "B"}}

// compact scales abs down to the largest unit it reaches once rounded to two
// places, so 999999 reads 1M rather than 1000K.
func compact(abs decimal.Decimal) (decimal.Decimal, string) {
	idx := -1
	for i, u := range compactUnits {
		if abs.Round(2).GreaterThanOrEqual(u.size) {
			idx = i
		}
	}
	if idx < 0 {
		return abs, ""
	}
	scaled := abs.Div(compactUnits[idx].size).Round(2)
	if scaled.GreaterThanOrEqual(thousand) && idx+1 < len(compactUnits) {
		idx++
		scaled = abs.Div(compactUnits[idx].size).Round(2)
	}
	return scaled, compactUnits[idx].suffix
}

// FormatFiat renders a fiat amount. Non-zero amounts too small for the style
// render as "<$0.01" (or the price floor).
func (f *Formatter) FormatFiat(amount decimal.Decimal, kind FiatKind) string {
	sign := ""
	if amount.IsNegative() {
		sign = "-"
		amount = amount.Abs()
	}
	switch kind {
	case FiatPrice:
		switch {
		case amount.IsZero():
			return f.symbol + f.decimalString(amount, 2, 2)
		case amount.LessThan(minPrice):
			return sign + "<" + f.symbol + f.decimalString(minPrice, 6, 6)
		case amount.LessThan(decimal.NewFromInt(1)):
			return sign + f.symbol + f.decimalString(amount, 2, 6)
		default:
			return sign + f.symbol + f.decimalString(amount, 2, 2)
		}
	case FiatCompact:
		scaled, suffix := compact(amount)
		if suffix == "" {
			return sign + f.FormatFiat(amount, FiatBalance)
		}
		return sign + f.symbol + f.decimalString(scaled, 0, 2) + suffix
	default:
		if !amount.IsZero() && amount.LessThan(minBalance) {
			return sign + "<" + f.symbol + f.decimalString(minBalance, 2, 2)
		}
		return sign + f.symbol + f.decimalString(amount, 2, 2)
	}
}

// FormatFiatOptional renders Missing when the amount is unknown.
func (f *Formatter) FormatFiatOptional(amount decimal.NullDecimal, kind FiatKind) string {
	if !amount.Valid {
		return Missing
	}
	return f.FormatFiat(amount.Decimal, kind)
}

// FormatNumber renders a non-fiat value.
func (f *Formatter) FormatNumber(value decimal.Decimal, kind NumberKind) string {
	switch kind {
	case Integer:
		return f.printer.Sprintf("%d", value.Round(0).IntPart())
	case Percent:
		return f.decimalString(value, 0, 2) + "%"
	default:
		abs := value.Abs()
		switch {
		case value.IsZero():
			return "0"
		case abs.LessThan(minQuantity):
			sign := ""
			if value.IsNegative() {
				sign = "-"
			}
			return sign + "<" + f.decimalString(minQuantity, 5, 5)
		case abs.LessThan(decimal.NewFromInt(1)):
			return f.decimalString(value, 0, 5)
		case abs.Round(2).LessThan(million):
			return f.decimalString(value, 0, 2)
		default:
			return f.FormatCompact(value)
		}
	}
}

// FormatCompact renders large quantities with a K/M/B suffix.
func (f *Formatter) FormatCompact(value decimal.Decimal) string {
	sign := ""
	if value.IsNegative() {
		sign = "-"
	}
	scaled, suffix := compact(value.Abs())
	if suffix == "" {
		return sign + f.decimalString(scaled, 0, 2)
	}
	return sign + f.decimalString(scaled, 0, 2) + suffix
}
