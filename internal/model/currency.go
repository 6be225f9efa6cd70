package model

import "strings"

// Currency is an ISO 4217 code.
type Currency string

// USD is the default currency for new wallets.
const USD Currency = "USD"

var supportedCurrencies = []Currency{
	"USD", "EUR", "GBP", "JPY", "CAD", "AUD", "CNY", "INR",
	"BDT", "PKR", "LKR", "NPR", "MYR", "SGD", "THB", "VND",
	"IDR", "PHP", "KRW", "TWD", "HKD", "AED", "SAR", "QAR",
	"KWD", "BHD", "OMR", "JOD", "EGP", "ZAR", "NGN", "KES",
	"GHS", "TZS", "UGX", "RWF", "ETB", "MAD", "TND", "DZD",
	"LYD", "BRL", "ARS", "CLP", "COP", "PEN", "MXN", "RUB",
	"TRY", "PLN", "CZK", "HUF", "RON", "BGN", "HRK", "RSD",
	"UAH", "BYN", "KZT", "UZS", "KGS", "TJS", "TMT", "AFN",
	"IRR", "IQD", "SYP", "LBP", "ILS",
}

var currencySet = func() map[Currency]bool {
	m := make(map[Currency]bool, len(supportedCurrencies))
	for _, c := range supportedCurrencies {
		m[c] = true
	}
	return m
}()

// Currencies returns the supported currency codes in display order.
func Currencies() []Currency {
	return append([]Currency(nil), supportedCurrencies...)
}

// Valid reports whether c is a supported currency code.
func (c Currency) Valid() bool {
	return currencySet[c]
}

// ParseCurrency normalizes s ("usd", " Eur ") to a supported code.
func ParseCurrency(s string) (Currency, bool) {
	c := Currency(strings.ToUpper(strings.TrimSpace(s)))
	return c, c.Valid()
}
