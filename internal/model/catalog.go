package model

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

type Product struct {
	Slug            string
	Name            string
	Price           int64 // cents
	Order           int
	DescriptionHTML string
}

type Plan struct {
	Slug            string
	Name            string
	Interval        string
	PriceID         string
	Order           int
	DescriptionHTML string
}

var pricePrinter = message.NewPrinter(language.AmericanEnglish)

// FormatPrice renders cents as a dollar amount, e.g. 250000 -> "$2,500.00".
// Integer arithmetic only.
func (p *Product) FormatPrice() string {
	return FormatCents(p.Price)
}

func FormatCents(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return pricePrinter.Sprintf("%s$%d.%02d", sign, cents/100, cents%100)
}
