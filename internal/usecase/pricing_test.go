package usecase

import (
	"testing"

	"github.com/shopspring/decimal"
)

func d(s string) decimal.Decimal {
	v, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return v
}

func TestPricerAppliesVATAfterDiscount(t *testing.T) {
	pricer := NewPricer(d("10"), d("5"))

	quote := pricer.Price(d("100"), d("100"), d("20"))

	if !quote.Subtotal.Equal(d("100")) {
		t.Fatalf("unexpected subtotal %s", quote.Subtotal)
	}
	if !quote.Discount.Equal(d("20")) {
		t.Fatalf("unexpected discount %s", quote.Discount)
	}
	if !quote.VAT.Equal(d("8")) {
		t.Fatalf("VAT should apply to the discounted subtotal, got %s", quote.VAT)
	}
	if !quote.Total.Equal(d("93")) {
		t.Fatalf("unexpected total %s", quote.Total)
	}
}

func TestPricerCapsDiscountAtSubtotal(t *testing.T) {
	pricer := NewPricer(d("10"), d("5"))

	quote := pricer.Price(d("30"), d("30"), d("50"))

	if !quote.Discount.Equal(d("30")) {
		t.Fatalf("discount should be capped at subtotal, got %s", quote.Discount)
	}
	if !quote.VAT.IsZero() {
		t.Fatalf("VAT on a fully discounted basket should be zero, got %s", quote.VAT)
	}
	if !quote.Total.Equal(d("5")) {
		t.Fatalf("total should be the delivery fee only, got %s", quote.Total)
	}
}

func TestPricerRoundsToCents(t *testing.T) {
	pricer := NewPricer(d("10"), d("5"))

	quote := pricer.Price(d("33.33"), d("33.33"), d("0"))

	if !quote.VAT.Equal(d("3.33")) {
		t.Fatalf("unexpected VAT %s", quote.VAT)
	}
	if !quote.Total.Equal(d("41.66")) {
		t.Fatalf("unexpected total %s", quote.Total)
	}
}

func TestPricerExemptsNonVatableLines(t *testing.T) {
	pricer := NewPricer(d("10"), d("5"))

	// 60 of the 100 subtotal carries VAT; none of it on the exempt 40.
	quote := pricer.Price(d("100"), d("60"), d("0"))
	if !quote.VAT.Equal(d("6")) {
		t.Fatalf("unexpected VAT %s", quote.VAT)
	}
	if !quote.Total.Equal(d("111")) {
		t.Fatalf("unexpected total %s", quote.Total)
	}

	// The discount is spread proportionally, so the taxable base shrinks to
	// 60 * 80/100 = 48.
	quote = pricer.Price(d("100"), d("60"), d("20"))
	if !quote.VAT.Equal(d("4.8")) {
		t.Fatalf("unexpected VAT %s", quote.VAT)
	}
	if !quote.Total.Equal(d("89.8")) {
		t.Fatalf("unexpected total %s", quote.Total)
	}

	// A fully exempt basket has no VAT at all.
	quote = pricer.Price(d("100"), d("0"), d("0"))
	if !quote.VAT.IsZero() {
		t.Fatalf("exempt basket taxed: %s", quote.VAT)
	}
	if !quote.Total.Equal(d("105")) {
		t.Fatalf("unexpected total %s", quote.Total)
	}
}

func TestValidateEmail(t *testing.T) {
	cases := map[string]bool{
		"user@example.com": true,
		"user@":            false,
		"@example.com":     false,
		"no-at-sign":       false,
		"":                 false,
	}
	for email, want := range cases {
		if got := ValidateEmail(email); got != want {
			t.Fatalf("ValidateEmail(%q) = %v, want %v", email, got, want)
		}
	}
}

func TestPositiveAmount(t *testing.T) {
	if !PositiveAmount(d("0.01")) {
		t.Fatalf("positive amount rejected")
	}
	if PositiveAmount(d("0")) {
		t.Fatalf("zero amount accepted")
	}
	if PositiveAmount(d("-1")) {
		t.Fatalf("negative amount accepted")
	}
}
