package model

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal {
	v, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return v
}

func TestTierFor(t *testing.T) {
	cases := []struct {
		lifetime int64
		want     LoyaltyTier
	}{
		{0, TierBronze},
		{499, TierBronze},
		{500, TierSilver},
		{1999, TierSilver},
		{2000, TierGold},
		{100000, TierGold},
	}
	for _, c := range cases {
		if got := TierFor(c.lifetime); got != c.want {
			t.Fatalf("TierFor(%d) = %s, want %s", c.lifetime, got, c.want)
		}
	}
}

func TestTierDiscountPercent(t *testing.T) {
	if !TierDiscountPercent(TierBronze).Equal(decimal.Zero) {
		t.Fatalf("bronze discount should be zero")
	}
	if !TierDiscountPercent(TierSilver).Equal(dec("2")) {
		t.Fatalf("silver discount should be 2")
	}
	if !TierDiscountPercent(TierGold).Equal(dec("5")) {
		t.Fatalf("gold discount should be 5")
	}
}

func TestPromoDiscountFor(t *testing.T) {
	percent := PromoCode{Kind: PromoKindPercent, Value: dec("10")}
	if got := percent.DiscountFor(dec("250")); !got.Equal(dec("25")) {
		t.Fatalf("percent discount = %s, want 25", got)
	}

	fixed := PromoCode{Kind: PromoKindFixed, Value: dec("15")}
	if got := fixed.DiscountFor(dec("250")); !got.Equal(dec("15")) {
		t.Fatalf("fixed discount = %s, want 15", got)
	}
	if got := fixed.DiscountFor(dec("10")); !got.Equal(dec("10")) {
		t.Fatalf("capped discount = %s, want 10", got)
	}

	unknown := PromoCode{Kind: "loot", Value: dec("15")}
	if got := unknown.DiscountFor(dec("250")); !got.Equal(decimal.Zero) {
		t.Fatalf("unknown kind discount = %s, want 0", got)
	}
}

func TestBasketSubtotal(t *testing.T) {
	basket := Basket{Items: []BasketItem{
		{UnitPrice: dec("28.50"), Quantity: dec("1.5")},
		{UnitPrice: dec("4.20"), Quantity: dec("3")},
	}}
	if got := basket.Subtotal(); !got.Equal(dec("55.35")) {
		t.Fatalf("subtotal = %s, want 55.35", got)
	}
	if got := (Basket{}).Subtotal(); !got.Equal(decimal.Zero) {
		t.Fatalf("empty subtotal = %s, want 0", got)
	}
}

func TestSessionExpired(t *testing.T) {
	now := time.Now()
	live := Session{ExpiresAt: now.Add(time.Minute)}
	if live.Expired(now) {
		t.Fatalf("future expiry reported expired")
	}
	stale := Session{ExpiresAt: now.Add(-time.Minute)}
	if !stale.Expired(now) {
		t.Fatalf("past expiry reported live")
	}
	boundary := Session{ExpiresAt: now}
	if !boundary.Expired(now) {
		t.Fatalf("expiry at now should count as expired")
	}
}

func TestStockAvailable(t *testing.T) {
	stock := Stock{Quantity: dec("10"), Reserved: dec("3.5")}
	if got := stock.Available(); !got.Equal(dec("6.5")) {
		t.Fatalf("available = %s, want 6.5", got)
	}
}
