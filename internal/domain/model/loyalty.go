package model

import "github.com/shopspring/decimal"

// LoyaltyTier is a lifetime-points bracket granting a checkout discount.
type LoyaltyTier string

const (
	TierBronze LoyaltyTier = "BRONZE"
	TierSilver LoyaltyTier = "SILVER"
	TierGold   LoyaltyTier = "GOLD"
)

const (
	silverThreshold = 500
	goldThreshold   = 2000
)

// TierFor returns the tier a lifetime points total falls into.
func TierFor(lifetime int64) LoyaltyTier {
	switch {
	case lifetime >= goldThreshold:
		return TierGold
	case lifetime >= silverThreshold:
		return TierSilver
	default:
		return TierBronze
	}
}

// TierDiscountPercent returns the checkout discount granted by a tier.
func TierDiscountPercent(tier LoyaltyTier) decimal.Decimal {
	switch tier {
	case TierGold:
		return decimal.NewFromInt(5)
	case TierSilver:
		return decimal.NewFromInt(2)
	default:
		return decimal.Zero
	}
}

// LoyaltyAccount tracks redeemable and lifetime points of a customer.
type LoyaltyAccount struct {
	CustomerID     int64
	Points         int64
	LifetimePoints int64
}

// Tier derives the account's current tier from lifetime points.
func (a LoyaltyAccount) Tier() LoyaltyTier {
	return TierFor(a.LifetimePoints)
}
