package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Tier is the benefit level derived from a customer's aggregate balance.
type Tier string

const (
	TierSilver   Tier = "SILVER"
	TierGold     Tier = "GOLD"
	TierPlatinum Tier = "PLATINUM"
)

// tierThresholds is ordered ascending; a balance strictly below a limit
// falls into that tier, anything above the last limit is PLATINUM.
var tierThresholds = []struct {
	below decimal.Decimal
	tier  Tier
}{
	{below: decimal.NewFromInt(1000), tier: TierSilver},
	{below: decimal.NewFromInt(10000), tier: TierGold},
}

var (
	feePercentages = map[Tier]decimal.Decimal{
		TierSilver:   decimal.RequireFromString("0.02"),
		TierGold:     decimal.RequireFromString("0.01"),
		TierPlatinum: decimal.Zero,
	}

	fraudThresholds = map[Tier]decimal.Decimal{
		TierSilver:   decimal.NewFromInt(700),
		TierGold:     decimal.NewFromInt(7000),
		TierPlatinum: decimal.NewFromInt(30000),
	}

	interestRates = map[Tier]decimal.Decimal{
		TierSilver:   decimal.RequireFromString("0.15"),
		TierGold:     decimal.RequireFromString("0.10"),
		TierPlatinum: decimal.RequireFromString("0.05"),
	}

	// Flat appointment fees. GOLD pays less than SILVER here, unlike the
	// percentage schedule ordering; both tables are kept as issued.
	appointmentCosts = map[Tier]decimal.Decimal{
		TierGold:     decimal.NewFromInt(10),
		TierSilver:   decimal.NewFromInt(20),
		TierPlatinum: decimal.Zero,
	}
)

// Classify maps a reference-currency balance to a tier.
func Classify(total decimal.Decimal) Tier {
	for _, t := range tierThresholds {
		if total.LessThan(t.below) {
			return t.tier
		}
	}
	return TierPlatinum
}

// FeePercentage is the share of a transaction amount charged as fee.
func FeePercentage(t Tier) decimal.Decimal {
	return lookup(feePercentages, t, "fee percentage")
}

// FraudThreshold is the largest amount not flagged as fraud.
func FraudThreshold(t Tier) decimal.Decimal {
	return lookup(fraudThresholds, t, "fraud threshold")
}

// InterestRate is the interest offered to the tier.
func InterestRate(t Tier) decimal.Decimal {
	return lookup(interestRates, t, "interest rate")
}

// AppointmentCost is the flat EUR fee for a branch appointment.
func AppointmentCost(t Tier) decimal.Decimal {
	return lookup(appointmentCosts, t, "appointment cost")
}

// lookup panics on an unmapped tier: Classify is total, so a miss means
// the policy tables are broken and no value can be trusted.
func lookup(table map[Tier]decimal.Decimal, t Tier, name string) decimal.Decimal {
	v, ok := table[t]
	if !ok {
		panic(fmt.Sprintf("domain: no %s defined for tier %q", name, t))
	}
	return v
}
