package domain

import (
	"math"

	"github.com/AnaFlavia-corretora/pcd/pkg/currency"
)

// Discount holds the metrics derived from a record's public/PCD price pair.
// Discounts are computed on demand at render time and never written back
// onto the model.
type Discount struct {
	Amount  float64 `json:"desconto"`
	Percent float64 `json:"desconto_percentual"`
}

// DiscountAmount returns the difference between the public price and the PCD
// price. Absent or malformed price fields count as zero, so the result is
// defined for every record.
func DiscountAmount(v Vehicle) float64 {
	return currency.ParseBRL(v.PrecoPublico) - currency.ParseBRL(v.PrecoPCD)
}

// DiscountPercent returns the discount as a percentage of the public price,
// rounded to two decimals. Zero when the public price is absent, zero or
// negative.
func DiscountPercent(v Vehicle) float64 {
	publico := currency.ParseBRL(v.PrecoPublico)
	if publico <= 0 {
		return 0
	}
	pct := DiscountAmount(v) / publico * 100
	return math.Round(pct*100) / 100
}

// CalculateDiscount derives both discount metrics for a record.
func CalculateDiscount(v Vehicle) Discount {
	return Discount{
		Amount:  DiscountAmount(v),
		Percent: DiscountPercent(v),
	}
}
