package entities

// PaisePerUnit converts whole currency units to the smallest unit.
const PaisePerUnit int64 = 100

// PricingQuote is the cost breakdown for a new listing. Costs are whole
// currency units; TotalInPaise is what gets charged.
type PricingQuote struct {
	IsFirstListing bool  `json:"isFirstListing"`
	BaseCost       int64 `json:"baseCost"`
	FeatureCost    int64 `json:"featureCost"`
	TotalCost      int64 `json:"totalCost"`
	TotalInPaise   int64 `json:"amountInPaise"`
}

func (q PricingQuote) IsFree() bool {
	return q.TotalInPaise == 0
}

func ToPaise(units int64) int64 {
	return units * PaisePerUnit
}

// PaiseToUnits is for presentation boundaries only (e.g. SDKs that take decimals).
func PaiseToUnits(paise int64) float64 {
	return float64(paise) / float64(PaisePerUnit)
}

func AbsDiff(a, b int64) int64 {
	if a > b {
		return a - b
	}
	return b - a
}
