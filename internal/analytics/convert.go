package analytics

const (
	// KgPerMaund converts kilograms to maunds, the local mass unit cotton
	// is priced in.
	KgPerMaund = 37.3242

	// KgPerBale is the assumed packed weight of one bale.
	KgPerBale = 150.0
)

// MaundsFromKg converts a weight in kilograms to maunds.
// Non-positive weights yield 0.
func MaundsFromKg(weightKg float64) float64 {
	if weightKg <= 0 {
		return 0
	}
	return weightKg / KgPerMaund
}

// KgFromBales returns the assumed total weight of a bale count.
func KgFromBales(bales int) float64 {
	if bales <= 0 {
		return 0
	}
	return float64(bales) * KgPerBale
}

// AmountForWeight prices a weight at a per-maund rate.
// Non-positive weight or rate yields 0.
func AmountForWeight(weightKg, ratePerMaund float64) float64 {
	if weightKg <= 0 || ratePerMaund <= 0 {
		return 0
	}
	return MaundsFromKg(weightKg) * ratePerMaund
}
