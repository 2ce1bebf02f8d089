package equivalency

// EPA Greenhouse Gas Equivalencies Calculator factors (2024 edition), in
// kg CO2e per item:
//
//	equivalent = kg_CO2e / factor
const (
	// TreeSeedlingFactor is CO2e absorbed by one urban tree seedling over 10 years.
	TreeSeedlingFactor = 60.0

	// HomeDayFactor is CO2e of one day of average home electricity use.
	HomeDayFactor = 18.3

	// MilesDrivenFactor is CO2e per mile of an average passenger vehicle.
	MilesDrivenFactor = 0.192

	// SmartphoneChargeFactor is CO2e per full smartphone charge.
	SmartphoneChargeFactor = 0.00822
)

// Unit conversions to kilograms.
const (
	gramsToKg  = 0.001
	tonsToKg   = 1000.0
	poundsToKg = 0.453592
)

const (
	// MinThresholdKg is the smallest total that gets equivalents; below it
	// the numbers round to zero.
	MinThresholdKg = 1.0

	// millionThreshold switches formatted values to "~X.X million".
	millionThreshold = 1_000_000

	// billionThreshold switches formatted values to "~X.X billion".
	billionThreshold = 1_000_000_000
)
