package emissions

// Emission factors in kg CO2e per activity unit.
//
//	emission = activity_quantity * factor
const (
	// DieselFactor is kg CO2 per litre of diesel burned.
	DieselFactor = 2.68

	// ElectricityFactor is kg CO2 per kWh drawn from the India average grid.
	ElectricityFactor = 0.65

	// ExplosivesFactor is kg CO2 per kg of explosives detonated.
	ExplosivesFactor = 3.2

	// MethaneFactor is kg CO2e per ton of methane released (25-year GWP).
	MethaneFactor = 25.0
)

// Gap analysis defaults, in kg CO2e per month.
const (
	// DefaultTarget is the monthly emissions target.
	DefaultTarget = 1000.0

	// DefaultSequestration is the monthly sequestration capacity.
	DefaultSequestration = 200.0
)

// Display scaling thresholds.
const (
	// KgPerTon converts kilograms to metric tons (one carbon credit is one ton).
	KgPerTon = 1000.0

	// thousandThreshold switches FormatEmission to the "k" suffix.
	thousandThreshold = 1_000

	// millionThreshold switches FormatEmission to the "M" suffix.
	millionThreshold = 1_000_000

	// percentScale converts a ratio to a percentage.
	percentScale = 100.0
)

// DefaultUnit is the unit label used by FormatEmission when none is given.
const DefaultUnit = "kg CO₂"
