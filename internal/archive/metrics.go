package archive

import (
	"fmt"
	"math"
	"strings"
)

// Physical constants for Earth-unit conversion.
const (
	gravitationalConstant = 6.674e-11 // m^3 / (kg * s^2)
	earthMassKg           = 5.972e24
	earthRadiusM          = 6.371e6

	// EarthEscapeVelocityKms is the reference escape velocity ratios are
	// computed against.
	EarthEscapeVelocityKms = 11.2

	// EarthOrbitalPeriodDays converts orbital periods to Earth years.
	EarthOrbitalPeriodDays = 365.25
)

// EscapeVelocityContext lists reference escape velocities in km/s for familiar
// bodies, returned alongside calculations to give the number scale.
var EscapeVelocityContext = map[string]float64{
	"moon":    2.4,
	"mars":    5.0,
	"earth":   11.2,
	"jupiter": 59.5,
	"sun":     617.5,
}

// EscapeVelocity is the derived value object of the escape_velocity tool.
type EscapeVelocity struct {
	PlanetName     string  `json:"pl_name"`
	Mass           float64 `json:"pl_masse"` // Earth masses
	Radius         float64 `json:"pl_rade"`  // Earth radii
	VelocityKms    float64 `json:"escape_velocity_kms"`
	EarthVelocity  float64 `json:"escape_velocity_earth_kms"`
	EarthRatio     float64 `json:"ratio_vs_earth"`
	GravityRatio   float64 `json:"surface_gravity_vs_earth"`
	Difficulty     string  `json:"escape_difficulty"`
	Interpretation string  `json:"interpretation"`
}

// ComputeEscapeVelocity derives v = sqrt(2GM/R) for one record, converting
// from Earth units to SI and reporting km/s. Records without a usable mass or
// radius fail with a MissingDataError.
func ComputeEscapeVelocity(rec PlanetRecord) (*EscapeVelocity, error) {
	var missing []string
	if rec.Mass == nil || *rec.Mass <= 0 {
		missing = append(missing, "pl_masse")
	}
	if rec.Radius == nil || *rec.Radius <= 0 {
		missing = append(missing, "pl_rade")
	}
	if len(missing) > 0 {
		return nil, &MissingDataError{Planet: rec.Name, Columns: missing}
	}

	massKg := *rec.Mass * earthMassKg
	radiusM := *rec.Radius * earthRadiusM
	velocityKms := math.Sqrt(2*gravitationalConstant*massKg/radiusM) / 1000

	// Surface gravity scales as M/R^2 in Earth units.
	gravityRatio := *rec.Mass / (*rec.Radius * *rec.Radius)

	difficulty, notes := classifyEscape(velocityKms)

	return &EscapeVelocity{
		PlanetName:     rec.Name,
		Mass:           *rec.Mass,
		Radius:         *rec.Radius,
		VelocityKms:    round2(velocityKms),
		EarthVelocity:  EarthEscapeVelocityKms,
		EarthRatio:     round2(velocityKms / EarthEscapeVelocityKms),
		GravityRatio:   round2(gravityRatio),
		Difficulty:     difficulty,
		Interpretation: notes,
	}, nil
}

// classifyEscape maps an escape velocity in km/s to the qualitative difficulty
// label and interpretation text.
func classifyEscape(v float64) (difficulty, notes string) {
	var parts []string
	switch {
	case v < 5:
		difficulty = "Muy fácil de escapar"
		parts = append(parts, "very low escape velocity, a light or absent atmosphere is likely")
	case v < 11:
		difficulty = "Moderadamente difícil"
		parts = append(parts, "comparable to Earth, the planet can retain an atmosphere")
	case v < 30:
		difficulty = "Difícil de escapar"
		parts = append(parts, "high escape velocity, significant surface gravity")
	case v < 60:
		difficulty = "Muy difícil de escapar"
		parts = append(parts, "very high escape velocity, consistent with a small gas giant")
	default:
		difficulty = "Extremadamente difícil de escapar"
		parts = append(parts, "extreme escape velocity, consistent with a massive gas giant")
	}
	if v < 20 {
		parts = append(parts, "a Saturn V class rocket could escape")
	} else {
		parts = append(parts, "escape would need rockets beyond current designs")
	}
	return difficulty, strings.Join(parts, "; ")
}

// SkippedRecord flags a record a batch calculation could not process.
type SkippedRecord struct {
	PlanetName string `json:"pl_name"`
	Reason     string `json:"reason"`
}

// ComputeEscapeVelocities runs ComputeEscapeVelocity over a batch. Records
// missing data are reported in the skipped list; the rest still compute.
func ComputeEscapeVelocities(recs []PlanetRecord) ([]EscapeVelocity, []SkippedRecord) {
	results := make([]EscapeVelocity, 0, len(recs))
	var skipped []SkippedRecord
	for _, rec := range recs {
		ev, err := ComputeEscapeVelocity(rec)
		if err != nil {
			skipped = append(skipped, SkippedRecord{PlanetName: rec.Name, Reason: err.Error()})
			continue
		}
		results = append(results, *ev)
	}
	return results, skipped
}

// HabitabilityAssessment is the outcome of the Goldilocks screen for one
// record. It is a heuristic over equilibrium temperature, orbital period and
// mass, not a scientific habitability validation.
type HabitabilityAssessment struct {
	PlanetName string   `json:"pl_name"`
	Habitable  bool     `json:"habitable"`
	Reasons    []string `json:"reasons,omitempty"`
}

// AssessHabitability screens one record against the Goldilocks bounds.
// Records missing any of the three inputs fail with a MissingDataError.
func AssessHabitability(rec PlanetRecord) (*HabitabilityAssessment, error) {
	var missing []string
	if rec.Mass == nil {
		missing = append(missing, "pl_masse")
	}
	if rec.OrbitalPeriod == nil {
		missing = append(missing, "pl_orbper")
	}
	if rec.EqTemperature == nil {
		missing = append(missing, "pl_eqt")
	}
	if len(missing) > 0 {
		return nil, &MissingDataError{Planet: rec.Name, Columns: missing}
	}

	a := &HabitabilityAssessment{PlanetName: rec.Name, Habitable: true}
	if *rec.Mass <= HabitableMassMin || *rec.Mass >= HabitableMassMax {
		a.Habitable = false
		a.Reasons = append(a.Reasons, fmt.Sprintf("mass %.2f M⊕ outside %.1f-%.1f", *rec.Mass, HabitableMassMin, HabitableMassMax))
	}
	if *rec.OrbitalPeriod <= HabitablePeriodMin || *rec.OrbitalPeriod >= HabitablePeriodMax {
		a.Habitable = false
		a.Reasons = append(a.Reasons, fmt.Sprintf("orbital period %.1f d outside %.0f-%.0f", *rec.OrbitalPeriod, HabitablePeriodMin, HabitablePeriodMax))
	}
	if *rec.EqTemperature <= HabitableTempMin || *rec.EqTemperature >= HabitableTempMax {
		a.Habitable = false
		a.Reasons = append(a.Reasons, fmt.Sprintf("equilibrium temperature %.0f K outside %.0f-%.0f", *rec.EqTemperature, HabitableTempMin, HabitableTempMax))
	}
	return a, nil
}

// EarthComparison is the compare_with_earth tool's value object: the raw
// record plus the orbital period in Earth years and a mass-class reading.
type EarthComparison struct {
	PlanetRecord
	EarthYears     *float64 `json:"orbital_period_earth_years,omitempty"`
	Interpretation string   `json:"interpretation,omitempty"`
}

// CompareWithEarth derives the Earth-relative view of one record. Missing
// columns degrade the output rather than failing it: pl_masse and pl_orbper in
// pscomppars are already expressed in Earth units, so the record itself is the
// comparison.
func CompareWithEarth(rec PlanetRecord) EarthComparison {
	cmp := EarthComparison{PlanetRecord: rec}

	if rec.OrbitalPeriod != nil {
		years := round2(*rec.OrbitalPeriod / EarthOrbitalPeriodDays)
		cmp.EarthYears = &years
	}

	if rec.Mass != nil {
		switch m := *rec.Mass; {
		case m < 0.5:
			cmp.Interpretation = "Planeta muy ligero (posiblemente rocoso pequeño)"
		case m <= 2.0:
			cmp.Interpretation = "Masa similar a la Tierra (super-Tierra)"
		case m <= 10.0:
			cmp.Interpretation = "Mini-Neptuno"
		default:
			cmp.Interpretation = "Gigante gaseoso"
		}
	}
	return cmp
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
