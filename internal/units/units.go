package units

import (
	"fmt"
	"math"
)

// Dimension classifies a unit symbol. Derived dimensions (Force, Pressure,
// Area, Volume) carry their own base-dimension vectors so that compound
// expressions built from different systems still compare correctly
// (kip/in^2 is compatible with Pa).
type Dimension string

const (
	Length        Dimension = "Length"
	Mass          Dimension = "Mass"
	Time          Dimension = "Time"
	Temperature   Dimension = "Temperature"
	Force         Dimension = "Force"
	Pressure      Dimension = "Pressure"
	Area          Dimension = "Area"
	Volume        Dimension = "Volume"
	Dimensionless Dimension = "Dimensionless"
)

// dimVector is a unit's exponent signature over the base dimensions
// mass, length, time, temperature. Comparable with ==.
type dimVector struct {
	m, l, t, th int
}

var dimVectors = map[Dimension]dimVector{
	Length:        {l: 1},
	Mass:          {m: 1},
	Time:          {t: 1},
	Temperature:   {th: 1},
	Force:         {m: 1, l: 1, t: -2},
	Pressure:      {m: 1, l: -1, t: -2},
	Area:          {l: 2},
	Volume:        {l: 3},
	Dimensionless: {},
}

func (v dimVector) scale(n int) dimVector {
	return dimVector{m: v.m * n, l: v.l * n, t: v.t * n, th: v.th * n}
}

func (v dimVector) add(o dimVector) dimVector {
	return dimVector{m: v.m + o.m, l: v.l + o.l, t: v.t + o.t, th: v.th + o.th}
}

// Definition describes one registered unit symbol. Factor converts one of
// this unit into the coherent SI base combination for its dimension.
// Composite units (ksi = kip/in^2) expand during simplification and derive
// their factor from the expansion; their own Factor field is ignored.
type Definition struct {
	Symbol    string
	Dimension Dimension
	Factor    float64
	Base      string // canonical base symbol of the dimension, e.g. "m"
	Composite string // expansion for composite units, e.g. "kip/in^2"
}

// registry is seeded below and extended once at startup (config units);
// evaluation never mutates it.
var registry = map[string]Definition{}

func init() {
	for _, def := range defaultDefinitions() {
		registry[def.Symbol] = def
	}
}

func defaultDefinitions() []Definition {
	return []Definition{
		// length
		{Symbol: "m", Dimension: Length, Factor: 1, Base: "m"},
		{Symbol: "mm", Dimension: Length, Factor: 0.001, Base: "m"},
		{Symbol: "cm", Dimension: Length, Factor: 0.01, Base: "m"},
		{Symbol: "km", Dimension: Length, Factor: 1000, Base: "m"},
		{Symbol: "in", Dimension: Length, Factor: 0.0254, Base: "m"},
		{Symbol: "ft", Dimension: Length, Factor: 0.3048, Base: "m"},
		{Symbol: "yd", Dimension: Length, Factor: 0.9144, Base: "m"},
		{Symbol: "mi", Dimension: Length, Factor: 1609.344, Base: "m"},

		// mass
		{Symbol: "kg", Dimension: Mass, Factor: 1, Base: "kg"},
		{Symbol: "g", Dimension: Mass, Factor: 0.001, Base: "kg"},
		{Symbol: "mg", Dimension: Mass, Factor: 1e-6, Base: "kg"},
		{Symbol: "t", Dimension: Mass, Factor: 1000, Base: "kg"},
		{Symbol: "lbm", Dimension: Mass, Factor: 0.45359237, Base: "kg"},
		{Symbol: "slug", Dimension: Mass, Factor: 14.59390294, Base: "kg"},

		// time
		{Symbol: "s", Dimension: Time, Factor: 1, Base: "s"},
		{Symbol: "ms", Dimension: Time, Factor: 0.001, Base: "s"},
		{Symbol: "min", Dimension: Time, Factor: 60, Base: "s"},
		{Symbol: "h", Dimension: Time, Factor: 3600, Base: "s"},

		// temperature (factor-scaled kinds only; degC/degF need offsets)
		{Symbol: "K", Dimension: Temperature, Factor: 1, Base: "K"},
		{Symbol: "R", Dimension: Temperature, Factor: 5.0 / 9.0, Base: "K"},

		// force
		{Symbol: "N", Dimension: Force, Factor: 1, Base: "N"},
		{Symbol: "kN", Dimension: Force, Factor: 1000, Base: "N"},
		{Symbol: "MN", Dimension: Force, Factor: 1e6, Base: "N"},
		{Symbol: "lbf", Dimension: Force, Factor: 4.4482216152605, Base: "N"},
		{Symbol: "kip", Dimension: Force, Factor: 4448.2216152605, Base: "N"},

		// pressure
		{Symbol: "Pa", Dimension: Pressure, Factor: 1, Base: "Pa"},
		{Symbol: "kPa", Dimension: Pressure, Factor: 1e3, Base: "Pa"},
		{Symbol: "MPa", Dimension: Pressure, Factor: 1e6, Base: "Pa"},
		{Symbol: "GPa", Dimension: Pressure, Factor: 1e9, Base: "Pa"},
		{Symbol: "psi", Dimension: Pressure, Factor: 6894.757293168361, Base: "Pa"},
		{Symbol: "psf", Dimension: Pressure, Factor: 47.88025898033584, Base: "Pa"},
		{Symbol: "ksi", Dimension: Pressure, Base: "Pa", Composite: "kip/in^2"},

		// area
		{Symbol: "ha", Dimension: Area, Factor: 1e4, Base: "m^2"},
		{Symbol: "acre", Dimension: Area, Factor: 4046.8564224, Base: "m^2"},

		// volume
		{Symbol: "L", Dimension: Volume, Factor: 0.001, Base: "m^3"},
		{Symbol: "gal", Dimension: Volume, Factor: 0.003785411784, Base: "m^3"},

		// angle
		{Symbol: "rad", Dimension: Dimensionless, Factor: 1, Base: "rad"},
		{Symbol: "deg", Dimension: Dimensionless, Factor: math.Pi / 180, Base: "rad"},
	}
}

// IsValid reports whether symbol is a registered unit.
func IsValid(symbol string) bool {
	_, ok := registry[symbol]
	return ok
}

// DimensionOf returns the dimension of a registered symbol.
func DimensionOf(symbol string) (Dimension, bool) {
	def, ok := registry[symbol]
	if !ok {
		return "", false
	}
	return def.Dimension, true
}

// BaseOf returns the canonical base symbol for a registered symbol's dimension.
func BaseOf(symbol string) (string, bool) {
	def, ok := registry[symbol]
	if !ok {
		return "", false
	}
	return def.Base, true
}

// FactorOf returns the symbol's conversion factor into its dimension's SI
// base combination, expanding composite definitions.
func FactorOf(symbol string) (float64, bool) {
	def, ok := registry[symbol]
	if !ok {
		return 0, false
	}
	if def.Composite != "" {
		return ConversionFactor(def.Composite)
	}
	return def.Factor, true
}

// ConversionFactor computes the factor for a compound unit expression as the
// product of each symbol's factor raised to its exponent. The second result
// is false when the expression contains an unregistered symbol.
func ConversionFactor(expr string) (float64, bool) {
	terms, ok := parseExpr(expr)
	if !ok {
		return 0, false
	}
	factor := 1.0
	for _, t := range terms {
		f, ok := FactorOf(t.symbol)
		if !ok {
			return 0, false
		}
		factor *= math.Pow(f, float64(t.exp))
	}
	return factor, true
}

// vectorOf computes the base-dimension signature of a compound expression.
func vectorOf(expr string) (dimVector, bool) {
	terms, ok := parseExpr(expr)
	if !ok {
		return dimVector{}, false
	}
	var v dimVector
	for _, t := range terms {
		def, ok := registry[t.symbol]
		if !ok {
			return dimVector{}, false
		}
		v = v.add(dimVectors[def.Dimension].scale(t.exp))
	}
	return v, true
}

// AreCompatible reports whether two unit expressions describe the same
// physical dimension, so a value in one can be converted into the other.
func AreCompatible(a, b string) bool {
	sa, sb := Simplify(a), Simplify(b)
	if sa == sb {
		return true
	}
	va, ok := vectorOf(sa)
	if !ok {
		return false
	}
	vb, ok := vectorOf(sb)
	if !ok {
		return false
	}
	return va == vb
}

// Convert rescales v from one unit expression into a compatible one.
func Convert(v float64, from, to string) (float64, bool) {
	if !AreCompatible(from, to) {
		return 0, false
	}
	ff, ok := ConversionFactor(Simplify(from))
	if !ok {
		return 0, false
	}
	ft, ok := ConversionFactor(Simplify(to))
	if !ok {
		return 0, false
	}
	return v * ff / ft, true
}

// Register adds a unit definition. Intended for startup configuration; the
// registry must not change once evaluation begins.
func Register(def Definition) error {
	if def.Symbol == "" {
		return fmt.Errorf("unit symbol must not be empty")
	}
	if _, exists := registry[def.Symbol]; exists {
		return fmt.Errorf("unit %q is already defined", def.Symbol)
	}
	if _, ok := dimVectors[def.Dimension]; !ok {
		return fmt.Errorf("unit %q has unknown dimension %q", def.Symbol, def.Dimension)
	}
	if def.Composite == "" && (def.Factor <= 0 || math.IsInf(def.Factor, 0) || math.IsNaN(def.Factor)) {
		return fmt.Errorf("unit %q must have a positive conversion factor", def.Symbol)
	}
	if def.Composite != "" {
		if _, ok := ConversionFactor(def.Composite); !ok {
			return fmt.Errorf("unit %q has unresolvable composite expansion %q", def.Symbol, def.Composite)
		}
	}
	if def.Base == "" {
		def.Base = dimensionBases[def.Dimension]
	}
	registry[def.Symbol] = def
	return nil
}

// dimensionBases supplies the canonical base symbol for definitions that do
// not set one, which is the common case for configured units.
var dimensionBases = map[Dimension]string{
	Length:        "m",
	Mass:          "kg",
	Time:          "s",
	Temperature:   "K",
	Force:         "N",
	Pressure:      "Pa",
	Area:          "m^2",
	Volume:        "m^3",
	Dimensionless: "rad",
}
