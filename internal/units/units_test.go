package units

import (
	"math"
	"testing"
)

func TestSimplify(t *testing.T) {
	tests := []struct {
		name string
		expr string
		want string
	}{
		{"plain symbol", "m", "m"},
		{"blank", "", ""},
		{"composite expansion", "ksi", "kip/in^2"},
		{"composite cancellation", "ksi*in^2", "kip"},
		{"digit suffix", "in3", "in^3"},
		{"digit suffix in compound", "kip/in2", "kip/in^2"},
		{"moment ordering", "in*kip", "kip-in"},
		{"moment join reads back", "kip-in", "kip-in"},
		{"repeated division", "m/s/s", "m/s^2"},
		{"parenthesized denominator", "kg*m/(s*s)", "kg-m/s^2"},
		{"negative exponent", "m*s^-1", "m/s"},
		{"pure denominator", "1/s", "1/s"},
		{"multi-term denominator", "N/(m*s)", "N/(m*s)"},
		{"full cancellation", "m/m", ""},
		{"unknown symbol kept", "widget", "widget"},
		{"whitespace trimmed", "  kN * m ", "kN-m"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Simplify(tt.expr)
			if got != tt.want {
				t.Errorf("Simplify(%q) = %q, want %q", tt.expr, got, tt.want)
			}
		})
	}
}

func TestSimplifyIdempotent(t *testing.T) {
	exprs := []string{
		"m", "ksi", "kip*in", "m/s^2", "1/s", "N/(m*s)", "kg*m/(s*s)",
		"in3", "widget", "m/m",
	}
	for _, expr := range exprs {
		once := Simplify(expr)
		twice := Simplify(once)
		if once != twice {
			t.Errorf("Simplify not idempotent for %q: first %q, then %q", expr, once, twice)
		}
	}
}

func TestAreCompatible(t *testing.T) {
	tests := []struct {
		name string
		a    string
		b    string
		want bool
	}{
		{"same dimension", "m", "cm", true},
		{"different dimension", "m", "kg", false},
		{"composite vs simple", "ksi", "psi", true},
		{"composite vs expansion", "ksi", "kip/in^2", true},
		{"compound speed", "m/s", "km/h", true},
		{"newton decomposition", "kg*m/s^2", "N", true},
		{"angle units", "rad", "deg", true},
		{"dimensioned vs blank", "m", "", false},
		{"angle vs blank", "rad", "", true},
		{"unknown identical", "widget", "widget", true},
		{"unknown vs known", "widget", "m", false},
		{"moment vs energy shape", "kip-in", "N*m", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AreCompatible(tt.a, tt.b)
			if got != tt.want {
				t.Errorf("AreCompatible(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestConvert(t *testing.T) {
	tests := []struct {
		name  string
		v     float64
		from  string
		to    string
		want  float64
		valid bool
	}{
		{"cm to m", 5, "cm", "m", 0.05, true},
		{"ksi to psi", 1, "ksi", "psi", 1000, true},
		{"hours to seconds", 2, "h", "s", 7200, true},
		{"degrees to radians", 90, "deg", "rad", math.Pi / 2, true},
		{"speed systems", 10, "m/s", "km/h", 36, true},
		{"incompatible", 1, "m", "kg", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Convert(tt.v, tt.from, tt.to)
			if ok != tt.valid {
				t.Fatalf("Convert(%v, %q, %q) ok = %v, want %v", tt.v, tt.from, tt.to, ok, tt.valid)
			}
			if !tt.valid {
				return
			}
			if math.Abs(got-tt.want) > 1e-9*math.Max(1, math.Abs(tt.want)) {
				t.Errorf("Convert(%v, %q, %q) = %v, want %v", tt.v, tt.from, tt.to, got, tt.want)
			}
		})
	}
}

func TestFactorsAndLookups(t *testing.T) {
	if !IsValid("kip") || IsValid("widget") {
		t.Fatalf("IsValid misclassified symbols")
	}

	if dim, ok := DimensionOf("slug"); !ok || dim != Mass {
		t.Errorf("DimensionOf(slug) = %v, %v", dim, ok)
	}
	if base, ok := BaseOf("psi"); !ok || base != "Pa" {
		t.Errorf("BaseOf(psi) = %v, %v", base, ok)
	}

	f, ok := FactorOf("ksi")
	if !ok {
		t.Fatalf("FactorOf(ksi) not resolvable")
	}
	want := 6894757.293168361
	if math.Abs(f-want) > 1e-3 {
		t.Errorf("FactorOf(ksi) = %v, want about %v", f, want)
	}
}

func TestRegister(t *testing.T) {
	if err := Register(Definition{Symbol: "m", Dimension: Length, Factor: 1, Base: "m"}); err == nil {
		t.Errorf("expected duplicate symbol to be rejected")
	}
	if err := Register(Definition{Symbol: "blob", Dimension: "Blobness", Factor: 1}); err == nil {
		t.Errorf("expected unknown dimension to be rejected")
	}
	if err := Register(Definition{Symbol: "zero", Dimension: Length, Factor: 0, Base: "m"}); err == nil {
		t.Errorf("expected non-positive factor to be rejected")
	}

	if err := Register(Definition{Symbol: "furlong", Dimension: Length, Factor: 201.168, Base: "m"}); err != nil {
		t.Fatalf("Register(furlong) failed: %v", err)
	}
	got, ok := Convert(1, "furlong", "m")
	if !ok || math.Abs(got-201.168) > 1e-9 {
		t.Errorf("Convert(1, furlong, m) = %v, %v", got, ok)
	}
}
