package catalogue

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoad_ThreeBodies(t *testing.T) {
	bodies, err := Load(filepath.Join("testdata", "three.sys"), Options{RadiusScale: 1})
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if len(bodies) != 3 {
		t.Fatalf("expected 3 bodies, got %d", len(bodies))
	}

	if !bodies[0].IsRoot() {
		t.Errorf("star parent = %d, want NoParent", bodies[0].Parent)
	}
	if bodies[1].Parent != 0 {
		t.Errorf("planet parent = %d, want 0", bodies[1].Parent)
	}
	if bodies[2].Parent != 1 {
		t.Errorf("moon parent = %d, want 1", bodies[2].Parent)
	}

	planet := bodies[1]
	if planet.Name != "Planet" || planet.Index != 1 {
		t.Errorf("planet identity = %q/%d", planet.Name, planet.Index)
	}
	if planet.OrbitalRadius != 1000 || planet.OrbitalTilt != 5 || planet.OrbitalPeriod != 20 {
		t.Errorf("planet orbit fields = %+v", planet)
	}
	if planet.AxisTilt != 20 || planet.RotationPeriod != 1 {
		t.Errorf("planet body fields = %+v", planet)
	}
	if planet.Color != (Color{R: 0, G: 0, B: 1}) {
		t.Errorf("planet color = %+v", planet.Color)
	}
}

func TestLoad_RadiusScaleAndRandomOrbit(t *testing.T) {
	bodies, err := Load(filepath.Join("testdata", "three.sys"), DefaultOptions(42))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if bodies[0].Radius != 100*DefaultRadiusScale {
		t.Errorf("star radius = %v, want %v", bodies[0].Radius, 100*DefaultRadiusScale)
	}

	for _, b := range bodies {
		if b.Orbit < 0 || b.Orbit >= 360 {
			t.Errorf("%s initial orbit %v outside [0,360)", b.Name, b.Orbit)
		}
		if b.Spin != 0 {
			t.Errorf("%s initial spin = %v, want 0", b.Name, b.Spin)
		}
	}

	// Same seed, same start
	again, _ := Load(filepath.Join("testdata", "three.sys"), DefaultOptions(42))
	for i := range bodies {
		if bodies[i].Orbit != again[i].Orbit {
			t.Errorf("body %d orbit not reproducible: %v vs %v", i, bodies[i].Orbit, again[i].Orbit)
		}
	}
}

func TestLoad_Missing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope"), DefaultOptions(1))
	if !errors.Is(err, ErrCatalogueUnavailable) {
		t.Fatalf("expected ErrCatalogueUnavailable, got %v", err)
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected underlying os.ErrNotExist, got %v", err)
	}

	var le *LoadError
	if !errors.As(err, &le) {
		t.Fatal("expected *LoadError")
	}
	if le.Path == "" {
		t.Error("LoadError.Path should be set")
	}
}

func TestLoad_ZeroPeriod(t *testing.T) {
	_, err := Load(filepath.Join("testdata", "zero_period.sys"), DefaultOptions(1))
	if !errors.Is(err, ErrInvalidPeriod) {
		t.Fatalf("expected ErrInvalidPeriod, got %v", err)
	}

	var le *LoadError
	if errors.As(err, &le) {
		if le.Record != 1 || le.Field != "orbital_period" {
			t.Errorf("error location = record %d field %q", le.Record, le.Field)
		}
		if !strings.Contains(le.Error(), "zero_period.sys") {
			t.Errorf("error should name the file: %v", le)
		}
	}
}

func TestLoad_DanglingParent(t *testing.T) {
	_, err := Load(filepath.Join("testdata", "dangling.sys"), DefaultOptions(1))
	if !errors.Is(err, ErrDanglingParentReference) {
		t.Fatalf("expected ErrDanglingParentReference, got %v", err)
	}
}

func TestParse_Errors(t *testing.T) {
	star := "Star 1 1 0 0 0 1 100 0 10 0\n"

	tests := []struct {
		name  string
		input string
		want  error
	}{
		{"empty", "", ErrMalformedRecord},
		{"bad count", "three\n" + star, ErrMalformedRecord},
		{"zero count", "0\n", ErrMalformedRecord},
		{"count over limit", "1025\n" + star, ErrMalformedRecord},
		{"count overflows allocation", "9000000000000000000\n", ErrMalformedRecord},
		{"short record", "1\nStar 1 1 0 0 0 1\n", ErrMalformedRecord},
		{"count exceeds records", "2\n" + star, ErrMalformedRecord},
		{"garbage float", "1\nStar 1 1 zero 0 0 1 100 0 10 0\n", ErrMalformedRecord},
		{"nan float", "1\nStar 1 1 NaN 0 0 1 100 0 10 0\n", ErrMalformedRecord},
		{"float parent", "1\nStar 1 1 0 0 0 1 100 0 10 0.5\n", ErrMalformedRecord},
		{"negative rotation", "1\nStar 1 1 0 0 0 1 100 0 -10 0\n", ErrInvalidPeriod},
		{"parent equals count", "2\n" + star + "P 1 1 1 5 0 3 1 0 1 2\n", ErrDanglingParentReference},
		{"negative parent", "2\n" + star + "P 1 1 1 5 0 3 1 0 1 -4\n", ErrDanglingParentReference},
		{"parent minus one", "2\n" + star + "P 1 1 1 5 0 3 1 0 1 -1\n", ErrDanglingParentReference},
		{"star parent minus one", "1\nStar 1 1 0 0 0 1 100 0 10 -1\n", ErrDanglingParentReference},
		{"cycle", "3\n" + star + "A 1 1 1 5 0 3 1 0 1 2\nB 1 1 1 5 0 3 1 0 1 1\n", ErrParentCycle},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(tt.input), Options{})
			if !errors.Is(err, tt.want) {
				t.Errorf("Parse() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestParse_RecordsMaySpanLines(t *testing.T) {
	input := "2\nStar 1 1 0\n0 0 1 100\n0 10 0\nPlanet 0 0 1 1000 5 20 10 20 1 0 trailing words"
	bodies, err := Parse(strings.NewReader(input), Options{RadiusScale: 1})
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if len(bodies) != 2 || bodies[1].Name != "Planet" {
		t.Errorf("unexpected bodies: %+v", bodies)
	}
}

func TestSampleCatalogue(t *testing.T) {
	bodies, err := Load(filepath.Join("testdata", "sys"), DefaultOptions(1))
	if err != nil {
		t.Fatalf("sample catalogue rejected: %v", err)
	}
	if Find(bodies, "Earth") != 3 {
		t.Errorf("Earth index = %d, want 3", Find(bodies, "Earth"))
	}
	if moon := Find(bodies, "Moon"); moon < 0 || bodies[moon].Parent != 3 {
		t.Errorf("Moon should orbit Earth")
	}
	if Find(bodies, "Pluto") != -1 {
		t.Error("Find should return -1 for unknown names")
	}
}

func TestColorHex(t *testing.T) {
	tests := []struct {
		c    Color
		want string
	}{
		{Color{1, 0, 0}, "#ff0000"},
		{Color{0, 0, 0}, "#000000"},
		{Color{2, -1, 1}, "#ff00ff"}, // clamped
	}
	for _, tt := range tests {
		if got := tt.c.Hex(); got != tt.want {
			t.Errorf("Hex(%v) = %s, want %s", tt.c, got, tt.want)
		}
	}
}
