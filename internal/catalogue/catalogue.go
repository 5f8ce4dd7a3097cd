package catalogue

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"math/rand"
	"os"
	"strconv"
)

// DefaultRadiusScale magnifies body radii so they are visible next to
// orbital distances.
const DefaultRadiusScale = 1000.0

// MaxBodies bounds the declared body count.
const MaxBodies = 1024

// fieldNames lists the numeric fields of a record in file order, after name.
var fieldNames = []string{
	"r", "g", "b",
	"orbital_radius", "orbital_tilt", "orbital_period",
	"radius", "axis_tilt", "rot_period",
}

// Options controls how records are turned into bodies.
type Options struct {
	RadiusScale float64    // Multiplier applied to every radius (0 = DefaultRadiusScale)
	Rand        *rand.Rand // Source for initial orbit angles (nil = all start at 0)
}

// DefaultOptions returns options with the standard radius magnification and
// a random source seeded from seed.
func DefaultOptions(seed int64) Options {
	return Options{
		RadiusScale: DefaultRadiusScale,
		Rand:        rand.New(rand.NewSource(seed)),
	}
}

// Load reads and validates the catalogue at path.
func Load(path string, opts Options) ([]Body, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &LoadError{Path: path, Kind: ErrCatalogueUnavailable, Record: -1, Err: err}
	}
	defer f.Close()

	bodies, err := Parse(f, opts)
	if err != nil {
		var le *LoadError
		if errors.As(err, &le) {
			le.Path = path
		}
		return nil, err
	}
	return bodies, nil
}

// Parse reads a catalogue from r. Fields are whitespace separated; a record
// may span lines. Anything after the last declared record is ignored.
func Parse(r io.Reader, opts Options) ([]Body, error) {
	scale := opts.RadiusScale
	if scale == 0 {
		scale = DefaultRadiusScale
	}

	sc := bufio.NewScanner(r)
	sc.Split(bufio.ScanWords)

	next := func() (string, bool) {
		if sc.Scan() {
			return sc.Text(), true
		}
		return "", false
	}

	countTok, ok := next()
	if !ok {
		if err := sc.Err(); err != nil {
			return nil, &LoadError{Kind: ErrCatalogueUnavailable, Record: -1, Err: err}
		}
		return nil, recordError(ErrMalformedRecord, -1, "body_count", errors.New("empty catalogue"))
	}
	count, err := strconv.Atoi(countTok)
	if err != nil {
		return nil, recordError(ErrMalformedRecord, -1, "body_count", err)
	}
	if count < 1 {
		return nil, recordError(ErrMalformedRecord, -1, "body_count",
			fmt.Errorf("count must be positive, got %d", count))
	}
	if count > MaxBodies {
		return nil, recordError(ErrMalformedRecord, -1, "body_count",
			fmt.Errorf("count %d exceeds the limit of %d", count, MaxBodies))
	}

	bodies := make([]Body, 0, count)
	for i := 0; i < count; i++ {
		body, err := parseRecord(i, next)
		if err != nil {
			if scanErr := sc.Err(); scanErr != nil {
				return nil, &LoadError{Kind: ErrCatalogueUnavailable, Record: i, Err: scanErr}
			}
			return nil, err
		}
		body.Radius *= scale
		if opts.Rand != nil {
			// Stagger starting positions so bodies do not line up
			body.Orbit = opts.Rand.Float64() * 360
		}
		bodies = append(bodies, body)
	}

	if err := Validate(bodies); err != nil {
		return nil, err
	}
	return bodies, nil
}

func parseRecord(i int, next func() (string, bool)) (Body, error) {
	name, ok := next()
	if !ok {
		return Body{}, recordError(ErrMalformedRecord, i, "name", io.ErrUnexpectedEOF)
	}

	var vals [9]float64
	for k, field := range fieldNames {
		tok, ok := next()
		if !ok {
			return Body{}, recordError(ErrMalformedRecord, i, field, io.ErrUnexpectedEOF)
		}
		v, err := strconv.ParseFloat(tok, 64)
		if err != nil {
			return Body{}, recordError(ErrMalformedRecord, i, field, err)
		}
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return Body{}, recordError(ErrMalformedRecord, i, field, fmt.Errorf("non-finite value %q", tok))
		}
		vals[k] = v
	}

	tok, ok := next()
	if !ok {
		return Body{}, recordError(ErrMalformedRecord, i, "parent_index", io.ErrUnexpectedEOF)
	}
	parent, err := strconv.Atoi(tok)
	if err != nil {
		return Body{}, recordError(ErrMalformedRecord, i, "parent_index", err)
	}
	if parent < 0 {
		return Body{}, recordError(ErrDanglingParentReference, i, "parent_index",
			fmt.Errorf("%s: parent %d is negative", name, parent))
	}
	// Self reference marks a root; index 0 pointing at itself is the star.
	if parent == i {
		parent = NoParent
	}

	return Body{
		Index:          i,
		Name:           name,
		Color:          Color{R: vals[0], G: vals[1], B: vals[2]},
		OrbitalRadius:  vals[3],
		OrbitalTilt:    vals[4],
		OrbitalPeriod:  vals[5],
		Radius:         vals[6],
		AxisTilt:       vals[7],
		RotationPeriod: vals[8],
		Parent:         parent,
	}, nil
}

// Validate checks periods and the parent graph. Parent indices must name an
// existing body and following them must always reach a root.
func Validate(bodies []Body) error {
	n := len(bodies)
	for i, b := range bodies {
		if b.OrbitalPeriod <= 0 {
			return recordError(ErrInvalidPeriod, i, "orbital_period",
				fmt.Errorf("%s: period must be positive, got %g", b.Name, b.OrbitalPeriod))
		}
		if b.RotationPeriod <= 0 {
			return recordError(ErrInvalidPeriod, i, "rot_period",
				fmt.Errorf("%s: period must be positive, got %g", b.Name, b.RotationPeriod))
		}
		if b.Parent != NoParent && (b.Parent < 0 || b.Parent >= n) {
			return recordError(ErrDanglingParentReference, i, "parent_index",
				fmt.Errorf("%s: parent %d outside 0..%d", b.Name, b.Parent, n-1))
		}
	}

	for i := range bodies {
		cur := i
		for steps := 0; bodies[cur].Parent != NoParent; steps++ {
			if steps >= n {
				return recordError(ErrParentCycle, i, "parent_index",
					fmt.Errorf("%s never reaches a root", bodies[i].Name))
			}
			cur = bodies[cur].Parent
		}
	}
	return nil
}
