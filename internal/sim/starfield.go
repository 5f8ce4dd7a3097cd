package sim

import (
	"math/rand"

	"github.com/litescript/ls-orrery/internal/geom"
)

// Starfield defaults
const (
	DefaultStarCount  = 1000
	DefaultStarSeed   = 1
	DefaultStarExtent = 300000000.0 // Half-size of the star cube (km)
)

// Starfield returns n background star positions spread uniformly through a
// cube of half-size extent. The same seed always yields the same sky.
func Starfield(seed int64, n int, extent float64) []geom.Vec3 {
	if n <= 0 {
		return nil
	}
	rng := rand.New(rand.NewSource(seed))
	stars := make([]geom.Vec3, n)
	for i := range stars {
		stars[i] = geom.Vec3{
			X: rng.Float64()*2*extent - extent,
			Y: rng.Float64()*2*extent - extent,
			Z: rng.Float64()*2*extent - extent,
		}
	}
	return stars
}
