package geo

import "math"

// kmPerDegreeLat slightly undershoots the true value so the box is never
// smaller than the circle it encloses.
const kmPerDegreeLat = 111.0

// Bounds is a latitude/longitude box used to prefilter radius searches
// before exact distances are computed.
type Bounds struct {
	MinLat, MaxLat float64
	MinLon, MaxLon float64
}

// BoundsAround returns a box that contains every point within radiusKm of
// center. Longitude spans the whole globe near the poles or when the box
// would cross the antimeridian.
func BoundsAround(center Coordinate, radiusKm float64) Bounds {
	latDelta := radiusKm / kmPerDegreeLat

	b := Bounds{
		MinLat: math.Max(-90, center.Lat-latDelta),
		MaxLat: math.Min(90, center.Lat+latDelta),
		MinLon: -180,
		MaxLon: 180,
	}

	// Longitude degrees shrink toward the poles; size the box for the
	// highest latitude it reaches.
	widest := math.Max(math.Abs(b.MinLat), math.Abs(b.MaxLat))
	kmPerDegreeLon := kmPerDegreeLat * math.Cos(toRadians(widest))
	if kmPerDegreeLon < 1e-6 {
		return b
	}

	lonDelta := radiusKm / kmPerDegreeLon
	if center.Lon-lonDelta < -180 || center.Lon+lonDelta > 180 {
		return b
	}

	b.MinLon = center.Lon - lonDelta
	b.MaxLon = center.Lon + lonDelta
	return b
}

// Contains reports whether c falls inside the box, edges included.
func (b Bounds) Contains(c Coordinate) bool {
	return c.Lat >= b.MinLat && c.Lat <= b.MaxLat &&
		c.Lon >= b.MinLon && c.Lon <= b.MaxLon
}
