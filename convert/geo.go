package convert

import (
	"math"

	"pwf/schema"
)

const (
	earthRadiusM = 6371000.0

	// FIT and TCX encode "no GPS" as (0,0); anything this close to the
	// null island origin is treated as a sentinel and dropped.
	nullIslandEpsilon = 1e-3
)

func isNullIsland(lat, lon float64) bool {
	return math.Abs(lat) < nullIslandEpsilon && math.Abs(lon) < nullIslandEpsilon
}

// haversineM returns the great-circle distance in meters.
func haversineM(lat1, lon1, lat2, lon2 float64) float64 {
	const degToRad = math.Pi / 180
	phi1 := lat1 * degToRad
	phi2 := lat2 * degToRad
	dPhi := (lat2 - lat1) * degToRad
	dLambda := (lon2 - lon1) * degToRad

	a := math.Sin(dPhi/2)*math.Sin(dPhi/2) +
		math.Cos(phi1)*math.Cos(phi2)*math.Sin(dLambda/2)*math.Sin(dLambda/2)
	return 2 * earthRadiusM * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
}

// finalizeRoute fills route aggregates from its points: elevation gain/loss
// by successive delta, elevation extremes and the bounding box. min <= max
// holds for every pair after the pass. Distance is left to the caller, which
// may prefer a source-declared total.
func finalizeRoute(route *schema.GpsRoute) {
	if len(route.Points) == 0 {
		return
	}

	var (
		ascent, descent  float64
		haveElev         bool
		minElev, maxElev float64
		lastElev         float64
		haveLast         bool
	)
	bounds := schema.GpsBounds{
		MinLat: route.Points[0].LatitudeDeg,
		MaxLat: route.Points[0].LatitudeDeg,
		MinLon: route.Points[0].LongitudeDeg,
		MaxLon: route.Points[0].LongitudeDeg,
	}

	for _, p := range route.Points {
		bounds.MinLat = math.Min(bounds.MinLat, p.LatitudeDeg)
		bounds.MaxLat = math.Max(bounds.MaxLat, p.LatitudeDeg)
		bounds.MinLon = math.Min(bounds.MinLon, p.LongitudeDeg)
		bounds.MaxLon = math.Max(bounds.MaxLon, p.LongitudeDeg)

		if p.ElevationM == nil {
			continue
		}
		elev := *p.ElevationM
		if !haveElev {
			minElev, maxElev = elev, elev
			haveElev = true
		} else {
			minElev = math.Min(minElev, elev)
			maxElev = math.Max(maxElev, elev)
		}
		if haveLast {
			delta := elev - lastElev
			if delta > 0 {
				ascent += delta
			} else {
				descent -= delta
			}
		}
		lastElev = elev
		haveLast = true
	}

	route.Bounds = &bounds
	if haveElev {
		route.MinElevationM = f64Ptr(minElev)
		route.MaxElevationM = f64Ptr(maxElev)
		route.TotalAscentM = f64Ptr(ascent)
		route.TotalDescentM = f64Ptr(descent)
	}
}

// routeDistanceM sums haversine legs over consecutive points.
func routeDistanceM(points []schema.GpsPoint) float64 {
	total := 0.0
	for i := 1; i < len(points); i++ {
		total += haversineM(
			points[i-1].LatitudeDeg, points[i-1].LongitudeDeg,
			points[i].LatitudeDeg, points[i].LongitudeDeg,
		)
	}
	return total
}
