package convert

import (
	"math"
	"testing"

	"pwf/schema"
)

func TestHaversineKnownDistance(t *testing.T) {
	// Paris to London, roughly 344 km.
	d := haversineM(48.8566, 2.3522, 51.5074, -0.1278)
	if math.Abs(d-344000) > 5000 {
		t.Fatalf("unexpected distance %.0f m", d)
	}
	if haversineM(10, 20, 10, 20) != 0 {
		t.Fatal("zero distance for identical points")
	}
}

func TestIsNullIsland(t *testing.T) {
	if !isNullIsland(0, 0) || !isNullIsland(0.0005, -0.0005) {
		t.Fatal("near-zero pairs must be treated as sentinels")
	}
	if isNullIsland(0.002, 0) || isNullIsland(51.5, 0.0001) {
		t.Fatal("real coordinates must survive")
	}
}

func TestFinalizeRouteAggregates(t *testing.T) {
	route := &schema.GpsRoute{
		ID: "route-1",
		Points: []schema.GpsPoint{
			{LatitudeDeg: 47.0, LongitudeDeg: 8.0, ElevationM: f64Ptr(100)},
			{LatitudeDeg: 47.1, LongitudeDeg: 8.1, ElevationM: f64Ptr(130)},
			{LatitudeDeg: 47.2, LongitudeDeg: 8.0, ElevationM: f64Ptr(120)},
		},
	}
	finalizeRoute(route)

	if *route.TotalAscentM != 30 || *route.TotalDescentM != 10 {
		t.Fatalf("unexpected ascent/descent %v/%v", *route.TotalAscentM, *route.TotalDescentM)
	}
	if *route.MinElevationM != 100 || *route.MaxElevationM != 130 {
		t.Fatalf("unexpected elevation extremes %v/%v", *route.MinElevationM, *route.MaxElevationM)
	}
	b := route.Bounds
	if b == nil || b.MinLat != 47.0 || b.MaxLat != 47.2 || b.MinLon != 8.0 || b.MaxLon != 8.1 {
		t.Fatalf("unexpected bounds %+v", b)
	}
	if b.MinLat > b.MaxLat || b.MinLon > b.MaxLon {
		t.Fatal("bounds must be ordered")
	}
}
