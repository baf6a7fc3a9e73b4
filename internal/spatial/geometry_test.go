package spatial

import (
	"errors"
	"math"
	"testing"
)

func TestHaversineDistance(t *testing.T) {
	// 0.01 degrees of latitude is about 1.11 km regardless of longitude
	distance := HaversineDistance(51.5000, -0.1200, 51.5100, -0.1200)

	expected := 1112.0
	tolerance := 5.0

	if math.Abs(distance-expected) > tolerance {
		t.Errorf("Expected distance ~%.0fm, got %.1fm", expected, distance)
	}
}

func TestHaversineDistanceZero(t *testing.T) {
	if d := HaversineDistance(40.0, 116.0, 40.0, 116.0); d != 0 {
		t.Errorf("Expected 0 for identical points, got %f", d)
	}
}

func TestHaversineDistanceSymmetric(t *testing.T) {
	d1 := HaversineDistance(51.50, -0.12, 48.85, 2.35)
	d2 := HaversineDistance(48.85, 2.35, 51.50, -0.12)

	if math.Abs(d1-d2) > 1e-6 {
		t.Errorf("Distance not symmetric: %f vs %f", d1, d2)
	}

	// London to Paris is roughly 340 km
	if d1 < 330000 || d1 > 350000 {
		t.Errorf("Expected ~340km London-Paris, got %.0fm", d1)
	}
}

func TestDestinationPoint(t *testing.T) {
	lat, lon := DestinationPoint(51.5, -0.12, 90, 200)

	d := HaversineDistance(51.5, -0.12, lat, lon)
	if math.Abs(d-200) > 0.5 {
		t.Errorf("Expected destination 200m away, got %.2fm", d)
	}
}

func TestPathLength(t *testing.T) {
	pts := []Point{
		{Lat: 46.0, Lon: 7.0},
		{Lat: 46.001, Lon: 7.0}, // ~111m
		{Lat: 46.002, Lon: 7.0}, // ~111m more
	}

	total := PathLength(pts)
	expected := 222.4
	tolerance := 2.0

	if math.Abs(total-expected) > tolerance {
		t.Errorf("Expected path length ~%.0fm, got %.1fm", expected, total)
	}
}

func TestPathLengthDegenerate(t *testing.T) {
	if l := PathLength(nil); l != 0 {
		t.Errorf("Expected 0 for empty path, got %f", l)
	}
	if l := PathLength([]Point{{Lat: 46, Lon: 7}}); l != 0 {
		t.Errorf("Expected 0 for single point, got %f", l)
	}

	// N copies of the same point still walk zero meters
	same := make([]Point, 5)
	for i := range same {
		same[i] = Point{Lat: 46, Lon: 7}
	}
	if l := PathLength(same); l != 0 {
		t.Errorf("Expected 0 for stationary path, got %f", l)
	}
}

func TestBoundingBox(t *testing.T) {
	pts := []Point{
		{Lat: 46.0, Lon: 7.5},
		{Lat: 46.5, Lon: 7.0},
		{Lat: 45.5, Lon: 8.0},
	}

	b, err := BoundingBox(pts)
	if err != nil {
		t.Fatalf("BoundingBox failed: %v", err)
	}

	if b.MinLat != 45.5 || b.MaxLat != 46.5 || b.MinLon != 7.0 || b.MaxLon != 8.0 {
		t.Errorf("Unexpected bounds: %+v", b)
	}
}

func TestBoundingBoxEmpty(t *testing.T) {
	_, err := BoundingBox(nil)
	if !errors.Is(err, ErrNoPoints) {
		t.Errorf("Expected ErrNoPoints, got %v", err)
	}
}

func TestCentroid(t *testing.T) {
	pts := []Point{
		{Lat: 46.0, Lon: 7.0},
		{Lat: 48.0, Lon: 9.0},
	}

	c := Centroid(pts)
	if c.Lat != 47.0 || c.Lon != 8.0 {
		t.Errorf("Expected (47, 8), got (%f, %f)", c.Lat, c.Lon)
	}
}

func TestWeightedCentroid(t *testing.T) {
	pts := []Point{
		{Lat: 46.0, Lon: 7.0},
		{Lat: 48.0, Lon: 9.0},
	}

	// Weights 10 and 30: centroid sits three quarters of the way to the second point
	c := WeightedCentroid(pts, []float64{10, 30})
	if math.Abs(c.Lat-47.5) > 1e-9 || math.Abs(c.Lon-8.5) > 1e-9 {
		t.Errorf("Expected (47.5, 8.5), got (%f, %f)", c.Lat, c.Lon)
	}
}

func TestWeightedCentroidZeroWeights(t *testing.T) {
	pts := []Point{
		{Lat: 46.0, Lon: 7.0},
		{Lat: 48.0, Lon: 9.0},
	}

	// All-zero weights fall back to the unweighted centroid
	c := WeightedCentroid(pts, []float64{0, 0})
	if c.Lat != 47.0 || c.Lon != 8.0 {
		t.Errorf("Expected unweighted fallback (47, 8), got (%f, %f)", c.Lat, c.Lon)
	}
}

func TestSimplifyPathKeepsEndpoints(t *testing.T) {
	pts := []Point{
		{Lat: 46.0, Lon: 7.0},
		{Lat: 46.00001, Lon: 7.00001},
		{Lat: 46.0001, Lon: 7.0001},
	}

	out := SimplifyPath(pts, 50)
	if len(out) != 2 {
		t.Fatalf("Expected 2 points after simplify, got %d", len(out))
	}
	if out[0] != pts[0] || out[1] != pts[2] {
		t.Errorf("Endpoints not preserved: %+v", out)
	}
}
