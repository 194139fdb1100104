package shared

import (
	"fmt"
	"math"
)

// earthRadiusMeters is the mean earth radius used for great-circle distance.
const earthRadiusMeters = 6371000.0

// GeoPosition is an immutable geodetic position: latitude/longitude in
// degrees and altitude in meters (negative altitude denotes depth below
// the reference surface).
type GeoPosition struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
	Alt float64 `json:"alt"`
}

// NewGeoPosition validates and constructs a GeoPosition.
func NewGeoPosition(lat, lon, alt float64) (GeoPosition, error) {
	if lat < -90 || lat > 90 {
		return GeoPosition{}, NewValidationError("lat", "must be within [-90, 90]")
	}
	if lon < -180 || lon > 180 {
		return GeoPosition{}, NewValidationError("lon", "must be within [-180, 180]")
	}
	if alt < -1000 || alt > 10000 {
		return GeoPosition{}, NewValidationError("alt", "must be within [-1000, 10000]")
	}
	return GeoPosition{Lat: lat, Lon: lon, Alt: alt}, nil
}

// DistanceTo returns the great-circle surface distance, in meters, to another position.
func (p GeoPosition) DistanceTo(other GeoPosition) float64 {
	lat1 := toRadians(p.Lat)
	lat2 := toRadians(other.Lat)
	dLat := toRadians(other.Lat - p.Lat)
	dLon := toRadians(other.Lon - p.Lon)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusMeters * c
}

// InitialBearingTo returns the initial bearing, in degrees normalized to
// [0, 360), from this position to another.
func (p GeoPosition) InitialBearingTo(other GeoPosition) float64 {
	lat1 := toRadians(p.Lat)
	lat2 := toRadians(other.Lat)
	dLon := toRadians(other.Lon - p.Lon)

	y := math.Sin(dLon) * math.Cos(lat2)
	x := math.Cos(lat1)*math.Sin(lat2) - math.Sin(lat1)*math.Cos(lat2)*math.Cos(dLon)
	bearing := toDegrees(math.Atan2(y, x))

	return math.Mod(bearing+360.0, 360.0)
}

// Lerp linearly interpolates between two positions by progress in [0, 1].
func Lerp(from, to GeoPosition, progress float64) GeoPosition {
	if progress < 0 {
		progress = 0
	}
	if progress > 1 {
		progress = 1
	}
	return GeoPosition{
		Lat: from.Lat + (to.Lat-from.Lat)*progress,
		Lon: from.Lon + (to.Lon-from.Lon)*progress,
		Alt: from.Alt + (to.Alt-from.Alt)*progress,
	}
}

func (p GeoPosition) String() string {
	return fmt.Sprintf("GeoPosition(lat=%.6f, lon=%.6f, alt=%.1f)", p.Lat, p.Lon, p.Alt)
}

func toRadians(deg float64) float64 { return deg * math.Pi / 180.0 }
func toDegrees(rad float64) float64 { return rad * 180.0 / math.Pi }
