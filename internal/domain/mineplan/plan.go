package mineplan

import "github.com/Kwonjooeun/weaponctl/internal/domain/shared"

// MaxWaypoints bounds a single plan's waypoint list (spec §3 invariant 6).
const MaxWaypoints = 8

// Plan is one pre-planned mine drop trajectory.
type Plan struct {
	Number    int                  `json:"number"`
	Launch    shared.GeoPosition   `json:"launch"`
	Drop      shared.GeoPosition   `json:"drop"`
	Waypoints []shared.GeoPosition `json:"waypoints"`
}

// Validate enforces spec §4.6/§8: waypoint count and position bounds.
// Position bounds are already enforced at construction time by
// shared.NewGeoPosition; Validate re-checks them here because Plan values
// may also be constructed by decoding persisted JSON, which bypasses that
// constructor.
func (p Plan) Validate() error {
	if p.Number == 0 {
		return shared.NewPlanValidationError("number", "plan number must be nonzero")
	}
	if len(p.Waypoints) > MaxWaypoints {
		return shared.NewPlanValidationError("waypoints", "waypoint count exceeds maximum of 8")
	}
	for _, pos := range append([]shared.GeoPosition{p.Launch, p.Drop}, p.Waypoints...) {
		if _, err := shared.NewGeoPosition(pos.Lat, pos.Lon, pos.Alt); err != nil {
			return shared.NewPlanValidationError("position", err.Error())
		}
	}
	return nil
}

// PlanList is one named list of plans, persisted as a single file/row.
type PlanList struct {
	Number int    `json:"number"`
	Plans  []Plan `json:"plans"`
}
