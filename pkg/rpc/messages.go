package rpc

import (
	"github.com/Kwonjooeun/weaponctl/internal/domain/shared"
	"github.com/Kwonjooeun/weaponctl/internal/domain/weapon"
)

type AssignRequest struct {
	TubeNumber     int                   `json:"tube_number"`
	Kind           weapon.Kind           `json:"kind"`
	SystemTargetID uint32                `json:"system_target_id,omitempty"`
	TargetPosition *shared.GeoPosition   `json:"target_position,omitempty"`
	DropPlanList   int                   `json:"drop_plan_list,omitempty"`
	DropPlanNumber int                   `json:"drop_plan_number,omitempty"`
}

type AssignReply struct {
	errorReply
	TubeNumber int `json:"tube_number"`
}

type UnassignRequest struct {
	TubeNumber int `json:"tube_number"`
}

type UnassignReply struct {
	errorReply
}

type ControlRequest struct {
	TubeNumber  int                 `json:"tube_number"`
	TargetState weapon.ControlState `json:"target_state"`
}

type ControlReply struct {
	errorReply
}

type WaypointsRequest struct {
	TubeNumber int                   `json:"tube_number"`
	Waypoints  []shared.GeoPosition  `json:"waypoints"`
}

type WaypointsReply struct {
	errorReply
}

type EmergencyStopRequest struct{}

type EmergencyStopReply struct {
	errorReply
}

type OwnShipRequest struct {
	Position shared.GeoPosition `json:"position"`
}

type OwnShipReply struct {
	errorReply
}

type AxisCenterRequest struct {
	Position shared.GeoPosition `json:"position"`
}

type AxisCenterReply struct {
	errorReply
}

type TargetUpdateRequest struct {
	SystemTargetID uint32  `json:"system_target_id"`
	Lat            float64 `json:"lat"`
	Lon            float64 `json:"lon"`
	Depth          float64 `json:"depth"`
}

type TargetUpdateReply struct {
	errorReply
}

// StatusRequest asks for a snapshot of every tube; TubeNumber 0 means
// "all tubes".
type StatusRequest struct {
	TubeNumber int `json:"tube_number,omitempty"`
}

type TubeStatus struct {
	TubeNumber         int                 `json:"tube_number"`
	Assigned           bool                `json:"assigned"`
	Kind               weapon.Kind         `json:"kind,omitempty"`
	State              weapon.ControlState `json:"state,omitempty"`
	Launched           bool                `json:"launched,omitempty"`
	FireSolutionReady  bool                `json:"fire_solution_ready,omitempty"`
}

type StatusReply struct {
	errorReply
	Tubes []TubeStatus `json:"tubes"`
}

// FleetEvent is one item of the streamed telemetry feed: a tube state
// change, a launch-status flip, or an engagement-plan-changed
// notification, discriminated by Kind.
type FleetEvent struct {
	EventID    string `json:"event_id"`
	TubeNumber int    `json:"tube_number"`
	Kind       string `json:"kind"` // "state_changed" | "launch_status" | "plan_changed"

	FromState weapon.ControlState `json:"from_state,omitempty"`
	ToState   weapon.ControlState `json:"to_state,omitempty"`

	Launched bool `json:"launched,omitempty"`

	PlanValid     bool    `json:"plan_valid,omitempty"`
	PlanTotalTime float64 `json:"plan_total_time,omitempty"`
	PlanTrajLen   int     `json:"plan_traj_len,omitempty"`
}

type StreamEventsRequest struct{}
