// Package weaponctl holds the command handlers that sit between the
// transport adapters (gRPC, CLI) and the C5 fleet manager, mirroring the
// teacher's application/<domain> mediator-handler layout.
package weaponctl

import (
	"context"
	"fmt"

	"github.com/Kwonjooeun/weaponctl/internal/application/mediator"
	"github.com/Kwonjooeun/weaponctl/internal/domain/engagement"
	"github.com/Kwonjooeun/weaponctl/internal/domain/fleet"
	"github.com/Kwonjooeun/weaponctl/internal/domain/mineplan"
	"github.com/Kwonjooeun/weaponctl/internal/domain/shared"
	"github.com/Kwonjooeun/weaponctl/internal/domain/weapon"
)

// AssignWeaponCommand assigns a weapon of Kind to TubeNumber, wiring it to
// either a direct target position, a system-target id, or (for mines) a
// drop-plan reference resolved through the mine plan library.
type AssignWeaponCommand struct {
	TubeNumber     int
	Kind           weapon.Kind
	SystemTargetID uint32
	TargetPosition *shared.GeoPosition
	DropPlanList   int
	DropPlanNumber int
}

type AssignWeaponResponse struct {
	TubeNumber int
}

type AssignWeaponHandler struct {
	Fleet    *fleet.Manager
	MinePlan mineplan.Library
}

func (h *AssignWeaponHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	cmd, ok := request.(*AssignWeaponCommand)
	if !ok {
		return nil, fmt.Errorf("weaponctl: unexpected request type %T", request)
	}

	err := h.Fleet.Assign(fleet.AssignRequest{
		TubeNumber:     cmd.TubeNumber,
		Kind:           cmd.Kind,
		SystemTargetID: cmd.SystemTargetID,
		TargetPosition: cmd.TargetPosition,
		DropPlanList:   cmd.DropPlanList,
		DropPlanNumber: cmd.DropPlanNumber,
	})
	if err != nil {
		return nil, err
	}

	if cmd.Kind.IsMine() {
		if err := h.resolveDropPlan(ctx, cmd); err != nil {
			return nil, err
		}
	}

	return &AssignWeaponResponse{TubeNumber: cmd.TubeNumber}, nil
}

func (h *AssignWeaponHandler) resolveDropPlan(ctx context.Context, cmd *AssignWeaponCommand) error {
	t, err := h.Fleet.Tube(cmd.TubeNumber)
	if err != nil {
		return err
	}
	mp, ok := t.Planner().(*engagement.MineEngagementManager)
	if !ok {
		return nil
	}
	plan, err := h.MinePlan.GetPlan(ctx, cmd.DropPlanList, cmd.DropPlanNumber)
	if err != nil {
		return err
	}
	mp.SetDropPlan(cmd.DropPlanList, cmd.DropPlanNumber, plan)
	if mw, ok := t.Weapon().(*weapon.MineWeapon); ok {
		mw.SetPlanLoaded(true)
	}
	return nil
}

// UnassignWeaponCommand clears the weapon assigned to a tube, if any.
type UnassignWeaponCommand struct {
	TubeNumber int
}

type UnassignWeaponHandler struct {
	Fleet *fleet.Manager
}

func (h *UnassignWeaponHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	cmd, ok := request.(*UnassignWeaponCommand)
	if !ok {
		return nil, fmt.Errorf("weaponctl: unexpected request type %T", request)
	}
	return nil, h.Fleet.Unassign(cmd.TubeNumber)
}

// ControlWeaponCommand requests a state transition on one tube's weapon.
type ControlWeaponCommand struct {
	TubeNumber  int
	TargetState weapon.ControlState
}

type ControlWeaponHandler struct {
	Fleet *fleet.Manager
}

func (h *ControlWeaponHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	cmd, ok := request.(*ControlWeaponCommand)
	if !ok {
		return nil, fmt.Errorf("weaponctl: unexpected request type %T", request)
	}
	return nil, h.Fleet.RequestStateChange(fleet.ControlRequest{
		TubeNumber:  cmd.TubeNumber,
		TargetState: cmd.TargetState,
	})
}

// UpdateWaypointsCommand replaces the waypoint list on one tube's planner.
type UpdateWaypointsCommand struct {
	TubeNumber int
	Waypoints  []shared.GeoPosition
}

type UpdateWaypointsHandler struct {
	Fleet *fleet.Manager
}

func (h *UpdateWaypointsHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	cmd, ok := request.(*UpdateWaypointsCommand)
	if !ok {
		return nil, fmt.Errorf("weaponctl: unexpected request type %T", request)
	}
	return nil, h.Fleet.UpdateWaypoints(cmd.TubeNumber, cmd.Waypoints)
}

// EmergencyStopCommand drives every assigned tube to ABORT/OFF immediately.
type EmergencyStopCommand struct{}

type EmergencyStopHandler struct {
	Fleet *fleet.Manager
}

func (h *EmergencyStopHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	return nil, h.Fleet.EmergencyStop()
}

// UpdateOwnShipCommand refreshes the shared own-ship position snapshot.
type UpdateOwnShipCommand struct {
	Position shared.GeoPosition
}

type UpdateOwnShipHandler struct {
	Fleet *fleet.Manager
}

func (h *UpdateOwnShipHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	cmd, ok := request.(*UpdateOwnShipCommand)
	if !ok {
		return nil, fmt.Errorf("weaponctl: unexpected request type %T", request)
	}
	h.Fleet.UpdateOwnShip(cmd.Position)
	return nil, nil
}

// UpdateAxisCenterCommand refreshes the shared mine-field axis center.
type UpdateAxisCenterCommand struct {
	Position shared.GeoPosition
}

type UpdateAxisCenterHandler struct {
	Fleet *fleet.Manager
}

func (h *UpdateAxisCenterHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	cmd, ok := request.(*UpdateAxisCenterCommand)
	if !ok {
		return nil, fmt.Errorf("weaponctl: unexpected request type %T", request)
	}
	h.Fleet.SetAxisCenter(cmd.Position)
	return nil, nil
}

// UpdateTargetCommand writes fresh kinematics into the target cache and
// fans them out to every missile planner watching this system-target id.
type UpdateTargetCommand struct {
	SystemTargetID uint32
	Lat, Lon, Depth float64
}

type UpdateTargetHandler struct {
	Fleet *fleet.Manager
}

func (h *UpdateTargetHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	cmd, ok := request.(*UpdateTargetCommand)
	if !ok {
		return nil, fmt.Errorf("weaponctl: unexpected request type %T", request)
	}
	h.Fleet.UpdateTarget(cmd.SystemTargetID, cmd.Lat, cmd.Lon, cmd.Depth)
	return nil, nil
}

// RegisterHandlers wires every command handler above into m.
func RegisterHandlers(m mediator.Mediator, f *fleet.Manager, lib mineplan.Library) error {
	if err := mediator.RegisterHandler[*AssignWeaponCommand](m, &AssignWeaponHandler{Fleet: f, MinePlan: lib}); err != nil {
		return err
	}
	if err := mediator.RegisterHandler[*UnassignWeaponCommand](m, &UnassignWeaponHandler{Fleet: f}); err != nil {
		return err
	}
	if err := mediator.RegisterHandler[*ControlWeaponCommand](m, &ControlWeaponHandler{Fleet: f}); err != nil {
		return err
	}
	if err := mediator.RegisterHandler[*UpdateWaypointsCommand](m, &UpdateWaypointsHandler{Fleet: f}); err != nil {
		return err
	}
	if err := mediator.RegisterHandler[*EmergencyStopCommand](m, &EmergencyStopHandler{Fleet: f}); err != nil {
		return err
	}
	if err := mediator.RegisterHandler[*UpdateOwnShipCommand](m, &UpdateOwnShipHandler{Fleet: f}); err != nil {
		return err
	}
	if err := mediator.RegisterHandler[*UpdateAxisCenterCommand](m, &UpdateAxisCenterHandler{Fleet: f}); err != nil {
		return err
	}
	if err := mediator.RegisterHandler[*UpdateTargetCommand](m, &UpdateTargetHandler{Fleet: f}); err != nil {
		return err
	}
	return nil
}
