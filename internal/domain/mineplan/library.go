package mineplan

import "context"

// Library is the C8 interface: the mine plan store lives outside the
// core (spec §2), but the core depends on this contract.
type Library interface {
	Load(ctx context.Context, listNumber int) (*PlanList, error)
	Save(ctx context.Context, listNumber int, plans []Plan) error
	Create(ctx context.Context, listNumber int) error
	Delete(ctx context.Context, listNumber int) error

	GetList(ctx context.Context, listNumber int) (*PlanList, error)
	GetPlan(ctx context.Context, listNumber, planNumber int) (*Plan, error)

	UpdatePlan(ctx context.Context, listNumber int, plan Plan) error
	AddPlan(ctx context.Context, listNumber int, plan Plan) error
	RemovePlan(ctx context.Context, listNumber, planNumber int) error

	AvailableListNumbers(ctx context.Context) ([]int, error)
}
