package steps

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/Kwonjooeun/weaponctl/internal/domain/mineplan"
	"github.com/Kwonjooeun/weaponctl/internal/domain/shared"
)

// inMemoryMinePlanLibrary is a map-backed mineplan.Library fake used to
// drive the mine drop-plan round-trip scenario without a real database.
type inMemoryMinePlanLibrary struct {
	mu    sync.Mutex
	lists map[int]*mineplan.PlanList
}

func newInMemoryMinePlanLibrary() *inMemoryMinePlanLibrary {
	return &inMemoryMinePlanLibrary{lists: make(map[int]*mineplan.PlanList)}
}

var _ mineplan.Library = (*inMemoryMinePlanLibrary)(nil)

func (l *inMemoryMinePlanLibrary) Create(ctx context.Context, listNumber int) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, ok := l.lists[listNumber]; !ok {
		l.lists[listNumber] = &mineplan.PlanList{Number: listNumber}
	}
	return nil
}

func (l *inMemoryMinePlanLibrary) Delete(ctx context.Context, listNumber int) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.lists, listNumber)
	return nil
}

func (l *inMemoryMinePlanLibrary) GetList(ctx context.Context, listNumber int) (*mineplan.PlanList, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	list, ok := l.lists[listNumber]
	if !ok {
		return nil, shared.NewPlanValidationError("list_number", fmt.Sprintf("list %d not found", listNumber))
	}
	cp := *list
	cp.Plans = append([]mineplan.Plan(nil), list.Plans...)
	return &cp, nil
}

func (l *inMemoryMinePlanLibrary) Load(ctx context.Context, listNumber int) (*mineplan.PlanList, error) {
	return l.GetList(ctx, listNumber)
}

func (l *inMemoryMinePlanLibrary) Save(ctx context.Context, listNumber int, plans []mineplan.Plan) error {
	for _, p := range plans {
		if err := p.Validate(); err != nil {
			return err
		}
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.lists[listNumber] = &mineplan.PlanList{
		Number: listNumber,
		Plans:  append([]mineplan.Plan(nil), plans...),
	}
	return nil
}

func (l *inMemoryMinePlanLibrary) GetPlan(ctx context.Context, listNumber, planNumber int) (*mineplan.Plan, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	list, ok := l.lists[listNumber]
	if !ok {
		return nil, shared.NewPlanValidationError("list_number", fmt.Sprintf("list %d not found", listNumber))
	}
	for _, p := range list.Plans {
		if p.Number == planNumber {
			cp := p
			return &cp, nil
		}
	}
	return nil, shared.NewPlanValidationError("plan_number", fmt.Sprintf("plan %d not found in list %d", planNumber, listNumber))
}

func (l *inMemoryMinePlanLibrary) UpdatePlan(ctx context.Context, listNumber int, plan mineplan.Plan) error {
	if err := plan.Validate(); err != nil {
		return err
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	list, ok := l.lists[listNumber]
	if !ok {
		list = &mineplan.PlanList{Number: listNumber}
		l.lists[listNumber] = list
	}
	for i, p := range list.Plans {
		if p.Number == plan.Number {
			list.Plans[i] = plan
			return nil
		}
	}
	list.Plans = append(list.Plans, plan)
	return nil
}

func (l *inMemoryMinePlanLibrary) AddPlan(ctx context.Context, listNumber int, plan mineplan.Plan) error {
	return l.UpdatePlan(ctx, listNumber, plan)
}

func (l *inMemoryMinePlanLibrary) RemovePlan(ctx context.Context, listNumber, planNumber int) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	list, ok := l.lists[listNumber]
	if !ok {
		return nil
	}
	for i, p := range list.Plans {
		if p.Number == planNumber {
			list.Plans = append(list.Plans[:i], list.Plans[i+1:]...)
			return nil
		}
	}
	return nil
}

func (l *inMemoryMinePlanLibrary) AvailableListNumbers(ctx context.Context) ([]int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	numbers := make([]int, 0, len(l.lists))
	for n := range l.lists {
		numbers = append(numbers, n)
	}
	sort.Ints(numbers)
	return numbers, nil
}
