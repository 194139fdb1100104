package persistence

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Kwonjooeun/weaponctl/internal/domain/mineplan"
	"github.com/Kwonjooeun/weaponctl/internal/domain/shared"
)

// GormMinePlanRepository implements mineplan.Library on top of gorm,
// grounded on the teacher's gorm repository style (models.go's composite
// keys, JSON-as-text columns) rather than the reference implementation's
// flat-file format, since the interface contract (round-trip field
// fidelity) is encoding-agnostic per spec §6.
type GormMinePlanRepository struct {
	db *gorm.DB
}

func NewGormMinePlanRepository(db *gorm.DB) *GormMinePlanRepository {
	return &GormMinePlanRepository{db: db}
}

var _ mineplan.Library = (*GormMinePlanRepository)(nil)

func toModel(listNumber int, p mineplan.Plan) (MinePlanModel, error) {
	wp, err := json.Marshal(p.Waypoints)
	if err != nil {
		return MinePlanModel{}, fmt.Errorf("marshal waypoints: %w", err)
	}
	return MinePlanModel{
		ListNumber:    listNumber,
		PlanNumber:    p.Number,
		LaunchLat:     p.Launch.Lat,
		LaunchLon:     p.Launch.Lon,
		LaunchAlt:     p.Launch.Alt,
		DropLat:       p.Drop.Lat,
		DropLon:       p.Drop.Lon,
		DropAlt:       p.Drop.Alt,
		WaypointsJSON: string(wp),
	}, nil
}

func fromModel(m MinePlanModel) (mineplan.Plan, error) {
	var waypoints []shared.GeoPosition
	if m.WaypointsJSON != "" {
		if err := json.Unmarshal([]byte(m.WaypointsJSON), &waypoints); err != nil {
			return mineplan.Plan{}, fmt.Errorf("unmarshal waypoints: %w", err)
		}
	}
	return mineplan.Plan{
		Number:    m.PlanNumber,
		Launch:    shared.GeoPosition{Lat: m.LaunchLat, Lon: m.LaunchLon, Alt: m.LaunchAlt},
		Drop:      shared.GeoPosition{Lat: m.DropLat, Lon: m.DropLon, Alt: m.DropAlt},
		Waypoints: waypoints,
	}, nil
}

func (r *GormMinePlanRepository) Create(ctx context.Context, listNumber int) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&MinePlanListModel{ListNumber: listNumber}).Error
}

func (r *GormMinePlanRepository) Delete(ctx context.Context, listNumber int) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("list_number = ?", listNumber).Delete(&MinePlanModel{}).Error; err != nil {
			return err
		}
		return tx.Where("list_number = ?", listNumber).Delete(&MinePlanListModel{}).Error
	})
}

func (r *GormMinePlanRepository) GetList(ctx context.Context, listNumber int) (*mineplan.PlanList, error) {
	var rows []MinePlanModel
	if err := r.db.WithContext(ctx).
		Where("list_number = ?", listNumber).
		Order("plan_number").
		Find(&rows).Error; err != nil {
		return nil, err
	}

	list := &mineplan.PlanList{Number: listNumber, Plans: make([]mineplan.Plan, 0, len(rows))}
	for _, row := range rows {
		p, err := fromModel(row)
		if err != nil {
			return nil, err
		}
		list.Plans = append(list.Plans, p)
	}
	return list, nil
}

func (r *GormMinePlanRepository) Load(ctx context.Context, listNumber int) (*mineplan.PlanList, error) {
	return r.GetList(ctx, listNumber)
}

func (r *GormMinePlanRepository) Save(ctx context.Context, listNumber int, plans []mineplan.Plan) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).
			Create(&MinePlanListModel{ListNumber: listNumber}).Error; err != nil {
			return err
		}
		if err := tx.Where("list_number = ?", listNumber).Delete(&MinePlanModel{}).Error; err != nil {
			return err
		}
		for _, p := range plans {
			if err := p.Validate(); err != nil {
				return err
			}
			model, err := toModel(listNumber, p)
			if err != nil {
				return err
			}
			if err := tx.Create(&model).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *GormMinePlanRepository) GetPlan(ctx context.Context, listNumber, planNumber int) (*mineplan.Plan, error) {
	var row MinePlanModel
	if err := r.db.WithContext(ctx).
		Where("list_number = ? AND plan_number = ?", listNumber, planNumber).
		First(&row).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, shared.NewPlanValidationError("plan_number", fmt.Sprintf("plan %d not found in list %d", planNumber, listNumber))
		}
		return nil, err
	}
	p, err := fromModel(row)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *GormMinePlanRepository) UpdatePlan(ctx context.Context, listNumber int, plan mineplan.Plan) error {
	if err := plan.Validate(); err != nil {
		return err
	}
	model, err := toModel(listNumber, plan)
	if err != nil {
		return err
	}
	return r.db.WithContext(ctx).Save(&model).Error
}

func (r *GormMinePlanRepository) AddPlan(ctx context.Context, listNumber int, plan mineplan.Plan) error {
	return r.UpdatePlan(ctx, listNumber, plan)
}

func (r *GormMinePlanRepository) RemovePlan(ctx context.Context, listNumber, planNumber int) error {
	return r.db.WithContext(ctx).
		Where("list_number = ? AND plan_number = ?", listNumber, planNumber).
		Delete(&MinePlanModel{}).Error
}

func (r *GormMinePlanRepository) AvailableListNumbers(ctx context.Context) ([]int, error) {
	var rows []MinePlanListModel
	if err := r.db.WithContext(ctx).Find(&rows).Error; err != nil {
		return nil, err
	}
	numbers := make([]int, 0, len(rows))
	for _, row := range rows {
		numbers = append(numbers, row.ListNumber)
	}
	sort.Ints(numbers)
	return numbers, nil
}
