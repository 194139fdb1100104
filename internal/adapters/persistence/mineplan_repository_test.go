package persistence_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Kwonjooeun/weaponctl/internal/adapters/persistence"
	"github.com/Kwonjooeun/weaponctl/internal/domain/mineplan"
	"github.com/Kwonjooeun/weaponctl/internal/domain/shared"
	"github.com/Kwonjooeun/weaponctl/test/helpers"
)

func TestGormMinePlanRepository_CreateAndGetListEmpty(t *testing.T) {
	db := helpers.NewTestDB(t)
	repo := persistence.NewGormMinePlanRepository(db)

	require.NoError(t, repo.Create(context.Background(), 1))
	list, err := repo.GetList(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 1, list.Number)
	assert.Empty(t, list.Plans)
}

func TestGormMinePlanRepository_CreateIsIdempotent(t *testing.T) {
	db := helpers.NewTestDB(t)
	repo := persistence.NewGormMinePlanRepository(db)

	require.NoError(t, repo.Create(context.Background(), 1))
	require.NoError(t, repo.Create(context.Background(), 1))
}

func TestGormMinePlanRepository_SaveReplacesPlansForList(t *testing.T) {
	db := helpers.NewTestDB(t)
	repo := persistence.NewGormMinePlanRepository(db)
	require.NoError(t, repo.Create(context.Background(), 1))

	plan := testPlan(7)
	require.NoError(t, repo.Save(context.Background(), 1, []mineplan.Plan{plan}))

	list, err := repo.GetList(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, list.Plans, 1)
	assert.Equal(t, plan.Launch, list.Plans[0].Launch)
	require.Len(t, list.Plans[0].Waypoints, 2)

	require.NoError(t, repo.Save(context.Background(), 1, []mineplan.Plan{testPlan(8)}))
	list, err = repo.GetList(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, list.Plans, 1)
	assert.Equal(t, 8, list.Plans[0].Number)
}

func TestGormMinePlanRepository_SaveRejectsInvalidPlan(t *testing.T) {
	db := helpers.NewTestDB(t)
	repo := persistence.NewGormMinePlanRepository(db)
	require.NoError(t, repo.Create(context.Background(), 1))

	invalid := testPlan(1)
	invalid.Number = 0
	err := repo.Save(context.Background(), 1, []mineplan.Plan{invalid})
	assert.Error(t, err)
}

func TestGormMinePlanRepository_AddGetUpdateRemovePlan(t *testing.T) {
	db := helpers.NewTestDB(t)
	repo := persistence.NewGormMinePlanRepository(db)
	require.NoError(t, repo.Create(context.Background(), 2))

	require.NoError(t, repo.AddPlan(context.Background(), 2, testPlan(3)))
	plan, err := repo.GetPlan(context.Background(), 2, 3)
	require.NoError(t, err)
	assert.Equal(t, testPlan(3).Drop, plan.Drop)

	updated := testPlan(3)
	updated.Drop = shared.GeoPosition{Lat: 40, Lon: 140}
	require.NoError(t, repo.UpdatePlan(context.Background(), 2, updated))

	plan, err = repo.GetPlan(context.Background(), 2, 3)
	require.NoError(t, err)
	assert.Equal(t, updated.Drop, plan.Drop)

	require.NoError(t, repo.RemovePlan(context.Background(), 2, 3))
	_, err = repo.GetPlan(context.Background(), 2, 3)
	assert.Error(t, err)
}

func TestGormMinePlanRepository_DeleteRemovesListAndPlans(t *testing.T) {
	db := helpers.NewTestDB(t)
	repo := persistence.NewGormMinePlanRepository(db)
	require.NoError(t, repo.Create(context.Background(), 4))
	require.NoError(t, repo.AddPlan(context.Background(), 4, testPlan(1)))

	require.NoError(t, repo.Delete(context.Background(), 4))

	list, err := repo.GetList(context.Background(), 4)
	require.NoError(t, err)
	assert.Empty(t, list.Plans)

	numbers, err := repo.AvailableListNumbers(context.Background())
	require.NoError(t, err)
	assert.NotContains(t, numbers, 4)
}

func TestGormMinePlanRepository_AvailableListNumbersSorted(t *testing.T) {
	db := helpers.NewTestDB(t)
	repo := persistence.NewGormMinePlanRepository(db)
	require.NoError(t, repo.Create(context.Background(), 3))
	require.NoError(t, repo.Create(context.Background(), 1))
	require.NoError(t, repo.Create(context.Background(), 2))

	numbers, err := repo.AvailableListNumbers(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3}, numbers)
}
