package bdd

import (
	"testing"

	"github.com/cucumber/godog"

	"github.com/Kwonjooeun/weaponctl/test/bdd/steps"
)

func TestWeaponLifecycleFeatures(t *testing.T) {
	suite := godog.TestSuite{
		ScenarioInitializer: steps.InitializeWeaponLifecycleScenario,
		Options: &godog.Options{
			Format:   "pretty",
			Paths:    []string{"features/weapon_lifecycle.feature"},
			TestingT: t,
		},
	}

	if suite.Run() != 0 {
		t.Fatal("non-zero status returned, failed to run feature tests")
	}
}
