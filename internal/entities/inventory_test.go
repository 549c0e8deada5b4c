package entities_test

import (
	"testing"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"github.com/KirkDiggler/spix/internal/dice"
	"github.com/KirkDiggler/spix/internal/entities"
	entitiesmock "github.com/KirkDiggler/spix/internal/entities/mock"
	"github.com/KirkDiggler/spix/internal/errors"
)

type InventoryTestSuite struct {
	suite.Suite
	ctrl       *gomock.Controller
	mockLookup *entitiesmock.MockItemLookup
	catalog    map[string]*entities.Item
}

func TestInventorySuite(t *testing.T) {
	suite.Run(t, new(InventoryTestSuite))
}

func (s *InventoryTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.mockLookup = entitiesmock.NewMockItemLookup(s.ctrl)
	s.catalog = map[string]*entities.Item{
		"first_aid": {ID: "first_aid", Name: "First Aid Kit", EffectDice: dice.MustParse("2d4"), Tags: []string{entities.TagHeal}},
		"shovel":    {ID: "shovel", Name: "Shovel", EffectDice: dice.D(6), Tags: []string{entities.TagWeapon}},
		"frag":      {ID: "frag", Name: "Frag Grenade", EffectDice: dice.MustParse("3d6"), Tags: []string{entities.TagGrenade, "tech"}},
	}
	s.mockLookup.EXPECT().LookupItem(gomock.Any()).DoAndReturn(func(id string) (*entities.Item, error) {
		item, ok := s.catalog[id]
		if !ok {
			return nil, errors.UnknownItemf("unknown item: %s", id)
		}
		return item, nil
	}).AnyTimes()
}

func (s *InventoryTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *InventoryTestSuite) TestAddAndRemove() {
	inv := entities.NewInventory()
	inv.Add("first_aid", 2)
	s.Assert().True(inv.Remove("first_aid", 1))

	s.Assert().Equal(1, inv.Count("first_aid"))
	s.Assert().True(inv.Has("first_aid"))

	s.Assert().True(inv.Remove("first_aid", 1))
	s.Assert().False(inv.Has("first_aid"))
	s.Assert().True(inv.Empty())

	s.Assert().False(inv.Remove("first_aid", 1), "removing what is not held is a no-op")
}

func (s *InventoryTestSuite) TestAddNegativeRemovesEntry() {
	inv := entities.NewInventory()
	inv.Add("road_chow", 1)
	inv.Add("road_chow", -3)
	s.Assert().False(inv.Has("road_chow"))
	s.Assert().Empty(inv.IDs())
}

func (s *InventoryTestSuite) TestEquip() {
	s.Run("not owned is a no-op", func() {
		inv := entities.NewInventory()
		s.Assert().False(inv.Equip("shovel"))
		_, ok := inv.Equipped()
		s.Assert().False(ok)
	})

	s.Run("removing the last equipped unit clears the weapon", func() {
		inv := entities.NewInventory()
		inv.Add("shovel", 1)
		s.Require().True(inv.Equip("shovel"))

		inv.Remove("shovel", 1)
		_, ok := inv.Equipped()
		s.Assert().False(ok)
	})

	s.Run("removing one of several keeps the weapon", func() {
		inv := entities.NewInventory()
		inv.Add("shovel", 2)
		inv.Equip("shovel")

		inv.Remove("shovel", 1)
		id, ok := inv.Equipped()
		s.Assert().True(ok)
		s.Assert().Equal("shovel", id)
	})
}

func (s *InventoryTestSuite) TestStacksByTag() {
	inv := entities.NewInventory()
	inv.Add("first_aid", 3)
	inv.Add("shovel", 1)
	inv.Add("frag", 2)

	stacks, err := inv.Stacks(s.mockLookup, entities.TagHeal, entities.TagGrenade)
	s.Require().NoError(err)
	s.Require().Len(stacks, 2)
	s.Assert().Equal("first_aid", stacks[0].ID)
	s.Assert().Equal(3, stacks[0].Quantity)
	s.Assert().Equal("frag", stacks[1].ID)

	all, err := inv.Stacks(s.mockLookup)
	s.Require().NoError(err)
	s.Assert().Len(all, 3)
}

func (s *InventoryTestSuite) TestDataRoundTrip() {
	inv := entities.NewInventory()
	inv.Add("first_aid", 3)
	inv.Add("shovel", 1)
	inv.Equip("shovel")

	restored, err := entities.InventoryFromData(inv.Data(), s.mockLookup)
	s.Require().NoError(err)
	s.Assert().Equal(3, restored.Count("first_aid"))
	id, ok := restored.Equipped()
	s.Assert().True(ok)
	s.Assert().Equal("shovel", id)
}

func (s *InventoryTestSuite) TestFromDataRejectsBadSaves() {
	missing := "shovel"
	unknown := "laser"

	testCases := []struct {
		name string
		data entities.InventoryData
	}{
		{"unknown item", entities.InventoryData{Items: map[string]int{"plutonium": 1}}},
		{"zero quantity", entities.InventoryData{Items: map[string]int{"first_aid": 0}}},
		{"equipped weapon not held", entities.InventoryData{Items: map[string]int{"first_aid": 1}, EqWeapon: &missing}},
		{"equipped weapon unknown", entities.InventoryData{Items: map[string]int{}, EqWeapon: &unknown}},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			_, err := entities.InventoryFromData(tc.data, s.mockLookup)
			s.Require().Error(err)
			s.Assert().True(errors.IsInvalidSave(err))
		})
	}
}
