package scene_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/spix/internal/catalog"
	"github.com/KirkDiggler/spix/internal/dice"
	"github.com/KirkDiggler/spix/internal/entities"
	"github.com/KirkDiggler/spix/internal/errors"
	"github.com/KirkDiggler/spix/internal/scene"
	"github.com/KirkDiggler/spix/internal/state"
	"github.com/KirkDiggler/spix/internal/testutils"
	"github.com/KirkDiggler/spix/internal/ui"
)

var visited = state.NewVar("visited", false)

// town marks itself visited and waits for the player to leave
type town struct {
	scene.Base
	enters int
}

func (t *town) Enter(ctx context.Context) error {
	t.enters++
	scene.Set(&t.Base, visited, true)
	t.Para("You stand in the town square.")
	return t.Menu().
		Add("Leave", func(context.Context) error { return t.Finish("left") }).
		Add("Camp", func(context.Context) error { return t.Proceed("camp") }).
		Run(ctx)
}

// camp finishes with whatever it was built with
type camp struct {
	scene.Base
	result any
}

func (c *camp) Enter(context.Context) error {
	return c.Finish(c.result)
}

// inn records what comes back to it
type inn struct {
	scene.Base
	from   []string
	result []any
}

func (i *inn) Enter(context.Context) error {
	if len(i.from) > 0 {
		return i.Finish(nil)
	}
	return i.Proceed("town")
}

func (i *inn) Reenter(from string, result any) error {
	i.from = append(i.from, from)
	i.result = append(i.result, result)
	return nil
}

// broken always fails
type broken struct {
	scene.Base
}

func (b *broken) Enter(context.Context) error {
	return errors.UnknownFoef("unknown foe: %s", "spix")
}

type ControllerTestSuite struct {
	suite.Suite
	ctx       context.Context
	catalog   *catalog.Catalog
	registry  *scene.Registry
	transport *testutils.ScriptedTransport
	ctl       *scene.Controller
	inns      []*inn
}

func TestControllerSuite(t *testing.T) {
	suite.Run(t, new(ControllerTestSuite))
}

func (s *ControllerTestSuite) SetupTest() {
	s.ctx = context.Background()
	cat, err := catalog.Default()
	s.Require().NoError(err)
	s.catalog = cat
	s.inns = nil

	s.registry = scene.NewRegistry().
		MustRegister("Town", func(b scene.Base, _ ...any) (scene.Scene, error) {
			return &town{Base: b}, nil
		}).
		MustRegister("Camp", func(b scene.Base, args ...any) (scene.Scene, error) {
			result, err := scene.Arg[any](args, 0, nil)
			if err != nil {
				return nil, err
			}
			return &camp{Base: b, result: result}, nil
		}).
		MustRegister("InnKeeper", func(b scene.Base, _ ...any) (scene.Scene, error) {
			i := &inn{Base: b}
			s.inns = append(s.inns, i)
			return i, nil
		})

	s.ctl = s.newController()
}

func (s *ControllerTestSuite) newController(inputs ...string) *scene.Controller {
	s.transport = testutils.NewScriptedTransport(inputs...)
	w, err := ui.NewWindow(s.ctx, s.transport)
	s.Require().NoError(err)

	ctl, err := scene.NewController(&scene.Config{
		Registry: s.registry,
		Window:   w,
		Catalog:  s.catalog,
		Roller:   dice.NewSeeded(7),
	})
	s.Require().NoError(err)
	return ctl
}

func (s *ControllerTestSuite) TestNewControllerValidates() {
	_, err := scene.NewController(nil)
	s.Assert().True(errors.IsInvalidArgument(err))

	_, err = scene.NewController(&scene.Config{Registry: s.registry})
	s.Require().Error(err)
	s.Assert().True(errors.IsInvalidArgument(err))
	s.Assert().Contains(err.Error(), "Window")
}

func (s *ControllerTestSuite) TestProceedThenFinishExposesPrevious() {
	s.Require().NoError(s.ctl.Proceed("town"))
	s.Require().NoError(s.ctl.Proceed("camp"))
	s.Require().NoError(s.ctl.Finish(nil))

	active, ok := s.ctl.Active()
	s.Require().True(ok)
	s.Assert().Equal("town", active)
	s.Assert().Equal(1, s.ctl.Depth())
}

func (s *ControllerTestSuite) TestReplaceSwapsSingleScene() {
	s.Require().NoError(s.ctl.Proceed("town"))
	s.Require().NoError(s.ctl.Replace("camp"))
	s.Assert().Equal([]string{"camp"}, s.ctl.Names())
}

func (s *ControllerTestSuite) TestReplaceWithSeveral() {
	s.Require().NoError(s.ctl.Proceed("town"))
	s.Require().NoError(s.ctl.Proceed("camp"))
	s.Require().NoError(s.ctl.Replace("inn_keeper", "town"))
	s.Assert().Equal([]string{"town", "inn_keeper", "town"}, s.ctl.Names())
}

func (s *ControllerTestSuite) TestTransitionClearsStack() {
	s.Require().NoError(s.ctl.Proceed("town"))
	s.Require().NoError(s.ctl.Proceed("inn_keeper"))
	s.Require().NoError(s.ctl.Proceed("camp"))
	s.Require().NoError(s.ctl.Transition("Town"))
	s.Assert().Equal([]string{"town"}, s.ctl.Names())
}

func (s *ControllerTestSuite) TestFinishOnEmptyStack() {
	err := s.ctl.Finish(nil)
	s.Require().Error(err)
	s.Assert().True(errors.IsEmptyStack(err))

	err = s.ctl.Replace("town")
	s.Assert().True(errors.IsEmptyStack(err))
	s.Assert().Zero(s.ctl.Depth())
}

func (s *ControllerTestSuite) TestUnknownScene() {
	err := s.ctl.Proceed("price_electronics")
	s.Require().Error(err)
	s.Assert().True(errors.IsUnknownScene(err))
	s.Assert().Zero(s.ctl.Depth())

	err = s.ctl.Transition("nowhere")
	s.Assert().True(errors.IsUnknownScene(err))
}

func (s *ControllerTestSuite) TestFactoryArgumentErrors() {
	s.registry.MustRegister("Strict", func(b scene.Base, args ...any) (scene.Scene, error) {
		if _, err := scene.Arg(args, 0, 0); err != nil {
			return nil, err
		}
		return &camp{Base: b}, nil
	})

	err := s.ctl.Proceed("strict", "not a number")
	s.Require().Error(err)
	s.Assert().True(errors.IsInvalidArgument(err))
}

func (s *ControllerTestSuite) TestReenterReceivesResult() {
	s.Require().NoError(s.ctl.Proceed("inn_keeper"))
	s.Require().NoError(s.ctl.Proceed("camp", "victory"))
	s.Require().NoError(s.ctl.Finish("victory"))

	s.Require().Len(s.inns, 1)
	s.Assert().Equal([]string{"camp"}, s.inns[0].from)
	s.Assert().Equal([]any{"victory"}, s.inns[0].result)
}

func (s *ControllerTestSuite) TestRunEntersUntilEmpty() {
	ctl := s.newController("c", "l")
	s.Require().NoError(ctl.Proceed("inn_keeper"))

	s.Require().NoError(ctl.Run(s.ctx))

	s.Require().Len(s.inns, 1)
	s.Assert().Equal([]string{"town"}, s.inns[0].from)
	s.Assert().Equal([]any{"left"}, s.inns[0].result)
	s.Assert().Zero(ctl.Depth())
	// inn, town, camp, town, inn
	s.Assert().Equal(5, s.transport.Count(ui.FrameBlank))
}

func (s *ControllerTestSuite) TestRunUnwindsOnDisconnect() {
	ctl := s.newController()
	s.Require().NoError(ctl.Proceed("inn_keeper"))

	err := ctl.Run(s.ctx)
	s.Require().Error(err)
	s.Assert().True(errors.IsDisconnected(err))
	s.Assert().Zero(ctl.Depth())
}

func (s *ControllerTestSuite) TestRunClearsBeforeEachEntry() {
	ctl := s.newController("l")
	s.Require().NoError(ctl.Proceed("town"))

	s.Require().NoError(ctl.Run(s.ctx))
	s.Assert().Equal(1, s.transport.Count(ui.FrameBlank))
	s.Assert().Equal(1, s.transport.Count(ui.FrameChoices))
}

func (s *ControllerTestSuite) TestRunWrapsSceneFailures() {
	s.registry.MustRegister("Broken", func(b scene.Base, _ ...any) (scene.Scene, error) {
		return &broken{Base: b}, nil
	})
	s.Require().NoError(s.ctl.Proceed("town"))
	s.Require().NoError(s.ctl.Proceed("broken"))

	err := s.ctl.Run(s.ctx)
	s.Require().Error(err)
	s.Assert().True(errors.IsUnknownFoe(err))
	s.Assert().Contains(err.Error(), "scene broken failed")
	s.Assert().Zero(s.ctl.Depth())
}

func (s *ControllerTestSuite) TestSaveAndLoadRoundTrip() {
	s.Require().NoError(s.ctl.Proceed("town"))
	visited.Set(s.ctl.Store(), "town", true)

	player := entities.NewPlayer(s.catalog)
	player.Inventory.Add("first_aid", 2)
	s.ctl.SetPlayer(player)

	snap, err := s.ctl.Dehydrate()
	s.Require().NoError(err)
	raw, err := json.Marshal(snap)
	s.Require().NoError(err)

	var loaded scene.Snapshot
	s.Require().NoError(json.Unmarshal(raw, &loaded))

	other := s.newController()
	s.Require().NoError(other.Hydrate(&loaded))

	s.Assert().Equal([]string{"town"}, other.Names())
	s.Assert().True(visited.Get(other.Store(), "town"))
	s.Require().NotNil(other.Player())
	s.Assert().Equal(3, other.Player().Inventory.Count("first_aid"))
}

func (s *ControllerTestSuite) TestDefaultValuesAreNotSaved() {
	s.Require().NoError(s.ctl.Proceed("town"))
	visited.Set(s.ctl.Store(), "town", true)
	visited.Set(s.ctl.Store(), "town", false)
	s.ctl.SetPlayer(entities.NewPlayer(s.catalog))

	snap, err := s.ctl.Dehydrate()
	s.Require().NoError(err)
	s.Assert().NotContains(snap.SceneState, "town")

	raw, err := json.Marshal(snap)
	s.Require().NoError(err)
	s.Assert().Contains(string(raw), `"scene_state":{}`)
}

func (s *ControllerTestSuite) TestDehydrateWithoutPlayer() {
	_, err := s.ctl.Dehydrate()
	s.Require().Error(err)
	s.Assert().Equal(errors.CodeFailedPrecondition, errors.GetCode(err))
}

func (s *ControllerTestSuite) TestHydrateRejectsWholesale() {
	s.Require().NoError(s.ctl.Proceed("inn_keeper"))
	visited.Set(s.ctl.Store(), "inn_keeper", true)
	original := entities.NewPlayer(s.catalog)
	s.ctl.SetPlayer(original)

	good := entities.NewPlayer(s.catalog).Data()

	unknownItem := entities.NewPlayer(s.catalog).Data()
	unknownItem.Inventory.Items["laser_rifle"] = 1

	testCases := []struct {
		name string
		snap *scene.Snapshot
	}{
		{name: "nil snapshot", snap: nil},
		{name: "no scenes", snap: &scene.Snapshot{Player: good}},
		{name: "missing player", snap: &scene.Snapshot{Scenes: []string{"town"}}},
		{name: "unknown item", snap: &scene.Snapshot{Player: unknownItem, Scenes: []string{"town"}}},
		{name: "unknown scene", snap: &scene.Snapshot{Player: good, Scenes: []string{"town", "spix_lair"}}},
		{
			name: "unnamed scope",
			snap: &scene.Snapshot{
				SceneState: state.Snapshot{"": {"x": 1}},
				Player:     good,
				Scenes:     []string{"town"},
			},
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			err := s.ctl.Hydrate(tc.snap)
			s.Require().Error(err)
			s.Assert().True(errors.IsInvalidSave(err), err.Error())

			s.Assert().Equal([]string{"inn_keeper"}, s.ctl.Names())
			s.Assert().Same(original, s.ctl.Player())
			s.Assert().True(visited.Get(s.ctl.Store(), "inn_keeper"))
		})
	}
}

func (s *ControllerTestSuite) TestHydrateDropsConstructorArgs() {
	s.Require().NoError(s.ctl.Proceed("camp", "victory"))
	s.ctl.SetPlayer(entities.NewPlayer(s.catalog))

	snap, err := s.ctl.Dehydrate()
	s.Require().NoError(err)
	s.Assert().Equal([]string{"camp"}, snap.Scenes)

	s.Require().NoError(s.ctl.Proceed("inn_keeper"))
	s.Require().NoError(s.ctl.Hydrate(snap))
	s.Assert().Equal([]string{"camp"}, s.ctl.Names())
}
