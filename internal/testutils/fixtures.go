package testutils

import (
	"github.com/KirkDiggler/spix/internal/entities"
	"github.com/KirkDiggler/spix/internal/scene"
	"github.com/KirkDiggler/spix/internal/state"
)

// TestPlayerName is the default player name for test fixtures
const TestPlayerName = "Doug"

// CreateTestPlayerData returns the persisted form of a fresh player
func CreateTestPlayerData(name string) *entities.PlayerData {
	return &entities.PlayerData{
		Name:    name,
		Cash:    5,
		HP:      12,
		MaxHP:   12,
		Level:   1,
		Martial: 9,
		Evasion: 7,
		Inventory: entities.InventoryData{
			Items: map[string]int{"first_aid": 1, "road_chow": 2},
		},
	}
}

// CreateTestSnapshot returns a save parked in Winnipeg with one scene
// variable set away from its default
func CreateTestSnapshot(name string) *scene.Snapshot {
	return &scene.Snapshot{
		SceneState: state.Snapshot{
			"tavern": {"intro": false},
		},
		Player: CreateTestPlayerData(name),
		Scenes: []string{"winnipeg"},
	}
}
