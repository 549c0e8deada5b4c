package saves

import (
	"encoding/json"
	"time"

	"github.com/KirkDiggler/spix/internal/errors"
	"github.com/KirkDiggler/spix/internal/scene"
)

// saveData is the stored form shared by every backend
type saveData struct {
	Name     string          `json:"name"`
	SavedAt  int64           `json:"saved_at"`
	Snapshot *scene.Snapshot `json:"snapshot"`
}

func encode(name string, savedAt time.Time, snap *scene.Snapshot) ([]byte, error) {
	data, err := json.Marshal(saveData{Name: name, SavedAt: savedAt.UTC().UnixMilli(), Snapshot: snap})
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal save")
	}
	return data, nil
}

func decode(raw []byte) (*GetOutput, error) {
	var data saveData
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeInvalidSave, "save is not valid json")
	}
	if data.Snapshot == nil {
		return nil, errors.InvalidSavef("save %s has no snapshot", data.Name)
	}
	return &GetOutput{
		Summary:  Summary{Name: data.Name, SavedAt: time.UnixMilli(data.SavedAt).UTC()},
		Snapshot: data.Snapshot,
	}, nil
}

func validatePut(input PutInput) (string, error) {
	name, err := validateKey(input.Owner, input.Name)
	if err != nil {
		return "", err
	}
	if input.Snapshot == nil {
		return "", errors.InvalidArgument("snapshot is required")
	}
	return name, nil
}
