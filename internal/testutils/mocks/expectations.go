// Package mocks provides mock expectation helpers for common testing patterns
package mocks

import (
	"time"

	"go.uber.org/mock/gomock"

	"github.com/KirkDiggler/spix/internal/repositories/saves"
	savesmock "github.com/KirkDiggler/spix/internal/repositories/saves/mock"
)

// ExpectSaveList sets up a mock expectation for listing an owner's saves.
// Every summary is stamped with savedAt.
func ExpectSaveList(
	mockRepo *savesmock.MockRepository,
	owner string, savedAt time.Time, names ...string,
) *gomock.Call {
	summaries := make([]saves.Summary, 0, len(names))
	for _, name := range names {
		summaries = append(summaries, saves.Summary{Name: name, SavedAt: savedAt})
	}
	return mockRepo.EXPECT().
		List(gomock.Any(), saves.ListInput{Owner: owner}).
		Return(&saves.ListOutput{Saves: summaries}, nil)
}

// ExpectSaveGet sets up a mock expectation for reading one save
func ExpectSaveGet(
	mockRepo *savesmock.MockRepository,
	owner, name string, out *saves.GetOutput, err error,
) *gomock.Call {
	return mockRepo.EXPECT().
		Get(gomock.Any(), saves.GetInput{Owner: owner, Name: name}).
		Return(out, err)
}

// ExpectSavePutFailure sets up a mock expectation for a write that fails
func ExpectSavePutFailure(mockRepo *savesmock.MockRepository, err error) *gomock.Call {
	return mockRepo.EXPECT().
		Put(gomock.Any(), gomock.Any()).
		Return(nil, err)
}
