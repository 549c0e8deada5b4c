package sheet_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/spix/internal/catalog"
	"github.com/KirkDiggler/spix/internal/errors"
	"github.com/KirkDiggler/spix/internal/sheet"
	"github.com/KirkDiggler/spix/internal/testutils/builders"
)

type SheetTestSuite struct {
	suite.Suite
	catalog *catalog.Catalog
}

func TestSheetSuite(t *testing.T) {
	suite.Run(t, new(SheetTestSuite))
}

func (s *SheetTestSuite) SetupTest() {
	var err error
	s.catalog, err = catalog.Default()
	s.Require().NoError(err)
}

func (s *SheetTestSuite) TestGenerate() {
	testCases := []struct {
		name    string
		builder *builders.PlayerBuilder
	}{
		{"fresh", builders.NewPlayerBuilder()},
		{"armed", builders.NewPlayerBuilder().WithItem("knife", 1).WithEquipped("knife").WithCash(1250)},
		{"empty handed", builders.NewPlayerBuilder().WithoutItems().WithName("Ölga")},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			player, err := tc.builder.Build(s.catalog)
			s.Require().NoError(err)

			pdf, err := sheet.Generate(player)
			s.Require().NoError(err)
			s.Assert().True(bytes.HasPrefix(pdf, []byte("%PDF")), "missing PDF header")
			s.Assert().Greater(len(pdf), 500)
		})
	}
}

func (s *SheetTestSuite) TestRequiresPlayer() {
	_, err := sheet.Generate(nil)
	s.Require().Error(err)
	s.Assert().True(errors.IsInvalidArgument(err))
}
