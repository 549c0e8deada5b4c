package errors_test

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/spix/internal/errors"
)

type ValidationTestSuite struct {
	suite.Suite
}

func TestValidationSuite(t *testing.T) {
	suite.Run(t, new(ValidationTestSuite))
}

func (s *ValidationTestSuite) TestValidationError() {
	ve := errors.NewValidationError()
	ve.AddFieldError("name", "is required")
	ve.AddFieldError("save_backend", "is invalid")
	ve.AddFieldErrorf("max_sessions", "must be at least %d", 1)

	s.Assert().True(ve.HasErrors())
	s.Assert().Contains(ve.Error(), "name: is required")
	s.Assert().Contains(ve.Error(), "save_backend: is invalid")
	s.Assert().Contains(ve.Error(), "max_sessions: must be at least 1")

	err := ve.ToError()
	s.Assert().Equal(errors.CodeInvalidArgument, err.Code)
	s.Assert().NotNil(err.Meta["validation_errors"])
}

func (s *ValidationTestSuite) TestValidationBuilder() {
	vb := errors.NewValidationBuilder()
	vb.Field("name", "is required").
		Fieldf("level", "must be between %d and %d", 1, 99).
		RequiredField("listen_addr").
		InvalidField("log_level", "not a known level")

	err := vb.Build()
	s.Require().NotNil(err)
	s.Assert().True(errors.IsInvalidArgument(err))
}

func (s *ValidationTestSuite) TestValidationBuilderNoErrors() {
	vb := errors.NewValidationBuilder()
	err := vb.Build()
	s.Assert().Nil(err)
}

func (s *ValidationTestSuite) TestValidateRequired() {
	testCases := []struct {
		name      string
		value     string
		shouldErr bool
	}{
		{"valid value", "doug", false},
		{"empty string", "", true},
		{"whitespace only", "   ", true},
		{"valid with spaces", "  doug  ", false},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			vb := errors.NewValidationBuilder()
			errors.ValidateRequired("field", tc.value, vb)
			err := vb.Build()
			if tc.shouldErr {
				s.Assert().NotNil(err)
			} else {
				s.Assert().Nil(err)
			}
		})
	}
}

func (s *ValidationTestSuite) TestValidateMaxLength() {
	vb := errors.NewValidationBuilder()
	errors.ValidateMaxLength("name", "a wanderer with a very long name indeed", 24, vb)
	errors.ValidateMaxLength("save", "doug", 24, vb)
	errors.ValidateMaxLength("accented", "éééééééééééééééééééé", 24, vb)

	err := vb.Build()
	s.Require().NotNil(err)
	meta := errors.GetMeta(err)
	validationErrors := meta["validation_errors"].(map[string][]string)
	s.Assert().Contains(validationErrors["name"][0], "must be no more than 24 characters")
	s.Assert().NotContains(validationErrors, "save")
	s.Assert().NotContains(validationErrors, "accented", "characters are counted, not bytes")
}

func (s *ValidationTestSuite) TestValidateRange() {
	vb := errors.NewValidationBuilder()
	errors.ValidateRange("max_sessions", 0, 1, 4096, vb)
	errors.ValidateRange("health_port", 50051, 1, 65535, vb)

	err := vb.Build()
	s.Require().NotNil(err)
	meta := errors.GetMeta(err)
	validationErrors := meta["validation_errors"].(map[string][]string)
	s.Assert().Contains(validationErrors["max_sessions"][0], "must be between 1 and 4096")
	s.Assert().NotContains(validationErrors, "health_port")
}

func (s *ValidationTestSuite) TestValidateEnum() {
	backends := []string{"file", "redis"}

	vb := errors.NewValidationBuilder()
	errors.ValidateEnum("save_backend", "postgres", backends, vb)
	errors.ValidateEnum("fallback_backend", "file", backends, vb)

	err := vb.Build()
	s.Require().NotNil(err)
	meta := errors.GetMeta(err)
	validationErrors := meta["validation_errors"].(map[string][]string)
	s.Assert().Contains(validationErrors["save_backend"][0], "must be one of: file, redis")
	s.Assert().NotContains(validationErrors, "fallback_backend")
}
