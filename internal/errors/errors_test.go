package errors_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/rpg-spellindex/internal/errors"
)

type ErrorsTestSuite struct {
	suite.Suite
}

func TestErrorsSuite(t *testing.T) {
	suite.Run(t, new(ErrorsTestSuite))
}

func (s *ErrorsTestSuite) TestNewError() {
	testCases := []struct {
		name     string
		code     errors.Code
		message  string
		expected string
	}{
		{
			name:     "not found error",
			code:     errors.CodeNotFound,
			message:  "entity not found",
			expected: "NOT_FOUND: entity not found",
		},
		{
			name:     "issue code",
			code:     errors.CodeUnknownSchoolCode,
			message:  "unknown school code \"Q\"",
			expected: "UNKNOWN_SCHOOL_CODE: unknown school code \"Q\"",
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			err := errors.New(tc.code, tc.message)
			s.Equal(tc.expected, err.Error())
			s.Equal(tc.code, err.Code)
		})
	}
}

func (s *ErrorsTestSuite) TestWrapPreservesCode() {
	inner := errors.NotFound("spell|fireball|phb")
	wrapped := errors.Wrap(inner, "lookup failed")

	s.Equal(errors.CodeNotFound, wrapped.Code)
	s.True(errors.IsNotFound(wrapped))
	s.ErrorIs(wrapped, inner)
}

func (s *ErrorsTestSuite) TestWrapPlainError() {
	wrapped := errors.Wrap(fmt.Errorf("boom"), "redis down")

	s.Equal(errors.CodeInternal, errors.GetCode(wrapped))
	s.Contains(wrapped.Error(), "boom")
	s.Nil(errors.Wrap(nil, "nothing"))
}

func (s *ErrorsTestSuite) TestIssueConstructors() {
	err := errors.MissingReferencedEntity("spell|fireball|phb", "class|nobody|phb")

	s.True(errors.IsMissingReferencedEntity(err))
	s.True(err.Code.IsIssue())
	s.Equal("spell|fireball|phb", errors.GetMeta(err)["spell"])
	s.False(errors.CodeNotFound.IsIssue())

	attrs := err.LogAttrs()
	s.Contains(attrs, "code")
	s.Contains(attrs, string(errors.CodeMissingReferencedEntity))

	skipped := errors.InvalidCatalogRecord("monster|lich|mm", errors.InvalidArgument("type cannot grant spells"))
	s.Equal(errors.CodeInvalidCatalogRecord, skipped.Code)
	s.True(skipped.Code.IsIssue())
	s.Equal("monster|lich|mm", errors.GetMeta(skipped)["record"])
	s.Contains(skipped.Error(), "type cannot grant spells")
}

func (s *ErrorsTestSuite) TestValidationBuilder() {
	vb := errors.NewValidationBuilder()
	s.NoError(vb.Build())

	vb.RequiredField("Catalog")
	errors.ValidateEnum("Policy", "newest", []string{"first-specific", "last-specific"}, vb)
	err := vb.Build()

	s.Require().Error(err)
	s.True(errors.IsInvalidArgument(err))
	s.Equal(
		"INVALID_ARGUMENT: validation failed: Catalog: is required; Policy: must be one of: first-specific, last-specific",
		err.Error(),
	)
}
