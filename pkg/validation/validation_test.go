package validation_test

import (
	"errors"
	"testing"

	"tvet-connect-backend/pkg/validation"

	"github.com/stretchr/testify/assert"
)

type signupProbe struct {
	FirstName string   `validate:"required,valid_name"`
	Email     string   `validate:"required,email"`
	Phone     string   `validate:"omitempty,valid_phone"`
	Bio       string   `validate:"no_emoji"`
	Skills    []string `validate:"tag_list"`
}

func TestCustomValidators(t *testing.T) {
	v := validation.New()

	t.Run("Should accept a well formed payload", func(t *testing.T) {
		err := v.Struct(signupProbe{
			FirstName: "Amina O'Neil",
			Email:     "amina@example.com",
			Phone:     "+254 700-000000",
			Bio:       "Welder and fabricator",
			Skills:    []string{"welding", "CAD"},
		})
		assert.NoError(t, err)
	})

	t.Run("Should reject bad phone and emoji bio", func(t *testing.T) {
		err := v.Struct(signupProbe{
			FirstName: "Amina",
			Email:     "amina@example.com",
			Phone:     "call me",
			Bio:       "hi 🚀",
			Skills:    []string{""},
		})
		msgs := validation.FormatValidationErrors(err)
		assert.Len(t, msgs, 3)
		assert.Contains(t, msgs[0], "Phone")
		assert.Contains(t, msgs[1], "Bio")
		assert.Contains(t, msgs[2], "Skills")
	})

	t.Run("Should pass through non validation errors", func(t *testing.T) {
		msgs := validation.FormatValidationErrors(errors.New("boom"))
		assert.Equal(t, []string{"boom"}, msgs)
	})

	t.Run("Should label required fields", func(t *testing.T) {
		err := v.Struct(signupProbe{})
		assert.Contains(t, validation.Message(err), "First name is required")
	})
}
