package middleware

import (
	"errors"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type registerPayload struct {
	Username string `json:"userName" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Quantity int    `json:"quantity" validate:"gt=0"`
}

func TestValidationMessages(t *testing.T) {
	v := validator.New()

	t.Run("flattens field errors to one message per field", func(t *testing.T) {
		err := v.Struct(registerPayload{Email: "not-an-email", Password: "short", Quantity: 0})
		require.Error(t, err)

		messages := ValidationMessages(err)
		require.Len(t, messages, 4)
		assert.Contains(t, messages[0], "required")
		assert.Contains(t, messages[1], "valid email")
		assert.Contains(t, messages[2], "at least 8 characters")
		assert.Contains(t, messages[3], "greater than 0")
	})

	t.Run("non-validator errors pass through as-is", func(t *testing.T) {
		messages := ValidationMessages(errors.New("unexpected end of JSON input"))
		require.Len(t, messages, 1)
		assert.Equal(t, "unexpected end of JSON input", messages[0])
	})

	t.Run("valid payload produces no error", func(t *testing.T) {
		err := v.Struct(registerPayload{
			Username: "jdoe",
			Email:    "jdoe@example.com",
			Password: "correct-horse",
			Quantity: 2,
		})
		assert.NoError(t, err)
	})
}
