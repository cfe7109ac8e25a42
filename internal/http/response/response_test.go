package response

import (
	"testing"

	"github.com/go-playground/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOKWithData(t *testing.T) {
	resp := OKWithData(map[string]any{"key": "value"})

	assert.Equal(t, StatusOK, resp.Status)
	assert.Empty(t, resp.Error)
	assert.NotNil(t, resp.Data)
}

func TestError(t *testing.T) {
	resp := Error("something went wrong")

	assert.Equal(t, StatusError, resp.Status)
	assert.Equal(t, "something went wrong", resp.Error)
}

func TestValidationError(t *testing.T) {
	type testStruct struct {
		Email       string   `validate:"required,email"`
		Latitude    *float64 `validate:"omitempty,gte=-90,lte=90"`
		MaxDistance *float64 `validate:"omitempty,gte=0,lte=100"`
		Age         *int     `validate:"omitempty,gte=18"`
	}

	validate := validator.New()

	tooFarNorth := 95.0
	tooYoung := 15

	err := validate.Struct(testStruct{
		Email:    "not-an-email",
		Latitude: &tooFarNorth,
		Age:      &tooYoung,
	})
	require.Error(t, err)

	var validationErrs validator.ValidationErrors
	require.ErrorAs(t, err, &validationErrs)

	resp := ValidationError(validationErrs)

	assert.Equal(t, StatusError, resp.Status)
	assert.Contains(t, resp.Error, "field Email must be a valid email")
	assert.Contains(t, resp.Error, "field Latitude must be less than or equal to 90")
	assert.Contains(t, resp.Error, "field Age must be greater than or equal to 18")
}
