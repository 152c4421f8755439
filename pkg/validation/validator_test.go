package validation

import (
	"testing"

	"github.com/gin-gonic/gin/binding"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToDetailsFieldMessages(t *testing.T) {
	Init()

	type payload struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required,pwd"`
		Note     string `json:"note" binding:"omitempty,min=3"`
	}

	err := binding.Validator.ValidateStruct(payload{Email: "not-an-email", Password: "abc", Note: "x"})
	require.Error(t, err)

	details := ToDetails(err)
	assert.Equal(t, "must be a valid email", details["email"])
	assert.Equal(t, "must be at least 6 characters long", details["password"])
	assert.Equal(t, "must be at least 3 characters long", details["note"])
}

func TestToDetailsNilError(t *testing.T) {
	assert.Nil(t, ToDetails(nil))
}
