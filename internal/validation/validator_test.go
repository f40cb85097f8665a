package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type sample struct {
	Name  string `json:"name" validate:"notblank"`
	Email string `json:"email" validate:"required,email"`
	Count int    `json:"count" validate:"gt=0"`
}

func TestValidate(t *testing.T) {
	v := New()
	assert.NoError(t, v.Validate(&sample{Name: "a", Email: "a@b.io", Count: 1}))

	err := v.Validate(&sample{Name: "  ", Email: "nope", Count: 0})
	if assert.Error(t, err) {
		msg := Message(err)
		assert.Contains(t, msg, "name: must not be blank")
		assert.Contains(t, msg, "email: must be a valid email")
		assert.Contains(t, msg, "count: must be greater than 0")
	}
}
