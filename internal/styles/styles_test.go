package styles

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDisableColor(t *testing.T) {
	DisableColor()

	assert.Equal(t, "boom", ERROR("boom"))
	assert.Equal(t, "careful", WARNING("careful"))
}
