package defaults

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestApply(t *testing.T) {
	assert.Equal(t, "Water, Shed", Apply("amenities", "Water, Shed"))
	assert.Equal(t, "None Listed", Apply("amenities", ""))
	assert.Equal(t, "None Listed", Apply("amenities", "   "))
	assert.Equal(t, "None Listed", Apply("restrictions", ""))

	// fields without a configured sentinel pass through untouched
	assert.Equal(t, "", Apply("description", ""))
	assert.Equal(t, "x", Apply("description", "x"))
}
