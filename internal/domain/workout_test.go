package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSetData_String(t *testing.T) {
	assert.Equal(t, "80 kg x 10 reps", SetData{Weight: "80", Reps: "10"}.String())
	assert.Equal(t, "Left - 20 kg x 12 reps", SetData{Weight: "20", Reps: "12", Side: SideLeft}.String())
	assert.Equal(t, "30 min - 5 km", SetData{Duration: "30", Distance: "5"}.String())
}
