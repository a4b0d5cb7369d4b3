package planner

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProportionalControllerNext(t *testing.T) {
	c := ProportionalController{Kp: 0.76}
	assert.InDelta(t, 0.76*0.5, c.Next(1.0, 0.5), 1e-9)
	assert.InDelta(t, 0, c.Next(1.0, 1.0), 1e-9)
}

func TestDefaultControllerUsesDefaultKp(t *testing.T) {
	c := NewController(DefaultKp)
	pc, ok := c.(ProportionalController)
	assert.True(t, ok)
	assert.Equal(t, DefaultKp, pc.Kp)
}
