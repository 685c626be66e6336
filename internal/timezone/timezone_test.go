package timezone

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLocationFallsBackToDefault(t *testing.T) {
	assert.Equal(t, DefaultTimezone, Location("").String())
	assert.Equal(t, DefaultTimezone, Location("Not/AZone").String())
	assert.Equal(t, "America/Sao_Paulo", Location("America/Sao_Paulo").String())
}

func TestIsValid(t *testing.T) {
	assert.False(t, IsValid(""))
	assert.False(t, IsValid("garbage"))
	assert.True(t, IsValid("Europe/Helsinki"))
}
