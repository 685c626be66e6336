package booking

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTotalDurationMinutes(t *testing.T) {
	minutes := map[int64]int{2: 15, 3: 20}

	assert.Equal(t, 30, TotalDurationMinutes(30, nil, minutes))
	assert.Equal(t, 65, TotalDurationMinutes(30, []int64{2, 3}, minutes))

	// Extras repetidos contam individualmente
	assert.Equal(t, 60, TotalDurationMinutes(30, []int64{2, 2}, minutes))

	// Id desconhecido não contribui
	assert.Equal(t, 45, TotalDurationMinutes(30, []int64{2, 99}, minutes))
}
