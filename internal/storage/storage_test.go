package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContarDistintas(t *testing.T) {
	assert.Equal(t, int64(0), contarDistintas(nil))
	assert.Equal(t, int64(0), contarDistintas([]string{}))
	assert.Equal(t, int64(2), contarDistintas([]string{"d1", "d2"}))

	// Varias asignaciones históricas del mismo caso no inflan el contador.
	assert.Equal(t, int64(1), contarDistintas([]string{"d1", "d1", "d1"}))
	assert.Equal(t, int64(2), contarDistintas([]string{"d1", "d2", "d1"}))
}
