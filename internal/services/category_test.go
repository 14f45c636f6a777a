package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCategoryService(t *testing.T) {
	s := NewCategoryService()

	found := s.Search("SMART")
	labels := make([]string, 0, len(found))
	for _, c := range found {
		labels = append(labels, c.Label)
	}
	assert.Contains(t, labels, "Smartphone")
	assert.Contains(t, labels, "Smartwatch")

	code := s.ProductCode("Notebook", "0007")
	assert.Equal(t, "NB-0007", code.ProductCode)
	assert.True(t, code.Known)

	code = s.ProductCode("Drone", "1")
	assert.Equal(t, "Drone", code.Abbreviation)
	assert.Equal(t, "Drone-1", code.ProductCode)
	assert.False(t, code.Known)
}
