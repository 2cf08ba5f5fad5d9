package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanText(t *testing.T) {
	assert.Equal(t, "Ana López", CleanText("  <b>Ana</b> López "))
	assert.Equal(t, "Calle 5 & 6", CleanText("Calle 5 &amp; 6"))
	assert.Equal(t, "", CleanText("<script>alert(1)</script>"))
	assert.Equal(t, "Sin cebolla", CleanText("Sin cebolla"))
}
