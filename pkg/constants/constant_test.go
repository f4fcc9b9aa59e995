package constants

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidCategory(t *testing.T) {
	for _, c := range VideoCategories {
		assert.True(t, IsValidCategory(c), c)
	}
	assert.False(t, IsValidCategory("cooking"))
	assert.False(t, IsValidCategory(""))
	assert.False(t, IsValidCategory("Music"), "categories are case sensitive")
}

func TestIsValidVisibility(t *testing.T) {
	assert.True(t, IsValidVisibility(VisibilityPublic))
	assert.True(t, IsValidVisibility(VisibilityPrivate))
	assert.True(t, IsValidVisibility(VisibilityUnlisted))
	assert.False(t, IsValidVisibility(""))
	assert.False(t, IsValidVisibility("secret"))
}
