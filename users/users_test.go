package users

import (
	"testing"

	"github.com/Atiqul-Imon/jhatika-safar-sub000/models"

	"github.com/stretchr/testify/assert"
)

func TestCanDeleteUser(t *testing.T) {
	assert.True(t, canDeleteUser(models.RoleUser, 1))
	assert.True(t, canDeleteUser(models.RoleUser, 0))
	assert.True(t, canDeleteUser(models.RoleAdmin, 2))
	assert.False(t, canDeleteUser(models.RoleAdmin, 1))
}
