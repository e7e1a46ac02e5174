package services

import (
	"testing"

	"github.com/askwellapp/askwell-backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategoryCreateCaseInsensitiveUnique(t *testing.T) {
	e := newEnv(t)

	_, err := e.categories.Create("Plumbing", "pipes and drains")
	require.NoError(t, err)

	_, err = e.categories.Create("plumbing", "")
	assert.ErrorIs(t, err, ErrCategoryExists)
}

func TestCategoryDeleteInUse(t *testing.T) {
	e := newEnv(t)
	author := createUser(t, e.db, models.RoleUser)

	category, err := e.categories.Create("general", "")
	require.NoError(t, err)

	createQuestion(t, e.db, author.ID, models.StatusOpen) // category "general"

	err = e.categories.Delete(category.ID)
	assert.ErrorIs(t, err, ErrCategoryInUse)

	empty, err := e.categories.Create("empty", "")
	require.NoError(t, err)
	require.NoError(t, e.categories.Delete(empty.ID))
}
