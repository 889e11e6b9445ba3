package drafts

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryRepoSaveAndList(t *testing.T) {
	repo := NewMemoryRepo()

	id1, err := repo.Save(&Draft{Title: "older", CreatedAt: time.Now().Add(-time.Hour)})
	require.NoError(t, err)
	id2, err := repo.Save(&Draft{Title: "newer"})
	require.NoError(t, err)
	assert.NotEqual(t, id1, id2)

	list, err := repo.List()
	require.NoError(t, err)
	require.Len(t, list, 2)
	// newest first
	assert.Equal(t, "newer", list[0].Title)
}

func TestMemoryRepoDelete(t *testing.T) {
	repo := NewMemoryRepo()
	id, err := repo.Save(&Draft{Title: "gone"})
	require.NoError(t, err)

	require.NoError(t, repo.Delete(id))
	assert.ErrorIs(t, repo.Delete(id), ErrNotFound)

	list, err := repo.List()
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestMemoryRepoReturnsCopies(t *testing.T) {
	repo := NewMemoryRepo()
	_, err := repo.Save(&Draft{Title: "immutable"})
	require.NoError(t, err)

	list, _ := repo.List()
	list[0].Title = "mutated"

	again, _ := repo.List()
	assert.Equal(t, "immutable", again[0].Title)
}
