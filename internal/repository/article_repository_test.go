package repository

import (
	"testing"

	"garment-qc-go/internal/database/dbtest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArticleRepository(t *testing.T) {
	db := dbtest.New(t)
	repo := NewArticleRepository(db)
	article, images := seedArticle(t, db, "ST-300", "XL", "M", "M", "S")

	got, err := repo.GetByID(article.ID)
	require.NoError(t, err)
	assert.Equal(t, "ST-300", got.ArticleStyle)

	_, err = repo.GetByID(article.ID + 100)
	assert.ErrorIs(t, err, ErrNotFound)

	img, err := repo.GetImageByID(images[0].ID)
	require.NoError(t, err)
	assert.Equal(t, "XL", img.Size)

	sizes, err := repo.ListSizes(article.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"M", "S", "XL"}, sizes)

	list, err := repo.ListImages(article.ID, "M")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, images[2].ID, list[0].ID)
}

func TestSettingRepository(t *testing.T) {
	db := dbtest.New(t)
	repo := NewSettingRepository(db)

	_, ok, err := repo.Get("password")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, repo.Set("password", "one"))
	require.NoError(t, repo.Set("password", "two"))

	value, ok, err := repo.Get("password")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "two", value)
}
