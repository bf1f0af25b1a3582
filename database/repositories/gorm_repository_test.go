package repositories

import (
	"context"
	"errors"
	"testing"

	"github.com/l3montree-dev/vulncorrelator/database/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestIsParameterLimitError(t *testing.T) {
	assert.True(t, isParameterLimitError(errors.New("extended protocol limited to 65535 parameters")))
	assert.False(t, isParameterLimitError(errors.New("some other error")))
	assert.False(t, isParameterLimitError(nil))
}

func TestGormRepositoryBatches(t *testing.T) {
	db := newTestDB(t)
	repo := newGormRepository[models.Vulnerability](db)

	t.Run("empty batches are a no-op", func(t *testing.T) {
		assert.NoError(t, repo.CreateBatch(nil, nil))
		assert.NoError(t, repo.SaveBatch(nil, nil))
	})

	t.Run("create batch keeps existing rows", func(t *testing.T) {
		require.NoError(t, repo.CreateBatch(nil, []models.Vulnerability{{ID: "CVE-1", Title: "first"}}))
		require.NoError(t, repo.CreateBatch(nil, []models.Vulnerability{{ID: "CVE-1", Title: "second"}, {ID: "CVE-2"}}))

		var stored []models.Vulnerability
		require.NoError(t, db.Order("id").Find(&stored).Error)
		require.Len(t, stored, 2)
		assert.Equal(t, "first", stored[0].Title)
	})

	t.Run("save batch updates existing rows and keeps the creation time", func(t *testing.T) {
		var before models.Vulnerability
		require.NoError(t, db.First(&before, "id = ?", "CVE-1").Error)

		require.NoError(t, repo.SaveBatch(nil, []models.Vulnerability{{ID: "CVE-1", Title: "second"}, {ID: "CVE-3"}}))

		var after models.Vulnerability
		require.NoError(t, db.First(&after, "id = ?", "CVE-1").Error)
		assert.Equal(t, "second", after.Title)
		assert.True(t, before.CreatedAt.Equal(after.CreatedAt))

		var count int64
		require.NoError(t, db.Model(&models.Vulnerability{}).Count(&count).Error)
		assert.EqualValues(t, 3, count)
	})

	t.Run("writes join the given transaction", func(t *testing.T) {
		err := db.WithContext(context.Background()).Transaction(func(tx *gorm.DB) error {
			require.NoError(t, repo.CreateBatch(tx, []models.Vulnerability{{ID: "CVE-4"}}))
			return errors.New("rollback")
		})
		require.Error(t, err)

		var count int64
		require.NoError(t, db.Model(&models.Vulnerability{}).Where("id = ?", "CVE-4").Count(&count).Error)
		assert.Zero(t, count)
	})
}
