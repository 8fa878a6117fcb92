package preferencerepo

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	domain "vowboard.io/planner-gateway/app/domain/preference"
	"vowboard.io/planner-gateway/app/infrastructure/database"
	_ "vowboard.io/planner-gateway/app/infrastructure/database/dbschema"
)

func TestSetUpsertsByOwnerAndKey(t *testing.T) {
	db, err := database.Open(filepath.Join(t.TempDir(), "preferences.db"))
	require.NoError(t, err)
	repo := NewPreferenceGormRepository(db)
	ctx := context.Background()

	missing, err := repo.Get(ctx, "u1", domain.KeyLanguage)
	require.NoError(t, err)
	assert.Nil(t, missing)

	require.NoError(t, repo.Set(ctx, &domain.Preference{OwnerID: "u1", Key: domain.KeyLanguage, Value: "es"}))
	require.NoError(t, repo.Set(ctx, &domain.Preference{OwnerID: "u1", Key: domain.KeyLanguage, Value: "fr"}))
	require.NoError(t, repo.Set(ctx, &domain.Preference{OwnerID: "u2", Key: domain.KeyLanguage, Value: "pt"}))

	got, err := repo.Get(ctx, "u1", domain.KeyLanguage)
	require.NoError(t, err)
	assert.Equal(t, "fr", got.Value)

	var count int64
	require.NoError(t, db.Table("preference").Count(&count).Error)
	assert.Equal(t, int64(2), count)

	version, err := database.NewDBMigrator(db).CurrentVersion(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), version)
}
