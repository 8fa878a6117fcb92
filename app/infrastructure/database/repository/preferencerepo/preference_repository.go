package preferencerepo

import (
	"context"

	domain "vowboard.io/planner-gateway/app/domain/preference"
	"vowboard.io/planner-gateway/app/infrastructure/database/dbschema"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PreferenceGormRepository struct {
	db *gorm.DB
}

func NewPreferenceGormRepository(db *gorm.DB) domain.PreferenceRepository {
	return &PreferenceGormRepository{
		db: db,
	}
}

func (r *PreferenceGormRepository) Get(ctx context.Context, ownerID string, key string) (*domain.Preference, error) {
	var models []dbschema.Preference
	err := r.db.WithContext(ctx).
		Where("owner_id = ? AND key = ?", ownerID, key).
		Limit(1).
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	if len(models) == 0 {
		return nil, nil
	}
	return models[0].EtoD(), nil
}

func (r *PreferenceGormRepository) Set(ctx context.Context, p *domain.Preference) error {
	model := dbschema.NewSchemaPreference(p)
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "owner_id"}, {Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).
		Create(model).Error
}
