package dbschema

import (
	"vowboard.io/planner-gateway/app/domain/preference"
	"vowboard.io/planner-gateway/app/infrastructure/database"
)

func init() {
	database.RegisterSchemaForAutoMigrate(Preference{})
}

type Preference struct {
	BaseModel
	OwnerID string `gorm:"not null;uniqueIndex:idx_preference_owner_key"`
	Key     string `gorm:"not null;uniqueIndex:idx_preference_owner_key"`
	Value   string `gorm:"type:text"`
}

func NewSchemaPreference(p *preference.Preference) *Preference {
	return &Preference{
		OwnerID: p.OwnerID,
		Key:     p.Key,
		Value:   p.Value,
	}
}

func (p *Preference) EtoD() *preference.Preference {
	return &preference.Preference{
		OwnerID: p.OwnerID,
		Key:     p.Key,
		Value:   p.Value,
	}
}
