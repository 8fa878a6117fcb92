package preference

import "context"

const (
	KeyLanguage = "language"
	KeyNotes    = "notes"
)

type Preference struct {
	OwnerID string
	Key     string
	Value   string
}

// PreferenceRepository is the local persistent key/value store.
type PreferenceRepository interface {
	Get(ctx context.Context, ownerID string, key string) (*Preference, error)
	Set(ctx context.Context, p *Preference) error
}
