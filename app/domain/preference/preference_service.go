package preference

import (
	"context"
	"errors"
	"slices"

	"vowboard.io/planner-gateway/app/utils/logger"
)

const DefaultLanguage = "en"

var SupportedLanguages = []string{"en", "es", "fr", "pt"}

var ErrUnsupportedLanguage = errors.New("unsupported language")

type PreferenceService struct {
	repo PreferenceRepository
}

func NewService(repo PreferenceRepository) *PreferenceService {
	return &PreferenceService{repo: repo}
}

// Language returns the stored language, or the default when none is stored
// or the store cannot be read.
func (s *PreferenceService) Language(ctx context.Context, ownerID string) string {
	p, err := s.repo.Get(ctx, ownerID, KeyLanguage)
	if err != nil {
		logger.GetLogger().WithError(err).Warn("language preference unreadable, using default")
		return DefaultLanguage
	}
	if p == nil || !slices.Contains(SupportedLanguages, p.Value) {
		return DefaultLanguage
	}
	return p.Value
}

func (s *PreferenceService) SetLanguage(ctx context.Context, ownerID string, language string) error {
	if !slices.Contains(SupportedLanguages, language) {
		return ErrUnsupportedLanguage
	}
	return s.repo.Set(ctx, &Preference{OwnerID: ownerID, Key: KeyLanguage, Value: language})
}

// LocalNotes returns notes kept locally for owners without a wedding.
func (s *PreferenceService) LocalNotes(ctx context.Context, ownerID string) (string, error) {
	p, err := s.repo.Get(ctx, ownerID, KeyNotes)
	if err != nil || p == nil {
		return "", err
	}
	return p.Value, nil
}
