package presentation

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"vowboard.io/planner-gateway/app/utils/logger"
)

var (
	ErrSessionNotFound = errors.New("presentation session not found")
	ErrUnknownEvent    = errors.New("unknown navigation event")
)

type EventType string

const (
	EventNext               EventType = "next"
	EventPrevious           EventType = "previous"
	EventJump               EventType = "jump"
	EventSwipe              EventType = "swipe"
	EventOpenFullscreen     EventType = "open_fullscreen"
	EventFullscreenNext     EventType = "fullscreen_next"
	EventFullscreenPrevious EventType = "fullscreen_previous"
	EventClose              EventType = "close"
)

type Event struct {
	Type    EventType
	Index   int
	DX      float64
	DY      float64
	Trigger CloseTrigger
}

type Session struct {
	ID        string
	DeckKey   string
	Slides    []*Slide
	Menu      []MenuEntry
	Navigator *Navigator
	Scroll    *PageScrollLock
	UpdatedAt time.Time
}

type PresentationService struct {
	repo SlideRepository

	mu       sync.Mutex
	sessions map[string]*Session
}

func NewService(repo SlideRepository) *PresentationService {
	return &PresentationService{
		repo:     repo,
		sessions: make(map[string]*Session),
	}
}

// Open starts a viewer session on the deck's slides.
func (s *PresentationService) Open(ctx context.Context, deckKey string) (*Session, error) {
	slides, err := s.repo.FindByDeck(ctx, deckKey)
	if err != nil {
		return nil, fmt.Errorf("failed to load deck %s: %w", deckKey, err)
	}
	lock := &PageScrollLock{}
	nav, err := NewNavigator(len(slides), lock)
	if err != nil {
		return nil, err
	}
	session := &Session{
		ID:        uuid.NewString(),
		DeckKey:   deckKey,
		Slides:    slides,
		Menu:      Menu(slides),
		Navigator: nav,
		Scroll:    lock,
		UpdatedAt: time.Now(),
	}
	s.mu.Lock()
	s.sessions[session.ID] = session
	s.mu.Unlock()
	return session, nil
}

func (s *PresentationService) Get(id string) (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	session, ok := s.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return session, nil
}

// Apply feeds one event to the session's navigator. It reports whether the
// navigation state changed; a step past either end of the deck does not.
func (s *PresentationService) Apply(id string, e Event) (State, bool, error) {
	session, err := s.Get(id)
	if err != nil {
		return State{}, false, err
	}
	s.mu.Lock()
	session.UpdatedAt = time.Now()
	s.mu.Unlock()

	nav := session.Navigator
	before := nav.State()
	var state State
	switch e.Type {
	case EventNext:
		state = nav.Next()
	case EventPrevious:
		state = nav.Previous()
	case EventJump:
		state, err = nav.Jump(e.Index)
	case EventSwipe:
		state, _ = nav.Swipe(e.DX, e.DY)
	case EventOpenFullscreen:
		state, err = nav.OpenFullscreen(e.Index)
	case EventFullscreenNext:
		state = nav.FullscreenNext()
	case EventFullscreenPrevious:
		state = nav.FullscreenPrevious()
	case EventClose:
		state, err = nav.Close(e.Trigger)
	default:
		return before, false, ErrUnknownEvent
	}
	return state, err == nil && state != before, err
}

// End closes the overlay, releasing the scroll lock, and drops the session.
func (s *PresentationService) End(id string) error {
	s.mu.Lock()
	session, ok := s.sessions[id]
	delete(s.sessions, id)
	s.mu.Unlock()
	if !ok {
		return ErrSessionNotFound
	}
	session.Navigator.closeOverlay()
	return nil
}

// PurgeIdle ends sessions untouched for longer than maxIdle.
func (s *PresentationService) PurgeIdle(maxIdle time.Duration) int {
	cutoff := time.Now().Add(-maxIdle)
	s.mu.Lock()
	var stale []string
	for id, session := range s.sessions {
		if session.UpdatedAt.Before(cutoff) {
			stale = append(stale, id)
		}
	}
	s.mu.Unlock()
	for _, id := range stale {
		_ = s.End(id)
	}
	if len(stale) > 0 {
		logger.GetLogger().Infof("ended %d idle presentation sessions", len(stale))
	}
	return len(stale)
}
