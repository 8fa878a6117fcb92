package presentation

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type deckRepo map[string][]*Slide

func (d deckRepo) FindByDeck(_ context.Context, deckKey string) ([]*Slide, error) {
	return d[deckKey], nil
}

func strp(s string) *string { return &s }

func testDeck() deckRepo {
	return deckRepo{"lookbook": {
		{ID: "s1", Position: 0, Section: strp("Florals")},
		{ID: "s2", Position: 1, Section: strp("Florals")},
		{ID: "s3", Position: 2, Section: strp("Venue")},
		{ID: "s4", Position: 3},
	}}
}

func TestMenuListsFirstSlideOfEachSection(t *testing.T) {
	assert.Equal(t, []MenuEntry{{Section: "Florals", Index: 0}, {Section: "Venue", Index: 2}}, Menu(testDeck()["lookbook"]))
}

func TestSessionLifecycle(t *testing.T) {
	service := NewService(testDeck())

	_, err := service.Open(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrEmptyDeck)

	session, err := service.Open(context.Background(), "lookbook")
	require.NoError(t, err)

	state, moved, err := service.Apply(session.ID, Event{Type: EventJump, Index: 2})
	require.NoError(t, err)
	assert.True(t, moved)
	assert.Equal(t, 2, state.ActiveIndex)

	_, _, err = service.Apply(session.ID, Event{Type: EventOpenFullscreen, Index: 1})
	require.NoError(t, err)
	assert.True(t, session.Scroll.Locked())

	_, _, err = service.Apply(session.ID, Event{Type: "shake"})
	assert.ErrorIs(t, err, ErrUnknownEvent)

	require.NoError(t, service.End(session.ID))
	assert.False(t, session.Scroll.Locked())
	_, err = service.Get(session.ID)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestApplyReportsMovedOnlyWhenStateChanges(t *testing.T) {
	service := NewService(testDeck())
	session, err := service.Open(context.Background(), "lookbook")
	require.NoError(t, err)

	_, moved, err := service.Apply(session.ID, Event{Type: EventPrevious})
	require.NoError(t, err)
	assert.False(t, moved, "already on the first slide")

	state, moved, err := service.Apply(session.ID, Event{Type: EventNext})
	require.NoError(t, err)
	assert.True(t, moved)
	assert.Equal(t, 1, state.ActiveIndex)

	_, _, err = service.Apply(session.ID, Event{Type: EventJump, Index: 3})
	require.NoError(t, err)
	_, moved, err = service.Apply(session.ID, Event{Type: EventNext})
	require.NoError(t, err)
	assert.False(t, moved, "already on the last slide")

	_, moved, err = service.Apply(session.ID, Event{Type: EventOpenFullscreen, Index: 3})
	require.NoError(t, err)
	assert.True(t, moved)
	_, moved, err = service.Apply(session.ID, Event{Type: EventFullscreenNext})
	require.NoError(t, err)
	assert.False(t, moved)
	state, moved, err = service.Apply(session.ID, Event{Type: EventFullscreenPrevious})
	require.NoError(t, err)
	assert.True(t, moved)
	assert.Equal(t, 2, state.FullscreenIndex)

	_, moved, err = service.Apply(session.ID, Event{Type: EventSwipe, DX: 80})
	require.NoError(t, err)
	assert.False(t, moved, "horizontal swipes are ignored in fullscreen")
}

func TestPurgeIdleEndsStaleSessions(t *testing.T) {
	service := NewService(testDeck())
	session, err := service.Open(context.Background(), "lookbook")
	require.NoError(t, err)
	_, _, _ = service.Apply(session.ID, Event{Type: EventOpenFullscreen, Index: 0})

	assert.Zero(t, service.PurgeIdle(time.Hour))
	session.UpdatedAt = time.Now().Add(-2 * time.Hour)
	assert.Equal(t, 1, service.PurgeIdle(time.Hour))
	assert.False(t, session.Scroll.Locked())
}
