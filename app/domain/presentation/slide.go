package presentation

import "context"

type Slide struct {
	ID       string
	DeckKey  string
	Position int
	Title    *string
	Section  *string
	ImageURL string
}

// MenuEntry jumps to the first slide of a section.
type MenuEntry struct {
	Section string
	Index   int
}

type SlideRepository interface {
	FindByDeck(ctx context.Context, deckKey string) ([]*Slide, error)
}

// Menu lists each section once, at the index of its first slide.
func Menu(slides []*Slide) []MenuEntry {
	var entries []MenuEntry
	seen := make(map[string]bool)
	for i, s := range slides {
		if s.Section == nil || *s.Section == "" || seen[*s.Section] {
			continue
		}
		seen[*s.Section] = true
		entries = append(entries, MenuEntry{Section: *s.Section, Index: i})
	}
	return entries
}
