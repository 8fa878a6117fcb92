package preference

import (
	"context"
	"sync"
	"time"

	"vowboard.io/planner-gateway/app/utils/logger"
)

// RemoteNotesWriter stores notes on a wedding record.
type RemoteNotesWriter interface {
	SaveNotes(ctx context.Context, weddingID string, notes string) error
}

type pendingNote struct {
	ctx       context.Context
	weddingID string
	text      string
	timer     *time.Timer
}

// NoteSaver debounces note edits per owner. Within the window the last edit
// wins; when it elapses the text goes to the wedding record when a wedding
// id is known, and to the local store otherwise.
type NoteSaver struct {
	remote   RemoteNotesWriter
	local    PreferenceRepository
	debounce time.Duration

	mu      sync.Mutex
	pending map[string]*pendingNote
	wg      sync.WaitGroup
}

func NewNoteSaver(remote RemoteNotesWriter, local PreferenceRepository, debounce time.Duration) *NoteSaver {
	if debounce <= 0 {
		debounce = time.Second
	}
	return &NoteSaver{
		remote:   remote,
		local:    local,
		debounce: debounce,
		pending:  make(map[string]*pendingNote),
	}
}

// Save schedules text for ownerID. The request context is detached from
// cancellation so the write outlives the request but keeps its credentials.
func (n *NoteSaver) Save(ctx context.Context, ownerID string, weddingID string, text string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if p, ok := n.pending[ownerID]; ok && p.timer.Stop() {
		n.wg.Done()
	}
	p := &pendingNote{
		ctx:       context.WithoutCancel(ctx),
		weddingID: weddingID,
		text:      text,
	}
	n.wg.Add(1)
	p.timer = time.AfterFunc(n.debounce, func() { n.fire(ownerID, p) })
	n.pending[ownerID] = p
}

// Pending returns text not yet written for ownerID.
func (n *NoteSaver) Pending(ownerID string) (string, bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	p, ok := n.pending[ownerID]
	if !ok {
		return "", false
	}
	return p.text, true
}

func (n *NoteSaver) fire(ownerID string, p *pendingNote) {
	defer n.wg.Done()
	n.mu.Lock()
	if n.pending[ownerID] != p {
		// superseded after the timer already fired
		n.mu.Unlock()
		return
	}
	delete(n.pending, ownerID)
	n.mu.Unlock()
	n.write(ownerID, p)
}

func (n *NoteSaver) write(ownerID string, p *pendingNote) {
	log := logger.GetLogger().WithField("owner_id", ownerID)
	if p.weddingID != "" {
		if err := n.remote.SaveNotes(p.ctx, p.weddingID, p.text); err != nil {
			log.WithError(err).Error("failed to save wedding notes")
		}
		return
	}
	if err := n.local.Set(p.ctx, &Preference{OwnerID: ownerID, Key: KeyNotes, Value: p.text}); err != nil {
		log.WithError(err).Error("failed to save local notes")
	}
}

// Flush writes every pending note now and waits for in-flight writes.
func (n *NoteSaver) Flush() {
	n.mu.Lock()
	due := make(map[string]*pendingNote)
	for owner, p := range n.pending {
		// a timer that already fired is left for its own callback
		if p.timer.Stop() {
			due[owner] = p
			delete(n.pending, owner)
		}
	}
	n.mu.Unlock()

	for owner, p := range due {
		n.write(owner, p)
		n.wg.Done()
	}
	n.wg.Wait()
}
