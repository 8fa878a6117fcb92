package document

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"vowboard.io/planner-gateway/app/domain/activitylog"
	"vowboard.io/planner-gateway/app/domain/ordering"
)

type memoryDocumentRepo struct {
	docs     map[string]*Document
	orderErr error
}

func (r *memoryDocumentRepo) FindByWedding(_ context.Context, weddingID string) ([]*Document, error) {
	var out []*Document
	for _, d := range r.docs {
		if d.WeddingID == weddingID {
			out = append(out, d.Clone())
		}
	}
	return out, nil
}

func (r *memoryDocumentRepo) FindByID(_ context.Context, _ string, id string) (*Document, error) {
	return r.docs[id].Clone(), nil
}

func (r *memoryDocumentRepo) Create(_ context.Context, d *Document) (*Document, error) {
	d.ID = d.Name
	r.docs[d.ID] = d.Clone()
	return d.Clone(), nil
}

func (r *memoryDocumentRepo) Update(_ context.Context, _ string, id string, patch DocumentPatch) (*Document, error) {
	d, ok := r.docs[id]
	if !ok {
		return nil, nil
	}
	if patch.Name != nil {
		d.Name = *patch.Name
	}
	return d.Clone(), nil
}

func (r *memoryDocumentRepo) UpdateOrder(_ context.Context, _ string, id string, order int) error {
	if r.orderErr != nil {
		return r.orderErr
	}
	r.docs[id].Order = &order
	return nil
}

func (r *memoryDocumentRepo) UpdatePinned(_ context.Context, _ string, id string, pinned bool) (*Document, error) {
	r.docs[id].Pinned = pinned
	return r.docs[id].Clone(), nil
}

func (r *memoryDocumentRepo) Delete(_ context.Context, _ string, id string) error {
	delete(r.docs, id)
	return nil
}

type nopLogRepo struct{}

func (nopLogRepo) Create(_ context.Context, e *activitylog.Entry) (*activitylog.Entry, error) {
	return e, nil
}

func (nopLogRepo) FindByWedding(context.Context, string, int) ([]*activitylog.Entry, error) {
	return nil, nil
}

type capabilities struct{ supported bool }

func (c *capabilities) OrderingSupported(string) bool { return c.supported }
func (c *capabilities) MarkUnsupported(string)        { c.supported = false }

func threeDocuments() *memoryDocumentRepo {
	base := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	return &memoryDocumentRepo{docs: map[string]*Document{
		"contract": {ID: "contract", WeddingID: "w1", Name: "Venue contract", URL: "https://example.com/a", CreatedAt: base},
		"menu":     {ID: "menu", WeddingID: "w1", Name: "Menu", URL: "https://example.com/b", CreatedAt: base.Add(time.Hour)},
		"seating":  {ID: "seating", WeddingID: "w1", Name: "Seating", URL: "https://example.com/c", CreatedAt: base.Add(2 * time.Hour)},
	}}
}

func ids(docs []*Document) []string {
	out := make([]string, len(docs))
	for i, d := range docs {
		out[i] = d.ID
	}
	return out
}

func TestReorderWithoutOrderColumnDegradesAndKeepsMembership(t *testing.T) {
	ctx := context.Background()
	repo := threeDocuments()
	repo.orderErr = ordering.ErrOrderingUnsupported
	caps := &capabilities{supported: true}
	service := newService(repo, caps, activitylog.NewService(nopLogRepo{}))

	before, err := service.Documents(ctx, "w1")
	require.NoError(t, err)
	// unordered documents list newest first
	assert.Equal(t, []string{"seating", "menu", "contract"}, ids(before.Unpinned))

	result, err := service.Reorder(ctx, "w1", "u1", "contract", "seating", false)
	require.NoError(t, err)
	assert.Equal(t, ordering.OutcomeDegraded, result.Outcome)
	assert.False(t, caps.supported)

	after, err := service.Documents(ctx, "w1")
	require.NoError(t, err)
	assert.ElementsMatch(t, ids(before.Unpinned), ids(after.Unpinned))
	assert.Equal(t, []string{"contract", "seating", "menu"}, ids(after.Unpinned))
	assert.Empty(t, after.Pinned)
}

func TestTogglePinMovesAcrossPartitions(t *testing.T) {
	ctx := context.Background()
	repo := threeDocuments()
	service := newService(repo, &capabilities{supported: true}, activitylog.NewService(nopLogRepo{}))

	doc, err := service.TogglePin(ctx, "w1", "menu")
	require.NoError(t, err)
	assert.True(t, doc.Pinned)
	assert.True(t, repo.docs["menu"].Pinned)
	assert.Equal(t, 0, *repo.docs["menu"].Order)

	docs, err := service.Documents(ctx, "w1")
	require.NoError(t, err)
	assert.Equal(t, []string{"menu"}, ids(docs.Pinned))
	assert.Equal(t, []string{"seating", "contract"}, ids(docs.Unpinned))

	doc, err = service.TogglePin(ctx, "w1", "menu")
	require.NoError(t, err)
	assert.False(t, doc.Pinned)

	_, err = service.TogglePin(ctx, "w1", "ghost")
	assert.ErrorIs(t, err, ErrDocumentNotFound)
}

func TestReorderFailureReloads(t *testing.T) {
	ctx := context.Background()
	repo := threeDocuments()
	service := newService(repo, &capabilities{supported: true}, activitylog.NewService(nopLogRepo{}))
	_, err := service.Documents(ctx, "w1")
	require.NoError(t, err)

	repo.orderErr = errors.New("timeout")
	result, err := service.Reorder(ctx, "w1", "u1", "contract", "seating", false)
	require.Error(t, err)
	assert.Equal(t, ordering.OutcomeFailed, result.Outcome)

	docs, err := service.Documents(ctx, "w1")
	require.NoError(t, err)
	assert.Equal(t, []string{"seating", "menu", "contract"}, ids(docs.Unpinned))
}

func TestCreateValidatesInput(t *testing.T) {
	service := newService(threeDocuments(), &capabilities{supported: true}, activitylog.NewService(nopLogRepo{}))
	ctx := context.Background()

	_, err := service.Create(ctx, &Document{WeddingID: "w1", URL: "https://example.com"})
	assert.ErrorIs(t, err, ErrNameEmpty)
	_, err = service.Create(ctx, &Document{WeddingID: "w1", Name: "Vows", URL: "vows.docx"})
	assert.ErrorIs(t, err, ErrInvalidURL)

	created, err := service.Create(ctx, &Document{WeddingID: "w1", Name: "Vows", URL: "https://docs.google.com/document/d/v1/edit"})
	require.NoError(t, err)
	assert.Equal(t, "https://docs.google.com/document/d/v1/export?format=pdf", created.DownloadURL())
}
