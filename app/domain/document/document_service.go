package document

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"vowboard.io/planner-gateway/app/domain/activitylog"
	"vowboard.io/planner-gateway/app/domain/board"
	"vowboard.io/planner-gateway/app/domain/ordering"
	"vowboard.io/planner-gateway/app/domain/schema"
)

var (
	ErrDocumentNotFound = errors.New("document not found")
	ErrNameEmpty        = errors.New("name is required")
	ErrInvalidURL       = errors.New("url must be an absolute http(s) link")
)

type DocumentService struct {
	repo     DocumentRepository
	activity *activitylog.ActivityLogService
	registry *board.Registry[*Document]
}

// Board is the pinned and unpinned partitions of a wedding's documents,
// each in display order.
type Board struct {
	Pinned   []*Document
	Unpinned []*Document
}

func NewService(repo DocumentRepository, capabilities *schema.CapabilityService, activity *activitylog.ActivityLogService) *DocumentService {
	return newService(repo, capabilities, activity)
}

func newService(repo DocumentRepository, capabilities board.Capabilities, activity *activitylog.ActivityLogService) *DocumentService {
	return &DocumentService{
		repo:     repo,
		activity: activity,
		registry: board.NewRegistry(board.Config[*Document]{
			Collection:   schema.DocumentsCollection,
			Accessor:     Accessor,
			Clone:        (*Document).Clone,
			Empty:        func(d *Document) bool { return d == nil },
			Source:       boardSource{repo: repo},
			Capabilities: capabilities,
		}),
	}
}

func (s *DocumentService) Documents(ctx context.Context, weddingID string) (*Board, error) {
	docs, err := s.registry.Board(weddingID).Items(ctx)
	if err != nil {
		return nil, err
	}
	out := &Board{Pinned: []*Document{}, Unpinned: []*Document{}}
	for _, d := range docs {
		if d.Pinned {
			out.Pinned = append(out.Pinned, d)
		} else {
			out.Unpinned = append(out.Unpinned, d)
		}
	}
	return out, nil
}

func (s *DocumentService) FindByID(ctx context.Context, weddingID string, id string) (*Document, error) {
	d, err := s.repo.FindByID(ctx, weddingID, id)
	if err != nil {
		return nil, err
	}
	if d == nil {
		return nil, ErrDocumentNotFound
	}
	return d, nil
}

func validateLink(link string) error {
	u, err := url.Parse(link)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return ErrInvalidURL
	}
	return nil
}

func (s *DocumentService) Create(ctx context.Context, d *Document) (*Document, error) {
	if d.Name == "" {
		return nil, ErrNameEmpty
	}
	if err := validateLink(d.URL); err != nil {
		return nil, err
	}
	created, err := s.repo.Create(ctx, d)
	if err != nil {
		return nil, fmt.Errorf("failed to create document: %w", err)
	}
	s.registry.Invalidate(d.WeddingID)
	s.activity.Record(ctx, d.WeddingID, activitylog.ActionCreated, activitylog.EntityDocument, created.ID, map[string]any{"name": created.Name})
	return created, nil
}

func (s *DocumentService) Update(ctx context.Context, weddingID string, id string, patch DocumentPatch) (*Document, error) {
	if patch.Name != nil && *patch.Name == "" {
		return nil, ErrNameEmpty
	}
	if patch.URL != nil {
		if err := validateLink(*patch.URL); err != nil {
			return nil, err
		}
	}
	updated, err := s.repo.Update(ctx, weddingID, id, patch)
	if err != nil {
		return nil, fmt.Errorf("failed to update document: %w", err)
	}
	if updated == nil {
		return nil, ErrDocumentNotFound
	}
	s.registry.Invalidate(weddingID)
	s.activity.Record(ctx, weddingID, activitylog.ActionUpdated, activitylog.EntityDocument, id, nil)
	return updated, nil
}

func (s *DocumentService) Delete(ctx context.Context, weddingID string, id string) error {
	if err := s.repo.Delete(ctx, weddingID, id); err != nil {
		return fmt.Errorf("failed to delete document: %w", err)
	}
	s.registry.Invalidate(weddingID)
	s.activity.Record(ctx, weddingID, activitylog.ActionDeleted, activitylog.EntityDocument, id, nil)
	return nil
}

// Reorder drops draggedID onto targetID. pinned selects the destination
// partition; moving across partitions pins or unpins the document.
func (s *DocumentService) Reorder(ctx context.Context, weddingID string, viewer string, draggedID string, targetID string, pinned bool) (board.Result, error) {
	return s.registry.Board(weddingID).Reorder(ctx, viewer, draggedID, targetID, PartitionOf(pinned))
}

// TogglePin moves the document to the end of the other partition.
func (s *DocumentService) TogglePin(ctx context.Context, weddingID string, id string) (*Document, error) {
	b := s.registry.Board(weddingID)
	docs, err := b.Items(ctx)
	if err != nil {
		return nil, err
	}
	var current *Document
	for _, d := range docs {
		if d.ID == id {
			current = d
			break
		}
	}
	if current == nil {
		return nil, ErrDocumentNotFound
	}
	if _, err := b.MoveTo(ctx, id, PartitionOf(!current.Pinned)); err != nil {
		return nil, err
	}
	action := activitylog.ActionPinned
	if current.Pinned {
		action = activitylog.ActionUnpinned
	}
	s.activity.Record(ctx, weddingID, action, activitylog.EntityDocument, id, nil)

	docs, err = b.Items(ctx)
	if err != nil {
		return nil, err
	}
	for _, d := range docs {
		if d.ID == id {
			return d, nil
		}
	}
	return nil, ErrDocumentNotFound
}

type boardSource struct {
	repo DocumentRepository
}

func (b boardSource) Load(ctx context.Context, weddingID string) ([]*Document, error) {
	return b.repo.FindByWedding(ctx, weddingID)
}

func (b boardSource) UpdateOrder(ctx context.Context, weddingID string, change ordering.Change) error {
	return b.repo.UpdateOrder(ctx, weddingID, change.ID, change.Order)
}

func (b boardSource) UpdatePartition(ctx context.Context, weddingID string, id string, partition string) (*Document, error) {
	return b.repo.UpdatePinned(ctx, weddingID, id, partition == PartitionPinned)
}
