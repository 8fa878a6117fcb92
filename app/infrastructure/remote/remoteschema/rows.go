// Package remoteschema mirrors the remote collections' JSON rows and maps
// them to domain entities.
package remoteschema

import (
	"time"

	"vowboard.io/planner-gateway/app/domain/activitylog"
	"vowboard.io/planner-gateway/app/domain/client"
	"vowboard.io/planner-gateway/app/domain/document"
	"vowboard.io/planner-gateway/app/domain/presentation"
	"vowboard.io/planner-gateway/app/domain/profile"
	"vowboard.io/planner-gateway/app/domain/task"
	"vowboard.io/planner-gateway/app/domain/taskgroup"
	"vowboard.io/planner-gateway/app/domain/wedding"
)

const (
	TableWeddings   = "weddings"
	TableTasks      = "tasks"
	TableTaskGroups = "task_groups"
	TableDocuments  = "documents"
	TableProfiles   = "profiles"
	TableLogs       = "activity_logs"
	TableSlides     = "slides"
)

type Task struct {
	ID          string    `json:"id"`
	WeddingID   string    `json:"wedding_id"`
	TaskGroupID *string   `json:"task_group_id"`
	Title       string    `json:"title"`
	Description *string   `json:"description"`
	Status      string    `json:"status"`
	Priority    string    `json:"priority"`
	DueDate     *string   `json:"due_date"`
	Order       *int      `json:"order,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func NewTaskInsert(t *task.Task) map[string]any {
	body := map[string]any{
		"wedding_id":    t.WeddingID,
		"task_group_id": t.TaskGroupID,
		"title":         t.Title,
		"description":   t.Description,
		"status":        string(t.Status),
		"priority":      string(t.Priority),
		"due_date":      t.DueDate,
	}
	if t.Order != nil {
		body["order"] = *t.Order
	}
	return body
}

func NewTaskPatch(p task.TaskPatch) map[string]any {
	body := map[string]any{}
	if p.Title != nil {
		body["title"] = *p.Title
	}
	if p.Description != nil {
		body["description"] = *p.Description
	}
	if p.Priority != nil {
		body["priority"] = string(*p.Priority)
	}
	if p.DueDate != nil {
		body["due_date"] = *p.DueDate
	}
	if p.Status != nil {
		body["status"] = string(*p.Status)
	}
	return body
}

func (t *Task) EtoD() *task.Task {
	return &task.Task{
		ID:          t.ID,
		WeddingID:   t.WeddingID,
		TaskGroupID: t.TaskGroupID,
		Title:       t.Title,
		Description: t.Description,
		Status:      task.TaskStatus(t.Status),
		Priority:    task.TaskPriority(t.Priority),
		DueDate:     t.DueDate,
		Order:       t.Order,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

type TaskGroup struct {
	ID        string    `json:"id"`
	WeddingID string    `json:"wedding_id"`
	Name      string    `json:"name"`
	Color     *string   `json:"color"`
	Order     *int      `json:"order,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func NewTaskGroupInsert(g *taskgroup.TaskGroup) map[string]any {
	body := map[string]any{
		"wedding_id": g.WeddingID,
		"name":       g.Name,
		"color":      g.Color,
	}
	if g.Order != nil {
		body["order"] = *g.Order
	}
	return body
}

func (g *TaskGroup) EtoD() *taskgroup.TaskGroup {
	return &taskgroup.TaskGroup{
		ID:        g.ID,
		WeddingID: g.WeddingID,
		Name:      g.Name,
		Color:     g.Color,
		Order:     g.Order,
		CreatedAt: g.CreatedAt,
	}
}

type Document struct {
	ID        string    `json:"id"`
	WeddingID string    `json:"wedding_id"`
	Name      string    `json:"name"`
	URL       string    `json:"url"`
	Category  *string   `json:"category"`
	Pinned    *bool     `json:"pinned"`
	Order     *int      `json:"order,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func NewDocumentInsert(d *document.Document) map[string]any {
	body := map[string]any{
		"wedding_id": d.WeddingID,
		"name":       d.Name,
		"url":        d.URL,
		"category":   d.Category,
		"pinned":     d.Pinned,
	}
	if d.Order != nil {
		body["order"] = *d.Order
	}
	return body
}

func NewDocumentPatch(p document.DocumentPatch) map[string]any {
	body := map[string]any{}
	if p.Name != nil {
		body["name"] = *p.Name
	}
	if p.URL != nil {
		body["url"] = *p.URL
	}
	if p.Category != nil {
		body["category"] = *p.Category
	}
	return body
}

func (d *Document) EtoD() *document.Document {
	return &document.Document{
		ID:        d.ID,
		WeddingID: d.WeddingID,
		Name:      d.Name,
		URL:       d.URL,
		Category:  d.Category,
		Pinned:    d.Pinned != nil && *d.Pinned,
		Order:     d.Order,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

type Wedding struct {
	ID          string    `json:"id"`
	ClientID    string    `json:"client_id"`
	Title       string    `json:"title"`
	WeddingDate *string   `json:"wedding_date"`
	Venue       *string   `json:"venue"`
	GuestCount  *int      `json:"guest_count"`
	Budget      *float64  `json:"budget"`
	Status      string    `json:"status"`
	Notes       *string   `json:"notes"`
	DeckKey     *string   `json:"deck_key"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func NewWeddingInsert(w *wedding.Wedding) map[string]any {
	return map[string]any{
		"client_id":    w.ClientID,
		"title":        w.Title,
		"wedding_date": w.WeddingDate,
		"venue":        w.Venue,
		"guest_count":  w.GuestCount,
		"budget":       w.Budget,
		"status":       string(w.Status),
		"notes":        w.Notes,
		"deck_key":     w.DeckKey,
	}
}

func NewWeddingPatch(p wedding.WeddingPatch) map[string]any {
	body := map[string]any{}
	if p.Title != nil {
		body["title"] = *p.Title
	}
	if p.WeddingDate != nil {
		body["wedding_date"] = *p.WeddingDate
	}
	if p.Venue != nil {
		body["venue"] = *p.Venue
	}
	if p.GuestCount != nil {
		body["guest_count"] = *p.GuestCount
	}
	if p.Budget != nil {
		body["budget"] = *p.Budget
	}
	if p.Status != nil {
		body["status"] = string(*p.Status)
	}
	if p.Notes != nil {
		body["notes"] = *p.Notes
	}
	if p.DeckKey != nil {
		body["deck_key"] = *p.DeckKey
	}
	return body
}

func (w *Wedding) EtoD() *wedding.Wedding {
	return &wedding.Wedding{
		ID:          w.ID,
		ClientID:    w.ClientID,
		Title:       w.Title,
		WeddingDate: w.WeddingDate,
		Venue:       w.Venue,
		GuestCount:  w.GuestCount,
		Budget:      w.Budget,
		Status:      wedding.WeddingStatus(w.Status),
		Notes:       w.Notes,
		DeckKey:     w.DeckKey,
		CreatedAt:   w.CreatedAt,
		UpdatedAt:   w.UpdatedAt,
	}
}

type Client struct {
	ID          string    `json:"id"`
	FullName    string    `json:"full_name"`
	Email       string    `json:"email"`
	Phone       *string   `json:"phone"`
	PartnerName *string   `json:"partner_name"`
	UserID      *string   `json:"user_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (c *Client) EtoD() *client.Client {
	return &client.Client{
		ID:          c.ID,
		FullName:    c.FullName,
		Email:       c.Email,
		Phone:       c.Phone,
		PartnerName: c.PartnerName,
		UserID:      c.UserID,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

type Profile struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	FullName  *string   `json:"full_name"`
	Role      string    `json:"role"`
	ClientID  *string   `json:"client_id"`
	CreatedAt time.Time `json:"created_at"`
}

func (p *Profile) EtoD() *profile.Profile {
	return &profile.Profile{
		ID:        p.ID,
		Email:     p.Email,
		FullName:  p.FullName,
		Role:      profile.Role(p.Role),
		ClientID:  p.ClientID,
		CreatedAt: p.CreatedAt,
	}
}

type ActivityLog struct {
	ID         string         `json:"id"`
	WeddingID  string         `json:"wedding_id"`
	UserID     *string        `json:"user_id"`
	Action     string         `json:"action"`
	EntityType string         `json:"entity_type"`
	EntityID   string         `json:"entity_id"`
	Details    map[string]any `json:"details"`
	CreatedAt  time.Time      `json:"created_at"`
}

func NewActivityLogInsert(e *activitylog.Entry) map[string]any {
	body := map[string]any{
		"wedding_id":  e.WeddingID,
		"action":      e.Action,
		"entity_type": e.EntityType,
		"entity_id":   e.EntityID,
		"details":     e.Details,
	}
	if e.UserID != nil {
		body["user_id"] = *e.UserID
	}
	return body
}

func (l *ActivityLog) EtoD() *activitylog.Entry {
	return &activitylog.Entry{
		ID:         l.ID,
		WeddingID:  l.WeddingID,
		UserID:     l.UserID,
		Action:     l.Action,
		EntityType: l.EntityType,
		EntityID:   l.EntityID,
		Details:    l.Details,
		CreatedAt:  l.CreatedAt,
	}
}

type Slide struct {
	ID       string  `json:"id"`
	DeckKey  string  `json:"deck_key"`
	Position int     `json:"position"`
	Title    *string `json:"title"`
	Section  *string `json:"section"`
	ImageURL string  `json:"image_url"`
}

func (s *Slide) EtoD() *presentation.Slide {
	return &presentation.Slide{
		ID:       s.ID,
		DeckKey:  s.DeckKey,
		Position: s.Position,
		Title:    s.Title,
		Section:  s.Section,
		ImageURL: s.ImageURL,
	}
}
