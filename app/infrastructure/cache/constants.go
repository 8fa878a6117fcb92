package cache

import "fmt"

const (
	CacheVersion = "v1"
	KeyPrefix    = "vowboard:" + CacheVersion + ":"

	WeddingsByClientKeyPattern = "wedding_%s"
	WeddingByIDKeyPattern      = "wedding_id_%s"
	TasksKeyPattern            = "tasks_%s"
	TaskGroupsKeyPattern       = "task_groups_%s"
	DocumentsKeyPattern        = "documents_%s"
	ClientsKey                 = "clients_all"
	ClientKeyPattern           = "client_%s"
	ProfileKeyPattern          = "profile_%s"
	SlidesKeyPattern           = "slides_%s"
	ScrollPositionKeyPattern   = "dashboard_scroll_position_%s"
	ScrollRestoredKeyPattern   = "dashboard_scroll_restored_%s_%s"

	CapabilityLockKey = "schema:capability:lock"
)

func WeddingsByClientKey(clientID string) string {
	return fmt.Sprintf(WeddingsByClientKeyPattern, clientID)
}

func WeddingByIDKey(weddingID string) string {
	return fmt.Sprintf(WeddingByIDKeyPattern, weddingID)
}

func TasksKey(weddingID string) string {
	return fmt.Sprintf(TasksKeyPattern, weddingID)
}

func TaskGroupsKey(weddingID string) string {
	return fmt.Sprintf(TaskGroupsKeyPattern, weddingID)
}

func DocumentsKey(weddingID string) string {
	return fmt.Sprintf(DocumentsKeyPattern, weddingID)
}

func ClientKey(clientID string) string {
	return fmt.Sprintf(ClientKeyPattern, clientID)
}

func ProfileKey(userID string) string {
	return fmt.Sprintf(ProfileKeyPattern, userID)
}

func SlidesKey(deckKey string) string {
	return fmt.Sprintf(SlidesKeyPattern, deckKey)
}

func ScrollPositionKey(sessionID string) string {
	return fmt.Sprintf(ScrollPositionKeyPattern, sessionID)
}

func ScrollRestoredKey(sessionID string, pageLoadID string) string {
	return fmt.Sprintf(ScrollRestoredKeyPattern, sessionID, pageLoadID)
}
