package cache

import (
	"context"
	"fmt"
	"time"
)

const (
	UserKeyPrefix    = "user:%d"
	ListKeyPrefix    = "list:%d"
	ExploreKeyPrefix = "explore:%s"
)

const (
	UserTTL    = 5 * time.Minute
	ListTTL    = 10 * time.Minute
	ExploreTTL = 1 * time.Minute
)

func UserKey(userID uint) string {
	return fmt.Sprintf(UserKeyPrefix, userID)
}

func ListKey(listID uint) string {
	return fmt.Sprintf(ListKeyPrefix, listID)
}

// ExploreKey caches the first unfiltered page of the public explore feed.
// Filtered or paginated requests go straight to the database.
func ExploreKey(segment string) string {
	return fmt.Sprintf(ExploreKeyPrefix, segment)
}

func Invalidate(ctx context.Context, key string) {
	if client != nil {
		client.Del(ctx, key)
	}
}

func InvalidateUser(ctx context.Context, userID uint) {
	Invalidate(ctx, UserKey(userID))
}

func InvalidateList(ctx context.Context, listID uint) {
	Invalidate(ctx, ListKey(listID))
}

func InvalidateExplore(ctx context.Context) {
	Invalidate(ctx, ExploreKey("front"))
}
