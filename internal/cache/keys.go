package cache

import (
	"context"
	"fmt"
	"time"
)

const (
	UserKeyPrefix     = "user:%d"
	PostKeyPrefix     = "post:%d"
	PostSlugKeyPrefix = "post:slug:%s"
	StatusListKey     = "statuses:active"
	CategoryListKey   = "categories:active"
	TagListKey        = "tags:active"
)

const (
	UserTTL       = 5 * time.Minute
	PostTTL       = 10 * time.Minute
	LookupListTTL = 30 * time.Minute
)

func UserKey(userID uint) string {
	return fmt.Sprintf(UserKeyPrefix, userID)
}

func PostKey(postID uint) string {
	return fmt.Sprintf(PostKeyPrefix, postID)
}

func PostSlugKey(slug string) string {
	return fmt.Sprintf(PostSlugKeyPrefix, slug)
}

func Invalidate(ctx context.Context, key string) {
	if client != nil {
		client.Del(ctx, key)
	}
}

func InvalidateUser(ctx context.Context, userID uint) {
	Invalidate(ctx, UserKey(userID))
}

func InvalidatePost(ctx context.Context, postID uint, slug string) {
	Invalidate(ctx, PostKey(postID))
	if slug != "" {
		Invalidate(ctx, PostSlugKey(slug))
	}
}

func InvalidateStatusList(ctx context.Context) {
	Invalidate(ctx, StatusListKey)
}
