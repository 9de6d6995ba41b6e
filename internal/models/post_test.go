package models

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPost_ApplyStatus(t *testing.T) {
	t.Parallel()

	published := &PostStatus{ID: 1, Slug: StatusSlugPublished, IsPublished: true}
	draft := &PostStatus{ID: 2, Slug: StatusSlugDraft, IsPublished: false}
	archived := &PostStatus{ID: 3, Slug: "archived", IsPublished: false}

	t.Run("first publish stamps published_at", func(t *testing.T) {
		t.Parallel()
		now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
		post := &Post{}

		post.ApplyStatus(published, now)

		require.NotNil(t, post.PublishedAt)
		assert.Equal(t, now, *post.PublishedAt)
		assert.Equal(t, published.ID, *post.StatusID)
	})

	t.Run("publish does not overwrite an existing timestamp", func(t *testing.T) {
		t.Parallel()
		first := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
		post := &Post{}
		post.ApplyStatus(published, first)

		post.ApplyStatus(published, first.Add(48*time.Hour))

		assert.Equal(t, first, *post.PublishedAt)
	})

	t.Run("non-published status clears published_at", func(t *testing.T) {
		t.Parallel()
		now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
		post := &Post{}
		post.ApplyStatus(published, now)

		post.ApplyStatus(draft, now.Add(time.Hour))

		assert.Nil(t, post.PublishedAt)
		assert.Equal(t, draft.ID, *post.StatusID)
	})

	t.Run("archived also clears published_at", func(t *testing.T) {
		t.Parallel()
		now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
		post := &Post{}
		post.ApplyStatus(published, now)

		post.ApplyStatus(archived, now.Add(time.Hour))

		assert.Nil(t, post.PublishedAt)
	})

	t.Run("republish stamps a fresh time", func(t *testing.T) {
		t.Parallel()
		first := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
		second := first.Add(72 * time.Hour)
		post := &Post{}
		post.ApplyStatus(published, first)
		post.ApplyStatus(draft, first.Add(time.Hour))

		post.ApplyStatus(published, second)

		require.NotNil(t, post.PublishedAt)
		assert.Equal(t, second, *post.PublishedAt)
	})

	t.Run("nil status clears the reference and published_at", func(t *testing.T) {
		t.Parallel()
		now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
		post := &Post{}
		post.ApplyStatus(published, now)

		post.ApplyStatus(nil, now.Add(48*time.Hour))

		assert.Nil(t, post.StatusID)
		assert.Nil(t, post.Status)
		assert.Nil(t, post.PublishedAt)
	})

	t.Run("republish after losing the status stamps a fresh time", func(t *testing.T) {
		t.Parallel()
		first := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
		second := first.Add(48 * time.Hour)
		post := &Post{}
		post.ApplyStatus(published, first)
		post.ApplyStatus(nil, first.Add(time.Hour))

		post.ApplyStatus(published, second)

		require.NotNil(t, post.PublishedAt)
		assert.Equal(t, second, *post.PublishedAt)
	})
}

func TestPost_IsPublishedAt(t *testing.T) {
	t.Parallel()

	published := &PostStatus{ID: 1, IsPublished: true}
	draft := &PostStatus{ID: 2, IsPublished: false}
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)

	tests := []struct {
		name string
		post Post
		want bool
	}{
		{"no status", Post{PublishedAt: &past}, false},
		{"draft status", Post{Status: draft, StatusID: &draft.ID, PublishedAt: &past}, false},
		{"published with past timestamp", Post{Status: published, StatusID: &published.ID, PublishedAt: &past}, true},
		{"published exactly now", Post{Status: published, StatusID: &published.ID, PublishedAt: &now}, true},
		{"scheduled in the future", Post{Status: published, StatusID: &published.ID, PublishedAt: &future}, false},
		{"published status but no timestamp", Post{Status: published, StatusID: &published.ID}, false},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, tt.post.IsPublishedAt(now))
		})
	}
}

func TestPost_ReadingTime(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		want    int
	}{
		{"empty content", "", 1},
		{"a few words", "just a few words here", 1},
		{"199 words rounds up to one minute", strings.Repeat("word ", 199), 1},
		{"400 words is two minutes", strings.Repeat("word ", 400), 2},
		{"500 words truncates to two minutes", strings.Repeat("word ", 500), 2},
		{"whitespace only", "   \n\t  ", 1},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			post := &Post{Content: tt.content}
			assert.Equal(t, tt.want, post.ReadingTime())
		})
	}
}

func TestReportStatus_Terminal(t *testing.T) {
	t.Parallel()

	assert.False(t, ReportStatusPending.Terminal())
	assert.False(t, ReportStatusUnderReview.Terminal())
	assert.True(t, ReportStatusResolved.Terminal())
	assert.True(t, ReportStatusDismissed.Terminal())
}

func TestReportReason_Valid(t *testing.T) {
	t.Parallel()

	assert.True(t, ReportReasonSpam.Valid())
	assert.True(t, ReportReasonOther.Valid())
	assert.False(t, ReportReason("banana").Valid())
	assert.False(t, ReportReason("").Valid())
}

func TestEngagementType_Valid(t *testing.T) {
	t.Parallel()

	assert.True(t, EngagementLike.Valid())
	assert.True(t, EngagementBookmark.Valid())
	assert.False(t, EngagementType("poke").Valid())
}
