package memory

import (
	"context"
	"testing"
	"time"

	"github.com/VitaminP8/bloggery/internal/auth"
	"github.com/VitaminP8/bloggery/internal/post"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createUserContext(userID uint) context.Context {
	return auth.WithUserID(context.Background(), userID)
}

func TestPostMemoryStorage_CreatePost(t *testing.T) {
	storage := NewPostMemoryStorage()

	t.Run("Success post creation", func(t *testing.T) {
		ctx := createUserContext(1)

		p, err := storage.CreatePost(ctx, "Title", "Text")
		require.NoError(t, err)
		assert.Equal(t, "Title", p.Title)
		assert.Equal(t, uint(1), p.AuthorID)
		assert.Nil(t, p.PublishedAt)

		saved, err := storage.GetPostByID(p.ID)
		require.NoError(t, err)
		assert.Equal(t, p, saved)
	})

	t.Run("Error: no authorization", func(t *testing.T) {
		_, err := storage.CreatePost(context.Background(), "Title", "Text")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "unauthorized")
	})
}

func TestPostMemoryStorage_GetPublishedPosts(t *testing.T) {
	storage := NewPostMemoryStorage()
	ctx := createUserContext(1)

	older, err := storage.CreatePost(ctx, "Older", "text")
	require.NoError(t, err)
	newer, err := storage.CreatePost(ctx, "Newer", "text")
	require.NoError(t, err)
	draft, err := storage.CreatePost(ctx, "Draft", "text")
	require.NoError(t, err)
	scheduled, err := storage.CreatePost(ctx, "Scheduled", "text")
	require.NoError(t, err)

	now := time.Now()
	olderAt := now.Add(-2 * time.Hour)
	newerAt := now.Add(-1 * time.Minute)
	futureAt := now.Add(1 * time.Hour)
	older.PublishedAt = &olderAt
	newer.PublishedAt = &newerAt
	scheduled.PublishedAt = &futureAt

	posts, err := storage.GetPublishedPosts()
	require.NoError(t, err)
	require.Len(t, posts, 2)
	// свежие публикации первыми, черновики и отложенные не попадают
	assert.Equal(t, newer.ID, posts[0].ID)
	assert.Equal(t, older.ID, posts[1].ID)
	for _, p := range posts {
		assert.NotEqual(t, draft.ID, p.ID)
		assert.NotEqual(t, scheduled.ID, p.ID)
	}
}

func TestPostMemoryStorage_GetDraftPosts(t *testing.T) {
	storage := NewPostMemoryStorage()
	ctx := createUserContext(1)

	first, err := storage.CreatePost(ctx, "First", "text")
	require.NoError(t, err)
	second, err := storage.CreatePost(ctx, "Second", "text")
	require.NoError(t, err)
	published, err := storage.CreatePost(ctx, "Published", "text")
	require.NoError(t, err)
	require.NoError(t, storage.PublishPost(published.ID))

	posts, err := storage.GetDraftPosts()
	require.NoError(t, err)
	require.Len(t, posts, 2)
	assert.Equal(t, first.ID, posts[0].ID)
	assert.Equal(t, second.ID, posts[1].ID)
}

func TestPostMemoryStorage_PublishPost(t *testing.T) {
	storage := NewPostMemoryStorage()
	ctx := createUserContext(1)

	t.Run("Sets published timestamp", func(t *testing.T) {
		p, err := storage.CreatePost(ctx, "Draft", "text")
		require.NoError(t, err)

		require.NoError(t, storage.PublishPost(p.ID))
		require.NotNil(t, p.PublishedAt)
		assert.WithinDuration(t, time.Now(), *p.PublishedAt, 5*time.Second)
	})

	t.Run("Re-publish overwrites timestamp", func(t *testing.T) {
		p, err := storage.CreatePost(ctx, "Post", "text")
		require.NoError(t, err)

		old := time.Now().Add(-24 * time.Hour)
		p.PublishedAt = &old

		require.NoError(t, storage.PublishPost(p.ID))
		require.NotNil(t, p.PublishedAt)
		assert.WithinDuration(t, time.Now(), *p.PublishedAt, 5*time.Second)
	})

	t.Run("Error: post not found", func(t *testing.T) {
		err := storage.PublishPost(9999)
		assert.ErrorIs(t, err, post.ErrNotFound)
	})
}

func TestPostMemoryStorage_UpdatePost(t *testing.T) {
	storage := NewPostMemoryStorage()

	p, err := storage.CreatePost(createUserContext(1), "Old", "text")
	require.NoError(t, err)

	t.Run("Success update resets author", func(t *testing.T) {
		updated, err := storage.UpdatePost(createUserContext(2), p.ID, "New", "new text")
		require.NoError(t, err)
		assert.Equal(t, "New", updated.Title)
		assert.Equal(t, uint(2), updated.AuthorID)
	})

	t.Run("Error: post not found", func(t *testing.T) {
		_, err := storage.UpdatePost(createUserContext(1), 9999, "Title", "Text")
		assert.ErrorIs(t, err, post.ErrNotFound)
	})
}

func TestPostMemoryStorage_DeletePostByID(t *testing.T) {
	storage := NewPostMemoryStorage()
	ctx := createUserContext(1)

	t.Run("Deletes post and fires cascade hook", func(t *testing.T) {
		p, err := storage.CreatePost(ctx, "Post", "text")
		require.NoError(t, err)

		var cascaded []uint
		storage.OnDelete(func(postID uint) {
			cascaded = append(cascaded, postID)
		})

		require.NoError(t, storage.DeletePostByID(p.ID))

		_, err = storage.GetPostByID(p.ID)
		assert.ErrorIs(t, err, post.ErrNotFound)
		assert.Equal(t, []uint{p.ID}, cascaded)
	})

	t.Run("Error: post not found", func(t *testing.T) {
		err := storage.DeletePostByID(9999)
		assert.ErrorIs(t, err, post.ErrNotFound)
	})
}
