package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TooEZtz/Instagram/internal/domain"
)

func TestEngagementRepository_LikeUniqueness(t *testing.T) {
	db := testDB(t)
	repo := NewGormEngagementRepository(db)
	alice := createUser(t, db, "alice")
	post := createPost(t, db, alice.ID, "hello")

	require.NoError(t, repo.InsertLike(ctx(), alice.ID, post.ID))
	assert.ErrorIs(t, repo.InsertLike(ctx(), alice.ID, post.ID), ErrAlreadyLiked)

	count, err := repo.LikesCount(ctx(), post.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	require.NoError(t, repo.DeleteLike(ctx(), alice.ID, post.ID))
	assert.ErrorIs(t, repo.DeleteLike(ctx(), alice.ID, post.ID), ErrLikeNotFound)
}

func TestEngagementRepository_LikedPostIDs(t *testing.T) {
	db := testDB(t)
	repo := NewGormEngagementRepository(db)
	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")
	p1 := createPost(t, db, alice.ID, "one")
	p2 := createPost(t, db, alice.ID, "two")
	p3 := createPost(t, db, alice.ID, "three")

	require.NoError(t, repo.InsertLike(ctx(), bob.ID, p1.ID))
	require.NoError(t, repo.InsertLike(ctx(), bob.ID, p3.ID))

	liked, err := repo.LikedPostIDs(ctx(), bob.ID, []uint{p1.ID, p2.ID, p3.ID})
	require.NoError(t, err)
	assert.True(t, liked[p1.ID])
	assert.False(t, liked[p2.ID])
	assert.True(t, liked[p3.ID])
}

func TestEngagementRepository_BatchCounts(t *testing.T) {
	db := testDB(t)
	repo := NewGormEngagementRepository(db)
	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")
	p1 := createPost(t, db, alice.ID, "one")
	p2 := createPost(t, db, alice.ID, "two")

	require.NoError(t, repo.InsertLike(ctx(), alice.ID, p1.ID))
	require.NoError(t, repo.InsertLike(ctx(), bob.ID, p1.ID))
	require.NoError(t, repo.InsertComment(ctx(), &domain.CommentModel{PostID: p2.ID, UserID: bob.ID, CommentText: "nice"}))

	likes, err := repo.LikeCounts(ctx(), []uint{p1.ID, p2.ID})
	require.NoError(t, err)
	assert.Equal(t, int64(2), likes[p1.ID])
	assert.Zero(t, likes[p2.ID])

	comments, err := repo.CommentCounts(ctx(), []uint{p1.ID, p2.ID})
	require.NoError(t, err)
	assert.Zero(t, comments[p1.ID])
	assert.Equal(t, int64(1), comments[p2.ID])
}

func TestEngagementRepository_RecentCommentsTruncation(t *testing.T) {
	db := testDB(t)
	repo := NewGormEngagementRepository(db)
	alice := createUser(t, db, "alice")
	post := createPost(t, db, alice.ID, "busy")
	other := createPost(t, db, alice.ID, "quiet")

	base := time.Now().Add(-time.Hour)
	for i := 0; i < 5; i++ {
		comment := &domain.CommentModel{
			PostID:      post.ID,
			UserID:      alice.ID,
			CommentText: string(rune('a' + i)),
		}
		require.NoError(t, repo.InsertComment(ctx(), comment))
		// Spread creation times so ordering is deterministic.
		require.NoError(t, db.Model(comment).Update("created_at", base.Add(time.Duration(i)*time.Minute)).Error)
	}
	require.NoError(t, repo.InsertComment(ctx(), &domain.CommentModel{PostID: other.ID, UserID: alice.ID, CommentText: "solo"}))

	recent, err := repo.RecentComments(ctx(), []uint{post.ID, other.ID}, 3)
	require.NoError(t, err)

	require.Len(t, recent[post.ID], 3)
	// Newest three, newest first.
	assert.Equal(t, "e", recent[post.ID][0].CommentText)
	assert.Equal(t, "d", recent[post.ID][1].CommentText)
	assert.Equal(t, "c", recent[post.ID][2].CommentText)

	// Truncation is per post; the quiet post keeps its single comment.
	require.Len(t, recent[other.ID], 1)
	assert.Equal(t, "solo", recent[other.ID][0].CommentText)
}

func TestEngagementRepository_GetComment(t *testing.T) {
	db := testDB(t)
	repo := NewGormEngagementRepository(db)
	alice := createUser(t, db, "alice")
	post := createPost(t, db, alice.ID, "hello")

	comment := &domain.CommentModel{PostID: post.ID, UserID: alice.ID, CommentText: "first"}
	require.NoError(t, repo.InsertComment(ctx(), comment))

	row, err := repo.GetComment(ctx(), comment.ID)
	require.NoError(t, err)
	assert.Equal(t, "first", row.CommentText)
	assert.Equal(t, "alice", row.Username)

	_, err = repo.GetComment(ctx(), comment.ID+100)
	assert.ErrorIs(t, err, ErrCommentNotFound)
}
