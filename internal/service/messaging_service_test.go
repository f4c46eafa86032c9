package service

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMessagingService_StartConversationIdempotent(t *testing.T) {
	env := newTestEnv(t)
	alice := env.user(t, "alice")
	bob := env.user(t, "bob")

	first, err := env.messaging.StartConversation(ctx(), alice.ID, bob.ID)
	require.NoError(t, err)
	assert.Equal(t, bob.ID, first.OtherUser.ID)

	// Starting again, from either side, lands on the same conversation.
	again, err := env.messaging.StartConversation(ctx(), alice.ID, bob.ID)
	require.NoError(t, err)
	assert.Equal(t, first.ID, again.ID)

	reverse, err := env.messaging.StartConversation(ctx(), bob.ID, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, first.ID, reverse.ID)
	assert.Equal(t, alice.ID, reverse.OtherUser.ID)
}

func TestMessagingService_StartConversationErrors(t *testing.T) {
	env := newTestEnv(t)
	alice := env.user(t, "alice")

	_, err := env.messaging.StartConversation(ctx(), alice.ID, alice.ID)
	assert.ErrorIs(t, err, ErrSelfConversation)

	_, err = env.messaging.StartConversation(ctx(), alice.ID, alice.ID+100)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestMessagingService_SendAndGetMessages(t *testing.T) {
	env := newTestEnv(t)
	alice := env.user(t, "alice")
	bob := env.user(t, "bob")

	conv, err := env.messaging.StartConversation(ctx(), alice.ID, bob.ID)
	require.NoError(t, err)

	_, err = env.messaging.SendMessage(ctx(), conv.ID, alice.ID, "hi bob")
	require.NoError(t, err)
	_, err = env.messaging.SendMessage(ctx(), conv.ID, bob.ID, "hi alice")
	require.NoError(t, err)

	msgs, view, err := env.messaging.GetMessages(ctx(), conv.ID, alice.ID, 0)
	require.NoError(t, err)
	require.Len(t, msgs, 2)

	// Chronological order: oldest first.
	assert.Equal(t, "hi bob", msgs[0].MessageText)
	assert.Equal(t, "hi alice", msgs[1].MessageText)
	assert.Equal(t, "alice", msgs[0].SenderUsername)
	assert.Equal(t, "bob", msgs[1].SenderUsername)

	require.NotNil(t, view)
	require.NotNil(t, view.LastMessage)
	assert.Equal(t, "hi alice", view.LastMessage.MessageText)
}

func TestMessagingService_MessageWindow(t *testing.T) {
	env := newTestEnv(t)
	alice := env.user(t, "alice")
	bob := env.user(t, "bob")

	conv, err := env.messaging.StartConversation(ctx(), alice.ID, bob.ID)
	require.NoError(t, err)

	for i := 0; i < 7; i++ {
		_, err := env.messaging.SendMessage(ctx(), conv.ID, alice.ID, fmt.Sprintf("m%d", i))
		require.NoError(t, err)
	}

	msgs, _, err := env.messaging.GetMessages(ctx(), conv.ID, bob.ID, 5)
	require.NoError(t, err)
	require.Len(t, msgs, 5)

	// The window keeps the newest messages and presents them oldest
	// first.
	assert.Equal(t, "m2", msgs[0].MessageText)
	assert.Equal(t, "m6", msgs[4].MessageText)
}

func TestMessagingService_NonMemberIsNotFound(t *testing.T) {
	env := newTestEnv(t)
	alice := env.user(t, "alice")
	bob := env.user(t, "bob")
	eve := env.user(t, "eve")

	conv, err := env.messaging.StartConversation(ctx(), alice.ID, bob.ID)
	require.NoError(t, err)

	_, _, err = env.messaging.GetMessages(ctx(), conv.ID, eve.ID, 0)
	assert.ErrorIs(t, err, ErrNotMember)

	_, err = env.messaging.SendMessage(ctx(), conv.ID, eve.ID, "let me in")
	assert.ErrorIs(t, err, ErrNotMember)

	// A conversation that does not exist reads the same way.
	_, _, err = env.messaging.GetMessages(ctx(), conv.ID+100, alice.ID, 0)
	assert.ErrorIs(t, err, ErrNotMember)
}

func TestMessagingService_EmptyMessageRejected(t *testing.T) {
	env := newTestEnv(t)
	alice := env.user(t, "alice")
	bob := env.user(t, "bob")

	conv, err := env.messaging.StartConversation(ctx(), alice.ID, bob.ID)
	require.NoError(t, err)

	_, err = env.messaging.SendMessage(ctx(), conv.ID, alice.ID, "   ")
	assert.ErrorIs(t, err, ErrEmptyMessage)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestMessagingService_ListConversationsOrder(t *testing.T) {
	env := newTestEnv(t)
	alice := env.user(t, "alice")
	bob := env.user(t, "bob")
	carol := env.user(t, "carol")
	dave := env.user(t, "dave")

	withBob, err := env.messaging.StartConversation(ctx(), alice.ID, bob.ID)
	require.NoError(t, err)
	withCarol, err := env.messaging.StartConversation(ctx(), alice.ID, carol.ID)
	require.NoError(t, err)
	withDave, err := env.messaging.StartConversation(ctx(), alice.ID, dave.ID)
	require.NoError(t, err)

	// Activity order: carol then bob; dave stays silent.
	_, err = env.messaging.SendMessage(ctx(), withCarol.ID, carol.ID, "first")
	require.NoError(t, err)
	_, err = env.messaging.SendMessage(ctx(), withBob.ID, alice.ID, "second")
	require.NoError(t, err)

	views := env.messaging.ListConversations(ctx(), alice.ID)
	require.Len(t, views, 3)

	// Last activity wins; message-less conversations sort last.
	assert.Equal(t, withDave.ID, views[2].ID)
	assert.Nil(t, views[2].LastMessage)
	if views[0].LastMessage.CreatedAt.Equal(views[1].LastMessage.CreatedAt) {
		// Equal timestamps keep insertion order.
		assert.ElementsMatch(t, []uint{withBob.ID, withCarol.ID}, []uint{views[0].ID, views[1].ID})
	} else {
		assert.Equal(t, withBob.ID, views[0].ID)
		assert.Equal(t, withCarol.ID, views[1].ID)
	}
}

func TestMessagingService_Contacts(t *testing.T) {
	env := newTestEnv(t)
	alice := env.user(t, "alice")
	bob := env.user(t, "bob")
	carol := env.user(t, "carol")

	// alice and bob are mutuals; carol only follows alice.
	_, err := env.social.ToggleFollow(ctx(), alice.ID, bob.ID)
	require.NoError(t, err)
	_, err = env.social.ToggleFollow(ctx(), bob.ID, alice.ID)
	require.NoError(t, err)
	_, err = env.social.ToggleFollow(ctx(), carol.ID, alice.ID)
	require.NoError(t, err)

	contacts := env.messaging.Contacts(ctx(), alice.ID)
	require.Len(t, contacts, 1)
	assert.Equal(t, bob.ID, contacts[0].ID)
	assert.Nil(t, contacts[0].ConversationID)

	conv, err := env.messaging.StartConversation(ctx(), alice.ID, bob.ID)
	require.NoError(t, err)

	contacts = env.messaging.Contacts(ctx(), alice.ID)
	require.Len(t, contacts, 1)
	require.NotNil(t, contacts[0].ConversationID)
	assert.Equal(t, conv.ID, *contacts[0].ConversationID)
}
