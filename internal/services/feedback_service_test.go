package services

import (
	"context"
	"testing"

	"communitychat-backend/internal/models"
	"communitychat-backend/internal/store"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedAssistantMessage(t *testing.T, st *mockStore) models.Message {
	t.Helper()
	conv, err := st.CreateConversation(context.Background(), nil)
	require.NoError(t, err)
	msg, err := st.AppendMessage(context.Background(), store.AppendMessageParams{
		ConversationID: conv.ID,
		Role:           models.RoleAssistant,
		Content:        "I hope that helps.",
	})
	require.NoError(t, err)
	return *msg
}

func TestSubmitFeedback(t *testing.T) {
	t.Run("rejects out-of-range ratings", func(t *testing.T) {
		svc := NewFeedbackService(newMockStore())
		for _, rating := range []int{0, -1, 6, 100} {
			_, err := svc.SubmitFeedback(context.Background(), models.FeedbackRequest{
				MessageID: uuid.New(),
				Rating:    rating,
			})
			var vErr *ValidationError
			require.ErrorAs(t, err, &vErr, "rating %d should fail validation", rating)
			assert.Equal(t, "rating", vErr.Field)
		}
	})

	t.Run("rejects a missing message id", func(t *testing.T) {
		svc := NewFeedbackService(newMockStore())
		_, err := svc.SubmitFeedback(context.Background(), models.FeedbackRequest{Rating: 3})
		var vErr *ValidationError
		require.ErrorAs(t, err, &vErr)
		assert.Equal(t, "message_id", vErr.Field)
	})

	t.Run("records feedback and denormalizes the rating", func(t *testing.T) {
		st := newMockStore()
		msg := seedAssistantMessage(t, st)
		svc := NewFeedbackService(st)

		fb, err := svc.SubmitFeedback(context.Background(), models.FeedbackRequest{
			MessageID: msg.ID,
			Rating:    3,
		})
		require.NoError(t, err)
		assert.Equal(t, msg.ID, fb.MessageID)
		assert.Equal(t, 3, fb.Rating)

		// The rating is visible on a subsequent message read.
		msgs, err := st.GetMessages(context.Background(), msg.ConversationID)
		require.NoError(t, err)
		require.Len(t, msgs, 1)
		require.NotNil(t, msgs[0].Rating)
		assert.Equal(t, 3, *msgs[0].Rating)
	})

	t.Run("unknown message yields ErrNotFound", func(t *testing.T) {
		svc := NewFeedbackService(newMockStore())
		_, err := svc.SubmitFeedback(context.Background(), models.FeedbackRequest{
			MessageID: uuid.New(),
			Rating:    4,
		})
		assert.ErrorIs(t, err, store.ErrNotFound)
	})
}

func TestUpcomingEventsLimit(t *testing.T) {
	st := newMockStore()
	svc := NewResourceService(st)

	t.Run("defaults to 10", func(t *testing.T) {
		_, err := svc.UpcomingEvents(context.Background(), 0)
		require.NoError(t, err)
		assert.Equal(t, 10, st.capturedEvtLimit)
	})

	t.Run("caps at 50", func(t *testing.T) {
		_, err := svc.UpcomingEvents(context.Background(), 500)
		require.NoError(t, err)
		assert.Equal(t, 50, st.capturedEvtLimit)
	})

	t.Run("passes a reasonable limit through", func(t *testing.T) {
		_, err := svc.UpcomingEvents(context.Background(), 5)
		require.NoError(t, err)
		assert.Equal(t, 5, st.capturedEvtLimit)
	})
}
