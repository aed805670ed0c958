package notification

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"remindly/domain/shared"
)

func newPending(t *testing.T) *Notification {
	t.Helper()
	n, err := NewNotification("user-1", "reminder-1", "client-1", ChannelEmail, "pay the invoice")
	require.NoError(t, err)
	n.PullEvents()
	return n
}

func TestNewNotification(t *testing.T) {
	n, err := NewNotification("user-1", "reminder-1", "client-1", ChannelEmail, "hello")
	require.NoError(t, err)

	assert.Equal(t, StatusPending, n.Status())
	assert.True(t, n.SentAt().IsZero())
	assert.True(t, n.IsNew())

	events := n.PullEvents()
	require.Len(t, events, 1)
	assert.Equal(t, "notification.created", events[0].EventName())
}

func TestNewNotification_Validation(t *testing.T) {
	tests := []struct {
		name                         string
		userID, reminderID, clientID string
		channel                      Channel
	}{
		{"missing user", "", "r", "c", ChannelEmail},
		{"missing reminder", "u", "", "c", ChannelEmail},
		{"missing client", "u", "r", "", ChannelEmail},
		{"bad channel", "u", "r", "c", "CARRIER_PIGEON"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewNotification(tt.userID, tt.reminderID, tt.clientID, tt.channel, "msg")
			assert.Error(t, err)
		})
	}
}

func TestNotification_MarkSent(t *testing.T) {
	n := newPending(t)

	require.NoError(t, n.MarkSent())
	assert.Equal(t, StatusSent, n.Status())
	assert.False(t, n.SentAt().IsZero())

	events := n.PullEvents()
	require.Len(t, events, 1)
	assert.Equal(t, "notification.sent", events[0].EventName())
}

func TestNotification_MarkFailedKeepsReason(t *testing.T) {
	n := newPending(t)

	require.NoError(t, n.MarkFailed("SMTP timeout"))
	assert.Equal(t, StatusFailed, n.Status())
	assert.Equal(t, "SMTP timeout", n.ErrorMessage())

	events := n.PullEvents()
	require.Len(t, events, 1)
	assert.Equal(t, "notification.failed", events[0].EventName())
}

func TestNotification_Cancel(t *testing.T) {
	n := newPending(t)

	require.NoError(t, n.Cancel())
	assert.Equal(t, StatusCancelled, n.Status())
}

func TestNotification_TerminalStatesNeverChange(t *testing.T) {
	n := newPending(t)
	require.NoError(t, n.MarkSent())
	n.PullEvents()

	for _, transition := range []func() error{n.MarkSent, n.Cancel, func() error { return n.MarkFailed("x") }} {
		err := transition()
		require.Error(t, err)
		assert.ErrorIs(t, err, shared.ErrConflict)
	}
	assert.Equal(t, StatusSent, n.Status())
	assert.Empty(t, n.PullEvents(), "failed transitions must not record events")
}
