package client

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T) *Client {
	t.Helper()
	c, err := NewClient(CreateParams{UserID: "user-1", Name: "Acme"})
	require.NoError(t, err)
	return c
}

func TestNewClient(t *testing.T) {
	c, err := NewClient(CreateParams{
		UserID:      "user-1",
		Name:        "Acme Corp",
		Email:       "billing@acme.test",
		PhoneNumber: "+4915112345678",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, c.ID())
	assert.Equal(t, "user-1", c.UserID())
	assert.Equal(t, "Acme Corp", c.Name())
	assert.Equal(t, ContactEmail, c.ContactMethod())
	assert.True(t, c.IsActive())
	assert.True(t, c.IsNew())
	assert.Zero(t, c.Version())

	events := c.PullEvents()
	require.Len(t, events, 1)
	assert.Equal(t, "client.created", events[0].EventName())
	assert.Equal(t, c.ID(), events[0].GetAggregateID())
}

func TestNewClient_Validation(t *testing.T) {
	tests := []struct {
		name   string
		params CreateParams
	}{
		{"missing user", CreateParams{Name: "Acme"}},
		{"empty name", CreateParams{UserID: "user-1", Name: "   "}},
		{"bad email", CreateParams{UserID: "user-1", Name: "Acme", Email: "not-an-email"}},
		{"bad phone", CreateParams{UserID: "user-1", Name: "Acme", PhoneNumber: "abc"}},
		{"phone too short", CreateParams{UserID: "user-1", Name: "Acme", PhoneNumber: "+12"}},
		{"bad contact method", CreateParams{UserID: "user-1", Name: "Acme", ContactMethod: "PIGEON"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewClient(tt.params)
			assert.Error(t, err)
		})
	}
}

func TestNewClient_OptionalFieldsRecordOneEvent(t *testing.T) {
	c, err := NewClient(CreateParams{
		UserID:        "user-1",
		Name:          "Acme",
		Address:       "1 Main St",
		Notes:         "prefers morning emails",
		ContactMethod: ContactSMS,
	})
	require.NoError(t, err)

	assert.Equal(t, "1 Main St", c.Address())
	assert.Equal(t, "prefers morning emails", c.Notes())
	assert.Equal(t, ContactSMS, c.ContactMethod())

	events := c.PullEvents()
	require.Len(t, events, 1)
	assert.Equal(t, "client.created", events[0].EventName())
}

func TestClient_UpdateRecordsChangedFields(t *testing.T) {
	c := newTestClient(t)
	c.PullEvents()

	name := "Acme GmbH"
	notes := "prefers morning emails"
	require.NoError(t, c.Update(UpdateParams{Name: &name, Notes: &notes}))

	events := c.PullEvents()
	require.Len(t, events, 1)
	updated, ok := events[0].(*ClientUpdatedEvent)
	require.True(t, ok)
	assert.Equal(t, "client.updated", updated.EventName())
	assert.ElementsMatch(t, []string{"name", "notes"}, updated.ChangedFields())
}

func TestClient_UpdateEmptyChangeSetRecordsNothing(t *testing.T) {
	c := newTestClient(t)
	c.PullEvents()

	require.NoError(t, c.Update(UpdateParams{}))
	assert.Empty(t, c.PullEvents())
}

func TestClient_UpdateRejectsInvalidContactMethod(t *testing.T) {
	c := newTestClient(t)

	method := ContactMethod("PIGEON")
	assert.Error(t, c.Update(UpdateParams{ContactMethod: &method}))
}

func TestClient_PullEventsClearsList(t *testing.T) {
	c := newTestClient(t)

	assert.Len(t, c.PullEvents(), 1)
	assert.Empty(t, c.PullEvents())
}

func TestClient_VersionOwnedByRepository(t *testing.T) {
	c := newTestClient(t)

	name := "Acme GmbH"
	require.NoError(t, c.Update(UpdateParams{Name: &name}))
	assert.Zero(t, c.Version(), "behavior methods must not bump the version")

	c.IncrementVersionForSave()
	assert.Equal(t, 1, c.Version())
}

func TestRebuildFromDTO_RecordsNoEvents(t *testing.T) {
	c := RebuildFromDTO(ReconstructionDTO{
		ID:            "client-1",
		UserID:        "user-1",
		Name:          "Acme",
		ContactMethod: string(ContactSMS),
		IsActive:      true,
		Version:       3,
	})

	assert.Equal(t, 3, c.Version())
	assert.False(t, c.IsNew())
	assert.Empty(t, c.PullEvents())
}
