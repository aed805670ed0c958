package reminder

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appclient "remindly/application/client"
	appemailconfig "remindly/application/emailconfig"
	"remindly/domain/shared"
	"remindly/infrastructure/persistence/mocks"
)

type fixture struct {
	service   *ApplicationService
	clientSvc *appclient.ApplicationService
	configSvc *appemailconfig.ApplicationService
	factory   *mocks.MockUnitOfWorkFactory
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	bus := shared.NewEventBus()
	clientRepo := mocks.NewMockClientRepository()
	configRepo := mocks.NewMockEmailConfigurationRepository()
	reminderRepo := mocks.NewMockReminderRepository()
	factory := mocks.NewMockUnitOfWorkFactory(bus)
	return &fixture{
		service:   NewApplicationService(reminderRepo, clientRepo, configRepo, factory),
		clientSvc: appclient.NewApplicationService(clientRepo, factory),
		configSvc: appemailconfig.NewApplicationService(configRepo, reminderRepo, factory),
		factory:   factory,
	}
}

func (f *fixture) committedEventNames() []string {
	var names []string
	for _, uow := range f.factory.Created {
		for _, event := range uow.CommittedEvents() {
			names = append(names, event.EventName())
		}
	}
	return names
}

func (f *fixture) createClient(t *testing.T, userID, name string) string {
	t.Helper()
	resp, err := f.clientSvc.CreateClient(context.Background(), userID, appclient.CreateClientRequest{Name: name})
	require.NoError(t, err)
	return resp.ID
}

func smsRequest(title string) CreateReminderRequest {
	return CreateReminderRequest{
		Title:            title,
		ReminderType:     "DEADLINE",
		NotificationType: "SMS",
		ReminderDate:     time.Now().Add(48 * time.Hour),
	}
}

func TestCreateReminder(t *testing.T) {
	f := newFixture(t)

	resp, err := f.service.CreateReminder(context.Background(), "user-1", smsRequest("Tax filing"))
	require.NoError(t, err)
	assert.True(t, resp.IsActive)
	assert.Empty(t, resp.RecipientClientIDs)

	assert.Equal(t, []string{"reminder.created"}, f.committedEventNames())
}

func TestCreateReminder_EmailNeedsOwnedConfiguration(t *testing.T) {
	f := newFixture(t)

	cfg, err := f.configSvc.CreateEmailConfiguration(context.Background(), "user-2",
		appemailconfig.CreateEmailConfigurationRequest{
			ConfigurationName: "billing",
			SMTPHost:          "smtp.example.test",
			SMTPPort:          587,
			SMTPUser:          "mailer",
			SMTPPassword:      "s3cret-pass",
			EmailFrom:         "billing@example.test",
		})
	require.NoError(t, err)

	req := smsRequest("Invoice")
	req.NotificationType = "EMAIL"
	req.EmailConfigurationID = cfg.ID

	// the configuration belongs to user-2, so user-1 cannot reference it
	_, err = f.service.CreateReminder(context.Background(), "user-1", req)
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestAddRecipient(t *testing.T) {
	f := newFixture(t)

	clientID := f.createClient(t, "user-1", "Acme")
	rem, err := f.service.CreateReminder(context.Background(), "user-1", smsRequest("Invoice"))
	require.NoError(t, err)

	resp, err := f.service.AddRecipient(context.Background(), "user-1", rem.ID, clientID)
	require.NoError(t, err)
	assert.Equal(t, []string{clientID}, resp.RecipientClientIDs)

	assert.Contains(t, f.committedEventNames(), "client.added_to_reminder")
}

func TestAddRecipient_DuplicateIsConflict(t *testing.T) {
	f := newFixture(t)

	clientID := f.createClient(t, "user-1", "Acme")
	rem, err := f.service.CreateReminder(context.Background(), "user-1", smsRequest("Invoice"))
	require.NoError(t, err)

	_, err = f.service.AddRecipient(context.Background(), "user-1", rem.ID, clientID)
	require.NoError(t, err)
	_, err = f.service.AddRecipient(context.Background(), "user-1", rem.ID, clientID)
	assert.ErrorIs(t, err, shared.ErrConflict)
}

func TestAddRecipient_ForeignClientRejected(t *testing.T) {
	f := newFixture(t)

	foreign := f.createClient(t, "user-2", "Not Yours")
	rem, err := f.service.CreateReminder(context.Background(), "user-1", smsRequest("Invoice"))
	require.NoError(t, err)

	_, err = f.service.AddRecipient(context.Background(), "user-1", rem.ID, foreign)
	require.ErrorIs(t, err, shared.ErrNotFound)

	got, err := f.service.GetReminder(context.Background(), "user-1", rem.ID)
	require.NoError(t, err)
	assert.Empty(t, got.RecipientClientIDs)
}

func TestRemoveRecipient(t *testing.T) {
	f := newFixture(t)

	clientID := f.createClient(t, "user-1", "Acme")
	rem, err := f.service.CreateReminder(context.Background(), "user-1", smsRequest("Invoice"))
	require.NoError(t, err)
	_, err = f.service.AddRecipient(context.Background(), "user-1", rem.ID, clientID)
	require.NoError(t, err)

	resp, err := f.service.RemoveRecipient(context.Background(), "user-1", rem.ID, clientID)
	require.NoError(t, err)
	assert.Empty(t, resp.RecipientClientIDs)
	assert.Contains(t, f.committedEventNames(), "client.removed_from_reminder")
}

func TestUpdateReminder(t *testing.T) {
	f := newFixture(t)

	rem, err := f.service.CreateReminder(context.Background(), "user-1", smsRequest("Invoice"))
	require.NoError(t, err)

	title := "Invoice follow-up"
	resp, err := f.service.UpdateReminder(context.Background(), "user-1", rem.ID, UpdateReminderRequest{Title: &title})
	require.NoError(t, err)
	assert.Equal(t, "Invoice follow-up", resp.Title)
	assert.Contains(t, f.committedEventNames(), "reminder.updated")
}

func TestDeleteReminder_QueuesDeletedEvent(t *testing.T) {
	f := newFixture(t)

	rem, err := f.service.CreateReminder(context.Background(), "user-1", smsRequest("Invoice"))
	require.NoError(t, err)

	require.NoError(t, f.service.DeleteReminder(context.Background(), "user-1", rem.ID))
	assert.Contains(t, f.committedEventNames(), "reminder.deleted")

	_, err = f.service.GetReminder(context.Background(), "user-1", rem.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestListReminders_ScopedByOwnerAndType(t *testing.T) {
	f := newFixture(t)

	_, err := f.service.CreateReminder(context.Background(), "user-1", smsRequest("Deadline A"))
	require.NoError(t, err)

	payment := smsRequest("Payment B")
	payment.ReminderType = "PAYMENT"
	_, err = f.service.CreateReminder(context.Background(), "user-1", payment)
	require.NoError(t, err)

	_, err = f.service.CreateReminder(context.Background(), "user-2", smsRequest("Other"))
	require.NoError(t, err)

	all, err := f.service.ListReminders(context.Background(), "user-1", ListRemindersRequest{})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	payments, err := f.service.ListReminders(context.Background(), "user-1", ListRemindersRequest{Type: "PAYMENT"})
	require.NoError(t, err)
	require.Len(t, payments, 1)
	assert.Equal(t, "Payment B", payments[0].Title)
}
