package emailconfig

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appreminder "remindly/application/reminder"
	"remindly/domain/shared"
	"remindly/infrastructure/persistence/mocks"
)

type fixture struct {
	service      *ApplicationService
	reminderSvc  *appreminder.ApplicationService
	configRepo   *mocks.MockEmailConfigurationRepository
	reminderRepo *mocks.MockReminderRepository
	factory      *mocks.MockUnitOfWorkFactory
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	bus := shared.NewEventBus()
	configRepo := mocks.NewMockEmailConfigurationRepository()
	reminderRepo := mocks.NewMockReminderRepository()
	clientRepo := mocks.NewMockClientRepository()
	factory := mocks.NewMockUnitOfWorkFactory(bus)
	return &fixture{
		service:      NewApplicationService(configRepo, reminderRepo, factory),
		reminderSvc:  appreminder.NewApplicationService(reminderRepo, clientRepo, configRepo, factory),
		configRepo:   configRepo,
		reminderRepo: reminderRepo,
		factory:      factory,
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

func validCreateRequest(name, from string) CreateEmailConfigurationRequest {
	return CreateEmailConfigurationRequest{
		ConfigurationName: name,
		SMTPHost:          "smtp.example.test",
		SMTPPort:          587,
		SMTPUser:          "mailer",
		SMTPPassword:      "s3cret-pass",
		EmailFrom:         from,
	}
}

func TestCreateEmailConfiguration(t *testing.T) {
	f := newFixture(t)

	resp, err := f.service.CreateEmailConfiguration(context.Background(), "user-1",
		validCreateRequest("billing", "billing@example.test"))
	require.NoError(t, err)
	assert.False(t, resp.IsDefault)

	assert.Equal(t, []string{"email_configuration.created"}, f.committedEventNames())
}

func TestCreateEmailConfiguration_DuplicateNamePerOwner(t *testing.T) {
	f := newFixture(t)

	_, err := f.service.CreateEmailConfiguration(context.Background(), "user-1",
		validCreateRequest("billing", "a@example.test"))
	require.NoError(t, err)

	_, err = f.service.CreateEmailConfiguration(context.Background(), "user-1",
		validCreateRequest("billing", "b@example.test"))
	assert.ErrorIs(t, err, shared.ErrConflict)

	_, err = f.service.CreateEmailConfiguration(context.Background(), "user-2",
		validCreateRequest("billing", "a@example.test"))
	assert.NoError(t, err, "uniqueness is scoped per owner")
}

func TestSetDefaultConfiguration_SingleDefaultInvariant(t *testing.T) {
	f := newFixture(t)

	first, err := f.service.CreateEmailConfiguration(context.Background(), "user-1",
		validCreateRequest("billing", "a@example.test"))
	require.NoError(t, err)
	second, err := f.service.CreateEmailConfiguration(context.Background(), "user-1",
		validCreateRequest("support", "b@example.test"))
	require.NoError(t, err)

	_, err = f.service.SetDefaultConfiguration(context.Background(), "user-1", first.ID)
	require.NoError(t, err)

	resp, err := f.service.SetDefaultConfiguration(context.Background(), "user-1", second.ID)
	require.NoError(t, err)
	assert.True(t, resp.IsDefault)

	configs, err := f.service.ListEmailConfigurations(context.Background(), "user-1", ListEmailConfigurationsRequest{})
	require.NoError(t, err)
	defaults := 0
	for _, cfg := range configs {
		if cfg.IsDefault {
			defaults++
			assert.Equal(t, second.ID, cfg.ID)
		}
	}
	assert.Equal(t, 1, defaults)

	// only one .set_default per transition; clearing records nothing
	names := f.committedEventNames()
	setDefaults := 0
	for _, n := range names {
		if n == "email_configuration.set_default" {
			setDefaults++
		}
	}
	assert.Equal(t, 2, setDefaults)
}

func TestSetDefaultConfiguration_AlreadyDefaultIsNoop(t *testing.T) {
	f := newFixture(t)

	cfg, err := f.service.CreateEmailConfiguration(context.Background(), "user-1",
		validCreateRequest("billing", "a@example.test"))
	require.NoError(t, err)

	_, err = f.service.SetDefaultConfiguration(context.Background(), "user-1", cfg.ID)
	require.NoError(t, err)
	before := len(f.committedEventNames())

	_, err = f.service.SetDefaultConfiguration(context.Background(), "user-1", cfg.ID)
	require.NoError(t, err)
	assert.Equal(t, before, len(f.committedEventNames()), "repeated set-default emits nothing")
}

func TestDeleteEmailConfiguration_BlockedWhileReferenced(t *testing.T) {
	f := newFixture(t)

	cfg, err := f.service.CreateEmailConfiguration(context.Background(), "user-1",
		validCreateRequest("billing", "a@example.test"))
	require.NoError(t, err)

	_, err = f.reminderSvc.CreateReminder(context.Background(), "user-1", appreminder.CreateReminderRequest{
		Title:                "Invoice",
		ReminderType:         "PAYMENT",
		NotificationType:     "EMAIL",
		EmailConfigurationID: cfg.ID,
		ReminderDate:         time.Now().Add(time.Hour),
	})
	require.NoError(t, err)

	err = f.service.DeleteEmailConfiguration(context.Background(), "user-1", cfg.ID)
	require.Error(t, err)
	assert.ErrorIs(t, err, shared.ErrInvalidInput)

	_, err = f.service.GetEmailConfiguration(context.Background(), "user-1", cfg.ID)
	assert.NoError(t, err, "blocked delete must not remove the configuration")
}

func TestDeleteEmailConfiguration_QueuesDeletedEvent(t *testing.T) {
	f := newFixture(t)

	cfg, err := f.service.CreateEmailConfiguration(context.Background(), "user-1",
		validCreateRequest("billing", "a@example.test"))
	require.NoError(t, err)

	require.NoError(t, f.service.DeleteEmailConfiguration(context.Background(), "user-1", cfg.ID))
	assert.Contains(t, f.committedEventNames(), "email_configuration.deleted")
}

func TestGetEmailConfiguration_CrossOwnerIsNotFound(t *testing.T) {
	f := newFixture(t)

	cfg, err := f.service.CreateEmailConfiguration(context.Background(), "user-1",
		validCreateRequest("billing", "a@example.test"))
	require.NoError(t, err)

	_, err = f.service.GetEmailConfiguration(context.Background(), "user-2", cfg.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestEmailConfigurationResponse_NeverExposesPassword(t *testing.T) {
	f := newFixture(t)

	resp, err := f.service.CreateEmailConfiguration(context.Background(), "user-1",
		validCreateRequest("billing", "a@example.test"))
	require.NoError(t, err)

	assert.Equal(t, "mailer", resp.SMTPUser)
	// the response type has no password field at all; spot-check a
	// round trip through the update path as well
	port := 2525
	updated, err := f.service.UpdateEmailConfiguration(context.Background(), "user-1", resp.ID,
		UpdateEmailConfigurationRequest{SMTPPort: &port})
	require.NoError(t, err)
	assert.Equal(t, 2525, updated.SMTPPort)
}
