package client

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"remindly/domain/client"
	"remindly/domain/shared"
	"remindly/infrastructure/persistence/mocks"
)

type fixture struct {
	service *ApplicationService
	repo    *mocks.MockClientRepository
	factory *mocks.MockUnitOfWorkFactory
	bus     *shared.EventBus
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	bus := shared.NewEventBus()
	repo := mocks.NewMockClientRepository()
	factory := mocks.NewMockUnitOfWorkFactory(bus)
	return &fixture{
		service: NewApplicationService(repo, factory),
		repo:    repo,
		factory: factory,
		bus:     bus,
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

func TestCreateClient_EmitsOneEventAfterCommit(t *testing.T) {
	f := newFixture(t)

	resp, err := f.service.CreateClient(context.Background(), "user-1", CreateClientRequest{
		Name:  "Acme Corp",
		Email: "billing@acme.test",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.ID)
	assert.Equal(t, "Acme Corp", resp.Name)

	assert.Equal(t, []string{"client.created"}, f.committedEventNames())
}

func TestCreateClient_OptionalFieldsStillOneEvent(t *testing.T) {
	f := newFixture(t)

	resp, err := f.service.CreateClient(context.Background(), "user-1", CreateClientRequest{
		Name:          "Acme Corp",
		Email:         "billing@acme.test",
		Address:       "1 Main St",
		Notes:         "net 30",
		ContactMethod: "SMS",
	})
	require.NoError(t, err)
	assert.Equal(t, "1 Main St", resp.Address)
	assert.Equal(t, "net 30", resp.Notes)
	assert.Equal(t, "SMS", resp.ContactMethod)

	assert.Equal(t, []string{"client.created"}, f.committedEventNames(),
		"create is a single mutation whichever optional fields are set")
}

func TestCreateClient_DuplicateEmailIsConflict(t *testing.T) {
	f := newFixture(t)

	_, err := f.service.CreateClient(context.Background(), "user-1", CreateClientRequest{
		Name: "Acme", Email: "dup@acme.test",
	})
	require.NoError(t, err)

	_, err = f.service.CreateClient(context.Background(), "user-1", CreateClientRequest{
		Name: "Other", Email: "dup@acme.test",
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, shared.ErrConflict)

	// conflict rolled back: only the first create emitted an event
	assert.Equal(t, []string{"client.created"}, f.committedEventNames())
}

func TestCreateClient_SameEmailDifferentOwnerAllowed(t *testing.T) {
	f := newFixture(t)

	_, err := f.service.CreateClient(context.Background(), "user-1", CreateClientRequest{
		Name: "Acme", Email: "shared@acme.test",
	})
	require.NoError(t, err)

	_, err = f.service.CreateClient(context.Background(), "user-2", CreateClientRequest{
		Name: "Acme", Email: "shared@acme.test",
	})
	assert.NoError(t, err, "uniqueness is scoped per owner")
}

func TestCreateClient_ValidationFailureEmitsNothing(t *testing.T) {
	f := newFixture(t)

	_, err := f.service.CreateClient(context.Background(), "user-1", CreateClientRequest{
		Name: "Acme", Email: "not-an-email",
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, shared.ErrInvalidInput)
	assert.Empty(t, f.committedEventNames())
}

func TestGetClient_CrossOwnerIsNotFound(t *testing.T) {
	f := newFixture(t)

	created, err := f.service.CreateClient(context.Background(), "user-1", CreateClientRequest{Name: "Acme"})
	require.NoError(t, err)

	_, err = f.service.GetClient(context.Background(), "user-2", created.ID)
	require.Error(t, err)
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestUpdateClient_EmitsUpdatedEvent(t *testing.T) {
	f := newFixture(t)

	created, err := f.service.CreateClient(context.Background(), "user-1", CreateClientRequest{Name: "Acme"})
	require.NoError(t, err)

	name := "Acme GmbH"
	resp, err := f.service.UpdateClient(context.Background(), "user-1", created.ID, UpdateClientRequest{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "Acme GmbH", resp.Name)

	assert.Equal(t, []string{"client.created", "client.updated"}, f.committedEventNames())
}

func TestUpdateClient_NoChangeEmitsNothing(t *testing.T) {
	f := newFixture(t)

	created, err := f.service.CreateClient(context.Background(), "user-1", CreateClientRequest{Name: "Acme"})
	require.NoError(t, err)

	_, err = f.service.UpdateClient(context.Background(), "user-1", created.ID, UpdateClientRequest{})
	require.NoError(t, err)

	assert.Equal(t, []string{"client.created"}, f.committedEventNames())
}

func TestDeleteClient_QueuesDeletedEvent(t *testing.T) {
	f := newFixture(t)

	created, err := f.service.CreateClient(context.Background(), "user-1", CreateClientRequest{Name: "Acme"})
	require.NoError(t, err)

	require.NoError(t, f.service.DeleteClient(context.Background(), "user-1", created.ID))
	assert.Equal(t, []string{"client.created", "client.deleted"}, f.committedEventNames())

	_, err = f.service.GetClient(context.Background(), "user-1", created.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestDeleteClient_CrossOwnerLeavesClientIntact(t *testing.T) {
	f := newFixture(t)

	created, err := f.service.CreateClient(context.Background(), "user-1", CreateClientRequest{Name: "Acme"})
	require.NoError(t, err)

	err = f.service.DeleteClient(context.Background(), "user-2", created.ID)
	require.ErrorIs(t, err, shared.ErrNotFound)

	_, err = f.service.GetClient(context.Background(), "user-1", created.ID)
	assert.NoError(t, err)
}

func TestListClients_FiltersAndScopesByOwner(t *testing.T) {
	f := newFixture(t)

	_, err := f.service.CreateClient(context.Background(), "user-1", CreateClientRequest{Name: "Alpha"})
	require.NoError(t, err)
	beta, err := f.service.CreateClient(context.Background(), "user-1", CreateClientRequest{Name: "Beta"})
	require.NoError(t, err)
	_, err = f.service.CreateClient(context.Background(), "user-2", CreateClientRequest{Name: "Gamma"})
	require.NoError(t, err)

	inactive := false
	_, err = f.service.UpdateClient(context.Background(), "user-1", beta.ID, UpdateClientRequest{IsActive: &inactive})
	require.NoError(t, err)

	all, err := f.service.ListClients(context.Background(), "user-1", ListClientsRequest{})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	active, err := f.service.ListClients(context.Background(), "user-1", ListClientsRequest{ActiveOnly: true})
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, "Alpha", active[0].Name)
}

func TestCreateClient_RetriedCommitEmitsOnce(t *testing.T) {
	bus := shared.NewEventBus()
	var delivered int
	require.NoError(t, bus.Subscribe("client.created", shared.NewFuncHandler("counter", func(shared.DomainEvent) error {
		delivered++
		return nil
	})))

	repo := mocks.NewMockClientRepository()
	factory := mocks.NewMockUnitOfWorkFactory(bus)
	service := NewApplicationService(repo, factory)

	// inject a retryable failure into the unit of work the service will
	// resolve: run the create inside an explicit outer transaction
	uow := factory.New().(*mocks.MockUnitOfWork)
	uow.FailNextCommits(1, client.NewConcurrentModificationError("client-x"))

	err := uow.Execute(context.Background(), func(ctx context.Context) error {
		_, err := service.CreateClient(ctx, "user-1", CreateClientRequest{Name: "Acme"})
		return err
	})
	require.NoError(t, err)
	assert.Equal(t, 1, delivered, "one emission despite the commit retry")
}
