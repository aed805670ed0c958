// Package client contains the client application service: it
// orchestrates client use cases inside unit-of-work boundaries and maps
// aggregates to transport DTOs.
package client

import (
	"context"
	"time"

	"remindly/domain/client"
	"remindly/domain/shared"
)

// ApplicationService coordinates client use cases. Every mutation runs
// inside a unit of work resolved from the context, so a service call
// nested in another transaction joins it instead of opening its own.
type ApplicationService struct {
	clientRepo client.Repository
	uowFactory shared.UnitOfWorkFactory
}

func NewApplicationService(clientRepo client.Repository, uowFactory shared.UnitOfWorkFactory) *ApplicationService {
	return &ApplicationService{
		clientRepo: clientRepo,
		uowFactory: uowFactory,
	}
}

type CreateClientRequest struct {
	Name          string `json:"name" binding:"required"`
	Email         string `json:"email"`
	PhoneNumber   string `json:"phone_number"`
	Address       string `json:"address"`
	Notes         string `json:"notes"`
	ContactMethod string `json:"contact_method"`
}

type UpdateClientRequest struct {
	Name          *string `json:"name"`
	Email         *string `json:"email"`
	PhoneNumber   *string `json:"phone_number"`
	Address       *string `json:"address"`
	Notes         *string `json:"notes"`
	ContactMethod *string `json:"contact_method"`
	IsActive      *bool   `json:"is_active"`
}

type ClientResponse struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Email         string    `json:"email"`
	PhoneNumber   string    `json:"phone_number"`
	Address       string    `json:"address"`
	Notes         string    `json:"notes"`
	ContactMethod string    `json:"contact_method"`
	IsActive      bool      `json:"is_active"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

type ListClientsRequest struct {
	Skip          int    `form:"skip"`
	Limit         int    `form:"limit"`
	ActiveOnly    bool   `form:"active_only"`
	Search        string `form:"search"`
	ContactMethod string `form:"contact_method"`
}

// CreateClient checks per-owner uniqueness of email and phone, creates
// the aggregate and registers it so the client.created event is emitted
// after commit.
func (s *ApplicationService) CreateClient(ctx context.Context, userID string, req CreateClientRequest) (*ClientResponse, error) {
	var c *client.Client

	uow := shared.ResolveUnitOfWork(ctx, s.uowFactory)
	err := uow.Execute(ctx, func(ctx context.Context) error {
		if req.Email != "" {
			existing, err := s.clientRepo.FindByEmail(ctx, userID, req.Email)
			if err != nil {
				return err
			}
			if existing != nil {
				return client.NewClientAlreadyExistsError("email", req.Email)
			}
		}
		if req.PhoneNumber != "" {
			existing, err := s.clientRepo.FindByPhoneNumber(ctx, userID, req.PhoneNumber)
			if err != nil {
				return err
			}
			if existing != nil {
				return client.NewClientAlreadyExistsError("phone_number", req.PhoneNumber)
			}
		}

		var err error
		c, err = client.NewClient(client.CreateParams{
			UserID:        userID,
			Name:          req.Name,
			Email:         req.Email,
			PhoneNumber:   req.PhoneNumber,
			Address:       req.Address,
			Notes:         req.Notes,
			ContactMethod: client.ContactMethod(req.ContactMethod),
		})
		if err != nil {
			return err
		}

		if err := s.clientRepo.Save(ctx, c); err != nil {
			return err
		}
		return uow.RegisterNew(c)
	})
	if err != nil {
		return nil, err
	}

	return toClientResponse(c), nil
}

// GetClient returns a client visible to the calling owner. A client
// owned by someone else is reported as not found.
func (s *ApplicationService) GetClient(ctx context.Context, userID, clientID string) (*ClientResponse, error) {
	c, err := s.findOwned(ctx, userID, clientID)
	if err != nil {
		return nil, err
	}
	return toClientResponse(c), nil
}

func (s *ApplicationService) ListClients(ctx context.Context, userID string, req ListClientsRequest) ([]*ClientResponse, error) {
	clients, err := s.clientRepo.FindByUserID(ctx, userID, client.ListFilter{
		Skip:          req.Skip,
		Limit:         req.Limit,
		ActiveOnly:    req.ActiveOnly,
		Search:        req.Search,
		ContactMethod: client.ContactMethod(req.ContactMethod),
	})
	if err != nil {
		return nil, err
	}

	responses := make([]*ClientResponse, len(clients))
	for i, c := range clients {
		responses[i] = toClientResponse(c)
	}
	return responses, nil
}

// UpdateClient applies a partial update. Changing email or phone
// re-checks per-owner uniqueness before touching the aggregate.
func (s *ApplicationService) UpdateClient(ctx context.Context, userID, clientID string, req UpdateClientRequest) (*ClientResponse, error) {
	var c *client.Client

	uow := shared.ResolveUnitOfWork(ctx, s.uowFactory)
	err := uow.Execute(ctx, func(ctx context.Context) error {
		var err error
		c, err = s.findOwned(ctx, userID, clientID)
		if err != nil {
			return err
		}

		if req.Email != nil && *req.Email != "" && *req.Email != c.Email() {
			existing, err := s.clientRepo.FindByEmail(ctx, userID, *req.Email)
			if err != nil {
				return err
			}
			if existing != nil && existing.ID() != clientID {
				return client.NewClientAlreadyExistsError("email", *req.Email)
			}
		}
		if req.PhoneNumber != nil && *req.PhoneNumber != "" && *req.PhoneNumber != c.PhoneNumber() {
			existing, err := s.clientRepo.FindByPhoneNumber(ctx, userID, *req.PhoneNumber)
			if err != nil {
				return err
			}
			if existing != nil && existing.ID() != clientID {
				return client.NewClientAlreadyExistsError("phone_number", *req.PhoneNumber)
			}
		}

		params := client.UpdateParams{
			Name:        req.Name,
			Email:       req.Email,
			PhoneNumber: req.PhoneNumber,
			Address:     req.Address,
			Notes:       req.Notes,
			IsActive:    req.IsActive,
		}
		if req.ContactMethod != nil {
			method := client.ContactMethod(*req.ContactMethod)
			params.ContactMethod = &method
		}
		if err := c.Update(params); err != nil {
			return err
		}

		if err := s.clientRepo.Save(ctx, c); err != nil {
			return err
		}
		return uow.RegisterDirty(c)
	})
	if err != nil {
		return nil, err
	}

	return toClientResponse(c), nil
}

// DeleteClient removes the client and queues the client.deleted event
// explicitly; there is no surviving aggregate to pull it from.
func (s *ApplicationService) DeleteClient(ctx context.Context, userID, clientID string) error {
	uow := shared.ResolveUnitOfWork(ctx, s.uowFactory)
	return uow.Execute(ctx, func(ctx context.Context) error {
		c, err := s.findOwned(ctx, userID, clientID)
		if err != nil {
			return err
		}

		if err := s.clientRepo.Remove(ctx, clientID); err != nil {
			return err
		}
		return uow.QueueEvent(client.NewClientDeletedEvent(c))
	})
}

func (s *ApplicationService) findOwned(ctx context.Context, userID, clientID string) (*client.Client, error) {
	c, err := s.clientRepo.FindByID(ctx, clientID)
	if err != nil {
		return nil, err
	}
	if c.UserID() != userID {
		return nil, client.NewClientNotFoundError(clientID)
	}
	return c, nil
}

func toClientResponse(c *client.Client) *ClientResponse {
	return &ClientResponse{
		ID:            c.ID(),
		Name:          c.Name(),
		Email:         c.Email(),
		PhoneNumber:   c.PhoneNumber(),
		Address:       c.Address(),
		Notes:         c.Notes(),
		ContactMethod: string(c.ContactMethod()),
		IsActive:      c.IsActive(),
		CreatedAt:     c.CreatedAt(),
		UpdatedAt:     c.UpdatedAt(),
	}
}
