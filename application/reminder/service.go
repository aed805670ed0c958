// Package reminder contains the reminder application service,
// including recipient management.
package reminder

import (
	"context"
	"time"

	"remindly/domain/client"
	"remindly/domain/emailconfig"
	"remindly/domain/reminder"
	"remindly/domain/shared"
)

// ApplicationService coordinates reminder use cases. Client and email
// configuration repositories are needed to validate references: a
// reminder may only point at entities owned by the same user.
type ApplicationService struct {
	reminderRepo reminder.Repository
	clientRepo   client.Repository
	configRepo   emailconfig.Repository
	uowFactory   shared.UnitOfWorkFactory
}

func NewApplicationService(
	reminderRepo reminder.Repository,
	clientRepo client.Repository,
	configRepo emailconfig.Repository,
	uowFactory shared.UnitOfWorkFactory,
) *ApplicationService {
	return &ApplicationService{
		reminderRepo: reminderRepo,
		clientRepo:   clientRepo,
		configRepo:   configRepo,
		uowFactory:   uowFactory,
	}
}

type CreateReminderRequest struct {
	Title                string    `json:"title" binding:"required"`
	Description          string    `json:"description"`
	ReminderType         string    `json:"reminder_type" binding:"required"`
	NotificationType     string    `json:"notification_type" binding:"required"`
	EmailConfigurationID string    `json:"email_configuration_id"`
	IsRecurring          bool      `json:"is_recurring"`
	RecurrencePattern    string    `json:"recurrence_pattern"`
	ReminderDate         time.Time `json:"reminder_date" binding:"required"`
}

type UpdateReminderRequest struct {
	Title                *string    `json:"title"`
	Description          *string    `json:"description"`
	ReminderType         *string    `json:"reminder_type"`
	NotificationType     *string    `json:"notification_type"`
	EmailConfigurationID *string    `json:"email_configuration_id"`
	IsRecurring          *bool      `json:"is_recurring"`
	RecurrencePattern    *string    `json:"recurrence_pattern"`
	ReminderDate         *time.Time `json:"reminder_date"`
	IsActive             *bool      `json:"is_active"`
}

type ReminderResponse struct {
	ID                   string    `json:"id"`
	Title                string    `json:"title"`
	Description          string    `json:"description"`
	ReminderType         string    `json:"reminder_type"`
	NotificationType     string    `json:"notification_type"`
	EmailConfigurationID string    `json:"email_configuration_id,omitempty"`
	IsRecurring          bool      `json:"is_recurring"`
	RecurrencePattern    string    `json:"recurrence_pattern,omitempty"`
	ReminderDate         time.Time `json:"reminder_date"`
	IsActive             bool      `json:"is_active"`
	RecipientClientIDs   []string  `json:"recipient_client_ids"`
	CreatedAt            time.Time `json:"created_at"`
	UpdatedAt            time.Time `json:"updated_at"`
}

type ListRemindersRequest struct {
	Skip       int    `form:"skip"`
	Limit      int    `form:"limit"`
	ActiveOnly bool   `form:"active_only"`
	Type       string `form:"type"`
}

// CreateReminder validates the referenced email configuration (EMAIL
// channel only) and creates the aggregate.
func (s *ApplicationService) CreateReminder(ctx context.Context, userID string, req CreateReminderRequest) (*ReminderResponse, error) {
	var rem *reminder.Reminder

	uow := shared.ResolveUnitOfWork(ctx, s.uowFactory)
	err := uow.Execute(ctx, func(ctx context.Context) error {
		if req.EmailConfigurationID != "" {
			if err := s.checkConfigurationOwned(ctx, userID, req.EmailConfigurationID); err != nil {
				return err
			}
		}

		var err error
		rem, err = reminder.NewReminder(reminder.CreateParams{
			UserID:               userID,
			Title:                req.Title,
			Description:          req.Description,
			ReminderType:         reminder.ReminderType(req.ReminderType),
			NotificationChannel:  reminder.NotificationChannel(req.NotificationType),
			EmailConfigurationID: req.EmailConfigurationID,
			IsRecurring:          req.IsRecurring,
			RecurrencePattern:    req.RecurrencePattern,
			ReminderDate:         req.ReminderDate,
		})
		if err != nil {
			return err
		}

		if err := s.reminderRepo.Save(ctx, rem); err != nil {
			return err
		}
		return uow.RegisterNew(rem)
	})
	if err != nil {
		return nil, err
	}

	return toReminderResponse(rem), nil
}

func (s *ApplicationService) GetReminder(ctx context.Context, userID, reminderID string) (*ReminderResponse, error) {
	rem, err := s.findOwned(ctx, userID, reminderID)
	if err != nil {
		return nil, err
	}
	return toReminderResponse(rem), nil
}

func (s *ApplicationService) ListReminders(ctx context.Context, userID string, req ListRemindersRequest) ([]*ReminderResponse, error) {
	reminders, err := s.reminderRepo.FindByUserID(ctx, userID, reminder.ListFilter{
		Skip:       req.Skip,
		Limit:      req.Limit,
		ActiveOnly: req.ActiveOnly,
		Type:       reminder.ReminderType(req.Type),
	})
	if err != nil {
		return nil, err
	}

	responses := make([]*ReminderResponse, len(reminders))
	for i, rem := range reminders {
		responses[i] = toReminderResponse(rem)
	}
	return responses, nil
}

func (s *ApplicationService) UpdateReminder(ctx context.Context, userID, reminderID string, req UpdateReminderRequest) (*ReminderResponse, error) {
	var rem *reminder.Reminder

	uow := shared.ResolveUnitOfWork(ctx, s.uowFactory)
	err := uow.Execute(ctx, func(ctx context.Context) error {
		var err error
		rem, err = s.findOwned(ctx, userID, reminderID)
		if err != nil {
			return err
		}

		if req.EmailConfigurationID != nil && *req.EmailConfigurationID != "" {
			if err := s.checkConfigurationOwned(ctx, userID, *req.EmailConfigurationID); err != nil {
				return err
			}
		}

		params := reminder.UpdateParams{
			Title:                req.Title,
			Description:          req.Description,
			EmailConfigurationID: req.EmailConfigurationID,
			IsRecurring:          req.IsRecurring,
			RecurrencePattern:    req.RecurrencePattern,
			ReminderDate:         req.ReminderDate,
			IsActive:             req.IsActive,
		}
		if req.ReminderType != nil {
			t := reminder.ReminderType(*req.ReminderType)
			params.ReminderType = &t
		}
		if req.NotificationType != nil {
			ch := reminder.NotificationChannel(*req.NotificationType)
			params.NotificationChannel = &ch
		}
		if err := rem.Update(params); err != nil {
			return err
		}

		if err := s.reminderRepo.Save(ctx, rem); err != nil {
			return err
		}
		return uow.RegisterDirty(rem)
	})
	if err != nil {
		return nil, err
	}

	return toReminderResponse(rem), nil
}

// DeleteReminder removes the reminder and queues the reminder.deleted
// event explicitly.
func (s *ApplicationService) DeleteReminder(ctx context.Context, userID, reminderID string) error {
	uow := shared.ResolveUnitOfWork(ctx, s.uowFactory)
	return uow.Execute(ctx, func(ctx context.Context) error {
		rem, err := s.findOwned(ctx, userID, reminderID)
		if err != nil {
			return err
		}

		if err := s.reminderRepo.Remove(ctx, reminderID); err != nil {
			return err
		}
		return uow.QueueEvent(reminder.NewReminderDeletedEvent(rem))
	})
}

// AddRecipient links a client owned by the same user to the reminder.
// The aggregate records the client.added_to_reminder event.
func (s *ApplicationService) AddRecipient(ctx context.Context, userID, reminderID, clientID string) (*ReminderResponse, error) {
	var rem *reminder.Reminder

	uow := shared.ResolveUnitOfWork(ctx, s.uowFactory)
	err := uow.Execute(ctx, func(ctx context.Context) error {
		var err error
		rem, err = s.findOwned(ctx, userID, reminderID)
		if err != nil {
			return err
		}

		c, err := s.clientRepo.FindByID(ctx, clientID)
		if err != nil {
			return err
		}
		if c.UserID() != userID {
			return client.NewClientNotFoundError(clientID)
		}

		if err := rem.AddRecipient(clientID); err != nil {
			return err
		}

		if err := s.reminderRepo.Save(ctx, rem); err != nil {
			return err
		}
		return uow.RegisterDirty(rem)
	})
	if err != nil {
		return nil, err
	}

	return toReminderResponse(rem), nil
}

func (s *ApplicationService) RemoveRecipient(ctx context.Context, userID, reminderID, clientID string) (*ReminderResponse, error) {
	var rem *reminder.Reminder

	uow := shared.ResolveUnitOfWork(ctx, s.uowFactory)
	err := uow.Execute(ctx, func(ctx context.Context) error {
		var err error
		rem, err = s.findOwned(ctx, userID, reminderID)
		if err != nil {
			return err
		}

		if err := rem.RemoveRecipient(clientID); err != nil {
			return err
		}

		if err := s.reminderRepo.Save(ctx, rem); err != nil {
			return err
		}
		return uow.RegisterDirty(rem)
	})
	if err != nil {
		return nil, err
	}

	return toReminderResponse(rem), nil
}

func (s *ApplicationService) checkConfigurationOwned(ctx context.Context, userID, configID string) error {
	cfg, err := s.configRepo.FindByID(ctx, configID)
	if err != nil {
		return err
	}
	if cfg.UserID() != userID {
		return emailconfig.NewEmailConfigurationNotFoundError(configID)
	}
	return nil
}

func (s *ApplicationService) findOwned(ctx context.Context, userID, reminderID string) (*reminder.Reminder, error) {
	rem, err := s.reminderRepo.FindByID(ctx, reminderID)
	if err != nil {
		return nil, err
	}
	if rem.UserID() != userID {
		return nil, reminder.NewReminderNotFoundError(reminderID)
	}
	return rem, nil
}

func toReminderResponse(rem *reminder.Reminder) *ReminderResponse {
	return &ReminderResponse{
		ID:                   rem.ID(),
		Title:                rem.Title(),
		Description:          rem.Description(),
		ReminderType:         string(rem.ReminderType()),
		NotificationType:     string(rem.NotificationChannel()),
		EmailConfigurationID: rem.EmailConfigurationID(),
		IsRecurring:          rem.IsRecurring(),
		RecurrencePattern:    rem.RecurrencePattern(),
		ReminderDate:         rem.ReminderDate(),
		IsActive:             rem.IsActive(),
		RecipientClientIDs:   rem.RecipientClientIDs(),
		CreatedAt:            rem.CreatedAt(),
		UpdatedAt:            rem.UpdatedAt(),
	}
}
