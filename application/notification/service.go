// Package notification contains the notification application service.
package notification

import (
	"context"
	"time"

	"remindly/domain/client"
	"remindly/domain/notification"
	"remindly/domain/reminder"
	"remindly/domain/shared"
)

// ApplicationService coordinates notification use cases. Notifications
// are produced from a reminder's recipient list and then tracked
// through their status transitions.
type ApplicationService struct {
	notificationRepo notification.Repository
	reminderRepo     reminder.Repository
	clientRepo       client.Repository
	uowFactory       shared.UnitOfWorkFactory
}

func NewApplicationService(
	notificationRepo notification.Repository,
	reminderRepo reminder.Repository,
	clientRepo client.Repository,
	uowFactory shared.UnitOfWorkFactory,
) *ApplicationService {
	return &ApplicationService{
		notificationRepo: notificationRepo,
		reminderRepo:     reminderRepo,
		clientRepo:       clientRepo,
		uowFactory:       uowFactory,
	}
}

type NotificationResponse struct {
	ID               string     `json:"id"`
	ReminderID       string     `json:"reminder_id"`
	ClientID         string     `json:"client_id"`
	NotificationType string     `json:"notification_type"`
	Message          string     `json:"message"`
	Status           string     `json:"status"`
	SentAt           *time.Time `json:"sent_at,omitempty"`
	ErrorMessage     string     `json:"error_message,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

type ListNotificationsRequest struct {
	Skip       int    `form:"skip"`
	Limit      int    `form:"limit"`
	ReminderID string `form:"reminder_id"`
	ClientID   string `form:"client_id"`
	Status     string `form:"status"`
}

type GenerateNotificationsRequest struct {
	ReminderID string `json:"reminder_id" binding:"required"`
	Message    string `json:"message"`
}

// GenerateForReminder creates one PENDING notification per recipient of
// the reminder, all in one transaction. Each notification registers its
// own created event.
func (s *ApplicationService) GenerateForReminder(ctx context.Context, userID string, req GenerateNotificationsRequest) ([]*NotificationResponse, error) {
	var created []*notification.Notification

	uow := shared.ResolveUnitOfWork(ctx, s.uowFactory)
	err := uow.Execute(ctx, func(ctx context.Context) error {
		rem, err := s.reminderRepo.FindByID(ctx, req.ReminderID)
		if err != nil {
			return err
		}
		if rem.UserID() != userID {
			return reminder.NewReminderNotFoundError(req.ReminderID)
		}

		message := req.Message
		if message == "" {
			message = rem.Title()
		}

		for _, clientID := range rem.RecipientClientIDs() {
			n, err := notification.NewNotification(userID, rem.ID(), clientID,
				notification.Channel(rem.NotificationChannel()), message)
			if err != nil {
				return err
			}
			if err := s.notificationRepo.Save(ctx, n); err != nil {
				return err
			}
			if err := uow.RegisterNew(n); err != nil {
				return err
			}
			created = append(created, n)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	responses := make([]*NotificationResponse, len(created))
	for i, n := range created {
		responses[i] = toNotificationResponse(n)
	}
	return responses, nil
}

func (s *ApplicationService) GetNotification(ctx context.Context, userID, notificationID string) (*NotificationResponse, error) {
	n, err := s.findOwned(ctx, userID, notificationID)
	if err != nil {
		return nil, err
	}
	return toNotificationResponse(n), nil
}

func (s *ApplicationService) ListNotifications(ctx context.Context, userID string, req ListNotificationsRequest) ([]*NotificationResponse, error) {
	notifications, err := s.notificationRepo.FindByUserID(ctx, userID, notification.ListFilter{
		Skip:       req.Skip,
		Limit:      req.Limit,
		ReminderID: req.ReminderID,
		ClientID:   req.ClientID,
		Status:     notification.Status(req.Status),
	})
	if err != nil {
		return nil, err
	}

	responses := make([]*NotificationResponse, len(notifications))
	for i, n := range notifications {
		responses[i] = toNotificationResponse(n)
	}
	return responses, nil
}

// MarkSent transitions PENDING -> SENT and emits notification.sent.
func (s *ApplicationService) MarkSent(ctx context.Context, userID, notificationID string) (*NotificationResponse, error) {
	return s.transition(ctx, userID, notificationID, func(n *notification.Notification) error {
		return n.MarkSent()
	})
}

// MarkFailed transitions PENDING -> FAILED keeping the failure reason.
func (s *ApplicationService) MarkFailed(ctx context.Context, userID, notificationID, errorMessage string) (*NotificationResponse, error) {
	return s.transition(ctx, userID, notificationID, func(n *notification.Notification) error {
		return n.MarkFailed(errorMessage)
	})
}

// Cancel transitions PENDING -> CANCELLED.
func (s *ApplicationService) Cancel(ctx context.Context, userID, notificationID string) (*NotificationResponse, error) {
	return s.transition(ctx, userID, notificationID, func(n *notification.Notification) error {
		return n.Cancel()
	})
}

func (s *ApplicationService) transition(ctx context.Context, userID, notificationID string, apply func(*notification.Notification) error) (*NotificationResponse, error) {
	var n *notification.Notification

	uow := shared.ResolveUnitOfWork(ctx, s.uowFactory)
	err := uow.Execute(ctx, func(ctx context.Context) error {
		var err error
		n, err = s.findOwned(ctx, userID, notificationID)
		if err != nil {
			return err
		}

		if err := apply(n); err != nil {
			return err
		}

		if err := s.notificationRepo.Save(ctx, n); err != nil {
			return err
		}
		return uow.RegisterDirty(n)
	})
	if err != nil {
		return nil, err
	}

	return toNotificationResponse(n), nil
}

func (s *ApplicationService) findOwned(ctx context.Context, userID, notificationID string) (*notification.Notification, error) {
	n, err := s.notificationRepo.FindByID(ctx, notificationID)
	if err != nil {
		return nil, err
	}
	if n.UserID() != userID {
		return nil, notification.NewNotificationNotFoundError(notificationID)
	}
	return n, nil
}

func toNotificationResponse(n *notification.Notification) *NotificationResponse {
	var sentAt *time.Time
	if !n.SentAt().IsZero() {
		t := n.SentAt()
		sentAt = &t
	}
	return &NotificationResponse{
		ID:               n.ID(),
		ReminderID:       n.ReminderID(),
		ClientID:         n.ClientID(),
		NotificationType: string(n.Channel()),
		Message:          n.Message(),
		Status:           string(n.Status()),
		SentAt:           sentAt,
		ErrorMessage:     n.ErrorMessage(),
		CreatedAt:        n.CreatedAt(),
		UpdatedAt:        n.UpdatedAt(),
	}
}
