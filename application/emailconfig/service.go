// Package emailconfig contains the email configuration application
// service.
package emailconfig

import (
	"context"
	"time"

	"remindly/domain/emailconfig"
	"remindly/domain/reminder"
	"remindly/domain/shared"
)

// ApplicationService coordinates email configuration use cases. The
// reminder repository is needed to block deleting a configuration that
// reminders still reference.
type ApplicationService struct {
	configRepo   emailconfig.Repository
	reminderRepo reminder.Repository
	uowFactory   shared.UnitOfWorkFactory
}

func NewApplicationService(
	configRepo emailconfig.Repository,
	reminderRepo reminder.Repository,
	uowFactory shared.UnitOfWorkFactory,
) *ApplicationService {
	return &ApplicationService{
		configRepo:   configRepo,
		reminderRepo: reminderRepo,
		uowFactory:   uowFactory,
	}
}

type CreateEmailConfigurationRequest struct {
	ConfigurationName string `json:"configuration_name" binding:"required"`
	SMTPHost          string `json:"smtp_host" binding:"required"`
	SMTPPort          int    `json:"smtp_port" binding:"required"`
	SMTPUser          string `json:"smtp_user" binding:"required"`
	SMTPPassword      string `json:"smtp_password" binding:"required"`
	EmailFrom         string `json:"email_from" binding:"required"`
}

type UpdateEmailConfigurationRequest struct {
	ConfigurationName *string `json:"configuration_name"`
	SMTPHost          *string `json:"smtp_host"`
	SMTPPort          *int    `json:"smtp_port"`
	SMTPUser          *string `json:"smtp_user"`
	SMTPPassword      *string `json:"smtp_password"`
	EmailFrom         *string `json:"email_from"`
	IsActive          *bool   `json:"is_active"`
}

// EmailConfigurationResponse never exposes the SMTP password.
type EmailConfigurationResponse struct {
	ID                string    `json:"id"`
	ConfigurationName string    `json:"configuration_name"`
	SMTPHost          string    `json:"smtp_host"`
	SMTPPort          int       `json:"smtp_port"`
	SMTPUser          string    `json:"smtp_user"`
	EmailFrom         string    `json:"email_from"`
	IsDefault         bool      `json:"is_default"`
	IsActive          bool      `json:"is_active"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

type ListEmailConfigurationsRequest struct {
	Skip       int  `form:"skip"`
	Limit      int  `form:"limit"`
	ActiveOnly bool `form:"active_only"`
}

// CreateEmailConfiguration enforces per-owner uniqueness of the
// configuration name and the from-address before creating.
func (s *ApplicationService) CreateEmailConfiguration(ctx context.Context, userID string, req CreateEmailConfigurationRequest) (*EmailConfigurationResponse, error) {
	var cfg *emailconfig.EmailConfiguration

	uow := shared.ResolveUnitOfWork(ctx, s.uowFactory)
	err := uow.Execute(ctx, func(ctx context.Context) error {
		existing, err := s.configRepo.FindByName(ctx, userID, req.ConfigurationName)
		if err != nil {
			return err
		}
		if existing != nil {
			return emailconfig.NewEmailConfigurationAlreadyExistsError("configuration_name", req.ConfigurationName)
		}
		existing, err = s.configRepo.FindByEmailFrom(ctx, userID, req.EmailFrom)
		if err != nil {
			return err
		}
		if existing != nil {
			return emailconfig.NewEmailConfigurationAlreadyExistsError("email_from", req.EmailFrom)
		}

		cfg, err = emailconfig.NewEmailConfiguration(emailconfig.CreateParams{
			UserID:            userID,
			ConfigurationName: req.ConfigurationName,
			SMTPHost:          req.SMTPHost,
			SMTPPort:          req.SMTPPort,
			SMTPUser:          req.SMTPUser,
			SMTPPassword:      req.SMTPPassword,
			EmailFrom:         req.EmailFrom,
		})
		if err != nil {
			return err
		}

		if err := s.configRepo.Save(ctx, cfg); err != nil {
			return err
		}
		return uow.RegisterNew(cfg)
	})
	if err != nil {
		return nil, err
	}

	return toConfigurationResponse(cfg), nil
}

func (s *ApplicationService) GetEmailConfiguration(ctx context.Context, userID, configID string) (*EmailConfigurationResponse, error) {
	cfg, err := s.findOwned(ctx, userID, configID)
	if err != nil {
		return nil, err
	}
	return toConfigurationResponse(cfg), nil
}

func (s *ApplicationService) ListEmailConfigurations(ctx context.Context, userID string, req ListEmailConfigurationsRequest) ([]*EmailConfigurationResponse, error) {
	configs, err := s.configRepo.FindByUserID(ctx, userID, emailconfig.ListFilter{
		Skip:       req.Skip,
		Limit:      req.Limit,
		ActiveOnly: req.ActiveOnly,
	})
	if err != nil {
		return nil, err
	}

	responses := make([]*EmailConfigurationResponse, len(configs))
	for i, cfg := range configs {
		responses[i] = toConfigurationResponse(cfg)
	}
	return responses, nil
}

func (s *ApplicationService) UpdateEmailConfiguration(ctx context.Context, userID, configID string, req UpdateEmailConfigurationRequest) (*EmailConfigurationResponse, error) {
	var cfg *emailconfig.EmailConfiguration

	uow := shared.ResolveUnitOfWork(ctx, s.uowFactory)
	err := uow.Execute(ctx, func(ctx context.Context) error {
		var err error
		cfg, err = s.findOwned(ctx, userID, configID)
		if err != nil {
			return err
		}

		if req.ConfigurationName != nil && *req.ConfigurationName != cfg.ConfigurationName() {
			existing, err := s.configRepo.FindByName(ctx, userID, *req.ConfigurationName)
			if err != nil {
				return err
			}
			if existing != nil && existing.ID() != configID {
				return emailconfig.NewEmailConfigurationAlreadyExistsError("configuration_name", *req.ConfigurationName)
			}
		}
		if req.EmailFrom != nil && *req.EmailFrom != cfg.EmailFrom() {
			existing, err := s.configRepo.FindByEmailFrom(ctx, userID, *req.EmailFrom)
			if err != nil {
				return err
			}
			if existing != nil && existing.ID() != configID {
				return emailconfig.NewEmailConfigurationAlreadyExistsError("email_from", *req.EmailFrom)
			}
		}

		if err := cfg.Update(emailconfig.UpdateParams{
			ConfigurationName: req.ConfigurationName,
			SMTPHost:          req.SMTPHost,
			SMTPPort:          req.SMTPPort,
			SMTPUser:          req.SMTPUser,
			SMTPPassword:      req.SMTPPassword,
			EmailFrom:         req.EmailFrom,
			IsActive:          req.IsActive,
		}); err != nil {
			return err
		}

		if err := s.configRepo.Save(ctx, cfg); err != nil {
			return err
		}
		return uow.RegisterDirty(cfg)
	})
	if err != nil {
		return nil, err
	}

	return toConfigurationResponse(cfg), nil
}

// SetDefaultConfiguration makes configID the owner's default. Clearing
// the previous default and flagging the new one happen in the same
// transaction, so there is never a moment with two defaults.
func (s *ApplicationService) SetDefaultConfiguration(ctx context.Context, userID, configID string) (*EmailConfigurationResponse, error) {
	var cfg *emailconfig.EmailConfiguration

	uow := shared.ResolveUnitOfWork(ctx, s.uowFactory)
	err := uow.Execute(ctx, func(ctx context.Context) error {
		var err error
		cfg, err = s.findOwned(ctx, userID, configID)
		if err != nil {
			return err
		}
		if cfg.IsDefault() {
			return nil
		}

		previous, err := s.configRepo.FindDefault(ctx, userID)
		if err != nil {
			return err
		}
		if previous != nil && previous.ID() != configID {
			previous.ClearDefault()
			if err := s.configRepo.Save(ctx, previous); err != nil {
				return err
			}
			if err := uow.RegisterDirty(previous); err != nil {
				return err
			}
		}

		cfg.MarkDefault()
		if err := s.configRepo.Save(ctx, cfg); err != nil {
			return err
		}
		return uow.RegisterDirty(cfg)
	})
	if err != nil {
		return nil, err
	}

	return toConfigurationResponse(cfg), nil
}

// DeleteEmailConfiguration refuses to delete a configuration that any
// reminder still references.
func (s *ApplicationService) DeleteEmailConfiguration(ctx context.Context, userID, configID string) error {
	uow := shared.ResolveUnitOfWork(ctx, s.uowFactory)
	return uow.Execute(ctx, func(ctx context.Context) error {
		cfg, err := s.findOwned(ctx, userID, configID)
		if err != nil {
			return err
		}

		inUse, err := s.reminderRepo.FindByEmailConfigurationID(ctx, configID)
		if err != nil {
			return err
		}
		if len(inUse) > 0 {
			return emailconfig.NewInvalidConfigurationError("id", "email configuration is used by existing reminders")
		}

		if err := s.configRepo.Remove(ctx, configID); err != nil {
			return err
		}
		return uow.QueueEvent(emailconfig.NewEmailConfigurationDeletedEvent(cfg))
	})
}

func (s *ApplicationService) findOwned(ctx context.Context, userID, configID string) (*emailconfig.EmailConfiguration, error) {
	cfg, err := s.configRepo.FindByID(ctx, configID)
	if err != nil {
		return nil, err
	}
	if cfg.UserID() != userID {
		return nil, emailconfig.NewEmailConfigurationNotFoundError(configID)
	}
	return cfg, nil
}

func toConfigurationResponse(cfg *emailconfig.EmailConfiguration) *EmailConfigurationResponse {
	return &EmailConfigurationResponse{
		ID:                cfg.ID(),
		ConfigurationName: cfg.ConfigurationName(),
		SMTPHost:          cfg.SMTPHost(),
		SMTPPort:          cfg.SMTPPort(),
		SMTPUser:          cfg.SMTPUser(),
		EmailFrom:         cfg.EmailFrom(),
		IsDefault:         cfg.IsDefault(),
		IsActive:          cfg.IsActive(),
		CreatedAt:         cfg.CreatedAt(),
		UpdatedAt:         cfg.UpdatedAt(),
	}
}
