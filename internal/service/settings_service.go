package service

import (
	"context"
	"fmt"

	apperrors "storefront/internal/errors"
	"storefront/internal/models"
	"storefront/internal/util"
	"storefront/internal/whatsapp"

	"go.uber.org/zap"
)

// SettingsService manages templates, gateway settings and the user profile
type SettingsService struct {
	state     *State
	messenger messenger
	logger    *zap.Logger
}

// NewSettingsService creates a new settings service
func NewSettingsService(state *State, senders SenderFactory) *SettingsService {
	return &SettingsService{
		state:     state,
		messenger: messenger{state: state, senders: senders},
		logger:    util.GetLogger(),
	}
}

// UpdateTemplate replaces the title and message of the template with the
// same id. Id and type never change.
func (s *SettingsService) UpdateTemplate(ctx context.Context, t models.WhatsAppTemplate) (models.WhatsAppTemplate, error) {
	ctx, span := util.StartSpan(ctx, "SettingsService.UpdateTemplate")
	defer span.End()

	s.state.mu.Lock()
	defer s.state.mu.Unlock()

	templates := make([]models.WhatsAppTemplate, len(s.state.templates))
	copy(templates, s.state.templates)

	idx := -1
	for i := range templates {
		if templates[i].ID == t.ID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return models.WhatsAppTemplate{}, apperrors.NewNotFoundError(fmt.Sprintf("template not found: %s", t.ID))
	}

	templates[idx].Title = t.Title
	templates[idx].Message = t.Message

	if err := s.state.replaceTemplates(ctx, templates); err != nil {
		return templates[idx], err
	}

	s.logger.Info("Template updated", zap.String("template_id", t.ID))
	return templates[idx], nil
}

// UpdateSettings replaces the gateway settings
func (s *SettingsService) UpdateSettings(ctx context.Context, settings models.Settings) error {
	ctx, span := util.StartSpan(ctx, "SettingsService.UpdateSettings")
	defer span.End()

	if err := ValidateSettings(settings); err != nil {
		return err
	}

	s.state.mu.Lock()
	defer s.state.mu.Unlock()

	if err := s.state.replaceSettings(ctx, settings); err != nil {
		return err
	}

	s.logger.Info("Settings updated",
		zap.Bool("api_key_set", settings.WhatsAppAPIKey != ""),
		zap.String("sender_phone", settings.SenderPhone))
	return nil
}

// UpdateProfile changes the user's contact details. Credits are untouched.
func (s *SettingsService) UpdateProfile(ctx context.Context, name, phone, email string) (models.User, error) {
	ctx, span := util.StartSpan(ctx, "SettingsService.UpdateProfile")
	defer span.End()

	if phone != "" && !whatsapp.ValidatePhoneNumber(phone) {
		return models.User{}, apperrors.NewValidationError("invalid profile",
			apperrors.ValidationDetail{Field: "phone", Message: "invalid phone number format"})
	}

	s.state.mu.Lock()
	defer s.state.mu.Unlock()

	user := s.state.user
	user.Name = name
	user.Phone = phone
	user.Email = email

	if err := s.state.replaceUser(ctx, user); err != nil {
		return user, err
	}
	return user, nil
}

// SendTestMessage delivers an arbitrary message with the current settings
func (s *SettingsService) SendTestMessage(ctx context.Context, phone, message string) error {
	ctx, span := util.StartSpan(ctx, "SettingsService.SendTestMessage")
	defer span.End()

	if !whatsapp.ValidatePhoneNumber(phone) {
		return apperrors.NewValidationError("invalid test message",
			apperrors.ValidationDetail{Field: "to", Message: "invalid phone number format"})
	}
	return s.messenger.send(ctx, phone, message)
}

// ValidateSettings checks sender phone format and the welcome credit floor
func ValidateSettings(settings models.Settings) error {
	var details []apperrors.ValidationDetail
	if settings.SenderPhone != "" && !whatsapp.ValidatePhoneNumber(settings.SenderPhone) {
		details = append(details, apperrors.ValidationDetail{Field: "senderPhone", Message: "invalid phone number format"})
	}
	if settings.WelcomeCredits < 0 {
		details = append(details, apperrors.ValidationDetail{Field: "welcomeCredits", Message: "must not be negative"})
	}
	if len(details) > 0 {
		return apperrors.NewValidationError("invalid settings", details...)
	}
	return nil
}
