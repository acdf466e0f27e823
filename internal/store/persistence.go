package store

import (
	"context"
	"encoding/json"
	"fmt"

	"storefront/internal/models"
	"storefront/internal/util"

	"go.uber.org/zap"
)

// Record names, one per persisted collection
const (
	RecordProducts    = "products"
	RecordCurrentUser = "currentUser"
	RecordTemplates   = "whatsappTemplates"
	RecordSettings    = "settings"
)

// Backend is a durable string key-value store
type Backend interface {
	GetRecord(ctx context.Context, name string) (string, bool, error)
	PutRecord(ctx context.Context, name, value string) error
}

// Persistence mirrors the four persisted collections to a Backend.
// Orders and notifications are deliberately absent.
type Persistence struct {
	backend         Backend
	defaultSettings models.Settings
	logger          *zap.Logger
}

// NewPersistence creates a persistence adapter. defaultSettings is used
// when no settings record exists.
func NewPersistence(backend Backend, defaultSettings models.Settings) *Persistence {
	return &Persistence{
		backend:         backend,
		defaultSettings: defaultSettings,
		logger:          util.GetLogger(),
	}
}

// LoadProducts returns the stored catalog or the default one
func (p *Persistence) LoadProducts(ctx context.Context) ([]models.Product, error) {
	return load(ctx, p, RecordProducts, models.DefaultProducts())
}

// SaveProducts writes the whole catalog
func (p *Persistence) SaveProducts(ctx context.Context, products []models.Product) error {
	return p.save(ctx, RecordProducts, products)
}

// LoadUser returns the stored profile or a demo user holding welcomeCredits
func (p *Persistence) LoadUser(ctx context.Context, welcomeCredits int) (models.User, error) {
	return load(ctx, p, RecordCurrentUser, models.DefaultUser(welcomeCredits))
}

// SaveUser writes the profile
func (p *Persistence) SaveUser(ctx context.Context, user models.User) error {
	return p.save(ctx, RecordCurrentUser, user)
}

// LoadTemplates returns the stored templates or the default set
func (p *Persistence) LoadTemplates(ctx context.Context) ([]models.WhatsAppTemplate, error) {
	return load(ctx, p, RecordTemplates, models.DefaultTemplates())
}

// SaveTemplates writes all templates
func (p *Persistence) SaveTemplates(ctx context.Context, templates []models.WhatsAppTemplate) error {
	return p.save(ctx, RecordTemplates, templates)
}

// LoadSettings returns the stored settings or the configured defaults
func (p *Persistence) LoadSettings(ctx context.Context) (models.Settings, error) {
	return load(ctx, p, RecordSettings, p.defaultSettings)
}

// SaveSettings writes the settings
func (p *Persistence) SaveSettings(ctx context.Context, settings models.Settings) error {
	return p.save(ctx, RecordSettings, settings)
}

// load returns def when the record is absent or unparsable. Backend
// failures are returned as errors.
func load[T any](ctx context.Context, p *Persistence, name string, def T) (T, error) {
	raw, ok, err := p.backend.GetRecord(ctx, name)
	if err != nil {
		var zero T
		return zero, fmt.Errorf("failed to load %s: %w", name, err)
	}
	if !ok {
		p.logger.Debug("Record absent, using default", zap.String("record", name))
		return def, nil
	}

	var value T
	if err := json.Unmarshal([]byte(raw), &value); err != nil {
		p.logger.Warn("Record unparsable, using default",
			zap.String("record", name),
			zap.Error(err))
		return def, nil
	}
	return value, nil
}

func (p *Persistence) save(ctx context.Context, name string, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", name, err)
	}

	if err := p.backend.PutRecord(ctx, name, string(data)); err != nil {
		util.RecordWritesTotal.WithLabelValues(name, "error").Inc()
		return err
	}

	util.RecordWritesTotal.WithLabelValues(name, "ok").Inc()
	return nil
}
