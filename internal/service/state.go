package service

import (
	"context"
	"fmt"
	"sync"

	"storefront/internal/models"
	"storefront/internal/store"
	"storefront/internal/util"

	"go.uber.org/zap"
)

// State holds the session's collections. Every mutation replaces a whole
// collection with a new snapshot, so slices handed out by the read methods
// are never modified afterwards.
//
// Products, templates, settings and the current user are written through to
// persistence while the write lock is held; orders live only in memory.
type State struct {
	mu          sync.RWMutex
	products    []models.Product
	orders      []models.Order
	templates   []models.WhatsAppTemplate
	settings    models.Settings
	user        models.User
	persistence *store.Persistence
	logger      *zap.Logger
}

// LoadState reads the persisted collections. Orders always start empty.
func LoadState(ctx context.Context, persistence *store.Persistence) (*State, error) {
	ctx, span := util.StartSpan(ctx, "State.Load")
	defer span.End()

	products, err := persistence.LoadProducts(ctx)
	if err != nil {
		return nil, err
	}

	templates, err := persistence.LoadTemplates(ctx)
	if err != nil {
		return nil, err
	}

	settings, err := persistence.LoadSettings(ctx)
	if err != nil {
		return nil, err
	}

	user, err := persistence.LoadUser(ctx, settings.WelcomeCredits)
	if err != nil {
		return nil, err
	}

	s := &State{
		products:    products,
		orders:      []models.Order{},
		templates:   templates,
		settings:    settings,
		user:        user,
		persistence: persistence,
		logger:      util.GetLogger(),
	}

	s.logger.Info("State loaded",
		zap.Int("products", len(products)),
		zap.Int("templates", len(templates)),
		zap.Int("credits", user.Credits))
	return s, nil
}

// Products returns the catalog
func (s *State) Products() []models.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.products
}

// Orders returns all orders, most recent first
func (s *State) Orders() []models.Order {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.orders
}

// Templates returns the message templates
func (s *State) Templates() []models.WhatsAppTemplate {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.templates
}

// Settings returns the gateway settings
func (s *State) Settings() models.Settings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.settings
}

// CurrentUser returns the user profile
func (s *State) CurrentUser() models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user
}

func (s *State) product(id string) (models.Product, bool) {
	for _, p := range s.Products() {
		if p.ID == id {
			return p, true
		}
	}
	return models.Product{}, false
}

func (s *State) template(templateType string) (models.WhatsAppTemplate, bool) {
	for _, t := range s.Templates() {
		if t.Type == templateType {
			return t, true
		}
	}
	return models.WhatsAppTemplate{}, false
}

// replaceProducts must be called with the write lock held
func (s *State) replaceProducts(ctx context.Context, products []models.Product) error {
	s.products = products
	if err := s.persistence.SaveProducts(ctx, products); err != nil {
		return fmt.Errorf("failed to persist products: %w", err)
	}
	return nil
}

// replaceTemplates must be called with the write lock held
func (s *State) replaceTemplates(ctx context.Context, templates []models.WhatsAppTemplate) error {
	s.templates = templates
	if err := s.persistence.SaveTemplates(ctx, templates); err != nil {
		return fmt.Errorf("failed to persist templates: %w", err)
	}
	return nil
}

// replaceSettings must be called with the write lock held
func (s *State) replaceSettings(ctx context.Context, settings models.Settings) error {
	s.settings = settings
	if err := s.persistence.SaveSettings(ctx, settings); err != nil {
		return fmt.Errorf("failed to persist settings: %w", err)
	}
	return nil
}

// replaceUser must be called with the write lock held
func (s *State) replaceUser(ctx context.Context, user models.User) error {
	s.user = user
	if err := s.persistence.SaveUser(ctx, user); err != nil {
		return fmt.Errorf("failed to persist user: %w", err)
	}
	return nil
}
