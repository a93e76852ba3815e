package service

import (
	"context"
	"errors"
	"sync"

	"gorm.io/gorm"

	"aimaster-store/internal/dto"
	"aimaster-store/internal/model"
)

const defaultAppName = "Ai Master"

// SettingsService holds the branding singleton. It is backed by durable
// local storage in both modes and never synced to the remote backend.
// Updates are broadcast so long-lived callers can refresh immediately.
type SettingsService interface {
	Get(ctx context.Context) (*model.Settings, error)
	// Update merges non-nil fields over the stored value and returns the
	// result.
	Update(ctx context.Context, req *dto.SettingsRequest) (*model.Settings, error)
	// Subscribe returns a channel receiving every settings change. Slow
	// subscribers miss updates rather than block the writer.
	Subscribe() <-chan model.Settings
}

type settingsServiceImpl struct {
	db *gorm.DB

	mu   sync.Mutex
	subs []chan model.Settings
}

func NewSettingsService(db *gorm.DB) SettingsService {
	return &settingsServiceImpl{db: db}
}

func (s *settingsServiceImpl) Get(ctx context.Context) (*model.Settings, error) {
	var settings model.Settings
	err := s.db.WithContext(ctx).First(&settings).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &model.Settings{AppName: defaultAppName}, nil
	}
	if err != nil {
		return nil, err
	}
	return &settings, nil
}

func (s *settingsServiceImpl) Update(ctx context.Context, req *dto.SettingsRequest) (*model.Settings, error) {
	current, err := s.Get(ctx)
	if err != nil {
		return nil, err
	}

	if req.AppName != nil {
		current.AppName = *req.AppName
	}
	if req.IconURL != nil {
		current.IconURL = *req.IconURL
	}
	current.ID = 1

	if err := s.db.WithContext(ctx).Save(current).Error; err != nil {
		return nil, err
	}

	s.broadcast(*current)
	return current, nil
}

func (s *settingsServiceImpl) Subscribe() <-chan model.Settings {
	ch := make(chan model.Settings, 1)
	s.mu.Lock()
	s.subs = append(s.subs, ch)
	s.mu.Unlock()
	return ch
}

func (s *settingsServiceImpl) broadcast(settings model.Settings) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, ch := range s.subs {
		select {
		case ch <- settings:
		default:
		}
	}
}
