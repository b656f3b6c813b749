package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	apperrors "zen/internal/errors"
	"zen/internal/model"
	"zen/internal/store"
)

// ConfigService owns timer-configuration CRUD. The system "default" config
// is read-only and is always first in a user's listing.
type ConfigService struct {
	store  store.Store
	logger *zap.Logger
}

type CreateConfigInput struct {
	Name                 string
	FocusMinutes         int
	ShortBreakMinutes    int
	LongBreakMinutes     int
	SessionsPerLongBreak int
}

// ConfigPatch carries the fields of a partial update; nil means "leave as is".
type ConfigPatch struct {
	Name                 *string `json:"name"`
	FocusMinutes         *int    `json:"focusMinutes"`
	ShortBreakMinutes    *int    `json:"shortBreakMinutes"`
	LongBreakMinutes     *int    `json:"longBreakMinutes"`
	SessionsPerLongBreak *int    `json:"sessionsPerLongBreak"`
}

func NewConfigService(st store.Store, logger *zap.Logger) *ConfigService {
	return &ConfigService{store: st, logger: logger}
}

// List returns the default config followed by the user's own configs in
// creation order.
func (s *ConfigService) List(ctx context.Context, user string) ([]model.Config, *apperrors.APIError) {
	configs := []model.Config{s.defaultConfig(ctx)}

	rawConfigs, err := s.store.QueryPrefix(ctx, user, store.ConfigPrefix)
	if err != nil {
		s.logger.Error("query configs", zap.String("user", user), zap.Error(err))
		return nil, apperrors.Internal("Failed to fetch configs")
	}

	for _, raw := range rawConfigs {
		var cfg model.Config
		if err := json.Unmarshal(raw, &cfg); err != nil {
			s.logger.Error("decode config", zap.String("user", user), zap.Error(err))
			return nil, apperrors.Internal("Failed to fetch configs")
		}
		configs = append(configs, cfg)
	}
	return configs, nil
}

func (s *ConfigService) Create(ctx context.Context, user string, input CreateConfigInput) (*model.Config, *apperrors.APIError) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, apperrors.BadRequest("missing_name", "Missing name")
	}

	now := model.NowMillis()
	cfg := model.Config{
		// Millisecond granularity is assumed unique per user; two creates
		// in the same millisecond would collide.
		ID:                   fmt.Sprintf("%s-%d", user, now),
		Name:                 input.Name,
		FocusMinutes:         input.FocusMinutes,
		ShortBreakMinutes:    input.ShortBreakMinutes,
		LongBreakMinutes:     input.LongBreakMinutes,
		SessionsPerLongBreak: input.SessionsPerLongBreak,
		Owner:                user,
		CreatedAt:            now,
	}

	if err := s.putConfig(ctx, user, &cfg); err != nil {
		return nil, apperrors.Internal("Failed to create config")
	}
	return &cfg, nil
}

func (s *ConfigService) Update(ctx context.Context, user, id string, patch ConfigPatch) (*model.Config, *apperrors.APIError) {
	if id == model.DefaultConfigID {
		return nil, apperrors.Forbidden("Default config cannot be modified")
	}

	raw, err := s.store.Get(ctx, user, store.ConfigKey(id))
	if errors.Is(err, store.ErrNotFound) {
		return nil, apperrors.NotFound("config_not_found", "Not found")
	}
	if err != nil {
		s.logger.Error("get config", zap.String("user", user), zap.String("config", id), zap.Error(err))
		return nil, apperrors.Internal("Failed to update config")
	}

	var cfg model.Config
	if err := json.Unmarshal(raw, &cfg); err != nil {
		s.logger.Error("decode config", zap.String("user", user), zap.String("config", id), zap.Error(err))
		return nil, apperrors.Internal("Failed to update config")
	}

	// Shallow merge, last write wins per field.
	if patch.Name != nil {
		cfg.Name = *patch.Name
	}
	if patch.FocusMinutes != nil {
		cfg.FocusMinutes = *patch.FocusMinutes
	}
	if patch.ShortBreakMinutes != nil {
		cfg.ShortBreakMinutes = *patch.ShortBreakMinutes
	}
	if patch.LongBreakMinutes != nil {
		cfg.LongBreakMinutes = *patch.LongBreakMinutes
	}
	if patch.SessionsPerLongBreak != nil {
		cfg.SessionsPerLongBreak = *patch.SessionsPerLongBreak
	}

	if err := s.putConfig(ctx, user, &cfg); err != nil {
		return nil, apperrors.Internal("Failed to update config")
	}
	return &cfg, nil
}

// Delete removes an owned config. Sessions referencing it keep their now
// dangling configId.
func (s *ConfigService) Delete(ctx context.Context, user, id string) *apperrors.APIError {
	if id == model.DefaultConfigID {
		return apperrors.Forbidden("Default config cannot be deleted")
	}

	err := s.store.Delete(ctx, user, store.ConfigKey(id))
	if errors.Is(err, store.ErrNotFound) {
		return apperrors.NotFound("config_not_found", "Not found")
	}
	if err != nil {
		s.logger.Error("delete config", zap.String("user", user), zap.String("config", id), zap.Error(err))
		return apperrors.Internal("Failed to delete config")
	}
	return nil
}

// defaultConfig prefers a stored system record and falls back to the built-in
// literal when the store has none or is unavailable.
func (s *ConfigService) defaultConfig(ctx context.Context) model.Config {
	raw, err := s.store.Get(ctx, model.SystemOwner, store.ConfigKey(model.DefaultConfigID))
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			s.logger.Warn("get default config", zap.Error(err))
		}
		return model.DefaultConfig()
	}

	var cfg model.Config
	if err := json.Unmarshal(raw, &cfg); err != nil {
		s.logger.Warn("decode default config", zap.Error(err))
		return model.DefaultConfig()
	}
	return cfg
}

func (s *ConfigService) putConfig(ctx context.Context, user string, cfg *model.Config) error {
	raw, err := json.Marshal(cfg)
	if err != nil {
		s.logger.Error("encode config", zap.String("user", user), zap.Error(err))
		return err
	}
	if err := s.store.Put(ctx, user, store.ConfigKey(cfg.ID), raw); err != nil {
		s.logger.Error("put config", zap.String("user", user), zap.String("config", cfg.ID), zap.Error(err))
		return err
	}
	return nil
}
