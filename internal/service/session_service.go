package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"go.uber.org/zap"

	apperrors "zen/internal/errors"
	"zen/internal/model"
	"zen/internal/store"
)

// SessionService creates session records and applies their two mutations:
// distraction append and focus-input overwrite. Mutations rewrite the whole
// record, so a concurrent append to the same session can be lost.
type SessionService struct {
	store  store.Store
	logger *zap.Logger
}

func NewSessionService(st store.Store, logger *zap.Logger) *SessionService {
	return &SessionService{store: st, logger: logger}
}

// Start creates a fresh session. The configId is not checked against
// existing configs.
func (s *SessionService) Start(ctx context.Context, user, configID string) (*model.Session, *apperrors.APIError) {
	if configID == "" {
		configID = model.DefaultConfigID
	}

	now := model.NowMillis()
	session := model.Session{
		ID:           fmt.Sprintf("s-%d", now),
		ConfigID:     configID,
		StartedAt:    now,
		Distractions: []model.Distraction{},
		FocusInput:   "",
	}

	if err := s.putSession(ctx, user, &session); err != nil {
		return nil, apperrors.Internal("Failed to start session")
	}
	return &session, nil
}

func (s *SessionService) AppendDistraction(ctx context.Context, user, sessionID, text string) (*model.Session, *apperrors.APIError) {
	session, apiErr := s.getSession(ctx, user, sessionID)
	if apiErr != nil {
		return nil, apiErr
	}

	session.Distractions = append(session.Distractions, model.Distraction{
		Text: text,
		At:   model.NowMillis(),
	})

	if err := s.putSession(ctx, user, session); err != nil {
		return nil, apperrors.Internal("Failed to add distraction")
	}
	return session, nil
}

func (s *SessionService) SetFocusInput(ctx context.Context, user, sessionID, input string) (*model.Session, *apperrors.APIError) {
	session, apiErr := s.getSession(ctx, user, sessionID)
	if apiErr != nil {
		return nil, apiErr
	}

	session.FocusInput = input

	if err := s.putSession(ctx, user, session); err != nil {
		return nil, apperrors.Internal("Failed to save input")
	}
	return session, nil
}

func (s *SessionService) getSession(ctx context.Context, user, sessionID string) (*model.Session, *apperrors.APIError) {
	raw, err := s.store.Get(ctx, user, store.SessionKey(sessionID))
	if errors.Is(err, store.ErrNotFound) {
		return nil, apperrors.NotFound("session_not_found", "Session not found")
	}
	if err != nil {
		s.logger.Error("get session", zap.String("user", user), zap.String("session", sessionID), zap.Error(err))
		return nil, apperrors.Internal("Failed to read session")
	}

	var session model.Session
	if err := json.Unmarshal(raw, &session); err != nil {
		s.logger.Error("decode session", zap.String("user", user), zap.String("session", sessionID), zap.Error(err))
		return nil, apperrors.Internal("Failed to read session")
	}
	return &session, nil
}

func (s *SessionService) putSession(ctx context.Context, user string, session *model.Session) error {
	raw, err := json.Marshal(session)
	if err != nil {
		s.logger.Error("encode session", zap.String("user", user), zap.Error(err))
		return err
	}
	if err := s.store.Put(ctx, user, store.SessionKey(session.ID), raw); err != nil {
		s.logger.Error("put session", zap.String("user", user), zap.String("session", session.ID), zap.Error(err))
		return err
	}
	return nil
}
