package services

import (
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"mistica/internal/apperr"
	"mistica/internal/models"
	"mistica/internal/store"
)

// ChatService backs the live-chat widget: sessions identified by an opaque
// uuid token and a plain message log, polled over REST.
type ChatService struct {
	chats store.ChatRepository
}

func NewChatService(chats store.ChatRepository) *ChatService {
	return &ChatService{chats: chats}
}

func (s *ChatService) Open(userID int64, subject string) models.ChatSession {
	session := s.chats.CreateChatSession(models.ChatSession{
		Token:   uuid.NewString(),
		UserID:  userID,
		Subject: subject,
	})
	zap.L().Info("chat session opened", zap.Int64("session_id", session.ID), zap.Int64("user_id", userID))
	return session
}

func (s *ChatService) Sessions(userID int64) []models.ChatSession {
	return s.chats.ChatSessions(userID)
}

func (s *ChatService) Session(id int64) (models.ChatSession, error) {
	session, ok := s.chats.ChatSession(id)
	if !ok {
		return models.ChatSession{}, apperr.NotFound("chat session %d not found", id)
	}
	return session, nil
}

func (s *ChatService) Post(sessionID int64, sender models.ChatSender, body string) (models.ChatMessage, error) {
	session, err := s.Session(sessionID)
	if err != nil {
		return models.ChatMessage{}, err
	}
	if session.Status == models.ChatStatusClosed {
		return models.ChatMessage{}, apperr.Validation("chat session %d is closed", sessionID)
	}
	return s.chats.AddChatMessage(models.ChatMessage{
		SessionID: sessionID,
		Sender:    sender,
		Body:      body,
	})
}

func (s *ChatService) Messages(sessionID int64) ([]models.ChatMessage, error) {
	if _, err := s.Session(sessionID); err != nil {
		return nil, err
	}
	return s.chats.ChatMessages(sessionID), nil
}

func (s *ChatService) Close(sessionID int64) error {
	return s.chats.CloseChatSession(sessionID)
}

// CloseIdleSweep closes open sessions with no activity since the cutoff and
// returns how many it closed.
func (s *ChatService) CloseIdleSweep(idleFor time.Duration, now time.Time) int {
	cutoff := now.Add(-idleFor)
	closed := 0
	for _, session := range s.chats.ChatSessions(0) {
		if session.Status != models.ChatStatusOpen || session.UpdatedAt.After(cutoff) {
			continue
		}
		if err := s.chats.CloseChatSession(session.ID); err == nil {
			closed++
		}
	}
	return closed
}
