package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mistica/internal/apperr"
	"mistica/internal/models"
	"mistica/internal/store"
)

func TestChat_OpenAndPost(t *testing.T) {
	svc := NewChatService(store.NewMemory())

	session := svc.Open(3, "¿Dónde está mi pedido?")
	assert.NotEmpty(t, session.Token)
	assert.Equal(t, models.ChatStatusOpen, session.Status)

	_, err := svc.Post(session.ID, models.ChatSenderVisitor, "Hola")
	require.NoError(t, err)
	_, err = svc.Post(session.ID, models.ChatSenderAgent, "Hola, ¿en qué puedo ayudar?")
	require.NoError(t, err)

	messages, err := svc.Messages(session.ID)
	require.NoError(t, err)
	require.Len(t, messages, 2)
	assert.Equal(t, models.ChatSenderVisitor, messages[0].Sender)
}

func TestChat_PostOnClosedSession(t *testing.T) {
	svc := NewChatService(store.NewMemory())
	session := svc.Open(0, "")
	require.NoError(t, svc.Close(session.ID))

	_, err := svc.Post(session.ID, models.ChatSenderVisitor, "¿Hola?")
	assert.True(t, apperr.IsValidation(err))
}

func TestChat_UnknownSession(t *testing.T) {
	svc := NewChatService(store.NewMemory())

	_, err := svc.Messages(404)
	assert.True(t, apperr.IsNotFound(err))
}

func TestChat_CloseIdleSweep(t *testing.T) {
	mem := store.NewMemory()
	svc := NewChatService(mem)

	idle := svc.Open(1, "vieja")
	active := svc.Open(2, "nueva")
	_, err := svc.Post(active.ID, models.ChatSenderVisitor, "sigo aquí")
	require.NoError(t, err)

	closed := svc.CloseIdleSweep(time.Hour, time.Now())
	assert.Equal(t, 0, closed, "nothing is idle yet")

	// with a cutoff in the future every open session counts as idle
	closed = svc.CloseIdleSweep(0, time.Now().Add(time.Minute))
	assert.Equal(t, 2, closed)

	s, err := svc.Session(idle.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ChatStatusClosed, s.Status)
}
