package models

import "time"

type ChatStatus string

const (
	ChatStatusOpen   ChatStatus = "open"
	ChatStatusClosed ChatStatus = "closed"
)

type ChatSender string

const (
	ChatSenderVisitor ChatSender = "visitor"
	ChatSenderAgent   ChatSender = "agent"
)

// ChatSession is one live-chat conversation. UserID is zero for anonymous
// visitors; Token identifies the session on the wire.
type ChatSession struct {
	ID        int64      `json:"id"`
	Token     string     `json:"token"`
	UserID    int64      `json:"user_id,omitempty"`
	Subject   string     `json:"subject,omitempty"`
	Status    ChatStatus `json:"status"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

type ChatMessage struct {
	ID        int64      `json:"id"`
	SessionID int64      `json:"session_id"`
	Sender    ChatSender `json:"sender"`
	Body      string     `json:"body"`
	CreatedAt time.Time  `json:"created_at"`
}

type OpenChatRequest struct {
	UserID  int64  `json:"userId"`
	Subject string `json:"subject"`
}

type PostChatMessageRequest struct {
	Sender ChatSender `json:"sender" binding:"required,oneof=visitor agent"`
	Body   string     `json:"body" binding:"required"`
}
