package chat

import (
	"context"
	"fmt"
	"time"

	"github.com/vitern/vitern-api/internal/domain"
	"github.com/vitern/vitern-api/internal/pkg/id"
)

const defaultMessageLimit = 50

type CreateRoomRequest struct {
	Name        string `json:"name" validate:"required"`
	Topic       string `json:"topic" validate:"required"`
	Description string `json:"description"`
}

type PostMessageRequest struct {
	Message string `json:"message" validate:"required,max=2000"`
}

type RoomStore interface {
	Put(ctx context.Context, room *domain.ChatRoom) error
	Get(ctx context.Context, roomID string) (*domain.ChatRoom, error)
	ListActive(ctx context.Context) ([]domain.ChatRoom, error)
}

type MessageStore interface {
	Put(ctx context.Context, m *domain.ChatMessage) error
	ListByRoom(ctx context.Context, roomID string, limit int32) ([]domain.ChatMessage, error)
}

type Service interface {
	CreateRoom(ctx context.Context, studentID string, req CreateRoomRequest) (*domain.ChatRoom, error)
	ListRooms(ctx context.Context) ([]domain.ChatRoom, error)
	PostMessage(ctx context.Context, accountID, roomID string, req PostMessageRequest) (*domain.ChatMessage, error)
	ListMessages(ctx context.Context, roomID string, limit int32) ([]domain.ChatMessage, error)
}

type service struct {
	rooms    RoomStore
	messages MessageStore
}

func NewService(rooms RoomStore, messages MessageStore) Service {
	return &service{rooms: rooms, messages: messages}
}

func (s *service) CreateRoom(ctx context.Context, studentID string, req CreateRoomRequest) (*domain.ChatRoom, error) {
	room := &domain.ChatRoom{
		RoomID:      id.New(),
		Name:        req.Name,
		Topic:       req.Topic,
		Description: req.Description,
		CreatedBy:   studentID,
		IsActive:    true,
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.rooms.Put(ctx, room); err != nil {
		return nil, err
	}
	return room, nil
}

func (s *service) ListRooms(ctx context.Context) ([]domain.ChatRoom, error) {
	return s.rooms.ListActive(ctx)
}

// PostMessage appends to an active room. Sender is an account, so both
// students and recruiters (as mentors) can participate.
func (s *service) PostMessage(ctx context.Context, accountID, roomID string, req PostMessageRequest) (*domain.ChatMessage, error) {
	room, err := s.rooms.Get(ctx, roomID)
	if err != nil {
		return nil, err
	}
	if !room.IsActive {
		return nil, fmt.Errorf("room is closed: %w", domain.ErrConflict)
	}

	msg := &domain.ChatMessage{
		MessageID: id.New(),
		RoomID:    roomID,
		SenderID:  accountID,
		Message:   req.Message,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.messages.Put(ctx, msg); err != nil {
		return nil, err
	}
	return msg, nil
}

func (s *service) ListMessages(ctx context.Context, roomID string, limit int32) ([]domain.ChatMessage, error) {
	if _, err := s.rooms.Get(ctx, roomID); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = defaultMessageLimit
	}
	return s.messages.ListByRoom(ctx, roomID, limit)
}
