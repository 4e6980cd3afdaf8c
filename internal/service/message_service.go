package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/conveyancing-service/internal/domain"
	"github.com/spec-kit/conveyancing-service/internal/events"
	"github.com/spec-kit/conveyancing-service/internal/repository"
	apperrors "github.com/spec-kit/conveyancing-service/pkg/util"
)

const messagePreviewRunes = 80

// MessageService owns the per-case discussion thread.
type MessageService struct {
	messages   repository.MessageRepository
	cases      repository.CaseRepository
	dispatcher events.Dispatcher
}

// NewMessageService builds the service.
func NewMessageService(messages repository.MessageRepository, cases repository.CaseRepository, dispatcher events.Dispatcher) *MessageService {
	return &MessageService{messages: messages, cases: cases, dispatcher: dispatcher}
}

// List returns all messages for the case ordered by creation time ascending.
func (s *MessageService) List(ctx context.Context, caseID string) ([]domain.Message, error) {
	return s.messages.ListByCase(ctx, caseID)
}

// Post appends a message to the case thread. The author's username is
// captured at write time and never re-resolved.
func (s *MessageService) Post(ctx context.Context, author *domain.User, caseID, content string) (*domain.Message, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, apperrors.NewValidationError("content required", nil)
	}

	if _, err := s.cases.GetByID(ctx, caseID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("case", nil)
		}
		return nil, err
	}

	msg := &domain.Message{
		ID:       uuid.NewString(),
		CaseID:   caseID,
		UserID:   author.ID,
		Username: author.Username,
		Content:  content,
	}
	if err := s.messages.Create(ctx, msg); err != nil {
		return nil, err
	}

	s.publishMessage(ctx, events.EventMessagePosted, msg, author.ID)
	return msg, nil
}

// Delete removes a message. Only its author or an admin may do so.
func (s *MessageService) Delete(ctx context.Context, requester *domain.User, caseID, messageID string) error {
	msg, err := s.messages.GetByID(ctx, caseID, messageID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("message", nil)
		}
		return err
	}
	if !requester.IsAdmin && msg.UserID != requester.ID {
		return apperrors.NewForbidden("not allowed to delete this message")
	}

	if err := s.messages.Delete(ctx, messageID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("message", nil)
		}
		return err
	}

	s.publishMessage(ctx, events.EventMessageDeleted, msg, requester.ID)
	return nil
}

func (s *MessageService) publishMessage(ctx context.Context, eventType events.EventType, msg *domain.Message, actorID string) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		Type:    eventType,
		CaseID:  msg.CaseID,
		ActorID: actorID,
		Payload: events.MessagePostedPayload{
			MessageID:   msg.ID,
			Username:    msg.Username,
			BodyPreview: messagePreview(msg.Content),
		},
	})
}

// messagePreview truncates on a rune boundary so the preview stays valid
// UTF-8 for multi-byte content.
func messagePreview(content string) string {
	runes := []rune(content)
	if len(runes) <= messagePreviewRunes {
		return content
	}
	return string(runes[:messagePreviewRunes])
}
