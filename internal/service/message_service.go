package service

import (
	"context"
	"fmt"
	"strings"

	dom "storefront/internal/domain"
	"storefront/internal/repo"
)

const maxMessageLen = 4000

// MessageService runs the per-customer support thread shown on the profile page.
type MessageService struct {
	repo  repo.MessageRepo
	users repo.UserRepo
	now   Clock
}

func NewMessageService(r repo.MessageRepo, users repo.UserRepo) *MessageService {
	return &MessageService{repo: r, users: users, now: systemClock}
}

// Thread returns the thread of userID and marks messages from the other side as read.
func (s *MessageService) Thread(ctx context.Context, userID int64, readerIsAdmin bool) ([]dom.Message, error) {
	if readerIsAdmin {
		if _, err := s.users.GetByID(ctx, userID); err != nil {
			return nil, mapRepoErr(err)
		}
	}
	list, err := s.repo.List(ctx, userID)
	if err != nil {
		return nil, err
	}
	if _, err := s.repo.MarkRead(ctx, userID, !readerIsAdmin, s.now()); err != nil {
		return nil, err
	}
	return list, nil
}

// Post appends to the thread of userID.
func (s *MessageService) Post(ctx context.Context, userID int64, fromAdmin bool, body string) (dom.Message, error) {
	body = strings.TrimSpace(body)
	if body == "" || len(body) > maxMessageLen {
		return dom.Message{}, fmt.Errorf("%w: message must be 1-%d characters", ErrInvalidInput, maxMessageLen)
	}
	if fromAdmin {
		if _, err := s.users.GetByID(ctx, userID); err != nil {
			return dom.Message{}, mapRepoErr(err)
		}
	}
	m, err := s.repo.Create(ctx, dom.Message{UserID: userID, FromAdmin: fromAdmin, Body: body})
	return m, mapRepoErr(err)
}
