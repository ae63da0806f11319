package service

import (
	"context"
	"fmt"
	"net/mail"
	"strings"
	"time"

	dom "storefront/internal/domain"
	"storefront/internal/repo"
)

type SubscriptionService struct {
	repo  repo.SubscriptionRepo
	users repo.UserRepo
	now   Clock
}

func NewSubscriptionService(r repo.SubscriptionRepo, users repo.UserRepo) *SubscriptionService {
	return &SubscriptionService{repo: r, users: users, now: systemClock}
}

func (s *SubscriptionService) Create(ctx context.Context, sub dom.Subscription) (dom.Subscription, error) {
	sub.Platform = strings.TrimSpace(sub.Platform)
	sub.AccountEmail = strings.TrimSpace(sub.AccountEmail)
	sub.Notes = strings.TrimSpace(sub.Notes)
	switch {
	case sub.Platform == "":
		return dom.Subscription{}, fmt.Errorf("%w: platform is required", ErrInvalidInput)
	case sub.MaxProfiles <= 0:
		return dom.Subscription{}, fmt.Errorf("%w: max_profiles must be positive", ErrInvalidInput)
	case !sub.ExpiresAt.After(s.now()):
		return dom.Subscription{}, fmt.Errorf("%w: expires_at must be in the future", ErrInvalidInput)
	}
	if _, err := mail.ParseAddress(sub.AccountEmail); err != nil {
		return dom.Subscription{}, fmt.Errorf("%w: account_email", ErrInvalidInput)
	}
	out, err := s.repo.Create(ctx, sub)
	return out, mapRepoErr(err)
}

func (s *SubscriptionService) List(ctx context.Context, status dom.SubscriptionStatus) ([]dom.Subscription, error) {
	return s.repo.List(ctx, status)
}

func (s *SubscriptionService) Get(ctx context.Context, id int64) (dom.Subscription, error) {
	sub, err := s.repo.GetByID(ctx, id)
	return sub, mapRepoErr(err)
}

func (s *SubscriptionService) Renew(ctx context.Context, id int64, expiresAt time.Time) (dom.Subscription, error) {
	if !expiresAt.After(s.now()) {
		return dom.Subscription{}, fmt.Errorf("%w: expires_at must be in the future", ErrInvalidInput)
	}
	sub, err := s.repo.Renew(ctx, id, expiresAt)
	return sub, mapRepoErr(err)
}

func (s *SubscriptionService) Cancel(ctx context.Context, id int64) (dom.Subscription, error) {
	sub, err := s.repo.Cancel(ctx, id)
	return sub, mapRepoErr(err)
}

// AssignProfile gives a customer one seat of the subscription.
func (s *SubscriptionService) AssignProfile(ctx context.Context, subscriptionID, customerID int64, name, pin string) (dom.AccountProfile, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return dom.AccountProfile{}, fmt.Errorf("%w: profile name is required", ErrInvalidInput)
	}
	if _, err := s.users.GetByID(ctx, customerID); err != nil {
		return dom.AccountProfile{}, mapRepoErr(err)
	}
	p, err := s.repo.AssignProfile(ctx, dom.AccountProfile{
		SubscriptionID: subscriptionID,
		CustomerID:     customerID,
		Name:           name,
		PIN:            strings.TrimSpace(pin),
	}, s.now())
	return p, mapRepoErr(err)
}

func (s *SubscriptionService) RemoveProfile(ctx context.Context, subscriptionID, profileID int64) error {
	return mapRepoErr(s.repo.RemoveProfile(ctx, subscriptionID, profileID))
}

// CustomerProfiles lists the seats a customer holds on active subscriptions.
func (s *SubscriptionService) CustomerProfiles(ctx context.Context, customerID int64) ([]dom.AccountProfile, error) {
	return s.repo.ProfilesByCustomer(ctx, customerID)
}
