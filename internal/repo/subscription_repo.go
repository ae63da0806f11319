package repo

import (
	"context"
	"time"

	dom "storefront/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type SubscriptionRepo interface {
	Create(ctx context.Context, s dom.Subscription) (dom.Subscription, error)
	GetByID(ctx context.Context, id int64) (dom.Subscription, error)
	List(ctx context.Context, status dom.SubscriptionStatus) ([]dom.Subscription, error)
	Renew(ctx context.Context, id int64, expiresAt time.Time) (dom.Subscription, error)
	Cancel(ctx context.Context, id int64) (dom.Subscription, error)
	AssignProfile(ctx context.Context, p dom.AccountProfile, now time.Time) (dom.AccountProfile, error)
	RemoveProfile(ctx context.Context, subscriptionID, profileID int64) error
	ProfilesByCustomer(ctx context.Context, customerID int64) ([]dom.AccountProfile, error)
	ExpiringBefore(ctx context.Context, before time.Time) ([]dom.Subscription, error)
}

type PGSubscriptionRepo struct {
	db *pgxpool.Pool
}

func NewPGSubscriptionRepo(db *pgxpool.Pool) *PGSubscriptionRepo {
	return &PGSubscriptionRepo{db: db}
}

const subscriptionSelect = `
	SELECT s.id, s.platform, s.account_email, s.max_profiles, s.expires_at, s.status, s.notes,
		s.created_at, s.updated_at,
		(SELECT COUNT(*) FROM account_profiles ap WHERE ap.subscription_id = s.id)::int
	FROM subscriptions s`

const profileColumns = `id, subscription_id, customer_id, name, pin, assigned_at`

func scanSubscription(row rowScanner) (dom.Subscription, error) {
	var s dom.Subscription
	err := row.Scan(&s.ID, &s.Platform, &s.AccountEmail, &s.MaxProfiles, &s.ExpiresAt, &s.Status,
		&s.Notes, &s.CreatedAt, &s.UpdatedAt, &s.ProfileCount)
	return s, err
}

func scanProfile(row rowScanner) (dom.AccountProfile, error) {
	var p dom.AccountProfile
	err := row.Scan(&p.ID, &p.SubscriptionID, &p.CustomerID, &p.Name, &p.PIN, &p.AssignedAt)
	return p, err
}

func (r *PGSubscriptionRepo) Create(ctx context.Context, s dom.Subscription) (dom.Subscription, error) {
	var id int64
	if err := r.db.QueryRow(ctx, `
		INSERT INTO subscriptions (platform, account_email, max_profiles, expires_at, notes)
		VALUES ($1, $2, $3, $4, $5) RETURNING id`,
		s.Platform, s.AccountEmail, s.MaxProfiles, s.ExpiresAt, s.Notes).Scan(&id); err != nil {
		return dom.Subscription{}, err
	}
	return r.GetByID(ctx, id)
}

// GetByID returns the subscription with its assigned profiles.
func (r *PGSubscriptionRepo) GetByID(ctx context.Context, id int64) (dom.Subscription, error) {
	s, err := scanSubscription(r.db.QueryRow(ctx, subscriptionSelect+` WHERE s.id = $1`, id))
	if err != nil {
		return dom.Subscription{}, err
	}
	rows, err := r.db.Query(ctx,
		`SELECT `+profileColumns+` FROM account_profiles WHERE subscription_id = $1 ORDER BY assigned_at, id`, id)
	if err != nil {
		return dom.Subscription{}, err
	}
	s.Profiles, err = collect(rows, scanProfile)
	return s, err
}

func (r *PGSubscriptionRepo) List(ctx context.Context, status dom.SubscriptionStatus) ([]dom.Subscription, error) {
	rows, err := r.db.Query(ctx, subscriptionSelect+`
		WHERE ($1::text = '' OR s.status = $1::text)
		ORDER BY s.expires_at, s.id`, string(status))
	if err != nil {
		return nil, err
	}
	return collect(rows, scanSubscription)
}

// Renew sets a new expiry and reactivates the subscription.
func (r *PGSubscriptionRepo) Renew(ctx context.Context, id int64, expiresAt time.Time) (dom.Subscription, error) {
	if err := affected(r.db.Exec(ctx, `
		UPDATE subscriptions SET expires_at = $2, status = 'active', updated_at = NOW()
		WHERE id = $1`, id, expiresAt)); err != nil {
		return dom.Subscription{}, err
	}
	return r.GetByID(ctx, id)
}

func (r *PGSubscriptionRepo) Cancel(ctx context.Context, id int64) (dom.Subscription, error) {
	if err := affected(r.db.Exec(ctx,
		`UPDATE subscriptions SET status = 'cancelled', updated_at = NOW() WHERE id = $1`, id)); err != nil {
		return dom.Subscription{}, err
	}
	return r.GetByID(ctx, id)
}

// AssignProfile adds a profile while the subscription row is locked, so the
// profile count can never exceed max_profiles.
func (r *PGSubscriptionRepo) AssignProfile(ctx context.Context, p dom.AccountProfile, now time.Time) (dom.AccountProfile, error) {
	var out dom.AccountProfile
	err := pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		s, err := scanSubscription(tx.QueryRow(ctx, subscriptionSelect+` WHERE s.id = $1 FOR UPDATE OF s`, p.SubscriptionID))
		if err != nil {
			return err
		}
		if err := s.CanAssign(s.ProfileCount, now); err != nil {
			return err
		}
		out, err = scanProfile(tx.QueryRow(ctx, `
			INSERT INTO account_profiles (subscription_id, customer_id, name, pin)
			VALUES ($1, $2, $3, $4)
			RETURNING `+profileColumns, p.SubscriptionID, p.CustomerID, p.Name, p.PIN))
		return err
	})
	return out, err
}

func (r *PGSubscriptionRepo) RemoveProfile(ctx context.Context, subscriptionID, profileID int64) error {
	return affected(r.db.Exec(ctx,
		`DELETE FROM account_profiles WHERE id = $1 AND subscription_id = $2`, profileID, subscriptionID))
}

func (r *PGSubscriptionRepo) ProfilesByCustomer(ctx context.Context, customerID int64) ([]dom.AccountProfile, error) {
	rows, err := r.db.Query(ctx, `
		SELECT ap.id, ap.subscription_id, ap.customer_id, ap.name, ap.pin, ap.assigned_at, s.platform, s.expires_at
		FROM account_profiles ap
		JOIN subscriptions s ON s.id = ap.subscription_id
		WHERE ap.customer_id = $1 AND s.status = 'active'
		ORDER BY s.expires_at`, customerID)
	if err != nil {
		return nil, err
	}
	return collect(rows, func(row rowScanner) (dom.AccountProfile, error) {
		var p dom.AccountProfile
		err := row.Scan(&p.ID, &p.SubscriptionID, &p.CustomerID, &p.Name, &p.PIN, &p.AssignedAt,
			&p.Platform, &p.ExpiresAt)
		return p, err
	})
}

// ExpiringBefore lists active subscriptions whose expiry falls before the cutoff.
func (r *PGSubscriptionRepo) ExpiringBefore(ctx context.Context, before time.Time) ([]dom.Subscription, error) {
	rows, err := r.db.Query(ctx, subscriptionSelect+`
		WHERE s.status = 'active' AND s.expires_at < $1
		ORDER BY s.expires_at`, before)
	if err != nil {
		return nil, err
	}
	return collect(rows, scanSubscription)
}
