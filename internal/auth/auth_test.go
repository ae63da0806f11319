package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	dom "storefront/internal/domain"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStore(t *testing.T) (*miniredis.Miniredis, *Store) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return mr, NewStore(rdb, time.Hour)
}

func TestStore_CreateGetDelete(t *testing.T) {
	mr, s := newStore(t)
	ctx := context.Background()

	id, err := s.Create(ctx, Session{UserID: 42, Role: dom.RoleAdmin})
	require.NoError(t, err)
	assert.Len(t, id, 32)
	assert.Equal(t, time.Hour, mr.TTL(sessionKeyPrefix+id))

	sess, err := s.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, int64(42), sess.UserID)
	assert.True(t, sess.IsAdmin())

	require.NoError(t, s.Delete(ctx, id))
	_, err = s.Get(ctx, id)
	assert.ErrorIs(t, err, ErrNoSession)
}

func TestStore_Expiry(t *testing.T) {
	mr, s := newStore(t)
	ctx := context.Background()

	id, err := s.Create(ctx, Session{UserID: 1, Role: dom.RoleCustomer})
	require.NoError(t, err)

	mr.FastForward(2 * time.Hour)
	_, err = s.Get(ctx, id)
	assert.ErrorIs(t, err, ErrNoSession)
}

func TestStore_CorruptValue(t *testing.T) {
	mr, s := newStore(t)
	require.NoError(t, mr.Set(sessionKeyPrefix+"abc", "1"))

	_, err := s.Get(context.Background(), "abc")
	assert.ErrorIs(t, err, ErrNoSession)
}

func TestNewStore_DefaultTTL(t *testing.T) {
	s := NewStore(nil, 0)
	assert.Equal(t, sessionTTL, s.TTL())
}

func serve(t *testing.T, s *Store, cookie string, handlers ...gin.HandlerFunc) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	handlers = append(handlers, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user_id": UserIDFromContext(c), "role": RoleFromContext(c)})
	})
	r.GET("/", handlers...)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if cookie != "" {
		req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: cookie})
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRequireSession(t *testing.T) {
	_, s := newStore(t)
	id, err := s.Create(context.Background(), Session{UserID: 9, Role: dom.RoleCustomer})
	require.NoError(t, err)

	w := serve(t, s, "", RequireSession(s))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = serve(t, s, "unknown", RequireSession(s))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = serve(t, s, id, RequireSession(s))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"user_id":9,"role":"customer"}`, w.Body.String())
}

func TestRequireAdmin(t *testing.T) {
	_, s := newStore(t)
	ctx := context.Background()
	customer, err := s.Create(ctx, Session{UserID: 1, Role: dom.RoleCustomer})
	require.NoError(t, err)
	admin, err := s.Create(ctx, Session{UserID: 2, Role: dom.RoleAdmin})
	require.NoError(t, err)

	w := serve(t, s, customer, RequireSession(s), RequireAdmin())
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = serve(t, s, admin, RequireSession(s), RequireAdmin())
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestOptionalSession(t *testing.T) {
	_, s := newStore(t)

	w := serve(t, s, "", OptionalSession(s))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"user_id":0,"role":""}`, w.Body.String())
}
