package web

import (
	"crypto/rand"
	"encoding/hex"
	"net/http"
	"sync"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/karlseguin/ccache/v2"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	lf "github.com/bigredeye/studentmanager/internal/logfield"
	"github.com/bigredeye/studentmanager/internal/view"
)

const (
	sessionName    = "session"
	sessionViewKey = "view_id"
	contextViewKey = "view"

	defaultMaxViews = 1000
	defaultViewTTL  = time.Hour
)

// viewCache keeps one StudentManager per browser session. Idle views
// expire after ttl and the least recently used ones are evicted beyond
// maxViews.
type viewCache struct {
	cache   *ccache.Cache
	ttl     time.Duration
	factory func() *view.StudentManager

	mu sync.Mutex
}

func newViewCache(maxViews int64, ttl time.Duration, factory func() *view.StudentManager) *viewCache {
	if maxViews <= 0 {
		maxViews = defaultMaxViews
	}
	if ttl <= 0 {
		ttl = defaultViewTTL
	}
	return &viewCache{
		cache:   ccache.New(ccache.Configure().MaxSize(maxViews)),
		ttl:     ttl,
		factory: factory,
	}
}

// get returns the session's view, creating it if needed. The second
// result reports whether the view is new and still has to be mounted.
func (vc *viewCache) get(id string) (*view.StudentManager, bool) {
	vc.mu.Lock()
	defer vc.mu.Unlock()

	item := vc.cache.Get(id)
	if item != nil && !item.Expired() {
		item.Extend(vc.ttl)
		return item.Value().(*view.StudentManager), false
	}

	v := vc.factory()
	vc.cache.Set(id, v, vc.ttl)
	return v, true
}

func (vc *viewCache) stop() {
	vc.cache.Stop()
}

func decodeKey(hexKey string) ([]byte, error) {
	if hexKey == "" {
		key := make([]byte, 32)
		if _, err := rand.Read(key); err != nil {
			return nil, errors.Wrap(err, "Failed to generate key")
		}
		return key, nil
	}
	return hex.DecodeString(hexKey)
}

func setupSessions(s *server, r *gin.Engine) error {
	cookies := s.config.Server.Cookies
	if cookies.AuthenticationKey == "" || cookies.EncryptionKey == "" {
		s.logger.Warn("Cookie keys are not configured, sessions will not survive a restart")
	}

	authKey, err := decodeKey(cookies.AuthenticationKey)
	if err != nil {
		return errors.Wrap(err, "Failed to decode hex authenticationKey")
	}
	encryptKey, err := decodeKey(cookies.EncryptionKey)
	if err != nil {
		return errors.Wrap(err, "Failed to decode hex encryptionKey")
	}

	store := cookie.NewStore(authKey, encryptKey)
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   int(s.config.Sessions.TTL.Seconds()),
		Secure:   cookies.Secure,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	r.Use(sessions.Sessions(sessionName, store))
	return nil
}

// attachView resolves the session's StudentManager and mounts it on first use.
func (s *server) attachView(c *gin.Context) {
	session := sessions.Default(c)
	id, _ := session.Get(sessionViewKey).(string)
	if id == "" {
		id = uuid.New().String()
		session.Set(sessionViewKey, id)
		if err := session.Save(); err != nil {
			s.logger.Error("Failed to save session", zap.Error(err))
		}
	}

	v, created := s.views.get(id)
	if created {
		s.logger.Info("Mounting view", lf.SessionID(id))
		if err := v.Mount(c.Request.Context()); err != nil {
			s.logger.Warn("Initial student fetch failed", lf.SessionID(id), zap.Error(err))
		}
	}

	c.Set(contextViewKey, v)
	c.Next()
}

func currentView(c *gin.Context) *view.StudentManager {
	return c.MustGet(contextViewKey).(*view.StudentManager)
}
