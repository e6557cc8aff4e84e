package middleware

import (
	"log/slog"
	"net/http"

	"storefront/config"
	deliverycontext "storefront/internal/delivery/context"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/entity"
	"storefront/internal/domain/service"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// SessionMiddleware resolves the signed session cookie into an identity id.
type SessionMiddleware struct {
	sessions   service.SessionAuthority
	metrics    service.MetricsCollector
	cookieName string
	secure     bool
	logger     *slog.Logger
}

// NewSessionMiddleware is the constructor for SessionMiddleware.
func NewSessionMiddleware(sessions service.SessionAuthority, metrics service.MetricsCollector, cfg *config.Config, logger *slog.Logger) *SessionMiddleware {
	return &SessionMiddleware{
		sessions:   sessions,
		metrics:    metrics,
		cookieName: cfg.Session.CookieName,
		secure:     !cfg.Session.Insecure,
		logger:     logger,
	}
}

// Authenticate never rejects a request. A valid cookie makes the request
// authenticated; an absent, tampered or expired one leaves it anonymous.
func (m *SessionMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		cookie, err := c.Cookie(m.cookieName)
		if err != nil || cookie.Value == "" {
			return next(c)
		}

		session, err := m.sessions.Resolve(cookie.Value)
		if err != nil {
			m.metrics.RecordSessionRejected()
			deliverycontext.GetLoggerOrDefault(c.Request().Context(), m.logger).
				Debug("Ignoring session cookie", slog.Any("error", err))

			return next(c)
		}

		deliverycontext.SetSessionIdentity(c, session.IdentityID)

		ctx := c.Request().Context()
		reqLogger := deliverycontext.GetLoggerOrDefault(ctx, m.logger).With(slog.Any("userID", session.IdentityID))
		c.SetRequest(c.Request().WithContext(deliverycontext.WithLogger(ctx, reqLogger)))

		return next(c)
	}
}

// RequireSession must run after Authenticate.
func (m *SessionMiddleware) RequireSession(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if _, ok := deliverycontext.GetSessionIdentity(c); !ok {
			return errors.Wrap(domainerrors.ErrUnauthenticated, "no valid session")
		}

		return next(c)
	}
}

// SetSessionCookie writes the token as an HttpOnly cookie living as long as the session.
func (m *SessionMiddleware) SetSessionCookie(c echo.Context, token string, session *entity.Session) {
	c.SetCookie(&http.Cookie{
		Name:     m.cookieName,
		Value:    token,
		Path:     "/",
		Expires:  session.ExpiresAt,
		MaxAge:   int(session.TTL().Seconds()),
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	})
}
