package csrf

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	gcsrf "github.com/gorilla/csrf"
	"github.com/gorilla/securecookie"
	"github.com/message-board/internal/config"
	"github.com/rs/zerolog"
)

// FieldName is the form field carrying the token on POST.
const FieldName = "csrf_token"

const keyLength = 32

type failureKey struct{}

// failure receives the rejection reason from the gorilla error handler.
type failure struct {
	reason error
}

// Manager binds CSRF tokens to a signed session cookie using gorilla/csrf.
// No server-side state is kept.
type Manager struct {
	protect func(http.Handler) http.Handler
	log     zerolog.Logger
}

// New creates a Manager. Without a configured secret a random one is
// generated, which invalidates outstanding tokens on restart.
func New(cfg config.CSRFConfig, log zerolog.Logger) (*Manager, error) {
	log = log.With().Str("component", "csrf").Logger()

	key := []byte(cfg.Secret)
	if len(key) == 0 {
		key = securecookie.GenerateRandomKey(keyLength)
		if key == nil {
			return nil, errors.New("failed to generate csrf secret")
		}
		log.Warn().Msg("CSRF_SECRET not set, using a per-process secret")
	}

	return &Manager{
		protect: gcsrf.Protect(key,
			gcsrf.CookieName(cfg.CookieName),
			gcsrf.FieldName(FieldName),
			gcsrf.Path("/"),
			gcsrf.MaxAge(0),
			gcsrf.HttpOnly(true),
			gcsrf.Secure(cfg.CookieSecure),
			gcsrf.SameSite(gcsrf.SameSiteLaxMode),
			gcsrf.ErrorHandler(http.HandlerFunc(recordFailure)),
		),
		log: log,
	}, nil
}

// Protect returns middleware that issues the session cookie on every
// request and checks the submitted token on POST. Rejected requests are
// handed to reject and never reach later handlers.
//
// Only POST carries actions; any other method is treated as a read.
// Plain HTTP requests are checked on the token alone; requests arriving
// over TLS must also carry a same-origin Referer.
func (m *Manager) Protect(reject gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		f := &failure{}
		method := c.Request.Method
		req := c.Request.WithContext(context.WithValue(c.Request.Context(), failureKey{}, f))
		if method != http.MethodPost {
			req.Method = http.MethodGet
		}
		if req.TLS == nil {
			req = gcsrf.PlaintextHTTPRequest(req)
		}

		passed := false
		next := http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
			passed = true
			r.Method = method
			c.Request = r
		})
		m.protect(next).ServeHTTP(c.Writer, req)

		if !passed {
			m.log.Warn().
				Err(f.reason).
				Str("method", c.Request.Method).
				Str("client_ip", c.ClientIP()).
				Msg("Rejected request with invalid CSRF token")
			reject(c)
			c.Abort()
			return
		}

		c.Next()
	}
}

// Token returns the masked token for the current session. It is only
// available to handlers running behind Protect.
func (m *Manager) Token(c *gin.Context) (string, error) {
	token := gcsrf.Token(c.Request)
	if token == "" {
		return "", errors.New("csrf token unavailable: request did not pass through Protect")
	}
	return token, nil
}

func recordFailure(_ http.ResponseWriter, r *http.Request) {
	if f, ok := r.Context().Value(failureKey{}).(*failure); ok {
		f.reason = gcsrf.FailureReason(r)
	}
}
