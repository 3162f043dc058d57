package mocks

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/message-board/internal/models"
)

// MockCSRF accepts exactly one token
type MockCSRF struct {
	ValidToken string
	TokenError error
	Verified   []string
}

func NewMockCSRF(token string) *MockCSRF {
	return &MockCSRF{ValidToken: token}
}

func (m *MockCSRF) Token(c *gin.Context) (string, error) {
	if m.TokenError != nil {
		return "", m.TokenError
	}
	return m.ValidToken, nil
}

// Protect checks csrf_token on POST only
func (m *MockCSRF) Protect(reject gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodPost {
			candidate := c.PostForm("csrf_token")
			m.Verified = append(m.Verified, candidate)
			if candidate == "" || candidate != m.ValidToken {
				reject(c)
				c.Abort()
				return
			}
		}
		c.Next()
	}
}

// MockRenderer records the page it was asked to render
type MockRenderer struct {
	Pages       []*models.Page
	RenderError error
}

func (m *MockRenderer) Render(w io.Writer, page *models.Page) error {
	m.Pages = append(m.Pages, page)
	if m.RenderError != nil {
		return m.RenderError
	}
	_, err := io.WriteString(w, "<html>board</html>")
	return err
}

// MockHealthChecker fails when Down is set
type MockHealthChecker struct {
	Down bool
}

func (m *MockHealthChecker) HealthCheck(ctx context.Context) error {
	if m.Down {
		return errors.New("connection refused")
	}
	return nil
}
