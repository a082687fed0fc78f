package httpapi

import (
	"encoding/base64"
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"github.com/finledger/finledger-backend/internal/domain"
)

const principalKey = "principal"

// requestLogger logs one line per request with method, path, status and
// latency.
func (s *Server) requestLogger() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		s.log.WithFields(logrus.Fields{
			"method":  c.Method(),
			"path":    c.Path(),
			"status":  c.Response().StatusCode(),
			"latency": time.Since(start).String(),
		}).Info("request")

		return err
	}
}

// basicAuth resolves the authenticated Principal from HTTP Basic credentials
// against the users table and stores it in the request locals.
func (s *Server) basicAuth() fiber.Handler {
	return func(c *fiber.Ctx) error {
		username, password, ok := parseBasicAuth(c.Get(fiber.HeaderAuthorization))
		if !ok {
			return authenticationFailed(c)
		}

		user, err := s.users.GetByUsername(c.Context(), username)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return authenticationFailed(c)
			}
			return respondError(c, s.log, err)
		}

		if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
			return authenticationFailed(c)
		}

		c.Locals(principalKey, domain.Principal{
			UserID:    user.ID,
			AccountID: user.AccountID,
			Admin:     user.IsAdmin(),
		})
		return c.Next()
	}
}

func parseBasicAuth(header string) (username, password string, ok bool) {
	const prefix = "Basic "
	if !strings.HasPrefix(header, prefix) {
		return "", "", false
	}
	decoded, err := base64.StdEncoding.DecodeString(header[len(prefix):])
	if err != nil {
		return "", "", false
	}
	username, password, ok = strings.Cut(string(decoded), ":")
	return username, password, ok
}

func authenticationFailed(c *fiber.Ctx) error {
	c.Set(fiber.HeaderWWWAuthenticate, `Basic realm="finledger"`)
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
		"error": "exception.message.authentication-failed",
	})
}

// principal returns the Principal resolved by basicAuth.
func principal(c *fiber.Ctx) domain.Principal {
	p, _ := c.Locals(principalKey).(domain.Principal)
	return p
}
