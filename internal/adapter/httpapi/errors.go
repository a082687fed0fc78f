package httpapi

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"github.com/finledger/finledger-backend/internal/domain"
)

// respondError maps domain errors to HTTP statuses and the stable message
// keys consumed by clients.
func respondError(c *fiber.Ctx, log *logrus.Logger, err error) error {
	status, key := errorStatus(err)
	if status == fiber.StatusInternalServerError {
		log.WithError(err).Error("request failed")
	}
	return c.Status(status).JSON(fiber.Map{"error": key})
}

func errorStatus(err error) (int, string) {
	var notAllowed *domain.MovementNotAllowedError

	switch {
	case errors.Is(err, domain.ErrNotFound):
		return fiber.StatusNotFound, "exception.message.object-not-found"
	case errors.Is(err, domain.ErrUnauthorized):
		return fiber.StatusForbidden, "exception.message.access-denied"
	case errors.Is(err, domain.ErrInsufficientBalance):
		return fiber.StatusBadRequest, "exception.message.account.balance-not-available"
	case errors.Is(err, domain.ErrInsufficientQuantity):
		return fiber.StatusBadRequest, "exception.message.asset.quantity-not-available"
	case errors.As(err, &notAllowed):
		if notAllowed.Reason == domain.MovementOnWeekend {
			return fiber.StatusBadRequest, "exception.message.movement-not-allowed-in-weekend"
		}
		return fiber.StatusBadRequest, "exception.message.movement-not-allowed-in-date"
	case errors.Is(err, domain.ErrIssueDateNotBeforeDueDate):
		return fiber.StatusBadRequest, "exception.message.issue-not-before-due"
	default:
		return fiber.StatusInternalServerError, "exception.message.internal-error"
	}
}
