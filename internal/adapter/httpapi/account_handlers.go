package httpapi

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/finledger/finledger-backend/internal/domain"
)

func (s *Server) getAccount(c *fiber.Ctx) error {
	accountID, err := uuid.Parse(c.Params("accountId"))
	if err != nil {
		return badRequest(c, "invalid account id")
	}

	account, err := s.accounts.FindByID(c.Context(), accountID)
	if err != nil {
		return respondError(c, s.log, err)
	}
	return c.JSON(toAccountResponse(account))
}

func (s *Server) createAccount(c *fiber.Ctx) error {
	var req createAccountRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}

	account, err := s.accounts.Create(c.Context(), req.Balance)
	if err != nil {
		return respondError(c, s.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toAccountResponse(account))
}

func (s *Server) includeLaunch(c *fiber.Ctx) error {
	accountID, err := uuid.Parse(c.Params("accountId"))
	if err != nil {
		return badRequest(c, "invalid account id")
	}

	var req launchRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	date, err := parseDate(req.Date)
	if err != nil {
		return badRequest(c, "invalid date")
	}

	launch := &domain.Launch{
		Type:        req.Type,
		Description: req.Description,
		Value:       req.Value,
		Date:        date,
	}
	account, err := s.accounts.IncludeLaunch(c.Context(), principal(c), accountID, launch)
	if err != nil {
		return respondError(c, s.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toAccountResponse(account))
}

func (s *Server) getLaunches(c *fiber.Ctx) error {
	accountID, err := uuid.Parse(c.Params("accountId"))
	if err != nil {
		return badRequest(c, "invalid account id")
	}
	begin, err := parseDate(c.Query("dataInicio"))
	if err != nil {
		return badRequest(c, "invalid dataInicio")
	}
	end, err := parseDate(c.Query("dataFim"))
	if err != nil {
		return badRequest(c, "invalid dataFim")
	}

	launches, err := s.accounts.Launches(c.Context(), accountID, begin, end)
	if err != nil {
		return respondError(c, s.log, err)
	}

	out := make([]launchResponse, 0, len(launches))
	for _, l := range launches {
		out = append(out, toLaunchResponse(l))
	}
	return c.JSON(out)
}

func (s *Server) getBalance(c *fiber.Ctx) error {
	accountID, err := uuid.Parse(c.Params("accountId"))
	if err != nil {
		return badRequest(c, "invalid account id")
	}
	date, err := parseOptionalDate(c.Query("data"))
	if err != nil {
		return badRequest(c, "invalid date")
	}

	balance, err := s.accounts.Balance(c.Context(), accountID, date)
	if err != nil {
		return respondError(c, s.log, err)
	}
	return c.JSON(balanceResponse{Balance: balance})
}

func badRequest(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": message})
}
