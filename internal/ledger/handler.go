package ledger

import (
	"errors"

	"kirana-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type AddPartyRequest struct {
	Name           string  `json:"name"`
	ShopName       string  `json:"shop_name"`
	Email          string  `json:"email"`
	Phone          string  `json:"phone"`
	Address        string  `json:"address"`
	InitialBalance float64 `json:"initial_balance"`
}

type AddTransactionRequest struct {
	Type        models.TransactionType `json:"type"`
	Amount      float64                `json:"amount"`
	Description string                 `json:"description"`
	BillNumber  string                 `json:"bill_number"`
}

// POST /api/credit/parties
func AddPartyHandler(l *Ledger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body AddPartyRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		party, err := l.AddParty(c.Context(), models.CreditParty{
			Name:     body.Name,
			ShopName: body.ShopName,
			Email:    body.Email,
			Phone:    body.Phone,
			Address:  body.Address,
			Balance:  body.InitialBalance,
		})
		if errors.Is(err, ErrMissingPartyName) {
			return fiber.NewError(fiber.StatusBadRequest, "Party name is required")
		}
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to create party")
		}

		return c.Status(fiber.StatusCreated).JSON(party)
	}
}

// GET /api/credit/parties
func ListPartiesHandler(l *Ledger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		parties, err := l.Parties(c.Context())
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to load parties")
		}
		if parties == nil {
			parties = []models.CreditParty{}
		}
		return c.JSON(parties)
	}
}

// GET /api/credit/parties/:id
func GetPartyHandler(l *Ledger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		party, err := l.Party(c.Context(), c.Params("id"))
		if errors.Is(err, ErrPartyNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Party not found")
		}
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to load party")
		}
		return c.JSON(party)
	}
}

// POST /api/credit/parties/:id/transactions
func AddTransactionHandler(l *Ledger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body AddTransactionRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		txn, err := l.AddTransaction(c.Context(), models.Transaction{
			PartyID:     c.Params("id"),
			Type:        body.Type,
			Amount:      body.Amount,
			Description: body.Description,
			BillNumber:  body.BillNumber,
		})
		switch {
		case errors.Is(err, ErrInvalidAmount):
			return fiber.NewError(fiber.StatusBadRequest, "Amount must be greater than 0")
		case errors.Is(err, ErrInvalidTxnType):
			return fiber.NewError(fiber.StatusBadRequest, "Type must be CREDIT or DEBIT")
		case errors.Is(err, ErrPartyNotFound):
			return fiber.NewError(fiber.StatusNotFound, "Party not found")
		case err != nil:
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to record transaction")
		}

		return c.Status(fiber.StatusCreated).JSON(txn)
	}
}

// GET /api/credit/parties/:id/transactions
func ListTransactionsHandler(l *Ledger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		txns, err := l.PartyTransactions(c.Context(), c.Params("id"))
		if errors.Is(err, ErrPartyNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Party not found")
		}
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to load transactions")
		}
		if txns == nil {
			txns = []models.Transaction{}
		}
		return c.JSON(txns)
	}
}
