package handlers

import (
	"errors"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"taxledger/types"
	"taxledger/utils"
)

// RecordPaymentRequest carries the amount as a string on purpose: parsing it
// with decimal.NewFromString keeps binary floats out of the money path.
type RecordPaymentRequest struct {
	ContractorID string `json:"contractor_id" validate:"required"`
	Amount       string `json:"amount" validate:"required"`
	Date         string `json:"date" validate:"required"` // YYYY-MM-DD
	Description  string `json:"description"`
	Category     string `json:"category"`
	ExternalRef  string `json:"external_ref"`
}

func RecordPayment(c *fiber.Ctx) error {
	var req RecordPaymentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(types.APIResponse{
			Success: false,
			Error:   types.ErrInvalidInput,
		})
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		return c.Status(400).JSON(types.APIResponse{
			Success: false,
			Error:   "Invalid amount. Use a decimal string like \"650.00\"",
		})
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return c.Status(400).JSON(types.APIResponse{
			Success: false,
			Error:   "Invalid date format. Use YYYY-MM-DD",
		})
	}

	payment, err := Core.AddPayment(req.ContractorID, amount, date, req.Description, req.Category, req.ExternalRef)
	if err != nil {
		switch {
		case errors.Is(err, types.ErrValidation):
			return c.Status(400).JSON(types.APIResponse{
				Success: false,
				Error:   err.Error(),
			})
		case errors.Is(err, types.ErrNotFound):
			return c.Status(404).JSON(types.APIResponse{
				Success: false,
				Error:   "Contractor not found",
			})
		default:
			utils.Logger.Error("Failed to record payment", zap.Error(err))
			return c.Status(500).JSON(types.APIResponse{
				Success: false,
				Error:   types.ErrDatabaseError,
			})
		}
	}

	return c.JSON(types.APIResponse{
		Success: true,
		Message: "Payment recorded",
		Data:    payment,
	})
}

func GetContractorTotal(c *fiber.Ctx) error {
	id := c.Params("id")

	year, err := strconv.Atoi(c.Query("year", strconv.Itoa(time.Now().Year())))
	if err != nil {
		return c.Status(400).JSON(types.APIResponse{
			Success: false,
			Error:   "Invalid year",
		})
	}

	// Totals only exist for known contractors.
	if _, err := Core.Contractors.Get(id); err != nil {
		if errors.Is(err, types.ErrNotFound) {
			return c.Status(404).JSON(types.APIResponse{
				Success: false,
				Error:   "Contractor not found",
			})
		}
		utils.Logger.Error("Failed to fetch contractor", zap.Error(err))
		return c.Status(500).JSON(types.APIResponse{
			Success: false,
			Error:   types.ErrDatabaseError,
		})
	}

	total, err := Core.GetContractorTotal(id, year)
	if err != nil {
		utils.Logger.Error("Failed to compute total", zap.Error(err))
		return c.Status(500).JSON(types.APIResponse{
			Success: false,
			Error:   types.ErrDatabaseError,
		})
	}

	return c.JSON(types.APIResponse{
		Success: true,
		Data: map[string]interface{}{
			"contractor_id": id,
			"year":          year,
			"total_paid":    total,
		},
	})
}
