package handlers

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"taxledger/types"
	"taxledger/utils"
)

// DefaultThreshold is the 1099-NEC reporting threshold.
var DefaultThreshold = decimal.NewFromInt(600)

// Get1099Report lists contractors whose yearly total meets the reporting
// threshold.
func Get1099Report(c *fiber.Ctx) error {
	year, err := strconv.Atoi(c.Query("year", strconv.Itoa(time.Now().Year())))
	if err != nil {
		return c.Status(400).JSON(types.APIResponse{
			Success: false,
			Error:   "Invalid year",
		})
	}

	threshold := DefaultThreshold
	if raw := c.Query("threshold"); raw != "" {
		threshold, err = decimal.NewFromString(raw)
		if err != nil {
			return c.Status(400).JSON(types.APIResponse{
				Success: false,
				Error:   "Invalid threshold. Use a decimal string like \"600.00\"",
			})
		}
	}

	results, err := Core.GetContractorsAboveThreshold(year, threshold)
	if err != nil {
		utils.Logger.Error("Failed to build 1099 report", zap.Error(err))
		return c.Status(500).JSON(types.APIResponse{
			Success: false,
			Error:   types.ErrDatabaseError,
		})
	}

	return c.JSON(types.APIResponse{
		Success: true,
		Data: map[string]interface{}{
			"year":      year,
			"threshold": threshold,
			"results":   results,
		},
	})
}

func HealthCheck(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"service": "taxledger",
		"status":  "running",
	})
}
