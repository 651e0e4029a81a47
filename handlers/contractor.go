package handlers

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"taxledger/store"
	"taxledger/types"
	"taxledger/utils"
)

type W9FormRequest struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email" validate:"required,email"`
	TIN     string `json:"tin" validate:"required"`
	Address string `json:"address"`
	City    string `json:"city"`
	State   string `json:"state"`
	ZipCode string `json:"zip_code"`
}

// SubmitW9 maps a W-9 form submission 1:1 onto contractor creation.
func SubmitW9(c *fiber.Ctx) error {
	var req W9FormRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(types.APIResponse{
			Success: false,
			Error:   types.ErrInvalidInput,
		})
	}

	contractor, err := Core.AddContractor(store.CreateContractorInput{
		Name:    req.Name,
		Email:   req.Email,
		TIN:     req.TIN,
		Address: req.Address,
		City:    req.City,
		State:   req.State,
		ZipCode: req.ZipCode,
	})
	if err != nil {
		if errors.Is(err, types.ErrValidation) {
			return c.Status(400).JSON(types.APIResponse{
				Success: false,
				Error:   err.Error(),
			})
		}
		utils.Logger.Error("Failed to create contractor", zap.Error(err))
		return c.Status(500).JSON(types.APIResponse{
			Success: false,
			Error:   types.ErrDatabaseError,
		})
	}

	return c.JSON(types.APIResponse{
		Success: true,
		Message: "W-9 received",
		Data:    contractor,
	})
}

func GetContractor(c *fiber.Ctx) error {
	contractor, err := Core.Contractors.Get(c.Params("id"))
	if err != nil {
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

	return c.JSON(types.APIResponse{
		Success: true,
		Data:    contractor,
	})
}

func ListContractors(c *fiber.Ctx) error {
	var w9Received *bool
	if raw := c.Query("w9_received"); raw != "" {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			return c.Status(400).JSON(types.APIResponse{
				Success: false,
				Error:   "Invalid w9_received filter",
			})
		}
		w9Received = &parsed
	}

	contractors, err := Core.Contractors.List(w9Received)
	if err != nil {
		utils.Logger.Error("Failed to list contractors", zap.Error(err))
		return c.Status(500).JSON(types.APIResponse{
			Success: false,
			Error:   types.ErrDatabaseError,
		})
	}

	return c.JSON(types.APIResponse{
		Success: true,
		Data:    contractors,
	})
}

// RevealTIN returns the decrypted, SSN-formatted TIN. The route must sit
// behind middleware.RequireAdmin: the core does not authorize this path.
func RevealTIN(c *fiber.Ctx) error {
	id := c.Params("id")

	tin, err := Core.Contractors.RevealTIN(id)
	if err != nil {
		switch {
		case errors.Is(err, types.ErrNotFound):
			return c.Status(404).JSON(types.APIResponse{
				Success: false,
				Error:   "Contractor not found",
			})
		case errors.Is(err, types.ErrDecryption):
			// Do not leak cipher details to the caller.
			utils.Logger.Error("Failed to decrypt TIN", zap.String("contractor_id", id), zap.Error(err))
			return c.Status(500).JSON(types.APIResponse{
				Success: false,
				Error:   types.ErrInternalError,
			})
		default:
			utils.Logger.Error("Failed to reveal TIN", zap.String("contractor_id", id), zap.Error(err))
			return c.Status(500).JSON(types.APIResponse{
				Success: false,
				Error:   types.ErrDatabaseError,
			})
		}
	}

	return c.JSON(types.APIResponse{
		Success: true,
		Data: map[string]interface{}{
			"contractor_id": id,
			"tin":           store.FormatTIN(tin),
		},
	})
}
