package handlers

import (
	"fmt"
	"log"

	"chaviet/internal/models"
	"chaviet/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// InventoryHandler handles HTTP requests for the back-office inventory view.
type InventoryHandler struct {
	service  *services.InventoryService
	validate *validator.Validate
}

// NewInventoryHandler creates a new InventoryHandler.
func NewInventoryHandler(service *services.InventoryService) *InventoryHandler {
	return &InventoryHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the inventory routes with the Fiber app.
func (h *InventoryHandler) RegisterRoutes(router fiber.Router) {
	inventoryRoutes := router.Group("/inventory")
	inventoryRoutes.Get("/", h.HandleGetInventory)
	inventoryRoutes.Get("/:productId", h.HandleGetInventoryItem)
	inventoryRoutes.Patch("/:productId", h.HandleAdjust)
}

// inventoryItemResponse decorates the stored counters with the derived
// available stock and status.
type inventoryItemResponse struct {
	models.InventoryItem
	AvailableStock int    `json:"available_stock"`
	Status         string `json:"status"`
}

func toInventoryResponse(item models.InventoryItem) inventoryItemResponse {
	return inventoryItemResponse{
		InventoryItem:  item,
		AvailableStock: item.Available(),
		Status:         item.Status(),
	}
}

// HandleGetInventory lists every inventory item with derived status.
func (h *InventoryHandler) HandleGetInventory(c *fiber.Ctx) error {
	items, err := h.service.GetAll()
	if err != nil {
		log.Printf("Error getting inventory: %v", err)
		return errorJSON(c, "Could not retrieve inventory", err)
	}

	responses := make([]inventoryItemResponse, 0, len(items))
	for _, item := range items {
		responses = append(responses, toInventoryResponse(item))
	}
	return c.JSON(responses)
}

// HandleGetInventoryItem returns the stock counters for one product.
func (h *InventoryHandler) HandleGetInventoryItem(c *fiber.Ctx) error {
	productID := c.Params("productId")
	item, err := h.service.GetByProductID(productID)
	if err != nil {
		log.Printf("Error getting inventory for product %s: %v", productID, err)
		return errorJSON(c, fmt.Sprintf("Could not retrieve inventory for product %s", productID), err)
	}
	return c.JSON(toInventoryResponse(*item))
}

// AdjustRequest is the body for a stock adjustment.
type AdjustRequest struct {
	Mode   string `json:"mode" validate:"required,oneof=add remove set"`
	Amount int    `json:"amount"`
}

// HandleAdjust applies an add/remove/set stock adjustment to one product.
func (h *InventoryHandler) HandleAdjust(c *fiber.Ctx) error {
	productID := c.Params("productId")

	var req AdjustRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing adjust request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if err := h.validate.Struct(req); err != nil {
		validationErrors := err.(validator.ValidationErrors)
		errorMessages := make(map[string]string)
		for _, e := range validationErrors {
			errorMessages[e.Field()] = fmt.Sprintf("Field '%s' failed on the '%s' tag", e.Field(), e.Tag())
		}
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"errors":  errorMessages,
		})
	}

	item, err := h.service.Adjust(productID, req.Mode, req.Amount)
	if err != nil {
		log.Printf("Error adjusting stock for product %s: %v", productID, err)
		return errorJSON(c, fmt.Sprintf("Could not adjust stock for product %s", productID), err)
	}
	return c.JSON(toInventoryResponse(*item))
}
