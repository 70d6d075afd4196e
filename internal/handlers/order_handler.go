package handlers

import (
	"fmt"
	"log"

	"chaviet/internal/models"
	"chaviet/internal/services"

	"github.com/gofiber/fiber/v2"
)

// OrderHandler handles HTTP requests for orders.
type OrderHandler struct {
	service *services.OrderService
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(service *services.OrderService) *OrderHandler {
	return &OrderHandler{
		service: service,
	}
}

// RegisterRoutes registers the order routes with the Fiber app.
func (h *OrderHandler) RegisterRoutes(router fiber.Router) {
	orderRoutes := router.Group("/orders")
	orderRoutes.Get("/", h.HandleGetOrders)
	orderRoutes.Get("/:id", h.HandleGetOrderByID)
	orderRoutes.Get("/:id/current-step", h.HandleGetCurrentStep)
	orderRoutes.Patch("/:id/status", h.HandleTransitionOrder)
}

// HandleGetOrders retrieves the caller's orders. The back office passes
// ?all=true to see every order.
func (h *OrderHandler) HandleGetOrders(c *fiber.Ctx) error {
	var orders []models.Order
	var err error
	if c.Query("all") == "true" {
		orders, err = h.service.GetAllOrders()
	} else {
		orders, err = h.service.GetOrdersByUserID(currentUserID(c))
	}
	if err != nil {
		log.Printf("Error getting orders: %v", err)
		return errorJSON(c, "Could not retrieve orders", err)
	}
	return c.JSON(orders)
}

// HandleGetOrderByID retrieves a single order by its ID.
func (h *OrderHandler) HandleGetOrderByID(c *fiber.Ctx) error {
	orderID := c.Params("id")
	order, err := h.service.GetOrderByID(orderID)
	if err != nil {
		log.Printf("Error getting order by ID %s: %v", orderID, err)
		return errorJSON(c, fmt.Sprintf("Could not retrieve order %s", orderID), err)
	}
	return c.JSON(order)
}

// HandleGetCurrentStep returns the first incomplete timeline event of an
// order, or null when the order is terminal.
func (h *OrderHandler) HandleGetCurrentStep(c *fiber.Ctx) error {
	orderID := c.Params("id")
	order, err := h.service.GetOrderByID(orderID)
	if err != nil {
		log.Printf("Error getting order by ID %s: %v", orderID, err)
		return errorJSON(c, fmt.Sprintf("Could not retrieve order %s", orderID), err)
	}
	return c.JSON(fiber.Map{
		"current_step": order.CurrentStep(),
	})
}

// HandleTransitionOrder moves an order to a new status. Illegal transitions
// are rejected with a 409 and the order stays as it was.
func (h *OrderHandler) HandleTransitionOrder(c *fiber.Ctx) error {
	orderID := c.Params("id")
	var updateData struct {
		Status string `json:"status"`
	}

	if err := c.BodyParser(&updateData); err != nil {
		log.Printf("Error parsing request body for status update: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body for status update",
			"error":   err.Error(),
		})
	}

	if updateData.Status == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Status is required for order status update.",
		})
	}

	order, err := h.service.TransitionOrder(orderID, updateData.Status)
	if err != nil {
		log.Printf("Error transitioning order %s to %s: %v", orderID, updateData.Status, err)
		return errorJSON(c, fmt.Sprintf("Order %s status update failed", orderID), err)
	}

	return c.JSON(order)
}
