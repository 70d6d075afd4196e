package handlers

import (
	"log"

	"chaviet/internal/services"

	"github.com/gofiber/fiber/v2"
)

// CartHandler handles HTTP requests for the cart.
type CartHandler struct {
	service *services.CartService
}

// NewCartHandler creates a new CartHandler.
func NewCartHandler(service *services.CartService) *CartHandler {
	return &CartHandler{
		service: service,
	}
}

// RegisterRoutes registers the cart routes with the Fiber app.
func (h *CartHandler) RegisterRoutes(router fiber.Router) {
	cartRoutes := router.Group("/cart")
	cartRoutes.Get("/", h.HandleGetCart)
	cartRoutes.Get("/totals", h.HandleGetTotals)
	cartRoutes.Post("/lines", h.HandleAddOrUpdateLine)
	cartRoutes.Delete("/lines/:productId", h.HandleRemoveLine)
	cartRoutes.Post("/coupon", h.HandleApplyCoupon)
	cartRoutes.Post("/checkout", h.HandleCheckout)
}

// currentUserID pulls the authenticated user's ID out of the Fiber context.
// The JWT middleware stores it for every protected route.
func currentUserID(c *fiber.Ctx) string {
	userID, _ := c.Locals("user_id").(string)
	return userID
}

// HandleGetCart returns the user's cart, empty if they have none yet.
func (h *CartHandler) HandleGetCart(c *fiber.Ctx) error {
	cart, err := h.service.GetCart(currentUserID(c))
	if err != nil {
		log.Printf("Error getting cart: %v", err)
		return errorJSON(c, "Could not retrieve cart", err)
	}
	return c.JSON(cart)
}

// HandleGetTotals returns the derived monetary breakdown of the cart.
func (h *CartHandler) HandleGetTotals(c *fiber.Ctx) error {
	totals, err := h.service.ComputeTotals(currentUserID(c))
	if err != nil {
		log.Printf("Error computing cart totals: %v", err)
		return errorJSON(c, "Could not compute cart totals", err)
	}
	return c.JSON(totals)
}

// AddLineRequest is the body for adding or updating a cart line. DeltaQty is
// applied to the existing quantity; the result never drops below 1.
type AddLineRequest struct {
	ProductID string `json:"product_id"`
	DeltaQty  int    `json:"delta_qty"`
	GiftWrap  bool   `json:"gift_wrap"`
}

// HandleAddOrUpdateLine adds a product to the cart or adjusts its quantity.
func (h *CartHandler) HandleAddOrUpdateLine(c *fiber.Ctx) error {
	var req AddLineRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing add-line request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if req.ProductID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "product_id is required",
		})
	}

	cart, err := h.service.AddOrUpdateLine(currentUserID(c), req.ProductID, req.DeltaQty, req.GiftWrap)
	if err != nil {
		log.Printf("Error updating cart line: %v", err)
		return errorJSON(c, "Could not update cart line", err)
	}
	return c.JSON(cart)
}

// HandleRemoveLine deletes a line from the cart unconditionally.
func (h *CartHandler) HandleRemoveLine(c *fiber.Ctx) error {
	productID := c.Params("productId")
	cart, err := h.service.RemoveLine(currentUserID(c), productID)
	if err != nil {
		log.Printf("Error removing cart line for product %s: %v", productID, err)
		return errorJSON(c, "Could not remove cart line", err)
	}
	return c.JSON(cart)
}

// HandleApplyCoupon applies a coupon code to the cart. An unrecognized code
// leaves the cart unchanged and returns a 400.
func (h *CartHandler) HandleApplyCoupon(c *fiber.Ctx) error {
	var req struct {
		Code string `json:"code"`
	}
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing coupon request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if req.Code == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Coupon code is required.",
		})
	}

	cart, err := h.service.ApplyCoupon(currentUserID(c), req.Code)
	if err != nil {
		log.Printf("Error applying coupon %s: %v", req.Code, err)
		return errorJSON(c, "Could not apply coupon", err)
	}
	return c.JSON(cart)
}

// HandleCheckout validates the shipping form and converts the cart into a
// pending order. The request context is threaded through so a disconnected
// client cancels the simulated payment round trip with no state change.
func (h *CartHandler) HandleCheckout(c *fiber.Ctx) error {
	var req services.CheckoutRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing checkout request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	order, err := h.service.Checkout(c.UserContext(), currentUserID(c), req)
	if err != nil {
		log.Printf("Error during checkout: %v", err)
		return errorJSON(c, "Checkout failed", err)
	}
	return c.Status(fiber.StatusCreated).JSON(order)
}
