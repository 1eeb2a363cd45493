package cart

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Dant324/bare-and-beautiful/internal/catalog"
	"github.com/Dant324/bare-and-beautiful/internal/user"
)

type Handler struct {
	store   *Store
	catalog *catalog.Service
}

func NewHandler(store *Store, catalogService *catalog.Service) *Handler {
	return &Handler{store: store, catalog: catalogService}
}

func (h *Handler) RegisterProtectedRoutes(app *fiber.App) {
	app.Get("/api/v1/cart", h.getCart)
	app.Post("/api/v1/cart", h.addItem)
	app.Put("/api/v1/cart/:productId", h.updateQuantity)
	app.Delete("/api/v1/cart/:productId", h.removeItem)
}

type addRequest struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity,omitempty"`
}

type quantityRequest struct {
	Quantity int `json:"quantity"`
}

func (h *Handler) getCart(c *fiber.Ctx) error {
	userID, err := user.GetUserIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}
	return c.JSON(h.store.Get(userID))
}

func (h *Handler) addItem(c *fiber.Ctx) error {
	userID, err := user.GetUserIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	payload := new(addRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	if payload.ProductID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "productId is required"})
	}
	if payload.Quantity < 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "quantity must be positive"})
	}
	if payload.Quantity == 0 {
		payload.Quantity = 1
	}

	// snapshot the product as it exists right now
	p, err := h.catalog.GetByID(c.Context(), payload.ProductID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "product not found"})
	}

	return c.JSON(h.store.Add(userID, p, payload.Quantity))
}

func (h *Handler) updateQuantity(c *fiber.Ctx) error {
	userID, err := user.GetUserIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	payload := new(quantityRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	return c.JSON(h.store.UpdateQuantity(userID, c.Params("productId"), payload.Quantity))
}

func (h *Handler) removeItem(c *fiber.Ctx) error {
	userID, err := user.GetUserIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	return c.JSON(h.store.Remove(userID, c.Params("productId")))
}
