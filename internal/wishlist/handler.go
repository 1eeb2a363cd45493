package wishlist

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
	app.Get("/api/v1/wishlist", h.getWishlist)
	app.Post("/api/v1/wishlist/:productId", h.toggle)
}

func (h *Handler) getWishlist(c *fiber.Ctx) error {
	userID, err := user.GetUserIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}
	return c.JSON(h.store.List(userID))
}

func (h *Handler) toggle(c *fiber.Ctx) error {
	userID, err := user.GetUserIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	p, err := h.catalog.GetByID(c.Context(), c.Params("productId"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "product not found"})
	}

	added, list := h.store.Toggle(userID, p)
	return c.JSON(fiber.Map{"added": added, "wishlist": list})
}
