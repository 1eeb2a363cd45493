package review

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/Dant324/bare-and-beautiful/internal/user"
)

type Handler struct {
	service *Service
	users   *user.Service
}

func NewHandler(service *Service, users *user.Service) *Handler {
	return &Handler{service: service, users: users}
}

func (h *Handler) RegisterPublicRoutes(app *fiber.App) {
	app.Get("/api/v1/testimonials", h.testimonials)
	app.Get("/api/v1/product/:id/reviews", h.listReviews)
	app.Get("/api/v1/product/:id/reviews/summary", h.reviewSummary)
}

func (h *Handler) RegisterProtectedRoutes(app *fiber.App) {
	app.Post("/api/v1/product/:id/reviews", h.submitReview)
}

func (h *Handler) RegisterAdminRoutes(admin fiber.Router) {
	admin.Delete("/review/:id", h.deleteReview)
}

func (h *Handler) listReviews(c *fiber.Ctx) error {
	return c.JSON(h.service.ListByProduct(c.Context(), c.Params("id")))
}

func (h *Handler) reviewSummary(c *fiber.Ctx) error {
	summary, err := h.service.Summarize(c.Context(), c.Params("id"))
	if err != nil {
		if errors.Is(err, ErrProductNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "product not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.JSON(summary)
}

func (h *Handler) testimonials(c *fiber.Ctx) error {
	return c.JSON(h.service.Testimonials(c.Context()))
}

type submitRequest struct {
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

func (h *Handler) submitReview(c *fiber.Ctx) error {
	userID, err := user.GetUserIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}
	// the review author always comes from the stored account, never from
	// anything the client typed
	u, err := h.users.GetByID(c.Context(), userID)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	payload := new(submitRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	rev, created, err := h.service.Submit(c.Context(), c.Params("id"),
		Identity{Email: u.Email, Name: u.Name}, payload.Rating, payload.Comment)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidRating), errors.Is(err, ErrEmptyComment):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
		case errors.Is(err, ErrProductNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "product not found"})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
		}
	}
	if created {
		return c.Status(fiber.StatusCreated).JSON(rev)
	}
	return c.JSON(rev)
}

func (h *Handler) deleteReview(c *fiber.Ctx) error {
	if err := h.service.Delete(c.Context(), c.Params("id")); err != nil {
		if errors.Is(err, ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "review not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.JSON(fiber.Map{"message": "review deleted"})
}
