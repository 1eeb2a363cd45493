package checkout

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"github.com/Dant324/bare-and-beautiful/internal/cart"
	"github.com/Dant324/bare-and-beautiful/internal/user"
)

type Handler struct {
	dispatcher *Dispatcher
	carts      *cart.Store
	users      *user.Service
}

func NewHandler(dispatcher *Dispatcher, carts *cart.Store, users *user.Service) *Handler {
	return &Handler{dispatcher: dispatcher, carts: carts, users: users}
}

func (h *Handler) RegisterProtectedRoutes(app *fiber.App) {
	app.Post("/api/v1/checkout", h.checkout)
	app.Get("/api/v1/checkout/whatsapp", h.whatsApp)
}

// checkout runs the email path: both template sends must resolve for the
// success response, but a send failure still counts as a placed order —
// there is nothing to roll back because nothing durable was written.
func (h *Handler) checkout(c *fiber.Ctx) error {
	userID, customer, summary, errResp := h.load(c)
	if errResp != nil {
		return errResp(c)
	}

	order := BuildOrder(customer, summary)
	if err := h.dispatcher.SendOrderEmails(c.Context(), order); err != nil {
		log.Printf("checkout: order %s email failed: %v", order.ID, err)
		return c.Status(fiber.StatusAccepted).JSON(fiber.Map{
			"message": "Order processed, but there was an issue sending the emails.",
			"orderId": order.ID,
		})
	}

	h.carts.Clear(userID)

	return c.JSON(fiber.Map{
		"message": "Order successful! A receipt has been sent to your email.",
		"orderId": order.ID,
	})
}

// whatsApp returns the deep link for the client to open; the cart is left
// untouched because the conversation continues off-platform.
func (h *Handler) whatsApp(c *fiber.Ctx) error {
	if !h.dispatcher.WhatsAppConfigured() {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"message": "WhatsApp checkout is not available"})
	}

	_, customer, summary, errResp := h.load(c)
	if errResp != nil {
		return errResp(c)
	}

	return c.JSON(fiber.Map{"link": h.dispatcher.WhatsAppLink(customer, summary)})
}

// load resolves the authenticated customer and their non-empty cart.
func (h *Handler) load(c *fiber.Ctx) (string, Customer, cart.Summary, func(*fiber.Ctx) error) {
	userID, err := user.GetUserIDFromCtx(c)
	if err != nil {
		return "", Customer{}, cart.Summary{}, func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
		}
	}

	u, err := h.users.GetByID(c.Context(), userID)
	if err != nil {
		return "", Customer{}, cart.Summary{}, func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
		}
	}

	summary := h.carts.Get(userID)
	if len(summary.Items) == 0 {
		return "", Customer{}, cart.Summary{}, func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "cart is empty"})
		}
	}

	return userID, Customer{Email: u.Email, Name: u.Name, Phone: u.Phone}, summary, nil
}
