package checkout

import (
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"

	"github.com/Dant324/bare-and-beautiful/internal/cart"
	"github.com/Dant324/bare-and-beautiful/internal/catalog"
	"github.com/Dant324/bare-and-beautiful/internal/user"
)

type stubEmail struct {
	sent []string
	err  error
}

func (s *stubEmail) Send(ctx context.Context, templateID string, params map[string]string) error {
	s.sent = append(s.sent, templateID)
	return s.err
}

func makeCheckoutApp(h *Handler) *fiber.App {
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		if v := c.Get("X-User-ID"); v != "" {
			claims := jwt.MapClaims{"user_id": v}
			tok := &jwt.Token{Claims: claims}
			c.Locals("user", tok)
		}
		return c.Next()
	})
	h.RegisterProtectedRoutes(app)
	return app
}

func checkoutFixture(email EmailSender, whatsAppNumber string) (*Handler, *cart.Store) {
	users := user.NewService(user.NewInMemoryRepository([]user.User{
		{ID: "u1", Email: "jane@example.com", Name: "Jane", Phone: "0712000000"},
	}))
	carts := cart.NewStore()
	carts.Add("u1", catalog.Product{ID: "p1", Name: "Vitamin C Serum", Price: 1200}, 1)
	carts.Add("u1", catalog.Product{ID: "p2", Name: "Rose Mist", Price: 900}, 2)

	d := NewDispatcher(email, "tmpl_customer", "tmpl_business", whatsAppNumber)
	return NewHandler(d, carts, users), carts
}

func TestCheckoutSuccessClearsCart(t *testing.T) {
	email := &stubEmail{}
	handler, carts := checkoutFixture(email, "")
	app := makeCheckoutApp(handler)

	req := httptest.NewRequest("POST", "/api/v1/checkout", nil)
	req.Header.Set("X-User-ID", "u1")
	res, _ := app.Test(req)
	if res.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", res.StatusCode)
	}

	var body map[string]string
	b, _ := io.ReadAll(res.Body)
	if err := json.Unmarshal(b, &body); err != nil {
		t.Fatalf("invalid response body: %s", b)
	}
	if body["orderId"] == "" {
		t.Fatalf("expected orderId in response, got %s", b)
	}
	if len(email.sent) != 2 || email.sent[0] != "tmpl_customer" || email.sent[1] != "tmpl_business" {
		t.Fatalf("expected customer then business send, got %v", email.sent)
	}
	if got := carts.Get("u1").ItemCount; got != 0 {
		t.Fatalf("expected cart cleared after checkout, item count %d", got)
	}
}

func TestCheckoutEmailFailureStillPlacesOrder(t *testing.T) {
	email := &stubEmail{err: context.DeadlineExceeded}
	handler, carts := checkoutFixture(email, "")
	app := makeCheckoutApp(handler)

	req := httptest.NewRequest("POST", "/api/v1/checkout", nil)
	req.Header.Set("X-User-ID", "u1")
	res, _ := app.Test(req)
	if res.StatusCode != fiber.StatusAccepted {
		t.Fatalf("expected 202 on email failure, got %d", res.StatusCode)
	}

	var body map[string]string
	b, _ := io.ReadAll(res.Body)
	if err := json.Unmarshal(b, &body); err != nil {
		t.Fatalf("invalid response body: %s", b)
	}
	if body["orderId"] == "" {
		t.Fatalf("expected orderId despite email failure, got %s", b)
	}
	// the failed email path does not clear the cart
	if got := carts.Get("u1").ItemCount; got != 3 {
		t.Fatalf("expected cart untouched on email failure, item count %d", got)
	}
}

func TestCheckoutEmptyCart(t *testing.T) {
	handler, carts := checkoutFixture(&stubEmail{}, "")
	carts.Clear("u1")
	app := makeCheckoutApp(handler)

	req := httptest.NewRequest("POST", "/api/v1/checkout", nil)
	req.Header.Set("X-User-ID", "u1")
	res, _ := app.Test(req)
	if res.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("expected 400 for empty cart, got %d", res.StatusCode)
	}
}

func TestCheckoutUnauthenticated(t *testing.T) {
	handler, _ := checkoutFixture(&stubEmail{}, "")
	app := makeCheckoutApp(handler)

	req := httptest.NewRequest("POST", "/api/v1/checkout", nil)
	res, _ := app.Test(req)
	if res.StatusCode != fiber.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", res.StatusCode)
	}
}

func TestWhatsAppEndpoint(t *testing.T) {
	handler, carts := checkoutFixture(&stubEmail{}, "254712345678")
	app := makeCheckoutApp(handler)

	req := httptest.NewRequest("GET", "/api/v1/checkout/whatsapp", nil)
	req.Header.Set("X-User-ID", "u1")
	res, _ := app.Test(req)
	if res.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", res.StatusCode)
	}

	var body map[string]string
	b, _ := io.ReadAll(res.Body)
	if err := json.Unmarshal(b, &body); err != nil {
		t.Fatalf("invalid response body: %s", b)
	}
	if got := body["link"]; !strings.HasPrefix(got, "https://wa.me/254712345678?text=") {
		t.Fatalf("unexpected link %q", got)
	}

	// the WhatsApp path never clears the cart
	if got := carts.Get("u1").ItemCount; got != 3 {
		t.Fatalf("expected cart untouched, item count %d", got)
	}
}

func TestWhatsAppUnconfigured(t *testing.T) {
	handler, _ := checkoutFixture(&stubEmail{}, "")
	app := makeCheckoutApp(handler)

	req := httptest.NewRequest("GET", "/api/v1/checkout/whatsapp", nil)
	req.Header.Set("X-User-ID", "u1")
	res, _ := app.Test(req)
	if res.StatusCode != fiber.StatusServiceUnavailable {
		t.Fatalf("expected 503 when WhatsApp is unconfigured, got %d", res.StatusCode)
	}
}
