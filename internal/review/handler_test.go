package review

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"

	"github.com/Dant324/bare-and-beautiful/internal/catalog"
	"github.com/Dant324/bare-and-beautiful/internal/user"
)

func makeReviewApp() *fiber.App {
	products := catalog.NewInMemoryRepository([]catalog.Product{
		{ID: "p1", Name: "Vitamin C Serum", Brand: "GlowSecrets", Price: 1500, Category: "skincare", Rating: 4.5},
	})
	users := user.NewService(user.NewInMemoryRepository([]user.User{
		{ID: "u1", Email: "jane@example.com", Name: "Jane"},
		{ID: "u2", Email: "amy@example.com", Name: "Amy"},
	}))
	svc := NewService(NewInMemoryRepository(nil), products)
	h := NewHandler(svc, users)

	app := fiber.New()
	h.RegisterPublicRoutes(app)
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

func submitReview(app *fiber.App, userID, body string) (int, []byte) {
	req := httptest.NewRequest("POST", "/api/v1/product/p1/reviews", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if userID != "" {
		req.Header.Set("X-User-ID", userID)
	}
	res, _ := app.Test(req)
	b, _ := io.ReadAll(res.Body)
	return res.StatusCode, b
}

func TestSubmitReviewRequiresAuth(t *testing.T) {
	app := makeReviewApp()

	code, _ := submitReview(app, "", `{"rating":5,"comment":"great"}`)
	if code != fiber.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", code)
	}
}

func TestSubmitReviewUsesStoredIdentity(t *testing.T) {
	app := makeReviewApp()

	code, body := submitReview(app, "u1", `{"rating":5,"comment":"great"}`)
	if code != fiber.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", code, body)
	}

	var rev Review
	if err := json.Unmarshal(body, &rev); err != nil {
		t.Fatalf("invalid body: %s", body)
	}
	if rev.UserEmail != "jane@example.com" || rev.UserName != "Jane" {
		t.Fatalf("author should come from the stored account, got %+v", rev)
	}
}

func TestSubmitReviewUpsertsPerUser(t *testing.T) {
	app := makeReviewApp()

	if code, body := submitReview(app, "u1", `{"rating":5,"comment":"great"}`); code != fiber.StatusCreated {
		t.Fatalf("expected 201 for a first review, got %d: %s", code, body)
	}
	submitReview(app, "u2", `{"rating":4,"comment":"nice"}`)
	// the same user reviewing again is an in-place update, not a create
	if code, body := submitReview(app, "u1", `{"rating":3,"comment":"changed my mind"}`); code != fiber.StatusOK {
		t.Fatalf("expected 200 for an updated review, got %d: %s", code, body)
	}

	req := httptest.NewRequest("GET", "/api/v1/product/p1/reviews", nil)
	res, _ := app.Test(req)
	var reviews []Review
	b, _ := io.ReadAll(res.Body)
	if err := json.Unmarshal(b, &reviews); err != nil {
		t.Fatalf("invalid body: %s", b)
	}
	if len(reviews) != 2 {
		t.Fatalf("expected one review per user, got %d: %s", len(reviews), b)
	}
	for _, rev := range reviews {
		if rev.UserEmail == "jane@example.com" && rev.Rating != 3 {
			t.Fatalf("expected jane's review updated to 3, got %d", rev.Rating)
		}
	}
}

func TestSubmitReviewValidationErrors(t *testing.T) {
	app := makeReviewApp()

	if code, _ := submitReview(app, "u1", `{"rating":0,"comment":"x"}`); code != fiber.StatusBadRequest {
		t.Fatalf("expected 400 for rating 0, got %d", code)
	}
	if code, _ := submitReview(app, "u1", `{"rating":4,"comment":""}`); code != fiber.StatusBadRequest {
		t.Fatalf("expected 400 for empty comment, got %d", code)
	}

	req := httptest.NewRequest("POST", "/api/v1/product/missing/reviews", strings.NewReader(`{"rating":4,"comment":"x"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-User-ID", "u1")
	res, _ := app.Test(req)
	if res.StatusCode != fiber.StatusNotFound {
		t.Fatalf("expected 404 for unknown product, got %d", res.StatusCode)
	}
}

func TestSummaryEndpoint(t *testing.T) {
	app := makeReviewApp()

	// before any review the stored rating is reported with a zero count
	req := httptest.NewRequest("GET", "/api/v1/product/p1/reviews/summary", nil)
	res, _ := app.Test(req)
	var s Summary
	b, _ := io.ReadAll(res.Body)
	if err := json.Unmarshal(b, &s); err != nil {
		t.Fatalf("invalid body: %s", b)
	}
	if s.Average != 4.5 || s.Count != 0 {
		t.Fatalf("expected seed rating 4.5 with count 0, got %+v", s)
	}

	submitReview(app, "u1", `{"rating":5,"comment":"great"}`)
	submitReview(app, "u2", `{"rating":4,"comment":"nice"}`)

	res2, _ := app.Test(httptest.NewRequest("GET", "/api/v1/product/p1/reviews/summary", nil))
	b2, _ := io.ReadAll(res2.Body)
	if err := json.Unmarshal(b2, &s); err != nil {
		t.Fatalf("invalid body: %s", b2)
	}
	if s.Average != 4.5 || s.Count != 2 {
		t.Fatalf("expected average 4.5 count 2, got %+v", s)
	}
}

func TestTestimonialsEndpoint(t *testing.T) {
	app := makeReviewApp()

	submitReview(app, "u1", `{"rating":5,"comment":"great"}`)
	submitReview(app, "u2", `{"rating":2,"comment":"meh"}`)

	req := httptest.NewRequest("GET", "/api/v1/testimonials", nil)
	res, _ := app.Test(req)
	var reviews []Review
	b, _ := io.ReadAll(res.Body)
	if err := json.Unmarshal(b, &reviews); err != nil {
		t.Fatalf("invalid body: %s", b)
	}
	if len(reviews) != 1 || reviews[0].Rating != 5 {
		t.Fatalf("expected only the high-rated review, got %s", b)
	}
}
