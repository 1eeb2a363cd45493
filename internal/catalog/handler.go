package catalog

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterPublicRoutes(app *fiber.App) {
	app.Get("/api/v1/products", h.listProducts)
	app.Get("/api/v1/products/featured", h.featuredProducts)
	app.Get("/api/v1/product/:id", h.getProduct)
}

// RegisterAdminRoutes attaches the catalog mutations to the admin group.
func (h *Handler) RegisterAdminRoutes(admin fiber.Router) {
	admin.Post("/products", h.createProduct)
	admin.Put("/product/:id", h.updateProduct)
	admin.Delete("/product/:id", h.deleteProduct)
}

func (h *Handler) listProducts(c *fiber.Ctx) error {
	f := Filter{
		Category: c.Query("category"),
		Query:    c.Query("q"),
		Brand:    c.Query("brand"),
		SkinType: c.Query("skinType"),
	}
	if v := c.Query("minPrice"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid minPrice"})
		}
		f.MinPrice = n
	}
	if v := c.Query("maxPrice"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid maxPrice"})
		}
		f.MaxPrice = n
	}

	products := h.service.List(c.Context(), f, c.Query("sort", SortFeatured))
	return c.JSON(products)
}

func (h *Handler) featuredProducts(c *fiber.Ctx) error {
	return c.JSON(h.service.Featured(c.Context()))
}

func (h *Handler) getProduct(c *fiber.Ctx) error {
	p, err := h.service.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "product not found"})
	}
	return c.JSON(p)
}

func validateProductPayload(p *Product) map[string]string {
	errs := map[string]string{}
	if p.Name == "" {
		errs["name"] = "name is required"
	}
	if p.Brand == "" {
		errs["brand"] = "brand is required"
	}
	if p.Price <= 0 {
		errs["price"] = "price must be > 0"
	}
	if !validCategory(p.Category) {
		errs["category"] = "invalid category"
	}
	if p.SkinType != nil && !validSkinType(*p.SkinType) {
		errs["skinType"] = "invalid skinType"
	}
	return errs
}

func (h *Handler) createProduct(c *fiber.Ctx) error {
	p := new(Product)
	if err := c.BodyParser(p); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	if ves := validateProductPayload(p); len(ves) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"errors": ves})
	}

	created, err := h.service.Create(c.Context(), *p)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(created)
}

func (h *Handler) updateProduct(c *fiber.Ctx) error {
	p := new(Product)
	if err := c.BodyParser(p); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	if ves := validateProductPayload(p); len(ves) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"errors": ves})
	}

	updated, err := h.service.Update(c.Context(), c.Params("id"), *p)
	if err != nil {
		if err == ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "product not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.JSON(updated)
}

func (h *Handler) deleteProduct(c *fiber.Ctx) error {
	if err := h.service.Delete(c.Context(), c.Params("id")); err != nil {
		if err == ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "product not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.JSON(fiber.Map{"message": "product deleted"})
}
