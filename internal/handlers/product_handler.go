package handlers

import (
	"errors"
	"fmt"
	"log"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"catalogue/internal/models"
	"catalogue/internal/services"
)

// ProductHandler handles HTTP requests for products.
type ProductHandler struct {
	service  *services.ProductService
	validate *validator.Validate
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(service *services.ProductService) *ProductHandler {
	return &ProductHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the product routes with the Fiber app.
func (h *ProductHandler) RegisterRoutes(router fiber.Router) {
	productRoutes := router.Group("/products")
	productRoutes.Post("/", h.HandleCreateProduct)
	productRoutes.Get("/", h.HandleListProducts)
	productRoutes.Get("/:id", h.HandleGetProduct)
	productRoutes.Put("/:id", h.HandleUpdateProduct)
	productRoutes.Delete("/:id", h.HandleDeleteProduct)
}

// HandleCreateProduct creates a new product with its prices.
func (h *ProductHandler) HandleCreateProduct(c *fiber.Ctx) error {
	var req models.CreateProductRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing create product request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if err := h.validate.Struct(req); err != nil {
		return validationErrorResponse(c, err)
	}

	product, err := h.service.Create(&req)
	if err != nil {
		log.Printf("Error creating product: %v", err)
		return serviceErrorResponse(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(product)
}

// HandleGetProduct retrieves a single product by its id.
func (h *ProductHandler) HandleGetProduct(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid product id",
			"error":   err.Error(),
		})
	}

	product, err := h.service.GetByID(id)
	if err != nil {
		return serviceErrorResponse(c, err)
	}
	return c.JSON(product)
}

// HandleListProducts retrieves a page of products. skip/limit default to
// 0/100; an empty page is returned as 200 with an empty array.
func (h *ProductHandler) HandleListProducts(c *fiber.Ctx) error {
	skip := c.QueryInt("skip", 0)
	limit := c.QueryInt("limit", 100)
	if skip < 0 {
		skip = 0
	}
	if limit < 0 {
		limit = 100
	}

	products, err := h.service.List(skip, limit)
	if err != nil {
		log.Printf("Error listing products: %v", err)
		return serviceErrorResponse(c, err)
	}
	return c.JSON(products)
}

// HandleUpdateProduct applies a partial update; only fields present in the
// body are changed.
func (h *ProductHandler) HandleUpdateProduct(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid product id",
			"error":   err.Error(),
		})
	}

	var req models.UpdateProductRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing update product request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if err := h.validate.Struct(req); err != nil {
		return validationErrorResponse(c, err)
	}

	product, err := h.service.Update(id, &req)
	if err != nil {
		log.Printf("Error updating product %d: %v", id, err)
		return serviceErrorResponse(c, err)
	}
	return c.JSON(product)
}

// HandleDeleteProduct removes a product and all its prices.
func (h *ProductHandler) HandleDeleteProduct(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid product id",
			"error":   err.Error(),
		})
	}

	if err := h.service.Delete(id); err != nil {
		log.Printf("Error deleting product %d: %v", id, err)
		return serviceErrorResponse(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// parseID reads the :id path parameter as an unsigned integer.
func parseID(c *fiber.Ctx) (uint, error) {
	raw := c.Params("id")
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("product id must be a positive integer, got %q", raw)
	}
	return uint(id), nil
}

// validationErrorResponse shapes validator failures into a 400 response with
// a per-field breakdown.
func validationErrorResponse(c *fiber.Ctx, err error) error {
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		errorMessages := make(map[string]string)
		for _, e := range validationErrors {
			errorMessages[e.Field()] = fmt.Sprintf("Field '%s' failed on the '%s' tag", e.Field(), e.Tag())
		}
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"errors":  errorMessages,
		})
	}
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"message": "Validation failed",
		"error":   err.Error(),
	})
}

// serviceErrorResponse maps the service error taxonomy onto HTTP statuses:
// validation 400, not found 404, name conflict 409, store failure 422 and
// anything else 400 with the error message in the body.
func serviceErrorResponse(c *fiber.Ctx, err error) error {
	var (
		validationErr  *services.ValidationError
		notFoundErr    *services.NotFoundError
		conflictErr    *services.ConflictError
		persistenceErr *services.PersistenceError
	)
	switch {
	case errors.As(err, &validationErr):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"error":   validationErr.Error(),
		})
	case errors.As(err, &notFoundErr):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": notFoundErr.Error(),
		})
	case errors.As(err, &conflictErr):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"message": "Product name already exists",
			"error":   conflictErr.Error(),
		})
	case errors.As(err, &persistenceErr):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"message": "Could not complete the operation",
			"error":   persistenceErr.Error(),
		})
	default:
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Request failed",
			"error":   err.Error(),
		})
	}
}
