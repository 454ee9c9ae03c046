package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"storefront-api/internal/core/logger"
	"storefront-api/internal/features/products/domain"
	"storefront-api/internal/features/products/ports"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ProductHandler handles HTTP requests for the product catalog.
type ProductHandler struct {
	service ports.ProductService
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(service ports.ProductService) *ProductHandler {
	return &ProductHandler{service: service}
}

// productPayload is the request envelope for add and update.
type productPayload struct {
	Product domain.Product `json:"product"`
}

// GetAllProducts handles GET /api/product/getAllProducts.
// @Summary List all products
// @Tags Products
// @Produce json
// @Success 200 {object} map[string][]domain.Product
// @Failure 500 {object} map[string]string
// @Router /api/product/getAllProducts [get]
func (h *ProductHandler) GetAllProducts(c *fiber.Ctx) error {
	products, err := h.service.ListProducts(c.Context())
	if err != nil {
		logger.Get().Error("Failed to list products", zap.Error(err))
		return internalError(c)
	}
	return c.Status(http.StatusOK).JSON(fiber.Map{"products": products})
}

// GetProductByProductID handles GET /api/product/getProductByProductId/:productId.
// @Summary Get a product by its product id
// @Tags Products
// @Produce json
// @Param productId path string true "Product id"
// @Success 200 {object} map[string]domain.Product
// @Failure 404 {object} map[string]string
// @Router /api/product/getProductByProductId/{productId} [get]
func (h *ProductHandler) GetProductByProductID(c *fiber.Ctx) error {
	return h.respondProduct(c, func() (*domain.Product, error) {
		return h.service.GetByProductID(c.Context(), c.Params("productId"))
	})
}

// GetProductByDesignID handles GET /api/product/getProductByDesignId/:designId.
// @Summary Get a product by its design id
// @Tags Products
// @Produce json
// @Param designId path string true "Design id"
// @Success 200 {object} map[string]domain.Product
// @Failure 404 {object} map[string]string
// @Router /api/product/getProductByDesignId/{designId} [get]
func (h *ProductHandler) GetProductByDesignID(c *fiber.Ctx) error {
	return h.respondProduct(c, func() (*domain.Product, error) {
		return h.service.GetByDesignID(c.Context(), c.Params("designId"))
	})
}

// GetProductByID handles GET /api/product/getProductById/:id.
// @Summary Get a product by its internal id
// @Tags Products
// @Produce json
// @Param id path string true "Internal product id"
// @Success 200 {object} map[string]domain.Product
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /api/product/getProductById/{id} [get]
func (h *ProductHandler) GetProductByID(c *fiber.Ctx) error {
	id := c.Params("id")
	if !idValid(id) {
		return invalidID(c)
	}
	return h.respondProduct(c, func() (*domain.Product, error) {
		return h.service.GetByID(c.Context(), id)
	})
}

func (h *ProductHandler) respondProduct(c *fiber.Ctx, fetch func() (*domain.Product, error)) error {
	product, err := fetch()
	if err != nil {
		if errors.Is(err, domain.ErrProductNotFound) {
			return productNotFound(c)
		}
		logger.Get().Error("Failed to fetch product", zap.Error(err))
		return internalError(c)
	}
	return c.Status(http.StatusOK).JSON(fiber.Map{"product": product})
}

// GetProductsByCategory handles GET /api/product/getProductsByCategory/:category.
// @Summary List products in a category
// @Tags Products
// @Produce json
// @Param category path string true "Category href"
// @Success 200 {object} map[string][]domain.Product
// @Failure 500 {object} map[string]string
// @Router /api/product/getProductsByCategory/{category} [get]
func (h *ProductHandler) GetProductsByCategory(c *fiber.Ctx) error {
	products, err := h.service.ListByCategory(c.Context(), c.Params("category"))
	if err != nil {
		logger.Get().Error("Failed to list products by category",
			zap.String("category", c.Params("category")),
			zap.Error(err),
		)
		return internalError(c)
	}
	return c.Status(http.StatusOK).JSON(fiber.Map{"products": products})
}

// SearchProducts handles GET /api/product/searchProducts?query=.
// @Summary Search products
// @Tags Products
// @Produce json
// @Param query query string true "Search text"
// @Success 200 {object} map[string][]domain.Product
// @Failure 500 {object} map[string]string
// @Router /api/product/searchProducts [get]
func (h *ProductHandler) SearchProducts(c *fiber.Ctx) error {
	products, err := h.service.Search(c.Context(), c.Query("query"))
	if err != nil {
		logger.Get().Error("Failed to search products",
			zap.String("query", c.Query("query")),
			zap.Error(err),
		)
		return internalError(c)
	}
	return c.Status(http.StatusOK).JSON(fiber.Map{"products": products})
}

// AddProduct handles POST /api/product/addProduct.
// @Summary Add a product
// @Tags Products
// @Accept json
// @Produce json
// @Param product body productPayload true "Product"
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /api/product/addProduct [post]
func (h *ProductHandler) AddProduct(c *fiber.Ctx) error {
	var payload productPayload
	if err := c.BodyParser(&payload); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"message": "Incomplete data"})
	}
	if msg := validateProduct(payload.Product); msg != "" {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"message": msg})
	}

	if err := h.service.AddProduct(c.Context(), payload.Product); err != nil {
		return h.mutationError(c, err)
	}
	return c.Status(http.StatusOK).JSON(fiber.Map{"message": "Product has been added"})
}

// UpdateProduct handles PUT /api/product/updateProduct/:id.
// @Summary Update a product
// @Tags Products
// @Accept json
// @Produce json
// @Param id path string true "Internal product id"
// @Param product body productPayload true "Product"
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /api/product/updateProduct/{id} [put]
func (h *ProductHandler) UpdateProduct(c *fiber.Ctx) error {
	id := c.Params("id")
	if !idValid(id) {
		return invalidID(c)
	}

	var payload productPayload
	if err := c.BodyParser(&payload); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"message": "Incomplete data"})
	}
	if msg := validateProduct(payload.Product); msg != "" {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"message": msg})
	}

	if err := h.service.UpdateProduct(c.Context(), id, payload.Product); err != nil {
		return h.mutationError(c, err)
	}
	return c.Status(http.StatusOK).JSON(fiber.Map{"message": "Product updated successfully"})
}

// DeleteProduct handles DELETE /api/product/deleteProduct/:id.
// @Summary Delete a product
// @Tags Products
// @Produce json
// @Param id path string true "Internal product id"
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /api/product/deleteProduct/{id} [delete]
func (h *ProductHandler) DeleteProduct(c *fiber.Ctx) error {
	id := c.Params("id")
	if !idValid(id) {
		return invalidID(c)
	}

	if err := h.service.DeleteProduct(c.Context(), id); err != nil {
		if errors.Is(err, domain.ErrProductNotFound) {
			return productNotFound(c)
		}
		logger.Get().Error("Failed to delete product",
			zap.String("id", id),
			zap.Error(err),
		)
		return internalError(c)
	}
	return c.Status(http.StatusOK).JSON(fiber.Map{"message": "Product has been deleted successfully"})
}

func (h *ProductHandler) mutationError(c *fiber.Ctx, err error) error {
	var conflict *domain.ConflictError
	switch {
	case errors.Is(err, domain.ErrCategoryNotFound):
		return c.Status(http.StatusNotFound).JSON(fiber.Map{"message": "Category not found"})
	case errors.As(err, &conflict):
		return c.Status(http.StatusConflict).JSON(fiber.Map{
			"message": fmt.Sprintf("A product with this %s already exists", conflict.Field),
		})
	case errors.Is(err, domain.ErrProductNotFound):
		return productNotFound(c)
	default:
		logger.Get().Error("Product mutation failed", zap.Error(err))
		return internalError(c)
	}
}

// validateProduct checks the payload shape and returns a rejection message,
// or "" when the product is usable.
func validateProduct(p domain.Product) string {
	var missing []string
	appendIf := func(cond bool, field string) {
		if cond {
			missing = append(missing, field)
		}
	}
	appendIf(p.ProductID == "", "productId")
	appendIf(p.DesignID == "", "designId")
	appendIf(p.ProductTitle == "", "productTitle")
	appendIf(p.ProductDesc == "", "productDesc")
	appendIf(p.Category == "", "category")
	appendIf(p.Composition == "", "composition")
	appendIf(p.GSM == "", "gsm")
	appendIf(p.WashCare == "", "washCare")
	appendIf(p.Price == 0, "price")
	appendIf(len(p.ProductImages) == 0, "productImages")
	appendIf(len(p.Variants) == 0, "variants")

	if len(missing) > 0 {
		return fmt.Sprintf("Incomplete data %s", strings.Join(missing, ","))
	}

	for _, v := range p.Variants {
		if v.Size == "" || v.Quantity <= 0 || v.Color.Name == "" || v.Color.HexCode == "" {
			return "Invalid variant data"
		}
	}
	return ""
}

func idValid(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

func invalidID(c *fiber.Ctx) error {
	return c.Status(http.StatusBadRequest).JSON(fiber.Map{"message": "Invalid id"})
}

func productNotFound(c *fiber.Ctx) error {
	return c.Status(http.StatusNotFound).JSON(fiber.Map{"message": "No product found"})
}

func internalError(c *fiber.Ctx) error {
	return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"message": "Internal Server Error"})
}
