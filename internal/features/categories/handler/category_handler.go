package handler

import (
	"errors"
	"net/http"

	"storefront-api/internal/core/logger"
	"storefront-api/internal/features/categories/domain"
	"storefront-api/internal/features/categories/ports"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CategoryHandler handles HTTP requests for categories.
type CategoryHandler struct {
	service ports.CategoryService
}

// NewCategoryHandler creates a new CategoryHandler.
func NewCategoryHandler(service ports.CategoryService) *CategoryHandler {
	return &CategoryHandler{service: service}
}

// categoryPayload carries the mutable category fields. Page is a pointer so
// a missing field can be told apart from an explicit false.
type categoryPayload struct {
	DisplayName string `json:"displayName"`
	Href        string `json:"href"`
	Page        *bool  `json:"page"`
}

// GetAllCategories handles GET /api/category/getAllCategories.
// @Summary List all categories
// @Tags Categories
// @Produce json
// @Success 200 {object} map[string][]domain.Category
// @Failure 500 {object} map[string]string
// @Router /api/category/getAllCategories [get]
func (h *CategoryHandler) GetAllCategories(c *fiber.Ctx) error {
	categories, err := h.service.ListCategories(c.Context())
	if err != nil {
		logger.Get().Error("Failed to list categories", zap.Error(err))
		return internalError(c)
	}
	return c.Status(http.StatusOK).JSON(fiber.Map{"categories": categories})
}

// AddCategory handles POST /api/category/addCategory.
// @Summary Add a category
// @Tags Categories
// @Accept json
// @Produce json
// @Param category body categoryPayload true "Category"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /api/category/addCategory [post]
func (h *CategoryHandler) AddCategory(c *fiber.Ctx) error {
	payload, ok := parseCategory(c)
	if !ok {
		return incompleteData(c)
	}

	category, err := h.service.AddCategory(c.Context(), domain.Category{
		DisplayName: payload.DisplayName,
		Href:        payload.Href,
		Page:        *payload.Page,
	})
	if err != nil {
		if errors.Is(err, domain.ErrCategoryExists) {
			return c.Status(http.StatusConflict).JSON(fiber.Map{
				"message": "A category with this displayName or href already exists",
			})
		}
		logger.Get().Error("Failed to add category", zap.Error(err))
		return internalError(c)
	}

	return c.Status(http.StatusOK).JSON(fiber.Map{
		"message":  "New Category added successfully",
		"category": category,
	})
}

// UpdateCategory handles PUT /api/category/updateCategory/:id.
// @Summary Update a category
// @Tags Categories
// @Accept json
// @Produce json
// @Param id path string true "Category id"
// @Param category body categoryPayload true "Category"
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /api/category/updateCategory/{id} [put]
func (h *CategoryHandler) UpdateCategory(c *fiber.Ctx) error {
	id := c.Params("id")
	if !idValid(id) {
		return invalidID(c)
	}

	payload, ok := parseCategory(c)
	if !ok {
		return incompleteData(c)
	}

	err := h.service.UpdateCategory(c.Context(), id, domain.Category{
		DisplayName: payload.DisplayName,
		Href:        payload.Href,
		Page:        *payload.Page,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrCategoryNotFound):
			return categoryNotFound(c)
		case errors.Is(err, domain.ErrCategoryExists):
			return c.Status(http.StatusConflict).JSON(fiber.Map{
				"message": "A category already exists with this name or href",
			})
		default:
			logger.Get().Error("Failed to update category",
				zap.String("id", id),
				zap.Error(err),
			)
			return internalError(c)
		}
	}

	return c.Status(http.StatusOK).JSON(fiber.Map{"message": "Category updated successfully"})
}

// DeleteCategory handles DELETE /api/category/deleteCategory/:id.
// @Summary Delete a category and its products
// @Tags Categories
// @Produce json
// @Param id path string true "Category id"
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /api/category/deleteCategory/{id} [delete]
func (h *CategoryHandler) DeleteCategory(c *fiber.Ctx) error {
	id := c.Params("id")
	if !idValid(id) {
		return invalidID(c)
	}

	if err := h.service.DeleteCategory(c.Context(), id); err != nil {
		if errors.Is(err, domain.ErrCategoryNotFound) {
			return categoryNotFound(c)
		}
		logger.Get().Error("Failed to delete category",
			zap.String("id", id),
			zap.Error(err),
		)
		return internalError(c)
	}

	return c.Status(http.StatusOK).JSON(fiber.Map{"message": "Category deleted successfully"})
}

func parseCategory(c *fiber.Ctx) (categoryPayload, bool) {
	var payload categoryPayload
	if err := c.BodyParser(&payload); err != nil {
		return payload, false
	}
	if payload.DisplayName == "" || payload.Href == "" || payload.Page == nil {
		return payload, false
	}
	return payload, true
}

func idValid(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

func invalidID(c *fiber.Ctx) error {
	return c.Status(http.StatusBadRequest).JSON(fiber.Map{"message": "Invalid id"})
}

func incompleteData(c *fiber.Ctx) error {
	return c.Status(http.StatusBadRequest).JSON(fiber.Map{"message": "Incomplete data"})
}

func categoryNotFound(c *fiber.Ctx) error {
	return c.Status(http.StatusNotFound).JSON(fiber.Map{"message": "No category found with this id"})
}

func internalError(c *fiber.Ctx) error {
	return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"message": "Internal Server Error"})
}
