package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/stoicaandrei/monney2/internal/categorytree"
	apperrors "github.com/stoicaandrei/monney2/internal/errors"
	"github.com/stoicaandrei/monney2/internal/models"
	"github.com/stoicaandrei/monney2/internal/services"
)

// CategoryHandler handles category-related requests
type CategoryHandler struct {
	categoryService services.CategoryServicer
	auditService    services.AuditServicer
}

// NewCategoryHandler creates a new CategoryHandler
func NewCategoryHandler(categoryService services.CategoryServicer, auditService services.AuditServicer) *CategoryHandler {
	return &CategoryHandler{categoryService: categoryService, auditService: auditService}
}

// CreateCategoryRequest represents the request payload for creating a category
type CreateCategoryRequest struct {
	Name     string              `json:"name" binding:"required,min=1,max=100"`
	Type     models.CategoryType `json:"type" binding:"required,category_type"`
	Color    string              `json:"color" binding:"omitempty,hex_color"`
	ParentID *string             `json:"parent_id" binding:"omitempty,uuid"`
}

// UpdateCategoryRequest represents the request payload for updating a category.
// Type and parent cannot be changed here; use reorder to move a category.
type UpdateCategoryRequest struct {
	Name  *string `json:"name" binding:"omitempty,min=1,max=100"`
	Color *string `json:"color" binding:"omitempty,hex_color"`
}

// ReorderCategoriesRequest carries the flattened placements of one
// category type after a drag-and-drop edit.
type ReorderCategoriesRequest struct {
	Type    models.CategoryType      `json:"type" binding:"required,category_type"`
	Updates []categorytree.Placement `json:"updates" binding:"required"`
}

// categoryTypeQuery reads the required ?type= query parameter.
func categoryTypeQuery(c *gin.Context) (models.CategoryType, error) {
	categoryType := models.CategoryType(c.Query("type"))
	if !categoryType.Valid() {
		return "", apperrors.WithMessage(apperrors.ErrInvalidInput, "type must be income or expense")
	}
	return categoryType, nil
}

// CreateCategory handles the creation of a new category
// @Summary     Create a category
// @Description Create a category, optionally under a parent of the same type. It is placed after its siblings.
// @Tags        categories
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateCategoryRequest true "Category details"
// @Success     201 {object} models.Category "Category created"
// @Failure     400 {object} ErrorResponse "Invalid input or parent type mismatch"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Parent category not found"
// @Failure     409 {object} ErrorResponse "Sibling with the same name exists"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /categories [post]
func (h *CategoryHandler) CreateCategory(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	category, err := h.categoryService.CreateCategory(userID, req.Name, req.Type, req.Color, req.ParentID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"category": category})
}

// ListCategories handles the retrieval of a user's categories of one type
// @Summary     List categories
// @Description Get the flat list of the authenticated user's categories of the given type
// @Tags        categories
// @Produce     json
// @Security    BearerAuth
// @Param       type query string true "Category type (income/expense)"
// @Success     200 {array} models.Category "Categories"
// @Failure     400 {object} ErrorResponse "Invalid type"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /categories [get]
func (h *CategoryHandler) ListCategories(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	categoryType, err := categoryTypeQuery(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	categories, err := h.categoryService.ListCategories(userID, categoryType)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"categories": categories})
}

// GetCategoryTree returns the nested category forest of one type
// @Summary     Category tree
// @Description Get the authenticated user's categories of the given type as a forest with ordered children
// @Tags        categories
// @Produce     json
// @Security    BearerAuth
// @Param       type query string true "Category type (income/expense)"
// @Success     200 {array} categorytree.Node "Category forest"
// @Failure     400 {object} ErrorResponse "Invalid type"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /categories/tree [get]
func (h *CategoryHandler) GetCategoryTree(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	categoryType, err := categoryTypeQuery(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	tree, err := h.categoryService.GetCategoryTree(userID, categoryType)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"tree": tree})
}

// GetCategoryByID handles the retrieval of a specific category
// @Summary     Get category by ID
// @Tags        categories
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Category ID"
// @Success     200 {object} models.Category "Category details"
// @Failure     400 {object} ErrorResponse "Invalid category ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     403 {object} ErrorResponse "Not the owner"
// @Failure     404 {object} ErrorResponse "Category not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /categories/{id} [get]
func (h *CategoryHandler) GetCategoryByID(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	categoryID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	category, err := h.categoryService.GetCategoryByID(userID, categoryID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"category": category})
}

// UpdateCategory handles updating a category
// @Summary     Update category
// @Description Rename or recolor a category
// @Tags        categories
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path string                true "Category ID"
// @Param       request body UpdateCategoryRequest true "Fields to change"
// @Success     200 {object} models.Category "Updated category"
// @Failure     400 {object} ErrorResponse "Invalid input or category ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     403 {object} ErrorResponse "Not the owner"
// @Failure     404 {object} ErrorResponse "Category not found"
// @Failure     409 {object} ErrorResponse "Sibling with the same name exists"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /categories/{id} [put]
func (h *CategoryHandler) UpdateCategory(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	categoryID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	category, err := h.categoryService.UpdateCategory(userID, categoryID, req.Name, req.Color)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"category": category})
}

// DeleteCategory handles deleting a category
// @Summary     Delete category
// @Description Delete a category. Its children move up to its parent and its transactions are kept.
// @Tags        categories
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Category ID"
// @Success     200 {object} MessageResponse "Category deleted"
// @Failure     400 {object} ErrorResponse "Invalid category ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     403 {object} ErrorResponse "Not the owner"
// @Failure     404 {object} ErrorResponse "Category not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /categories/{id} [delete]
func (h *CategoryHandler) DeleteCategory(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	categoryID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.categoryService.DeleteCategory(userID, categoryID); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "DELETE_CATEGORY", "category", categoryID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"message": "Category deleted successfully"})
}

// ReorderCategories applies a batch of parent/order placements
// @Summary     Reorder categories
// @Description Best-effort move of categories of one type. Entries naming unknown, foreign or other-type categories, or an invalid parent, are skipped.
// @Tags        categories
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body ReorderCategoriesRequest true "Placements"
// @Success     200 {object} ReorderResponse "Number of categories updated"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /categories/reorder [put]
func (h *CategoryHandler) ReorderCategories(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req ReorderCategoriesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	updated, err := h.categoryService.ReorderCategories(userID, req.Type, req.Updates)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, ReorderResponse{Updated: updated})
}
