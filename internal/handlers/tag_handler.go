package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/stoicaandrei/monney2/internal/errors"
	"github.com/stoicaandrei/monney2/internal/services"
)

// TagHandler handles tag-related requests.
type TagHandler struct {
	tagService services.TagServicer
}

// NewTagHandler creates a new TagHandler.
func NewTagHandler(tagService services.TagServicer) *TagHandler {
	return &TagHandler{tagService: tagService}
}

// TagRequest is the payload for creating or renaming a tag.
type TagRequest struct {
	Name string `json:"name" binding:"required,min=1,max=50"`
}

// ListTags returns the user's tags, optionally filtered
// @Summary     List tags
// @Description Get the authenticated user's tags sorted by name. With q, only tags whose name contains q (ignoring case) are returned.
// @Tags        tags
// @Produce     json
// @Security    BearerAuth
// @Param       q query string false "Search text"
// @Success     200 {array} models.Tag "Tags"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /tags [get]
func (h *TagHandler) ListTags(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	tags, err := h.tagService.SearchTags(userID, c.Query("q"))
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"tags": tags})
}

// CreateTag creates a tag or returns the existing one with the same name
// @Summary     Create tag
// @Description Create a tag. If a tag with the same name (ignoring case) exists it is returned with 200 instead.
// @Tags        tags
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body TagRequest true "Tag name"
// @Success     201 {object} models.Tag "Tag created"
// @Success     200 {object} models.Tag "Existing tag"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /tags [post]
func (h *TagHandler) CreateTag(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req TagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	tag, created, err := h.tagService.CreateTag(userID, req.Name)
	if err != nil {
		respondWithError(c, err)
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	c.JSON(status, gin.H{"tag": tag})
}

// RenameTag renames a tag
// @Summary     Rename tag
// @Tags        tags
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path string     true "Tag ID"
// @Param       request body TagRequest true "New name"
// @Success     200 {object} models.Tag "Renamed tag"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Tag not found"
// @Failure     409 {object} ErrorResponse "Another tag has that name"
// @Router      /tags/{id} [put]
func (h *TagHandler) RenameTag(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	tagID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req TagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	tag, err := h.tagService.RenameTag(userID, tagID, req.Name)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"tag": tag})
}

// DeleteTag deletes a tag and detaches it from all transactions
// @Summary     Delete tag
// @Tags        tags
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Tag ID"
// @Success     200 {object} MessageResponse "Tag deleted"
// @Failure     400 {object} ErrorResponse "Invalid tag ID"
// @Failure     404 {object} ErrorResponse "Tag not found"
// @Router      /tags/{id} [delete]
func (h *TagHandler) DeleteTag(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	tagID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.tagService.DeleteTag(userID, tagID); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Tag deleted successfully"})
}
