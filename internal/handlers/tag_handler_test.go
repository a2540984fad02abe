package handlers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"

	apperrors "github.com/stoicaandrei/monney2/internal/errors"
	"github.com/stoicaandrei/monney2/internal/models"
	"github.com/stoicaandrei/monney2/internal/services"
)

type mockTagService struct {
	listTagsFn   func(userID string) ([]models.Tag, error)
	searchTagsFn func(userID, query string) ([]models.Tag, error)
	createTagFn  func(userID, name string) (*models.Tag, bool, error)
	renameTagFn  func(userID, tagID, name string) (*models.Tag, error)
	deleteTagFn  func(userID, tagID string) error
}

func (m *mockTagService) ListTags(userID string) ([]models.Tag, error) {
	if m.listTagsFn != nil {
		return m.listTagsFn(userID)
	}
	return nil, nil
}

func (m *mockTagService) SearchTags(userID, query string) ([]models.Tag, error) {
	if m.searchTagsFn != nil {
		return m.searchTagsFn(userID, query)
	}
	return nil, nil
}

func (m *mockTagService) CreateTag(userID, name string) (*models.Tag, bool, error) {
	if m.createTagFn != nil {
		return m.createTagFn(userID, name)
	}
	return &models.Tag{}, true, nil
}

func (m *mockTagService) RenameTag(userID, tagID, name string) (*models.Tag, error) {
	if m.renameTagFn != nil {
		return m.renameTagFn(userID, tagID, name)
	}
	return &models.Tag{}, nil
}

func (m *mockTagService) DeleteTag(userID, tagID string) error {
	if m.deleteTagFn != nil {
		return m.deleteTagFn(userID, tagID)
	}
	return nil
}

var _ services.TagServicer = (*mockTagService)(nil)

func setupTagRouter(handler *TagHandler) *gin.Engine {
	r := gin.New()
	auth := r.Group("", injectUserID(testUserID))
	auth.GET("/tags", handler.ListTags)
	auth.POST("/tags", handler.CreateTag)
	auth.PUT("/tags/:id", handler.RenameTag)
	auth.DELETE("/tags/:id", handler.DeleteTag)
	return r
}

func TestTagHandler_ListTags(t *testing.T) {
	var gotQuery string
	svc := &mockTagService{
		searchTagsFn: func(_, query string) ([]models.Tag, error) {
			gotQuery = query
			return []models.Tag{{Name: "work"}}, nil
		},
	}
	r := setupTagRouter(NewTagHandler(svc))

	rec := doRequest(r, "GET", "/tags?q=wo", "")

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if gotQuery != "wo" {
		t.Errorf("expected query wo, got %q", gotQuery)
	}
	if tags := parseJSON(t, rec)["tags"].([]interface{}); len(tags) != 1 {
		t.Errorf("expected 1 tag, got %d", len(tags))
	}
}

func TestTagHandler_CreateTag(t *testing.T) {
	t.Run("returns 201 for a new tag", func(t *testing.T) {
		svc := &mockTagService{
			createTagFn: func(_, name string) (*models.Tag, bool, error) {
				return &models.Tag{Base: models.Base{ID: testTagID}, Name: name}, true, nil
			},
		}
		r := setupTagRouter(NewTagHandler(svc))

		rec := doRequest(r, "POST", "/tags", `{"name":"vacation"}`)

		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d", rec.Code)
		}
		if tag := parseJSON(t, rec)["tag"].(map[string]interface{}); tag["name"] != "vacation" {
			t.Errorf("unexpected tag: %v", tag)
		}
	})

	t.Run("returns 200 for an existing tag", func(t *testing.T) {
		svc := &mockTagService{
			createTagFn: func(_, name string) (*models.Tag, bool, error) {
				return &models.Tag{Base: models.Base{ID: testTagID}, Name: name}, false, nil
			},
		}
		r := setupTagRouter(NewTagHandler(svc))

		rec := doRequest(r, "POST", "/tags", `{"name":"vacation"}`)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
	})

	t.Run("returns 400 on empty name", func(t *testing.T) {
		r := setupTagRouter(NewTagHandler(&mockTagService{}))

		rec := doRequest(r, "POST", "/tags", `{"name":""}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})
}

func TestTagHandler_RenameTag(t *testing.T) {
	t.Run("returns 200 on success", func(t *testing.T) {
		svc := &mockTagService{
			renameTagFn: func(_, tagID, name string) (*models.Tag, error) {
				return &models.Tag{Base: models.Base{ID: tagID}, Name: name}, nil
			},
		}
		r := setupTagRouter(NewTagHandler(svc))

		rec := doRequest(r, "PUT", "/tags/"+testTagID, `{"name":"travel"}`)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
	})

	t.Run("returns 409 on duplicate name", func(t *testing.T) {
		svc := &mockTagService{
			renameTagFn: func(_, _, _ string) (*models.Tag, error) { return nil, apperrors.ErrDuplicateTagName },
		}
		r := setupTagRouter(NewTagHandler(svc))

		rec := doRequest(r, "PUT", "/tags/"+testTagID, `{"name":"work"}`)

		if rec.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "DUPLICATE_TAG_NAME")
	})
}

func TestTagHandler_DeleteTag(t *testing.T) {
	t.Run("returns 200 on success", func(t *testing.T) {
		var deleted string
		svc := &mockTagService{
			deleteTagFn: func(_, tagID string) error {
				deleted = tagID
				return nil
			},
		}
		r := setupTagRouter(NewTagHandler(svc))

		rec := doRequest(r, "DELETE", "/tags/"+testTagID, "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if deleted != testTagID {
			t.Errorf("expected %s deleted, got %q", testTagID, deleted)
		}
	})

	t.Run("returns 404 when missing", func(t *testing.T) {
		svc := &mockTagService{
			deleteTagFn: func(_, _ string) error { return apperrors.ErrTagNotFound },
		}
		r := setupTagRouter(NewTagHandler(svc))

		rec := doRequest(r, "DELETE", "/tags/"+testTagID, "")

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
	})
}
