package handlers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/stoicaandrei/monney2/internal/models"
	"github.com/stoicaandrei/monney2/internal/services"
)

type mockPreferenceService struct {
	currency models.WalletCurrency
}

func (m *mockPreferenceService) GetPreferences(userID string) (*models.UserPreference, error) {
	currency := m.currency
	if currency == "" {
		currency = models.CurrencyUSD
	}
	return &models.UserPreference{UserID: userID, DefaultCurrency: currency}, nil
}

func (m *mockPreferenceService) SetDefaultCurrency(userID string, currency models.WalletCurrency) (*models.UserPreference, error) {
	m.currency = currency
	return &models.UserPreference{UserID: userID, DefaultCurrency: currency}, nil
}

var _ services.PreferenceServicer = (*mockPreferenceService)(nil)

type mockHelpService struct {
	gotUserID *string
}

func (m *mockHelpService) CreateHelpMessage(userID *string, name, message string) (*models.HelpMessage, error) {
	m.gotUserID = userID
	return &models.HelpMessage{UserID: userID, Name: name, Message: message}, nil
}

var _ services.HelpServicer = (*mockHelpService)(nil)

func TestPreferenceHandler(t *testing.T) {
	svc := &mockPreferenceService{}
	handler := NewPreferenceHandler(svc)
	r := gin.New()
	auth := r.Group("", injectUserID(testUserID))
	auth.GET("/preferences", handler.GetPreferences)
	auth.PUT("/preferences/currency", handler.SetDefaultCurrency)

	t.Run("returns defaults", func(t *testing.T) {
		rec := doRequest(r, "GET", "/preferences", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		prefs := parseJSON(t, rec)["preferences"].(map[string]interface{})
		if prefs["default_currency"] != "USD" {
			t.Errorf("expected USD, got %v", prefs["default_currency"])
		}
	})

	t.Run("sets currency", func(t *testing.T) {
		rec := doRequest(r, "PUT", "/preferences/currency", `{"currency":"EUR"}`)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if svc.currency != models.CurrencyEUR {
			t.Errorf("expected EUR stored, got %q", svc.currency)
		}
	})

	t.Run("rejects unsupported currency", func(t *testing.T) {
		rec := doRequest(r, "PUT", "/preferences/currency", `{"currency":"DOGE"}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "INVALID_INPUT")
	})
}

func TestHelpHandler_SubmitHelp(t *testing.T) {
	t.Run("anonymous", func(t *testing.T) {
		svc := &mockHelpService{}
		r := gin.New()
		r.POST("/help", NewHelpHandler(svc).SubmitHelp)

		rec := doRequest(r, "POST", "/help", `{"name":"Ana","message":"How do I add a wallet?"}`)

		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
		if svc.gotUserID != nil {
			t.Errorf("expected no user id, got %q", *svc.gotUserID)
		}
	})

	t.Run("signed in", func(t *testing.T) {
		svc := &mockHelpService{}
		r := gin.New()
		r.POST("/help", injectUserID(testUserID), NewHelpHandler(svc).SubmitHelp)

		rec := doRequest(r, "POST", "/help", `{"name":"Ana","message":"Hi"}`)

		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d", rec.Code)
		}
		if svc.gotUserID == nil || *svc.gotUserID != testUserID {
			t.Errorf("expected user id %s, got %v", testUserID, svc.gotUserID)
		}
		msg := parseJSON(t, rec)["help_message"].(map[string]interface{})
		if msg["user_id"] != testUserID {
			t.Errorf("unexpected help message: %v", msg)
		}
	})

	t.Run("rejects empty message", func(t *testing.T) {
		r := gin.New()
		r.POST("/help", NewHelpHandler(&mockHelpService{}).SubmitHelp)

		rec := doRequest(r, "POST", "/help", `{"name":"Ana","message":""}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})
}
