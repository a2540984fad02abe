package integration

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/stoicaandrei/monney2/internal/config"
	"github.com/stoicaandrei/monney2/internal/logger"
	"github.com/stoicaandrei/monney2/internal/server"
	"github.com/stoicaandrei/monney2/internal/testutil"
	"github.com/stoicaandrei/monney2/internal/validator"
)

// testApp holds the full application stack for integration tests.
type testApp struct {
	DB     *gorm.DB
	Router *gin.Engine
}

func init() {
	gin.SetMode(gin.TestMode)
	logger.Init("test")
	validator.Register()
}

// setupApp creates a full application stack backed by an isolated in-memory SQLite.
func setupApp(t *testing.T) *testApp {
	t.Helper()

	db := testutil.SetupTestDB(t)
	cfg := &config.Config{
		DashboardLocation:   time.UTC,
		DashboardWindowDays: 30,
	}
	router := server.NewRouter(server.NewServices(db, cfg), cfg)

	return &testApp{DB: db, Router: router}
}

// request makes an HTTP request to the test router and returns the recorder.
func (app *testApp) request(method, path, body, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, req)
	return rec
}

// mustRequest performs the request and fails the test unless it returns want.
func (app *testApp) mustRequest(t *testing.T, want int, method, path, body, token string) map[string]interface{} {
	t.Helper()
	rec := app.request(method, path, body, token)
	if rec.Code != want {
		t.Fatalf("%s %s: expected %d, got %d: %s", method, path, want, rec.Code, rec.Body.String())
	}
	return parseJSON(t, rec)
}

// parseJSON parses the response body into a map.
func parseJSON(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var result map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse JSON: %v\nbody: %s", err, rec.Body.String())
	}
	return result
}

// errorCode returns the code of an error response.
func errorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	errObj, ok := parseJSON(t, rec)["error"].(map[string]interface{})
	if !ok {
		t.Fatalf("expected error object, got %s", rec.Body.String())
	}
	code, _ := errObj["code"].(string)
	return code
}

// registerUser registers a new user and returns the access token, refresh token, and user ID.
func (app *testApp) registerUser(t *testing.T, email, password string) (accessToken, refreshToken, userID string) {
	t.Helper()
	body := fmt.Sprintf(`{"email":%q,"password":%q,"name":"Test User"}`, email, password)
	result := app.mustRequest(t, http.StatusCreated, "POST", "/api/v1/auth/register", body, "")
	user := result["user"].(map[string]interface{})
	return result["access_token"].(string), result["refresh_token"].(string), user["id"].(string)
}

// loginUser logs in and returns the access and refresh tokens.
func (app *testApp) loginUser(t *testing.T, email, password string) (accessToken, refreshToken string) {
	t.Helper()
	body := fmt.Sprintf(`{"email":%q,"password":%q}`, email, password)
	result := app.mustRequest(t, http.StatusOK, "POST", "/api/v1/auth/login", body, "")
	return result["access_token"].(string), result["refresh_token"].(string)
}

// createWallet creates a USD wallet and returns its id.
func (app *testApp) createWallet(t *testing.T, token, name string, initialAmount int64) string {
	t.Helper()
	body := fmt.Sprintf(`{"name":%q,"currency":"USD","color":"blue","icon":"bank","initial_amount":%d}`, name, initialAmount)
	result := app.mustRequest(t, http.StatusCreated, "POST", "/api/v1/wallets", body, token)
	return result["wallet"].(map[string]interface{})["id"].(string)
}

// createCategory creates a category and returns its id. parentID may be empty.
func (app *testApp) createCategory(t *testing.T, token, name, categoryType, parentID string) string {
	t.Helper()
	body := fmt.Sprintf(`{"name":%q,"type":%q}`, name, categoryType)
	if parentID != "" {
		body = fmt.Sprintf(`{"name":%q,"type":%q,"parent_id":%q}`, name, categoryType, parentID)
	}
	result := app.mustRequest(t, http.StatusCreated, "POST", "/api/v1/categories", body, token)
	return result["category"].(map[string]interface{})["id"].(string)
}

// createTransaction records a transaction dated now and returns it.
func (app *testApp) createTransaction(t *testing.T, token, walletID, categoryID string, amount int64) map[string]interface{} {
	t.Helper()
	body := fmt.Sprintf(`{"wallet_id":%q,"category_id":%q,"amount":%d}`, walletID, categoryID, amount)
	result := app.mustRequest(t, http.StatusCreated, "POST", "/api/v1/transactions", body, token)
	return result["transaction"].(map[string]interface{})
}
