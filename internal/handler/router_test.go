package handler

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"campus_market/internal/middleware"
	"campus_market/internal/repository"
	"campus_market/internal/service"
	"campus_market/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

// testEnv wires the full API over the in-memory store, with real JWT auth
type testEnv struct {
	router  *gin.Engine
	jwtUtil *utils.JWTUtil
	catalog service.CatalogService
	ledger  service.LedgerService
	access  service.AccessService
	reviews service.ReviewService
	auth    service.AuthService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := repository.NewMemoryStore()
	jwtUtil := utils.NewJWTUtil("test-secret", 1)

	catalog := service.NewCatalogService(store.Products())
	ledger := service.NewLedgerService(store.Transactions())
	access := service.NewAccessService(store.ContactAccess())
	reviews := service.NewReviewService(store.Reviews())
	auth := service.NewAuthService(store.Users(), jwtUtil)
	purchases := service.NewPurchaseService(catalog, ledger, access, service.NewMockPaymentGateway(), 0, 0)

	router := gin.New()
	api := router.Group("/api")
	authMW := middleware.JWTAuthMiddleware(jwtUtil)
	adminMW := middleware.AdminMiddleware()

	NewAuthHandler(auth).RegisterAuthRoutes(api)
	NewProductHandler(catalog).RegisterProductRoutes(api, authMW, adminMW)
	NewTransactionHandler(ledger).RegisterTransactionRoutes(api, authMW)
	NewContactAccessHandler(access).RegisterContactAccessRoutes(api, authMW)
	NewReviewHandler(reviews).RegisterReviewRoutes(api, authMW)
	NewPurchaseHandler(purchases).RegisterPurchaseRoutes(api, authMW)

	return &testEnv{
		router:  router,
		jwtUtil: jwtUtil,
		catalog: catalog,
		ledger:  ledger,
		access:  access,
		reviews: reviews,
		auth:    auth,
	}
}

func (e *testEnv) token(t *testing.T, userID int, role string) string {
	t.Helper()
	token, err := e.jwtUtil.GenerateToken(userID, role)
	require.NoError(t, err)
	return token
}

func (e *testEnv) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func decodeJSON(t *testing.T, w *httptest.ResponseRecorder, out any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), out), "body: %s", w.Body.String())
}
