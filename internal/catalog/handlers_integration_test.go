package catalog_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/CivicLink/Civic311-Backend/internal/catalog"
	"github.com/CivicLink/Civic311-Backend/internal/db"
	"github.com/CivicLink/Civic311-Backend/internal/middleware"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
)

// dbAvailable tracks whether the database connection was established.
var dbAvailable bool

// testServer is the shared httptest server for all integration tests.
var testServer *httptest.Server

// allowAll grants every permission check; denial paths are covered by the
// middleware tests.
type allowAll struct{}

func (allowAll) HasAny(ctx context.Context, token, jurisdictionID string, perms []string) bool {
	return true
}

func TestMain(m *testing.M) {
	// Load .env.local relative to the repo root (two directories up from internal/catalog/).
	_ = godotenv.Load("../../.env.local")

	if os.Getenv("DATABASE_URL") == "" {
		// No database available; skip all integration tests gracefully.
		os.Exit(m.Run())
	}

	db.Connect()
	dbAvailable = true

	// Set up catalog tables (idempotent).
	catalog.Init()

	// Mount catalog routes on a chi router, matching production setup in main.go.
	r := chi.NewRouter()
	r.Use(middleware.BearerTokenMiddleware)
	r.Mount("/catalog", catalog.SetupRoutes(allowAll{}))

	testServer = httptest.NewServer(r)
	defer testServer.Close()

	os.Exit(m.Run())
}

// createTestService inserts a unique jurisdiction and service and registers
// cleanup functions to remove them along with any attributes created under
// the service.
func createTestService(t *testing.T) (jurisdictionID, serviceCode string) {
	t.Helper()
	if !dbAvailable {
		t.Skip("skipping integration test (requires DATABASE_URL)")
	}

	suffix := uuid.New().String()[:8]
	jurisdictionID = fmt.Sprintf("testtown-%s.gov", suffix)
	serviceCode = fmt.Sprintf("it-%s", suffix)

	jurisdiction := catalog.Jurisdiction{ID: jurisdictionID, Name: "Test Town"}
	if err := db.DB.Create(&jurisdiction).Error; err != nil {
		t.Fatalf("creating test jurisdiction: %v", err)
	}

	service := catalog.Service{
		ID:             uuid.New(),
		JurisdictionID: jurisdictionID,
		ServiceCode:    serviceCode,
		ServiceName:    "Integration test service",
	}
	if err := db.DB.Create(&service).Error; err != nil {
		t.Fatalf("creating test service: %v", err)
	}

	t.Cleanup(func() {
		db.DB.Where("service_id = ?", service.ID).Delete(&catalog.ServiceAttribute{})
		db.DB.Delete(&service)
		db.DB.Delete(&jurisdiction)
	})
	return jurisdictionID, serviceCode
}

func postAttribute(t *testing.T, jurisdictionID, serviceCode string, body map[string]interface{}) *http.Response {
	t.Helper()

	raw, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshaling body: %v", err)
	}

	url := fmt.Sprintf("%s/catalog/services/%s/attributes?jurisdiction_id=%s",
		testServer.URL, serviceCode, jurisdictionID)
	req, err := http.NewRequest(http.MethodPost, url, bytes.NewReader(raw))
	if err != nil {
		t.Fatalf("building request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer integration-test")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("posting attribute: %v", err)
	}
	return resp
}

// Submitting an attribute code that already exists on the service is a
// client mistake, not a server fault: the second create must come back as
// a 409, never a 500 from the unique index.
func TestCreateAttributeHandler_DuplicateCode(t *testing.T) {
	jurisdictionID, serviceCode := createTestService(t)

	body := map[string]interface{}{
		"code":        1,
		"datatype":    "string",
		"description": "Where is the problem?",
	}

	resp := postAttribute(t, jurisdictionID, serviceCode, body)
	resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("first create: expected 201, got %d", resp.StatusCode)
	}

	resp = postAttribute(t, jurisdictionID, serviceCode, body)
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusConflict {
		t.Errorf("duplicate create: expected 409, got %d", resp.StatusCode)
	}
}
