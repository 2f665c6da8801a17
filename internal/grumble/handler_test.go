package grumble

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

// Mock service for handler tests
type mockService struct {
	listFunc   func(ctx context.Context) ([]Grumble, error)
	getFunc    func(ctx context.Context, id int) (*Grumble, error)
	createFunc func(ctx context.Context, breederID int, req *CreateRequest) (*Grumble, error)
	updateFunc func(ctx context.Context, breederID, id int, req *UpdateRequest) (*Grumble, error)
	deleteFunc func(ctx context.Context, breederID, id int) error
}

func (m *mockService) List(ctx context.Context) ([]Grumble, error) {
	return m.listFunc(ctx)
}

func (m *mockService) Get(ctx context.Context, id int) (*Grumble, error) {
	return m.getFunc(ctx, id)
}

func (m *mockService) Create(ctx context.Context, breederID int, req *CreateRequest) (*Grumble, error) {
	return m.createFunc(ctx, breederID, req)
}

func (m *mockService) Update(ctx context.Context, breederID, id int, req *UpdateRequest) (*Grumble, error) {
	return m.updateFunc(ctx, breederID, id, req)
}

func (m *mockService) Delete(ctx context.Context, breederID, id int) error {
	return m.deleteFunc(ctx, breederID, id)
}

func newRouter(svc Service, breederID int) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	fakeSession := func(c *gin.Context) {
		c.Set("breeder_id", breederID)
	}
	NewHandler(svc).RegisterRoutes(r.Group("/api"), fakeSession)
	return r
}

func doJSON(r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCreateRejectsUnknownColor(t *testing.T) {
	called := false
	svc := &mockService{
		createFunc: func(ctx context.Context, breederID int, req *CreateRequest) (*Grumble, error) {
			called = true
			return nil, nil
		},
	}
	r := newRouter(svc, 1)

	w := doJSON(r, http.MethodPost, "/api/grumble", gin.H{
		"name":      "Doug",
		"gender":    "male",
		"color":     "brindle",
		"birthDate": "2020-05-01",
	})
	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400 for unknown color, got %d", w.Code)
	}
	if called {
		t.Error("Expected service not to be called on invalid input")
	}
}

func TestCreatePassesBreederID(t *testing.T) {
	var gotBreederID int
	svc := &mockService{
		createFunc: func(ctx context.Context, breederID int, req *CreateRequest) (*Grumble, error) {
			gotBreederID = breederID
			return &Grumble{ID: 7, BreederID: breederID, Name: req.Name}, nil
		},
	}
	r := newRouter(svc, 42)

	w := doJSON(r, http.MethodPost, "/api/grumble", gin.H{
		"name":      "Doug",
		"gender":    "male",
		"color":     "fawn",
		"birthDate": "2020-05-01",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("Expected status 201, got %d: %s", w.Code, w.Body.String())
	}
	if gotBreederID != 42 {
		t.Errorf("Expected breeder id 42 from session, got %d", gotBreederID)
	}
}

func TestUpdateMapsOwnershipToForbidden(t *testing.T) {
	svc := &mockService{
		updateFunc: func(ctx context.Context, breederID, id int, req *UpdateRequest) (*Grumble, error) {
			return nil, ErrNotOwner
		},
	}
	r := newRouter(svc, 1)

	w := doJSON(r, http.MethodPut, "/api/grumble/5", gin.H{
		"name":      "Doug",
		"gender":    "male",
		"color":     "black",
		"birthDate": "2020-05-01",
	})
	if w.Code != http.StatusForbidden {
		t.Errorf("Expected status 403, got %d", w.Code)
	}
}

func TestDeleteMapsNotFound(t *testing.T) {
	svc := &mockService{
		deleteFunc: func(ctx context.Context, breederID, id int) error {
			return ErrNotFound
		},
	}
	r := newRouter(svc, 1)

	w := doJSON(r, http.MethodDelete, "/api/grumble/99", nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d", w.Code)
	}
}

func TestListIsPublic(t *testing.T) {
	svc := &mockService{
		listFunc: func(ctx context.Context) ([]Grumble, error) {
			return []Grumble{{ID: 1, Name: "Doug", Color: ColorFawn}}, nil
		},
	}
	r := newRouter(svc, 0)

	w := doJSON(r, http.MethodGet, "/api/grumble", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}

	var dogs []Grumble
	if err := json.Unmarshal(w.Body.Bytes(), &dogs); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if len(dogs) != 1 || dogs[0].Name != "Doug" {
		t.Errorf("Unexpected list response: %+v", dogs)
	}
}
