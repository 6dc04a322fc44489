package patient

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

func newTestHandler(t *testing.T) (*Handler, *MemoryRepository) {
	t.Helper()
	repo := NewMemoryRepository()
	return NewHandler(NewService(repo)), repo
}

func TestHandlerUpsert(t *testing.T) {
	h, _ := newTestHandler(t)
	e := echo.New()

	body := `{"name":"Alex Smith","mrn":"123456","bed":"12A","labs":{"creatinine":1.4}}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/patients", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Upsert(c); err != nil {
		t.Fatalf("Upsert: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusCreated)
	}
	var created Record
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if created.ID == uuid.Nil {
		t.Error("response has no ID")
	}
	if created.Labs["creatinine"] != 1.4 {
		t.Errorf("labs = %v", created.Labs)
	}
}

func TestHandlerUpsertRejectsMissingName(t *testing.T) {
	h, _ := newTestHandler(t)
	e := echo.New()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/patients", strings.NewReader(`{"mrn":"123456"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	c := e.NewContext(req, httptest.NewRecorder())

	err := h.Upsert(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusBadRequest {
		t.Errorf("Upsert error = %v, want 400", err)
	}
}

func TestHandlerGet(t *testing.T) {
	h, repo := newTestHandler(t)
	e := echo.New()
	ctx := context.Background()

	r := &Record{Name: "Alex Smith"}
	repo.Upsert(ctx, r)

	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
	c.SetPath("/patients/:id")
	c.SetParamNames("id")
	c.SetParamValues(r.ID.String())

	if err := h.Get(c); err != nil {
		t.Fatalf("Get: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d", rec.Code)
	}

	c = e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
	c.SetPath("/patients/:id")
	c.SetParamNames("id")
	c.SetParamValues(uuid.NewString())
	err := h.Get(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusNotFound {
		t.Errorf("Get unknown = %v, want 404", err)
	}
}

func TestHandlerList(t *testing.T) {
	h, repo := newTestHandler(t)
	e := echo.New()
	ctx := context.Background()

	repo.Upsert(ctx, &Record{Name: "First"})
	repo.Upsert(ctx, &Record{Name: "Second"})

	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/patients?limit=1", nil), rec)
	if err := h.List(c); err != nil {
		t.Fatalf("List: %v", err)
	}
	var resp struct {
		Data  []Record `json:"data"`
		Total int      `json:"total"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Total != 2 || len(resp.Data) != 1 || resp.Data[0].Name != "First" {
		t.Errorf("resp = %+v", resp)
	}
}

func TestHandlerDelete(t *testing.T) {
	h, repo := newTestHandler(t)
	e := echo.New()
	ctx := context.Background()

	r := &Record{Name: "Alex Smith"}
	repo.Upsert(ctx, r)

	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodDelete, "/", nil), rec)
	c.SetPath("/patients/:id")
	c.SetParamNames("id")
	c.SetParamValues(r.ID.String())

	if err := h.Delete(c); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if rec.Code != http.StatusNoContent {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusNoContent)
	}
	if _, err := repo.GetByID(ctx, r.ID); err == nil {
		t.Error("patient still present after delete")
	}
}
