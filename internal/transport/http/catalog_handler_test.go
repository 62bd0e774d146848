package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"logo-guess-service/internal/domain"
)

func do(t *testing.T, h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), v); err != nil {
		t.Fatalf("decode %q: %v", rec.Body.String(), err)
	}
}

func TestListBrandsEndpoint(t *testing.T) {
	router := newTestHandler(t, sampleBrands()).Router()

	rec := do(t, router, http.MethodGet, "/api/brands?difficulty=easy&limit=3", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var brands []domain.Brand
	decodeBody(t, rec, &brands)
	if len(brands) != 3 {
		t.Fatalf("expected 3 brands, got %d", len(brands))
	}
	for _, b := range brands {
		if b.Difficulty != domain.TierEasy {
			t.Fatalf("expected easy brands only, got %+v", b)
		}
	}

	rec = do(t, router, http.MethodGet, "/api/brands", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	decodeBody(t, rec, &brands)
	if len(brands) != 5 {
		t.Fatalf("expected 5 brands, got %d", len(brands))
	}
}

func TestListBrandsEndpointQueryTierIgnoresCase(t *testing.T) {
	router := newTestHandler(t, sampleBrands()).Router()

	rec := do(t, router, http.MethodGet, "/api/brands?difficulty=MEDIUM", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var brands []domain.Brand
	decodeBody(t, rec, &brands)
	if len(brands) != 1 || brands[0].Slug != "volvo" {
		t.Fatalf("expected only volvo, got %+v", brands)
	}
}

func TestListBrandsEndpointRejectsBadQuery(t *testing.T) {
	router := newTestHandler(t, sampleBrands()).Router()

	for _, target := range []string{
		"/api/brands?difficulty=legendary",
		"/api/brands?limit=abc",
		"/api/brands?limit=-2",
	} {
		rec := do(t, router, http.MethodGet, target, "")
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("%s: expected 400, got %d", target, rec.Code)
		}
		var body errorResponse
		decodeBody(t, rec, &body)
		if body.Message == "" {
			t.Fatalf("%s: expected an error message", target)
		}
	}
}

func TestListBrandsEndpointEmptyCatalog(t *testing.T) {
	router := newTestHandler(t, nil).Router()

	rec := do(t, router, http.MethodGet, "/api/brands?difficulty=hard", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if got := strings.TrimSpace(rec.Body.String()); got != "[]" {
		t.Fatalf("expected empty array, got %s", got)
	}
}

func TestCreateBrandEndpoint(t *testing.T) {
	router := newTestHandler(t, sampleBrands()).Router()

	rec := do(t, router, http.MethodPost, "/api/brands", `{"name":"Saab","slug":"saab","imageUrl":"saab.png","difficulty":"hard","hasText":true}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	var created domain.Brand
	decodeBody(t, rec, &created)
	if created.ID == 0 || created.Slug != "saab" {
		t.Fatalf("unexpected brand %+v", created)
	}

	checks := []struct {
		body string
		code int
	}{
		{`{"name":"Toyota","slug":"toyota","imageUrl":"t.png","difficulty":"easy"}`, http.StatusConflict},
		{`{"name":"","slug":"x","imageUrl":"x.png","difficulty":"easy"}`, http.StatusBadRequest},
		{`{"name":"Lada","slug":"lada","imageUrl":"l.png","difficulty":"Hard"}`, http.StatusBadRequest},
		{`{not json`, http.StatusBadRequest},
	}
	for _, c := range checks {
		if rec := do(t, router, http.MethodPost, "/api/brands", c.body); rec.Code != c.code {
			t.Fatalf("%s: expected %d, got %d", c.body, c.code, rec.Code)
		}
	}
}

func TestCreateScoreEndpoint(t *testing.T) {
	router := newTestHandler(t, nil).Router()

	rec := do(t, router, http.MethodPost, "/api/scores", `{"playerName":"  Ann ","score":45,"difficulty":"hard"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	var created domain.ScoreRecord
	decodeBody(t, rec, &created)
	if created.PlayerName != "Ann" || created.Score != 45 || created.ID == 0 {
		t.Fatalf("unexpected score %+v", created)
	}

	rec = do(t, router, http.MethodGet, "/api/scores", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var scores []domain.ScoreRecord
	decodeBody(t, rec, &scores)
	if len(scores) != 1 || scores[0] != created {
		t.Fatalf("expected only %+v, got %+v", created, scores)
	}
}

func TestCreateScoreEndpointValidationOrder(t *testing.T) {
	router := newTestHandler(t, nil).Router()

	cases := []struct {
		body  string
		field string
	}{
		{`{"playerName":"","score":"x","difficulty":"nope"}`, ""},
		{`{"playerName":"","score":-1,"difficulty":"nope"}`, "playerName"},
		{`{"playerName":"ABCDEFGHIJKLMNOP","score":10,"difficulty":"easy"}`, "playerName"},
		{`{"playerName":"Ann","score":-1,"difficulty":"nope"}`, "score"},
		{`{"playerName":"Ann","score":2.5,"difficulty":"easy"}`, "score"},
		{`{"playerName":"Ann","difficulty":"easy"}`, "score"},
		{`{"playerName":"Ann","score":10,"difficulty":"legendary"}`, "difficulty"},
		{`{"playerName":"Ann","score":10,"difficulty":"HARD"}`, "difficulty"},
	}
	for _, tc := range cases {
		rec := do(t, router, http.MethodPost, "/api/scores", tc.body)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("%s: expected 400, got %d", tc.body, rec.Code)
		}
		var body errorResponse
		decodeBody(t, rec, &body)
		if tc.field != "" && !strings.Contains(body.Message, tc.field) {
			t.Fatalf("%s: expected message about %s, got %q", tc.body, tc.field, body.Message)
		}
	}

	rec := do(t, router, http.MethodGet, "/api/scores", "")
	if got := strings.TrimSpace(rec.Body.String()); got != "[]" {
		t.Fatalf("expected no scores stored, got %s", got)
	}
}

func TestHealthAndCORS(t *testing.T) {
	router := newTestHandler(t, nil).Router()

	rec := do(t, router, http.MethodGet, "/healthz", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Fatalf("expected CORS header, got %q", got)
	}

	rec = do(t, router, http.MethodOptions, "/api/scores", "")
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
}
