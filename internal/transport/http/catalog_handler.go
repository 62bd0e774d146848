package http

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"logo-guess-service/internal/domain"
)

var errBadBody = &domain.ValidationError{Field: "body", Message: "request body must be valid JSON"}

// ListBrands serves GET /api/brands?difficulty=&limit=.
func (h *Handler) ListBrands(w http.ResponseWriter, r *http.Request) {
	var filter domain.BrandFilter

	if raw := r.URL.Query().Get("difficulty"); raw != "" {
		tier, err := domain.ParseTier(raw)
		if err != nil {
			h.writeError(w, r, err)
			return
		}
		filter.Difficulty = tier
	}
	if raw := strings.TrimSpace(r.URL.Query().Get("limit")); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit <= 0 {
			h.writeError(w, r, &domain.ValidationError{Field: "limit", Message: "limit must be a positive integer"})
			return
		}
		filter.Limit = limit
	}

	brands, err := h.catalog.ListBrands(r.Context(), filter)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, brands)
}

// CreateBrand serves POST /api/brands.
func (h *Handler) CreateBrand(w http.ResponseWriter, r *http.Request) {
	var brand domain.Brand
	if err := json.NewDecoder(r.Body).Decode(&brand); err != nil {
		h.writeError(w, r, errBadBody)
		return
	}
	brand.ID = 0

	created, err := h.catalog.CreateBrand(r.Context(), brand)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// ListScores serves GET /api/scores.
func (h *Handler) ListScores(w http.ResponseWriter, r *http.Request) {
	scores, err := h.catalog.ListScores(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, scores)
}

type scoreRequest struct {
	PlayerName string      `json:"playerName"`
	Score      json.Number `json:"score"`
	Difficulty string      `json:"difficulty"`
}

// record converts the request; a missing or fractional score becomes -1 so
// validation still reports fields in order.
func (req scoreRequest) record() domain.ScoreRecord {
	score, err := strconv.Atoi(req.Score.String())
	if err != nil {
		score = -1
	}
	return domain.ScoreRecord{
		PlayerName: req.PlayerName,
		Score:      score,
		Difficulty: domain.Tier(req.Difficulty),
	}
}

// CreateScore serves POST /api/scores.
func (h *Handler) CreateScore(w http.ResponseWriter, r *http.Request) {
	var req scoreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, r, errBadBody)
		return
	}

	created, err := h.catalog.CreateScore(r.Context(), req.record())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}
