package httpapi

import (
	"encoding/json"
	"net/http"
	"testing"
)

func TestTestimonialHandlers(t *testing.T) {
	s := newTestServer(t, nil)
	token := loginToken(t, s, "member@example.com", "member-code")

	// 公開列表，無需登入
	w := doJSON(t, s, "GET", "/api/testimonials", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("public list failed: %d", w.Code)
	}
	var listResp struct {
		TotalCount   int              `json:"total_count"`
		Testimonials []map[string]any `json:"testimonials"`
	}
	json.Unmarshal(w.Body.Bytes(), &listResp)
	if listResp.TotalCount != 0 || listResp.Testimonials == nil {
		t.Fatalf("expected empty list, got %s", w.Body.String())
	}

	// 提交需登入
	w = doJSON(t, s, "POST", "/api/testimonials", "", map[string]any{
		"name": "Anon", "message": "Bagus", "rating": 5,
	})
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", w.Code)
	}

	w = doJSON(t, s, "POST", "/api/testimonials", token, map[string]any{
		"name": "Member One", "message": "Analisa sangat membantu", "rating": 5,
	})
	if w.Code != http.StatusOK {
		t.Fatalf("submit failed: %d %s", w.Code, w.Body.String())
	}

	// 同一會員重複提交
	w = doJSON(t, s, "POST", "/api/testimonials", token, map[string]any{
		"name": "Member One", "message": "Lagi", "rating": 4,
	})
	if w.Code != http.StatusConflict {
		t.Fatalf("expected 409 on duplicate, got %d", w.Code)
	}

	w = doJSON(t, s, "GET", "/api/testimonials", "", nil)
	json.Unmarshal(w.Body.Bytes(), &listResp)
	if listResp.TotalCount != 1 {
		t.Errorf("total_count = %d, want 1", listResp.TotalCount)
	}
}

func TestTestimonialHandlers_InvalidRating(t *testing.T) {
	s := newTestServer(t, nil)
	token := loginToken(t, s, "member@example.com", "member-code")

	w := doJSON(t, s, "POST", "/api/testimonials", token, map[string]any{
		"name": "Member One", "message": "Ok", "rating": 9,
	})
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}
