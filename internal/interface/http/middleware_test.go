package httpapi

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestRequireAuth(t *testing.T) {
	s := newTestServer(t, nil)
	memberToken := loginToken(t, s, "member@example.com", "member-code")
	adminToken := loginToken(t, s, "admin@example.com", "admin-code-change-me")

	tests := []struct {
		name   string
		method string
		path   string
		token  string
		want   int
	}{
		{"no token", "GET", "/api/analyses", "", http.StatusUnauthorized},
		{"garbage token", "GET", "/api/analyses", "not-a-jwt", http.StatusUnauthorized},
		{"member reads own history", "GET", "/api/analyses", memberToken, http.StatusOK},
		{"member blocked from admin area", "GET", "/api/admin/members", memberToken, http.StatusForbidden},
		{"admin allowed in admin area", "GET", "/api/admin/members", adminToken, http.StatusOK},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w := doJSON(t, s, tc.method, tc.path, tc.token, nil)
			if w.Code != tc.want {
				t.Errorf("status = %d, want %d. body: %s", w.Code, tc.want, w.Body.String())
			}
		})
	}
}

func TestRequireAuth_CookieFallback(t *testing.T) {
	s := newTestServer(t, nil)
	token := loginToken(t, s, "member@example.com", "member-code")

	req, _ := http.NewRequest("GET", "/api/analyses", nil)
	req.AddCookie(&http.Cookie{Name: "access_token", Value: token})
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("cookie auth failed: %d", w.Code)
	}
}

func TestParseBearer(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"well formed", "Bearer abc.def.ghi", "abc.def.ghi"},
		{"lowercase scheme", "bearer token", "token"},
		{"missing scheme", "token-only", ""},
		{"empty", "", ""},
		{"wrong scheme", "Basic dXNlcg==", ""},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := parseBearer(tc.in); got != tc.want {
				t.Errorf("parseBearer(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}
