package httpapi

import (
	"encoding/json"
	"net/http"
	"testing"
)

func TestAuthHandler_Login(t *testing.T) {
	s := newTestServer(t, nil)

	t.Run("LoginSuccess", func(t *testing.T) {
		w := doJSON(t, s, "POST", "/api/auth/login", "", map[string]string{
			"email":           "member@example.com",
			"activation_code": "member-code",
		})
		if w.Code != http.StatusOK {
			t.Fatalf("expected status 200, got %d. body: %s", w.Code, w.Body.String())
		}

		var resp map[string]interface{}
		json.Unmarshal(w.Body.Bytes(), &resp)
		if resp["success"] != true {
			t.Errorf("expected success true, got %v", resp["success"])
		}
		if resp["access_token"] == "" || resp["access_token"] == nil {
			t.Error("expected access_token, got empty")
		}
		if resp["token_type"] != "Bearer" {
			t.Errorf("token_type = %v", resp["token_type"])
		}

		memberObj, ok := resp["member"].(map[string]interface{})
		if !ok {
			t.Fatalf("member missing in response: %s", w.Body.String())
		}
		if memberObj["email"] != "member@example.com" {
			t.Errorf("member email = %v", memberObj["email"])
		}
		if memberObj["is_admin"] != false {
			t.Errorf("is_admin = %v", memberObj["is_admin"])
		}
		if _, exposed := memberObj["activation_code"]; exposed {
			t.Error("activation code must not appear in login response")
		}
	})

	t.Run("WrongCode", func(t *testing.T) {
		w := doJSON(t, s, "POST", "/api/auth/login", "", map[string]string{
			"email":           "member@example.com",
			"activation_code": "wrong-code",
		})
		if w.Code != http.StatusUnauthorized {
			t.Errorf("expected status 401, got %d", w.Code)
		}
	})

	t.Run("UnknownEmail", func(t *testing.T) {
		w := doJSON(t, s, "POST", "/api/auth/login", "", map[string]string{
			"email":           "ghost@example.com",
			"activation_code": "member-code",
		})
		if w.Code != http.StatusUnauthorized {
			t.Errorf("expected status 401, got %d", w.Code)
		}
	})

	t.Run("MalformedBody", func(t *testing.T) {
		w := doJSON(t, s, "POST", "/api/auth/login", "", "not-an-object")
		if w.Code != http.StatusBadRequest {
			t.Errorf("expected status 400, got %d", w.Code)
		}
	})
}

func TestAuthHandler_InactiveMember(t *testing.T) {
	s := newTestServer(t, nil)

	// 後台停用後登入應回 403
	adminToken := loginToken(t, s, "admin@example.com", "admin-code-change-me")

	var listResp struct {
		Members []struct {
			UID   string `json:"uid"`
			Email string `json:"email"`
		} `json:"members"`
	}
	w := doJSON(t, s, "GET", "/api/admin/members", adminToken, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("list members failed: %d", w.Code)
	}
	json.Unmarshal(w.Body.Bytes(), &listResp)

	var memberUID string
	for _, m := range listResp.Members {
		if m.Email == "member@example.com" {
			memberUID = m.UID
		}
	}
	if memberUID == "" {
		t.Fatal("seeded member not found")
	}

	inactive := false
	w = doJSON(t, s, "PUT", "/api/admin/members/"+memberUID, adminToken, map[string]any{
		"is_active": &inactive,
	})
	if w.Code != http.StatusOK {
		t.Fatalf("deactivate failed: %d %s", w.Code, w.Body.String())
	}

	w = doJSON(t, s, "POST", "/api/auth/login", "", map[string]string{
		"email":           "member@example.com",
		"activation_code": "member-code",
	})
	if w.Code != http.StatusForbidden {
		t.Errorf("expected 403 for inactive member, got %d", w.Code)
	}
}
