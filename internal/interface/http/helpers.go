package httpapi

import (
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
)

func parseBearer(h string) string {
	if h == "" {
		return ""
	}
	parts := strings.SplitN(h, " ", 2)
	if len(parts) != 2 {
		return ""
	}
	if !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return parts[1]
}

func currentUID(c *gin.Context) string {
	if v, ok := c.Get("userUID"); ok {
		if id, ok := v.(string); ok {
			return id
		}
	}
	return ""
}

func currentEmail(c *gin.Context) string {
	if v, ok := c.Get("userEmail"); ok {
		if email, ok := v.(string); ok {
			return email
		}
	}
	return ""
}

func isAdmin(c *gin.Context) bool {
	if v, ok := c.Get("userRole"); ok {
		if role, ok := v.(string); ok {
			return role == "admin"
		}
	}
	return false
}

// decodeImageDataURL 解碼前端送來的 base64 圖片。
// 接受 data URL（data:image/png;base64,...）或純 base64，後者需另帶 mime type。
func decodeImageDataURL(raw, fallbackMime string) ([]byte, string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, "", fmt.Errorf("image is required")
	}

	mime := fallbackMime
	payload := raw
	if strings.HasPrefix(raw, "data:") {
		header, rest, ok := strings.Cut(raw, ",")
		if !ok {
			return nil, "", fmt.Errorf("malformed data URL")
		}
		payload = rest
		header = strings.TrimPrefix(header, "data:")
		if m, _, ok := strings.Cut(header, ";"); ok && m != "" {
			mime = m
		}
	}
	if mime == "" {
		mime = "image/png"
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, "", fmt.Errorf("invalid base64 image: %w", err)
	}
	return data, mime, nil
}
