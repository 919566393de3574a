package httpapi

import (
	"errors"
	"log"
	"net/http"

	"ai-chart-analyst/internal/application/auth"
	"ai-chart-analyst/internal/domain/member"

	"github.com/gin-gonic/gin"
)

func (s *Server) handleLogin(c *gin.Context) {
	var body struct {
		Email          string `json:"email"`
		ActivationCode string `json:"activation_code"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid body", "error_code": errCodeBadRequest})
		return
	}

	res, err := s.activateUC.Execute(c.Request.Context(), auth.ActivateInput{
		Email:          body.Email,
		ActivationCode: body.ActivationCode,
	})
	if err != nil {
		log.Printf("login failed email=%s: %v", body.Email, err)
		switch {
		case errors.Is(err, member.ErrInactive):
			c.JSON(http.StatusForbidden, gin.H{"success": false, "error": "account not activated", "error_code": errCodeForbidden})
		case errors.Is(err, member.ErrExpired):
			c.JSON(http.StatusForbidden, gin.H{"success": false, "error": "membership expired", "error_code": errCodeForbidden})
		default:
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "invalid credentials", "error_code": errCodeInvalidCredentials})
		}
		return
	}
	log.Printf("login success uid=%s role=%s email=%s", res.Member.UID, auth.RoleOf(res.Member), res.Member.Email)

	c.JSON(http.StatusOK, gin.H{
		"success":      true,
		"access_token": res.Token,
		"token_type":   "Bearer",
		"expires_in":   int(s.tokenTTL.Seconds()),
		"member": gin.H{
			"uid":             res.Member.UID,
			"name":            res.Member.Name,
			"email":           res.Member.Email,
			"is_admin":        res.Member.IsAdmin,
			"membership_type": res.Member.MembershipType,
			"picture_url":     res.Member.PictureURL,
		},
	})
}
