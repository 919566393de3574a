package httpapi

import (
	"errors"
	"log"
	"net/http"
	"time"

	appMember "ai-chart-analyst/internal/application/member"
	"ai-chart-analyst/internal/domain/member"

	"github.com/gin-gonic/gin"
)

// memberView 是後台回傳的會員格式，不含激活碼雜湊。
type memberView struct {
	UID            string     `json:"uid"`
	Name           string     `json:"name"`
	Email          string     `json:"email"`
	IsAdmin        bool       `json:"is_admin"`
	IsActive       bool       `json:"is_active"`
	MembershipType string     `json:"membership_type"`
	PlanType       string     `json:"plan_type"`
	JoinDate       time.Time  `json:"join_date"`
	ExpiresAt      *time.Time `json:"membership_expires_at,omitempty"`
	LastLogin      *time.Time `json:"last_login,omitempty"`
	PictureURL     string     `json:"picture_url,omitempty"`
}

func toMemberView(m member.Member) memberView {
	return memberView{
		UID:            m.UID,
		Name:           m.Name,
		Email:          m.Email,
		IsAdmin:        m.IsAdmin,
		IsActive:       m.IsActive,
		MembershipType: m.MembershipType,
		PlanType:       m.PlanType,
		JoinDate:       m.JoinDate,
		ExpiresAt:      m.ExpiresAt,
		LastLogin:      m.LastLogin,
		PictureURL:     m.PictureURL,
	}
}

func (s *Server) handleListMembers(c *gin.Context) {
	list, err := s.adminUC.List(c.Request.Context())
	if err != nil {
		log.Printf("list members failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "internal error", "error_code": errCodeInternal})
		return
	}
	views := make([]memberView, 0, len(list))
	for _, m := range list {
		views = append(views, toMemberView(m))
	}
	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"total_count": len(views),
		"members":     views,
	})
}

func (s *Server) handleCreateMember(c *gin.Context) {
	var body struct {
		Name           string     `json:"name"`
		Email          string     `json:"email"`
		ActivationCode string     `json:"activation_code"`
		IsAdmin        bool       `json:"is_admin"`
		MembershipType string     `json:"membership_type"`
		PlanType       string     `json:"plan_type"`
		ExpiresAt      *time.Time `json:"membership_expires_at"`
		PictureURL     string     `json:"picture_url"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid body", "error_code": errCodeBadRequest})
		return
	}

	m, err := s.adminUC.Create(c.Request.Context(), appMember.CreateInput{
		Name:           body.Name,
		Email:          body.Email,
		ActivationCode: body.ActivationCode,
		IsAdmin:        body.IsAdmin,
		MembershipType: body.MembershipType,
		PlanType:       body.PlanType,
		ExpiresAt:      body.ExpiresAt,
		PictureURL:     body.PictureURL,
	})
	if err != nil {
		log.Printf("create member failed email=%s: %v", body.Email, err)
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error(), "error_code": errCodeBadRequest})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"member":  toMemberView(m),
	})
}

func (s *Server) handleUpdateMember(c *gin.Context) {
	uid := c.Param("uid")
	var body struct {
		Name           *string    `json:"name"`
		IsAdmin        *bool      `json:"is_admin"`
		IsActive       *bool      `json:"is_active"`
		MembershipType *string    `json:"membership_type"`
		PlanType       *string    `json:"plan_type"`
		ExpiresAt      *time.Time `json:"membership_expires_at"`
		ClearExpiry    bool       `json:"clear_expiry"`
		ActivationCode *string    `json:"activation_code"`
		PictureURL     *string    `json:"picture_url"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid body", "error_code": errCodeBadRequest})
		return
	}

	m, err := s.adminUC.Update(c.Request.Context(), uid, appMember.UpdateInput{
		Name:           body.Name,
		IsAdmin:        body.IsAdmin,
		IsActive:       body.IsActive,
		MembershipType: body.MembershipType,
		PlanType:       body.PlanType,
		ExpiresAt:      body.ExpiresAt,
		ClearExpiry:    body.ClearExpiry,
		ActivationCode: body.ActivationCode,
		PictureURL:     body.PictureURL,
	})
	if err != nil {
		if errors.Is(err, member.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "member not found", "error_code": errCodeNotFound})
			return
		}
		log.Printf("update member failed uid=%s: %v", uid, err)
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error(), "error_code": errCodeBadRequest})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"member":  toMemberView(m),
	})
}

func (s *Server) handleDeleteMember(c *gin.Context) {
	uid := c.Param("uid")
	if err := s.adminUC.Delete(c.Request.Context(), uid); err != nil {
		if errors.Is(err, member.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "member not found", "error_code": errCodeNotFound})
			return
		}
		log.Printf("delete member failed uid=%s: %v", uid, err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "internal error", "error_code": errCodeInternal})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
