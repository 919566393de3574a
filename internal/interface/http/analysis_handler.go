package httpapi

import (
	"errors"
	"log"
	"net/http"

	appAnalysis "ai-chart-analyst/internal/application/analysis"
	domain "ai-chart-analyst/internal/domain/analysis"
	"ai-chart-analyst/internal/infrastructure/ai"

	"github.com/gin-gonic/gin"
)

type analyzeRequest struct {
	Pair      string `json:"pair"`
	Timeframe string `json:"timeframe"`
	Risk      string `json:"risk"`
	Image     string `json:"image"`      // data URL 或純 base64
	MimeType  string `json:"mime_type"`  // 純 base64 時必填
}

func (s *Server) handleAnalyze(c *gin.Context) {
	var body analyzeRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid body", "error_code": errCodeBadRequest})
		return
	}

	image, mime, err := decodeImageDataURL(body.Image, body.MimeType)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error(), "error_code": errCodeBadRequest})
		return
	}

	rec, err := s.analyzeUC.Execute(c.Request.Context(), appAnalysis.AnalyzeInput{
		UserUID:   currentUID(c),
		Pair:      body.Pair,
		Timeframe: body.Timeframe,
		Risk:      domain.RiskProfile(body.Risk),
		Image:     image,
		MimeType:  mime,
	})
	if err != nil {
		s.respondAnalyzeError(c, body.Pair, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"analysis": rec,
	})
}

// respondAnalyzeError 依錯誤型別決定狀態碼：輸入錯誤 400、
// 供應商問題 502、AI 回應格式不合 422。
func (s *Server) respondAnalyzeError(c *gin.Context, pair string, err error) {
	var vErr *domain.ValidationError
	if errors.As(err, &vErr) {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": vErr.Error(), "error_code": errCodeBadRequest})
		return
	}
	var pErr *domain.ParseError
	if errors.As(err, &pErr) {
		log.Printf("analyze parse failed pair=%s reason=%s", pair, pErr.Reason)
		c.JSON(http.StatusUnprocessableEntity, gin.H{"success": false, "error": pErr.Error(), "error_code": errCodeFormatInvalid})
		return
	}
	if ai.IsProviderError(err) || errors.Is(err, appAnalysis.ErrNoProvider) {
		log.Printf("analyze provider failed pair=%s: %v", pair, err)
		c.JSON(http.StatusBadGateway, gin.H{"success": false, "error": "AI provider unavailable", "error_code": errCodeProviderDown})
		return
	}
	log.Printf("analyze failed pair=%s: %v", pair, err)
	c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "internal error", "error_code": errCodeInternal})
}

func (s *Server) handleListAnalyses(c *gin.Context) {
	recs, err := s.historyUC.List(c.Request.Context(), currentUID(c))
	if err != nil {
		log.Printf("list analyses failed uid=%s: %v", currentUID(c), err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "internal error", "error_code": errCodeInternal})
		return
	}
	if recs == nil {
		recs = []domain.Record{}
	}
	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"total_count": len(recs),
		"items":       recs,
	})
}

func (s *Server) handleLastAnalysis(c *gin.Context) {
	rec, err := s.historyUC.Last(c.Request.Context(), currentUID(c))
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "no analysis yet", "error_code": errCodeNotFound})
			return
		}
		log.Printf("last analysis failed uid=%s: %v", currentUID(c), err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "internal error", "error_code": errCodeInternal})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"analysis": rec,
	})
}

func (s *Server) handleDeleteAnalysis(c *gin.Context) {
	id := c.Param("id")
	err := s.historyUC.Delete(c.Request.Context(), id, currentUID(c), isAdmin(c))
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "analysis not found", "error_code": errCodeNotFound})
			return
		}
		var vErr *domain.ValidationError
		if errors.As(err, &vErr) {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": vErr.Error(), "error_code": errCodeBadRequest})
			return
		}
		log.Printf("delete analysis failed id=%s uid=%s: %v", id, currentUID(c), err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "internal error", "error_code": errCodeInternal})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
