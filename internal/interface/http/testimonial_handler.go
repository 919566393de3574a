package httpapi

import (
	"errors"
	"log"
	"net/http"

	appTestimonial "ai-chart-analyst/internal/application/testimonial"
	"ai-chart-analyst/internal/domain/testimonial"

	"github.com/gin-gonic/gin"
)

func (s *Server) handleListTestimonials(c *gin.Context) {
	list, err := s.testimonialUC.List(c.Request.Context())
	if err != nil {
		log.Printf("list testimonials failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "internal error", "error_code": errCodeInternal})
		return
	}
	if list == nil {
		list = []testimonial.Testimonial{}
	}
	c.JSON(http.StatusOK, gin.H{
		"success":      true,
		"total_count":  len(list),
		"testimonials": list,
	})
}

func (s *Server) handleSubmitTestimonial(c *gin.Context) {
	var body struct {
		Name    string `json:"name"`
		Message string `json:"message"`
		Rating  int    `json:"rating"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid body", "error_code": errCodeBadRequest})
		return
	}

	t, err := s.testimonialUC.Submit(c.Request.Context(), appTestimonial.SubmitInput{
		UserEmail: currentEmail(c),
		Name:      body.Name,
		Message:   body.Message,
		Rating:    body.Rating,
	})
	if err != nil {
		if errors.Is(err, testimonial.ErrAlreadySubmitted) {
			c.JSON(http.StatusConflict, gin.H{"success": false, "error": "testimonial already submitted", "error_code": errCodeConflict})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error(), "error_code": errCodeBadRequest})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"testimonial": t,
	})
}
