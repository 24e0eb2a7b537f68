package handlers

import (
	"net/http"
	"strconv"

	"clinicdesk/middleware"
	"clinicdesk/services/review"

	"github.com/gin-gonic/gin"
)

type ReviewHandler struct {
	Service review.ReviewService
}

func NewReviewHandler(s review.ReviewService) *ReviewHandler {
	return &ReviewHandler{Service: s}
}

func (h *ReviewHandler) ListReviewsHandler(c *gin.Context) {
	var f review.Filter
	if raw := c.Query("minRating"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid 'minRating' parameter"})
			return
		}
		f.MinRating = v
	}
	limit, err := parseLimit(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid 'limit' parameter"})
		return
	}
	f.Limit = limit

	reviews, err := h.Service.ListDoctorReviews(c.Request.Context(), middleware.DoctorUserID(c), f)
	if err != nil {
		respondError(c, err, "Failed to fetch reviews")
		return
	}
	c.JSON(http.StatusOK, gin.H{"reviews": reviews, "count": len(reviews)})
}

func (h *ReviewHandler) ReviewSummaryHandler(c *gin.Context) {
	summary, err := h.Service.Summary(c.Request.Context(), middleware.DoctorUserID(c))
	if err != nil {
		respondError(c, err, "Failed to summarise reviews")
		return
	}
	c.JSON(http.StatusOK, summary)
}
