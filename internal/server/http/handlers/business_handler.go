package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/fideleatome/loyalty/internal/domain/errors"
	"github.com/fideleatome/loyalty/internal/server/http/dto"
)

// BusinessHandler serves the till-side endpoints.
type BusinessHandler struct {
	facade BusinessFacade
}

// NewBusinessHandler constructs BusinessHandler.
func NewBusinessHandler(facade BusinessFacade) *BusinessHandler {
	return &BusinessHandler{facade: facade}
}

// Profile handles GET /api/business/profile.
func (h *BusinessHandler) Profile(c *gin.Context) {
	profile, err := h.facade.BusinessProfile(c.Request.Context(), CurrentUserID(c))
	if err != nil {
		notFoundOrInternal(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.BusinessProfileResponse{
		ID:           profile.ID,
		BusinessName: profile.BusinessName,
		ContactName:  profile.ContactName,
		Phone:        profile.Phone,
	})
}

// Scan handles POST /api/business/scan.
func (h *BusinessHandler) Scan(c *gin.Context) {
	var req dto.ScanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	customer, progress, err := h.facade.ScanCustomer(c.Request.Context(), req.Payload)
	if err != nil {
		scanError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ScannedCustomerResponse{
		ID:             customer.ID,
		FirstName:      customer.FirstName,
		LastName:       customer.LastName,
		Points:         customer.Points,
		Remaining:      progress.Remaining,
		NextReward:     string(progress.NextReward),
		TotalPurchases: customer.TotalPurchases,
		TotalRewards:   customer.TotalRewards,
	})
}

// AddPoints handles POST /api/business/points.
func (h *BusinessHandler) AddPoints(c *gin.Context) {
	var req dto.AddPointsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	result, err := h.facade.AddPoints(c.Request.Context(), CurrentUserID(c), req.Payload, int(req.Quantity))
	if err != nil {
		scanError(c, err)
		return
	}

	rewards := make([]string, 0, len(result.Rewards))
	for _, r := range result.Rewards {
		rewards = append(rewards, string(r))
	}
	c.JSON(http.StatusOK, dto.AccrualResponse{
		Message:        result.Message,
		PointsAdded:    result.PointsAdded,
		Points:         result.NewPoints,
		RewardsEarned:  result.RewardsEarned,
		Rewards:        rewards,
		TotalPurchases: result.TotalPurchases,
		TotalRewards:   result.TotalRewards,
	})
}

// Customers handles GET /api/business/customers.
func (h *BusinessHandler) Customers(c *gin.Context) {
	page, err := h.facade.BusinessCustomers(c.Request.Context(), CurrentUserID(c),
		c.Query("search"), queryInt(c, "limit", 0), queryInt(c, "offset", 0))
	if err != nil {
		notFoundOrInternal(c, err)
		return
	}

	response := dto.CustomerListResponse{Items: make([]dto.CustomerProfileResponse, 0, len(page.Customers)), Total: page.Total}
	for _, customer := range page.Customers {
		response.Items = append(response.Items, dto.CustomerProfileResponse{
			ID:             customer.ID,
			FirstName:      customer.FirstName,
			LastName:       customer.LastName,
			Points:         customer.Points,
			TotalPurchases: customer.TotalPurchases,
			TotalRewards:   customer.TotalRewards,
		})
	}
	c.JSON(http.StatusOK, response)
}

// Stats handles GET /api/business/stats.
func (h *BusinessHandler) Stats(c *gin.Context) {
	stats, err := h.facade.BusinessDashboard(c.Request.Context(), CurrentUserID(c))
	if err != nil {
		notFoundOrInternal(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.BusinessStatsResponse{
		TotalCustomers: stats.TotalCustomers,
		TotalPoints:    stats.TotalPoints,
		TotalRewards:   stats.TotalRewards,
		TodaySales:     stats.TodaySales,
	})
}

// Sales handles GET /api/business/stats/sales.
func (h *BusinessHandler) Sales(c *gin.Context) {
	sales, err := h.facade.BusinessSales(c.Request.Context(), CurrentUserID(c), queryInt(c, "days", 0))
	if err != nil {
		notFoundOrInternal(c, err)
		return
	}

	response := make([]dto.DailySalesResponse, 0, len(sales))
	for _, bucket := range sales {
		response = append(response, dto.DailySalesResponse{Date: bucket.Date, Count: bucket.Count})
	}
	c.JSON(http.StatusOK, response)
}

// Top handles GET /api/business/stats/top.
func (h *BusinessHandler) Top(c *gin.Context) {
	top, err := h.facade.BusinessTopCustomers(c.Request.Context(), CurrentUserID(c), queryInt(c, "limit", 0))
	if err != nil {
		notFoundOrInternal(c, err)
		return
	}

	response := make([]dto.TopCustomerResponse, 0, len(top))
	for _, customer := range top {
		response = append(response, dto.TopCustomerResponse{
			CustomerID:       customer.CustomerID,
			FirstName:        customer.FirstName,
			LastName:         customer.LastName,
			Points:           customer.Points,
			TotalPurchases:   customer.TotalPurchases,
			TotalRewards:     customer.TotalRewards,
			LastPurchaseDate: customer.LastPurchaseDate,
		})
	}
	c.JSON(http.StatusOK, response)
}

func scanError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domainErrors.ErrMalformedPayload), errors.Is(err, domainErrors.ErrQRMismatch):
		c.Status(http.StatusBadRequest)
	case errors.Is(err, domainErrors.ErrNotFound):
		c.Status(http.StatusNotFound)
	default:
		c.Status(http.StatusInternalServerError)
	}
}
