package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/fideleatome/loyalty/internal/domain/errors"
	"github.com/fideleatome/loyalty/internal/server/http/dto"
)

// CustomerHandler serves the customer card and history endpoints.
type CustomerHandler struct {
	facade CustomerFacade
}

// NewCustomerHandler constructs CustomerHandler.
func NewCustomerHandler(facade CustomerFacade) *CustomerHandler {
	return &CustomerHandler{facade: facade}
}

// Profile handles GET /api/customer/profile.
func (h *CustomerHandler) Profile(c *gin.Context) {
	profile, err := h.facade.CustomerProfile(c.Request.Context(), CurrentUserID(c))
	if err != nil {
		notFoundOrInternal(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.CustomerProfileResponse{
		ID:             profile.ID,
		FirstName:      profile.FirstName,
		LastName:       profile.LastName,
		Points:         profile.Points,
		TotalPurchases: profile.TotalPurchases,
		TotalRewards:   profile.TotalRewards,
	})
}

// QRCode handles GET /api/customer/qrcode.
func (h *CustomerHandler) QRCode(c *gin.Context) {
	card, err := h.facade.CustomerCard(c.Request.Context(), CurrentUserID(c))
	if err != nil {
		notFoundOrInternal(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.CardResponse{
		Payload:   card.Payload,
		Token:     card.Token,
		ExpiresIn: card.ExpiresIn,
	})
}

// Loyalty handles GET /api/customer/loyalty.
func (h *CustomerHandler) Loyalty(c *gin.Context) {
	progress, err := h.facade.CustomerProgress(c.Request.Context(), CurrentUserID(c))
	if err != nil {
		notFoundOrInternal(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ProgressResponse{
		Points:            progress.Points,
		Remaining:         progress.Remaining,
		NextReward:        string(progress.NextReward),
		Progress:          progress.Progress,
		TotalPurchases:    progress.TotalPurchases,
		TotalRewards:      progress.TotalRewards,
		FirstPurchaseDate: progress.FirstPurchaseDate,
		LastPurchaseDate:  progress.LastPurchaseDate,
	})
}

// History handles GET /api/customer/history.
func (h *CustomerHandler) History(c *gin.Context) {
	page, err := h.facade.CustomerHistory(c.Request.Context(), CurrentUserID(c),
		queryInt(c, "limit", 0), queryInt(c, "offset", 0))
	if err != nil {
		notFoundOrInternal(c, err)
		return
	}

	response := dto.HistoryResponse{Items: make([]dto.PurchaseResponse, 0, len(page.Purchases)), Total: page.Total}
	for _, p := range page.Purchases {
		response.Items = append(response.Items, dto.PurchaseResponse{
			ID:           p.ID,
			BusinessName: p.BusinessName,
			PointsAdded:  p.PointsAdded,
			IsReward:     p.IsReward,
			PurchaseDate: p.PurchaseDate,
		})
	}
	c.JSON(http.StatusOK, response)
}

// Rewards handles GET /api/customer/rewards.
func (h *CustomerHandler) Rewards(c *gin.Context) {
	page, err := h.facade.CustomerRewards(c.Request.Context(), CurrentUserID(c),
		queryInt(c, "limit", 0), queryInt(c, "offset", 0))
	if err != nil {
		notFoundOrInternal(c, err)
		return
	}

	response := dto.RewardsResponse{Items: make([]dto.RewardResponse, 0, len(page.Rewards)), Total: page.Total}
	for _, r := range page.Rewards {
		response.Items = append(response.Items, dto.RewardResponse{
			ID:           r.ID,
			BusinessName: r.BusinessName,
			RewardType:   string(r.RewardType),
			EarnedDate:   r.EarnedDate,
		})
	}
	c.JSON(http.StatusOK, response)
}

func notFoundOrInternal(c *gin.Context, err error) {
	if errors.Is(err, domainErrors.ErrNotFound) {
		c.Status(http.StatusNotFound)
		return
	}
	c.Status(http.StatusInternalServerError)
}
