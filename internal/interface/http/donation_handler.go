package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-community-events/internal/application"
	"github.com/oksasatya/go-community-events/internal/domain/entity"
	"github.com/oksasatya/go-community-events/pkg/response"
)

type DonationService interface {
	Make(ctx context.Context, actorID string, in application.MakeDonationInput) (*application.DonationReceipt, error)
	ForUser(ctx context.Context, userID string) ([]*entity.Donation, error)
	ForEvent(ctx context.Context, eventID string) ([]*entity.Donation, error)
}

type DonationHandler struct {
	Svc    DonationService
	Logger *logrus.Logger
}

func NewDonationHandler(svc DonationService, logger *logrus.Logger) *DonationHandler {
	return &DonationHandler{Svc: svc, Logger: logger}
}

// Amount is range-checked by the service so that zero and negative values share one error.
type makeDonationRequest struct {
	EventID string  `json:"event_id" binding:"required"`
	Amount  float64 `json:"amount"`
}

func (h *DonationHandler) Make(c *gin.Context) {
	var req makeDonationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	receipt, err := h.Svc.Make(c.Request.Context(), actorID(c), application.MakeDonationInput{EventID: req.EventID, Amount: req.Amount})
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusCreated, toReceiptResponse(receipt), "donation recorded", nil)
}

func (h *DonationHandler) ForUser(c *gin.Context) {
	ds, err := h.Svc.ForUser(c.Request.Context(), userParam(c))
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, toDonationResponses(ds), "donations", map[string]any{"count": len(ds), "total": total(ds)})
}

func (h *DonationHandler) ForEvent(c *gin.Context) {
	ds, err := h.Svc.ForEvent(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, toDonationResponses(ds), "donations", map[string]any{"count": len(ds), "total": total(ds)})
}

func total(ds []*entity.Donation) float64 {
	var sum float64
	for _, d := range ds {
		sum += d.Amount
	}
	return sum
}
