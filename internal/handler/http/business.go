package http

import (
	"net/http"

	"github.com/crazybass81/DOT-V0.1-sub002/internal/domain/business"
	"github.com/crazybass81/DOT-V0.1-sub002/internal/handler/http/middleware"
	"github.com/crazybass81/DOT-V0.1-sub002/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type BusinessHandler struct {
	businessService business.Service
}

func NewBusinessHandler(businessService business.Service) *BusinessHandler {
	return &BusinessHandler{
		businessService: businessService,
	}
}

// GetSummary handles GET /api/v1/businesses/{businessID}/summary
func (h *BusinessHandler) GetSummary(w http.ResponseWriter, r *http.Request) {
	requesterID := middleware.UserID(r)
	businessID := chi.URLParam(r, "businessID")

	resp, err := h.businessService.GetSummary(r.Context(), requesterID, businessID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, resp)
}

// IssueQRToken handles POST /api/v1/businesses/{businessID}/qr-token
func (h *BusinessHandler) IssueQRToken(w http.ResponseWriter, r *http.Request) {
	requesterID := middleware.UserID(r)
	businessID := chi.URLParam(r, "businessID")

	resp, err := h.businessService.IssueQRToken(r.Context(), requesterID, businessID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, resp)
}
