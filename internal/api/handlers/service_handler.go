package handlers

import (
	"net/http"

	"github.com/velora-studio/booking-backend/internal/domain/repositories"
)

// ServiceHandler serves the read-only service catalogue
type ServiceHandler struct {
	serviceRepo repositories.ServiceRepository
}

// NewServiceHandler creates a new service handler
func NewServiceHandler(serviceRepo repositories.ServiceRepository) *ServiceHandler {
	return &ServiceHandler{
		serviceRepo: serviceRepo,
	}
}

// ListServices handles GET /api/services
func (h *ServiceHandler) ListServices(w http.ResponseWriter, r *http.Request) {
	services, err := h.serviceRepo.List(r.Context())
	if err != nil {
		respondWithAppError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"services": services,
	})
}
