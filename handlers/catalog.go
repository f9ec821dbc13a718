package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	catalogRepo "jusbook/database/repository/catalog"
	"jusbook/models"
	"jusbook/utils"
)

// CatalogHandler serves the public catalog and direct booking endpoints.
type CatalogHandler struct {
	Repo catalogRepo.CatalogRepository
}

func NewCatalogHandler(repo catalogRepo.CatalogRepository) *CatalogHandler {
	return &CatalogHandler{Repo: repo}
}

func (h *CatalogHandler) ListServices(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"services": h.Repo.ListServices()})
}

// ListSlots returns open slots, optionally narrowed by ?date= and ?service=.
func (h *CatalogHandler) ListSlots(c *gin.Context) {
	slots := h.Repo.ListAvailableSlots(models.SlotFilter{
		Date:    c.Query("date"),
		Service: c.Query("service"),
	})
	c.JSON(http.StatusOK, gin.H{"slots": slots, "count": len(slots)})
}

func (h *CatalogHandler) ListEvents(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"events": h.Repo.ListUpcomingEvents()})
}

func (h *CatalogHandler) ContactInfo(c *gin.Context) {
	c.JSON(http.StatusOK, h.Repo.GetContactInfo())
}

// BookSlot books a slot by id without going through the chat flow.
func (h *CatalogHandler) BookSlot(c *gin.Context) {
	logger := getLogger(c)

	var req models.BookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid booking request", err.Error())
		return
	}

	result := h.Repo.BookSlot(req)
	if !result.Success {
		logger.Warn("Direct booking failed", zap.String("slotID", req.SlotID), zap.String("error", result.Error))
		c.JSON(http.StatusBadRequest, result)
		return
	}
	logger.Info("Slot booked", zap.String("slotID", req.SlotID), zap.String("bookingID", result.BookingID))
	c.JSON(http.StatusOK, result)
}
