// File: jusbook/handlers/admin.go
package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	catalogRepo "jusbook/database/repository/catalog"
	"jusbook/services/nlp"
	"jusbook/utils"
)

// AdminHandler encapsulates staff-only operations on the booking store.
type AdminHandler struct {
	Repo catalogRepo.CatalogRepository
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(repo catalogRepo.CatalogRepository) *AdminHandler {
	return &AdminHandler{Repo: repo}
}

// CustomerBookingsHandler lists confirmed bookings for ?contact=.
func (ah *AdminHandler) CustomerBookingsHandler(c *gin.Context) {
	contact := c.Query("contact")
	if contact == "" {
		utils.JSONError(c, http.StatusBadRequest, "contact query parameter is required", "")
		return
	}
	bookings := ah.Repo.CustomerBookings(contact)
	c.JSON(http.StatusOK, gin.H{"bookings": bookings, "count": len(bookings)})
}

// DailyScheduleHandler lists the confirmed bookings of one day ordered by time.
func (ah *AdminHandler) DailyScheduleHandler(c *gin.Context) {
	date := c.Param("date")
	if _, err := time.Parse(nlp.DateLayout, date); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid date", "expected YYYY-MM-DD")
		return
	}
	bookings := ah.Repo.DailySchedule(date)
	c.JSON(http.StatusOK, gin.H{"date": date, "bookings": bookings, "count": len(bookings)})
}

func (ah *AdminHandler) StatisticsHandler(c *gin.Context) {
	c.JSON(http.StatusOK, ah.Repo.Statistics())
}

// CancelBookingHandler cancels a confirmed booking and reopens its slot.
func (ah *AdminHandler) CancelBookingHandler(c *gin.Context) {
	logger := getLogger(c)
	bookingID := c.Param("id")

	booking, err := ah.Repo.CancelBooking(bookingID)
	switch {
	case errors.Is(err, catalogRepo.ErrBookingNotFound):
		utils.JSONError(c, http.StatusNotFound, "Booking not found", bookingID)
		return
	case errors.Is(err, catalogRepo.ErrBookingAlreadyCancelled):
		utils.JSONError(c, http.StatusConflict, "Booking already cancelled", bookingID)
		return
	case err != nil:
		logger.Error("Failed to cancel booking", zap.String("bookingID", bookingID), zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Failed to cancel booking", "")
		return
	}

	logger.Info("Booking cancelled by staff",
		zap.String("bookingID", bookingID),
		zap.String("adminID", c.GetString("adminID")))
	c.JSON(http.StatusOK, booking)
}
