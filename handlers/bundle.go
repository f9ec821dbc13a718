// File: jusbook/handlers/bundle.go
package handlers

import (
	"github.com/gin-gonic/gin"

	catalogRepo "jusbook/database/repository/catalog"
	ai "jusbook/services/intelligence"
)

// HandlerBundle groups all endpoint handlers into one struct.
type HandlerBundle struct {
	// Chat endpoint
	ChatHandler gin.HandlerFunc

	// Public catalog endpoints
	ListServicesHandler gin.HandlerFunc
	ListSlotsHandler    gin.HandlerFunc
	ListEventsHandler   gin.HandlerFunc
	ContactInfoHandler  gin.HandlerFunc
	BookSlotHandler     gin.HandlerFunc

	// Staff endpoints
	AdminHandler *AdminHandler

	HealthHandler gin.HandlerFunc
}

// NewHandlerBundle wires every handler against the shared booking store and chat service.
func NewHandlerBundle(repo catalogRepo.CatalogRepository, chat ai.ChatService) *HandlerBundle {
	catalog := NewCatalogHandler(repo)
	return &HandlerBundle{
		ChatHandler: ChatHandler(chat),

		ListServicesHandler: catalog.ListServices,
		ListSlotsHandler:    catalog.ListSlots,
		ListEventsHandler:   catalog.ListEvents,
		ContactInfoHandler:  catalog.ContactInfo,
		BookSlotHandler:     catalog.BookSlot,

		AdminHandler: NewAdminHandler(repo),

		HealthHandler: HealthHandler,
	}
}
