// File: services/intelligence/interface.go
package ai

import (
	"context"

	"jusbook/models"
)

// ChatService turns one user message into one bot reply.
type ChatService interface {
	ProcessMessage(ctx context.Context, req models.ChatRequest) (*models.ChatResponse, error)
}
