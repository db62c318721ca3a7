package handler

import (
	"context"
	"log"
	"net/http"
	"time"

	"propboard/internal/model"
	"propboard/internal/repository"
	"propboard/internal/service"

	"github.com/gin-gonic/gin"
)

// CommandHandler handles command-bar HTTP requests
type CommandHandler struct {
	classifier *service.CommandClassifier
	executor   *service.CommandExecutor
	repo       *repository.PostgresRepository
}

// NewCommandHandler creates a new command handler
func NewCommandHandler(classifier *service.CommandClassifier, executor *service.CommandExecutor, repo *repository.PostgresRepository) *CommandHandler {
	return &CommandHandler{
		classifier: classifier,
		executor:   executor,
		repo:       repo,
	}
}

// Execute handles POST /api/v1/command
func (h *CommandHandler) Execute(c *gin.Context) {
	var req model.CommandRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	start := time.Now()
	command := h.classifier.Classify(req.Text, req.ActiveTab)
	result := h.executor.Execute(c.Request.Context(), command)
	took := time.Since(start).Milliseconds()

	// Log asynchronously so the response is never held up by the database
	if h.repo != nil {
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := h.repo.LogCommand(ctx, command.RawInput, command.Kind, command.Confidence, result.Succeeded, int(took)); err != nil {
				log.Printf("⚠️  Failed to log command: %v", err)
			}
		}()
	}

	c.JSON(http.StatusOK, model.CommandResponse{
		Command: command,
		Result:  result,
		Took:    took,
	})
}
