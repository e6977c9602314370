package mail

import (
	netmail "net/mail"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"askpdf-backend/internal/shared/server/respond"
)

const defaultSubject = "Your learning roadmap"

// Handler wires the email delivery endpoint to a Sender.
type Handler struct {
	Sender Sender
}

// NewHandler constructs a Handler.
func NewHandler(sender Sender) *Handler {
	return &Handler{Sender: sender}
}

// RegisterRoutes attaches the email route to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/email", h.send)
}

type emailRequest struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Content string `json:"content"`
}

func (h *Handler) send(c *gin.Context) {
	var req emailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body")
		return
	}

	// Recipient syntax is checked here, before any SMTP dial.
	req.To = strings.TrimSpace(req.To)
	if req.To == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "Recipient address is required")
		return
	}
	if _, err := netmail.ParseAddress(req.To); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "Invalid recipient address")
		return
	}
	if strings.TrimSpace(req.Content) == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "Email content cannot be empty")
		return
	}
	subject := strings.TrimSpace(req.Subject)
	if subject == "" {
		subject = defaultSubject
	}

	if err := h.Sender.Send(c.Request.Context(), req.To, subject, req.Content); err != nil {
		respond.Error(c, http.StatusInternalServerError, "delivery_error", "failed to send email")
		return
	}

	respond.OK(c, gin.H{"success": true})
}
