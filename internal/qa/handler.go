package qa

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"askpdf-backend/internal/llm"
	"askpdf-backend/internal/shared/server/respond"
)

// Headroom over the per-file cap for multipart framing and the question field.
const maxRequestBytes = MaxPDFCount*MaxPDFBytes + (1 << 20)

// Handler wires HTTP handlers to the question-answering service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches ask/roadmap routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/ask", h.ask)
	rg.POST("/roadmap", h.roadmap)
}

func (h *Handler) ask(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxRequestBytes)

	form, err := c.MultipartForm()
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid multipart form")
		return
	}

	question := c.PostForm("question")

	files := form.File["pdfs"]
	if len(files) > MaxPDFCount {
		respond.Error(c, http.StatusBadRequest, "validation_error", "Too many files (max 10)")
		return
	}
	docs := make([][]byte, 0, len(files))
	for _, fh := range files {
		if err := ValidateDocument(fh); err != nil {
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error())
			return
		}
		file, err := fh.Open()
		if err != nil {
			respond.Error(c, http.StatusBadRequest, "validation_error", "unable to read uploaded file")
			return
		}
		data, err := io.ReadAll(file)
		_ = file.Close()
		if err != nil {
			respond.Error(c, http.StatusBadRequest, "validation_error", "unable to read uploaded file")
			return
		}
		docs = append(docs, data)
	}

	result, err := h.Svc.Ask(c.Request.Context(), question, docs)
	if err != nil {
		h.writeAskError(c, err)
		return
	}

	respond.OK(c, result)
}

type roadmapRequest struct {
	Question  string     `json:"question"`
	Resources []Resource `json:"resources"`
}

func (h *Handler) roadmap(c *gin.Context) {
	var req roadmapRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body")
		return
	}

	roadmap, err := h.Svc.Roadmap(c.Request.Context(), req.Question, req.Resources)
	if err != nil {
		h.writeAskError(c, err)
		return
	}

	respond.OK(c, gin.H{"roadmap": roadmap})
}

func (h *Handler) writeAskError(c *gin.Context, err error) {
	var vErr *ValidationError
	switch {
	case errors.As(err, &vErr):
		respond.Error(c, http.StatusBadRequest, "validation_error", vErr.Error())
	case errors.Is(err, ErrExtract):
		respond.Error(c, http.StatusInternalServerError, "extraction_error", "Failed to extract text from uploaded PDF")
	case errors.Is(err, llm.ErrTimeout):
		respond.Error(c, http.StatusInternalServerError, "llm_timeout", "The model took too long to answer, please try again")
	default:
		respond.Error(c, http.StatusInternalServerError, "internal_error", "Failed to answer question")
	}
}
