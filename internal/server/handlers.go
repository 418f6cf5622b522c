package server

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/muliwe/go-package-sorter/internal/classifier"
	"github.com/muliwe/go-package-sorter/internal/logger"
	"github.com/muliwe/go-package-sorter/internal/metrics"
	"github.com/muliwe/go-package-sorter/internal/parcel"
)

// Version is reported by /health and every classification response
var Version = "0.1.0"

// ClassifyRequest carries parcel measurements in centimeters and kilograms.
// Fields are pointers so a missing field is told apart from zero.
type ClassifyRequest struct {
	WidthCm  *float64 `json:"width_cm" form:"width_cm" binding:"required"`
	HeightCm *float64 `json:"height_cm" form:"height_cm" binding:"required"`
	LengthCm *float64 `json:"length_cm" form:"length_cm" binding:"required"`
	MassKg   *float64 `json:"mass_kg" form:"mass_kg" binding:"required"`
}

// Parcel converts the request into parcel measurements
func (r ClassifyRequest) Parcel() parcel.Parcel {
	return parcel.Parcel{
		WidthCm:  *r.WidthCm,
		HeightCm: *r.HeightCm,
		LengthCm: *r.LengthCm,
		MassKg:   *r.MassKg,
	}
}

// Response represents the API response
type Response struct {
	Category  classifier.Category `json:"category"`
	Message   string              `json:"message"`
	RequestID string              `json:"request_id"`
	Timestamp time.Time           `json:"timestamp"`
	Version   string              `json:"version"`
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

var categoryMessages = map[classifier.Category]string{
	classifier.Standard: "Parcel can be handled on the standard stack",
	classifier.Special:  "Parcel requires special handling",
	classifier.Rejected: "Parcel is rejected",
}

// Handler holds dependencies for HTTP handlers
type Handler struct {
	classifier *classifier.Classifier
	decisions  *logger.Logger
	metrics    *metrics.Metrics
	log        *zap.Logger
}

// NewHandler creates a new handler with dependencies. decisions, m and log may be nil.
func NewHandler(cl *classifier.Classifier, decisions *logger.Logger, m *metrics.Metrics, log *zap.Logger) *Handler {
	if decisions == nil {
		decisions = logger.NewFromZap(zap.NewNop())
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Handler{
		classifier: cl,
		decisions:  decisions,
		metrics:    m,
		log:        log,
	}
}

// HandleClassify handles the main classification endpoint
func (h *Handler) HandleClassify(c *gin.Context) {
	result, ok := h.evaluate(c, true)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, Response{
		Category:  result.Category,
		Message:   categoryMessages[result.Category],
		RequestID: result.RequestID,
		Timestamp: result.Timestamp,
		Version:   Version,
	})
}

// HandleExplain returns the full classification result for debugging
func (h *Handler) HandleExplain(c *gin.Context) {
	result, ok := h.evaluate(c, false)
	if !ok {
		return
	}
	c.IndentedJSON(http.StatusOK, result)
}

// HandleHealth handles the health check endpoint
func (h *Handler) HandleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{
		Status:  "ok",
		Version: Version,
	})
}

// HandleNotFound answers unknown routes
func (h *Handler) HandleNotFound(c *gin.Context) {
	respondError(c, &APIError{
		Code:    CodeNotFound,
		Message: "route not found",
		status:  http.StatusNotFound,
	})
}

// evaluate binds and classifies the request. When record is set the outcome
// goes to the decision log and metrics.
func (h *Handler) evaluate(c *gin.Context, record bool) (classifier.Result, bool) {
	start := time.Now()

	var (
		req ClassifyRequest
		err error
	)
	if c.Request.Method == http.MethodGet {
		err = c.ShouldBindQuery(&req)
	} else {
		err = c.ShouldBindJSON(&req)
	}
	if err != nil {
		if record {
			h.recordInvalid(metrics.ReasonMalformed)
		}
		respondError(c, bindError(err))
		return classifier.Result{}, false
	}

	requestID := RequestIDFromContext(c)
	p := req.Parcel()

	result, err := h.classifier.Evaluate(p)
	if err != nil {
		if record {
			reason := metrics.ReasonMass
			if errors.Is(err, classifier.ErrInvalidDimensions) {
				reason = metrics.ReasonDimension
			}
			h.recordInvalid(reason)
			h.decisions.LogRejection(requestID, p, err, c.ClientIP(), time.Since(start))
		}
		h.log.Debug("Invalid parcel", zap.String("request_id", requestID), zap.Error(err))
		respondError(c, inputError(err))
		return classifier.Result{}, false
	}

	if requestID != "" {
		result.RequestID = requestID
	}

	if record {
		if h.metrics != nil {
			h.metrics.RecordClassification(result.Category)
		}
		h.decisions.LogResult(result, c.ClientIP(), time.Since(start))
	}

	return result, true
}

func (h *Handler) recordInvalid(reason string) {
	if h.metrics != nil {
		h.metrics.RecordInvalidInput(reason)
	}
}
