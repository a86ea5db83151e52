package api

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/purge-dev/CliniCord/models"
	"github.com/purge-dev/CliniCord/repository"
	"github.com/purge-dev/CliniCord/services"
	"github.com/purge-dev/CliniCord/utils"
)

// APIHandler holds all dependencies for API handlers.
type APIHandler struct {
	assessmentService services.AssessmentService
	catalog           services.InstrumentCatalog
	resultRepo        repository.ResultRepository
}

// NewAPIHandler creates a new APIHandler with necessary dependencies.
func NewAPIHandler(
	assessmentService services.AssessmentService,
	catalog services.InstrumentCatalog,
	resultRepo repository.ResultRepository,
) *APIHandler {
	return &APIHandler{
		assessmentService: assessmentService,
		catalog:           catalog,
		resultRepo:        resultRepo,
	}
}

// StartAssessmentHandler begins an assessment and returns the first
// question to render.
func (h *APIHandler) StartAssessmentHandler(c *gin.Context) {
	var req StartAssessmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendJSONError(c, http.StatusBadRequest, "Invalid request format.", err)
		return
	}

	instrumentID := req.InstrumentID
	if instrumentID == "" {
		instrumentID = services.BDIInstrumentID
	}

	log.Printf("INFO: [API] UserID '%s' starting assessment '%s'.", req.UserID, instrumentID)

	prompt, err := h.assessmentService.BeginAssessment(req.UserID, instrumentID)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrUnknownInstrument):
			utils.SendJSONError(c, http.StatusNotFound, "That assessment does not exist.", err)
		case errors.Is(err, models.ErrSessionAlreadyActive):
			utils.SendJSONError(c, http.StatusConflict, "You already have an assessment in progress. Finish or cancel it first.", err)
		default:
			utils.SendJSONError(c, http.StatusInternalServerError, "", err)
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"question": prompt})
}

// AnswerHandler submits one answer and returns the tagged outcome: the
// next question, the final result, or an invalid-answer re-prompt.
func (h *APIHandler) AnswerHandler(c *gin.Context) {
	var req AnswerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendJSONError(c, http.StatusBadRequest, "Invalid request format.", err)
		return
	}

	outcome, err := h.assessmentService.HandleAnswer(req.UserID, req.Answer)
	if err != nil {
		if errors.Is(err, models.ErrSessionNotActive) {
			utils.SendJSONError(c, http.StatusConflict, "You have no assessment in progress. Start one first.", err)
			return
		}
		utils.SendJSONError(c, http.StatusInternalServerError, "", err)
		return
	}

	// Invalid answers are part of the normal flow: the same question comes
	// back with a message, not an error status.
	c.JSON(http.StatusOK, outcome)
}

// CancelAssessmentHandler abandons the user's active assessment.
func (h *APIHandler) CancelAssessmentHandler(c *gin.Context) {
	var req CancelAssessmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendJSONError(c, http.StatusBadRequest, "Invalid request format.", err)
		return
	}

	if err := h.assessmentService.CancelAssessment(req.UserID); err != nil {
		if errors.Is(err, models.ErrSessionNotActive) {
			utils.SendJSONError(c, http.StatusConflict, "You have no assessment in progress to cancel.", err)
			return
		}
		utils.SendJSONError(c, http.StatusInternalServerError, "", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Assessment cancelled. You can start again whenever you are ready."})
}

// HistoryHandler lists a user's completed assessments, newest first.
func (h *APIHandler) HistoryHandler(c *gin.Context) {
	userID := c.Param("userID")
	if userID == "" {
		utils.SendJSONError(c, http.StatusBadRequest, "A user ID is required.", nil)
		return
	}

	records, err := h.resultRepo.GetRecordsByUserID(userID)
	if err != nil {
		utils.SendJSONError(c, http.StatusInternalServerError, "", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"user_id": userID, "records": records})
}

// InstrumentsHandler lists the instruments available for assessment.
func (h *APIHandler) InstrumentsHandler(c *gin.Context) {
	instruments := h.catalog.List()
	summaries := make([]InstrumentSummary, 0, len(instruments))
	for _, in := range instruments {
		summaries = append(summaries, InstrumentSummary{
			ID:            in.ID,
			Name:          in.Name,
			QuestionCount: len(in.Questions),
			MaxTotal:      in.MaxTotal(),
		})
	}
	c.JSON(http.StatusOK, gin.H{"instruments": summaries})
}
