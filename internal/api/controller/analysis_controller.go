package controller

import (
	"ctchen222/tic-tac-toe-minimax/internal/api/models"
	"ctchen222/tic-tac-toe-minimax/internal/api/response"
	"ctchen222/tic-tac-toe-minimax/internal/api/service"
	"ctchen222/tic-tac-toe-minimax/internal/bot"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

// AnalysisController handles board analysis HTTP requests.
type AnalysisController struct {
	analysisService service.AnalysisService
}

// NewAnalysisController creates a new AnalysisController.
func NewAnalysisController(analysisService service.AnalysisService) *AnalysisController {
	return &AnalysisController{
		analysisService: analysisService,
	}
}

// RegisterRoutes mounts the analysis endpoints on rg.
func (ac *AnalysisController) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/evaluate", ac.Evaluate)
	rg.POST("/best-move", ac.BestMove)
}

// Evaluate handles the board evaluation endpoint.
func (ac *AnalysisController) Evaluate(c *gin.Context) {
	var req models.EvaluateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	result := ac.analysisService.Evaluate(c.Request.Context(), models.ToBoard(req.Board))
	response.SuccessResponse(c, models.EvaluateResponse{Result: result})
}

// BestMove handles the best-move endpoint.
func (ac *AnalysisController) BestMove(c *gin.Context) {
	var req models.BestMoveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	decision, err := ac.analysisService.BestMove(c.Request.Context(), models.ToBoard(req.Board), req.Player)
	if err != nil {
		if errors.Is(err, bot.ErrNoMovesAvailable) {
			response.ErrorResponse(c, http.StatusUnprocessableEntity, err.Error())
			return
		}
		response.ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	response.SuccessResponse(c, models.BestMoveResponse{Position: decision.Position, Score: decision.Score})
}
