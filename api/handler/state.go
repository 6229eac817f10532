package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/use-agent/folio/api/middleware"
	"github.com/use-agent/folio/controller"
	"github.com/use-agent/folio/models"
)

// stateResponse converts a controller state into its JSON form.
func stateResponse(s controller.State) models.StateResponse {
	resp := models.StateResponse{
		Success: true,
		Phase:   s.Phase.String(),
		Token:   s.Token,
		Input:   s.Input,
		URL:     s.URL,
		Profile: s.Profile,
	}
	if s.Err != nil {
		resp.Error = s.Err.ToDetail()
	}
	return resp
}

// State returns a handler for GET /api/v1/state.
func State() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, stateResponse(middleware.Controller(c).Snapshot()))
	}
}

// Edit returns a handler for POST /api/v1/input, which records the live
// input text without submitting it.
func Edit() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.EditRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err)
			return
		}
		c.JSON(http.StatusOK, stateResponse(middleware.Controller(c).Edit(req.Input)))
	}
}

func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, models.StateResponse{
		Success: false,
		Error: &models.ErrorDetail{
			Code:    models.ErrCodeInvalidInput,
			Message: err.Error(),
		},
	})
}
