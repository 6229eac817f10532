package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/use-agent/folio/api/middleware"
	"github.com/use-agent/folio/models"
)

// Submit returns a handler for POST /api/v1/submit.
//
// Responds 202 with the in-flight state when a request was issued, or 200
// with the unchanged state when the URL was blank. The outcome is read
// later from GET /api/v1/state.
func Submit() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.SubmitRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err)
			return
		}

		ctrl := middleware.Controller(c)
		ctrl.Edit(req.URL)
		s, accepted := ctrl.Submit(req.URL)

		resp := stateResponse(s)
		resp.Accepted = &accepted
		status := http.StatusOK
		if accepted {
			status = http.StatusAccepted
		}
		c.JSON(status, resp)
	}
}

// SubmitForm returns a handler for the page's POST /submit form. It always
// redirects back to the page, which shows the resulting state.
func SubmitForm() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.SubmitRequest
		if err := c.ShouldBind(&req); err != nil {
			c.Redirect(http.StatusSeeOther, "/")
			return
		}

		ctrl := middleware.Controller(c)
		ctrl.Edit(req.URL)
		ctrl.Submit(req.URL)
		c.Redirect(http.StatusSeeOther, "/")
	}
}
