package handler

import (
	"fmt"
	"math"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/use-agent/folio/api/middleware"
	"github.com/use-agent/folio/config"
	"github.com/use-agent/folio/controller"
	"github.com/use-agent/folio/render"
)

// pageData feeds the "page" template.
type pageData struct {
	Title          string
	Input          string
	Phase          string
	Status         string
	InFlight       bool
	RefreshSeconds int
	Error          string
	Profile        *render.View
	Examples       []config.Example
}

// Page returns a handler for GET /.
//
// A "url" query parameter prefills the form, which is how the example links
// work. It is not written to the session, so a prefetched link leaves the
// live input alone. The profile section is rendered only in the
// success phase; a failed submission shows its message and nothing else.
func Page(examples []config.Example, refresh time.Duration) gin.HandlerFunc {
	refreshSeconds := int(math.Max(1, math.Round(refresh.Seconds())))

	return func(c *gin.Context) {
		s := middleware.Controller(c).Snapshot()
		input := s.Input
		if url, ok := c.GetQuery("url"); ok {
			input = url
		}

		c.HTML(http.StatusOK, "page", pageData{
			Title:          "Portfolio Parser",
			Input:          input,
			Phase:          s.Phase.String(),
			Status:         statusLine(s),
			InFlight:       s.Phase == controller.InFlight,
			RefreshSeconds: refreshSeconds,
			Error:          s.ErrorMessage(),
			Profile:        render.Render(s.Profile),
			Examples:       examples,
		})
	}
}

func statusLine(s controller.State) string {
	switch s.Phase {
	case controller.InFlight:
		return fmt.Sprintf("Parsing %s...", s.URL)
	case controller.Success:
		return fmt.Sprintf("Parsed %s", s.URL)
	case controller.Failed:
		return "Parsing failed"
	default:
		return ""
	}
}
