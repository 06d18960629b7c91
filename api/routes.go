package api

import (
	"net/http"

	"github.com/avdeev99/travelbot/internal/service/assistant"
	"github.com/gin-gonic/gin"
)

// RouteHandler exposes the current ticket's offered routes read-only.
type RouteHandler struct {
	service assistant.AssistantUseCase
}

type routeResponse struct {
	Airline      string `json:"airline"`
	FlightNumber string `json:"flight_number"`
	Value        string `json:"value"`
}

func NewRouteHandler(service assistant.AssistantUseCase) *RouteHandler {
	return &RouteHandler{service: service}
}

func (h *RouteHandler) Register(router *gin.RouterGroup) {
	router.GET("/conversations/:id/routes", h.list)
}

func (h *RouteHandler) list(c *gin.Context) {
	routes, err := h.service.AvailableRoutes(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	out := make([]routeResponse, 0, len(routes))
	for _, route := range routes {
		out = append(out, routeResponse{
			Airline:      string(route.Airline),
			FlightNumber: route.FlightNumber,
			Value:        route.Value(),
		})
	}
	c.JSON(http.StatusOK, out)
}
