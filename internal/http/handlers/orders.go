package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/gdgvda/tech-pizza-delivery-waiter-bot/internal/keys"
	"github.com/gdgvda/tech-pizza-delivery-waiter-bot/internal/services"
)

// orderView is the JSON shape of a single order in the ops API.
type orderView struct {
	Owner    string `json:"owner"`
	Food     string `json:"food"`
	PlacedAt string `json:"placed_at,omitempty"`
}

// OrdersForDayResponse is the payload of GET /api/v1/orders/:date.
type OrdersForDayResponse struct {
	Date   string      `json:"date"`
	Count  int         `json:"count"`
	Orders []orderView `json:"orders"`
}

// OrdersForDay returns the orders recorded for a calendar day, sorted the
// same way the bot renders its summary. The date path segment must be
// YYYY-MM-DD; anything else is a 400.
func OrdersForDay(svc *services.OrderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		dateStr := c.Param("date")
		if !keys.ValidDate(dateStr) {
			fail(c, http.StatusBadRequest, "invalid_date", "date must be YYYY-MM-DD")
			return
		}

		records := svc.ListOrdersForDay(c.Request.Context(), dateStr)

		views := make([]orderView, 0, len(records))
		for _, r := range records {
			v := orderView{Owner: r.Owner, Food: r.Food}
			if !r.PlacedAt.IsZero() {
				v.PlacedAt = r.PlacedAt.Format(time.RFC3339)
			}
			views = append(views, v)
		}

		c.JSON(http.StatusOK, OrdersForDayResponse{
			Date:   dateStr,
			Count:  len(views),
			Orders: views,
		})
	}
}
