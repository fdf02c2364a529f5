package bot

import (
	"fmt"
	"strings"

	"github.com/gdgvda/tech-pizza-delivery-waiter-bot/internal/domain"
)

// FormatSummary renders the day's orders as the Markdown block posted in
// reply to /summary. Orders arrive already sorted ascending by placement
// time; a record without a timestamp is shown without the time suffix.
func FormatSummary(dateStr string, orders []domain.OrderRecord) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "--- 🍕 Food Orders for %s ---\n\n", dateStr)
	for i, o := range orders {
		timeSuffix := ""
		if !o.PlacedAt.IsZero() {
			timeSuffix = fmt.Sprintf(" (%s)", o.PlacedAt.Format("15:04"))
		}
		fmt.Fprintf(&sb, "%d. **%s** - _%s_%s\n", i+1, o.Food, o.Owner, timeSuffix)
	}
	fmt.Fprintf(&sb, "\n--- Total Orders: %d ---", len(orders))
	return sb.String()
}
