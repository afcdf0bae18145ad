package pages

import (
	"fmt"
	"html"
	"math"
	"time"

	"github.com/99minutos/community-board/internal/core/domain"
)

// RelativeTime formats the distance from t to now the way the feed shows it,
// e.g. "just now", "5 minutes ago", "1 day ago".
func RelativeTime(t, now time.Time) string {
	minutes := round(now.Sub(t).Minutes())
	if minutes < 1 {
		return "just now"
	}
	if minutes < 60 {
		return plural(minutes, "minute")
	}
	hours := round(float64(minutes) / 60)
	if hours < 24 {
		return plural(hours, "hour")
	}
	days := round(float64(hours) / 24)
	if days < 7 {
		return plural(days, "day")
	}
	if weeks := round(float64(days) / 7); weeks < 4 {
		return plural(weeks, "week")
	}
	if months := round(float64(days) / 30); months < 12 {
		return plural(months, "month")
	}
	return plural(round(float64(days)/365), "year")
}

func round(f float64) int { return int(math.Floor(f + 0.5)) }

func plural(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s ago", unit)
	}
	return fmt.Sprintf("%d %ss ago", n, unit)
}

// DisplayDate turns a YYYY-MM-DD date into "Jan 2, 2006". Unparsable input is
// returned unchanged.
func DisplayDate(date string) string {
	t, err := time.Parse(domain.DateLayout, date)
	if err != nil {
		return date
	}
	return t.Format("Jan 2, 2006")
}

// plain undoes the markup escaping applied when text was stored.
func plain(s string) string {
	return html.UnescapeString(s)
}
