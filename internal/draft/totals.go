package draft

import (
	"math"
	"strconv"
	"strings"
)

// TotalServicesValue sums the prices of the selected services. Catalog prices
// arrive as strings; anything that does not parse to a finite number
// contributes zero rather than failing or poisoning the sum. The total is
// recomputed from the current selection on every call so it cannot go stale
// relative to AddService/RemoveService.
func (d *Draft) TotalServicesValue() float64 {
	var total float64
	for _, s := range d.Services {
		total += parsePrice(s.Price)
	}
	return total
}

// TotalDuration sums the selected services' durations in minutes. Services
// without a known duration contribute zero.
func (d *Draft) TotalDuration() int {
	var total int
	for _, s := range d.Services {
		if s.DurationMinutes != nil {
			total += *s.DurationMinutes
		}
	}
	return total
}

func parsePrice(raw string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
