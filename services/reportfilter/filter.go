package reportfilter

import (
	"strconv"
	"strings"
	"time"

	"github.com/jinzhu/now"
)

const dateLayout = "2006-01-02"

// DateRange normalizes the optional startDate/endDate query parameters. The
// start bound is the beginning of that calendar day in UTC, the end bound the
// end of that day in UTC. A missing or unparsable side imposes no constraint.
func DateRange(startDate, endDate string) (*time.Time, *time.Time) {
	var start, end *time.Time

	if raw := strings.TrimSpace(startDate); raw != "" {
		if parsed, err := time.ParseInLocation(dateLayout, raw, time.UTC); err == nil {
			bound := now.With(parsed).BeginningOfDay()
			start = &bound
		}
	}

	if raw := strings.TrimSpace(endDate); raw != "" {
		if parsed, err := time.ParseInLocation(dateLayout, raw, time.UTC); err == nil {
			bound := now.With(parsed).EndOfDay()
			end = &bound
		}
	}

	return start, end
}

// PositiveID parses raw as a record id. Only a positive integer counts as a
// filter; zero, negative, junk or absent all mean "no filter".
func PositiveID(raw string) (uint, bool) {
	id, err := strconv.ParseUint(strings.TrimSpace(raw), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

const paymentMarker = "PAYMENT:"

// PaymentStatus derives a payment status from free-text remarks. The token
// immediately after the PAYMENT: marker is the status, upper-cased; a missing
// marker (or a marker with nothing after it) means PENDING.
func PaymentStatus(remarks string) string {
	upper := strings.ToUpper(remarks)
	idx := strings.Index(upper, paymentMarker)
	if idx == -1 {
		return "PENDING"
	}

	fields := strings.Fields(upper[idx+len(paymentMarker):])
	if len(fields) == 0 {
		return "PENDING"
	}
	return fields[0]
}
