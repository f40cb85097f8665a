package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestCounters(t *testing.T) {
	Register()
	Register()

	before := testutil.ToFloat64(bookingDecision.WithLabelValues("APPROVED"))
	IncBookingDecision("APPROVED")
	assert.Equal(t, before+1, testutil.ToFloat64(bookingDecision.WithLabelValues("APPROVED")))

	before = testutil.ToFloat64(httpRequests.WithLabelValues("GET", "/items/:id", "404"))
	ObserveHTTP("GET", "/items/:id", 404, 3*time.Millisecond)
	assert.Equal(t, before+1, testutil.ToFloat64(httpRequests.WithLabelValues("GET", "/items/:id", "404")))

	before = testutil.ToFloat64(eventPublished.WithLabelValues("error"))
	IncEventPublished(false)
	assert.Equal(t, before+1, testutil.ToFloat64(eventPublished.WithLabelValues("error")))
}
