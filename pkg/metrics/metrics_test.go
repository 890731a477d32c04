package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics_Counters(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewWithRegistry(reg, "studio")

	m.BookingCreated("single", "pending")
	m.BookingCreated("single", "pending")
	m.BookingsCancelled("admin", 3)
	m.NotificationSent("sms", errors.New("gateway down"))
	m.PaymentOutcome("mpesa", "timeout")
	m.SlotFallbackServed()
	m.SlotCacheLookup(true)
	m.ObserveHTTPRequest("GET", "/api/v1/schedule", 200, 15*time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.bookingsCreated.WithLabelValues("single", "pending")))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.bookingsCancelled.WithLabelValues("admin")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.notifications.WithLabelValues("sms", "failed")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.paymentOutcomes.WithLabelValues("mpesa", "timeout")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.slotFallbacks))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.cacheLookups.WithLabelValues("hit")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.httpRequestsTotal.WithLabelValues("GET", "/api/v1/schedule", "200")))
}

func TestMetrics_NilReceiverIsNoop(t *testing.T) {
	var m *Metrics

	assert.NotPanics(t, func() {
		m.BookingCreated("single", "paid")
		m.BookingsCancelled("customer", 1)
		m.NotificationSent("email", nil)
		m.PaymentOutcome("stripe", "paid")
		m.SlotFallbackServed()
		m.SlotCacheLookup(false)
		m.ObserveDBQuery("query", time.Millisecond, nil)
		m.SetDBPoolStats(1, 1, 0, 0)
	})
}
