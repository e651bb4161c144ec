// Package metric records rate, errors and duration for service calls.
package metric

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "articled"

// Result labels recorded per call.
const (
	ResultOK     = "ok"
	ResultDenied = "denied"
	ResultError  = "error"
)

// REDClient counts calls per method and result and observes their duration.
type REDClient struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
	denied   []error
	now      func() time.Time
}

// New registers the collectors for subsystem on reg. Errors matching any of
// denied are counted with the "denied" result instead of "error".
func New(reg prometheus.Registerer, subsystem string, denied ...error) *REDClient {
	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "requests_total",
		Help:      "Number of calls partitioned by method and result.",
	}, []string{"method", "result"})

	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "request_duration_seconds",
		Help:      "Duration of calls partitioned by method.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method"})

	reg.MustRegister(requests, duration)

	return &REDClient{
		requests: requests,
		duration: duration,
		denied:   denied,
		now:      time.Now,
	}
}

// Record starts timing a call to method. The returned func records the
// outcome and hands err back unchanged.
func (c *REDClient) Record(method string) func(error) error {
	start := c.now()
	return func(err error) error {
		c.requests.WithLabelValues(method, c.result(err)).Inc()
		c.duration.WithLabelValues(method).Observe(c.now().Sub(start).Seconds())
		return err
	}
}

func (c *REDClient) result(err error) string {
	if err == nil {
		return ResultOK
	}
	for _, target := range c.denied {
		if errors.Is(err, target) {
			return ResultDenied
		}
	}
	return ResultError
}

// Counter returns the request counter for method and result.
func (c *REDClient) Counter(method, result string) prometheus.Counter {
	return c.requests.WithLabelValues(method, result)
}
