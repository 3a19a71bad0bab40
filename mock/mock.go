package mock

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
)

// Greeter is the keyed capability used across the registry tests: several
// interchangeable implementations registered under different keys.
type Greeter interface {
	Greet(name string) string
}

// EmailGreeter greets over email. Instances are compared by pointer in tests,
// so each factory call must produce a distinct value.
type EmailGreeter struct {
	Serial int64
}

func (g *EmailGreeter) Greet(name string) string {
	return fmt.Sprintf("email: hello %s", name)
}

// SMSGreeter greets over SMS.
type SMSGreeter struct {
	Serial int64
}

func (g *SMSGreeter) Greet(name string) string {
	return fmt.Sprintf("sms: hello %s", name)
}

// Counter tracks how many times a factory ran.
type Counter struct {
	n int64
}

func (c *Counter) Inc() int64 {
	return atomic.AddInt64(&c.n, 1)
}

func (c *Counter) Count() int64 {
	return atomic.LoadInt64(&c.n)
}

// ReleaseLog records release order across resources sharing it.
type ReleaseLog struct {
	mu    sync.Mutex
	order []string
}

func (l *ReleaseLog) Record(name string) {
	l.mu.Lock()
	l.order = append(l.order, name)
	l.mu.Unlock()
}

func (l *ReleaseLog) Order() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.order...)
}

// Resource is a capability with a cleanup hook. Release records into the
// shared log and flips Released.
type Resource struct {
	Name     string
	Log      *ReleaseLog
	mu       sync.Mutex
	released bool
}

func (r *Resource) Release(ctx context.Context) error {
	r.mu.Lock()
	r.released = true
	r.mu.Unlock()
	if r.Log != nil {
		r.Log.Record(r.Name)
	}
	return nil
}

func (r *Resource) IsReleased() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.released
}

// FlakyResource fails its cleanup hook on demand.
type FlakyResource struct {
	Resource
	FailRelease bool
}

func (r *FlakyResource) Release(ctx context.Context) error {
	if r.FailRelease {
		return fmt.Errorf("simulated release failure for %s", r.Name)
	}
	return r.Resource.Release(ctx)
}

// FlakyFactory fails until Healthy flips, for retry-after-failure tests.
type FlakyFactory struct {
	Healthy bool
	Runs    Counter
}

func (f *FlakyFactory) Make() (*Resource, error) {
	f.Runs.Inc()
	if !f.Healthy {
		return nil, fmt.Errorf("simulated factory failure")
	}
	return &Resource{Name: "flaky"}, nil
}
