package usecase

import (
	"context"
	"time"
)

// Pinger reports whether a backing service is reachable.
type Pinger func(ctx context.Context) error

type HealthReport struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}

func (r HealthReport) OK() bool {
	return r.Status == "ok"
}

type HealthUsecase interface {
	Check(ctx context.Context) HealthReport
}

type healthUsecase struct {
	pingers map[string]Pinger
	timeout time.Duration
}

// NewHealthUsecase checks every named pinger; nil pingers are skipped.
func NewHealthUsecase(pingers map[string]Pinger) HealthUsecase {
	active := make(map[string]Pinger, len(pingers))
	for name, p := range pingers {
		if p != nil {
			active[name] = p
		}
	}
	return &healthUsecase{pingers: active, timeout: 2 * time.Second}
}

func (u *healthUsecase) Check(ctx context.Context) HealthReport {
	report := HealthReport{Status: "ok"}
	if len(u.pingers) == 0 {
		return report
	}

	ctx, cancel := context.WithTimeout(ctx, u.timeout)
	defer cancel()

	report.Checks = make(map[string]string, len(u.pingers))
	for name, ping := range u.pingers {
		if err := ping(ctx); err != nil {
			report.Checks[name] = "unavailable"
			report.Status = "degraded"
			continue
		}
		report.Checks[name] = "ok"
	}
	return report
}
