package utils

import (
	"context"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
	"go.mongodb.org/mongo-driver/mongo"
)

// HealthStatus represents current status of external services.
type HealthStatus struct {
	Healthy   bool            `json:"healthy"`
	Services  map[string]bool `json:"services"`
	CheckedAt time.Time       `json:"checkedAt"`
}

// HealthCheck pings one dependency.
type HealthCheck struct {
	Name string
	Ping func(ctx context.Context) error
}

var (
	currentHealth HealthStatus
	mu            sync.RWMutex
)

// RedisCheck wraps a redis client as a HealthCheck.
func RedisCheck(name string, client *redis.Client) HealthCheck {
	return HealthCheck{Name: name, Ping: func(ctx context.Context) error {
		return client.Ping(ctx).Err()
	}}
}

// MongoCheck wraps a mongo client as a HealthCheck.
func MongoCheck(client *mongo.Client) HealthCheck {
	return HealthCheck{Name: "mongo", Ping: func(ctx context.Context) error {
		return client.Ping(ctx, nil)
	}}
}

// GetHealthStatus returns latest stored health snapshot.
func GetHealthStatus() HealthStatus {
	mu.RLock()
	defer mu.RUnlock()
	return currentHealth
}

// RunHealthChecks pings every dependency once and stores the snapshot.
func RunHealthChecks(ctx context.Context, checks []HealthCheck) HealthStatus {
	status := HealthStatus{Healthy: true, Services: make(map[string]bool, len(checks))}
	for _, check := range checks {
		pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
		ok := check.Ping(pingCtx) == nil
		cancel()
		status.Services[check.Name] = ok
		if !ok {
			status.Healthy = false
		}
	}
	status.CheckedAt = time.Now()

	mu.Lock()
	currentHealth = status
	mu.Unlock()
	return status
}

// StartHealthMonitor performs periodic health checks until ctx is cancelled.
func StartHealthMonitor(ctx context.Context, checks ...HealthCheck) {
	RunHealthChecks(ctx, checks)
	go func() {
		ticker := time.NewTicker(HealthCheckInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				RunHealthChecks(ctx, checks)
			}
		}
	}()
}
