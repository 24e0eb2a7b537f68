package utils

import "time"

// DashboardCachePrefix namespaces every cached dashboard payload in redis.
const DashboardCachePrefix = "dashboard:"

// DefaultDashboardCacheTTL applies when no TTL is configured.
const DefaultDashboardCacheTTL = 5 * time.Minute

// StoreCallTimeout bounds every single document-store round trip.
const StoreCallTimeout = 5 * time.Second

// HealthCheckInterval is how often StartHealthMonitor pings its dependencies.
const HealthCheckInterval = 60 * time.Second
