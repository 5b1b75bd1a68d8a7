// Package metrics описывает prometheus-метрики работы с пользователями.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "lapsheet"

// Значения метки result для обращений к кэшу.
const (
	CacheHit  = "hit"
	CacheMiss = "miss"
)

// Users — счётчики операций с пользователями.
type Users struct {
	Created            prometheus.Counter
	ValidationFailures prometheus.Counter
	CacheRequests      *prometheus.CounterVec
}

// NewUsers создаёт метрики и регистрирует их в reg. Если reg равен nil,
// метрики создаются без регистрации.
func NewUsers(reg prometheus.Registerer) *Users {
	m := &Users{
		Created: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "users_created_total",
			Help:      "Number of users persisted.",
		}),
		ValidationFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "user_validation_failures_total",
			Help:      "Number of rejected user insertion payloads.",
		}),
		CacheRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "user_cache_requests_total",
			Help:      "User cache lookups by result.",
		}, []string{"result"}),
	}
	if reg != nil {
		reg.MustRegister(m.Created, m.ValidationFailures, m.CacheRequests)
	}
	return m
}
