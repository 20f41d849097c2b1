// Package metrics defines the domain counters exposed on /metrics next to
// the HTTP request metrics from echoprometheus. All metrics register with the
// default Prometheus registry at package init.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "posts_api"

// Label values.
const (
	ResultSuccess = "success"
	ResultFailure = "failure"

	VoteAdded   = "add"
	VoteRemoved = "remove"
)

// UsersRegisteredTotal counts successful registrations.
var UsersRegisteredTotal = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: namespace,
	Name:      "users_registered_total",
	Help:      "Total number of user accounts registered.",
})

// LoginsTotal counts login attempts.
// Label:
//   - result: "success" or "failure"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

var PostsCreatedTotal = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: namespace,
	Name:      "posts_created_total",
	Help:      "Total number of posts created.",
})

var PostsDeletedTotal = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: namespace,
	Name:      "posts_deleted_total",
	Help:      "Total number of posts deleted.",
})

// VotesTotal counts applied vote changes.
// Label:
//   - action: "add" or "remove"
var VotesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "votes_total",
		Help:      "Total number of votes added or removed.",
	},
	[]string{"action"},
)
