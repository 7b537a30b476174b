package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "resumequiz_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route", "status"},
	)

	UploadsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "resumequiz_uploads_total",
			Help: "Total number of résumé uploads by outcome",
		},
		[]string{"outcome"},
	)

	SkillsMatched = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "resumequiz_skills_matched_total",
			Help: "Total number of times a skill was found in an uploaded résumé",
		},
		[]string{"skill"},
	)

	QuizSubmissions = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "resumequiz_quiz_submissions_total",
			Help: "Total number of submitted quizzes",
		},
	)

	SkillScore = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "resumequiz_skill_score_percent",
			Help:    "Distribution of quiz scores per skill",
			Buckets: []float64{0, 20, 40, 50, 60, 70, 80, 100},
		},
		[]string{"skill"},
	)

	AuthEvents = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "resumequiz_auth_events_total",
			Help: "Total number of registration, login and logout attempts by result",
		},
		[]string{"event", "result"},
	)
)

// Upload outcomes
const (
	OutcomeMatched     = "matched"
	OutcomeNoSkills    = "no_skills"
	OutcomeRejected    = "rejected"
	OutcomeUnreadable  = "unreadable"
	OutcomeStoreFailed = "store_failed"
)
