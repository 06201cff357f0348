// Package websocket - websocket/metrics.go
// file: websocket/metrics.go

package websocket

import (
	"os"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/cloudwatch"

	"go-trip-ops/logger"
)

// Namespace for all TripOps metrics
var metricsNamespace = "TripOps"

// Reuse a single CloudWatch client for all metrics calls
var cwClient = cloudwatch.New(session.Must(session.NewSession()))

// metricsEnabled gates CloudWatch calls so local/dev runs stay offline.
var metricsEnabled = os.Getenv("METRICS_ENABLED") == "true"

// PublishFeedConnections pushes the current dashboard feed connection count
func PublishFeedConnections(count int, tripID string) {
	putMetric("FeedConnections", float64(count), "Count", tripID)
}

// PublishCheckinRecorded counts successful attendance writes
func PublishCheckinRecorded(tripID string) {
	putMetric("CheckinRecorded", 1, "Count", tripID)
}

// PublishBadgeAwarded counts newly awarded badges
func PublishBadgeAwarded(tripID string) {
	putMetric("BadgeAwarded", 1, "Count", tripID)
}

// -----------------------------------------------------------
// internal helper function to package up CloudWatch calls
// -----------------------------------------------------------
func putMetric(metricName string, value float64, unit string, tripID string) {
	if !metricsEnabled {
		return
	}

	_, err := cwClient.PutMetricData(&cloudwatch.PutMetricDataInput{
		Namespace: aws.String(metricsNamespace),
		MetricData: []*cloudwatch.MetricDatum{
			{
				MetricName: aws.String(metricName),
				Dimensions: []*cloudwatch.Dimension{
					{
						Name:  aws.String("TripId"),
						Value: aws.String(tripID),
					},
				},
				Timestamp: aws.Time(time.Now()),
				Value:     aws.Float64(value),
				Unit:      aws.String(unit),
			},
		},
	})
	if err != nil {
		logger.Warn.Printf("putMetric: failed to publish %s: %v", metricName, err)
	}
}
