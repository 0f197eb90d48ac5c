package metrics

import (
	"log"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

// AppMetrics holds the enrichment pipeline's metric instruments.
// Make fields public so they can be accessed from other packages.
type AppMetrics struct {
	EnrichmentRequestsTotal   metric.Int64Counter
	EnrichmentDurationSeconds metric.Float64Histogram
	PlacesRetrievedTotal      metric.Int64Counter
	PlacesFilteredTotal       metric.Int64Counter
	ValidationDurationSeconds metric.Float64Histogram
	ProviderErrorsTotal       metric.Int64Counter
}

var (
	// Global instance of AppMetrics (initialized once)
	appMetrics *AppMetrics
	once       sync.Once
)

// InitAppMetrics initializes the global metrics instruments ONLY ONCE.
// It gets the Meter from the globally configured MeterProvider.
func InitAppMetrics() {
	once.Do(func() { // Ensure this only runs once
		meter := otel.GetMeterProvider().Meter("JetFriendAPI")
		var err error
		m := &AppMetrics{}

		m.EnrichmentRequestsTotal, err = meter.Int64Counter(
			"enrichment_requests_total",
			metric.WithDescription("Total number of enrichment passes completed"),
			metric.WithUnit("{request}"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create enrichment_requests_total: %v", err)
		}

		m.EnrichmentDurationSeconds, err = meter.Float64Histogram(
			"enrichment_duration_seconds",
			metric.WithDescription("Duration of full enrichment passes in seconds"),
			metric.WithUnit("s"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create enrichment_duration_seconds: %v", err)
		}

		m.PlacesRetrievedTotal, err = meter.Int64Counter(
			"places_retrieved_total",
			metric.WithDescription("Total place candidates returned by the place-data provider"),
			metric.WithUnit("{place}"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create places_retrieved_total: %v", err)
		}

		m.PlacesFilteredTotal, err = meter.Int64Counter(
			"places_filtered_total",
			metric.WithDescription("Total place candidates dropped below the confidence threshold"),
			metric.WithUnit("{place}"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create places_filtered_total: %v", err)
		}

		m.ValidationDurationSeconds, err = meter.Float64Histogram(
			"validation_check_duration_seconds",
			metric.WithDescription("Duration of individual verification checks in seconds"),
			metric.WithUnit("s"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create validation_check_duration_seconds: %v", err)
		}

		m.ProviderErrorsTotal, err = meter.Int64Counter(
			"provider_errors_total",
			metric.WithDescription("Total failures talking to external providers"),
			metric.WithUnit("{error}"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create provider_errors_total: %v", err)
		}

		log.Println("Application metrics instruments initialized.")
		appMetrics = m // Assign to global variable
	})
}

// Get returns the globally initialized AppMetrics instance.
// Panics if InitAppMetrics was not called first.
func Get() *AppMetrics {
	if appMetrics == nil {
		// This indicates a programming error - InitAppMetrics must be called at startup.
		panic("metrics instruments not initialized. Call metrics.InitAppMetrics() first.")
	}
	return appMetrics
}
