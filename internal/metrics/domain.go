package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	suggestionsReturned = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "pantrychef",
		Name:      "suggestions_returned",
		Help:      "Number of recipes returned per suggestion request",
		Buckets:   []float64{0, 1, 2, 5, 10, 15, 20},
	})

	suggestionsExcluded = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "pantrychef",
		Name:      "suggestions_excluded_total",
		Help:      "Ranked recipes removed by a filter",
	}, []string{"filter"})

	recipesImported = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "pantrychef",
		Name:      "recipes_imported_total",
		Help:      "Recipes processed by the third-party import",
	}, []string{"result"})
)

func init() {
	prometheus.MustRegister(suggestionsReturned, suggestionsExcluded, recipesImported)
}

// ObserveSuggestions records one suggestion response.
func ObserveSuggestions(returned, dietaryExcluded, allergyExcluded int) {
	suggestionsReturned.Observe(float64(returned))
	suggestionsExcluded.WithLabelValues("dietary").Add(float64(dietaryExcluded))
	suggestionsExcluded.WithLabelValues("allergy").Add(float64(allergyExcluded))
}

// RecordImport counts imported recipes by result: created, skipped or failed.
func RecordImport(result string, n int) {
	recipesImported.WithLabelValues(result).Add(float64(n))
}
