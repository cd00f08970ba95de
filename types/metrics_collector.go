package types

// MetricsCollector defines methods for recording enumeration metrics.
//
// Implementations must be non-blocking and safe for concurrent use; worker
// metrics are recorded from worker goroutines.
type MetricsCollector interface {
	EnumerationMetrics
	WorkerMetrics
	CacheMetrics
}

// EnumerationMetrics defines metrics for whole enumerations.
type EnumerationMetrics interface {
	// RecordEnumeration records one finished enumeration.
	//
	// Parameters:
	//   - duration: Time taken in seconds
	//   - emitted: Number of combinations produced
	//   - success: false when the enumeration ended with an error
	RecordEnumeration(duration float64, emitted int, success bool)

	// RecordNodes records search effort for one enumeration.
	//
	// Parameters:
	//   - visited: Candidate values examined
	//   - pruned: Candidates skipped by the threshold check
	RecordNodes(visited, pruned int64)
}

// WorkerMetrics defines metrics for parallel workers.
type WorkerMetrics interface {
	// RecordWorkerRun records one worker's share of a parallel enumeration.
	//
	// Parameters:
	//   - workerID: Worker identifier ("worker-0", ...)
	//   - candidates: Number of first-level candidates the worker owned
	//   - duration: Time taken in seconds
	RecordWorkerRun(workerID string, candidates int, duration float64)
}

// CacheMetrics defines metrics for the service result cache.
type CacheMetrics interface {
	// RecordCacheLookup records a result cache lookup.
	RecordCacheLookup(hit bool)
}
