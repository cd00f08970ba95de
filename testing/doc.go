// Package testing provides test utilities for the feasible module.
//
// It follows the net/http/httptest convention of shipping helpers in a
// dedicated package. Import it under an alias to avoid clashing with the
// standard library:
//
//	import feasibletest "github.com/arloliu/feasible/testing"
//
// Key utilities:
//   - StartEmbeddedNATS: in-process NATS server with JetStream
//   - CreateResultCache: memory-backed KV bucket for the service result cache
//   - NewTestLogger: Logger writing through t.Logf
//
// Example:
//
//	func TestService(t *testing.T) {
//	    _, nc := feasibletest.StartEmbeddedNATS(t)
//	    kv := feasibletest.CreateResultCache(t, nc, "results")
//	    svc, err := service.New(nc, enumerator, service.WithResultCache(kv))
//	    // ...
//	}
package testing
