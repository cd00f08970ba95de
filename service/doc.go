// Package service exposes an enumerator over NATS request/reply.
//
// A Service subscribes to two subjects in a queue group, so any number of
// replicas can share the load:
//
//	<prefix>.enumerate   body: {"sets": [[...], ...], "threshold": 4}
//	<prefix>.filter      body: {"sets": [[...]], "theta": 4}
//
// Both reply with a JSON Reply. Enumeration results can be cached in a
// JetStream KeyValue bucket keyed by an xxh3 hash of the canonical request.
//
// Client is the matching requester. It implements the same EnumerateProblem
// method as the local enumerator, so callers can swap one for the other.
//
// Example:
//
//	e, _ := feasible.NewEnumerator(&cfg)
//	svc, err := service.New(nil, nc, e, service.WithLogger(logger))
//	if err != nil {
//	    return err
//	}
//	if err := svc.Start(ctx); err != nil {
//	    return err
//	}
//	defer svc.Stop()
package service
