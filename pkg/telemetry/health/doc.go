// Package health provides liveness and readiness probes for the
// sweeper daemon.
//
// The daemon registers a check per dependency it needs to sweep:
//
//	checker := health.New(0)
//	checker.RegisterCheck("policy", func(ctx context.Context) error {
//		_, err := policy.Load(policyFile)
//		return err
//	})
//	mux.HandleFunc("/healthz", checker.LivenessHandler())
//	mux.HandleFunc("/readyz", checker.ReadinessHandler())
//
// Liveness answers immediately; readiness runs every registered check
// and returns 503 while any of them fails.
package health
