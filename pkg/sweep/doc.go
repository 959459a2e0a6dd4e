/*
Package sweep implements the scratch-storage retention sweep: scanning
policy-governed directory trees, classifying files against retention
intervals, and executing (or merely reporting) the resulting purge plan.

The central type is the Purger, which serializes all operations behind a
lock and works in two phases, mirroring how operators interact with it:

	purger := sweep.NewPurger(&sweep.Config{PolicyFile: "/etc/sweeper/policy.yaml"}, logger)

	// Dry run: build a plan and inspect it.
	plan, err := purger.Plan(ctx)
	...
	sweep.RenderText(os.Stdout, plan)

	// Execute: plan, then purge, under a single lock.
	plan, result, err := purger.Execute(ctx)

A plan is built fresh on every Plan or Execute call: the policy file is
re-read, the trees are walked, and every regular file is classified as
keep, purge, or warn. Executing a plan invalidates it; Purge and Report
fail with ErrPlanNotReady until a new plan is built.

Per-entry deletion failures never abort a sweep. They are collected in
the Result, and Result.Failed reports whether any occurred so callers
can exit non-zero while still reclaiming everything that could be
reclaimed.

The Scheduler runs Execute on a cron schedule for daemon deployments.
*/
package sweep
