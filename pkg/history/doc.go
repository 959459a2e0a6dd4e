/*
Package history records sweep runs in a local journal so operators can
answer "when did the last purge run, and what did it reclaim?" without
trawling logs.

Two store implementations are provided: a SQLite-backed store for real
deployments and an in-memory store for tests. The journal keeps its own
retention: Prune removes rows older than a cutoff and is typically
called at the end of each run.

	store, err := history.NewSQLiteStore("data/history.db")
	...
	defer store.Close()

	rec := history.NewRecord("execute", result)
	if err := store.Record(ctx, rec); err != nil { ... }

	recent, err := store.List(ctx, 20)
*/
package history
