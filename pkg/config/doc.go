/*
Package config loads and validates the sweeper's application
configuration.

Configuration comes from three layers, each overriding the previous:
a YAML file (default /etc/sweeper/config.yaml), SWEEPER_* environment
variables, and command-line flags applied by the cmd layer.

	policy_file: /etc/sweeper/policy.yaml
	schedule: "0 3 * * *"
	watch_policy: true
	warn_window: 1d
	logging:
	  level: info
	  format: json
	history:
	  enabled: true
	  path: /var/lib/sweeper/history.db
	  retention_days: 90
	metrics:
	  enabled: true
	  listen_address: 127.0.0.1:9413

Validation collects every problem into a single ValidationError rather
than stopping at the first.
*/
package config
