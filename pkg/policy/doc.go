/*
Package policy defines the retention policy document that drives a sweep.

A policy is a YAML file listing directory trees to consider for purging.
Each directory carries a size threshold splitting files into large and
small classes, and per-class intervals describing how long it must have
been since a file was accessed, created, or modified before it becomes
purge eligible:

	directories:
	  - path: /scratch
	    threshold: 1 GiB
	    intervals:
	      large:
	        accessInterval: 1d
	        modificationInterval: 1w
	      small:
	        accessInterval: 1w
	        modificationInterval: 4w
	    exclude:
	      - "*.keep"
	      - important/**

An absent or zero interval means the corresponding ground never triggers
a purge. Exclude patterns are glob expressions matched against both the
entry name and its policy-root-relative path; matching entries are never
purged.

When multiple policy directories nest, the most specific (longest path)
policy governs its subtree and shadows any ancestor policy.

Policy files can be watched for changes with FileWatcher, which debounces
rapid write bursts before triggering a reload.
*/
package policy
