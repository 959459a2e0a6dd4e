// Package alert delivers sweep outcomes to a Slack-compatible webhook.
// The webhook URL is a secret and is normally supplied through the
// SWEEPER_ALERT_HOOK environment variable.
package alert
