// Package host is the plugin runtime behind the voicekit binary. It defines
// the contracts a plugin is handed (Context, Logger, Command, Plugin), the
// capability registry plugins read providers from, and the glue that mounts
// plugin commands onto the cobra command tree.
package host
