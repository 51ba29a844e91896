// Package metrics provides application-level counters using stdlib expvar.
// Counters are exported on /debug/vars when a binary serves expvar; the
// stats command prints them for the current process.
package metrics

import "expvar"

// Operation counters.
var (
	CommandsExecuted    = expvar.NewInt("clubroster_commands_executed_total")
	CommandsFailed      = expvar.NewInt("clubroster_commands_failed_total")
	GateRejections      = expvar.NewInt("clubroster_gate_rejections_total")
	Saves               = expvar.NewInt("clubroster_saves_total")
	LoadFallbacks       = expvar.NewInt("clubroster_load_fallbacks_total")
	IntegrityViolations = expvar.NewInt("clubroster_integrity_violations_total")
)

// Inc increments the given counter by 1.
func Inc(counter *expvar.Int) { counter.Add(1) }

// Snapshot returns the current value of every counter, keyed by name.
func Snapshot() map[string]int64 {
	return map[string]int64{
		"commands_executed":    CommandsExecuted.Value(),
		"commands_failed":      CommandsFailed.Value(),
		"gate_rejections":      GateRejections.Value(),
		"saves":                Saves.Value(),
		"load_fallbacks":       LoadFallbacks.Value(),
		"integrity_violations": IntegrityViolations.Value(),
	}
}
