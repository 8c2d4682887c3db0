package logs

import "runtime/debug"

// CapturePanic logs a recovered panic with its stack trace and re-panics.
// Use it as a deferred call at goroutine entry points so crashes leave a
// structured record before taking the process down.
func CapturePanic(log Logger) {
	if r := recover(); r != nil {
		log.Debugw("panic captured", map[string]any{
			"panic": r,
			"stack": string(debug.Stack()),
		})
		log.Errorf("panic: %v", r)
		panic(r)
	}
}
