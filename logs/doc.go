// Package logs provides the logging interface used across confect and a
// zerolog-backed implementation. Components receive a Logger instead of a
// concrete logger so that library users can plug in their own sink.
//
// Example usage:
//
//	log := logs.New("resource")
//	log.Infof("loaded %s in %s", url, elapsed)
//
// Loggers can travel through a context and carry a per-request trace id:
//
//	ctx = logs.WithTraceID(logs.WithLogger(ctx, log))
//	logs.FromContext(ctx).Debugf("trace=%s", logs.TraceID(ctx))
package logs
