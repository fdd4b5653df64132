// Package maintenance runs one health check: it drives the collectors in a
// fixed sequence, parses and classifies the error log, renders every
// section and compiles the report.
//
// Collector failures never abort a run. The affected section shows a
// placeholder and the failure is logged. The only early exit is
// cancellation of the context, which is checked between steps; an
// interrupted run produces no report.
package maintenance
