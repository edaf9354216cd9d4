// Package tracing integrates OpenTelemetry: an HTTP middleware that opens a
// server span per request, and a shared tracer for spans around slower
// internal work such as asset ingestion and the orphan sweep.
//
// Without a configured exporter the spans are no-ops, so instrumented code
// paths cost nothing in deployments that do not ship traces.
//
//	ctx, span := tracing.GetTracer().Start(ctx, "asset.ingest")
//	defer span.End()
package tracing
