// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package engine

import (
	"context"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

// Package-level tracer and meter for toggle operations.
var (
	tracer = otel.Tracer("commentary.engine")
	meter  = otel.Meter("commentary.engine")
)

// Metrics for toggle operations.
var (
	toggleLatency metric.Float64Histogram
	toggleTotal   metric.Int64Counter
	toggleLines   metric.Int64Histogram
	toggleErrors  metric.Int64Counter

	metricsOnce sync.Once
	metricsErr  error
)

// initMetrics initializes the metrics. Safe to call multiple times.
func initMetrics() error {
	metricsOnce.Do(func() {
		var err error

		toggleLatency, err = meter.Float64Histogram(
			"comment_toggle_duration_seconds",
			metric.WithDescription("Duration of comment toggle operations"),
			metric.WithUnit("s"),
		)
		if err != nil {
			metricsErr = err
			return
		}

		toggleTotal, err = meter.Int64Counter(
			"comment_toggle_total",
			metric.WithDescription("Total number of toggle operations"),
		)
		if err != nil {
			metricsErr = err
			return
		}

		toggleLines, err = meter.Int64Histogram(
			"comment_toggle_lines",
			metric.WithDescription("Lines rewritten per toggle operation"),
		)
		if err != nil {
			metricsErr = err
			return
		}

		toggleErrors, err = meter.Int64Counter(
			"comment_toggle_errors_total",
			metric.WithDescription("Toggle operations that failed"),
		)
		if err != nil {
			metricsErr = err
			return
		}
	})
	return metricsErr
}

// recordToggle emits per-operation metrics. Metric init failure degrades
// to no-op recording; toggling must not fail because telemetry did.
func recordToggle(ctx context.Context, filetype, action string, lines int, start time.Time, err error) {
	if initMetrics() != nil {
		return
	}

	attrs := metric.WithAttributes(
		attribute.String("filetype", filetype),
		attribute.String("action", action),
	)
	toggleLatency.Record(ctx, time.Since(start).Seconds(), attrs)
	toggleTotal.Add(ctx, 1, attrs)
	toggleLines.Record(ctx, int64(lines), attrs)
	if err != nil {
		toggleErrors.Add(ctx, 1, attrs)
	}
}

// startSpan opens a trace span for a toggle operation.
func startSpan(ctx context.Context, name, filetype string) (context.Context, trace.Span) {
	return tracer.Start(ctx, name, trace.WithAttributes(
		attribute.String("filetype", filetype),
	))
}
