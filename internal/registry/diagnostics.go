package registry

import (
	"context"
	"log/slog"
	"sort"

	"github.com/KirkDiggler/rpg-spellindex/internal/errors"
)

// Diagnostics collects the non-fatal issues of one indexing run. It is owned
// by the caller and shared by the store and registry of that run.
type Diagnostics struct {
	issues []*errors.Error
	counts map[errors.Code]int

	// descriptor texts already reported, so each is logged once
	seenDescriptors map[string]struct{}
}

// NewDiagnostics creates an empty collector
func NewDiagnostics() *Diagnostics {
	return &Diagnostics{
		counts:          make(map[errors.Code]int),
		seenDescriptors: make(map[string]struct{}),
	}
}

// Record stores and logs an issue
func (d *Diagnostics) Record(issue *errors.Error) {
	if issue == nil {
		return
	}
	d.issues = append(d.issues, issue)
	d.counts[issue.Code]++

	level := slog.LevelWarn
	if issue.Code == errors.CodeAmbiguousSpecificOverwrite {
		level = slog.LevelDebug
	}
	slog.Log(context.Background(), level, "Indexing issue", issue.LogAttrs()...)
}

// recordDescriptorOnce records an unknown descriptor the first time its text
// is seen; later occurrences only bump the count.
func (d *Diagnostics) recordDescriptorOnce(text string, issue *errors.Error) {
	if _, seen := d.seenDescriptors[text]; seen {
		d.counts[issue.Code]++
		return
	}
	d.seenDescriptors[text] = struct{}{}
	d.Record(issue)
}

// Issues returns the recorded issues in arrival order
func (d *Diagnostics) Issues() []*errors.Error {
	out := make([]*errors.Error, len(d.issues))
	copy(out, d.issues)
	return out
}

// Count returns how many times code occurred
func (d *Diagnostics) Count(code errors.Code) int {
	return d.counts[code]
}

// Counts returns a copy of the per-code totals
func (d *Diagnostics) Counts() map[errors.Code]int {
	out := make(map[errors.Code]int, len(d.counts))
	for code, n := range d.counts {
		out[code] = n
	}
	return out
}

// LogSummary writes one line per issue code
func (d *Diagnostics) LogSummary() {
	codes := make([]string, 0, len(d.counts))
	for code := range d.counts {
		codes = append(codes, string(code))
	}
	sort.Strings(codes)

	if len(codes) == 0 {
		slog.Info("Indexing finished without issues")
		return
	}
	for _, code := range codes {
		slog.Info("Indexing issue summary", "code", code, "count", d.counts[errors.Code(code)])
	}
}
