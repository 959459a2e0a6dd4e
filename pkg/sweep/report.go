package sweep

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/dustin/go-humanize"
)

// RenderText writes a human-readable rendering of a plan.
func RenderText(w io.Writer, plan *Plan) error {
	if plan.Empty() && len(plan.Warnings) == 0 && len(plan.ScanFailures) == 0 {
		_, err := fmt.Fprintln(w, "Nothing to purge.")
		return err
	}

	if len(plan.Files) > 0 {
		fmt.Fprintf(w, "Files to purge (%d, %s):\n",
			len(plan.Files), humanize.IBytes(uint64(plan.PurgeBytes())))
		for _, f := range plan.Files {
			fmt.Fprintf(w, "  %s  %s %s  age %s exceeds %s  (%s)\n",
				f.Path, f.Class, f.Reason,
				f.Age.Round(durationPrecision(f.Age)),
				f.Criterion,
				humanize.IBytes(uint64(f.Size)))
		}
	}

	if len(plan.Warnings) > 0 {
		fmt.Fprintf(w, "Files approaching purge eligibility (%d):\n", len(plan.Warnings))
		for _, wr := range plan.Warnings {
			fmt.Fprintf(w, "  %s  %s %s  eligible in %s\n",
				wr.Path, wr.Class, wr.Reason,
				wr.EligibleIn.Round(durationPrecision(wr.EligibleIn)))
		}
	}

	if len(plan.ScanFailures) > 0 {
		fmt.Fprintf(w, "Entries that could not be examined (%d):\n", len(plan.ScanFailures))
		for _, sf := range plan.ScanFailures {
			fmt.Fprintf(w, "  %s: %s\n", sf.Path, sf.Error)
		}
	}
	return nil
}

// RenderResultText writes a human-readable rendering of a sweep result.
func RenderResultText(w io.Writer, result *Result) error {
	if result.DryRun {
		fmt.Fprintf(w, "Dry run: %d files (%s) would have been purged.\n",
			result.FilesPlanned, humanize.IBytes(uint64(result.BytesReclaimed)))
		return nil
	}
	fmt.Fprintf(w, "Purged %d of %d files, reclaimed %s, removed %d empty directories in %s.\n",
		result.FilesPurged, result.FilesPlanned,
		humanize.IBytes(uint64(result.BytesReclaimed)),
		result.DirsRemoved,
		result.Duration().Round(durationPrecision(result.Duration())))
	if result.FilesMissing > 0 {
		fmt.Fprintf(w, "%d planned files were already gone.\n", result.FilesMissing)
	}
	if len(result.Failures) > 0 {
		fmt.Fprintf(w, "Failures (%d):\n", len(result.Failures))
		for _, f := range result.Failures {
			fmt.Fprintf(w, "  %s %s: %s\n", f.Op, f.Path, f.Error)
		}
	}
	return nil
}

// RenderJSON writes v as indented JSON.
func RenderJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// Summary returns a one-line summary of a plan, suitable for alerts
// and log lines.
func (p *Plan) Summary() string {
	return fmt.Sprintf("purge plan: %d files, %s, %d warnings, %d scan failures",
		len(p.Files), humanize.IBytes(uint64(p.PurgeBytes())),
		len(p.Warnings), len(p.ScanFailures))
}

// Summary returns a one-line summary of a result, suitable for alerts
// and log lines.
func (r *Result) Summary() string {
	if r.DryRun {
		return fmt.Sprintf("dry run: %d files (%s) would have been purged",
			r.FilesPlanned, humanize.IBytes(uint64(r.BytesReclaimed)))
	}
	return fmt.Sprintf("purged %d of %d files, reclaimed %s, %d failures",
		r.FilesPurged, r.FilesPlanned,
		humanize.IBytes(uint64(r.BytesReclaimed)), len(r.Failures))
}

// durationPrecision picks a display rounding that keeps ages readable
// at any scale.
func durationPrecision(d time.Duration) time.Duration {
	switch {
	case d >= 24*time.Hour:
		return time.Hour
	case d >= time.Hour:
		return time.Minute
	case d >= time.Minute:
		return time.Second
	default:
		return time.Millisecond
	}
}
