package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"core/internal/model"
)

// UI prints conversation output to a terminal.
type UI struct {
	out io.Writer

	title  *color.Color
	answer *color.Color
	muted  *color.Color
	warn   *color.Color
	accent *color.Color
}

// NewUI creates a UI; noColor disables all styling.
func NewUI(out io.Writer, noColor bool) *UI {
	ui := &UI{
		out:    out,
		title:  color.New(color.FgCyan, color.Bold),
		answer: color.New(color.FgWhite),
		muted:  color.New(color.FgHiBlack),
		warn:   color.New(color.FgYellow),
		accent: color.New(color.FgGreen),
	}
	if noColor {
		for _, c := range []*color.Color{ui.title, ui.answer, ui.muted, ui.warn, ui.accent} {
			c.DisableColor()
		}
	}
	return ui
}

// Prompt prints the input prompt.
func (ui *UI) Prompt(metric model.Metric) {
	ui.accent.Fprintf(ui.out, "[%s] > ", metric)
}

// Info prints a muted line.
func (ui *UI) Info(format string, args ...interface{}) {
	ui.muted.Fprintf(ui.out, format+"\n", args...)
}

// Warn prints a warning line.
func (ui *UI) Warn(format string, args ...interface{}) {
	ui.warn.Fprintf(ui.out, "! "+format+"\n", args...)
}

// Turn prints one turn result.
func (ui *UI) Turn(result *model.TurnResult, showQuery bool) {
	if showQuery {
		ui.muted.Fprintf(ui.out, "→ %s\n", result.EnrichedQuery)
	}

	if result.Failed {
		ui.warn.Fprintln(ui.out, result.Answer)
	} else {
		ui.answer.Fprintln(ui.out, result.Answer)
	}

	if len(result.RankedAreas) > 0 {
		ui.title.Fprintln(ui.out, "\nRanking")
		for i, ra := range result.RankedAreas {
			line := fmt.Sprintf("  %d. %-20s %4.1f", i+1, ra.Area, ra.InvestmentScore)
			if len(ra.Highlights) > 0 {
				line += "  " + strings.Join(ra.Highlights, ", ")
			}
			fmt.Fprintln(ui.out, line)
		}
	}

	ui.list("Try asking", result.Suggestions)
	ui.list("Follow-ups", result.FollowUps)
	fmt.Fprintln(ui.out)
}

// Memory prints a memory snapshot.
func (ui *UI) Memory(mem model.SessionMemory) {
	ui.title.Fprintf(ui.out, "Memory (v%d)\n", mem.Version)
	fmt.Fprintf(ui.out, "  localities:    %s\n", orNone(strings.Join(mem.Localities, ", ")))
	fmt.Fprintf(ui.out, "  metric:        %s\n", mem.PreferredMetric)
	fmt.Fprintf(ui.out, "  last compared: %s\n", orNone(strings.Join(mem.LastCompared, " vs ")))
	if mem.LastYears != nil {
		fmt.Fprintf(ui.out, "  last years:    %d-%d\n", mem.LastYears.Start, mem.LastYears.End)
	} else {
		fmt.Fprintf(ui.out, "  last years:    none\n")
	}
}

func (ui *UI) list(heading string, items []string) {
	if len(items) == 0 {
		return
	}
	ui.title.Fprintf(ui.out, "\n%s\n", heading)
	for _, item := range items {
		fmt.Fprintf(ui.out, "  • %s\n", item)
	}
}

func orNone(s string) string {
	if s == "" {
		return "none"
	}
	return s
}
