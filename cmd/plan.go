package main

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/m04kA/SMC-CalendarService/internal/domain"
	"github.com/m04kA/SMC-CalendarService/pkg/calendar"
)

var (
	planSlotsPath string
	planStart     string
	planDuration  time.Duration
	planRemove    bool
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Print the commands adding or removing a span would produce",
	Long: `Plan a change against a calendar stored in a JSON file without touching the database.

Examples:
  # Add 45 minutes at 10:00
  smc-calendar plan --slots slots.json --start 2030-01-02T10:00:00Z --duration 45m

  # Remove an hour
  smc-calendar plan --slots slots.json --start 2030-01-02T10:00:00Z --duration 1h --remove
`,
	RunE: runPlan,
}

func init() {
	planCmd.Flags().StringVar(&planSlotsPath, "slots", "", "JSON file with the current slots")
	planCmd.Flags().StringVar(&planStart, "start", "", "Span start, RFC3339")
	planCmd.Flags().DurationVar(&planDuration, "duration", 0, "Span duration, e.g. 45m")
	planCmd.Flags().BoolVar(&planRemove, "remove", false, "Vacate the span instead of adding it")
	_ = planCmd.MarkFlagRequired("slots")
	_ = planCmd.MarkFlagRequired("start")
	_ = planCmd.MarkFlagRequired("duration")
}

func runPlan(cmd *cobra.Command, _ []string) error {
	start, err := time.Parse(time.RFC3339, planStart)
	if err != nil {
		return fmt.Errorf("parse --start: %w", err)
	}

	slots, err := readSlots(planSlotsPath)
	if err != nil {
		return err
	}

	return plan(cmd.OutOrStdout(), slots, calendar.Span{Start: start, Duration: planDuration}, planRemove)
}

func plan(w io.Writer, slots []*domain.AvailabilitySlot, span calendar.Span, remove bool) error {
	cal := calendar.New(slots)
	if err := cal.Validate(); err != nil {
		return fmt.Errorf("slots are not a valid calendar: %w", err)
	}

	var (
		cmds []domain.SlotCommand
		err  error
	)
	if remove {
		cmds, err = cal.PlanRemove(span)
	} else {
		cmds, err = cal.PlanAdd(&domain.AvailabilitySlot{StartAt: span.Start, Duration: span.Duration})
	}
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "commands (%d):\n", len(cmds))
	for _, c := range cmds {
		fmt.Fprintf(w, "  %s #%d %s\n", c.Verb, c.Target.ID, c.Span)
	}

	result := applyInMemory(slots, cmds)
	fmt.Fprintf(w, "result (%d):\n", len(result))
	printSlots(w, result)

	return nil
}
