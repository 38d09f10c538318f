package main

import (
	"errors"
	"fmt"
	"io"
	"slices"

	"github.com/spf13/cobra"

	"github.com/m04kA/SMC-CalendarService/internal/domain"
	"github.com/m04kA/SMC-CalendarService/pkg/calendar"
)

// errCalendarInvalid ненулевой код выхода для check
var errCalendarInvalid = errors.New("calendar is invalid")

var checkSlotsPath string

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate that slots in a JSON file form a calendar",
	RunE: func(cmd *cobra.Command, _ []string) error {
		slots, err := readSlots(checkSlotsPath)
		if err != nil {
			return err
		}
		return check(cmd.OutOrStdout(), slots)
	},
}

func init() {
	checkCmd.Flags().StringVar(&checkSlotsPath, "slots", "", "JSON file with slots")
	_ = checkCmd.MarkFlagRequired("slots")
}

func check(w io.Writer, slots []*domain.AvailabilitySlot) error {
	err := calendar.Validate(slices.Values(slots))
	var invalid *calendar.SequenceInvalidError
	switch {
	case err == nil:
		fmt.Fprintf(w, "ok: %d slots\n", len(slots))
		return nil
	case errors.As(err, &invalid):
		fmt.Fprintf(w, "invalid: %s\n", invalid.Reason)
		return fmt.Errorf("%w: %s", errCalendarInvalid, invalid.Reason)
	default:
		return err
	}
}
