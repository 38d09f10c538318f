package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"slices"
	"time"

	"github.com/m04kA/SMC-CalendarService/internal/domain"
	"github.com/m04kA/SMC-CalendarService/pkg/calendar"
)

// slotFile одна запись файла слотов: {"id": 1, "start": "2030-01-02T09:00:00Z", "duration": "1h"}
type slotFile struct {
	ID       int64     `json:"id"`
	Start    time.Time `json:"start"`
	Duration string    `json:"duration"`
}

func readSlots(path string) ([]*domain.AvailabilitySlot, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open slots: %w", err)
	}
	defer f.Close()
	return decodeSlots(f)
}

func decodeSlots(r io.Reader) ([]*domain.AvailabilitySlot, error) {
	var raw []slotFile
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode slots: %w", err)
	}

	slots := make([]*domain.AvailabilitySlot, 0, len(raw))
	for i, s := range raw {
		d, err := time.ParseDuration(s.Duration)
		if err != nil {
			return nil, fmt.Errorf("slot %d: duration %q: %w", i, s.Duration, err)
		}
		id := s.ID
		if id == 0 {
			id = int64(i + 1)
		}
		slots = append(slots, &domain.AvailabilitySlot{ID: id, StartAt: s.Start, Duration: d})
	}
	return slots, nil
}

// applyInMemory применяет команды к копии последовательности.
// Вставленные слоты получают ID после максимального.
func applyInMemory(slots []*domain.AvailabilitySlot, cmds []domain.SlotCommand) []*domain.AvailabilitySlot {
	var nextID int64
	out := make([]*domain.AvailabilitySlot, 0, len(slots)+1)
	index := make(map[*domain.AvailabilitySlot]int, len(slots))
	for _, s := range slots {
		cp := *s
		index[s] = len(out)
		out = append(out, &cp)
		nextID = max(nextID, s.ID)
	}

	deleted := make(map[int]bool)
	for _, c := range cmds {
		switch c.Verb {
		case calendar.Insert:
			nextID++
			out = append(out, &domain.AvailabilitySlot{ID: nextID, Scope: c.Target.Scope, StartAt: c.Span.Start, Duration: c.Span.Duration})
		case calendar.Update:
			s := out[index[c.Target]]
			s.StartAt, s.Duration = c.Span.Start, c.Span.Duration
		case calendar.Delete:
			deleted[index[c.Target]] = true
		}
	}

	result := make([]*domain.AvailabilitySlot, 0, len(out))
	for i, s := range out {
		if !deleted[i] {
			result = append(result, s)
		}
	}
	slices.SortFunc(result, func(a, b *domain.AvailabilitySlot) int {
		return a.StartAt.Compare(b.StartAt)
	})
	return result
}

func printSlots(w io.Writer, slots []*domain.AvailabilitySlot) {
	for _, s := range slots {
		fmt.Fprintf(w, "  #%d %s\n", s.ID, s.Span())
	}
}
