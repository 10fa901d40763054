package engagement_test

import (
	"io"
	"log/slog"
	"time"

	"github.com/habit21/habit21/internal/app/engagement"
	"github.com/habit21/habit21/internal/domain"
)

func day(s string) time.Time {
	t, err := domain.ParseDate(s)
	if err != nil {
		panic(err)
	}
	return t
}

// entries builds records from "YYYY-MM-DD" (completed) or "YYYY-MM-DD!" (missed).
func entries(days ...string) []domain.CompletionRecord {
	out := make([]domain.CompletionRecord, 0, len(days))
	for _, d := range days {
		completed := true
		if d[len(d)-1] == '!' {
			completed = false
			d = d[:len(d)-1]
		}
		out = append(out, domain.CompletionRecord{Date: day(d), Completed: completed})
	}
	return out
}

// run returns n consecutive completed days starting at start.
func run(start string, n int) []domain.CompletionRecord {
	first := day(start)
	out := make([]domain.CompletionRecord, n)
	for i := range out {
		out[i] = domain.CompletionRecord{Date: first.AddDate(0, 0, i), Completed: true}
	}
	return out
}

func quietEngine(opts ...engagement.Option) *engagement.Engine {
	return engagement.NewEngine(append([]engagement.Option{engagement.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))}, opts...)...)
}

func keysOf(events []domain.UnlockEvent) []string {
	keys := make([]string, len(events))
	for i, ev := range events {
		keys[i] = ev.Key
	}
	return keys
}
