package cli

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/lostfound/internal/auth/form"
	"github.com/dmitrijs2005/lostfound/internal/auth/strength"
	"github.com/dmitrijs2005/lostfound/internal/catalog"
	"github.com/dmitrijs2005/lostfound/internal/common"
	"github.com/dmitrijs2005/lostfound/internal/flow"
	"github.com/dmitrijs2005/lostfound/internal/notify"
)

// syncWriter serializes writes from the REPL and the event loop.
type syncWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (s *syncWriter) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.w.Write(p)
}

// notificationLine prints a notification when it is mounted.
type notificationLine struct {
	w io.Writer
}

func (n notificationLine) Mount(x notify.Notification) {
	fmt.Fprintf(n.w, "[%s] %s\n", x.Kind, x.Message)
}

func (notificationLine) Update(notify.Notification) {}
func (notificationLine) Unmount(uuid.UUID)          {}

const barWidth = 20

// strengthBar draws the password strength meter.
type strengthBar struct {
	w io.Writer
}

func (s strengthBar) RenderStrength(b strength.Bucket, fill int) {
	filled := barWidth * fill / 100
	fmt.Fprintf(s.w, "[%s%s] %s\n", strings.Repeat("#", filled), strings.Repeat("-", barWidth-filled), b.Label())
}

// navigator forwards destinations to the goroutine waiting on ch.
type navigator struct {
	ch chan<- flow.Destination
}

func (n navigator) Navigate(d flow.Destination) {
	select {
	case n.ch <- d:
	default:
	}
}

// formView prints the loading label and field errors of a form.
type formView struct {
	w      io.Writer
	failed chan<- error
}

func (f formView) render(v form.View) {
	switch v.State {
	case form.StatePending:
		fmt.Fprintln(f.w, v.SubmitLabel)
	case form.StateIdle:
		for field, msg := range v.Errors {
			fmt.Fprintf(f.w, "%s: %s\n", field.Label(), msg)
		}
	case form.StateFailed:
		select {
		case f.failed <- common.ErrAuthenticationFailed:
		default:
		}
	}
}

// listingPrinter renders catalog entries.
type listingPrinter struct {
	w io.Writer
}

func (p listingPrinter) Present(f catalog.Filter, entries []catalog.Entry) {
	fmt.Fprintf(p.w, "%s items (%d)\n", titleFilter(f), len(entries))
	for _, e := range entries {
		fmt.Fprintf(p.w, "  #%s [%s] %s | %s | %s | %s\n", e.ID, e.Kind, e.Title, e.Category, e.Location, e.Date)
		fmt.Fprintf(p.w, "      %s\n", e.Description)
	}
}

func titleFilter(f catalog.Filter) string {
	switch f {
	case catalog.FilterLost:
		return "Lost"
	case catalog.FilterFound:
		return "Found"
	default:
		return "All"
	}
}
