package schedule

import (
	"campaign-gateway/internal/validation"
	"errors"
	"fmt"
	"time"
)

// KST is the vendor's business time zone. It has no daylight saving time.
var KST = time.FixedZone("KST", 9*60*60)

const (
	// Granularity is the vendor's scheduling step; every send time is on it.
	Granularity = 10 * time.Minute
	// MinLeadTime is how far ahead of now a send or collection may start.
	MinLeadTime = time.Hour

	OpenHour          = 9
	ATSCloseHour      = 19
	GeofenceCloseHour = 20

	MinCollectionToSend = 2 * time.Hour
	MinCollectionLength = 30 * time.Minute
	MinEndToSend        = 30 * time.Minute

	maxPasses = 3
)

// Policy selects what ValidateSendTime does with a time that is too early.
type Policy int

const (
	// Reject returns a validation error.
	Reject Policy = iota
	// RoundUp moves the time forward to the earliest legal slot.
	RoundUp
)

func (p Policy) String() string {
	if p == RoundUp {
		return "round_up"
	}
	return "reject"
}

// ErrUnresolvableWindow means no collection window satisfies every bound.
var ErrUnresolvableWindow = errors.New("collection window cannot be resolved")

// RoundUpToGranularity returns t if it is on a 10 minute boundary and the next
// boundary otherwise.
func RoundUpToGranularity(t time.Time) time.Time {
	truncated := t.Truncate(Granularity)
	if truncated.Equal(t) {
		return t
	}
	return truncated.Add(Granularity)
}

func atHour(t time.Time, hour int) time.Time {
	local := t.In(KST)
	return time.Date(local.Year(), local.Month(), local.Day(), hour, 0, 0, 0, KST)
}

func formatKST(t time.Time) string {
	return t.In(KST).Format("2006-01-02 15:04 KST")
}

// ValidateSendTime checks a demographic send time against the [09:00, 19:00)
// KST window and the one hour lead time, and rounds it up to the 10 minute
// grid. A valid, rounded time is returned unchanged.
func ValidateSendTime(sendAt, now time.Time, policy Policy) (time.Time, error) {
	loc := sendAt.Location()
	earliest := now.Add(MinLeadTime)

	t := sendAt
	if policy == RoundUp {
		if t.Before(earliest) {
			t = earliest
		}
		t = RoundUpToGranularity(t)
		if open := atHour(t, OpenHour); t.Before(open) {
			t = open
		}
	} else {
		local := t.In(KST)
		if local.Hour() < OpenHour || local.Hour() >= ATSCloseHour {
			return time.Time{}, validation.New("scheduled_at", "send time %s must be between %02d:00 and %02d:00 KST", formatKST(t), OpenHour, ATSCloseHour)
		}
		if t.Before(earliest) {
			return time.Time{}, validation.New("scheduled_at", "send time %s must be at least %s after now", formatKST(t), MinLeadTime)
		}
		t = RoundUpToGranularity(t)
	}

	if !t.Before(atHour(t, ATSCloseHour)) {
		return time.Time{}, validation.New("scheduled_at", "send time %s is past the %02d:00 KST cutoff", formatKST(t), ATSCloseHour)
	}
	return t.In(loc), nil
}

// WindowRequest is a requested geofence collection window. Send is required;
// a zero Start or End is derived.
type WindowRequest struct {
	Start time.Time
	End   time.Time
	Send  time.Time
}

// Window is a resolved geofence collection window.
type Window struct {
	Start time.Time
	End   time.Time
	Send  time.Time
}

// CollectionWindow resolves the geofence three point window:
//
//	start >= roundUp(now + 1h)
//	start + 30m <= end <= send - 30m
//	send >= start + 2h, send in [09:00, 20:00) KST
//
// All three values are on the 10 minute grid. Adjustments are repeated until
// the triple is stable or the pass limit is hit.
func CollectionWindow(req WindowRequest, now time.Time) (Window, error) {
	if req.Send.IsZero() {
		return Window{}, validation.New("scheduled_at", "collection send time is required")
	}
	minStart := RoundUpToGranularity(now.Add(MinLeadTime))

	start := req.Start
	if start.IsZero() || start.Before(minStart) {
		start = minStart
	}
	w := Window{
		Start: RoundUpToGranularity(start),
		Send:  RoundUpToGranularity(req.Send),
	}
	if !req.End.IsZero() {
		w.End = RoundUpToGranularity(req.End)
	}

	var violation string
	for pass := 0; pass < maxPasses; pass++ {
		if w.Send.Before(w.Start.Add(MinCollectionToSend)) {
			w.Send = w.Start.Add(MinCollectionToSend)
		}
		if open := atHour(w.Send, OpenHour); w.Send.Before(open) {
			w.Send = open
		}
		if !w.Send.Before(atHour(w.Send, GeofenceCloseHour)) {
			return Window{}, unresolvable("collection send time %s must be before %02d:00 KST and at least %s after collection start %s",
				formatKST(w.Send), GeofenceCloseHour, MinCollectionToSend, formatKST(w.Start))
		}

		lo, hi := w.Start.Add(MinCollectionLength), w.Send.Add(-MinEndToSend)
		switch {
		case w.End.IsZero() || w.End.After(hi):
			w.End = hi
		case w.End.Before(lo):
			w.End = lo
		}

		violation = w.violation(minStart)
		if violation == "" {
			return w, nil
		}
	}
	return Window{}, unresolvable("%s", violation)
}

func (w Window) violation(minStart time.Time) string {
	switch {
	case w.Start.Before(minStart):
		return fmt.Sprintf("collection start %s is earlier than %s", formatKST(w.Start), formatKST(minStart))
	case !w.Start.Before(w.End) || !w.End.Before(w.Send):
		return fmt.Sprintf("collection window %s / %s / %s is not ordered", formatKST(w.Start), formatKST(w.End), formatKST(w.Send))
	case w.End.Sub(w.Start) < MinCollectionLength:
		return fmt.Sprintf("collection must last at least %s", MinCollectionLength)
	case w.Send.Sub(w.End) < MinEndToSend:
		return fmt.Sprintf("collection must end at least %s before sending", MinEndToSend)
	case w.Send.Sub(w.Start) < MinCollectionToSend:
		return fmt.Sprintf("sending must start at least %s after collection start", MinCollectionToSend)
	case w.Send.In(KST).Hour() < OpenHour || w.Send.In(KST).Hour() >= GeofenceCloseHour:
		return fmt.Sprintf("collection send time %s is outside business hours", formatKST(w.Send))
	case !onGrid(w.Start) || !onGrid(w.End) || !onGrid(w.Send):
		return "collection window is not on the 10 minute grid"
	}
	return ""
}

func onGrid(t time.Time) bool {
	return t.Truncate(Granularity).Equal(t)
}

func unresolvable(format string, args ...any) error {
	return fmt.Errorf("%w: %w", ErrUnresolvableWindow, validation.New("scheduled_at", format, args...))
}
