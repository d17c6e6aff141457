package platform

import "slices"

// DiffClients compares two client lists and returns the windows that
// appeared and the windows that went away. Both results keep the order of
// the list they came from.
func DiffClients(old, current []WindowID) (added, removed []WindowID) {
	for _, id := range current {
		if !slices.Contains(old, id) {
			added = append(added, id)
		}
	}
	for _, id := range old {
		if !slices.Contains(current, id) {
			removed = append(removed, id)
		}
	}
	return added, removed
}

// GeometryEvent decides how a configure notification is reported: a moved
// or resized frame is a location change, anything else only restacked.
func GeometryEvent(prev, next Rect) EventKind {
	if prev == next {
		return EventReorder
	}
	return EventLocationChange
}

// FocusEvents returns the focus notifications for a change of the active
// window. Zero ids are skipped.
func FocusEvents(prev, next WindowID) []Event {
	if prev == next {
		return nil
	}
	var events []Event
	if prev != 0 {
		events = append(events, Event{Kind: EventFocusChanged, Window: Window{ID: prev}, Active: false})
	}
	if next != 0 {
		events = append(events, Event{Kind: EventFocusChanged, Window: Window{ID: next}, Active: true})
	}
	return events
}

// MinimizeEvent maps a change of the hidden state to an event. ok is false
// when the state did not change.
func MinimizeEvent(was, is bool) (EventKind, bool) {
	switch {
	case !was && is:
		return EventMinimizeStart, true
	case was && !is:
		return EventMinimizeEnd, true
	}
	return 0, false
}

// VisibilityEvent maps a change of viewability to show or hide.
func VisibilityEvent(was, is bool) (EventKind, bool) {
	switch {
	case !was && is:
		return EventShow, true
	case was && !is:
		return EventHide, true
	}
	return 0, false
}
