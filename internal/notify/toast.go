// Package notify describes transient user-visible notifications.
//
// The client never renders toasts itself. It builds Toast requests and hands them
// to a Notifier supplied by the presentation layer.
package notify

import (
	"context"
	"time"
)

// Icon is the toast icon kind
type Icon string

const (
	IconSuccess  Icon = "success"
	IconError    Icon = "error"
	IconWarning  Icon = "warning"
	IconInfo     Icon = "info"
	IconQuestion Icon = "question"
)

// Position is the toast anchor on screen
type Position string

const (
	PositionTopEnd   Position = "top-end"
	PositionTop      Position = "top"
	PositionBottom   Position = "bottom"
	PositionCenter   Position = "center"
	PositionTopStart Position = "top-start"
)

// DefaultTimer is how long a toast stays up, in milliseconds
const DefaultTimer = 5000

// Toast is a request to show a transient notification
type Toast struct {
	Toast             bool     `json:"toast"`
	Title             string   `json:"title"`
	Text              string   `json:"text,omitempty"`
	Icon              Icon     `json:"icon"`
	Position          Position `json:"position"`
	Timer             int      `json:"timer"`
	TimerProgressBar  bool     `json:"timerProgressBar"`
	ShowConfirmButton bool     `json:"showConfirmButton"`
	ShowCloseButton   bool     `json:"showCloseButton"`
}

// Duration returns the auto-dismiss delay
func (t Toast) Duration() time.Duration {
	return time.Duration(t.Timer) * time.Millisecond
}

// Error returns an auto-dismissing error toast anchored top-end
func Error(title, text string) Toast {
	return newToast(IconError, title, text)
}

// Success returns an auto-dismissing success toast anchored top-end
func Success(title, text string) Toast {
	return newToast(IconSuccess, title, text)
}

// Info returns an auto-dismissing info toast anchored top-end
func Info(title, text string) Toast {
	return newToast(IconInfo, title, text)
}

func newToast(icon Icon, title, text string) Toast {
	return Toast{
		Toast:             true,
		Title:             title,
		Text:              text,
		Icon:              icon,
		Position:          PositionTopEnd,
		Timer:             DefaultTimer,
		TimerProgressBar:  true,
		ShowConfirmButton: false,
		ShowCloseButton:   true,
	}
}

// WithTimer returns a copy of t that dismisses after d
func (t Toast) WithTimer(d time.Duration) Toast {
	t.Timer = int(d / time.Millisecond)
	return t
}

// Notifier presents toasts
type Notifier interface {
	Notify(ctx context.Context, t Toast)
}

// NotifierFunc adapts a function to Notifier
type NotifierFunc func(ctx context.Context, t Toast)

// Notify calls f
func (f NotifierFunc) Notify(ctx context.Context, t Toast) {
	f(ctx, t)
}
