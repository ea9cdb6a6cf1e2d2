package testutil

import "strings"

// EventRecorder captures sync progress notifications for assertions.
type EventRecorder struct {
	Infos     []string
	Successes []string
	Warnings  []string
}

func (r *EventRecorder) Info(msg string)    { r.Infos = append(r.Infos, msg) }
func (r *EventRecorder) Success(msg string) { r.Successes = append(r.Successes, msg) }
func (r *EventRecorder) Warning(msg string) { r.Warnings = append(r.Warnings, msg) }

// InfoContaining reports whether any info message contains substr.
func (r *EventRecorder) InfoContaining(substr string) bool {
	for _, msg := range r.Infos {
		if strings.Contains(msg, substr) {
			return true
		}
	}
	return false
}

// WarningContaining reports whether any warning message contains substr.
func (r *EventRecorder) WarningContaining(substr string) bool {
	for _, msg := range r.Warnings {
		if strings.Contains(msg, substr) {
			return true
		}
	}
	return false
}
