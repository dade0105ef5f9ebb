package model

import "time"

// AttendanceIntent is a non-binding "interested" signal on a published
// event.  Existence of the (EventID, UserID) pair is the whole state;
// creation and deletion are idempotent and never guarded by capacity.
type AttendanceIntent struct {
	EventID   uint64    // attendance_intents.event_id
	UserID    uint64    // attendance_intents.user_id
	CreatedAt time.Time // attendance_intents.created_at
}
