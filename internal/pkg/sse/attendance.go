package sse

import (
	"context"

	"github.com/cmlabs-hris/checkin-bot/internal/domain/attendance"
)

const EventAttendanceRecorded = "attendance.recorded"

// AttendanceFeed pushes stored attendance records to live subscribers.
type AttendanceFeed struct {
	hub *Hub
}

func NewAttendanceFeed(hub *Hub) *AttendanceFeed {
	return &AttendanceFeed{hub: hub}
}

// PublishRecorded implements attendance.EventPublisher.
func (f *AttendanceFeed) PublishRecorded(ctx context.Context, record attendance.Record) error {
	f.hub.Publish(record.EmployeeID, Event{
		Name: EventAttendanceRecorded,
		Data: attendance.ToResponse(record),
	})
	return nil
}
