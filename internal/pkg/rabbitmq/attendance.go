package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/cmlabs-hris/checkin-bot/internal/domain/attendance"
)

// AttendancePublisher announces accepted attendance records on an exchange.
type AttendancePublisher struct {
	publisher Publisher
	exchange  string
}

func NewAttendancePublisher(publisher Publisher, exchange string) *AttendancePublisher {
	return &AttendancePublisher{publisher: publisher, exchange: exchange}
}

func (p *AttendancePublisher) PublishRecorded(ctx context.Context, record attendance.Record) error {
	body, err := json.Marshal(attendance.ToResponse(record))
	if err != nil {
		return fmt.Errorf("marshal attendance record: %w", err)
	}
	if err := p.publisher.Publish(p.exchange, body); err != nil {
		return fmt.Errorf("publish attendance record: %w", err)
	}
	return nil
}
