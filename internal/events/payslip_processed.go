package events

import "time"

const (
	PayslipProcessedTopic = "payroll.payslip.processed.v1"
	PayslipProcessedType  = "payslip.processed"
)

type PayslipProcessedEvent struct {
	EventType  string    `json:"event_type"`
	UserID     string    `json:"user_id"`
	PayslipID  string    `json:"payslip_id"`
	Date       string    `json:"date"`
	Source     string    `json:"source"`
	ItemCount  int       `json:"item_count"`
	OccurredAt time.Time `json:"occurred_at"`
}
