package payslip

import (
	"encoding/json"
	"time"

	"github.com/davidvasconcellos/PayrollDataExtractor/internal/extraction"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProcessedPayslip is one stored extraction result, keyed by
// (user, date, source). Date is the opaque MM/YYYY period key. Records are
// never mutated after creation: re-uploading the same document adds another
// record, it does not upsert.
type ProcessedPayslip struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserID uuid.UUID `gorm:"type:uuid;not null;index:idx_payslip_user_date_source"`
	Date   string    `gorm:"type:varchar(7);not null;index:idx_payslip_user_date_source"`
	Source string    `gorm:"type:varchar(10);not null;index:idx_payslip_user_date_source"`

	// Items is the extracted line-item array serialized as an opaque JSON
	// blob; the schema never inspects it.
	Items []byte `gorm:"type:jsonb;not null"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (ProcessedPayslip) TableName() string {
	return "processed_payslips"
}

func (p *ProcessedPayslip) SetItems(items []extraction.LineItem) error {
	if items == nil {
		items = []extraction.LineItem{}
	}
	blob, err := json.Marshal(items)
	if err != nil {
		return err
	}
	p.Items = blob
	return nil
}

func (p *ProcessedPayslip) DecodeItems() ([]extraction.LineItem, error) {
	if len(p.Items) == 0 {
		return []extraction.LineItem{}, nil
	}
	var items []extraction.LineItem
	if err := json.Unmarshal(p.Items, &items); err != nil {
		return nil, err
	}
	return items, nil
}
