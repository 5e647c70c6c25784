package codetemplate

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CodeTemplate is a saved wanted-code list a user can reuse across uploads
// instead of typing the codes every time.
type CodeTemplate struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey"`
	UserID    uuid.UUID      `gorm:"type:uuid;not null;index:idx_codetemplate_user"`
	Name      string         `gorm:"size:255;not null"`
	Codes     string         `gorm:"type:text;not null"`
	CreatedAt time.Time      `gorm:"autoCreateTime"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime"`
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (CodeTemplate) TableName() string {
	return "code_templates"
}

func (t *CodeTemplate) CodeList() []string {
	return strings.Fields(t.Codes)
}

func (t *CodeTemplate) SetCodeList(codes []string) {
	t.Codes = strings.Join(codes, " ")
}
