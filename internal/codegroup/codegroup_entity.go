package codegroup

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CodeGroup merges several raw payslip codes under one display code.
// Codes holds the raw codes as a space-separated list.
type CodeGroup struct {
	ID          uuid.UUID      `gorm:"type:uuid;primaryKey"`
	UserID      uuid.UUID      `gorm:"type:uuid;not null;index:idx_codegroup_user"`
	DisplayCode string         `gorm:"size:32;not null"`
	DisplayName string         `gorm:"size:255;not null"`
	Codes       string         `gorm:"type:text;not null"`
	CreatedAt   time.Time      `gorm:"autoCreateTime"`
	UpdatedAt   time.Time      `gorm:"autoUpdateTime"`
	DeletedAt   gorm.DeletedAt `gorm:"index"`
}

func (CodeGroup) TableName() string {
	return "code_groups"
}

func (g *CodeGroup) CodeList() []string {
	return strings.Fields(g.Codes)
}

func (g *CodeGroup) SetCodeList(codes []string) {
	g.Codes = strings.Join(codes, " ")
}
