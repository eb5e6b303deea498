package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ApprovalStatus is the per-record outcome; pending is the only non-terminal state
type ApprovalStatus string

const (
	ApprovalPending  ApprovalStatus = "pending"
	ApprovalApproved ApprovalStatus = "approved"
	ApprovalRejected ApprovalStatus = "rejected"
)

// ApprovalAction is what an approver can do to a pending record
type ApprovalAction string

const (
	ActionApprove ApprovalAction = "approve"
	ActionReject  ApprovalAction = "reject"
)

// Valid reports whether a is a known action
func (a ApprovalAction) Valid() bool {
	return a == ActionApprove || a == ActionReject
}

// TerminalStatus maps an action to the record status it produces
func (a ApprovalAction) TerminalStatus() ApprovalStatus {
	if a == ActionApprove {
		return ApprovalApproved
	}
	return ApprovalRejected
}

// EmailKind selects which notification is rendered and sent
type EmailKind string

const (
	EmailApprovalRequest EmailKind = "approval_request"
	EmailReminder        EmailKind = "reminder"
	EmailApproved        EmailKind = "approved"
	EmailRejected        EmailKind = "rejected"
)

// Valid reports whether k is a known email kind
func (k EmailKind) Valid() bool {
	switch k {
	case EmailApprovalRequest, EmailReminder, EmailApproved, EmailRejected:
		return true
	}
	return false
}

// TokenState makes the emailed-link credential lifecycle explicit
type TokenState int

const (
	// TokenNone: no live link; either never issued or already consumed
	TokenNone TokenState = iota
	// TokenLive: a link exists and has not expired
	TokenLive
	// TokenExpired: a link exists but is past its TTL
	TokenExpired
)

// ApprovalLevel is one named stage in a division's sequential sign-off chain.
// Immutable while any approval for its division is in flight.
type ApprovalLevel struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name       string    `gorm:"not null" json:"name"`
	Email      string    `gorm:"not null" json:"email"`
	LevelOrder int       `gorm:"not null" json:"level_order"`
	Division   string    `gorm:"index;not null" json:"division"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// DeliveryNoteApproval is the per-note, per-level ledger row. It is created
// pending when the note enters the approval flow and mutated exactly once,
// to approved or rejected.
type DeliveryNoteApproval struct {
	ID              uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	DeliveryNoteID  uuid.UUID      `gorm:"type:uuid;index;not null" json:"delivery_note_id"`
	DeliveryNote    *DeliveryNote  `gorm:"foreignKey:DeliveryNoteID" json:"delivery_note,omitempty"`
	ApprovalLevelID uuid.UUID      `gorm:"type:uuid;index;not null" json:"approval_level_id"`
	ApprovalLevel   *ApprovalLevel `gorm:"foreignKey:ApprovalLevelID" json:"approval_level,omitempty"`
	Status          ApprovalStatus `gorm:"default:pending;index" json:"status"`
	ApprovedAt      *time.Time     `json:"approved_at"`
	Notes           string         `json:"notes"`
	ApprovalToken   *string        `gorm:"uniqueIndex" json:"-"`
	TokenExpiresAt  *time.Time     `json:"-"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
}

// TokenState classifies the record's emailed-link credential at instant now
func (a *DeliveryNoteApproval) TokenState(now time.Time) TokenState {
	if a.ApprovalToken == nil {
		return TokenNone
	}
	if a.TokenExpiresAt != nil && now.After(*a.TokenExpiresAt) {
		return TokenExpired
	}
	return TokenLive
}

func (l *ApprovalLevel) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}

func (a *DeliveryNoteApproval) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

// TableName keeps the historical table name used by the back-office reports
func (DeliveryNoteApproval) TableName() string {
	return "delivery_note_approvals"
}
