package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// NoteStatus is the physical dispatch lifecycle of a delivery note
type NoteStatus string

const (
	NoteStatusDraft     NoteStatus = "draft"
	NoteStatusSent      NoteStatus = "sent"
	NoteStatusDelivered NoteStatus = "delivered"
)

// Valid reports whether s is one of the known dispatch statuses
func (s NoteStatus) Valid() bool {
	switch s {
	case NoteStatusDraft, NoteStatusSent, NoteStatusDelivered:
		return true
	}
	return false
}

// NoteApprovalStatus is the sign-off lifecycle of a delivery note.
// Only the approval coordinator moves it; completed is set by delivery
// confirmation outside the approval flow.
type NoteApprovalStatus string

const (
	NotePendingApproval NoteApprovalStatus = "pending_approval"
	NoteApproved        NoteApprovalStatus = "approved"
	NoteRejected        NoteApprovalStatus = "rejected"
	NoteCompleted       NoteApprovalStatus = "completed"
)

// Division is an organizational unit owning its own approval chain
type Division struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name        string    `gorm:"uniqueIndex;not null" json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// DeliveryNote is an outbound shipment document (surat jalan)
type DeliveryNote struct {
	ID              uuid.UUID          `gorm:"type:uuid;primaryKey" json:"id"`
	DeliveryNumber  string             `gorm:"uniqueIndex;not null" json:"delivery_number"`
	CustomerName    string             `gorm:"not null" json:"customer_name"`
	CustomerAddress string             `json:"customer_address"`
	CustomerPhone   string             `json:"customer_phone"`
	Division        string             `gorm:"index;not null" json:"division"`
	DeliveryDate    time.Time          `json:"delivery_date"`
	Status          NoteStatus         `gorm:"default:draft" json:"status"`
	ApprovalStatus  NoteApprovalStatus `gorm:"default:pending_approval" json:"approval_status"`
	Notes           string             `json:"notes"`
	Items           []DeliveryNoteItem `gorm:"foreignKey:DeliveryNoteID" json:"items,omitempty"`
	CreatedAt       time.Time          `json:"created_at"`
	UpdatedAt       time.Time          `json:"updated_at"`
}

// DeliveryNoteItem is one shipped line, owned exclusively by its note
type DeliveryNoteItem struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	DeliveryNoteID uuid.UUID `gorm:"type:uuid;index;not null" json:"delivery_note_id"`
	ProductID      uuid.UUID `gorm:"type:uuid;not null" json:"product_id"`
	Product        *Product  `gorm:"foreignKey:ProductID" json:"product,omitempty"`
	Quantity       int       `gorm:"not null" json:"quantity"`
	Notes          string    `json:"notes"`
	CreatedAt      time.Time `json:"created_at"`
}

func (d *Division) BeforeCreate(tx *gorm.DB) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	return nil
}

func (n *DeliveryNote) BeforeCreate(tx *gorm.DB) error {
	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	return nil
}

func (i *DeliveryNoteItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}
