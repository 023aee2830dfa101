package model

import (
	"time"

	"pomade/shared/model"
)

const (
	TableName  = "appointments"
	EntityName = "appointment"

	FieldID              = "id"
	FieldDate            = "appointment_date"
	FieldTime            = "appointment_time"
	FieldService         = "service"
	FieldBarberID        = "barber_id"
	FieldCustomerName    = "customer_name"
	FieldCustomerEmail   = "customer_email"
	FieldCustomerPhone   = "customer_phone"
	FieldStatus          = "status"
	FieldRejectionReason = "rejection_reason"
)

const (
	DeletionTableName  = "deleted_appointments"
	DeletionEntityName = "deleted_appointment"

	FieldDeletionID            = "id"
	FieldDeletionAppointmentID = "appointment_id"
)

const (
	StatusPending   = "pending"
	StatusApproved  = "approved"
	StatusRejected  = "rejected"
	StatusCancelled = "cancelled"
)

// OccupyingStatuses are the statuses under which an appointment blocks its
// slot. Rejected and cancelled appointments free the slot again.
var OccupyingStatuses = []string{StatusPending, StatusApproved}

type Appointment struct {
	ID              string    `db:"id"`
	Date            time.Time `db:"appointment_date"`
	Time            time.Time `db:"appointment_time"`
	Service         string    `db:"service"`
	BarberID        string    `db:"barber_id"`
	CustomerName    string    `db:"customer_name"`
	CustomerEmail   string    `db:"customer_email"`
	CustomerPhone   string    `db:"customer_phone"`
	Status          string    `db:"status"`
	RejectionReason string    `db:"rejection_reason"`
	model.Metadata
}

// DeletionRecord is the audit row written before an appointment is removed
// from the schedule board.
type DeletionRecord struct {
	ID            string    `db:"id"`
	AppointmentID string    `db:"appointment_id"`
	CustomerName  string    `db:"customer_name"`
	CustomerPhone string    `db:"customer_phone"`
	Date          time.Time `db:"appointment_date"`
	Time          time.Time `db:"appointment_time"`
	Service       string    `db:"service"`
	DeleteReason  string    `db:"delete_reason"`
	DeletedAt     time.Time `db:"deleted_at"`
	DeletedBy     string    `db:"deleted_by"`
}
