package dto

import (
	"time"

	"github.com/google/uuid"

	"pomade/internal/domains/appointment/model"
	"pomade/shared"
	"pomade/shared/constant"
	gDto "pomade/shared/dto"
	gModel "pomade/shared/model"
	"pomade/shared/timezone"
)

type CreateAppointmentRequest struct {
	Date          string `json:"date"           validate:"required"`
	Time          string `json:"time"           validate:"required"`
	Service       string `json:"service"        validate:"required,notblank,max=100"`
	BarberID      string `json:"barber_id"      validate:"omitempty,max=100"`
	CustomerName  string `json:"customer_name"  validate:"omitempty,max=100"`
	CustomerEmail string `json:"customer_email" validate:"required,email,max=100"`
	CustomerPhone string `json:"customer_phone" validate:"omitempty,max=20"`
}

func (c *CreateAppointmentRequest) ToModel(user string) (model.Appointment, error) {
	date, err := time.Parse(constant.BookingDateFmt, c.Date)
	if err != nil {
		return model.Appointment{}, err
	}

	slot, err := time.Parse(constant.BookingTimeFmt, c.Time)
	if err != nil {
		return model.Appointment{}, err
	}

	return model.Appointment{
		ID:            uuid.NewString(),
		Date:          date,
		Time:          slot,
		Service:       c.Service,
		BarberID:      c.BarberID,
		CustomerName:  c.CustomerName,
		CustomerEmail: c.CustomerEmail,
		CustomerPhone: c.CustomerPhone,
		Status:        model.StatusPending,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}, nil
}

type RejectAppointmentRequest struct {
	Reason string `json:"reason" validate:"required,notblank,max=500"`
}

type DeleteAppointmentRequest struct {
	Reason string `json:"reason" validate:"required,notblank,max=500"`
}

type AppointmentResponse struct {
	ID              string `json:"id"`
	Date            string `json:"date"`
	Time            string `json:"time"`
	Service         string `json:"service"`
	BarberID        string `json:"barber_id,omitempty"`
	CustomerName    string `json:"customer_name"`
	CustomerEmail   string `json:"customer_email"`
	CustomerPhone   string `json:"customer_phone"`
	Status          string `json:"status"`
	RejectionReason string `json:"rejection_reason,omitempty"`
	gDto.Metadata
}

func (r *AppointmentResponse) FromModel(mod model.Appointment) {
	r.ID = mod.ID
	r.Date = mod.Date.Format(constant.BookingDateFmt)
	r.Time = mod.Time.Format(constant.BookingTimeFmt)
	r.Service = mod.Service
	r.BarberID = mod.BarberID
	r.CustomerName = mod.CustomerName
	r.CustomerEmail = mod.CustomerEmail
	r.CustomerPhone = mod.CustomerPhone
	r.Status = mod.Status
	r.RejectionReason = mod.RejectionReason
	r.Metadata.FromModel(mod.Metadata)
}

// PendingAppointmentResponse is an appointment awaiting review, with the
// customer contact fields resolved against the user directory.
type PendingAppointmentResponse struct {
	AppointmentResponse
}

func (r *PendingAppointmentResponse) FromModel(mod model.Appointment) {
	r.AppointmentResponse.FromModel(mod)

	if r.CustomerName == constant.Empty {
		r.CustomerName = constant.UnknownCustomerName
	}

	if r.CustomerPhone == constant.Empty {
		r.CustomerPhone = constant.UnknownCustomerPhone
	}
}

type GetPendingAppointmentsResponse struct {
	Appointments []PendingAppointmentResponse `json:"appointments"`
	TotalData    int                          `json:"total_data"`
}

type GetScheduleResponse struct {
	Date         string                `json:"date"`
	Appointments []AppointmentResponse `json:"appointments"`
	TotalData    int                   `json:"total_data"`
}

func (r *GetScheduleResponse) FromModels(date time.Time, models []model.Appointment) {
	r.Date = date.Format(constant.BookingDateFmt)
	r.TotalData = len(models)

	r.Appointments = make([]AppointmentResponse, len(models))
	for i, mod := range models {
		r.Appointments[i].FromModel(mod)
	}
}

type DeletionRecordResponse struct {
	ID            string `json:"id"`
	AppointmentID string `json:"appointment_id"`
	CustomerName  string `json:"customer_name"`
	CustomerPhone string `json:"customer_phone"`
	Date          string `json:"date"`
	Time          string `json:"time"`
	Service       string `json:"service"`
	DeleteReason  string `json:"delete_reason"`
	DeletedAt     string `json:"deleted_at"`
	DeletedBy     string `json:"deleted_by"`
}

type GetDeletionRecordsResponse struct {
	Records   []DeletionRecordResponse `json:"records"`
	TotalPage int                      `json:"total_page"`
	TotalData int                      `json:"total_data"`
}

func (r *GetDeletionRecordsResponse) FromModels(models []model.DeletionRecord, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Records = make([]DeletionRecordResponse, len(models))
	for i, mod := range models {
		r.Records[i].FromModel(mod)
	}
}

func (r *DeletionRecordResponse) FromModel(mod model.DeletionRecord) {
	r.ID = mod.ID
	r.AppointmentID = mod.AppointmentID
	r.CustomerName = mod.CustomerName
	r.CustomerPhone = mod.CustomerPhone
	r.Date = mod.Date.Format(constant.BookingDateFmt)
	r.Time = mod.Time.Format(constant.BookingTimeFmt)
	r.Service = mod.Service
	r.DeleteReason = mod.DeleteReason
	r.DeletedAt = mod.DeletedAt.Format(constant.DateFormat)
	r.DeletedBy = mod.DeletedBy
}
