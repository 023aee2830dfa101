package dto

import (
	"time"

	"pomade/internal/domains/slot/model"
	"pomade/shared/constant"
)

type SlotResponse struct {
	Time      string `json:"time"`
	Period    string `json:"period"`
	IsBooked  bool   `json:"is_booked"`
	IsPast    bool   `json:"is_past"`
	Available bool   `json:"available"`
}

type GetDaySlotsResponse struct {
	Date  string         `json:"date"`
	Slots []SlotResponse `json:"slots"`
}

func (r *GetDaySlotsResponse) FromSlots(date time.Time, slots []model.Slot) {
	r.Date = date.Format(constant.BookingDateFmt)

	r.Slots = make([]SlotResponse, len(slots))
	for i, slot := range slots {
		r.Slots[i] = SlotResponse{
			Time:      slot.Time,
			Period:    slot.Period,
			IsBooked:  slot.IsBooked,
			IsPast:    slot.IsPast,
			Available: slot.Available,
		}
	}
}
