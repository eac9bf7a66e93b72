package domain

import "time"

// SelectedSlot слот, выбранный клиентом для заявки
type SelectedSlot struct {
	Location LocationID
	Start    time.Time
}

// End конец сессии
func (s SelectedSlot) End() time.Time {
	return s.Start.Add(SessionDuration)
}

// RejectedSlot выбранный слот, который больше недоступен
type RejectedSlot struct {
	SelectedSlot
	Reason DenialReason
}

// BookingRequest текст заявки для копирования и отправки тренеру
type BookingRequest struct {
	Slots   []SelectedSlot
	Message string
}
