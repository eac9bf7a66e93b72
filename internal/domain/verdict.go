package domain

// DenialReason причина отказа в записи на слот
type DenialReason string

const (
	ReasonTooSoon        DenialReason = "too-soon"
	ReasonTooFar         DenialReason = "too-far"
	ReasonOutsideHours   DenialReason = "outside-hours"
	ReasonBlocked        DenialReason = "blocked"
	ReasonTrainerBusy    DenialReason = "trainer-busy"
	ReasonTravelConflict DenialReason = "travel-conflict"
	ReasonLocationFull   DenialReason = "location-full"
)

// IsValid проверяет, что причина входит в закрытый набор
func (r DenialReason) IsValid() bool {
	switch r {
	case ReasonTooSoon, ReasonTooFar, ReasonOutsideHours, ReasonBlocked,
		ReasonTrainerBusy, ReasonTravelConflict, ReasonLocationFull:
		return true
	}
	return false
}

// Verdict результат проверки слота: либо допуск, либо ровно одна причина отказа
type Verdict struct {
	Admitted bool
	Reason   DenialReason
}

// Admit возвращает положительный вердикт
func Admit() Verdict {
	return Verdict{Admitted: true}
}

// Deny возвращает отказ с причиной
func Deny(reason DenialReason) Verdict {
	return Verdict{Reason: reason}
}

// Outcome метка для метрик и логов
func (v Verdict) Outcome() string {
	if v.Admitted {
		return "admitted"
	}
	return string(v.Reason)
}
