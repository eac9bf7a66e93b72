package snapshot

import (
	"sync/atomic"
	"time"

	"github.com/aceboy1016/ishihara-booking/internal/domain"
)

// Status состояние хранилища снимка
type Status struct {
	Snapshot    *domain.Snapshot // nil, если снимок еще не загружен
	LastAttempt time.Time
	LastError   error
}

// Holder хранит текущий снимок календарей в памяти процесса
// Снимок заменяется целиком; читатели никогда не видят частично обновленные данные
type Holder struct {
	state atomic.Pointer[Status]
}

// NewHolder создает пустое хранилище
func NewHolder() *Holder {
	h := &Holder{}
	h.state.Store(&Status{})
	return h
}

// Replace атомарно заменяет текущий снимок
func (h *Holder) Replace(snap *domain.Snapshot, at time.Time) error {
	if !snap.IsValidated() {
		return ErrSnapshotNotValidated
	}
	h.state.Store(&Status{Snapshot: snap, LastAttempt: at})
	return nil
}

// RecordFailure фиксирует неудачное обновление, сохраняя предыдущий снимок
func (h *Holder) RecordFailure(err error, at time.Time) {
	prev := h.state.Load()
	h.state.Store(&Status{Snapshot: prev.Snapshot, LastAttempt: at, LastError: err})
}

// Current возвращает текущий снимок
func (h *Holder) Current() (*domain.Snapshot, error) {
	st := h.state.Load()
	if st.Snapshot == nil {
		return nil, ErrSnapshotNotLoaded
	}
	return st.Snapshot, nil
}

// Status возвращает копию состояния
func (h *Holder) Status() Status {
	return *h.state.Load()
}
