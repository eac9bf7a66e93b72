package models

import (
	"time"

	snapshotStore "github.com/aceboy1016/ishihara-booking/internal/infra/storage/snapshot"
)

// StatusResponse состояние снимка календарей
type StatusResponse struct {
	Loaded      bool           `json:"loaded"`
	GeneratedAt *time.Time     `json:"generatedAt,omitempty"`
	AgeSeconds  *int64         `json:"ageSeconds,omitempty"`
	LastAttempt *time.Time     `json:"lastAttempt,omitempty"`
	LastError   string         `json:"lastError,omitempty"`
	Counts      map[string]int `json:"counts"`
}

// FromStatus конвертирует состояние хранилища в DTO
func FromStatus(st snapshotStore.Status, now time.Time) *StatusResponse {
	resp := &StatusResponse{Counts: map[string]int{}}

	if !st.LastAttempt.IsZero() {
		at := st.LastAttempt
		resp.LastAttempt = &at
	}
	if st.LastError != nil {
		resp.LastError = st.LastError.Error()
	}
	if st.Snapshot == nil {
		return resp
	}

	generated := st.Snapshot.GeneratedAt()
	age := int64(now.Sub(generated) / time.Second)
	resp.Loaded = true
	resp.GeneratedAt = &generated
	resp.AgeSeconds = &age
	resp.Counts = st.Snapshot.Counts()
	return resp
}
