package snapshot

import "errors"

var (
	// ErrSnapshotNotLoaded снимок еще ни разу не был загружен
	ErrSnapshotNotLoaded = errors.New("snapshot.storage: snapshot not loaded")

	// ErrSnapshotNotValidated попытка сохранить снимок, не прошедший проверку
	ErrSnapshotNotValidated = errors.New("snapshot.storage: snapshot not validated")
)
