package engine

import "errors"

var (
	// ErrSnapshotNotValidated снимок не построен через domain.NewSnapshot
	ErrSnapshotNotValidated = errors.New("engine: snapshot is not validated")
	// ErrUnknownLocation зал отсутствует в правилах
	ErrUnknownLocation = errors.New("engine: unknown location")
	// ErrInvalidRules правила не прошли проверку
	ErrInvalidRules = errors.New("engine: invalid rules")
)
