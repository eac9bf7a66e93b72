package get_snapshot_status

import "github.com/aceboy1016/ishihara-booking/internal/service/snapshot/models"

type SnapshotService interface {
	Status() *models.StatusResponse
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
