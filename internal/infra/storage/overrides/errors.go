package overrides

import "errors"

var (
	// ErrInvalidKind возвращается для неизвестного вида настройки
	ErrInvalidKind = errors.New("overrides.repository: invalid override kind")

	// ErrTransaction возвращается при ошибках работы с транзакцией
	ErrTransaction = errors.New("overrides.repository: transaction error")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("overrides.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("overrides.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("overrides.repository: failed to scan row")
)
