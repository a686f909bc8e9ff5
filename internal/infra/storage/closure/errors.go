package closure

import "errors"

var (
	// ErrClosureNotFound возвращается, когда закрытие не найдено
	ErrClosureNotFound = errors.New("closure.repository: closure not found")

	// ErrClosureExists возвращается, когда на эту дату закрытие уже есть
	ErrClosureExists = errors.New("closure.repository: closure already exists for this date")

	ErrBuildQuery = errors.New("closure.repository: failed to build query")
	ErrExecQuery  = errors.New("closure.repository: failed to execute query")
	ErrScanRow    = errors.New("closure.repository: failed to scan row")
)
