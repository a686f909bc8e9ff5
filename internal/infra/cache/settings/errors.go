package settings

import "errors"

var (
	// ErrCacheMiss возвращается, когда настроек нет в кэше или кэш выключен
	ErrCacheMiss = errors.New("settings.cache: miss")

	// ErrCache возвращается при ошибках Redis и сериализации
	ErrCache = errors.New("settings.cache: redis error")
)
