package model

import "errors"

// Классы ошибок, пересекающих границу сервисов. Внутренние причины отказа
// (неверная подпись, истёкший токен, несовпадение хэша, отсутствие сессии)
// сводятся к ErrUnauthorized до выхода из сервиса — наружу не утекает,
// какая именно проверка не прошла
var (
	ErrConflict     = errors.New("конфликт: запись уже существует")
	ErrUnauthorized = errors.New("не авторизован")
	ErrNotFound     = errors.New("не найдено")
	ErrForbidden    = errors.New("доступ запрещён")
	ErrValidation   = errors.New("некорректные данные")
)
