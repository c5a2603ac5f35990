// Package storage содержит общие для реализаций хранилища ошибки.
package storage

import "errors"

var (
	// ErrSubscriptionNotFound возвращается, когда подписка с указанным ID отсутствует.
	ErrSubscriptionNotFound = errors.New("subscription not found")
)
