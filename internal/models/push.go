package models

import "time"

// PushSubscription представляет Web Push подписку, привязанную к субъекту сессии шлюза
type PushSubscription struct {
	CreatedAt time.Time `json:"created_at"` // время первой регистрации
	UpdatedAt time.Time `json:"updated_at"` // время последней перерегистрации
	Subject   string    `json:"subject"`    // subject сессии (email или hash токена)
	Endpoint  string    `json:"endpoint"`   // URL push-сервиса
	P256dh    string    `json:"p256dh"`     // публичный ключ клиента
	Auth      string    `json:"auth"`       // секрет аутентификации клиента
}
