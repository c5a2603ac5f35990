package rabbitmq

const (
	// ExchangeSubscriptions — exchange для событий по подпискам.
	ExchangeSubscriptions = "subscriptions"
	// RoutingKeyRenewalUpcoming — ключ уведомлений о скором окончании подписки.
	RoutingKeyRenewalUpcoming = "renewal.upcoming"
)

// QueueConfig описывает очередь и ключ, по которому она привязана к exchange.
type QueueConfig struct {
	QueueName  string
	RoutingKey string
}

// RenewalQueues возвращает очереди, которые нужны планировщику.
func RenewalQueues() []QueueConfig {
	return []QueueConfig{
		{QueueName: "subscriptions.renewal.upcoming", RoutingKey: RoutingKeyRenewalUpcoming},
	}
}
