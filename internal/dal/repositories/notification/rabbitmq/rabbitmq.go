package rabbitmqrepo

import (
	"context"
	"encoding/json"
	"time"

	"github.com/spf13/viper"
	"github.com/streadway/amqp"

	"github.com/vkurdin/shop-svc/internal/dal/rabbitmq"
)

// notificationMessage is the wire payload published to the notification queue.
type notificationMessage struct {
	Channel   string    `json:"channel"`
	Recipient string    `json:"recipient"`
	Subject   string    `json:"subject"`
	Body      string    `json:"body"`
	SentAt    time.Time `json:"sentAt"`
}

// RabbitMQNotifier publishes notifications to a RabbitMQ queue consumed by a
// delivery service elsewhere. Best-effort: no retries, no outbox.
type RabbitMQNotifier struct {
	client *rabbitmq.Client
	queue  amqp.Queue
}

// NewRabbitMQNotifier creates a new notifier and declares its queue.
func NewRabbitMQNotifier(client *rabbitmq.Client) *RabbitMQNotifier {
	queueName := viper.GetString("rabbitmq.notifications.queue_name")
	if queueName == "" {
		queueName = "shop.notifications"
	}

	queue, err := client.DeclareQueue(rabbitmq.DeclareQueueConfig{
		Name:       queueName,
		Durable:    true,
		Exclusive:  false,
		AutoDelete: false,
	})
	if err != nil {
		panic(err)
	}

	return &RabbitMQNotifier{
		client: client,
		queue:  queue,
	}
}

// Notify publishes a single notification message.
func (n *RabbitMQNotifier) Notify(
	ctx context.Context,
	channel, recipient, subject, body string,
) error {
	payload, err := json.Marshal(notificationMessage{
		Channel:   channel,
		Recipient: recipient,
		Subject:   subject,
		Body:      body,
		SentAt:    time.Now(),
	})
	if err != nil {
		return err
	}

	return n.client.Channel().Publish(
		"",
		n.queue.Name,
		false,
		false,
		amqp.Publishing{
			ContentType: "application/json",
			Body:        payload,
		},
	)
}
