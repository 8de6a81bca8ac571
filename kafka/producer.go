package kafka

import (
	"encoding/json"
	"log"
	"marche/config"
	"strings"

	"github.com/IBM/sarama"
)

// Topics published by the storefront
const (
	TopicChatSessions = "chat.sessions"
	TopicChatMessages = "chat.messages"
	TopicComments     = "comments"
)

// producer is nil when KAFKA_BROKERS is unset; Publish becomes a no-op
var producer sarama.SyncProducer

// Connect builds the sarama producer. Events are an ops tap, not a client
// channel, so a missing broker config just disables publishing.
func Connect() {
	brokers := config.AppConfig.KafkaBrokers
	if brokers == "" {
		log.Println("[KAFKA] No brokers configured, event publishing disabled")
		return
	}

	cfg := sarama.NewConfig()
	cfg.Version = sarama.V2_8_0_0
	cfg.Producer.RequiredAcks = sarama.WaitForAll
	cfg.Producer.Retry.Max = 3
	cfg.Producer.Return.Successes = true

	p, err := sarama.NewSyncProducer(strings.Split(brokers, ","), cfg)
	if err != nil {
		log.Printf("[KAFKA] Failed to create producer: %v", err)
		return
	}

	producer = p
	log.Println("[KAFKA] Producer connected to", brokers)
}

// Publish serializes value as JSON and sends it keyed by key. Failures are
// logged and swallowed; a lost event never fails the request that caused it.
func Publish(topic string, key string, value interface{}) {
	if producer == nil {
		return
	}

	jsonValue, err := json.Marshal(value)
	if err != nil {
		log.Printf("[KAFKA] Failed to marshal event for %s: %v", topic, err)
		return
	}

	msg := &sarama.ProducerMessage{
		Topic: topic,
		Key:   sarama.StringEncoder(key),
		Value: sarama.ByteEncoder(jsonValue),
	}

	if _, _, err := producer.SendMessage(msg); err != nil {
		log.Printf("[KAFKA] Failed to send message to %s: %v", topic, err)
	}
}

// Close shuts the producer down, safe to call when disabled
func Close() {
	if producer == nil {
		return
	}
	if err := producer.Close(); err != nil {
		log.Printf("[KAFKA] Error closing producer: %v", err)
	}
}
