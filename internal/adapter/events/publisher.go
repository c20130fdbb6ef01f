package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/IBM/sarama"
	"github.com/shopspring/decimal"
)

const (
	TopicLoanRequested   = "loan.requested"
	TopicLoanApproved    = "loan.approved"
	TopicLoanRejected    = "loan.rejected"
	TopicPaymentRecorded = "loan.payment_recorded"
	TopicLoanPaid        = "loan.paid"
)

type LoanEvent struct {
	LoanID           string          `json:"loan_id"`
	UserID           string          `json:"user_id"`
	Status           string          `json:"status"`
	Type             string          `json:"type"`
	Amount           decimal.Decimal `json:"amount"`
	InterestRate     decimal.Decimal `json:"interest_rate"`
	RemainingBalance decimal.Decimal `json:"remaining_balance"`
	OccurredAt       time.Time       `json:"occurred_at"`
}

type PaymentEvent struct {
	PaymentID         string          `json:"payment_id"`
	LoanID            string          `json:"loan_id"`
	Manual            bool            `json:"manual"`
	AmountTendered    decimal.Decimal `json:"amount_tendered"`
	AmountPaid        decimal.Decimal `json:"amount_paid"`
	InterestCharged   decimal.Decimal `json:"interest_charged"`
	CapitalPayment    decimal.Decimal `json:"capital_payment"`
	InterestShortfall decimal.Decimal `json:"interest_shortfall"`
	RemainingBalance  decimal.Decimal `json:"remaining_balance"`
	PaymentDate       time.Time       `json:"payment_date"`
}

// Publisher sends one domain event, keyed by loan id.
type Publisher interface {
	Publish(ctx context.Context, topic, key string, event any) error
}

// Noop drops every event. Used when Kafka is disabled.
type Noop struct{}

func (Noop) Publish(context.Context, string, string, any) error { return nil }

type Kafka struct {
	producer sarama.SyncProducer
}

func NewProducerConfig() *sarama.Config {
	cfg := sarama.NewConfig()
	cfg.Producer.Return.Successes = true
	cfg.Producer.RequiredAcks = sarama.WaitForAll
	cfg.Producer.Retry.Max = 3
	cfg.Producer.Timeout = 5 * time.Second
	return cfg
}

func NewKafka(brokers []string) (*Kafka, error) {
	p, err := sarama.NewSyncProducer(brokers, NewProducerConfig())
	if err != nil {
		return nil, fmt.Errorf("kafka producer: %w", err)
	}
	log.Printf("kafka: producer connected to %v", brokers)
	return NewKafkaWithProducer(p), nil
}

func NewKafkaWithProducer(p sarama.SyncProducer) *Kafka { return &Kafka{producer: p} }

func (k *Kafka) Publish(ctx context.Context, topic, key string, event any) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", topic, err)
	}
	msg := &sarama.ProducerMessage{
		Topic: topic,
		Key:   sarama.StringEncoder(key),
		Value: sarama.ByteEncoder(data),
	}
	if _, _, err := k.producer.SendMessage(msg); err != nil {
		return fmt.Errorf("send %s: %w", topic, err)
	}
	return nil
}

func (k *Kafka) Close() error { return k.producer.Close() }

// Emit publishes and logs failures. Events go out after commit, so a lost one never undoes a write.
func Emit(ctx context.Context, p Publisher, topic, key string, event any) {
	if p == nil {
		return
	}
	if err := p.Publish(ctx, topic, key, event); err != nil {
		log.Printf("events: %s for %s not published: %v", topic, key, err)
	}
}
