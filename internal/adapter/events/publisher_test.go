package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/IBM/sarama"
	"github.com/IBM/sarama/mocks"
	"github.com/shopspring/decimal"
)

func TestKafka_Publish_SendsKeyedJSON(t *testing.T) {
	sp := mocks.NewSyncProducer(t, NewProducerConfig())
	defer sp.Close()

	sp.ExpectSendMessageWithMessageCheckerFunctionAndSucceed(func(msg *sarama.ProducerMessage) error {
		if msg.Topic != TopicLoanApproved {
			return errors.New("wrong topic " + msg.Topic)
		}
		key, _ := msg.Key.Encode()
		if string(key) != "LN-1" {
			return errors.New("wrong key " + string(key))
		}
		raw, _ := msg.Value.Encode()
		var got map[string]any
		if err := json.Unmarshal(raw, &got); err != nil {
			return err
		}
		if got["status"] != "active" || got["amount"] != "1000" {
			return errors.New("unexpected payload " + string(raw))
		}
		return nil
	})

	k := NewKafkaWithProducer(sp)
	ev := LoanEvent{
		LoanID:     "LN-1",
		UserID:     "u-1",
		Status:     "active",
		Amount:     decimal.NewFromInt(1000),
		OccurredAt: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	if err := k.Publish(context.Background(), TopicLoanApproved, "LN-1", ev); err != nil {
		t.Fatalf("Publish: %v", err)
	}
}

func TestKafka_Publish_BrokerError(t *testing.T) {
	sp := mocks.NewSyncProducer(t, NewProducerConfig())
	defer sp.Close()

	sp.ExpectSendMessageAndFail(sarama.ErrOutOfBrokers)

	k := NewKafkaWithProducer(sp)
	err := k.Publish(context.Background(), TopicLoanPaid, "LN-2", LoanEvent{LoanID: "LN-2"})
	if !errors.Is(err, sarama.ErrOutOfBrokers) {
		t.Fatalf("want ErrOutOfBrokers, got %v", err)
	}
}

func TestKafka_Publish_CanceledContext(t *testing.T) {
	sp := mocks.NewSyncProducer(t, NewProducerConfig())
	defer sp.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	k := NewKafkaWithProducer(sp)
	if err := k.Publish(ctx, TopicLoanRequested, "LN-3", LoanEvent{}); !errors.Is(err, context.Canceled) {
		t.Fatalf("want context.Canceled, got %v", err)
	}
}

type failing struct{ calls int }

func (f *failing) Publish(context.Context, string, string, any) error {
	f.calls++
	return errors.New("down")
}

func TestEmit_SwallowsErrors(t *testing.T) {
	f := &failing{}
	Emit(context.Background(), f, TopicPaymentRecorded, "LN-4", PaymentEvent{LoanID: "LN-4"})
	if f.calls != 1 {
		t.Fatalf("publisher called %d times, want 1", f.calls)
	}
	Emit(context.Background(), nil, TopicPaymentRecorded, "LN-4", nil)
	if err := (Noop{}).Publish(context.Background(), "t", "k", nil); err != nil {
		t.Fatalf("Noop returned %v", err)
	}
}
