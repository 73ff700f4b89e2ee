package notifications

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/IBM/sarama"
)

// Consumer runs the email worker group over the notification topic.
type Consumer interface {
	StartConsumers(ctx context.Context, numWorkers int) error
	Stop() error
}

type ConsumerConfig struct {
	Brokers          []string
	GroupID          string
	Topics           []string
	SessionTimeoutMs int
	HeartbeatMs      int
	RetryBackoffMs   int
	AutoCommit       bool
	OffsetOldest     bool
}

func DefaultConsumerConfig() *ConsumerConfig {
	return &ConsumerConfig{
		Brokers:          []string{"localhost:9092"},
		GroupID:          "padelhub-notification-workers",
		Topics:           []string{"reservation-notifications"},
		SessionTimeoutMs: 30000,
		HeartbeatMs:      3000,
		RetryBackoffMs:   100,
		AutoCommit:       true,
		OffsetOldest:     false,
	}
}

type kafkaConsumer struct {
	consumerGroup sarama.ConsumerGroup
	config        *ConsumerConfig
	emailService  EmailService
	ctx           context.Context
	cancel        context.CancelFunc
	wg            sync.WaitGroup
}

func NewKafkaConsumer(config *ConsumerConfig, emailService EmailService) (Consumer, error) {
	saramaConfig := sarama.NewConfig()

	saramaConfig.Consumer.Group.Session.Timeout = time.Duration(config.SessionTimeoutMs) * time.Millisecond
	saramaConfig.Consumer.Group.Heartbeat.Interval = time.Duration(config.HeartbeatMs) * time.Millisecond
	saramaConfig.Consumer.Retry.Backoff = time.Duration(config.RetryBackoffMs) * time.Millisecond
	saramaConfig.Consumer.Return.Errors = true

	if config.OffsetOldest {
		saramaConfig.Consumer.Offsets.Initial = sarama.OffsetOldest
	} else {
		saramaConfig.Consumer.Offsets.Initial = sarama.OffsetNewest
	}

	if config.AutoCommit {
		saramaConfig.Consumer.Offsets.AutoCommit.Enable = true
		saramaConfig.Consumer.Offsets.AutoCommit.Interval = 1 * time.Second
	}

	consumerGroup, err := sarama.NewConsumerGroup(config.Brokers, config.GroupID, saramaConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create consumer group: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())

	return &kafkaConsumer{
		consumerGroup: consumerGroup,
		config:        config,
		emailService:  emailService,
		ctx:           ctx,
		cancel:        cancel,
	}, nil
}

func (kc *kafkaConsumer) StartConsumers(_ context.Context, numWorkers int) error {
	log.Printf("📥 Starting %d notification consumer workers for topics: %v", numWorkers, kc.config.Topics)

	go kc.handleErrors()

	for i := 0; i < numWorkers; i++ {
		kc.wg.Add(1)
		go func(workerID int) {
			defer kc.wg.Done()
			handler := &consumerGroupHandler{emailService: kc.emailService, workerID: workerID}
			for {
				if err := kc.consumerGroup.Consume(kc.ctx, kc.config.Topics, handler); err != nil {
					log.Printf("⚠️ Consumer worker %d error: %v", workerID, err)
				}
				if kc.ctx.Err() != nil {
					return
				}
			}
		}(i)
	}

	return nil
}

func (kc *kafkaConsumer) Stop() error {
	kc.cancel()
	kc.wg.Wait()
	return kc.consumerGroup.Close()
}

func (kc *kafkaConsumer) handleErrors() {
	for err := range kc.consumerGroup.Errors() {
		log.Printf("⚠️ Consumer group error: %v", err)
	}
}

type consumerGroupHandler struct {
	emailService EmailService
	workerID     int
}

func (h *consumerGroupHandler) Setup(sarama.ConsumerGroupSession) error   { return nil }
func (h *consumerGroupHandler) Cleanup(sarama.ConsumerGroupSession) error { return nil }

func (h *consumerGroupHandler) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	for message := range claim.Messages() {
		notification, err := FromJSON(message.Value)
		if err != nil {
			log.Printf("⚠️ Worker %d: dropping unparseable notification at offset %d: %v", h.workerID, message.Offset, err)
			session.MarkMessage(message, "")
			continue
		}

		if err := h.emailService.Send(session.Context(), notification); err != nil {
			log.Printf("⚠️ Worker %d: failed to send notification %s: %v", h.workerID, notification.ID, err)
			// Mark anyway: retries are the email service's concern, an
			// unprocessable message must not wedge the partition
		}
		session.MarkMessage(message, "")
	}
	return nil
}
