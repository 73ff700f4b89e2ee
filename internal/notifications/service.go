package notifications

import (
	"context"
	"fmt"
	"time"

	"padelhub/internal/reservations"
	"padelhub/internal/shared/config"
	"padelhub/pkg/logger"

	"github.com/google/uuid"
)

// Service is the notification facade the rest of the application talks to.
// It satisfies reservations.NotificationService. With Kafka enabled events go
// through the producer and a worker group delivers them; without Kafka they
// are delivered inline.
type Service interface {
	PublishReservationConfirmed(ctx context.Context, notif reservations.ReservationNotification) error
	PublishReservationCancelled(ctx context.Context, notif reservations.ReservationNotification) error
	Start(ctx context.Context) error
	Stop() error
}

type service struct {
	cfg          *config.Config
	producer     Producer
	consumer     Consumer
	emailService EmailService
	log          *logger.Logger
}

func NewService(cfg *config.Config) (Service, error) {
	s := &service{
		cfg:          cfg,
		emailService: NewEmailService(cfg.Email),
		log:          logger.GetDefault(),
	}

	if !cfg.Kafka.Enabled {
		return s, nil
	}

	producerConfig := DefaultProducerConfig()
	producerConfig.Brokers = cfg.Kafka.Brokers
	producerConfig.Topic = cfg.Kafka.NotificationTopic

	producer, err := NewKafkaProducer(producerConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create notification producer: %w", err)
	}
	s.producer = producer

	consumerConfig := DefaultConsumerConfig()
	consumerConfig.Brokers = cfg.Kafka.Brokers
	consumerConfig.GroupID = cfg.Kafka.ConsumerGroupID
	consumerConfig.Topics = []string{cfg.Kafka.NotificationTopic}

	consumer, err := NewKafkaConsumer(consumerConfig, s.emailService)
	if err != nil {
		return nil, fmt.Errorf("failed to create notification consumer: %w", err)
	}
	s.consumer = consumer

	return s, nil
}

func (s *service) Start(ctx context.Context) error {
	if s.consumer == nil {
		s.log.Info("notification pipeline running without Kafka, emails delivered inline")
		return nil
	}
	return s.consumer.StartConsumers(ctx, s.cfg.Kafka.ConsumerWorkers)
}

func (s *service) Stop() error {
	if s.consumer != nil {
		if err := s.consumer.Stop(); err != nil {
			return err
		}
	}
	if s.producer != nil {
		return s.producer.Close()
	}
	return nil
}

func (s *service) PublishReservationConfirmed(ctx context.Context, notif reservations.ReservationNotification) error {
	return s.dispatch(ctx, NotificationTypeReservationConfirmed, "Your padel reservation is confirmed", notif)
}

func (s *service) PublishReservationCancelled(ctx context.Context, notif reservations.ReservationNotification) error {
	return s.dispatch(ctx, NotificationTypeReservationCancelled, "Your padel reservation was cancelled", notif)
}

func (s *service) dispatch(ctx context.Context, notifType NotificationType, subject string, notif reservations.ReservationNotification) error {
	email := &EmailNotification{
		ID:             uuid.New(),
		Type:           notifType,
		RecipientID:    notif.UserID,
		RecipientEmail: notif.UserEmail,
		Subject:        subject,
		BookingRef:     notif.BookingRef,
		TemplateData: map[string]string{
			"club_name":  notif.ClubName,
			"court_name": notif.CourtName,
			"date":       notif.Date,
			"slot_label": notif.SlotLabel,
			"price":      fmt.Sprintf("%.2f", notif.Price),
		},
		Status:     NotificationStatusPending,
		MaxRetries: 3,
		CreatedAt:  time.Now(),
		UpdatedAt:  time.Now(),
	}

	if s.producer != nil {
		return s.producer.Publish(ctx, email)
	}
	return s.emailService.Send(ctx, email)
}
