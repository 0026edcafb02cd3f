package email

import (
	"context"
	"encoding/json"
	"fmt"
	"net/smtp"
	"time"

	"github.com/Kaizen-Gym/Managment-System--Backend/internal/logger"
	"github.com/Kaizen-Gym/Managment-System--Backend/internal/metrics"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
)

const (
	queueKey       = "emails"
	failedQueueKey = "emails:failed"
	maxTries       = 3
	retryDelay     = 5 * time.Second

	typePaymentReceipt = "payment_receipt"
	typeExpiryNotice   = "expiry_notice"
)

type EmailJob struct {
	Type    string    `json:"type"`
	To      string    `json:"to"`
	Name    string    `json:"name"`
	Subject string    `json:"subject"`
	Body    string    `json:"body"`
	Tries   int       `json:"tries"`
	Created time.Time `json:"created"`
}

type Config struct {
	From     string
	FromName string
	SMTPHost string
	SMTPPort string
	SMTPUser string
	SMTPPass string
}

// Service queues outgoing mail in a Redis list and delivers it over SMTP
// from Start.
type Service struct {
	redis *redis.Client
	cfg   Config
}

func New(cfg Config, redisAddr string) *Service {
	return NewWithClient(cfg, redis.NewClient(&redis.Options{
		Addr: redisAddr,
	}))
}

func NewWithClient(cfg Config, rdb *redis.Client) *Service {
	return &Service{redis: rdb, cfg: cfg}
}

func (s *Service) Send(ctx context.Context, to, name, subject, body string) error {
	return s.enqueue(ctx, EmailJob{
		To:      to,
		Name:    name,
		Subject: subject,
		Body:    body,
		Created: time.Now(),
	})
}

func (s *Service) enqueue(ctx context.Context, job EmailJob) error {
	data, err := json.Marshal(job)
	if err != nil {
		logger.Error("failed to marshal email job", "error", err)
		return err
	}

	if err := s.redis.LPush(ctx, queueKey, data).Err(); err != nil {
		logger.Error("failed to queue email", "to", job.To, "error", err)
		metrics.RecordEmail(job.Type, "failed")
		return err
	}

	metrics.RecordEmail(job.Type, "queued")
	logger.Info("email queued", "subject", job.Subject, "to", job.To)
	return nil
}

// Start delivers queued mail until ctx is cancelled.
func (s *Service) Start(ctx context.Context) {
	logger.Info("email worker started")

	for {
		select {
		case <-ctx.Done():
			logger.Info("email worker stopped")
			return
		default:
			s.processNext(ctx)
		}
	}
}

func (s *Service) processNext(ctx context.Context) {
	result, err := s.redis.BRPop(ctx, 2*time.Second, queueKey).Result()
	if err != nil {
		return
	}

	var job EmailJob
	if err := json.Unmarshal([]byte(result[1]), &job); err != nil {
		logger.Error("bad email job", "error", err)
		return
	}

	job.Tries++
	if err := s.sendNow(job); err != nil {
		logger.Error("failed to send email", "to", job.To, "attempt", job.Tries, "error", err)

		if job.Tries < maxTries {
			select {
			case <-ctx.Done():
			case <-time.After(retryDelay):
			}
			data, _ := json.Marshal(job)
			s.redis.LPush(context.Background(), queueKey, data)
			return
		}
		s.saveFailed(job, err)
		return
	}

	metrics.RecordEmail(job.Type, "sent")
	logger.Info("email sent", "to", job.To, "type", job.Type)
}

func (s *Service) sendNow(job EmailJob) error {
	message := fmt.Sprintf("From: %s <%s>\r\n", s.cfg.FromName, s.cfg.From)
	message += fmt.Sprintf("To: %s\r\n", job.To)
	message += fmt.Sprintf("Subject: %s\r\n", job.Subject)
	message += "\r\n" + job.Body

	var auth smtp.Auth
	if s.cfg.SMTPUser != "" && s.cfg.SMTPPass != "" {
		auth = smtp.PlainAuth("", s.cfg.SMTPUser, s.cfg.SMTPPass, s.cfg.SMTPHost)
	}

	addr := s.cfg.SMTPHost + ":" + s.cfg.SMTPPort
	return smtp.SendMail(addr, auth, s.cfg.From, []string{job.To}, []byte(message))
}

func (s *Service) saveFailed(job EmailJob, err error) {
	failed := map[string]interface{}{
		"job":   job,
		"error": err.Error(),
		"time":  time.Now(),
	}
	data, _ := json.Marshal(failed)
	s.redis.LPush(context.Background(), failedQueueKey, data)
	metrics.RecordEmail(job.Type, "failed")
	logger.Error("email moved to failed queue", "to", job.To, "tries", job.Tries)
}

func (s *Service) QueueLength(ctx context.Context) int64 {
	length, _ := s.redis.LLen(ctx, queueKey).Result()
	metrics.EmailQueueLength.Set(float64(length))
	return length
}

func (s *Service) Ping(ctx context.Context) error {
	return s.redis.Ping(ctx).Err()
}

func (s *Service) Close() error {
	return s.redis.Close()
}

// Receipt describes one payment for a receipt mail.
type Receipt struct {
	Email          string
	Name           string
	Operation      string
	MembershipType string
	Amount         decimal.Decimal
	Due            decimal.Decimal
	EndDate        time.Time
}

func (s *Service) SendPaymentReceipt(ctx context.Context, r Receipt) error {
	subject := "Payment Received - " + r.Operation
	body := fmt.Sprintf(`Hi %s,

We have received your payment.

Plan: %s
Amount: %s
Outstanding: %s
Valid until: %s

Thank you for training with us!

- Kaizen Gym`, r.Name, r.MembershipType, r.Amount.StringFixed(2), r.Due.StringFixed(2), r.EndDate.Format("Jan 2, 2006"))

	return s.enqueue(ctx, EmailJob{
		Type:    typePaymentReceipt,
		To:      r.Email,
		Name:    r.Name,
		Subject: subject,
		Body:    body,
		Created: time.Now(),
	})
}

func (s *Service) SendExpiryNotice(ctx context.Context, email, name, membershipType string, endDate time.Time) error {
	subject := "Your membership has expired"
	body := fmt.Sprintf(`Hi %s,

Your %s membership expired on %s.

Renew at the front desk to keep training.

- Kaizen Gym`, name, membershipType, endDate.Format("Jan 2, 2006"))

	return s.enqueue(ctx, EmailJob{
		Type:    typeExpiryNotice,
		To:      email,
		Name:    name,
		Subject: subject,
		Body:    body,
		Created: time.Now(),
	})
}
