package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"banking-rag-be/internal/entity"
	"banking-rag-be/internal/pkg/mailer"
	"banking-rag-be/internal/repository/specification"
	"banking-rag-be/internal/repository/unitofwork"
	"banking-rag-be/pkg/events"
	pktNats "banking-rag-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

// consumerService is the report generation worker. It drains the queue,
// composes the document and flips the report status.
type consumerService struct {
	pubSub         *gochannel.GoChannel
	topicName      string
	uowFactory     unitofwork.RepositoryFactory
	eventPublisher *pktNats.Publisher
	emailService   mailer.IEmailService
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	uowFactory unitofwork.RepositoryFactory,
	eventPublisher *pktNats.Publisher,
	emailService mailer.IEmailService,
) IConsumerService {
	return &consumerService{
		pubSub:         pubSub,
		topicName:      topicName,
		uowFactory:     uowFactory,
		eventPublisher: eventPublisher,
		emailService:   emailService,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	var payload GenerateReportMessage
	err := json.Unmarshal(msg.Payload, &payload)
	if err != nil {
		log.Printf("[ERROR] Failed to unmarshal message: %v", err)
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}

	log.Printf("[INFO] Generating report %s", payload.ReportId)

	uow := cs.uowFactory.NewUnitOfWork(ctx)

	report, err := uow.ReportRepository().FindOne(ctx, specification.ByID{ID: payload.ReportId})
	if err != nil {
		log.Printf("[ERROR] Failed to get report %s: %v", payload.ReportId, err)
		msg.Nack() // Nack for retriable errors
		return
	}
	if report == nil {
		log.Printf("[ERROR] Report not found: %s", payload.ReportId)
		msg.Ack() // Report deleted? Ack.
		return
	}

	content, err := cs.composeContent(ctx, uow, report)
	if err != nil {
		log.Printf("[ERROR] Failed to compose report %s: %v", report.Id, err)
		if updErr := uow.ReportRepository().UpdateStatus(ctx, report.Id, entity.ReportStatusFailed); updErr != nil {
			log.Printf("[ERROR] Failed to mark report failed: %v", updErr)
		}
		cs.publishEvent(ctx, events.TypeReportFailed, report)
		msg.Ack()
		return
	}

	now := time.Now()
	report.Content = content
	report.Status = entity.ReportStatusCompleted
	report.CompletedAt = &now
	if err := uow.ReportRepository().Update(ctx, report); err != nil {
		log.Printf("[ERROR] Failed to save report %s: %v", report.Id, err)
		msg.Nack()
		return
	}

	cs.publishEvent(ctx, events.TypeReportCompleted, report)
	cs.notifyOwner(ctx, uow, report)

	log.Printf("[SUCCESS] Report generated: %s", report.Id)
	msg.Ack()
}

func (cs *consumerService) notifyOwner(ctx context.Context, uow unitofwork.UnitOfWork, report *entity.Report) {
	if cs.emailService == nil {
		return
	}
	owner, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: report.UserId})
	if err != nil || owner == nil {
		return
	}
	go func(email, title string) {
		if err := cs.emailService.SendReportReadyEmail(email, title); err != nil {
			log.Printf("[WARN] Failed to send report ready email: %v", err)
		}
	}(owner.Email, report.Title)
}

// composeContent builds the report body from the feed items that fall
// inside the report scope.
func (cs *consumerService) composeContent(ctx context.Context, uow unitofwork.UnitOfWork, report *entity.Report) (string, error) {
	specs := []specification.Specification{
		specification.OrderBy{Field: "published_at", Desc: true},
		specification.Pagination{Limit: 25, Offset: 0},
	}
	if report.Regulation != "" {
		specs = append(specs, specification.SearchUpdates{Query: report.Regulation})
	}
	if report.PeriodStart != nil {
		specs = append(specs, specification.PublishedAfter{After: *report.PeriodStart})
	}

	updates, err := uow.RegulatoryUpdateRepository().FindAll(ctx, specs...)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", report.Title)
	if report.Description != "" {
		fmt.Fprintf(&b, "%s\n\n", report.Description)
	}
	if report.Regulation != "" {
		fmt.Fprintf(&b, "Ámbito normativo: %s\n\n", report.Regulation)
	}
	if report.PeriodStart != nil && report.PeriodEnd != nil {
		fmt.Fprintf(&b, "Periodo: %s - %s\n\n",
			report.PeriodStart.Format("2006-01-02"), report.PeriodEnd.Format("2006-01-02"))
	}

	fmt.Fprintf(&b, "## Novedades regulatorias (%d)\n\n", len(updates))
	for _, u := range updates {
		if report.PeriodEnd != nil && u.PublishedAt.After(*report.PeriodEnd) {
			continue
		}
		fmt.Fprintf(&b, "- [%s] %s (%s, prioridad %s)\n", u.Source, u.Title,
			u.PublishedAt.Format("2006-01-02"), u.Priority)
		if u.Summary != "" {
			fmt.Fprintf(&b, "  %s\n", u.Summary)
		}
	}

	return b.String(), nil
}

func (cs *consumerService) publishEvent(ctx context.Context, eventType string, report *entity.Report) {
	if cs.eventPublisher == nil {
		return
	}
	event := events.BaseEvent{
		Type: eventType,
		Data: map[string]interface{}{
			"user_id":      report.UserId.String(),
			"report_title": report.Title,
			"entity_type":  "report",
			"entity_id":    report.Id.String(),
		},
		OccurredAt: time.Now(),
	}
	if err := cs.eventPublisher.Publish(ctx, event); err != nil {
		log.Printf("[WARN] Failed to publish %s event: %v", eventType, err)
	}
}
