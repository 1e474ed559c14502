package dashboard

import (
	"context"
	"time"

	"banking-rag-be/internal/dto"
	"banking-rag-be/internal/entity"
	"banking-rag-be/internal/pkg/logger"
	"banking-rag-be/internal/repository/specification"
	"banking-rag-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

// Aggregator handles dashboard statistics
type Aggregator struct {
	logger logger.ILogger
}

// NewAggregator creates a new dashboard aggregator
func NewAggregator(logger logger.ILogger) *Aggregator {
	return &Aggregator{
		logger: logger,
	}
}

// GetOverview computes the per-user KPI block from live data.
func (a *Aggregator) GetOverview(ctx context.Context, uow unitofwork.UnitOfWork, userId uuid.UUID) (*dto.DashboardResponse, error) {
	owned := specification.UserOwnedBy{UserID: userId}

	activeAlerts, err := uow.AlertRuleRepository().Count(ctx, owned, specification.Filter("is_active", true))
	if err != nil {
		return nil, err
	}

	pendingReports, err := uow.ReportRepository().Count(ctx, owned,
		specification.Filter("status", entity.ReportStatusGenerating))
	if err != nil {
		return nil, err
	}

	conversations, err := uow.ConversationRepository().Count(ctx, owned)
	if err != nil {
		return nil, err
	}

	monthAgo := time.Now().AddDate(0, -1, 0)
	highPriority, err := uow.RegulatoryUpdateRepository().Count(ctx,
		specification.ByPriority{Priority: string(entity.UpdatePriorityHigh)},
		specification.PublishedAfter{After: monthAgo},
	)
	if err != nil {
		return nil, err
	}

	// Latest feed items (limit 5)
	recent, err := uow.RegulatoryUpdateRepository().FindAll(ctx,
		specification.OrderBy{Field: "published_at", Desc: true},
		specification.Pagination{Limit: 5, Offset: 0},
	)
	var recentDtos []dto.RegulatoryUpdateResponse
	if err == nil {
		for _, u := range recent {
			recentDtos = append(recentDtos, dto.RegulatoryUpdateResponse{
				Id:          u.Id,
				Source:      u.Source,
				Title:       u.Title,
				Summary:     u.Summary,
				URL:         u.URL,
				PublishedAt: u.PublishedAt,
				Tags:        u.Tags,
				Type:        string(u.Type),
				Priority:    string(u.Priority),
				Regulation:  u.Regulation,
			})
		}
	}

	score, openFindings := a.latestGapFigures(ctx, uow, userId)

	unread, err := uow.NotificationRepository().GetUnreadCount(ctx, userId)
	if err != nil {
		unread = 0
	}

	return &dto.DashboardResponse{
		ActiveAlerts:        activeAlerts,
		PendingReports:      pendingReports,
		Conversations:       conversations,
		HighPriorityCount:   highPriority,
		RecentUpdates:       recentDtos,
		ComplianceScore:     score,
		OpenFindings:        openFindings,
		UnreadNotifications: unread,
	}, nil
}

// latestGapFigures takes the score and the open-finding count from the
// most recent analysis. No analysis yet means score 0 and no findings.
func (a *Aggregator) latestGapFigures(ctx context.Context, uow unitofwork.UnitOfWork, userId uuid.UUID) (int, int64) {
	analysis, err := uow.GapAnalysisRepository().FindOne(ctx,
		specification.UserOwnedBy{UserID: userId},
		specification.OrderBy{Field: "created_at", Desc: true},
	)
	if err != nil {
		a.logger.Warn("dashboard", "Failed to load latest gap analysis", map[string]interface{}{"error": err.Error()})
		return 0, 0
	}
	if analysis == nil {
		return 0, 0
	}

	summary := entity.Summarize(analysis.Findings)
	open := int64(summary.TotalRequirements - summary.Compliant)
	return summary.OverallScore, open
}
