package dto

type DashboardResponse struct {
	ActiveAlerts        int64                      `json:"active_alerts"`
	PendingReports      int64                      `json:"pending_reports"`
	Conversations       int64                      `json:"conversations"`
	HighPriorityCount   int64                      `json:"high_priority_count"`
	RecentUpdates       []RegulatoryUpdateResponse `json:"recent_updates"`
	ComplianceScore     int                        `json:"compliance_score"`
	OpenFindings        int64                      `json:"open_findings"`
	UnreadNotifications int64                      `json:"unread_notifications"`
	ActiveSessions      int                        `json:"active_sessions"`
}
