package main

import (
	"log"

	"banking-rag-be/internal/model"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// SeedNotificationTypes populates the registry the notification worker
// resolves event codes against.
func SeedNotificationTypes(db *gorm.DB) {
	types := []model.NotificationType{
		{
			Code:        "USER_LOGIN",
			DisplayName: "Login Activity",
			Template:    "You logged in from {device} at {time}",
			TargetType:  "SELF",
			Priority:    "LOW",
			IsActive:    true,
			Channels:    datatypes.JSON([]byte(`["web"]`)),
		},
		{
			Code:        "UPDATE_PUBLISHED",
			DisplayName: "Regulatory Update Published",
			Template:    "New regulatory update from {source}: \"{title}\"",
			TargetType:  "BROADCAST",
			Priority:    "MEDIUM",
			IsActive:    true,
			Channels:    datatypes.JSON([]byte(`["web"]`)),
		},
		{
			Code:        "ALERT_TRIGGERED",
			DisplayName: "Alert Triggered",
			Template:    "Your alert \"{alert_title}\" matched: {update_title}",
			TargetType:  "SELF",
			Priority:    "HIGH",
			IsActive:    true,
			Channels:    datatypes.JSON([]byte(`["web", "email"]`)),
		},
		{
			Code:        "REPORT_COMPLETED",
			DisplayName: "Report Ready",
			Template:    "Your report \"{report_title}\" is ready to view",
			TargetType:  "SELF",
			Priority:    "MEDIUM",
			IsActive:    true,
			Channels:    datatypes.JSON([]byte(`["web", "email"]`)),
		},
		{
			Code:        "REPORT_FAILED",
			DisplayName: "Report Failed",
			Template:    "Report \"{report_title}\" could not be generated",
			TargetType:  "SELF",
			Priority:    "HIGH",
			IsActive:    true,
			Channels:    datatypes.JSON([]byte(`["web"]`)),
		},
		{
			Code:        "GAP_ANALYSIS_COMPLETED",
			DisplayName: "Gap Analysis Completed",
			Template:    "Gap analysis finished with an overall score of {overall_score}%",
			TargetType:  "SELF",
			Priority:    "MEDIUM",
			IsActive:    true,
			Channels:    datatypes.JSON([]byte(`["web"]`)),
		},
	}

	for _, t := range types {
		var existing model.NotificationType
		if err := db.Where("code = ?", t.Code).First(&existing).Error; err == nil {
			log.Printf("Notification type '%s' already exists, skipping...", t.Code)
			continue
		}

		if err := db.Create(&t).Error; err != nil {
			log.Printf("Error: Failed to seed notification type '%s': %v", t.Code, err)
		}
	}
}
