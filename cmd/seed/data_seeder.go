package main

import (
	"log"
	"time"

	"banking-rag-be/internal/entity"
	"banking-rag-be/internal/model"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// SeedUsers creates one account per role for demo environments.
func SeedUsers(db *gorm.DB) {
	users := []struct {
		email    string
		fullName string
		role     entity.UserRole
	}{
		{"admin@regbank.example", "Administrador Demo", entity.UserRoleAdmin},
		{"experto@regbank.example", "Elena Vázquez", entity.UserRoleComplianceExpert},
		{"analista@regbank.example", "Jordi Ferrer", entity.UserRoleAnalyst},
		{"lectura@regbank.example", "Cuenta de Consulta", entity.UserRoleViewer},
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("Demo1234!"), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("Error: Failed to hash demo password: %v", err)
		return
	}
	hashStr := string(hash)

	for _, u := range users {
		var existing model.User
		if err := db.Where("email = ?", u.email).First(&existing).Error; err == nil {
			log.Printf("User '%s' already exists, skipping...", u.email)
			continue
		}

		record := model.User{
			Id:           uuid.New(),
			Email:        u.email,
			PasswordHash: &hashStr,
			FullName:     u.fullName,
			Role:         string(u.role),
			Status:       string(entity.UserStatusActive),
		}
		if err := db.Create(&record).Error; err != nil {
			log.Printf("Error: Failed to seed user '%s': %v", u.email, err)
		}
	}
}

// SeedRegulatoryUpdates loads a starter feed so the dashboard and alerts
// have something to work with.
func SeedRegulatoryUpdates(db *gorm.DB) {
	var count int64
	db.Model(&entity.RegulatoryUpdate{}).Count(&count)
	if count > 0 {
		log.Println("Regulatory updates already present, skipping...")
		return
	}

	now := time.Now()
	updates := []entity.RegulatoryUpdate{
		{
			Id:          uuid.New(),
			Source:      "ESMA",
			Title:       "Directrices sobre requisitos de idoneidad MiFID II",
			Summary:     "Actualización de las directrices sobre la evaluación de idoneidad en el asesoramiento de inversiones.",
			URL:         "https://www.esma.europa.eu/document/guidelines-mifid-ii-suitability",
			PublishedAt: now.AddDate(0, 0, -2),
			Tags:        []string{"MiFID II", "idoneidad", "protección del inversor"},
			Type:        entity.UpdateTypeGuideline,
			Priority:    entity.UpdatePriorityHigh,
			Regulation:  "MiFID II",
		},
		{
			Id:          uuid.New(),
			Source:      "EBA",
			Title:       "Normas técnicas de regulación sobre resiliencia operativa digital",
			Summary:     "RTS que desarrollan los requisitos de gestión de riesgos TIC bajo DORA.",
			URL:         "https://www.eba.europa.eu/regulation-and-policy/dora-rts",
			PublishedAt: now.AddDate(0, 0, -5),
			Tags:        []string{"DORA", "TIC", "resiliencia"},
			Type:        entity.UpdateTypeRTS,
			Priority:    entity.UpdatePriorityHigh,
			Regulation:  "DORA",
		},
		{
			Id:          uuid.New(),
			Source:      "BdE",
			Title:       "Circular sobre divulgación de riesgos climáticos",
			Summary:     "Obligaciones de divulgación de riesgos ESG para entidades de crédito.",
			URL:         "https://www.bde.es/circular-esg",
			PublishedAt: now.AddDate(0, 0, -9),
			Tags:        []string{"ESG", "divulgación", "clima"},
			Type:        entity.UpdateTypeCircular,
			Priority:    entity.UpdatePriorityMedium,
			Regulation:  "CSRD",
		},
		{
			Id:          uuid.New(),
			Source:      "CNMV",
			Title:       "Guía técnica sobre comunicaciones comerciales de criptoactivos",
			Summary:     "Criterios para la publicidad de criptoactivos dirigida a inversores minoristas.",
			URL:         "https://www.cnmv.es/guia-criptoactivos",
			PublishedAt: now.AddDate(0, 0, -14),
			Tags:        []string{"MiCA", "publicidad", "criptoactivos"},
			Type:        entity.UpdateTypeGuide,
			Priority:    entity.UpdatePriorityMedium,
			Regulation:  "MiCA",
		},
		{
			Id:          uuid.New(),
			Source:      "ECB",
			Title:       "Orientaciones supervisoras sobre riesgo de liquidez intradía",
			Summary:     "Expectativas del supervisor sobre la gestión del riesgo de liquidez intradía.",
			URL:         "https://www.bankingsupervision.europa.eu/liquidity-guidance",
			PublishedAt: now.AddDate(0, 0, -21),
			Tags:        []string{"liquidez", "supervisión"},
			Type:        entity.UpdateTypeGuidance,
			Priority:    entity.UpdatePriorityLow,
			Regulation:  "CRR",
		},
	}

	for _, u := range updates {
		if err := db.Create(&u).Error; err != nil {
			log.Printf("Error: Failed to seed update '%s': %v", u.Title, err)
		}
	}
}

// SeedComparatives loads the jurisdiction matrix cells.
func SeedComparatives(db *gorm.DB) {
	var count int64
	db.Model(&entity.ComparativeEntry{}).Count(&count)
	if count > 0 {
		log.Println("Comparative entries already present, skipping...")
		return
	}

	type cell struct {
		jurisdiction string
		status       entity.ComparativeStatus
		value        string
		notes        string
	}
	type row struct {
		topic       string
		requirement string
		cells       []cell
	}

	rows := []row{
		{
			topic:       "solvency",
			requirement: "Ratio mínimo de capital CET1",
			cells: []cell{
				{"ES", entity.ComparativeStatusAligned, "4,5% + colchones", "Transposición directa de CRR."},
				{"FR", entity.ComparativeStatusAligned, "4,5% + colchones", ""},
				{"DE", entity.ComparativeStatusStricter, "4,5% + colchón sistémico adicional", "BaFin aplica colchón doméstico."},
				{"UK", entity.ComparativeStatusDivergent, "Régimen PRA propio", "Post-Brexit, marco CRR onshored con ajustes."},
				{"US", entity.ComparativeStatusDivergent, "Basel III endgame en transición", ""},
			},
		},
		{
			topic:       "liquidity",
			requirement: "Ratio de cobertura de liquidez (LCR)",
			cells: []cell{
				{"ES", entity.ComparativeStatusAligned, "100%", ""},
				{"FR", entity.ComparativeStatusAligned, "100%", ""},
				{"DE", entity.ComparativeStatusAligned, "100%", ""},
				{"UK", entity.ComparativeStatusAligned, "100%", "Mantiene calibración CRR."},
				{"US", entity.ComparativeStatusDivergent, "100% solo grandes entidades", "Umbral por tamaño de balance."},
			},
		},
		{
			topic:       "conduct",
			requirement: "Evaluación de idoneidad en asesoramiento",
			cells: []cell{
				{"ES", entity.ComparativeStatusAligned, "MiFID II art. 25", ""},
				{"FR", entity.ComparativeStatusStricter, "MiFID II + cuestionario AMF", "La AMF exige documentación adicional."},
				{"DE", entity.ComparativeStatusAligned, "MiFID II art. 25", ""},
				{"UK", entity.ComparativeStatusDivergent, "COBS 9 / Consumer Duty", "Consumer Duty añade un estándar de resultados."},
				{"US", entity.ComparativeStatusDivergent, "Reg BI", "Estándar de best interest, no idoneidad MiFID."},
			},
		},
		{
			topic:       "esg",
			requirement: "Divulgación de sostenibilidad corporativa",
			cells: []cell{
				{"ES", entity.ComparativeStatusAligned, "CSRD", ""},
				{"FR", entity.ComparativeStatusStricter, "CSRD + art. 29 LEC", "Obligaciones francesas previas a CSRD."},
				{"DE", entity.ComparativeStatusAligned, "CSRD", ""},
				{"UK", entity.ComparativeStatusDivergent, "UK SDR", "Marco propio de la FCA."},
				{"US", entity.ComparativeStatusUnknown, "Norma SEC en litigio", "Regla de divulgación climática suspendida."},
			},
		},
	}

	for _, r := range rows {
		for _, c := range r.cells {
			entry := entity.ComparativeEntry{
				Id:           uuid.New(),
				Topic:        r.topic,
				Jurisdiction: c.jurisdiction,
				Requirement:  r.requirement,
				Status:       c.status,
				Value:        c.value,
				Notes:        c.notes,
			}
			if err := db.Create(&entry).Error; err != nil {
				log.Printf("Error: Failed to seed comparative '%s/%s': %v", r.topic, c.jurisdiction, err)
			}
		}
	}
}
