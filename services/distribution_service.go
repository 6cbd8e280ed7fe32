package services

import (
	"errors"
	"fmt"

	"github.com/anjiri1684/edu_cooperative/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var hundred = decimal.NewFromInt(100)

// DistributeProfits splits the report's net profit between active members in
// proportion to their capital shares and marks the report finalized.
// Distributions already paid out are not recalculated.
func DistributeProfits(db *gorm.DB, reportID uuid.UUID, lock bool) (*models.FinancialReport, []models.ProfitDistribution, error) {
	var report models.FinancialReport
	var distributions []models.ProfitDistribution

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&report, "id = ?", reportID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrRecordNotFound
			}
			return err
		}
		if lock && report.IsFinalized {
			return ErrReportFinalized
		}

		var members []models.Member
		if err := tx.Where("is_active = ?", true).Order("created_at ASC").Find(&members).Error; err != nil {
			return err
		}

		totalShares := decimal.Zero
		for _, m := range members {
			totalShares = totalShares.Add(m.CapitalShares)
		}
		if totalShares.IsZero() {
			totalShares = decimal.NewFromInt(1)
		}

		var existing []models.ProfitDistribution
		if err := tx.Where("financial_report_id = ?", report.ID).Find(&existing).Error; err != nil {
			return err
		}
		paid := make(map[uuid.UUID]bool, len(existing))
		for _, d := range existing {
			if d.IsPaid {
				paid[d.MemberID] = true
			}
		}

		for _, m := range members {
			if paid[m.ID] {
				continue
			}
			row := models.ProfitDistribution{
				FinancialReportID: report.ID,
				MemberID:          m.ID,
				SharePercentage:   m.CapitalShares.Mul(hundred).Div(totalShares).Round(2),
				Amount:            m.CapitalShares.Mul(report.NetProfit).Div(totalShares).Round(2),
			}
			err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "financial_report_id"}, {Name: "member_id"}},
				DoUpdates: clause.AssignmentColumns([]string{"share_percentage", "amount", "updated_at"}),
			}).Create(&row).Error
			if err != nil {
				return fmt.Errorf("saving distribution for member %s: %w", m.ID, err)
			}
		}

		report.IsFinalized = true
		if err := tx.Model(&report).Update("is_finalized", true).Error; err != nil {
			return err
		}

		return tx.Preload("Member").
			Where("financial_report_id = ?", report.ID).
			Order("amount DESC").
			Find(&distributions).Error
	})
	if err != nil {
		return nil, nil, err
	}
	return &report, distributions, nil
}
