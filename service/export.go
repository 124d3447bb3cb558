package service

import (
	"context"
	"fmt"

	"github.com/edusparsh/erp_backend/models"
	"github.com/edusparsh/erp_backend/repository"

	"github.com/xuri/excelize/v2"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var leadExportHeaders = []string{
	"Name", "Email", "Phone", "School", "Lead Type", "Source",
	"Telecaller", "Counseled", "Last Follow-up", "Next Follow-up",
	"Follow-ups", "Created",
}

const exportRowLimit = 10000

// ExportLeads writes the leads matching the filter into an xlsx workbook.
func ExportLeads(ctx context.Context, filter bson.M) (*excelize.File, error) {
	findOptions := options.Find().
		SetSort(bson.M{"createdAt": -1}).
		SetLimit(exportRowLimit)

	cursor, err := repository.Collection(repository.LeadsCollection).Find(ctx, filter, findOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to query leads for export: %w", err)
	}
	defer cursor.Close(ctx)

	var leads []models.Lead
	if err := cursor.All(ctx, &leads); err != nil {
		return nil, fmt.Errorf("failed to decode leads for export: %w", err)
	}

	f := excelize.NewFile()
	sheetName := "Leads"
	f.SetSheetName("Sheet1", sheetName)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E0E0E0"}, Pattern: 1},
	})
	if err == nil {
		f.SetRowStyle(sheetName, 1, 1, headerStyle)
	}

	for i, header := range leadExportHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheetName, cell, header)
	}

	for i, lead := range leads {
		row := i + 2
		f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), lead.Name)
		f.SetCellValue(sheetName, fmt.Sprintf("B%d", row), lead.Email)
		f.SetCellValue(sheetName, fmt.Sprintf("C%d", row), lead.Phone)
		f.SetCellValue(sheetName, fmt.Sprintf("D%d", row), lead.School)
		f.SetCellValue(sheetName, fmt.Sprintf("E%d", row), string(lead.LeadType))
		f.SetCellValue(sheetName, fmt.Sprintf("F%d", row), lead.LeadSource)
		f.SetCellValue(sheetName, fmt.Sprintf("G%d", row), lead.LeadResponsibility)
		f.SetCellValue(sheetName, fmt.Sprintf("H%d", row), lead.IsCounseled)
		if lead.LastFollowUpDate != nil {
			f.SetCellValue(sheetName, fmt.Sprintf("I%d", row), lead.LastFollowUpDate.Format("2006-01-02"))
		}
		if lead.NextFollowUpDate != nil {
			f.SetCellValue(sheetName, fmt.Sprintf("J%d", row), lead.NextFollowUpDate.Format("2006-01-02"))
		}
		f.SetCellValue(sheetName, fmt.Sprintf("K%d", row), len(lead.FollowUps))
		f.SetCellValue(sheetName, fmt.Sprintf("L%d", row), lead.CreatedAt.Format("2006-01-02 15:04"))
	}

	return f, nil
}
