package service

import (
	"context"
	"strings"
	"time"

	"github.com/edusparsh/erp_backend/models"
	"github.com/edusparsh/erp_backend/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// SkippedRow records why one import row was not inserted.
type SkippedRow struct {
	Row    int    `json:"row"`
	Name   string `json:"name"`
	Phone  string `json:"phone"`
	Reason string `json:"reason"`
}

// PrepareImportRows validates bulk-import rows and partitions them into
// insertable leads and skipped rows. existingPhones and existingEmails hold
// values already present in the store (email keys lowercased); duplicates
// inside the batch are also skipped, first occurrence wins.
func PrepareImportRows(rows []models.BulkImportRow, existingPhones, existingEmails map[string]bool, now time.Time) ([]models.Lead, []SkippedRow) {
	leads := make([]models.Lead, 0, len(rows))
	skipped := []SkippedRow{}
	seenPhones := make(map[string]bool, len(rows))
	seenEmails := make(map[string]bool, len(rows))

	for i, row := range rows {
		phone := strings.TrimSpace(row.Phone)
		name := strings.TrimSpace(row.Name)
		email := strings.ToLower(strings.TrimSpace(row.Email))

		if name == "" || phone == "" {
			skipped = append(skipped, SkippedRow{Row: i + 1, Name: name, Phone: phone, Reason: "missing name or phone"})
			continue
		}
		if seenPhones[phone] {
			skipped = append(skipped, SkippedRow{Row: i + 1, Name: name, Phone: phone, Reason: "duplicate phone in batch"})
			continue
		}
		if email != "" && seenEmails[email] {
			skipped = append(skipped, SkippedRow{Row: i + 1, Name: name, Phone: phone, Reason: "duplicate email in batch"})
			continue
		}
		if existingPhones[phone] {
			skipped = append(skipped, SkippedRow{Row: i + 1, Name: name, Phone: phone, Reason: "phone already exists"})
			continue
		}
		if email != "" && existingEmails[email] {
			skipped = append(skipped, SkippedRow{Row: i + 1, Name: name, Phone: phone, Reason: "email already exists"})
			continue
		}
		seenPhones[phone] = true
		if email != "" {
			seenEmails[email] = true
		}

		leadType := models.LeadType(row.LeadType)
		if leadType != models.LeadTypeHOT && leadType != models.LeadTypeNEGATIVE {
			leadType = models.LeadTypeCOLD
		}

		lead := models.Lead{
			Name:               name,
			Email:              strings.TrimSpace(row.Email),
			Phone:              phone,
			School:             strings.TrimSpace(row.School),
			LeadType:           leadType,
			LeadSource:         strings.TrimSpace(row.LeadSource),
			LeadResponsibility: strings.TrimSpace(row.LeadResponsibility),
			FollowUps:          []models.FollowUp{},
			CreatedAt:          now,
			UpdatedAt:          now,
		}
		if centreID, err := primitive.ObjectIDFromHex(row.CentreID); err == nil {
			lead.CentreID = centreID
		}

		leads = append(leads, lead)
	}

	return leads, skipped
}

// ExistingPhones looks up which of the given phone numbers already have a
// lead.
func ExistingPhones(ctx context.Context, phones []string) (map[string]bool, error) {
	if len(phones) == 0 {
		return map[string]bool{}, nil
	}

	cursor, err := repository.Collection(repository.LeadsCollection).Find(
		ctx,
		bson.M{"phone": bson.M{"$in": phones}},
	)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var existing []struct {
		Phone string `bson:"phone"`
	}
	if err := cursor.All(ctx, &existing); err != nil {
		return nil, err
	}

	result := make(map[string]bool, len(existing))
	for _, e := range existing {
		result[e.Phone] = true
	}
	return result, nil
}

// ExistingEmails looks up which of the given emails already belong to a
// stored lead. Matching is case-insensitive and result keys are lowercased.
func ExistingEmails(ctx context.Context, emails []string) (map[string]bool, error) {
	if len(emails) == 0 {
		return map[string]bool{}, nil
	}

	cursor, err := repository.Collection(repository.LeadsCollection).Find(
		ctx,
		bson.M{"email": bson.M{"$in": emails}},
		options.Find().SetCollation(&options.Collation{Locale: "en", Strength: 2}),
	)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var existing []struct {
		Email string `bson:"email"`
	}
	if err := cursor.All(ctx, &existing); err != nil {
		return nil, err
	}

	result := make(map[string]bool, len(existing))
	for _, e := range existing {
		result[strings.ToLower(e.Email)] = true
	}
	return result, nil
}
