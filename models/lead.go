package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// LeadType enumerates the lead temperature labels.
type LeadType string

const (
	LeadTypeHOT      LeadType = "HOT LEAD"
	LeadTypeCOLD     LeadType = "COLD LEAD"
	LeadTypeNEGATIVE LeadType = "NEGATIVE"
)

// AllLeadTypes lists every known lead type, in chart order.
var AllLeadTypes = []LeadType{LeadTypeHOT, LeadTypeCOLD, LeadTypeNEGATIVE}

// FollowUp is a single interaction record embedded in a lead. The followUps
// array is append-only from the API's perspective.
type FollowUp struct {
	ID               primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Date             time.Time          `bson:"date" json:"date"`
	Feedback         string             `bson:"feedback" json:"feedback"`
	Remarks          string             `bson:"remarks,omitempty" json:"remarks,omitempty"`
	Status           string             `bson:"status,omitempty" json:"status,omitempty"`
	NextFollowUpDate *time.Time         `bson:"nextFollowUpDate,omitempty" json:"nextFollowUpDate,omitempty"`
	UpdatedBy        string             `bson:"updatedBy" json:"updatedBy"`
	UpdatedById      primitive.ObjectID `bson:"updatedById,omitempty" json:"updatedById,omitempty"`
	CallStartTime    *time.Time         `bson:"callStartTime,omitempty" json:"callStartTime,omitempty"`
	CallEndTime      *time.Time         `bson:"callEndTime,omitempty" json:"callEndTime,omitempty"`
	CallDuration     int                `bson:"callDuration,omitempty" json:"callDuration,omitempty"`
}

// Recording is a call recording embedded in a lead. URL is presigned and
// time-limited; it is refreshed on read.
type Recording struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	ObjectKey     string             `bson:"objectKey" json:"objectKey"`
	URL           string             `bson:"url" json:"url"`
	URLExpiresAt  time.Time          `bson:"urlExpiresAt" json:"urlExpiresAt"`
	FileName      string             `bson:"fileName" json:"fileName"`
	UploadedBy    string             `bson:"uploadedBy" json:"uploadedBy"`
	UploadedAt    time.Time          `bson:"uploadedAt" json:"uploadedAt"`
	Transcription string             `bson:"transcription,omitempty" json:"transcription,omitempty"`
	AnalysisScore float64            `bson:"analysisScore,omitempty" json:"analysisScore,omitempty"`
}

// Lead is a prospective-student inquiry record.
type Lead struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Name     string             `bson:"name" json:"name"`
	Email    string             `bson:"email,omitempty" json:"email,omitempty"`
	Phone    string             `bson:"phone" json:"phone"`
	School   string             `bson:"school,omitempty" json:"school,omitempty"`
	ClassID  primitive.ObjectID `bson:"classId,omitempty" json:"classId,omitempty"`
	CentreID primitive.ObjectID `bson:"centreId,omitempty" json:"centreId,omitempty"`
	CourseID primitive.ObjectID `bson:"courseId,omitempty" json:"courseId,omitempty"`
	BoardID  primitive.ObjectID `bson:"boardId,omitempty" json:"boardId,omitempty"`

	LeadType   LeadType `bson:"leadType" json:"leadType"`
	LeadSource string   `bson:"leadSource,omitempty" json:"leadSource,omitempty"`

	// LeadResponsibility is the owning telecaller's display name. Kept as a
	// string for compatibility with historical rows; TelecallerID is the
	// proper reference with the name as a denormalised cache.
	LeadResponsibility string             `bson:"leadResponsibility" json:"leadResponsibility"`
	TelecallerID       primitive.ObjectID `bson:"telecallerId,omitempty" json:"telecallerId,omitempty"`

	IsCounseled      bool       `bson:"isCounseled" json:"isCounseled"`
	LastFollowUpDate *time.Time `bson:"lastFollowUpDate,omitempty" json:"lastFollowUpDate,omitempty"`
	NextFollowUpDate *time.Time `bson:"nextFollowUpDate,omitempty" json:"nextFollowUpDate,omitempty"`

	FollowUps  []FollowUp  `bson:"followUps" json:"followUps"`
	Recordings []Recording `bson:"recordings,omitempty" json:"recordings,omitempty"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

// LeadCreateRequest is the lead intake payload.
type LeadCreateRequest struct {
	Name               string   `json:"name" binding:"required"`
	Email              string   `json:"email"`
	Phone              string   `json:"phone" binding:"required"`
	School             string   `json:"school"`
	ClassID            string   `json:"classId"`
	CentreID           string   `json:"centreId"`
	CourseID           string   `json:"courseId"`
	BoardID            string   `json:"boardId"`
	LeadType           LeadType `json:"leadType"`
	LeadSource         string   `json:"leadSource"`
	LeadResponsibility string   `json:"leadResponsibility"`
}

// LeadUpdateRequest is the lead edit payload. Follow-ups are not editable
// through this path.
type LeadUpdateRequest struct {
	Name               string   `json:"name"`
	Email              string   `json:"email"`
	Phone              string   `json:"phone"`
	School             string   `json:"school"`
	ClassID            string   `json:"classId"`
	CentreID           string   `json:"centreId"`
	CourseID           string   `json:"courseId"`
	BoardID            string   `json:"boardId"`
	LeadType           LeadType `json:"leadType"`
	LeadSource         string   `json:"leadSource"`
	LeadResponsibility string   `json:"leadResponsibility"`
	IsCounseled        *bool    `json:"isCounseled"`
}

// AddFollowUpRequest is the follow-up append payload.
type AddFollowUpRequest struct {
	Feedback         string     `json:"feedback" binding:"required"`
	Remarks          string     `json:"remarks"`
	Status           string     `json:"status"`
	Date             *time.Time `json:"date"`
	NextFollowUpDate *time.Time `json:"nextFollowUpDate"`
	CallStartTime    *time.Time `json:"callStartTime"`
	CallEndTime      *time.Time `json:"callEndTime"`
}

// AddRecordingRequest registers a call recording against a lead.
type AddRecordingRequest struct {
	ObjectKey     string  `json:"objectKey" binding:"required"`
	FileName      string  `json:"fileName" binding:"required"`
	Transcription string  `json:"transcription"`
	AnalysisScore float64 `json:"analysisScore"`
}

// BulkImportRow is one row of a bulk lead import.
type BulkImportRow struct {
	Name               string `json:"name"`
	Email              string `json:"email"`
	Phone              string `json:"phone"`
	School             string `json:"school"`
	LeadType           string `json:"leadType"`
	LeadSource         string `json:"leadSource"`
	LeadResponsibility string `json:"leadResponsibility"`
	CentreID           string `json:"centreId"`
}
