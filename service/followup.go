package service

import (
	"time"

	"github.com/edusparsh/erp_backend/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// BuildFollowUpAppend builds the follow-up document and the root-field
// updates for one append. The caller issues them in a single update so the
// push and lastFollowUpDate can never drift apart. nextFollowUpDate on the
// lead root is only overwritten when the request supplies one.
func BuildFollowUpAppend(req models.AddFollowUpRequest, p models.Principal, now time.Time) (models.FollowUp, bson.M) {
	date := now
	if req.Date != nil {
		date = *req.Date
	}

	followUp := models.FollowUp{
		ID:               primitive.NewObjectID(),
		Date:             date,
		Feedback:         req.Feedback,
		Remarks:          req.Remarks,
		Status:           req.Status,
		NextFollowUpDate: req.NextFollowUpDate,
		UpdatedBy:        p.Name,
		UpdatedById:      p.ID,
		CallStartTime:    req.CallStartTime,
		CallEndTime:      req.CallEndTime,
	}

	if req.CallStartTime != nil && req.CallEndTime != nil {
		if d := req.CallEndTime.Sub(*req.CallStartTime); d > 0 {
			followUp.CallDuration = int(d.Seconds())
		}
	}

	setFields := bson.M{
		"lastFollowUpDate": date,
		"updatedAt":        now,
	}
	if req.NextFollowUpDate != nil {
		setFields["nextFollowUpDate"] = *req.NextFollowUpDate
	}

	return followUp, setFields
}
