package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Centre is a physical branch location, the primary access-scoping unit.
type Centre struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Name      string             `bson:"name" json:"name"`
	Code      string             `bson:"code,omitempty" json:"code,omitempty"`
	Address   string             `bson:"address,omitempty" json:"address,omitempty"`
	City      string             `bson:"city,omitempty" json:"city,omitempty"`
	State     string             `bson:"state,omitempty" json:"state,omitempty"`
	Active    bool               `bson:"active" json:"active"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// Zone is an administrative grouping of centres for regional reporting.
// A zone cannot be deleted while it still owns centres.
type Zone struct {
	ID        primitive.ObjectID   `bson:"_id,omitempty" json:"_id,omitempty"`
	Name      string               `bson:"name" json:"name"`
	Code      string               `bson:"code,omitempty" json:"code,omitempty"`
	Centres   []primitive.ObjectID `bson:"centres" json:"centres"`
	CreatedAt time.Time            `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time            `bson:"updatedAt" json:"updatedAt"`
}

// Deletable reports whether the zone may be removed.
func (z Zone) Deletable() bool {
	return len(z.Centres) == 0
}

// Board is an examination board (CBSE, ICSE, state boards).
type Board struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Name      string             `bson:"name" json:"name"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// Class is a school class/grade.
type Class struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	ClassName string             `bson:"className" json:"className"`
	Order     int                `bson:"order,omitempty" json:"order,omitempty"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// Course is an offered course with its fee.
type Course struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Name      string             `bson:"name" json:"name"`
	Fee       float64            `bson:"fee,omitempty" json:"fee,omitempty"`
	Duration  string             `bson:"duration,omitempty" json:"duration,omitempty"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// Subject is a taught subject.
type Subject struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Name      string             `bson:"name" json:"name"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// Batch is a scheduled cohort of a course at a centre.
type Batch struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Name      string             `bson:"name" json:"name"`
	CourseID  primitive.ObjectID `bson:"courseId,omitempty" json:"courseId,omitempty"`
	CentreID  primitive.ObjectID `bson:"centreId,omitempty" json:"centreId,omitempty"`
	StartDate *time.Time         `bson:"startDate,omitempty" json:"startDate,omitempty"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// Session is an academic session, e.g. "2025-26".
type Session struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Name      string             `bson:"name" json:"name"`
	StartDate *time.Time         `bson:"startDate,omitempty" json:"startDate,omitempty"`
	EndDate   *time.Time         `bson:"endDate,omitempty" json:"endDate,omitempty"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// Script is a telecaller call script.
type Script struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Title     string             `bson:"title" json:"title"`
	Body      string             `bson:"body" json:"body"`
	Audience  string             `bson:"audience,omitempty" json:"audience,omitempty"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// Source is a lead origin channel (walk-in, referral, online ad).
type Source struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Name      string             `bson:"name" json:"name"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// Coordinator is a class-coordinator profile.
type Coordinator struct {
	ID        primitive.ObjectID   `bson:"_id,omitempty" json:"_id,omitempty"`
	Name      string               `bson:"name" json:"name"`
	Email     string               `bson:"email,omitempty" json:"email,omitempty"`
	Phone     string               `bson:"phone,omitempty" json:"phone,omitempty"`
	Centres   []primitive.ObjectID `bson:"centres,omitempty" json:"centres,omitempty"`
	CreatedAt time.Time            `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time            `bson:"updatedAt" json:"updatedAt"`
}

// RM is a relationship-manager profile.
type RM struct {
	ID        primitive.ObjectID   `bson:"_id,omitempty" json:"_id,omitempty"`
	Name      string               `bson:"name" json:"name"`
	Email     string               `bson:"email,omitempty" json:"email,omitempty"`
	Phone     string               `bson:"phone,omitempty" json:"phone,omitempty"`
	Centres   []primitive.ObjectID `bson:"centres,omitempty" json:"centres,omitempty"`
	CreatedAt time.Time            `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time            `bson:"updatedAt" json:"updatedAt"`
}

// Admission is a converted lead with its fee record. It drives the revenue
// aggregates on the dashboard.
type Admission struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	LeadID        primitive.ObjectID `bson:"leadId,omitempty" json:"leadId,omitempty"`
	StudentName   string             `bson:"studentName" json:"studentName"`
	CourseID      primitive.ObjectID `bson:"courseId,omitempty" json:"courseId,omitempty"`
	CourseName    string             `bson:"courseName,omitempty" json:"courseName,omitempty"`
	CentreID      primitive.ObjectID `bson:"centreId,omitempty" json:"centreId,omitempty"`
	SessionID     primitive.ObjectID `bson:"sessionId,omitempty" json:"sessionId,omitempty"`
	TotalFee      float64            `bson:"totalFee" json:"totalFee"`
	AmountPaid    float64            `bson:"amountPaid" json:"amountPaid"`
	AdmissionDate time.Time          `bson:"admissionDate" json:"admissionDate"`
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time          `bson:"updatedAt" json:"updatedAt"`
}
