package service

import (
	"regexp"
	"time"

	"github.com/edusparsh/erp_backend/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// LeadQueryParams are the raw lead-list filters from the request.
type LeadQueryParams struct {
	Search      string
	FromDate    *time.Time
	ToDate      *time.Time
	CentreIDs   []primitive.ObjectID
	CourseID    primitive.ObjectID
	Telecallers []string
	LeadType    string
	// IncludeCounseled controls whether counseled leads appear. Default
	// listings exclude them.
	IncludeCounseled bool
	// CounseledOnly restricts to counseled leads when set.
	CounseledOnly bool
}

// CaseInsensitiveExact builds an anchored case-insensitive regex match.
// Stored telecaller names drifted in casing over the years, so exact string
// equality is not usable.
func CaseInsensitiveExact(name string) bson.M {
	return bson.M{"$regex": "^" + regexp.QuoteMeta(name) + "$", "$options": "i"}
}

// BuildLeadFilter composes the request filters and the access scope into a
// single query predicate.
func BuildLeadFilter(params LeadQueryParams, scope AccessScope) bson.M {
	if scope.NoAccess {
		return scope.Filter()
	}

	filter := bson.M{}

	if params.Search != "" {
		pattern := regexp.QuoteMeta(params.Search)
		filter["$or"] = []bson.M{
			{"name": bson.M{"$regex": pattern, "$options": "i"}},
			{"email": bson.M{"$regex": pattern, "$options": "i"}},
			{"phone": bson.M{"$regex": pattern, "$options": "i"}},
			{"school": bson.M{"$regex": pattern, "$options": "i"}},
		}
	}

	if dateRange := buildDateRange(params.FromDate, params.ToDate); dateRange != nil {
		filter["createdAt"] = dateRange
	}

	if centres := resolveCentres(params.CentreIDs, scope); centres != nil {
		filter["centreId"] = bson.M{"$in": centres}
	}

	if !params.CourseID.IsZero() {
		filter["courseId"] = params.CourseID
	}

	if scope.ResponsibilityEquals != "" {
		// A responsibility-scoped principal only ever sees their own leads,
		// so any requested telecaller filter is dropped.
		filter["leadResponsibility"] = CaseInsensitiveExact(scope.ResponsibilityEquals)
	} else {
		switch len(params.Telecallers) {
		case 0:
		case 1:
			filter["leadResponsibility"] = CaseInsensitiveExact(params.Telecallers[0])
		default:
			clauses := make([]bson.M, 0, len(params.Telecallers))
			for _, name := range params.Telecallers {
				clauses = append(clauses, bson.M{"leadResponsibility": CaseInsensitiveExact(name)})
			}
			filter["$and"] = append(asAndClauses(filter), bson.M{"$or": clauses})
		}
	}

	if params.LeadType != "" {
		filter["leadType"] = params.LeadType
	}

	if params.CounseledOnly {
		filter["isCounseled"] = true
	} else if !params.IncludeCounseled {
		// Active listings hide counseled leads.
		filter["isCounseled"] = bson.M{"$ne": true}
	}

	return filter
}

// buildDateRange builds the inclusive createdAt range. toDate is bumped to
// end of day so the last day is fully included.
func buildDateRange(from, to *time.Time) bson.M {
	if from == nil && to == nil {
		return nil
	}
	dateRange := bson.M{}
	if from != nil {
		dateRange["$gte"] = utils.StartOfDay(*from)
	}
	if to != nil {
		dateRange["$lte"] = utils.EndOfDay(*to)
	}
	return dateRange
}

// resolveCentres intersects an explicit centre filter with the scope's
// centre set. An empty intersection falls back to the full scope set; this
// mirrors the long-standing behavior the frontend depends on (an
// out-of-scope centre request shows the user's own data rather than an
// empty screen). Returns nil when no centre restriction applies at all.
func resolveCentres(requested []primitive.ObjectID, scope AccessScope) []primitive.ObjectID {
	if scope.Unrestricted {
		if len(requested) == 0 {
			return nil
		}
		return requested
	}

	if len(requested) == 0 {
		return scope.CentreIn
	}

	allowed := make(map[primitive.ObjectID]bool, len(scope.CentreIn))
	for _, id := range scope.CentreIn {
		allowed[id] = true
	}

	intersection := make([]primitive.ObjectID, 0, len(requested))
	for _, id := range requested {
		if allowed[id] {
			intersection = append(intersection, id)
		}
	}

	if len(intersection) == 0 {
		return scope.CentreIn
	}
	return intersection
}

// asAndClauses lifts any existing $and value so another clause can be
// appended without clobbering it.
func asAndClauses(filter bson.M) []bson.M {
	existing, ok := filter["$and"].([]bson.M)
	if !ok {
		return []bson.M{}
	}
	return existing
}
