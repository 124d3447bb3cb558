package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/edusparsh/erp_backend/models"
	"github.com/edusparsh/erp_backend/repository"
	"github.com/edusparsh/erp_backend/utils"
)

// GetUserList lists users, optionally filtered by role.
func GetUserList(c *gin.Context) {
	filter := bson.M{}
	if role := c.Query("role"); role != "" {
		filter["role"] = role
	}

	ctx := repository.GetContext()
	findOptions := options.Find().SetSort(bson.M{"createdAt": -1})

	cursor, err := repository.Collection(repository.UsersCollection).Find(ctx, filter, findOptions)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	defer cursor.Close(ctx)

	var users []models.User
	if err := cursor.All(ctx, &users); err != nil {
		utils.HandleError(c, err)
		return
	}
	if users == nil {
		users = []models.User{}
	}

	utils.SuccessResponse(c, users, "")
}

// CreateUser creates a user account.
func CreateUser(c *gin.Context) {
	var req models.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.HandleError(c, utils.CreateValidationError(err.Error()))
		return
	}

	centres := make([]primitive.ObjectID, 0, len(req.Centres))
	for _, idStr := range req.Centres {
		id, err := primitive.ObjectIDFromHex(idStr)
		if err != nil {
			utils.HandleError(c, utils.CreateValidationError("invalid centre id: "+idStr))
			return
		}
		centres = append(centres, id)
	}

	now := time.Now()
	user := models.User{
		Name:      req.Name,
		Email:     req.Email,
		Password:  utils.HashPassword(req.Password),
		Phone:     req.Phone,
		Role:      req.Role,
		Centres:   centres,
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}

	ctx := repository.GetContext()
	result, err := repository.Collection(repository.UsersCollection).InsertOne(ctx, user)
	if err != nil {
		if repository.IsDuplicateKeyError(err) {
			utils.HandleError(c, utils.CreateConflictError("a user with this email already exists"))
			return
		}
		utils.HandleError(c, err)
		return
	}

	user.ID = result.InsertedID.(primitive.ObjectID)
	user.Password = ""
	utils.SuccessResponse(c, user, "user created", http.StatusCreated)
}

// GetUserDetail returns one user.
func GetUserDetail(c *gin.Context) {
	user, err := repository.FindUserByID(c.Param("id"))
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.SuccessResponse(c, user, "")
}

// UpdateUser edits a user account.
func UpdateUser(c *gin.Context) {
	objID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.HandleError(c, utils.CreateBadRequestError("invalid user id"))
		return
	}

	var req models.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.HandleError(c, utils.CreateValidationError(err.Error()))
		return
	}

	update := bson.M{"updatedAt": time.Now()}
	if req.Name != "" {
		update["name"] = req.Name
	}
	if req.Email != "" {
		update["email"] = req.Email
	}
	if req.Password != "" {
		update["password"] = utils.HashPassword(req.Password)
	}
	if req.Phone != "" {
		update["phone"] = req.Phone
	}
	if req.Role != "" {
		update["role"] = req.Role
	}
	if req.Centres != nil {
		centres := make([]primitive.ObjectID, 0, len(req.Centres))
		for _, idStr := range req.Centres {
			if id, err := primitive.ObjectIDFromHex(idStr); err == nil {
				centres = append(centres, id)
			}
		}
		update["centres"] = centres
	}
	if req.Permissions != nil {
		update["permissions"] = req.Permissions
	}
	if req.GranularPermissions != nil {
		update["granularPermissions"] = req.GranularPermissions
	}
	if req.Active != nil {
		update["active"] = *req.Active
	}

	ctx := repository.GetContext()
	result, err := repository.Collection(repository.UsersCollection).UpdateOne(
		ctx,
		bson.M{"_id": objID},
		bson.M{"$set": update},
	)
	if err != nil {
		if repository.IsDuplicateKeyError(err) {
			utils.HandleError(c, utils.CreateConflictError("a user with this email already exists"))
			return
		}
		utils.HandleError(c, err)
		return
	}
	if result.MatchedCount == 0 {
		utils.HandleError(c, utils.CreateNotFoundError("user"))
		return
	}

	utils.SuccessResponse(c, nil, "user updated")
}

// DeleteUser removes a user account.
func DeleteUser(c *gin.Context) {
	objID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.HandleError(c, utils.CreateBadRequestError("invalid user id"))
		return
	}

	ctx := repository.GetContext()
	result, err := repository.Collection(repository.UsersCollection).DeleteOne(ctx, bson.M{"_id": objID})
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	if result.DeletedCount == 0 {
		utils.HandleError(c, utils.CreateNotFoundError("user"))
		return
	}

	utils.SuccessResponse(c, nil, "user deleted")
}

// RaiseRedFlag increments a user's penalty counter, capped.
func RaiseRedFlag(c *gin.Context) {
	objID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.HandleError(c, utils.CreateBadRequestError("invalid user id"))
		return
	}

	ctx := repository.GetContext()
	result, err := repository.Collection(repository.UsersCollection).UpdateOne(
		ctx,
		bson.M{"_id": objID, "redFlags": bson.M{"$lt": models.MaxRedFlags}},
		bson.M{
			"$inc": bson.M{"redFlags": 1},
			"$set": bson.M{"updatedAt": time.Now()},
		},
	)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	if result.MatchedCount == 0 {
		// Either unknown user or already at the cap.
		user, err := repository.FindUserByID(c.Param("id"))
		if err != nil {
			utils.HandleError(c, err)
			return
		}
		utils.SuccessResponse(c, gin.H{"redFlags": user.RedFlags}, "red flag count already at maximum")
		return
	}

	utils.SuccessResponse(c, nil, "red flag raised")
}

// ResetRedFlags clears a user's penalty counter. Admin action.
func ResetRedFlags(c *gin.Context) {
	objID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.HandleError(c, utils.CreateBadRequestError("invalid user id"))
		return
	}

	ctx := repository.GetContext()
	result, err := repository.Collection(repository.UsersCollection).UpdateOne(
		ctx,
		bson.M{"_id": objID},
		bson.M{
			"$set": bson.M{"redFlags": 0, "updatedAt": time.Now()},
		},
	)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	if result.MatchedCount == 0 {
		utils.HandleError(c, utils.CreateNotFoundError("user"))
		return
	}

	utils.SuccessResponse(c, nil, "red flags reset")
}
