package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/edusparsh/erp_backend/models"
	"github.com/edusparsh/erp_backend/repository"
	"github.com/edusparsh/erp_backend/utils"
)

// Login authenticates a user and issues a JWT.
func Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.HandleError(c, utils.CreateValidationError("email and password are required"))
		return
	}

	ctx := repository.GetContext()
	var user models.User
	err := repository.Collection(repository.UsersCollection).FindOne(ctx, bson.M{"email": req.Email}).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			utils.ErrorResponse(c, "invalid email or password", http.StatusUnauthorized)
			return
		}
		utils.HandleError(c, err)
		return
	}

	if !utils.VerifyPassword(req.Password, user.Password) {
		utils.Logger.Info().Str("email", req.Email).Msg("login failed: bad password")
		utils.ErrorResponse(c, "invalid email or password", http.StatusUnauthorized)
		return
	}

	if !user.Active {
		utils.ErrorResponse(c, "account disabled", http.StatusUnauthorized)
		return
	}

	token, err := utils.GenerateToken(&user)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.Logger.Info().Str("email", user.Email).Str("role", string(user.Role)).Msg("login ok")
	utils.SuccessResponse(c, models.LoginResponse{Token: token, User: &user}, "")
}

// GetProfile returns the authenticated user's own record.
func GetProfile(c *gin.Context) {
	principal, err := utils.GetPrincipal(c)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	user, err := repository.FindUserByID(principal.ID.Hex())
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.SuccessResponse(c, user, "")
}
