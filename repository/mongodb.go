package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/edusparsh/erp_backend/models"
	"github.com/edusparsh/erp_backend/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const (
	UsersCollection        = "users"
	LeadsCollection        = "leads"
	CentresCollection      = "centres"
	ZonesCollection        = "zones"
	BoardsCollection       = "boards"
	ClassesCollection      = "classes"
	CoursesCollection      = "courses"
	SubjectsCollection     = "subjects"
	BatchesCollection      = "batches"
	SessionsCollection     = "sessions"
	ScriptsCollection      = "scripts"
	SourcesCollection      = "sources"
	CoordinatorsCollection = "coordinators"
	RMsCollection          = "rms"
	AdmissionsCollection   = "admissions"
)

var allCollections = []string{
	UsersCollection,
	LeadsCollection,
	CentresCollection,
	ZonesCollection,
	BoardsCollection,
	ClassesCollection,
	CoursesCollection,
	SubjectsCollection,
	BatchesCollection,
	SessionsCollection,
	ScriptsCollection,
	SourcesCollection,
	CoordinatorsCollection,
	RMsCollection,
	AdmissionsCollection,
}

var (
	client *mongo.Client
	db     *mongo.Database
	ctx    = context.Background()
)

// InitMongoDB initialises the MongoDB connection.
func InitMongoDB(uri, dbName string) error {
	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	var err error
	clientOptions := options.Client().ApplyURI(uri)
	client, err = mongo.Connect(connectCtx, clientOptions)
	if err != nil {
		return fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	pingCtx, pingCancel := context.WithTimeout(ctx, 5*time.Second)
	defer pingCancel()

	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		return fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	db = client.Database(dbName)
	utils.Logger.Info().Str("database", dbName).Msg("connected to MongoDB")

	return nil
}

// CloseMongoDB closes the MongoDB connection.
func CloseMongoDB() {
	if client != nil {
		if err := client.Disconnect(ctx); err != nil {
			utils.Logger.Error().Err(err).Msg("failed to disconnect MongoDB")
			return
		}
		utils.Logger.Info().Msg("disconnected from MongoDB")
	}
}

// GetContext returns the context used for MongoDB operations.
func GetContext() context.Context {
	return ctx
}

// Collection returns the named collection.
func Collection(name string) *mongo.Collection {
	return db.Collection(name)
}

// ExecuteDbOperation runs a database operation with retries for transient
// errors.
func ExecuteDbOperation(operation func() (interface{}, error), retries int) (interface{}, error) {
	if retries <= 0 {
		retries = 3
	}

	var lastErr error
	for i := 0; i < retries; i++ {
		result, err := operation()
		if err == nil {
			return result, nil
		}

		lastErr = err
		utils.Logger.Error().Err(err).Msgf("db operation failed, retry (%d/%d)", i+1, retries)

		if !isRetryableError(err) {
			break
		}

		time.Sleep(time.Duration(500*(i+1)) * time.Millisecond)
	}

	return nil, lastErr
}

// isRetryableError reports whether the error is worth retrying.
func isRetryableError(err error) bool {
	retryableCodes := map[int]bool{
		6:     true, // HostUnreachable
		7:     true, // HostNotFound
		89:    true, // NetworkTimeout
		91:    true, // ShutdownInProgress
		189:   true, // PrimarySteppedDown
		10107: true, // NotMaster
		13436: true, // NotMasterNoSlaveOk
		11600: true, // InterruptedAtShutdown
		11602: true, // InterruptedDueToReplStateChange
		10058: true, // ConnectionReset
	}

	if cmdErr, ok := err.(mongo.CommandError); ok {
		return retryableCodes[int(cmdErr.Code)]
	}

	return isNetworkError(err)
}

// isNetworkError checks for common network failures by message.
func isNetworkError(err error) bool {
	errMsg := strings.ToLower(err.Error())
	networkErrors := []string{
		"connection refused",
		"connection reset",
		"connection closed",
		"no reachable servers",
		"timeout",
		"context deadline exceeded",
		"server selection error",
	}

	for _, ne := range networkErrors {
		if strings.Contains(errMsg, ne) {
			return true
		}
	}

	return false
}

// InitializeCollections creates any missing collections.
func InitializeCollections() error {
	existing, err := db.ListCollectionNames(ctx, bson.M{})
	if err != nil {
		return fmt.Errorf("failed to list collections: %w", err)
	}

	existingSet := make(map[string]bool, len(existing))
	for _, name := range existing {
		existingSet[name] = true
	}

	for _, collName := range allCollections {
		if existingSet[collName] {
			continue
		}
		if err := db.CreateCollection(ctx, collName); err != nil {
			return fmt.Errorf("failed to create collection %s: %w", collName, err)
		}
		utils.Logger.Info().Str("collection", collName).Msg("collection created")
	}

	return nil
}

// EnsureIndexes creates the indexes the query paths depend on.
func EnsureIndexes() error {
	leadIndexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "centreId", Value: 1}, {Key: "createdAt", Value: -1}}},
		{Keys: bson.D{{Key: "leadResponsibility", Value: 1}}},
		{Keys: bson.D{{Key: "phone", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "nextFollowUpDate", Value: 1}}},
	}
	if _, err := db.Collection(LeadsCollection).Indexes().CreateMany(ctx, leadIndexes); err != nil {
		return fmt.Errorf("failed to create lead indexes: %w", err)
	}

	userIndexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
	}
	if _, err := db.Collection(UsersCollection).Indexes().CreateMany(ctx, userIndexes); err != nil {
		return fmt.Errorf("failed to create user indexes: %w", err)
	}

	return nil
}

// InitializeAdminAccount seeds the default superAdmin when none exists.
func InitializeAdminAccount() error {
	usersCollection := db.Collection(UsersCollection)

	count, err := usersCollection.CountDocuments(ctx, bson.M{"role": models.UserRoleSUPER_ADMIN})
	if err != nil {
		return fmt.Errorf("failed to check admin account: %w", err)
	}

	if count > 0 {
		utils.Logger.Info().Msg("superAdmin account exists, skipping seed")
		return nil
	}

	adminUser := models.User{
		Name:      "Administrator",
		Email:     "admin@edusparsh.com",
		Password:  utils.HashPassword("admin123"),
		Role:      models.UserRoleSUPER_ADMIN,
		Centres:   []primitive.ObjectID{},
		Active:    true,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	// Seeding runs while connections may still be settling, so retry.
	_, err = ExecuteDbOperation(func() (interface{}, error) {
		return usersCollection.InsertOne(ctx, adminUser)
	}, 3)
	if err != nil {
		return fmt.Errorf("failed to seed admin account: %w", err)
	}

	utils.Logger.Info().Msg("default superAdmin account created")
	return nil
}

// GetDatabaseStatus returns per-collection document counts.
func GetDatabaseStatus() (map[string]interface{}, error) {
	result := make(map[string]interface{})

	for _, collName := range allCollections {
		coll := db.Collection(collName)
		count, err := coll.CountDocuments(ctx, bson.M{})
		if err != nil {
			utils.Logger.Error().Err(err).Str("collection", collName).Msg("failed to count collection")
			result[collName] = map[string]interface{}{
				"count": 0,
				"error": err.Error(),
			}
			continue
		}
		result[collName] = map[string]interface{}{"count": count}
	}

	return result, nil
}

// FindUserByID loads a user row by hex id.
func FindUserByID(id string) (*models.User, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("invalid id format: %w", err)
	}

	var user models.User
	err = db.Collection(UsersCollection).FindOne(ctx, bson.M{"_id": objID}).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, utils.CreateNotFoundError("user")
		}
		return nil, err
	}

	return &user, nil
}

// IsDuplicateKeyError reports whether err is a unique-index violation.
func IsDuplicateKeyError(err error) bool {
	return mongo.IsDuplicateKeyError(err)
}
