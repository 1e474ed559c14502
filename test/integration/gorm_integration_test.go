package integration

import (
	"context"
	"log"
	"os"
	"testing"

	"banking-rag-be/internal/entity"
	"banking-rag-be/internal/repository/specification"
	"banking-rag-be/internal/repository/unitofwork"
	"banking-rag-be/pkg/database"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGormConnection(t *testing.T) {
	// Load .env from root
	err := godotenv.Load("../../.env")
	if err != nil {
		log.Println("No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		t.Skip("Skipping integration test: DB_CONNECTION_STRING not set")
	}

	gormDB, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		t.Fatalf("Failed to connect to DB: %v", err)
	}

	uowFactory := unitofwork.NewRepositoryFactory(gormDB)
	uow := uowFactory.NewUnitOfWork(context.Background())

	assert.NotNil(t, uow.UserRepository())
	assert.NotNil(t, uow.ConversationRepository())
	assert.NotNil(t, uow.RegulatoryUpdateRepository())

	sqlDB, _ := gormDB.DB()
	err = sqlDB.Ping()
	assert.NoError(t, err)

	t.Run("Check User Repository", func(t *testing.T) {
		count, err := uow.UserRepository().Count(context.Background())
		assert.NoError(t, err)
		t.Logf("User count: %d", count)
	})

	t.Run("Check Updates Repository", func(t *testing.T) {
		count, err := uow.RegulatoryUpdateRepository().Count(context.Background())
		assert.NoError(t, err)
		t.Logf("Update count: %d", count)
	})

	t.Run("Transactional Conversation Rollback", func(t *testing.T) {
		ctx := context.Background()
		txUow := uowFactory.NewUnitOfWork(ctx)
		require.NoError(t, txUow.Begin(ctx))

		userId := uuid.New()
		user := &entity.User{
			Id:       userId,
			Email:    "test-integration-" + uuid.New().String() + "@example.com",
			FullName: "Integration Test User",
			Role:     entity.UserRoleViewer,
			Status:   entity.UserStatusActive,
		}
		require.NoError(t, txUow.UserRepository().Create(ctx, user))

		conv := &entity.Conversation{
			Id:     uuid.New(),
			UserId: userId,
			Title:  "Integration conversation",
		}
		require.NoError(t, txUow.ConversationRepository().Create(ctx, conv))

		require.NoError(t, txUow.Rollback())

		// Nothing must survive the rollback.
		found, err := uow.ConversationRepository().FindOne(ctx, specification.ByID{ID: conv.Id})
		assert.NoError(t, err)
		assert.Nil(t, found)
	})
}
