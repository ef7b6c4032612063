package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"lusotown-backend/internal/cache"
	"lusotown-backend/internal/database"
	domainrepo "lusotown-backend/internal/domain/repository"
	"lusotown-backend/internal/domain/service"
	"lusotown-backend/internal/handler"
	"lusotown-backend/internal/infrastructure/ai"
	infradb "lusotown-backend/internal/infrastructure/database"
	infrafs "lusotown-backend/internal/infrastructure/firestore"
	"lusotown-backend/internal/repository"
	"lusotown-backend/internal/usecase"
)

func main() {
	if err := godotenv.Load(); err != nil {
		fmt.Println("Warning: .env file not found, using system environment variables")
	}

	ctx := context.Background()

	fmt.Println("Initializing Supabase client...")
	supabaseClient, err := database.NewSupabaseClient()
	if err != nil {
		log.Fatalf("failed to initialize Supabase client: %v", err)
	}
	if err := supabaseClient.HealthCheck(); err != nil {
		log.Fatalf("Supabase health check failed: %v", err)
	}

	fmt.Println("Connecting to PostgreSQL...")
	pgClient, err := infradb.NewPostgreSQLClientWithRetry(3, 2*time.Second)
	if err != nil {
		log.Fatalf("failed to connect to PostgreSQL: %v", err)
	}
	defer pgClient.Close()

	// The slow-search archive is optional; without a GCP project the service
	// runs with telemetry only.
	var analyticsRepo domainrepo.SearchAnalyticsRepository
	if projectID := os.Getenv("GCP_PROJECT_ID"); projectID != "" {
		fsClient, err := infrafs.NewFirestoreClient(ctx, projectID)
		if err != nil {
			log.Printf("warning: Firestore unavailable, slow-search archive disabled: %v", err)
		} else {
			defer fsClient.Close()
			analyticsRepo = repository.NewFirestoreSearchAnalyticsRepository(fsClient.GetClient())
		}
	} else {
		log.Println("GCP_PROJECT_ID not set, slow-search archive disabled")
	}

	searchRepo := repository.NewPostgresBusinessSearchRepository(pgClient)
	storeRepo := repository.NewPostgresBusinessStoreRepository(pgClient)
	reviewRepo := repository.NewPostgresReviewRepository(pgClient)
	perfLogger := repository.NewPostgresPerformanceLogger(pgClient)
	storageRepo := repository.NewSupabaseStorageRepository(supabaseClient)
	eventsRepo := repository.NewSupabaseEventsRepository(supabaseClient)
	staticEvents := repository.NewStaticEventsRepository()
	voiceRepo := repository.NewSupabaseVoiceMessageRepository(supabaseClient)
	translator := ai.NewTranslationClient(os.Getenv("TRANSLATION_API_KEY"))

	directoryCache := cache.NewMemoryCache()

	directoryUsecase := usecase.NewBusinessDirectoryUsecase(
		searchRepo, storeRepo, reviewRepo, perfLogger, analyticsRepo, storageRepo, directoryCache,
	)
	eventsUsecase := usecase.NewEventsUsecase(eventsRepo, staticEvents)
	messagingUsecase := usecase.NewCommunityMessagingUsecase(voiceRepo, storageRepo, translator)
	riskScorer := service.NewRiskScoreService()

	directoryHandler := handler.NewBusinessDirectoryHandler(directoryUsecase)
	eventsHandler := handler.NewEventsHandler(eventsUsecase)
	messagingHandler := handler.NewMessagingHandler(messagingUsecase)
	riskHandler := handler.NewRiskAssessmentHandler(riskScorer)

	router := gin.Default()

	router.GET("/health", func(c *gin.Context) {
		if err := pgClient.HealthCheck(); err != nil {
			c.JSON(503, gin.H{"status": "unhealthy", "details": err.Error()})
			return
		}
		c.JSON(200, gin.H{"status": "healthy", "service": "lusotown-backend"})
	})

	api := router.Group("/api/v1")
	{
		businesses := api.Group("/businesses")
		{
			businesses.GET("", directoryHandler.GetBusinesses)
			businesses.GET("/search", directoryHandler.SearchBusinesses)
			businesses.GET("/nearby", directoryHandler.FindNearby)
			businesses.POST("/search/hybrid", directoryHandler.SearchHybrid)
			businesses.POST("/clusters", directoryHandler.GetClusters)
			businesses.GET("/featured", directoryHandler.GetFeatured)
			businesses.GET("/categories", directoryHandler.GetCategories)
			businesses.GET("/statistics", directoryHandler.GetStatistics)
			businesses.GET("/top-rated", directoryHandler.GetTopRated)
			businesses.GET("/neighborhood/:name", directoryHandler.GetByNeighborhood)
			businesses.GET("/:id", directoryHandler.GetBusiness)
			businesses.GET("/:id/reviews", directoryHandler.GetBusinessReviews)
		}

		events := api.Group("/events")
		{
			events.GET("/featured", eventsHandler.GetFeaturedEvents)
			events.GET("/upcoming", eventsHandler.GetUpcomingEvents)
		}

		api.POST("/risk-assessments/score", riskHandler.ScoreAssessment)
		api.POST("/messages/translate", messagingHandler.TranslateMessage)

		authed := api.Group("")
		authed.Use(handler.AuthMiddleware(supabaseClient))
		{
			authed.POST("/businesses", directoryHandler.RegisterBusiness)
			authed.PUT("/businesses/:id", directoryHandler.UpdateBusiness)
			authed.POST("/businesses/:id/reviews", directoryHandler.AddReview)
			authed.POST("/businesses/images", directoryHandler.UploadImage)
			authed.POST("/reviews/:id/helpful", directoryHandler.VoteHelpful)
			authed.GET("/me/reviews", directoryHandler.GetMyReviews)
			authed.POST("/messages/voice", messagingHandler.SendVoiceMessage)
		}
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	fmt.Printf("lusotown-backend server starting on :%s...\n", port)
	if err := router.Run(":" + port); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}
