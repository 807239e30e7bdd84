package admin

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	goopenai "github.com/sashabaranov/go-openai"
	"github.com/spf13/cobra"

	"github.com/basudev-labs/folio-assistant/internal/api/handlers"
	"github.com/basudev-labs/folio-assistant/internal/config"
	"github.com/basudev-labs/folio-assistant/internal/openai"
	"github.com/basudev-labs/folio-assistant/internal/server"
	"github.com/basudev-labs/folio-assistant/internal/service"
	"github.com/basudev-labs/folio-assistant/internal/storage"
	"github.com/basudev-labs/folio-assistant/internal/telemetry"
)

// ServeCmd returns the serve command
func ServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the API server",
		Long:  "Start the folio-assistant API server on the specified port",
		RunE:  runServe,
	}

	cmd.Flags().StringP("port", "p", "8080", "Port to listen on")
	cmd.Flags().Bool("warm", false, "Build the knowledge base before accepting requests")

	return cmd
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Initialize Sentry with tracing if SENTRY_DSN is set
	if dsn := os.Getenv("SENTRY_DSN"); dsn != "" {
		environment := os.Getenv("ENVIRONMENT")
		if environment == "" {
			environment = "development"
		}

		// Default to 10% sampling in production, 100% in development
		sampleRate := 0.1
		if environment == "development" {
			sampleRate = 1.0
		}

		shutdownTelemetry, err := telemetry.Init(telemetry.Config{
			DSN:              dsn,
			Environment:      environment,
			TracesSampleRate: sampleRate,
		})
		if err != nil {
			log.Printf("telemetry init failed (continuing without tracing): %v", err)
		} else {
			defer shutdownTelemetry()
		}
	}

	portFlag, _ := cmd.Flags().GetString("port")
	if portFlag != "" && portFlag != "8080" {
		cfg.Port = portFlag
	}

	if !cfg.HasOpenAI() {
		return fmt.Errorf("FOLIO_OPENAI_API_KEY not set")
	}

	aiClient := openai.NewClientWithConfig(openai.Config{
		APIKey:              cfg.OpenAIAPIKey,
		EmbeddingModel:      goopenai.EmbeddingModel(cfg.EmbeddingModel),
		EmbeddingDimensions: cfg.EmbeddingDimensions,
		ChatModel:           cfg.ChatModel,
		Timeout:             time.Duration(cfg.ProviderTimeoutSecs) * time.Second,
	})

	var source service.DocumentSource
	if cfg.HasS3() {
		s3Config := storage.S3ClientConfig{
			Endpoint:        cfg.S3Endpoint,
			Region:          cfg.S3Region,
			AccessKeyID:     cfg.S3AccessKey,
			SecretAccessKey: cfg.S3SecretKey,
			Bucket:          cfg.S3Bucket,
			Prefix:          cfg.S3Prefix,
			UsePathStyle:    true,
		}
		s3Client, err := storage.NewS3Client(ctx, s3Config)
		if err != nil {
			return fmt.Errorf("failed to create S3 client: %w", err)
		}
		log.Printf("loading knowledge base from s3 bucket '%s'", cfg.S3Bucket)
		source = &S3DocumentSource{client: s3Client}
	} else {
		log.Printf("loading knowledge base from directory '%s'", cfg.KnowledgeDir)
		source = service.NewDirSource(cfg.KnowledgeDir)
	}

	store := service.NewKnowledgeStoreWithConcurrency(source, aiClient, cfg.EmbedConcurrency)

	if warm, _ := cmd.Flags().GetBool("warm"); warm {
		warmCtx, cancel := context.WithTimeout(ctx, 5*time.Minute)
		err := store.EnsureReady(warmCtx)
		cancel()
		if err != nil {
			return fmt.Errorf("failed to warm knowledge base: %w", err)
		}
		log.Printf("knowledge base ready (%d chunks)", store.Len())
	}

	retrievalSvc := service.NewRetrievalService(store, aiClient)
	intentSvc := service.NewIntentService(aiClient)
	responderSvc := service.NewResponderService(retrievalSvc, aiClient)

	routerCfg := server.RouterConfig{
		ChatHandler:      handlers.NewChatHandler(intentSvc, responderSvc),
		KnowledgeHandler: handlers.NewKnowledgeHandler(store),
	}

	router := server.NewRouter(routerCfg)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		log.Printf("starting server on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	log.Println("server exited")
	return nil
}

// S3DocumentSource loads knowledge documents from an S3-compatible bucket.
type S3DocumentSource struct {
	client *storage.S3Client
}

func (s *S3DocumentSource) Load(ctx context.Context) ([]service.Document, error) {
	keys, err := s.client.ListMarkdownKeys(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list knowledge objects: %w", err)
	}

	docs := make([]service.Document, 0, len(keys))
	for _, key := range keys {
		content, err := s.client.GetObjectText(ctx, key)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch knowledge object %s: %w", key, err)
		}
		docs = append(docs, service.Document{
			Name:    s.client.DocumentName(key),
			Content: content,
		})
	}

	return docs, nil
}
