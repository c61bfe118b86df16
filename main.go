package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/beka-birhanu/labyrinth-api/api"
	api_i "github.com/beka-birhanu/labyrinth-api/api/i"
	"github.com/beka-birhanu/labyrinth-api/api/identity"
	mazeapi "github.com/beka-birhanu/labyrinth-api/api/maze"
	"github.com/beka-birhanu/labyrinth-api/config"
	logger "github.com/beka-birhanu/labyrinth-api/infrastruture/log"
	"github.com/beka-birhanu/labyrinth-api/infrastruture/metrics"
	"github.com/beka-birhanu/labyrinth-api/infrastruture/render"
	"github.com/beka-birhanu/labyrinth-api/infrastruture/repo"
	"github.com/beka-birhanu/labyrinth-api/infrastruture/sessionstore"
	"github.com/beka-birhanu/labyrinth-api/infrastruture/sortedstorage"
	"github.com/beka-birhanu/labyrinth-api/infrastruture/token"
	"github.com/beka-birhanu/labyrinth-api/maze"
	"github.com/beka-birhanu/labyrinth-api/service"
	"github.com/beka-birhanu/labyrinth-api/service/i"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const renderCollection = "renders"

// Global variables for dependencies
var (
	appLogger          i.Logger
	redisClient        *redis.Client
	mongoClient        *mongo.Client
	renderIndex        i.SortedQueue
	renderRepo         i.RenderRepo
	sessionStore       i.SessionStore
	jwtTokenizer       i.Tokenizer
	metricsRecorder    *metrics.Recorder
	mazeSessionManager *service.MazeSessionManager
	renderService      i.RenderService
	mazeController     api_i.Controller
	router             *api.Router
)

func mustLogger(prefix, color string) i.Logger {
	l, err := logger.New(prefix, color, os.Stdout)
	if err != nil {
		fmt.Fprintf(os.Stderr, "creating %s logger: %v\n", prefix, err)
		os.Exit(1)
	}
	return l
}

// initRedis connects to the retention index. Without REDIS_ADDR images are never pruned.
func initRedis(ctx context.Context) {
	if config.Envs.RedisAddr == "" {
		appLogger.Warning("REDIS_ADDR not set, image retention disabled")
		return
	}

	client := redis.NewClient(&redis.Options{
		Addr:     config.Envs.RedisAddr,
		Password: config.Envs.RedisPassword,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		appLogger.Error(fmt.Sprintf("Redis ping failed: %v", err))
		os.Exit(1)
	}
	redisClient = client
	renderIndex = sortedstorage.NewRedisSortedQueue(redisClient, 0)
	appLogger.Info("Connected to Redis")
}

// initMongo connects to the render catalog. Without DB_HOST no history is kept.
func initMongo(ctx context.Context) {
	if config.Envs.DBHost == "" {
		appLogger.Warning("DB_HOST not set, render catalog disabled")
		return
	}

	uri := fmt.Sprintf("mongodb://%s:%v", config.Envs.DBHost, config.Envs.DBPort)
	if config.Envs.DBUser != "" {
		uri = fmt.Sprintf("mongodb://%s:%s@%s:%v", config.Envs.DBUser, config.Envs.DBPassword, config.Envs.DBHost, config.Envs.DBPort)
	}

	clientOptions := options.Client().ApplyURI(uri)
	var err error
	mongoClient, err = mongo.Connect(ctx, clientOptions)
	if err != nil {
		appLogger.Error(fmt.Sprintf("Failed to connect to MongoDB: %v", err))
		os.Exit(1)
	}
	if err = mongoClient.Ping(ctx, nil); err != nil {
		appLogger.Error(fmt.Sprintf("MongoDB ping failed: %v", err))
		os.Exit(1)
	}
	appLogger.Info("Connected to MongoDB")

	catalog := repo.NewRenderRepo(mongoClient, config.Envs.DBName, renderCollection)
	if err := catalog.EnsureIndexes(ctx); err != nil {
		appLogger.Warning(fmt.Sprintf("Creating render catalog indexes: %v", err))
	}
	renderRepo = catalog
	appLogger.Info("Render repository initialized")
}

// initSessionStore must run after initMetrics. The eviction callback runs under the
// store's lock and must not call back into the store.
func initSessionStore() {
	storeLogger := mustLogger("SESSION-STORE", config.ColorBlue)
	store, err := sessionstore.NewLRUStore(
		config.Envs.MaxSessions,
		time.Duration(config.Envs.SessionTTLSeconds)*time.Second,
		func(id uuid.UUID) {
			metricsRecorder.SessionEvicted()
			storeLogger.Info(fmt.Sprintf("session %s evicted", id))
		},
	)
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating session store: %v", err))
		os.Exit(1)
	}
	sessionStore = store
	appLogger.Info("Session store initialized")
}

func initJWTTokenizer() {
	jwtTokenizer = token.NewJwtService(config.Envs.JWTSecret, config.Envs.JWTIssuer)
	appLogger.Info("JWT Tokenizer initialized")
}

func initMetrics() {
	metricsRecorder = metrics.NewRecorder(prometheus.DefaultRegisterer)
	appLogger.Info("Metrics recorder initialized")
}

func initMazeSessionManager() {
	maxDimension := config.Envs.MaxMazeDimension
	var err error
	mazeSessionManager, err = service.NewMazeSessionManager(&service.Config{
		Store:     sessionStore,
		Tokenizer: jwtTokenizer,
		MazeFactory: func(height, width int) (*maze.Grid, error) {
			return maze.New(height, width, maze.WithMaxDimension(maxDimension))
		},
		SessionTTL: time.Duration(config.Envs.SessionTTLSeconds) * time.Second,
		Metrics:    metricsRecorder,
		Logger:     mustLogger("MAZE", config.ColorCyan),
	})
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating maze session manager: %v", err))
		os.Exit(1)
	}
	appLogger.Info("Maze session manager initialized")
}

func initRenderService() {
	var err error
	renderService, err = service.NewRenderService(&service.RenderConfig{
		Renderer:      render.NewPNGRenderer(),
		Repo:          renderRepo,
		Index:         renderIndex,
		Retention:     int64(config.Envs.ImageRetention),
		ThumbnailSize: uint(max(config.Envs.ThumbnailSize, 0)),
		Metrics:       metricsRecorder,
		Logger:        mustLogger("RENDER", config.ColorMagenta),
	})
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating render service: %v", err))
		os.Exit(1)
	}
	appLogger.Info("Render service initialized")
}

func initMazeController() {
	var err error
	mazeController, err = mazeapi.NewMazeController(mazeSessionManager, renderService)
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating maze controller: %v", err))
		os.Exit(1)
	}
	appLogger.Info("Maze controller initialized")
}

func initRouter(auth i.SessionAuthenticator) {
	gin.SetMode(config.Envs.GinMode)
	router = api.NewRouter(api.Config{
		Addr:                    fmt.Sprintf("%s:%v", config.Envs.HostIP, config.Envs.RESTPort),
		BaseURL:                 "/api",
		Controllers:             []api_i.Controller{mazeController},
		AuthorizationMiddleware: identity.Authoriz(auth),
		MetricsHandler:          promhttp.Handler(),
	})
	appLogger.Info("Router initialized")
}

func main() {
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	appLogger = mustLogger("APP", config.ColorGreen)

	initRedis(ctx)
	if redisClient != nil {
		defer redisClient.Close()
	}
	initMongo(ctx)
	if mongoClient != nil {
		defer func() {
			_ = mongoClient.Disconnect(context.Background())
		}()
	}

	initMetrics()
	initSessionStore()
	initJWTTokenizer()
	initMazeSessionManager()
	initRenderService()
	initMazeController()
	initRouter(mazeSessionManager)

	// Run HTTP server
	if err := router.Run(); err != nil {
		appLogger.Error(fmt.Sprintf("Starting server: %v", err))
		os.Exit(1)
	}
}
