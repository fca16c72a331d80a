package server

import (
	"log/slog"
	"net/http"

	"github.com/dukerupert/notevault/internal/blob"
	"github.com/dukerupert/notevault/internal/config"
	"github.com/dukerupert/notevault/internal/handler"
	"github.com/dukerupert/notevault/internal/middleware"
	"github.com/dukerupert/notevault/internal/partition"
	"github.com/dukerupert/notevault/internal/store"
	ws "github.com/dukerupert/notevault/internal/websocket"
)

type Server struct {
	hub       *ws.Hub
	noteH     *handler.NoteHandler
	authH     *handler.AuthHandler
	userStore *store.UserStore
	jwtSecret []byte
	logger    *slog.Logger
}

func New(cfg config.Config, logger *slog.Logger) *Server {
	hub := ws.NewHub(logger.With("component", "websocket"))

	blobStore := blob.NewStore(blob.Config{
		Endpoint:  cfg.S3.Endpoint,
		Bucket:    cfg.S3.Bucket,
		Region:    cfg.AWS.Region,
		AccessKey: cfg.AWS.AccessKey,
		SecretKey: cfg.AWS.SecretKey,
	})
	resolver := partition.NewResolver(cfg.S3.NotesFolder)
	noteStore := store.NewNoteStore(blobStore, resolver, store.TimestampID{}, logger.With("component", "notes"))

	dynamo := store.NewDynamoClient(store.DynamoConfig{
		Endpoint:  cfg.Dynamo.Endpoint,
		Region:    cfg.AWS.Region,
		AccessKey: cfg.AWS.AccessKey,
		SecretKey: cfg.AWS.SecretKey,
	})
	userStore := store.NewUserStore(dynamo, cfg.Dynamo.Table, logger.With("component", "users"))

	secret := []byte(cfg.Auth.JWTSecret)

	return &Server{
		hub:       hub,
		noteH:     handler.NewNoteHandler(noteStore, hub, logger.With("component", "note")),
		authH:     handler.NewAuthHandler(userStore, secret, cfg.Auth.TokenTTL, logger.With("component", "auth")),
		userStore: userStore,
		jwtSecret: secret,
		logger:    logger,
	}
}

// UserStore returns the credential store for startup provisioning.
func (s *Server) UserStore() *store.UserStore {
	return s.userStore
}

func (s *Server) Router() http.Handler {
	outerMux := http.NewServeMux()

	// Public routes (no auth required)
	outerMux.HandleFunc("POST /api/register", s.authH.Register)
	outerMux.HandleFunc("POST /api/login", s.authH.Login)
	outerMux.HandleFunc("GET /health", s.healthHandler)

	// Protected routes — wrapped with RequireAuth middleware
	protectedMux := http.NewServeMux()
	protectedMux.HandleFunc("GET /api/notes", s.noteH.List)
	protectedMux.HandleFunc("POST /api/notes", s.noteH.Create)
	protectedMux.HandleFunc("PUT /api/notes/{id}", s.noteH.Update)
	protectedMux.HandleFunc("DELETE /api/notes/{id}", s.noteH.Delete)
	protectedMux.HandleFunc("GET /ws", ws.HandleWebSocket(s.hub, s.logger.With("component", "websocket")))

	authMiddleware := middleware.RequireAuth(s.jwtSecret)
	outerMux.Handle("/api/notes", authMiddleware(protectedMux))
	outerMux.Handle("/api/notes/", authMiddleware(protectedMux))
	outerMux.Handle("/ws", authMiddleware(protectedMux))

	return middleware.RequestLogger(s.logger.With("component", "http"))(outerMux)
}

func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}
