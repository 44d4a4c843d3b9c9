package server

import (
	"ctchen222/tic-tac-toe-minimax/internal/api/controller"
	"ctchen222/tic-tac-toe-minimax/internal/api/response"
	"ctchen222/tic-tac-toe-minimax/internal/game"
	"ctchen222/tic-tac-toe-minimax/internal/hub"
	"ctchen222/tic-tac-toe-minimax/internal/hub/types"
	"ctchen222/tic-tac-toe-minimax/internal/player"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var tracer = otel.Tracer("server")

type Server struct {
	hub      *hub.Hub
	engine   *gin.Engine
	upgrader websocket.Upgrader
}

// NewServer builds the gin engine: the browser UI from webDir, the websocket
// endpoint and the analysis API.
func NewServer(h *hub.Hub, analysisController *controller.AnalysisController, webDir string) *Server {
	s := &Server{
		hub:    h,
		engine: gin.New(),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
	}

	s.engine.Use(gin.Recovery())
	s.engine.GET("/healthz", s.handleHealth)
	s.engine.GET("/ws", s.handleWebSocket)
	analysisController.RegisterRoutes(s.engine.Group("/api/v1"))
	s.engine.NoRoute(gin.WrapH(http.FileServer(http.Dir(webDir))))
	return s
}

// Engine returns the HTTP handler.
func (s *Server) Engine() *gin.Engine {
	return s.engine
}

func (s *Server) handleHealth(c *gin.Context) {
	response.SuccessResponse(c, gin.H{"rooms": s.hub.RoomCount()})
}

// handleWebSocket's only responsibility is to upgrade the connection and
// pass a registration request to the hub.
func (s *Server) handleWebSocket(c *gin.Context) {
	r := c.Request
	ctx, span := tracer.Start(r.Context(), "server.handleWebSocket", trace.WithAttributes(
		attribute.String("http.url", r.URL.String()),
		attribute.String("http.method", r.Method),
	))
	defer span.End()

	mode := game.Mode(c.DefaultQuery("mode", string(game.HumanVsHuman)))
	if !mode.Valid() {
		span.SetStatus(codes.Error, "Unknown game mode")
		response.ErrorResponse(c, http.StatusBadRequest, game.ErrUnknownMode.Error())
		return
	}

	conn, err := s.upgrader.Upgrade(c.Writer, r, nil)
	if err != nil {
		slog.WarnContext(ctx, "Failed to upgrade connection", "error", err)
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to upgrade connection")
		return
	}

	// Get playerID from URL, or generate a new one.
	playerID := c.Query("playerId")
	if playerID == "" {
		playerID = uuid.New().String()
	}
	span.SetAttributes(attribute.String("player.id", playerID), attribute.String("game.mode", string(mode)))

	s.hub.Register() <- &types.RegistrationRequest{
		Player: player.NewPlayer(playerID, conn),
		Mode:   mode,
		Ctx:    ctx, // Pass the context with the span
	}
}
