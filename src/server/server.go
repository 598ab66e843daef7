package server

import (
	"fmt"
	"strconv"
	"strings"
	"sync"

	"lotus-ge/src/logger"
	"lotus-ge/src/models"

	"github.com/gin-gonic/gin"
)

// -----------------------------------------------------------------------------
// APIServer
// -----------------------------------------------------------------------------

type APIServer struct {
	Config *models.MConfig
	Logger *logger.Logger
	engine *gin.Engine

	// WebSocket clients
	clients    map[*Client]struct{}
	broadcast  chan *models.MExchangeMessage
	register   chan *Client
	unregister chan *Client

	// Local cache, refreshed after every cycle
	masterView  []models.MMasterRecord
	masterByID  map[int]models.MMasterRecord
	lastSummary models.MCycleSummary
	stateMutex  sync.RWMutex
}

// -----------------------------------------------------------------------------
// Constructor
// -----------------------------------------------------------------------------

func NewAPIServer(cfg *models.MConfig, appLogger *logger.Logger) *APIServer {
	if cfg.LogLevel != "DEBUG" {
		gin.SetMode(gin.ReleaseMode)
	}

	s := &APIServer{
		Config:  cfg,
		Logger:  appLogger,
		engine:  gin.Default(),
		clients: make(map[*Client]struct{}),
		// Buffered so a slow Hub consumer cannot stall a cycle
		broadcast:  make(chan *models.MExchangeMessage, 256),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		masterByID: make(map[int]models.MMasterRecord),
	}

	// CORS for local dashboards
	s.engine.Use(func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")
		if strings.HasPrefix(origin, "http://127.0.0.1:") || strings.HasPrefix(origin, "http://localhost:") {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		}
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	s.setupRoutes()
	return s
}

// -----------------------------------------------------------------------------
// Route Setup
// -----------------------------------------------------------------------------

func (s *APIServer) setupRoutes() {
	s.engine.GET("/api/health", s.getHealth)
	s.engine.GET("/api/summary", s.getSummary)
	s.engine.GET("/api/master", s.getMaster)
	s.engine.GET("/api/items/:id", s.getItem)
	s.engine.GET("/api/windows", s.getWindows)

	s.engine.GET("/ws", s.handleWebSocket)
}

// -----------------------------------------------------------------------------
// Server Lifecycle
// -----------------------------------------------------------------------------

func (s *APIServer) Start() error {
	addr := fmt.Sprintf("%s:%d", s.Config.Host, s.Config.Port)
	s.Logger.Info("starting server on %s", addr)

	go s.runHub()

	return s.engine.Run(addr)
}

// -----------------------------------------------------------------------------

func (s *APIServer) Stop() error {
	close(s.broadcast)
	close(s.register)
	close(s.unregister)
	return nil
}

// -----------------------------------------------------------------------------
// Route Handlers
// -----------------------------------------------------------------------------

func (s *APIServer) getHealth(c *gin.Context) {
	s.stateMutex.RLock()
	connections := len(s.clients)
	finished := s.lastSummary.FinishedAt
	items := len(s.masterView)
	s.stateMutex.RUnlock()

	c.JSON(200, gin.H{
		"status":      "ok",
		"connections": connections,
		"last_cycle":  finished,
		"items":       items,
	})
}

// -----------------------------------------------------------------------------

func (s *APIServer) getSummary(c *gin.Context) {
	s.stateMutex.RLock()
	defer s.stateMutex.RUnlock()

	c.JSON(200, s.lastSummary)
}

// -----------------------------------------------------------------------------

func (s *APIServer) getMaster(c *gin.Context) {
	s.stateMutex.RLock()
	defer s.stateMutex.RUnlock()

	c.JSON(200, s.masterView)
}

// -----------------------------------------------------------------------------

func (s *APIServer) getItem(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(400, gin.H{"error": "item id must be an integer"})
		return
	}

	s.stateMutex.RLock()
	record, ok := s.masterByID[id]
	s.stateMutex.RUnlock()

	if !ok {
		c.JSON(404, gin.H{"error": "unknown item"})
		return
	}
	c.JSON(200, record)
}

// -----------------------------------------------------------------------------

func (s *APIServer) getWindows(c *gin.Context) {
	c.JSON(200, gin.H{
		"windows": models.DefaultReportWindows(),
	})
}
