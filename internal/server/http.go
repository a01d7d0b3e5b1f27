package server

import (
	"net/http"

	"github.com/bytedance/sonic"
	"github.com/gin-gonic/gin"

	"github.com/GriffinCanCode/AttachKit/internal/listener"
)

// enqueueRequest is the JSON trigger body. It is the out-of-band signal a
// local tool sends to make the target enqueue an attach request.
type enqueueRequest struct {
	Version     int      `json:"version" binding:"required"`
	Command     string   `json:"command"`
	Args        []string `json:"args"`
	ChannelName string   `json:"channel_name" binding:"required"`
}

// router builds the loopback diagnostics surface: Prometheus scrape, JSON
// status, command listing, and the enqueue trigger.
func (s *Server) router() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/metrics", gin.WrapH(s.metrics.Handler()))
	r.GET("/status", s.handleStatus)
	r.GET("/commands", s.handleCommands)
	r.POST("/enqueue", s.handleEnqueue)

	return r
}

func (s *Server) handleStatus(c *gin.Context) {
	s.metrics.UpdateUptime()

	stats := s.listener.Stats()
	body, err := sonic.Marshal(gin.H{
		"ready":    s.listener.IsReady(),
		"queue":    stats,
		"counters": s.metrics.GetSnapshot(),
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Data(http.StatusOK, "application/json", body)
}

func (s *Server) handleCommands(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"commands": s.registry.List()})
}

func (s *Server) handleEnqueue(c *gin.Context) {
	var req enqueueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var status listener.Status
	switch req.Version {
	case 1:
		args := make([]string, 3)
		copy(args, req.Args)
		status = s.listener.EnqueueV1(req.Command, args[0], args[1], args[2], req.ChannelName)
	case 2:
		status = s.listener.EnqueueV2(req.ChannelName)
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "unsupported version"})
		return
	}

	httpStatus := http.StatusOK
	if status != listener.StatusOK {
		httpStatus = http.StatusConflict
	}
	c.JSON(httpStatus, gin.H{
		"status":      int32(status),
		"status_text": status.String(),
	})
}
