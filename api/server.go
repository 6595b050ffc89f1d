package api

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/matt-g-everett/ledcat/event"
	"github.com/matt-g-everett/ledcat/stream"
)

// Widget reports the state of an animated widget.
type Widget interface {
	Status() stream.Status
}

// Activity is the device activity state the API reads and drives.
type Activity interface {
	State() event.ActivityState
	Set(state event.ActivityState)
	Touch()
}

// Response wraps every API reply.
type Response struct {
	Status string      `json:"status"`
	Data   interface{} `json:"data,omitempty"`
	Error  string      `json:"error,omitempty"`
}

// StatusData is returned by GET /status.
type StatusData struct {
	stream.Status
	Activity string `json:"activity"`
}

// ActivityRequest is the body of POST /activity.
type ActivityRequest struct {
	State string `json:"state" binding:"required"`
}

// Api serves widget status and accepts activity over HTTP.
type Api struct {
	listen   string
	engine   *gin.Engine
	widget   Widget
	activity Activity
}

// NewApi creates an Api for the configured listen address.
func NewApi(config stream.Config, widget Widget, activity Activity) *Api {
	a := new(Api)
	a.listen = config.API.Listen
	a.widget = widget
	a.activity = activity

	gin.SetMode(gin.ReleaseMode)
	a.engine = gin.New()
	a.engine.Use(gin.Recovery())
	a.engine.Use(cors.New(cors.Config{
		AllowOrigins: config.API.AllowOrigins,
		AllowMethods: []string{"GET", "POST", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Length", "Content-Type"},
		MaxAge:       12 * time.Hour,
	}))
	a.setupRoutes(a.engine)

	return a
}

func (a *Api) setupRoutes(r *gin.Engine) {
	r.GET("/status", a.handleGetStatus)
	r.POST("/activity", a.handleSetActivity)
	r.POST("/touch", a.handleTouch)
}

// Handler returns the HTTP handler for the API.
func (a *Api) Handler() http.Handler {
	return a.engine
}

// Serve listens until ctx is done, then shuts down gracefully.
func (a *Api) Serve(ctx context.Context) error {
	srv := &http.Server{Addr: a.listen, Handler: a.engine}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx)
	}()

	log.Printf("[Api] listening on %s", a.listen)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (a *Api) handleGetStatus(c *gin.Context) {
	c.JSON(http.StatusOK, Response{
		Status: "success",
		Data: StatusData{
			Status:   a.widget.Status(),
			Activity: a.activity.State().String(),
		},
	})
}

func (a *Api) handleSetActivity(c *gin.Context) {
	var req ActivityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, Response{Status: "error", Error: "invalid request: " + err.Error()})
		return
	}

	state, err := event.ParseActivityState(req.State)
	if err != nil {
		c.JSON(http.StatusBadRequest, Response{Status: "error", Error: err.Error()})
		return
	}

	a.activity.Set(state)
	c.JSON(http.StatusAccepted, Response{Status: "success", Data: gin.H{"activity": state.String()}})
}

func (a *Api) handleTouch(c *gin.Context) {
	a.activity.Touch()
	c.JSON(http.StatusAccepted, Response{Status: "success"})
}
