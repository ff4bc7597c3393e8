// Package mockapi is an in-memory stand-in for the SimCar marketplace API.
// It serves the same routes and JSON shapes the client consumes and is used
// for local development and round-trip tests.
package mockapi

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/dmitrijs2005/simcar/internal/logging"
	"github.com/dmitrijs2005/simcar/internal/mockapi/store"
)

type Deps struct {
	Store   *store.Store
	Members *MemberService
	Logger  logging.Logger
	Now     func() time.Time
}

func NewRouter(deps Deps) *gin.Engine {
	if deps.Logger == nil {
		deps.Logger = logging.Discard()
	}
	if deps.Now == nil {
		deps.Now = time.Now
	}
	h := &handler{store: deps.Store, members: deps.Members, logger: deps.Logger, now: deps.Now}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(requestLogger(deps.Logger))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	r.GET("/images/*path", h.image)

	api := r.Group("/api")
	api.POST("/members/join", h.signup)
	api.POST("/members/login", h.login)
	api.GET("/cars", h.listCars)
	api.GET("/cars/:id", h.carDetail)
	api.GET("/cars/:id/diagnosis", h.diagnosis)

	protected := api.Group("")
	protected.Use(requireAuth(deps.Members))
	protected.GET("/members/profile", h.profile)
	protected.PUT("/members/profile", h.updateProfile)
	protected.DELETE("/members/profile", h.deleteProfile)
	protected.GET("/members/favorites", h.favorites)
	protected.GET("/members/sales", h.mySales)
	protected.POST("/cars", h.registerCar)
	protected.PUT("/cars/:id", h.updateCar)
	protected.DELETE("/cars/:id", h.deleteCar)
	protected.PUT("/cars/:id/thumbnail/:imageId", h.setThumbnail)
	protected.POST("/favorites/:id", h.addFavorite)
	protected.DELETE("/favorites/:id", h.removeFavorite)

	return r
}
