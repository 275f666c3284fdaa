package api

import (
	authHandler "campaign-gateway/internal/auth/handler"
	campaignHandler "campaign-gateway/internal/campaign/handler"
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Pinger reports whether a backing service is reachable
type Pinger interface {
	Ping(ctx context.Context) error
}

type API struct {
	router          *gin.RouterGroup
	authHandler     authHandler.Handler
	campaignHandler campaignHandler.Handler
	gatherer        prometheus.Gatherer
	db              Pinger
}

func New(router *gin.RouterGroup, authHandler authHandler.Handler, campaignHandler campaignHandler.Handler, gatherer prometheus.Gatherer, db Pinger) API {
	return API{
		router:          router,
		authHandler:     authHandler,
		campaignHandler: campaignHandler,
		gatherer:        gatherer,
		db:              db,
	}
}

func (a *API) RegisterRoutes() {
	a.Health()
	a.router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(a.gatherer, promhttp.HandlerOpts{})))

	apiGroup := a.router.Group("/api")
	campaignGroup := apiGroup.Group("/campaigns", a.authHandler.HandleJWTMiddleware)
	{
		campaignGroup.POST("", a.campaignHandler.HandleCreateCampaign)
		campaignGroup.GET("", a.campaignHandler.HandleListCampaigns)
		campaignGroup.GET("/:campaign_id", a.campaignHandler.HandleGetCampaign)
		campaignGroup.POST("/:campaign_id/submit", a.campaignHandler.HandleSubmitCampaign)
		campaignGroup.POST("/:campaign_id/transitions", a.campaignHandler.HandleTransitionCampaign)
	}
}

func (a *API) Health() {
	a.router.GET("/health", func(c *gin.Context) {
		if a.db != nil {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()
			if err := a.db.Ping(ctx); err != nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{"message": "database unavailable"})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"message": "ok"})
	})
}
