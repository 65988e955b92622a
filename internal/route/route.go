package route

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"pack/config"
	"pack/internal/class"
	"pack/internal/login"
	"pack/internal/logout"
	"pack/internal/me"
	"pack/internal/metrics"
	"pack/internal/middleware"
	"pack/internal/page"
	"pack/internal/register"
	"pack/internal/schoolwork"
	"pack/internal/session"
	"pack/internal/settings"
)

// Deps are the services the routes are built from.
type Deps struct {
	Sessions   session.Store
	Resolver   *session.Resolver
	Login      *login.Service
	Register   *register.RegisterService
	Settings   *settings.Service
	Classes    *class.ClassService
	Schoolwork *schoolwork.SchoolworkService
}

func initRoute(r *gin.Engine, conf *config.AppConfig, cookie session.CookieConfig, d Deps) {
	r.GET("/healthz", func(c *gin.Context) { c.String(http.StatusOK, "ok") })
	r.GET("/metrics", metrics.Handler())
	if conf.Server.Swagger {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group("/api")
	{
		login.RegisterRoutes(api, d.Login, cookie)
		register.RegisterRoutes(api, d.Register, cookie)
		logout.RegisterRoutes(api, d.Sessions, cookie)
		me.RegisterRoutes(api, d.Resolver)
		settings.RegisterRoutes(api, d.Settings, d.Resolver, cookie)
		class.RegisterRoutes(api, d.Classes, d.Resolver)
		schoolwork.RegisterRoutes(api, d.Schoolwork, d.Resolver)
	}

	page.RegisterRoutes(r, d.Resolver, conf.Gate.LoginPath)
}

func SetupRouter(conf *config.AppConfig, d Deps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger(), metrics.Middleware())

	// the frontend sends the session cookie cross-origin
	r.Use(cors.New(cors.Config{
		AllowOrigins:     conf.Server.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
		AllowCredentials: true,
	}))

	cookie := session.CookieConfig{
		Name:   conf.Session.CookieName,
		TTL:    conf.Session.TTL,
		Secure: conf.Session.Secure,
	}
	r.Use(middleware.Gate(d.Resolver, conf.Gate, cookie))

	initRoute(r, conf, cookie, d)

	return r
}
