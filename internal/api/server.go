package api

import (
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	swaggerfiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	"github.com/clubsync/orghub/docs"
	v1 "github.com/clubsync/orghub/internal/api/handler/v1"
	"github.com/clubsync/orghub/internal/api/middleware"
	"github.com/clubsync/orghub/internal/config"
	"github.com/clubsync/orghub/internal/repository"
	"github.com/clubsync/orghub/internal/repository/dao"
	"github.com/clubsync/orghub/internal/service"
)

type Server struct {
	Config *config.AppConfig
	Router *gin.Engine
}

func NewServer(conf *config.AppConfig, db *gorm.DB) *Server {
	gin.SetMode(conf.Gin.Mode)
	engine := gin.New()

	s := &Server{
		Config: conf,
		Router: engine,
	}

	s.MountMiddlewares()

	authSvc := s.initAuthService(db)
	authenticator := middleware.NewAuthenticator(s.Config.API, authSvc)

	authHandler := v1.NewAuthHandler(s.Config.API, authSvc)
	memberHandler := s.initMemberHandler(db)
	orgHandler := s.initOrganizationHandler(db)
	pointsHandler := s.initPointsHandler(db)
	contributionHandler := s.initContributionHandler(db)
	productHandler, orderHandler := s.initStoreHandlers(db)
	s.MountHandlers(authenticator, authHandler, memberHandler, orgHandler, pointsHandler, contributionHandler, productHandler, orderHandler)

	return s
}

func (s *Server) initAuthService(db *gorm.DB) *service.AuthService {
	memberRepo := repository.NewMemberRepository(dao.NewMemberDAO(db))
	tokenRepo := repository.NewTokenRepository(dao.NewTokenDAO(db))

	return service.NewAuthService(memberRepo, tokenRepo)
}

func (s *Server) initMemberHandler(db *gorm.DB) *v1.MemberHandler {
	memberRepo := repository.NewMemberRepository(dao.NewMemberDAO(db))
	orgRepo := repository.NewOrganizationRepository(dao.NewOrganizationDAO(db))
	svc := service.NewMemberService(memberRepo, orgRepo)

	return v1.NewMemberHandler(svc)
}

func (s *Server) initOrganizationHandler(db *gorm.DB) *v1.OrganizationHandler {
	repo := repository.NewOrganizationRepository(dao.NewOrganizationDAO(db))
	svc := service.NewOrganizationService(repo)

	return v1.NewOrganizationHandler(svc)
}

func (s *Server) initPointsHandler(db *gorm.DB) *v1.PointsHandler {
	orgRepo := repository.NewOrganizationRepository(dao.NewOrganizationDAO(db))
	memberRepo := repository.NewMemberRepository(dao.NewMemberDAO(db))
	pointsRepo := repository.NewPointsRepository(dao.NewPointsDAO(db))
	svc := service.NewPointsService(orgRepo, memberRepo, pointsRepo)

	return v1.NewPointsHandler(svc)
}

func (s *Server) initContributionHandler(db *gorm.DB) *v1.ContributionHandler {
	repo := repository.NewContributionRepository(dao.NewContributionDAO(db))
	orgRepo := repository.NewOrganizationRepository(dao.NewOrganizationDAO(db))
	svc := service.NewContributionService(repo, orgRepo)

	return v1.NewContributionHandler(svc)
}

func (s *Server) initStoreHandlers(db *gorm.DB) (*v1.ProductHandler, *v1.OrderHandler) {
	repo := repository.NewStoreRepository(dao.NewStoreDAO(db))
	orgRepo := repository.NewOrganizationRepository(dao.NewOrganizationDAO(db))
	svc := service.NewStoreService(repo, orgRepo)

	return v1.NewProductHandler(svc), v1.NewOrderHandler(svc)
}

func (s *Server) MountMiddlewares() {
	// Logger and Recovery are needed unless we use gin.Default().
	s.Router.Use(gin.Logger())
	s.Router.Use(gin.Recovery())
	s.Router.Use(requestid.New())
	s.Router.Use(middleware.ConfigCORS(s.Config.API.AllowedCORSDomains))
}

func (s *Server) MountHandlers(
	authenticator *middleware.Authenticator,
	authHandler *v1.AuthHandler,
	memberHandler *v1.MemberHandler,
	orgHandler *v1.OrganizationHandler,
	pointsHandler *v1.PointsHandler,
	contributionHandler *v1.ContributionHandler,
	productHandler *v1.ProductHandler,
	orderHandler *v1.OrderHandler,
) {
	const basePath = "/api/v1"

	auth := s.Router.Group(basePath)
	{
		auth.POST("/auth/signup", authHandler.HandleSignup)
		auth.POST("/auth/login", authHandler.HandleLogin)
		auth.POST("/auth/refresh", authHandler.HandleRefresh)
	}

	// Product reads and the leaderboard are public; the leaderboard
	// reveals emails only when a valid token happens to be present.
	public := s.Router.Group(basePath)
	{
		public.GET("/:orgPrefix/products", productHandler.HandleListProducts)
		public.GET("/:orgPrefix/products/:productID", productHandler.HandleGetProduct)
		public.GET("/:orgPrefix/points/leaderboard", authenticator.AuthenticateOptional(), pointsHandler.HandleLeaderboard)
	}

	protected := s.Router.Group(basePath, authenticator.Authenticate())
	{
		protected.GET("/organizations", orgHandler.HandleListOrganizations)
		protected.GET("/organizations/:orgID", orgHandler.HandleGetOrganization)
		protected.POST("/organizations", orgHandler.HandleCreateOrganization)
		protected.PUT("/organizations/:orgID", orgHandler.HandleUpdateOrganization)
		protected.DELETE("/organizations/:orgID", orgHandler.HandleDeleteOrganization)

		protected.GET("/members/me", memberHandler.HandleGetSelf)
		protected.GET("/:orgPrefix/members", memberHandler.HandleListMembers)
		protected.POST("/:orgPrefix/members", memberHandler.HandleEnrollMember)

		protected.GET("/:orgPrefix/members/points", pointsHandler.HandleGetMemberPoints)
		protected.POST("/:orgPrefix/points/transactions", pointsHandler.HandleAwardPoints)
		protected.DELETE("/:orgPrefix/points/transactions/:transactionID", pointsHandler.HandleDeleteTransaction)

		protected.GET("/ocp/officer-points", contributionHandler.HandleGetOfficerPoints)
		protected.POST("/ocp/contribution", contributionHandler.HandleAddContribution)
		protected.PUT("/ocp/contribution/:contributionID", contributionHandler.HandleUpdateContribution)
		protected.DELETE("/ocp/contribution/:contributionID", contributionHandler.HandleDeleteContribution)

		protected.POST("/:orgPrefix/products", productHandler.HandleCreateProduct)
		protected.PUT("/:orgPrefix/products/:productID", productHandler.HandleUpdateProduct)
		protected.DELETE("/:orgPrefix/products/:productID", productHandler.HandleDeleteProduct)

		protected.GET("/:orgPrefix/orders", orderHandler.HandleListOrders)
		protected.GET("/:orgPrefix/orders/:orderID", orderHandler.HandleGetOrder)
		protected.POST("/:orgPrefix/orders", orderHandler.HandleCreateOrder)
		protected.PUT("/:orgPrefix/orders/:orderID/status", orderHandler.HandleUpdateOrderStatus)
		protected.DELETE("/:orgPrefix/orders/:orderID", orderHandler.HandleDeleteOrder)
	}

	s.Router.GET("/", v1.HandleHealthcheck)

	// Setup Swagger UI.
	docs.SwaggerInfo.Host = s.Config.API.BaseURL
	docs.SwaggerInfo.BasePath = basePath
	docs.SwaggerInfo.Title = "orghub API"
	docs.SwaggerInfo.Description = "Membership, points and storefront API for student organizations."
	docs.SwaggerInfo.Version = "1.0"
	s.Router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerfiles.Handler))
}
