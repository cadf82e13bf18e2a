package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes configures all application routes. Global middleware
// (request id, logging, recovery, CORS, rate limiting) is applied to the
// router by the caller before this runs.
func (h *Handlers) RegisterRoutes(router *gin.Engine) {
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "UP", "message": "Nexta backend is healthy."})
	})
	if h.objects != nil {
		router.GET("/objects/*ref", h.GetObject)
	}

	apiV1 := router.Group("/api/v1", h.auth.VerifyToken())
	{
		users := apiV1.Group("/users")
		{
			users.POST("/initialize", h.InitializeUser)
			users.GET("/me", h.GetCurrentUser)
		}

		apiV1.POST("/uploads", h.Upload)

		freelancer := apiV1.Group("/profiles/freelancer")
		{
			freelancer.POST("", h.CreateFreelancerProfile)
			freelancer.GET("/me", h.GetMyFreelancerProfile)
			freelancer.PUT("/me", h.UpdateFreelancerProfile)
			freelancer.GET("/me/resume", h.GetMyResume)
			freelancer.GET("/:userId", h.GetFreelancerProfile)
		}
		company := apiV1.Group("/profiles/company")
		{
			company.POST("", h.CreateCompanyProfile)
			company.GET("/me", h.GetMyCompanyProfile)
			company.PUT("/me", h.UpdateCompanyProfile)
			company.GET("/:userId", h.GetCompanyProfile)
		}

		jobs := apiV1.Group("/jobs")
		{
			jobs.GET("", h.ListJobs)
			jobs.GET("/mine", h.ListMyJobs)
			jobs.POST("", h.CreateJob)
			jobs.PUT("/:jobId", h.UpdateJob)
			jobs.DELETE("/:jobId", h.DeleteJob)
			jobs.POST("/:employerId/:jobId/apply", h.Apply)
		}

		applications := apiV1.Group("/applications")
		{
			applications.GET("/sent", h.ListSentApplications)
			applications.DELETE("/sent/:jobId", h.WithdrawApplication)
			applications.GET("/received", h.ListReceivedApplications)
			applications.POST("/received/:appId/decision", h.DecideApplication)
		}

		apiV1.GET("/people", h.ListPeople)
		apiV1.GET("/companies", h.ListCompanies)

		cart := apiV1.Group("/cart")
		{
			cart.GET("", h.ListCart)
			cart.PUT("/:candidateId", h.AddToCart)
			cart.DELETE("/:candidateId", h.RemoveFromCart)
		}
		apiV1.POST("/checkout", h.Checkout)
		apiV1.GET("/bookings", h.ListBookings)
		apiV1.GET("/booked-requests", h.ListBookedRequests)
		apiV1.POST("/booked-requests/:lineId/decision", h.DecideBookedRequest)

		apiV1.GET("/places/nearby", h.NearbyPlaces)
	}
}
