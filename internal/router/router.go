package router

import (
	"careertalk/internal/handlers"
	"careertalk/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.Engine) {
	// Handlers
	authHandler := handlers.NewAuthHandler()
	questionHandler := handlers.NewQuestionHandler()
	feedbackHandler := handlers.NewFeedbackHandler()
	voteHandler := handlers.NewVoteHandler()
	likeHandler := handlers.NewLikeHandler()
	trendingHandler := handlers.NewTrendingHandler()
	couponHandler := handlers.NewCouponHandler()
	journalHandler := handlers.NewJournalHandler()
	userHandler := handlers.NewUserHandler()

	// 공개 라우트 (Public Routes)
	r.GET("/questions", questionHandler.List)
	r.GET("/questions/trending", trendingHandler.List)
	r.GET("/questions/:qid", questionHandler.Detail)
	r.GET("/like", likeHandler.Status)
	r.GET("/users/:id", userHandler.Profile)

	r.POST("/signup", authHandler.Signup)
	r.POST("/login", authHandler.Login)
	r.POST("/logout", authHandler.Logout)
	r.POST("/auth/demo", authHandler.DemoLogin)
	r.GET("/auth/linkedin", authHandler.LinkedInLogin)
	r.GET("/auth/linkedin/callback", authHandler.LinkedInCallback)
	r.GET("/me", authHandler.Me)

	// 보호 라우트 (Protected Routes)
	authorized := r.Group("/")
	authorized.Use(middleware.AuthRequired())
	{
		authorized.POST("/vote", voteHandler.Toggle)
		authorized.POST("/like", likeHandler.Toggle)

		authorized.POST("/questions/create", questionHandler.Create)
		authorized.PUT("/questions/:qid", questionHandler.Update)
		authorized.DELETE("/questions/:qid", questionHandler.Delete)

		authorized.POST("/questions/:qid/feedbacks", feedbackHandler.Create)
		authorized.PUT("/feedbacks/:fid", feedbackHandler.Update)
		authorized.DELETE("/feedbacks/:fid", feedbackHandler.Delete)

		authorized.POST("/coupons/send", couponHandler.Send)
		authorized.GET("/coupons", couponHandler.History)

		authorized.GET("/journals", journalHandler.List)
		authorized.POST("/journals", journalHandler.Create)
		authorized.PUT("/journals/:id", journalHandler.Update)
		authorized.DELETE("/journals/:id", journalHandler.Delete)

		authorized.PUT("/profile", userHandler.UpdateProfile)
	}
}
