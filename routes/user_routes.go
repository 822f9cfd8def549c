package routes

import (
	"github.com/arvind-722/ProfitNest/controllers"
	"github.com/arvind-722/ProfitNest/middleware"
	"github.com/gin-gonic/gin"
)

// initUserRoutes initializes all user-facing routes
func initUserRoutes(router *gin.RouterGroup) {
	// Public routes (no authentication required)
	router.POST("/register", controllers.Register)
	router.POST("/verify-otp", controllers.VerifyOTP)
	router.POST("/resend-otp", controllers.ResendOTP)
	router.POST("/login", controllers.Login)
	router.POST("/logout", controllers.Logout)

	// Plan catalog is public so visitors can browse before signing up
	router.GET("/plans", controllers.GetActivePlans)

	// Protected routes (require authentication)
	protected := router.Group("/user")
	protected.Use(middleware.AuthMiddleware())
	{
		// Wallet
		protected.GET("/wallet", controllers.GetWalletBalance)
		protected.GET("/wallet/transactions", controllers.GetTransactionHistory)

		// Investments
		protected.GET("/investments", controllers.GetMyInvestments)
		protected.POST("/plans/:id/purchase", controllers.PurchaseWithWallet)

		// Payment requests (recharge or plan purchase paid off-platform)
		protected.POST("/payments", controllers.SubmitPaymentRequest)
		protected.GET("/payments", controllers.GetMyPaymentRequests)

		// Withdrawals
		protected.POST("/withdrawals", controllers.SubmitWithdrawal)
		protected.GET("/withdrawals", controllers.GetMyWithdrawals)

		// Referrals
		protected.GET("/referrals/summary", controllers.GetReferralSummary)
		protected.GET("/referrals", controllers.GetMyReferrals)
	}
}
