package routes

import (
	"github.com/arvind-722/ProfitNest/controllers"
	"github.com/arvind-722/ProfitNest/middleware"
	"github.com/gin-gonic/gin"
)

// initAdminRoutes initializes all admin-related routes
func initAdminRoutes(router *gin.RouterGroup) {
	admin := router.Group("/admin")
	{
		// Public admin routes
		admin.POST("/login", controllers.AdminLogin)
		admin.POST("/logout", controllers.AdminLogout)

		// Protected admin routes
		admin.Use(middleware.AdminAuthMiddleware())
		{
			// Dashboard and accrual
			admin.GET("/dashboard", controllers.GetDashboard)
			admin.POST("/accrual/sweep", controllers.TriggerAccrualSweep)

			// User management
			admin.GET("/users", controllers.GetUsers)
			admin.PATCH("/users/:id/block", controllers.BlockUser)
			admin.PATCH("/users/:id/unblock", controllers.UnblockUser)

			// Plan management
			admin.POST("/plans", controllers.CreatePlan)
			admin.GET("/plans", controllers.GetAllPlans)
			admin.PUT("/plans/:id", controllers.UpdatePlan)

			// Payment request review
			admin.GET("/payments", controllers.GetPaymentRequests)
			admin.PATCH("/payments/:id/approve", controllers.ApprovePaymentRequest)
			admin.PATCH("/payments/:id/reject", controllers.RejectPaymentRequest)

			// Withdrawal review
			admin.GET("/withdrawals", controllers.GetWithdrawals)
			admin.PATCH("/withdrawals/:id/approve", controllers.ApproveWithdrawal)
			admin.PATCH("/withdrawals/:id/reject", controllers.RejectWithdrawal)

			// Reports
			admin.GET("/reports/ledger/excel", controllers.DownloadLedgerReportExcel)
			admin.GET("/reports/ledger/pdf", controllers.DownloadLedgerReportPDF)
		}
	}
}
