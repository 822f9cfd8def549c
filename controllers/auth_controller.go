package controllers

import (
	"time"

	"github.com/arvind-722/ProfitNest/config"
	"github.com/arvind-722/ProfitNest/models"
	"github.com/arvind-722/ProfitNest/utils"
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// RegisterRequest represents the user registration request
type RegisterRequest struct {
	Username        string `json:"username" binding:"required"`
	Email           string `json:"email" binding:"required,email"`
	Password        string `json:"password" binding:"required"`
	ConfirmPassword string `json:"confirm_password" binding:"required"`
	Phone           string `json:"phone"`
	ReferralCode    string `json:"referral_code"`
}

// LoginRequest represents the user login request
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// VerifyOTPRequest represents the OTP verification request
type VerifyOTPRequest struct {
	Email string `json:"email" binding:"required,email"`
	OTP   string `json:"otp" binding:"required"`
}

// Register creates a new unverified user, links the sponsor if a referral
// code was supplied, and emails an OTP
func Register(c *gin.Context) {
	utils.LogInfo("Register called")

	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError("Invalid registration request: %v", err)
		utils.BadRequest(c, "Invalid input", err.Error())
		return
	}

	if valid, msg := utils.ValidateUsername(req.Username); !valid {
		utils.BadRequest(c, "Invalid username", msg)
		return
	}
	if valid, msg := utils.ValidateEmail(req.Email); !valid {
		utils.BadRequest(c, "Invalid email", msg)
		return
	}
	if valid, msg := utils.ValidatePassword(req.Password); !valid {
		utils.BadRequest(c, "Invalid password", msg)
		return
	}
	if valid, msg := utils.ValidateConfirmPassword(req.Password, req.ConfirmPassword); !valid {
		utils.BadRequest(c, "Passwords do not match", msg)
		return
	}
	if valid, msg := utils.ValidatePhone(req.Phone); !valid {
		utils.BadRequest(c, "Invalid phone number", msg)
		return
	}

	// Check for existing username/email
	var existing models.User
	if err := config.DB.Where("username = ? OR email = ?", req.Username, req.Email).First(&existing).Error; err == nil {
		utils.LogError("Registration conflict for username %s / email %s", req.Username, req.Email)
		utils.Conflict(c, "Username or email already registered", nil)
		return
	}

	// Resolve the sponsor before creating anything; the sponsor link is
	// immutable, so a typo here must fail the whole registration
	var sponsorID *uint
	if req.ReferralCode != "" {
		var sponsor models.User
		if err := config.DB.Where("referral_code = ?", req.ReferralCode).First(&sponsor).Error; err != nil {
			utils.LogError("Unknown referral code %s", req.ReferralCode)
			utils.BadRequest(c, "Invalid referral code", nil)
			return
		}
		sponsorID = &sponsor.ID
		utils.LogDebug("Referral code %s resolved to sponsor %d", req.ReferralCode, sponsor.ID)
	}

	hashedPassword, err := utils.HashPassword(req.Password)
	if err != nil {
		utils.LogError("Failed to hash password: %v", err)
		utils.InternalServerError(c, "Failed to process registration", nil)
		return
	}

	otp := utils.GenerateOTP()
	user := models.User{
		Username:     req.Username,
		Email:        req.Email,
		Password:     hashedPassword,
		Phone:        req.Phone,
		OTP:          otp,
		OTPExpiresAt: time.Now().Add(10 * time.Minute),
		ReferralCode: newReferralCode(config.DB),
		SponsorID:    sponsorID,
	}

	if err := config.DB.Create(&user).Error; err != nil {
		utils.LogError("Failed to create user: %v", err)
		utils.InternalServerError(c, "Failed to create account", nil)
		return
	}
	utils.LogInfo("Created user %d (%s)", user.ID, user.Username)

	if err := utils.SendOTP(user.Email, otp); err != nil {
		utils.LogError("Failed to send OTP to %s: %v", user.Email, err)
	}

	// Remember who is mid-verification for OTP resend
	session := sessions.Default(c)
	session.Set("pending_user_id", user.ID)
	if err := session.Save(); err != nil {
		utils.LogError("Failed to save session: %v", err)
	}

	utils.Created(c, "Registration successful. Please verify the OTP sent to your email.", gin.H{
		"user": gin.H{
			"id":            user.ID,
			"username":      user.Username,
			"email":         user.Email,
			"referral_code": user.ReferralCode,
		},
	})
}

// newReferralCode generates a referral code not yet in use
func newReferralCode(db *gorm.DB) string {
	for {
		code := utils.GenerateReferralCode(utils.ReferralCodeLength)
		var count int64
		db.Model(&models.User{}).Where("referral_code = ?", code).Count(&count)
		if count == 0 {
			return code
		}
	}
}

// VerifyOTP marks a user verified if the supplied OTP matches and has not
// expired
func VerifyOTP(c *gin.Context) {
	utils.LogInfo("VerifyOTP called")

	var req VerifyOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError("Invalid OTP request: %v", err)
		utils.BadRequest(c, "Invalid input", err.Error())
		return
	}

	var user models.User
	if err := config.DB.Where("email = ?", req.Email).First(&user).Error; err != nil {
		utils.LogError("User not found for email %s", req.Email)
		utils.NotFound(c, "User not found")
		return
	}

	if user.IsVerified {
		utils.Success(c, "Account already verified", nil)
		return
	}

	if user.OTP != req.OTP {
		utils.LogError("OTP mismatch for user %d", user.ID)
		utils.BadRequest(c, "Invalid OTP", nil)
		return
	}
	if time.Now().After(user.OTPExpiresAt) {
		utils.LogError("Expired OTP for user %d", user.ID)
		utils.BadRequest(c, "OTP has expired, please request a new one", nil)
		return
	}

	if err := config.DB.Model(&user).Updates(map[string]interface{}{
		"is_verified": true,
		"otp":         "",
	}).Error; err != nil {
		utils.LogError("Failed to verify user %d: %v", user.ID, err)
		utils.InternalServerError(c, "Failed to verify account", nil)
		return
	}

	utils.LogInfo("User %d verified successfully", user.ID)
	utils.Success(c, "Account verified. You can now log in.", nil)
}

// ResendOTP re-issues a verification OTP for the pending registration
func ResendOTP(c *gin.Context) {
	utils.LogInfo("ResendOTP called")

	var req struct {
		Email string `json:"email"`
	}
	_ = c.ShouldBindJSON(&req)

	var user models.User
	if req.Email != "" {
		if err := config.DB.Where("email = ?", req.Email).First(&user).Error; err != nil {
			utils.NotFound(c, "User not found")
			return
		}
	} else {
		// Fall back to the registration session
		session := sessions.Default(c)
		pendingID, ok := session.Get("pending_user_id").(uint)
		if !ok {
			utils.BadRequest(c, "Email is required", nil)
			return
		}
		if err := config.DB.First(&user, pendingID).Error; err != nil {
			utils.NotFound(c, "User not found")
			return
		}
	}

	if user.IsVerified {
		utils.Success(c, "Account already verified", nil)
		return
	}

	otp := utils.GenerateOTP()
	if err := config.DB.Model(&user).Updates(map[string]interface{}{
		"otp":            otp,
		"otp_expires_at": time.Now().Add(10 * time.Minute),
	}).Error; err != nil {
		utils.LogError("Failed to refresh OTP for user %d: %v", user.ID, err)
		utils.InternalServerError(c, "Failed to resend OTP", nil)
		return
	}

	if err := utils.SendOTP(user.Email, otp); err != nil {
		utils.LogError("Failed to send OTP to %s: %v", user.Email, err)
		utils.InternalServerError(c, "Failed to send OTP email", nil)
		return
	}

	utils.Success(c, "A new OTP has been sent to your email", nil)
}

// Login authenticates a verified user and returns a JWT
func Login(c *gin.Context) {
	utils.LogInfo("Login called")

	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError("Invalid login request: %v", err)
		utils.BadRequest(c, "Invalid input", err.Error())
		return
	}

	var user models.User
	if err := config.DB.Where("email = ?", req.Email).First(&user).Error; err != nil {
		utils.LogError("Login failed, user not found: %s", req.Email)
		utils.Unauthorized(c, "Invalid credentials")
		return
	}

	if !utils.CheckPassword(req.Password, user.Password) {
		utils.LogError("Invalid password for user %d", user.ID)
		utils.Unauthorized(c, "Invalid credentials")
		return
	}

	if user.IsBlocked {
		utils.LogError("Blocked user attempted login: %d", user.ID)
		utils.Forbidden(c, "Account is blocked")
		return
	}

	if !user.IsVerified {
		utils.LogError("Unverified user attempted login: %d", user.ID)
		utils.Forbidden(c, "Please verify your email before logging in")
		return
	}

	token, err := utils.GenerateToken(&user)
	if err != nil {
		utils.LogError("Failed to generate token for user %d: %v", user.ID, err)
		utils.InternalServerError(c, "Failed to generate token", nil)
		return
	}

	// Update last login
	if err := config.DB.Model(&user).Update("last_login_at", time.Now()).Error; err != nil {
		utils.LogError("Failed to update last login for user %d: %v", user.ID, err)
	}

	utils.LogInfo("User %d logged in successfully", user.ID)
	utils.Success(c, "Login successful", gin.H{
		"token": token,
		"user": gin.H{
			"id":            user.ID,
			"username":      user.Username,
			"email":         user.Email,
			"referral_code": user.ReferralCode,
		},
	})
}

// Logout clears the session; JWTs simply expire
func Logout(c *gin.Context) {
	utils.LogInfo("Logout called")

	session := sessions.Default(c)
	session.Clear()
	if err := session.Save(); err != nil {
		utils.LogError("Failed to clear session: %v", err)
	}

	utils.Success(c, "Logged out successfully", nil)
}
