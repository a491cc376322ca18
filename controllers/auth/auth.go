package auth

import (
	"fmt"
	"os"
	"time"

	"transport-office/constants"
	"transport-office/logger"
	userModel "transport-office/models/user"
	"transport-office/types"
	"transport-office/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthController struct {
	DB             *gorm.DB
	loggerInstance *logger.AsyncLogger
}

func NewAuthController(db *gorm.DB, asyncLogger *logger.AsyncLogger) *AuthController {
	return &AuthController{DB: db, loggerInstance: asyncLogger}
}

// Helper function to log API requests and responses
func (h *AuthController) logAPIRequest(c *fiber.Ctx) {
	logEntry := utils.CreateSanitizedLogEntry(c)
	h.loggerInstance.Log(logEntry)
}

// Helper function to set secure cookies based on environment
func (h *AuthController) setSecureCookie(c *fiber.Ctx, name, value string, maxAge int) {
	isProduction := os.Getenv("APP_ENV") == "production"

	c.Cookie(&fiber.Cookie{
		Name:     name,
		Value:    value,
		HTTPOnly: true,
		Secure:   isProduction, // Only secure in production (HTTPS)
		SameSite: "Lax",
		MaxAge:   maxAge,
		Path:     "/",
	})
}

// userSummary strips the response down to what the client needs; the
// password hash never leaves the process.
func userSummary(u *userModel.User) map[string]interface{} {
	return map[string]interface{}{
		"id":         u.ID,
		"uuid":       u.Uuid,
		"username":   u.Username,
		"role":       u.Role,
		"created_at": u.CreatedAt,
	}
}

// Signup creates a staff account. The first account ever created becomes
// SUPER_ADMIN no matter what was requested; after that, SUPER_ADMIN cannot
// be requested at all.
func (h *AuthController) Signup(c *fiber.Ctx) error {
	var req types.SignupRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Error parsing request body", err)
		response := types.ErrorResponse{
			Message: fmt.Sprintf("Error parsing request body: %v", err),
			Status:  fiber.StatusBadRequest,
		}
		result := c.Status(fiber.StatusBadRequest).JSON(response)
		h.logAPIRequest(c)
		return result
	}

	if issues := req.Validate(); len(issues) > 0 {
		response := types.ErrorResponse{
			Message: "Validation failed",
			Status:  fiber.StatusBadRequest,
			Errors:  issues,
		}
		result := c.Status(fiber.StatusBadRequest).JSON(response)
		h.logAPIRequest(c)
		return result
	}

	var userCount int64
	if err := h.DB.Model(&userModel.User{}).Count(&userCount).Error; err != nil {
		logger.Error("Failed to count users", err)
		result := c.Status(fiber.StatusInternalServerError).JSON(types.ErrorResponse{
			Message: "Database error",
			Status:  fiber.StatusInternalServerError,
		})
		h.logAPIRequest(c)
		return result
	}

	role := req.Role
	if userCount == 0 {
		// Bootstrap account: always the highest role
		role = constants.RoleSuperAdmin
	} else {
		if role == constants.RoleSuperAdmin {
			result := c.Status(fiber.StatusForbidden).JSON(types.ErrorResponse{
				Message: "SUPER_ADMIN accounts cannot be requested",
				Status:  fiber.StatusForbidden,
			})
			h.logAPIRequest(c)
			return result
		}
		if role == "" {
			role = constants.RoleOperator
		}
	}

	var existing userModel.User
	if err := h.DB.Where("username = ?", req.Username).First(&existing).Error; err == nil {
		result := c.Status(fiber.StatusConflict).JSON(types.ErrorResponse{
			Message: "Username already taken",
			Status:  fiber.StatusConflict,
		})
		h.logAPIRequest(c)
		return result
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		logger.Error("Failed to hash password", err)
		result := c.Status(fiber.StatusInternalServerError).JSON(types.ErrorResponse{
			Message: "Failed to create user",
			Status:  fiber.StatusInternalServerError,
		})
		h.logAPIRequest(c)
		return result
	}

	newUser := userModel.User{
		Uuid:         uuid.NewString(),
		Username:     req.Username,
		PasswordHash: string(hash),
		Role:         role,
	}

	if err := h.DB.Create(&newUser).Error; err != nil {
		if utils.IsUniqueViolation(err) {
			result := c.Status(fiber.StatusConflict).JSON(types.ErrorResponse{
				Message: "Username already taken",
				Status:  fiber.StatusConflict,
			})
			h.logAPIRequest(c)
			return result
		}
		logger.Error("Failed to create user", err)
		result := c.Status(fiber.StatusInternalServerError).JSON(types.ErrorResponse{
			Message: "Failed to create user",
			Status:  fiber.StatusInternalServerError,
		})
		h.logAPIRequest(c)
		return result
	}

	logger.Success("User created successfully. Username: " + newUser.Username + ", Role: " + newUser.Role)
	result := c.Status(fiber.StatusCreated).JSON(types.ApiResponse{
		Message: "User created successfully",
		Status:  fiber.StatusCreated,
		Data:    userSummary(&newUser),
	})
	h.logAPIRequest(c)
	return result
}

// Login verifies the credentials and sets the session cookie. The cookie is
// session-scoped: no MaxAge, so it lasts until the browser closes.
func (h *AuthController) Login(c *fiber.Ctx) error {
	var req types.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Error parsing request body", err)
		result := c.Status(fiber.StatusBadRequest).JSON(types.ErrorResponse{
			Message: fmt.Sprintf("Error parsing request body: %v", err),
			Status:  fiber.StatusBadRequest,
		})
		h.logAPIRequest(c)
		return result
	}

	if issues := req.Validate(); len(issues) > 0 {
		result := c.Status(fiber.StatusBadRequest).JSON(types.ErrorResponse{
			Message: "Validation failed",
			Status:  fiber.StatusBadRequest,
			Errors:  issues,
		})
		h.logAPIRequest(c)
		return result
	}

	var account userModel.User
	if err := h.DB.Where("username = ?", req.Username).First(&account).Error; err != nil {
		result := c.Status(fiber.StatusUnauthorized).JSON(types.ErrorResponse{
			Message: "Invalid username or password",
			Status:  fiber.StatusUnauthorized,
		})
		h.logAPIRequest(c)
		return result
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(req.Password)); err != nil {
		result := c.Status(fiber.StatusUnauthorized).JSON(types.ErrorResponse{
			Message: "Invalid username or password",
			Status:  fiber.StatusUnauthorized,
		})
		h.logAPIRequest(c)
		return result
	}

	secret := os.Getenv("SESSION_SECRET")
	if secret == "" {
		logger.Error("SESSION_SECRET not configured", nil)
		result := c.Status(fiber.StatusInternalServerError).JSON(types.ErrorResponse{
			Message: "Login unavailable",
			Status:  fiber.StatusInternalServerError,
		})
		h.logAPIRequest(c)
		return result
	}

	claims := jwt.MapClaims{
		"uuid":     account.Uuid,
		"username": account.Username,
		"role":     account.Role,
		"iat":      time.Now().Unix(),
		"exp":      time.Now().Add(24 * time.Hour).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		logger.Error("Failed to sign session token", err)
		result := c.Status(fiber.StatusInternalServerError).JSON(types.ErrorResponse{
			Message: "Login unavailable",
			Status:  fiber.StatusInternalServerError,
		})
		h.logAPIRequest(c)
		return result
	}

	// MaxAge 0 leaves the attribute off the cookie: session-scoped
	h.setSecureCookie(c, constants.SessionCookieName, signed, 0)

	currentTime := time.Now().Format("2006-01-02 03:04:05 PM")
	logger.Success("User logged in successfully. uuid: " + account.Uuid + " at " + currentTime)

	result := c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Message: "Login successful",
		Status:  fiber.StatusOK,
		Data:    userSummary(&account),
	})
	h.logAPIRequest(c)
	return result
}

// Logout clears the session cookie with an immediate expiry.
func (h *AuthController) Logout(c *fiber.Ctx) error {
	h.setSecureCookie(c, constants.SessionCookieName, "", -1) // Expire immediately

	logger.Success("Logout successful")
	result := c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Message: "Logout successful",
		Status:  fiber.StatusOK,
		Data:    nil,
	})
	h.logAPIRequest(c)
	return result
}

// Profile returns the account behind the current session.
func (h *AuthController) Profile(c *fiber.Ctx) error {
	userUUID := utils.ClaimsUUID(c)
	if userUUID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(types.ErrorResponse{
			Message: "User UUID not found in token",
			Status:  fiber.StatusUnauthorized,
		})
	}

	account, err := utils.GetUserByUUID(userUUID)
	if err != nil {
		status := fiber.StatusInternalServerError
		msg := "Database error"
		if err.Error() == "user not found" {
			status = fiber.StatusUnauthorized
			msg = "User not found"
		}
		return c.Status(status).JSON(types.ErrorResponse{
			Message: msg,
			Status:  status,
		})
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Message: "Profile fetched successfully",
		Status:  fiber.StatusOK,
		Data:    userSummary(account),
	})
}
