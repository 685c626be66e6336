package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barber-booking/internal/config"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

type AuthHandler struct {
	db     *gorm.DB
	config *config.Config
}

func NewAuthHandler(db *gorm.DB, cfg *config.Config) *AuthHandler {
	return &AuthHandler{db: db, config: cfg}
}

// --------- Requests ---------

type SignupRequest struct {
	BarberID uint   `json:"barber_id" binding:"required"`
	Username string `json:"username" binding:"required,min=3"`
	Password string `json:"password" binding:"required,min=6"`
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// --------- Handlers ---------

func (h *AuthHandler) Signup(c *gin.Context) {
	var req SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	var barber models.Barber
	if err := h.db.First(&barber, req.BarberID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "barber_not_found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal_error"})
		return
	}

	username := strings.ToLower(strings.TrimSpace(req.Username))

	var count int64
	h.db.Model(&models.UserAccount{}).Where("barber_id = ?", req.BarberID).Count(&count)
	if count > 0 {
		c.JSON(http.StatusConflict, gin.H{"error": "barber_already_registered"})
		return
	}

	h.db.Model(&models.UserAccount{}).Where("username = ?", username).Count(&count)
	if count > 0 {
		c.JSON(http.StatusConflict, gin.H{"error": "username_already_exists"})
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_hash_password"})
		return
	}

	account := models.UserAccount{
		BarberID:     req.BarberID,
		Username:     username,
		PasswordHash: string(hashed),
	}

	if err := h.db.Create(&account).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_create_account"})
		return
	}

	token, err := h.generateToken(&account)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_generate_token"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"account": gin.H{
			"id":        account.ID,
			"username":  account.Username,
			"barber_id": account.BarberID,
		},
		"barber": gin.H{
			"id":   barber.ID,
			"name": barber.Name,
		},
		"token": token,
	})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	username := strings.ToLower(strings.TrimSpace(req.Username))

	var account models.UserAccount
	if err := h.db.Preload("Barber").
		Where("username = ?", username).
		First(&account).Error; err != nil {

		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid_credentials"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal_error"})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(req.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid_credentials"})
		return
	}

	token, err := h.generateToken(&account)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_generate_token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"account": gin.H{
			"id":        account.ID,
			"username":  account.Username,
			"barber_id": account.BarberID,
		},
		"barber": gin.H{
			"id":   account.Barber.ID,
			"name": account.Barber.Name,
		},
		"token": token,
	})
}

// --------- JWT ---------

func (h *AuthHandler) generateToken(account *models.UserAccount) (string, error) {
	claims := jwt.MapClaims{
		"sub":      account.ID,
		"barberId": account.BarberID,
		"exp":      time.Now().Add(24 * time.Hour).Unix(),
		"iat":      time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(h.config.JWTSecret))
}
