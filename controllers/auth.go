package controllers

import (
	"net/http"
	"strings"
	"time"

	"salon-wellness-backend/config"
	"salon-wellness-backend/utils"

	"github.com/gin-gonic/gin"
)

type LoginInput struct {
	StaffName string `json:"staffName" binding:"required"`
	Passcode  string `json:"passcode" binding:"required"`
}

// AuthController issues staff tokens against the shared salon passcode.
type AuthController struct {
	Auth  config.AuthConfig
	Staff []string
	Now   func() time.Time
}

func (ac *AuthController) Login(c *gin.Context) {
	var input LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input")
		return
	}

	staffName := strings.TrimSpace(input.StaffName)
	if !ac.knownStaff(staffName) || !utils.CheckPasscodeHash(input.Passcode, ac.Auth.PasscodeHash) {
		utils.RespondWithError(c, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	now := time.Now()
	if ac.Now != nil {
		now = ac.Now()
	}
	token, err := utils.GenerateToken(staffName, ac.Auth.JWTSecret, ac.Auth.ExpiryHours, now)
	if err != nil {
		c.Error(err)
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to generate token")
		return
	}

	c.SetCookie("token", token, ac.Auth.ExpiryHours*3600, "/", "", true, true)
	c.JSON(http.StatusOK, gin.H{
		"token":     token,
		"staffName": staffName,
	})
}

func (ac *AuthController) Me(c *gin.Context) {
	staffName, exists := c.Get("staffName")
	if !exists {
		utils.RespondWithError(c, http.StatusUnauthorized, "Staff not found in context")
		return
	}
	c.JSON(http.StatusOK, gin.H{"staffName": staffName})
}

func (ac *AuthController) knownStaff(name string) bool {
	if name == "" {
		return false
	}
	if len(ac.Staff) == 0 {
		return true
	}
	for _, s := range ac.Staff {
		if s == name {
			return true
		}
	}
	return false
}
