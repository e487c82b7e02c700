package controllers

import (
	"context"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/gilanghuda/ecosync-backend/app/models"
	"github.com/gilanghuda/ecosync-backend/app/queries"
	"github.com/gilanghuda/ecosync-backend/pkg/database"
	"github.com/gilanghuda/ecosync-backend/pkg/utils"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var validate = validator.New()

func UserSignUp(c *fiber.Ctx) error {
	signUp := &models.SignUp{}
	if err := c.BodyParser(signUp); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if err := validate.Struct(signUp); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	if signUp.UserRole != utils.RoleVendor && len(signUp.WasteTypes) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Only vendors can declare waste types",
		})
	}

	profileQueries := queries.ProfileQueries{DB: database.DB}
	existing, err := profileQueries.GetProfileByEmail(signUp.Email)
	if err == nil {
		if !existing.Verified {
			otp, err := utils.GenerateOTP(4)
			if err != nil {
				return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to generate OTP"})
			}
			if err := profileQueries.UpdateOTPByEmail(signUp.Email, otp); err != nil {
				return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update OTP"})
			}
			if err := utils.SendOTPEmail(signUp.Email, otp); err != nil {
				return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to send OTP email"})
			}
			return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": "OTP resent to email"})
		}
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Email already registered"})
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(signUp.Password), bcrypt.DefaultCost)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to hash password"})
	}

	otp, err := utils.GenerateOTP(4)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to generate OTP"})
	}

	profile := &models.Profile{
		ID:           uuid.New(),
		Email:        signUp.Email,
		Name:         signUp.Name,
		PasswordHash: string(hashedPassword),
		UserRole:     signUp.UserRole,
		Contact:      signUp.Contact,
		Address:      signUp.Address,
		Verified:     false,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
		OTP:          otp,
	}

	wasteTypes := make([]models.VendorWasteType, 0, len(signUp.WasteTypes))
	for _, wt := range signUp.WasteTypes {
		rate := models.DefaultRatePerKg
		if wt.PricePerKg != nil {
			rate = *wt.PricePerKg
		}
		wasteTypes = append(wasteTypes, models.VendorWasteType{
			ID:         uuid.New(),
			VendorID:   profile.ID,
			WasteType:  wt.WasteType,
			PricePerKg: rate,
		})
	}

	if err := profileQueries.CreateProfile(profile, wasteTypes); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create profile"})
	}

	if err := utils.SendOTPEmail(signUp.Email, otp); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to send OTP email"})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "Account registered. OTP sent to email"})
}

func UserVerifyOTP(c *fiber.Ctx) error {
	payload := &models.VerifyOTP{}
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if err := validate.Struct(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	profileQueries := queries.ProfileQueries{DB: database.DB}
	if err := profileQueries.VerifyOTPByEmail(payload.Email, payload.OTP); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": "Account verified successfully"})
}

func UserSignIn(c *fiber.Ctx) error {
	signIn := &models.SignIn{}
	if err := c.BodyParser(signIn); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if err := validate.Struct(signIn); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	profileQueries := queries.ProfileQueries{DB: database.DB}
	profile, err := profileQueries.GetProfileByEmail(signIn.Email)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Invalid email or password",
		})
	}

	if !profile.Verified {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Account not verified. Please verify your account before signing in",
		})
	}

	if err := bcrypt.CompareHashAndPassword([]byte(profile.PasswordHash), []byte(signIn.Password)); err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Invalid email or password",
		})
	}

	return issueTokens(c, profile)
}

func UserSignInWithGoogle(c *fiber.Ctx) error {
	payload := struct {
		IDToken string `json:"id_token" validate:"required"`
	}{}
	if err := c.BodyParser(&payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if err := validate.Struct(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	ctx := context.Background()
	email, err := utils.ValidateGoogleIDToken(ctx, payload.IDToken)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": err.Error()})
	}

	profileQueries := queries.ProfileQueries{DB: database.DB}
	profile, err := profileQueries.GetProfileByEmail(email)
	if err != nil {
		// First sign-in through Google creates a citizen profile; vendors
		// must register through /signup to declare capabilities.
		name := strings.Split(email, "@")[0]
		p := &models.Profile{
			ID:           uuid.New(),
			Email:        email,
			Name:         name,
			PasswordHash: "",
			UserRole:     utils.RoleCitizen,
			Verified:     true,
			CreatedAt:    time.Now(),
			UpdatedAt:    time.Now(),
		}
		if err := profileQueries.CreateProfile(p, nil); err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create profile from Google account"})
		}
		profile = *p
	}

	return issueTokens(c, profile)
}

// issueTokens signs an access token plus a stored refresh token for the
// profile and writes the sign-in response.
func issueTokens(c *fiber.Ctx, profile models.Profile) error {
	accessEnv := os.Getenv("ACCESS_TOKEN_MINUTES")
	setAccessExp := false
	accessMinutes := 0
	if accessEnv != "" {
		if iv, err := strconv.Atoi(accessEnv); err == nil && iv > 0 {
			accessMinutes = iv
			setAccessExp = true
		}
	}

	refreshEnv := os.Getenv("REFRESH_TOKEN_HOURS")
	setRefreshExp := false
	refreshHours := 0
	if refreshEnv != "" {
		if iv, err := strconv.Atoi(refreshEnv); err == nil && iv > 0 {
			refreshHours = iv
			setRefreshExp = true
		}
	}

	secret := os.Getenv("JWT_SECRET")
	claims := jwt.MapClaims{
		"user_id":   profile.ID.String(),
		"email":     profile.Email,
		"user_role": profile.UserRole,
	}
	if setAccessExp {
		claims["exp"] = time.Now().Add(time.Duration(accessMinutes) * time.Minute).Unix()
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(secret))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to generate token",
		})
	}

	rtStr, err := utils.GenerateRandomToken(32)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to generate refresh token"})
	}

	var rtExpiresAt time.Time
	if setRefreshExp {
		rtExpiresAt = time.Now().Add(time.Duration(refreshHours) * time.Hour)
	}
	rt := &models.RefreshToken{
		ID:        uuid.New(),
		UserID:    profile.ID,
		Token:     rtStr,
		ExpiresAt: rtExpiresAt,
		Revoked:   false,
		CreatedAt: time.Now(),
	}
	rtQueries := queries.RefreshTokenQueries{DB: database.DB}
	if err := rtQueries.CreateRefreshToken(rt); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to store refresh token"})
	}

	var refreshExp interface{} = nil
	if setRefreshExp {
		refreshExp = rtExpiresAt
	}

	var expiresIn int
	if setAccessExp {
		expiresIn = accessMinutes * 60
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message":            "Sign in successful",
		"access_token":       tokenString,
		"expires_in":         expiresIn,
		"refresh_token":      rtStr,
		"refresh_expires_at": refreshExp,
		"user": fiber.Map{
			"id":        profile.ID,
			"email":     profile.Email,
			"user_role": profile.UserRole,
		},
	})
}

func RefreshToken(c *fiber.Ctx) error {
	payload := struct {
		RefreshToken string `json:"refresh_token" validate:"required"`
	}{}
	if err := c.BodyParser(&payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if err := validate.Struct(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	rtQueries := queries.RefreshTokenQueries{DB: database.DB}
	rt, err := rtQueries.GetRefreshTokenByToken(payload.RefreshToken)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid refresh token"})
	}

	if rt.Revoked || (!rt.ExpiresAt.IsZero() && time.Now().After(rt.ExpiresAt)) {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Refresh token expired or revoked"})
	}

	profileQueries := queries.ProfileQueries{DB: database.DB}
	profile, err := profileQueries.GetProfileByID(rt.UserID)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Profile not found"})
	}

	accessEnv := os.Getenv("ACCESS_TOKEN_MINUTES")
	setAccessExp := false
	accessMinutes := 0
	if accessEnv != "" {
		if iv, err := strconv.Atoi(accessEnv); err == nil && iv > 0 {
			accessMinutes = iv
			setAccessExp = true
		}
	}

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "JWT secret not set"})
	}

	claims := jwt.MapClaims{
		"user_id":   profile.ID.String(),
		"email":     profile.Email,
		"user_role": profile.UserRole,
	}
	if setAccessExp {
		claims["exp"] = time.Now().Add(time.Duration(accessMinutes) * time.Minute).Unix()
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(secret))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to generate access token"})
	}

	var expiresIn int
	if setAccessExp {
		expiresIn = accessMinutes * 60
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"access_token": tokenString, "expires_in": expiresIn})
}

func UserLogout(c *fiber.Ctx) error {
	identity, err := utils.ExtractIdentityFromHeader(c.Get("Authorization"))
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": err.Error()})
	}

	body := struct {
		RefreshToken string `json:"refresh_token"`
	}{}
	_ = c.BodyParser(&body)

	rtQueries := queries.RefreshTokenQueries{DB: database.DB}
	if body.RefreshToken != "" {
		if err := rtQueries.RevokeRefreshTokenByToken(body.RefreshToken); err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to revoke refresh token"})
		}
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": "Refresh token revoked"})
	}

	if err := rtQueries.RevokeRefreshTokensByUser(identity.UserID); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to revoke refresh tokens for user"})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": "Logged out"})
}
