package controller

import (
	"errors"
	"log"
	"net/http"
	"os"
	"time"

	"nube-alta-cafe/models"
	"nube-alta-cafe/service"
)

// AdminAuthController handles the back-office login
type AdminAuthController struct {
	auth *service.AuthService
}

// NewAdminAuthController creates a new AdminAuthController
func NewAdminAuthController(auth *service.AuthService) *AdminAuthController {
	return &AdminAuthController{auth: auth}
}

func adminCookie(value string, expires time.Time, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     service.AdminCookieName,
		Value:    value,
		Path:     "/admin",
		Expires:  expires,
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   os.Getenv("ENV") == "production",
		SameSite: http.SameSiteStrictMode,
	}
}

// Login handles POST /admin/login
// Example: {"email": "admin@cafeorder.com", "password": "..."}
func (c *AdminAuthController) Login(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 Login: Received %s request to %s", r.Method, r.URL.Path)
	if !allowMethod(w, r, http.MethodPost, "Login") {
		return
	}

	var req models.LoginRequest
	if !decodeJSON(w, r, &req, "Login") {
		return
	}

	token, expires, err := c.auth.Login(req.Email, req.Password)
	if errors.Is(err, service.ErrAdminDisabled) {
		http.Error(w, "Admin access is not configured", http.StatusServiceUnavailable)
		return
	}
	if errors.Is(err, service.ErrInvalidCredentials) {
		http.Error(w, "Invalid email or password", http.StatusUnauthorized)
		return
	}
	if err != nil {
		log.Printf("❌ Login: %v", err)
		http.Error(w, "Failed to start session", http.StatusInternalServerError)
		return
	}

	http.SetCookie(w, adminCookie(token, expires, int(time.Until(expires).Seconds())))
	writeJSON(w, http.StatusOK, map[string]any{"email": req.Email, "expiresAt": expires}, "Login")
}

// Logout handles POST /admin/logout
func (c *AdminAuthController) Logout(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodPost, "Logout") {
		return
	}
	http.SetCookie(w, adminCookie("", time.Unix(0, 0), -1))
	w.WriteHeader(http.StatusNoContent)
}

// Me handles GET /admin/me
func (c *AdminAuthController) Me(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet, "Me") {
		return
	}
	email, _ := service.AdminFromContext(r.Context())
	writeJSON(w, http.StatusOK, map[string]string{"email": email}, "Me")
}
