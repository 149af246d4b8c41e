package server

import (
	"encoding/json"
	"net/http"

	"geonest/internal/api/dto"
	"geonest/internal/auth"
	"geonest/internal/database"
	"geonest/internal/domain"
	"geonest/internal/support"
)

func checkLogin(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}

func registerUser(w http.ResponseWriter, r *http.Request) {
	var credentials dto.Credentials
	if err := json.NewDecoder(r.Body).Decode(&credentials); err != nil {
		writeError(w, "Invalid request", http.StatusBadRequest)
		return
	}

	user := domain.User{
		Email:    credentials.Email,
		Password: credentials.Password,
	}

	// Validate email format
	if !auth.IsValidEmail(user.Email) {
		writeError(w, "Invalid email format", http.StatusBadRequest)
		return
	}

	// Check if password is provided
	if len(user.Password) < 8 {
		writeError(w, "Password must be at least 8 characters long", http.StatusBadRequest)
		return
	}

	// Hash the password
	hashedPassword, err := support.HashPassword(user.Password)
	if err != nil {
		writeError(w, "Failed to hash password", http.StatusInternalServerError)
		return
	}
	user.Password = hashedPassword

	// Check if email already exists
	existing, err := database.GetUserByEmail(user.Email)
	if err != nil {
		writeError(w, "Failed to query database", http.StatusInternalServerError)
		return
	}
	if existing != nil {
		writeError(w, "Email already in use", http.StatusConflict)
		return
	}

	// The first account becomes the admin
	count, err := database.CountUsers()
	if err != nil {
		writeError(w, "Failed to query database", http.StatusInternalServerError)
		return
	}
	if count == 0 {
		user.Role = "admin"
	} else {
		user.Role = "user" // just to make sure
	}

	if err = database.CreateUser(&user); err != nil {
		writeError(w, "Failed to create user", http.StatusInternalServerError)
		return
	}

	token, err := auth.GenerateJWT(user.ID, user.Role)
	if err != nil {
		writeError(w, "Failed to generate token", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{"token": token})
}

func loginUser(w http.ResponseWriter, r *http.Request) {
	var credentials dto.Credentials
	if err := json.NewDecoder(r.Body).Decode(&credentials); err != nil {
		writeError(w, "Invalid request", http.StatusBadRequest)
		return
	}

	user, err := database.GetUserByEmail(credentials.Email)
	if err != nil || user == nil {
		writeError(w, "User not found", http.StatusUnauthorized)
		return
	}

	// Compare passwords
	if !support.CheckPasswordHash(credentials.Password, user.Password) {
		writeError(w, "Invalid password", http.StatusUnauthorized)
		return
	}

	// Generate token
	token, err := auth.GenerateJWT(user.ID, user.Role)
	if err != nil {
		writeError(w, "Failed to generate token", http.StatusInternalServerError)
		return
	}

	json.NewEncoder(w).Encode(map[string]string{"token": token, "role": user.Role})
}

func changePassword(w http.ResponseWriter, r *http.Request) {
	userID, userErr := auth.GetUserIDFromRequest(r)
	if userErr != nil {
		writeError(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var payload dto.ChangePassword
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, "Invalid request", http.StatusBadRequest)
		return
	}

	if len(payload.NewPassword) < 8 {
		writeError(w, "Password must be at least 8 characters long", http.StatusBadRequest)
		return
	}

	user := database.GetUserFromId(userID)
	if user.ID == 0 || !support.CheckPasswordHash(payload.OldPassword, user.Password) {
		writeError(w, "Invalid password", http.StatusUnauthorized)
		return
	}

	hashed, err := support.HashPassword(payload.NewPassword)
	if err != nil {
		writeError(w, "Failed to hash password", http.StatusInternalServerError)
		return
	}

	if err := database.ChangePassword(userID, hashed); err != nil {
		writeError(w, "Failed to update password", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Password updated"})
}
