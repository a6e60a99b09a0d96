package auth

import (
	"net/http"
	"os"

	"github.com/momentumapp/momentum-lambda/internal/config"
)

type Handler struct{}

func NewHandler() *Handler {
	return &Handler{}
}

func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	for _, name := range []string{"jwt", "refresh_token"} {
		http.SetCookie(w, &http.Cookie{
			Name:     name,
			Value:    "",
			Path:     "/",
			Domain:   os.Getenv("COOKIE_DOMAIN"),
			MaxAge:   -1,
			HttpOnly: true,
			Secure:   true,
			SameSite: http.SameSiteNoneMode,
		})
	}

	config.JSON(w, http.StatusOK, map[string]string{
		"message": "logout successful",
	})
}
