package httpserver

import (
	"encoding/base64"
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/delphine/shop/internal/store"
)

func (s *Server) apiLogin(w http.ResponseWriter, r *http.Request) {
	if !requirePost(w, r) {
		return
	}
	var in struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if !decode(w, r, &in) {
		return
	}
	u, err := s.identity.Login(r.Context(), in.Email, in.Password)
	if err != nil {
		writeErr(w, http.StatusUnauthorized, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "user": u})
}

func (s *Server) apiRegister(w http.ResponseWriter, r *http.Request) {
	if !requirePost(w, r) {
		return
	}
	var in store.RegisterInput
	if !decode(w, r, &in) {
		return
	}
	if in.Email == "" || in.Password == "" || in.Name == "" {
		writeErr(w, http.StatusUnprocessableEntity, "name, email and password are required")
		return
	}
	u, err := s.identity.Register(r.Context(), in)
	if err != nil {
		writeErr(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "user": u})
}

func (s *Server) apiLogout(w http.ResponseWriter, r *http.Request) {
	if !requirePost(w, r) {
		return
	}
	s.identity.Logout(r.Context())
	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

func (s *Server) apiMe(w http.ResponseWriter, r *http.Request) {
	u, ok := s.identity.Current()
	if !ok {
		writeJSON(w, http.StatusOK, map[string]any{"isAuthenticated": false})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"isAuthenticated": true, "user": u})
}

func (s *Server) apiProfile(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPut && r.Method != http.MethodPost {
		writeErr(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	var patch store.ProfilePatch
	if !decode(w, r, &patch) {
		return
	}
	u, err := s.identity.UpdateProfile(r.Context(), patch)
	if err != nil {
		writeErr(w, http.StatusUnauthorized, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "user": u})
}

func (s *Server) apiChangePassword(w http.ResponseWriter, r *http.Request) {
	if !requirePost(w, r) {
		return
	}
	var in struct {
		OldPassword string `json:"oldPassword"`
		NewPassword string `json:"newPassword"`
	}
	if !decode(w, r, &in) {
		return
	}
	if err := s.identity.ChangePassword(r.Context(), in.OldPassword, in.NewPassword); err != nil {
		writeErr(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

// --- Google sign-in ---

func (s *Server) handleGoogleLogin(w http.ResponseWriter, r *http.Request) {
	state := base64.RawURLEncoding.EncodeToString([]byte(uuid.NewString()))
	http.SetCookie(w, &http.Cookie{Name: "oauth_state", Value: state, Path: "/", MaxAge: 300, HttpOnly: true})
	http.Redirect(w, r, s.oauthCfg.AuthCodeURL(state), http.StatusFound)
}

func (s *Server) handleGoogleCallback(w http.ResponseWriter, r *http.Request) {
	c, err := r.Cookie("oauth_state")
	if err != nil || c.Value == "" || c.Value != r.URL.Query().Get("state") {
		http.Error(w, "invalid state", http.StatusBadRequest)
		return
	}
	tok, err := s.oauthCfg.Exchange(r.Context(), r.URL.Query().Get("code"))
	if err != nil {
		log.Warn().Err(err).Msg("oauth exchange")
		http.Error(w, "oauth exchange failed", http.StatusBadGateway)
		return
	}
	client := s.oauthCfg.Client(r.Context(), tok)
	resp, err := client.Get("https://www.googleapis.com/oauth2/v3/userinfo")
	if err != nil {
		http.Error(w, "userinfo failed", http.StatusBadGateway)
		return
	}
	defer resp.Body.Close()
	var info struct {
		Email string `json:"email"`
		Name  string `json:"name"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil || info.Email == "" {
		http.Error(w, "userinfo failed", http.StatusBadGateway)
		return
	}
	s.identity.LoginOAuth(r.Context(), info.Email, info.Name)
	http.Redirect(w, r, "/", http.StatusFound)
}
