package fakebackend

import (
	"context"
	"errors"
	"net/http"
	"net/mail"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"taskflow/internal/domain"
)

// MinPasswordLength matches the signup rule enforced by the backend
const MinPasswordLength = 6

type contextKey string

const userIDKey contextKey = "user_id"

// Claims are carried by issued tokens
type Claims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var profile domain.Profile
	if !decodeJSON(w, r, &profile) {
		return
	}
	profile.Username = strings.TrimSpace(profile.Username)
	profile.Email = strings.TrimSpace(strings.ToLower(profile.Email))

	if profile.Username == "" || profile.Email == "" || profile.Password == "" {
		writeMessage(w, http.StatusBadRequest, "Please provide username, email and password")
		return
	}
	if _, err := mail.ParseAddress(profile.Email); err != nil {
		writeMessage(w, http.StatusBadRequest, "Please provide a valid email")
		return
	}
	if len(profile.Password) < MinPasswordLength {
		writeMessage(w, http.StatusBadRequest, "Password must be at least 6 characters")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(profile.Password), s.bcryptCost)
	if err != nil {
		writeMessage(w, http.StatusInternalServerError, "Server error")
		return
	}

	s.mu.Lock()
	if s.findAccountLocked(profile.Username) != nil || s.findAccountLocked(profile.Email) != nil {
		s.mu.Unlock()
		writeMessage(w, http.StatusBadRequest, "User already exists")
		return
	}
	acct := &account{
		user:         domain.User{ID: s.newID(), Username: profile.Username, Email: profile.Email},
		passwordHash: hash,
	}
	s.accounts[acct.user.ID] = acct
	s.mu.Unlock()

	s.respondWithToken(w, http.StatusCreated, acct.user)
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var creds domain.Credentials
	if !decodeJSON(w, r, &creds) {
		return
	}
	if strings.TrimSpace(creds.Identifier) == "" || creds.Password == "" {
		writeMessage(w, http.StatusBadRequest, "Please provide identifier and password")
		return
	}

	s.mu.Lock()
	acct := s.findAccountLocked(strings.TrimSpace(creds.Identifier))
	s.mu.Unlock()

	if acct == nil || bcrypt.CompareHashAndPassword(acct.passwordHash, []byte(creds.Password)) != nil {
		writeMessage(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	s.respondWithToken(w, http.StatusOK, acct.user)
}

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	acct, ok := s.accounts[userIDFrom(r.Context())]
	s.mu.Unlock()
	if !ok {
		writeMessage(w, http.StatusNotFound, "User not found")
		return
	}
	writeJSON(w, http.StatusOK, domain.MeResponse{User: acct.user})
}

// findAccountLocked matches a username or a case-insensitive email; s.mu must be held
func (s *Server) findAccountLocked(identifier string) *account {
	for _, acct := range s.accounts {
		if acct.user.Username == identifier || strings.EqualFold(acct.user.Email, identifier) {
			return acct
		}
	}
	return nil
}

func (s *Server) respondWithToken(w http.ResponseWriter, status int, user domain.User) {
	token, err := s.IssueToken(user)
	if err != nil {
		writeMessage(w, http.StatusInternalServerError, "Server error")
		return
	}
	writeJSON(w, status, domain.AuthResponse{User: user, Token: token})
}

// IssueToken signs an HS256 token for user
func (s *Server) IssueToken(user domain.User) (string, error) {
	now := s.now()
	claims := Claims{
		Username: user.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

func (s *Server) parseToken(raw string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(raw, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return s.secret, nil
	}, jwt.WithTimeFunc(s.now))
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}

func (s *Server) requireToken(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if header == "" {
			writeMessage(w, http.StatusUnauthorized, "No token, authorization denied")
			return
		}
		raw, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || raw == "" {
			writeMessage(w, http.StatusUnauthorized, "Invalid authorization header")
			return
		}

		claims, err := s.parseToken(raw)
		if err != nil {
			if errors.Is(err, jwt.ErrTokenExpired) {
				writeMessage(w, http.StatusUnauthorized, "Token has expired")
				return
			}
			writeMessage(w, http.StatusUnauthorized, "Token is not valid")
			return
		}

		ctx := context.WithValue(r.Context(), userIDKey, claims.Subject)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func userIDFrom(ctx context.Context) string {
	id, _ := ctx.Value(userIDKey).(string)
	return id
}
