package handler

import (
    "context"  // context with cancellation for DB calls
    "net/http" // HTTP status codes and primitives
    "strings"  // string manipulation utilities
    "time"     // timeouts for DB calls

    "github.com/google/uuid"      // session identifiers for guests
    "github.com/labstack/echo/v4" // Echo framework for HTTP routing

    "campus-table/internal/config"     // app configuration
    "campus-table/internal/repository" // DB repositories
    "campus-table/internal/utils"      // helper functions (hashing, token issuing)
)

// AuthHandler bundles dependencies for auth endpoints. Customer login is
// email based and creates the profile on first use; there is no customer
// password. Admin login checks the name against the configured principal
// list and the shared bcrypt password hash.
type AuthHandler struct {
    Cfg    config.Config
    Users  *repository.UserRepo
    Guests *repository.GuestRepo
}

func NewAuthHandler(cfg config.Config, u *repository.UserRepo, g *repository.GuestRepo) *AuthHandler {
    return &AuthHandler{Cfg: cfg, Users: u, Guests: g}
}

// ----- DTOs -----

type loginReq struct {
    Email string `json:"email"`
    Name  string `json:"name"`
}
type adminLoginReq struct {
    Name     string `json:"name"`
    Password string `json:"password"`
}

type tokenPart struct {
    Token   string    `json:"token"`
    Expires time.Time `json:"expires"`
}
type profilePart struct {
    ID           uint64 `json:"id"`
    Email        string `json:"email"`
    Name         string `json:"name"`
    RewardPoints int64  `json:"reward_points"`
    IsNew        bool   `json:"is_new"`
}

// Login handles POST /v1/auth/login. The profile is fetched or created
// by email, so a first login doubles as registration. Returns the
// profile with reward points and a CUSTOMER access token.
func (h *AuthHandler) Login(c echo.Context) error {
    var req loginReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
    }
    req.Email = strings.ToLower(strings.TrimSpace(req.Email))
    if req.Email == "" || !strings.Contains(req.Email, "@") {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "valid email required"})
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    u, created, err := h.Users.GetOrCreateByEmail(ctx, req.Email, strings.TrimSpace(req.Name))
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "login failed"})
    }

    access, err := utils.NewAccessToken(h.Cfg.JWTSecret, u.ID, "CUSTOMER", h.Cfg.AccessTTLMin)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "issue access failed"})
    }

    status := http.StatusOK
    if created {
        status = http.StatusCreated
    }
    return c.JSON(status, echo.Map{
        "user":   profilePart{ID: u.ID, Email: u.Email, Name: u.Name, RewardPoints: u.RewardPoints, IsNew: created},
        "access": tokenPart{Token: access.Token, Expires: access.Exp},
    })
}

// GuestSession handles POST /v1/auth/guest. It mints a fresh guest
// session backed by a random UUID. Guests can browse, book and order
// but earn no reward points.
func (h *AuthHandler) GuestSession(c echo.Context) error {
    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    g, err := h.Guests.Create(ctx, uuid.NewString())
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create guest session failed"})
    }
    return c.JSON(http.StatusCreated, echo.Map{
        "guest_id":   g.ID,
        "session_id": g.SessionID,
    })
}

// AdminLogin handles POST /v1/auth/admin. The name must match one of
// the configured principals (case-insensitive) and the password must
// verify against the shared bcrypt hash. On success an ADMIN access
// token is issued with the principal name as subject.
func (h *AuthHandler) AdminLogin(c echo.Context) error {
    var req adminLoginReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
    }
    name := strings.TrimSpace(req.Name)
    if name == "" || req.Password == "" {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "name/password required"})
    }
    if !h.Cfg.IsAdminName(name) || !utils.VerifyPassword(h.Cfg.AdminPasswordHash, req.Password) {
        // Same response for unknown name and wrong password.
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
    }

    access, err := utils.NewAccessToken(h.Cfg.JWTSecret, strings.ToLower(name), "ADMIN", h.Cfg.AccessTTLMin)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "issue access failed"})
    }
    return c.JSON(http.StatusOK, echo.Map{
        "access": tokenPart{Token: access.Token, Expires: access.Exp},
        "role":   "ADMIN",
    })
}
