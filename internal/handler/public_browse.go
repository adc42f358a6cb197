package handler

import (
    "errors"
    "net/http"
    "strconv"
    "strings"
    "time"

    "github.com/labstack/echo/v4"

    "campus-table/internal/repository"
)

// BrowseHandler serves the public read-only endpoints: institutions,
// restaurant listing, restaurant detail, menus and seat availability.
// None of these endpoints require authentication and all of them are
// good candidates for the Redis response cache.
type BrowseHandler struct {
    Institutions *repository.InstitutionRepo
    Restaurants  *repository.RestaurantRepo
    Menus        *repository.MenuRepo
    Availability *repository.AvailabilityBuilder
}

func NewBrowseHandler(i *repository.InstitutionRepo, r *repository.RestaurantRepo, m *repository.MenuRepo, a *repository.AvailabilityBuilder) *BrowseHandler {
    if i == nil || r == nil || m == nil || a == nil {
        panic("nil repository passed to NewBrowseHandler")
    }
    return &BrowseHandler{Institutions: i, Restaurants: r, Menus: m, Availability: a}
}

// ListInstitutions handles GET /v1/institutions.  The optional search
// parameter matches against name and area.
func (h *BrowseHandler) ListInstitutions(c echo.Context) error {
    items, err := h.Institutions.List(c.Request().Context(), strings.TrimSpace(c.QueryParam("search")))
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load institutions"})
    }
    return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// ListRestaurants handles GET /v1/restaurants.  Only open restaurants
// are returned.  Supported filters: search (name or area substring),
// cuisine (exact cuisine name), has_private_room, has_smoking,
// has_prayer.  Location parameters sent by older clients are ignored.
func (h *BrowseHandler) ListRestaurants(c echo.Context) error {
    f := repository.RestaurantFilter{
        Search:         strings.TrimSpace(c.QueryParam("search")),
        Cuisine:        strings.TrimSpace(c.QueryParam("cuisine")),
        HasPrivateRoom: boolParam(c, "has_private_room"),
        HasSmokingZone: boolParam(c, "has_smoking"),
        HasPrayerZone:  boolParam(c, "has_prayer"),
    }
    items, err := h.Restaurants.ListOpen(c.Request().Context(), f)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load restaurants"})
    }
    return c.JSON(http.StatusOK, echo.Map{"items": items, "count": len(items)})
}

// GetRestaurant handles GET /v1/restaurants/:id.
func (h *BrowseHandler) GetRestaurant(c echo.Context) error {
    id, ok := pathID(c, "id")
    if !ok {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid restaurant id"})
    }
    rest, err := h.Restaurants.GetByID(c.Request().Context(), id)
    if err != nil {
        if errors.Is(err, repository.ErrRestaurantNotFound) {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "restaurant not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load restaurant"})
    }
    return c.JSON(http.StatusOK, echo.Map{"item": rest})
}

// GetMenu handles GET /v1/restaurants/:id/menu.  Items are filtered to
// currently available ones.  Optional filters: cuisine (pushed into the
// query) and category (applied over the result set, which is small).
func (h *BrowseHandler) GetMenu(c echo.Context) error {
    id, ok := pathID(c, "id")
    if !ok {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid restaurant id"})
    }
    ctx := c.Request().Context()
    if _, err := h.Restaurants.GetByID(ctx, id); err != nil {
        if errors.Is(err, repository.ErrRestaurantNotFound) {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "restaurant not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load restaurant"})
    }
    items, err := h.Menus.ListAvailable(ctx, id, strings.TrimSpace(c.QueryParam("cuisine")))
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load menu"})
    }
    if raw := c.QueryParam("category"); raw != "" {
        catID, err := strconv.ParseUint(raw, 10, 64)
        if err != nil {
            return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid category"})
        }
        filtered := items[:0]
        for _, it := range items {
            if it.CategoryID == catID {
                filtered = append(filtered, it)
            }
        }
        items = filtered
    }
    return c.JSON(http.StatusOK, echo.Map{"items": items, "count": len(items)})
}

// GetSeatAvailability handles GET /v1/restaurants/:id/seats.  The
// optional at parameter (RFC3339) defaults to the current time.  Each
// seat carries independent is_occupied and is_booked flags; seats are
// returned in primary key order.
func (h *BrowseHandler) GetSeatAvailability(c echo.Context) error {
    id, ok := pathID(c, "id")
    if !ok {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid restaurant id"})
    }
    at := time.Now().UTC()
    if raw := c.QueryParam("at"); raw != "" {
        parsed, err := time.Parse(time.RFC3339, raw)
        if err != nil {
            return c.JSON(http.StatusBadRequest, echo.Map{"error": "at must be RFC3339"})
        }
        at = parsed.UTC()
    }
    ctx := c.Request().Context()
    rest, err := h.Restaurants.GetByID(ctx, id)
    if err != nil {
        if errors.Is(err, repository.ErrRestaurantNotFound) {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "restaurant not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load restaurant"})
    }
    seats, err := h.Availability.Snapshot(ctx, id, at)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load availability"})
    }
    return c.JSON(http.StatusOK, echo.Map{
        "restaurant": echo.Map{"id": rest.ID, "name": rest.Name, "capacity": rest.Capacity},
        "seats":      seats,
        "layout": echo.Map{
            "color_theme":   rest.ColorTheme,
            "font_family":   rest.FontFamily,
            "wallpaper_url": rest.WallpaperURL,
        },
        "at": at.Format(time.RFC3339),
    })
}

// boolParam treats "true" and "1" as true, everything else as false.
func boolParam(c echo.Context, name string) bool {
    v := strings.ToLower(c.QueryParam(name))
    return v == "true" || v == "1"
}
