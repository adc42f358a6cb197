package model

import "time"

// Restaurant describes a campus restaurant that serves food orders
// and accepts seat bookings.  The geo coordinates and theme fields
// exist purely for the client; they carry no behavioral weight on
// the server beyond filtering.
//
// Fields:
//  ID            – primary key identifier.
//  Name          – display name.
//  Description   – free-form description.
//  Area          – Dhaka area the restaurant is located in.
//  Address       – street address.
//  Phone         – contact phone number.
//  Latitude      – latitude of the restaurant.
//  Longitude     – longitude of the restaurant.
//  IsOpen        – whether the restaurant currently accepts orders.
//  OpeningTime   – daily opening time ("HH:MM:SS").
//  ClosingTime   – daily closing time ("HH:MM:SS").
//  AverageRating – mean review rating, recomputed on review creation.
//  TotalReviews  – number of reviews behind AverageRating.
//  HasPrivateRoom, HasSmokingZone, HasPrayerZone – feature flags.
//  Capacity      – total seating capacity.
//  Logo, ColorTheme, FontFamily, WallpaperURL – client theming.
//  Cuisines      – cuisine names offered, stored as a JSON array.
type Restaurant struct {
    ID             uint64    // restaurants.id
    Name           string    // restaurants.name
    Description    string    // restaurants.description
    Area           string    // restaurants.area
    Address        string    // restaurants.address
    Phone          string    // restaurants.phone
    Latitude       float64   // restaurants.latitude
    Longitude      float64   // restaurants.longitude
    IsOpen         bool      // restaurants.is_open
    OpeningTime    string    // restaurants.opening_time
    ClosingTime    string    // restaurants.closing_time
    AverageRating  float64   // restaurants.average_rating
    TotalReviews   uint32    // restaurants.total_reviews
    HasPrivateRoom bool      // restaurants.has_private_room
    HasSmokingZone bool      // restaurants.has_smoking_zone
    HasPrayerZone  bool      // restaurants.has_prayer_zone
    Capacity       uint32    // restaurants.capacity
    Logo           string    // restaurants.logo
    ColorTheme     string    // restaurants.color_theme
    FontFamily     string    // restaurants.font_family
    WallpaperURL   string    // restaurants.wallpaper_url
    Cuisines       []string  // restaurants.cuisines (JSON array)
    CreatedAt      time.Time // restaurants.created_at
}
