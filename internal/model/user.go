package model

import "time"

// UserProfile is a registered customer.  Login is email based with no
// password; the profile is created on first login.  Reward points
// accumulate from paid orders at one point per 100 taka.
//
// Fields:
//  ID             – primary key identifier.
//  Email          – unique login email.
//  Name           – optional display name.
//  Phone          – optional phone number.
//  InstitutionID  – institution the user belongs to, if any.
//  PreferredAreas – area names the user prefers, stored as JSON.
//  RewardPoints   – accumulated reward points.
//  CreatedAt      – creation timestamp.
type UserProfile struct {
    ID             uint64    // user_profiles.id
    Email          string    // user_profiles.email
    Name           string    // user_profiles.name
    Phone          string    // user_profiles.phone
    InstitutionID  *uint64   // user_profiles.institution_id (nullable)
    PreferredAreas []string  // user_profiles.preferred_areas (JSON array)
    RewardPoints   int64     // user_profiles.reward_points
    CreatedAt      time.Time // user_profiles.created_at
}

// GuestSession identifies an anonymous visitor.  Guests can place
// orders and bookings but earn no reward points.
type GuestSession struct {
    ID        uint64    // guest_sessions.id
    SessionID string    // guest_sessions.session_id (uuid)
    Phone     string    // guest_sessions.phone
    Email     string    // guest_sessions.email
    CreatedAt time.Time // guest_sessions.created_at
}

// Institution is a university, medical college or college whose
// students use the platform.
type Institution struct {
    ID        uint64  // institutions.id
    Name      string  // institutions.name
    Type      string  // institutions.type (university|medical_college|college)
    Area      string  // institutions.area
    Latitude  float64 // institutions.latitude
    Longitude float64 // institutions.longitude
}
