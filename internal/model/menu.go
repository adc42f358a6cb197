package model

import "time"

// FoodCategory groups menu items for browsing (e.g. "Rice", "Snacks").
type FoodCategory struct {
    ID          uint64 // food_categories.id
    Name        string // food_categories.name
    Description string // food_categories.description
    Icon        string // food_categories.icon
}

// MenuItem is a dish offered by a restaurant.  Price is in taka.
// Student set menus bundle several items and may require a student ID
// at pickup.
//
// Fields:
//  ID                – primary key identifier.
//  RestaurantID      – restaurant offering the item.
//  Name              – dish name.
//  Description       – dish description.
//  Price             – price in taka.
//  CuisineType       – cuisine key (bengali, chinese, ...).
//  CategoryID        – food category reference.
//  IsVegetarian      – vegetarian flag.
//  SpiceLevel        – 1 mild, 2 medium, 3 spicy.
//  IsAvailable       – whether the item can currently be ordered.
//  ImageURL          – optional image.
//  IsStudentSet      – student set menu flag.
//  SetItems          – items bundled in a student set, stored as JSON.
//  RequiresStudentID – student ID required at pickup.
//  CreatedAt         – creation timestamp.
type MenuItem struct {
    ID                uint64    // menu_items.id
    RestaurantID      uint64    // menu_items.restaurant_id
    Name              string    // menu_items.name
    Description       string    // menu_items.description
    Price             float64   // menu_items.price
    CuisineType       string    // menu_items.cuisine_type
    CategoryID        uint64    // menu_items.category_id
    IsVegetarian      bool      // menu_items.is_vegetarian
    SpiceLevel        uint8     // menu_items.spice_level
    IsAvailable       bool      // menu_items.is_available
    ImageURL          string    // menu_items.image_url
    IsStudentSet      bool      // menu_items.is_student_set
    SetItems          []string  // menu_items.set_items (JSON array)
    RequiresStudentID bool      // menu_items.requires_student_id
    CreatedAt         time.Time // menu_items.created_at
}
