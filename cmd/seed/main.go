// Command seed populates the database with institutions, food
// categories, restaurants with menus and seat layouts, and random
// walk-in occupancy markers. It goes through the same repositories as
// the server so the data obeys the same rules.
package main

import (
    "context"
    "fmt"
    "log"
    "math/rand"
    "time"

    "github.com/joho/godotenv"

    "campus-table/internal/config"
    "campus-table/internal/database"
    "campus-table/internal/model"
    "campus-table/internal/repository"
)

type restaurantSeed struct {
    restaurant model.Restaurant
    tables     []int // seats per table, 2 to 6
    menu       []model.MenuItem
}

func main() {
    _ = godotenv.Load()
    cfg := config.Load()

    db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
    if err != nil {
        log.Fatalf("database connection failed: %v", err)
    }
    if err := database.Migrate(context.Background(), db); err != nil {
        log.Fatalf("database migration failed: %v", err)
    }

    ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
    defer cancel()

    institutionRepo := repository.NewInstitutionRepo(db)
    menuRepo := repository.NewMenuRepo(db)
    restaurantRepo := repository.NewRestaurantRepo(db)
    seatRepo := repository.NewSeatRepo(db)
    occupiedRepo := repository.NewOccupiedSeatRepo(db)

    seedInstitutions(ctx, institutionRepo)
    categories := seedCategories(ctx, menuRepo)

    total := 0
    for _, rs := range restaurantSeeds(categories) {
        rest := rs.restaurant
        if err := restaurantRepo.Create(ctx, &rest); err != nil {
            log.Fatalf("seed restaurant %q: %v", rest.Name, err)
        }
        seedMenu(ctx, menuRepo, rest.ID, rs.menu)
        seats := seedSeats(ctx, seatRepo, restaurantRepo, rest.ID, rs.tables)
        occupied := seedOccupancy(ctx, occupiedRepo, seats)
        log.Printf("seeded %q: %d seats, %d menu items, %d occupied",
            rest.Name, len(seats), len(rs.menu), occupied)
        total++
    }
    log.Printf("seeding complete: %d restaurants", total)
}

func seedInstitutions(ctx context.Context, repo *repository.InstitutionRepo) {
    institutions := []model.Institution{
        {Name: "University of Dhaka", Type: "university", Area: "Shahbagh", Latitude: 23.7340, Longitude: 90.3929},
        {Name: "BUET", Type: "university", Area: "Palashi", Latitude: 23.7264, Longitude: 90.3925},
        {Name: "Dhaka Medical College", Type: "medical_college", Area: "Bakshibazar", Latitude: 23.7254, Longitude: 90.3977},
        {Name: "North South University", Type: "university", Area: "Bashundhara", Latitude: 23.8151, Longitude: 90.4255},
        {Name: "Dhaka College", Type: "college", Area: "New Market", Latitude: 23.7342, Longitude: 90.3841},
        {Name: "BRAC University", Type: "university", Area: "Merul Badda", Latitude: 23.7729, Longitude: 90.4254},
    }
    for i := range institutions {
        if err := repo.Create(ctx, &institutions[i]); err != nil {
            log.Fatalf("seed institution %q: %v", institutions[i].Name, err)
        }
    }
    log.Printf("seeded %d institutions", len(institutions))
}

// seedCategories creates the food categories and returns name -> id.
func seedCategories(ctx context.Context, repo *repository.MenuRepo) map[string]uint64 {
    categories := []model.FoodCategory{
        {Name: "Rice & Curry", Description: "Full meals with rice", Icon: "rice"},
        {Name: "Snacks", Description: "Light bites and street food", Icon: "snacks"},
        {Name: "Drinks", Description: "Tea, lassi and soft drinks", Icon: "drinks"},
        {Name: "Desserts", Description: "Sweets and desserts", Icon: "desserts"},
        {Name: "Student Sets", Description: "Budget set menus for students", Icon: "set"},
    }
    ids := make(map[string]uint64, len(categories))
    for i := range categories {
        if err := repo.CreateCategory(ctx, &categories[i]); err != nil {
            log.Fatalf("seed category %q: %v", categories[i].Name, err)
        }
        ids[categories[i].Name] = categories[i].ID
    }
    log.Printf("seeded %d food categories", len(categories))
    return ids
}

func seedMenu(ctx context.Context, repo *repository.MenuRepo, restaurantID uint64, items []model.MenuItem) {
    for i := range items {
        items[i].RestaurantID = restaurantID
        items[i].IsAvailable = true
        if err := repo.CreateItem(ctx, &items[i]); err != nil {
            log.Fatalf("seed menu item %q: %v", items[i].Name, err)
        }
    }
}

// seedSeats builds the table layout. Table n gets seats T{n}S{1..m}
// placed on a simple grid: tables advance along x, seats within a table
// fan out with a smaller offset. When the restaurant has a private
// room, its last table is placed inside it.
func seedSeats(ctx context.Context, repo *repository.SeatRepo, restaurants *repository.RestaurantRepo, restaurantID uint64, tables []int) []model.Seat {
    rest, err := restaurants.GetByID(ctx, restaurantID)
    if err != nil {
        log.Fatalf("load restaurant %d: %v", restaurantID, err)
    }
    seats := make([]model.Seat, 0)
    for t, count := range tables {
        private := rest.HasPrivateRoom && t == len(tables)-1
        for s := 0; s < count; s++ {
            seats = append(seats, model.Seat{
                RestaurantID:  restaurantID,
                Code:          seatCode(t+1, s+1),
                IsPrivateRoom: private,
                XPosition:     int32((t%4)*100 + s*20),
                YPosition:     int32((t / 4) * 100),
            })
        }
    }
    if err := repo.DeleteByRestaurant(ctx, restaurantID); err != nil {
        log.Fatalf("clear seats for restaurant %d: %v", restaurantID, err)
    }
    if err := repo.CreateBulk(ctx, seats); err != nil {
        log.Fatalf("seed seats for restaurant %d: %v", restaurantID, err)
    }
    // read back to learn the generated ids
    created, err := repo.ListByRestaurant(ctx, restaurantID)
    if err != nil {
        log.Fatalf("list seats for restaurant %d: %v", restaurantID, err)
    }
    return created
}

func seatCode(table, seat int) string {
    return fmt.Sprintf("T%dS%d", table, seat)
}

// seedOccupancy marks a random 10-30% of the seats as occupied by
// walk-ins, each expiring 40-120 minutes from now. Expiry is handled
// lazily at read time, so stale markers from earlier runs are harmless.
func seedOccupancy(ctx context.Context, repo *repository.OccupiedSeatRepo, seats []model.Seat) int {
    if len(seats) == 0 {
        return 0
    }
    share := 0.10 + rand.Float64()*0.20
    n := int(float64(len(seats)) * share)
    if n == 0 {
        n = 1
    }
    perm := rand.Perm(len(seats))
    now := time.Now().UTC()
    for i := 0; i < n; i++ {
        until := now.Add(time.Duration(40+rand.Intn(81)) * time.Minute)
        o := model.OccupiedSeat{SeatID: seats[perm[i]].ID, OccupiedUntil: until}
        if err := repo.Create(ctx, &o); err != nil {
            log.Fatalf("seed occupancy for seat %d: %v", o.SeatID, err)
        }
    }
    return n
}

func restaurantSeeds(cat map[string]uint64) []restaurantSeed {
    return []restaurantSeed{
        {
            restaurant: model.Restaurant{
                Name: "Campus Biryani House", Description: "Kacchi and tehari near the campus gate",
                Area: "Shahbagh", Address: "12 Kazi Nazrul Islam Ave", Phone: "01712345678",
                Latitude: 23.7385, Longitude: 90.3950, IsOpen: true,
                OpeningTime: "10:00:00", ClosingTime: "22:30:00",
                HasPrivateRoom: true, HasSmokingZone: false, HasPrayerZone: true,
                Capacity: 40, ColorTheme: "#8B0000", FontFamily: "Hind Siliguri",
                Cuisines: []string{"bengali", "mughlai"},
            },
            tables: []int{4, 4, 6, 2, 4, 6},
            menu: []model.MenuItem{
                {Name: "Kacchi Biryani", Description: "Mutton kacchi with borhani", Price: 280, CuisineType: "mughlai", CategoryID: cat["Rice & Curry"], SpiceLevel: 2},
                {Name: "Morog Polao", Description: "Chicken polao", Price: 180, CuisineType: "bengali", CategoryID: cat["Rice & Curry"], SpiceLevel: 1},
                {Name: "Borhani", Description: "Spiced yogurt drink", Price: 40, CuisineType: "bengali", CategoryID: cat["Drinks"], IsVegetarian: true},
                {Name: "Firni", Description: "Rice pudding dessert", Price: 60, CuisineType: "bengali", CategoryID: cat["Desserts"], IsVegetarian: true},
                {Name: "Student Kacchi Set", Description: "Half kacchi, borhani, firni", Price: 220, CuisineType: "mughlai", CategoryID: cat["Student Sets"], IsStudentSet: true, SetItems: []string{"Half Kacchi", "Borhani", "Firni"}, RequiresStudentID: true, SpiceLevel: 2},
            },
        },
        {
            restaurant: model.Restaurant{
                Name: "Noodle Garden", Description: "Chinese and thai plates for groups",
                Area: "New Market", Address: "3 Mirpur Rd", Phone: "01898765432",
                Latitude: 23.7330, Longitude: 90.3850, IsOpen: true,
                OpeningTime: "11:00:00", ClosingTime: "23:00:00",
                HasPrivateRoom: false, HasSmokingZone: true, HasPrayerZone: false,
                Capacity: 30, ColorTheme: "#004225", FontFamily: "Noto Sans",
                Cuisines: []string{"chinese", "thai"},
            },
            tables: []int{2, 4, 4, 6, 2},
            menu: []model.MenuItem{
                {Name: "Chicken Fried Rice", Description: "Wok fried rice with egg", Price: 160, CuisineType: "chinese", CategoryID: cat["Rice & Curry"], SpiceLevel: 1},
                {Name: "Thai Soup", Description: "Hot and sour chicken soup", Price: 140, CuisineType: "thai", CategoryID: cat["Snacks"], SpiceLevel: 3},
                {Name: "Chow Mein", Description: "Stir fried noodles", Price: 150, CuisineType: "chinese", CategoryID: cat["Rice & Curry"], SpiceLevel: 2},
                {Name: "Lemon Iced Tea", Description: "House iced tea", Price: 50, CuisineType: "chinese", CategoryID: cat["Drinks"], IsVegetarian: true},
            },
        },
        {
            restaurant: model.Restaurant{
                Name: "Golpo Cafe", Description: "Tea, adda and snacks beside the library",
                Area: "Palashi", Address: "7 BUET Rd", Phone: "01911223344",
                Latitude: 23.7268, Longitude: 90.3919, IsOpen: true,
                OpeningTime: "08:00:00", ClosingTime: "23:30:00",
                HasPrivateRoom: true, HasSmokingZone: false, HasPrayerZone: true,
                Capacity: 24, ColorTheme: "#3E2723", FontFamily: "Hind Siliguri",
                Cuisines: []string{"bengali", "continental"},
            },
            tables: []int{2, 2, 4, 4, 6},
            menu: []model.MenuItem{
                {Name: "Deem Chop", Description: "Egg chop with puffed rice", Price: 30, CuisineType: "bengali", CategoryID: cat["Snacks"], SpiceLevel: 2},
                {Name: "Masala Tea", Description: "Milk tea with spices", Price: 20, CuisineType: "bengali", CategoryID: cat["Drinks"], IsVegetarian: true},
                {Name: "Club Sandwich", Description: "Triple decker chicken sandwich", Price: 180, CuisineType: "continental", CategoryID: cat["Snacks"], SpiceLevel: 1},
                {Name: "Chocolate Brownie", Description: "Warm brownie", Price: 120, CuisineType: "continental", CategoryID: cat["Desserts"], IsVegetarian: true},
                {Name: "Study Set", Description: "Sandwich, tea and brownie", Price: 250, CuisineType: "continental", CategoryID: cat["Student Sets"], IsStudentSet: true, SetItems: []string{"Club Sandwich", "Masala Tea", "Chocolate Brownie"}, RequiresStudentID: true},
            },
        },
    }
}
