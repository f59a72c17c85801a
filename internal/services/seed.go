package services

import (
	"context"

	"tunisia-parks/internal/logger"
	"tunisia-parks/internal/models"
	"tunisia-parks/internal/password"
)

// SeedParkRepo defines the park operations needed by the seeder.
type SeedParkRepo interface {
	Count(ctx context.Context) (int64, error)
	Save(ctx context.Context, name, description string, latitude, longitude float64, images string) (*models.ParkDB, error)
}

// SeedSpeciesRepo defines the species operations needed by the seeder.
type SeedSpeciesRepo interface {
	Save(ctx context.Context, name, scientificName string, parkID int64, description, image string) (*models.SpeciesDB, error)
}

// SeedUserRepo defines the user operations needed by the seeder.
type SeedUserRepo interface {
	Save(ctx context.Context, username, passwordHash string) (*models.UserDB, error)
	UpdateRole(ctx context.Context, id int64, role string) (*models.UserDB, error)
}

// adminUsername is promoted to admin after creation; every other seeded
// user keeps the default visitor role.
const adminUsername = "admin_user_789"

type seedPark struct {
	name        string
	description string
	latitude    float64
	longitude   float64
	images      string
}

type seedSpecies struct {
	name           string
	scientificName string
	parkIndex      int // index into seedParks; resolved to a real id at insert time
	description    string
	image          string
}

type seedUser struct {
	username string
	password string
}

var seedParks = []seedPark{
	{
		name:        "Ichkeul National Park",
		description: "A beautiful national park in northern Tunisia.",
		latitude:    37.15,
		longitude:   9.666,
		images:      "https://example.com/ichkeul1.jpg,https://example.com/ichkeul2.jpg",
	},
	{
		name:        "Boukornine National Park",
		description: "A national park with unique mountains and flora",
		latitude:    36.742,
		longitude:   10.266,
		images:      "https://example.com/boukornine1.jpg,https://example.com/boukornine2.jpg",
	},
}

var seedSpeciesList = []seedSpecies{
	{
		name:           "African Golden Wolf",
		scientificName: "Canis anthus",
		parkIndex:      0,
		description:    "A medium-sized canid native to North Africa.",
		image:          "https://example.com/wolf.jpg",
	},
	{
		name:           "Barbary Macaque",
		scientificName: "Macaca sylvanus",
		parkIndex:      0,
		description:    "A species of macaque found in the Atlas Mountains.",
		image:          "https://example.com/macaque.jpg",
	},
	{
		name:           "Atlas Cedar",
		scientificName: "Cedrus atlantica",
		parkIndex:      1,
		description:    "A species of cedar native to the Atlas Mountains.",
		image:          "https://example.com/atlas-cedar.jpg",
	},
}

var seedUsers = []seedUser{
	{username: "john_doe_123", password: "StrongP@$$wOrd123"},
	{username: "jane.smith.456", password: "AnotherS3cr3t!"},
	{username: adminUsername, password: "AdminPasswOrd1!"},
}

// SeedService populates initial data on first run.
type SeedService struct {
	parks   SeedParkRepo
	species SeedSpeciesRepo
	users   SeedUserRepo
}

// NewSeedService creates a new SeedService instance.
func NewSeedService(parks SeedParkRepo, species SeedSpeciesRepo, users SeedUserRepo) *SeedService {
	return &SeedService{parks: parks, species: species, users: users}
}

// Run seeds the store with the initial parks, species and users. It is a
// no-op when parks already exist. The count check is the only guard:
// concurrent first runs have a small race window, which is acceptable for
// a bootstrap-only operation.
func (svc *SeedService) Run(ctx context.Context) error {
	count, err := svc.parks.Count(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		logger.Log.Info("store already seeded, skipping")
		return nil
	}

	parkIDs := make([]int64, 0, len(seedParks))
	for _, p := range seedParks {
		park, err := svc.parks.Save(ctx, p.name, p.description, p.latitude, p.longitude, p.images)
		if err != nil {
			return err
		}
		logger.Log.Infow("seeded park", "id", park.ID, "name", park.Name)
		parkIDs = append(parkIDs, park.ID)
	}

	for _, s := range seedSpeciesList {
		sp, err := svc.species.Save(ctx, s.name, s.scientificName, parkIDs[s.parkIndex], s.description, s.image)
		if err != nil {
			return err
		}
		logger.Log.Infow("seeded species", "id", sp.ID, "name", sp.Name)
	}

	for _, u := range seedUsers {
		hash, err := password.Hash(u.password)
		if err != nil {
			return err
		}
		user, err := svc.users.Save(ctx, u.username, hash)
		if err != nil {
			return err
		}
		logger.Log.Infow("seeded user", "id", user.ID, "username", user.Username)

		if user.Username == adminUsername {
			if _, err := svc.users.UpdateRole(ctx, user.ID, models.RoleAdmin); err != nil {
				return err
			}
		}
	}

	logger.Log.Info("seeding complete")
	return nil
}
