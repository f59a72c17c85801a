package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tunisia-parks/internal/models"
	"tunisia-parks/internal/password"
	"tunisia-parks/internal/services"
)

func TestSeedService_Run(t *testing.T) {
	parks := newFakeParkRepo()
	species := newFakeSpeciesRepo()
	users := &fakeUserDirectory{fakeUserStore: newFakeUserStore()}
	svc := services.NewSeedService(parks, species, users)
	ctx := context.Background()

	require.NoError(t, svc.Run(ctx))

	assert.Len(t, parks.byID, 2)
	assert.Len(t, species.byID, 3)
	assert.Len(t, users.byName, 3)

	// Every species must reference a seeded park.
	for _, sp := range species.byID {
		_, ok := parks.byID[sp.ParkID]
		assert.True(t, ok, "species %q references missing park %d", sp.Name, sp.ParkID)
	}

	// Exactly one admin, and it is the designated account.
	var admins []string
	for _, u := range users.byName {
		if u.Role == models.RoleAdmin {
			admins = append(admins, u.Username)
		}
	}
	require.Len(t, admins, 1)
	assert.Equal(t, "admin_user_789", admins[0])

	// Passwords are stored hashed, not in plaintext.
	john := users.byName["john_doe_123"]
	require.NotNil(t, john)
	assert.NotEqual(t, "StrongP@$$wOrd123", john.PasswordHash)
	assert.True(t, password.Verify("StrongP@$$wOrd123", john.PasswordHash))
}

func TestSeedService_Run_AlreadySeeded(t *testing.T) {
	parks := newFakeParkRepo()
	species := newFakeSpeciesRepo()
	users := &fakeUserDirectory{fakeUserStore: newFakeUserStore()}
	svc := services.NewSeedService(parks, species, users)
	ctx := context.Background()

	require.NoError(t, svc.Run(ctx))

	// A second run against the populated store must change nothing.
	require.NoError(t, svc.Run(ctx))

	assert.Len(t, parks.byID, 2)
	assert.Len(t, species.byID, 3)
	assert.Len(t, users.byName, 3)
}

func TestSeedService_Run_SkipsNonEmptyStore(t *testing.T) {
	parks := newFakeParkRepo()
	_, err := parks.Save(context.Background(), "Existing Park", "", 1, 1, "")
	require.NoError(t, err)

	species := newFakeSpeciesRepo()
	users := &fakeUserDirectory{fakeUserStore: newFakeUserStore()}
	svc := services.NewSeedService(parks, species, users)

	require.NoError(t, svc.Run(context.Background()))

	assert.Len(t, parks.byID, 1)
	assert.Empty(t, species.byID)
	assert.Empty(t, users.byName)
}
