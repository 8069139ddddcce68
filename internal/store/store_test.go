package store_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/PaceTNT/office-map/internal/models"
	"github.com/PaceTNT/office-map/internal/store"
)

func openTestStore(t *testing.T) *store.Store {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Map{}, &models.Employee{}, &models.Location{}))

	return store.New(db)
}

func seedMap(t *testing.T, s *store.Store, name, state, city, building, floor string) *models.Map {
	t.Helper()

	m := &models.Map{
		Name:     name,
		State:    state,
		City:     city,
		Building: building,
		Floor:    floor,
		ImageUrl: "/uploads/" + name + ".png",
	}
	require.NoError(t, s.CreateMap(context.Background(), m))
	require.NotEmpty(t, m.Id)

	return m
}

func seedEmployee(t *testing.T, s *store.Store, name, phone, email string) *models.Employee {
	t.Helper()

	e := &models.Employee{Name: name, Phone: phone, Email: email}
	require.NoError(t, s.CreateEmployee(context.Background(), e))
	require.NotEmpty(t, e.Id)

	return e
}

func seedLocation(t *testing.T, s *store.Store, m *models.Map, e *models.Employee, x, y float64) *models.Location {
	t.Helper()

	l, err := s.CreateLocation(context.Background(), &models.Location{
		MapId:      m.Id,
		EmployeeId: e.Id,
		X:          x,
		Y:          y,
	})
	require.NoError(t, err)

	return l
}

func TestMapCrud(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	seedMap(t, s, "Annex", "NY", "New York", "B", "2")
	seedMap(t, s, "HQ", "CA", "SF", "A", "1")

	maps, err := s.ListMaps(ctx)
	require.NoError(t, err)
	require.Len(t, maps, 2)
	// sorted by (state, city, building)
	assert.Equal(t, "HQ", maps[0].Name)
	assert.Equal(t, "Annex", maps[1].Name)

	got, err := s.GetMap(ctx, maps[0].Id)
	require.NoError(t, err)
	assert.Equal(t, "HQ", got.Name)

	// repeated reads return identical field values
	again, err := s.GetMap(ctx, maps[0].Id)
	require.NoError(t, err)
	assert.Equal(t, got.Name, again.Name)
	assert.Equal(t, got.ImageUrl, again.ImageUrl)
	assert.Equal(t, got.UpdatedAt, again.UpdatedAt)

	newName := "HQ West"
	updated, err := s.UpdateMap(ctx, got.Id, store.MapPatch{Name: &newName})
	require.NoError(t, err)
	assert.Equal(t, "HQ West", updated.Name)
	assert.Equal(t, "CA", updated.State, "untouched fields keep their value")

	_, err = s.GetMap(ctx, "no-such-id")
	var nfErr store.NotFoundError
	assert.ErrorAs(t, err, &nfErr)
	assert.Equal(t, "map", nfErr.Resource)

	require.NoError(t, s.DeleteMap(ctx, got.Id))
	assert.ErrorAs(t, s.DeleteMap(ctx, got.Id), &nfErr)
}

func TestEmployeeEmailUniqueness(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	jo := seedEmployee(t, s, "Jo", "555", "jo@x.com")
	seedEmployee(t, s, "Sam", "666", "sam@x.com")

	taken, err := s.EmailTaken(ctx, "jo@x.com", "")
	require.NoError(t, err)
	assert.True(t, taken)

	// updating your own email to itself is not a conflict
	taken, err = s.EmailTaken(ctx, "jo@x.com", jo.Id)
	require.NoError(t, err)
	assert.False(t, taken)

	taken, err = s.EmailTaken(ctx, "sam@x.com", jo.Id)
	require.NoError(t, err)
	assert.True(t, taken)

	taken, err = s.EmailTaken(ctx, "new@x.com", "")
	require.NoError(t, err)
	assert.False(t, taken)

	// the unique index is a backstop behind the check
	err = s.CreateEmployee(ctx, &models.Employee{Name: "Jo2", Phone: "777", Email: "jo@x.com"})
	assert.Error(t, err)
}

func TestLocationCrudAndPartialUpdate(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	m := seedMap(t, s, "HQ", "CA", "SF", "A", "1")
	e := seedEmployee(t, s, "Jo", "555", "jo@x.com")
	l := seedLocation(t, s, m, e, 0.5, 0.5)

	require.NotNil(t, l.Map)
	require.NotNil(t, l.Employee)
	assert.Equal(t, "HQ", l.Map.Name)
	assert.Equal(t, "Jo", l.Employee.Name)

	x := 0.75
	updated, err := s.UpdateLocation(ctx, l.Id, store.LocationPatch{X: &x})
	require.NoError(t, err)
	assert.Equal(t, 0.75, updated.X)
	assert.Equal(t, 0.5, updated.Y, "unsupplied axis keeps its value")

	require.NoError(t, s.DeleteLocation(ctx, l.Id))

	var nfErr store.NotFoundError
	err = s.DeleteLocation(ctx, l.Id)
	assert.ErrorAs(t, err, &nfErr)
	assert.Equal(t, "location", nfErr.Resource)
}

func TestDeleteCascades(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	m1 := seedMap(t, s, "HQ", "CA", "SF", "A", "1")
	m2 := seedMap(t, s, "Annex", "NY", "New York", "B", "2")
	jo := seedEmployee(t, s, "Jo", "555", "jo@x.com")
	sam := seedEmployee(t, s, "Sam", "666", "sam@x.com")

	seedLocation(t, s, m1, jo, 0.1, 0.1)
	seedLocation(t, s, m1, sam, 0.2, 0.2)
	seedLocation(t, s, m2, jo, 0.3, 0.3)

	require.NoError(t, s.DeleteMap(ctx, m1.Id))

	locations, err := s.ListLocations(ctx)
	require.NoError(t, err)
	require.Len(t, locations, 1, "locations on the deleted map are removed")
	assert.Equal(t, m2.Id, locations[0].MapId)

	// employees survive a map delete
	_, err = s.GetEmployee(ctx, jo.Id)
	require.NoError(t, err)

	require.NoError(t, s.DeleteEmployee(ctx, jo.Id))
	locations, err = s.ListLocations(ctx)
	require.NoError(t, err)
	assert.Empty(t, locations, "locations of the deleted employee are removed")
}

func seedSearchFixture(t *testing.T, s *store.Store) {
	t.Helper()

	sf := seedMap(t, s, "HQ", "CA", "San Francisco", "A", "1")
	la := seedMap(t, s, "South", "CA", "Los Angeles", "C", "3")
	ny := seedMap(t, s, "East", "NY", "San Francisco St Office", "B", "2")

	alice := seedEmployee(t, s, "Alice", "111-2222", "alice@x.com")
	bob := seedEmployee(t, s, "Bob", "333-4444", "bob@x.com")
	seedEmployee(t, s, "Carol", "555-6666", "carol@x.com")

	// Alice sits twice in SF, once in LA
	seedLocation(t, s, sf, alice, 0.1, 0.1)
	seedLocation(t, s, sf, alice, 0.9, 0.9)
	seedLocation(t, s, la, alice, 0.5, 0.5)

	// Bob has a CA location (LA) and a "San Francisco..." location (NY),
	// but no single location that is both CA and SF
	seedLocation(t, s, la, bob, 0.2, 0.2)
	seedLocation(t, s, ny, bob, 0.3, 0.3)
}

func TestSearchNoFilterReturnsAll(t *testing.T) {
	s := openTestStore(t)
	seedSearchFixture(t, s)

	results, err := s.SearchEmployees(context.Background(), store.NewSearchFilter("", "", "", "", ""))
	require.NoError(t, err)
	require.Len(t, results, 3)
	assert.Equal(t, "Alice", results[0].Name)
	assert.Equal(t, "Bob", results[1].Name)
	assert.Equal(t, "Carol", results[2].Name)

	// nested locations carry their maps
	require.Len(t, results[0].Locations, 3)
	for _, l := range results[0].Locations {
		require.NotNil(t, l.Map)
	}
}

func TestSearchFreeText(t *testing.T) {
	s := openTestStore(t)
	seedSearchFixture(t, s)
	ctx := context.Background()

	t.Run("name_case_insensitive", func(t *testing.T) {
		results, err := s.SearchEmployees(ctx, store.NewSearchFilter("aLiCe", "", "", "", ""))
		require.NoError(t, err)
		require.Len(t, results, 1)
		assert.Equal(t, "Alice", results[0].Name)
	})

	t.Run("email_substring", func(t *testing.T) {
		results, err := s.SearchEmployees(ctx, store.NewSearchFilter("BOB@", "", "", "", ""))
		require.NoError(t, err)
		require.Len(t, results, 1)
		assert.Equal(t, "Bob", results[0].Name)
	})

	t.Run("phone_substring", func(t *testing.T) {
		results, err := s.SearchEmployees(ctx, store.NewSearchFilter("3-44", "", "", "", ""))
		require.NoError(t, err)
		require.Len(t, results, 1)
		assert.Equal(t, "Bob", results[0].Name)
	})

	t.Run("no_match", func(t *testing.T) {
		results, err := s.SearchEmployees(ctx, store.NewSearchFilter("zzz", "", "", "", ""))
		require.NoError(t, err)
		assert.Empty(t, results)
	})
}

func TestSearchLocaleFilters(t *testing.T) {
	s := openTestStore(t)
	seedSearchFixture(t, s)
	ctx := context.Background()

	t.Run("state_contains_case_insensitive", func(t *testing.T) {
		results, err := s.SearchEmployees(ctx, store.NewSearchFilter("", "ca", "", "", ""))
		require.NoError(t, err)
		require.Len(t, results, 2)
		// Alice has several CA locations but appears exactly once
		assert.Equal(t, "Alice", results[0].Name)
		assert.Equal(t, "Bob", results[1].Name)
	})

	t.Run("conjunction_must_hold_on_one_location", func(t *testing.T) {
		// Bob matches state=CA (LA) and city~San Francisco (NY) on
		// different locations; only Alice has one location with both
		results, err := s.SearchEmployees(ctx, store.NewSearchFilter("", "CA", "San Francisco", "", ""))
		require.NoError(t, err)
		require.Len(t, results, 1)
		assert.Equal(t, "Alice", results[0].Name)
	})

	t.Run("employee_without_location_excluded", func(t *testing.T) {
		results, err := s.SearchEmployees(ctx, store.NewSearchFilter("", "NY", "", "", ""))
		require.NoError(t, err)
		require.Len(t, results, 1)
		assert.Equal(t, "Bob", results[0].Name)
	})

	t.Run("text_and_locale_combined", func(t *testing.T) {
		results, err := s.SearchEmployees(ctx, store.NewSearchFilter("bob", "CA", "", "", ""))
		require.NoError(t, err)
		require.Len(t, results, 1)
		assert.Equal(t, "Bob", results[0].Name)

		results, err = s.SearchEmployees(ctx, store.NewSearchFilter("carol", "CA", "", "", ""))
		require.NoError(t, err)
		assert.Empty(t, results)
	})

	t.Run("floor_and_building", func(t *testing.T) {
		results, err := s.SearchEmployees(ctx, store.NewSearchFilter("", "", "", "A", "1"))
		require.NoError(t, err)
		require.Len(t, results, 1)
		assert.Equal(t, "Alice", results[0].Name)
	})
}
