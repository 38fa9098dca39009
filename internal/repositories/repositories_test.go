package repositories

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/desertthunder/films/internal/models"
	"github.com/desertthunder/films/internal/shared"
)

// setupTestDB creates an in-memory SQLite database with migrations applied
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := shared.NewDatabase(":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}

	if err := shared.RunMigrations(db); err != nil {
		db.Close()
		t.Fatalf("failed to run migrations: %v", err)
	}

	return db
}

func createUser(t *testing.T, db *sql.DB, username string) *models.User {
	t.Helper()

	user := models.NewUser(0, username, "hash")
	if err := NewUserRepository(db).Create(context.Background(), user); err != nil {
		t.Fatalf("failed to create user: %v", err)
	}
	return user
}

func addMembership(t *testing.T, db *sql.DB, userID, name string, order int) *models.Membership {
	t.Helper()
	ctx := context.Background()

	film, _, err := NewFilmRepository(db).GetOrCreate(ctx, name)
	if err != nil {
		t.Fatalf("failed to create film: %v", err)
	}

	m := models.NewMembership(userID, film.ID, order)
	if err := NewMembershipRepository(db).Create(ctx, m); err != nil {
		t.Fatalf("failed to create membership: %v", err)
	}
	return m
}

func TestUserRepository(t *testing.T) {
	ctx := context.Background()

	t.Run("Create", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		user := createUser(t, db, "alice")

		if user.ID() == "" {
			t.Error("user ID should be set after creation")
		}
		if user.Sequence() != 1 {
			t.Errorf("expected sequence 1, got %d", user.Sequence())
		}

		second := createUser(t, db, "bob")
		if second.Sequence() != 2 {
			t.Errorf("expected sequence 2, got %d", second.Sequence())
		}
	})

	t.Run("Create duplicate username", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		createUser(t, db, "alice")

		err := NewUserRepository(db).Create(ctx, models.NewUser(0, "alice", "other"))
		if !errors.Is(err, shared.ErrUsernameTaken) {
			t.Fatalf("expected ErrUsernameTaken, got %v", err)
		}
	})

	t.Run("Create validation error", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		err := NewUserRepository(db).Create(ctx, models.NewUser(0, "bad name", "hash"))
		if !errors.Is(err, shared.ErrInvalidInput) {
			t.Fatalf("expected ErrInvalidInput, got %v", err)
		}
	})

	t.Run("Get & GetByUsername", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewUserRepository(db)
		user := createUser(t, db, "alice")

		retrieved, err := repo.Get(ctx, user.ID())
		if err != nil {
			t.Fatalf("failed to get user: %v", err)
		}
		if retrieved.Username() != "alice" {
			t.Errorf("expected username alice, got %s", retrieved.Username())
		}

		byName, err := repo.GetByUsername(ctx, "alice")
		if err != nil {
			t.Fatalf("failed to get user by username: %v", err)
		}
		if byName.ID() != user.ID() {
			t.Errorf("expected ID %s, got %s", user.ID(), byName.ID())
		}

		if _, err := repo.Get(ctx, "nonexistent-id"); !errors.Is(err, shared.ErrUserNotFound) {
			t.Errorf("expected ErrUserNotFound, got %v", err)
		}
	})

	t.Run("Exists", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewUserRepository(db)
		createUser(t, db, "alice")

		if ok, err := repo.Exists(ctx, "alice"); err != nil || !ok {
			t.Errorf("expected alice to exist, got %v, %v", ok, err)
		}
		if ok, err := repo.Exists(ctx, "bob"); err != nil || ok {
			t.Errorf("expected bob to be absent, got %v, %v", ok, err)
		}
	})

	t.Run("UpdatePassword", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewUserRepository(db)
		user := createUser(t, db, "alice")
		user.SetPasswordHash("new-hash")

		if err := repo.UpdatePassword(ctx, user); err != nil {
			t.Fatalf("failed to update user: %v", err)
		}

		retrieved, _ := repo.Get(ctx, user.ID())
		if retrieved.PasswordHash() != "new-hash" {
			t.Errorf("expected updated hash, got %s", retrieved.PasswordHash())
		}

		ghost := models.NewUser(0, "ghost", "hash")
		ghost.SetID("nonexistent-id")
		if err := repo.UpdatePassword(ctx, ghost); !errors.Is(err, shared.ErrUserNotFound) {
			t.Errorf("expected ErrUserNotFound, got %v", err)
		}
	})

	t.Run("Delete cascades memberships", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewUserRepository(db)
		user := createUser(t, db, "alice")
		addMembership(t, db, user.ID(), "Alien", 1)

		if err := repo.Delete(ctx, user.ID()); err != nil {
			t.Fatalf("failed to delete user: %v", err)
		}

		remaining, err := NewMembershipRepository(db).ListByUser(ctx, user.ID())
		if err != nil {
			t.Fatalf("failed to list memberships: %v", err)
		}
		if len(remaining) != 0 {
			t.Errorf("expected memberships to be removed, got %d", len(remaining))
		}

		if _, err := NewFilmRepository(db).GetByName(ctx, "Alien"); err != nil {
			t.Errorf("film should outlive the membership: %v", err)
		}

		if err := repo.Delete(ctx, user.ID()); !errors.Is(err, shared.ErrUserNotFound) {
			t.Errorf("expected ErrUserNotFound on second delete, got %v", err)
		}
	})

	t.Run("List", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		createUser(t, db, "alice")
		createUser(t, db, "bob")

		users, err := NewUserRepository(db).List(ctx)
		if err != nil {
			t.Fatalf("failed to list users: %v", err)
		}
		if len(users) != 2 || users[0].Username() != "alice" || users[1].Username() != "bob" {
			t.Errorf("expected [alice bob] in sequence order, got %d users", len(users))
		}
	})
}

func TestFilmRepository(t *testing.T) {
	ctx := context.Background()

	t.Run("GetOrCreate", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewFilmRepository(db)

		film, created, err := repo.GetOrCreate(ctx, "  Blade   Runner ")
		if err != nil {
			t.Fatalf("failed to create film: %v", err)
		}
		if !created {
			t.Error("expected first call to create the film")
		}
		if film.Name != "Blade Runner" {
			t.Errorf("expected normalized name, got %q", film.Name)
		}

		again, created, err := repo.GetOrCreate(ctx, "Blade Runner")
		if err != nil {
			t.Fatalf("failed to get film: %v", err)
		}
		if created {
			t.Error("expected second call to reuse the film")
		}
		if again.ID != film.ID {
			t.Errorf("expected ID %d, got %d", film.ID, again.ID)
		}
	})

	t.Run("GetOrCreate rejects empty name", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		_, _, err := NewFilmRepository(db).GetOrCreate(ctx, "   ")
		if !errors.Is(err, shared.ErrInvalidInput) {
			t.Errorf("expected ErrInvalidInput, got %v", err)
		}
	})

	t.Run("Get not found", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		if _, err := NewFilmRepository(db).Get(ctx, 42); !errors.Is(err, shared.ErrFilmNotFound) {
			t.Errorf("expected ErrFilmNotFound, got %v", err)
		}
	})

	t.Run("SetPhoto", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewFilmRepository(db)
		film, _, _ := repo.GetOrCreate(ctx, "Alien")

		if err := repo.SetPhoto(ctx, film.ID, "film_photos/alien.jpg"); err != nil {
			t.Fatalf("failed to set photo: %v", err)
		}

		got, _ := repo.Get(ctx, film.ID)
		if got.Photo != "film_photos/alien.jpg" {
			t.Errorf("expected photo to be set, got %q", got.Photo)
		}

		if err := repo.SetPhoto(ctx, film.ID, ""); err != nil {
			t.Fatalf("failed to clear photo: %v", err)
		}
		got, _ = repo.Get(ctx, film.ID)
		if got.Photo != "" {
			t.Errorf("expected photo to be cleared, got %q", got.Photo)
		}
	})

	t.Run("List is case-insensitively sorted", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewFilmRepository(db)
		for _, name := range []string{"beta", "Alpha", "Charlie"} {
			if _, _, err := repo.GetOrCreate(ctx, name); err != nil {
				t.Fatalf("failed to create film: %v", err)
			}
		}

		films, err := repo.List(ctx)
		if err != nil {
			t.Fatalf("failed to list films: %v", err)
		}

		want := []string{"Alpha", "beta", "Charlie"}
		for i, f := range films {
			if f.Name != want[i] {
				t.Errorf("position %d: expected %s, got %s", i, want[i], f.Name)
			}
		}
	})

	t.Run("Search", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewFilmRepository(db)
		alice := createUser(t, db, "alice")
		addMembership(t, db, alice.ID(), "The Matrix", 1)
		for _, name := range []string{"Matrix Reloaded", "Alien", "100% Wolf", "Snake_Eyes"} {
			if _, _, err := repo.GetOrCreate(ctx, name); err != nil {
				t.Fatalf("failed to create film: %v", err)
			}
		}

		tc := []struct {
			name  string
			query string
			want  []string
		}{
			{name: "case-insensitive substring", query: "MATRIX", want: []string{"Matrix Reloaded"}},
			{name: "empty query matches all not in list", query: "", want: []string{"100% Wolf", "Alien", "Matrix Reloaded", "Snake_Eyes"}},
			{name: "no match", query: "zzz-no-match", want: []string{}},
			{name: "percent is literal", query: "%", want: []string{"100% Wolf"}},
			{name: "underscore is literal", query: "_", want: []string{"Snake_Eyes"}},
		}

		for _, tt := range tc {
			t.Run(tt.name, func(t *testing.T) {
				films, err := repo.Search(ctx, alice.ID(), tt.query)
				if err != nil {
					t.Fatalf("search failed: %v", err)
				}
				if len(films) != len(tt.want) {
					t.Fatalf("expected %d results, got %d (%v)", len(tt.want), len(films), films)
				}
				for i, f := range films {
					if f.Name != tt.want[i] {
						t.Errorf("result %d: expected %s, got %s", i, tt.want[i], f.Name)
					}
				}
			})
		}
	})
}

func TestMembershipRepository(t *testing.T) {
	ctx := context.Background()

	t.Run("Create & Entry", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		user := createUser(t, db, "alice")
		m := addMembership(t, db, user.ID(), "Alien", 1)

		if m.ID() == 0 {
			t.Fatal("membership ID should be set after creation")
		}

		repo := NewMembershipRepository(db)
		got, err := repo.Entry(ctx, user.ID(), m.ID())
		if err != nil {
			t.Fatalf("failed to get entry: %v", err)
		}
		if got.Order != 1 || got.FilmID != m.FilmID() || got.Name != "Alien" {
			t.Errorf("unexpected entry: %+v", got)
		}

		byFilm, err := repo.GetByFilm(ctx, user.ID(), m.FilmID())
		if err != nil {
			t.Fatalf("failed to get membership by film: %v", err)
		}
		if byFilm.ID() != m.ID() {
			t.Errorf("expected ID %d, got %d", m.ID(), byFilm.ID())
		}
	})

	t.Run("Entry is scoped to owner", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		alice := createUser(t, db, "alice")
		bob := createUser(t, db, "bob")
		m := addMembership(t, db, alice.ID(), "Alien", 1)

		_, err := NewMembershipRepository(db).Entry(ctx, bob.ID(), m.ID())
		if !errors.Is(err, shared.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}

		if err := NewMembershipRepository(db).Delete(ctx, bob.ID(), m.ID()); !errors.Is(err, shared.ErrNotFound) {
			t.Errorf("expected ErrNotFound deleting another user's entry, got %v", err)
		}
	})

	t.Run("Duplicate film rejected", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		user := createUser(t, db, "alice")
		m := addMembership(t, db, user.ID(), "Alien", 1)

		dup := models.NewMembership(user.ID(), m.FilmID(), 2)
		err := NewMembershipRepository(db).Create(ctx, dup)
		if !isUniqueViolation(err) {
			t.Errorf("expected unique violation, got %v", err)
		}
	})

	t.Run("Unknown user rejected", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		film, _, err := NewFilmRepository(db).GetOrCreate(ctx, "Alien")
		if err != nil {
			t.Fatalf("failed to create film: %v", err)
		}

		err = NewMembershipRepository(db).Create(ctx, models.NewMembership("ghost", film.ID, 1))
		if !errors.Is(err, shared.ErrUserNotFound) {
			t.Errorf("expected ErrUserNotFound, got %v", err)
		}
	})

	t.Run("MaxOrder", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewMembershipRepository(db)
		user := createUser(t, db, "alice")

		if got, _ := repo.MaxOrder(ctx, user.ID()); got != 0 {
			t.Errorf("expected 0 for empty list, got %d", got)
		}

		addMembership(t, db, user.ID(), "Alien", 1)
		addMembership(t, db, user.ID(), "Aliens", 2)

		if got, _ := repo.MaxOrder(ctx, user.ID()); got != 2 {
			t.Errorf("expected 2, got %d", got)
		}
	})

	t.Run("UpdateOrders", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewMembershipRepository(db)
		user := createUser(t, db, "alice")
		a := addMembership(t, db, user.ID(), "Alpha", 1)
		b := addMembership(t, db, user.ID(), "Beta", 2)

		err := repo.UpdateOrders(ctx, user.ID(), []OrderChange{{ID: a.ID(), Order: 2}, {ID: b.ID(), Order: 1}})
		if err != nil {
			t.Fatalf("failed to update orders: %v", err)
		}

		list, _ := repo.ListByUser(ctx, user.ID())
		if list[0].ID() != b.ID() || list[1].ID() != a.ID() {
			t.Error("expected Beta before Alpha after update")
		}

		err = repo.UpdateOrders(ctx, user.ID(), []OrderChange{{ID: 9999, Order: 1}})
		if !errors.Is(err, shared.ErrNotFound) {
			t.Errorf("expected ErrNotFound for unknown membership, got %v", err)
		}
	})

	t.Run("UpdateOrders inside transaction", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		user := createUser(t, db, "alice")
		a := addMembership(t, db, user.ID(), "Alpha", 1)

		err := RunInTx(ctx, db, func(tx *sql.Tx) error {
			return NewMembershipRepository(db).WithTx(tx).UpdateOrders(ctx, user.ID(), []OrderChange{{ID: a.ID(), Order: 5}})
		})
		if err != nil {
			t.Fatalf("transaction failed: %v", err)
		}

		got, _ := NewMembershipRepository(db).Entry(ctx, user.ID(), a.ID())
		if got.Order != 5 {
			t.Errorf("expected order 5, got %d", got.Order)
		}
	})

	t.Run("RunInTx rolls back on error", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		user := createUser(t, db, "alice")
		a := addMembership(t, db, user.ID(), "Alpha", 1)
		boom := errors.New("boom")

		err := RunInTx(ctx, db, func(tx *sql.Tx) error {
			if err := NewMembershipRepository(tx).Delete(ctx, user.ID(), a.ID()); err != nil {
				return err
			}
			return boom
		})
		if !errors.Is(err, boom) {
			t.Fatalf("expected boom, got %v", err)
		}

		if _, err := NewMembershipRepository(db).Entry(ctx, user.ID(), a.ID()); err != nil {
			t.Errorf("delete should have been rolled back: %v", err)
		}
	})

	t.Run("Entries & Entry", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewMembershipRepository(db)
		films := NewFilmRepository(db)
		user := createUser(t, db, "alice")
		a := addMembership(t, db, user.ID(), "Alpha", 1)
		addMembership(t, db, user.ID(), "Beta", 2)
		addMembership(t, db, user.ID(), "Gamma", 3)

		if err := films.SetPhoto(ctx, a.FilmID(), "alpha-film.jpg"); err != nil {
			t.Fatalf("failed to set film photo: %v", err)
		}

		entries, err := repo.Entries(ctx, user.ID(), models.Page{})
		if err != nil {
			t.Fatalf("failed to list entries: %v", err)
		}
		if len(entries) != 3 || entries[0].Name != "Alpha" || entries[2].Name != "Gamma" {
			t.Fatalf("unexpected entries: %+v", entries)
		}
		if entries[0].Photo != "alpha-film.jpg" {
			t.Errorf("expected film photo fallback, got %q", entries[0].Photo)
		}

		if err := repo.SetPhoto(ctx, user.ID(), a.ID(), "mine.jpg"); err != nil {
			t.Fatalf("failed to set entry photo: %v", err)
		}
		entry, err := repo.Entry(ctx, user.ID(), a.ID())
		if err != nil {
			t.Fatalf("failed to get entry: %v", err)
		}
		if entry.Photo != "mine.jpg" {
			t.Errorf("entry photo should take precedence, got %q", entry.Photo)
		}

		page, err := repo.Entries(ctx, user.ID(), models.Page{Limit: 1, Offset: 1})
		if err != nil {
			t.Fatalf("failed to page entries: %v", err)
		}
		if len(page) != 1 || page[0].Name != "Beta" {
			t.Errorf("expected [Beta], got %+v", page)
		}

		tail, err := repo.Entries(ctx, user.ID(), models.Page{Offset: 2})
		if err != nil {
			t.Fatalf("failed to page entries: %v", err)
		}
		if len(tail) != 1 || tail[0].Name != "Gamma" {
			t.Errorf("expected [Gamma], got %+v", tail)
		}

		if _, err := repo.Entry(ctx, user.ID(), 9999); !errors.Is(err, shared.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})
}

func TestContainsPattern(t *testing.T) {
	tc := []struct {
		in   string
		want string
	}{
		{in: "", want: "%%"},
		{in: "abc", want: "%abc%"},
		{in: "50%", want: `%50\%%`},
		{in: "a_b", want: `%a\_b%`},
		{in: `a\b`, want: `%a\\b%`},
	}

	for _, tt := range tc {
		if got := containsPattern(tt.in); got != tt.want {
			t.Errorf("containsPattern(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
