package database_test

import (
	"context"
	"database/sql"
	"testing"

	_ "github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/foodgram/backend/internal/database"
	"github.com/pageza/foodgram/backend/internal/testhelpers"
)

func TestMigratorUpAndDown(t *testing.T) {
	db, err := sql.Open("postgres", testhelpers.StartPostgres(t))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	ctx := context.Background()
	m := database.NewMigrator(db, "../../migrations")

	applied, err := m.Up(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{
		"0001_create_users.sql",
		"0002_create_recipes.sql",
		"0003_create_relations.sql",
		"0004_release_user_favorites.sql",
	}, applied)

	applied, err = m.Up(ctx)
	require.NoError(t, err)
	assert.Empty(t, applied)

	_, err = db.ExecContext(ctx, "INSERT INTO users (email, username, first_name, last_name, password_hash) VALUES ('a@example.com', 'a', 'A', 'A', 'x')")
	require.NoError(t, err)
	_, err = db.ExecContext(ctx, "INSERT INTO follows (user_id, author_id) VALUES (1, 1)")
	assert.Error(t, err, "self-follow must violate the check constraint")

	name, err := m.Down(ctx)
	require.NoError(t, err)
	assert.Equal(t, "0004_release_user_favorites.sql", name)
	name, err = m.Down(ctx)
	require.NoError(t, err)
	assert.Equal(t, "0003_create_relations.sql", name)

	var exists bool
	require.NoError(t, db.QueryRowContext(ctx, "SELECT to_regclass('public.favorites') IS NOT NULL").Scan(&exists))
	assert.False(t, exists)

	applied, err = m.Up(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"0003_create_relations.sql", "0004_release_user_favorites.sql"}, applied)
}

func TestDeletingUserReleasesFavorites(t *testing.T) {
	db, err := sql.Open("postgres", testhelpers.StartPostgres(t))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	ctx := context.Background()
	_, err = database.NewMigrator(db, "../../migrations").Up(ctx)
	require.NoError(t, err)

	exec := func(query string) {
		t.Helper()
		_, err := db.ExecContext(ctx, query)
		require.NoError(t, err, query)
	}
	exec("INSERT INTO users (id, email, username, first_name, last_name, password_hash) VALUES " +
		"(1, 'chef@example.com', 'chef', 'C', 'C', 'x'), " +
		"(2, 'fan@example.com', 'fan', 'F', 'F', 'x'), " +
		"(3, 'other@example.com', 'other', 'O', 'O', 'x')")
	exec("INSERT INTO recipes (id, author_id, name, text, cooking_time, image, favorite_count) VALUES " +
		"(1, 1, 'Soup', 'Boil.', 10, 'a.png', 2), (2, 1, 'Salad', 'Chop.', 5, 'b.png', 1)")
	exec("INSERT INTO favorites (user_id, recipe_id) VALUES (2, 1), (3, 1), (2, 2)")

	exec("DELETE FROM users WHERE id = 2")

	rows, err := db.QueryContext(ctx, "SELECT r.favorite_count, COUNT(f.id) FROM recipes r "+
		"LEFT JOIN favorites f ON f.recipe_id = r.id GROUP BY r.id ORDER BY r.id")
	require.NoError(t, err)
	defer rows.Close()
	var got [][2]int64
	for rows.Next() {
		var stored, live int64
		require.NoError(t, rows.Scan(&stored, &live))
		got = append(got, [2]int64{stored, live})
	}
	require.NoError(t, rows.Err())
	assert.Equal(t, [][2]int64{{1, 1}, {0, 0}}, got)
}

func TestMigratorDownWithNothingApplied(t *testing.T) {
	db, err := sql.Open("postgres", testhelpers.StartPostgres(t))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, err = database.NewMigrator(db, "../../migrations").Down(context.Background())
	assert.ErrorIs(t, err, database.ErrNoMigrations)
}
