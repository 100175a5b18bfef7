package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"catalog-service/internal/model"
	"catalog-service/internal/repository"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// uniqueViolation is the Postgres error code raised when an insert or update
// trips a unique index.
const uniqueViolation = "23505"

func translateConstraint(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
		return repository.ErrConflict
	}
	return err
}

type PostgresCategoryRepository struct {
	db *sql.DB
}

func NewPostgresCategoryRepository(db *sql.DB) *PostgresCategoryRepository {
	return &PostgresCategoryRepository{db: db}
}

// childCountExpr counts the non-archived items filed under the category; the
// same number gates permanent deletion.
const childCountExpr = `(SELECT COUNT(*) FROM items i WHERE i.category_id = c.id AND i.archived = FALSE)`

func (r *PostgresCategoryRepository) Create(ctx context.Context, category *model.Category) error {
	if category.ID == "" {
		category.ID = uuid.New().String()
	}
	query := `
		INSERT INTO categories (id, owner_id, name, description, archived, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.db.ExecContext(ctx, query,
		category.ID, category.OwnerID, category.Name, category.Description,
		category.Archived, category.CreatedAt, category.UpdatedAt)
	return translateConstraint(err)
}

func (r *PostgresCategoryRepository) FindOwned(ctx context.Context, id, ownerID string) (*model.Category, error) {
	query := `
		SELECT c.id, c.owner_id, c.name, c.description, c.archived, ` + childCountExpr + `, c.created_at, c.updated_at
		FROM categories c WHERE c.id = $1 AND c.owner_id = $2`
	row := r.db.QueryRowContext(ctx, query, id, ownerID)

	category := &model.Category{}
	err := row.Scan(
		&category.ID, &category.OwnerID, &category.Name, &category.Description,
		&category.Archived, &category.ChildCount,
		&category.CreatedAt, &category.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return category, nil
}

func (r *PostgresCategoryRepository) ExistsByName(ctx context.Context, ownerID, name string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM categories WHERE owner_id = $1 AND LOWER(name) = LOWER($2))`
	var exists bool
	err := r.db.QueryRowContext(ctx, query, ownerID, name).Scan(&exists)
	return exists, err
}

func (r *PostgresCategoryRepository) ExistsByNameExcluding(ctx context.Context, ownerID, name, excludeID string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM categories WHERE owner_id = $1 AND LOWER(name) = LOWER($2) AND id <> $3)`
	var exists bool
	err := r.db.QueryRowContext(ctx, query, ownerID, name, excludeID).Scan(&exists)
	return exists, err
}

func (r *PostgresCategoryRepository) ListOwned(ctx context.Context, ownerID string, includeArchived bool) ([]*model.Category, error) {
	query := `
		SELECT c.id, c.owner_id, c.name, c.description, c.archived, ` + childCountExpr + `, c.created_at, c.updated_at
		FROM categories c WHERE c.owner_id = $1`
	if !includeArchived {
		query += ` AND c.archived = FALSE`
	}
	query += ` ORDER BY c.name`

	rows, err := r.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	categories := []*model.Category{}
	for rows.Next() {
		category := &model.Category{}
		err := rows.Scan(
			&category.ID, &category.OwnerID, &category.Name, &category.Description,
			&category.Archived, &category.ChildCount,
			&category.CreatedAt, &category.UpdatedAt)
		if err != nil {
			return nil, err
		}
		categories = append(categories, category)
	}

	return categories, rows.Err()
}

func (r *PostgresCategoryRepository) Update(ctx context.Context, category *model.Category) error {
	query := `
		UPDATE categories SET name=$1, description=$2, archived=$3, updated_at=$4
		WHERE id=$5 AND owner_id=$6`
	_, err := r.db.ExecContext(ctx, query,
		category.Name, category.Description, category.Archived, category.UpdatedAt,
		category.ID, category.OwnerID)
	return translateConstraint(err)
}

func (r *PostgresCategoryRepository) Delete(ctx context.Context, category *model.Category) error {
	query := `DELETE FROM categories WHERE id = $1 AND owner_id = $2`
	_, err := r.db.ExecContext(ctx, query, category.ID, category.OwnerID)
	return err
}

// Postgres Item repository implementation
type PostgresItemRepository struct {
	db *sql.DB
}

func NewPostgresItemRepository(db *sql.DB) *PostgresItemRepository {
	return &PostgresItemRepository{db: db}
}

func (r *PostgresItemRepository) Create(ctx context.Context, item *model.Item) error {
	if item.ID == "" {
		item.ID = uuid.New().String()
	}
	query := `
		INSERT INTO items (id, owner_id, category_id, title, note, archived, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.db.ExecContext(ctx, query,
		item.ID, item.OwnerID, item.CategoryID, item.Title, item.Note,
		item.Archived, item.CreatedAt, item.UpdatedAt)
	return err
}

func (r *PostgresItemRepository) FindOwned(ctx context.Context, id, ownerID string) (*model.Item, error) {
	query := `
		SELECT id, owner_id, category_id, title, note, archived, created_at, updated_at
		FROM items WHERE id = $1 AND owner_id = $2`
	row := r.db.QueryRowContext(ctx, query, id, ownerID)

	item := &model.Item{}
	err := row.Scan(
		&item.ID, &item.OwnerID, &item.CategoryID, &item.Title, &item.Note,
		&item.Archived, &item.CreatedAt, &item.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return item, nil
}

func (r *PostgresItemRepository) FindByCategory(ctx context.Context, categoryID string) ([]*model.Item, error) {
	query := `
		SELECT id, owner_id, category_id, title, note, archived, created_at, updated_at
		FROM items WHERE category_id = $1 ORDER BY title`
	rows, err := r.db.QueryContext(ctx, query, categoryID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []*model.Item{}
	for rows.Next() {
		item := &model.Item{}
		err := rows.Scan(
			&item.ID, &item.OwnerID, &item.CategoryID, &item.Title, &item.Note,
			&item.Archived, &item.CreatedAt, &item.UpdatedAt)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	return items, rows.Err()
}

func (r *PostgresItemRepository) CountActive(ctx context.Context, categoryID string) (int, error) {
	query := `SELECT COUNT(*) FROM items WHERE category_id = $1 AND archived = FALSE`
	var count int
	err := r.db.QueryRowContext(ctx, query, categoryID).Scan(&count)
	return count, err
}

func (r *PostgresItemRepository) Update(ctx context.Context, item *model.Item) error {
	query := `
		UPDATE items SET title=$1, note=$2, archived=$3, updated_at=$4
		WHERE id=$5 AND owner_id=$6`
	_, err := r.db.ExecContext(ctx, query,
		item.Title, item.Note, item.Archived, item.UpdatedAt,
		item.ID, item.OwnerID)
	return err
}

func (r *PostgresItemRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM items WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query, id)
	return err
}

// Postgres User repository implementation
type PostgresUserRepository struct {
	db *sql.DB
}

func NewPostgresUserRepository(db *sql.DB) *PostgresUserRepository {
	return &PostgresUserRepository{db: db}
}

func (r *PostgresUserRepository) Create(ctx context.Context, user *model.User) error {
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	query := `
		INSERT INTO users (id, provider_id, email, name, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (provider_id) DO UPDATE SET
			email = EXCLUDED.email,
			name = EXCLUDED.name,
			updated_at = NOW()`
	_, err := r.db.ExecContext(ctx, query,
		user.ID, user.ProviderID, user.Email, user.Name,
		user.CreatedAt, user.UpdatedAt)
	return err
}

func (r *PostgresUserRepository) FindByID(ctx context.Context, id string) (*model.User, error) {
	return r.findOne(ctx, `SELECT id, provider_id, email, name, created_at, updated_at FROM users WHERE id = $1`, id)
}

func (r *PostgresUserRepository) FindByProviderID(ctx context.Context, providerID string) (*model.User, error) {
	return r.findOne(ctx, `SELECT id, provider_id, email, name, created_at, updated_at FROM users WHERE provider_id = $1`, providerID)
}

func (r *PostgresUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	return r.findOne(ctx, `SELECT id, provider_id, email, name, created_at, updated_at FROM users WHERE email = $1`, email)
}

func (r *PostgresUserRepository) findOne(ctx context.Context, query string, arg interface{}) (*model.User, error) {
	row := r.db.QueryRowContext(ctx, query, arg)

	user := &model.User{}
	err := row.Scan(
		&user.ID, &user.ProviderID, &user.Email, &user.Name,
		&user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return user, nil
}

func (r *PostgresUserRepository) Update(ctx context.Context, user *model.User) error {
	query := `UPDATE users SET provider_id=$1, email=$2, name=$3, updated_at=NOW() WHERE id=$4`
	_, err := r.db.ExecContext(ctx, query, user.ProviderID, user.Email, user.Name, user.ID)
	return err
}

func (r *PostgresUserRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM users WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query, id)
	return err
}

// InitializeDatabase creates the necessary tables and the unique index that
// authoritatively enforces per-owner case-insensitive category names. The
// pre-checks in the service layer are advisory; this index is what decides
// races.
func InitializeDatabase(db *sql.DB) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id VARCHAR(255) PRIMARY KEY,
			provider_id VARCHAR(255) UNIQUE NOT NULL,
			email VARCHAR(255) NOT NULL,
			name VARCHAR(255) NOT NULL,
			created_at TIMESTAMP NOT NULL,
			updated_at TIMESTAMP NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS categories (
			id VARCHAR(255) PRIMARY KEY,
			owner_id VARCHAR(255) NOT NULL,
			name VARCHAR(100) NOT NULL,
			description VARCHAR(500),
			archived BOOLEAN NOT NULL DEFAULT FALSE,
			created_at TIMESTAMP NOT NULL,
			updated_at TIMESTAMP NOT NULL
		)`,
		`CREATE UNIQUE INDEX IF NOT EXISTS categories_owner_name_idx
			ON categories (owner_id, LOWER(name))`,
		`CREATE TABLE IF NOT EXISTS items (
			id VARCHAR(255) PRIMARY KEY,
			owner_id VARCHAR(255) NOT NULL,
			category_id VARCHAR(255) NOT NULL,
			title VARCHAR(255) NOT NULL,
			note TEXT,
			archived BOOLEAN NOT NULL DEFAULT FALSE,
			created_at TIMESTAMP NOT NULL,
			updated_at TIMESTAMP NOT NULL
		)`,
	}

	for _, stmt := range statements {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("failed to initialize schema: %w", err)
		}
	}

	return nil
}
