package postgres

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/annotext/annotext/internal/domain/article"
	"github.com/annotext/annotext/internal/domain/render"
	apperrors "github.com/annotext/annotext/pkg/errors"
)

// uniqueViolation is the Postgres error code for duplicate keys.
const uniqueViolation = "23505"

// DB is the query surface the repository needs; *pgxpool.Pool satisfies it.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// ArticleRepository persists articles with their document payload as JSONB.
type ArticleRepository struct {
	db DB
}

// NewArticleRepository builds a repository over the given pool.
func NewArticleRepository(db DB) *ArticleRepository {
	return &ArticleRepository{db: db}
}

// Create inserts a new article.
func (r *ArticleRepository) Create(ctx context.Context, a *article.Article) error {
	doc, err := json.Marshal(a.Document)
	if err != nil {
		return apperrors.New(apperrors.ErrCodeSerialization, "document marshal failed").WithCause(err)
	}
	_, err = r.db.Exec(ctx, `
		INSERT INTO articles (id, title, document, voice, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		a.ID, a.Title, doc, a.Voice, a.CreatedAt, a.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return apperrors.New(apperrors.ErrCodeDocumentConflict, "article already exists").
				WithDetail(a.ID.String()).WithCause(err)
		}
		return apperrors.New(apperrors.ErrCodeDatabaseError, "article insert failed").WithCause(err)
	}
	return nil
}

// GetByID loads one article.
func (r *ArticleRepository) GetByID(ctx context.Context, id uuid.UUID) (*article.Article, error) {
	row := r.db.QueryRow(ctx, `
		SELECT id, title, document, voice, created_at, updated_at
		FROM articles WHERE id = $1`, id)
	a, err := scanArticle(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.New(apperrors.ErrCodeArticleNotFound, "article not found").
				WithDetail(id.String())
		}
		return nil, err
	}
	return a, nil
}

// List returns articles newest first.
func (r *ArticleRepository) List(ctx context.Context, limit, offset int) ([]*article.Article, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, title, document, voice, created_at, updated_at
		FROM articles ORDER BY created_at DESC LIMIT $1 OFFSET $2`,
		limit, offset)
	if err != nil {
		return nil, apperrors.New(apperrors.ErrCodeDatabaseError, "article list failed").WithCause(err)
	}
	defer rows.Close()

	var out []*article.Article
	for rows.Next() {
		a, err := scanArticle(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.New(apperrors.ErrCodeDatabaseError, "article list scan failed").WithCause(err)
	}
	return out, nil
}

// Update rewrites title, document and voice.
func (r *ArticleRepository) Update(ctx context.Context, a *article.Article) error {
	doc, err := json.Marshal(a.Document)
	if err != nil {
		return apperrors.New(apperrors.ErrCodeSerialization, "document marshal failed").WithCause(err)
	}
	tag, err := r.db.Exec(ctx, `
		UPDATE articles SET title = $2, document = $3, voice = $4, updated_at = $5
		WHERE id = $1`,
		a.ID, a.Title, doc, a.Voice, a.UpdatedAt,
	)
	if err != nil {
		return apperrors.New(apperrors.ErrCodeDatabaseError, "article update failed").WithCause(err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.New(apperrors.ErrCodeArticleNotFound, "article not found").WithDetail(a.ID.String())
	}
	return nil
}

// Delete removes an article.
func (r *ArticleRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM articles WHERE id = $1`, id)
	if err != nil {
		return apperrors.New(apperrors.ErrCodeDatabaseError, "article delete failed").WithCause(err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.New(apperrors.ErrCodeArticleNotFound, "article not found").WithDetail(id.String())
	}
	return nil
}

func scanArticle(row pgx.Row) (*article.Article, error) {
	var (
		a   article.Article
		doc []byte
	)
	if err := row.Scan(&a.ID, &a.Title, &doc, &a.Voice, &a.CreatedAt, &a.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		return nil, apperrors.New(apperrors.ErrCodeDatabaseError, "article scan failed").WithCause(err)
	}
	var document render.Document
	if err := json.Unmarshal(doc, &document); err != nil {
		return nil, apperrors.New(apperrors.ErrCodeDocumentDecode, "stored document is not valid JSON").
			WithDetail(a.ID.String()).WithCause(err)
	}
	a.Document = document
	return &a, nil
}
