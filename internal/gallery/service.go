package gallery

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jonahgcarpenter/aprilslilpugs/internal/database"
	"github.com/jonahgcarpenter/aprilslilpugs/internal/storage"
)

var ErrNotFound = errors.New("photo not found")

const (
	uploadURLTTL   = 15 * time.Minute
	downloadURLTTL = 1 * time.Hour
)

type Service interface {
	// RequestUpload mints a fresh object key and a presigned PUT URL.
	RequestUpload(ctx context.Context, req *UploadURLRequest) (*UploadURLResponse, error)
	List(ctx context.Context) ([]Photo, error)
	Create(ctx context.Context, breederID int, req *CreateRequest) (*Photo, error)
	Update(ctx context.Context, id int, req *UpdateRequest) (*Photo, error)
	Delete(ctx context.Context, id int) error
}

type service struct {
	db      database.Service
	storage storage.Service
	logger  *slog.Logger
}

func NewService(db database.Service, store storage.Service, logger *slog.Logger) Service {
	return &service{db: db, storage: store, logger: logger}
}

const photoColumns = `id, breeder_id, file_key, caption, position, created_at, updated_at`

func scanPhoto(row pgx.Row) (*Photo, error) {
	var p Photo
	err := row.Scan(&p.ID, &p.BreederID, &p.FileKey, &p.Caption,
		&p.Position, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *service) RequestUpload(ctx context.Context, req *UploadURLRequest) (*UploadURLResponse, error) {
	// Object keys are random so uploads can never clobber each other.
	key := fmt.Sprintf("gallery/%s%s", uuid.New().String(), path.Ext(req.FileName))

	url, err := s.storage.PresignUpload(ctx, key, req.ContentType, uploadURLTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to presign gallery upload: %w", err)
	}

	return &UploadURLResponse{FileKey: key, UploadURL: url}, nil
}

func (s *service) List(ctx context.Context) ([]Photo, error) {
	const q = `SELECT ` + photoColumns + ` FROM gallery_photo ORDER BY position`

	rows, err := s.db.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("failed to list gallery: %w", err)
	}
	defer rows.Close()

	photos := []Photo{}
	for rows.Next() {
		p, err := scanPhoto(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan photo: %w", err)
		}
		photos = append(photos, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range photos {
		url, err := s.storage.PresignDownload(ctx, photos[i].FileKey, downloadURLTTL)
		if err != nil {
			s.logger.Warn("Failed to presign gallery download",
				"file_key", photos[i].FileKey,
				"error", err)
			continue
		}
		photos[i].URL = url
	}
	return photos, nil
}

func (s *service) Create(ctx context.Context, breederID int, req *CreateRequest) (*Photo, error) {
	const q = `
		INSERT INTO gallery_photo (breeder_id, file_key, caption, position)
		VALUES ($1, $2, $3,
			(SELECT COALESCE(MAX(position), 0) + 1 FROM gallery_photo))
		RETURNING ` + photoColumns

	p, err := scanPhoto(s.db.QueryRow(ctx, q, breederID, req.FileKey, req.Caption))
	if err != nil {
		return nil, fmt.Errorf("failed to create photo: %w", err)
	}
	return p, nil
}

func (s *service) Update(ctx context.Context, id int, req *UpdateRequest) (*Photo, error) {
	const q = `
		UPDATE gallery_photo
		SET caption = $1, position = $2, updated_at = NOW()
		WHERE id = $3
		RETURNING ` + photoColumns

	p, err := scanPhoto(s.db.QueryRow(ctx, q, req.Caption, req.Position, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update photo: %w", err)
	}
	return p, nil
}

func (s *service) Delete(ctx context.Context, id int) error {
	var fileKey string
	err := s.db.QueryRow(ctx,
		`DELETE FROM gallery_photo WHERE id = $1 RETURNING file_key`, id).Scan(&fileKey)
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to delete photo: %w", err)
	}

	// Best effort; an orphaned object is better than a failed delete.
	if err := s.storage.Delete(ctx, fileKey); err != nil {
		s.logger.Warn("Failed to delete photo object",
			"file_key", fileKey,
			"error", err)
	}
	return nil
}
