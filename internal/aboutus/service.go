package aboutus

import (
	"context"
	"fmt"

	"github.com/jonahgcarpenter/aprilslilpugs/internal/database"
)

type Service interface {
	Get(ctx context.Context) (*Content, error)
	Replace(ctx context.Context, breederID int, req *UpdateRequest) (*Content, error)
}

type service struct {
	db database.Service
}

func NewService(db database.Service) Service {
	return &service{db: db}
}

func (s *service) Get(ctx context.Context) (*Content, error) {
	const q = `
		SELECT section, item FROM about_us_items
		ORDER BY section, display_order`

	rows, err := s.db.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("failed to load about page: %w", err)
	}
	defer rows.Close()

	content := &Content{Services: []string{}, Specialty: []string{}, Fun: []string{}}
	for rows.Next() {
		var section, item string
		if err := rows.Scan(&section, &item); err != nil {
			return nil, fmt.Errorf("failed to scan about item: %w", err)
		}
		switch section {
		case SectionServices:
			content.Services = append(content.Services, item)
		case SectionSpecialty:
			content.Specialty = append(content.Specialty, item)
		case SectionFun:
			content.Fun = append(content.Fun, item)
		}
	}
	return content, rows.Err()
}

// Replace swaps the whole page content in one transaction so readers never
// see a half-updated mix of old and new items.
func (s *service) Replace(ctx context.Context, breederID int, req *UpdateRequest) (*Content, error) {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin about update: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM about_us_items WHERE breeder_id = $1`, breederID); err != nil {
		return nil, fmt.Errorf("failed to clear about items: %w", err)
	}

	const insert = `
		INSERT INTO about_us_items (breeder_id, section, item, display_order)
		VALUES ($1, $2, $3, $4)`

	lists := map[string][]string{
		SectionServices:  req.Services,
		SectionSpecialty: req.Specialty,
		SectionFun:       req.Fun,
	}
	for _, section := range sections {
		for i, item := range lists[section] {
			if _, err := tx.Exec(ctx, insert, breederID, section, item, i); err != nil {
				return nil, fmt.Errorf("failed to insert about item: %w", err)
			}
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit about update: %w", err)
	}

	return &Content{Services: req.Services, Specialty: req.Specialty, Fun: req.Fun}, nil
}
