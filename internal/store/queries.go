// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/ifportal/portal-go/internal/model"
)

// Queries wraps a database handle with the portal's parameterized statements.
type Queries struct {
	db *sql.DB
}

// New creates a Queries instance for the given database.
func New(db *sql.DB) *Queries {
	return &Queries{db: db}
}

// CreateUserParams holds the fields for CreateUser.
type CreateUserParams struct {
	Name         string
	Email        string
	PasswordHash string
	EnrollmentID int64
	CreatedAt    time.Time
}

// CreateUser inserts a new user row and returns it.
func (q *Queries) CreateUser(ctx context.Context, arg CreateUserParams) (model.User, error) {
	res, err := q.db.ExecContext(ctx,
		`INSERT INTO users (name, email, password_hash, enrollment_id, created_at) VALUES (?, ?, ?, ?, ?)`,
		arg.Name, arg.Email, arg.PasswordHash, arg.EnrollmentID, arg.CreatedAt,
	)
	if err != nil {
		return model.User{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.User{}, err
	}
	return model.User{
		ID:           id,
		Name:         arg.Name,
		Email:        arg.Email,
		PasswordHash: arg.PasswordHash,
		EnrollmentID: arg.EnrollmentID,
		CreatedAt:    arg.CreatedAt,
	}, nil
}

// GetUserByEmail returns the user with the given email.
// Returns sql.ErrNoRows when no such user exists.
func (q *Queries) GetUserByEmail(ctx context.Context, email string) (model.User, error) {
	var u model.User
	err := q.db.QueryRowContext(ctx,
		`SELECT id, name, email, password_hash, enrollment_id, created_at FROM users WHERE email = ?`,
		email,
	).Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.EnrollmentID, &u.CreatedAt)
	return u, err
}

// CountUsers returns the total number of registered users.
func (q *Queries) CountUsers(ctx context.Context) (int64, error) {
	var n int64
	err := q.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&n)
	return n, err
}

// UpdateUserPasswordParams holds the fields for UpdateUserPassword.
type UpdateUserPasswordParams struct {
	PasswordHash string
	ID           int64
}

// UpdateUserPassword replaces a user's stored password hash.
func (q *Queries) UpdateUserPassword(ctx context.Context, arg UpdateUserPasswordParams) error {
	_, err := q.db.ExecContext(ctx,
		`UPDATE users SET password_hash = ? WHERE id = ?`,
		arg.PasswordHash, arg.ID,
	)
	return err
}

// GetEnrollmentByNumber returns the whitelist entry for an enrollment number.
// Returns sql.ErrNoRows when the number is not whitelisted.
func (q *Queries) GetEnrollmentByNumber(ctx context.Context, number string) (model.Enrollment, error) {
	var e model.Enrollment
	err := q.db.QueryRowContext(ctx,
		`SELECT id, number FROM enrollments WHERE number = ?`,
		number,
	).Scan(&e.ID, &e.Number)
	return e, err
}

// CreateEnrollment inserts an enrollment whitelist entry.
func (q *Queries) CreateEnrollment(ctx context.Context, number string) (model.Enrollment, error) {
	res, err := q.db.ExecContext(ctx, `INSERT INTO enrollments (number) VALUES (?)`, number)
	if err != nil {
		return model.Enrollment{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.Enrollment{}, err
	}
	return model.Enrollment{ID: id, Number: number}, nil
}

// CreateNewsPostParams holds the fields for CreateNewsPost.
type CreateNewsPostParams struct {
	Title     string
	Subtitle  string
	Body      string
	Images    [][]byte
	CreatedAt time.Time
}

// CreateNewsPost inserts a news post and its ordered images in one transaction.
func (q *Queries) CreateNewsPost(ctx context.Context, arg CreateNewsPostParams) (model.NewsPost, error) {
	tx, err := q.db.BeginTx(ctx, nil)
	if err != nil {
		return model.NewsPost{}, fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	res, err := tx.ExecContext(ctx,
		`INSERT INTO news (title, subtitle, body, created_at) VALUES (?, ?, ?, ?)`,
		arg.Title, arg.Subtitle, arg.Body, arg.CreatedAt,
	)
	if err != nil {
		return model.NewsPost{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.NewsPost{}, err
	}

	for i, img := range arg.Images {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO news_images (news_id, position, data) VALUES (?, ?, ?)`,
			id, i, img,
		); err != nil {
			return model.NewsPost{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		return model.NewsPost{}, fmt.Errorf("committing transaction: %w", err)
	}

	return model.NewsPost{
		ID:        id,
		Title:     arg.Title,
		Subtitle:  arg.Subtitle,
		Body:      arg.Body,
		Images:    arg.Images,
		CreatedAt: arg.CreatedAt,
	}, nil
}

// ListNewsPosts returns all news posts newest-first, each with its images
// in upload order. Posts without images carry a nil image slice.
func (q *Queries) ListNewsPosts(ctx context.Context) ([]model.NewsPost, error) {
	rows, err := q.db.QueryContext(ctx,
		`SELECT id, title, subtitle, body, created_at FROM news ORDER BY id DESC`,
	)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = rows.Close()
	}()

	var posts []model.NewsPost
	index := make(map[int64]int)
	for rows.Next() {
		var p model.NewsPost
		if err := rows.Scan(&p.ID, &p.Title, &p.Subtitle, &p.Body, &p.CreatedAt); err != nil {
			return nil, err
		}
		index[p.ID] = len(posts)
		posts = append(posts, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(posts) == 0 {
		return posts, nil
	}

	imgRows, err := q.db.QueryContext(ctx,
		`SELECT news_id, data FROM news_images ORDER BY news_id, position`,
	)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = imgRows.Close()
	}()

	for imgRows.Next() {
		var newsID int64
		var data []byte
		if err := imgRows.Scan(&newsID, &data); err != nil {
			return nil, err
		}
		if i, ok := index[newsID]; ok {
			posts[i].Images = append(posts[i].Images, data)
		}
	}
	return posts, imgRows.Err()
}

// CreateProfessorParams holds the fields for CreateProfessor.
type CreateProfessorParams struct {
	Name      string
	Role      string
	Quote     string
	Photo     []byte
	CreatedAt time.Time
}

// CreateProfessor inserts a professor profile. A nil or empty photo is
// stored as NULL.
func (q *Queries) CreateProfessor(ctx context.Context, arg CreateProfessorParams) (model.Professor, error) {
	var photo any
	if len(arg.Photo) > 0 {
		photo = arg.Photo
	}
	res, err := q.db.ExecContext(ctx,
		`INSERT INTO professors (name, role, quote, photo, created_at) VALUES (?, ?, ?, ?, ?)`,
		arg.Name, arg.Role, arg.Quote, photo, arg.CreatedAt,
	)
	if err != nil {
		return model.Professor{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.Professor{}, err
	}
	return model.Professor{
		ID:        id,
		Name:      arg.Name,
		Role:      arg.Role,
		Quote:     arg.Quote,
		Photo:     arg.Photo,
		CreatedAt: arg.CreatedAt,
	}, nil
}

// ListProfessors returns all professors ordered by name. NULL photos scan
// as nil.
func (q *Queries) ListProfessors(ctx context.Context) ([]model.Professor, error) {
	rows, err := q.db.QueryContext(ctx,
		`SELECT id, name, role, quote, photo, created_at FROM professors ORDER BY name`,
	)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = rows.Close()
	}()

	var profs []model.Professor
	for rows.Next() {
		var p model.Professor
		if err := rows.Scan(&p.ID, &p.Name, &p.Role, &p.Quote, &p.Photo, &p.CreatedAt); err != nil {
			return nil, err
		}
		profs = append(profs, p)
	}
	return profs, rows.Err()
}
