package client

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"

	_ "github.com/mattn/go-sqlite3"

	"applytrack/internal/domain/job"
)

// SQLiteStorage keeps job applications in a local database for offline
// use. It satisfies job.Repository, so the same service layer runs over
// it and over postgres.
type SQLiteStorage struct {
	db *sql.DB
}

func NewSQLiteStorage(path string) (*SQLiteStorage, error) {
	db, err := sql.Open("sqlite3", path+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	storage := &SQLiteStorage{db: db}
	if err := storage.initTables(); err != nil {
		db.Close()
		return nil, fmt.Errorf("init tables: %w", err)
	}

	return storage, nil
}

func (s *SQLiteStorage) initTables() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS jobs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			owner TEXT NOT NULL,
			company_name TEXT NOT NULL DEFAULT '',
			title TEXT NOT NULL DEFAULT '',
			number_of_applicants TEXT NOT NULL DEFAULT '',
			job_link TEXT NOT NULL DEFAULT '',
			hiring_manager TEXT NOT NULL DEFAULT '',
			status TEXT NOT NULL DEFAULT '',
			application_date TEXT NOT NULL DEFAULT '',
			response_date TEXT NOT NULL DEFAULT '',
			follow_up_date TEXT NOT NULL DEFAULT '',
			follow_up_status TEXT NOT NULL DEFAULT '',
			referral TEXT NOT NULL DEFAULT '',
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		);

		CREATE INDEX IF NOT EXISTS idx_jobs_owner ON jobs(owner);
	`)
	return err
}

func (s *SQLiteStorage) Close() error {
	return s.db.Close()
}

func (s *SQLiteStorage) Create(ctx context.Context, fields job.Fields, ownerID string) (string, error) {
	const query = `
		INSERT INTO jobs (owner, company_name, title, number_of_applicants, job_link,
		                  hiring_manager, status, application_date, response_date,
		                  follow_up_date, follow_up_status, referral)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	result, err := s.db.ExecContext(ctx, query,
		ownerID, fields.CompanyName, fields.Title, fields.NumberOfApplicants,
		fields.JobLink, fields.HiringManager, fields.Status, fields.ApplicationDate,
		fields.ResponseDate, fields.FollowUpDate, fields.FollowUpStatus, fields.Referral,
	)
	if err != nil {
		return "", fmt.Errorf("%w: %v", job.ErrWrite, err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return "", fmt.Errorf("%w: %v", job.ErrWrite, err)
	}
	return strconv.FormatInt(id, 10), nil
}

func (s *SQLiteStorage) Update(ctx context.Context, id string, fields job.Fields) error {
	const query = `
		UPDATE jobs
		SET company_name = ?, title = ?, number_of_applicants = ?, job_link = ?,
		    hiring_manager = ?, status = ?, application_date = ?, response_date = ?,
		    follow_up_date = ?, follow_up_status = ?, referral = ?
		WHERE id = ?`

	result, err := s.db.ExecContext(ctx, query,
		fields.CompanyName, fields.Title, fields.NumberOfApplicants, fields.JobLink,
		fields.HiringManager, fields.Status, fields.ApplicationDate, fields.ResponseDate,
		fields.FollowUpDate, fields.FollowUpStatus, fields.Referral, id,
	)
	if err != nil {
		return fmt.Errorf("%w: %v", job.ErrWrite, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %v", job.ErrWrite, err)
	}
	if affected == 0 {
		return job.ErrNotFound
	}
	return nil
}

func (s *SQLiteStorage) Delete(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM jobs WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("%w: %v", job.ErrWrite, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %v", job.ErrWrite, err)
	}
	if affected == 0 {
		return job.ErrNotFound
	}
	return nil
}

func (s *SQLiteStorage) ListByOwner(ctx context.Context, ownerID string, limit int) ([]job.Record, error) {
	const query = `
		SELECT id, owner, company_name, title, number_of_applicants, job_link,
		       hiring_manager, status, application_date, response_date,
		       follow_up_date, follow_up_status, referral, created_at
		FROM jobs
		WHERE owner = ?
		ORDER BY created_at, id
		LIMIT ?`

	rows, err := s.db.QueryContext(ctx, query, ownerID, limit)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", job.ErrRead, err)
	}
	defer rows.Close()

	var records []job.Record
	for rows.Next() {
		var rec job.Record
		var id int64
		err := rows.Scan(
			&id, &rec.UserID,
			&rec.Fields.CompanyName, &rec.Fields.Title, &rec.Fields.NumberOfApplicants,
			&rec.Fields.JobLink, &rec.Fields.HiringManager, &rec.Fields.Status,
			&rec.Fields.ApplicationDate, &rec.Fields.ResponseDate,
			&rec.Fields.FollowUpDate, &rec.Fields.FollowUpStatus, &rec.Fields.Referral,
			&rec.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan job: %w", err)
		}
		rec.ID = strconv.FormatInt(id, 10)
		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", job.ErrRead, err)
	}
	return records, nil
}
