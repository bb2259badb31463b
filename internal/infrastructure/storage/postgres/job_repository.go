package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/exp/slog"

	"applytrack/internal/domain/job"
)

// JobRepository stores job applications in postgres. Ids are bigserial in
// the table and opaque strings at the domain boundary, converted by
// casting in the queries.
type JobRepository struct {
	pool *pgxpool.Pool
	log  *slog.Logger
}

func NewJobRepository(pool *pgxpool.Pool, log *slog.Logger) *JobRepository {
	return &JobRepository{
		pool: pool,
		log:  log.With("component", "job_repository"),
	}
}

func (r *JobRepository) Create(ctx context.Context, fields job.Fields, ownerID string) (string, error) {
	const query = `
		INSERT INTO jobs (user_id, company_name, title, number_of_applicants, job_link,
		                  hiring_manager, status, application_date, response_date,
		                  follow_up_date, follow_up_status, referral)
		VALUES ($1::bigint, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id::text`

	var id string
	err := r.pool.QueryRow(ctx, query,
		ownerID, fields.CompanyName, fields.Title, fields.NumberOfApplicants,
		fields.JobLink, fields.HiringManager, fields.Status, fields.ApplicationDate,
		fields.ResponseDate, fields.FollowUpDate, fields.FollowUpStatus, fields.Referral,
	).Scan(&id)

	if err != nil {
		r.log.Error("failed to create job", "owner_id", ownerID, "error", err)
		return "", fmt.Errorf("%w: %v", job.ErrWrite, err)
	}

	return id, nil
}

func (r *JobRepository) Update(ctx context.Context, id string, fields job.Fields) error {
	const query = `
		UPDATE jobs
		SET company_name = $2, title = $3, number_of_applicants = $4, job_link = $5,
		    hiring_manager = $6, status = $7, application_date = $8, response_date = $9,
		    follow_up_date = $10, follow_up_status = $11, referral = $12
		WHERE id = $1::bigint`

	result, err := r.pool.Exec(ctx, query,
		id, fields.CompanyName, fields.Title, fields.NumberOfApplicants,
		fields.JobLink, fields.HiringManager, fields.Status, fields.ApplicationDate,
		fields.ResponseDate, fields.FollowUpDate, fields.FollowUpStatus, fields.Referral,
	)

	if err != nil {
		r.log.Error("failed to update job", "job_id", id, "error", err)
		return fmt.Errorf("%w: %v", job.ErrWrite, err)
	}

	if result.RowsAffected() == 0 {
		return job.ErrNotFound
	}

	return nil
}

func (r *JobRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM jobs WHERE id = $1::bigint`

	result, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		r.log.Error("failed to delete job", "job_id", id, "error", err)
		return fmt.Errorf("%w: %v", job.ErrWrite, err)
	}

	if result.RowsAffected() == 0 {
		return job.ErrNotFound
	}

	return nil
}

func (r *JobRepository) ListByOwner(ctx context.Context, ownerID string, limit int) ([]job.Record, error) {
	const query = `
		SELECT id::text, user_id::text, company_name, title, number_of_applicants,
		       job_link, hiring_manager, status, application_date, response_date,
		       follow_up_date, follow_up_status, referral, created_at
		FROM jobs
		WHERE user_id = $1::bigint
		ORDER BY created_at, id
		LIMIT $2`

	rows, err := r.pool.Query(ctx, query, ownerID, limit)
	if err != nil {
		r.log.Error("failed to list jobs", "owner_id", ownerID, "error", err)
		return nil, fmt.Errorf("%w: %v", job.ErrRead, err)
	}
	defer rows.Close()

	return r.scanRecords(rows)
}

func (r *JobRepository) scanRecords(rows pgx.Rows) ([]job.Record, error) {
	var records []job.Record

	for rows.Next() {
		var rec job.Record
		err := rows.Scan(
			&rec.ID, &rec.UserID,
			&rec.Fields.CompanyName, &rec.Fields.Title, &rec.Fields.NumberOfApplicants,
			&rec.Fields.JobLink, &rec.Fields.HiringManager, &rec.Fields.Status,
			&rec.Fields.ApplicationDate, &rec.Fields.ResponseDate,
			&rec.Fields.FollowUpDate, &rec.Fields.FollowUpStatus, &rec.Fields.Referral,
			&rec.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan job: %w", err)
		}
		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", job.ErrRead, err)
	}
	return records, nil
}
