package students

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/edukit/rollbook/internal/common"
	"github.com/edukit/rollbook/internal/dbx"
	"github.com/edukit/rollbook/internal/server/models"
)

const uniqueViolation = "23505"

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, student *models.Student) (*models.Student, error) {

	query :=
		`INSERT INTO students (roll_num, name, age, course)
		 VALUES ($1, $2, $3, $4)
		 `

	_, err := r.db.ExecContext(ctx, query,
		student.RollNum, student.Name, student.Age, student.Course)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, common.ErrAlreadyExists
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return student, nil
}

func (r *PostgresRepository) Get(ctx context.Context, rollNum int64) (*models.Student, error) {
	query :=
		`SELECT roll_num, name, age, course FROM students
		 WHERE roll_num = $1
		 `

	student := &models.Student{}
	err := r.db.QueryRowContext(ctx, query, rollNum).Scan(&student.RollNum, &student.Name, &student.Age, &student.Course)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return student, nil
}

func (r *PostgresRepository) List(ctx context.Context) ([]models.Student, error) {
	query :=
		`SELECT roll_num, name, age, course FROM students
		 ORDER BY roll_num
		 `

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := make([]models.Student, 0)
	for rows.Next() {
		var s models.Student
		if err := rows.Scan(&s.RollNum, &s.Name, &s.Age, &s.Course); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}

func (r *PostgresRepository) Update(ctx context.Context, student *models.Student) (*models.Student, error) {
	query :=
		`UPDATE students SET name = $2, age = $3, course = $4
		 WHERE roll_num = $1
		 `

	res, err := r.db.ExecContext(ctx, query,
		student.RollNum, student.Name, student.Age, student.Course)

	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	if affected == 0 {
		return nil, common.ErrNotFound
	}

	return student, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, rollNum int64) error {
	query :=
		`DELETE FROM students
		 WHERE roll_num = $1
		 `

	res, err := r.db.ExecContext(ctx, query, rollNum)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if affected == 0 {
		return common.ErrNotFound
	}

	return nil
}

func (r *PostgresRepository) StatsByCourse(ctx context.Context) ([]models.CourseStats, error) {
	query :=
		`SELECT course, COUNT(*), AVG(age) FROM students
		 GROUP BY course
		 ORDER BY course
		 `

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := make([]models.CourseStats, 0)
	for rows.Next() {
		var s models.CourseStats
		if err := rows.Scan(&s.Course, &s.Students, &s.AverageAge); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}
