package students

import (
	"context"

	"github.com/edukit/rollbook/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, student *models.Student) (*models.Student, error)
	Get(ctx context.Context, rollNum int64) (*models.Student, error)
	List(ctx context.Context) ([]models.Student, error)
	Update(ctx context.Context, student *models.Student) (*models.Student, error)
	Delete(ctx context.Context, rollNum int64) error
	StatsByCourse(ctx context.Context) ([]models.CourseStats, error)
}
