package services

import (
	"context"

	"github.com/edukit/rollbook/internal/server/models"
	"github.com/edukit/rollbook/internal/server/repositories/students"
)

// StudentService handles CRUD and aggregation over student records.
// All operations require an authenticated caller; that gate lives in the
// transport layer, so the service itself stays plain data access.
type StudentService struct {
	students students.Repository
}

func NewStudentService(repo students.Repository) *StudentService {
	return &StudentService{students: repo}
}

// Create stores a new student record. A duplicate roll number yields
// common.ErrAlreadyExists.
func (s *StudentService) Create(ctx context.Context, student *models.Student) (*models.Student, error) {
	return s.students.Create(ctx, student)
}

// Get returns the student with the given roll number or common.ErrNotFound.
func (s *StudentService) Get(ctx context.Context, rollNum int64) (*models.Student, error) {
	return s.students.Get(ctx, rollNum)
}

// List returns all student records ordered by roll number.
func (s *StudentService) List(ctx context.Context) ([]models.Student, error) {
	return s.students.List(ctx)
}

// Update replaces the mutable fields of an existing student record.
func (s *StudentService) Update(ctx context.Context, student *models.Student) (*models.Student, error) {
	return s.students.Update(ctx, student)
}

// Delete removes the student with the given roll number.
func (s *StudentService) Delete(ctx context.Context, rollNum int64) error {
	return s.students.Delete(ctx, rollNum)
}

// StatsByCourse returns the per-course student count and average age.
func (s *StudentService) StatsByCourse(ctx context.Context) ([]models.CourseStats, error) {
	return s.students.StatsByCourse(ctx)
}
