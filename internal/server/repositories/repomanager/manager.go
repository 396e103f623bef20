// Package repomanager wires the per-aggregate repositories to a shared
// database handle and owns schema migrations.
package repomanager

import (
	"context"
	"database/sql"

	"github.com/edukit/rollbook/internal/server/repositories/students"
	"github.com/edukit/rollbook/internal/server/repositories/users"
)

type RepositoryManager interface {
	RunMigrations(context.Context) error
	Conn() *sql.DB
	Close() error
	Users() users.Repository
	Students() students.Repository
}
