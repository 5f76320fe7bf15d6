package schemarp_test

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/momeni/fastfood/pkg/adapter/db/postgres"
	"github.com/momeni/fastfood/pkg/adapter/db/postgres/schemarp"
	"github.com/momeni/fastfood/pkg/adapter/hash/scram"
	"github.com/momeni/fastfood/pkg/core/repo"
	"github.com/stretchr/testify/suite"
	gpostgres "gorm.io/driver/postgres"
)

type SchemaTestSuite struct {
	suite.Suite

	ctx  context.Context
	mock sqlmock.Sqlmock
	pool *postgres.Pool
	r    *schemarp.Repo
}

func TestSchemaTestSuite(t *testing.T) {
	suite.Run(t, new(SchemaTestSuite))
}

func (s *SchemaTestSuite) SetupTest() {
	s.ctx = context.Background()
	db, mock, err := sqlmock.New()
	s.Require().NoError(err)
	s.mock = mock
	d := gpostgres.New(gpostgres.Config{Conn: db})
	s.pool, err = postgres.NewPoolWithDialector(
		s.ctx, d, postgres.WithLogLevel("silent"),
	)
	s.Require().NoError(err)
	s.r = schemarp.New("_t1", scram.SHA256())
}

func (s *SchemaTestSuite) TearDownTest() {
	s.mock.ExpectClose()
	s.NoError(s.pool.Close())
	s.NoError(s.mock.ExpectationsWereMet())
}

func (s *SchemaTestSuite) tx(f func(ctx context.Context, q repo.SchemaTxQueryer) error) error {
	return s.pool.Conn(s.ctx, func(ctx context.Context, c repo.Conn) error {
		return c.Tx(ctx, func(ctx context.Context, tx repo.Tx) error {
			return f(ctx, s.r.Tx(tx))
		})
	})
}

func (s *SchemaTestSuite) TestRecreateSchemaForNewRole() {
	s.mock.ExpectBegin()
	s.mock.ExpectExec(`DROP SCHEMA IF EXISTS "fastfood" CASCADE`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	s.mock.ExpectExec(`CREATE SCHEMA "fastfood"`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	s.mock.ExpectQuery(`SELECT count\(\*\) FROM pg_roles WHERE rolname = \$1`).
		WithArgs("ffweb_t1").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	s.mock.ExpectExec(`CREATE ROLE "ffweb_t1" LOGIN`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	s.mock.ExpectExec(`GRANT ALL ON SCHEMA "fastfood" TO "ffweb_t1"`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	s.mock.ExpectExec(
		`ALTER ROLE "ffweb_t1" SET search_path TO "fastfood"`,
	).WillReturnResult(sqlmock.NewResult(0, 0))
	s.mock.ExpectCommit()
	err := s.tx(func(ctx context.Context, q repo.SchemaTxQueryer) error {
		s.Require().NoError(q.DropIfExists(ctx, "fastfood"))
		s.Require().NoError(q.CreateSchema(ctx, "fastfood"))
		s.Require().NoError(q.CreateRoleIfNotExists(ctx, repo.NormalRole))
		s.Require().NoError(q.GrantPrivileges(
			ctx, "fastfood", repo.NormalRole,
		))
		return q.SetSearchPath(ctx, "fastfood", repo.NormalRole)
	})
	s.NoError(err)
}

func (s *SchemaTestSuite) TestExistingRoleIsKept() {
	s.mock.ExpectQuery(`SELECT count\(\*\) FROM pg_roles`).
		WithArgs("admin_t1").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	err := s.pool.Conn(s.ctx, func(ctx context.Context, c repo.Conn) error {
		return s.r.Conn(c).CreateRoleIfNotExists(ctx, repo.AdminRole)
	})
	s.NoError(err)
}

func (s *SchemaTestSuite) TestIdentifiersAreQuoted() {
	s.mock.ExpectExec(`CREATE SCHEMA "bad"";drop"`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	err := s.pool.Conn(s.ctx, func(ctx context.Context, c repo.Conn) error {
		return s.r.Conn(c).CreateSchema(ctx, `bad";drop`)
	})
	s.NoError(err)
}

func (s *SchemaTestSuite) TestChangePasswordsSendsHashes() {
	s.mock.ExpectBegin()
	s.mock.ExpectExec(
		`ALTER ROLE "admin_t1" WITH PASSWORD 'SCRAM-SHA-256\$15000:.+'`,
	).WillReturnResult(sqlmock.NewResult(0, 0))
	s.mock.ExpectExec(
		`ALTER ROLE "ffweb_t1" WITH PASSWORD 'SCRAM-SHA-256\$15000:.+'`,
	).WillReturnResult(sqlmock.NewResult(0, 0))
	s.mock.ExpectCommit()
	err := s.tx(func(ctx context.Context, q repo.SchemaTxQueryer) error {
		return q.ChangePasswords(
			ctx,
			[]repo.Role{repo.AdminRole, repo.NormalRole},
			[]string{"secret1", "secret2"},
		)
	})
	s.NoError(err)
}

func (s *SchemaTestSuite) TestChangePasswordsRejectsUnpairedInput() {
	s.mock.ExpectBegin()
	s.mock.ExpectRollback()
	err := s.tx(func(ctx context.Context, q repo.SchemaTxQueryer) error {
		return q.ChangePasswords(
			ctx, []repo.Role{repo.AdminRole}, nil,
		)
	})
	s.ErrorContains(err, "got 1 roles and 0 passwords")
}
