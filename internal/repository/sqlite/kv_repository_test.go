package sqlite_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/suite"
	"github.com/vytor/palabras/internal/repository"
	"github.com/vytor/palabras/internal/repository/sqlite"
	"github.com/vytor/palabras/internal/testutil"
)

type KVRepositorySuite struct {
	suite.Suite
	db   *sql.DB
	repo repository.KVRepository
}

func (s *KVRepositorySuite) SetupTest() {
	s.db = testutil.NewTestDB(s.T())
	s.repo = sqlite.NewKVRepository(s.db)
}

func (s *KVRepositorySuite) TearDownTest() {
	testutil.MustClose(s.T(), s.db)
}

func (s *KVRepositorySuite) TestGetMissing() {
	entry, err := s.repo.Get(context.Background(), "nope")
	s.Require().NoError(err)
	s.Assert().Nil(entry)
}

func (s *KVRepositorySuite) TestPutBumpsVersion() {
	ctx := context.Background()

	s.Require().NoError(s.repo.Put(ctx, "app_a", `"one"`))
	first, err := s.repo.Get(ctx, "app_a")
	s.Require().NoError(err)
	s.Require().NotNil(first)
	s.Assert().Equal(`"one"`, first.Value)

	s.Require().NoError(s.repo.Put(ctx, "app_a", `"two"`))
	second, err := s.repo.Get(ctx, "app_a")
	s.Require().NoError(err)
	s.Assert().Equal(`"two"`, second.Value)
	s.Assert().Equal(first.Version+1, second.Version)
}

func (s *KVRepositorySuite) TestBulkOperationsRejectEmptyPrefix() {
	ctx := context.Background()
	s.Require().NoError(s.repo.Put(ctx, "other_a", "x"))

	_, err := s.repo.DeletePrefix(ctx, "")
	s.Assert().ErrorIs(err, repository.ErrEmptyPrefix)
	s.Assert().ErrorIs(s.repo.Replace(ctx, "", map[string]string{"k": "v"}), repository.ErrEmptyPrefix)

	other, err := s.repo.Get(ctx, "other_a")
	s.Require().NoError(err)
	s.Require().NotNil(other)
	s.Assert().Equal("x", other.Value)
}

func (s *KVRepositorySuite) TestListAndDeletePrefix() {
	ctx := context.Background()
	s.Require().NoError(s.repo.Put(ctx, "app_b", "2"))
	s.Require().NoError(s.repo.Put(ctx, "app_a", "1"))
	s.Require().NoError(s.repo.Put(ctx, "other_a", "x"))
	s.Require().NoError(s.repo.Put(ctx, "app%wild", "3"))

	entries, err := s.repo.List(ctx, "app_")
	s.Require().NoError(err)
	s.Require().Len(entries, 2)
	s.Assert().Equal("app_a", entries[0].Key)
	s.Assert().Equal("app_b", entries[1].Key)

	n, err := s.repo.DeletePrefix(ctx, "app_")
	s.Require().NoError(err)
	s.Assert().Equal(int64(2), n)

	other, err := s.repo.Get(ctx, "other_a")
	s.Require().NoError(err)
	s.Assert().NotNil(other)
	wild, err := s.repo.Get(ctx, "app%wild")
	s.Require().NoError(err)
	s.Assert().NotNil(wild)
}

func (s *KVRepositorySuite) TestDelete() {
	ctx := context.Background()
	s.Require().NoError(s.repo.Put(ctx, "app_a", "1"))
	s.Require().NoError(s.repo.Delete(ctx, "app_a"))

	entry, err := s.repo.Get(ctx, "app_a")
	s.Require().NoError(err)
	s.Assert().Nil(entry)
}

func (s *KVRepositorySuite) TestReplace() {
	ctx := context.Background()
	s.Require().NoError(s.repo.Put(ctx, "app_old", "1"))
	s.Require().NoError(s.repo.Put(ctx, "keep", "k"))

	err := s.repo.Replace(ctx, "app_", map[string]string{"app_new": "2", "app_more": "3"})
	s.Require().NoError(err)

	entries, err := s.repo.List(ctx, "app_")
	s.Require().NoError(err)
	s.Require().Len(entries, 2)
	s.Assert().Equal("app_more", entries[0].Key)
	s.Assert().Equal("app_new", entries[1].Key)

	keep, err := s.repo.Get(ctx, "keep")
	s.Require().NoError(err)
	s.Assert().NotNil(keep)
}

func (s *KVRepositorySuite) TestSwap() {
	ctx := context.Background()

	err := s.repo.Swap(ctx, []repository.KVWrite{
		{Key: "app_a", Value: "1"},
		{Key: "app_b", Value: "1"},
	})
	s.Require().NoError(err)

	a, err := s.repo.Get(ctx, "app_a")
	s.Require().NoError(err)
	b, err := s.repo.Get(ctx, "app_b")
	s.Require().NoError(err)

	err = s.repo.Swap(ctx, []repository.KVWrite{
		{Key: "app_a", Value: "2", ExpectedVersion: a.Version},
		{Key: "app_b", Value: "2", ExpectedVersion: b.Version},
	})
	s.Require().NoError(err)

	updated, err := s.repo.Get(ctx, "app_a")
	s.Require().NoError(err)
	s.Assert().Equal("2", updated.Value)
	s.Assert().Equal(a.Version+1, updated.Version)
}

func (s *KVRepositorySuite) TestSwapConflictWritesNothing() {
	ctx := context.Background()
	s.Require().NoError(s.repo.Put(ctx, "app_a", "1"))
	s.Require().NoError(s.repo.Put(ctx, "app_b", "1"))
	a, err := s.repo.Get(ctx, "app_a")
	s.Require().NoError(err)
	b, err := s.repo.Get(ctx, "app_b")
	s.Require().NoError(err)

	// b moves on behind our back
	s.Require().NoError(s.repo.Put(ctx, "app_b", "other writer"))

	err = s.repo.Swap(ctx, []repository.KVWrite{
		{Key: "app_a", Value: "2", ExpectedVersion: a.Version},
		{Key: "app_b", Value: "2", ExpectedVersion: b.Version},
	})
	s.Require().ErrorIs(err, repository.ErrVersionConflict)

	unchanged, err := s.repo.Get(ctx, "app_a")
	s.Require().NoError(err)
	s.Assert().Equal("1", unchanged.Value)
	s.Assert().Equal(a.Version, unchanged.Version)
}

func (s *KVRepositorySuite) TestSwapInsertConflict() {
	ctx := context.Background()
	s.Require().NoError(s.repo.Put(ctx, "app_a", "1"))

	err := s.repo.Swap(ctx, []repository.KVWrite{{Key: "app_a", Value: "2"}})
	s.Assert().ErrorIs(err, repository.ErrVersionConflict)
}

func TestKVRepositorySuite(t *testing.T) {
	suite.Run(t, new(KVRepositorySuite))
}
