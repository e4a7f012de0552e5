package addressrepo_test

import (
	"context"
	"testing"
	"time"

	"tracker/internal/adapters/out/tabular"
	"tracker/internal/adapters/out/tabular/addressrepo"
	"tracker/internal/adapters/out/tabular/memory"
	"tracker/internal/core/domain/model/address"
	"tracker/internal/core/ports"

	"github.com/stretchr/testify/suite"
)

type RepositoryTestSuite struct {
	suite.Suite
	ctx     context.Context
	backend *memory.Store
	repo    *addressrepo.Repository
	now     time.Time
}

func TestRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(RepositoryTestSuite))
}

func (s *RepositoryTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.now = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	s.backend = memory.NewStore()
	s.repo = addressrepo.NewRepository(tabular.NewStore(s.backend))
}

func (s *RepositoryTestSuite) newAddress(userID int64, username, city string, at time.Time) *address.Address {
	a, err := address.NewAddress(userID, username, "Full Name", "87011234567", city, "Street 1", "010000", at)
	s.Require().NoError(err)
	return a
}

func (s *RepositoryTestSuite) TestUpsertReplacesByUserID() {
	s.Require().NoError(s.repo.Upsert(s.ctx, s.newAddress(42, "@Alice_K", "Астана", s.now)))
	later := s.now.Add(24 * time.Hour)
	s.Require().NoError(s.repo.Upsert(s.ctx, s.newAddress(42, "alice_k", "Алматы", later)))

	rows, err := s.backend.ReadAll(s.ctx, tabular.AddressesTable)
	s.Require().NoError(err)
	s.Require().Len(rows, 1)

	got, ok, err := s.repo.Get(s.ctx, 42)
	s.Require().NoError(err)
	s.Require().True(ok)
	s.Equal("Алматы", got.City())
	s.Equal("alice_k", got.Username())
	s.Equal(s.now, got.CreatedAt())
	s.Equal(later, got.UpdatedAt())
}

func (s *RepositoryTestSuite) TestGetMissing() {
	_, ok, err := s.repo.Get(s.ctx, 1)

	s.Require().NoError(err)
	s.False(ok)
}

func (s *RepositoryTestSuite) TestGetByUsernames() {
	s.Require().NoError(s.repo.Upsert(s.ctx, s.newAddress(1, "alice_k", "A", s.now)))
	s.Require().NoError(s.repo.Upsert(s.ctx, s.newAddress(2, "bob_bb", "B", s.now)))
	s.Require().NoError(s.repo.Upsert(s.ctx, s.newAddress(3, "carol_c", "C", s.now)))

	got, err := s.repo.GetByUsernames(s.ctx, []string{"@CAROL_C", "alice_k", "@nobody"})

	s.Require().NoError(err)
	s.Require().Len(got, 2)
	s.Equal(int64(1), got[0].UserID())
	s.Equal(int64(3), got[1].UserID())

	none, err := s.repo.GetByUsernames(s.ctx, nil)
	s.Require().NoError(err)
	s.Empty(none)
}

func (s *RepositoryTestSuite) TestGetByUsername() {
	s.Require().NoError(s.repo.Upsert(s.ctx, s.newAddress(7, "bob_bb", "B", s.now)))

	got, ok, err := s.repo.GetByUsername(s.ctx, "@Bob_BB")

	s.Require().NoError(err)
	s.Require().True(ok)
	s.Equal(int64(7), got.UserID())
}

func (s *RepositoryTestSuite) TestDelete() {
	s.Require().NoError(s.repo.Upsert(s.ctx, s.newAddress(1, "alice_k", "A", s.now)))
	s.Require().NoError(s.repo.Upsert(s.ctx, s.newAddress(2, "bob_bb", "B", s.now)))

	removed, err := s.repo.Delete(s.ctx, 1)
	s.Require().NoError(err)
	s.True(removed)

	removed, err = s.repo.Delete(s.ctx, 1)
	s.Require().NoError(err)
	s.False(removed)

	_, ok, err := s.repo.Get(s.ctx, 2)
	s.Require().NoError(err)
	s.True(ok)
}

func (s *RepositoryTestSuite) TestReadsFloatUserIDs() {
	s.Require().NoError(s.backend.WriteAll(s.ctx, tabular.AddressesTable, []ports.Row{
		{"user_id": "42.0", "username": "@Legacy_U", "city": "X"},
		{"user_id": "", "username": "broken"},
	}))

	got, ok, err := s.repo.Get(s.ctx, 42)

	s.Require().NoError(err)
	s.Require().True(ok)
	s.Equal("legacy_u", got.Username())
}
