package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/axellelanca/shortlinks/internal/auth"
	customerrors "github.com/axellelanca/shortlinks/internal/errors"
	"github.com/axellelanca/shortlinks/internal/models"
	"github.com/axellelanca/shortlinks/internal/repository"
)

type AdminServiceTestSuite struct {
	suite.Suite
	ctx      context.Context
	urlRepo  *repository.GormURLRepository
	userRepo *repository.GormUserRepository
	urls     *URLService
	svc      *AdminService
	grant    auth.AdminGrant
	alice    auth.Identity
	bob      auth.Identity
}

func (suite *AdminServiceTestSuite) SetupTest() {
	db := newTestDB(suite.T())

	suite.ctx = context.Background()
	suite.urlRepo = repository.NewURLRepository(db)
	suite.userRepo = repository.NewUserRepository(db)
	suite.urls = NewURLService(suite.urlRepo, 8, 100)
	suite.svc = NewAdminService(suite.urlRepo, suite.userRepo)

	admin := seedUser(suite.T(), suite.userRepo, "admin", models.RoleAdmin)
	grant, err := auth.RequireAdmin(admin)
	suite.Require().NoError(err)
	suite.grant = grant

	suite.alice = seedUser(suite.T(), suite.userRepo, "alice", models.RoleUser)
	suite.bob = seedUser(suite.T(), suite.userRepo, "bob", models.RoleUser)

	for _, u := range []string{"https://example.com/1", "https://example.com/2"} {
		_, err := suite.urls.Create(suite.ctx, suite.alice, u)
		suite.Require().NoError(err)
	}
	_, err = suite.urls.Create(suite.ctx, suite.bob, "https://example.com/1")
	suite.Require().NoError(err)
}

func (suite *AdminServiceTestSuite) TestZeroGrantIsRejected() {
	var zero auth.AdminGrant

	_, err := suite.svc.ListUsers(suite.ctx, zero)
	suite.ErrorIs(err, customerrors.ErrForbidden)

	_, err = suite.svc.ListURLs(suite.ctx, zero)
	suite.ErrorIs(err, customerrors.ErrForbidden)

	suite.ErrorIs(suite.svc.DeleteUser(suite.ctx, zero, suite.alice.UserID), customerrors.ErrForbidden)
	suite.ErrorIs(suite.svc.DeleteURL(suite.ctx, zero, "whatever"), customerrors.ErrForbidden)
}

func (suite *AdminServiceTestSuite) TestListing() {
	users, err := suite.svc.ListUsers(suite.ctx, suite.grant)
	suite.Require().NoError(err)
	suite.Len(users, 3)

	urls, err := suite.svc.ListURLs(suite.ctx, suite.grant)
	suite.Require().NoError(err)
	suite.Len(urls, 3)
}

func (suite *AdminServiceTestSuite) TestDeleteUserCascades() {
	suite.Require().NoError(suite.svc.DeleteUser(suite.ctx, suite.grant, suite.alice.UserID))

	remaining, err := suite.svc.ListURLs(suite.ctx, suite.grant)
	suite.Require().NoError(err)
	suite.Len(remaining, 1)
	suite.Equal(suite.bob.UserID, remaining[0].OwnerID)

	orphans, err := suite.urlRepo.ListByOwner(suite.ctx, suite.alice.UserID)
	suite.Require().NoError(err)
	suite.Empty(orphans)

	_, err = suite.userRepo.FindByID(suite.ctx, suite.alice.UserID)
	suite.ErrorIs(err, customerrors.ErrUserNotFound)

	suite.Run("unknown user", func() {
		err := suite.svc.DeleteUser(suite.ctx, suite.grant, suite.alice.UserID)

		suite.ErrorIs(err, customerrors.ErrUserNotFound)
	})
}

func (suite *AdminServiceTestSuite) TestDeleteURLOfAnyOwner() {
	bobs, err := suite.urls.List(suite.ctx, suite.bob)
	suite.Require().NoError(err)
	suite.Require().Len(bobs, 1)

	suite.Require().NoError(suite.svc.DeleteURL(suite.ctx, suite.grant, bobs[0].ShortCode))

	_, err = suite.urls.Stats(suite.ctx, bobs[0].ShortCode)
	suite.ErrorIs(err, customerrors.ErrShortCodeNotFound)

	suite.ErrorIs(suite.svc.DeleteURL(suite.ctx, suite.grant, bobs[0].ShortCode), customerrors.ErrShortCodeNotFound)
}

func TestAdminServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AdminServiceTestSuite))
}
