package repository

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/axellelanca/shortlinks/internal/database"
	customerrors "github.com/axellelanca/shortlinks/internal/errors"
	"github.com/axellelanca/shortlinks/internal/models"
)

type RepositoryTestSuite struct {
	suite.Suite
	ctx   context.Context
	urls  *GormURLRepository
	users *GormUserRepository
	alice *models.User
	bob   *models.User
}

func (suite *RepositoryTestSuite) SetupTest() {
	db, err := database.OpenSQLite(filepath.Join(suite.T().TempDir(), "repo.db"))
	suite.Require().NoError(err)
	suite.T().Cleanup(func() {
		database.Close(db)
	})
	suite.Require().NoError(database.Migrate(db))

	suite.ctx = context.Background()
	suite.urls = NewURLRepository(db)
	suite.users = NewUserRepository(db)
	suite.alice = suite.createUser("alice")
	suite.bob = suite.createUser("bob")
}

func (suite *RepositoryTestSuite) createUser(username string) *models.User {
	user := &models.User{
		Email:          username + "@example.com",
		Username:       username,
		HashedPassword: "hash",
		Role:           models.RoleUser,
		IsActive:       true,
	}
	suite.Require().NoError(suite.users.Create(suite.ctx, user))
	return user
}

func (suite *RepositoryTestSuite) createURL(owner *models.User, code, longURL string) *models.ShortURL {
	shortURL := &models.ShortURL{URL: longURL, ShortCode: code, OwnerID: owner.ID}
	suite.Require().NoError(suite.urls.Create(suite.ctx, shortURL))
	return shortURL
}

func (suite *RepositoryTestSuite) TestCreate() {
	suite.Run("success", func() {
		shortURL := suite.createURL(suite.alice, "abc12345", "https://example.com")

		suite.NotZero(shortURL.ID)
		suite.Zero(shortURL.AccessCount)
	})

	suite.Run("short code exists for another owner", func() {
		err := suite.urls.Create(suite.ctx, &models.ShortURL{URL: "https://other.example.com", ShortCode: "abc12345", OwnerID: suite.bob.ID})

		suite.ErrorIs(err, customerrors.ErrShortCodeExists)
	})

	suite.Run("unknown owner is rejected by the foreign key", func() {
		err := suite.urls.Create(suite.ctx, &models.ShortURL{URL: "https://example.com", ShortCode: "orphan00", OwnerID: 9999})

		suite.ErrorIs(err, customerrors.ErrUserNotFound)
		suite.NotErrorIs(err, customerrors.ErrShortCodeExists)
	})
}

func (suite *RepositoryTestSuite) TestFind() {
	created := suite.createURL(suite.alice, "abc12345", "https://example.com")

	suite.Run("by short code", func() {
		shortURL, err := suite.urls.FindByShortCode(suite.ctx, "abc12345")

		suite.Require().NoError(err)
		suite.Equal(created.ID, shortURL.ID)
	})

	suite.Run("by owner and url", func() {
		shortURL, err := suite.urls.FindByOwnerAndURL(suite.ctx, suite.alice.ID, "https://example.com")

		suite.Require().NoError(err)
		suite.Equal(created.ID, shortURL.ID)
	})

	suite.Run("by other owner and url", func() {
		_, err := suite.urls.FindByOwnerAndURL(suite.ctx, suite.bob.ID, "https://example.com")

		suite.ErrorIs(err, customerrors.ErrNotFound)
	})

	suite.Run("missing short code", func() {
		_, err := suite.urls.FindByShortCode(suite.ctx, "missing0")

		suite.ErrorIs(err, customerrors.ErrShortCodeNotFound)
	})
}

func (suite *RepositoryTestSuite) TestListByOwner() {
	suite.createURL(suite.alice, "a0000001", "https://example.com/1")
	suite.createURL(suite.bob, "b0000001", "https://example.com/1")
	suite.createURL(suite.alice, "a0000002", "https://example.com/2")

	owned, err := suite.urls.ListByOwner(suite.ctx, suite.alice.ID)
	suite.Require().NoError(err)
	suite.Require().Len(owned, 2)
	suite.Equal("a0000001", owned[0].ShortCode)
	suite.Equal("a0000002", owned[1].ShortCode)

	none, err := suite.urls.ListByOwner(suite.ctx, 9999)
	suite.Require().NoError(err)
	suite.NotNil(none)
	suite.Empty(none)
}

func (suite *RepositoryTestSuite) TestUpdateURLForOwner() {
	suite.createURL(suite.alice, "abc12345", "https://example.com/old")

	suite.Run("other owner", func() {
		_, err := suite.urls.UpdateURLForOwner(suite.ctx, suite.bob.ID, "abc12345", "https://example.com/new")

		suite.ErrorIs(err, customerrors.ErrShortCodeNotFound)
	})

	suite.Run("owner", func() {
		shortURL, err := suite.urls.UpdateURLForOwner(suite.ctx, suite.alice.ID, "abc12345", "https://example.com/new")

		suite.Require().NoError(err)
		suite.Equal("https://example.com/new", shortURL.URL)
	})
}

func (suite *RepositoryTestSuite) TestIncrementAccessCount() {
	suite.createURL(suite.alice, "abc12345", "https://example.com")

	for i := 1; i <= 3; i++ {
		shortURL, err := suite.urls.IncrementAccessCount(suite.ctx, "abc12345")
		suite.Require().NoError(err)
		suite.EqualValues(i, shortURL.AccessCount)
	}

	_, err := suite.urls.IncrementAccessCount(suite.ctx, "missing0")
	suite.ErrorIs(err, customerrors.ErrShortCodeNotFound)
}

func (suite *RepositoryTestSuite) TestDelete() {
	suite.createURL(suite.alice, "abc12345", "https://example.com")
	suite.createURL(suite.bob, "def12345", "https://example.com")

	suite.ErrorIs(suite.urls.DeleteForOwner(suite.ctx, suite.bob.ID, "abc12345"), customerrors.ErrShortCodeNotFound)
	suite.NoError(suite.urls.DeleteForOwner(suite.ctx, suite.alice.ID, "abc12345"))
	suite.ErrorIs(suite.urls.DeleteForOwner(suite.ctx, suite.alice.ID, "abc12345"), customerrors.ErrShortCodeNotFound)

	suite.NoError(suite.urls.DeleteByShortCode(suite.ctx, "def12345"))
	suite.ErrorIs(suite.urls.DeleteByShortCode(suite.ctx, "def12345"), customerrors.ErrShortCodeNotFound)

	all, err := suite.urls.ListAll(suite.ctx)
	suite.Require().NoError(err)
	suite.Empty(all)
}

func (suite *RepositoryTestSuite) TestUsers() {
	suite.Run("duplicate username", func() {
		err := suite.users.Create(suite.ctx, &models.User{Email: "x@example.com", Username: "alice", HashedPassword: "h", Role: models.RoleUser})

		suite.ErrorIs(err, customerrors.ErrUserExists)
	})

	suite.Run("find", func() {
		byName, err := suite.users.FindByUsername(suite.ctx, "bob")
		suite.Require().NoError(err)
		suite.Equal(suite.bob.ID, byName.ID)

		byID, err := suite.users.FindByID(suite.ctx, suite.bob.ID)
		suite.Require().NoError(err)
		suite.Equal("bob", byID.Username)

		_, err = suite.users.FindByUsername(suite.ctx, "mallory")
		suite.ErrorIs(err, customerrors.ErrUserNotFound)
	})

	suite.Run("update password", func() {
		suite.Require().NoError(suite.users.UpdatePassword(suite.ctx, suite.bob.ID, "new-hash"))

		user, err := suite.users.FindByID(suite.ctx, suite.bob.ID)
		suite.Require().NoError(err)
		suite.Equal("new-hash", user.HashedPassword)

		suite.ErrorIs(suite.users.UpdatePassword(suite.ctx, 9999, "h"), customerrors.ErrUserNotFound)
	})

	suite.Run("list", func() {
		users, err := suite.users.ListAll(suite.ctx)

		suite.Require().NoError(err)
		suite.Len(users, 2)
	})
}

func (suite *RepositoryTestSuite) TestDeleteWithURLs() {
	suite.createURL(suite.alice, "a0000001", "https://example.com/1")
	suite.createURL(suite.alice, "a0000002", "https://example.com/2")
	suite.createURL(suite.bob, "b0000001", "https://example.com/1")

	suite.Require().NoError(suite.users.DeleteWithURLs(suite.ctx, suite.alice.ID))

	owned, err := suite.urls.ListByOwner(suite.ctx, suite.alice.ID)
	suite.Require().NoError(err)
	suite.Empty(owned)

	all, err := suite.urls.ListAll(suite.ctx)
	suite.Require().NoError(err)
	suite.Len(all, 1)

	suite.ErrorIs(suite.users.DeleteWithURLs(suite.ctx, suite.alice.ID), customerrors.ErrUserNotFound)
}

func TestRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(RepositoryTestSuite))
}
