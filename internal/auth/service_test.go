package auth

import (
	"context"
	"testing"

	"spendwise/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

// ServiceTestSuite exercises signup and sign-in against a real database.
type ServiceTestSuite struct {
	suite.Suite
	db  *storage.DB
	svc *Service
	ctx context.Context
}

func (suite *ServiceTestSuite) SetupTest() {
	db, err := storage.NewDB(":memory:")
	require.NoError(suite.T(), err, "failed to create test database")
	suite.db = db
	suite.svc = NewService(db)
	suite.ctx = context.Background()
}

func (suite *ServiceTestSuite) TearDownTest() {
	if suite.db != nil {
		suite.db.Close()
	}
}

func validForm() SignupForm {
	return SignupForm{
		Name:            "Jane Doe",
		Email:           "jane@example.com",
		Password:        "hunter22",
		ConfirmPassword: "hunter22",
	}
}

func (suite *ServiceTestSuite) TestSignupStoresHashAndSigninWorks() {
	user, err := suite.svc.Signup(suite.ctx, validForm())
	require.NoError(suite.T(), err)

	stored, err := suite.db.GetUserByID(suite.ctx, user.ID)
	require.NoError(suite.T(), err)
	assert.NotEqual(suite.T(), "hunter22", stored.PasswordHash)
	assert.True(suite.T(), CheckPassword("hunter22", stored.PasswordHash))

	signedIn, err := suite.svc.Signin(suite.ctx, "jane@example.com", "hunter22")
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), user.ID, signedIn.ID)
	assert.Equal(suite.T(), "Jane Doe", signedIn.Name)
}

func (suite *ServiceTestSuite) TestSignupDuplicateEmail() {
	_, err := suite.svc.Signup(suite.ctx, validForm())
	require.NoError(suite.T(), err)

	form := validForm()
	form.Name = "Other Jane"
	_, err = suite.svc.Signup(suite.ctx, form)
	assert.ErrorIs(suite.T(), err, ErrDuplicateAccount)

	n, err := suite.db.UserCount(suite.ctx)
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), 1, n)
}

func (suite *ServiceTestSuite) TestSignupValidation() {
	tests := []struct {
		name  string
		edit  func(f *SignupForm)
		field string
	}{
		{"short name", func(f *SignupForm) { f.Name = "J" }, "Name"},
		{"blank name", func(f *SignupForm) { f.Name = "   " }, "Name"},
		{"bad email", func(f *SignupForm) { f.Email = "not-an-email" }, "Email"},
		{"short password", func(f *SignupForm) { f.Password, f.ConfirmPassword = "abc", "abc" }, "Password"},
		{"mismatch", func(f *SignupForm) { f.ConfirmPassword = "hunter23" }, "ConfirmPassword"},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			form := validForm()
			tt.edit(&form)
			_, err := suite.svc.Signup(suite.ctx, form)

			var fe FieldErrors
			require.ErrorAs(suite.T(), err, &fe)
			assert.Contains(suite.T(), fe, tt.field)
		})
	}

	n, err := suite.db.UserCount(suite.ctx)
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), 0, n)
}

func (suite *ServiceTestSuite) TestSigninFailuresAreGeneric() {
	_, err := suite.svc.Signup(suite.ctx, validForm())
	require.NoError(suite.T(), err)

	_, err = suite.svc.Signin(suite.ctx, "jane@example.com", "wrong-pass")
	assert.ErrorIs(suite.T(), err, ErrAuthFailure)

	_, err = suite.svc.Signin(suite.ctx, "nobody@example.com", "hunter22")
	assert.ErrorIs(suite.T(), err, ErrAuthFailure)

	_, err = suite.svc.Signin(suite.ctx, "", "")
	assert.ErrorIs(suite.T(), err, ErrAuthFailure)
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceTestSuite))
}

func TestHashPassword(t *testing.T) {
	hash, err := HashPassword("secret1")
	require.NoError(t, err)
	assert.NotEqual(t, "secret1", hash)
	assert.True(t, CheckPassword("secret1", hash))
	assert.False(t, CheckPassword("secret2", hash))

	other, err := HashPassword("secret1")
	require.NoError(t, err)
	assert.NotEqual(t, hash, other, "hashes should be salted")
}
