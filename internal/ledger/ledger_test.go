package ledger

import (
	"context"
	"testing"

	"spendwise/internal/models"
	"spendwise/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

// LedgerTestSuite runs ledger operations for two users sharing one database.
type LedgerTestSuite struct {
	suite.Suite
	db    *storage.DB
	svc   *Service
	ctx   context.Context
	alice *models.User
	bob   *models.User
}

func (suite *LedgerTestSuite) SetupTest() {
	db, err := storage.NewDB(":memory:")
	require.NoError(suite.T(), err, "failed to create test database")
	suite.db = db
	suite.svc = NewService(db)
	suite.ctx = context.Background()

	suite.alice, err = db.CreateUser(suite.ctx, "Alice", "alice@example.com", "x")
	require.NoError(suite.T(), err)
	suite.bob, err = db.CreateUser(suite.ctx, "Bob", "bob@example.com", "x")
	require.NoError(suite.T(), err)
}

func (suite *LedgerTestSuite) TearDownTest() {
	if suite.db != nil {
		suite.db.Close()
	}
}

func lunch() ExpenseInput {
	return ExpenseInput{Amount: "12.34", Date: "2024-05-02", Category: "Food", Description: "Lunch"}
}

func (suite *LedgerTestSuite) TestAddExpense() {
	e, err := suite.svc.AddExpense(suite.ctx, suite.alice.ID, lunch())
	require.NoError(suite.T(), err)
	assert.NotZero(suite.T(), e.ID)
	assert.Equal(suite.T(), "Food", e.CategoryName)

	got, err := suite.svc.GetExpense(suite.ctx, suite.alice.ID, e.ID)
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), "12.34", got.Amount.String())
	assert.Equal(suite.T(), "2024-05-02", got.Date.Format(models.DateLayout))
	assert.Equal(suite.T(), "Lunch", got.Description)
}

func (suite *LedgerTestSuite) TestAddExpenseReusesCategory() {
	_, err := suite.svc.AddExpense(suite.ctx, suite.alice.ID, lunch())
	require.NoError(suite.T(), err)
	in := lunch()
	in.Category = "  Food "
	_, err = suite.svc.AddExpense(suite.ctx, suite.bob.ID, in)
	require.NoError(suite.T(), err)

	n, err := suite.db.CountCategoriesByName(suite.ctx, "Food")
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), 1, n)
}

func (suite *LedgerTestSuite) TestAddExpenseValidation() {
	tests := []struct {
		name string
		edit func(in *ExpenseInput)
		kind error
		msg  string
	}{
		{"blank amount", func(in *ExpenseInput) { in.Amount = "" }, ErrMissingFields, "All required fields must be filled."},
		{"blank description", func(in *ExpenseInput) { in.Description = "  " }, ErrMissingFields, "All required fields must be filled."},
		{"blank category", func(in *ExpenseInput) { in.Category = "" }, ErrMissingFields, "All required fields must be filled."},
		{"bad amount", func(in *ExpenseInput) { in.Amount = "twelve" }, ErrInvalidAmount, "Please enter a valid amount."},
		{"too precise", func(in *ExpenseInput) { in.Amount = "1.234" }, ErrInvalidAmount, "Please enter a valid amount."},
		{"bad date", func(in *ExpenseInput) { in.Date = "02/05/2024" }, ErrInvalidDate, "Please enter a valid date."},
		{"impossible date", func(in *ExpenseInput) { in.Date = "2024-02-30" }, ErrInvalidDate, "Please enter a valid date."},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			in := lunch()
			in.Category = "Fresh " + tt.name
			tt.edit(&in)
			_, err := suite.svc.AddExpense(suite.ctx, suite.alice.ID, in)

			var verr *ValidationError
			require.ErrorAs(suite.T(), err, &verr)
			assert.ErrorIs(suite.T(), err, tt.kind)
			assert.Equal(suite.T(), tt.msg, verr.Message)
		})
	}

	list, err := suite.svc.ListExpenses(suite.ctx, suite.alice.ID, 0)
	require.NoError(suite.T(), err)
	assert.Empty(suite.T(), list)

	cats, err := suite.svc.Categories(suite.ctx)
	require.NoError(suite.T(), err)
	assert.Empty(suite.T(), cats, "a rejected submission must not create a category")
}

func (suite *LedgerTestSuite) TestEditExpense() {
	e, err := suite.svc.AddExpense(suite.ctx, suite.alice.ID, lunch())
	require.NoError(suite.T(), err)

	updated, err := suite.svc.EditExpense(suite.ctx, suite.alice.ID, e.ID, ExpenseInput{
		Amount: "40", Date: "2024-05-03", Category: "Transport", Description: "Taxi",
	})
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), "Transport", updated.CategoryName)

	got, err := suite.svc.GetExpense(suite.ctx, suite.alice.ID, e.ID)
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), "40.00", got.Amount.String())
	assert.Equal(suite.T(), "Taxi", got.Description)
	assert.Equal(suite.T(), "2024-05-03", got.Date.Format(models.DateLayout))
	assert.Equal(suite.T(), "Transport", got.CategoryName)
}

func (suite *LedgerTestSuite) TestEditExpenseInvalidLeavesRowUntouched() {
	e, err := suite.svc.AddExpense(suite.ctx, suite.alice.ID, lunch())
	require.NoError(suite.T(), err)

	in := lunch()
	in.Amount = "-1"
	_, err = suite.svc.EditExpense(suite.ctx, suite.alice.ID, e.ID, in)
	assert.ErrorIs(suite.T(), err, ErrInvalidAmount)

	got, err := suite.svc.GetExpense(suite.ctx, suite.alice.ID, e.ID)
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), "12.34", got.Amount.String())
}

func (suite *LedgerTestSuite) TestCrossUserAccessIsNotFound() {
	e, err := suite.svc.AddExpense(suite.ctx, suite.alice.ID, lunch())
	require.NoError(suite.T(), err)

	_, err = suite.svc.GetExpense(suite.ctx, suite.bob.ID, e.ID)
	assert.ErrorIs(suite.T(), err, ErrNotFound)

	_, err = suite.svc.EditExpense(suite.ctx, suite.bob.ID, e.ID, lunch())
	assert.ErrorIs(suite.T(), err, ErrNotFound)

	// Not-found wins over validation so nothing about the row leaks.
	_, err = suite.svc.EditExpense(suite.ctx, suite.bob.ID, e.ID, ExpenseInput{})
	assert.ErrorIs(suite.T(), err, ErrNotFound)

	err = suite.svc.DeleteExpense(suite.ctx, suite.bob.ID, e.ID)
	assert.ErrorIs(suite.T(), err, ErrNotFound)

	_, err = suite.svc.GetExpense(suite.ctx, suite.alice.ID, 99999)
	assert.ErrorIs(suite.T(), err, ErrNotFound)

	got, err := suite.svc.GetExpense(suite.ctx, suite.alice.ID, e.ID)
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), "Lunch", got.Description)
}

func (suite *LedgerTestSuite) TestDeleteExpense() {
	e, err := suite.svc.AddExpense(suite.ctx, suite.alice.ID, lunch())
	require.NoError(suite.T(), err)

	require.NoError(suite.T(), suite.svc.DeleteExpense(suite.ctx, suite.alice.ID, e.ID))
	assert.ErrorIs(suite.T(), suite.svc.DeleteExpense(suite.ctx, suite.alice.ID, e.ID), ErrNotFound)
}

func (suite *LedgerTestSuite) TestTotalSpentAfterThousandPennies() {
	for range 1000 {
		_, err := suite.svc.AddExpense(suite.ctx, suite.alice.ID, ExpenseInput{
			Amount: "0.01", Date: "2024-05-02", Category: "Misc", Description: "penny",
		})
		require.NoError(suite.T(), err)
	}
	total, err := suite.svc.TotalSpent(suite.ctx, suite.alice.ID, 0)
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), "10.00", total.String())
}

func (suite *LedgerTestSuite) TestBudgets() {
	_, err := suite.svc.AddBudget(suite.ctx, suite.alice.ID, BudgetInput{Amount: "200", Date: "2024-05-01"})
	require.NoError(suite.T(), err)
	_, err = suite.svc.AddBudget(suite.ctx, suite.alice.ID, BudgetInput{Amount: "150.50", Date: "2024-06-01"})
	require.NoError(suite.T(), err)

	_, err = suite.svc.AddBudget(suite.ctx, suite.alice.ID, BudgetInput{Amount: "", Date: "2024-06-01"})
	assert.ErrorIs(suite.T(), err, ErrMissingFields)
	_, err = suite.svc.AddBudget(suite.ctx, suite.alice.ID, BudgetInput{Amount: "abc", Date: "2024-06-01"})
	assert.ErrorIs(suite.T(), err, ErrInvalidAmount)
	_, err = suite.svc.AddBudget(suite.ctx, suite.alice.ID, BudgetInput{Amount: "10", Date: "June"})
	assert.ErrorIs(suite.T(), err, ErrInvalidDate)

	list, err := suite.svc.ListBudgets(suite.ctx, suite.alice.ID)
	require.NoError(suite.T(), err)
	require.Len(suite.T(), list, 2)
	assert.Equal(suite.T(), "150.50", list[0].Amount.String())

	others, err := suite.svc.ListBudgets(suite.ctx, suite.bob.ID)
	require.NoError(suite.T(), err)
	assert.Empty(suite.T(), others)
}

func TestLedgerSuite(t *testing.T) {
	suite.Run(t, new(LedgerTestSuite))
}
