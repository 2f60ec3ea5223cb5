package report

import (
	"context"
	"testing"
	"time"

	"spendwise/internal/ledger"
	"spendwise/internal/models"
	"spendwise/internal/money"
	"spendwise/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

func date(s string) time.Time {
	d, err := models.ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestMonthBounds(t *testing.T) {
	tests := []struct {
		today, start, next, prev string
	}{
		{"2024-03-15", "2024-03-01", "2024-04-01", "2024-02-01"},
		{"2024-03-31", "2024-03-01", "2024-04-01", "2024-02-01"},
		{"2024-01-01", "2024-01-01", "2024-02-01", "2023-12-01"},
		{"2023-12-31", "2023-12-01", "2024-01-01", "2023-11-01"},
	}
	for _, tt := range tests {
		t.Run(tt.today, func(t *testing.T) {
			today := date(tt.today)
			assert.Equal(t, tt.start, MonthStart(today).Format(models.DateLayout))
			assert.Equal(t, tt.next, NextMonthStart(today).Format(models.DateLayout))
			assert.Equal(t, tt.prev, PreviousMonthStart(today).Format(models.DateLayout))
		})
	}
}

func TestEndOfToday(t *testing.T) {
	tests := []struct {
		today time.Time
		want  string
	}{
		{date("2024-05-10"), "2024-05-11"},
		{date("2024-05-31"), "2024-06-01"},
		{date("2023-12-31"), "2024-01-01"},
		{time.Date(2024, 5, 10, 23, 59, 0, 0, time.UTC), "2024-05-11"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, EndOfToday(tt.today).Format(models.DateLayout), tt.today.String())
	}
}

func TestTop(t *testing.T) {
	_, ok := Top(nil)
	assert.False(t, ok)

	top, ok := Top([]models.CategoryTotal{
		{CategoryID: 1, Name: "Books", Total: 500},
		{CategoryID: 2, Name: "Food", Total: 900},
		{CategoryID: 3, Name: "Games", Total: 900},
		{CategoryID: 4, Name: "Rent", Total: 100},
	})
	require.True(t, ok)
	assert.Equal(t, "Food", top.Name, "ties go to the first name in order")
}

// SnapshotTestSuite checks the dashboard numbers against a seeded ledger.
type SnapshotTestSuite struct {
	suite.Suite
	db     *storage.DB
	ledger *ledger.Service
	report *Service
	ctx    context.Context
	user   *models.User
	today  time.Time
}

func (suite *SnapshotTestSuite) SetupTest() {
	db, err := storage.NewDB(":memory:")
	require.NoError(suite.T(), err, "failed to create test database")
	suite.db = db
	suite.ledger = ledger.NewService(db)
	suite.report = NewService(db)
	suite.ctx = context.Background()
	suite.today = date("2024-03-15")

	suite.user, err = db.CreateUser(suite.ctx, "Alice", "alice@example.com", "x")
	require.NoError(suite.T(), err)
}

func (suite *SnapshotTestSuite) TearDownTest() {
	if suite.db != nil {
		suite.db.Close()
	}
}

func (suite *SnapshotTestSuite) spend(amount, day, category string) {
	_, err := suite.ledger.AddExpense(suite.ctx, suite.user.ID, ledger.ExpenseInput{
		Amount: amount, Date: day, Category: category, Description: "test",
	})
	require.NoError(suite.T(), err)
}

func (suite *SnapshotTestSuite) TestDashboardScenario() {
	suite.spend("100", "2024-03-05", "Food")
	suite.spend("50", "2024-02-10", "Food")
	_, err := suite.ledger.AddBudget(suite.ctx, suite.user.ID, ledger.BudgetInput{Amount: "200", Date: "2024-03-01"})
	require.NoError(suite.T(), err)

	snap, err := suite.report.Snapshot(suite.ctx, suite.user.ID, suite.today)
	require.NoError(suite.T(), err)

	assert.Equal(suite.T(), "100.00", snap.TotalSpent.String())
	assert.Equal(suite.T(), "200.00", snap.TotalBudget.String())
	assert.Equal(suite.T(), "100.00", snap.RemainingDisplay().String())
	require.True(suite.T(), snap.SpendingChange.Valid)
	assert.Equal(suite.T(), 100.0, snap.SpendingChange.Percent)

	assert.Equal(suite.T(), "Food", snap.TopCategory)
	assert.Equal(suite.T(), "100.00", snap.TopCategoryTotal.String())
	assert.Equal(suite.T(), 100.0, snap.TopCategoryChange.Percent)

	assert.Equal(suite.T(), []string{"Food"}, snap.ChartLabels)
	assert.Equal(suite.T(), []float64{100}, snap.ChartValues)
}

func (suite *SnapshotTestSuite) TestEmptyMonth() {
	snap, err := suite.report.Snapshot(suite.ctx, suite.user.ID, suite.today)
	require.NoError(suite.T(), err)

	assert.Equal(suite.T(), money.Amount(0), snap.TotalSpent)
	assert.Equal(suite.T(), NoCategory, snap.TopCategory)
	assert.False(suite.T(), snap.SpendingChange.Valid)
	assert.False(suite.T(), snap.RemainingChange.Valid)
	assert.False(suite.T(), snap.TopCategoryChange.Valid)
	assert.Empty(suite.T(), snap.ChartLabels)
}

func (suite *SnapshotTestSuite) TestOverspentRemaining() {
	suite.spend("300", "2024-03-02", "Rent")
	suite.spend("20", "2024-02-02", "Rent")
	_, err := suite.ledger.AddBudget(suite.ctx, suite.user.ID, ledger.BudgetInput{Amount: "200", Date: "2024-03-20"})
	require.NoError(suite.T(), err)
	_, err = suite.ledger.AddBudget(suite.ctx, suite.user.ID, ledger.BudgetInput{Amount: "120", Date: "2024-02-01"})
	require.NoError(suite.T(), err)

	snap, err := suite.report.Snapshot(suite.ctx, suite.user.ID, suite.today)
	require.NoError(suite.T(), err)

	assert.Equal(suite.T(), "-100.00", snap.Remaining.String())
	assert.Equal(suite.T(), "0.00", snap.RemainingDisplay().String())
	// Last month remaining was 100, this month -100.
	require.True(suite.T(), snap.RemainingChange.Valid)
	assert.Equal(suite.T(), -200.0, snap.RemainingChange.Percent)
}

func (suite *SnapshotTestSuite) TestTopCategoryWithoutHistory() {
	suite.spend("30", "2024-03-02", "Books")
	suite.spend("30", "2024-03-03", "Games")
	suite.spend("10", "2024-02-03", "Games")

	snap, err := suite.report.Snapshot(suite.ctx, suite.user.ID, suite.today)
	require.NoError(suite.T(), err)

	assert.Equal(suite.T(), "Books", snap.TopCategory)
	assert.False(suite.T(), snap.TopCategoryChange.Valid, "Books had nothing last month")
	assert.Equal(suite.T(), []string{"Books", "Games"}, snap.ChartLabels)
}

func (suite *SnapshotTestSuite) TestBreakdowns() {
	suite.spend("30", "2024-03-02", "Books")
	suite.spend("10", "2024-02-03", "Games")

	all, err := suite.report.CategoryBreakdownAll(suite.ctx, suite.user.ID)
	require.NoError(suite.T(), err)
	assert.Len(suite.T(), all, 2)

	month, err := suite.report.CategoryBreakdown(suite.ctx, suite.user.ID, suite.today)
	require.NoError(suite.T(), err)
	require.Len(suite.T(), month, 1)
	assert.Equal(suite.T(), "Books", month[0].Name)
}

func (suite *SnapshotTestSuite) TestLaterDatesThisMonthAreNotCountedYet() {
	suite.spend("100", "2024-03-25", "Food")
	suite.spend("5", "2024-03-15", "Coffee")

	snap, err := suite.report.Snapshot(suite.ctx, suite.user.ID, suite.today)
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), "5.00", snap.TotalSpent.String())
	assert.Equal(suite.T(), "Coffee", snap.TopCategory)
	assert.Equal(suite.T(), []string{"Coffee"}, snap.ChartLabels)

	month, err := suite.report.CategoryBreakdown(suite.ctx, suite.user.ID, suite.today)
	require.NoError(suite.T(), err)
	require.Len(suite.T(), month, 1)
	assert.Equal(suite.T(), "Coffee", month[0].Name)
}

func (suite *SnapshotTestSuite) TestPastMonthCountsWholeMonth() {
	suite.spend("100", "2024-02-25", "Food")
	suite.spend("40", "2024-01-31", "Food")

	// Last day of February stands for the whole month.
	snap, err := suite.report.Snapshot(suite.ctx, suite.user.ID, date("2024-02-29"))
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), "100.00", snap.TotalSpent.String())
	require.True(suite.T(), snap.SpendingChange.Valid)
	assert.Equal(suite.T(), 150.0, snap.SpendingChange.Percent)
}

func TestSnapshotSuite(t *testing.T) {
	suite.Run(t, new(SnapshotTestSuite))
}
