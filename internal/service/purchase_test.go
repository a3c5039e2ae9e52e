package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/camrado/pritok/internal/apperror"
	"github.com/camrado/pritok/internal/model"
	"github.com/camrado/pritok/internal/query"
)

func intPtr(n int) *int {
	return &n
}

func strPtr(s string) *string {
	return &s
}

func floatPtr(f float64) *float64 {
	return &f
}

func createPurchase(t *testing.T, ts *testServices, authorID string, fields PurchaseFields) *model.Purchase {
	t.Helper()
	purchase, err := ts.purchases.Create(authorID, fields)
	require.NoError(t, err)
	return purchase
}

func TestPurchaseCreateComputesTotalPrice(t *testing.T) {
	ts := newTestServices(t)
	user := signUpVerified(t, ts, "a@x.com")

	purchase := createPurchase(t, ts, user.ID, PurchaseFields{
		Date: "2024-01-05", Category: "Food", Item: "Coffee", Price: 3.50, Quantity: 2,
	})
	assert.Equal(t, 7.00, purchase.TotalPrice)

	stored, err := ts.purchases.ByID(user.ID, purchase.ID)
	require.NoError(t, err)
	assert.Equal(t, 7.00, stored.TotalPrice)
}

func TestPurchaseUpdateRecomputesTotalPrice(t *testing.T) {
	ts := newTestServices(t)
	user := signUpVerified(t, ts, "a@x.com")

	purchase := createPurchase(t, ts, user.ID, PurchaseFields{
		Date: "2024-01-05", Category: "Food", Item: "Coffee", Price: 3.50, Quantity: 2,
	})

	updated, err := ts.purchases.Update(user.ID, purchase.ID, PurchasePatch{Quantity: intPtr(3)})
	require.NoError(t, err)
	assert.Equal(t, 10.50, updated.TotalPrice)

	// A patched total_price is accepted but overridden by the derived value
	updated, err = ts.purchases.Update(user.ID, purchase.ID, PurchasePatch{TotalPrice: floatPtr(999)})
	require.NoError(t, err)
	assert.Equal(t, 10.50, updated.TotalPrice)
}

func TestPurchaseCreateValidation(t *testing.T) {
	ts := newTestServices(t)
	user := signUpVerified(t, ts, "a@x.com")

	tests := []struct {
		name   string
		fields PurchaseFields
	}{
		{name: "bad date", fields: PurchaseFields{Date: "05/01/2024", Category: "Food", Item: "Coffee", Price: 1, Quantity: 1}},
		{name: "zero price", fields: PurchaseFields{Date: "2024-01-05", Category: "Food", Item: "Coffee", Price: 0, Quantity: 1}},
		{name: "negative price", fields: PurchaseFields{Date: "2024-01-05", Category: "Food", Item: "Coffee", Price: -2, Quantity: 1}},
		{name: "zero quantity", fields: PurchaseFields{Date: "2024-01-05", Category: "Food", Item: "Coffee", Price: 1, Quantity: 0}},
		{name: "missing item", fields: PurchaseFields{Date: "2024-01-05", Category: "Food", Item: " ", Price: 1, Quantity: 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ts.purchases.Create(user.ID, tt.fields)
			requireCode(t, err, apperror.CodeInvalidFields)
		})
	}
}

func TestPurchaseOwnershipIsolation(t *testing.T) {
	ts := newTestServices(t)
	alice := signUpVerified(t, ts, "a@x.com")
	bob := signUpVerified(t, ts, "b@x.com")

	purchase := createPurchase(t, ts, alice.ID, PurchaseFields{
		Date: "2024-01-05", Category: "Food", Item: "Coffee", Price: 3.50, Quantity: 2,
	})

	// Another account cannot see, change or delete it
	_, err := ts.purchases.ByID(bob.ID, purchase.ID)
	requireCode(t, err, apperror.CodeNotFound)

	_, err = ts.purchases.Update(bob.ID, purchase.ID, PurchasePatch{Item: strPtr("Tea")})
	requireCode(t, err, apperror.CodeNotFound)

	err = ts.purchases.Delete(bob.ID, purchase.ID)
	requireCode(t, err, apperror.CodeNotFound)

	listed, err := ts.purchases.List(bob.ID, DateRange{}, query.Params{})
	require.NoError(t, err)
	assert.Empty(t, listed)

	pages, err := ts.purchases.PageCount(bob.ID, DateRange{}, "", 1)
	require.NoError(t, err)
	assert.Zero(t, pages)
}

func TestPurchaseListSortedByDate(t *testing.T) {
	ts := newTestServices(t)
	user := signUpVerified(t, ts, "a@x.com")

	createPurchase(t, ts, user.ID, PurchaseFields{Date: "2024-03-01", Category: "Food", Item: "Bread", Price: 2, Quantity: 1})
	createPurchase(t, ts, user.ID, PurchaseFields{Date: "2024-01-05", Category: "Food", Item: "Coffee", Price: 3.50, Quantity: 2})
	createPurchase(t, ts, user.ID, PurchaseFields{Date: "2024-01-05", Category: "Food", Item: "Milk", Price: 1, Quantity: 1})

	listed, err := ts.purchases.List(user.ID, DateRange{}, query.Params{})
	require.NoError(t, err)
	require.Len(t, listed, 3)
	assert.Equal(t, "Coffee", listed[0].Item, "same-day ties keep insertion order")
	assert.Equal(t, "Milk", listed[1].Item)
	assert.Equal(t, "Bread", listed[2].Item)
}

func TestPurchaseDateRangeIsInclusive(t *testing.T) {
	ts := newTestServices(t)
	user := signUpVerified(t, ts, "a@x.com")

	createPurchase(t, ts, user.ID, PurchaseFields{Date: "2024-01-04", Category: "Food", Item: "Before", Price: 1, Quantity: 1})
	createPurchase(t, ts, user.ID, PurchaseFields{Date: "2024-01-05", Category: "Food", Item: "Start", Price: 1, Quantity: 1})
	createPurchase(t, ts, user.ID, PurchaseFields{Date: "2024-01-08", Category: "Food", Item: "Middle", Price: 1, Quantity: 1})
	createPurchase(t, ts, user.ID, PurchaseFields{Date: "2024-01-10", Category: "Food", Item: "End", Price: 1, Quantity: 1})
	createPurchase(t, ts, user.ID, PurchaseFields{Date: "2024-01-11", Category: "Food", Item: "After", Price: 1, Quantity: 1})

	listed, err := ts.purchases.List(user.ID, DateRange{From: "2024-01-05", To: "2024-01-10"}, query.Params{})
	require.NoError(t, err)
	require.Len(t, listed, 3)
	assert.Equal(t, "Start", listed[0].Item)
	assert.Equal(t, "End", listed[2].Item)

	// A lone bound does not restrict anything
	listed, err = ts.purchases.List(user.ID, DateRange{From: "2024-01-05"}, query.Params{})
	require.NoError(t, err)
	assert.Len(t, listed, 5)
}

func TestPurchaseSearchAndPagination(t *testing.T) {
	ts := newTestServices(t)
	user := signUpVerified(t, ts, "a@x.com")

	createPurchase(t, ts, user.ID, PurchaseFields{Date: "2024-01-01", Category: "Food", Item: "Coffee beans", Price: 8, Quantity: 1})
	createPurchase(t, ts, user.ID, PurchaseFields{Date: "2024-01-02", Category: "Drinks", Item: "Iced coffee", Price: 4, Quantity: 1})
	createPurchase(t, ts, user.ID, PurchaseFields{Date: "2024-01-03", Category: "Food", Item: "COFFEE cake", Price: 5, Quantity: 1})
	createPurchase(t, ts, user.ID, PurchaseFields{Date: "2024-01-04", Category: "Food", Item: "Bread", Price: 2, Quantity: 1})

	listed, err := ts.purchases.List(user.ID, DateRange{}, query.Params{Search: "coffee", Skip: intPtr(1), Limit: intPtr(1)})
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, "Iced coffee", listed[0].Item, "second match in sorted order")

	pages, err := ts.purchases.PageCount(user.ID, DateRange{}, "coffee", 2)
	require.NoError(t, err)
	assert.Equal(t, 2, pages)

	_, err = ts.purchases.PageCount(user.ID, DateRange{}, "coffee", 0)
	requireCode(t, err, apperror.CodeInvalidFields)
}

func TestPurchaseDelete(t *testing.T) {
	ts := newTestServices(t)
	user := signUpVerified(t, ts, "a@x.com")

	purchase := createPurchase(t, ts, user.ID, PurchaseFields{Date: "2024-01-05", Category: "Food", Item: "Coffee", Price: 3.50, Quantity: 2})

	require.NoError(t, ts.purchases.Delete(user.ID, purchase.ID))

	_, err := ts.purchases.ByID(user.ID, purchase.ID)
	requireCode(t, err, apperror.CodeNotFound)

	err = ts.purchases.Delete(user.ID, purchase.ID)
	requireCode(t, err, apperror.CodeNotFound)
}
