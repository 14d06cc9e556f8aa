package store_test

import (
	"context"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/delphine/shop/internal/domain"
	"github.com/delphine/shop/internal/store"
)

func draftOrder(email, name string, total float64) domain.Order {
	return domain.Order{
		UserEmail:     email,
		UserName:      name,
		Items:         []domain.CartItem{lineItem("p1", "Black", "M", total, 1)},
		Subtotal:      total,
		Total:         total,
		PaymentMethod: domain.PaymentMethodCOD,
		PaymentStatus: domain.PaymentStatusPaid,
		Status:        domain.OrderStatusProcessing,
	}
}

func TestNewOrderIDFormat(t *testing.T) {
	re := regexp.MustCompile(`^DLP-[0-9A-Z]+-[0-9A-Z]{4}$`)
	for i := 0; i < 20; i++ {
		assert.Regexp(t, re, store.NewOrderID())
	}
}

func TestOrdersAddStampsAndPrepends(t *testing.T) {
	ctx := context.Background()
	o := store.NewOrders(newMemState())

	first := o.AddOrder(ctx, draftOrder("a@example.com", "A", 50))
	second := o.AddOrder(ctx, draftOrder("b@example.com", "B", 60))

	assert.NotEmpty(t, first.ID)
	assert.NotEmpty(t, first.OrderID)
	assert.False(t, first.CreatedAt.IsZero())

	all := o.All()
	require.Len(t, all, 2)
	assert.Equal(t, second.OrderID, all[0].OrderID)
	assert.Equal(t, first.OrderID, all[1].OrderID)
}

func TestOrdersUserOrdersMatchesEmailCaseInsensitively(t *testing.T) {
	ctx := context.Background()
	o := store.NewOrders(newMemState())
	o.AddOrder(ctx, draftOrder("Demo@Delphine.com", "Demo", 50))
	o.AddOrder(ctx, draftOrder("other@example.com", "Other", 60))

	assert.Len(t, o.UserOrders("demo@delphine.com"), 1)
	assert.Empty(t, o.UserOrders("demo@example.com"))
}

func TestOrdersSearch(t *testing.T) {
	ctx := context.Background()
	o := store.NewOrders(newMemState())
	placed := o.AddOrder(ctx, draftOrder("maria@example.com", "Maria Koci", 50))

	assert.Len(t, o.Search(strings.ToLower(placed.OrderID[:8])), 1)
	assert.Len(t, o.Search("koci"), 1)
	assert.Len(t, o.Search("MARIA@"), 1)
	assert.Empty(t, o.Search("nobody"))
}

func TestOrdersUpdateStatus(t *testing.T) {
	ctx := context.Background()
	o := store.NewOrders(newMemState())
	placed := o.AddOrder(ctx, draftOrder("a@example.com", "A", 50))

	require.NoError(t, o.UpdateStatus(ctx, placed.OrderID, domain.OrderStatusDelivered))

	got, ok := o.ByOrderID(placed.OrderID)
	require.True(t, ok)
	assert.Equal(t, domain.OrderStatusDelivered, got.Status)
	assert.True(t, got.UpdatedAt.After(placed.UpdatedAt) || got.UpdatedAt.Equal(placed.UpdatedAt))

	assert.ErrorIs(t, o.UpdateStatus(ctx, placed.OrderID, "lost"), store.ErrInvalidStatus)
	assert.ErrorIs(t, o.UpdateStatus(ctx, "missing", domain.OrderStatusShipped), domain.ErrNotFound)
}

func TestOrdersUpdateTrackingForcesShipped(t *testing.T) {
	ctx := context.Background()
	o := store.NewOrders(newMemState())
	placed := o.AddOrder(ctx, draftOrder("a@example.com", "A", 50))

	require.NoError(t, o.UpdateTracking(ctx, placed.OrderID, "TRK-1234"))

	got, _ := o.ByOrderID(placed.OrderID)
	assert.Equal(t, "TRK-1234", got.TrackingNumber)
	assert.Equal(t, domain.OrderStatusShipped, got.Status)
}

func TestOrdersAddNoteAppends(t *testing.T) {
	ctx := context.Background()
	o := store.NewOrders(newMemState())
	placed := o.AddOrder(ctx, draftOrder("a@example.com", "A", 50))

	require.NoError(t, o.AddNote(ctx, placed.OrderID, "called customer"))
	require.NoError(t, o.AddNote(ctx, placed.OrderID, "left at reception"))

	got, _ := o.ByOrderID(placed.OrderID)
	assert.Equal(t, []string{"called customer", "left at reception"}, got.Notes)
}

func TestOrdersDeleteTwiceIsSafe(t *testing.T) {
	ctx := context.Background()
	o := store.NewOrders(newMemState())
	placed := o.AddOrder(ctx, draftOrder("a@example.com", "A", 50))

	assert.True(t, o.Delete(ctx, placed.OrderID))
	assert.False(t, o.Delete(ctx, placed.OrderID))
	assert.Empty(t, o.All())
}

func TestOrdersStatsCountPaidOnly(t *testing.T) {
	ctx := context.Background()
	o := store.NewOrders(newMemState())

	o.AddOrder(ctx, draftOrder("a@example.com", "A", 100))
	o.AddOrder(ctx, draftOrder("b@example.com", "B", 50))
	unpaid := draftOrder("c@example.com", "C", 999)
	unpaid.PaymentStatus = domain.PaymentStatusPending
	unpaid.Status = domain.OrderStatusPending
	o.AddOrder(ctx, unpaid)

	st := o.Stats()

	assert.Equal(t, 3, st.TotalOrders)
	assert.Equal(t, 1, st.PendingOrders)
	assert.InDelta(t, 150.0, st.TotalRevenue, 0.001)
	assert.InDelta(t, 75.0, st.AvgOrderValue, 0.001)
	assert.Equal(t, 3, st.TodayOrders)
	assert.InDelta(t, 150.0, st.TodayRevenue, 0.001)
}

func TestOrdersAnalyticsAggregatesLedger(t *testing.T) {
	ctx := context.Background()
	o := store.NewOrders(newMemState())
	march := time.Date(2026, time.March, 10, 12, 0, 0, 0, time.UTC)
	april := time.Date(2026, time.April, 2, 9, 0, 0, 0, time.UTC)
	o.Seed(ctx, []domain.Order{
		{
			OrderID: "DLP-T1", UserEmail: "a@example.com", UserName: "A",
			Items:         []domain.CartItem{{ProductID: "p1", ProductName: "Sunset One Piece", Price: 120, Quantity: 2}},
			Total:         240,
			PaymentStatus: domain.PaymentStatusPaid, Status: domain.OrderStatusDelivered,
			CreatedAt: march,
		},
		{
			OrderID: "DLP-T2", UserEmail: "A@EXAMPLE.COM", UserName: "A",
			Items:         []domain.CartItem{{ProductID: "p2", ProductName: "Coastal Breeze Bikini", Price: 89, Quantity: 1}},
			Total:         89,
			PaymentStatus: domain.PaymentStatusPaid, Status: domain.OrderStatusShipped,
			CreatedAt: april,
		},
		{
			OrderID: "DLP-T3", UserEmail: "b@example.com", UserName: "B",
			Items:         []domain.CartItem{{ProductID: "p1", ProductName: "Sunset One Piece", Price: 120, Quantity: 5}},
			Total:         600,
			PaymentStatus: domain.PaymentStatusPending, Status: domain.OrderStatusPending,
			CreatedAt: april,
		},
	})

	a := o.Analytics()

	assert.Equal(t, 2, a.TotalCustomers)

	require.Len(t, a.RevenueByMonth, 2)
	assert.Equal(t, "Mar 2026", a.RevenueByMonth[0].Month)
	assert.InDelta(t, 240.0, a.RevenueByMonth[0].Revenue, 0.001)
	assert.Equal(t, "Apr 2026", a.RevenueByMonth[1].Month)
	assert.InDelta(t, 89.0, a.RevenueByMonth[1].Revenue, 0.001)

	require.Len(t, a.TopProducts, 2)
	assert.Equal(t, "Sunset One Piece", a.TopProducts[0].Name)
	assert.Equal(t, 2, a.TopProducts[0].Sales)
	assert.InDelta(t, 240.0, a.TopProducts[0].Revenue, 0.001)

	byStatus := map[string]int{}
	for _, sc := range a.OrdersByStatus {
		byStatus[sc.Status] = sc.Count
	}
	assert.Equal(t, 1, byStatus["delivered"])
	assert.Equal(t, 1, byStatus["shipped"])
	assert.Equal(t, 1, byStatus["pending"])
}

func TestOrdersTopCustomers(t *testing.T) {
	ctx := context.Background()
	o := store.NewOrders(newMemState())
	o.AddOrder(ctx, draftOrder("a@example.com", "A", 100))
	o.AddOrder(ctx, draftOrder("A@example.com", "A", 40))
	o.AddOrder(ctx, draftOrder("b@example.com", "B", 300))

	top := o.TopCustomers(10)

	require.Len(t, top, 2)
	assert.Equal(t, "b@example.com", top[0].Email)
	assert.InDelta(t, 300.0, top[0].TotalSpent, 0.001)
	assert.Equal(t, 2, top[1].Orders)
	assert.InDelta(t, 140.0, top[1].TotalSpent, 0.001)

	assert.Len(t, o.TopCustomers(1), 1)
}

func TestOrdersExportCSV(t *testing.T) {
	ctx := context.Background()
	o := store.NewOrders(newMemState())
	o.Seed(ctx, []domain.Order{{
		OrderID: "DLP-CSV1", UserEmail: "maria@example.com", UserName: "Maria Koci",
		Total: 92.99, PaymentStatus: domain.PaymentStatusPaid, Status: domain.OrderStatusDelivered,
		CreatedAt: time.Date(2026, time.August, 15, 10, 0, 0, 0, time.UTC),
	}})

	csv := o.ExportCSV()

	lines := strings.Split(csv, "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "Order ID,Date,Customer,Email,Status,Payment,Total", lines[0])
	assert.Equal(t, "DLP-CSV1,2026-08-15,Maria Koci,maria@example.com,delivered,paid,92.99", lines[1])
}

func TestOrdersRehydrateRoundTrip(t *testing.T) {
	ctx := context.Background()
	state := newMemState()
	first := store.NewOrders(state)
	placed := first.AddOrder(ctx, draftOrder("a@example.com", "A", 50))

	second := store.NewOrders(state)
	second.Rehydrate(ctx)

	got, ok := second.ByOrderID(placed.OrderID)
	require.True(t, ok)
	assert.Equal(t, placed.Total, got.Total)
}
