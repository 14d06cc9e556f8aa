package store

import (
	"context"
	"fmt"
	"math/rand"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/delphine/shop/internal/domain"
)

const ordersKey = "delphine-orders"

// Orders is the order ledger and the reporting layer over it. The ledger's
// native order is newest-first: new orders are prepended.
type Orders struct {
	mu    sync.RWMutex
	state Persister

	orders []domain.Order
}

func NewOrders(state Persister) *Orders { return &Orders{state: state} }

func (o *Orders) Rehydrate(ctx context.Context) {
	o.mu.Lock()
	defer o.mu.Unlock()
	var orders []domain.Order
	if rehydrate(ctx, o.state, ordersKey, &orders) {
		o.orders = orders
	}
}

// Seed fills an empty ledger with the given orders as-is, timestamps
// included.
func (o *Orders) Seed(ctx context.Context, orders []domain.Order) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if len(o.orders) > 0 {
		return
	}
	o.orders = append(o.orders, orders...)
	o.persist(ctx)
}

func (o *Orders) persist(ctx context.Context) {
	persist(ctx, o.state, ordersKey, o.orders)
}

// NewOrderID builds the human-facing order reference.
func NewOrderID() string {
	ts := strings.ToUpper(strconv.FormatInt(time.Now().UnixMilli(), 36))
	const alphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	b := make([]byte, 4)
	for i := range b {
		b[i] = alphabet[rand.Intn(len(alphabet))]
	}
	return fmt.Sprintf("DLP-%s-%s", ts, string(b))
}

// AddOrder stamps ids and timestamps, prepends the order to the ledger and
// returns the persisted copy so the caller can route by its orderId.
func (o *Orders) AddOrder(ctx context.Context, draft domain.Order) domain.Order {
	now := time.Now()
	draft.ID = uuid.NewString()
	if draft.OrderID == "" {
		draft.OrderID = NewOrderID()
	}
	draft.CreatedAt = now
	draft.UpdatedAt = now
	o.mu.Lock()
	defer o.mu.Unlock()
	o.orders = append([]domain.Order{draft}, o.orders...)
	o.persist(ctx)
	return draft
}

func (o *Orders) ByOrderID(orderID string) (domain.Order, bool) {
	o.mu.RLock()
	defer o.mu.RUnlock()
	for _, ord := range o.orders {
		if ord.OrderID == orderID {
			return ord, true
		}
	}
	return domain.Order{}, false
}

// UserOrders matches the customer email exactly, ignoring case.
func (o *Orders) UserOrders(email string) []domain.Order {
	e := strings.ToLower(email)
	return o.filter(func(ord domain.Order) bool { return strings.ToLower(ord.UserEmail) == e })
}

func (o *Orders) All() []domain.Order {
	o.mu.RLock()
	defer o.mu.RUnlock()
	out := make([]domain.Order, len(o.orders))
	copy(out, o.orders)
	return out
}

// Search matches a case-insensitive substring over order reference, customer
// name and email.
func (o *Orders) Search(query string) []domain.Order {
	q := strings.ToLower(query)
	return o.filter(func(ord domain.Order) bool {
		return strings.Contains(strings.ToLower(ord.OrderID), q) ||
			strings.Contains(strings.ToLower(ord.UserName), q) ||
			strings.Contains(strings.ToLower(ord.UserEmail), q)
	})
}

func (o *Orders) Recent(limit int) []domain.Order {
	all := o.All()
	sort.SliceStable(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })
	if limit < len(all) {
		all = all[:limit]
	}
	return all
}

func (o *Orders) filter(keep func(domain.Order) bool) []domain.Order {
	o.mu.RLock()
	defer o.mu.RUnlock()
	out := []domain.Order{}
	for _, ord := range o.orders {
		if keep(ord) {
			out = append(out, ord)
		}
	}
	return out
}

// canTransition is the single policy point for status changes. The demo admin
// tool deliberately allows every move so mistakes can be corrected; sealing
// the terminal states later means editing this table only.
func canTransition(from, to domain.OrderStatus) bool {
	_ = from
	return domain.ValidOrderStatus(to)
}

// UpdateStatus moves the order to the given status. It does not notify; the
// calling admin flow owns the shipped/delivered notifications.
func (o *Orders) UpdateStatus(ctx context.Context, orderID string, status domain.OrderStatus) error {
	return o.mutate(ctx, orderID, func(ord *domain.Order) error {
		if !canTransition(ord.Status, status) {
			return ErrInvalidStatus
		}
		ord.Status = status
		return nil
	})
}

func (o *Orders) UpdatePaymentStatus(ctx context.Context, orderID string, status domain.PaymentStatus) error {
	return o.mutate(ctx, orderID, func(ord *domain.Order) error {
		if !domain.ValidPaymentStatus(status) {
			return ErrInvalidStatus
		}
		ord.PaymentStatus = status
		return nil
	})
}

// UpdateTracking records the tracking number and forces the order into the
// shipped state; there is no tracking-without-shipped state.
func (o *Orders) UpdateTracking(ctx context.Context, orderID, trackingNumber string) error {
	return o.mutate(ctx, orderID, func(ord *domain.Order) error {
		if !canTransition(ord.Status, domain.OrderStatusShipped) {
			return ErrInvalidStatus
		}
		ord.TrackingNumber = trackingNumber
		ord.Status = domain.OrderStatusShipped
		return nil
	})
}

func (o *Orders) AddNote(ctx context.Context, orderID, note string) error {
	return o.mutate(ctx, orderID, func(ord *domain.Order) error {
		ord.Notes = append(ord.Notes, note)
		return nil
	})
}

// Delete removes the order permanently. Deleting an absent order is a safe
// no-op reported as false.
func (o *Orders) Delete(ctx context.Context, orderID string) bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	for i, ord := range o.orders {
		if ord.OrderID == orderID {
			o.orders = append(o.orders[:i], o.orders[i+1:]...)
			o.persist(ctx)
			return true
		}
	}
	return false
}

func (o *Orders) mutate(ctx context.Context, orderID string, apply func(*domain.Order) error) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	for i := range o.orders {
		if o.orders[i].OrderID == orderID {
			if err := apply(&o.orders[i]); err != nil {
				return err
			}
			o.orders[i].UpdatedAt = time.Now()
			o.persist(ctx)
			return nil
		}
	}
	return domain.ErrNotFound
}

type Stats struct {
	TotalRevenue    float64 `json:"totalRevenue"`
	TotalOrders     int     `json:"totalOrders"`
	PendingOrders   int     `json:"pendingOrders"`
	CompletedOrders int     `json:"completedOrders"`
	AvgOrderValue   float64 `json:"avgOrderValue"`
	TodayRevenue    float64 `json:"todayRevenue"`
	TodayOrders     int     `json:"todayOrders"`
}

// Stats aggregates the ledger. Revenue counts paid orders only; the today
// figures match on calendar day of createdAt.
func (o *Orders) Stats() Stats {
	o.mu.RLock()
	defer o.mu.RUnlock()
	var st Stats
	st.TotalOrders = len(o.orders)
	paid := 0
	now := time.Now()
	for _, ord := range o.orders {
		if ord.Status == domain.OrderStatusPending {
			st.PendingOrders++
		}
		if ord.Status == domain.OrderStatusDelivered {
			st.CompletedOrders++
		}
		sameDay := sameCalendarDay(ord.CreatedAt, now)
		if sameDay {
			st.TodayOrders++
		}
		if ord.PaymentStatus == domain.PaymentStatusPaid {
			paid++
			st.TotalRevenue += ord.Total
			if sameDay {
				st.TodayRevenue += ord.Total
			}
		}
	}
	if paid > 0 {
		st.AvgOrderValue = st.TotalRevenue / float64(paid)
	}
	return st
}

func sameCalendarDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

type MonthRevenue struct {
	Month   string  `json:"month"`
	Revenue float64 `json:"revenue"`
}

type StatusCount struct {
	Status string `json:"status"`
	Count  int    `json:"count"`
}

type ProductSales struct {
	Name    string  `json:"name"`
	Sales   int     `json:"sales"`
	Revenue float64 `json:"revenue"`
}

type Analytics struct {
	TopProducts    []ProductSales `json:"topProducts"`
	RevenueByMonth []MonthRevenue `json:"revenueByMonth"`
	OrdersByStatus []StatusCount  `json:"ordersByStatus"`
	TotalCustomers int            `json:"totalCustomers"`
}

// Analytics reports over the ledger itself: status counts, distinct customer
// emails, paid revenue bucketed by creation month in chronological order, and
// product sales ranked by paid revenue.
func (o *Orders) Analytics() Analytics {
	o.mu.RLock()
	defer o.mu.RUnlock()

	statusCounts := map[domain.OrderStatus]int{}
	emails := map[string]struct{}{}
	monthRevenue := map[string]float64{}
	productSales := map[string]*ProductSales{}
	months := []string{}
	for _, ord := range o.orders {
		statusCounts[ord.Status]++
		emails[strings.ToLower(ord.UserEmail)] = struct{}{}
		if ord.PaymentStatus != domain.PaymentStatusPaid {
			continue
		}
		m := ord.CreatedAt.Format("2006-01")
		if _, seen := monthRevenue[m]; !seen {
			months = append(months, m)
		}
		monthRevenue[m] += ord.Total
		for _, it := range ord.Items {
			ps := productSales[it.ProductName]
			if ps == nil {
				ps = &ProductSales{Name: it.ProductName}
				productSales[it.ProductName] = ps
			}
			ps.Sales += it.Quantity
			ps.Revenue += it.Price * float64(it.Quantity)
		}
	}
	sort.Strings(months)

	a := Analytics{TotalCustomers: len(emails), TopProducts: []ProductSales{}, RevenueByMonth: []MonthRevenue{}, OrdersByStatus: []StatusCount{}}
	for _, m := range months {
		label := m
		if t, err := time.Parse("2006-01", m); err == nil {
			label = t.Format("Jan 2006")
		}
		a.RevenueByMonth = append(a.RevenueByMonth, MonthRevenue{Month: label, Revenue: monthRevenue[m]})
	}
	for _, st := range []domain.OrderStatus{domain.OrderStatusPending, domain.OrderStatusProcessing, domain.OrderStatusShipped, domain.OrderStatusDelivered, domain.OrderStatusCancelled} {
		if n := statusCounts[st]; n > 0 {
			a.OrdersByStatus = append(a.OrdersByStatus, StatusCount{Status: string(st), Count: n})
		}
	}
	for _, ps := range productSales {
		a.TopProducts = append(a.TopProducts, *ps)
	}
	sort.Slice(a.TopProducts, func(i, j int) bool { return a.TopProducts[i].Revenue > a.TopProducts[j].Revenue })
	return a
}

type CustomerSummary struct {
	Email      string  `json:"email"`
	Name       string  `json:"name"`
	Orders     int     `json:"orders"`
	TotalSpent float64 `json:"totalSpent"`
}

// TopCustomers aggregates by customer email (case-insensitive) and ranks by
// total spent.
func (o *Orders) TopCustomers(limit int) []CustomerSummary {
	o.mu.RLock()
	defer o.mu.RUnlock()
	byEmail := map[string]*CustomerSummary{}
	keys := []string{}
	for _, ord := range o.orders {
		key := strings.ToLower(ord.UserEmail)
		cs := byEmail[key]
		if cs == nil {
			cs = &CustomerSummary{Email: ord.UserEmail, Name: ord.UserName}
			byEmail[key] = cs
			keys = append(keys, key)
		}
		cs.Orders++
		cs.TotalSpent += ord.Total
	}
	out := make([]CustomerSummary, 0, len(keys))
	for _, k := range keys {
		out = append(out, *byEmail[k])
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].TotalSpent > out[j].TotalSpent })
	if limit > 0 && limit < len(out) {
		out = out[:limit]
	}
	return out
}

// ExportCSV renders the ledger as comma-separated text with a header row.
// Fields are not quoted, so embedded commas corrupt the row; acceptable for
// the demo export.
func (o *Orders) ExportCSV() string {
	o.mu.RLock()
	defer o.mu.RUnlock()
	var b strings.Builder
	b.WriteString("Order ID,Date,Customer,Email,Status,Payment,Total\n")
	for _, ord := range o.orders {
		fmt.Fprintf(&b, "%s,%s,%s,%s,%s,%s,%.2f\n",
			ord.OrderID, ord.CreatedAt.Format("2006-01-02"), ord.UserName, ord.UserEmail,
			ord.Status, ord.PaymentStatus, ord.Total)
	}
	return strings.TrimSuffix(b.String(), "\n")
}
