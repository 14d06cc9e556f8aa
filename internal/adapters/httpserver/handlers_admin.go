package httpserver

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/xuri/excelize/v2"

	"github.com/delphine/shop/internal/domain"
	"github.com/delphine/shop/internal/store"
)

// requireAdmin gates the /admin surface on the session user's admin flag.
func (s *Server) requireAdmin(w http.ResponseWriter) bool {
	u, ok := s.identity.Current()
	if !ok || !u.IsAdmin {
		writeErr(w, http.StatusForbidden, "admin access required")
		return false
	}
	return true
}

// --- products ---

func (s *Server) adminProducts(w http.ResponseWriter, r *http.Request) {
	if !s.requireAdmin(w) {
		return
	}
	switch r.Method {
	case http.MethodGet:
		if q := r.URL.Query().Get("q"); q != "" {
			writeJSON(w, http.StatusOK, map[string]any{"products": s.catalog.Search(q)})
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"products": s.catalog.All()})
	case http.MethodPost:
		var p domain.Product
		if !decode(w, r, &p) {
			return
		}
		if p.Name == "" {
			writeErr(w, http.StatusUnprocessableEntity, "product name is required")
			return
		}
		created := s.catalog.Add(r.Context(), p)
		writeJSON(w, http.StatusCreated, created)
	default:
		writeErr(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (s *Server) adminProductByID(w http.ResponseWriter, r *http.Request) {
	if !s.requireAdmin(w) {
		return
	}
	rest := strings.TrimPrefix(r.URL.Path, "/admin/api/products/")
	id, action, _ := strings.Cut(rest, "/")
	if id == "" {
		writeErr(w, http.StatusNotFound, "product not found")
		return
	}

	if action != "" {
		if !requirePost(w, r) {
			return
		}
		var ok bool
		switch action {
		case "toggle-active":
			ok = s.catalog.ToggleActive(r.Context(), id)
		case "toggle-featured":
			ok = s.catalog.ToggleFeatured(r.Context(), id)
		case "stock":
			var in struct {
				Stock int `json:"stock"`
			}
			if !decode(w, r, &in) {
				return
			}
			ok = s.catalog.SetStock(r.Context(), id, in.Stock)
		case "duplicate":
			var dup domain.Product
			dup, ok = s.catalog.Duplicate(r.Context(), id)
			if ok {
				writeJSON(w, http.StatusCreated, dup)
				return
			}
		default:
			writeErr(w, http.StatusNotFound, "unknown action")
			return
		}
		if !ok {
			writeErr(w, http.StatusNotFound, "product not found")
			return
		}
		p, _ := s.catalog.ByID(id)
		writeJSON(w, http.StatusOK, p)
		return
	}

	switch r.Method {
	case http.MethodGet:
		p, ok := s.catalog.ByID(id)
		if !ok {
			writeErr(w, http.StatusNotFound, "product not found")
			return
		}
		writeJSON(w, http.StatusOK, p)
	case http.MethodPut:
		var patch store.ProductPatch
		if !decode(w, r, &patch) {
			return
		}
		if !s.catalog.Update(r.Context(), id, patch) {
			writeErr(w, http.StatusNotFound, "product not found")
			return
		}
		p, _ := s.catalog.ByID(id)
		writeJSON(w, http.StatusOK, p)
	case http.MethodDelete:
		if !s.catalog.Delete(r.Context(), id) {
			writeErr(w, http.StatusNotFound, "product not found")
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"success": true})
	default:
		writeErr(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (s *Server) adminBulkStock(w http.ResponseWriter, r *http.Request) {
	if !s.requireAdmin(w) {
		return
	}
	if !requirePost(w, r) {
		return
	}
	var in struct {
		Updates []store.StockUpdate `json:"updates"`
	}
	if !decode(w, r, &in) {
		return
	}
	s.catalog.BulkSetStock(r.Context(), in.Updates)
	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

func (s *Server) adminLowStock(w http.ResponseWriter, r *http.Request) {
	if !s.requireAdmin(w) {
		return
	}
	threshold := 5
	if raw := r.URL.Query().Get("threshold"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n >= 0 {
			threshold = n
		}
	}
	writeJSON(w, http.StatusOK, map[string]any{"products": s.catalog.LowStock(threshold)})
}

// --- orders ---

func (s *Server) adminOrders(w http.ResponseWriter, r *http.Request) {
	if !s.requireAdmin(w) {
		return
	}
	if q := r.URL.Query().Get("q"); q != "" {
		writeJSON(w, http.StatusOK, map[string]any{"orders": s.orders.Search(q)})
		return
	}
	if raw := r.URL.Query().Get("recent"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			writeJSON(w, http.StatusOK, map[string]any{"orders": s.orders.Recent(n)})
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]any{"orders": s.orders.All()})
}

func (s *Server) adminOrderByID(w http.ResponseWriter, r *http.Request) {
	if !s.requireAdmin(w) {
		return
	}
	rest := strings.TrimPrefix(r.URL.Path, "/admin/api/orders/")
	orderID, action, _ := strings.Cut(rest, "/")
	if orderID == "" {
		writeErr(w, http.StatusNotFound, "order not found")
		return
	}

	if action != "" {
		s.adminOrderAction(w, r, orderID, action)
		return
	}

	switch r.Method {
	case http.MethodGet:
		o, ok := s.orders.ByOrderID(orderID)
		if !ok {
			writeErr(w, http.StatusNotFound, "order not found")
			return
		}
		writeJSON(w, http.StatusOK, o)
	case http.MethodDelete:
		if !s.orders.Delete(r.Context(), orderID) {
			writeErr(w, http.StatusNotFound, "order not found")
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"success": true})
	default:
		writeErr(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (s *Server) adminOrderAction(w http.ResponseWriter, r *http.Request, orderID, action string) {
	if !requirePost(w, r) {
		return
	}
	var err error
	notify := domain.NotifyEvent("")
	switch action {
	case "status":
		var in struct {
			Status domain.OrderStatus `json:"status"`
		}
		if !decode(w, r, &in) {
			return
		}
		err = s.orders.UpdateStatus(r.Context(), orderID, in.Status)
		// Shipped and delivered are the customer-visible milestones.
		switch in.Status {
		case domain.OrderStatusShipped:
			notify = domain.NotifyShipped
		case domain.OrderStatusDelivered:
			notify = domain.NotifyDelivered
		}
	case "payment":
		var in struct {
			Status domain.PaymentStatus `json:"status"`
		}
		if !decode(w, r, &in) {
			return
		}
		err = s.orders.UpdatePaymentStatus(r.Context(), orderID, in.Status)
	case "tracking":
		var in struct {
			TrackingNumber string `json:"trackingNumber"`
		}
		if !decode(w, r, &in) {
			return
		}
		err = s.orders.UpdateTracking(r.Context(), orderID, in.TrackingNumber)
		notify = domain.NotifyShipped
	case "notes":
		var in struct {
			Note string `json:"note"`
		}
		if !decode(w, r, &in) {
			return
		}
		if in.Note == "" {
			writeErr(w, http.StatusUnprocessableEntity, "note is required")
			return
		}
		err = s.orders.AddNote(r.Context(), orderID, in.Note)
	default:
		writeErr(w, http.StatusNotFound, "unknown action")
		return
	}

	if err != nil {
		code := http.StatusUnprocessableEntity
		if err == domain.ErrNotFound {
			code = http.StatusNotFound
		}
		writeErr(w, code, err.Error())
		return
	}
	o, _ := s.orders.ByOrderID(orderID)
	if notify != "" {
		go store.NotifyOrder(context.Background(), s.notifier, notify, o)
	}
	writeJSON(w, http.StatusOK, o)
}

// --- subscribers ---

func (s *Server) adminSubscribers(w http.ResponseWriter, r *http.Request) {
	if !s.requireAdmin(w) {
		return
	}
	if r.URL.Query().Get("status") == "active" {
		writeJSON(w, http.StatusOK, map[string]any{"subscribers": s.newsletter.Active(), "count": s.newsletter.Count()})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"subscribers": s.newsletter.All(), "count": s.newsletter.Count()})
}

func (s *Server) adminSubscriberByID(w http.ResponseWriter, r *http.Request) {
	if !s.requireAdmin(w) {
		return
	}
	rest := strings.TrimPrefix(r.URL.Path, "/admin/api/subscribers/")
	id, action, _ := strings.Cut(rest, "/")
	if id == "" || action != "unsubscribe" {
		writeErr(w, http.StatusNotFound, "not found")
		return
	}
	if !requirePost(w, r) {
		return
	}
	if !s.newsletter.Unsubscribe(r.Context(), id) {
		writeErr(w, http.StatusNotFound, "subscriber not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

// --- reporting ---

func (s *Server) adminStats(w http.ResponseWriter, r *http.Request) {
	if !s.requireAdmin(w) {
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"orders":      s.orders.Stats(),
		"products":    s.catalog.Stats(),
		"subscribers": s.newsletter.Count(),
	})
}

func (s *Server) adminAnalytics(w http.ResponseWriter, r *http.Request) {
	if !s.requireAdmin(w) {
		return
	}
	writeJSON(w, http.StatusOK, s.orders.Analytics())
}

func (s *Server) adminTopCustomers(w http.ResponseWriter, r *http.Request) {
	if !s.requireAdmin(w) {
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"customers": s.orders.TopCustomers(limitParam(r, 10))})
}

// --- exports ---

func (s *Server) adminExportOrdersCSV(w http.ResponseWriter, r *http.Request) {
	if !s.requireAdmin(w) {
		return
	}
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="orders.csv"`)
	_, _ = w.Write([]byte(s.orders.ExportCSV()))
}

func (s *Server) adminExportSubscribersCSV(w http.ResponseWriter, r *http.Request) {
	if !s.requireAdmin(w) {
		return
	}
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="subscribers.csv"`)
	_, _ = w.Write([]byte(s.newsletter.ExportCSV()))
}

func (s *Server) adminExportOrdersXLSX(w http.ResponseWriter, r *http.Request) {
	if !s.requireAdmin(w) {
		return
	}
	f := excelize.NewFile()
	defer f.Close()
	sheet := "Orders"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		writeErr(w, http.StatusInternalServerError, "export failed")
		return
	}
	headers := []string{"Order ID", "Date", "Customer", "Email", "Status", "Payment", "Items", "Subtotal", "Shipping", "Total"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}
	for row, o := range s.orders.All() {
		itemCount := 0
		for _, it := range o.Items {
			itemCount += it.Quantity
		}
		values := []any{
			o.OrderID,
			o.CreatedAt.Format("2006-01-02"),
			o.UserName,
			o.UserEmail,
			string(o.Status),
			string(o.PaymentStatus),
			itemCount,
			o.Subtotal,
			o.Shipping,
			o.Total,
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			_ = f.SetCellValue(sheet, cell, v)
		}
	}
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="orders-%s.xlsx"`, nowDate()))
	if err := f.Write(w); err != nil {
		log.Warn().Err(err).Msg("xlsx export write")
	}
}

func nowDate() string { return time.Now().Format("2006-01-02") }
