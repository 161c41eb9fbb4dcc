package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"atelier-backend/internal/repository"
	"atelier-backend/internal/security"
	"atelier-backend/internal/service"
)

// Services bundles everything the router exposes.
type Services struct {
	Auth         service.AuthService
	Bookings     service.BookingService
	Appointments service.AppointmentService
	Catalog      service.CatalogService
	Expenses     service.ExpenseService
	Ledger       service.LedgerService
	Branches     repository.BranchRepository
	Clients      repository.ClientRepository
}

// NewRouter builds the API router. Login is the only public endpoint; every
// other route goes through the auth middleware, which resolves the caller's
// branch and department scope from the token.
func NewRouter(svcs Services, tokens security.TokenManager) *mux.Router {
	authHandler := NewAuthHandler(svcs.Auth)
	bookingHandler := NewBookingHandler(svcs.Bookings)
	appointmentHandler := NewAppointmentHandler(svcs.Appointments)
	catalogHandler := NewCatalogHandler(svcs.Catalog)
	expenseHandler := NewExpenseHandler(svcs.Expenses)
	ledgerHandler := NewLedgerHandler(svcs.Ledger)
	branchHandler := NewBranchHandler(svcs.Branches, svcs.Clients)

	router := mux.NewRouter()
	router.Use(RequestLogger)

	router.HandleFunc("/api/v1/auth/login", authHandler.Login).Methods("POST")
	router.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}).Methods("GET")

	api := router.PathPrefix("/api/v1").Subrouter()
	api.Use(NewAuthMiddleware(tokens).Handler)

	api.HandleFunc("/users", authHandler.CreateUser).Methods("POST")

	api.HandleFunc("/branches", branchHandler.CreateBranch).Methods("POST")
	api.HandleFunc("/branches", branchHandler.ListBranches).Methods("GET")
	api.HandleFunc("/clients", branchHandler.CreateClient).Methods("POST")
	api.HandleFunc("/clients", branchHandler.SearchClients).Methods("GET")

	api.HandleFunc("/catalog/definitions", catalogHandler.CreateDefinition).Methods("POST")
	api.HandleFunc("/catalog/definitions", catalogHandler.ListDefinitions).Methods("GET")
	api.HandleFunc("/catalog/items", catalogHandler.CreateItem).Methods("POST")
	api.HandleFunc("/catalog/items", catalogHandler.ListItems).Methods("GET")
	api.HandleFunc("/salon/services", catalogHandler.CreateSalonService).Methods("POST")
	api.HandleFunc("/salon/services", catalogHandler.ListSalonServices).Methods("GET")

	api.HandleFunc("/bookings", bookingHandler.Create).Methods("POST")
	api.HandleFunc("/bookings", bookingHandler.List).Methods("GET")
	api.HandleFunc("/bookings/{id}", bookingHandler.Get).Methods("GET")
	api.HandleFunc("/bookings/{id}/confirm", bookingHandler.Confirm).Methods("POST")
	api.HandleFunc("/bookings/{id}/pickup", bookingHandler.PickUp).Methods("POST")
	api.HandleFunc("/bookings/{id}/return", bookingHandler.Return).Methods("POST")
	api.HandleFunc("/bookings/{id}/cancel", bookingHandler.Cancel).Methods("POST")
	api.HandleFunc("/bookings/{id}/payments", bookingHandler.AddPayment).Methods("POST")

	api.HandleFunc("/appointments", appointmentHandler.Create).Methods("POST")
	api.HandleFunc("/appointments", appointmentHandler.List).Methods("GET")
	api.HandleFunc("/appointments/{id}", appointmentHandler.Get).Methods("GET")
	api.HandleFunc("/appointments/{id}/confirm", appointmentHandler.Confirm).Methods("POST")
	api.HandleFunc("/appointments/{id}/complete", appointmentHandler.Complete).Methods("POST")
	api.HandleFunc("/appointments/{id}/cancel", appointmentHandler.Cancel).Methods("POST")
	api.HandleFunc("/appointments/{id}/payments", appointmentHandler.AddPayment).Methods("POST")

	api.HandleFunc("/expenses", expenseHandler.Record).Methods("POST")
	api.HandleFunc("/expenses", expenseHandler.List).Methods("GET")
	api.HandleFunc("/expenses/categories", expenseHandler.CreateCategory).Methods("POST")
	api.HandleFunc("/expenses/categories", expenseHandler.ListCategories).Methods("GET")

	api.HandleFunc("/ledger/entries", ledgerHandler.Post).Methods("POST")
	api.HandleFunc("/ledger/report", ledgerHandler.Report).Methods("GET")

	return router
}
