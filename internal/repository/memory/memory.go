// Package memory provides in-memory repository implementations mirroring the
// postgres store. Used by tests and by dev mode when no database is
// configured.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"atelier-backend/internal/domain"
	"atelier-backend/internal/repository"
)

type Store struct {
	mu sync.RWMutex

	nextID       int32
	branches     map[int32]domain.Branch
	clients      map[int32]domain.Client
	users        map[string]domain.User
	catalog      map[int32]domain.CatalogItem
	items        map[int32]domain.InventoryItem
	services     map[int32]domain.SalonService
	bookings     map[int32]domain.Booking
	appointments map[int32]domain.SalonAppointment
	entries      []domain.LedgerEntry
	entryKeys    map[string]bool
	categories   map[int32]domain.ExpenseCategory
	expenses     map[int32]domain.Expense
}

func NewStore() *Store {
	return &Store{
		branches:     make(map[int32]domain.Branch),
		clients:      make(map[int32]domain.Client),
		users:        make(map[string]domain.User),
		catalog:      make(map[int32]domain.CatalogItem),
		items:        make(map[int32]domain.InventoryItem),
		services:     make(map[int32]domain.SalonService),
		bookings:     make(map[int32]domain.Booking),
		appointments: make(map[int32]domain.SalonAppointment),
		entryKeys:    make(map[string]bool),
		categories:   make(map[int32]domain.ExpenseCategory),
		expenses:     make(map[int32]domain.Expense),
	}
}

func (s *Store) allocID() int32 {
	s.nextID++
	return s.nextID
}

// --- branches ---

func (s *Store) Create(ctx context.Context, b *domain.Branch) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	b.ID = s.allocID()
	s.branches[b.ID] = *b
	return nil
}

func (s *Store) GetByID(ctx context.Context, id int32) (*domain.Branch, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	b, ok := s.branches[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &b, nil
}

func (s *Store) List(ctx context.Context) ([]domain.Branch, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Branch, 0, len(s.branches))
	for _, b := range s.branches {
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// Branches exposes the branch repository with its interface-shaped method set.
func (s *Store) Branches() repository.BranchRepository { return s }

// --- clients ---

type clientRepo struct{ s *Store }

func (s *Store) Clients() repository.ClientRepository { return clientRepo{s} }

func (r clientRepo) Create(ctx context.Context, c *domain.Client) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c.ID = r.s.allocID()
	r.s.clients[c.ID] = *c
	return nil
}

func (r clientRepo) GetByID(ctx context.Context, id int32) (*domain.Client, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	c, ok := r.s.clients[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &c, nil
}

func (r clientRepo) Search(ctx context.Context, query string) ([]domain.Client, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	q := strings.ToLower(query)
	var out []domain.Client
	for _, c := range r.s.clients {
		if q == "" || strings.Contains(strings.ToLower(c.Name), q) || strings.Contains(c.Phone, query) {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// --- users ---

type userRepo struct{ s *Store }

func (s *Store) Users() repository.UserRepository { return userRepo{s} }

func (r userRepo) Create(ctx context.Context, u *domain.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.users {
		if existing.Email == u.Email {
			return &domain.IntegrityError{Op: "create user", Err: domain.ErrDuplicateEntry}
		}
	}
	r.s.users[u.ID] = *u
	return nil
}

func (r userRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	u, ok := r.s.users[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &u, nil
}

func (r userRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, u := range r.s.users {
		if u.Email == email {
			out := u
			return &out, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r userRepo) Update(ctx context.Context, u *domain.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.users[u.ID]; !ok {
		return domain.ErrNotFound
	}
	r.s.users[u.ID] = *u
	return nil
}

// --- catalog ---

type catalogRepo struct{ s *Store }

func (s *Store) Catalog() repository.CatalogRepository { return catalogRepo{s} }

func (r catalogRepo) CreateDefinition(ctx context.Context, def *domain.CatalogItem) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	def.ID = r.s.allocID()
	r.s.catalog[def.ID] = *def
	return nil
}

func (r catalogRepo) GetDefinition(ctx context.Context, id int32) (*domain.CatalogItem, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	def, ok := r.s.catalog[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &def, nil
}

func (r catalogRepo) ListDefinitions(ctx context.Context, departments []domain.Department) ([]domain.CatalogItem, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	allowed := domain.NewDepartmentSet(departments...)
	var out []domain.CatalogItem
	for _, def := range r.s.catalog {
		if len(departments) == 0 || allowed.Contains(def.Department) {
			out = append(out, def)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r catalogRepo) CreateItem(ctx context.Context, item *domain.InventoryItem) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if item.Barcode != "" {
		for _, existing := range r.s.items {
			if existing.Barcode == item.Barcode {
				return &domain.IntegrityError{Op: "create inventory item: duplicate barcode", Err: domain.ErrDuplicateEntry}
			}
		}
	}
	item.ID = r.s.allocID()
	r.s.items[item.ID] = *item
	return nil
}

func (r catalogRepo) GetItem(ctx context.Context, id int32) (*domain.InventoryItem, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	item, ok := r.s.items[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &item, nil
}

func (r catalogRepo) GetItemWithDefinition(ctx context.Context, id int32) (*domain.InventoryItem, *domain.CatalogItem, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	item, ok := r.s.items[id]
	if !ok {
		return nil, nil, domain.ErrNotFound
	}
	def, ok := r.s.catalog[item.CatalogItemID]
	if !ok {
		return nil, nil, domain.ErrNotFound
	}
	return &item, &def, nil
}

func (r catalogRepo) ListItems(ctx context.Context, branchID *int32, departments []domain.Department) ([]domain.InventoryItem, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	allowed := domain.NewDepartmentSet(departments...)
	var out []domain.InventoryItem
	for _, item := range r.s.items {
		if branchID != nil && (item.BranchID == nil || *item.BranchID != *branchID) {
			continue
		}
		if len(departments) > 0 {
			def, ok := r.s.catalog[item.CatalogItemID]
			if !ok || !allowed.Contains(def.Department) {
				continue
			}
		}
		out = append(out, item)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r catalogRepo) UpdateItemStatus(ctx context.Context, itemID int32, status domain.ItemStatus) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	item, ok := r.s.items[itemID]
	if !ok {
		return domain.ErrNotFound
	}
	item.Status = status
	r.s.items[itemID] = item
	return nil
}

// --- salon services ---

type serviceRepo struct{ s *Store }

func (s *Store) SalonServices() repository.SalonServiceRepository { return serviceRepo{s} }

func (r serviceRepo) Create(ctx context.Context, svc *domain.SalonService) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	svc.ID = r.s.allocID()
	r.s.services[svc.ID] = *svc
	return nil
}

func (r serviceRepo) GetByID(ctx context.Context, id int32) (*domain.SalonService, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	svc, ok := r.s.services[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &svc, nil
}

func (r serviceRepo) List(ctx context.Context, branchID *int32) ([]domain.SalonService, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []domain.SalonService
	for _, svc := range r.s.services {
		if branchID != nil && (svc.BranchID == nil || *svc.BranchID != *branchID) {
			continue
		}
		out = append(out, svc)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// --- bookings ---

type bookingRepo struct{ s *Store }

func (s *Store) Bookings() repository.BookingRepository { return bookingRepo{s} }

func cloneBooking(b domain.Booking) domain.Booking {
	items := make([]domain.BookingItem, len(b.Items))
	copy(items, b.Items)
	b.Items = items
	return b
}

func (r bookingRepo) Create(ctx context.Context, b *domain.Booking) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	b.ID = r.s.allocID()
	for i := range b.Items {
		b.Items[i].ID = r.s.allocID()
		b.Items[i].BookingID = b.ID
	}
	r.s.bookings[b.ID] = cloneBooking(*b)
	return nil
}

func (r bookingRepo) GetByID(ctx context.Context, id int32) (*domain.Booking, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	b, ok := r.s.bookings[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	out := cloneBooking(b)
	// join in catalog price and department the way the SQL store does
	for i := range out.Items {
		if item, ok := r.s.items[out.Items[i].InventoryItemID]; ok {
			if def, ok := r.s.catalog[item.CatalogItemID]; ok {
				out.Items[i].CatalogPrice = def.RentalPrice
				out.Items[i].Department = def.Department
			}
		}
	}
	return &out, nil
}

func (r bookingRepo) Update(ctx context.Context, b *domain.Booking) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.bookings[b.ID]; !ok {
		return domain.ErrNotFound
	}
	r.s.bookings[b.ID] = cloneBooking(*b)
	return nil
}

func (r bookingRepo) FindOverlapping(ctx context.Context, itemID int32, pickup, ret time.Time, excludeID int32) ([]domain.Booking, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []domain.Booking
	for _, b := range r.s.bookings {
		if b.ID == excludeID || !b.Status.BlocksItem() {
			continue
		}
		holds := false
		for _, it := range b.Items {
			if it.InventoryItemID == itemID {
				holds = true
				break
			}
		}
		if !holds {
			continue
		}
		// half-open overlap rule
		if pickup.Before(b.ReturnDate) && b.PickupDate.Before(ret) {
			out = append(out, cloneBooking(b))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].PickupDate.Before(out[j].PickupDate) })
	return out, nil
}

func (r bookingRepo) firstItemDepartment(b domain.Booking) (domain.Department, bool) {
	if len(b.Items) == 0 {
		return "", false
	}
	item, ok := r.s.items[b.Items[0].InventoryItemID]
	if !ok {
		return "", false
	}
	def, ok := r.s.catalog[item.CatalogItemID]
	if !ok {
		return "", false
	}
	return def.Department, true
}

func (r bookingRepo) List(ctx context.Context, filter repository.BookingFilter) ([]domain.Booking, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	allowed := domain.NewDepartmentSet(filter.Departments...)
	var out []domain.Booking
	for _, b := range r.s.bookings {
		if filter.BranchID != nil && (b.BranchID == nil || *b.BranchID != *filter.BranchID) {
			continue
		}
		if filter.Status != nil && b.Status != *filter.Status {
			continue
		}
		if len(filter.Departments) > 0 {
			dept, ok := r.firstItemDepartment(b)
			if !ok || !allowed.Contains(dept) {
				continue
			}
		}
		out = append(out, cloneBooking(b))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r bookingRepo) MarkLate(ctx context.Context, cutoff time.Time) ([]int32, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var ids []int32
	for id, b := range r.s.bookings {
		if b.Status == domain.BookingStatusPickedUp && b.ReturnDate.Before(cutoff) {
			b.Status = domain.BookingStatusLate
			r.s.bookings[id] = b
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}

// --- appointments ---

type appointmentRepo struct{ s *Store }

func (s *Store) Appointments() repository.AppointmentRepository { return appointmentRepo{s} }

func cloneAppointment(a domain.SalonAppointment) domain.SalonAppointment {
	items := make([]domain.AppointmentItem, len(a.Items))
	copy(items, a.Items)
	a.Items = items
	return a
}

func (r appointmentRepo) Create(ctx context.Context, a *domain.SalonAppointment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	a.ID = r.s.allocID()
	for i := range a.Items {
		a.Items[i].ID = r.s.allocID()
		a.Items[i].AppointmentID = a.ID
	}
	r.s.appointments[a.ID] = cloneAppointment(*a)
	return nil
}

func (r appointmentRepo) GetByID(ctx context.Context, id int32) (*domain.SalonAppointment, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	a, ok := r.s.appointments[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	out := cloneAppointment(a)
	return &out, nil
}

func (r appointmentRepo) Update(ctx context.Context, a *domain.SalonAppointment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.appointments[a.ID]; !ok {
		return domain.ErrNotFound
	}
	r.s.appointments[a.ID] = cloneAppointment(*a)
	return nil
}

func (r appointmentRepo) List(ctx context.Context, filter repository.AppointmentFilter) ([]domain.SalonAppointment, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []domain.SalonAppointment
	for _, a := range r.s.appointments {
		if filter.BranchID != nil && (a.BranchID == nil || *a.BranchID != *filter.BranchID) {
			continue
		}
		if filter.Status != nil && a.Status != *filter.Status {
			continue
		}
		if !filter.From.IsZero() && a.At.Before(filter.From) {
			continue
		}
		if !filter.To.IsZero() && a.At.After(filter.To) {
			continue
		}
		out = append(out, cloneAppointment(a))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].At.After(out[j].At) })
	return out, nil
}

// --- ledger ---

type ledgerRepo struct{ s *Store }

func (s *Store) Ledger() repository.LedgerRepository { return ledgerRepo{s} }

func (r ledgerRepo) Append(ctx context.Context, e *domain.LedgerEntry) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if e.EntryKey != "" && r.s.entryKeys[e.EntryKey] {
		return domain.ErrDuplicateEntry
	}
	e.ID = r.s.allocID()
	r.s.entries = append(r.s.entries, *e)
	if e.EntryKey != "" {
		r.s.entryKeys[e.EntryKey] = true
	}
	return nil
}

func (r ledgerRepo) List(ctx context.Context, filter domain.EntryFilter) ([]domain.LedgerEntry, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []domain.LedgerEntry
	for _, e := range r.s.entries {
		if filter.Matches(e) {
			out = append(out, e)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].At.Before(out[j].At) })
	return out, nil
}

func (r ledgerRepo) Balance(ctx context.Context, filter domain.EntryFilter) (int64, error) {
	entries, err := r.List(ctx, filter)
	if err != nil {
		return 0, err
	}
	return domain.FoldBalance(entries), nil
}

func (r ledgerRepo) InsuranceHeld(ctx context.Context, filter domain.EntryFilter) (int64, error) {
	entries, err := r.List(ctx, filter)
	if err != nil {
		return 0, err
	}
	return domain.FoldInsuranceHeld(entries), nil
}

// --- expenses ---

type expenseRepo struct{ s *Store }

func (s *Store) Expenses() repository.ExpenseRepository { return expenseRepo{s} }

func (r expenseRepo) CreateCategory(ctx context.Context, cat *domain.ExpenseCategory) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cat.ID = r.s.allocID()
	r.s.categories[cat.ID] = *cat
	return nil
}

func (r expenseRepo) ListCategories(ctx context.Context, branchID *int32) ([]domain.ExpenseCategory, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []domain.ExpenseCategory
	for _, c := range r.s.categories {
		if branchID != nil && (c.BranchID == nil || *c.BranchID != *branchID) {
			continue
		}
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r expenseRepo) Create(ctx context.Context, e *domain.Expense) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	e.ID = r.s.allocID()
	r.s.expenses[e.ID] = *e
	return nil
}

func (r expenseRepo) List(ctx context.Context, branchID *int32, from, to time.Time) ([]domain.Expense, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []domain.Expense
	for _, e := range r.s.expenses {
		if branchID != nil && (e.BranchID == nil || *e.BranchID != *branchID) {
			continue
		}
		if !from.IsZero() && e.At.Before(from) {
			continue
		}
		if !to.IsZero() && e.At.After(to) {
			continue
		}
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].At.After(out[j].At) })
	return out, nil
}
