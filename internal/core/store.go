package core

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"
)

type memoryState struct {
	patients     map[string]Patient
	appointments map[string]Appointment
	invoices     map[string]Invoice
	staff        map[string]Staff
	departments  map[string]Department
	beds         map[string]BedCategory
	attendance   map[string]StaffAttendance
	seqs         map[EntityType]uint64
}

func newMemoryState() memoryState {
	return memoryState{
		patients:     make(map[string]Patient),
		appointments: make(map[string]Appointment),
		invoices:     make(map[string]Invoice),
		staff:        make(map[string]Staff),
		departments:  make(map[string]Department),
		beds:         make(map[string]BedCategory),
		attendance:   make(map[string]StaffAttendance),
		seqs:         make(map[EntityType]uint64),
	}
}

func (s memoryState) clone() memoryState {
	cloned := newMemoryState()
	for k, v := range s.patients {
		cloned.patients[k] = clonePatient(v)
	}
	for k, v := range s.appointments {
		cloned.appointments[k] = cloneAppointment(v)
	}
	for k, v := range s.invoices {
		cloned.invoices[k] = cloneInvoice(v)
	}
	for k, v := range s.staff {
		cloned.staff[k] = cloneStaff(v)
	}
	for k, v := range s.departments {
		cloned.departments[k] = cloneDepartment(v)
	}
	for k, v := range s.beds {
		cloned.beds[k] = cloneBedCategory(v)
	}
	for k, v := range s.attendance {
		cloned.attendance[k] = cloneAttendance(v)
	}
	for k, v := range s.seqs {
		cloned.seqs[k] = v
	}
	return cloned
}

func cloneTimePtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	cp := *t
	return &cp
}

func cloneStringPtr(s *string) *string {
	if s == nil {
		return nil
	}
	cp := *s
	return &cp
}

func cloneIntPtr(i *int) *int {
	if i == nil {
		return nil
	}
	cp := *i
	return &cp
}

func clonePatient(p Patient) Patient {
	cp := p
	cp.DateOfDeath = cloneTimePtr(p.DateOfDeath)
	cp.CauseOfDeath = cloneStringPtr(p.CauseOfDeath)
	cp.ParentFileID = cloneStringPtr(p.ParentFileID)
	return cp
}

func cloneAppointment(a Appointment) Appointment { return a }
func cloneInvoice(i Invoice) Invoice             { return i }

func cloneStaff(s Staff) Staff {
	cp := s
	cp.MiddleName = cloneStringPtr(s.MiddleName)
	return cp
}

func cloneDepartment(d Department) Department    { return d }
func cloneBedCategory(b BedCategory) BedCategory { return b }

func cloneAttendance(a StaffAttendance) StaffAttendance {
	cp := a
	cp.CheckOutTime = cloneTimePtr(a.CheckOutTime)
	cp.Sessions = make([]Session, len(a.Sessions))
	for i, sess := range a.Sessions {
		sess.LogoutTime = cloneTimePtr(sess.LogoutTime)
		sess.DurationMinutes = cloneIntPtr(sess.DurationMinutes)
		cp.Sessions[i] = sess
	}
	return cp
}

// ErrNotFound is returned when a mutation or lookup targets a missing record.
// The transaction state is never altered on a miss.
type ErrNotFound struct {
	Entity EntityType
	ID     string
}

func (e ErrNotFound) Error() string {
	return fmt.Sprintf("%s %s not found", e.Entity, e.ID)
}

// displayIDPrefixes maps each entity type to the prefix of its
// human-readable sequential ID (e.g. PAT-00042).
var displayIDPrefixes = map[EntityType]string{
	EntityPatient:     "PAT",
	EntityAppointment: "APT",
	EntityInvoice:     "INV",
	EntityStaff:       "STF",
	EntityDepartment:  "DEP",
	EntityBedCategory: "BED",
	EntityAttendance:  "ATT",
}

// MemoryStore provides an in-memory transactional store for the hospital domain.
type MemoryStore struct {
	mu     sync.RWMutex
	state  memoryState
	engine *RulesEngine
	nowFn  func() time.Time
}

// NewMemoryStore constructs an in-memory store backed by the provided rules engine.
func NewMemoryStore(engine *RulesEngine) *MemoryStore {
	if engine == nil {
		engine = NewRulesEngine()
	}
	return &MemoryStore{
		state:  newMemoryState(),
		engine: engine,
		nowFn:  func() time.Time { return time.Now().UTC() },
	}
}

// SetNowFunc overrides the store clock. Intended for deterministic tests.
func (s *MemoryStore) SetNowFunc(fn func() time.Time) {
	if fn == nil {
		return
	}
	s.mu.Lock()
	s.nowFn = fn
	s.mu.Unlock()
}

// Now returns the store clock's current time.
func (s *MemoryStore) Now() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.nowFn()
}

// Transaction represents a mutation set applied to the store state.
type Transaction struct {
	store   *MemoryStore
	state   memoryState
	changes []Change
	now     time.Time
}

// Now returns the timestamp the transaction was opened with.
func (tx *Transaction) Now() time.Time {
	return tx.now
}

// nextID mints the next sequential display ID for an entity type from the
// monotonic counter owned by the transaction state. Counters never consult
// existing records, so deletions and reordering cannot produce duplicates.
func (tx *Transaction) nextID(entity EntityType) (string, uint64) {
	tx.state.seqs[entity]++
	seq := tx.state.seqs[entity]
	return fmt.Sprintf("%s-%05d", displayIDPrefixes[entity], seq), seq
}

// TransactionView exposes a read-only snapshot of the transactional state to rules.
type TransactionView struct {
	state *memoryState
}

func newTransactionView(state *memoryState) TransactionView {
	return TransactionView{state: state}
}

// ListPatients returns all patients within the transaction snapshot.
func (v TransactionView) ListPatients() []Patient {
	out := make([]Patient, 0, len(v.state.patients))
	for _, p := range v.state.patients {
		out = append(out, clonePatient(p))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Seq < out[j].Seq })
	return out
}

// ListAppointments returns all appointments within the transaction snapshot.
func (v TransactionView) ListAppointments() []Appointment {
	out := make([]Appointment, 0, len(v.state.appointments))
	for _, a := range v.state.appointments {
		out = append(out, cloneAppointment(a))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Seq < out[j].Seq })
	return out
}

// ListBedCategories returns all bed categories within the transaction snapshot.
func (v TransactionView) ListBedCategories() []BedCategory {
	out := make([]BedCategory, 0, len(v.state.beds))
	for _, b := range v.state.beds {
		out = append(out, cloneBedCategory(b))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Seq < out[j].Seq })
	return out
}

// ListStaff returns all staff within the transaction snapshot.
func (v TransactionView) ListStaff() []Staff {
	out := make([]Staff, 0, len(v.state.staff))
	for _, st := range v.state.staff {
		out = append(out, cloneStaff(st))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Seq < out[j].Seq })
	return out
}

// FindPatient retrieves a patient by ID from the snapshot.
func (v TransactionView) FindPatient(id string) (Patient, bool) {
	p, ok := v.state.patients[id]
	if !ok {
		return Patient{}, false
	}
	return clonePatient(p), true
}

// FindStaff retrieves a staff member by ID from the snapshot.
func (v TransactionView) FindStaff(id string) (Staff, bool) {
	st, ok := v.state.staff[id]
	if !ok {
		return Staff{}, false
	}
	return cloneStaff(st), true
}

// FindDepartment retrieves a department by ID from the snapshot.
func (v TransactionView) FindDepartment(id string) (Department, bool) {
	d, ok := v.state.departments[id]
	if !ok {
		return Department{}, false
	}
	return cloneDepartment(d), true
}

// RunInTransaction executes fn within a transactional copy of the store state.
// Changes, derived-field recomputation, and rule evaluation either commit as
// a whole or leave the committed state untouched.
func (s *MemoryStore) RunInTransaction(ctx context.Context, fn func(tx *Transaction) error) ([]Change, Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx := &Transaction{
		store: s,
		state: s.state.clone(),
		now:   s.nowFn(),
	}

	if err := fn(tx); err != nil {
		return nil, Result{}, err
	}

	var result Result
	if s.engine != nil {
		view := newTransactionView(&tx.state)
		res, err := s.engine.Evaluate(ctx, view, tx.changes)
		if err != nil {
			return nil, Result{}, err
		}
		result = res
		if res.HasBlocking() {
			return nil, res, RuleViolationError{Result: res}
		}
	}

	s.state = tx.state
	return tx.changes, result, nil
}

// View executes fn against a read-only snapshot of the store state.
func (s *MemoryStore) View(ctx context.Context, fn func(TransactionView) error) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snapshot := s.state.clone()
	view := newTransactionView(&snapshot)
	return fn(view)
}

func (tx *Transaction) recordChange(change Change) {
	tx.changes = append(tx.changes, change)
}

// CreatePatient stores a new patient file within the transaction.
func (tx *Transaction) CreatePatient(p Patient) (Patient, error) {
	if p.ID == "" {
		p.ID, p.Seq = tx.nextID(EntityPatient)
	}
	if _, exists := tx.state.patients[p.ID]; exists {
		return Patient{}, fmt.Errorf("patient %q already exists", p.ID)
	}
	p.CreatedAt = tx.now
	p.UpdatedAt = tx.now
	p.FullName = FullName(p.FirstName, nil, p.LastName)
	if !p.DateOfBirth.IsZero() {
		p.Age = Age(p.DateOfBirth, tx.now)
	}
	tx.state.patients[p.ID] = clonePatient(p)
	tx.recordChange(Change{Entity: EntityPatient, Action: ActionCreate, After: clonePatient(p)})
	return clonePatient(p), nil
}

// UpdatePatient mutates a patient using the provided mutator function.
func (tx *Transaction) UpdatePatient(id string, mutator func(*Patient) error) (Patient, error) {
	current, ok := tx.state.patients[id]
	if !ok {
		return Patient{}, ErrNotFound{Entity: EntityPatient, ID: id}
	}
	before := clonePatient(current)
	if err := mutator(&current); err != nil {
		return Patient{}, err
	}
	current.ID = id
	current.Seq = before.Seq
	current.CreatedAt = before.CreatedAt
	current.UpdatedAt = tx.now
	current.FullName = FullName(current.FirstName, nil, current.LastName)
	if !current.DateOfBirth.IsZero() {
		current.Age = Age(current.DateOfBirth, tx.now)
	}
	tx.state.patients[id] = clonePatient(current)
	tx.recordChange(Change{Entity: EntityPatient, Action: ActionUpdate, Before: before, After: clonePatient(current)})
	return clonePatient(current), nil
}

// DeletePatient removes a patient file from the transaction state.
func (tx *Transaction) DeletePatient(id string) error {
	current, ok := tx.state.patients[id]
	if !ok {
		return ErrNotFound{Entity: EntityPatient, ID: id}
	}
	delete(tx.state.patients, id)
	tx.recordChange(Change{Entity: EntityPatient, Action: ActionDelete, Before: clonePatient(current)})
	return nil
}

// CreateAppointment stores a new appointment.
func (tx *Transaction) CreateAppointment(a Appointment) (Appointment, error) {
	if a.ID == "" {
		a.ID, a.Seq = tx.nextID(EntityAppointment)
	}
	if _, exists := tx.state.appointments[a.ID]; exists {
		return Appointment{}, fmt.Errorf("appointment %q already exists", a.ID)
	}
	a.CreatedAt = tx.now
	a.UpdatedAt = tx.now
	if a.Status == "" {
		a.Status = AppointmentStatusScheduled
	}
	if a.PatientName == "" {
		if p, ok := tx.state.patients[a.PatientID]; ok {
			a.PatientName = p.FullName
		}
	}
	tx.state.appointments[a.ID] = cloneAppointment(a)
	tx.recordChange(Change{Entity: EntityAppointment, Action: ActionCreate, After: cloneAppointment(a)})
	return cloneAppointment(a), nil
}

// UpdateAppointment mutates an existing appointment.
func (tx *Transaction) UpdateAppointment(id string, mutator func(*Appointment) error) (Appointment, error) {
	current, ok := tx.state.appointments[id]
	if !ok {
		return Appointment{}, ErrNotFound{Entity: EntityAppointment, ID: id}
	}
	before := cloneAppointment(current)
	if err := mutator(&current); err != nil {
		return Appointment{}, err
	}
	current.ID = id
	current.Seq = before.Seq
	current.CreatedAt = before.CreatedAt
	current.UpdatedAt = tx.now
	tx.state.appointments[id] = cloneAppointment(current)
	tx.recordChange(Change{Entity: EntityAppointment, Action: ActionUpdate, Before: before, After: cloneAppointment(current)})
	return cloneAppointment(current), nil
}

// DeleteAppointment removes an appointment.
func (tx *Transaction) DeleteAppointment(id string) error {
	current, ok := tx.state.appointments[id]
	if !ok {
		return ErrNotFound{Entity: EntityAppointment, ID: id}
	}
	delete(tx.state.appointments, id)
	tx.recordChange(Change{Entity: EntityAppointment, Action: ActionDelete, Before: cloneAppointment(current)})
	return nil
}

// CreateInvoice stores a new invoice. DateCreated is stamped once and
// survives all later updates.
func (tx *Transaction) CreateInvoice(inv Invoice) (Invoice, error) {
	if inv.ID == "" {
		inv.ID, inv.Seq = tx.nextID(EntityInvoice)
	}
	if _, exists := tx.state.invoices[inv.ID]; exists {
		return Invoice{}, fmt.Errorf("invoice %q already exists", inv.ID)
	}
	inv.CreatedAt = tx.now
	inv.UpdatedAt = tx.now
	if inv.DateCreated.IsZero() {
		inv.DateCreated = tx.now
	}
	if inv.PatientName == "" {
		if p, ok := tx.state.patients[inv.PatientID]; ok {
			inv.PatientName = p.FullName
		}
	}
	tx.state.invoices[inv.ID] = cloneInvoice(inv)
	tx.recordChange(Change{Entity: EntityInvoice, Action: ActionCreate, After: cloneInvoice(inv)})
	return cloneInvoice(inv), nil
}

// UpdateInvoice mutates an existing invoice.
func (tx *Transaction) UpdateInvoice(id string, mutator func(*Invoice) error) (Invoice, error) {
	current, ok := tx.state.invoices[id]
	if !ok {
		return Invoice{}, ErrNotFound{Entity: EntityInvoice, ID: id}
	}
	before := cloneInvoice(current)
	if err := mutator(&current); err != nil {
		return Invoice{}, err
	}
	current.ID = id
	current.Seq = before.Seq
	current.CreatedAt = before.CreatedAt
	current.UpdatedAt = tx.now
	current.DateCreated = before.DateCreated
	tx.state.invoices[id] = cloneInvoice(current)
	tx.recordChange(Change{Entity: EntityInvoice, Action: ActionUpdate, Before: before, After: cloneInvoice(current)})
	return cloneInvoice(current), nil
}

// DeleteInvoice removes an invoice.
func (tx *Transaction) DeleteInvoice(id string) error {
	current, ok := tx.state.invoices[id]
	if !ok {
		return ErrNotFound{Entity: EntityInvoice, ID: id}
	}
	delete(tx.state.invoices, id)
	tx.recordChange(Change{Entity: EntityInvoice, Action: ActionDelete, Before: cloneInvoice(current)})
	return nil
}

// CreateStaff stores a new staff member.
func (tx *Transaction) CreateStaff(st Staff) (Staff, error) {
	if st.ID == "" {
		st.ID, st.Seq = tx.nextID(EntityStaff)
	}
	if _, exists := tx.state.staff[st.ID]; exists {
		return Staff{}, fmt.Errorf("staff %q already exists", st.ID)
	}
	st.CreatedAt = tx.now
	st.UpdatedAt = tx.now
	st.FullName = FullName(st.FirstName, st.MiddleName, st.LastName)
	tx.state.staff[st.ID] = cloneStaff(st)
	tx.recordChange(Change{Entity: EntityStaff, Action: ActionCreate, After: cloneStaff(st)})
	return cloneStaff(st), nil
}

// UpdateStaff mutates an existing staff member.
func (tx *Transaction) UpdateStaff(id string, mutator func(*Staff) error) (Staff, error) {
	current, ok := tx.state.staff[id]
	if !ok {
		return Staff{}, ErrNotFound{Entity: EntityStaff, ID: id}
	}
	before := cloneStaff(current)
	if err := mutator(&current); err != nil {
		return Staff{}, err
	}
	current.ID = id
	current.Seq = before.Seq
	current.CreatedAt = before.CreatedAt
	current.UpdatedAt = tx.now
	current.FullName = FullName(current.FirstName, current.MiddleName, current.LastName)
	tx.state.staff[id] = cloneStaff(current)
	tx.recordChange(Change{Entity: EntityStaff, Action: ActionUpdate, Before: before, After: cloneStaff(current)})
	return cloneStaff(current), nil
}

// DeleteStaff removes a staff member.
func (tx *Transaction) DeleteStaff(id string) error {
	current, ok := tx.state.staff[id]
	if !ok {
		return ErrNotFound{Entity: EntityStaff, ID: id}
	}
	delete(tx.state.staff, id)
	tx.recordChange(Change{Entity: EntityStaff, Action: ActionDelete, Before: cloneStaff(current)})
	return nil
}

// CreateDepartment stores a new department.
func (tx *Transaction) CreateDepartment(d Department) (Department, error) {
	if d.ID == "" {
		d.ID, d.Seq = tx.nextID(EntityDepartment)
	}
	if _, exists := tx.state.departments[d.ID]; exists {
		return Department{}, fmt.Errorf("department %q already exists", d.ID)
	}
	d.CreatedAt = tx.now
	d.UpdatedAt = tx.now
	tx.state.departments[d.ID] = cloneDepartment(d)
	tx.recordChange(Change{Entity: EntityDepartment, Action: ActionCreate, After: cloneDepartment(d)})
	return cloneDepartment(d), nil
}

// UpdateDepartment mutates an existing department, bumping its UpdatedAt
// stamp on every mutation.
func (tx *Transaction) UpdateDepartment(id string, mutator func(*Department) error) (Department, error) {
	current, ok := tx.state.departments[id]
	if !ok {
		return Department{}, ErrNotFound{Entity: EntityDepartment, ID: id}
	}
	before := cloneDepartment(current)
	if err := mutator(&current); err != nil {
		return Department{}, err
	}
	current.ID = id
	current.Seq = before.Seq
	current.CreatedAt = before.CreatedAt
	current.UpdatedAt = tx.now
	tx.state.departments[id] = cloneDepartment(current)
	tx.recordChange(Change{Entity: EntityDepartment, Action: ActionUpdate, Before: before, After: cloneDepartment(current)})
	return cloneDepartment(current), nil
}

// DeleteDepartment removes a department. Staff referencing it are left
// untouched; reassignment is the caller's responsibility.
func (tx *Transaction) DeleteDepartment(id string) error {
	current, ok := tx.state.departments[id]
	if !ok {
		return ErrNotFound{Entity: EntityDepartment, ID: id}
	}
	delete(tx.state.departments, id)
	tx.recordChange(Change{Entity: EntityDepartment, Action: ActionDelete, Before: cloneDepartment(current)})
	return nil
}

// CreateBedCategory stores a new bed inventory category with its derived
// availability.
func (tx *Transaction) CreateBedCategory(b BedCategory) (BedCategory, error) {
	if b.ID == "" {
		b.ID, b.Seq = tx.nextID(EntityBedCategory)
	}
	if _, exists := tx.state.beds[b.ID]; exists {
		return BedCategory{}, fmt.Errorf("bed category %q already exists", b.ID)
	}
	b.CreatedAt = tx.now
	b.UpdatedAt = tx.now
	b.AvailableBeds = AvailableBeds(b.TotalBeds, b.OccupiedBeds)
	tx.state.beds[b.ID] = cloneBedCategory(b)
	tx.recordChange(Change{Entity: EntityBedCategory, Action: ActionCreate, After: cloneBedCategory(b)})
	return cloneBedCategory(b), nil
}

// UpdateBedCategory mutates a bed category. AvailableBeds is recomputed only
// when TotalBeds or OccupiedBeds changed; otherwise the prior derived value
// is kept, so callers cannot write it directly.
func (tx *Transaction) UpdateBedCategory(id string, mutator func(*BedCategory) error) (BedCategory, error) {
	current, ok := tx.state.beds[id]
	if !ok {
		return BedCategory{}, ErrNotFound{Entity: EntityBedCategory, ID: id}
	}
	before := cloneBedCategory(current)
	if err := mutator(&current); err != nil {
		return BedCategory{}, err
	}
	current.ID = id
	current.Seq = before.Seq
	current.CreatedAt = before.CreatedAt
	current.UpdatedAt = tx.now
	if current.TotalBeds != before.TotalBeds || current.OccupiedBeds != before.OccupiedBeds {
		current.AvailableBeds = AvailableBeds(current.TotalBeds, current.OccupiedBeds)
	} else {
		current.AvailableBeds = before.AvailableBeds
	}
	tx.state.beds[id] = cloneBedCategory(current)
	tx.recordChange(Change{Entity: EntityBedCategory, Action: ActionUpdate, Before: before, After: cloneBedCategory(current)})
	return cloneBedCategory(current), nil
}

// DeleteBedCategory removes a bed category.
func (tx *Transaction) DeleteBedCategory(id string) error {
	current, ok := tx.state.beds[id]
	if !ok {
		return ErrNotFound{Entity: EntityBedCategory, ID: id}
	}
	delete(tx.state.beds, id)
	tx.recordChange(Change{Entity: EntityBedCategory, Action: ActionDelete, Before: cloneBedCategory(current)})
	return nil
}

// CreateAttendance stores a new per-day attendance record.
func (tx *Transaction) CreateAttendance(a StaffAttendance) (StaffAttendance, error) {
	if a.ID == "" {
		a.ID, a.Seq = tx.nextID(EntityAttendance)
	}
	if _, exists := tx.state.attendance[a.ID]; exists {
		return StaffAttendance{}, fmt.Errorf("attendance %q already exists", a.ID)
	}
	a.CreatedAt = tx.now
	a.UpdatedAt = tx.now
	tx.state.attendance[a.ID] = cloneAttendance(a)
	tx.recordChange(Change{Entity: EntityAttendance, Action: ActionCreate, After: cloneAttendance(a)})
	return cloneAttendance(a), nil
}

// UpdateAttendance mutates an existing attendance record.
func (tx *Transaction) UpdateAttendance(id string, mutator func(*StaffAttendance) error) (StaffAttendance, error) {
	current, ok := tx.state.attendance[id]
	if !ok {
		return StaffAttendance{}, ErrNotFound{Entity: EntityAttendance, ID: id}
	}
	before := cloneAttendance(current)
	if err := mutator(&current); err != nil {
		return StaffAttendance{}, err
	}
	current.ID = id
	current.Seq = before.Seq
	current.CreatedAt = before.CreatedAt
	current.UpdatedAt = tx.now
	tx.state.attendance[id] = cloneAttendance(current)
	tx.recordChange(Change{Entity: EntityAttendance, Action: ActionUpdate, Before: before, After: cloneAttendance(current)})
	return cloneAttendance(current), nil
}

// DeleteAttendance removes an attendance record.
func (tx *Transaction) DeleteAttendance(id string) error {
	current, ok := tx.state.attendance[id]
	if !ok {
		return ErrNotFound{Entity: EntityAttendance, ID: id}
	}
	delete(tx.state.attendance, id)
	tx.recordChange(Change{Entity: EntityAttendance, Action: ActionDelete, Before: cloneAttendance(current)})
	return nil
}

// FindStaff retrieves a staff member from the transaction state.
func (tx *Transaction) FindStaff(id string) (Staff, bool) {
	st, ok := tx.state.staff[id]
	if !ok {
		return Staff{}, false
	}
	return cloneStaff(st), true
}

// FindAttendanceForDay returns the attendance record for a staff member on
// the calendar day containing t, if one exists.
func (tx *Transaction) FindAttendanceForDay(staffID string, t time.Time) (StaffAttendance, bool) {
	for _, a := range tx.state.attendance {
		if a.StaffID == staffID && SameDay(a.Date, t) {
			return cloneAttendance(a), true
		}
	}
	return StaffAttendance{}, false
}

// Read helpers ---------------------------------------------------------------

// GetPatient retrieves a patient by ID from committed state.
func (s *MemoryStore) GetPatient(id string) (Patient, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.state.patients[id]
	if !ok {
		return Patient{}, false
	}
	return clonePatient(p), true
}

// ListPatients returns all patients from committed state in insertion order.
func (s *MemoryStore) ListPatients() []Patient {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Patient, 0, len(s.state.patients))
	for _, p := range s.state.patients {
		out = append(out, clonePatient(p))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Seq < out[j].Seq })
	return out
}

// GetAppointment retrieves an appointment by ID.
func (s *MemoryStore) GetAppointment(id string) (Appointment, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	a, ok := s.state.appointments[id]
	if !ok {
		return Appointment{}, false
	}
	return cloneAppointment(a), true
}

// ListAppointments returns all appointments in insertion order.
func (s *MemoryStore) ListAppointments() []Appointment {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Appointment, 0, len(s.state.appointments))
	for _, a := range s.state.appointments {
		out = append(out, cloneAppointment(a))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Seq < out[j].Seq })
	return out
}

// GetInvoice retrieves an invoice by ID.
func (s *MemoryStore) GetInvoice(id string) (Invoice, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	inv, ok := s.state.invoices[id]
	if !ok {
		return Invoice{}, false
	}
	return cloneInvoice(inv), true
}

// ListInvoices returns all invoices in insertion order.
func (s *MemoryStore) ListInvoices() []Invoice {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Invoice, 0, len(s.state.invoices))
	for _, inv := range s.state.invoices {
		out = append(out, cloneInvoice(inv))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Seq < out[j].Seq })
	return out
}

// GetStaff retrieves a staff member by ID.
func (s *MemoryStore) GetStaff(id string) (Staff, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	st, ok := s.state.staff[id]
	if !ok {
		return Staff{}, false
	}
	return cloneStaff(st), true
}

// ListStaff returns all staff in insertion order.
func (s *MemoryStore) ListStaff() []Staff {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Staff, 0, len(s.state.staff))
	for _, st := range s.state.staff {
		out = append(out, cloneStaff(st))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Seq < out[j].Seq })
	return out
}

// GetDepartment retrieves a department by ID.
func (s *MemoryStore) GetDepartment(id string) (Department, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	d, ok := s.state.departments[id]
	if !ok {
		return Department{}, false
	}
	return cloneDepartment(d), true
}

// ListDepartments returns all departments in insertion order.
func (s *MemoryStore) ListDepartments() []Department {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Department, 0, len(s.state.departments))
	for _, d := range s.state.departments {
		out = append(out, cloneDepartment(d))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Seq < out[j].Seq })
	return out
}

// GetBedCategory retrieves a bed category by ID.
func (s *MemoryStore) GetBedCategory(id string) (BedCategory, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	b, ok := s.state.beds[id]
	if !ok {
		return BedCategory{}, false
	}
	return cloneBedCategory(b), true
}

// ListBedCategories returns all bed categories in insertion order.
func (s *MemoryStore) ListBedCategories() []BedCategory {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]BedCategory, 0, len(s.state.beds))
	for _, b := range s.state.beds {
		out = append(out, cloneBedCategory(b))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Seq < out[j].Seq })
	return out
}

// GetAttendance retrieves an attendance record by ID.
func (s *MemoryStore) GetAttendance(id string) (StaffAttendance, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	a, ok := s.state.attendance[id]
	if !ok {
		return StaffAttendance{}, false
	}
	return cloneAttendance(a), true
}

// ListAttendance returns all attendance records in insertion order.
func (s *MemoryStore) ListAttendance() []StaffAttendance {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]StaffAttendance, 0, len(s.state.attendance))
	for _, a := range s.state.attendance {
		out = append(out, cloneAttendance(a))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Seq < out[j].Seq })
	return out
}
