// Package ledgertest provides an in-memory ledger store for use-case tests.
//
// Store implements every repository the ledger use cases depend on. Transactions run one
// at a time and roll back every write when the function returns an error, which is the
// isolation the SQL repositories get from the database.
package ledgertest

import (
	"context"
	"encoding/json"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	custodyDomain "github.com/allisson/mist/internal/custody/domain"
	intentDomain "github.com/allisson/mist/internal/intent/domain"
	ledgerDomain "github.com/allisson/mist/internal/ledger/domain"
)

type txKey struct{}

// PublishedEvent is an event captured by the store's publisher.
type PublishedEvent struct {
	Type    string
	Payload json.RawMessage
}

type state struct {
	settings      *custodyDomain.Settings
	capability    *custodyDomain.AdminCapability
	balances      map[ledgerDomain.AssetType]uint64
	deposits      map[uuid.UUID]*custodyDomain.DepositRecord
	intents       map[uuid.UUID]*intentDomain.SwapIntent
	nullifiers    map[ledgerDomain.NullifierHash]time.Time
	disbursements []*intentDomain.Disbursement
	events        []PublishedEvent
}

func (s *state) clone() *state {
	c := &state{
		settings:      s.settings,
		capability:    s.capability,
		balances:      make(map[ledgerDomain.AssetType]uint64, len(s.balances)),
		deposits:      make(map[uuid.UUID]*custodyDomain.DepositRecord, len(s.deposits)),
		intents:       make(map[uuid.UUID]*intentDomain.SwapIntent, len(s.intents)),
		nullifiers:    make(map[ledgerDomain.NullifierHash]time.Time, len(s.nullifiers)),
		disbursements: append([]*intentDomain.Disbursement(nil), s.disbursements...),
		events:        append([]PublishedEvent(nil), s.events...),
	}
	if s.settings != nil {
		settings := *s.settings
		c.settings = &settings
	}
	for k, v := range s.balances {
		c.balances[k] = v
	}
	for k, v := range s.deposits {
		c.deposits[k] = v
	}
	for k, v := range s.intents {
		c.intents[k] = v
	}
	for k, v := range s.nullifiers {
		c.nullifiers[k] = v
	}
	return c
}

// Store is an in-memory ledger.
type Store struct {
	txMu sync.Mutex
	mu   sync.Mutex
	st   *state
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		st: &state{
			balances:   make(map[ledgerDomain.AssetType]uint64),
			deposits:   make(map[uuid.UUID]*custodyDomain.DepositRecord),
			intents:    make(map[uuid.UUID]*intentDomain.SwapIntent),
			nullifiers: make(map[ledgerDomain.NullifierHash]time.Time),
		},
	}
}

// WithTx runs fn with exclusive access to the store and restores the previous state if fn fails.
func (s *Store) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if ctx.Value(txKey{}) != nil {
		return fn(ctx)
	}

	s.txMu.Lock()
	defer s.txMu.Unlock()

	s.mu.Lock()
	snapshot := s.st.clone()
	s.mu.Unlock()

	if err := fn(context.WithValue(ctx, txKey{}, true)); err != nil {
		s.mu.Lock()
		s.st = snapshot
		s.mu.Unlock()
		return err
	}
	return nil
}

func (s *Store) lock() func() {
	s.mu.Lock()
	return s.mu.Unlock
}

// Balance returns the pool balance of asset.
func (s *Store) Balance(asset ledgerDomain.AssetType) uint64 {
	defer s.lock()()
	return s.st.balances[asset]
}

// IsSpent reports whether the nullifier is in the registry.
func (s *Store) IsSpent(n ledgerDomain.Nullifier) bool {
	defer s.lock()()
	_, ok := s.st.nullifiers[n.Hash()]
	return ok
}

// NullifierCount returns the size of the registry.
func (s *Store) NullifierCount() int {
	defer s.lock()()
	return len(s.st.nullifiers)
}

// Disbursements returns every disbursement created so far.
func (s *Store) Disbursements() []*intentDomain.Disbursement {
	defer s.lock()()
	return append([]*intentDomain.Disbursement(nil), s.st.disbursements...)
}

// Events returns every published event in order.
func (s *Store) Events() []PublishedEvent {
	defer s.lock()()
	return append([]PublishedEvent(nil), s.st.events...)
}

// EventsOfType returns the published events of the given type.
func (s *Store) EventsOfType(eventType string) []PublishedEvent {
	var out []PublishedEvent
	for _, e := range s.Events() {
		if e.Type == eventType {
			out = append(out, e)
		}
	}
	return out
}

// HasIntent reports whether the intent still exists.
func (s *Store) HasIntent(id uuid.UUID) bool {
	defer s.lock()()
	_, ok := s.st.intents[id]
	return ok
}

// HasDepositRecord reports whether the deposit record still exists.
func (s *Store) HasDepositRecord(id uuid.UUID) bool {
	defer s.lock()()
	_, ok := s.st.deposits[id]
	return ok
}

// Publish records an event.
func (s *Store) Publish(ctx context.Context, eventType string, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	defer s.lock()()
	s.st.events = append(s.st.events, PublishedEvent{Type: eventType, Payload: data})
	return nil
}

// CurrentAuthorityIdentity implements ledgerDomain.IdentityProvider.
func (s *Store) CurrentAuthorityIdentity(ctx context.Context) (ledgerDomain.Identity, error) {
	defer s.lock()()
	if s.st.settings == nil {
		return ledgerDomain.Identity{}, ledgerDomain.ErrLedgerNotInitialized
	}
	return s.st.settings.Authority, nil
}

// Settings returns the settings repository view of the store.
func (s *Store) Settings() *SettingsRepository { return &SettingsRepository{s} }

// Capabilities returns the capability repository view of the store.
func (s *Store) Capabilities() *CapabilityRepository { return &CapabilityRepository{s} }

// Pools returns the pool repository view of the store.
func (s *Store) Pools() *PoolRepository { return &PoolRepository{s} }

// Deposits returns the deposit record repository view of the store.
func (s *Store) Deposits() *DepositRecordRepository { return &DepositRecordRepository{s} }

// Intents returns the intent repository view of the store.
func (s *Store) Intents() *IntentRepository { return &IntentRepository{s} }

// Nullifiers returns the nullifier registry view of the store.
func (s *Store) Nullifiers() *NullifierRepository { return &NullifierRepository{s} }

// DisbursementRepo returns the disbursement repository view of the store.
func (s *Store) DisbursementRepo() *DisbursementRepository { return &DisbursementRepository{s} }

// SettingsRepository is the in-memory settings repository.
type SettingsRepository struct{ s *Store }

func (r *SettingsRepository) Create(ctx context.Context, settings *custodyDomain.Settings) error {
	defer r.s.lock()()
	if r.s.st.settings != nil {
		return custodyDomain.ErrLedgerAlreadyInitialized
	}
	copied := *settings
	r.s.st.settings = &copied
	return nil
}

func (r *SettingsRepository) Get(ctx context.Context) (*custodyDomain.Settings, error) {
	defer r.s.lock()()
	if r.s.st.settings == nil {
		return nil, ledgerDomain.ErrLedgerNotInitialized
	}
	copied := *r.s.st.settings
	return &copied, nil
}

func (r *SettingsRepository) SetPaused(ctx context.Context, paused bool, updatedAt time.Time) error {
	defer r.s.lock()()
	if r.s.st.settings == nil {
		return ledgerDomain.ErrLedgerNotInitialized
	}
	r.s.st.settings.Paused = paused
	r.s.st.settings.UpdatedAt = updatedAt
	return nil
}

func (r *SettingsRepository) SetAuthority(
	ctx context.Context,
	authority ledgerDomain.Identity,
	updatedAt time.Time,
) error {
	defer r.s.lock()()
	if r.s.st.settings == nil {
		return ledgerDomain.ErrLedgerNotInitialized
	}
	r.s.st.settings.Authority = authority
	r.s.st.settings.UpdatedAt = updatedAt
	return nil
}

// CapabilityRepository is the in-memory capability repository.
type CapabilityRepository struct{ s *Store }

func (r *CapabilityRepository) Create(ctx context.Context, capability *custodyDomain.AdminCapability) error {
	defer r.s.lock()()
	if r.s.st.capability != nil {
		return custodyDomain.ErrCapabilityAlreadyMinted
	}
	r.s.st.capability = capability
	return nil
}

func (r *CapabilityRepository) Get(ctx context.Context) (*custodyDomain.AdminCapability, error) {
	defer r.s.lock()()
	if r.s.st.capability == nil {
		return nil, ledgerDomain.ErrLedgerNotInitialized
	}
	return r.s.st.capability, nil
}

// PoolRepository is the in-memory pool repository.
type PoolRepository struct{ s *Store }

func (r *PoolRepository) Credit(
	ctx context.Context,
	asset ledgerDomain.AssetType,
	amount uint64,
	updatedAt time.Time,
) error {
	defer r.s.lock()()
	sum, err := ledgerDomain.AddAmounts(r.s.st.balances[asset], amount)
	if err != nil {
		return err
	}
	r.s.st.balances[asset] = sum
	return nil
}

func (r *PoolRepository) Debit(
	ctx context.Context,
	asset ledgerDomain.AssetType,
	amount uint64,
	updatedAt time.Time,
) error {
	defer r.s.lock()()
	balance, ok := r.s.st.balances[asset]
	if !ok || balance < amount {
		return ledgerDomain.ErrInsufficientBalance
	}
	r.s.st.balances[asset] = balance - amount
	return nil
}

func (r *PoolRepository) List(ctx context.Context) ([]*custodyDomain.PoolBalance, error) {
	defer r.s.lock()()
	balances := make([]*custodyDomain.PoolBalance, 0, len(r.s.st.balances))
	for asset, balance := range r.s.st.balances {
		balances = append(balances, &custodyDomain.PoolBalance{AssetType: asset, Balance: balance})
	}
	sort.Slice(balances, func(i, j int) bool { return balances[i].AssetType < balances[j].AssetType })
	return balances, nil
}

// DepositRecordRepository is the in-memory deposit record repository.
type DepositRecordRepository struct{ s *Store }

func (r *DepositRecordRepository) Create(ctx context.Context, record *custodyDomain.DepositRecord) error {
	defer r.s.lock()()
	r.s.st.deposits[record.ID] = record
	return nil
}

func (r *DepositRecordRepository) Get(ctx context.Context, id uuid.UUID) (*custodyDomain.DepositRecord, error) {
	defer r.s.lock()()
	record, ok := r.s.st.deposits[id]
	if !ok {
		return nil, custodyDomain.ErrDepositRecordNotFound
	}
	return record, nil
}

func (r *DepositRecordRepository) List(
	ctx context.Context,
	offset, limit int,
) ([]*custodyDomain.DepositRecord, error) {
	defer r.s.lock()()
	records := make([]*custodyDomain.DepositRecord, 0, len(r.s.st.deposits))
	for _, record := range r.s.st.deposits {
		records = append(records, record)
	}
	sort.Slice(records, func(i, j int) bool { return records[i].ID.String() < records[j].ID.String() })
	return page(records, offset, limit), nil
}

func (r *DepositRecordRepository) Delete(ctx context.Context, id uuid.UUID) error {
	defer r.s.lock()()
	if _, ok := r.s.st.deposits[id]; !ok {
		return custodyDomain.ErrDepositRecordNotFound
	}
	delete(r.s.st.deposits, id)
	return nil
}

// IntentRepository is the in-memory intent repository.
type IntentRepository struct{ s *Store }

func (r *IntentRepository) Create(ctx context.Context, intent *intentDomain.SwapIntent) error {
	defer r.s.lock()()
	r.s.st.intents[intent.ID] = intent
	return nil
}

func (r *IntentRepository) Get(ctx context.Context, id uuid.UUID) (*intentDomain.SwapIntent, error) {
	defer r.s.lock()()
	intent, ok := r.s.st.intents[id]
	if !ok {
		return nil, intentDomain.ErrIntentNotFound
	}
	return intent, nil
}

func (r *IntentRepository) List(ctx context.Context, offset, limit int) ([]*intentDomain.SwapIntent, error) {
	defer r.s.lock()()
	intents := make([]*intentDomain.SwapIntent, 0, len(r.s.st.intents))
	for _, intent := range r.s.st.intents {
		intents = append(intents, intent)
	}
	sort.Slice(intents, func(i, j int) bool { return intents[i].ID.String() < intents[j].ID.String() })
	return page(intents, offset, limit), nil
}

func (r *IntentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	defer r.s.lock()()
	if _, ok := r.s.st.intents[id]; !ok {
		return intentDomain.ErrIntentNotFound
	}
	delete(r.s.st.intents, id)
	return nil
}

// NullifierRepository is the in-memory nullifier registry.
type NullifierRepository struct{ s *Store }

func (r *NullifierRepository) Insert(ctx context.Context, hash ledgerDomain.NullifierHash, spentAt time.Time) error {
	defer r.s.lock()()
	if _, ok := r.s.st.nullifiers[hash]; ok {
		return ledgerDomain.ErrNullifierSpent
	}
	r.s.st.nullifiers[hash] = spentAt
	return nil
}

func (r *NullifierRepository) Exists(ctx context.Context, hash ledgerDomain.NullifierHash) (bool, error) {
	defer r.s.lock()()
	_, ok := r.s.st.nullifiers[hash]
	return ok, nil
}

// DisbursementRepository is the in-memory disbursement repository.
type DisbursementRepository struct{ s *Store }

func (r *DisbursementRepository) Create(ctx context.Context, disbursement *intentDomain.Disbursement) error {
	defer r.s.lock()()
	r.s.st.disbursements = append(r.s.st.disbursements, disbursement)
	return nil
}

func page[T any](items []T, offset, limit int) []T {
	if offset >= len(items) {
		return []T{}
	}
	end := offset + limit
	if end > len(items) {
		end = len(items)
	}
	return items[offset:end]
}
