package store

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"tasnim.dev/cloud-console/internal/model"
)

// Options tune the behavior shared by the writable backends.
type Options struct {
	// Latency is waited before every mutation to simulate a network round trip.
	Latency time.Duration
	Logger  *slog.Logger
	Now     func() time.Time
}

type Option func(*Options)

func WithLatency(d time.Duration) Option {
	return func(o *Options) { o.Latency = d }
}

func WithLogger(l *slog.Logger) Option {
	return func(o *Options) { o.Logger = l }
}

func WithClock(now func() time.Time) Option {
	return func(o *Options) { o.Now = now }
}

func BuildOptions(opts []Option) Options {
	o := Options{Logger: slog.Default(), Now: time.Now}
	for _, fn := range opts {
		fn(&o)
	}
	if o.Logger == nil {
		o.Logger = slog.Default()
	}
	return o
}

// Wait blocks for the simulated latency or until ctx is done.
func (o Options) Wait(ctx context.Context) error {
	if o.Latency <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(o.Latency)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

var _ Repository = (*MemoryStore)(nil)

// MemoryStore keeps every record in process memory for the session.
type MemoryStore struct {
	opts Options

	vpcs      *memCollection[model.VPC]
	subnets   *memCollection[model.Subnet]
	sgs       *memCollection[model.SecurityGroup]
	staticIPs *memCollection[model.StaticIP]
	volumes   *memCollection[model.Volume]
	snapshots *memCollection[model.Snapshot]
	backups   *memCollection[model.Backup]

	mu          sync.RWMutex
	attachments map[string]model.VMAttachment
	connections map[string][]string
}

// NewMemoryStore returns an empty store.
func NewMemoryStore(opts ...Option) *MemoryStore {
	o := BuildOptions(opts)
	s := &MemoryStore{
		opts:        o,
		vpcs:        newMemCollection(model.KindVPC, StampVPC, o),
		subnets:     newMemCollection(model.KindSubnet, StampSubnet, o),
		sgs:         newMemCollection(model.KindSecurityGroup, StampSecurityGroup, o),
		staticIPs:   newMemCollection(model.KindStaticIP, StampStaticIP, o),
		volumes:     newMemCollection(model.KindVolume, StampVolume, o),
		snapshots:   newMemCollection(model.KindSnapshot, StampSnapshot, o),
		backups:     newMemCollection(model.KindBackup, StampBackup, o),
		attachments: make(map[string]model.VMAttachment),
		connections: make(map[string][]string),
	}
	// Deleting a subnet drops its connections on both sides.
	s.subnets.onDelete = s.dropConnections
	return s
}

// NewSeededStore returns a store loaded with the embedded mock data.
func NewSeededStore(opts ...Option) (*MemoryStore, error) {
	fx, err := LoadFixtures()
	if err != nil {
		return nil, err
	}
	s := NewMemoryStore(opts...)
	s.Load(fx)
	return s, nil
}

// Load replaces the store contents with the fixture set without latency.
func (s *MemoryStore) Load(fx *Fixtures) {
	s.vpcs.reset(fx.VPCs)
	s.subnets.reset(fx.Subnets)
	s.sgs.reset(fx.SecurityGroups)
	s.staticIPs.reset(fx.StaticIPs)
	s.volumes.reset(fx.Volumes)
	s.snapshots.reset(fx.Snapshots)
	s.backups.reset(fx.Backups)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.attachments = make(map[string]model.VMAttachment)
	for _, a := range fx.VMAttachments {
		s.attachments[a.SubnetID] = a.VM
	}
	s.connections = make(map[string][]string)
	for _, c := range fx.Connections {
		for _, other := range c.ConnectedSubnets {
			s.link(c.SubnetID, other)
		}
	}
}

func (s *MemoryStore) VPCs() Collection[model.VPC]                     { return s.vpcs }
func (s *MemoryStore) Subnets() Collection[model.Subnet]               { return s.subnets }
func (s *MemoryStore) SecurityGroups() Collection[model.SecurityGroup] { return s.sgs }
func (s *MemoryStore) StaticIPs() Collection[model.StaticIP]           { return s.staticIPs }
func (s *MemoryStore) Volumes() Collection[model.Volume]               { return s.volumes }
func (s *MemoryStore) Snapshots() Collection[model.Snapshot]           { return s.snapshots }
func (s *MemoryStore) Backups() Collection[model.Backup]               { return s.backups }

func (s *MemoryStore) Close() error { return nil }

// AttachVM records that a VM uses the subnet. Used by fixtures and tests.
func (s *MemoryStore) AttachVM(subnetID string, vm model.VMAttachment) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.attachments[subnetID] = vm
}

func (s *MemoryStore) VMAttachment(ctx context.Context, subnetID string) (*model.VMAttachment, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	vm, ok := s.attachments[subnetID]
	if !ok {
		return nil, nil
	}
	return &vm, nil
}

func (s *MemoryStore) ConnectedSubnets(ctx context.Context, subnetID string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.connections[subnetID]), nil
}

func (s *MemoryStore) ConnectSubnets(ctx context.Context, a, b string) error {
	if a == b {
		return fmt.Errorf("cannot connect subnet %s to itself", a)
	}
	for _, id := range []string{a, b} {
		if _, err := s.subnets.Get(ctx, id); err != nil {
			return err
		}
	}
	if err := s.opts.Wait(ctx); err != nil {
		return err
	}
	s.mu.Lock()
	s.link(a, b)
	s.mu.Unlock()
	s.opts.Logger.Info("subnets connected", "subnet", a, "peer", b)
	return nil
}

func (s *MemoryStore) DisconnectSubnets(ctx context.Context, a, b string) error {
	if err := s.opts.Wait(ctx); err != nil {
		return err
	}
	s.mu.Lock()
	s.unlink(a, b)
	s.mu.Unlock()
	s.opts.Logger.Info("subnets disconnected", "subnet", a, "peer", b)
	return nil
}

// link and unlink keep the adjacency list symmetric. Callers hold mu.
func (s *MemoryStore) link(a, b string) {
	if !slices.Contains(s.connections[a], b) {
		s.connections[a] = append(s.connections[a], b)
	}
	if !slices.Contains(s.connections[b], a) {
		s.connections[b] = append(s.connections[b], a)
	}
}

func (s *MemoryStore) unlink(a, b string) {
	s.connections[a] = slices.DeleteFunc(s.connections[a], func(id string) bool { return id == b })
	s.connections[b] = slices.DeleteFunc(s.connections[b], func(id string) bool { return id == a })
	if len(s.connections[a]) == 0 {
		delete(s.connections, a)
	}
	if len(s.connections[b]) == 0 {
		delete(s.connections, b)
	}
}

func (s *MemoryStore) dropConnections(subnetID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, peer := range slices.Clone(s.connections[subnetID]) {
		s.unlink(subnetID, peer)
	}
	delete(s.attachments, subnetID)
}

// memCollection is an ordered, mutex-guarded slice of records.
type memCollection[T model.Resource] struct {
	kind     model.Kind
	stamp    Stamper[T]
	opts     Options
	onDelete func(id string)

	mu    sync.RWMutex
	items []T
}

func newMemCollection[T model.Resource](kind model.Kind, stamp func(T, time.Time) T, opts Options) *memCollection[T] {
	return &memCollection[T]{kind: kind, stamp: stamp, opts: opts}
}

func (c *memCollection[T]) reset(items []T) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = slices.Clone(items)
}

func (c *memCollection[T]) List(ctx context.Context) ([]T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	return slices.Clone(c.items), nil
}

func (c *memCollection[T]) Get(ctx context.Context, id string) (T, error) {
	var zero T
	if err := ctx.Err(); err != nil {
		return zero, err
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	if i := c.index(id); i >= 0 {
		return c.items[i], nil
	}
	return zero, &NotFoundError{Kind: c.kind, ID: id}
}

func (c *memCollection[T]) Create(ctx context.Context, item T) (T, error) {
	var zero T
	if err := c.opts.Wait(ctx); err != nil {
		return zero, err
	}
	item = c.stamp(item, c.opts.Now())

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.index(item.ResourceID()) >= 0 {
		return zero, fmt.Errorf("%s %s: %w", c.kind, item.ResourceID(), ErrExists)
	}
	c.items = append(c.items, item)
	c.opts.Logger.Info("resource created", "kind", c.kind, "id", item.ResourceID(), "name", item.ResourceName())
	return item, nil
}

func (c *memCollection[T]) Update(ctx context.Context, item T) (T, error) {
	var zero T
	if err := c.opts.Wait(ctx); err != nil {
		return zero, err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	i := c.index(item.ResourceID())
	if i < 0 {
		return zero, &NotFoundError{Kind: c.kind, ID: item.ResourceID()}
	}
	c.items[i] = item
	c.opts.Logger.Info("resource updated", "kind", c.kind, "id", item.ResourceID(), "name", item.ResourceName())
	return item, nil
}

func (c *memCollection[T]) Delete(ctx context.Context, id string) error {
	if err := c.opts.Wait(ctx); err != nil {
		return err
	}
	c.mu.Lock()
	i := c.index(id)
	if i < 0 {
		c.mu.Unlock()
		return &NotFoundError{Kind: c.kind, ID: id}
	}
	name := c.items[i].ResourceName()
	c.items = slices.Delete(c.items, i, i+1)
	c.mu.Unlock()

	if c.onDelete != nil {
		c.onDelete(id)
	}
	c.opts.Logger.Info("resource deleted", "kind", c.kind, "id", id, "name", name)
	return nil
}

func (c *memCollection[T]) index(id string) int {
	return slices.IndexFunc(c.items, func(item T) bool { return item.ResourceID() == id })
}
