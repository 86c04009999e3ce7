// Package statestore persists engine state snapshots: msgpack-encoded,
// lz4-compressed records in the key-value substrate, with an LRU cache of
// recently decoded snapshots in front.
package statestore

import (
	"context"
	"encoding/binary"
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/pierrec/lz4"
	"github.com/ugorji/go/codec"

	"github.com/treelot/treelotd/internal/core/asset"
	"github.com/treelot/treelotd/internal/core/market"
	"github.com/treelot/treelotd/internal/core/registry"
	"github.com/treelot/treelotd/internal/storage/kvstore"
)

const (
	snapshotPrefix = "snapshot/"
	latestKey      = "snapshot/latest"

	// defaultCacheSize is the number of decoded snapshots kept in memory.
	defaultCacheSize = 64

	// minCompressionSize skips compression for records too small to gain.
	minCompressionSize = 128
)

// Snapshot is the persisted form of one committed state.
type Snapshot struct {
	Seq      uint64
	Contract *market.Contract
	Offers   []registry.Offer
	Lots     []registry.Lot
	Classes  []asset.ClassState
	Holdings []asset.HoldingState
}

// FromMarketState captures a snapshot of st at commit sequence seq.
func FromMarketState(seq uint64, st *market.State) *Snapshot {
	classes, holdings := st.Book.Export()
	return &Snapshot{
		Seq:      seq,
		Contract: st.Contract,
		Offers:   st.Offers.Entries(),
		Lots:     st.Lots.Entries(),
		Classes:  classes,
		Holdings: holdings,
	}
}

// MarketState rebuilds the live state from the snapshot.
func (s *Snapshot) MarketState() *market.State {
	st := &market.State{
		Offers: registry.OffersFromEntries(s.Offers),
		Lots:   registry.LotsFromEntries(s.Lots),
		Book:   asset.FromState(s.Classes, s.Holdings),
	}
	if s.Contract != nil {
		c := *s.Contract
		st.Contract = &c
	}
	return st
}

// Store reads and writes snapshots.
type Store struct {
	db    kvstore.DB
	cache *lru.Cache[uint64, *Snapshot]
	mh    codec.MsgpackHandle
}

// New creates a store over db. cacheSize <= 0 selects the default.
func New(db kvstore.DB, cacheSize int) (*Store, error) {
	if cacheSize <= 0 {
		cacheSize = defaultCacheSize
	}
	cache, err := lru.New[uint64, *Snapshot](cacheSize)
	if err != nil {
		return nil, err
	}
	return &Store{db: db, cache: cache}, nil
}

// Save persists st at commit sequence seq and advances the latest marker.
func (s *Store) Save(ctx context.Context, seq uint64, st *market.State) error {
	snap := FromMarketState(seq, st)

	var raw []byte
	if err := codec.NewEncoderBytes(&raw, &s.mh).Encode(snap); err != nil {
		return fmt.Errorf("encode snapshot %d: %w", seq, err)
	}
	stored, err := compress(raw)
	if err != nil {
		return fmt.Errorf("compress snapshot %d: %w", seq, err)
	}

	if err := s.db.Put(ctx, snapshotKey(seq), stored); err != nil {
		return err
	}
	var latest [8]byte
	binary.BigEndian.PutUint64(latest[:], seq)
	if err := s.db.Put(ctx, []byte(latestKey), latest[:]); err != nil {
		return err
	}

	s.cache.Add(seq, snap)
	return nil
}

// Load reads the snapshot at commit sequence seq.
func (s *Store) Load(ctx context.Context, seq uint64) (*market.State, error) {
	if snap, ok := s.cache.Get(seq); ok {
		return snap.MarketState(), nil
	}

	stored, err := s.db.Get(ctx, snapshotKey(seq))
	if err != nil {
		return nil, err
	}
	raw, err := decompress(stored)
	if err != nil {
		return nil, fmt.Errorf("decompress snapshot %d: %w", seq, err)
	}

	var snap Snapshot
	if err := codec.NewDecoderBytes(raw, &s.mh).Decode(&snap); err != nil {
		return nil, fmt.Errorf("decode snapshot %d: %w", seq, err)
	}

	s.cache.Add(seq, &snap)
	return snap.MarketState(), nil
}

// LoadLatest reads the most recently saved snapshot. Returns
// kvstore.ErrKeyNotFound when nothing has been saved yet.
func (s *Store) LoadLatest(ctx context.Context) (uint64, *market.State, error) {
	latest, err := s.db.Get(ctx, []byte(latestKey))
	if err != nil {
		return 0, nil, err
	}
	if len(latest) != 8 {
		return 0, nil, fmt.Errorf("corrupt latest marker, length %d", len(latest))
	}
	seq := binary.BigEndian.Uint64(latest)
	st, err := s.Load(ctx, seq)
	if err != nil {
		return 0, nil, err
	}
	return seq, st, nil
}

func snapshotKey(seq uint64) []byte {
	key := make([]byte, len(snapshotPrefix)+8)
	copy(key, snapshotPrefix)
	binary.BigEndian.PutUint64(key[len(snapshotPrefix):], seq)
	return key
}

// Stored layout: 4-byte big-endian uncompressed length followed by the
// lz4 block. A zero length marks an uncompressed record.
func compress(raw []byte) ([]byte, error) {
	if len(raw) < minCompressionSize {
		out := make([]byte, 4+len(raw))
		copy(out[4:], raw)
		return out, nil
	}

	block := make([]byte, lz4.CompressBlockBound(len(raw)))
	n, err := lz4.CompressBlock(raw, block, nil)
	if err != nil {
		return nil, err
	}
	if n == 0 || n >= len(raw) {
		// Incompressible; store as-is.
		out := make([]byte, 4+len(raw))
		copy(out[4:], raw)
		return out, nil
	}

	out := make([]byte, 4+n)
	binary.BigEndian.PutUint32(out, uint32(len(raw)))
	copy(out[4:], block[:n])
	return out, nil
}

func decompress(stored []byte) ([]byte, error) {
	if len(stored) < 4 {
		return nil, fmt.Errorf("record too short: %d bytes", len(stored))
	}
	size := binary.BigEndian.Uint32(stored)
	if size == 0 {
		return stored[4:], nil
	}

	raw := make([]byte, size)
	n, err := lz4.UncompressBlock(stored[4:], raw)
	if err != nil {
		return nil, err
	}
	return raw[:n], nil
}
