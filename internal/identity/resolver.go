// Package identity resolves what to show for an address: its display name and avatar.
package identity

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/patrickmn/go-cache"
	"go.uber.org/zap"

	"github.com/jask/jaskwallet/internal/database/repository"
	"github.com/jask/jaskwallet/internal/store"
)

// NameKind says where a display name came from.
type NameKind string

const (
	KindAddress NameKind = "address"
	KindENS     NameKind = "ens"
	KindUnitag  NameKind = "unitag"
)

// DisplayName is the resolved label for an address.
type DisplayName struct {
	Kind  NameKind
	Value string
}

// Avatar is the resolved picture for an address; URI may be empty.
type Avatar struct {
	URI string
}

// NameResolver resolves display names. ok is false when nothing should be shown.
type NameResolver interface {
	DisplayName(ctx context.Context, addr common.Address) (DisplayName, bool)
}

// AvatarResolver resolves avatars. ok is false when the address has none.
type AvatarResolver interface {
	Avatar(ctx context.Context, addr common.Address) (Avatar, bool)
}

// RecordSource looks up name records by checksummed address.
type RecordSource interface {
	Get(ctx context.Context, address string) (*repository.NameRecord, error)
}

// Resolver serves names and avatars from a RecordSource with a TTL cache in front.
type Resolver struct {
	source RecordSource
	cache  *cache.Cache
	log    *zap.Logger
	chars  int
}

func NewResolver(source RecordSource, ttl time.Duration, log *zap.Logger) *Resolver {
	if log == nil {
		log = zap.NewNop()
	}
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return &Resolver{
		source: source,
		cache:  cache.New(ttl, 2*ttl),
		log:    log.Named("identity"),
		chars:  4,
	}
}

type resolution struct {
	record *repository.NameRecord
}

func (r *Resolver) lookup(ctx context.Context, addr common.Address) *repository.NameRecord {
	key := addr.Hex()
	if v, ok := r.cache.Get(key); ok {
		return v.(resolution).record
	}
	rec, err := r.source.Get(ctx, key)
	if err != nil {
		// failed lookups are not cached so the next render retries
		r.log.Warn("name lookup failed", zap.String("address", key), zap.Error(err))
		return nil
	}
	r.cache.SetDefault(key, resolution{record: rec})
	return rec
}

// DisplayName prefers a unitag, then an ENS name, then the shortened address.
// The zero address has no display name.
func (r *Resolver) DisplayName(ctx context.Context, addr common.Address) (DisplayName, bool) {
	if addr == (common.Address{}) {
		return DisplayName{}, false
	}
	if rec := r.lookup(ctx, addr); rec != nil && strings.TrimSpace(rec.Value) != "" {
		switch NameKind(strings.ToLower(rec.Kind)) {
		case KindUnitag:
			return DisplayName{Kind: KindUnitag, Value: rec.Value}, true
		case KindENS:
			return DisplayName{Kind: KindENS, Value: rec.Value}, true
		}
	}
	return DisplayName{Kind: KindAddress, Value: ShortenAddress(addr, r.chars)}, true
}

func (r *Resolver) Avatar(ctx context.Context, addr common.Address) (Avatar, bool) {
	if addr == (common.Address{}) {
		return Avatar{}, false
	}
	rec := r.lookup(ctx, addr)
	if rec == nil || rec.AvatarURI == nil || *rec.AvatarURI == "" {
		return Avatar{}, false
	}
	return Avatar{URI: *rec.AvatarURI}, true
}

// Invalidate drops the cached record for addr.
func (r *Resolver) Invalidate(addr common.Address) {
	r.cache.Delete(addr.Hex())
}

// ActiveWatcher returns a store subscriber that invalidates an account's cached
// record when it becomes active, so the header shows names imported since the
// last lookup. initial is the active address at subscription time.
func (r *Resolver) ActiveWatcher(initial *common.Address) func(store.State) {
	var (
		mu   sync.Mutex
		last common.Address
	)
	if initial != nil {
		last = *initial
	}
	return func(st store.State) {
		if st.ActiveAddress == nil {
			return
		}
		addr := *st.ActiveAddress
		mu.Lock()
		changed := addr != last
		last = addr
		mu.Unlock()
		if changed {
			r.log.Debug("active account changed", zap.String("address", addr.Hex()))
			r.Invalidate(addr)
		}
	}
}
