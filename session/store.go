package session

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// ErrRedisUnavailable is returned when a store round trip fails at the
// transport level.
var ErrRedisUnavailable = errors.New("redis unavailable")

// Persisted key suffixes. Names are preserved from the historical client
// so existing stores remain readable.
const (
	keyOnboarded   = "onboarded"
	keyToken       = "token"
	keyLegacyToken = "userToken"
	keyConnexion   = "connexion"
	keyPremium     = "isPremium"
	keyInstallID   = "installId"
)

// Value encodings preserved from the historical client.
const (
	onboardedDone = "1"
	connexionYes  = "oui"
	premiumTrue   = "true"
	premiumFalse  = "false"
)

const clearScript = `
local n = 0
for i = 1, #KEYS do
  n = n + redis.call("DEL", KEYS[i])
end
return n
`

var clearLua = redis.NewScript(clearScript)

// Store persists the session snapshot in Redis under a configurable key
// prefix. One Store instance is safe for concurrent use.
type Store struct {
	redis  redis.UniversalClient
	prefix string
	logger *zap.Logger
}

// NewStore creates a session [Store] backed by the given Redis client.
// A nil logger disables diagnostics.
func NewStore(redisClient redis.UniversalClient, prefix string, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{
		redis:  redisClient,
		prefix: prefix,
		logger: logger,
	}
}

func (s *Store) key(suffix string) string {
	return s.prefix + ":" + suffix
}

// Load reads every session key in a single MGET and resolves the snapshot.
//
// The token key is canonical: a token found only under the legacy userToken
// key is adopted and migrated forward (best effort — a migration failure is
// logged and retried on the next load, never surfaced). A connexion flag
// that disagrees with the token is resolved in favor of the token and
// reported via [Snapshot.ConnexionDrift].
func (s *Store) Load(ctx context.Context) (Snapshot, error) {
	vals, err := s.redis.MGet(ctx,
		s.key(keyOnboarded),
		s.key(keyToken),
		s.key(keyLegacyToken),
		s.key(keyConnexion),
		s.key(keyPremium),
		s.key(keyInstallID),
	).Result()
	if err != nil {
		return Snapshot{}, fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}

	str := func(i int) string {
		v, _ := vals[i].(string)
		return v
	}

	snap := Snapshot{
		Onboarded: str(0) == onboardedDone,
		Token:     str(1),
		InstallID: str(5),
	}

	if legacy := str(2); snap.Token == "" && legacy != "" {
		snap.Token = legacy
		snap.LegacyToken = true
		s.migrateLegacyToken(ctx, legacy)
	}

	connexion := str(3) == connexionYes
	snap.Connected = snap.Token != ""
	snap.ConnexionDrift = connexion != snap.Connected

	// Stale premium flags must not leak across sessions: without a token
	// the stored value is ignored.
	snap.Premium = snap.Connected && str(4) == premiumTrue

	if snap.InstallID == "" {
		snap.InstallID = s.ensureInstallID(ctx)
	}

	return snap, nil
}

func (s *Store) migrateLegacyToken(ctx context.Context, token string) {
	pipe := s.redis.TxPipeline()
	pipe.Set(ctx, s.key(keyToken), token, 0)
	pipe.Del(ctx, s.key(keyLegacyToken))
	if _, err := pipe.Exec(ctx); err != nil {
		s.logger.Warn("legacy token migration failed", zap.Error(err))
	}
}

func (s *Store) ensureInstallID(ctx context.Context) string {
	id := uuid.NewString()
	set, err := s.redis.SetNX(ctx, s.key(keyInstallID), id, 0).Result()
	if err != nil {
		s.logger.Warn("install id assignment failed", zap.Error(err))
		return ""
	}
	if set {
		return id
	}
	existing, err := s.redis.Get(ctx, s.key(keyInstallID)).Result()
	if err != nil {
		return ""
	}
	return existing
}

// SaveLogin persists a fresh authenticated session in one pipeline: the
// canonical token, the connexion flag, the premium value reported by the
// auth response, and removal of any stale legacy token key.
func (s *Store) SaveLogin(ctx context.Context, token string, premium bool) error {
	pipe := s.redis.TxPipeline()
	pipe.Set(ctx, s.key(keyToken), token, 0)
	pipe.Set(ctx, s.key(keyConnexion), connexionYes, 0)
	pipe.Set(ctx, s.key(keyPremium), encodePremium(premium), 0)
	pipe.Del(ctx, s.key(keyLegacyToken))
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}
	return nil
}

// SetPremium persists the entitlement flag.
func (s *Store) SetPremium(ctx context.Context, premium bool) error {
	if err := s.redis.Set(ctx, s.key(keyPremium), encodePremium(premium), 0).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}
	return nil
}

// SetOnboarded marks the first-launch pass as completed.
func (s *Store) SetOnboarded(ctx context.Context) error {
	if err := s.redis.Set(ctx, s.key(keyOnboarded), onboardedDone, 0).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}
	return nil
}

// Clear atomically deletes every session key. The install ID survives: it
// identifies the installation, not the user. Returns the number of keys
// removed.
func (s *Store) Clear(ctx context.Context) (int64, error) {
	keys := []string{
		s.key(keyOnboarded),
		s.key(keyToken),
		s.key(keyLegacyToken),
		s.key(keyConnexion),
		s.key(keyPremium),
	}
	removed, err := clearLua.Run(ctx, s.redis, keys).Int64()
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}
	return removed, nil
}

func encodePremium(premium bool) string {
	if premium {
		return premiumTrue
	}
	return premiumFalse
}
