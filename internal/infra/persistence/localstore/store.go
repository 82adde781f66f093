// Package localstore implements the persistence layer on an embedded BadgerDB key-value store.
// Records are stored as JSON under prefixed keys; secondary indexes are separate keys holding ids.
package localstore

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"educycle/config"
	domainerrors "educycle/internal/domain/errors"

	"github.com/cenkalti/backoff/v5"
	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

const (
	defaultPath    = "./data/educycle"
	gcInterval     = 10 * time.Minute
	gcDiscardRatio = 0.5
)

// Write conflicts on a hot key (many users saving one product) are retried with jittered
// exponential backoff so contenders spread out instead of colliding again in lockstep.
const (
	maxConflictRetries     = 64
	conflictInitialBackoff = time.Millisecond
	conflictMaxBackoff     = 50 * time.Millisecond
	conflictMaxElapsed     = 5 * time.Second
)

// Key prefixes for BadgerDB storage
const (
	userKeyPrefix       = "user:"
	userEmailKeyPrefix  = "user_email:"
	productKeyPrefix    = "product:"
	orderKeyPrefix      = "order:"
	orderIDKeyPrefix    = "order_id:"
	messageKeyPrefix    = "msg:"
	conversationPrefix  = "conv:"
	deviceKeyPrefix     = "device:"
	deviceUserKeyPrefix = "device_user:"
)

// Params defines the required parameters
type Params struct {
	fx.In
	fx.Lifecycle

	Config *config.Config
	Logger *slog.Logger
}

// New opens the BadgerDB instance described by the localStore config.
func New(params Params) (*badger.DB, error) {
	cfg := params.Config.LocalStore
	if cfg == nil {
		cfg = &config.LocalStoreConfig{}
	}

	db, err := Open(cfg, params.Logger)
	if err != nil {
		return nil, err
	}

	gcCtx, cancelGC := context.WithCancel(context.Background())

	params.Append(fx.Hook{
		OnStart: func(context.Context) error {
			if !cfg.InMemory {
				go runValueLogGC(gcCtx, db, params.Logger)
			}

			return nil
		},
		OnStop: func(context.Context) error {
			cancelGC()

			return errors.Wrap(db.Close(), "failed to close local store")
		},
	})

	return db, nil
}

// Open opens a BadgerDB with the given settings.
func Open(cfg *config.LocalStoreConfig, logger *slog.Logger) (*badger.DB, error) {
	path := strings.TrimSpace(cfg.Path)
	if path == "" {
		path = defaultPath
	}

	opts := badger.DefaultOptions(path).
		WithSyncWrites(cfg.SyncWrites).
		WithLogger(newBadgerSlogLogger(logger))
	if cfg.InMemory {
		opts = opts.WithDir("").WithValueDir("").WithInMemory(true)
	}

	db, err := badger.Open(opts)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open local store at %s", path)
	}

	return db, nil
}

func runValueLogGC(ctx context.Context, db *badger.DB, logger *slog.Logger) {
	ticker := time.NewTicker(gcInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			// RunValueLogGC rewrites at most one file per call; loop until nothing is left.
			for db.RunValueLogGC(gcDiscardRatio) == nil {
			}
			if logger != nil {
				logger.Debug("Local store value log GC finished")
			}
		}
	}
}

// kv runs reads and writes either inside a caller-owned transaction or in its own one.
type kv struct {
	db  *badger.DB
	txn *badger.Txn
}

func (s kv) view(fn func(txn *badger.Txn) error) error {
	if s.txn != nil {
		return fn(s.txn)
	}

	return s.db.View(fn)
}

func (s kv) update(ctx context.Context, fn func(txn *badger.Txn) error) error {
	if s.txn != nil {
		return fn(s.txn)
	}

	return retryOnConflict(ctx, func() error {
		return s.db.Update(fn)
	})
}

// retryOnConflict re-runs attempt while it fails with badger.ErrConflict.
// Any other error ends the loop at once. Running out of retries yields ErrTransactionConflict.
func retryOnConflict(ctx context.Context, attempt func() error) error {
	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = conflictInitialBackoff
	policy.MaxInterval = conflictMaxBackoff

	_, err := backoff.Retry(ctx, func() (struct{}, error) {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return struct{}{}, backoff.Permanent(errors.WithStack(ctxErr))
		}

		err := attempt()
		if err != nil && !errors.Is(err, badger.ErrConflict) {
			return struct{}{}, backoff.Permanent(err)
		}

		return struct{}{}, err
	},
		backoff.WithBackOff(policy),
		backoff.WithMaxTries(maxConflictRetries),
		backoff.WithMaxElapsedTime(conflictMaxElapsed),
	)
	if errors.Is(err, badger.ErrConflict) {
		return domainerrors.ErrTransactionConflict.WrapMessage(err.Error())
	}

	return err
}

func getJSON(txn *badger.Txn, key string, v any) error {
	item, err := txn.Get([]byte(key))
	if err != nil {
		return err
	}

	return item.Value(func(val []byte) error {
		return json.Unmarshal(val, v)
	})
}

func setJSON(txn *badger.Txn, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return errors.Wrapf(err, "marshal %s", key)
	}

	return txn.Set([]byte(key), data)
}

func getString(txn *badger.Txn, key string) (string, error) {
	item, err := txn.Get([]byte(key))
	if err != nil {
		return "", err
	}

	val, err := item.ValueCopy(nil)
	if err != nil {
		return "", err
	}

	return string(val), nil
}

func deleteKey(txn *badger.Txn, key string) error {
	if err := txn.Delete([]byte(key)); err != nil && !errors.Is(err, badger.ErrKeyNotFound) {
		return err
	}

	return nil
}

// scanPrefix visits every key under prefix in key order.
func scanPrefix(txn *badger.Txn, prefix string, fn func(key string, val []byte) error) error {
	opts := badger.DefaultIteratorOptions
	opts.Prefix = []byte(prefix)
	it := txn.NewIterator(opts)
	defer it.Close()

	for it.Seek(opts.Prefix); it.ValidForPrefix(opts.Prefix); it.Next() {
		item := it.Item()
		key := string(item.Key())
		if err := item.Value(func(val []byte) error {
			return fn(key, val)
		}); err != nil {
			return err
		}
	}

	return nil
}

// scanJSON decodes every value under prefix into a new T.
func scanJSON[T any](txn *badger.Txn, prefix string) ([]*T, error) {
	var out []*T
	err := scanPrefix(txn, prefix, func(_ string, val []byte) error {
		v := new(T)
		if err := json.Unmarshal(val, v); err != nil {
			return err
		}
		out = append(out, v)

		return nil
	})

	return out, err
}
