package model

import (
	"encoding/binary"
	"math/big"

	"github.com/iotaledger/hive.go/core/kvstore"
	"github.com/iotaledger/hive.go/core/kvstore/mapdb"

	"github.com/groundwire/implicant/term"
)

// kvAdaptor maps a byte-prefixed partition of a hive.go KVStore onto the
// small Get/Set surface this package needs, panicking on the underlying
// store's I/O errors the way a thin KV wrapper typically does.
type kvAdaptor struct {
	kvs    kvstore.KVStore
	prefix []byte
}

func newKVAdaptor(kvs kvstore.KVStore, prefix []byte) *kvAdaptor {
	return &kvAdaptor{kvs: kvs, prefix: prefix}
}

func mustNoErr(err error) {
	if err != nil {
		panic(err)
	}
}

func (a *kvAdaptor) makeKey(k []byte) []byte {
	if len(a.prefix) == 0 {
		return k
	}
	out := make([]byte, 0, len(a.prefix)+len(k))
	out = append(out, a.prefix...)
	out = append(out, k...)
	return out
}

func (a *kvAdaptor) get(key []byte) ([]byte, bool) {
	v, err := a.kvs.Get(a.makeKey(key))
	if err == kvstore.ErrKeyNotFound {
		return nil, false
	}
	mustNoErr(err)
	return v, true
}

func (a *kvAdaptor) set(key, value []byte) {
	mustNoErr(a.kvs.Set(a.makeKey(key), value))
}

// Store is a durable cache of term -> Value assignments sitting in
// front of a Mem evaluator. Repeated Eval calls for the same term
// within one model (or, if backed by badger rather than mapdb, across
// process restarts against the same ground model) are served from the
// cache instead of re-walking the term DAG.
type Store struct {
	mem *Mem
	kv  *kvAdaptor
}

// NewStore creates a cached model backed by kvs (e.g. mapdb.NewMapDB()
// for tests, or badger.New(db) for a durable on-disk cache).
func NewStore(mem *Mem, kvs kvstore.KVStore, prefix []byte) *Store {
	return &Store{mem: mem, kv: newKVAdaptor(kvs, prefix)}
}

// NewInMemoryStore is a convenience constructor for tests and for
// short-lived CLI runs that want the cache's code path exercised
// without standing up an on-disk database.
func NewInMemoryStore(mem *Mem) *Store {
	return NewStore(mem, mapdb.NewMapDB(), nil)
}

var _ Model = (*Store)(nil)

func (s *Store) Eval(t term.Ref) (Value, bool) {
	key := refKey(t)
	if raw, ok := s.kv.get(key); ok {
		return decodeValue(raw)
	}
	v, ok := s.mem.Eval(t)
	if !ok {
		return Value{}, false
	}
	s.kv.set(key, encodeValue(v))
	return v, true
}

func refKey(t term.Ref) []byte {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], uint32(t))
	return b[:]
}

// Value wire format: 1 tag byte + payload. tagInt's payload carries an
// explicit sign byte ahead of the magnitude, since big.Int.Bytes only
// ever returns the absolute value.
const (
	tagBool byte = iota
	tagInt
	tagBv
)

func encodeValue(v Value) []byte {
	switch {
	case v.isBool:
		if v.boolVal {
			return []byte{tagBool, 1}
		}
		return []byte{tagBool, 0}
	case v.intVal != nil:
		sign := byte(0)
		if v.intVal.Sign() < 0 {
			sign = 1
		}
		return append([]byte{tagInt, sign}, v.intVal.Bytes()...)
	case v.bvVal != nil:
		var w [4]byte
		binary.LittleEndian.PutUint32(w[:], v.bvWidth)
		out := append([]byte{tagBv}, w[:]...)
		return append(out, v.bvVal.Bytes()...)
	default:
		return []byte{tagBool, 0}
	}
}

func decodeValue(raw []byte) (Value, bool) {
	if len(raw) == 0 {
		return Value{}, false
	}
	switch raw[0] {
	case tagBool:
		return BoolValue(len(raw) > 1 && raw[1] != 0), true
	case tagInt:
		if len(raw) < 2 {
			return Value{}, false
		}
		iv := new(big.Int).SetBytes(raw[2:])
		if raw[1] != 0 {
			iv.Neg(iv)
		}
		return IntValue(iv), true
	case tagBv:
		if len(raw) < 5 {
			return Value{}, false
		}
		w := binary.LittleEndian.Uint32(raw[1:5])
		return BvValue(w, new(big.Int).SetBytes(raw[5:])), true
	default:
		return Value{}, false
	}
}
