package reproject

import (
	"container/list"
	"sync"

	"go.uber.org/zap"
)

type sridPair struct {
	from, to uint32
}

type cacheEntry struct {
	key sridPair
	t   Transformer
}

// LRUTransformerFactory wraps a TransformerFactory with a bounded
// least-recently-used cache, keyed on the (fromSRID, toSRID) pair.
// Construction of a Transformer can be arbitrarily expensive (loading a
// grid shift file, calling out to a PROJ binding); this amortizes that
// cost across repeated calls with the same pair, the way a production
// host is expected to wrap BuiltinFactory or its own factory.
type LRUTransformerFactory struct {
	mu       sync.Mutex
	delegate TransformerFactory
	size     int
	log      *zap.Logger
	ll       *list.List
	items    map[sridPair]*list.Element
}

// NewLRUTransformerFactory returns a factory caching up to size Transformer
// instances from delegate. A nil log is replaced with a no-op logger.
func NewLRUTransformerFactory(delegate TransformerFactory, size int, log *zap.Logger) *LRUTransformerFactory {
	if log == nil {
		log = zap.NewNop()
	}
	return &LRUTransformerFactory{
		delegate: delegate,
		size:     size,
		log:      log,
		ll:       list.New(),
		items:    make(map[sridPair]*list.Element),
	}
}

func (f *LRUTransformerFactory) Transformer(fromSRID, toSRID uint32) (Transformer, error) {
	key := sridPair{from: fromSRID, to: toSRID}

	f.mu.Lock()
	defer f.mu.Unlock()

	if elem, ok := f.items[key]; ok {
		f.ll.MoveToFront(elem)
		f.log.Debug("transformer cache hit", zap.Uint32("from_srid", fromSRID), zap.Uint32("to_srid", toSRID))
		return elem.Value.(*cacheEntry).t, nil
	}

	t, err := f.delegate.Transformer(fromSRID, toSRID)
	if err != nil {
		f.log.Warn("transformer construction failed", zap.Uint32("from_srid", fromSRID), zap.Uint32("to_srid", toSRID), zap.Error(err))
		return nil, err
	}
	f.log.Debug("transformer cache miss", zap.Uint32("from_srid", fromSRID), zap.Uint32("to_srid", toSRID))

	elem := f.ll.PushFront(&cacheEntry{key: key, t: t})
	f.items[key] = elem

	if f.size > 0 && f.ll.Len() > f.size {
		oldest := f.ll.Back()
		if oldest != nil {
			f.ll.Remove(oldest)
			delete(f.items, oldest.Value.(*cacheEntry).key)
		}
	}

	return t, nil
}
