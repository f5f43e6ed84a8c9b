package ipld

import (
	"sync"

	block "github.com/ipfs/go-block-format"
	cid "github.com/ipfs/go-cid"
	ipldcbor "github.com/ipfs/go-ipld-cbor"
	format "github.com/ipfs/go-ipld-format"
)

// ErrNotFound is returned by the block stores in this package for absent blocks.
var ErrNotFound = format.ErrNotFound

// BlockStoreInMemory is a simple in-memory block store.
// It is safe for concurrent use.
type BlockStoreInMemory struct {
	lk   sync.RWMutex
	data map[cid.Cid]block.Block
}

var _ ipldcbor.IpldBlockstore = (*BlockStoreInMemory)(nil)

func NewBlockStoreInMemory() *BlockStoreInMemory {
	return &BlockStoreInMemory{data: make(map[cid.Cid]block.Block)}
}

func (mb *BlockStoreInMemory) Get(c cid.Cid) (block.Block, error) {
	mb.lk.RLock()
	defer mb.lk.RUnlock()
	d, ok := mb.data[c]
	if ok {
		return d, nil
	}
	return nil, ErrNotFound
}

func (mb *BlockStoreInMemory) Put(b block.Block) error {
	mb.lk.Lock()
	defer mb.lk.Unlock()
	mb.data[b.Cid()] = b
	return nil
}

// Len returns the number of distinct blocks held.
func (mb *BlockStoreInMemory) Len() int {
	mb.lk.RLock()
	defer mb.lk.RUnlock()
	return len(mb.data)
}

// ForEach visits every block in unspecified order.
func (mb *BlockStoreInMemory) ForEach(f func(b block.Block) error) error {
	mb.lk.RLock()
	defer mb.lk.RUnlock()
	for _, b := range mb.data { //nolint:nomaprange
		if err := f(b); err != nil {
			return err
		}
	}
	return nil
}

// MetricsBlockStore wraps a block store and counts the operations passing through it.
type MetricsBlockStore struct {
	bs         ipldcbor.IpldBlockstore
	Writes     uint64
	WriteBytes uint64
	Reads      uint64
	ReadBytes  uint64
}

var _ ipldcbor.IpldBlockstore = (*MetricsBlockStore)(nil)

func NewMetricsBlockStore(underlying ipldcbor.IpldBlockstore) *MetricsBlockStore {
	return &MetricsBlockStore{bs: underlying}
}

func (ms *MetricsBlockStore) Get(c cid.Cid) (block.Block, error) {
	ms.Reads++
	blk, err := ms.bs.Get(c)
	if err != nil {
		return blk, err
	}
	ms.ReadBytes += uint64(len(blk.RawData()))
	return blk, nil
}

func (ms *MetricsBlockStore) Put(b block.Block) error {
	ms.Writes++
	ms.WriteBytes += uint64(len(b.RawData()))
	return ms.bs.Put(b)
}

func (ms *MetricsBlockStore) ReadCount() uint64 {
	return ms.Reads
}

func (ms *MetricsBlockStore) WriteCount() uint64 {
	return ms.Writes
}

func (ms *MetricsBlockStore) ReadSize() uint64 {
	return ms.ReadBytes
}

func (ms *MetricsBlockStore) WriteSize() uint64 {
	return ms.WriteBytes
}
