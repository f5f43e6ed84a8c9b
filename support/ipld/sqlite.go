package ipld

import (
	"database/sql"
	"errors"
	"os"
	"path/filepath"

	block "github.com/ipfs/go-block-format"
	cid "github.com/ipfs/go-cid"
	ipldcbor "github.com/ipfs/go-ipld-cbor"
	"golang.org/x/xerrors"
	_ "modernc.org/sqlite"
)

// SQLiteBlockStore persists blocks in a single SQLite table keyed by CID.
// A second table holds named head pointers so a state root survives process restarts.
type SQLiteBlockStore struct {
	db *sql.DB
}

var _ ipldcbor.IpldBlockstore = (*SQLiteBlockStore)(nil)

// OpenSQLiteBlockStore creates or opens a block store at path.
// The special path ":memory:" opens a private in-memory database.
func OpenSQLiteBlockStore(path string) (*SQLiteBlockStore, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, err
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, xerrors.Errorf("failed to open database: %w", err)
	}
	// One connection keeps ":memory:" databases coherent and avoids SQLITE_BUSY on writes.
	db.SetMaxOpenConns(1)

	store := &SQLiteBlockStore{db: db}
	if err := store.migrate(); err != nil {
		_ = db.Close()
		return nil, xerrors.Errorf("failed to apply schema: %w", err)
	}
	return store, nil
}

func (s *SQLiteBlockStore) migrate() error {
	_, err := s.db.Exec(`
CREATE TABLE IF NOT EXISTS blocks (
	cid BLOB PRIMARY KEY,
	data BLOB NOT NULL
);

CREATE TABLE IF NOT EXISTS heads (
	name TEXT PRIMARY KEY,
	cid BLOB NOT NULL
);
`)
	return err
}

func (s *SQLiteBlockStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteBlockStore) Get(c cid.Cid) (block.Block, error) {
	var data []byte
	err := s.db.QueryRow(`SELECT data FROM blocks WHERE cid = ?`, c.Bytes()).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	} else if err != nil {
		return nil, xerrors.Errorf("failed to read block %s: %w", c, err)
	}
	return block.NewBlockWithCid(data, c)
}

func (s *SQLiteBlockStore) Put(b block.Block) error {
	_, err := s.db.Exec(`INSERT OR IGNORE INTO blocks (cid, data) VALUES (?, ?)`, b.Cid().Bytes(), b.RawData())
	if err != nil {
		return xerrors.Errorf("failed to write block %s: %w", b.Cid(), err)
	}
	return nil
}

// SetHead records root under name, replacing any previous value.
func (s *SQLiteBlockStore) SetHead(name string, root cid.Cid) error {
	_, err := s.db.Exec(`INSERT INTO heads (name, cid) VALUES (?, ?)
ON CONFLICT(name) DO UPDATE SET cid = excluded.cid`, name, root.Bytes())
	return err
}

// Head returns the root recorded under name, and whether one was found.
func (s *SQLiteBlockStore) Head(name string) (cid.Cid, bool, error) {
	var raw []byte
	err := s.db.QueryRow(`SELECT cid FROM heads WHERE name = ?`, name).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return cid.Undef, false, nil
	} else if err != nil {
		return cid.Undef, false, err
	}
	c, err := cid.Cast(raw)
	if err != nil {
		return cid.Undef, false, xerrors.Errorf("corrupt head %s: %w", name, err)
	}
	return c, true, nil
}
