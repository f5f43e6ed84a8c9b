package cli

import (
	"context"
	"io"

	"github.com/sirupsen/logrus"
	"golang.org/x/xerrors"

	"github.com/tokenvault/vault-actors/actors/util/adt"
	"github.com/tokenvault/vault-actors/support/ipld"
	"github.com/tokenvault/vault-actors/support/vm"
)

// A machine opened for a command, with the store it persists to.
type machine struct {
	vm *vm.VM
	bs *ipld.SQLiteBlockStore // nil for in-memory machines
}

func newLogger(opts *RootOptions, w io.Writer) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(w)
	logger.SetLevel(logrus.WarnLevel)
	if opts.Verbose {
		logger.SetLevel(logrus.DebugLevel)
	}
	if opts.Format == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	}
	return logger
}

// Opens the machine at the committed head of the configured store, or a fresh genesis
// machine if there is no store or it holds no state yet.
func openMachine(ctx context.Context, opts *RootOptions, log *logrus.Logger) (*machine, error) {
	if opts.DB == "" {
		v, err := vm.NewGenesisVM(ctx, vm.BuiltinActorImpls(), ipld.NewADTStore(ctx))
		if err != nil {
			return nil, err
		}
		v.SetLogger(log)
		return &machine{vm: v}, nil
	}

	bs, err := ipld.OpenSQLiteBlockStore(opts.DB)
	if err != nil {
		return nil, err
	}
	store := adt.WrapBlockStore(ctx, bs)
	head, found, err := bs.Head(StateHead)
	if err != nil {
		_ = bs.Close()
		return nil, err
	}

	var v *vm.VM
	if found {
		v, err = vm.NewVMAtRoot(ctx, vm.BuiltinActorImpls(), store, head)
		log.WithField("root", head).Debug("resumed machine")
	} else {
		v, err = vm.NewGenesisVM(ctx, vm.BuiltinActorImpls(), store)
		log.WithField("db", opts.DB).Debug("created machine")
	}
	if err != nil {
		_ = bs.Close()
		return nil, xerrors.Errorf("failed to open machine in %s: %w", opts.DB, err)
	}
	v.SetLogger(log)
	return &machine{vm: v, bs: bs}, nil
}

// Records the machine's state root as the store's head.
func (m *machine) commit() error {
	if m.bs == nil {
		return nil
	}
	return m.bs.SetHead(StateHead, m.vm.StateRoot())
}

func (m *machine) close() error {
	if m.bs == nil {
		return nil
	}
	return m.bs.Close()
}
