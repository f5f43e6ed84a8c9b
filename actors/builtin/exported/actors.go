package exported

import (
	"github.com/tokenvault/vault-actors/actors/builtin/account"
	"github.com/tokenvault/vault-actors/actors/builtin/sale"
	"github.com/tokenvault/vault-actors/actors/builtin/system"
	"github.com/tokenvault/vault-actors/actors/builtin/token"
	"github.com/tokenvault/vault-actors/actors/builtin/vault"
	"github.com/tokenvault/vault-actors/actors/runtime"
)

// BuiltinActors returns every actor implementation the machine can host.
func BuiltinActors() []runtime.VMActor {
	return []runtime.VMActor{
		system.Actor{},
		account.Actor{},
		token.Actor{},
		vault.Actor{},
		sale.Actor{},
	}
}
