package builtin

import (
	"sync"

	"github.com/filecoin-project/go-state-types/rt"
	"github.com/ipfs/go-cid"

	"github.com/tokenvault/vault-actors/actors/runtime"
)

type ActorLog struct {
	sync.RWMutex
	Actors map[cid.Cid]rt.LogLevel
}

var actorLogSingle *ActorLog

func init() {
	actorLogSingle = &ActorLog{Actors: make(map[cid.Cid]rt.LogLevel)}
}

// Sets the minimum level at which the given actors' logs are surfaced by the host.
func SetActorsLogLevel(logLevel rt.LogLevel, actors ...runtime.VMActor) {
	actorLogSingle.Lock()
	defer actorLogSingle.Unlock()

	for _, actor := range actors {
		actorLogSingle.Actors[actor.Code()] = logLevel
	}
}

func GetActorLogLevel(actor runtime.VMActor, defValue rt.LogLevel) rt.LogLevel {
	return GetCodeLogLevel(actor.Code(), defValue)
}

func GetCodeLogLevel(code cid.Cid, defValue rt.LogLevel) rt.LogLevel {
	actorLogSingle.RLock()
	defer actorLogSingle.RUnlock()

	actorLogLevel, ok := actorLogSingle.Actors[code]
	if ok {
		return actorLogLevel
	}

	return defValue
}

// Clears all configured levels.
func ResetActorsLogLevel() {
	actorLogSingle.Lock()
	defer actorLogSingle.Unlock()
	actorLogSingle.Actors = make(map[cid.Cid]rt.LogLevel)
}
