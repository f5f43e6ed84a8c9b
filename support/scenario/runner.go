package scenario

import (
	"bytes"
	"context"
	"sort"
	"strings"

	addr "github.com/filecoin-project/go-address"
	"github.com/filecoin-project/go-state-types/abi"
	"github.com/filecoin-project/go-state-types/big"
	"github.com/filecoin-project/go-state-types/cbor"
	"github.com/filecoin-project/go-state-types/exitcode"
	cid "github.com/ipfs/go-cid"
	"github.com/sirupsen/logrus"
	"golang.org/x/xerrors"

	"github.com/tokenvault/vault-actors/actors/builtin"
	"github.com/tokenvault/vault-actors/actors/builtin/sale"
	"github.com/tokenvault/vault-actors/actors/builtin/token"
	"github.com/tokenvault/vault-actors/actors/builtin/vault"
	"github.com/tokenvault/vault-actors/support/vm"
)

// Runner applies a document to a machine, keeping the names it declares.
type Runner struct {
	vm    *vm.VM
	log   logrus.FieldLogger
	doc   *Document
	names map[string]addr.Address
	// Sum of the native balances the document endows, which no message can change.
	nativeTotal abi.TokenAmount
}

// The outcome of one step.
type StepResult struct {
	Name      string            `json:"name"`
	Action    string            `json:"action"`
	Target    string            `json:"target"`
	Timestamp uint64            `json:"timestamp"`
	MsgID     string            `json:"msg_id"`
	Code      exitcode.ExitCode `json:"code"`
	Reason    string            `json:"reason,omitempty"`
	Return    string            `json:"return,omitempty"`
	Events    []string          `json:"events,omitempty"`
}

type Report struct {
	Name      string            `json:"name"`
	Addresses map[string]string `json:"addresses"`
	Steps     []StepResult      `json:"steps"`
	StateRoot string            `json:"state_root"`
}

// A step whose outcome differs from its expectation.
type MismatchError struct {
	Step   int
	Name   string
	Detail string
}

func (e *MismatchError) Error() string {
	return xerrors.Errorf("step %d (%s): %s", e.Step, e.Name, e.Detail).Error()
}

func NewRunner(v *vm.VM, doc *Document, log logrus.FieldLogger) *Runner {
	return &Runner{
		vm:          v,
		log:         log,
		doc:         doc,
		names:       make(map[string]addr.Address),
		nativeTotal: big.Zero(),
	}
}

// Run sets up the document's deployment and applies its steps, stopping at the first
// step whose outcome does not match its expectation.
func Run(ctx context.Context, v *vm.VM, doc *Document, log logrus.FieldLogger) (*Report, error) {
	r := NewRunner(v, doc, log)
	if err := r.Setup(); err != nil {
		return nil, err
	}
	report := &Report{Name: doc.Name}
	for i := range doc.Steps {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		result, err := r.Step(i)
		if result != nil {
			report.Steps = append(report.Steps, *result)
		}
		if err != nil {
			r.finish(report)
			return report, err
		}
	}
	r.finish(report)
	return report, nil
}

func (r *Runner) finish(report *Report) {
	report.Addresses = make(map[string]string, len(r.names))
	for name, a := range r.names { // nolint:nomaprange
		report.Addresses[name] = a.String()
	}
	report.StateRoot = r.vm.StateRoot().String()
}

// Setup creates the accounts and deploys the actors the document declares, in declaration order.
func (r *Runner) Setup() error {
	if r.doc.Start > 0 {
		if err := r.vm.SetTimestamp(r.doc.Start); err != nil {
			return err
		}
	}
	for _, a := range r.doc.Accounts {
		balance, err := ParseAmount(a.Balance)
		if err != nil {
			return xerrors.Errorf("account %s: %w", a.Name, err)
		}
		pubkey, err := addr.NewSecp256k1Address([]byte(a.Name))
		if err != nil {
			return err
		}
		id, err := r.vm.CreateAccount(pubkey, balance)
		if err != nil {
			return xerrors.Errorf("account %s: %w", a.Name, err)
		}
		r.names[a.Name] = id
		r.nativeTotal = big.Add(r.nativeTotal, balance)
		r.log.WithFields(logrus.Fields{"name": a.Name, "id": id, "pubkey": pubkey}).Debug("created account")
	}

	for _, spec := range r.doc.Deploy.Tokens {
		params, err := r.tokenParams(&spec)
		if err != nil {
			return xerrors.Errorf("token %s: %w", spec.Name, err)
		}
		if err := r.deploy(spec.Name, builtin.TokenActorCodeID, params); err != nil {
			return err
		}
	}
	for _, spec := range r.doc.Deploy.Vaults {
		params, err := r.vaultParams(&spec)
		if err != nil {
			return xerrors.Errorf("vault %s: %w", spec.Name, err)
		}
		if err := r.deploy(spec.Name, builtin.VaultActorCodeID, params); err != nil {
			return err
		}
	}
	for _, spec := range r.doc.Deploy.Sales {
		params, err := r.saleParams(&spec)
		if err != nil {
			return xerrors.Errorf("sale %s: %w", spec.Name, err)
		}
		if err := r.deploy(spec.Name, builtin.SaleActorCodeID, params); err != nil {
			return err
		}
	}
	return r.checkInvariants()
}

func (r *Runner) deploy(name string, code cid.Cid, params cbor.Marshaler) error {
	a, result, err := r.vm.Deploy(code, params)
	if err != nil {
		return xerrors.Errorf("%s: %w", name, err)
	}
	if result.Code != exitcode.Ok {
		return xerrors.Errorf("%s: constructor failed with %v: %s", name, result.Code, result.Reason)
	}
	r.names[name] = a
	r.log.WithFields(logrus.Fields{"name": name, "id": a, "code": builtin.ActorNameByCode(code)}).Info("deployed actor")
	return nil
}

func (r *Runner) tokenParams(spec *TokenSpec) (*token.ConstructorParams, error) {
	supply, err := ParseAmount(spec.Supply)
	if err != nil {
		return nil, err
	}
	params := &token.ConstructorParams{
		Name:          spec.Name,
		Symbol:        spec.Symbol,
		Decimals:      spec.Decimals,
		InitialSupply: supply,
	}
	if params.Decimals == 0 {
		params.Decimals = amountDecimals
	}
	if spec.Holder != "" {
		if params.Holder, err = r.address(spec.Holder); err != nil {
			return nil, err
		}
	}
	return params, nil
}

func (r *Runner) vaultParams(spec *VaultSpec) (*vault.ConstructorParams, error) {
	owner, err := r.address(spec.Owner)
	if err != nil {
		return nil, err
	}
	params := &vault.ConstructorParams{Owner: owner}
	if spec.ReferenceToken != "" {
		ref, err := r.address(spec.ReferenceToken)
		if err != nil {
			return nil, err
		}
		params.ReferenceToken = &ref
	}
	if spec.FeeDestination != "" {
		dest, err := r.address(spec.FeeDestination)
		if err != nil {
			return nil, err
		}
		params.FeeDestination = &dest
	}
	if params.CreationFee, err = feeSchedule(spec.CreationFee); err != nil {
		return nil, err
	}
	if params.RevocationFee, err = feeSchedule(spec.RevocationFee); err != nil {
		return nil, err
	}
	return params, nil
}

func feeSchedule(spec FeeSpec) (vault.FeeSchedule, error) {
	flat, err := ParseAmount(spec.Flat)
	return vault.FeeSchedule{FlatFee: flat, PercentFee: spec.PercentBps}, err
}

func (r *Runner) saleParams(spec *SaleSpec) (*sale.ConstructorParams, error) {
	owner, err := r.address(spec.Owner)
	if err != nil {
		return nil, err
	}
	tokenAddr, err := r.address(spec.Token)
	if err != nil {
		return nil, err
	}
	rate, err := ParseAmount(spec.Rate)
	if err != nil {
		return nil, err
	}
	maxPayment, err := ParseAmount(spec.MaxPayment)
	if err != nil {
		return nil, err
	}
	return &sale.ConstructorParams{Owner: owner, Token: tokenAddr, Rate: rate, MaxPaymentPerAddress: maxPayment}, nil
}

// Step applies the i'th step of the document and checks its expectation.
// A result is returned whenever the message was applied, even if it did not meet expectations.
func (r *Runner) Step(i int) (*StepResult, error) {
	step := &r.doc.Steps[i]
	if err := r.moveClock(step); err != nil {
		return nil, &MismatchError{Step: i, Name: step.Name, Detail: err.Error()}
	}

	from, err := r.address(step.From)
	if err != nil {
		return nil, &MismatchError{Step: i, Name: step.Name, Detail: "from: " + err.Error()}
	}
	to, err := r.address(step.Target)
	if err != nil {
		return nil, &MismatchError{Step: i, Name: step.Name, Detail: "target: " + err.Error()}
	}
	act, err := r.lookupAction(to, step.Action)
	if err != nil {
		return nil, &MismatchError{Step: i, Name: step.Name, Detail: err.Error()}
	}
	params, err := act.params(r, step.Args)
	if err != nil {
		return nil, &MismatchError{Step: i, Name: step.Name, Detail: "args: " + err.Error()}
	}
	value, err := ParseAmount(step.Value)
	if err != nil {
		return nil, &MismatchError{Step: i, Name: step.Name, Detail: "value: " + err.Error()}
	}

	msg := r.vm.ApplyMessage(from, to, value, act.method, params)
	result := &StepResult{
		Name:      step.Name,
		Action:    step.Action,
		Target:    step.Target,
		Timestamp: r.vm.Timestamp(),
		MsgID:     msg.MsgID,
		Code:      msg.Code,
		Reason:    msg.Reason,
	}
	for _, e := range msg.Events {
		result.Events = append(result.Events, e.Event.EventName())
	}
	if msg.Code == exitcode.Ok && act.render != nil && msg.Ret != nil {
		var buf bytes.Buffer
		if err := msg.Ret.MarshalCBOR(&buf); err != nil {
			return result, err
		}
		if result.Return, err = act.render(buf.Bytes()); err != nil {
			return result, xerrors.Errorf("step %d (%s): failed to render return: %w", i, step.Name, err)
		}
	}
	r.log.WithFields(logrus.Fields{
		"step":   step.Name,
		"action": step.Action,
		"code":   msg.Code,
		"msg_id": msg.MsgID,
	}).Info("step applied")

	if detail := checkExpectation(step.Expect, result); detail != "" {
		return result, &MismatchError{Step: i, Name: step.Name, Detail: detail}
	}
	if err := r.checkInvariants(); err != nil {
		return result, &MismatchError{Step: i, Name: step.Name, Detail: err.Error()}
	}
	return result, nil
}

func (r *Runner) moveClock(step *Step) error {
	switch {
	case step.At != "":
		offset, err := ParseOffset(step.At)
		if err != nil {
			return err
		}
		return r.vm.SetTimestamp(r.doc.Start + offset)
	case step.Advance != "":
		offset, err := ParseOffset(step.Advance)
		if err != nil {
			return err
		}
		return r.vm.AdvanceTime(offset)
	}
	return nil
}

func (r *Runner) lookupAction(to addr.Address, name string) (action, error) {
	act, found, err := r.vm.GetActor(to)
	if err != nil {
		return action{}, err
	}
	if !found {
		return action{}, xerrors.Errorf("no actor at %v", to)
	}
	a, ok := actions[actionKey{act.Code, name}]
	if !ok {
		return action{}, xerrors.Errorf("%s has no action %q, expected one of: %s",
			builtin.ActorNameByCode(act.Code), name, strings.Join(Actions(act.Code), ", "))
	}
	return a, nil
}

func checkExpectation(expect *Expectation, result *StepResult) string {
	want := exitcode.Ok
	if expect != nil && expect.Code != "" {
		code, ok := ParseExitCode(expect.Code)
		if !ok {
			return "unknown exit code " + expect.Code
		}
		want = code
	}
	if result.Code != want {
		return xerrors.Errorf("exit code %v, expected %v: %s", result.Code, want, result.Reason).Error()
	}
	if expect == nil {
		return ""
	}
	if expect.Reason != "" && !strings.Contains(result.Reason, expect.Reason) {
		return xerrors.Errorf("reason %q does not contain %q", result.Reason, expect.Reason).Error()
	}
	if expect.Return != "" && result.Return != expect.Return {
		return xerrors.Errorf("returned %q, expected %q", result.Return, expect.Return).Error()
	}
	if expect.Events != nil && strings.Join(expect.Events, ",") != strings.Join(result.Events, ",") {
		return xerrors.Errorf("events %v, expected %v", result.Events, expect.Events).Error()
	}
	return ""
}

func (r *Runner) checkInvariants() error {
	if !r.doc.CheckInvariants {
		return nil
	}
	msgs, err := r.vm.CheckStateInvariants(r.nativeTotal)
	if err != nil {
		return err
	}
	if !msgs.IsEmpty() {
		return xerrors.Errorf("invariants violated: %s", strings.Join(msgs.Messages(), "; "))
	}
	return nil
}

// Resolves a declared name or, failing that, an address string.
func (r *Runner) address(name string) (addr.Address, error) {
	if a, ok := r.names[name]; ok {
		return a, nil
	}
	a, err := addr.NewFromString(name)
	if err != nil {
		return addr.Undef, xerrors.Errorf("unknown name %q", name)
	}
	return a, nil
}

// Names returns the declared names, sorted.
func (r *Runner) Names() []string {
	names := make([]string, 0, len(r.names))
	for name := range r.names { // nolint:nomaprange
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

var exitCodes = map[string]exitcode.ExitCode{
	"Ok":                      exitcode.Ok,
	"SysErrSenderInvalid":     exitcode.SysErrSenderInvalid,
	"SysErrInvalidMethod":     exitcode.SysErrInvalidMethod,
	"SysErrInvalidReceiver":   exitcode.SysErrInvalidReceiver,
	"SysErrInsufficientFunds": exitcode.SysErrInsufficientFunds,
	"SysErrForbidden":         exitcode.SysErrForbidden,
	"ErrIllegalArgument":      exitcode.ErrIllegalArgument,
	"ErrNotFound":             exitcode.ErrNotFound,
	"ErrForbidden":            exitcode.ErrForbidden,
	"ErrInsufficientFunds":    exitcode.ErrInsufficientFunds,
	"ErrIllegalState":         exitcode.ErrIllegalState,
	"ErrSerialization":        exitcode.ErrSerialization,
}

// ParseExitCode reads an exit code by its name, e.g. "ErrForbidden".
func ParseExitCode(name string) (exitcode.ExitCode, bool) {
	code, ok := exitCodes[name]
	return code, ok
}
