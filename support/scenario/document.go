package scenario

import (
	"bytes"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"golang.org/x/xerrors"
	"gopkg.in/yaml.v3"
)

// Document describes a deployment and a sequence of messages applied to it.
// Amounts are decimal strings in whole tokens or whole coins, e.g. "1000000" or "0.25".
type Document struct {
	Name string `yaml:"name"`
	// Block timestamp at which the document starts, in seconds since the unix epoch.
	Start           uint64    `yaml:"start"`
	CheckInvariants bool      `yaml:"check_invariants"`
	Accounts        []Account `yaml:"accounts"`
	Deploy          Deploy    `yaml:"deploy"`
	Steps           []Step    `yaml:"steps"`
}

type Account struct {
	Name    string `yaml:"name"`
	Balance string `yaml:"balance"`
}

type Deploy struct {
	Tokens []TokenSpec `yaml:"tokens"`
	Vaults []VaultSpec `yaml:"vaults"`
	Sales  []SaleSpec  `yaml:"sales"`
}

type TokenSpec struct {
	Name     string `yaml:"name"`
	Symbol   string `yaml:"symbol"`
	Decimals uint64 `yaml:"decimals"`
	Supply   string `yaml:"supply"`
	Holder   string `yaml:"holder"`
}

type VaultSpec struct {
	Name           string  `yaml:"name"`
	Owner          string  `yaml:"owner"`
	ReferenceToken string  `yaml:"reference_token"`
	FeeDestination string  `yaml:"fee_destination"`
	CreationFee    FeeSpec `yaml:"creation_fee"`
	RevocationFee  FeeSpec `yaml:"revocation_fee"`
}

type FeeSpec struct {
	Flat       string `yaml:"flat"`
	PercentBps uint64 `yaml:"percent_bps"`
}

type SaleSpec struct {
	Name  string `yaml:"name"`
	Owner string `yaml:"owner"`
	Token string `yaml:"token"`
	// Tokens allocated per whole coin paid.
	Rate       string `yaml:"rate"`
	MaxPayment string `yaml:"max_payment"`
}

type Step struct {
	Name string `yaml:"name"`
	// Moves the clock to Start plus this offset before the step, e.g. "3d" or "36h".
	At string `yaml:"at"`
	// Moves the clock forward by this much before the step.
	Advance string            `yaml:"advance"`
	From    string            `yaml:"from"`
	Action  string            `yaml:"action"`
	Target  string            `yaml:"target"`
	Value   string            `yaml:"value"`
	Args    map[string]string `yaml:"args"`
	Expect  *Expectation      `yaml:"expect"`
}

// Expectation of a step's outcome. A step without one must succeed.
type Expectation struct {
	Code   string   `yaml:"code"`
	Reason string   `yaml:"reason"`
	Return string   `yaml:"return"`
	Events []string `yaml:"events"`
}

// Load reads a document from a YAML file.
func Load(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	doc, err := Decode(f)
	if err != nil {
		return nil, xerrors.Errorf("failed to load %s: %w", path, err)
	}
	return doc, nil
}

// Parse decodes a document from YAML bytes.
func Parse(data []byte) (*Document, error) {
	return Decode(bytes.NewReader(data))
}

// Decode reads a document, rejecting unknown fields.
func Decode(r io.Reader) (*Document, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var doc Document
	if err := dec.Decode(&doc); err != nil {
		return nil, xerrors.Errorf("failed to decode scenario: %w", err)
	}
	if err := doc.Validate(); err != nil {
		return nil, err
	}
	return &doc, nil
}

// Validate checks that names are unique and every step names an action and a target.
func (d *Document) Validate() error {
	names := make(map[string]struct{})
	claim := func(kind, name string) error {
		if name == "" {
			return xerrors.Errorf("%s without a name", kind)
		}
		if _, dup := names[name]; dup {
			return xerrors.Errorf("duplicate name %q", name)
		}
		names[name] = struct{}{}
		return nil
	}
	for _, a := range d.Accounts {
		if err := claim("account", a.Name); err != nil {
			return err
		}
	}
	for _, t := range d.Deploy.Tokens {
		if err := claim("token", t.Name); err != nil {
			return err
		}
	}
	for _, v := range d.Deploy.Vaults {
		if err := claim("vault", v.Name); err != nil {
			return err
		}
	}
	for _, s := range d.Deploy.Sales {
		if err := claim("sale", s.Name); err != nil {
			return err
		}
	}
	for i, s := range d.Steps {
		if s.Action == "" || s.Target == "" {
			return xerrors.Errorf("step %d (%s): action and target are required", i, s.Name)
		}
		if s.At != "" && s.Advance != "" {
			return xerrors.Errorf("step %d (%s): at and advance are exclusive", i, s.Name)
		}
	}
	return nil
}

// ParseOffset reads a non-negative duration in seconds. Besides Go durations it accepts whole days, e.g. "10d".
func ParseOffset(s string) (uint64, error) {
	if strings.HasSuffix(s, "d") {
		days, err := strconv.ParseUint(strings.TrimSuffix(s, "d"), 10, 32)
		if err != nil {
			return 0, xerrors.Errorf("invalid day count %q: %w", s, err)
		}
		return days * 86400, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, xerrors.Errorf("invalid duration %q: %w", s, err)
	}
	if d < 0 {
		return 0, xerrors.Errorf("negative duration %q", s)
	}
	return uint64(d / time.Second), nil
}
