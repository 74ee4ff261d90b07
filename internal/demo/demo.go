// Package demo registers the sample types the objshell binary ships with: bank accounts and
// points. Host applications register their own types the same way.
package demo

import (
	"errors"
	"fmt"
	"math"
	"sync"
	"sync/atomic"

	"objshell/internal/registry"
	"objshell/pkg/objtypes"
)

// Type names as they appear in expressions.
const (
	AccountType = "Account"
	PointType   = "Point"
)

var (
	// ErrInvalidAmount is returned for zero or negative amounts.
	ErrInvalidAmount = errors.New("amount must be positive")
	// ErrInsufficientFunds is returned when a withdrawal exceeds the balance.
	ErrInsufficientFunds = errors.New("insufficient funds")
	// ErrFrozen is returned for any movement on a frozen account.
	ErrFrozen = errors.New("account is frozen")
)

// Account is a named balance.
type Account struct {
	Owner   string  `yaml:"owner"`
	Balance float64 `yaml:"balance"`
	Frozen  bool    `yaml:"frozen"`

	mu sync.Mutex
}

// NewAccount opens an account with an initial balance.
func NewAccount(owner string, balance float64) (*Account, error) {
	if owner == "" {
		return nil, fmt.Errorf("owner cannot be empty")
	}
	if balance < 0 {
		return nil, fmt.Errorf("initial balance %v: %w", balance, ErrInvalidAmount)
	}
	return &Account{Owner: owner, Balance: balance}, nil
}

// Identification returns the owner.
func (a *Account) Identification() string {
	return a.Owner
}

// Deposit adds amount and returns the new balance.
func (a *Account) Deposit(amount float64) (float64, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if err := a.check(amount); err != nil {
		return 0, err
	}
	a.Balance += amount
	return a.Balance, nil
}

// Withdraw removes amount and returns the new balance.
func (a *Account) Withdraw(amount float64) (float64, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if err := a.check(amount); err != nil {
		return 0, err
	}
	if amount > a.Balance {
		return 0, fmt.Errorf("withdraw %v from %s: %w", amount, a.Owner, ErrInsufficientFunds)
	}
	a.Balance -= amount
	return a.Balance, nil
}

// Transfer moves amount to target and returns this account's new balance.
func (a *Account) Transfer(target *Account, amount float64) (float64, error) {
	if target == a {
		return 0, fmt.Errorf("cannot transfer from %s to itself", a.Owner)
	}
	balance, err := a.Withdraw(amount)
	if err != nil {
		return 0, err
	}
	if _, err := target.Deposit(amount); err != nil {
		_, _ = a.refund(amount)
		return 0, err
	}
	return balance, nil
}

// CurrentBalance returns the balance.
func (a *Account) CurrentBalance() float64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.Balance
}

// Freeze blocks further movements.
func (a *Account) Freeze() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.Frozen = true
}

func (a *Account) refund(amount float64) (float64, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.Balance += amount
	return a.Balance, nil
}

// check validates a movement; callers hold mu.
func (a *Account) check(amount float64) error {
	if a.Frozen {
		return fmt.Errorf("%s: %w", a.Owner, ErrFrozen)
	}
	if amount <= 0 {
		return fmt.Errorf("%v: %w", amount, ErrInvalidAmount)
	}
	return nil
}

// Point is a position in the plane, identified by a generated name.
type Point struct {
	Name string  `yaml:"name"`
	X    float64 `yaml:"x"`
	Y    float64 `yaml:"y"`
}

// Identification returns the generated name.
func (p *Point) Identification() string {
	return p.Name
}

// Distance returns the euclidean distance to other.
func (p *Point) Distance(other *Point) float64 {
	return math.Hypot(p.X-other.X, p.Y-other.Y)
}

// Register adds Account and Point to types.
func Register(types *registry.Registry) error {
	if err := registerAccount(types); err != nil {
		return err
	}
	return registerPoint(types)
}

func account(receiver any) (*Account, error) {
	a, ok := receiver.(*Account)
	if !ok {
		return nil, fmt.Errorf("receiver %T is not an %s: %w", receiver, AccountType, objtypes.ErrAccessDenied)
	}
	return a, nil
}

func registerAccount(types *registry.Registry) error {
	constructors := []registry.Callable{
		registry.NewConstructor(func(args []any) (any, error) {
			return NewAccount(args[0].(string), 0)
		}, objtypes.KindString),
		registry.NewConstructor(func(args []any) (any, error) {
			return NewAccount(args[0].(string), args[1].(float64))
		}, objtypes.KindString, objtypes.KindFloat),
	}

	methods := []registry.Callable{
		registry.NewMethod("deposit", func(receiver any, args []any) (any, error) {
			a, err := account(receiver)
			if err != nil {
				return nil, err
			}
			return a.Deposit(args[0].(float64))
		}, objtypes.KindFloat),
		registry.NewMethod("withdraw", func(receiver any, args []any) (any, error) {
			a, err := account(receiver)
			if err != nil {
				return nil, err
			}
			return a.Withdraw(args[0].(float64))
		}, objtypes.KindFloat),
		registry.NewMethod("balance", func(receiver any, _ []any) (any, error) {
			a, err := account(receiver)
			if err != nil {
				return nil, err
			}
			return a.CurrentBalance(), nil
		}),
		registry.NewMethod("transfer", func(receiver any, args []any) (any, error) {
			a, err := account(receiver)
			if err != nil {
				return nil, err
			}
			target, err := account(args[0])
			if err != nil {
				return nil, err
			}
			return a.Transfer(target, args[1].(float64))
		}, objtypes.Kind(AccountType), objtypes.KindFloat),
		registry.NewMethod("freeze", func(receiver any, _ []any) (any, error) {
			a, err := account(receiver)
			if err != nil {
				return nil, err
			}
			a.Freeze()
			return nil, nil
		}),
		registry.NewMethod("audit", func(any, []any) (any, error) {
			return nil, fmt.Errorf("audit is restricted to the bank: %w", objtypes.ErrAccessDenied)
		}),
	}

	return types.Register(AccountType, constructors, methods)
}

func registerPoint(types *registry.Registry) error {
	var counter atomic.Int64

	constructors := []registry.Callable{
		registry.NewConstructor(func(args []any) (any, error) {
			name := fmt.Sprintf("p%d", counter.Add(1))
			return &Point{Name: name, X: args[0].(float64), Y: args[1].(float64)}, nil
		}, objtypes.KindFloat, objtypes.KindFloat),
	}

	methods := []registry.Callable{
		registry.NewMethod("distance", func(receiver any, args []any) (any, error) {
			p, ok := receiver.(*Point)
			if !ok {
				return nil, fmt.Errorf("receiver %T is not a %s: %w", receiver, PointType, objtypes.ErrAccessDenied)
			}
			other, ok := args[0].(*Point)
			if !ok {
				return nil, fmt.Errorf("argument %T is not a %s", args[0], PointType)
			}
			return p.Distance(other), nil
		}, objtypes.Kind(PointType)),
	}

	return types.Register(PointType, constructors, methods)
}
