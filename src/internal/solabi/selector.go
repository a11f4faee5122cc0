package solabi

import (
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
)

// CanonicalType returns the type as it appears in a selector signature.
// Tuples are expanded from their components, so unnamed struct fields work.
func CanonicalType(p Param) (string, error) {
	if strings.HasPrefix(p.Type, "tuple") {
		fields := make([]string, 0, len(p.Components))
		for _, c := range p.Components {
			ft, err := CanonicalType(c)
			if err != nil {
				return "", err
			}
			fields = append(fields, ft)
		}
		return "(" + strings.Join(fields, ",") + ")" + strings.TrimPrefix(p.Type, "tuple"), nil
	}

	typ, err := abi.NewType(p.Type, p.InternalType, nil)
	if err != nil {
		return "", fmt.Errorf("param %q: %w", p.Name, err)
	}
	return typ.String(), nil
}

// CanonicalSignature returns e.g. "transfer(address,uint256)".
func CanonicalSignature(e Entry) (string, error) {
	if e.Type != TypeFunction {
		return "", fmt.Errorf("entry %q is a %s, not a function", e.Name, e.Type)
	}
	types := make([]string, 0, len(e.Inputs))
	for _, in := range e.Inputs {
		t, err := CanonicalType(in)
		if err != nil {
			return "", fmt.Errorf("function %s: %w", e.Name, err)
		}
		types = append(types, t)
	}
	return fmt.Sprintf("%s(%s)", e.Name, strings.Join(types, ",")), nil
}

// Selector returns the canonical signature and its 0x-prefixed 4-byte
// selector.
func Selector(e Entry) (sig string, selector string, err error) {
	sig, err = CanonicalSignature(e)
	if err != nil {
		return "", "", err
	}
	return sig, hexutil.Encode(crypto.Keccak256([]byte(sig))[:4]), nil
}
