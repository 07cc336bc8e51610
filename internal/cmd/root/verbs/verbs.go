package verbs

import (
	"fmt"

	"github.com/spf13/cobra"
)

const (
	API    = VerbValue("api")
	Create = VerbValue("create")
	Get    = VerbValue("get")
	Legal  = VerbValue("legal")
	List   = VerbValue("list")
	Patch  = VerbValue("patch")
	Serve  = VerbValue("serve")
	Update = VerbValue("update")
	View   = VerbValue("view")
)

// Empty type to represent the _type_ Verb. Genesis is to support a key in a Context
type VerbKey struct{}

// Verb is a global instance of the VerbKey type
var Verb = VerbKey{}

// Will represent a specific Verb (get, list, patch, etc)
type VerbValue string

func (v VerbValue) String() string {
	return string(v)
}

// ExactIDArg requires a single positional argument naming a record id.
func ExactIDArg(_ *cobra.Command, args []string) error {
	switch len(args) {
	case 1:
		return nil
	case 0:
		return fmt.Errorf("an id argument is required")
	default:
		return fmt.Errorf("expected exactly one id argument, got %d", len(args))
	}
}
