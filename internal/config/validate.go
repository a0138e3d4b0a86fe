package config

import (
	"fmt"
	"go/token"
	"slices"
	"sort"
	"strings"

	"github.com/kominak/ObservableUserDefault/internal/diagnostic"
)

// Validate checks that every configured name is usable in generated code.
func Validate(c *Config) *diagnostic.Diagnostics {
	res := &diagnostic.Diagnostics{}
	if c == nil {
		res.AddError("config_is_nil", "config is nil", "", "")
		return res
	}

	if c.Version != DefaultVersion {
		res.AddError("unsupported_version", fmt.Sprintf("unsupported config version %q", c.Version), "", "")
	}

	checkIdent(res, "", "store_field", c.StoreField)
	checkIdent(res, "", "registrar_field", c.RegistrarField)

	if c.Receiver != "" {
		checkIdent(res, "", "receiver", c.Receiver)
	}

	if !strings.HasSuffix(c.FileSuffix, ".go") || strings.HasSuffix(c.FileSuffix, "_test.go") {
		res.AddError("invalid_file_suffix",
			fmt.Sprintf("file_suffix %q must end in .go and must not be a test file", c.FileSuffix), "", "")
	}

	owners := make([]string, 0, len(c.Owners))
	for name := range c.Owners {
		owners = append(owners, name)
	}

	sort.Strings(owners)

	for _, name := range owners {
		o := c.Owners[name]
		if !token.IsIdentifier(name) {
			res.AddError("invalid_owner", fmt.Sprintf("owner %q is not a Go identifier", name), name, "")
			continue
		}

		for _, f := range []struct{ key, value string }{
			{"store_field", o.StoreField},
			{"registrar_field", o.RegistrarField},
			{"receiver", o.Receiver},
		} {
			if f.value != "" {
				checkIdent(res, name, f.key, f.value)
			}
		}
	}

	return res
}

// ReservedReceivers are names used by the generated method bodies.
var ReservedReceivers = []string{"value", "raw", "ok", "kvstore"}

func checkIdent(res *diagnostic.Diagnostics, owner, key, value string) {
	if !token.IsIdentifier(value) || value == "_" {
		res.AddError("invalid_identifier", fmt.Sprintf("%s %q is not a usable Go identifier", key, value), owner, "")
		return
	}

	if key == "receiver" && slices.Contains(ReservedReceivers, value) {
		res.AddError("reserved_receiver",
			fmt.Sprintf("receiver %q clashes with a name used by generated accessors", value), owner, "")
	}
}
