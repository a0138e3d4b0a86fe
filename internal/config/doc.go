// Package config provides the YAML configuration for kvgen.
//
// The file is optional; every field has a default.
//
//	version: "1"
//	store_field: store          # owner field holding a kvstore.Store
//	registrar_field: registrar  # owner field holding a kvstore.Registrar
//	receiver: ""                # receiver name; derived from the owner when empty
//	key_prefix: ""              # prepended to every store key
//	file_suffix: _kvgen.go      # generated file name suffix
//	owners:
//	  Settings:
//	    key_prefix: "settings."
//	    receiver: s
//
// Owner entries override the top-level values for one owner type.
package config
