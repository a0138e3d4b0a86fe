package plan

//go:generate go tool stringer -type=Strategy -output=strategy_string.go

// Strategy selects the accessor shape emitted for a property.
type Strategy int

const (
	_ Strategy = iota // zero value is invalid

	// StrategyDirectOptional reads *T through a type assertion, nil when absent.
	StrategyDirectOptional
	// StrategyDirectWithDefault reads T through a type assertion, the initializer when absent.
	StrategyDirectWithDefault
	// StrategyEncodedWithDefault goes through kvstore.Decode/Encode: string raw
	// value, then int raw value, then JSON.
	StrategyEncodedWithDefault
)

// IsDirect reports whether s uses the direct (type assertion) shape.
func (s Strategy) IsDirect() bool {
	return s == StrategyDirectOptional || s == StrategyDirectWithDefault
}
